package report

import (
	"context"
	"time"

	"loan-ledger/internal/domain/loan"
)

type Summary struct {
	TotalLoaned    loan.Money
	TotalCollected loan.Money
	OverdueAmount  loan.Money
	// AverageRepaymentDays is nil when the owner has no repayments.
	AverageRepaymentDays *float64
	AsOf                 time.Time
}

type OverdueEntry struct {
	LoanID       int64
	CustomerID   int64
	CustomerName string
	IssueDate    time.Time
	DueDate      time.Time
	Balance      loan.Money
}

// Repository runs owner-scoped aggregate reads. Each aggregate is an independent query.
type Repository interface {
	TotalLoaned(ctx context.Context, ownerID int64) (loan.Money, error)

	TotalCollected(ctx context.Context, ownerID int64) (loan.Money, error)

	OverdueAmount(ctx context.Context, ownerID int64, asOf time.Time) (loan.Money, error)

	AverageRepaymentDays(ctx context.Context, ownerID int64) (*float64, error)

	OverdueLoans(ctx context.Context, ownerID int64, asOf time.Time) ([]OverdueEntry, error)
}
