package repayment

import (
	"context"
	"time"

	"loan-ledger/internal/domain/loan"

	"github.com/jackc/pgx/v5"
)

// Repayment is an immutable journal entry against one loan.
type Repayment struct {
	ID        int64
	LoanID    int64
	Amount    loan.Money
	Date      time.Time
	CreatedAt time.Time
}

type RecordFields struct {
	LoanID int64    `json:"loanId" validate:"required,gt=0"`
	Amount *float64 `json:"amount" validate:"required,gt=0,lte=999999999999.99,cents"`
	Date   string   `json:"date" validate:"required,isodate"`
}

func (RecordFields) FieldMessages() map[string]string {
	return map[string]string{
		"loanId": "loanId must be a positive integer",
		"amount": "Amount must be a positive number",
		"date":   "Invalid Date",
	}
}

// Receipt is the outcome of a recorded payment.
type Receipt struct {
	Repayment *Repayment
	Loan      *loan.Loan
}

type Repository interface {
	InsertInTx(ctx context.Context, tx pgx.Tx, r *Repayment) error

	// FindByLoanID returns entries ordered by date then id.
	FindByLoanID(ctx context.Context, loanID int64) ([]*Repayment, error)
}
