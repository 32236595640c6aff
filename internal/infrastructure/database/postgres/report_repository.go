package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"loan-ledger/internal/domain/loan"
	"loan-ledger/internal/domain/report"
	"loan-ledger/internal/pkg/apperrors"
)

type ReportRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ report.Repository = (*ReportRepository)(nil)

func NewReportRepository(db DBPool, logger *slog.Logger) *ReportRepository {
	return &ReportRepository{db: db, logger: logger.With("component", "ReportRepository")}
}

func (r *ReportRepository) sum(ctx context.Context, name, query string, args ...any) (loan.Money, error) {
	var total float64
	start := time.Now()
	err := r.db.QueryRow(ctx, query, args...).Scan(&total)
	observe(name, start, err)
	if err != nil {
		r.logger.ErrorContext(ctx, "Aggregate query failed", "query", name, "error", err)
		return 0, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return total, nil
}

func (r *ReportRepository) TotalLoaned(ctx context.Context, ownerID int64) (loan.Money, error) {
	return r.sum(ctx, "TotalLoaned", `
	SELECT COALESCE(SUM(l.amount), 0)::float8
	FROM loans l
	JOIN customers c ON c.id = l.customer_id
	WHERE c.owner_id = $1`, ownerID)
}

func (r *ReportRepository) TotalCollected(ctx context.Context, ownerID int64) (loan.Money, error) {
	return r.sum(ctx, "TotalCollected", `
	SELECT COALESCE(SUM(rp.amount), 0)::float8
	FROM repayments rp
	JOIN loans l ON l.id = rp.loan_id
	JOIN customers c ON c.id = l.customer_id
	WHERE c.owner_id = $1`, ownerID)
}

func (r *ReportRepository) OverdueAmount(ctx context.Context, ownerID int64, asOf time.Time) (loan.Money, error) {
	return r.sum(ctx, "OverdueAmount", `
	SELECT COALESCE(SUM(l.balance), 0)::float8
	FROM loans l
	JOIN customers c ON c.id = l.customer_id
	WHERE c.owner_id = $1 AND l.status = 'pending' AND l.balance > 0 AND l.due_date < $2`, ownerID, asOf)
}

// AverageRepaymentDays averages (repayment date - issue date) over every repayment. Nil when there are none.
func (r *ReportRepository) AverageRepaymentDays(ctx context.Context, ownerID int64) (*float64, error) {
	query := `
	SELECT COUNT(*), COALESCE(AVG(rp.date - l.issue_date), 0)::float8
	FROM repayments rp
	JOIN loans l ON l.id = rp.loan_id
	JOIN customers c ON c.id = l.customer_id
	WHERE c.owner_id = $1`

	var (
		count int64
		avg   float64
	)
	start := time.Now()
	err := r.db.QueryRow(ctx, query, ownerID).Scan(&count, &avg)
	observe("AverageRepaymentDays", start, err)
	if err != nil {
		r.logger.ErrorContext(ctx, "Aggregate query failed", "query", "AverageRepaymentDays", "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	if count == 0 {
		return nil, nil
	}
	return &avg, nil
}

func (r *ReportRepository) OverdueLoans(ctx context.Context, ownerID int64, asOf time.Time) ([]report.OverdueEntry, error) {
	query := `
	SELECT l.id, c.id, c.name, l.issue_date, l.due_date, l.balance::float8
	FROM loans l
	JOIN customers c ON c.id = l.customer_id
	WHERE c.owner_id = $1 AND l.status = 'pending' AND l.balance > 0 AND l.due_date < $2
	ORDER BY l.due_date ASC, l.id ASC`

	start := time.Now()
	rows, err := r.db.Query(ctx, query, ownerID, asOf)
	if err != nil {
		observe("OverdueLoans", start, err)
		r.logger.ErrorContext(ctx, "Failed to query overdue loans", "error", err, "owner_id", ownerID)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	entries := []report.OverdueEntry{}
	for rows.Next() {
		var e report.OverdueEntry
		if err := rows.Scan(&e.LoanID, &e.CustomerID, &e.CustomerName, &e.IssueDate, &e.DueDate, &e.Balance); err != nil {
			observe("OverdueLoans", start, err)
			return nil, fmt.Errorf("%w: failed to scan overdue loan: %w", apperrors.ErrDatabase, err)
		}
		entries = append(entries, e)
	}
	err = rows.Err()
	observe("OverdueLoans", start, err)
	if err != nil {
		return nil, fmt.Errorf("%w: error iterating overdue loans: %w", apperrors.ErrDatabase, err)
	}
	return entries, nil
}
