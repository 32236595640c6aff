package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"loan-ledger/internal/domain/repayment"
	"loan-ledger/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
)

type RepaymentRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ repayment.Repository = (*RepaymentRepository)(nil)

func NewRepaymentRepository(db DBPool, logger *slog.Logger) *RepaymentRepository {
	return &RepaymentRepository{db: db, logger: logger.With("component", "RepaymentRepository")}
}

func (r *RepaymentRepository) InsertInTx(ctx context.Context, tx pgx.Tx, rp *repayment.Repayment) error {
	query := `
	INSERT INTO repayments (loan_id, amount, date, created_at)
	VALUES ($1, $2, $3, NOW())
	RETURNING id, created_at`

	start := time.Now()
	err := tx.QueryRow(ctx, query, rp.LoanID, rp.Amount, rp.Date).Scan(&rp.ID, &rp.CreatedAt)
	observe("InsertRepayment", start, err)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to insert repayment", "error", err, "loan_id", rp.LoanID)
		return translateDBError(err, r.logger.With("operation", "InsertRepayment"))
	}
	r.logger.InfoContext(ctx, "Repayment inserted", "repayment_id", rp.ID, "loan_id", rp.LoanID)
	return nil
}

// FindByLoanID returns the loan's journal ordered by date, then id.
func (r *RepaymentRepository) FindByLoanID(ctx context.Context, loanID int64) ([]*repayment.Repayment, error) {
	query := `
	SELECT id, loan_id, amount::float8, date, created_at
	FROM repayments
	WHERE loan_id = $1
	ORDER BY date ASC, id ASC`

	start := time.Now()
	rows, err := r.db.Query(ctx, query, loanID)
	if err != nil {
		observe("FindRepaymentsByLoan", start, err)
		r.logger.ErrorContext(ctx, "Failed to query repayments", "error", err, "loan_id", loanID)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	out := []*repayment.Repayment{}
	for rows.Next() {
		var rp repayment.Repayment
		if err := rows.Scan(&rp.ID, &rp.LoanID, &rp.Amount, &rp.Date, &rp.CreatedAt); err != nil {
			observe("FindRepaymentsByLoan", start, err)
			return nil, fmt.Errorf("%w: failed to scan repayment: %w", apperrors.ErrDatabase, err)
		}
		out = append(out, &rp)
	}
	err = rows.Err()
	observe("FindRepaymentsByLoan", start, err)
	if err != nil {
		return nil, fmt.Errorf("%w: error iterating repayments: %w", apperrors.ErrDatabase, err)
	}
	return out, nil
}
