package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"loan-ledger/internal/domain/loan"
	"loan-ledger/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
)

type LoanRepository struct {
	txRunner
}

var _ loan.Repository = (*LoanRepository)(nil)

// Orphaned loans keep owner 0 and an empty customer name.
const loanSelect = `
	SELECT l.id, COALESCE(l.customer_id, 0), COALESCE(c.owner_id, 0), COALESCE(c.name, ''),
	       l.item_desc, l.amount::float8, l.balance::float8, l.issue_date, l.due_date,
	       l.frequency, l.status, l.created_at, l.updated_at
	FROM loans l
	LEFT JOIN customers c ON c.id = l.customer_id`

func NewLoanRepository(db DBPool, logger *slog.Logger) *LoanRepository {
	return &LoanRepository{txRunner{db: db, logger: logger.With("component", "LoanRepository")}}
}

func scanLoan(row pgx.Row) (*loan.Loan, error) {
	var l loan.Loan
	err := row.Scan(
		&l.ID, &l.CustomerID, &l.OwnerID, &l.CustomerName,
		&l.ItemDesc, &l.Amount, &l.Balance, &l.IssueDate, &l.DueDate,
		&l.Frequency, &l.Status, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *LoanRepository) Create(ctx context.Context, l *loan.Loan) error {
	query := `
	INSERT INTO loans (customer_id, item_desc, amount, balance, issue_date, due_date, frequency, status, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	RETURNING id, created_at, updated_at`

	start := time.Now()
	err := r.db.QueryRow(ctx, query,
		l.CustomerID, l.ItemDesc, l.Amount, l.Balance, l.IssueDate, l.DueDate, l.Frequency, l.Status,
	).Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)
	observe("CreateLoan", start, err)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to insert loan", "error", err, "customer_id", l.CustomerID)
		return translateDBError(err, r.logger.With("operation", "CreateLoan"))
	}
	r.logger.InfoContext(ctx, "Loan created in DB", "loan_id", l.ID, "customer_id", l.CustomerID)
	return nil
}

func (r *LoanRepository) FindByID(ctx context.Context, loanID int64) (*loan.Loan, error) {
	query := loanSelect + `
	WHERE l.id = $1`

	start := time.Now()
	l, err := scanLoan(r.db.QueryRow(ctx, query, loanID))
	observe("FindLoanByID", start, err)
	if err != nil {
		return nil, r.findError(ctx, err, loanID)
	}
	return l, nil
}

// FindForUpdateInTx locks the loan row until tx ends.
func (r *LoanRepository) FindForUpdateInTx(ctx context.Context, tx pgx.Tx, loanID int64) (*loan.Loan, error) {
	query := loanSelect + `
	WHERE l.id = $1
	FOR UPDATE OF l`

	start := time.Now()
	l, err := scanLoan(tx.QueryRow(ctx, query, loanID))
	observe("FindLoanForUpdate", start, err)
	if err != nil {
		return nil, r.findError(ctx, err, loanID)
	}
	return l, nil
}

func (r *LoanRepository) findError(ctx context.Context, err error, loanID int64) error {
	if errors.Is(err, pgx.ErrNoRows) {
		r.logger.WarnContext(ctx, "Loan not found", "loan_id", loanID)
		return apperrors.ErrNotFound
	}
	r.logger.ErrorContext(ctx, "Failed to fetch loan", "error", err, "loan_id", loanID)
	return fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
}

// FindByOwner lists the owner's loans by ascending id. The overdue filter is evaluated against asOf.
func (r *LoanRepository) FindByOwner(ctx context.Context, ownerID int64, filter loan.StatusFilter, asOf time.Time) ([]*loan.Loan, error) {
	query := loanSelect + `
	WHERE c.owner_id = $1`
	args := []any{ownerID}

	switch filter {
	case loan.FilterAll:
	case loan.FilterPending, loan.FilterPaid:
		query += ` AND l.status = $2`
		args = append(args, loan.Status(filter))
	case loan.FilterOverdue:
		query += ` AND l.status = 'pending' AND l.balance > 0 AND l.due_date < $2`
		args = append(args, asOf)
	default:
		return nil, fmt.Errorf("%w: unknown status filter %q", apperrors.ErrInvalidArgument, filter)
	}
	query += `
	ORDER BY l.id ASC`

	start := time.Now()
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		observe("FindLoansByOwner", start, err)
		r.logger.ErrorContext(ctx, "Failed to query loans", "error", err, "owner_id", ownerID)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	loans := []*loan.Loan{}
	for rows.Next() {
		l, err := scanLoan(rows)
		if err != nil {
			observe("FindLoansByOwner", start, err)
			r.logger.ErrorContext(ctx, "Failed to scan loan row", "error", err)
			return nil, fmt.Errorf("%w: failed to scan loan: %w", apperrors.ErrDatabase, err)
		}
		loans = append(loans, l)
	}
	err = rows.Err()
	observe("FindLoansByOwner", start, err)
	if err != nil {
		return nil, fmt.Errorf("%w: error iterating loans: %w", apperrors.ErrDatabase, err)
	}
	return loans, nil
}

func (r *LoanRepository) UpdateBalanceInTx(ctx context.Context, tx pgx.Tx, l *loan.Loan) error {
	query := `
	UPDATE loans
	SET balance = $1, status = $2, updated_at = NOW()
	WHERE id = $3`

	start := time.Now()
	cmdTag, err := tx.Exec(ctx, query, l.Balance, l.Status, l.ID)
	observe("UpdateLoanBalance", start, err)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to update loan balance", "error", err, "loan_id", l.ID)
		return translateDBError(err, r.logger.With("operation", "UpdateLoanBalance"))
	}
	if cmdTag.RowsAffected() == 0 {
		r.logger.WarnContext(ctx, "Loan not found for balance update", "loan_id", l.ID)
		return apperrors.ErrNotFound
	}
	return nil
}
