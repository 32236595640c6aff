package loan

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
)

type Repository interface {
	Create(ctx context.Context, loan *Loan) error

	// FindByID joins the owning customer; returns apperrors.ErrNotFound when absent.
	FindByID(ctx context.Context, loanID int64) (*Loan, error)

	FindByOwner(ctx context.Context, ownerID int64, filter StatusFilter, asOf time.Time) ([]*Loan, error)

	// FindForUpdateInTx locks the loan row until tx ends.
	FindForUpdateInTx(ctx context.Context, tx pgx.Tx, loanID int64) (*Loan, error)

	UpdateBalanceInTx(ctx context.Context, tx pgx.Tx, loan *Loan) error

	BeginTx(ctx context.Context) (pgx.Tx, error)

	CommitTx(ctx context.Context, tx pgx.Tx) error

	RollbackTx(ctx context.Context, tx pgx.Tx) error
}
