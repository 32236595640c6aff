package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"loan-ledger/internal/domain/identity"
	"loan-ledger/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
)

type OwnerRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ identity.OwnerRepository = (*OwnerRepository)(nil)

func NewOwnerRepository(db DBPool, logger *slog.Logger) *OwnerRepository {
	return &OwnerRepository{db: db, logger: logger.With("component", "OwnerRepository")}
}

func (r *OwnerRepository) Create(ctx context.Context, o *identity.Owner) error {
	query := `
	INSERT INTO owners (email, password_hash)
	VALUES ($1, $2)
	RETURNING id, created_at`

	start := time.Now()
	err := r.db.QueryRow(ctx, query, o.Email, o.PasswordHash).Scan(&o.ID, &o.CreatedAt)
	observe("CreateOwner", start, err)
	if err != nil {
		return translateDBError(err, r.logger.With("operation", "CreateOwner"))
	}
	r.logger.InfoContext(ctx, "Owner created in DB", "owner_id", o.ID)
	return nil
}

func (r *OwnerRepository) FindByEmail(ctx context.Context, email string) (*identity.Owner, error) {
	query := `
	SELECT id, email, password_hash, created_at
	FROM owners
	WHERE email = $1`

	var o identity.Owner
	start := time.Now()
	err := r.db.QueryRow(ctx, query, email).Scan(&o.ID, &o.Email, &o.PasswordHash, &o.CreatedAt)
	observe("FindOwnerByEmail", start, err)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.DebugContext(ctx, "Owner not found by email")
			return nil, apperrors.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to fetch owner", "error", err)
		return nil, fmt.Errorf("%w: failed to fetch owner: %w", apperrors.ErrDatabase, err)
	}
	return &o, nil
}

// ListIDs returns every registered owner ID in ascending order.
func (r *OwnerRepository) ListIDs(ctx context.Context) ([]int64, error) {
	query := `SELECT id FROM owners ORDER BY id`

	start := time.Now()
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		observe("ListOwnerIDs", start, err)
		r.logger.ErrorContext(ctx, "Failed to query owner IDs", "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			observe("ListOwnerIDs", start, err)
			return nil, fmt.Errorf("%w: failed to scan owner ID: %w", apperrors.ErrDatabase, err)
		}
		ids = append(ids, id)
	}
	err = rows.Err()
	observe("ListOwnerIDs", start, err)
	if err != nil {
		return nil, fmt.Errorf("%w: error iterating owner IDs: %w", apperrors.ErrDatabase, err)
	}
	return ids, nil
}
