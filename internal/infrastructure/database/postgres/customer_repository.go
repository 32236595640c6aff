package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"loan-ledger/internal/domain/customer"
	"loan-ledger/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
)

type CustomerRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ customer.CustomerRepository = (*CustomerRepository)(nil)

const customerColumns = `id, owner_id, name, phone, address, trust_score, credit_limit::float8, created_at, updated_at`

func NewCustomerRepository(db DBPool, logger *slog.Logger) *CustomerRepository {
	return &CustomerRepository{db: db, logger: logger.With("component", "CustomerRepository")}
}

func scanCustomer(row pgx.Row) (*customer.Customer, error) {
	var c customer.Customer
	err := row.Scan(
		&c.ID, &c.OwnerID, &c.Name, &c.Phone, &c.Address,
		&c.TrustScore, &c.CreditLimit, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CustomerRepository) Create(ctx context.Context, c *customer.Customer) error {
	query := `
	INSERT INTO customers (owner_id, name, phone, address, trust_score, credit_limit, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	RETURNING id, created_at, updated_at`

	start := time.Now()
	err := r.db.QueryRow(ctx, query,
		c.OwnerID, c.Name, c.Phone, c.Address, c.TrustScore, c.CreditLimit,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	observe("CreateCustomer", start, err)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to insert customer", "error", err, "owner_id", c.OwnerID)
		return translateDBError(err, r.logger.With("operation", "CreateCustomer"))
	}
	r.logger.InfoContext(ctx, "Customer created in DB", "customer_id", c.ID, "owner_id", c.OwnerID)
	return nil
}

func (r *CustomerRepository) FindByID(ctx context.Context, customerID int64) (*customer.Customer, error) {
	query := `SELECT ` + customerColumns + `
	FROM customers
	WHERE id = $1`

	start := time.Now()
	c, err := scanCustomer(r.db.QueryRow(ctx, query, customerID))
	observe("FindCustomerByID", start, err)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.WarnContext(ctx, "Customer not found", "customer_id", customerID)
			return nil, apperrors.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to fetch customer", "error", err, "customer_id", customerID)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return c, nil
}

func (r *CustomerRepository) FindByOwner(ctx context.Context, ownerID int64) ([]*customer.Customer, error) {
	query := `SELECT ` + customerColumns + `
	FROM customers
	WHERE owner_id = $1
	ORDER BY id`

	start := time.Now()
	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		observe("FindCustomersByOwner", start, err)
		r.logger.ErrorContext(ctx, "Failed to query customers", "error", err, "owner_id", ownerID)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	customers := []*customer.Customer{}
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			observe("FindCustomersByOwner", start, err)
			r.logger.ErrorContext(ctx, "Failed to scan customer row", "error", err)
			return nil, fmt.Errorf("%w: failed to scan customer: %w", apperrors.ErrDatabase, err)
		}
		customers = append(customers, c)
	}
	err = rows.Err()
	observe("FindCustomersByOwner", start, err)
	if err != nil {
		return nil, fmt.Errorf("%w: error iterating customers: %w", apperrors.ErrDatabase, err)
	}
	return customers, nil
}

func (r *CustomerRepository) Update(ctx context.Context, c *customer.Customer) error {
	query := `
	UPDATE customers
	SET name = $1, phone = $2, address = $3, trust_score = $4, credit_limit = $5, updated_at = NOW()
	WHERE id = $6
	RETURNING updated_at`

	start := time.Now()
	err := r.db.QueryRow(ctx, query,
		c.Name, c.Phone, c.Address, c.TrustScore, c.CreditLimit, c.ID,
	).Scan(&c.UpdatedAt)
	observe("UpdateCustomer", start, err)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.WarnContext(ctx, "Customer not found for update", "customer_id", c.ID)
			return apperrors.ErrNotFound
		}
		return translateDBError(err, r.logger.With("operation", "UpdateCustomer"))
	}
	r.logger.InfoContext(ctx, "Customer updated in DB", "customer_id", c.ID)
	return nil
}

// Delete removes the customer. Loans that referenced it are kept with a NULL customer.
func (r *CustomerRepository) Delete(ctx context.Context, customerID int64) error {
	query := `DELETE FROM customers WHERE id = $1`

	start := time.Now()
	cmdTag, err := r.db.Exec(ctx, query, customerID)
	observe("DeleteCustomer", start, err)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to delete customer", "error", err, "customer_id", customerID)
		return fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	if cmdTag.RowsAffected() == 0 {
		r.logger.WarnContext(ctx, "Customer not found for deletion", "customer_id", customerID)
		return apperrors.ErrNotFound
	}
	r.logger.InfoContext(ctx, "Customer deleted from DB", "customer_id", customerID)
	return nil
}
