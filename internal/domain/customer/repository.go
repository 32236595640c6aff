package customer

import "context"

type CustomerRepository interface {
	Create(ctx context.Context, customer *Customer) error

	// FindByID returns apperrors.ErrNotFound when no row exists.
	FindByID(ctx context.Context, customerID int64) (*Customer, error)

	FindByOwner(ctx context.Context, ownerID int64) ([]*Customer, error)

	Update(ctx context.Context, customer *Customer) error

	Delete(ctx context.Context, customerID int64) error
}
