package identity

import "context"

type OwnerRepository interface {
	Create(ctx context.Context, owner *Owner) error

	FindByEmail(ctx context.Context, email string) (*Owner, error)

	ListIDs(ctx context.Context) ([]int64, error)
}
