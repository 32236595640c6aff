package identity

import (
	"context"
	"time"

	"loan-ledger/internal/pkg/apperrors"
)

// Owner is a registered shopkeeper. Every customer, loan and repayment is scoped to one.
type Owner struct {
	ID           int64
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

type ownerCtxKey struct{}

// WithOwner attaches a verified owner to ctx.
func WithOwner(ctx context.Context, owner Owner) context.Context {
	return context.WithValue(ctx, ownerCtxKey{}, owner)
}

func OwnerFromContext(ctx context.Context) (Owner, bool) {
	owner, ok := ctx.Value(ownerCtxKey{}).(Owner)
	if !ok || owner.ID <= 0 {
		return Owner{}, false
	}
	return owner, true
}

// OwnerIDFromContext returns ErrUnauthenticated when no verified owner is present.
func OwnerIDFromContext(ctx context.Context) (int64, error) {
	owner, ok := OwnerFromContext(ctx)
	if !ok {
		return 0, apperrors.ErrUnauthenticated
	}
	return owner.ID, nil
}

// TokenProvider issues and verifies bearer tokens for owners.
type TokenProvider interface {
	Issue(owner Owner) (token string, expiresAt time.Time, err error)
	Verify(token string) (Owner, error)
}
