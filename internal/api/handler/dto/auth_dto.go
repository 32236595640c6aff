package dto

import (
	"time"

	"loan-ledger/internal/domain/identity"
)

type CredentialsRequest struct {
	Email    string `json:"email" example:"shop@example.com"`
	Password string `json:"password" example:"secret123"`
}

type OwnerResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

type TokenResponse struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expiresAt"`
	Owner     OwnerResponse `json:"owner"`
}

func NewOwnerResponse(o *identity.Owner) OwnerResponse {
	if o == nil {
		return OwnerResponse{}
	}
	return OwnerResponse{ID: formatID(o.ID), Email: o.Email, CreatedAt: o.CreatedAt}
}

func NewTokenResponse(s *identity.Session) TokenResponse {
	return TokenResponse{
		Token:     s.Token,
		ExpiresAt: s.ExpiresAt,
		Owner:     NewOwnerResponse(&s.Owner),
	}
}
