package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"loan-ledger/internal/config"
	"loan-ledger/internal/domain/identity"
	"loan-ledger/internal/pkg/apperrors"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "loan-ledger"

type ownerClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// JWTProvider issues HS256 tokens whose subject is the owner id.
type JWTProvider struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

var _ identity.TokenProvider = (*JWTProvider)(nil)

func NewJWTProvider(cfg config.AuthConfig) (*JWTProvider, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("jwt secret cannot be empty")
	}
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &JWTProvider{secret: []byte(cfg.JWTSecret), ttl: ttl, now: time.Now}, nil
}

func (p *JWTProvider) Issue(owner identity.Owner) (string, time.Time, error) {
	issuedAt := p.now()
	expiresAt := issuedAt.Add(p.ttl)
	claims := ownerClaims{
		Email: owner.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(owner.ID, 10),
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(p.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify returns apperrors.ErrUnauthenticated for any malformed, forged or expired token.
func (p *JWTProvider) Verify(tokenString string) (identity.Owner, error) {
	var claims ownerClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return p.secret, nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(p.now),
	)
	if err != nil || !token.Valid {
		return identity.Owner{}, fmt.Errorf("%w: invalid token: %v", apperrors.ErrUnauthenticated, err)
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id <= 0 {
		return identity.Owner{}, fmt.Errorf("%w: invalid token subject", apperrors.ErrUnauthenticated)
	}
	return identity.Owner{ID: id, Email: claims.Email}, nil
}
