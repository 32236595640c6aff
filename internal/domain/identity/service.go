package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"loan-ledger/internal/pkg/apperrors"
	"loan-ledger/internal/pkg/validation"

	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,maxbytes=72"`
}

func (Credentials) FieldMessages() map[string]string {
	return map[string]string{
		"email":    "A valid email is required",
		"password": "Password must be between 6 and 72 bytes long",
	}
}

type Session struct {
	Token     string
	ExpiresAt time.Time
	Owner     Owner
}

type AccountService interface {
	Register(ctx context.Context, email, password string) (*Owner, error)
	Login(ctx context.Context, email, password string) (*Session, error)
}

var _ AccountService = (*accountService)(nil)

type accountService struct {
	repo      OwnerRepository
	tokens    TokenProvider
	validator validation.Validator
	logger    *slog.Logger
}

func NewAccountService(repo OwnerRepository, tokens TokenProvider, v validation.Validator, logger *slog.Logger) AccountService {
	if repo == nil || tokens == nil || v == nil {
		panic("account service dependencies cannot be nil")
	}
	return &accountService{
		repo:      repo,
		tokens:    tokens,
		validator: v,
		logger:    logger.With(slog.String("component", "accountService")),
	}
}

func (s *accountService) Register(ctx context.Context, email, password string) (*Owner, error) {
	creds := Credentials{Email: normalizeEmail(email), Password: password}
	if err := s.validator.Validate(&creds); err != nil {
		s.logger.WarnContext(ctx, "Registration rejected by validation", slog.Any("error", err))
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcryptCost)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to hash password", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to hash password: %v", apperrors.ErrInternalServer, err)
	}

	owner := &Owner{Email: creds.Email, PasswordHash: string(hash)}
	if err := s.repo.Create(ctx, owner); err != nil {
		if errors.Is(err, apperrors.ErrAlreadyExists) {
			s.logger.WarnContext(ctx, "Registration rejected, email already registered")
			return nil, fmt.Errorf("%w: email already registered", apperrors.ErrAlreadyExists)
		}
		return nil, fmt.Errorf("failed to register owner: %w", err)
	}

	s.logger.InfoContext(ctx, "Owner registered", slog.Int64("ownerID", owner.ID))
	return owner, nil
}

func (s *accountService) Login(ctx context.Context, email, password string) (*Session, error) {
	owner, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthenticated)
		}
		return nil, fmt.Errorf("failed to look up owner: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(owner.PasswordHash), []byte(password)); err != nil {
		s.logger.WarnContext(ctx, "Login rejected, password mismatch", slog.Int64("ownerID", owner.ID))
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthenticated)
	}

	token, expiresAt, err := s.tokens.Issue(*owner)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to issue token", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to issue token: %v", apperrors.ErrInternalServer, err)
	}

	return &Session{Token: token, ExpiresAt: expiresAt, Owner: *owner}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
