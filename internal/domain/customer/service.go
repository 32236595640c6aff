package customer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"loan-ledger/internal/pkg/apperrors"
	"loan-ledger/internal/pkg/validation"
)

const customerNotFound = "Customer not found by repository"

type CustomerService interface {
	Create(ctx context.Context, ownerID int64, fields Fields) (*Customer, error)
	Update(ctx context.Context, ownerID, customerID int64, fields Fields) (*Customer, error)
	Delete(ctx context.Context, ownerID, customerID int64) error
	Get(ctx context.Context, ownerID, customerID int64) (*Customer, error)
	List(ctx context.Context, ownerID int64) ([]*Customer, error)
}

var _ CustomerService = (*customerService)(nil)

type customerService struct {
	repo      CustomerRepository
	validator validation.Validator
	logger    *slog.Logger
}

func NewCustomerService(repo CustomerRepository, v validation.Validator, logger *slog.Logger) CustomerService {
	if repo == nil {
		panic("customer repository cannot be nil")
	}
	if v == nil {
		panic("validator cannot be nil")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCustomerService, using default stderr handler")
	}

	return &customerService{
		repo:      repo,
		validator: v,
		logger:    logger.With(slog.String("component", "customerService")),
	}
}

func (s *customerService) Create(ctx context.Context, ownerID int64, fields Fields) (*Customer, error) {
	logger := s.logger.With(slog.Int64("ownerID", ownerID))
	logger.InfoContext(ctx, "Attempting to create new customer")

	fields = fields.normalized()
	if err := s.validator.Validate(&fields); err != nil {
		logger.WarnContext(ctx, "Customer validation failed", slog.Any("error", err))
		return nil, err
	}

	cust := NewCustomer(ownerID, fields)
	if err := s.repo.Create(ctx, cust); err != nil {
		logger.ErrorContext(ctx, "Repository failed to save new customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to save new customer: %w", err)
	}

	logger.InfoContext(ctx, "Successfully created new customer", slog.Int64("customerID", cust.ID))
	return cust, nil
}

func (s *customerService) Update(ctx context.Context, ownerID, customerID int64, fields Fields) (*Customer, error) {
	logger := s.logger.With(slog.Int64("ownerID", ownerID), slog.Int64("customerID", customerID))
	logger.InfoContext(ctx, "Attempting to update customer")

	fields = fields.normalized()
	if err := s.validator.Validate(&fields); err != nil {
		logger.WarnContext(ctx, "Customer validation failed", slog.Any("error", err))
		return nil, err
	}

	cust, err := s.findOwned(ctx, logger, ownerID, customerID)
	if err != nil {
		return nil, err
	}

	cust.apply(fields)
	if err := s.repo.Update(ctx, cust); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.WarnContext(ctx, "Customer vanished before update")
			return nil, fmt.Errorf("%w: customer %d not found", apperrors.ErrNotFound, customerID)
		}
		logger.ErrorContext(ctx, "Repository failed to update customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to update customer %d: %w", customerID, err)
	}

	logger.InfoContext(ctx, "Successfully updated customer")
	return cust, nil
}

func (s *customerService) Delete(ctx context.Context, ownerID, customerID int64) error {
	logger := s.logger.With(slog.Int64("ownerID", ownerID), slog.Int64("customerID", customerID))
	logger.InfoContext(ctx, "Attempting to delete customer")

	if _, err := s.findOwned(ctx, logger, ownerID, customerID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, customerID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: customer %d not found", apperrors.ErrNotFound, customerID)
		}
		logger.ErrorContext(ctx, "Repository failed to delete customer", slog.Any("error", err))
		return fmt.Errorf("failed to delete customer %d: %w", customerID, err)
	}

	logger.InfoContext(ctx, "Successfully deleted customer")
	return nil
}

func (s *customerService) Get(ctx context.Context, ownerID, customerID int64) (*Customer, error) {
	logger := s.logger.With(slog.Int64("ownerID", ownerID), slog.Int64("customerID", customerID))
	return s.findOwned(ctx, logger, ownerID, customerID)
}

func (s *customerService) List(ctx context.Context, ownerID int64) ([]*Customer, error) {
	customers, err := s.repo.FindByOwner(ctx, ownerID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository failed to list customers", slog.Int64("ownerID", ownerID), slog.Any("error", err))
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	if customers == nil {
		customers = []*Customer{}
	}
	return customers, nil
}

func (s *customerService) findOwned(ctx context.Context, logger *slog.Logger, ownerID, customerID int64) (*Customer, error) {
	cust, err := s.repo.FindByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.WarnContext(ctx, customerNotFound)
			return nil, fmt.Errorf("%w: customer %d not found", apperrors.ErrNotFound, customerID)
		}
		logger.ErrorContext(ctx, "Repository failed to find customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get customer %d: %w", customerID, err)
	}

	if !cust.OwnedBy(ownerID) {
		logger.WarnContext(ctx, "Customer belongs to another owner")
		return nil, fmt.Errorf("%w: customer %d belongs to another owner", apperrors.ErrForbidden, customerID)
	}
	return cust, nil
}
