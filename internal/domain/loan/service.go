package loan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"loan-ledger/internal/domain/customer"
	"loan-ledger/internal/event"
	"loan-ledger/internal/infrastructure/monitoring"
	"loan-ledger/internal/pkg/apperrors"
	"loan-ledger/internal/pkg/validation"
)

// IssueFields is the input of Issue. Dates are YYYY-MM-DD.
type IssueFields struct {
	CustomerID int64    `json:"customerId" validate:"required,gt=0"`
	ItemDesc   string   `json:"itemDesc" validate:"required,notblank"`
	Amount     *float64 `json:"amount" validate:"required,gt=0,lte=999999999999.99,cents"`
	IssueDate  string   `json:"issueDate" validate:"required,isodate"`
	DueDate    string   `json:"dueDate" validate:"required,isodate"`
	Frequency  string   `json:"frequency" validate:"required,oneof=bi-weekly monthly"`
	Status     string   `json:"status" validate:"omitempty,eq=pending"`
}

func (IssueFields) FieldMessages() map[string]string {
	return map[string]string{
		"customerId": "customerId must be a positive integer",
		"itemDesc":   "Item Description is required",
		"amount":     "Amount must be a positive number",
		"issueDate":  "Invalid Date",
		"dueDate":    "Invalid Date",
		"frequency":  "Frequency must be 'bi-weekly' or 'monthly'.",
		"status":     "Invalid Status",
	}
}

type LoanService interface {
	Issue(ctx context.Context, ownerID int64, fields IssueFields) (*Loan, error)
	List(ctx context.Context, ownerID int64, filter StatusFilter, asOf time.Time) ([]*Loan, error)
	Get(ctx context.Context, ownerID, loanID int64) (*Loan, error)
}

var _ LoanService = (*loanServiceImpl)(nil)

type loanServiceImpl struct {
	repo            Repository
	customerService customer.CustomerService
	validator       validation.Validator
	publisher       event.EventPublisher
	logger          *slog.Logger
}

func NewLoanService(r Repository, cs customer.CustomerService, v validation.Validator, pub event.EventPublisher, logger *slog.Logger) LoanService {
	if pub == nil {
		pub = event.NoopPublisher{}
	}
	return &loanServiceImpl{
		repo:            r,
		customerService: cs,
		validator:       v,
		publisher:       pub,
		logger:          logger.With(slog.String("component", "loanService")),
	}
}

func (s *loanServiceImpl) Issue(ctx context.Context, ownerID int64, fields IssueFields) (*Loan, error) {
	logger := s.logger.With(slog.Int64("ownerID", ownerID), slog.Int64("customerID", fields.CustomerID))
	logger.InfoContext(ctx, "Issuing new loan")

	fields.ItemDesc = strings.TrimSpace(fields.ItemDesc)
	issueDate, dueDate, err := s.validateIssue(&fields)
	if err != nil {
		logger.WarnContext(ctx, "Loan validation failed", slog.Any("error", err))
		return nil, err
	}

	if _, err := s.customerService.Get(ctx, ownerID, fields.CustomerID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrForbidden) {
			logger.WarnContext(ctx, "Loan rejected, customer not accessible to owner")
			return nil, fmt.Errorf("%w: unauthorized customer access", apperrors.ErrForbidden)
		}
		return nil, fmt.Errorf("failed to verify customer: %w", err)
	}

	newLoan := NewLoan(fields.CustomerID, fields.ItemDesc, *fields.Amount, issueDate, dueDate, Frequency(fields.Frequency))
	if err := s.repo.Create(ctx, newLoan); err != nil {
		logger.ErrorContext(ctx, "Failed to save loan", slog.Any("error", err))
		return nil, fmt.Errorf("failed to save loan: %w", err)
	}
	newLoan.OwnerID = ownerID

	monitoring.RecordLoanIssued()
	logger.InfoContext(ctx, "Loan issued successfully", slog.Int64("loanID", newLoan.ID))

	issued := event.LoanIssuedEvent{
		LoanID:     newLoan.ID,
		OwnerID:    ownerID,
		CustomerID: newLoan.CustomerID,
		Amount:     FormatMoney(newLoan.Amount),
		DueDate:    newLoan.DueDate.Format(validation.DateLayout),
		Frequency:  string(newLoan.Frequency),
		Timestamp:  time.Now(),
	}
	if pubErr := s.publisher.PublishLoanIssued(ctx, issued); pubErr != nil {
		logger.ErrorContext(ctx, "Loan issued, but failed to publish event", slog.Any("error", pubErr))
	}

	return newLoan, nil
}

func (s *loanServiceImpl) validateIssue(fields *IssueFields) (time.Time, time.Time, error) {
	if err := s.validator.Validate(fields); err != nil {
		return time.Time{}, time.Time{}, err
	}

	issueDate, _ := validation.ParseDate(fields.IssueDate)
	dueDate, _ := validation.ParseDate(fields.DueDate)
	var errs apperrors.ValidationErrors
	if !dueDate.After(issueDate) {
		errs = errs.Add("dueDate", "Due date must be after issue date.")
	}
	if err := errs.OrNil(); err != nil {
		return time.Time{}, time.Time{}, err
	}
	return issueDate, dueDate, nil
}

func (s *loanServiceImpl) List(ctx context.Context, ownerID int64, filter StatusFilter, asOf time.Time) ([]*Loan, error) {
	if _, err := ParseStatusFilter(string(filter)); err != nil {
		return nil, err
	}

	loans, err := s.repo.FindByOwner(ctx, ownerID, filter, DateOf(asOf))
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to list loans", slog.Int64("ownerID", ownerID), slog.Any("error", err))
		return nil, fmt.Errorf("failed to list loans: %w", err)
	}
	if loans == nil {
		loans = []*Loan{}
	}
	return loans, nil
}

func (s *loanServiceImpl) Get(ctx context.Context, ownerID, loanID int64) (*Loan, error) {
	l, err := s.repo.FindByID(ctx, loanID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: loan %d not found", apperrors.ErrNotFound, loanID)
		}
		s.logger.ErrorContext(ctx, "Failed to load loan", slog.Int64("loanID", loanID), slog.Any("error", err))
		return nil, fmt.Errorf("failed to get loan %d: %w", loanID, err)
	}

	if l.OwnerID != ownerID {
		s.logger.WarnContext(ctx, "Loan belongs to another owner", slog.Int64("loanID", loanID), slog.Int64("ownerID", ownerID))
		return nil, fmt.Errorf("%w: loan %d belongs to another owner", apperrors.ErrForbidden, loanID)
	}
	return l, nil
}
