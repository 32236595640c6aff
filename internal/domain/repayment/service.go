package repayment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"loan-ledger/internal/domain/loan"
	"loan-ledger/internal/event"
	"loan-ledger/internal/infrastructure/monitoring"
	"loan-ledger/internal/pkg/apperrors"
	"loan-ledger/internal/pkg/validation"
)

type RepaymentService interface {
	Record(ctx context.Context, ownerID int64, fields RecordFields) (*Receipt, error)
	ListForLoan(ctx context.Context, ownerID, loanID int64) ([]*Repayment, error)
}

var _ RepaymentService = (*repaymentService)(nil)

type repaymentService struct {
	repo      Repository
	loans     loan.Repository
	validator validation.Validator
	publisher event.EventPublisher
	logger    *slog.Logger
}

func NewRepaymentService(repo Repository, loans loan.Repository, v validation.Validator, pub event.EventPublisher, logger *slog.Logger) RepaymentService {
	if pub == nil {
		pub = event.NoopPublisher{}
	}
	return &repaymentService{
		repo:      repo,
		loans:     loans,
		validator: v,
		publisher: pub,
		logger:    logger.With(slog.String("component", "repaymentService")),
	}
}

// Record appends a repayment and reduces the loan balance in one transaction.
func (s *repaymentService) Record(ctx context.Context, ownerID int64, fields RecordFields) (receipt *Receipt, err error) {
	logger := s.logger.With(slog.Int64("ownerID", ownerID), slog.Int64("loanID", fields.LoanID))
	logger.InfoContext(ctx, "Recording repayment")

	if err := s.validator.Validate(&fields); err != nil {
		monitoring.RecordRepayment("failure_validation")
		logger.WarnContext(ctx, "Repayment validation failed", slog.Any("error", err))
		return nil, err
	}
	amount := *fields.Amount
	paidOn, _ := validation.ParseDate(fields.Date)

	tx, err := s.loans.BeginTx(ctx)
	if err != nil {
		monitoring.RecordRepayment("failure_internal")
		return nil, fmt.Errorf("could not begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			logger.ErrorContext(ctx, "Panic occurred during repayment processing", slog.Any("panic", p))
			_ = s.loans.RollbackTx(ctx, tx)
			panic(p)
		}
		if err != nil {
			monitoring.RecordRepayment(failureStatus(err))
			_ = s.loans.RollbackTx(ctx, tx)
		}
	}()

	l, err := s.loans.FindForUpdateInTx(ctx, tx, fields.LoanID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.WarnContext(ctx, "Loan not found")
			return nil, fmt.Errorf("%w: loan %d not found", apperrors.ErrNotFound, fields.LoanID)
		}
		logger.ErrorContext(ctx, "Failed to lock loan", slog.Any("error", err))
		return nil, fmt.Errorf("could not load loan %d: %w", fields.LoanID, err)
	}

	if l.OwnerID != ownerID {
		logger.WarnContext(ctx, "Repayment rejected, loan belongs to another owner")
		return nil, fmt.Errorf("%w: loan %d belongs to another owner", apperrors.ErrForbidden, fields.LoanID)
	}

	if err = l.ApplyRepayment(amount); err != nil {
		logger.WarnContext(ctx, "Repayment rejected", slog.Any("error", err))
		return nil, err
	}

	entry := &Repayment{LoanID: l.ID, Amount: amount, Date: paidOn}
	if err = s.repo.InsertInTx(ctx, tx, entry); err != nil {
		logger.ErrorContext(ctx, "Failed to insert repayment", slog.Any("error", err))
		return nil, fmt.Errorf("could not insert repayment: %w", err)
	}

	if err = s.loans.UpdateBalanceInTx(ctx, tx, l); err != nil {
		logger.ErrorContext(ctx, "Failed to update loan balance", slog.Any("error", err))
		return nil, fmt.Errorf("could not update loan balance: %w", err)
	}

	if err = s.loans.CommitTx(ctx, tx); err != nil {
		logger.ErrorContext(ctx, "Failed to commit repayment", slog.Any("error", err))
		return nil, fmt.Errorf("could not commit repayment: %w", err)
	}

	monitoring.RecordRepayment("success")
	logger.InfoContext(ctx, "Repayment recorded", slog.Int64("repaymentID", entry.ID), slog.String("balance", loan.FormatMoney(l.Balance)))
	s.publishRecorded(ctx, logger, ownerID, entry, l)

	return &Receipt{Repayment: entry, Loan: l}, nil
}

func (s *repaymentService) publishRecorded(ctx context.Context, logger *slog.Logger, ownerID int64, entry *Repayment, l *loan.Loan) {
	now := time.Now()
	recorded := event.RepaymentRecordedEvent{
		RepaymentID: entry.ID,
		LoanID:      l.ID,
		OwnerID:     ownerID,
		Amount:      loan.FormatMoney(entry.Amount),
		Date:        entry.Date.Format(validation.DateLayout),
		NewBalance:  loan.FormatMoney(l.Balance),
		Timestamp:   now,
	}
	if err := s.publisher.PublishRepaymentRecorded(ctx, recorded); err != nil {
		logger.ErrorContext(ctx, "Repayment recorded, but failed to publish event", slog.Any("error", err))
	}

	if l.Status != loan.StatusPaid {
		return
	}
	settled := event.LoanSettledEvent{LoanID: l.ID, OwnerID: ownerID, CustomerID: l.CustomerID, Timestamp: now}
	if err := s.publisher.PublishLoanSettled(ctx, settled); err != nil {
		logger.ErrorContext(ctx, "Loan settled, but failed to publish event", slog.Any("error", err))
	}
}

func (s *repaymentService) ListForLoan(ctx context.Context, ownerID, loanID int64) ([]*Repayment, error) {
	l, err := s.loans.FindByID(ctx, loanID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: loan %d not found", apperrors.ErrNotFound, loanID)
		}
		return nil, fmt.Errorf("failed to get loan %d: %w", loanID, err)
	}
	if l.OwnerID != ownerID {
		return nil, fmt.Errorf("%w: loan %d belongs to another owner", apperrors.ErrForbidden, loanID)
	}

	entries, err := s.repo.FindByLoanID(ctx, loanID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to list repayments", slog.Int64("loanID", loanID), slog.Any("error", err))
		return nil, fmt.Errorf("failed to list repayments: %w", err)
	}
	if entries == nil {
		entries = []*Repayment{}
	}
	return entries, nil
}

func failureStatus(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrOverpayment):
		return "failure_overpayment"
	case errors.Is(err, apperrors.ErrAlreadySettled):
		return "failure_settled"
	case errors.Is(err, apperrors.ErrForbidden):
		return "failure_forbidden"
	case errors.Is(err, apperrors.ErrNotFound):
		return "failure_not_found"
	default:
		return "failure_internal"
	}
}
