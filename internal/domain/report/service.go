package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"loan-ledger/internal/domain/loan"
)

type ReportService interface {
	Summary(ctx context.Context, ownerID int64) (*Summary, error)
	OverdueCustomers(ctx context.Context, ownerID int64, asOf time.Time) ([]OverdueEntry, error)
}

type Option func(*reportService)

// WithClock overrides the source of "today".
func WithClock(now func() time.Time) Option {
	return func(s *reportService) { s.now = now }
}

var _ ReportService = (*reportService)(nil)

type reportService struct {
	repo   Repository
	now    func() time.Time
	logger *slog.Logger
}

func NewReportService(repo Repository, logger *slog.Logger, opts ...Option) ReportService {
	s := &reportService{
		repo:   repo,
		now:    time.Now,
		logger: logger.With(slog.String("component", "reportService")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Summary evaluates every aggregate against a single "today".
func (s *reportService) Summary(ctx context.Context, ownerID int64) (*Summary, error) {
	today := loan.DateOf(s.now())
	logger := s.logger.With(slog.Int64("ownerID", ownerID))

	totalLoaned, err := s.repo.TotalLoaned(ctx, ownerID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to sum loaned amount", slog.Any("error", err))
		return nil, fmt.Errorf("failed to compute total loaned: %w", err)
	}

	totalCollected, err := s.repo.TotalCollected(ctx, ownerID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to sum collected amount", slog.Any("error", err))
		return nil, fmt.Errorf("failed to compute total collected: %w", err)
	}

	overdue, err := s.repo.OverdueAmount(ctx, ownerID, today)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to sum overdue balance", slog.Any("error", err))
		return nil, fmt.Errorf("failed to compute overdue amount: %w", err)
	}

	avg, err := s.repo.AverageRepaymentDays(ctx, ownerID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to average repayment days", slog.Any("error", err))
		return nil, fmt.Errorf("failed to compute average repayment days: %w", err)
	}

	return &Summary{
		TotalLoaned:          totalLoaned,
		TotalCollected:       totalCollected,
		OverdueAmount:        overdue,
		AverageRepaymentDays: avg,
		AsOf:                 today,
	}, nil
}

func (s *reportService) OverdueCustomers(ctx context.Context, ownerID int64, asOf time.Time) ([]OverdueEntry, error) {
	if asOf.IsZero() {
		asOf = s.now()
	}
	entries, err := s.repo.OverdueLoans(ctx, ownerID, loan.DateOf(asOf))
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to list overdue loans", slog.Int64("ownerID", ownerID), slog.Any("error", err))
		return nil, fmt.Errorf("failed to list overdue loans: %w", err)
	}
	if entries == nil {
		entries = []OverdueEntry{}
	}
	return entries, nil
}
