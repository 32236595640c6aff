package batch

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"loan-ledger/internal/domain/identity"
	"loan-ledger/internal/domain/report"
	"loan-ledger/internal/infrastructure/monitoring"
)

const maxConcurrentOwners = 8

// OwnerLister yields every owner the snapshot should cover.
type OwnerLister interface {
	ListIDs(ctx context.Context) ([]int64, error)
}

var _ OwnerLister = (identity.OwnerRepository)(nil)

// OverdueSnapshotJob publishes each owner's loaned and overdue totals as gauges.
type OverdueSnapshotJob struct {
	owners  OwnerLister
	reports report.ReportService
	logger  *slog.Logger
}

func NewOverdueSnapshotJob(owners OwnerLister, reports report.ReportService, logger *slog.Logger) *OverdueSnapshotJob {
	if owners == nil || reports == nil || logger == nil {
		panic("OverdueSnapshotJob dependencies cannot be nil")
	}
	return &OverdueSnapshotJob{
		owners:  owners,
		reports: reports,
		logger:  logger.With("job", "OverdueSnapshot"),
	}
}

func (j *OverdueSnapshotJob) Run(ctx context.Context) error {
	startTime := time.Now()
	j.logger.InfoContext(ctx, "Starting overdue snapshot job.")

	ownerIDs, err := j.owners.ListIDs(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to list owners, aborting job.", slog.Any("error", err))
		monitoring.RecordSnapshotRun("error")
		return fmt.Errorf("cannot run job, failed to list owners: %w", err)
	}
	j.logger.InfoContext(ctx, "Fetched owner IDs.", slog.Int("count", len(ownerIDs)))

	if len(ownerIDs) == 0 {
		j.logger.InfoContext(ctx, "No owners registered yet.")
		monitoring.RecordSnapshotRun("success")
		return nil
	}

	var wg sync.WaitGroup
	var processedCount, errorCount atomic.Int32
	sem := make(chan struct{}, maxConcurrentOwners)

	for _, ownerID := range ownerIDs {
		wg.Add(1)
		sem <- struct{}{}
		go func(id int64) {
			defer wg.Done()
			defer func() { <-sem }()

			logCtx := j.logger.With(slog.Int64("ownerID", id))
			summary, err := j.reports.Summary(ctx, id)
			if err != nil {
				logCtx.ErrorContext(ctx, "Failed to compute owner summary", slog.Any("error", err))
				errorCount.Add(1)
				return
			}

			monitoring.SetOwnerSnapshot(strconv.FormatInt(id, 10), summary.TotalLoaned, summary.OverdueAmount)
			logCtx.DebugContext(ctx, "Owner snapshot updated.",
				slog.Float64("loaned", summary.TotalLoaned),
				slog.Float64("overdue", summary.OverdueAmount),
			)
			processedCount.Add(1)
		}(ownerID)
	}

	wg.Wait()
	summaryLog := j.logger.With(
		slog.Duration("duration", time.Since(startTime)),
		slog.Int("owners_total", len(ownerIDs)),
		slog.Int("owners_processed", int(processedCount.Load())),
		slog.Int("errors_encountered", int(errorCount.Load())),
	)

	if n := errorCount.Load(); n > 0 {
		summaryLog.WarnContext(ctx, "Overdue snapshot job finished with errors.")
		monitoring.RecordSnapshotRun("partial")
		return fmt.Errorf("job completed with %d errors", n)
	}
	summaryLog.InfoContext(ctx, "Overdue snapshot job finished successfully.")
	monitoring.RecordSnapshotRun("success")
	return nil
}
