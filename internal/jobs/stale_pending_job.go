package jobs

import (
	"context"
	"log/slog"
	"time"

	"timberops/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// defaultStaleAfter is how long a shipment may sit pending before the sweep
// reports it.
const defaultStaleAfter = 72 * time.Hour

// StalePendingJob periodically reports shipments that have been sitting in
// pending review for too long. The sweep is read-only: it never transitions a
// shipment, it only surfaces the backlog so the receiving organisation can be
// nudged.
type StalePendingJob struct {
	handler    queries.GetStalePendingQueryHandler
	cron       *cron.Cron
	logger     *slog.Logger
	staleAfter time.Duration
}

// NewStalePendingJob creates a job that sweeps for stale pending shipments
// every hour.
func NewStalePendingJob(handler queries.GetStalePendingQueryHandler, logger *slog.Logger) *StalePendingJob {
	return &StalePendingJob{
		handler:    handler,
		cron:       cron.New(),
		logger:     logger.With("component", "stale_pending_job"),
		staleAfter: defaultStaleAfter,
	}
}

// Start begins the hourly sweep.
func (j *StalePendingJob) Start() error {
	_, err := j.cron.AddFunc("@hourly", j.sweep)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stale pending sweep started (running hourly)")
	return nil
}

// Stop stops the sweep.
func (j *StalePendingJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stale pending sweep stopped")
}

func (j *StalePendingJob) sweep() {
	ctx := context.Background()

	query, err := queries.NewGetStalePendingQuery(time.Now().UTC().Add(-j.staleAfter))
	if err != nil {
		j.logger.ErrorContext(ctx, "Stale pending sweep failed to build query", "error", err)
		return
	}

	stale, err := j.handler.Handle(ctx, query)
	if err != nil {
		j.logger.ErrorContext(ctx, "Stale pending sweep failed", "error", err)
		return
	}

	for _, shipment := range stale {
		j.logger.WarnContext(ctx, "Shipment pending review for too long",
			"shipment_id", shipment.ID.String(),
			"shipment_code", shipment.ShipmentCode,
			"receiver_id", shipment.ToOrganisationID.String(),
			"submitted_at", shipment.SubmittedAt,
		)
	}
}
