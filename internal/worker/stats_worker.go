package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/conceptlens/conceptlens-backend/internal/service"
)

// StatsWorker periodically recomputes the dashboard stats so the cached blob
// stays warm and reads never pay the aggregation cost.
type StatsWorker struct {
	reports  *service.ReportService
	interval time.Duration
	log      zerolog.Logger
}

// NewStatsWorker creates a new StatsWorker.
func NewStatsWorker(reports *service.ReportService, interval time.Duration) *StatsWorker {
	return &StatsWorker{
		reports:  reports,
		interval: interval,
		log:      log.With().Str("component", "stats_worker").Logger(),
	}
}

// Start runs the refresh loop until the context is cancelled. One refresh
// happens immediately at startup.
func (w *StatsWorker) Start(ctx context.Context) {
	w.log.Info().Dur("interval", w.interval).Msg("StatsWorker started")

	w.refresh(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("StatsWorker stopped")
			return
		case <-ticker.C:
			w.refresh(ctx)
		}
	}
}

func (w *StatsWorker) refresh(ctx context.Context) {
	stats, err := w.reports.RefreshStats(ctx)
	if err != nil {
		w.log.Error().Err(err).Msg("dashboard stats refresh failed")
		return
	}
	w.log.Debug().
		Int("pending", stats.PendingMisconceptions).
		Int("valid", stats.ValidMisconceptions).
		Int("processed", stats.ProcessedResponses).
		Msg("dashboard stats refreshed")
}
