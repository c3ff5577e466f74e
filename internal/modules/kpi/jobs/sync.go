package jobs

import (
	"github.com/rs/zerolog"

	"github.com/aristath/finsight/internal/domain"
	"github.com/aristath/finsight/internal/modules/kpi"
)

// FeedSyncJob periodically refreshes KPI history for tracked companies
type FeedSyncJob struct {
	service *kpi.Service
	freq    domain.Frequency
	log     zerolog.Logger
}

// NewFeedSyncJob creates a new feed sync job
func NewFeedSyncJob(service *kpi.Service, freq domain.Frequency, log zerolog.Logger) *FeedSyncJob {
	return &FeedSyncJob{
		service: service,
		freq:    freq,
		log:     log.With().Str("job", "feed_sync").Logger(),
	}
}

// Name returns the job name for scheduler logging
func (j *FeedSyncJob) Name() string {
	return "feed_sync"
}

// Run refreshes every company with a ticker from the market-data feed.
// Per-company failures are logged and skipped so one bad ticker cannot
// block the rest of the refresh.
func (j *FeedSyncJob) Run() error {
	refreshed, err := j.service.RefreshAll(j.freq)
	if err != nil {
		return err
	}

	j.log.Info().Int("refreshed", refreshed).Msg("Feed refresh completed")
	return nil
}
