// Package scheduler keeps a long-lived session's job collection from
// going stale by re-running the listing refresh on a cron schedule.
// Disabled by default: the UI model is fetch-per-interaction, so the
// schedule only matters for kiosk-style deployments.
package scheduler

import (
	"context"

	"github.com/Soubhagyabehera/easyapply/internal/config"
	"github.com/Soubhagyabehera/easyapply/internal/listing"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type Refresher struct {
	cron    *cron.Cron
	logger  *zap.Logger
	listing *listing.Service
}

func NewRefresher(logger *zap.Logger, svc *listing.Service, cfg *config.Config) (*Refresher, error) {
	r := &Refresher{
		cron:    cron.New(),
		logger:  logger,
		listing: svc,
	}

	if cfg.RefreshSchedule == "" {
		return r, nil
	}

	_, err := r.cron.AddFunc(cfg.RefreshSchedule, func() {
		if err := r.listing.Refresh(context.Background(), listing.ListQuery{}); err != nil {
			r.logger.Error("scheduled refresh failed", zap.Error(err))
		}
	})
	if err != nil {
		return nil, err
	}

	logger.Info("background refresh enabled", zap.String("schedule", cfg.RefreshSchedule))
	return r, nil
}

func (r *Refresher) Start() {
	r.cron.Start()
}

func (r *Refresher) Stop() {
	r.cron.Stop()
}
