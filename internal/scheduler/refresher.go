// Package scheduler runs the periodic price refresh. Runs are strictly
// serial: a tick that fires while a refresh is still executing waits for it,
// so no two batch runs ever overlap.
package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Krzemon/Instruments-Graph/internal/services"
)

// PriceRefresher is the slice of the analytics service the scheduler needs.
type PriceRefresher interface {
	RefreshAllPrices(ctx context.Context) (*services.BulkRefreshResult, error)
}

// Refresher triggers bulk price refreshes on a fixed interval.
type Refresher struct {
	svc      PriceRefresher
	interval time.Duration
	log      *zap.SugaredLogger
}

// NewRefresher creates a Refresher. The interval must be positive.
func NewRefresher(svc PriceRefresher, interval time.Duration, log *zap.SugaredLogger) *Refresher {
	return &Refresher{svc: svc, interval: interval, log: log}
}

// Run refreshes prices once immediately and then on every tick until the
// context is cancelled. A failed run is logged and does not stop the loop.
func (r *Refresher) Run(ctx context.Context) {
	r.log.Infow("price refresher started", "interval", r.interval.String())

	r.refresh(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.log.Info("price refresher stopped")
			return
		case <-ticker.C:
			r.refresh(ctx)
		}
	}
}

func (r *Refresher) refresh(ctx context.Context) {
	result, err := r.svc.RefreshAllPrices(ctx)
	if err != nil {
		r.log.Errorw("scheduled price refresh failed", "error", err)
		return
	}
	r.log.Infow("scheduled price refresh done", "updated", result.Updated, "skipped", result.Skipped)
}
