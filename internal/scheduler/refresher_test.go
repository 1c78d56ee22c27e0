package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Krzemon/Instruments-Graph/internal/services"
)

type countingRefresher struct {
	calls atomic.Int64
	err   error
}

func (c *countingRefresher) RefreshAllPrices(context.Context) (*services.BulkRefreshResult, error) {
	c.calls.Add(1)
	if c.err != nil {
		return nil, c.err
	}
	return &services.BulkRefreshResult{}, nil
}

func TestRefresherRun(t *testing.T) {
	t.Run("refreshes_immediately_and_on_ticks", func(t *testing.T) {
		svc := &countingRefresher{}
		r := NewRefresher(svc, 10*time.Millisecond, zap.NewNop().Sugar())

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			r.Run(ctx)
			close(done)
		}()

		deadline := time.After(2 * time.Second)
		for svc.calls.Load() < 3 {
			select {
			case <-deadline:
				t.Fatalf("expected at least 3 refreshes, got %d", svc.calls.Load())
			case <-time.After(5 * time.Millisecond):
			}
		}

		cancel()
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("refresher did not stop after context cancellation")
		}
	})

	t.Run("keeps_running_after_errors", func(t *testing.T) {
		svc := &countingRefresher{err: errors.New("feed down")}
		r := NewRefresher(svc, 10*time.Millisecond, zap.NewNop().Sugar())

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go r.Run(ctx)

		deadline := time.After(2 * time.Second)
		for svc.calls.Load() < 2 {
			select {
			case <-deadline:
				t.Fatalf("expected the loop to continue after an error, got %d calls", svc.calls.Load())
			case <-time.After(5 * time.Millisecond):
			}
		}
	})
}
