package chainstate

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

type EventDispatcher interface {
	Dispatch(ctx context.Context, event Event) error
}

type BackgroundWorkers struct {
	logger     *slog.Logger
	dispatcher EventDispatcher

	workersWg sync.WaitGroup
	ctx       context.Context
	cancelAll func()
}

func NewBackgroundWorkers(dispatcher EventDispatcher, logger *slog.Logger) *BackgroundWorkers {
	ctx, cancel := context.WithCancel(context.Background())

	return &BackgroundWorkers{
		dispatcher: dispatcher,
		logger:     logger.With(slog.String("module", "background workers")),

		ctx:       ctx,
		cancelAll: cancel,
	}
}

func (w *BackgroundWorkers) GracefulStop() {
	w.logger.Info("Shutting down")

	w.cancelAll()
	w.workersWg.Wait()

	w.logger.Info("Shutdown complete")
}

// StartConfirmedExpiry dispatches a confirmed expiry with the given retention every interval.
func (w *BackgroundWorkers) StartConfirmedExpiry(interval time.Duration, retentionBlocks uint64) {
	w.workersWg.Add(1)

	go func() {
		defer w.workersWg.Done()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				err := w.dispatcher.Dispatch(w.ctx, ConfirmedExpired{RetentionBlocks: retentionBlocks})
				if err != nil {
					w.logger.Error("Failed to expire confirmed transactions", slog.String("err", err.Error()))
				}

			case <-w.ctx.Done():
				return
			}
		}
	}()
}
