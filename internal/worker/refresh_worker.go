package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"statistik/internal/amqp"
	"statistik/internal/core"
	"statistik/internal/log"
)

// Snapshotter is the part of the stats service the worker drives.
type Snapshotter interface {
	Transactions(ctx context.Context) ([]core.Transaction, error)
	Invalidate(reason string)
	HandleChange(ctx context.Context, msg *amqp.TransactionsChangedMessage) error
}

// ChangeConsumer delivers change notifications until ctx ends.
type ChangeConsumer interface {
	ConsumeTransactionsChanged(ctx context.Context, handler amqp.Handler) error
}

// RefreshWorker keeps the transaction snapshot current. It invalidates on
// change notifications and, when an interval is set, reloads the snapshot
// on a timer so requests rarely pay for a cold load.
type RefreshWorker struct {
	service  Snapshotter
	consumer ChangeConsumer
	interval time.Duration
	logger   *log.Logger
}

// NewRefreshWorker builds a worker. consumer may be nil and interval may be
// zero; Run then only does what is configured.
func NewRefreshWorker(service Snapshotter, consumer ChangeConsumer, interval time.Duration, logger *log.Logger) *RefreshWorker {
	if logger == nil {
		logger = log.Discard()
	}
	return &RefreshWorker{
		service:  service,
		consumer: consumer,
		interval: interval,
		logger:   logger.WithComponent(log.ComponentCache),
	}
}

// Run blocks until ctx is cancelled or the consumer fails for good. With
// neither a consumer nor an interval it returns at once.
func (w *RefreshWorker) Run(ctx context.Context) error {
	var wg sync.WaitGroup
	errCh := make(chan error, 1)

	if w.consumer != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := w.consumer.ConsumeTransactionsChanged(ctx, w.service.HandleChange); err != nil && !errors.Is(err, context.Canceled) {
				errCh <- err
			}
		}()
	}

	if w.interval > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.refreshLoop(ctx)
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case err := <-errCh:
		w.logger.ErrorContext(ctx, "Change consumer stopped", log.FieldError, err)
		return err
	case <-done:
		select {
		case err := <-errCh:
			w.logger.ErrorContext(ctx, "Change consumer stopped", log.FieldError, err)
			return err
		default:
		}
		return ctx.Err()
	}
}

func (w *RefreshWorker) refreshLoop(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.Warm(ctx)
	for {
		select {
		case <-ticker.C:
			w.service.Invalidate("scheduled refresh")
			w.Warm(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// Warm loads the snapshot. Failures are logged; the next request retries.
func (w *RefreshWorker) Warm(ctx context.Context) {
	start := time.Now()
	txs, err := w.service.Transactions(ctx)
	if err != nil {
		w.logger.WarnContext(ctx, "Snapshot warm-up failed", log.FieldError, err)
		return
	}
	w.logger.DebugContext(ctx, "Snapshot warmed",
		log.FieldCount, len(txs),
		log.FieldDuration, time.Since(start).Milliseconds())
}
