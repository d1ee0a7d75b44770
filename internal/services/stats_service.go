package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/sync/singleflight"

	"statistik/internal/amqp"
	"statistik/internal/cache"
	"statistik/internal/catalog"
	"statistik/internal/core"
	"statistik/internal/log"
	"statistik/internal/period"
	"statistik/internal/source"
	"statistik/internal/stats"
)

var ErrNoWriter = errors.New("transaction source is read-only")

// ChangePublisher announces that the transaction set has changed.
type ChangePublisher interface {
	PublishTransactionsChanged(ctx context.Context, msg *amqp.TransactionsChangedMessage) error
}

// Options configures a StatsService. A zero SnapshotTTL keeps the snapshot
// until the next invalidation.
type Options struct {
	Catalog     *catalog.Catalog
	Location    *time.Location
	SnapshotTTL time.Duration
	Logger      *log.Logger
	Now         func() time.Time
}

// StatsService serves period summaries from a cached transaction snapshot.
// Results themselves are never cached: every call recomputes from the
// snapshot so a catalog or location change shows up immediately.
type StatsService struct {
	lister    source.TransactionLister
	snapshots *cache.Snapshot[[]core.Transaction]
	loads     singleflight.Group
	catalog   *catalog.Catalog
	location  *time.Location
	logger    *log.Logger
	now       func() time.Time
}

func NewStatsService(lister source.TransactionLister, opts Options) *StatsService {
	if opts.Catalog == nil {
		opts.Catalog = catalog.Default()
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Logger == nil {
		opts.Logger = log.Discard()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &StatsService{
		lister:    lister,
		snapshots: cache.NewSnapshot[[]core.Transaction](opts.SnapshotTTL),
		catalog:   opts.Catalog,
		location:  opts.Location,
		logger:    opts.Logger.WithComponent(log.ComponentStats),
		now:       opts.Now,
	}
}

// Stats aggregates the selected period over the current snapshot.
func (s *StatsService) Stats(ctx context.Context, sel period.Selection) (stats.Result, error) {
	txs, err := s.Transactions(ctx)
	if err != nil {
		return stats.Result{}, err
	}
	return stats.Aggregate(txs, sel,
		stats.WithCatalog(s.catalog),
		stats.WithLocation(s.location),
	), nil
}

// Transactions returns the cached snapshot, loading it on a miss. Concurrent
// misses within one generation share a single load.
func (s *StatsService) Transactions(ctx context.Context) ([]core.Transaction, error) {
	if txs, ok := s.snapshots.Get(); ok {
		return txs, nil
	}

	gen := s.snapshots.Generation()
	key := strconv.FormatUint(gen, 10)
	v, err, shared := s.loads.Do(key, func() (any, error) {
		start := time.Now()
		// The load outlives a single caller's cancellation since others may share it.
		txs, err := s.lister.ListTransactions(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		if !s.snapshots.SetIf(gen, txs) {
			s.logger.DebugContext(ctx, "Snapshot invalidated during load, not caching",
				log.FieldGeneration, gen)
		}
		s.logger.InfoContext(ctx, "Transaction snapshot loaded",
			log.FieldCount, len(txs),
			log.FieldGeneration, gen,
			log.FieldDuration, time.Since(start).Milliseconds(),
			"expires_at", s.expiresAt())
		return txs, nil
	})
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}
	if shared {
		s.logger.DebugContext(ctx, "Shared in-flight snapshot load", log.FieldGeneration, gen)
	}
	return v.([]core.Transaction), nil
}

// expiresAt renders the snapshot expiry for logs.
func (s *StatsService) expiresAt() string {
	exp, ok := s.snapshots.Expiration()
	switch {
	case !ok:
		return "not cached"
	case exp.IsZero():
		return "never"
	default:
		return exp.Format(time.RFC3339)
	}
}

// Invalidate drops the snapshot so the next call reloads it.
func (s *StatsService) Invalidate(reason string) {
	gen := s.snapshots.Invalidate()
	s.logger.Info("Snapshot invalidated", log.FieldReason, reason, log.FieldGeneration, gen)
}

// HandleChange is the consumer callback for change notifications.
func (s *StatsService) HandleChange(ctx context.Context, msg *amqp.TransactionsChangedMessage) error {
	if msg == nil {
		return errors.New("nil change message")
	}
	s.Invalidate("change from " + msg.Source)
	return nil
}

// Import saves txs through writer, drops the snapshot and announces the
// change. A failed publish is logged only, since the data is already saved.
func (s *StatsService) Import(ctx context.Context, writer source.TransactionWriter, txs []core.Transaction, publisher ChangePublisher) (int, error) {
	if writer == nil {
		return 0, ErrNoWriter
	}
	n, err := writer.SaveTransactions(ctx, txs)
	if err != nil {
		return 0, fmt.Errorf("save transactions: %w", err)
	}
	s.Invalidate("import")

	if publisher == nil {
		s.logger.DebugContext(ctx, "No change publisher configured, skipping notification")
		return n, nil
	}
	msg := amqp.NewTransactionsChangedMessage("import", n)
	if err := publisher.PublishTransactionsChanged(ctx, msg); err != nil {
		s.logger.WithFields(log.NewFields().
			WithOperation(log.OpPublish).
			WithSource("import", n).
			WithError(err)).
			ErrorContext(ctx, "Failed to publish change notification")
	}
	return n, nil
}

// Catalog returns the catalog used for labels and colors.
func (s *StatsService) Catalog() *catalog.Catalog { return s.catalog }

// Location returns the location dates are read in.
func (s *StatsService) Location() *time.Location { return s.location }

// Now returns the current time in the service location.
func (s *StatsService) Now() time.Time { return s.now().In(s.location) }
