package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"statistik/internal/amqp"
	"statistik/internal/catalog"
	"statistik/internal/core"
	"statistik/internal/period"
	"statistik/internal/source/memory"
)

// countingLister wraps a slice and counts loads. When gate is set, each load
// signals started and then waits for gate to close.
type countingLister struct {
	txs     []core.Transaction
	err     error
	calls   atomic.Int32
	started chan struct{}
	gate    chan struct{}
}

func (l *countingLister) ListTransactions(_ context.Context) ([]core.Transaction, error) {
	l.calls.Add(1)
	if l.started != nil {
		select {
		case l.started <- struct{}{}:
		default:
		}
	}
	if l.gate != nil {
		<-l.gate
	}
	if l.err != nil {
		return nil, l.err
	}
	return l.txs, nil
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishTransactionsChanged(ctx context.Context, msg *amqp.TransactionsChangedMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

type failingWriter struct{}

func (failingWriter) SaveTransactions(context.Context, []core.Transaction) (int, error) {
	return 0, errors.New("disk full")
}

func marchData() []core.Transaction {
	return []core.Transaction{
		{Amount: decimal.NewFromInt(100), Type: core.Expense, CategoryID: "1", TransactionDate: "2024-03-05"},
		{Amount: decimal.NewFromInt(50), Type: core.Expense, CategoryID: "2", TransactionDate: "2024-03-20"},
		{Amount: decimal.NewFromInt(1000), Type: core.Income, TransactionDate: "2024-03-01"},
	}
}

func TestStatsService_Stats(t *testing.T) {
	lister := &countingLister{txs: marchData()}
	svc := NewStatsService(lister, Options{})

	res, err := svc.Stats(context.Background(), period.New(2024, time.March))
	require.NoError(t, err)
	assert.True(t, res.ExpenseTotal.Equal(decimal.NewFromInt(150)))
	assert.True(t, res.IncomeTotal.Equal(decimal.NewFromInt(1000)))
	require.NotNil(t, res.Top)
	assert.Equal(t, "1", res.Top.CategoryID)
	assert.Equal(t, "Makanan & Minuman", res.Top.Label)

	_, err = svc.Stats(context.Background(), period.New(2024, time.April))
	require.NoError(t, err)
	assert.Equal(t, int32(1), lister.calls.Load(), "second call served from snapshot")
}

func TestStatsService_UsesCatalog(t *testing.T) {
	cat, err := catalog.New([]catalog.Entry{{ID: "1", Label: "Makanan"}}, "Lainnya", nil)
	require.NoError(t, err)

	svc := NewStatsService(&countingLister{txs: marchData()}, Options{Catalog: cat})
	res, err := svc.Stats(context.Background(), period.New(2024, time.March))
	require.NoError(t, err)
	require.Len(t, res.Categories, 2)
	assert.Equal(t, "Makanan", res.Categories[0].Label)
	assert.Equal(t, "Lainnya", res.Categories[1].Label)
	assert.Same(t, cat, svc.Catalog())
}

func TestStatsService_InvalidateReloads(t *testing.T) {
	lister := &countingLister{txs: marchData()}
	svc := NewStatsService(lister, Options{})

	_, err := svc.Transactions(context.Background())
	require.NoError(t, err)
	svc.Invalidate("test")
	_, err = svc.Transactions(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int32(2), lister.calls.Load())
}

func TestStatsService_SnapshotTTL(t *testing.T) {
	tests := []struct {
		name  string
		ttl   time.Duration
		never bool
	}{
		{name: "zero keeps the snapshot until invalidated", ttl: 0, never: true},
		{name: "positive ttl expires", ttl: time.Minute},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewStatsService(&countingLister{txs: marchData()}, Options{SnapshotTTL: tt.ttl})

			_, err := svc.Transactions(context.Background())
			require.NoError(t, err)

			exp, ok := svc.snapshots.Expiration()
			require.True(t, ok)
			if tt.never {
				assert.True(t, exp.IsZero(), "expected no expiry, got %v", exp)
				return
			}
			assert.WithinDuration(t, time.Now().Add(tt.ttl), exp, 10*time.Second)
		})
	}
}

func TestStatsService_LoadError(t *testing.T) {
	boom := errors.New("upstream down")
	svc := NewStatsService(&countingLister{err: boom}, Options{})

	_, err := svc.Stats(context.Background(), period.New(2024, time.March))
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "load transactions")
}

func TestStatsService_ConcurrentLoadsCoalesce(t *testing.T) {
	lister := &countingLister{
		txs:     marchData(),
		started: make(chan struct{}, 1),
		gate:    make(chan struct{}),
	}
	svc := NewStatsService(lister, Options{})

	const callers = 8
	var wg sync.WaitGroup
	errs := make(chan error, callers)
	for range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Stats(context.Background(), period.New(2024, time.March))
			errs <- err
		}()
	}

	<-lister.started
	time.Sleep(50 * time.Millisecond)
	close(lister.gate)
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), lister.calls.Load())
}

func TestStatsService_StaleLoadNotCached(t *testing.T) {
	lister := &countingLister{
		txs:     marchData(),
		started: make(chan struct{}, 1),
		gate:    make(chan struct{}),
	}
	svc := NewStatsService(lister, Options{})

	done := make(chan []core.Transaction)
	go func() {
		txs, err := svc.Transactions(context.Background())
		assert.NoError(t, err)
		done <- txs
	}()

	<-lister.started
	svc.Invalidate("write during load")
	close(lister.gate)

	txs := <-done
	assert.Len(t, txs, 3, "in-flight callers still get their data")

	_, err := svc.Transactions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), lister.calls.Load(), "stale load must not be cached")
}

func TestStatsService_HandleChange(t *testing.T) {
	lister := &countingLister{txs: marchData()}
	svc := NewStatsService(lister, Options{})

	_, err := svc.Transactions(context.Background())
	require.NoError(t, err)

	require.NoError(t, svc.HandleChange(context.Background(), amqp.NewTransactionsChangedMessage("api", 2)))
	_, err = svc.Transactions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), lister.calls.Load())

	assert.Error(t, svc.HandleChange(context.Background(), nil))
}

func TestStatsService_Import(t *testing.T) {
	ctx := context.Background()

	t.Run("saves, invalidates and publishes", func(t *testing.T) {
		store := memory.New()
		svc := NewStatsService(store, Options{})

		before, err := svc.Transactions(ctx)
		require.NoError(t, err)
		assert.Empty(t, before)

		pub := &mockPublisher{}
		pub.On("PublishTransactionsChanged", mock.Anything, mock.MatchedBy(func(m *amqp.TransactionsChangedMessage) bool {
			return m.Source == "import" && m.Count == 3
		})).Return(nil).Once()

		n, err := svc.Import(ctx, store, marchData(), pub)
		require.NoError(t, err)
		assert.Equal(t, 3, n)
		pub.AssertExpectations(t)

		after, err := svc.Transactions(ctx)
		require.NoError(t, err)
		assert.Len(t, after, 3)
	})

	t.Run("publish failure does not fail the import", func(t *testing.T) {
		store := memory.New()
		svc := NewStatsService(store, Options{})

		pub := &mockPublisher{}
		pub.On("PublishTransactionsChanged", mock.Anything, mock.Anything).Return(amqp.ErrCircuitOpen)

		n, err := svc.Import(ctx, store, marchData(), pub)
		require.NoError(t, err)
		assert.Equal(t, 3, n)
		pub.AssertNumberOfCalls(t, "PublishTransactionsChanged", 1)
	})

	t.Run("no publisher", func(t *testing.T) {
		store := memory.New()
		svc := NewStatsService(store, Options{})

		n, err := svc.Import(ctx, store, marchData(), nil)
		require.NoError(t, err)
		assert.Equal(t, 3, n)
	})

	t.Run("writer error", func(t *testing.T) {
		svc := NewStatsService(memory.New(), Options{})
		pub := &mockPublisher{}

		_, err := svc.Import(ctx, failingWriter{}, marchData(), pub)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "save transactions")
		pub.AssertNotCalled(t, "PublishTransactionsChanged", mock.Anything, mock.Anything)
	})

	t.Run("read-only source", func(t *testing.T) {
		svc := NewStatsService(memory.New(), Options{})

		_, err := svc.Import(ctx, nil, marchData(), nil)
		assert.ErrorIs(t, err, ErrNoWriter)
	})
}

func TestStatsService_Now(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*60*60)
	fixed := time.Date(2024, time.March, 31, 20, 0, 0, 0, time.UTC)

	svc := NewStatsService(memory.New(), Options{
		Location: jakarta,
		Now:      func() time.Time { return fixed },
	})

	now := svc.Now()
	assert.Equal(t, time.April, now.Month())
	assert.Equal(t, 1, now.Day())
	assert.Equal(t, jakarta, svc.Location())
}
