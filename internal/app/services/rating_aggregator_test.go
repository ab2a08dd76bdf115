package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAggregatorStores records rating updates and can fail a number of
// aggregation attempts.
type fakeAggregatorStores struct {
	mu           sync.Mutex
	average      float64
	count        int
	failuresLeft int
	updates      map[uuid.UUID][2]float64
	ids          []uuid.UUID
}

func newFakeAggregatorStores(average float64, count int) *fakeAggregatorStores {
	return &fakeAggregatorStores{
		average: average,
		count:   count,
		updates: map[uuid.UUID][2]float64{},
	}
}

func (f *fakeAggregatorStores) AggregateRatings(context.Context, uuid.UUID) (float64, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failuresLeft > 0 {
		f.failuresLeft--
		return 0, 0, errors.New("connection reset")
	}
	return f.average, f.count, nil
}

func (f *fakeAggregatorStores) UpdateRating(_ context.Context, id uuid.UUID, average float64, count int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates[id] = [2]float64{average, float64(count)}
	return nil
}

func (f *fakeAggregatorStores) ListIDs(context.Context) ([]uuid.UUID, error) {
	return f.ids, nil
}

func (f *fakeAggregatorStores) updateFor(id uuid.UUID) ([2]float64, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	update, ok := f.updates[id]
	return update, ok
}

func TestRecomputeWritesAggregate(t *testing.T) {
	stores := newFakeAggregatorStores(4.33, 3)
	agg, err := NewRatingAggregator(stores, stores, 4, "", zerolog.Nop())
	require.NoError(t, err)

	courseID := uuid.New()
	require.NoError(t, agg.Recompute(context.Background(), courseID))

	update, ok := stores.updateFor(courseID)
	require.True(t, ok)
	assert.Equal(t, 4.33, update[0])
	assert.Equal(t, float64(3), update[1])
}

func TestEnqueueDrainsThroughWorker(t *testing.T) {
	stores := newFakeAggregatorStores(5, 1)
	agg, err := NewRatingAggregator(stores, stores, 4, "", zerolog.Nop())
	require.NoError(t, err)
	agg.Start()

	courseID := uuid.New()
	agg.Enqueue(courseID)
	agg.Stop()

	_, ok := stores.updateFor(courseID)
	assert.True(t, ok, "queued recompute should run before Stop returns")
}

func TestWorkerRetriesOnce(t *testing.T) {
	stores := newFakeAggregatorStores(3, 2)
	stores.failuresLeft = 1
	agg, err := NewRatingAggregator(stores, stores, 4, "", zerolog.Nop())
	require.NoError(t, err)
	agg.Start()

	courseID := uuid.New()
	agg.Enqueue(courseID)
	agg.Stop()

	update, ok := stores.updateFor(courseID)
	require.True(t, ok, "the retry should succeed after one failure")
	assert.Equal(t, float64(3), update[0])
}

func TestEnqueueNeverBlocksWhenQueueFull(t *testing.T) {
	stores := newFakeAggregatorStores(5, 1)
	agg, err := NewRatingAggregator(stores, stores, 1, "", zerolog.Nop())
	require.NoError(t, err)
	// Worker not started, so the queue cannot drain.

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			agg.Enqueue(uuid.New())
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Enqueue blocked on a full queue")
	}
}

func TestEnqueueAfterStopDoesNotPanic(t *testing.T) {
	stores := newFakeAggregatorStores(5, 1)
	agg, err := NewRatingAggregator(stores, stores, 4, "", zerolog.Nop())
	require.NoError(t, err)
	agg.Start()
	agg.Stop()

	assert.NotPanics(t, func() { agg.Enqueue(uuid.New()) })
}

func TestSweepRecomputesEveryCourse(t *testing.T) {
	stores := newFakeAggregatorStores(4, 2)
	stores.ids = []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	agg, err := NewRatingAggregator(stores, stores, 4, "", zerolog.Nop())
	require.NoError(t, err)

	agg.sweep()

	for _, id := range stores.ids {
		_, ok := stores.updateFor(id)
		assert.True(t, ok)
	}
}

func TestNewRatingAggregatorRejectsBadSchedule(t *testing.T) {
	stores := newFakeAggregatorStores(0, 0)
	_, err := NewRatingAggregator(stores, stores, 4, "not a schedule", zerolog.Nop())
	assert.Error(t, err)
}
