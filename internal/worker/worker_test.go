package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"labbot/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingMirror struct {
	mu       sync.Mutex
	failures int
	calls    int
	last     []models.Booking
}

func (m *recordingMirror) ReplaceBookings(ctx context.Context, bookings []models.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.calls <= m.failures {
		return errors.New("mirror unavailable")
	}
	m.last = bookings
	return nil
}

func (m *recordingMirror) snapshot() (int, []models.Booking) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls, m.last
}

func TestRetryPolicyNextDelay(t *testing.T) {
	policy := RetryPolicy{
		MaxRetries:    5,
		InitialDelay:  time.Second,
		MaxDelay:      10 * time.Second,
		BackoffFactor: 2,
	}

	assert.Equal(t, time.Second, policy.NextDelay(1))
	assert.Equal(t, 2*time.Second, policy.NextDelay(2))
	assert.Equal(t, 4*time.Second, policy.NextDelay(3))
	assert.Equal(t, 10*time.Second, policy.NextDelay(10))
	assert.Equal(t, time.Second, policy.NextDelay(0))
}

func TestRetryPolicyDefaults(t *testing.T) {
	var policy RetryPolicy
	assert.Equal(t, time.Second, policy.NextDelay(1))
	assert.Equal(t, 2*time.Second, policy.NextDelay(2))
}

func TestMirrorWorkerDeliversSnapshot(t *testing.T) {
	mirror := &recordingMirror{}
	w := NewMirrorWorker(mirror, RetryPolicy{InitialDelay: time.Millisecond}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	w.Enqueue([]models.Booking{{ID: "LAB111111", CustomerName: "Alice"}})

	require.Eventually(t, func() bool {
		calls, last := mirror.snapshot()
		return calls == 1 && len(last) == 1 && last[0].ID == "LAB111111"
	}, 2*time.Second, 10*time.Millisecond)
}

func TestMirrorWorkerRetriesOnFailure(t *testing.T) {
	mirror := &recordingMirror{failures: 2}
	w := NewMirrorWorker(mirror, RetryPolicy{
		MaxRetries:    5,
		InitialDelay:  time.Millisecond,
		MaxDelay:      5 * time.Millisecond,
		BackoffFactor: 2,
	}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	w.Enqueue([]models.Booking{{ID: "LAB222222"}})

	require.Eventually(t, func() bool {
		calls, last := mirror.snapshot()
		return calls == 3 && len(last) == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestMirrorWorkerGivesUpAfterMaxRetries(t *testing.T) {
	mirror := &recordingMirror{failures: 100}
	w := NewMirrorWorker(mirror, RetryPolicy{
		MaxRetries:    3,
		InitialDelay:  time.Millisecond,
		MaxDelay:      5 * time.Millisecond,
		BackoffFactor: 2,
	}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	w.Enqueue([]models.Booking{{ID: "LAB333333"}})

	require.Eventually(t, func() bool {
		calls, _ := mirror.snapshot()
		return calls == 3
	}, 2*time.Second, 10*time.Millisecond)

	// No further attempts after giving up.
	time.Sleep(50 * time.Millisecond)
	calls, _ := mirror.snapshot()
	assert.Equal(t, 3, calls)
}

func TestMirrorWorkerEnqueueCopiesSnapshot(t *testing.T) {
	mirror := &recordingMirror{}
	w := NewMirrorWorker(mirror, RetryPolicy{InitialDelay: time.Millisecond}, nil)

	bookings := []models.Booking{{ID: "LAB444444", Status: models.StatusConfirmed}}
	w.Enqueue(bookings)
	bookings[0].Status = models.StatusCancelled

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	require.Eventually(t, func() bool {
		calls, last := mirror.snapshot()
		return calls == 1 && len(last) == 1 && last[0].Status == models.StatusConfirmed
	}, 2*time.Second, 10*time.Millisecond)
}
