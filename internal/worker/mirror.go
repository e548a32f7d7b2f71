package worker

import (
	"context"
	"time"

	"labbot/internal/models"

	"github.com/rs/zerolog"
)

// MirrorClient applies a full document snapshot to an external mirror.
type MirrorClient interface {
	ReplaceBookings(ctx context.Context, bookings []models.Booking) error
}

// MirrorWorker pushes saved document snapshots to a mirror in the background
// so a slow or flaky Sheets API never delays a chat reply. Snapshots are
// coalesced: only the newest one matters, because each carries the whole
// document.
type MirrorWorker struct {
	client      MirrorClient
	retryPolicy RetryPolicy
	queue       chan []models.Booking
	logger      *zerolog.Logger
}

func NewMirrorWorker(client MirrorClient, retry RetryPolicy, logger *zerolog.Logger) *MirrorWorker {
	if retry.MaxRetries == 0 {
		retry.MaxRetries = 5
	}
	if retry.InitialDelay == 0 {
		retry.InitialDelay = 2 * time.Second
	}
	if retry.MaxDelay == 0 {
		retry.MaxDelay = 1 * time.Minute
	}
	if retry.BackoffFactor == 0 {
		retry.BackoffFactor = 2
	}
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	return &MirrorWorker{
		client:      client,
		retryPolicy: retry,
		queue:       make(chan []models.Booking, models.WorkerQueueSize),
		logger:      logger,
	}
}

// Enqueue schedules a snapshot for mirroring. It never blocks the caller:
// when the queue is full the oldest snapshot is dropped, since the newer one
// supersedes it anyway.
func (w *MirrorWorker) Enqueue(bookings []models.Booking) {
	snapshot := make([]models.Booking, len(bookings))
	copy(snapshot, bookings)

	for {
		select {
		case w.queue <- snapshot:
			return
		default:
			select {
			case <-w.queue:
				w.logger.Debug().Msg("mirror queue full, dropping stale snapshot")
			default:
			}
		}
	}
}

// Start consumes snapshots until ctx is done.
func (w *MirrorWorker) Start(ctx context.Context) {
	w.logger.Info().Msg("Mirror worker started")
	defer w.logger.Info().Msg("Mirror worker stopped")

	for {
		select {
		case <-ctx.Done():
			return
		case snapshot := <-w.queue:
			// Skip straight to the newest queued snapshot.
			for {
				select {
				case newer := <-w.queue:
					snapshot = newer
					continue
				default:
				}
				break
			}
			w.mirrorWithRetry(ctx, snapshot)
		}
	}
}

func (w *MirrorWorker) mirrorWithRetry(ctx context.Context, snapshot []models.Booking) {
	for attempt := 1; attempt <= w.retryPolicy.MaxRetries; attempt++ {
		err := w.client.ReplaceBookings(ctx, snapshot)
		if err == nil {
			w.logger.Debug().Int("bookings", len(snapshot)).Msg("Mirror updated")
			return
		}

		if attempt == w.retryPolicy.MaxRetries {
			w.logger.Error().Err(err).Int("attempts", attempt).Msg("Mirror update failed, giving up")
			return
		}

		delay := w.retryPolicy.NextDelay(attempt)
		w.logger.Warn().Err(err).Int("attempt", attempt).Dur("retry_in", delay).Msg("Mirror update failed, retrying")

		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}
	}
}
