package presence

import (
	"context"
	"sync"
	"time"

	"neohand/internal/domain/entity"
	"neohand/internal/domain/repository"
	"neohand/pkg/errors"
	"neohand/pkg/logger"
)

const (
	// DefaultInterval is how often the heartbeat evaluates activity.
	DefaultInterval = 30 * time.Second
	// DefaultAwayThreshold is how long without input before a supporter is
	// reported away.
	DefaultAwayThreshold = 5 * time.Minute
)

// Heartbeat periodically reports a supporter's status derived from observed
// input activity. Status writes are fire-and-forget: failures are logged and
// never retried, so a flaky store only degrades presence accuracy.
type Heartbeat struct {
	supporterID string
	supporters  repository.SupporterRepository
	tracker     ActivityTracker

	interval      time.Duration
	awayThreshold time.Duration
	now           func() time.Time

	mu      sync.Mutex
	stop    chan struct{}
	stopped sync.WaitGroup
}

func NewHeartbeat(supporterID string, supporters repository.SupporterRepository, tracker ActivityTracker) *Heartbeat {
	return &Heartbeat{
		supporterID:   supporterID,
		supporters:    supporters,
		tracker:       tracker,
		interval:      DefaultInterval,
		awayThreshold: DefaultAwayThreshold,
		now:           time.Now,
	}
}

// WithTiming overrides the tick interval and away threshold.
func (h *Heartbeat) WithTiming(interval, awayThreshold time.Duration) *Heartbeat {
	h.interval = interval
	h.awayThreshold = awayThreshold
	return h
}

// Start launches the heartbeat loop. Calling Start on a running heartbeat is
// a no-op.
func (h *Heartbeat) Start(ctx context.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.stop != nil {
		return
	}
	h.stop = make(chan struct{})
	h.stopped.Add(1)

	go h.run(ctx, h.stop)
}

func (h *Heartbeat) run(ctx context.Context, stop chan struct{}) {
	defer h.stopped.Done()

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			h.Tick(ctx)
		case <-stop:
			return
		case <-ctx.Done():
			return
		}
	}
}

// Tick evaluates elapsed time since the last observed input and reports the
// resulting status.
func (h *Heartbeat) Tick(ctx context.Context) {
	status := entity.SupporterStatusOnline
	if h.now().Sub(h.tracker.LastActivity()) > h.awayThreshold {
		status = entity.SupporterStatusAway
	}
	h.report(ctx, status)
}

// SetStatus bypasses the automatic classification for one write.
func (h *Heartbeat) SetStatus(ctx context.Context, status string) error {
	if !entity.ValidSupporterStatus(status) {
		return errors.BadRequest("invalid supporter status: "+status, nil)
	}
	return h.supporters.UpdateStatus(ctx, h.supporterID, status)
}

// Stop tears the heartbeat down and issues a final away write, so a supporter
// who closes the dashboard does not stay online.
func (h *Heartbeat) Stop(ctx context.Context) {
	h.mu.Lock()
	stop := h.stop
	h.stop = nil
	h.mu.Unlock()

	if stop == nil {
		return
	}
	close(stop)
	h.stopped.Wait()

	h.report(ctx, entity.SupporterStatusAway)
}

func (h *Heartbeat) report(ctx context.Context, status string) {
	if err := h.supporters.UpdateStatus(ctx, h.supporterID, status); err != nil {
		logger.Error("presence update failed for supporter %s: %v", h.supporterID, err)
	}
}
