package presence

import (
	"context"
	"sync"
	"time"

	"neohand/internal/domain/repository"
	"neohand/pkg/errors"
)

// Registry owns one heartbeat per logged-in dashboard client. A client that
// logs in again replaces its previous heartbeat, and logout stops it.
type Registry struct {
	supporters    repository.SupporterRepository
	interval      time.Duration
	awayThreshold time.Duration

	mu     sync.Mutex
	active map[string]*registration // keyed by client id
}

type registration struct {
	heartbeat *Heartbeat
	tracker   *InputTracker
}

func NewRegistry(supporters repository.SupporterRepository, interval, awayThreshold time.Duration) *Registry {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if awayThreshold <= 0 {
		awayThreshold = DefaultAwayThreshold
	}
	return &Registry{
		supporters:    supporters,
		interval:      interval,
		awayThreshold: awayThreshold,
		active:        make(map[string]*registration),
	}
}

// Start begins presence tracking for the client's supporter identity.
func (r *Registry) Start(ctx context.Context, clientID, supporterID string) {
	tracker := NewInputTracker()
	heartbeat := NewHeartbeat(supporterID, r.supporters, tracker).
		WithTiming(r.interval, r.awayThreshold)

	r.mu.Lock()
	previous := r.active[clientID]
	r.active[clientID] = &registration{heartbeat: heartbeat, tracker: tracker}
	r.mu.Unlock()

	if previous != nil {
		previous.heartbeat.Stop(ctx)
	}
	heartbeat.Start(ctx)
}

// Observe feeds one input event into the client's activity tracker. Events
// for clients without a running heartbeat are dropped.
func (r *Registry) Observe(clientID, kind string) {
	r.mu.Lock()
	reg := r.active[clientID]
	r.mu.Unlock()
	if reg != nil {
		reg.tracker.Observe(kind)
	}
}

// SetStatus applies a manual status override for the client's supporter.
func (r *Registry) SetStatus(ctx context.Context, clientID, status string) error {
	r.mu.Lock()
	reg := r.active[clientID]
	r.mu.Unlock()
	if reg == nil {
		return errors.NotFound("Presence session", nil)
	}
	return reg.heartbeat.SetStatus(ctx, status)
}

// Stop ends tracking for the client; the final away write comes from the
// heartbeat itself.
func (r *Registry) Stop(ctx context.Context, clientID string) {
	r.mu.Lock()
	reg := r.active[clientID]
	delete(r.active, clientID)
	r.mu.Unlock()
	if reg != nil {
		reg.heartbeat.Stop(ctx)
	}
}

// StopAll tears every heartbeat down, used on shutdown.
func (r *Registry) StopAll(ctx context.Context) {
	r.mu.Lock()
	regs := make([]*registration, 0, len(r.active))
	for _, reg := range r.active {
		regs = append(regs, reg)
	}
	r.active = make(map[string]*registration)
	r.mu.Unlock()

	for _, reg := range regs {
		reg.heartbeat.Stop(ctx)
	}
}
