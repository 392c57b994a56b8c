package presence

import (
	"sync"
	"time"
)

// Input event kinds that count as supporter activity.
const (
	InputPointerDown = "pointerdown"
	InputPointerMove = "pointermove"
	InputKeyPress    = "keypress"
	InputScroll      = "scroll"
	InputTouchStart  = "touchstart"
	InputClick       = "click"
)

// ActivityTracker records when a supporter was last seen doing something.
// The heartbeat owns its tracker and disposes of it deterministically; there
// is no ambient global listener registration.
type ActivityTracker interface {
	Touch()
	LastActivity() time.Time
}

// InputTracker is an ActivityTracker fed by UI input events. Only the fixed
// set of input kinds above counts; anything else is ignored.
type InputTracker struct {
	mu   sync.Mutex
	last time.Time

	now func() time.Time
}

func NewInputTracker() *InputTracker {
	return newInputTracker(time.Now)
}

func newInputTracker(now func() time.Time) *InputTracker {
	return &InputTracker{
		last: now(),
		now:  now,
	}
}

// Observe records an input event of the given kind.
func (t *InputTracker) Observe(kind string) {
	switch kind {
	case InputPointerDown, InputPointerMove, InputKeyPress,
		InputScroll, InputTouchStart, InputClick:
		t.Touch()
	}
}

func (t *InputTracker) Touch() {
	t.mu.Lock()
	t.last = t.now()
	t.mu.Unlock()
}

func (t *InputTracker) LastActivity() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.last
}
