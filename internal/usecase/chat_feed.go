package usecase

import (
	"context"
	"sort"
	"sync"

	"neohand/internal/domain/entity"
	"neohand/internal/domain/repository"
	"neohand/internal/infrastructure/realtime"
	"neohand/pkg/logger"
)

// ChatFeed mirrors one room's message log and the supporter roster, kept
// current from the hub. Consumers call Snapshot for the merged state and
// Updates to be woken on changes.
type ChatFeed struct {
	messageRepo   repository.MessageRepository
	supporterRepo repository.SupporterRepository
	hub           *realtime.Hub

	mu        sync.RWMutex
	roomID    string
	messages  []*entity.Message
	seen      map[string]struct{}
	roster    []*entity.Supporter
	closed    bool
	updates   chan struct{}
	msgSub    *realtime.Subscription
	rosterSub *realtime.Subscription
	wg        sync.WaitGroup
}

func NewChatFeed(
	messageRepo repository.MessageRepository,
	supporterRepo repository.SupporterRepository,
	hub *realtime.Hub,
) *ChatFeed {
	return &ChatFeed{
		messageRepo:   messageRepo,
		supporterRepo: supporterRepo,
		hub:           hub,
		seen:          make(map[string]struct{}),
		updates:       make(chan struct{}, 1),
	}
}

// Open loads the room's existing log and roster, then starts following live
// inserts. Opening an already-open feed switches it to the new room.
func (f *ChatFeed) Open(ctx context.Context, roomID string) error {
	f.teardown()

	messages, _, err := f.messageRepo.ListByRoom(ctx, roomID, 0, 0)
	if err != nil {
		return err
	}
	roster, err := f.supporterRepo.List(ctx)
	if err != nil {
		return err
	}

	f.mu.Lock()
	f.roomID = roomID
	f.messages = messages
	f.seen = make(map[string]struct{}, len(messages))
	for _, m := range messages {
		f.seen[m.ID] = struct{}{}
	}
	f.roster = roster
	f.closed = false
	f.msgSub = f.hub.Subscribe(realtime.MessageTopic(roomID), 0)
	f.rosterSub = f.hub.Subscribe(realtime.SupporterTopic, 0)
	msgSub, rosterSub := f.msgSub, f.rosterSub
	f.mu.Unlock()

	f.wg.Add(2)
	go f.followMessages(msgSub)
	go f.followRoster(rosterSub)
	return nil
}

// SwitchRoom tears the current subscription down before resubscribing so no
// event from the old room leaks into the new log.
func (f *ChatFeed) SwitchRoom(ctx context.Context, roomID string) error {
	return f.Open(ctx, roomID)
}

// Snapshot returns the current log (oldest first) and roster.
func (f *ChatFeed) Snapshot() ([]*entity.Message, []*entity.Supporter) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	messages := make([]*entity.Message, len(f.messages))
	copy(messages, f.messages)
	roster := make([]*entity.Supporter, len(f.roster))
	copy(roster, f.roster)
	return messages, roster
}

// Updates signals (coalesced) whenever the snapshot changed.
func (f *ChatFeed) Updates() <-chan struct{} {
	return f.updates
}

// Close stops following. Events already in flight are ignored.
func (f *ChatFeed) Close() {
	f.teardown()
}

func (f *ChatFeed) teardown() {
	f.mu.Lock()
	f.closed = true
	msgSub, rosterSub := f.msgSub, f.rosterSub
	f.msgSub, f.rosterSub = nil, nil
	f.mu.Unlock()

	if msgSub != nil {
		msgSub.Close()
	}
	if rosterSub != nil {
		rosterSub.Close()
	}
	f.wg.Wait()
}

func (f *ChatFeed) followMessages(sub *realtime.Subscription) {
	defer f.wg.Done()
	for event := range sub.C {
		message, ok := event.Payload.(*entity.Message)
		if !ok {
			continue
		}
		f.merge(message)
	}
}

// merge appends by id; a message already in the log is skipped so replayed
// inserts never duplicate.
func (f *ChatFeed) merge(message *entity.Message) {
	f.mu.Lock()
	if f.closed || message.RoomID != f.roomID {
		f.mu.Unlock()
		return
	}
	if _, dup := f.seen[message.ID]; dup {
		f.mu.Unlock()
		return
	}
	f.seen[message.ID] = struct{}{}
	f.messages = append(f.messages, message)
	sort.SliceStable(f.messages, func(i, j int) bool {
		return f.messages[i].CreatedAt.Before(f.messages[j].CreatedAt)
	})
	f.mu.Unlock()
	f.notify()
}

// followRoster reloads the full supporter list on every change event rather
// than patching one row; the roster is small and a reload cannot drift.
func (f *ChatFeed) followRoster(sub *realtime.Subscription) {
	defer f.wg.Done()
	for range sub.C {
		roster, err := f.supporterRepo.List(context.Background())
		if err != nil {
			logger.Error("chat feed roster reload failed: %v", err)
			continue
		}
		f.mu.Lock()
		if f.closed {
			f.mu.Unlock()
			return
		}
		f.roster = roster
		f.mu.Unlock()
		f.notify()
	}
}

func (f *ChatFeed) notify() {
	select {
	case f.updates <- struct{}{}:
	default:
	}
}
