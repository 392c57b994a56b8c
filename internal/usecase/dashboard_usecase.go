package usecase

import (
	"context"
	"sort"
	"sync"

	"neohand/internal/domain/entity"
	"neohand/internal/domain/repository"
	"neohand/internal/infrastructure/realtime"
	"neohand/pkg/errors"
	"neohand/pkg/logger"
)

// DashboardEntry is one row in the supporter dashboard's session list.
type DashboardEntry struct {
	Session *entity.ChatRoomSession `json:"session"`
	Unread  bool                    `json:"unread"`
}

// DashboardUseCase drives the supporter dashboard: it bootstraps session rows
// for rooms that have messages but no session yet, tracks unread rooms from
// the live message feed, and applies supporter edits to session rows.
type DashboardUseCase struct {
	messageRepo repository.MessageRepository
	sessionRepo repository.ChatRoomSessionRepository
	hub         *realtime.Hub

	mu     sync.Mutex
	unread map[string]struct{}
	sub    *realtime.Subscription
	done   chan struct{}
}

func NewDashboardUseCase(
	messageRepo repository.MessageRepository,
	sessionRepo repository.ChatRoomSessionRepository,
	hub *realtime.Hub,
) *DashboardUseCase {
	return &DashboardUseCase{
		messageRepo: messageRepo,
		sessionRepo: sessionRepo,
		hub:         hub,
		unread:      make(map[string]struct{}),
	}
}

// Start begins watching the global message feed; visitor messages flag their
// room unread until a supporter opens it.
func (uc *DashboardUseCase) Start() {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.sub != nil {
		return
	}
	uc.sub = uc.hub.Subscribe(realtime.AllMessagesTopic, 64)
	uc.done = make(chan struct{})
	go uc.follow(uc.sub, uc.done)
}

func (uc *DashboardUseCase) Stop() {
	uc.mu.Lock()
	sub, done := uc.sub, uc.done
	uc.sub, uc.done = nil, nil
	uc.mu.Unlock()
	if sub != nil {
		sub.Close()
		<-done
	}
}

func (uc *DashboardUseCase) follow(sub *realtime.Subscription, done chan struct{}) {
	defer close(done)
	for event := range sub.C {
		message, ok := event.Payload.(*entity.Message)
		if !ok || message.SenderType != entity.SenderTypeUser {
			continue
		}
		uc.mu.Lock()
		uc.unread[message.RoomID] = struct{}{}
		uc.mu.Unlock()
	}
}

// ListSessions returns every conversation room, unread rooms first and more
// recently active rooms before older ones within each group. Rooms that have
// messages but no session row yet get one created with status "active".
func (uc *DashboardUseCase) ListSessions(ctx context.Context) ([]*DashboardEntry, error) {
	roomIDs, err := uc.messageRepo.DistinctRoomIDs(ctx)
	if err != nil {
		return nil, err
	}
	if len(roomIDs) == 0 {
		return []*DashboardEntry{}, nil
	}

	sessions, err := uc.sessionRepo.ListByRoomIDs(ctx, roomIDs)
	if err != nil {
		return nil, err
	}

	byRoom := make(map[string]*entity.ChatRoomSession, len(sessions))
	for _, s := range sessions {
		byRoom[s.RoomID] = s
	}

	var missing []*entity.ChatRoomSession
	for _, roomID := range roomIDs {
		if _, ok := byRoom[roomID]; ok {
			continue
		}
		s := &entity.ChatRoomSession{
			RoomID: roomID,
			Status: entity.RoomStatusActive,
		}
		missing = append(missing, s)
		byRoom[roomID] = s
	}
	if len(missing) > 0 {
		// Two dashboards listing at once can race here and both insert; the
		// duplicate row is harmless and the next list picks one.
		if err := uc.sessionRepo.CreateBatch(ctx, missing); err != nil {
			logger.Error("dashboard session bootstrap failed: %v", err)
		}
	}

	uc.mu.Lock()
	unread := make(map[string]struct{}, len(uc.unread))
	for roomID := range uc.unread {
		unread[roomID] = struct{}{}
	}
	uc.mu.Unlock()

	// roomIDs arrives newest-activity-first, so recency order is its index.
	recency := make(map[string]int, len(roomIDs))
	for i, roomID := range roomIDs {
		recency[roomID] = i
	}

	entries := make([]*DashboardEntry, 0, len(roomIDs))
	for _, roomID := range roomIDs {
		_, isUnread := unread[roomID]
		entries = append(entries, &DashboardEntry{
			Session: byRoom[roomID],
			Unread:  isUnread,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Unread != entries[j].Unread {
			return entries[i].Unread
		}
		return recency[entries[i].Session.RoomID] < recency[entries[j].Session.RoomID]
	})
	return entries, nil
}

// MarkRead clears the unread flag for a room, called when a supporter opens
// its conversation.
func (uc *DashboardUseCase) MarkRead(roomID string) {
	uc.mu.Lock()
	delete(uc.unread, roomID)
	uc.mu.Unlock()
}

func (uc *DashboardUseCase) UpdateStatus(ctx context.Context, sessionID, status string) error {
	if !entity.ValidRoomStatus(status) {
		return errors.BadRequest("invalid session status: "+status, nil)
	}
	return uc.sessionRepo.UpdateStatus(ctx, sessionID, status)
}

func (uc *DashboardUseCase) UpdateNotes(ctx context.Context, sessionID, notes string) error {
	return uc.sessionRepo.UpdateNotes(ctx, sessionID, notes)
}

func (uc *DashboardUseCase) AssignSupporter(ctx context.Context, sessionID, supporterID string) error {
	return uc.sessionRepo.AssignSupporter(ctx, sessionID, supporterID)
}

func (uc *DashboardUseCase) GetSession(ctx context.Context, roomID string) (*entity.ChatRoomSession, error) {
	return uc.sessionRepo.GetByRoomID(ctx, roomID)
}
