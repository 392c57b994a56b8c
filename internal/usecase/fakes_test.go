package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"neohand/internal/domain/entity"
	"neohand/pkg/errors"
)

const (
	eventuallyTimeout = 2 * time.Second
	eventuallyTick    = 10 * time.Millisecond
)

// fakeMessageRepository is an in-memory MessageRepository keeping insertion
// order per room.
type fakeMessageRepository struct {
	mu       sync.Mutex
	messages []*entity.Message
	nextID   int
}

func newFakeMessageRepository() *fakeMessageRepository {
	return &fakeMessageRepository{}
}

func (r *fakeMessageRepository) Create(ctx context.Context, message *entity.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	if message.ID == "" {
		message.ID = fmt.Sprintf("msg-%d", r.nextID)
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now().Add(time.Duration(r.nextID) * time.Millisecond)
	}
	r.messages = append(r.messages, message)
	return nil
}

func (r *fakeMessageRepository) ListByRoom(ctx context.Context, roomID string, limit, offset int) ([]*entity.Message, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Message
	for _, m := range r.messages {
		if m.RoomID == roomID {
			out = append(out, m)
		}
	}
	total := int64(len(out))
	if offset > 0 {
		if offset >= len(out) {
			return nil, total, nil
		}
		out = out[offset:]
	}
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, total, nil
}

func (r *fakeMessageRepository) DistinctRoomIDs(ctx context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := make(map[string]struct{})
	var ordered []string
	// Walk newest first so the returned order is most recently active first.
	for i := len(r.messages) - 1; i >= 0; i-- {
		roomID := r.messages[i].RoomID
		if _, ok := seen[roomID]; ok {
			continue
		}
		seen[roomID] = struct{}{}
		ordered = append(ordered, roomID)
	}
	return ordered, nil
}

type fakeSupporterRepository struct {
	mu         sync.Mutex
	supporters map[string]*entity.Supporter
	order      []string
}

func newFakeSupporterRepository(supporters ...*entity.Supporter) *fakeSupporterRepository {
	r := &fakeSupporterRepository{supporters: make(map[string]*entity.Supporter)}
	for _, s := range supporters {
		r.supporters[s.ID] = s
		r.order = append(r.order, s.ID)
	}
	return r
}

func (r *fakeSupporterRepository) GetByID(ctx context.Context, id string) (*entity.Supporter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.supporters[id]
	if !ok {
		return nil, errors.NotFound("Supporter", nil)
	}
	copied := *s
	return &copied, nil
}

func (r *fakeSupporterRepository) List(ctx context.Context) ([]*entity.Supporter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Supporter, 0, len(r.order))
	for _, id := range r.order {
		copied := *r.supporters[id]
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeSupporterRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.supporters[id]
	if !ok {
		return errors.NotFound("Supporter", nil)
	}
	s.Status = status
	return nil
}

type fakeChatRoomSessionRepository struct {
	mu       sync.Mutex
	sessions map[string]*entity.ChatRoomSession // keyed by room id
	nextID   int
}

func newFakeChatRoomSessionRepository() *fakeChatRoomSessionRepository {
	return &fakeChatRoomSessionRepository{sessions: make(map[string]*entity.ChatRoomSession)}
}

func (r *fakeChatRoomSessionRepository) GetByID(ctx context.Context, id string) (*entity.ChatRoomSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.sessions {
		if s.ID == id {
			copied := *s
			return &copied, nil
		}
	}
	return nil, errors.NotFound("Chat room session", nil)
}

func (r *fakeChatRoomSessionRepository) GetByRoomID(ctx context.Context, roomID string) (*entity.ChatRoomSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[roomID]
	if !ok {
		return nil, errors.NotFound("Chat room session", nil)
	}
	copied := *s
	return &copied, nil
}

func (r *fakeChatRoomSessionRepository) ListByRoomIDs(ctx context.Context, roomIDs []string) ([]*entity.ChatRoomSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.ChatRoomSession
	for _, roomID := range roomIDs {
		if s, ok := r.sessions[roomID]; ok {
			copied := *s
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeChatRoomSessionRepository) CreateBatch(ctx context.Context, sessions []*entity.ChatRoomSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range sessions {
		r.nextID++
		s.ID = fmt.Sprintf("session-%d", r.nextID)
		copied := *s
		r.sessions[s.RoomID] = &copied
	}
	return nil
}

func (r *fakeChatRoomSessionRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	return r.update(id, func(s *entity.ChatRoomSession) { s.Status = status })
}

func (r *fakeChatRoomSessionRepository) UpdateNotes(ctx context.Context, id string, notes string) error {
	return r.update(id, func(s *entity.ChatRoomSession) { s.Notes = notes })
}

func (r *fakeChatRoomSessionRepository) AssignSupporter(ctx context.Context, id string, supporterID string) error {
	return r.update(id, func(s *entity.ChatRoomSession) { s.AssignedSupporterID = supporterID })
}

func (r *fakeChatRoomSessionRepository) update(id string, apply func(*entity.ChatRoomSession)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.sessions {
		if s.ID == id {
			apply(s)
			return nil
		}
	}
	return errors.NotFound("Chat room session", nil)
}
