package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"neohand/internal/domain/entity"
	"neohand/internal/infrastructure/cache"
	"neohand/pkg/errors"
)

const sessionEntryKey = "current"

// ChatSessionUseCase mints and persists the anonymous visitor identity the
// chat widget runs under. Identities live in the fast cache tier only; they
// are throwaway and never need to survive a restart.
type ChatSessionUseCase struct {
	tier cache.Tier
	now  func() time.Time
}

func NewChatSessionUseCase(tier cache.Tier) *ChatSessionUseCase {
	return &ChatSessionUseCase{
		tier: tier,
		now:  time.Now,
	}
}

func sessionCollection(visitorID string) string {
	return "chat_session:" + visitorID
}

// GetOrCreate reuses the visitor's stored identity when it is still fresh,
// otherwise mints a new one. A reused identity comes back unchanged; only
// outbound messages refresh the activity timestamp.
func (uc *ChatSessionUseCase) GetOrCreate(ctx context.Context, visitorID string) (*entity.ChatSession, error) {
	if visitorID != "" {
		session, err := uc.load(ctx, visitorID)
		if err == nil && session != nil && !session.Expired(uc.now()) {
			return session, nil
		}
	}

	session := &entity.ChatSession{
		VisitorID:    newVisitorID(),
		RoomID:       fmt.Sprintf("room-%d", uc.now().UnixMilli()),
		LastActivity: uc.now(),
		IsActive:     true,
	}
	if err := uc.save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// UpdateActivity refreshes the identity's timestamp, called on every
// outbound message.
func (uc *ChatSessionUseCase) UpdateActivity(ctx context.Context, visitorID string) error {
	session, err := uc.load(ctx, visitorID)
	if err != nil {
		return err
	}
	if session == nil {
		return errors.NotFound("Chat session", nil)
	}

	session.LastActivity = uc.now()
	return uc.save(ctx, session)
}

// Clear removes the identity, used when a conversation is explicitly ended.
func (uc *ChatSessionUseCase) Clear(ctx context.Context, visitorID string) error {
	if err := uc.tier.Clear(ctx, sessionCollection(visitorID)); err != nil {
		return errors.Internal("Failed to clear chat session", err)
	}
	return nil
}

func (uc *ChatSessionUseCase) load(ctx context.Context, visitorID string) (*entity.ChatSession, error) {
	entries, err := uc.tier.Load(ctx, sessionCollection(visitorID))
	if err != nil {
		return nil, errors.Internal("Failed to load chat session", err)
	}

	for _, e := range entries {
		if e.Key != sessionEntryKey {
			continue
		}
		var session entity.ChatSession
		if err := json.Unmarshal(e.Value, &session); err != nil {
			return nil, errors.Internal("Failed to decode chat session", err)
		}
		return &session, nil
	}
	return nil, nil
}

func (uc *ChatSessionUseCase) save(ctx context.Context, session *entity.ChatSession) error {
	value, err := json.Marshal(session)
	if err != nil {
		return errors.Internal("Failed to encode chat session", err)
	}

	entries := []cache.Entry{{Key: sessionEntryKey, Value: value}}
	if err := uc.tier.Save(ctx, sessionCollection(session.VisitorID), entries); err != nil {
		return errors.Internal("Failed to save chat session", err)
	}
	return nil
}

func newVisitorID() string {
	return "user-" + strings.ReplaceAll(uuid.New().String(), "-", "")[:9]
}
