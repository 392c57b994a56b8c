package usecase

import (
	"context"
	"encoding/json"
	"time"

	"neohand/internal/domain/entity"
	"neohand/internal/domain/repository"
	"neohand/internal/infrastructure/cache"
	"neohand/internal/infrastructure/realtime"
	"neohand/pkg/errors"
	"neohand/pkg/logger"
)

const supporterSessionEntryKey = "current"

func supporterSessionCollection(clientID string) string {
	return "supporter_session:" + clientID
}

// SupporterUseCase manages the roster and the locally cached supporter login
// session. Sessions are keyed per client, expire after eight hours of
// inactivity, and survive restarts via the durable cache tier.
type SupporterUseCase struct {
	supporterRepo repository.SupporterRepository
	store         *cache.DualCache
	now           func() time.Time
}

func NewSupporterUseCase(supporterRepo repository.SupporterRepository, store *cache.DualCache) *SupporterUseCase {
	return &SupporterUseCase{
		supporterRepo: supporterRepo,
		store:         store,
		now:           time.Now,
	}
}

// Roster lists every supporter with their current status.
func (uc *SupporterUseCase) Roster(ctx context.Context) ([]*entity.Supporter, error) {
	return uc.supporterRepo.List(ctx)
}

// Login selects a supporter identity for this client, marks them online and
// caches the session locally.
func (uc *SupporterUseCase) Login(ctx context.Context, clientID, supporterID string) (*entity.SupporterSession, error) {
	supporter, err := uc.supporterRepo.GetByID(ctx, supporterID)
	if err != nil {
		return nil, err
	}

	if err := uc.supporterRepo.UpdateStatus(ctx, supporter.ID, entity.SupporterStatusOnline); err != nil {
		return nil, err
	}
	supporter.Status = entity.SupporterStatusOnline

	session := &entity.SupporterSession{
		Supporter:    *supporter,
		LoginTime:    uc.now(),
		LastActivity: uc.now(),
		IsActive:     true,
	}
	if err := uc.save(ctx, clientID, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Current returns the client's live session, or nil when none exists, the
// session was logged out, or its TTL has lapsed.
func (uc *SupporterUseCase) Current(ctx context.Context, clientID string) (*entity.SupporterSession, error) {
	session, err := uc.load(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if session == nil || !session.IsActive || session.Expired(uc.now()) {
		return nil, nil
	}
	return session, nil
}

// Touch refreshes the session's activity timestamp.
func (uc *SupporterUseCase) Touch(ctx context.Context, clientID string) error {
	session, err := uc.load(ctx, clientID)
	if err != nil {
		return err
	}
	if session == nil {
		return errors.NotFound("Supporter session", nil)
	}
	session.LastActivity = uc.now()
	return uc.save(ctx, clientID, session)
}

// Logout marks the session inactive and sets the supporter away. The session
// row is kept so the login screen can preselect the last identity.
func (uc *SupporterUseCase) Logout(ctx context.Context, clientID string) error {
	session, err := uc.load(ctx, clientID)
	if err != nil {
		return err
	}
	if session == nil {
		return nil
	}

	session.IsActive = false
	if err := uc.save(ctx, clientID, session); err != nil {
		return err
	}

	if err := uc.supporterRepo.UpdateStatus(ctx, session.Supporter.ID, entity.SupporterStatusAway); err != nil {
		logger.Error("failed to set supporter %s away on logout: %v", session.Supporter.ID, err)
	}
	return nil
}

func (uc *SupporterUseCase) load(ctx context.Context, clientID string) (*entity.SupporterSession, error) {
	entries := uc.store.Load(ctx, supporterSessionCollection(clientID))
	for _, e := range entries {
		if e.Key != supporterSessionEntryKey {
			continue
		}
		var session entity.SupporterSession
		if err := json.Unmarshal(e.Value, &session); err != nil {
			return nil, errors.Internal("Failed to decode supporter session", err)
		}
		return &session, nil
	}
	return nil, nil
}

func (uc *SupporterUseCase) save(ctx context.Context, clientID string, session *entity.SupporterSession) error {
	value, err := json.Marshal(session)
	if err != nil {
		return errors.Internal("Failed to encode supporter session", err)
	}
	entries := []cache.Entry{{Key: supporterSessionEntryKey, Value: value}}
	if err := uc.store.Save(ctx, supporterSessionCollection(clientID), entries); err != nil {
		return errors.Internal("Failed to save supporter session", err)
	}
	return nil
}

// PublishingSupporterRepository decorates a SupporterRepository so status
// writes also land on the roster feed. The heartbeat loop writes through this
// decorator, which keeps widget rosters current without a second poll path.
type PublishingSupporterRepository struct {
	repository.SupporterRepository
	hub *realtime.Hub
}

func NewPublishingSupporterRepository(inner repository.SupporterRepository, hub *realtime.Hub) *PublishingSupporterRepository {
	return &PublishingSupporterRepository{SupporterRepository: inner, hub: hub}
}

func (r *PublishingSupporterRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	if err := r.SupporterRepository.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	r.hub.Publish(realtime.Event{
		Kind:  realtime.EventSupporterChange,
		Topic: realtime.SupporterTopic,
		Payload: map[string]string{
			"id":     id,
			"status": status,
		},
	})
	return nil
}
