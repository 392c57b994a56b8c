package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neohand/internal/domain/entity"
	"neohand/internal/infrastructure/cache"
	"neohand/internal/infrastructure/realtime"
)

func newSupporterUseCase(repo *fakeSupporterRepository) *SupporterUseCase {
	store := cache.NewDualCache(cache.NewMemoryTier(), cache.NewMemoryTier())
	return NewSupporterUseCase(repo, store)
}

func TestSupporterLoginAndCurrent(t *testing.T) {
	repo := newFakeSupporterRepository(
		&entity.Supporter{ID: "sup-1", Name: "Anna", Status: entity.SupporterStatusAway},
	)
	uc := newSupporterUseCase(repo)
	ctx := context.Background()

	session, err := uc.Login(ctx, "client-1", "sup-1")
	require.NoError(t, err)
	assert.Equal(t, entity.SupporterStatusOnline, session.Supporter.Status)
	assert.True(t, session.IsActive)

	stored, err := repo.GetByID(ctx, "sup-1")
	require.NoError(t, err)
	assert.Equal(t, entity.SupporterStatusOnline, stored.Status)

	current, err := uc.Current(ctx, "client-1")
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, "sup-1", current.Supporter.ID)

	// Another client has no session.
	other, err := uc.Current(ctx, "client-2")
	require.NoError(t, err)
	assert.Nil(t, other)
}

func TestSupporterLoginUnknownID(t *testing.T) {
	uc := newSupporterUseCase(newFakeSupporterRepository())

	_, err := uc.Login(context.Background(), "client-1", "sup-missing")
	assert.Error(t, err)
}

func TestSupporterSessionExpiry(t *testing.T) {
	repo := newFakeSupporterRepository(
		&entity.Supporter{ID: "sup-1", Name: "Anna"},
	)
	uc := newSupporterUseCase(repo)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return base }

	_, err := uc.Login(ctx, "client-1", "sup-1")
	require.NoError(t, err)

	// Seven hours in the session is still valid.
	uc.now = func() time.Time { return base.Add(7 * time.Hour) }
	current, err := uc.Current(ctx, "client-1")
	require.NoError(t, err)
	assert.NotNil(t, current)

	// Past the eight hour TTL it is gone.
	uc.now = func() time.Time { return base.Add(9 * time.Hour) }
	current, err = uc.Current(ctx, "client-1")
	require.NoError(t, err)
	assert.Nil(t, current)
}

func TestSupporterTouchKeepsSessionAlive(t *testing.T) {
	repo := newFakeSupporterRepository(
		&entity.Supporter{ID: "sup-1", Name: "Anna"},
	)
	uc := newSupporterUseCase(repo)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return base }

	_, err := uc.Login(ctx, "client-1", "sup-1")
	require.NoError(t, err)

	uc.now = func() time.Time { return base.Add(6 * time.Hour) }
	require.NoError(t, uc.Touch(ctx, "client-1"))

	// Twelve hours from login but only six since the touch.
	uc.now = func() time.Time { return base.Add(12 * time.Hour) }
	current, err := uc.Current(ctx, "client-1")
	require.NoError(t, err)
	assert.NotNil(t, current)
}

func TestSupporterLogout(t *testing.T) {
	repo := newFakeSupporterRepository(
		&entity.Supporter{ID: "sup-1", Name: "Anna"},
	)
	uc := newSupporterUseCase(repo)
	ctx := context.Background()

	_, err := uc.Login(ctx, "client-1", "sup-1")
	require.NoError(t, err)
	require.NoError(t, uc.Logout(ctx, "client-1"))

	current, err := uc.Current(ctx, "client-1")
	require.NoError(t, err)
	assert.Nil(t, current)

	stored, err := repo.GetByID(ctx, "sup-1")
	require.NoError(t, err)
	assert.Equal(t, entity.SupporterStatusAway, stored.Status)

	// Logging out twice is harmless.
	assert.NoError(t, uc.Logout(ctx, "client-1"))
}

func TestPublishingRepositoryEmitsRosterEvent(t *testing.T) {
	repo := newFakeSupporterRepository(
		&entity.Supporter{ID: "sup-1", Name: "Anna"},
	)
	hub := realtime.NewHub()
	publishing := NewPublishingSupporterRepository(repo, hub)

	sub := hub.Subscribe(realtime.SupporterTopic, 1)
	defer sub.Close()

	require.NoError(t, publishing.UpdateStatus(context.Background(), "sup-1", entity.SupporterStatusBusy))

	select {
	case event := <-sub.C:
		assert.Equal(t, realtime.EventSupporterChange, event.Kind)
	case <-time.After(time.Second):
		t.Fatal("no roster event published")
	}

	stored, err := repo.GetByID(context.Background(), "sup-1")
	require.NoError(t, err)
	assert.Equal(t, entity.SupporterStatusBusy, stored.Status)
}
