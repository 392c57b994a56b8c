package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neohand/internal/infrastructure/cache"
)

func TestGetOrCreateMintsIdentity(t *testing.T) {
	uc := NewChatSessionUseCase(cache.NewMemoryTier())

	session, err := uc.GetOrCreate(context.Background(), "")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(session.VisitorID, "user-"))
	assert.Len(t, session.VisitorID, len("user-")+9)
	assert.True(t, strings.HasPrefix(session.RoomID, "room-"))
	assert.True(t, session.IsActive)
}

func TestGetOrCreateReusesFreshIdentity(t *testing.T) {
	uc := NewChatSessionUseCase(cache.NewMemoryTier())
	ctx := context.Background()

	first, err := uc.GetOrCreate(ctx, "")
	require.NoError(t, err)

	second, err := uc.GetOrCreate(ctx, first.VisitorID)
	require.NoError(t, err)
	assert.Equal(t, first.VisitorID, second.VisitorID)
	assert.Equal(t, first.RoomID, second.RoomID)
}

func TestGetOrCreateExpiryBoundary(t *testing.T) {
	uc := NewChatSessionUseCase(cache.NewMemoryTier())
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return base }

	first, err := uc.GetOrCreate(ctx, "")
	require.NoError(t, err)

	// 23 hours later the identity is still good.
	uc.now = func() time.Time { return base.Add(23 * time.Hour) }
	same, err := uc.GetOrCreate(ctx, first.VisitorID)
	require.NoError(t, err)
	assert.Equal(t, first.VisitorID, same.VisitorID)

	// 25 hours after the last activity a fresh identity is minted.
	uc.now = func() time.Time { return base.Add(25 * time.Hour) }
	fresh, err := uc.GetOrCreate(ctx, first.VisitorID)
	require.NoError(t, err)
	assert.NotEqual(t, first.VisitorID, fresh.VisitorID)
	assert.NotEqual(t, first.RoomID, fresh.RoomID)
}

func TestUpdateActivityExtendsSession(t *testing.T) {
	uc := NewChatSessionUseCase(cache.NewMemoryTier())
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return base }

	session, err := uc.GetOrCreate(ctx, "")
	require.NoError(t, err)

	uc.now = func() time.Time { return base.Add(20 * time.Hour) }
	require.NoError(t, uc.UpdateActivity(ctx, session.VisitorID))

	// 30 hours from creation but only 10 since the refresh.
	uc.now = func() time.Time { return base.Add(30 * time.Hour) }
	same, err := uc.GetOrCreate(ctx, session.VisitorID)
	require.NoError(t, err)
	assert.Equal(t, session.VisitorID, same.VisitorID)
}

func TestUpdateActivityUnknownVisitor(t *testing.T) {
	uc := NewChatSessionUseCase(cache.NewMemoryTier())

	err := uc.UpdateActivity(context.Background(), "user-missing00")
	assert.Error(t, err)
}

func TestClearForgetsIdentity(t *testing.T) {
	uc := NewChatSessionUseCase(cache.NewMemoryTier())
	ctx := context.Background()

	session, err := uc.GetOrCreate(ctx, "")
	require.NoError(t, err)
	require.NoError(t, uc.Clear(ctx, session.VisitorID))

	fresh, err := uc.GetOrCreate(ctx, session.VisitorID)
	require.NoError(t, err)
	assert.NotEqual(t, session.VisitorID, fresh.VisitorID)
}
