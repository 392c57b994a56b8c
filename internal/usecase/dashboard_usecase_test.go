package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neohand/internal/domain/entity"
	"neohand/internal/infrastructure/realtime"
)

func seedMessage(t *testing.T, repo *fakeMessageRepository, roomID string) {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), &entity.Message{
		RoomID:     roomID,
		SenderType: entity.SenderTypeUser,
		SenderID:   "user-abc123def",
		Content:    "hello",
	}))
}

func TestListSessionsBootstrapsMissingRows(t *testing.T) {
	messageRepo := newFakeMessageRepository()
	sessionRepo := newFakeChatRoomSessionRepository()
	uc := NewDashboardUseCase(messageRepo, sessionRepo, realtime.NewHub())

	seedMessage(t, messageRepo, "room-1")
	seedMessage(t, messageRepo, "room-2")

	entries, err := uc.ListSessions(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.Equal(t, entity.RoomStatusActive, e.Session.Status)
		assert.NotEmpty(t, e.Session.ID)
	}

	// Rows now exist; a second listing reuses them.
	again, err := uc.ListSessions(context.Background())
	require.NoError(t, err)
	require.Len(t, again, 2)
	assert.Equal(t, entries[0].Session.ID, again[0].Session.ID)
}

func TestListSessionsOrdersByRecency(t *testing.T) {
	messageRepo := newFakeMessageRepository()
	sessionRepo := newFakeChatRoomSessionRepository()
	uc := NewDashboardUseCase(messageRepo, sessionRepo, realtime.NewHub())

	seedMessage(t, messageRepo, "room-old")
	seedMessage(t, messageRepo, "room-new")

	entries, err := uc.ListSessions(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "room-new", entries[0].Session.RoomID)
	assert.Equal(t, "room-old", entries[1].Session.RoomID)
}

func TestListSessionsUnreadFirst(t *testing.T) {
	messageRepo := newFakeMessageRepository()
	sessionRepo := newFakeChatRoomSessionRepository()
	hub := realtime.NewHub()
	uc := NewDashboardUseCase(messageRepo, sessionRepo, hub)
	uc.Start()
	defer uc.Stop()

	seedMessage(t, messageRepo, "room-old")
	seedMessage(t, messageRepo, "room-new")

	// A visitor message in the older room flags it unread, which outranks
	// recency.
	hub.Publish(realtime.Event{
		Kind:    realtime.EventMessageInsert,
		Topic:   realtime.AllMessagesTopic,
		Payload: &entity.Message{ID: "msg-x", RoomID: "room-old", SenderType: entity.SenderTypeUser},
	})

	require.Eventually(t, func() bool {
		entries, err := uc.ListSessions(context.Background())
		if err != nil || len(entries) != 2 {
			return false
		}
		return entries[0].Session.RoomID == "room-old" && entries[0].Unread
	}, eventuallyTimeout, eventuallyTick)

	// Opening the room clears the flag and recency ordering returns.
	uc.MarkRead("room-old")
	entries, err := uc.ListSessions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "room-new", entries[0].Session.RoomID)
	assert.False(t, entries[0].Unread)
}

func TestSupporterMessagesDoNotFlagUnread(t *testing.T) {
	messageRepo := newFakeMessageRepository()
	sessionRepo := newFakeChatRoomSessionRepository()
	hub := realtime.NewHub()
	uc := NewDashboardUseCase(messageRepo, sessionRepo, hub)
	uc.Start()
	defer uc.Stop()

	seedMessage(t, messageRepo, "room-1")

	hub.Publish(realtime.Event{
		Kind:    realtime.EventMessageInsert,
		Topic:   realtime.AllMessagesTopic,
		Payload: &entity.Message{ID: "msg-s", RoomID: "room-1", SenderType: entity.SenderTypeSupport},
	})

	require.Never(t, func() bool {
		entries, err := uc.ListSessions(context.Background())
		if err != nil || len(entries) == 0 {
			return false
		}
		return entries[0].Unread
	}, eventuallyTick*5, eventuallyTick)
}

func TestUpdateStatusRejectsUnknownValue(t *testing.T) {
	messageRepo := newFakeMessageRepository()
	sessionRepo := newFakeChatRoomSessionRepository()
	uc := NewDashboardUseCase(messageRepo, sessionRepo, realtime.NewHub())

	seedMessage(t, messageRepo, "room-1")
	entries, err := uc.ListSessions(context.Background())
	require.NoError(t, err)
	sessionID := entries[0].Session.ID

	assert.Error(t, uc.UpdateStatus(context.Background(), sessionID, "archived"))
	require.NoError(t, uc.UpdateStatus(context.Background(), sessionID, entity.RoomStatusResolved))

	session, err := sessionRepo.GetByID(context.Background(), sessionID)
	require.NoError(t, err)
	assert.Equal(t, entity.RoomStatusResolved, session.Status)
}

func TestSessionEdits(t *testing.T) {
	messageRepo := newFakeMessageRepository()
	sessionRepo := newFakeChatRoomSessionRepository()
	uc := NewDashboardUseCase(messageRepo, sessionRepo, realtime.NewHub())
	ctx := context.Background()

	seedMessage(t, messageRepo, "room-1")
	entries, err := uc.ListSessions(ctx)
	require.NoError(t, err)
	sessionID := entries[0].Session.ID

	require.NoError(t, uc.UpdateNotes(ctx, sessionID, "asked about shipping"))
	require.NoError(t, uc.AssignSupporter(ctx, sessionID, "sup-1"))

	session, err := sessionRepo.GetByID(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, "asked about shipping", session.Notes)
	assert.Equal(t, "sup-1", session.AssignedSupporterID)
}
