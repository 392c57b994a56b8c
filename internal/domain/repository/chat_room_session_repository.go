package repository

import (
	"context"

	"neohand/internal/domain/entity"
)

type ChatRoomSessionRepository interface {
	GetByID(ctx context.Context, id string) (*entity.ChatRoomSession, error)
	GetByRoomID(ctx context.Context, roomID string) (*entity.ChatRoomSession, error)
	ListByRoomIDs(ctx context.Context, roomIDs []string) ([]*entity.ChatRoomSession, error)

	// CreateBatch inserts all given sessions in a single batch write. Callers
	// are expected to have filtered out rooms that already have a session.
	CreateBatch(ctx context.Context, sessions []*entity.ChatRoomSession) error

	UpdateStatus(ctx context.Context, id string, status string) error
	UpdateNotes(ctx context.Context, id string, notes string) error
	AssignSupporter(ctx context.Context, id string, supporterID string) error
}
