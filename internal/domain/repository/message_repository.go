package repository

import (
	"context"

	"neohand/internal/domain/entity"
)

type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error
	ListByRoom(ctx context.Context, roomID string, limit, offset int) ([]*entity.Message, int64, error)

	// DistinctRoomIDs returns every room id that has at least one message,
	// most recently active room first.
	DistinctRoomIDs(ctx context.Context) ([]string, error)
}
