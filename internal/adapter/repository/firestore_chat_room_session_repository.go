package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"neohand/internal/domain/entity"
	"neohand/internal/domain/repository"
	"neohand/pkg/errors"
)

// Firestore caps "in" filters at this many values per query.
const inQueryChunkSize = 10

type firestoreChatRoomSessionRepository struct {
	client *firestore.Client
}

func NewFirestoreChatRoomSessionRepository(client *firestore.Client) repository.ChatRoomSessionRepository {
	return &firestoreChatRoomSessionRepository{
		client: client,
	}
}

func (r *firestoreChatRoomSessionRepository) GetByID(ctx context.Context, id string) (*entity.ChatRoomSession, error) {
	doc, err := r.client.Collection("chat_sessions").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Chat session", err)
		}
		return nil, errors.Internal("Failed to get chat session", err)
	}

	var session entity.ChatRoomSession
	if err := doc.DataTo(&session); err != nil {
		return nil, errors.Internal("Failed to parse chat session data", err)
	}
	return &session, nil
}

func (r *firestoreChatRoomSessionRepository) GetByRoomID(ctx context.Context, roomID string) (*entity.ChatRoomSession, error) {
	iter := r.client.Collection("chat_sessions").
		Where("roomId", "==", roomID).
		Limit(1).
		Documents(ctx)

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, errors.NotFound("Chat session", nil)
	}
	if err != nil {
		return nil, errors.Internal("Failed to query chat session", err)
	}

	var session entity.ChatRoomSession
	if err := doc.DataTo(&session); err != nil {
		return nil, errors.Internal("Failed to parse chat session data", err)
	}
	return &session, nil
}

func (r *firestoreChatRoomSessionRepository) ListByRoomIDs(ctx context.Context, roomIDs []string) ([]*entity.ChatRoomSession, error) {
	var sessions []*entity.ChatRoomSession

	for start := 0; start < len(roomIDs); start += inQueryChunkSize {
		end := start + inQueryChunkSize
		if end > len(roomIDs) {
			end = len(roomIDs)
		}

		iter := r.client.Collection("chat_sessions").
			Where("roomId", "in", roomIDs[start:end]).
			Documents(ctx)

		for {
			doc, err := iter.Next()
			if err == iterator.Done {
				break
			}
			if err != nil {
				return nil, errors.Internal("Failed to iterate chat sessions", err)
			}

			var session entity.ChatRoomSession
			if err := doc.DataTo(&session); err != nil {
				return nil, errors.Internal("Failed to parse chat session data", err)
			}
			sessions = append(sessions, &session)
		}
	}

	return sessions, nil
}

// CreateBatch inserts every session in one bulk write, avoiding a round trip
// per new room. Concurrent dashboards bootstrapping the same room can still
// race each other; there is no uniqueness constraint behind this.
func (r *firestoreChatRoomSessionRepository) CreateBatch(ctx context.Context, sessions []*entity.ChatRoomSession) error {
	if len(sessions) == 0 {
		return nil
	}

	now := time.Now()
	bw := r.client.BulkWriter(ctx)
	for _, session := range sessions {
		if session.ID == "" {
			session.ID = uuid.New().String()
		}
		session.CreatedAt = now
		session.UpdatedAt = now

		if _, err := bw.Create(r.client.Collection("chat_sessions").Doc(session.ID), session); err != nil {
			bw.End()
			return errors.Internal("Failed to enqueue chat session", err)
		}
	}
	bw.End()

	return nil
}

func (r *firestoreChatRoomSessionRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	return r.update(ctx, id, []firestore.Update{
		{Path: "status", Value: status},
		{Path: "updatedAt", Value: time.Now()},
	})
}

func (r *firestoreChatRoomSessionRepository) UpdateNotes(ctx context.Context, id string, notes string) error {
	return r.update(ctx, id, []firestore.Update{
		{Path: "notes", Value: notes},
		{Path: "updatedAt", Value: time.Now()},
	})
}

func (r *firestoreChatRoomSessionRepository) AssignSupporter(ctx context.Context, id string, supporterID string) error {
	return r.update(ctx, id, []firestore.Update{
		{Path: "assignedSupporterId", Value: supporterID},
		{Path: "updatedAt", Value: time.Now()},
	})
}

func (r *firestoreChatRoomSessionRepository) update(ctx context.Context, id string, updates []firestore.Update) error {
	_, err := r.client.Collection("chat_sessions").Doc(id).Update(ctx, updates)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Chat session", err)
		}
		return errors.Internal("Failed to update chat session", err)
	}
	return nil
}
