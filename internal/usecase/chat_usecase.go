package usecase

import (
	"context"
	"strings"

	"neohand/internal/domain/entity"
	"neohand/internal/domain/repository"
	"neohand/internal/infrastructure/ratelimit"
	"neohand/internal/infrastructure/realtime"
	"neohand/pkg/errors"
)

// ChatUseCase writes messages to the remote store and pushes them onto the
// realtime feeds.
type ChatUseCase struct {
	messageRepo   repository.MessageRepository
	supporterRepo repository.SupporterRepository
	sessions      *ChatSessionUseCase
	hub           *realtime.Hub
	rateLimiter   *ratelimit.RateLimiter
}

func NewChatUseCase(
	messageRepo repository.MessageRepository,
	supporterRepo repository.SupporterRepository,
	sessions *ChatSessionUseCase,
	hub *realtime.Hub,
	rateLimiter *ratelimit.RateLimiter,
) *ChatUseCase {
	return &ChatUseCase{
		messageRepo:   messageRepo,
		supporterRepo: supporterRepo,
		sessions:      sessions,
		hub:           hub,
		rateLimiter:   rateLimiter,
	}
}

type SendUserMessageInput struct {
	VisitorID   string
	RoomID      string
	Content     string
	Attachments []entity.Attachment
}

type SendSupporterMessageInput struct {
	SupporterID string
	RoomID      string
	Content     string
	Attachments []entity.Attachment
}

// SendUserMessage appends a visitor message to the room and refreshes the
// visitor identity's activity timestamp.
func (uc *ChatUseCase) SendUserMessage(ctx context.Context, input SendUserMessageInput) (*entity.Message, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" && len(input.Attachments) == 0 {
		return nil, errors.BadRequest("Message needs content or attachments", nil)
	}

	if allowed, _ := uc.rateLimiter.Allow(input.VisitorID); !allowed {
		return nil, errors.TooManyRequests("Sending messages too fast")
	}

	files, err := entity.EncodeAttachments(input.Attachments)
	if err != nil {
		return nil, errors.Internal("Failed to encode attachments", err)
	}

	message := &entity.Message{
		RoomID:     input.RoomID,
		SenderType: entity.SenderTypeUser,
		SenderID:   input.VisitorID,
		Content:    content,
		Files:      files,
	}
	if err := uc.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	// Session refresh is best-effort; the message is already persisted.
	if err := uc.sessions.UpdateActivity(ctx, input.VisitorID); err != nil {
		if !errors.Is(err, "NOT_FOUND") {
			return nil, err
		}
	}

	uc.publish(message)
	return message, nil
}

// SendSupporterMessage appends a support reply, denormalizing the supporter's
// display name and avatar onto the message row.
func (uc *ChatUseCase) SendSupporterMessage(ctx context.Context, input SendSupporterMessageInput) (*entity.Message, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" && len(input.Attachments) == 0 {
		return nil, errors.BadRequest("Message needs content or attachments", nil)
	}

	if allowed, _ := uc.rateLimiter.Allow(input.SupporterID); !allowed {
		return nil, errors.TooManyRequests("Sending messages too fast")
	}

	supporter, err := uc.supporterRepo.GetByID(ctx, input.SupporterID)
	if err != nil {
		return nil, err
	}

	files, err := entity.EncodeAttachments(input.Attachments)
	if err != nil {
		return nil, errors.Internal("Failed to encode attachments", err)
	}

	message := &entity.Message{
		RoomID:          input.RoomID,
		SenderType:      entity.SenderTypeSupport,
		SenderID:        supporter.ID,
		Content:         content,
		SupporterName:   supporter.Name,
		SupporterAvatar: supporter.Avatar,
		Files:           files,
	}
	if err := uc.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	uc.publish(message)
	return message, nil
}

func (uc *ChatUseCase) publish(message *entity.Message) {
	uc.hub.Publish(realtime.Event{
		Kind:    realtime.EventMessageInsert,
		Topic:   realtime.MessageTopic(message.RoomID),
		Payload: message,
	})
	uc.hub.Publish(realtime.Event{
		Kind:    realtime.EventMessageInsert,
		Topic:   realtime.AllMessagesTopic,
		Payload: message,
	})
}

// ListMessages returns the room's log oldest first.
func (uc *ChatUseCase) ListMessages(ctx context.Context, roomID string, limit, offset int) ([]*entity.Message, int64, error) {
	return uc.messageRepo.ListByRoom(ctx, roomID, limit, offset)
}
