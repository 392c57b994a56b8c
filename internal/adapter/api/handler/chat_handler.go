package handler

import (
	"neohand/internal/domain/entity"
	"neohand/internal/usecase"
	"neohand/pkg/response"
	"neohand/pkg/utils"

	"github.com/labstack/echo/v4"
)

type ChatHandler struct {
	chatUseCase    *usecase.ChatUseCase
	sessionUseCase *usecase.ChatSessionUseCase
}

func NewChatHandler(chatUseCase *usecase.ChatUseCase, sessionUseCase *usecase.ChatSessionUseCase) *ChatHandler {
	return &ChatHandler{
		chatUseCase:    chatUseCase,
		sessionUseCase: sessionUseCase,
	}
}

type attachmentRequest struct {
	URL  string `json:"url" validate:"required,url"`
	Name string `json:"name" validate:"required"`
	Type string `json:"type" validate:"required"`
	Size int64  `json:"size" validate:"required,gt=0"`
}

type sendMessageRequest struct {
	Content     string              `json:"content"`
	Attachments []attachmentRequest `json:"attachments" validate:"omitempty,max=5,dive"`
}

func toAttachments(reqs []attachmentRequest) []entity.Attachment {
	attachments := make([]entity.Attachment, len(reqs))
	for i, a := range reqs {
		attachments[i] = entity.Attachment{
			URL:  a.URL,
			Name: a.Name,
			Type: a.Type,
			Size: a.Size,
		}
	}
	return attachments
}

// GetSession returns the caller's chat identity, minting one when the stored
// identity is missing or stale. The client echoes its last known visitor id
// in the X-Visitor-ID header.
func (h *ChatHandler) GetSession(c echo.Context) error {
	visitorID := c.Request().Header.Get("X-Visitor-ID")

	session, err := h.sessionUseCase.GetOrCreate(c.Request().Context(), visitorID)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, session)
}

func (h *ChatHandler) EndSession(c echo.Context) error {
	visitorID := c.Request().Header.Get("X-Visitor-ID")
	if err := h.sessionUseCase.Clear(c.Request().Context(), visitorID); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"message": "Session cleared"})
}

func (h *ChatHandler) ListMessages(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	messages, total, err := h.chatUseCase.ListMessages(
		c.Request().Context(),
		c.Param("roomId"),
		pagination.PageSize,
		pagination.Offset,
	)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Paginated(c, messages, total, pagination.Page, pagination.PageSize)
}

func (h *ChatHandler) SendUserMessage(c echo.Context) error {
	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	message, err := h.chatUseCase.SendUserMessage(c.Request().Context(), usecase.SendUserMessageInput{
		VisitorID:   c.Request().Header.Get("X-Visitor-ID"),
		RoomID:      c.Param("roomId"),
		Content:     req.Content,
		Attachments: toAttachments(req.Attachments),
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, message)
}

func (h *ChatHandler) SendSupporterMessage(c echo.Context) error {
	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	supporterID, _ := c.Get("supporter_id").(string)

	message, err := h.chatUseCase.SendSupporterMessage(c.Request().Context(), usecase.SendSupporterMessageInput{
		SupporterID: supporterID,
		RoomID:      c.Param("roomId"),
		Content:     req.Content,
		Attachments: toAttachments(req.Attachments),
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, message)
}
