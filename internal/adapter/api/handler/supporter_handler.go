package handler

import (
	"context"

	"neohand/internal/infrastructure/presence"
	"neohand/internal/usecase"
	"neohand/pkg/response"

	"github.com/labstack/echo/v4"
)

type SupporterHandler struct {
	supporterUseCase *usecase.SupporterUseCase
	presence         *presence.Registry
}

func NewSupporterHandler(supporterUseCase *usecase.SupporterUseCase, registry *presence.Registry) *SupporterHandler {
	return &SupporterHandler{
		supporterUseCase: supporterUseCase,
		presence:         registry,
	}
}

type supporterLoginRequest struct {
	SupporterID string `json:"supporter_id" validate:"required"`
}

type activityRequest struct {
	Kind string `json:"kind" validate:"required"`
}

type statusRequest struct {
	Status string `json:"status" validate:"required,oneof=online busy away"`
}

func (h *SupporterHandler) Roster(c echo.Context) error {
	supporters, err := h.supporterUseCase.Roster(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, supporters)
}

func (h *SupporterHandler) Login(c echo.Context) error {
	var req supporterLoginRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	session, err := h.supporterUseCase.Login(c.Request().Context(), clientID(c), req.SupporterID)
	if err != nil {
		return response.Error(c, err)
	}

	// The heartbeat outlives the request; it stops on logout or shutdown.
	h.presence.Start(context.WithoutCancel(c.Request().Context()), clientID(c), session.Supporter.ID)

	return response.Success(c, session)
}

func (h *SupporterHandler) Current(c echo.Context) error {
	session, err := h.supporterUseCase.Current(c.Request().Context(), clientID(c))
	if err != nil {
		return response.Error(c, err)
	}
	if session == nil {
		return response.Success(c, nil)
	}

	if err := h.supporterUseCase.Touch(c.Request().Context(), clientID(c)); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, session)
}

func (h *SupporterHandler) Logout(c echo.Context) error {
	h.presence.Stop(c.Request().Context(), clientID(c))

	if err := h.supporterUseCase.Logout(c.Request().Context(), clientID(c)); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"message": "Logged out"})
}

// ReportActivity feeds dashboard input events into presence tracking.
func (h *SupporterHandler) ReportActivity(c echo.Context) error {
	var req activityRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	h.presence.Observe(clientID(c), req.Kind)
	return response.Success(c, map[string]string{"message": "Recorded"})
}

// SetStatus applies a manual presence override, e.g. marking oneself busy.
func (h *SupporterHandler) SetStatus(c echo.Context) error {
	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	if err := h.presence.SetStatus(c.Request().Context(), clientID(c), req.Status); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"status": req.Status})
}
