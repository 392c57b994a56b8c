package handler

import (
	"neohand/internal/usecase"
	"neohand/pkg/response"

	"github.com/labstack/echo/v4"
)

type DashboardHandler struct {
	dashboardUseCase *usecase.DashboardUseCase
}

func NewDashboardHandler(dashboardUseCase *usecase.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{
		dashboardUseCase: dashboardUseCase,
	}
}

type sessionStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type sessionNotesRequest struct {
	Notes string `json:"notes"`
}

type assignSupporterRequest struct {
	SupporterID string `json:"supporter_id" validate:"required"`
}

func (h *DashboardHandler) ListSessions(c echo.Context) error {
	entries, err := h.dashboardUseCase.ListSessions(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, entries)
}

func (h *DashboardHandler) GetSession(c echo.Context) error {
	session, err := h.dashboardUseCase.GetSession(c.Request().Context(), c.Param("roomId"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, session)
}

// MarkRead clears the room's unread flag when a supporter opens it.
func (h *DashboardHandler) MarkRead(c echo.Context) error {
	h.dashboardUseCase.MarkRead(c.Param("roomId"))
	return response.Success(c, map[string]string{"message": "Marked read"})
}

func (h *DashboardHandler) UpdateStatus(c echo.Context) error {
	var req sessionStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	if err := h.dashboardUseCase.UpdateStatus(c.Request().Context(), c.Param("id"), req.Status); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"status": req.Status})
}

func (h *DashboardHandler) UpdateNotes(c echo.Context) error {
	var req sessionNotesRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := h.dashboardUseCase.UpdateNotes(c.Request().Context(), c.Param("id"), req.Notes); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"message": "Notes updated"})
}

func (h *DashboardHandler) AssignSupporter(c echo.Context) error {
	var req assignSupporterRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	if err := h.dashboardUseCase.AssignSupporter(c.Request().Context(), c.Param("id"), req.SupporterID); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"message": "Supporter assigned"})
}
