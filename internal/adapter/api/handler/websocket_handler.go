package handler

import (
	"net/http"

	gorillaws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"neohand/internal/infrastructure/realtime"
	ws "neohand/internal/infrastructure/websocket"
	"neohand/pkg/errors"
	"neohand/pkg/response"
)

type WebSocketHandler struct {
	wsManager *ws.Manager
}

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // You should restrict this in production
	},
}

func NewWebSocketHandler(wsManager *ws.Manager) *WebSocketHandler {
	return &WebSocketHandler{
		wsManager: wsManager,
	}
}

// StreamRoom pushes every message insert for one room down the socket.
func (h *WebSocketHandler) StreamRoom(c echo.Context) error {
	roomID := c.Param("roomId")
	if roomID == "" {
		return response.Error(c, errors.BadRequest("Room id is required", nil))
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return errors.Internal("Failed to upgrade connection", err)
	}

	h.wsManager.Serve(conn, realtime.MessageTopic(roomID))
	return nil
}

// StreamSupporters pushes roster status changes down the socket.
func (h *WebSocketHandler) StreamSupporters(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return errors.Internal("Failed to upgrade connection", err)
	}

	h.wsManager.Serve(conn, realtime.SupporterTopic)
	return nil
}

// StreamAllMessages feeds the dashboard's cross-room message stream.
func (h *WebSocketHandler) StreamAllMessages(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return errors.Internal("Failed to upgrade connection", err)
	}

	h.wsManager.Serve(conn, realtime.AllMessagesTopic)
	return nil
}
