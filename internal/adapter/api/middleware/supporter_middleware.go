package middleware

import (
	"net/http"

	"neohand/internal/usecase"

	"github.com/labstack/echo/v4"
)

type SupporterMiddleware struct {
	supporterUseCase *usecase.SupporterUseCase
}

func NewSupporterMiddleware(supporterUseCase *usecase.SupporterUseCase) *SupporterMiddleware {
	return &SupporterMiddleware{
		supporterUseCase: supporterUseCase,
	}
}

// RequireSession lets the request through only when the client holds a live
// supporter session, and exposes the supporter id to handlers.
func (m *SupporterMiddleware) RequireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		clientID, ok := c.Get("client_id").(string)
		if !ok || clientID == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Client identification required")
		}

		session, err := m.supporterUseCase.Current(c.Request().Context(), clientID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to verify supporter session")
		}
		if session == nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Supporter login required")
		}

		c.Set("supporter_id", session.Supporter.ID)
		return next(c)
	}
}
