package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ClientHeader carries the caller's self-assigned client id. There is no
// account system; the id only has to stay stable per browser so cart,
// favorites and supporter sessions land in the right namespace.
const ClientHeader = "X-Client-ID"

type ClientMiddleware struct{}

func NewClientMiddleware() *ClientMiddleware {
	return &ClientMiddleware{}
}

// Identify requires the client id header and puts it on the request context.
func (m *ClientMiddleware) Identify(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Request().Header.Get(ClientHeader)
		if id == "" {
			return echo.NewHTTPError(http.StatusBadRequest, ClientHeader+" header is required")
		}

		c.Set("client_id", id)
		return next(c)
	}
}
