package utils

import (
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// GetTokenFromHeader reads a bearer token from the Authorization header, or the
// token query parameter for websocket upgrades.
func GetTokenFromHeader(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header != "" {
		if strings.HasPrefix(header, "Bearer ") {
			return strings.TrimSpace(header[len("Bearer "):])
		}
		return ""
	}
	return c.QueryParam("token")
}

func ToUUID(s string) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
