package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/piresc/pickups/internal/utils"
)

const (
	APIKeyHeader = "X-API-Key"
)

// APIKeyMiddleware guards operator endpoints with a shared key.
// With an empty key every request is rejected.
func APIKeyMiddleware(apiKey string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if apiKey == "" {
				return utils.ErrorResponseHandler(c, http.StatusForbidden, "internal endpoints are disabled")
			}

			provided := c.Request().Header.Get(APIKeyHeader)
			if provided == "" {
				return utils.ErrorResponseHandler(c, http.StatusUnauthorized, "API key is required")
			}
			if subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
				return utils.ErrorResponseHandler(c, http.StatusUnauthorized, "Invalid API key")
			}

			return next(c)
		}
	}
}
