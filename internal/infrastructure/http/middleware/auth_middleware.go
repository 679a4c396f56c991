package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/mom-service/errors"
	"github.com/johnquangdev/mom-service/pkg/jwt"
)

// Echo context keys set by EchoAuth
const (
	UserIDKey = "user_id"
	ClaimsKey = "claims"
)

// TokenParser is satisfied by *jwt.Verifier
type TokenParser interface {
	ParseAccessToken(token string) (*jwt.Claims, error)
}

// EchoAuth validates the bearer token (or access_token cookie) and sets
// "user_id" (uuid.UUID) and "claims" into the Echo context. With required
// false a missing token passes through, but a bad one is still rejected.
func EchoAuth(parser TokenParser, required bool, logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c)
			if token == "" {
				if required {
					return errors.ErrUnauthenticated()
				}
				return next(c)
			}

			claims, err := parser.ParseAccessToken(token)
			if err != nil {
				if logger != nil {
					logger.Warn("🔒 Rejected access token",
						zap.String("path", c.Path()),
						zap.Error(err),
					)
				}
				return errors.ErrInvalidToken()
			}

			c.Set(ClaimsKey, claims)
			c.Set(UserIDKey, claims.UserID)
			return next(c)
		}
	}
}

func extractToken(c echo.Context) string {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
	}

	if cookie, err := c.Cookie("access_token"); err == nil {
		return cookie.Value
	}
	return ""
}
