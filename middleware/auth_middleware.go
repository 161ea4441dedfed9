package middleware

import (
	"context"
	"strings"

	"github.com/anjiri1684/review_board/logger"
	"github.com/anjiri1684/review_board/models"
	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
)

const (
	localsToken   = "user"
	localsUser    = "current_user"
	localsSession = "session_token"
)

type SessionResolver interface {
	CurrentUser(ctx context.Context, token string) (*models.User, error)
}

// Protected verifies the bearer token (or session cookie) and then checks
// that the session behind it is still live.
func Protected(secret []byte, cookieName string, sessions SessionResolver, log *logger.Logger) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:    secret,
		SigningMethod: "HS256",
		ContextKey:    localsToken,
		TokenLookup:   "header:" + fiber.HeaderAuthorization + ",cookie:" + cookieName,
		AuthScheme:    "Bearer",
		ErrorHandler:  jwtError,
		SuccessHandler: func(c *fiber.Ctx) error {
			token := c.Locals(localsToken).(*jwt.Token)
			user, err := sessions.CurrentUser(c.UserContext(), token.Raw)
			if err != nil {
				log.Error("failed to resolve session", zap.Error(err), zap.String("path", c.Path()))
				return c.Status(fiber.StatusInternalServerError).
					JSON(fiber.Map{"status": "error", "message": "Failed to resolve session", "data": nil})
			}
			if user == nil {
				return c.Status(fiber.StatusUnauthorized).
					JSON(fiber.Map{"status": "error", "message": "Session expired or revoked", "data": nil})
			}
			c.Locals(localsUser, user)
			c.Locals(localsSession, token.Raw)
			return c.Next()
		},
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	if strings.EqualFold(err.Error(), "Missing or malformed JWT") {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"status": "error", "message": "Missing or malformed JWT", "data": nil})
	}
	return c.Status(fiber.StatusUnauthorized).
		JSON(fiber.Map{"status": "error", "message": "Invalid or expired JWT", "data": nil})
}

// CurrentUser returns the user stored by Protected, or nil.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(localsUser).(*models.User)
	return user
}

// SessionToken returns the raw token stored by Protected.
func SessionToken(c *fiber.Ctx) string {
	token, _ := c.Locals(localsSession).(string)
	return token
}
