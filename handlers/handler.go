package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/anjiri1684/review_board/locales"
	"github.com/anjiri1684/review_board/logger"
	"github.com/anjiri1684/review_board/models"
	"github.com/anjiri1684/review_board/reviewboard"
	"github.com/anjiri1684/review_board/views"
	"github.com/anjiri1684/review_board/websocket"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var validate = validator.New()

type AuthService interface {
	reviewboard.Identity
	Register(ctx context.Context, fullName, email, password string) (*models.User, error)
	SignIn(ctx context.Context, email, password string) (string, *models.User, error)
}

type Options struct {
	CookieName   string
	SessionTTL   time.Duration
	SecureCookie bool
}

type Handler struct {
	board    *reviewboard.Board
	auth     AuthService
	renderer *views.Renderer
	catalog  *locales.Catalog
	hub      *websocket.Hub
	opts     Options
	log      *logger.Logger
}

func New(
	board *reviewboard.Board,
	auth AuthService,
	renderer *views.Renderer,
	catalog *locales.Catalog,
	hub *websocket.Hub,
	opts Options,
	log *logger.Logger,
) *Handler {
	return &Handler{
		board:    board,
		auth:     auth,
		renderer: renderer,
		catalog:  catalog,
		hub:      hub,
		opts:     opts,
		log:      log,
	}
}

// ErrorHandler answers every unhandled error with the JSON error envelope.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		var e *fiber.Error
		if errors.As(err, &e) {
			code = e.Code
		}

		log.Error("request failed",
			zap.Error(err),
			zap.String("path", c.Path()),
			zap.String("method", c.Method()),
			zap.Int("status", code),
		)
		return c.Status(code).JSON(fiber.Map{
			"status":  "error",
			"code":    code,
			"message": err.Error(),
		})
	}
}

func (h *Handler) setSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     h.opts.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.opts.SessionTTL),
		HTTPOnly: true,
		Secure:   h.opts.SecureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func (h *Handler) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     h.opts.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   h.opts.SecureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func (h *Handler) translated(lang string, notices []reviewboard.Notice) []fiber.Map {
	out := make([]fiber.Map, 0, len(notices))
	for _, n := range notices {
		out = append(out, fiber.Map{
			"level":   n.Level,
			"key":     n.Key,
			"message": h.catalog.Translate(lang, n.Key),
		})
	}
	return out
}
