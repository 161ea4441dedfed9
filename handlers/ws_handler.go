package handlers

import (
	"context"
	"time"

	"github.com/anjiri1684/review_board/models"
	"github.com/anjiri1684/review_board/websocket"
	websocketcontrib "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	localsWsToken        = "ws_token"
	sessionLookupTimeout = 5 * time.Second
)

type authMessage struct {
	Type  string `json:"type"`
	Token string `json:"token"`
}

// UpgradeWs rejects plain HTTP and carries the session cookie into the
// websocket connection.
func (h *Handler) UpgradeWs(c *fiber.Ctx) error {
	if !websocketcontrib.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	c.Locals(localsWsToken, c.Cookies(h.opts.CookieName))
	return c.Next()
}

// ServeWs authenticates the connection with the session cookie or, failing
// that, a first {"type":"auth"} message, then subscribes it to review events.
func (h *Handler) ServeWs(c *websocketcontrib.Conn) {
	token, _ := c.Locals(localsWsToken).(string)
	if token == "" {
		var msg authMessage
		if err := c.ReadJSON(&msg); err != nil || msg.Type != "auth" {
			h.log.Warn("websocket auth failed: invalid or missing auth message", zap.Error(err))
			_ = c.WriteJSON(fiber.Map{"error": "Invalid or missing auth message"})
			_ = c.Close()
			return
		}
		token = msg.Token
	}

	user, err := h.wsUser(token)
	if err != nil || user == nil {
		h.log.Warn("websocket auth failed: no live session", zap.Error(err))
		_ = c.WriteJSON(fiber.Map{"error": "Invalid token"})
		_ = c.Close()
		return
	}

	client := websocket.NewClient(user.ID, c)
	if !h.hub.Register(client) {
		_ = c.Close()
		return
	}
	defer func() {
		h.hub.Unregister(client)
		_ = c.Close()
	}()

	// Clients only listen; anything they send is discarded until they leave.
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			if !websocketcontrib.IsCloseError(err, websocketcontrib.CloseGoingAway, websocketcontrib.CloseNormalClosure) {
				h.log.Debug("websocket read error", zap.Stringer("user_id", user.ID), zap.Error(err))
			}
			return
		}
	}
}

// wsUser resolves the connection's token. The websocket has no request
// context, so the lookup gets its own deadline.
func (h *Handler) wsUser(token string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), sessionLookupTimeout)
	defer cancel()
	return h.auth.CurrentUser(ctx, token)
}
