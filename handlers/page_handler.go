package handlers

import (
	"errors"
	"net/url"
	"strconv"
	"strings"

	"github.com/anjiri1684/review_board/errdefs"
	"github.com/anjiri1684/review_board/middleware"
	"github.com/anjiri1684/review_board/reviewboard"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func (h *Handler) renderBoard(c *fiber.Ctx, status int, v *reviewboard.View) error {
	c.Type("html", "utf-8")
	c.Status(status)
	return h.renderer.Board(c, middleware.Lang(c), v)
}

func (h *Handler) renderAuth(c *fiber.Ctx, status int, notices []reviewboard.Notice, email, fullName string) error {
	c.Type("html", "utf-8")
	c.Status(status)
	return h.renderer.Auth(c, middleware.Lang(c), notices, email, fullName)
}

func authRedirect(notice reviewboard.Notice) string {
	q := url.Values{}
	q.Set("notice", notice.Key)
	q.Set("level", string(notice.Level))
	return reviewboard.AuthRoute + "?" + q.Encode()
}

// Index is the gated review board.
func (h *Handler) Index(c *fiber.Ctx) error {
	v := h.board.Open(c.UserContext(), c.Cookies(h.opts.CookieName))
	if !v.Gated() {
		return c.Redirect(v.Redirect)
	}
	v.DialogOpen = c.Query("dialog") == "open"
	return h.renderBoard(c, fiber.StatusOK, v)
}

func (h *Handler) CreateReviewForm(c *fiber.Ctx) error {
	v := h.board.Gate(c.UserContext(), c.Cookies(h.opts.CookieName))
	if !v.Gated() {
		return c.Redirect(v.Redirect)
	}

	rawRating := strings.TrimSpace(c.FormValue("rating"))
	rating, err := strconv.Atoi(rawRating)
	in := reviewboard.ReviewInput{
		CustomerName: c.FormValue("customer_name"),
		Country:      c.FormValue("country"),
		Rating:       rating,
	}
	switch {
	// An empty rating is left to the required-fields check.
	case err != nil && rawRating != "":
		h.board.Reject(v, in, reviewboard.NoticeRatingInvalid)
	case h.board.Create(c.UserContext(), v, in):
		return h.renderBoard(c, fiber.StatusOK, v)
	}

	h.board.List(c.UserContext(), v)
	return h.renderBoard(c, fiber.StatusUnprocessableEntity, v)
}

func (h *Handler) Logout(c *fiber.Ctx) error {
	v := &reviewboard.View{}
	h.board.Logout(c.UserContext(), v, c.Cookies(h.opts.CookieName))
	h.clearSessionCookie(c)
	return c.Redirect(authRedirect(v.Notices[0]))
}

func (h *Handler) AuthPage(c *fiber.Ctx) error {
	user, err := h.auth.CurrentUser(c.UserContext(), c.Cookies(h.opts.CookieName))
	if err == nil && user != nil {
		return c.Redirect("/")
	}

	var notices []reviewboard.Notice
	if key := c.Query("notice"); key != "" {
		level := reviewboard.LevelError
		if c.Query("level") == string(reviewboard.LevelSuccess) {
			level = reviewboard.LevelSuccess
		}
		notices = append(notices, reviewboard.Notice{Level: level, Key: key})
	}
	return h.renderAuth(c, fiber.StatusOK, notices, "", "")
}

func (h *Handler) LoginForm(c *fiber.Ctx) error {
	email := c.FormValue("email")
	password := c.FormValue("password")
	if email == "" || password == "" {
		return h.renderAuth(c, fiber.StatusBadRequest, errorNotice("auth.fields_required"), email, "")
	}

	token, _, err := h.auth.SignIn(c.UserContext(), email, password)
	if err != nil {
		if errors.Is(err, errdefs.ErrInvalidCredentials) {
			return h.renderAuth(c, fiber.StatusUnauthorized, errorNotice("auth.invalid_credentials"), email, "")
		}
		h.log.Error("sign in failed", zap.Error(err))
		return h.renderAuth(c, fiber.StatusInternalServerError, errorNotice("auth.failed"), email, "")
	}

	h.setSessionCookie(c, token)
	return c.Redirect("/")
}

func (h *Handler) RegisterForm(c *fiber.Ctx) error {
	req := RegisterRequest{
		FullName: c.FormValue("full_name"),
		Email:    c.FormValue("email"),
		Password: c.FormValue("password"),
	}
	if err := validate.Struct(req); err != nil {
		return h.renderAuth(c, fiber.StatusBadRequest, errorNotice("auth.fields_required"), req.Email, req.FullName)
	}

	if _, err := h.auth.Register(c.UserContext(), req.FullName, req.Email, req.Password); err != nil {
		if errors.Is(err, errdefs.ErrConflict) {
			return h.renderAuth(c, fiber.StatusConflict, errorNotice("auth.email_taken"), req.Email, req.FullName)
		}
		h.log.Error("registration failed", zap.Error(err))
		return h.renderAuth(c, fiber.StatusInternalServerError, errorNotice("auth.failed"), req.Email, req.FullName)
	}

	return c.Redirect(authRedirect(reviewboard.Notice{Level: reviewboard.LevelSuccess, Key: "auth.registered"}))
}

func errorNotice(key string) []reviewboard.Notice {
	return []reviewboard.Notice{{Level: reviewboard.LevelError, Key: key}}
}
