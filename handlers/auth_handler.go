package handlers

import (
	"errors"
	"time"

	"github.com/anjiri1684/review_board/errdefs"
	"github.com/anjiri1684/review_board/middleware"
	"github.com/anjiri1684/review_board/reviewboard"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type RegisterRequest struct {
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserResponse struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *Handler) RegisterUser(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	user, err := h.auth.Register(c.UserContext(), req.FullName, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, errdefs.ErrConflict) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Email already exists"})
		}
		h.log.Error("registration failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create user"})
	}

	return c.Status(fiber.StatusCreated).JSON(UserResponse{
		ID:        user.ID.String(),
		FullName:  user.FullName,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	})
}

func (h *Handler) LoginUser(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	token, _, err := h.auth.SignIn(c.UserContext(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, errdefs.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid email or password"})
		}
		h.log.Error("sign in failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create token"})
	}

	return c.JSON(fiber.Map{"token": token})
}

func (h *Handler) LogoutUser(c *fiber.Ctx) error {
	v := &reviewboard.View{User: middleware.CurrentUser(c)}
	h.board.Logout(c.UserContext(), v, middleware.SessionToken(c))
	h.clearSessionCookie(c)

	status := "success"
	if v.Notices[0].Level == reviewboard.LevelError {
		status = "error"
	}
	return c.JSON(fiber.Map{
		"status":   status,
		"redirect": v.Redirect,
		"notices":  h.translated(middleware.Lang(c), v.Notices),
	})
}

func (h *Handler) Me(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	return c.JSON(UserResponse{
		ID:        user.ID.String(),
		FullName:  user.FullName,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	})
}
