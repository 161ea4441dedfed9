package handlers

import (
	"github.com/anjiri1684/review_board/middleware"
	"github.com/anjiri1684/review_board/reviewboard"
	"github.com/gofiber/fiber/v2"
)

func (h *Handler) ListReviews(c *fiber.Ctx) error {
	v := &reviewboard.View{User: middleware.CurrentUser(c)}
	h.board.List(c.UserContext(), v)
	if len(v.Notices) > 0 {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"notices": h.translated(middleware.Lang(c), v.Notices),
		})
	}
	return c.JSON(fiber.Map{"status": "success", "reviews": v.Reviews})
}

func (h *Handler) CreateReview(c *fiber.Ctx) error {
	var in reviewboard.ReviewInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	v := &reviewboard.View{User: middleware.CurrentUser(c)}
	lang := middleware.Lang(c)
	if !h.board.Create(c.UserContext(), v, in) {
		status := fiber.StatusInternalServerError
		if v.Notices[0].Key == reviewboard.NoticeFieldsRequired {
			status = fiber.StatusBadRequest
		}
		return c.Status(status).JSON(fiber.Map{
			"status":  "error",
			"notices": h.translated(lang, v.Notices),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":  "success",
		"notices": h.translated(lang, v.Notices),
		"reviews": v.Reviews,
	})
}
