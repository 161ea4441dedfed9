package handlers

import (
	"github.com/gofiber/fiber/v2"
)

func (h *Handler) GetLocale(c *fiber.Ctx) error {
	messages, ok := h.catalog.Messages(c.Params("lang"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Language file not found"})
	}
	return c.JSON(messages)
}
