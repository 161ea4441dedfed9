package middleware

import (
	"github.com/anjiri1684/review_board/locales"
	"github.com/gofiber/fiber/v2"
)

const localsLang = "lang"

// Locale negotiates the response language once per request.
func Locale(catalog *locales.Catalog) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(localsLang, catalog.Negotiate(c.Get(fiber.HeaderAcceptLanguage)))
		return c.Next()
	}
}

func Lang(c *fiber.Ctx) string {
	lang, _ := c.Locals(localsLang).(string)
	return lang
}
