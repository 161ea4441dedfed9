package routes

import (
	"github.com/anjiri1684/review_board/handlers"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

func PageRoutes(app *fiber.App, h *handlers.Handler) {
	app.Get("/", h.Index)
	app.Post("/reviews", h.CreateReviewForm)
	app.Post("/logout", h.Logout)

	auth := app.Group("/auth")
	auth.Get("", h.AuthPage)
	auth.Post("/login", h.LoginForm)
	auth.Post("/register", h.RegisterForm)
}

func APIRoutes(app *fiber.App, h *handlers.Handler, protected fiber.Handler) {
	api := app.Group("/api/v1")

	api.Get("/locales/:lang", h.GetLocale)

	auth := api.Group("/auth")
	auth.Post("/register", h.RegisterUser)
	auth.Post("/login", h.LoginUser)
	auth.Post("/logout", protected, h.LogoutUser)

	api.Get("/me", protected, h.Me)

	reviews := api.Group("/reviews", protected)
	reviews.Get("", h.ListReviews)
	reviews.Post("", h.CreateReview)

	api.Use("/ws", h.UpgradeWs)
	api.Get("/ws", websocket.New(h.ServeWs))
}
