package routes

import (
	"time"

	"github.com/anjiri1684/review_board/handlers"
	"github.com/anjiri1684/review_board/locales"
	"github.com/anjiri1684/review_board/logger"
	"github.com/anjiri1684/review_board/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

type AppConfig struct {
	Name      string
	AccessLog bool
	// CORSOrigins is a comma separated origin list for the JSON API.
	// Empty disables CORS.
	CORSOrigins string
	Catalog     *locales.Catalog
	Protected   fiber.Handler
	Log         *logger.Logger
}

// NewApp builds the fiber application with every route mounted.
func NewApp(cfg AppConfig, h *handlers.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:       cfg.Name,
		CaseSensitive: true,
		StrictRouting: true,
		ReadTimeout:   15 * time.Second,
		WriteTimeout:  15 * time.Second,
		IdleTimeout:   60 * time.Second,
		ErrorHandler:  handlers.ErrorHandler(cfg.Log),
	})

	if cfg.CORSOrigins != "" {
		// Credentials stay off: the session cookie is for same-origin pages only.
		app.Use(cors.New(cors.Config{
			AllowOrigins:  cfg.CORSOrigins,
			AllowHeaders:  "Origin, Content-Type, Accept, Authorization, Sec-WebSocket-Key, Sec-WebSocket-Version",
			AllowMethods:  "GET, POST, OPTIONS",
			ExposeHeaders: "Content-Length",
			MaxAge:        86400,
		}))
	}
	app.Use(recover.New())
	if cfg.AccessLog {
		app.Use(fiberlogger.New(fiberlogger.Config{
			TimeFormat: "2006-01-02 15:04:05",
			Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		}))
	}
	app.Use(middleware.Locale(cfg.Catalog))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	PageRoutes(app, h)
	APIRoutes(app, h, cfg.Protected)
	return app
}
