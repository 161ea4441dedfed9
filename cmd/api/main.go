package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	config "github.com/anjiri1684/review_board/configs"
	"github.com/anjiri1684/review_board/database"
	"github.com/anjiri1684/review_board/handlers"
	"github.com/anjiri1684/review_board/jobs"
	"github.com/anjiri1684/review_board/locales"
	"github.com/anjiri1684/review_board/logger"
	"github.com/anjiri1684/review_board/middleware"
	"github.com/anjiri1684/review_board/notifications"
	"github.com/anjiri1684/review_board/reviewboard"
	"github.com/anjiri1684/review_board/routes"
	"github.com/anjiri1684/review_board/services"
	"github.com/anjiri1684/review_board/views"
	"github.com/anjiri1684/review_board/websocket"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.IsProduction())
	defer log.Sync()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("database migration failed", zap.Error(err))
	}
	if err := database.SeedUser(db, cfg, log); err != nil {
		log.Fatal("seeding failed", zap.Error(err))
	}
	log.Info("database ready")

	catalog, err := locales.Load(cfg.DefaultLocale)
	if err != nil {
		log.Fatal("failed to load translations", zap.Error(err))
	}
	renderer, err := views.New(catalog)
	if err != nil {
		log.Fatal("failed to parse templates", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tokens := services.NewTokenSigner(cfg.JWTSecret, cfg.SessionTTL)
	authService := services.NewAuthService(db, tokens)
	reviewService := services.NewReviewService(db)

	hub := websocket.NewHub(log)
	go hub.Run(ctx)

	alert := notifications.NewReviewAlert(notifications.NewBrevoService(cfg), cfg.ReviewAlertEmail, log)
	board := reviewboard.New(authService, reviewService, log, hub, alert)

	scheduler, err := jobs.Schedule(cfg.SessionPurgeSpec, authService, log)
	if err != nil {
		log.Fatal("failed to schedule jobs", zap.Error(err))
	}
	defer scheduler.Stop()
	log.Info("session purge scheduled", zap.String("spec", cfg.SessionPurgeSpec))

	h := handlers.New(board, authService, renderer, catalog, hub, handlers.Options{
		CookieName:   cfg.SessionCookie,
		SessionTTL:   cfg.SessionTTL,
		SecureCookie: cfg.IsProduction(),
	}, log)

	app := routes.NewApp(routes.AppConfig{
		Name:        "Review Board",
		AccessLog:   true,
		CORSOrigins: cfg.CORSAllowOrigins,
		Catalog:     catalog,
		Protected:   middleware.Protected(tokens.Secret(), cfg.SessionCookie, authService, log),
		Log:         log,
	}, h)

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		if err := app.Shutdown(); err != nil {
			log.Error("shutdown failed", zap.Error(err))
		}
	}()

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	log.Info("server listening", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		log.Fatal("server failed to start", zap.Error(err))
	}
}
