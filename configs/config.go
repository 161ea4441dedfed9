package config

import (
	"errors"
	"io/fs"
	"log"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	Development = "development"
	Production  = "production"
)

type Config struct {
	AppEnv           string        `env:"APP_ENV" env-default:"development"`
	HTTPPort         int           `env:"HTTP_PORT" env-default:"8080"`
	DatabaseURL      string        `env:"DATABASE_URL" env-required:"true"`
	JWTSecret        string        `env:"JWT_SECRET" env-required:"true"`
	SessionTTL       time.Duration `env:"SESSION_TTL" env-default:"72h"`
	SessionCookie    string        `env:"SESSION_COOKIE" env-default:"session"`
	DefaultLocale    string        `env:"DEFAULT_LOCALE" env-default:"en"`
	CORSAllowOrigins string        `env:"CORS_ALLOW_ORIGINS"`

	SessionPurgeSpec string `env:"SESSION_PURGE_SPEC" env-default:"*/15 * * * *"`

	BrevoAPIKey      string `env:"BREVO_API_KEY"`
	EmailSender      string `env:"EMAIL_SENDER"`
	EmailSenderName  string `env:"EMAIL_SENDER_NAME"`
	ReviewAlertEmail string `env:"REVIEW_ALERT_EMAIL"`

	SeedUserName     string `env:"SEED_USER_FULL_NAME"`
	SeedUserEmail    string `env:"SEED_USER_EMAIL"`
	SeedUserPassword string `env:"SEED_USER_PASSWORD"`
}

// Load reads an optional .env file and then the process environment.
func Load(envFile string) (*Config, error) {
	if err := godotenv.Load(envFile); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		log.Println("Warning: .env file not found, reading from system environment variables")
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == Production
}

func (c *Config) EmailEnabled() bool {
	return c.BrevoAPIKey != "" && c.EmailSender != "" && c.EmailSenderName != ""
}
