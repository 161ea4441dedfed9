package database

import (
	"fmt"

	config "github.com/anjiri1684/review_board/configs"
	"github.com/anjiri1684/review_board/logger"
	"github.com/anjiri1684/review_board/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func Connect(cfg *config.Config) (*gorm.DB, error) {
	logLevel := gormlogger.Warn
	if cfg.IsProduction() {
		logLevel = gormlogger.Error
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
		Logger:                 gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Review{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// SeedUser creates the configured demo account once. It is a no-op when
// no seed email is configured.
func SeedUser(db *gorm.DB, cfg *config.Config, log *logger.Logger) error {
	if cfg.SeedUserEmail == "" {
		return nil
	}

	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", cfg.SeedUserEmail).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check for seed user: %w", err)
	}
	if count > 0 {
		log.Debug("seed user already exists", zap.String("email", cfg.SeedUserEmail))
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(cfg.SeedUserPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed user password: %w", err)
	}

	user := models.User{
		FullName: cfg.SeedUserName,
		Email:    cfg.SeedUserEmail,
		Password: string(hashedPassword),
	}
	if err := db.Create(&user).Error; err != nil {
		return fmt.Errorf("failed to seed user: %w", err)
	}

	log.Info("seed user created", zap.String("email", user.Email))
	return nil
}
