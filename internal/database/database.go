package database

import (
	"fmt"
	stdlog "log"
	"time"

	"secreto/backend/internal/models"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewGormLogger routes slow queries and SQL errors through the global zerolog logger.
func NewGormLogger() logger.Interface {
	sink := log.Logger.With().Str("component", "gorm").Logger()
	return logger.New(
		stdlog.New(sink, "", 0),
		logger.Config{
			SlowThreshold:             200 * time.Millisecond, // Slow SQL threshold
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true, // NotFound is a normal outcome here
			Colorful:                  false,
		},
	)
}

// Connect opens the postgres connection and runs migrations.
func Connect(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         NewGormLogger(),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the users, messages and favorite_edges tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.User{}, &models.Message{}, &models.FavoriteEdge{}); err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}
	return nil
}
