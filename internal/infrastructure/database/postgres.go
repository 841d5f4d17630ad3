package database

import (
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/NefariousNGGA/backend/internal/infrastructure/database/models"
)

func NewPostgres(dsn string, maxOpenConns int) (*gorm.DB, error) {
	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags), // io writer
		logger.Config{
			SlowThreshold:             300 * time.Millisecond, // Slow SQL threshold
			LogLevel:                  logger.Warn,            // Log level
			IgnoreRecordNotFoundError: true,                   // Ignore ErrRecordNotFound error for logger
			Colorful:                  true,                   // Enable color
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormLogger,
	})
	if err != nil {
		return nil, err
	}

	if maxOpenConns > 0 {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(maxOpenConns)
	}

	return db, nil
}

// Migrate creates or updates every table the lair needs.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Identity{},
		&models.Post{},
		&models.Comment{},
		&models.Reaction{},
		&models.Submission{},
		&models.Notification{},
	)
}
