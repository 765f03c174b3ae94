package database

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/justsurfingit/job-board/internal/config"
	"github.com/justsurfingit/job-board/internal/models"
)

const (
	pingAttempts = 6
	pingBackoff  = 500 * time.Millisecond
)

// Connect opens the postgres pool and waits for the server to accept connections.
func Connect(cfg config.DatabaseConfig, log logrus.FieldLogger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:               logger.Default.LogMode(logger.Warn),
		TranslateError:       true,
		DisableAutomaticPing: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get connection pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	err = retry(pingAttempts, pingBackoff, func() error {
		pingErr := sqlDB.Ping()
		if pingErr != nil {
			log.WithError(pingErr).Warn("postgres not ready yet")
		}
		return pingErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.WithField("host", cfg.Host).Info("database connection established")
	return db, nil
}

// Migrate creates or updates the tables, parents before children so the
// foreign keys resolve.
func Migrate(db *gorm.DB) error {
	tables := []interface{}{
		&models.User{},
		&models.Student{},
		&models.Category{},
		&models.Job{},
		&models.Application{},
	}
	for _, table := range tables {
		if err := db.AutoMigrate(table); err != nil {
			return fmt.Errorf("auto migrate %T: %w", table, err)
		}
	}
	return nil
}

// retry runs f until it succeeds, doubling the pause between attempts.
func retry(attempts int, sleep time.Duration, f func() error) error {
	var err error
	for i := 0; i < attempts; i++ {
		if err = f(); err == nil {
			return nil
		}
		if i < attempts-1 {
			time.Sleep(sleep)
			sleep *= 2
		}
	}
	return fmt.Errorf("failed after %d attempts: %w", attempts, err)
}
