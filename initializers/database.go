package initializers

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/basit/pdf-proxy/models"
)

// ConnectToDatabase opens Postgres for postgres:// DSNs and a SQLite file
// otherwise. Tables are only created on SQLite; in Postgres they belong to
// the system that issues the links.
func ConnectToDatabase(dsn string) (*gorm.DB, error) {
	gormConfig := &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)}

	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		db, err := gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), gormConfig)
		if err != nil {
			return nil, fmt.Errorf("connect to postgres: %w", err)
		}
		log.Info().Msg("connected to postgres")
		return db, nil
	}

	db, err := gorm.Open(sqlite.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dsn, err)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	log.Info().Str("dsn", dsn).Msg("using sqlite for local development")
	return db, nil
}

// Migrate creates the link and event tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Link{},
		&models.ViewEvent{},
		&models.DownloadEvent{},
	); err != nil {
		return fmt.Errorf("migrate database schema: %w", err)
	}
	return nil
}
