package persistence

import (
	"context"
	"database/sql"
	"log/slog"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"inkwell/internal/config"
)

type DB struct {
	Logger *slog.Logger
	Config *config.Config

	db *gorm.DB
}

func (db *DB) Model(a any) *gorm.DB {
	return db.db.Model(a)
}

func (db *DB) WithContext(ctx context.Context) *gorm.DB {
	return db.db.WithContext(ctx)
}

func (db *DB) EstimatedCount(tableName string) (int64, error) {
	var count int64
	return count, db.db.Raw(
		`SELECT reltuples::bigint AS count 
				FROM pg_class 
				WHERE relname = ?`, tableName,
	).Scan(&count).Error
}

func (db *DB) Init(_ context.Context) error {
	if db.Config.DatabaseURL == "" {
		return ErrNoDatabaseURL
	}

	gormDB, err := gorm.Open(postgres.Open(db.Config.DatabaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return err
	}

	db.db = gormDB

	return nil
}

func (db *DB) DB() (*sql.DB, error) {
	return db.db.DB()
}

func (db *DB) HealthCheck(ctx context.Context) error {
	sqlDB, err := db.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (db *DB) Shutdown(_ context.Context) error {
	sqlDB, err := db.db.DB()
	if err != nil {
		return nil
	}
	return sqlDB.Close()
}
