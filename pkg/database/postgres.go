package database

import (
	"errors"
	"fmt"
	"log"
	"time"

	migrateV4 "github.com/golang-migrate/migrate/v4"
	migratePostgres "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Запросы короткие и касаются одного студента, большой пул не нужен
const (
	maxOpenConns    = 10
	maxIdleConns    = 5
	connMaxLifetime = time.Hour
)

// NewPostgresDB открывает gorm-подключение к PostgreSQL (драйвер pgx)
func NewPostgresDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(gormPostgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)

	return db, nil
}

// ClosePostgresDB закрывает пул соединений, ошибки только логируются
func ClosePostgresDB(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("[Database] Не удалось получить *sql.DB при закрытии: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Printf("[Database] Ошибка закрытия подключения: %v", err)
	}
}

// MigrateDB применяет все новые миграции из sourceURL (например, "file://migrations").
// Отсутствие изменений ошибкой не считается.
func MigrateDB(db *gorm.DB, sourceURL string) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB for migrations: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("database is unreachable before migrations: %w", err)
	}

	driver, err := migratePostgres.WithInstance(sqlDB, &migratePostgres.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migrate postgres driver: %w", err)
	}
	m, err := migrateV4.NewWithDatabaseInstance(sourceURL, "postgres", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance for %s: %w", sourceURL, err)
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrateV4.ErrNoChange) {
			log.Printf("[Database] Миграции из %s: изменений нет", sourceURL)
			return nil
		}
		return fmt.Errorf("migrate up failed: %w", err)
	}

	version, dirty, _ := m.Version()
	log.Printf("[Database] Миграции применены, версия схемы %d (dirty: %t)", version, dirty)
	return nil
}
