// Package app собирает зависимости сервиса по конфигурации:
// хранилище (JSON-файлы или PostgreSQL) и блокировки по имени студента.
package app

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/yourusername/exam-session-api/internal/config"
	"github.com/yourusername/exam-session-api/internal/domain/repository"
	"github.com/yourusername/exam-session-api/internal/pkg/lock"
	jsonRepo "github.com/yourusername/exam-session-api/internal/repository/jsonfile"
	pgRepo "github.com/yourusername/exam-session-api/internal/repository/postgres"
	redisRepo "github.com/yourusername/exam-session-api/internal/repository/redis"
	"github.com/yourusername/exam-session-api/internal/service"
	"github.com/yourusername/exam-session-api/pkg/database"
)

// LoadDotEnv подгружает .env из рабочего каталога, если он есть.
// Уже заданные переменные окружения не перезаписываются.
func LoadDotEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Файл .env не загружен (%v), используются переменные окружения", err)
	}
}

// Storage — открытые репозитории и функция освобождения ресурсов
type Storage struct {
	Users   repository.UserRepository
	Results repository.TestResultRepository
	Close   func()
}

// OpenStorage открывает хранилище согласно storage.driver
func OpenStorage(cfg *config.Config) (*Storage, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverPostgres:
		db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
		if err != nil {
			return nil, err
		}
		if err := database.MigrateDB(db, cfg.Database.MigrationsPath); err != nil {
			database.ClosePostgresDB(db)
			return nil, err
		}
		log.Println("Хранилище: PostgreSQL")
		return &Storage{
			Users:   pgRepo.NewUserRepo(db),
			Results: pgRepo.NewTestResultRepo(db),
			Close:   func() { database.ClosePostgresDB(db) },
		}, nil

	default:
		userRepo, err := jsonRepo.NewUserRepo(cfg.Storage.DataDir)
		if err != nil {
			return nil, err
		}
		resultRepo, err := jsonRepo.NewTestResultRepo(cfg.Storage.DataDir)
		if err != nil {
			return nil, err
		}
		log.Printf("Хранилище: JSON-файлы в %s", cfg.Storage.DataDir)
		return &Storage{Users: userRepo, Results: resultRepo, Close: func() {}}, nil
	}
}

// NewLocker возвращает блокировку по имени: Redis, если он включён
// (несколько инстансов на одной базе), иначе в памяти процесса
func NewLocker(cfg *config.Config) (repository.NameLocker, func(), error) {
	if !cfg.Redis.Enabled {
		return lock.NewKeyedMutex(), func() {}, nil
	}

	client, err := database.NewUniversalRedisClient(cfg.Redis)
	if err != nil {
		return nil, nil, err
	}
	lockRepo, err := redisRepo.NewLockRepo(client, cfg.Redis.LockTTL)
	if err != nil {
		client.Close()
		return nil, nil, err
	}
	return lockRepo, func() { client.Close() }, nil
}

// NewTestSessionService собирает сервис тестовых сессий целиком.
// Возвращаемая функция закрывает хранилище и клиент Redis.
func NewTestSessionService(cfg *config.Config) (*service.TestSessionService, func(), error) {
	storage, err := OpenStorage(cfg)
	if err != nil {
		return nil, nil, err
	}
	locker, closeLocker, err := NewLocker(cfg)
	if err != nil {
		storage.Close()
		return nil, nil, err
	}

	svc := service.NewTestSessionService(storage.Users, storage.Results, locker, cfg.SecondChance.Password)
	cleanup := func() {
		closeLocker()
		storage.Close()
	}
	return svc, cleanup, nil
}
