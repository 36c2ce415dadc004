package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/yourusername/exam-session-api/internal/config"
)

// Redis используется только для коротких команд блокировки (SET NX, EVAL),
// поэтому тайм-ауты небольшие: зависший вызов должен быстро вернуть ошибку запросу.
const (
	redisDialTimeout = 3 * time.Second
	redisIOTimeout   = time.Second
	redisPingTimeout = 5 * time.Second
)

// NewUniversalRedisClient подключается к Redis в режиме single, sentinel или cluster
// и проверяет соединение PING.
func NewUniversalRedisClient(cfg config.RedisConfig) (redis.UniversalClient, error) {
	addrs := redisAddrs(cfg)
	if len(addrs) == 0 {
		return nil, fmt.Errorf("redis configuration error: Addrs or Addr must be provided")
	}

	mode := cfg.Mode
	if mode == "" {
		mode = "single"
	}

	var client redis.UniversalClient
	switch mode {
	case "single":
		client = redis.NewClient(&redis.Options{
			Addr:         addrs[0],
			Password:     cfg.Password,
			DB:           cfg.DB,
			DialTimeout:  redisDialTimeout,
			ReadTimeout:  redisIOTimeout,
			WriteTimeout: redisIOTimeout,
		})
	case "sentinel":
		if cfg.MasterName == "" {
			return nil, fmt.Errorf("redis sentinel mode requires MasterName")
		}
		client = redis.NewFailoverClient(&redis.FailoverOptions{
			MasterName:    cfg.MasterName,
			SentinelAddrs: addrs,
			Password:      cfg.Password,
			DB:            cfg.DB,
			DialTimeout:   redisDialTimeout,
			ReadTimeout:   redisIOTimeout,
			WriteTimeout:  redisIOTimeout,
		})
	case "cluster":
		// В кластере нет номеров БД: cfg.DB игнорируется
		client = redis.NewClusterClient(&redis.ClusterOptions{
			Addrs:        addrs,
			Password:     cfg.Password,
			DialTimeout:  redisDialTimeout,
			ReadTimeout:  redisIOTimeout,
			WriteTimeout: redisIOTimeout,
		})
	default:
		return nil, fmt.Errorf("unsupported redis mode: %s", mode)
	}

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis (mode: %s, addrs: %v): %w", mode, addrs, err)
	}

	log.Printf("[Redis] Подключено (mode: %s, addrs: %v)", mode, addrs)
	return client, nil
}

// redisAddrs возвращает список адресов; Addr используется, если Addrs пуст
func redisAddrs(cfg config.RedisConfig) []string {
	if len(cfg.Addrs) > 0 {
		return cfg.Addrs
	}
	if cfg.Addr != "" {
		return []string{cfg.Addr}
	}
	return nil
}
