package redis

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const (
	// DefaultLockTTL — время жизни блокировки, если владелец не освободил её (упал процесс)
	DefaultLockTTL = 10 * time.Second
	// lockRetryInterval — пауза между попытками захвата занятой блокировки
	lockRetryInterval = 25 * time.Millisecond
	lockKeyPrefix     = "lock:student:"
)

// releaseScript удаляет ключ, только если он всё ещё принадлежит владельцу токена
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// LockRepo реализует repository.NameLocker поверх Redis (SET NX PX).
// Позволяет нескольким инстансам API, работающим с одной базой, сериализовать
// изменения одного студента.
type LockRepo struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewLockRepo создает репозиторий блокировок и возвращает ошибку при проблемах
func NewLockRepo(client redis.UniversalClient, ttl time.Duration) (*LockRepo, error) {
	if client == nil {
		return nil, fmt.Errorf("Redis client cannot be nil for LockRepo")
	}
	if ttl <= 0 {
		ttl = DefaultLockTTL
	}
	return &LockRepo{client: client, ttl: ttl}, nil
}

// Lock захватывает блокировку ключа, опрашивая Redis до успеха или отмены ctx
func (r *LockRepo) Lock(ctx context.Context, key string) (func(), error) {
	redisKey := lockKeyPrefix + key
	token := uuid.NewString()

	for {
		ok, err := r.client.SetNX(ctx, redisKey, token, r.ttl).Result()
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
			return nil, fmt.Errorf("failed to acquire lock %s: %w", redisKey, err)
		}
		if ok {
			return func() { r.release(redisKey, token) }, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(lockRetryInterval):
		}
	}
}

// release освобождает блокировку. Используется отдельный контекст, чтобы
// блокировка снималась даже после отмены контекста запроса.
func (r *LockRepo) release(redisKey, token string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := releaseScript.Run(ctx, r.client, []string{redisKey}, token).Err(); err != nil && !errors.Is(err, redis.Nil) {
		log.Printf("[LockRepo] Не удалось освободить блокировку %s: %v", redisKey, err)
	}
}
