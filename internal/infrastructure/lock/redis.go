package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Cafeteria-api/internal/domain"
	"github.com/jhoicas/Cafeteria-api/pkg/config"
	"github.com/jhoicas/Cafeteria-api/pkg/logger"
)

// RedisLocker bloqueo distribuido por clave con redislock.
type RedisLocker struct {
	client  *redislock.Client
	ttl     time.Duration
	retry   time.Duration
	retries int
	log     *logger.Logger
}

// NewRedisClient abre el cliente y verifica la conexión con PING.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Address, err)
	}
	return rdb, nil
}

// NewRedisLocker construye el locker sobre un cliente ya conectado.
func NewRedisLocker(rdb redislock.RedisClient, cfg config.LockConfig, log *logger.Logger) *RedisLocker {
	return &RedisLocker{
		client:  redislock.New(rdb),
		ttl:     cfg.TTL,
		retry:   cfg.RetryDelay,
		retries: cfg.Retries,
		log:     log,
	}
}

// Lock obtiene las claves en orden. Si alguna no se obtiene, libera las ya tomadas
// y devuelve domain.ErrLockNotObtained.
func (l *RedisLocker) Lock(ctx context.Context, keys ...string) (func(), error) {
	keys = sortedUnique(keys)
	held := make([]*redislock.Lock, 0, len(keys))
	release := func() {
		for i := len(held) - 1; i >= 0; i-- {
			// contexto propio: la liberación debe ocurrir aunque ctx ya esté cancelado
			if err := held[i].Release(context.Background()); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
				l.log.Error().Err(err).Str("key", held[i].Key()).Msg("error liberando bloqueo")
			}
		}
	}

	opts := &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(l.retry), l.retries),
	}
	for _, k := range keys {
		lk, err := l.client.Obtain(ctx, k, l.ttl, opts)
		if errors.Is(err, redislock.ErrNotObtained) {
			l.log.Warn().Str("key", k).Msg("no se pudo obtener el bloqueo")
			release()
			return nil, fmt.Errorf("%w: %s", domain.ErrLockNotObtained, k)
		}
		if err != nil {
			release()
			return nil, fmt.Errorf("obtener bloqueo %s: %w", k, err)
		}
		held = append(held, lk)
	}
	return release, nil
}
