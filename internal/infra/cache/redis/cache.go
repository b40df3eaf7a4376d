package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	defaultPrefix = "barber-slots:granularity"
	scanBatch     = 100
)

var (
	// ErrCache возвращается при ошибках обращения к redis
	ErrCache = errors.New("redis.cache: command failed")
)

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// Cache кэш гранулярности в redis, общий для нескольких экземпляров сервиса.
// Ошибки чтения считаются промахом: источником истины остаётся база.
type Cache struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
	logger Logger
}

// NewCache создает кэш поверх клиента redis
func NewCache(client redis.UniversalClient, prefix string, ttl time.Duration, logger Logger) *Cache {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &Cache{
		client: client,
		prefix: prefix,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *Cache) key(barbershopID uuid.UUID) string {
	return c.prefix + ":" + barbershopID.String()
}

// Get читает значение; отсутствие ключа, битое значение и ошибка redis - промах
func (c *Cache) Get(ctx context.Context, barbershopID uuid.UUID) (int, bool) {
	raw, err := c.client.Get(ctx, c.key(barbershopID)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("Get: redis error for barbershop=%s: %v", barbershopID, err)
		}
		return 0, false
	}

	minutes, err := strconv.Atoi(raw)
	if err != nil {
		c.logger.Warn("Get: malformed cached value %q for barbershop=%s", raw, barbershopID)
		return 0, false
	}
	return minutes, true
}

// Set сохраняет значение с TTL (SET EX)
func (c *Cache) Set(ctx context.Context, barbershopID uuid.UUID, minutes int) error {
	if err := c.client.Set(ctx, c.key(barbershopID), minutes, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: Set: %w", ErrCache, err)
	}
	return nil
}

// Delete удаляет ключ барбершопа
func (c *Cache) Delete(ctx context.Context, barbershopID uuid.UUID) error {
	if err := c.client.Del(ctx, c.key(barbershopID)).Err(); err != nil {
		return fmt.Errorf("%w: Delete: %w", ErrCache, err)
	}
	return nil
}

// Clear удаляет все ключи с префиксом кэша через SCAN, не блокируя redis как KEYS
func (c *Cache) Clear(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, c.prefix+":*", scanBatch).Result()
		if err != nil {
			return fmt.Errorf("%w: Clear - scan: %w", ErrCache, err)
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("%w: Clear - del: %w", ErrCache, err)
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}
