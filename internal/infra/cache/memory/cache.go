package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Clock источник текущего времени
type Clock func() time.Time

type entry struct {
	value     int
	expiresAt time.Time
}

// Cache потокобезопасный in-memory кэш гранулярности с TTL.
// Годится для одного экземпляра сервиса; при нескольких экземплярах используйте redis.
type Cache struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]entry
	ttl     time.Duration
	now     Clock
}

// NewCache создает кэш с указанным TTL
func NewCache(ttl time.Duration) *Cache {
	return NewCacheWithClock(ttl, time.Now)
}

// NewCacheWithClock создает кэш с подменяемыми часами (для тестов)
func NewCacheWithClock(ttl time.Duration, now Clock) *Cache {
	return &Cache{
		entries: make(map[uuid.UUID]entry),
		ttl:     ttl,
		now:     now,
	}
}

// Get возвращает значение, если оно есть и не истекло
func (c *Cache) Get(_ context.Context, barbershopID uuid.UUID) (int, bool) {
	c.mu.RLock()
	e, ok := c.entries[barbershopID]
	c.mu.RUnlock()

	if !ok {
		return 0, false
	}
	if !c.now().Before(e.expiresAt) {
		c.mu.Lock()
		// запись могла быть обновлена, пока лок был отпущен
		if cur, ok := c.entries[barbershopID]; ok && cur.expiresAt.Equal(e.expiresAt) {
			delete(c.entries, barbershopID)
		}
		c.mu.Unlock()
		return 0, false
	}
	return e.value, true
}

// Set сохраняет значение на время TTL
func (c *Cache) Set(_ context.Context, barbershopID uuid.UUID, minutes int) error {
	c.mu.Lock()
	c.entries[barbershopID] = entry{value: minutes, expiresAt: c.now().Add(c.ttl)}
	c.mu.Unlock()
	return nil
}

// Delete удаляет запись барбершопа
func (c *Cache) Delete(_ context.Context, barbershopID uuid.UUID) error {
	c.mu.Lock()
	delete(c.entries, barbershopID)
	c.mu.Unlock()
	return nil
}

// Clear удаляет все записи
func (c *Cache) Clear(_ context.Context) error {
	c.mu.Lock()
	c.entries = make(map[uuid.UUID]entry)
	c.mu.Unlock()
	return nil
}

// Len количество записей, включая ещё не вычищенные истекшие
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
