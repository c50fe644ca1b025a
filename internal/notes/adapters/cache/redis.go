// Package cache содержит реализации кеша заметок.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/avyukd/bobo-notes/internal/notes/config"
	"github.com/avyukd/bobo-notes/internal/notes/domain/entities"
	"github.com/avyukd/bobo-notes/internal/notes/ports/cache"
	"github.com/avyukd/bobo-notes/pkg/logger"
	"github.com/avyukd/bobo-notes/pkg/resilience"
)

// Константы для логирования.
const (
	LogMethodGet        = "NoteCache.Get"
	LogMethodSet        = "NoteCache.Set"
	LogMethodInvalidate = "NoteCache.Invalidate"
	LogStaleVersion     = "note changed since read, cache write skipped"

	ErrorFailedToConnect = "failed to connect to redis"
	ErrorFailedToGet     = "failed to get note from redis"
	ErrorFailedToSet     = "failed to set note in redis"
	ErrorFailedToDelete  = "failed to delete note from redis"
	ErrorFailedToClose   = "failed to close redis connection"
	ErrorFailedToDecode  = "failed to decode cached note"
	ErrorFailedToEncode  = "failed to encode note"
)

const (
	keyPrefix     = "notes:note:"
	versionSuffix = ":version"

	// versionTTL должен с запасом превышать время одного запроса.
	versionTTL = 24 * time.Hour
)

// setIfVersionScript пишет заметку, только если поколение ключа равно ARGV[1].
// Отсутствующее поколение считается нулевым.
var setIfVersionScript = redis.NewScript(`
local current = redis.call('GET', KEYS[2])
if current == false then
	current = '0'
end
if current ~= ARGV[1] then
	return 0
end
redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[3])
return 1
`)

// NoteKey возвращает ключ Redis для заметки.
func NoteKey(id uuid.UUID) string {
	return keyPrefix + id.String()
}

// VersionKey возвращает ключ Redis с поколением записи заметки.
func VersionKey(id uuid.UUID) string {
	return keyPrefix + id.String() + versionSuffix
}

// RedisNoteCache реализует cache.NoteCache поверх Redis.
// Все обращения идут через circuit breaker.
type RedisNoteCache struct {
	client     *redis.Client
	defaultTTL time.Duration
	breaker    *resilience.CircuitBreaker
}

var _ cache.NoteCache = (*RedisNoteCache)(nil)

// NewRedisNoteCache подключается к Redis и проверяет соединение.
func NewRedisNoteCache(ctx context.Context, cfg *config.RedisConfig) (*RedisNoteCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:            cfg.GetAddress(),
		Password:        cfg.Password,
		DB:              cfg.DB,
		DialTimeout:     cfg.ConnectTimeout,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		PoolSize:        cfg.PoolSize,
		MinIdleConns:    cfg.MinIdle,
		ConnMaxIdleTime: cfg.IdleTimeout,
		ConnMaxLifetime: cfg.MaxConnLifetime,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%s: %w", ErrorFailedToConnect, err)
	}

	return NewRedisNoteCacheWithClient(client, cfg.DefaultTTL), nil
}

// NewRedisNoteCacheWithClient оборачивает готовый клиент.
func NewRedisNoteCacheWithClient(client *redis.Client, defaultTTL time.Duration) *RedisNoteCache {
	return &RedisNoteCache{
		client:     client,
		defaultTTL: defaultTTL,
		breaker:    resilience.NewCircuitBreaker("redis-note-cache", resilience.DefaultCircuitBreakerConfig()),
	}
}

// Get возвращает заметку из кеша или nil при промахе, а также поколение ключа.
// Заметка и поколение читаются одной командой MGET.
func (c *RedisNoteCache) Get(ctx context.Context, id uuid.UUID) (*entities.Note, cache.Version, error) {
	log := logger.Log(ctx).With(zap.String("method", LogMethodGet), zap.Stringer("noteID", id))

	var values []any
	err := c.breaker.Execute(ctx, func() error {
		var err error
		values, err = c.client.MGet(ctx, NoteKey(id), VersionKey(id)).Result()
		return err
	})
	if err != nil {
		log.Warn(ctx, ErrorFailedToGet, zap.Error(err))
		return nil, 0, fmt.Errorf("%s: %w", ErrorFailedToGet, err)
	}

	version, err := parseVersion(values[1])
	if err != nil {
		log.Warn(ctx, ErrorFailedToDecode, zap.Error(err))
		return nil, 0, fmt.Errorf("%s: %w", ErrorFailedToDecode, err)
	}

	raw, ok := values[0].(string)
	if !ok {
		return nil, version, nil
	}

	var note entities.Note
	if err := json.Unmarshal([]byte(raw), &note); err != nil {
		log.Warn(ctx, ErrorFailedToDecode, zap.Error(err))
		return nil, version, fmt.Errorf("%s: %w", ErrorFailedToDecode, err)
	}
	return &note, version, nil
}

// Set сохраняет заметку с TTL по умолчанию, если поколение ключа не менялось с seen.
func (c *RedisNoteCache) Set(ctx context.Context, note *entities.Note, seen cache.Version) error {
	log := logger.Log(ctx).With(zap.String("method", LogMethodSet), zap.Stringer("noteID", note.ID))

	raw, err := json.Marshal(note)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrorFailedToEncode, err)
	}

	var stored int64
	if err := c.breaker.Execute(ctx, func() error {
		var err error
		stored, err = setIfVersionScript.Run(ctx, c.client,
			[]string{NoteKey(note.ID), VersionKey(note.ID)},
			strconv.FormatInt(int64(seen), 10), raw, c.defaultTTL.Milliseconds(),
		).Int64()
		return err
	}); err != nil {
		log.Warn(ctx, ErrorFailedToSet, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToSet, err)
	}

	if stored == 0 {
		log.Debug(ctx, LogStaleVersion, zap.Int64("seen", int64(seen)))
	}
	return nil
}

// Invalidate удаляет заметку из кеша и сдвигает поколение ключа.
func (c *RedisNoteCache) Invalidate(ctx context.Context, id uuid.UUID) error {
	log := logger.Log(ctx).With(zap.String("method", LogMethodInvalidate), zap.Stringer("noteID", id))

	if err := c.breaker.Execute(ctx, func() error {
		_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, NoteKey(id))
			pipe.Incr(ctx, VersionKey(id))
			pipe.Expire(ctx, VersionKey(id), versionTTL)
			return nil
		})
		return err
	}); err != nil {
		log.Warn(ctx, ErrorFailedToDelete, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToDelete, err)
	}
	return nil
}

func parseVersion(value any) (cache.Version, error) {
	raw, ok := value.(string)
	if !ok {
		return 0, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid cache version %q: %w", raw, err)
	}
	return cache.Version(v), nil
}

// Close закрывает соединение с Redis.
func (c *RedisNoteCache) Close() error {
	if err := c.client.Close(); err != nil {
		return fmt.Errorf("%s: %w", ErrorFailedToClose, err)
	}
	return nil
}
