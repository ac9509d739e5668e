package identity

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists identity maps as Redis hashes, one hash per
// (entity type, scope) pair. It is the backend of choice when several
// operator machines need to share maps without a shared filesystem.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a Redis-backed identity map store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: "migration:idmap:",
	}
}

func (s *RedisStore) key(entityType, scope string) string {
	return fmt.Sprintf("%s%s:%s", s.prefix, entityType, scope)
}

// Load reads a previously persisted map, or returns an empty map if the hash
// does not exist.
func (s *RedisStore) Load(ctx context.Context, entityType, scope string) (*Map, error) {
	m := NewMap(entityType, scope)

	fields, err := s.client.HGetAll(ctx, s.key(entityType, scope)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load identity map %s/%s from redis: %w", entityType, scope, err)
	}

	entries := make(map[string]int64, len(fields))
	for sourceID, raw := range fields {
		destID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("corrupt identity map %s/%s: source %s maps to %q", entityType, scope, sourceID, raw)
		}
		entries[sourceID] = destID
	}
	m.restore(entries)
	return m, nil
}

// Save replaces the stored hash with the full map inside one transaction, so
// readers never observe a partially written map.
func (s *RedisStore) Save(ctx context.Context, m *Map) error {
	key := s.key(m.EntityType, m.Scope)

	entries := m.Entries()
	fields := make(map[string]any, len(entries))
	for sourceID, destID := range entries {
		fields[sourceID] = strconv.FormatInt(destID, 10)
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, key)
	if len(fields) > 0 {
		pipe.HSet(ctx, key, fields)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save identity map %s/%s to redis: %w", m.EntityType, m.Scope, err)
	}
	return nil
}
