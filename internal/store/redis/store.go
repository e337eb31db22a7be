package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MrSnakeDoc/navs/internal/store"
	"github.com/redis/go-redis/v9"
)

// Store keeps links and groups in Redis. Each record is a JSON string key;
// a set per kind lists the names currently stored. Records never expire.
type Store struct {
	client *redis.Client
}

var _ store.Store = (*Store)(nil)

// NewStore creates a new Redis store
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
	}
}

// Ping checks that Redis answers.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to ping redis: %w", err)
	}
	return nil
}

// Close releases the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}

// saveMany writes records and their names in one pipeline.
func saveMany[T any](ctx context.Context, client *redis.Client, setKey string, records []T, nameOf func(T) string, keyOf func(string) string) error {
	if len(records) == 0 {
		return nil
	}

	pipe := client.Pipeline()
	for _, rec := range records {
		name := nameOf(rec)
		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("failed to marshal %s: %w", name, err)
		}
		pipe.Set(ctx, keyOf(name), data, 0)
		pipe.SAdd(ctx, setKey, name)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save records: %w", err)
	}
	return nil
}

// loadAll reads every record listed in setKey. Names whose key vanished are
// skipped.
func loadAll[T any](ctx context.Context, client *redis.Client, setKey string, keyOf func(string) string) ([]*T, error) {
	names, err := client.SMembers(ctx, setKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get record names: %w", err)
	}
	if len(names) == 0 {
		return []*T{}, nil
	}

	keys := make([]string, len(names))
	for i, name := range names {
		keys[i] = keyOf(name)
	}

	values, err := client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get records: %w", err)
	}

	records := make([]*T, 0, len(values))
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		rec := new(T)
		if err := json.Unmarshal([]byte(raw), rec); err != nil {
			return nil, fmt.Errorf("failed to unmarshal %s: %w", names[i], err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// deleteOne removes a record and its name. It reports store.ErrNotFound when
// the key did not exist.
func deleteOne(ctx context.Context, client *redis.Client, setKey, key, name string) error {
	var del *redis.IntCmd
	_, err := client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		del = pipe.Del(ctx, key)
		pipe.SRem(ctx, setKey, name)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", name, err)
	}
	if del.Val() == 0 {
		return fmt.Errorf("%s: %w", name, store.ErrNotFound)
	}
	return nil
}
