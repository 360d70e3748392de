package treestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

const (
	scanCount        = 500
	maxUpdateRetries = 5
)

// Redis stores each document under "<prefix>:<path>".
type Redis struct {
	client redis.UniversalClient
	prefix string
}

// NewRedis wraps a go-redis client.
func NewRedis(client redis.UniversalClient, prefix string) *Redis {
	if prefix == "" {
		prefix = "tree"
	}
	return &Redis{client: client, prefix: prefix}
}

func (r *Redis) key(path string) string {
	return r.prefix + ":" + path
}

func (r *Redis) descendantKeys(ctx context.Context, path string) ([]string, error) {
	pattern := globEscape(r.key(path)) + "/*"
	var keys []string
	iter := r.client.Scan(ctx, 0, pattern, scanCount).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scan %s: %w", path, err)
	}
	return keys, nil
}

func (r *Redis) Get(ctx context.Context, path string, dest interface{}) error {
	p, err := Clean(path)
	if err != nil {
		return err
	}
	raw, err := r.client.Get(ctx, r.key(p)).Bytes()
	switch {
	case err == nil:
		return decode(raw, dest)
	case !errors.Is(err, redis.Nil):
		return fmt.Errorf("get %s: %w", p, err)
	}

	keys, err := r.descendantKeys(ctx, p)
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return ErrNotFound
	}
	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return fmt.Errorf("mget %s: %w", p, err)
	}
	entries := make([]entry, 0, len(keys))
	for i, k := range keys {
		s, ok := values[i].(string)
		if !ok {
			// removed between SCAN and MGET
			continue
		}
		entries = append(entries, entry{Path: strings.TrimPrefix(k, r.prefix+":"), Value: []byte(s)})
	}
	raw, found, err := assemble(p, entries)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}
	return decode(raw, dest)
}

func (r *Redis) Exists(ctx context.Context, path string) (bool, error) {
	p, err := Clean(path)
	if err != nil {
		return false, err
	}
	n, err := r.client.Exists(ctx, r.key(p)).Result()
	if err != nil {
		return false, fmt.Errorf("exists %s: %w", p, err)
	}
	if n > 0 {
		return true, nil
	}
	keys, err := r.descendantKeys(ctx, p)
	if err != nil {
		return false, err
	}
	return len(keys) > 0, nil
}

func (r *Redis) Set(ctx context.Context, path string, value interface{}) error {
	p, err := Clean(path)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	stale, err := r.descendantKeys(ctx, p)
	if err != nil {
		return err
	}
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if len(stale) > 0 {
			pipe.Del(ctx, stale...)
		}
		pipe.Set(ctx, r.key(p), raw, 0)
		return nil
	})
	if err != nil {
		return fmt.Errorf("set %s: %w", p, err)
	}
	return nil
}

func (r *Redis) Update(ctx context.Context, path string, fields map[string]interface{}) error {
	p, err := Clean(path)
	if err != nil {
		return err
	}
	if err := checkKeys(fields); err != nil {
		return err
	}
	key := r.key(p)
	txf := func(tx *redis.Tx) error {
		existing, err := tx.Get(ctx, key).Bytes()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		merged, err := mergeObject(existing, fields)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, merged, 0)
			return nil
		})
		return err
	}
	for i := 0; i < maxUpdateRetries; i++ {
		err = r.client.Watch(ctx, txf, key)
		if !errors.Is(err, redis.TxFailedErr) {
			break
		}
	}
	if err != nil {
		return fmt.Errorf("update %s: %w", p, err)
	}
	return nil
}

func (r *Redis) Remove(ctx context.Context, path string) error {
	p, err := Clean(path)
	if err != nil {
		return err
	}
	keys, err := r.descendantKeys(ctx, p)
	if err != nil {
		return err
	}
	keys = append(keys, r.key(p))
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("remove %s: %w", p, err)
	}
	return nil
}

func (r *Redis) Increment(ctx context.Context, path string, delta int64) (int64, error) {
	p, err := Clean(path)
	if err != nil {
		return 0, err
	}
	n, err := r.client.IncrBy(ctx, r.key(p), delta).Result()
	if err != nil {
		if strings.Contains(err.Error(), "not an integer") {
			return 0, ErrNotCounter
		}
		return 0, fmt.Errorf("increment %s: %w", p, err)
	}
	return n, nil
}

func (r *Redis) SetIfAbsent(ctx context.Context, path string, value interface{}) (bool, error) {
	p, err := Clean(path)
	if err != nil {
		return false, err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return false, err
	}
	ok, err := r.client.SetNX(ctx, r.key(p), raw, 0).Result()
	if err != nil {
		return false, fmt.Errorf("setnx %s: %w", p, err)
	}
	return ok, nil
}

func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// globEscape quotes SCAN pattern metacharacters.
func globEscape(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
