package alert

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	corealert "github.com/gridwerk/microgrid/core/alert"
)

const keyPrefix = "alert:"

// RedisStore persists alerts in Redis with a TTL, so restarts keep the
// active alert list and entries expire on their own.
type RedisStore struct {
	cli *redis.Client
	ttl time.Duration
}

// NewRedisStore connects to the Redis instance described by the URL
// (redis://[:password@]host:port[/db]).
func NewRedisStore(url string, ttl time.Duration) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	cli := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := cli.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &RedisStore{cli: cli, ttl: ttl}, nil
}

// Put stores the alert under its id, refreshing the TTL.
func (s *RedisStore) Put(a corealert.Alert) error {
	b, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("marshal alert: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.cli.Set(ctx, keyPrefix+a.ID, b, s.ttl).Err()
}

// Get returns the alert with the given id.
func (s *RedisStore) Get(id string) (corealert.Alert, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	b, err := s.cli.Get(ctx, keyPrefix+id).Bytes()
	if err == redis.Nil {
		return corealert.Alert{}, false, nil
	}
	if err != nil {
		return corealert.Alert{}, false, err
	}
	var a corealert.Alert
	if err := json.Unmarshal(b, &a); err != nil {
		return corealert.Alert{}, false, err
	}
	return a, true, nil
}

// Active scans the alert keyspace and returns active alerts newest first,
// optionally filtered by severity.
func (s *RedisStore) Active(severity corealert.Severity) ([]corealert.Alert, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	var out []corealert.Alert
	iter := s.cli.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		b, err := s.cli.Get(ctx, iter.Val()).Bytes()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return nil, err
		}
		var a corealert.Alert
		if err := json.Unmarshal(b, &a); err != nil {
			continue
		}
		if a.Status != corealert.StatusActive {
			continue
		}
		if severity != "" && a.Severity != severity {
			continue
		}
		out = append(out, a)
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out, nil
}

// Close releases the client.
func (s *RedisStore) Close() error {
	return s.cli.Close()
}
