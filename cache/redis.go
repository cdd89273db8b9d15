package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// RefreshChannel carries a RefreshEvent after every ownership change.
	RefreshChannel = "collection:refresh"

	VersionPrefix   = "collection:version:" // collection:version:<user>
	RateLimitPrefix = "ratelimit:"          // ratelimit:<scope>:<subject>
)

// RefreshEvent tells listeners which views to revalidate.
type RefreshEvent struct {
	UserID   string `json:"userId"`
	Platform string `json:"platform"`
	Path     string `json:"path"`
	Version  int64  `json:"version"`
}

// Redis holds refresh signalling and rate-limit counters. A nil *Redis is valid and does nothing.
type Redis struct {
	client *redis.Client
}

// Connect dials addr and verifies the connection. addr is host:port or a redis:// URL.
func Connect(addr, password string) (*Redis, error) {
	opts := &redis.Options{Addr: addr, DB: 0}
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		opts = parsed
	}
	if password != "" {
		opts.Password = password
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second
	opts.PoolSize = 10
	opts.MinIdleConns = 2
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return &Redis{client: client}, nil
}

func (r *Redis) Close() error {
	if r == nil || r.client == nil {
		return nil
	}
	return r.client.Close()
}

func (r *Redis) Ping(ctx context.Context) error {
	if r == nil || r.client == nil {
		return nil
	}
	return r.client.Ping(ctx).Err()
}

// ==================== REFRESH SIGNAL ====================

// Refresh bumps the user's collection version and publishes a RefreshEvent for "/".
func (r *Redis) Refresh(ctx context.Context, userID, platform string) error {
	if r == nil || r.client == nil {
		return nil
	}
	version, err := r.client.Incr(ctx, VersionPrefix+userID).Result()
	if err != nil {
		return fmt.Errorf("bump collection version: %w", err)
	}

	payload, err := json.Marshal(RefreshEvent{UserID: userID, Platform: platform, Path: "/", Version: version})
	if err != nil {
		return err
	}
	if err := r.client.Publish(ctx, RefreshChannel, payload).Err(); err != nil {
		return fmt.Errorf("publish refresh: %w", err)
	}
	return nil
}

// Version returns the user's collection version, 0 if the user never toggled anything.
func (r *Redis) Version(ctx context.Context, userID string) (int64, error) {
	if r == nil || r.client == nil {
		return 0, nil
	}
	v, err := r.client.Get(ctx, VersionPrefix+userID).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

// Subscribe streams refresh events until ctx is done.
func (r *Redis) Subscribe(ctx context.Context) (<-chan RefreshEvent, error) {
	if r == nil || r.client == nil {
		return nil, errors.New("redis not configured")
	}
	sub := r.client.Subscribe(ctx, RefreshChannel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, err
	}

	out := make(chan RefreshEvent)
	go func() {
		defer close(out)
		defer sub.Close()
		msgs := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var ev RefreshEvent
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					continue
				}
				select {
				case out <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

// ==================== RATE LIMITING ====================

// CheckRateLimit counts a request against a fixed window for key.
func (r *Redis) CheckRateLimit(ctx context.Context, key string, maxRequests int, window time.Duration) (bool, int, error) {
	if r == nil || r.client == nil {
		return true, maxRequests, nil
	}

	full := RateLimitPrefix + key
	count, err := r.client.Incr(ctx, full).Result()
	if err != nil {
		return false, 0, err
	}
	if count == 1 {
		if err := r.client.Expire(ctx, full, window).Err(); err != nil {
			return false, 0, err
		}
	}

	remaining := maxRequests - int(count)
	if remaining < 0 {
		return false, 0, nil
	}
	return true, remaining, nil
}
