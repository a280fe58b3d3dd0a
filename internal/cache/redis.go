package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Domenick1991/flightbooking/config"
	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client     *redis.Client
	flightsTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, flightsTTL time.Duration) *RedisCache {
	return NewRedisCacheFromClient(
		redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		flightsTTL,
	)
}

func NewRedisCacheFromClient(client *redis.Client, flightsTTL time.Duration) *RedisCache {
	return &RedisCache{client: client, flightsTTL: flightsTTL}
}

// GetFlights returns the cached unfiltered flight listing, or nil on a miss,
// together with the listing version to hand back to SetFlights.
func (c *RedisCache) GetFlights(ctx context.Context) ([]domain.Flight, int64, error) {
	vals, err := c.client.MGet(ctx, flightsKey(), flightsVersionKey()).Result()
	if err != nil {
		return nil, 0, err
	}

	var version int64
	if raw, ok := vals[1].(string); ok {
		if version, err = strconv.ParseInt(raw, 10, 64); err != nil {
			return nil, 0, fmt.Errorf("parse flights cache version: %w", err)
		}
	}

	raw, ok := vals[0].(string)
	if !ok {
		return nil, version, nil
	}
	var flights []domain.Flight
	if err := json.Unmarshal([]byte(raw), &flights); err != nil {
		return nil, 0, err
	}
	return flights, version, nil
}

// SetFlights stores the listing only if no invalidation happened since the
// version was read, so a listing loaded before a flight was created is
// never cached after that creation.
func (c *RedisCache) SetFlights(ctx context.Context, flights []domain.Flight, version int64) error {
	payload, err := json.Marshal(flights)
	if err != nil {
		return err
	}

	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, flightsVersionKey()).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != version {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, flightsKey(), payload, c.flightsTTL)
			return nil
		})
		return err
	}, flightsVersionKey())
	if errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	return err
}

// InvalidateFlights drops the cached listing and bumps its version.
func (c *RedisCache) InvalidateFlights(ctx context.Context) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, flightsVersionKey())
		pipe.Del(ctx, flightsKey())
		return nil
	})
	return err
}

// releaseLockScript deletes the lock only while it still carries the
// caller's token, so an expired holder cannot drop a newer lock.
var releaseLockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// AcquireSeatLock reports whether the caller now holds the lock for the seat.
// The returned token must be passed to ReleaseSeatLock.
func (c *RedisCache) AcquireSeatLock(ctx context.Context, flightID int64, seatNo string, ttl time.Duration) (string, bool, error) {
	token := uuid.NewString()
	ok, err := c.client.SetNX(ctx, seatLockKey(flightID, seatNo), token, ttl).Result()
	if err != nil || !ok {
		return "", false, err
	}
	return token, true, nil
}

func (c *RedisCache) ReleaseSeatLock(ctx context.Context, flightID int64, seatNo, token string) error {
	return releaseLockScript.Run(ctx, c.client, []string{seatLockKey(flightID, seatNo)}, token).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func flightsKey() string {
	return "cache:flights"
}

func flightsVersionKey() string {
	return "cache:flights:version"
}

func seatLockKey(flightID int64, seatNo string) string {
	return fmt.Sprintf("lock:flight:%d:seat:%s", flightID, seatNo)
}
