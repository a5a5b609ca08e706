package ratelimiter

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultKeyPrefix namespaces bucket keys in Redis.
const DefaultKeyPrefix = "hookrelay:ratelimit:"

// takeScript mirrors MemoryStore.Take atomically. Times are Unix milliseconds.
// KEYS[1] bucket hash; ARGV capacity, rate, interval, now, n, ttl.
var takeScript = redis.NewScript(`
local capacity = tonumber(ARGV[1])
local rate = tonumber(ARGV[2])
local interval = tonumber(ARGV[3])
local now = tonumber(ARGV[4])
local n = tonumber(ARGV[5])
local ttl = tonumber(ARGV[6])

local state = redis.call('HMGET', KEYS[1], 'tokens', 'refill')
local tokens = tonumber(state[1])
local last = tonumber(state[2])
if tokens == nil or last == nil then
  tokens = capacity
  last = now
end

if now > last then
  local intervals = math.floor((now - last) / interval)
  if intervals > 0 then
    local credit = math.min(intervals, math.floor(capacity / rate) + 1) * rate
    tokens = math.min(tokens + credit, capacity)
    last = last + intervals * interval
  end
end

local remaining = tokens - n
if remaining >= 0 then
  tokens = remaining
end
redis.call('HSET', KEYS[1], 'tokens', tokens, 'refill', last)
redis.call('PEXPIRE', KEYS[1], ttl)
return {remaining, last + interval}
`)

// RedisStore shares buckets between relay instances through Redis.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisStore creates a Redis-backed store. An empty prefix selects DefaultKeyPrefix.
func NewRedisStore(client redis.UniversalClient, prefix string) (*RedisStore, error) {
	if client == nil {
		return nil, ErrNilStore
	}
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &RedisStore{client: client, prefix: prefix}, nil
}

// Take implements Store.
func (s *RedisStore) Take(ctx context.Context, key string, n int, cfg Config, now time.Time) (int, time.Time, error) {
	ttl := cfg.refillTime() + cfg.RefillInterval
	vals, err := takeScript.Run(ctx, s.client, []string{s.prefix + key},
		cfg.Capacity,
		cfg.RefillRate,
		cfg.RefillInterval.Milliseconds(),
		now.UnixMilli(),
		n,
		ttl.Milliseconds(),
	).Int64Slice()
	if err != nil {
		return 0, time.Time{}, errors.Join(ErrStoreUnavailable, err)
	}
	if len(vals) != 2 {
		return 0, time.Time{}, ErrStoreUnavailable
	}
	return int(vals[0]), time.UnixMilli(vals[1]), nil
}

// Reset implements Store.
func (s *RedisStore) Reset(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}
