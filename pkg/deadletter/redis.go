package deadletter

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/hookrelay/pkg/relay"
)

// RedisStore keeps dead letters in a capped Redis list, newest first.
type RedisStore struct {
	client     redis.UniversalClient
	key        string
	maxEntries int
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore creates a store backed by client.
func NewRedisStore(client redis.UniversalClient, opts ...Option) (*RedisStore, error) {
	if client == nil {
		return nil, ErrNilClient
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	return &RedisStore{
		client:     client,
		key:        o.key,
		maxEntries: o.maxEntries,
	}, nil
}

// Record pushes dl to the head of the list and trims the tail.
func (s *RedisStore) Record(ctx context.Context, dl relay.DeadLetter) error {
	data, err := json.Marshal(NewEntry(dl))
	if err != nil {
		return errors.Join(ErrRecordFailed, err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, s.key, data)
		pipe.LTrim(ctx, s.key, 0, int64(s.maxEntries-1))
		return nil
	})
	if err != nil {
		return errors.Join(ErrRecordFailed, err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (s *RedisStore) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}

	raw, err := s.client.LRange(ctx, s.key, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, errors.Join(ErrReadFailed, err)
	}

	entries := make([]Entry, 0, len(raw))
	for _, item := range raw {
		var e Entry
		if err := json.Unmarshal([]byte(item), &e); err != nil {
			return nil, errors.Join(ErrCorruptEntry, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
