// Package redisstore persists list state in Redis so a user's list view
// (page, size and filters) survives across sessions and devices.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultKeyPrefix is prepended to every session key.
const DefaultKeyPrefix = "listview:state:"

// ErrSessionRequired is returned by New when the session key is empty.
var ErrSessionRequired = errors.New("redisstore: session key is required")

// Store is a urlstate.Store backed by one Redis string per session. The value
// is the encoded query string. Replace overwrites it and refreshes the TTL.
type Store struct {
	client redis.UniversalClient
	prefix string
	key    string
	ttl    time.Duration
}

// Option configures a Store.
type Option func(*Store)

// WithTTL expires the state after ttl of inactivity. Zero keeps it forever.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		if ttl >= 0 {
			s.ttl = ttl
		}
	}
}

// WithKeyPrefix replaces DefaultKeyPrefix.
func WithKeyPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New returns a Store for session. The session is usually the user ID joined
// with the list name, e.g. "42:employees".
func New(client redis.UniversalClient, session string, opts ...Option) (*Store, error) {
	if session == "" {
		return nil, ErrSessionRequired
	}

	s := &Store{
		client: client,
		prefix: DefaultKeyPrefix,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.key = s.prefix + session
	return s, nil
}

// Key returns the Redis key of the session.
func (s *Store) Key() string {
	return s.key
}

// Load returns the stored values. A missing key is an empty state, not an error.
func (s *Store) Load(ctx context.Context) (url.Values, error) {
	raw, err := s.client.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return url.Values{}, nil
	}
	if err != nil {
		return url.Values{}, fmt.Errorf("get list state %s: %w", s.key, err)
	}

	values, err := url.ParseQuery(raw)
	if err != nil {
		return url.Values{}, fmt.Errorf("parse list state %s: %w", s.key, err)
	}
	return values, nil
}

// Replace overwrites the stored values.
func (s *Store) Replace(ctx context.Context, values url.Values) error {
	if err := s.client.Set(ctx, s.key, values.Encode(), s.ttl).Err(); err != nil {
		return fmt.Errorf("set list state %s: %w", s.key, err)
	}
	return nil
}

// Clear removes the stored values.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("delete list state %s: %w", s.key, err)
	}
	return nil
}
