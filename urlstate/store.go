package urlstate

import (
	"context"
	"net/url"
	"sync"
)

// Store holds the serialized state of a list, typically the address bar.
// Replace overwrites the current entry; it never appends history.
type Store interface {
	Load(ctx context.Context) (url.Values, error)
	Replace(ctx context.Context, values url.Values) error
}

// MemoryStore is an in-process Store that records every replace.
type MemoryStore struct {
	mu      sync.Mutex
	current url.Values
	history []string
}

// NewMemoryStore returns a MemoryStore seeded with a raw query string.
// An unparsable seed starts empty.
func NewMemoryStore(raw string) *MemoryStore {
	values, err := url.ParseQuery(raw)
	if err != nil {
		values = url.Values{}
	}
	return &MemoryStore{current: values}
}

func (s *MemoryStore) Load(_ context.Context) (url.Values, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneValues(s.current), nil
}

func (s *MemoryStore) Replace(_ context.Context, values url.Values) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = cloneValues(values)
	s.history = append(s.history, values.Encode())
	return nil
}

// Encoded returns the current query string.
func (s *MemoryStore) Encoded() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Encode()
}

// History returns every replaced query string in order.
func (s *MemoryStore) History() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.history...)
}

// URLStore keeps the state in the query of a URL, the way a browser address
// bar does with history replace.
type URLStore struct {
	mu sync.Mutex
	u  url.URL
}

// NewURLStore returns a URLStore over a copy of u.
func NewURLStore(u *url.URL) *URLStore {
	return &URLStore{u: *u}
}

func (s *URLStore) Load(_ context.Context) (url.Values, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return url.ParseQuery(s.u.RawQuery)
}

func (s *URLStore) Replace(_ context.Context, values url.Values) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.u.RawQuery = values.Encode()
	return nil
}

// URL returns a copy of the current URL.
func (s *URLStore) URL() *url.URL {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.u
	return &u
}

func cloneValues(values url.Values) url.Values {
	out := make(url.Values, len(values))
	for k, v := range values {
		out[k] = append([]string(nil), v...)
	}
	return out
}
