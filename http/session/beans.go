package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// Beans are named values scoped to a single session,
// stored apart from the session cookie itself.
//
// Beans are not safe for concurrent use.
type Beans struct {
	vals  map[string]json.RawMessage
	dirty bool
}

// NewBeans constructs an empty *Beans.
func NewBeans() *Beans {
	return &Beans{vals: make(map[string]json.RawMessage)}
}

// Delete removes the bean under name.
func (b *Beans) Delete(name string) {
	if _, ok := b.vals[name]; !ok {
		return
	}

	delete(b.vals, name)
	b.dirty = true
}

// Dirty reports whether the beans changed since they were loaded or last saved.
func (b *Beans) Dirty() bool { return b.dirty }

// Get decodes the bean under name into dst.
// If no such bean exists, ErrNoBean is returned.
func (b *Beans) Get(name string, dst any) error {
	raw, ok := b.vals[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoBean, name)
	}

	return json.Unmarshal(raw, dst)
}

// Set stores v under name.
func (b *Beans) Set(name string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed encoding bean %s: %w", name, err)
	}

	b.vals[name] = raw
	b.dirty = true
	return nil
}

func (b *Beans) MarshalJSON() ([]byte, error) { return json.Marshal(b.vals) }

func (b *Beans) UnmarshalJSON(data []byte) error {
	vals := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &vals); err != nil {
		return err
	}

	b.vals = vals
	b.dirty = false
	return nil
}

func (b *Beans) clean() { b.dirty = false }

// A BeanStore loads and saves the Beans of a session by its ID.
type BeanStore interface {
	Load(ctx context.Context, sessionID string) (*Beans, error)
	Save(ctx context.Context, sessionID string, b *Beans) error
}

// A MemoryBeanStore keeps Beans in process memory.
// It suits tests and single-instance development servers.
type MemoryBeanStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewMemoryBeanStore constructs an empty *MemoryBeanStore.
func NewMemoryBeanStore() *MemoryBeanStore {
	return &MemoryBeanStore{data: make(map[string][]byte)}
}

func (m *MemoryBeanStore) Load(_ context.Context, sessionID string) (*Beans, error) {
	m.mu.Lock()
	raw, ok := m.data[sessionID]
	m.mu.Unlock()

	b := NewBeans()
	if !ok {
		return b, nil
	}

	if err := json.Unmarshal(raw, b); err != nil {
		return nil, fmt.Errorf("%w: beans for session %s: %s", ErrNotValid, sessionID, err)
	}

	return b, nil
}

func (m *MemoryBeanStore) Save(_ context.Context, sessionID string, b *Beans) error {
	raw, err := json.Marshal(b)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.data[sessionID] = raw
	m.mu.Unlock()
	return nil
}

const beanKeyPrefix = "dispatch:beans:"

// A RedisBeanStore keeps Beans in Redis, expiring them alongside the session.
type RedisBeanStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisBeanStore constructs a *RedisBeanStore using client.
// Beans expire ttl after they were last saved; a zero ttl keeps them forever.
func NewRedisBeanStore(client *redis.Client, ttl time.Duration) *RedisBeanStore {
	return &RedisBeanStore{client: client, ttl: ttl}
}

func (s *RedisBeanStore) Load(ctx context.Context, sessionID string) (*Beans, error) {
	raw, err := s.client.Get(ctx, beanKeyPrefix+sessionID).Bytes()
	if errors.Is(err, redis.Nil) {
		return NewBeans(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed loading beans for session %s: %w", sessionID, err)
	}

	b := NewBeans()
	if err := json.Unmarshal(raw, b); err != nil {
		return nil, fmt.Errorf("%w: beans for session %s: %s", ErrNotValid, sessionID, err)
	}

	return b, nil
}

func (s *RedisBeanStore) Save(ctx context.Context, sessionID string, b *Beans) error {
	raw, err := json.Marshal(b)
	if err != nil {
		return err
	}

	if err := s.client.Set(ctx, beanKeyPrefix+sessionID, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed saving beans for session %s: %w", sessionID, err)
	}

	return nil
}
