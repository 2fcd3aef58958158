package launch

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Store exposes the read-only scan the retrieval endpoint needs.
type Store interface {
	// Scan returns every record in the table, in store order.
	Scan(ctx context.Context) ([]Launch, error)
}

// MemoryStore implements Store with an in-memory slice, used for fixtures and tests.
type MemoryStore struct {
	items []Launch
	err   error
}

// NewMemoryStore returns a MemoryStore preloaded with the supplied launches.
func NewMemoryStore(items []Launch) *MemoryStore {
	return &MemoryStore{items: append([]Launch(nil), items...)}
}

// NewFailingStore returns a store whose every scan fails with err.
func NewFailingStore(err error) *MemoryStore {
	return &MemoryStore{err: err}
}

// Scan returns a copy of the preloaded launches.
func (s *MemoryStore) Scan(ctx context.Context) ([]Launch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.err != nil {
		return nil, s.err
	}
	return append(make([]Launch, 0, len(s.items)), s.items...), nil
}

// LoadFixtures reads a YAML (or JSON) list of launches from path.
func LoadFixtures(path string) ([]Launch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fixtures: %w", err)
	}

	var items []Launch
	if err := yaml.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parsing fixtures %s: %w", path, err)
	}
	return items, nil
}
