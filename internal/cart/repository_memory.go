package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// memoryRepository stores marshaled snapshots, so loads rebuild the
// cart from its serialized form exactly like the durable backends do.
type memoryRepository struct {
	mu        sync.RWMutex
	snapshots map[string][]byte
}

// NewMemoryRepository creates an in-process cart store for development
// and tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{snapshots: make(map[string][]byte)}
}

func (r *memoryRepository) Load(ctx context.Context, cartID string) (*Cart, error) {
	r.mu.RLock()
	payload, ok := r.snapshots[cartID]
	r.mu.RUnlock()

	if !ok {
		return nil, nil
	}

	var c Cart
	if err := json.Unmarshal(payload, &c); err != nil {
		return nil, fmt.Errorf("corrupt cart snapshot: %w", err)
	}
	if c.Items == nil {
		c.Items = []*Item{}
	}
	return &c, nil
}

func (r *memoryRepository) Save(ctx context.Context, c *Cart) error {
	payload, err := json.Marshal(c)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.snapshots[c.ID] = payload
	r.mu.Unlock()
	return nil
}
