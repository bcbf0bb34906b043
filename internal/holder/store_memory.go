package holder

import (
	"context"
	"sync"

	id "cardledger/pkg/domain"
	"cardledger/pkg/sentinel"
)

// InMemoryDirectory keeps holders in a map. It backs unit tests and local
// runs without Postgres.
type InMemoryDirectory struct {
	mu      sync.RWMutex
	holders map[id.HolderID]Holder
}

func NewInMemoryDirectory() *InMemoryDirectory {
	return &InMemoryDirectory{holders: make(map[id.HolderID]Holder)}
}

func (d *InMemoryDirectory) Save(_ context.Context, h Holder) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.holders[h.ID] = h
	return nil
}

func (d *InMemoryDirectory) FindByID(_ context.Context, holderID id.HolderID) (Holder, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if h, ok := d.holders[holderID]; ok {
		return h, nil
	}
	return Holder{}, sentinel.ErrNotFound
}

func (d *InMemoryDirectory) ExistsByID(_ context.Context, holderID id.HolderID) (bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.holders[holderID]
	return ok, nil
}
