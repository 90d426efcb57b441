// Package lock serializes work per account id inside one process.
package lock

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

type entry struct {
	ch   chan struct{}
	refs int
}

// Keyed hands out one mutex per key. Entries are dropped once nobody holds
// or waits for them.
type Keyed struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*entry
}

// NewKeyed returns an empty Keyed lock set.
func NewKeyed() *Keyed {
	return &Keyed{entries: make(map[uuid.UUID]*entry)}
}

func (k *Keyed) acquire(id uuid.UUID) *entry {
	k.mu.Lock()
	defer k.mu.Unlock()
	e, ok := k.entries[id]
	if !ok {
		e = &entry{ch: make(chan struct{}, 1)}
		k.entries[id] = e
	}
	e.refs++
	return e
}

func (k *Keyed) release(id uuid.UUID, e *entry) {
	k.mu.Lock()
	defer k.mu.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(k.entries, id)
	}
}

// Lock acquires the locks of every id in ascending order, so two callers
// locking overlapping sets cannot deadlock. Duplicates are locked once.
// The returned func releases everything; it must be called exactly once.
func (k *Keyed) Lock(ctx context.Context, ids ...uuid.UUID) (func(), error) {
	sorted := dedupe(ids)
	held := make([]uuid.UUID, 0, len(sorted))
	heldEntries := make([]*entry, 0, len(sorted))

	unlock := func() {
		for i := len(held) - 1; i >= 0; i-- {
			<-heldEntries[i].ch
			k.release(held[i], heldEntries[i])
		}
	}

	for _, id := range sorted {
		e := k.acquire(id)
		select {
		case e.ch <- struct{}{}:
			held = append(held, id)
			heldEntries = append(heldEntries, e)
		case <-ctx.Done():
			k.release(id, e)
			unlock()
			return nil, ctx.Err()
		}
	}
	return unlock, nil
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(ids))
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}
