package metadb

import (
	"sync"

	"github.com/google/uuid"
)

// memBackend is a transient storeBackend for tests. Records are kept so that
// LoadAll replays them, which lets tests reuse one backend across store
// instances the way a bolt file is reused across opens.
type memBackend struct {
	mu      sync.Mutex
	records map[string]map[uuid.UUID]entryRecord
}

func newMemBackend() storeBackend {
	return &memBackend{records: make(map[string]map[uuid.UUID]entryRecord)}
}

func (b *memBackend) PutRecord(namespace string, id uuid.UUID, rec entryRecord) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	ns := b.records[namespace]
	if ns == nil {
		ns = make(map[uuid.UUID]entryRecord)
		b.records[namespace] = ns
	}
	ns[id] = rec
	return nil
}

func (b *memBackend) LoadAll(fn func(namespace string, id uuid.UUID, rec entryRecord) error) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ns, recs := range b.records {
		for id, rec := range recs {
			if err := fn(ns, id, rec); err != nil {
				return err
			}
		}
	}
	return nil
}

func (b *memBackend) Close() error {
	return nil
}
