package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Collection serializes a whole slice of T under a single blob key.
type Collection[T any] struct {
	store    BlobStore
	key      string
	observer PersistObserver
}

// NewCollection binds a collection to key.
func NewCollection[T any](store BlobStore, key string, observer PersistObserver) *Collection[T] {
	return &Collection[T]{store: store, key: key, observer: observerOrNop(observer)}
}

// Load decodes the stored slice. found is false when nothing has been persisted yet.
func (c *Collection[T]) Load(ctx context.Context) (items []T, found bool, err error) {
	raw, err := c.store.Get(ctx, c.key)
	if errors.Is(err, ErrBlobNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false, fmt.Errorf("decode %s: %w", c.key, err)
	}
	return items, true, nil
}

// Save overwrites the stored slice.
func (c *Collection[T]) Save(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.key, err)
	}
	return persist(ctx, c.store, c.observer, c.key, raw)
}

func persist(ctx context.Context, store BlobStore, observer PersistObserver, key string, raw []byte) error {
	start := time.Now()
	err := store.Put(ctx, key, raw)
	observer.ObservePersist(key, time.Since(start), err)
	if err != nil {
		return fmt.Errorf("persist %s: %w", key, err)
	}
	return nil
}
