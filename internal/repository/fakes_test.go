package repository

import (
	"context"
	"errors"
	"sync"
	"time"
)

var errStorageFull = errors.New("storage full")

// failingStore wraps a memory store and fails Put while fail is set.
type failingStore struct {
	*MemoryBlobStore
	mu   sync.Mutex
	fail bool
	puts int
}

func newFailingStore() *failingStore {
	return &failingStore{MemoryBlobStore: NewMemoryBlobStore()}
}

func (s *failingStore) setFail(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail = fail
}

func (s *failingStore) Put(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	s.puts++
	fail := s.fail
	s.mu.Unlock()
	if fail {
		return errStorageFull
	}
	return s.MemoryBlobStore.Put(ctx, key, value)
}

type persistCall struct {
	key string
	err error
}

type recordingObserver struct {
	mu    sync.Mutex
	calls []persistCall
}

func (o *recordingObserver) ObservePersist(key string, _ time.Duration, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.calls = append(o.calls, persistCall{key: key, err: err})
}

func plainHasher(plain string) (string, error) {
	return "hashed:" + plain, nil
}
