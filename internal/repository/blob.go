package repository

import (
	"context"
	"errors"
	"time"
)

// Fixed keys of the persisted blobs.
const (
	KeySession    = "user"
	KeyHealthData = "healthData"
	KeyComplaints = "complaints"
	KeyUsers      = "users"
)

var (
	// ErrBlobNotFound is returned by BlobStore.Get when nothing is stored under the key.
	ErrBlobNotFound = errors.New("blob not found")
	// ErrNotFound signals that an entity id is unknown.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateUsername rejects a second identity with the same username.
	ErrDuplicateUsername = errors.New("username already taken")
	// ErrLastAdmin rejects removing the only remaining admin.
	ErrLastAdmin = errors.New("cannot delete the last admin")
)

// BlobStore persists whole serialized values under fixed string keys.
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// PersistObserver receives the outcome of every blob write.
type PersistObserver interface {
	ObservePersist(key string, duration time.Duration, err error)
}

type nopObserver struct{}

func (nopObserver) ObservePersist(string, time.Duration, error) {}

func observerOrNop(o PersistObserver) PersistObserver {
	if o == nil {
		return nopObserver{}
	}
	return o
}
