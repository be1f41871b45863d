package repository

import (
	"context"
	"errors"
	"os"

	"github.com/noah-isme/uks-api/pkg/storage"
)

// FileBlobStore writes each blob to <key>.json under the storage directory.
type FileBlobStore struct {
	storage *storage.LocalStorage
}

// NewFileBlobStore wraps a local storage handle.
func NewFileBlobStore(s *storage.LocalStorage) *FileBlobStore {
	return &FileBlobStore{storage: s}
}

func fileName(key string) string {
	return key + ".json"
}

// Get reads the blob file.
func (s *FileBlobStore) Get(_ context.Context, key string) ([]byte, error) {
	data, err := s.storage.Read(fileName(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrBlobNotFound
	}
	return data, err
}

// Put replaces the blob file.
func (s *FileBlobStore) Put(_ context.Context, key string, value []byte) error {
	return s.storage.Save(fileName(key), value)
}

// Delete removes the blob file.
func (s *FileBlobStore) Delete(_ context.Context, key string) error {
	return s.storage.Delete(fileName(key))
}
