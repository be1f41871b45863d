package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/noah-isme/uks-api/internal/models"
)

// SessionRepository persists the single current session under the user key.
type SessionRepository struct {
	store    BlobStore
	observer PersistObserver
}

// NewSessionRepository creates a new instance of SessionRepository.
func NewSessionRepository(store BlobStore, observer PersistObserver) *SessionRepository {
	return &SessionRepository{store: store, observer: observerOrNop(observer)}
}

// Load returns the persisted session, or nil when none exists.
func (r *SessionRepository) Load(ctx context.Context) (*models.Session, error) {
	raw, err := r.store.Get(ctx, KeySession)
	if errors.Is(err, ErrBlobNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var session models.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &session, nil
}

// Save overwrites the persisted session.
func (r *SessionRepository) Save(ctx context.Context, session *models.Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return persist(ctx, r.store, r.observer, KeySession, raw)
}

// Clear removes the persisted session.
func (r *SessionRepository) Clear(ctx context.Context) error {
	if err := r.store.Delete(ctx, KeySession); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
