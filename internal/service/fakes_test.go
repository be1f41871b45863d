package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/uks-api/internal/models"
	"github.com/noah-isme/uks-api/internal/repository"
)

var errDiskFull = errors.New("disk full")

type notice struct {
	title   string
	desc    string
	success bool
}

type fakeNotifier struct {
	mu      sync.Mutex
	notices []notice
}

func (f *fakeNotifier) Success(_ context.Context, title, description string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notices = append(f.notices, notice{title: title, desc: description, success: true})
}

func (f *fakeNotifier) Failure(_ context.Context, title, description string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notices = append(f.notices, notice{title: title, desc: description})
}

func (f *fakeNotifier) last() notice {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.notices) == 0 {
		return notice{}
	}
	return f.notices[len(f.notices)-1]
}

func (f *fakeNotifier) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.notices)
}

// flakyStore fails every Put while fail is set.
type flakyStore struct {
	*repository.MemoryBlobStore
	fail bool
}

func newFlakyStore() *flakyStore {
	return &flakyStore{MemoryBlobStore: repository.NewMemoryBlobStore()}
}

func (s *flakyStore) Put(ctx context.Context, key string, value []byte) error {
	if s.fail {
		return errDiskFull
	}
	return s.MemoryBlobStore.Put(ctx, key, value)
}

var testHasher = repository.BcryptHasher(bcrypt.MinCost)

func loadedUsers(t *testing.T, store repository.BlobStore) *repository.UserRepository {
	t.Helper()
	repo := repository.NewUserRepository(store, nil, testHasher)
	require.NoError(t, repo.Load(context.Background()))
	return repo
}

func loadedHealth(t *testing.T, store repository.BlobStore) *repository.HealthRepository {
	t.Helper()
	repo := repository.NewHealthRepository(store, nil)
	require.NoError(t, repo.Load(context.Background()))
	return repo
}

func classOf(class string) *string {
	return &class
}

var (
	budi  = models.UserInfo{ID: "2", Name: "Budi Santoso", Username: "budi", Role: models.RoleStudent, Class: classOf("6A")}
	siti  = models.UserInfo{ID: "3", Name: "Siti Nurhaliza", Username: "siti", Role: models.RoleStudent, Class: classOf("6A")}
	wati  = models.UserInfo{ID: "4", Name: "Ibu Wati", Username: "guru", Role: models.RoleTeacher, Class: classOf("6A")}
	dedi  = models.UserInfo{ID: "5", Name: "Pak Dedi", Username: "dedi", Role: models.RoleTeacher, Class: classOf("5B")}
	admin = models.UserInfo{ID: "1", Name: "Admin Utama", Username: "admin", Role: models.RoleAdmin}
)
