package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/uks-api/internal/dto"
	"github.com/noah-isme/uks-api/internal/models"
	"github.com/noah-isme/uks-api/internal/repository"
	appErrors "github.com/noah-isme/uks-api/pkg/errors"
)

func newUserService(t *testing.T, store repository.BlobStore) (*UserService, *repository.UserRepository, *fakeNotifier) {
	t.Helper()
	notify := &fakeNotifier{}
	repo := loadedUsers(t, store)
	return NewUserService(repo, testHasher, nil, nil, notify), repo, notify
}

func TestCreateUser(t *testing.T) {
	svc, repo, notify := newUserService(t, repository.NewMemoryBlobStore())
	ctx := context.Background()

	info, err := svc.Create(ctx, dto.CreateUserRequest{Name: "Rina", Username: "rina", Password: "rina123", Role: "siswa", Class: "5B"})
	require.NoError(t, err)
	assert.Equal(t, "5B", info.ClassName())
	assert.Equal(t, notice{title: "Pengguna Ditambahkan", desc: "Rina berhasil ditambahkan sebagai siswa", success: true}, notify.last())

	stored, err := repo.FindByUsername(ctx, "rina")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("rina123")))
}

func TestCreateAdminDropsClass(t *testing.T) {
	svc, _, _ := newUserService(t, repository.NewMemoryBlobStore())

	info, err := svc.Create(context.Background(), dto.CreateUserRequest{Name: "Admin Dua", Username: "admin2", Password: "x", Role: "admin", Class: "6A"})
	require.NoError(t, err)
	assert.Nil(t, info.Class)
}

func TestCreateUserValidation(t *testing.T) {
	svc, _, notify := newUserService(t, repository.NewMemoryBlobStore())
	ctx := context.Background()

	tests := []struct {
		name string
		req  dto.CreateUserRequest
		err  *appErrors.Error
		msg  string
	}{
		{name: "missing name", req: dto.CreateUserRequest{Username: "x", Password: "x", Role: "siswa", Class: "6A"}, err: appErrors.ErrValidation, msg: "Semua kolom wajib diisi"},
		{name: "missing password", req: dto.CreateUserRequest{Name: "X", Username: "x", Role: "siswa", Class: "6A"}, err: appErrors.ErrValidation, msg: "Semua kolom wajib diisi"},
		{name: "duplicate username", req: dto.CreateUserRequest{Name: "X", Username: "budi", Password: "x", Role: "siswa", Class: "6A"}, err: appErrors.ErrConflict, msg: "Username sudah digunakan"},
		{name: "missing class", req: dto.CreateUserRequest{Name: "X", Username: "x", Password: "x", Role: "guru", Class: " "}, err: appErrors.ErrValidation, msg: "Kelas wajib diisi untuk Siswa dan Guru"},
		{name: "bad role", req: dto.CreateUserRequest{Name: "X", Username: "x", Password: "x", Role: "kepala"}, err: appErrors.ErrValidation, msg: "Peran tidak valid"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tc.req)
			assert.ErrorIs(t, err, tc.err)
			assert.Equal(t, notice{title: "Error", desc: tc.msg}, notify.last())
		})
	}
	assert.Len(t, svc.List(ctx, models.UserFilter{}), 5)
}

func TestPasswordTooLongForBcrypt(t *testing.T) {
	svc, _, notify := newUserService(t, repository.NewMemoryBlobStore())
	ctx := context.Background()
	long := strings.Repeat("a", 80)

	_, err := svc.Create(ctx, dto.CreateUserRequest{Name: "Rina", Username: "rina", Password: long, Role: "siswa", Class: "6A"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
	assert.Equal(t, 1, notify.count())
	assert.Equal(t, notice{title: "Error", desc: "Password maksimal 72 karakter"}, notify.last())

	_, err = svc.Update(ctx, "3", dto.UpdateUserRequest{Name: "Siti", Username: "siti", Password: long, Class: "6A"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
	assert.Equal(t, 2, notify.count())
	assert.Len(t, svc.List(ctx, models.UserFilter{}), 5)
}

func TestHasherFailureNotifies(t *testing.T) {
	notify := &fakeNotifier{}
	repo := loadedUsers(t, repository.NewMemoryBlobStore())
	broken := func(string) (string, error) { return "", errors.New("entropy exhausted") }
	svc := NewUserService(repo, broken, nil, nil, notify)

	_, err := svc.Create(context.Background(), dto.CreateUserRequest{Name: "Rina", Username: "rina", Password: "x", Role: "siswa", Class: "6A"})
	assert.ErrorIs(t, err, appErrors.ErrInternal)
	assert.Equal(t, 1, notify.count())
	assert.False(t, notify.last().success)
}

func TestUpdateUser(t *testing.T) {
	svc, repo, notify := newUserService(t, repository.NewMemoryBlobStore())
	ctx := context.Background()
	before, err := repo.FindByID(ctx, "3")
	require.NoError(t, err)

	info, err := svc.Update(ctx, "3", dto.UpdateUserRequest{Name: "Siti N.", Username: "siti", Role: "siswa", Class: "5B"})
	require.NoError(t, err)
	assert.Equal(t, "Siti N.", info.Name)
	assert.Equal(t, "5B", info.ClassName())
	assert.Equal(t, notice{title: "Pengguna Diperbarui", desc: "Siti N. berhasil diperbarui", success: true}, notify.last())

	after, err := repo.FindByID(ctx, "3")
	require.NoError(t, err)
	assert.Equal(t, before.Password, after.Password)

	_, err = svc.Update(ctx, "3", dto.UpdateUserRequest{Name: "Siti", Username: "siti", Password: "baru", Class: "5B"})
	require.NoError(t, err)
	after, err = repo.FindByID(ctx, "3")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(after.Password), []byte("baru")))
}

func TestUpdateUserRejections(t *testing.T) {
	svc, _, _ := newUserService(t, repository.NewMemoryBlobStore())
	ctx := context.Background()

	_, err := svc.Update(ctx, "3", dto.UpdateUserRequest{Name: "Siti", Username: "siti", Role: "guru", Class: "6A"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	_, err = svc.Update(ctx, "3", dto.UpdateUserRequest{Name: "Siti", Username: "budi", Class: "6A"})
	assert.ErrorIs(t, err, appErrors.ErrConflict)

	_, err = svc.Update(ctx, "missing", dto.UpdateUserRequest{Name: "X", Username: "x"})
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestDeleteLastAdmin(t *testing.T) {
	svc, _, notify := newUserService(t, repository.NewMemoryBlobStore())
	ctx := context.Background()

	err := svc.Delete(ctx, "1")
	assert.ErrorIs(t, err, appErrors.ErrLastAdmin)
	assert.Equal(t, notice{title: "Error", desc: "Tidak dapat menghapus admin terakhir"}, notify.last())
	assert.Len(t, svc.List(ctx, models.UserFilter{}), 5)
}

func TestDeleteUser(t *testing.T) {
	svc, _, notify := newUserService(t, repository.NewMemoryBlobStore())
	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, "5"))
	assert.Equal(t, notice{title: "Pengguna Dihapus", desc: "Pak Dedi berhasil dihapus", success: true}, notify.last())
	_, err := svc.Get(ctx, "5")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, "5"), appErrors.ErrNotFound)
}

func TestListUsersHidesPasswords(t *testing.T) {
	svc, _, _ := newUserService(t, repository.NewMemoryBlobStore())
	role := models.RoleStudent

	users := svc.List(context.Background(), models.UserFilter{Role: &role})
	require.Len(t, users, 2)
	assert.Equal(t, "budi", users[0].Username)
}
