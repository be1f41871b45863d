package repository

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/uks-api/internal/models"
)

// PasswordHasher turns a plaintext password into its stored form.
type PasswordHasher func(plain string) (string, error)

// BcryptHasher hashes with bcrypt at the given cost.
func BcryptHasher(cost int) PasswordHasher {
	return func(plain string) (string, error) {
		hash, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
		if err != nil {
			return "", err
		}
		return string(hash), nil
	}
}

// UserRepository holds the identity set in memory over the users blob.
type UserRepository struct {
	mu     sync.RWMutex
	users  []models.User
	store  *Collection[models.User]
	hasher PasswordHasher
}

// NewUserRepository creates a new instance of UserRepository. A nil hasher uses bcrypt's default cost.
func NewUserRepository(store BlobStore, observer PersistObserver, hasher PasswordHasher) *UserRepository {
	if hasher == nil {
		hasher = BcryptHasher(bcrypt.DefaultCost)
	}
	return &UserRepository{
		store:  NewCollection[models.User](store, KeyUsers, observer),
		hasher: hasher,
	}
}

// Load reads the identity set, installing the hashed seed identities when absent.
func (r *UserRepository) Load(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, found, err := r.store.Load(ctx)
	if err != nil {
		return err
	}
	if !found {
		users = SeedUsers()
		for i := range users {
			hash, err := r.hasher(users[i].Password)
			if err != nil {
				return err
			}
			users[i].Password = hash
		}
		if err := r.store.Save(ctx, users); err != nil {
			return err
		}
	}
	r.users = users
	return nil
}

// List returns identities matching the filter in insertion order.
func (r *UserRepository) List(_ context.Context, filter models.UserFilter) []models.User {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]models.User, 0, len(r.users))
	for _, user := range r.users {
		if filter.Matches(user) {
			result = append(result, cloneUser(user))
		}
	}
	return result
}

// FindByID returns a user by identifier.
func (r *UserRepository) FindByID(_ context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	idx := r.indexOf(func(u models.User) bool { return u.ID == id })
	if idx < 0 {
		return nil, ErrNotFound
	}
	user := cloneUser(r.users[idx])
	return &user, nil
}

// FindByUsername returns a user by exact username.
func (r *UserRepository) FindByUsername(_ context.Context, username string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	idx := r.indexOf(func(u models.User) bool { return u.Username == username })
	if idx < 0 {
		return nil, ErrNotFound
	}
	user := cloneUser(r.users[idx])
	return &user, nil
}

// CountByRole counts identities with the role.
func (r *UserRepository) CountByRole(_ context.Context, role models.UserRole) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.countRole(role)
}

func (r *UserRepository) countRole(role models.UserRole) int {
	count := 0
	for _, user := range r.users {
		if user.Role == role {
			count++
		}
	}
	return count
}

// Create appends a new identity; the password must already be hashed.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.usernameTaken(user.Username, "") {
		return ErrDuplicateUsername
	}
	next := append(cloneUsers(r.users), cloneUser(*user))
	if err := r.store.Save(ctx, next); err != nil {
		return err
	}
	r.users = next
	return nil
}

// Update replaces the identity with the same id.
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(func(u models.User) bool { return u.ID == user.ID })
	if idx < 0 {
		return ErrNotFound
	}
	if r.usernameTaken(user.Username, user.ID) {
		return ErrDuplicateUsername
	}
	next := cloneUsers(r.users)
	next[idx] = cloneUser(*user)
	if err := r.store.Save(ctx, next); err != nil {
		return err
	}
	r.users = next
	return nil
}

// Delete removes the identity. Removing the only admin returns ErrLastAdmin.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(func(u models.User) bool { return u.ID == id })
	if idx < 0 {
		return ErrNotFound
	}
	if r.users[idx].Role == models.RoleAdmin && r.countRole(models.RoleAdmin) <= 1 {
		return ErrLastAdmin
	}
	next := make([]models.User, 0, len(r.users)-1)
	for i, user := range r.users {
		if i != idx {
			next = append(next, cloneUser(user))
		}
	}
	if err := r.store.Save(ctx, next); err != nil {
		return err
	}
	r.users = next
	return nil
}

func (r *UserRepository) indexOf(match func(models.User) bool) int {
	for i := range r.users {
		if match(r.users[i]) {
			return i
		}
	}
	return -1
}

func (r *UserRepository) usernameTaken(username, exceptID string) bool {
	for _, user := range r.users {
		if user.ID != exceptID && strings.EqualFold(user.Username, username) {
			return true
		}
	}
	return false
}

func cloneUsers(users []models.User) []models.User {
	result := make([]models.User, 0, len(users)+1)
	for _, user := range users {
		result = append(result, cloneUser(user))
	}
	return result
}

func cloneUser(u models.User) models.User {
	if u.Class != nil {
		class := *u.Class
		u.Class = &class
	}
	return u
}
