package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/uks-api/internal/dto"
	"github.com/noah-isme/uks-api/internal/models"
	"github.com/noah-isme/uks-api/internal/repository"
	appErrors "github.com/noah-isme/uks-api/pkg/errors"
)

type userRepository interface {
	List(ctx context.Context, filter models.UserFilter) []models.User
	FindByID(ctx context.Context, id string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error
	CountByRole(ctx context.Context, role models.UserRole) int
}

// UserService handles identity management workflows.
type UserService struct {
	repo      userRepository
	hasher    repository.PasswordHasher
	validator *validator.Validate
	logger    *zap.Logger
	notifier  notifier
	newID     func() string
}

// NewUserService creates an instance of UserService.
func NewUserService(repo userRepository, hasher repository.PasswordHasher, validate *validator.Validate, logger *zap.Logger, notify notifier) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if hasher == nil {
		hasher = repository.BcryptHasher(bcrypt.DefaultCost)
	}
	return &UserService{
		repo:      repo,
		hasher:    hasher,
		validator: validate,
		logger:    logger,
		notifier:  notifierOrNop(notify),
		newID:     uuid.NewString,
	}
}

func (s *UserService) fail(ctx context.Context, err *appErrors.Error) error {
	s.notifier.Failure(ctx, titleError, err.Message)
	return err
}

// List returns identities without passwords.
func (s *UserService) List(ctx context.Context, filter models.UserFilter) []models.UserInfo {
	users := s.repo.List(ctx, filter)
	result := make([]models.UserInfo, 0, len(users))
	for _, user := range users {
		result = append(result, user.Info())
	}
	return result
}

// CountByRole reports how many identities hold each role.
func (s *UserService) CountByRole(ctx context.Context) map[models.UserRole]int {
	totals := make(map[models.UserRole]int, 3)
	for _, role := range []models.UserRole{models.RoleStudent, models.RoleTeacher, models.RoleAdmin} {
		totals[role] = s.repo.CountByRole(ctx, role)
	}
	return totals
}

// Get returns a user by ID.
func (s *UserService) Get(ctx context.Context, id string) (*models.UserInfo, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, msgUserNotFound)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load user")
	}
	info := user.Info()
	return &info, nil
}

type userFields struct {
	Name     string `validate:"required"`
	Username string `validate:"required"`
	Role     models.UserRole
	Class    *string
}

func (s *UserService) checkFields(ctx context.Context, fields userFields) error {
	if err := s.validator.Struct(fields); err != nil {
		return s.fail(ctx, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, msgRequiredFields))
	}
	if !fields.Role.Valid() {
		return s.fail(ctx, appErrors.Clone(appErrors.ErrValidation, msgInvalidRole))
	}
	if fields.Role.RequiresClass() && fields.Class == nil {
		return s.fail(ctx, appErrors.Clone(appErrors.ErrValidation, msgClassRequired))
	}
	return nil
}

func (s *UserService) mapRepoError(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrDuplicateUsername):
		return s.fail(ctx, appErrors.Clone(appErrors.ErrConflict, msgUsernameTaken))
	case errors.Is(err, repository.ErrNotFound):
		return s.fail(ctx, appErrors.Clone(appErrors.ErrNotFound, msgUserNotFound))
	case errors.Is(err, repository.ErrLastAdmin):
		return s.fail(ctx, appErrors.ErrLastAdmin)
	default:
		s.logger.Error("persist users failed", zap.Error(err))
		return s.fail(ctx, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, msgSaveFailed))
	}
}

// hashPassword rejects passwords bcrypt cannot hash before calling the hasher.
func (s *UserService) hashPassword(ctx context.Context, plain string) (string, error) {
	if len(plain) > maxPasswordBytes {
		return "", s.fail(ctx, appErrors.Clone(appErrors.ErrValidation, msgPasswordTooLong))
	}
	hash, err := s.hasher(plain)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", s.fail(ctx, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, msgPasswordTooLong))
		}
		s.logger.Error("hash password failed", zap.Error(err))
		return "", s.fail(ctx, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, msgSaveFailed))
	}
	return hash, nil
}

// RejectPayload reports a request body that could not be decoded.
func (s *UserService) RejectPayload(ctx context.Context, err error) error {
	return s.fail(ctx, payloadError(err))
}

func classFor(role models.UserRole, class string) *string {
	if role == models.RoleAdmin {
		return nil
	}
	return models.StringPtr(class)
}

// Create adds a new identity with a hashed password.
func (s *UserService) Create(ctx context.Context, req dto.CreateUserRequest) (*models.UserInfo, error) {
	role := models.UserRole(strings.TrimSpace(req.Role))
	fields := userFields{
		Name:     strings.TrimSpace(req.Name),
		Username: strings.TrimSpace(req.Username),
		Role:     role,
		Class:    classFor(role, req.Class),
	}
	if req.Password == "" {
		return nil, s.fail(ctx, appErrors.Clone(appErrors.ErrValidation, msgRequiredFields))
	}
	if err := s.checkFields(ctx, fields); err != nil {
		return nil, err
	}

	hash, err := s.hashPassword(ctx, req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:       s.newID(),
		Name:     fields.Name,
		Username: fields.Username,
		Password: hash,
		Role:     fields.Role,
		Class:    fields.Class,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, s.mapRepoError(ctx, err)
	}

	s.logger.Info("user created", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	s.notifier.Success(ctx, titleUserCreated, fmt.Sprintf("%s berhasil ditambahkan sebagai %s", user.Name, user.Role))
	info := user.Info()
	return &info, nil
}

// Update edits an identity. The role cannot change and an empty password keeps the current hash.
func (s *UserService) Update(ctx context.Context, id string, req dto.UpdateUserRequest) (*models.UserInfo, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(ctx, err)
	}

	role := existing.Role
	if requested := strings.TrimSpace(req.Role); requested != "" && models.UserRole(requested) != existing.Role {
		return nil, s.fail(ctx, appErrors.Clone(appErrors.ErrValidation, msgRoleImmutable))
	}
	fields := userFields{
		Name:     strings.TrimSpace(req.Name),
		Username: strings.TrimSpace(req.Username),
		Role:     role,
		Class:    classFor(role, req.Class),
	}
	if err := s.checkFields(ctx, fields); err != nil {
		return nil, err
	}

	updated := *existing
	updated.Name = fields.Name
	updated.Username = fields.Username
	updated.Class = fields.Class
	if req.Password != "" {
		hash, err := s.hashPassword(ctx, req.Password)
		if err != nil {
			return nil, err
		}
		updated.Password = hash
	}

	if err := s.repo.Update(ctx, &updated); err != nil {
		return nil, s.mapRepoError(ctx, err)
	}

	s.logger.Info("user updated", zap.String("user_id", updated.ID))
	s.notifier.Success(ctx, titleUserUpdated, fmt.Sprintf("%s berhasil diperbarui", updated.Name))
	info := updated.Info()
	return &info, nil
}

// Delete removes an identity unless it is the last admin.
func (s *UserService) Delete(ctx context.Context, id string) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return s.mapRepoError(ctx, err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.mapRepoError(ctx, err)
	}

	s.logger.Info("user deleted", zap.String("user_id", id))
	s.notifier.Success(ctx, titleUserDeleted, fmt.Sprintf("%s berhasil dihapus", existing.Name))
	return nil
}
