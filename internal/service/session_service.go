package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/uks-api/internal/access"
	"github.com/noah-isme/uks-api/internal/dto"
	"github.com/noah-isme/uks-api/internal/models"
	"github.com/noah-isme/uks-api/internal/repository"
	appErrors "github.com/noah-isme/uks-api/pkg/errors"
)

type sessionStore interface {
	Load(ctx context.Context) (*models.Session, error)
	Save(ctx context.Context, session *models.Session) error
	Clear(ctx context.Context) error
}

type sessionUserRepository interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
}

// SessionConfig defines how session tokens are signed.
type SessionConfig struct {
	Secret string
	Issuer string
}

// SessionService holds the single current session and issues tokens bound to it.
type SessionService struct {
	mu      sync.RWMutex
	current *models.Session

	store     sessionStore
	users     sessionUserRepository
	validator *validator.Validate
	logger    *zap.Logger
	notifier  notifier
	config    SessionConfig
	now       func() time.Time
}

// NewSessionService constructs a SessionService instance.
func NewSessionService(store sessionStore, users sessionUserRepository, validate *validator.Validate, logger *zap.Logger, notify notifier, config SessionConfig) *SessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &SessionService{
		store:     store,
		users:     users,
		validator: validate,
		logger:    logger,
		notifier:  notifierOrNop(notify),
		config:    config,
		now:       time.Now,
	}
}

// Restore rehydrates the persisted session, if any. Sessions never expire.
func (s *SessionService) Restore(ctx context.Context) error {
	session, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	s.mu.Lock()
	s.current = session
	s.mu.Unlock()
	if session != nil {
		s.logger.Info("session restored", zap.String("user_id", session.User.ID), zap.String("role", string(session.User.Role)))
	}
	return nil
}

// Login matches username and password, replaces the current session and returns a token.
func (s *SessionService) Login(ctx context.Context, req dto.LoginRequest) (*models.LoginResult, error) {
	if err := s.validator.Struct(req); err != nil {
		s.notifier.Failure(ctx, titleLoginFailed, msgRequiredFields)
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, msgRequiredFields)
	}

	user, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, s.rejectLogin(ctx, req.Username)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, s.rejectLogin(ctx, req.Username)
	}

	session := &models.Session{
		ID:        uuid.NewString(),
		User:      user.Info(),
		CreatedAt: s.now().UTC(),
	}
	token, err := s.signToken(session)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create session token")
	}
	if err := s.store.Save(ctx, session); err != nil {
		s.notifier.Failure(ctx, titleLoginFailed, msgSaveFailed)
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, msgSaveFailed)
	}

	s.mu.Lock()
	previous := s.current
	s.current = session
	s.mu.Unlock()
	if previous != nil {
		s.logger.Info("session replaced", zap.String("previous_user_id", previous.User.ID))
	}

	s.logger.Info("login succeeded", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	s.notifier.Success(ctx, titleLoginSuccess, fmt.Sprintf("Selamat datang, %s!", user.Name))

	return &models.LoginResult{
		Token:    token,
		User:     session.User,
		Home:     access.HomeFor(user.Role),
		IssuedAt: session.CreatedAt,
	}, nil
}

// RejectPayload reports a login body that could not be decoded as a failed login.
func (s *SessionService) RejectPayload(ctx context.Context, err error) error {
	s.notifier.Failure(ctx, titleLoginFailed, msgInvalidPayload)
	return payloadError(err)
}

func (s *SessionService) rejectLogin(ctx context.Context, username string) error {
	s.logger.Info("login rejected", zap.String("username", username))
	s.notifier.Failure(ctx, titleLoginFailed, msgBadCredentials)
	return appErrors.ErrInvalidCredentials
}

// Logout clears the current and persisted session.
func (s *SessionService) Logout(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to clear session")
	}
	s.mu.Lock()
	previous := s.current
	s.current = nil
	s.mu.Unlock()

	if previous != nil {
		s.logger.Info("logout", zap.String("user_id", previous.User.ID))
	}
	s.notifier.Success(ctx, titleLogout, descLogout)
	return nil
}

// Current returns a copy of the current session, or nil.
func (s *SessionService) Current() *models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	session := *s.current
	return &session
}

// IsAuthenticated reports whether a session identity is present.
func (s *SessionService) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil
}

// ValidateToken parses a token and accepts it only while its session is current.
func (s *SessionService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	claims := &models.JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	}, jwt.WithIssuer(s.config.Issuer))
	if err != nil || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid session token")
	}

	s.mu.RLock()
	current := s.current
	s.mu.RUnlock()
	if current == nil || current.ID != claims.SessionID {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "session has ended")
	}
	return claims, nil
}

func (s *SessionService) signToken(session *models.Session) (string, error) {
	claims := models.JWTClaims{
		SessionID: session.ID,
		UserID:    session.User.ID,
		Role:      session.User.Role,
		Name:      session.User.Name,
		Username:  session.User.Username,
		Class:     session.User.ClassName(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   s.config.Issuer,
			Subject:  session.User.ID,
			IssuedAt: jwt.NewNumericDate(session.CreatedAt),
			ID:       session.ID,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.Secret))
}
