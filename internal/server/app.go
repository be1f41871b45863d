package server

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/uks-api/internal/handler"
	"github.com/noah-isme/uks-api/internal/repository"
	"github.com/noah-isme/uks-api/internal/service"
	"github.com/noah-isme/uks-api/pkg/config"
)

// App holds the loaded stores, services and the HTTP engine.
type App struct {
	Engine        *gin.Engine
	Sessions      *service.SessionService
	Metrics       *service.MetricsService
	Notifications *service.NotificationService
}

// NewApp loads every collection from store, installing the seed data when absent,
// rehydrates the persisted session and builds the router.
func NewApp(ctx context.Context, cfg *config.Config, store repository.BlobStore, logr *zap.Logger) (*App, error) {
	if logr == nil {
		logr = zap.NewNop()
	}

	metrics := service.NewMetricsService()
	hasher := repository.BcryptHasher(bcrypt.DefaultCost)

	users := repository.NewUserRepository(store, metrics, hasher)
	if err := users.Load(ctx); err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	health := repository.NewHealthRepository(store, metrics)
	if err := health.Load(ctx); err != nil {
		return nil, fmt.Errorf("load health data: %w", err)
	}

	validate := validator.New()
	notifications := service.NewNotificationService(cfg.Notifications.FeedSize, logr)

	sessions := service.NewSessionService(
		repository.NewSessionRepository(store, metrics),
		users,
		validate,
		logr,
		notifications,
		service.SessionConfig{Secret: cfg.Session.Secret, Issuer: cfg.Session.Issuer},
	)
	if err := sessions.Restore(ctx); err != nil {
		return nil, err
	}

	healthSvc := service.NewHealthService(health, validate, logr, notifications)
	userSvc := service.NewUserService(users, hasher, validate, logr, notifications)
	dashboard := service.NewDashboardService(health, userSvc, cfg.Env != config.EnvProduction)
	reports := service.NewReportService(health, nil, nil, logr)

	engine := NewRouter(Options{
		APIPrefix:      cfg.APIPrefix,
		CookieName:     cfg.Session.CookieName,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		MetricsEnabled: cfg.Metrics.Enabled,
		DocsEnabled:    cfg.Docs.Enabled && cfg.Env != config.EnvProduction,
	}, logr, sessions, metrics, Handlers{
		Auth:          handler.NewAuthHandler(sessions, cfg.Session.CookieName, cfg.Env == config.EnvProduction),
		Health:        handler.NewHealthHandler(healthSvc),
		Users:         handler.NewUserHandler(userSvc),
		Reports:       handler.NewReportHandler(reports),
		Pages:         handler.NewPageHandler(dashboard),
		Notifications: handler.NewNotificationHandler(notifications),
		Metrics:       handler.NewMetricsHandler(metrics),
	})

	return &App{Engine: engine, Sessions: sessions, Metrics: metrics, Notifications: notifications}, nil
}
