// Package server assembles the gin engine serving the page and API routes.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/uks-api/api/swagger"
	"github.com/noah-isme/uks-api/internal/access"
	"github.com/noah-isme/uks-api/internal/handler"
	"github.com/noah-isme/uks-api/internal/middleware"
	"github.com/noah-isme/uks-api/internal/models"
	"github.com/noah-isme/uks-api/internal/service"
	"github.com/noah-isme/uks-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/uks-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/uks-api/pkg/middleware/requestid"
)

// Options tunes the engine.
type Options struct {
	APIPrefix      string
	CookieName     string
	AllowedOrigins []string
	MetricsEnabled bool
	DocsEnabled    bool
}

// Handlers groups the HTTP handlers mounted by NewRouter.
type Handlers struct {
	Auth          *handler.AuthHandler
	Health        *handler.HealthHandler
	Users         *handler.UserHandler
	Reports       *handler.ReportHandler
	Pages         *handler.PageHandler
	Notifications *handler.NotificationHandler
	Metrics       *handler.MetricsHandler
}

// NewRouter wires middleware, page routes and the JSON API.
func NewRouter(opts Options, logr *zap.Logger, sessions middleware.TokenValidator, metrics *service.MetricsService, h Handlers) *gin.Engine {
	if logr == nil {
		logr = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr, "/health", "/metrics"))
	r.Use(corsmiddleware.New(opts.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))
	r.Use(middleware.Notifications())

	r.GET("/health", h.Metrics.Health)
	if opts.MetricsEnabled {
		r.GET("/metrics", h.Metrics.Prometheus)
	}
	if opts.DocsEnabled {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	optional := middleware.OptionalSession(sessions, opts.CookieName)

	pages := r.Group("", optional, middleware.PageGate(metrics))
	pages.GET(access.PathIndex, h.Pages.Index)
	pages.GET(access.PathLogin, h.Pages.Login)
	pages.GET(access.PathStudentHome, h.Pages.StudentHome)
	pages.GET(access.PathStudentHealthForm, h.Pages.StudentHealth)
	pages.GET(access.PathStudentComplaints, h.Pages.StudentComplaints)
	pages.GET(access.PathTeacherHome, h.Pages.TeacherHome)
	pages.GET(access.PathTeacherStudents, h.Pages.TeacherStudents)
	pages.GET(access.PathTeacherComplaints, h.Pages.TeacherComplaints)
	pages.GET(access.PathAdminHome, h.Pages.AdminHome)
	pages.GET(access.PathAdminUsers, h.Pages.AdminUsers)
	pages.GET(access.PathAdminReports, h.Pages.AdminReports)
	r.NoRoute(optional, h.Pages.NotFound)
	r.NoMethod(func(c *gin.Context) {
		c.Status(http.StatusMethodNotAllowed)
	})

	api := r.Group(opts.APIPrefix)
	api.POST("/auth/login", h.Auth.Login)
	api.GET("/notifications", h.Notifications.List)

	authed := api.Group("", middleware.Session(sessions, opts.CookieName))
	authed.POST("/auth/logout", h.Auth.Logout)
	authed.GET("/auth/me", h.Auth.Me)

	authed.GET("/health-records", h.Health.ListRecords)
	authed.POST("/health-records", middleware.RequireRoles(models.RoleStudent), h.Health.CreateRecord)
	authed.GET("/complaints", h.Health.ListComplaints)
	authed.POST("/complaints", middleware.RequireRoles(models.RoleStudent), h.Health.CreateComplaint)
	authed.POST("/complaints/:id/response", middleware.RequireRoles(models.RoleTeacher), h.Health.Respond)

	admin := authed.Group("", middleware.RequireRoles(models.RoleAdmin))
	admin.GET("/users", h.Users.List)
	admin.POST("/users", h.Users.Create)
	admin.GET("/users/:id", h.Users.Get)
	admin.PUT("/users/:id", h.Users.Update)
	admin.DELETE("/users/:id", h.Users.Delete)
	admin.GET("/reports/export", h.Reports.Export)
	if opts.MetricsEnabled {
		admin.GET("/metrics", h.Metrics.Snapshot)
	}

	return r
}
