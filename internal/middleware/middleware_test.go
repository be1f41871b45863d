package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/uks-api/internal/models"
	"github.com/noah-isme/uks-api/internal/service"
	appErrors "github.com/noah-isme/uks-api/pkg/errors"
)

type fakeValidator struct {
	tokens map[string]*models.JWTClaims
}

func (f fakeValidator) ValidateToken(token string) (*models.JWTClaims, error) {
	if claims, ok := f.tokens[token]; ok {
		return claims, nil
	}
	return nil, appErrors.Clone(appErrors.ErrUnauthorized, "session has ended")
}

type countingRecorder struct {
	outcomes []string
}

func (r *countingRecorder) RecordGateDecision(outcome string) {
	r.outcomes = append(r.outcomes, outcome)
}

var validator = fakeValidator{tokens: map[string]*models.JWTClaims{
	"student-token": {SessionID: "s1", UserID: "2", Role: models.RoleStudent, Name: "Budi Santoso", Username: "budi", Class: "6A"},
	"admin-token":   {SessionID: "s1", UserID: "1", Role: models.RoleAdmin, Name: "Admin Utama", Username: "admin"},
}}

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestSessionRequiresToken(t *testing.T) {
	router := newEngine()
	router.GET("/me", Session(validator, "uks_session"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": CurrentIdentity(c).ID})
	})

	tests := []struct {
		name   string
		setup  func(r *http.Request)
		status int
	}{
		{name: "missing", setup: func(*http.Request) {}, status: http.StatusUnauthorized},
		{name: "bad scheme", setup: func(r *http.Request) { r.Header.Set("Authorization", "Basic abc") }, status: http.StatusUnauthorized},
		{name: "ended session", setup: func(r *http.Request) { r.Header.Set("Authorization", "Bearer stale") }, status: http.StatusUnauthorized},
		{name: "bearer", setup: func(r *http.Request) { r.Header.Set("Authorization", "Bearer student-token") }, status: http.StatusOK},
		{name: "cookie", setup: func(r *http.Request) { r.AddCookie(&http.Cookie{Name: "uks_session", Value: "admin-token"}) }, status: http.StatusOK},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			tc.setup(req)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, tc.status, rec.Code)
		})
	}
}

func TestOptionalSessionNeverBlocks(t *testing.T) {
	router := newEngine()
	router.GET("/", OptionalSession(validator, "uks_session"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"anonymous": CurrentIdentity(c) == nil})
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer stale")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"anonymous":true}`, rec.Body.String())
}

func TestRequireRoles(t *testing.T) {
	router := newEngine()
	router.GET("/users", Session(validator, ""), RequireRoles(models.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("Authorization", "Bearer student-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("Authorization", "Bearer admin-token")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRBACWithoutClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/users", nil)

	RequireRoles(models.RoleAdmin)(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.True(t, c.IsAborted())
}

func TestPageGate(t *testing.T) {
	recorder := &countingRecorder{}
	router := newEngine()
	router.Use(OptionalSession(validator, "uks_session"), PageGate(recorder))
	for _, path := range []string{"/", "/login", "/siswa", "/admin"} {
		router.GET(path, func(c *gin.Context) { c.Status(http.StatusOK) })
	}
	router.NoRoute(func(c *gin.Context) { c.Status(http.StatusNotFound) })

	tests := []struct {
		name     string
		path     string
		token    string
		status   int
		location string
	}{
		{name: "anonymous admin", path: "/admin", status: http.StatusFound, location: "/login"},
		{name: "student admin", path: "/admin", token: "student-token", status: http.StatusFound, location: "/siswa"},
		{name: "student home", path: "/siswa", token: "student-token", status: http.StatusOK},
		{name: "index authenticated", path: "/", token: "admin-token", status: http.StatusFound, location: "/admin"},
		{name: "index anonymous", path: "/", status: http.StatusOK},
		{name: "login authenticated", path: "/login", token: "admin-token", status: http.StatusOK},
		{name: "unknown", path: "/nowhere", token: "admin-token", status: http.StatusNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			if tc.token != "" {
				req.Header.Set("Authorization", "Bearer "+tc.token)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tc.status, rec.Code)
			if tc.location != "" {
				assert.Equal(t, tc.location, rec.Header().Get("Location"))
				var body map[string]string
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, tc.location, body["redirect"])
			}
		})
	}
	assert.Equal(t, []string{"login", "home", "render", "home", "render", "render"}, recorder.outcomes)
}

func TestNotificationsCollector(t *testing.T) {
	feed := service.NewNotificationService(5, nil)
	router := newEngine()
	router.Use(Notifications())
	router.GET("/", func(c *gin.Context) {
		feed.Success(c.Request.Context(), "Login Berhasil", "Selamat datang, Budi!")
		c.JSON(http.StatusOK, gin.H{"count": len(service.NotificationCollectorFrom(c.Request.Context()).Items())})
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.JSONEq(t, `{"count":1}`, rec.Body.String())
	assert.Nil(t, service.NotificationCollectorFrom(context.Background()))
}

func TestMetricsMiddleware(t *testing.T) {
	metrics := service.NewMetricsService()
	router := newEngine()
	router.Use(Metrics(metrics))
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, uint64(1), metrics.Snapshot().RequestsTotal)
}
