package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/uks-api/internal/repository"
	"github.com/noah-isme/uks-api/pkg/config"
)

type envelope struct {
	Data     json.RawMessage            `json:"data"`
	Error    *struct{ Code string }     `json:"error"`
	Redirect string                     `json:"redirect"`
	Meta     map[string]json.RawMessage `json:"meta"`
}

func testConfig() *config.Config {
	return &config.Config{
		Env:           config.EnvDevelopment,
		APIPrefix:     "/api/v1",
		Session:       config.SessionConfig{Secret: "test-secret", Issuer: "uks-test", CookieName: "uks_session"},
		Metrics:       config.MetricsConfig{Enabled: true},
		Notifications: config.NotificationConfig{FeedSize: 20},
	}
}

func newTestApp(t *testing.T, store repository.BlobStore) *App {
	t.Helper()
	gin.SetMode(gin.TestMode)
	app, err := NewApp(context.Background(), testConfig(), store, nil)
	require.NoError(t, err)
	return app
}

func do(app *App, method, path, token, body string) (*httptest.ResponseRecorder, envelope) {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Engine.ServeHTTP(rec, req)
	var env envelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	return rec, env
}

func login(t *testing.T, app *App, username, password string) string {
	t.Helper()
	rec, env := do(app, http.MethodPost, "/api/v1/auth/login", "", `{"username":"`+username+`","password":"`+password+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var result struct {
		Token string `json:"token"`
		Home  string `json:"home"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &result))
	require.NotEmpty(t, result.Token)
	return result.Token
}

func TestPagesAreGated(t *testing.T) {
	app := newTestApp(t, repository.NewMemoryBlobStore())

	rec, env := do(app, http.MethodGet, "/admin", "", "")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
	assert.Equal(t, "/login", env.Redirect)

	rec, _ = do(app, http.MethodGet, "/login", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":"budi"`)

	token := login(t, app, "budi", "budi123")

	rec, _ = do(app, http.MethodGet, "/admin/laporan", token, "")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/siswa", rec.Header().Get("Location"))

	rec, _ = do(app, http.MethodGet, "/", token, "")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/siswa", rec.Header().Get("Location"))

	rec, env = do(app, http.MethodGet, "/siswa", token, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"healthCount":1`)

	rec, _ = do(app, http.MethodGet, "/siswa/unknown", token, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"home":"/siswa"`)
}

func TestCookieSession(t *testing.T) {
	app := newTestApp(t, repository.NewMemoryBlobStore())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"username":"guru","password":"guru123"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.Engine.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	req = httptest.NewRequest(http.MethodGet, "/guru", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	app.Engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"kelas":"6A"`)
}

func TestStudentTeacherWorkflow(t *testing.T) {
	app := newTestApp(t, repository.NewMemoryBlobStore())

	student := login(t, app, "siti", "siti123")
	rec, env := do(app, http.MethodPost, "/api/v1/complaints", student, `{"title":"Demam","description":"Badan panas sejak pagi"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, string(env.Meta["notifications"]), "Keluhan Terkirim")
	var complaint struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &complaint))

	rec, _ = do(app, http.MethodPost, "/api/v1/health-records", student, `{"temperature":37.5,"weight":33,"height":142}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, _ = do(app, http.MethodPost, "/api/v1/complaints/"+complaint.ID+"/response", student, `{"message":"x"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	other := login(t, app, "dedi", "dedi123")
	rec, _ = do(app, http.MethodGet, "/api/v1/complaints", student, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "a new login replaces the previous session")

	rec, _ = do(app, http.MethodPost, "/api/v1/complaints/"+complaint.ID+"/response", other, `{"message":"Istirahat"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	teacher := login(t, app, "guru", "guru123")
	rec, env = do(app, http.MethodPost, "/api/v1/complaints/"+complaint.ID+"/response", teacher, `{"message":"Istirahat di UKS"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"status":"responded"`)

	rec, env = do(app, http.MethodGet, "/guru/keluhan", teacher, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), "Istirahat di UKS")

	rec, _ = do(app, http.MethodPost, "/api/v1/complaints/missing/response", teacher, `{"message":"x"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = do(app, http.MethodPost, "/api/v1/auth/logout", teacher, "")
	require.Equal(t, http.StatusOK, rec.Code)
	rec, _ = do(app, http.MethodGet, "/guru", teacher, "")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestAdminUsersAndExport(t *testing.T) {
	app := newTestApp(t, repository.NewMemoryBlobStore())
	admin := login(t, app, "admin", "admin123")

	rec, env := do(app, http.MethodPost, "/api/v1/users", admin, `{"name":"Rina","username":"BUDI","password":"x","role":"siswa","kelas":"5B"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, string(env.Meta["notifications"]), "Username sudah digunakan")

	rec, _ = do(app, http.MethodDelete, "/api/v1/users/1", admin, "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, env = do(app, http.MethodGet, "/api/v1/users?role=siswa", admin, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, string(env.Data), "password")

	rec, _ = do(app, http.MethodGet, "/api/v1/reports/export?type=complaints&format=csv", admin, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "laporan_complaints_")
	assert.True(t, strings.HasPrefix(rec.Body.String(), `"Nama Siswa","Kelas","Tanggal","Judul"`))

	rec, _ = do(app, http.MethodGet, "/api/v1/reports/export?kelas=9Z", admin, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = do(app, http.MethodGet, "/api/v1/metrics", admin, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	do(app, http.MethodGet, "/admin", admin, "")
	rec, _ = do(app, http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "access_gate_decisions_total")
}

func TestSessionSurvivesRestart(t *testing.T) {
	store := repository.NewMemoryBlobStore()
	app := newTestApp(t, store)
	token := login(t, app, "budi", "budi123")

	restarted := newTestApp(t, store)
	rec, _ := do(restarted, http.MethodGet, "/api/v1/auth/me", token, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, env := do(restarted, http.MethodGet, "/api/v1/notifications", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", string(env.Data))
}

func TestMalformedPayloadsRaiseNotification(t *testing.T) {
	app := newTestApp(t, repository.NewMemoryBlobStore())

	rec, env := do(app, http.MethodPost, "/api/v1/auth/login", "", `{"username":"budi","password":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Contains(t, string(env.Meta["notifications"]), "Login Gagal")
	feed := app.Notifications.Recent(0)
	require.Len(t, feed, 1)
	assert.Equal(t, "Login Gagal", feed[0].Title)

	student := login(t, app, "budi", "budi123")
	before := len(app.Notifications.Recent(0))
	rec, env = do(app, http.MethodPost, "/api/v1/health-records", student, `{"temperature":"37","weight":30,"height":130}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, string(env.Meta["notifications"]), "Format data tidak valid")
	assert.Len(t, app.Notifications.Recent(0), before+1)

	admin := login(t, app, "admin", "admin123")
	before = len(app.Notifications.Recent(0))
	rec, _ = do(app, http.MethodPost, "/api/v1/users", admin, `{"name":"Rina","username":"rina","password":"`+strings.Repeat("a", 80)+`","role":"siswa","kelas":"5B"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Len(t, app.Notifications.Recent(0), before+1)
}
