package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/uks-api/internal/dto"
	"github.com/noah-isme/uks-api/internal/middleware"
	"github.com/noah-isme/uks-api/internal/models"
	"github.com/noah-isme/uks-api/internal/service"
	appErrors "github.com/noah-isme/uks-api/pkg/errors"
)

type responseEnvelope struct {
	Data     json.RawMessage        `json:"data"`
	Error    *appErrors.Error       `json:"error"`
	Redirect string                 `json:"redirect"`
	Meta     map[string]interface{} `json:"meta"`
}

func decode(rec *httptest.ResponseRecorder) responseEnvelope {
	var envelope responseEnvelope
	_ = json.Unmarshal(rec.Body.Bytes(), &envelope)
	return envelope
}

// newContext builds a test context whose request carries a notification collector.
func newContext(method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	ctx, _ := service.WithNotificationCollector(req.Context())
	c.Request = req.WithContext(ctx)
	return c, rec
}

func signIn(c *gin.Context, role models.UserRole, class string) {
	c.Set(middleware.ContextUserKey, &models.JWTClaims{SessionID: "s1", UserID: "u-" + string(role), Role: role, Name: "Tester", Username: "tester", Class: class})
}

type fakeSessions struct {
	result    *models.LoginResult
	err       error
	feed      *service.NotificationService
	loggedOut bool
}

func (f *fakeSessions) Login(ctx context.Context, req dto.LoginRequest) (*models.LoginResult, error) {
	if f.err != nil {
		f.feed.Failure(ctx, "Login Gagal", "Username atau password salah")
		return nil, f.err
	}
	f.feed.Success(ctx, "Login Berhasil", "Selamat datang, "+req.Username+"!")
	return f.result, nil
}

func (f *fakeSessions) RejectPayload(ctx context.Context, err error) error {
	if f.feed != nil {
		f.feed.Failure(ctx, "Login Gagal", "Format data tidak valid")
	}
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "Format data tidak valid")
}

func (f *fakeSessions) Logout(context.Context) error {
	f.loggedOut = true
	return f.err
}

type fakeHealth struct {
	actor      models.UserInfo
	records    []models.HealthRecord
	complaints []models.Complaint
	respondErr error
	lastID     string
	rejected   int
}

func (f *fakeHealth) RejectPayload(_ context.Context, err error) error {
	f.rejected++
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "Format data tidak valid")
}

func (f *fakeHealth) AddHealthRecord(_ context.Context, actor models.UserInfo, req dto.CreateHealthRecordRequest) (*models.HealthRecord, error) {
	f.actor = actor
	if req.Temperature == nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Semua kolom wajib diisi")
	}
	return &models.HealthRecord{ID: "r1", StudentID: actor.ID, Temperature: *req.Temperature}, nil
}

func (f *fakeHealth) AddComplaint(_ context.Context, actor models.UserInfo, req dto.CreateComplaintRequest) (*models.Complaint, error) {
	f.actor = actor
	return &models.Complaint{ID: "c1", StudentID: actor.ID, Title: req.Title, Status: models.ComplaintPending}, nil
}

func (f *fakeHealth) RespondToComplaint(_ context.Context, actor models.UserInfo, id string, _ dto.RespondComplaintRequest) (*models.Complaint, error) {
	f.actor = actor
	f.lastID = id
	if f.respondErr != nil {
		return nil, f.respondErr
	}
	return &models.Complaint{ID: id, Status: models.ComplaintResponded}, nil
}

func (f *fakeHealth) HealthRecordsFor(_ context.Context, actor models.UserInfo) []models.HealthRecord {
	f.actor = actor
	return f.records
}

func (f *fakeHealth) ComplaintsFor(_ context.Context, actor models.UserInfo) []models.Complaint {
	f.actor = actor
	return f.complaints
}

type fakeUsers struct {
	filter  models.UserFilter
	users   []models.UserInfo
	err      error
	deleted  string
	rejected int
}

func (f *fakeUsers) RejectPayload(_ context.Context, err error) error {
	f.rejected++
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "Format data tidak valid")
}

func (f *fakeUsers) List(_ context.Context, filter models.UserFilter) []models.UserInfo {
	f.filter = filter
	return f.users
}

func (f *fakeUsers) Get(_ context.Context, id string) (*models.UserInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.UserInfo{ID: id}, nil
}

func (f *fakeUsers) Create(_ context.Context, req dto.CreateUserRequest) (*models.UserInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.UserInfo{ID: "new", Name: req.Name, Username: req.Username, Role: models.UserRole(req.Role)}, nil
}

func (f *fakeUsers) Update(_ context.Context, id string, req dto.UpdateUserRequest) (*models.UserInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.UserInfo{ID: id, Name: req.Name}, nil
}

func (f *fakeUsers) Delete(_ context.Context, id string) error {
	f.deleted = id
	return f.err
}

type fakeReports struct {
	filter models.ReportFilter
	format string
	file   *service.ExportFile
	err    error
}

func (f *fakeReports) Export(_ context.Context, filter models.ReportFilter, format string) (*service.ExportFile, error) {
	f.filter = filter
	f.format = format
	return f.file, f.err
}
