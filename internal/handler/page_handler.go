package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/uks-api/internal/access"
	"github.com/noah-isme/uks-api/internal/dto"
	"github.com/noah-isme/uks-api/internal/middleware"
	"github.com/noah-isme/uks-api/internal/models"
	"github.com/noah-isme/uks-api/pkg/response"
)

type pageService interface {
	Landing() dto.LandingPage
	LoginPage(current *models.UserInfo) dto.LoginPage
	StudentHome(ctx context.Context, actor models.UserInfo) dto.StudentHomePage
	StudentHealth(ctx context.Context, actor models.UserInfo) dto.StudentHealthPage
	StudentComplaints(ctx context.Context, actor models.UserInfo) dto.StudentComplaintsPage
	TeacherHome(ctx context.Context, actor models.UserInfo) dto.TeacherHomePage
	TeacherStudents(ctx context.Context, actor models.UserInfo, search string) dto.TeacherStudentsPage
	TeacherComplaints(ctx context.Context, actor models.UserInfo, search string) dto.TeacherComplaintsPage
	AdminHome(ctx context.Context, actor models.UserInfo) dto.AdminHomePage
	AdminUsers(ctx context.Context, actor models.UserInfo, role, search string) (dto.AdminUsersPage, error)
	AdminReports(ctx context.Context, actor models.UserInfo, filter models.ReportFilter) (dto.AdminReportsPage, error)
}

// PageHandler serves the view model of each routed page. Access is decided
// beforehand by the page gate.
type PageHandler struct {
	pages pageService
}

// NewPageHandler constructs the handler.
func NewPageHandler(pages pageService) *PageHandler {
	return &PageHandler{pages: pages}
}

func (h *PageHandler) Index(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.pages.Landing())
}

func (h *PageHandler) Login(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.pages.LoginPage(middleware.CurrentIdentity(c)))
}

func (h *PageHandler) StudentHome(c *gin.Context) {
	if actor, ok := actorFromContext(c); ok {
		response.JSON(c, http.StatusOK, h.pages.StudentHome(c.Request.Context(), actor))
	}
}

func (h *PageHandler) StudentHealth(c *gin.Context) {
	if actor, ok := actorFromContext(c); ok {
		response.JSON(c, http.StatusOK, h.pages.StudentHealth(c.Request.Context(), actor))
	}
}

func (h *PageHandler) StudentComplaints(c *gin.Context) {
	if actor, ok := actorFromContext(c); ok {
		response.JSON(c, http.StatusOK, h.pages.StudentComplaints(c.Request.Context(), actor))
	}
}

func (h *PageHandler) TeacherHome(c *gin.Context) {
	if actor, ok := actorFromContext(c); ok {
		response.JSON(c, http.StatusOK, h.pages.TeacherHome(c.Request.Context(), actor))
	}
}

func (h *PageHandler) TeacherStudents(c *gin.Context) {
	if actor, ok := actorFromContext(c); ok {
		response.JSON(c, http.StatusOK, h.pages.TeacherStudents(c.Request.Context(), actor, c.Query("search")))
	}
}

func (h *PageHandler) TeacherComplaints(c *gin.Context) {
	if actor, ok := actorFromContext(c); ok {
		response.JSON(c, http.StatusOK, h.pages.TeacherComplaints(c.Request.Context(), actor, c.Query("search")))
	}
}

func (h *PageHandler) AdminHome(c *gin.Context) {
	if actor, ok := actorFromContext(c); ok {
		response.JSON(c, http.StatusOK, h.pages.AdminHome(c.Request.Context(), actor))
	}
}

func (h *PageHandler) AdminUsers(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	page, err := h.pages.AdminUsers(c.Request.Context(), actor, c.Query("role"), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, page)
}

func (h *PageHandler) AdminReports(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	page, err := h.pages.AdminReports(c.Request.Context(), actor, reportFilterFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, page)
}

// NotFound renders the not-found page for any unrouted path.
func (h *PageHandler) NotFound(c *gin.Context) {
	home := access.LoginPath
	if identity := middleware.CurrentIdentity(c); identity != nil {
		home = access.HomeFor(identity.Role)
	}
	response.JSON(c, http.StatusNotFound, dto.NotFoundPage{
		Path:    c.Request.URL.Path,
		Message: "Halaman tidak ditemukan",
		Home:    home,
	})
}
