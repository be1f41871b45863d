package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/uks-api/internal/dto"
	"github.com/noah-isme/uks-api/internal/models"
	appErrors "github.com/noah-isme/uks-api/pkg/errors"
	"github.com/noah-isme/uks-api/pkg/response"
)

type userService interface {
	List(ctx context.Context, filter models.UserFilter) []models.UserInfo
	Get(ctx context.Context, id string) (*models.UserInfo, error)
	Create(ctx context.Context, req dto.CreateUserRequest) (*models.UserInfo, error)
	Update(ctx context.Context, id string, req dto.UpdateUserRequest) (*models.UserInfo, error)
	Delete(ctx context.Context, id string) error
	RejectPayload(ctx context.Context, err error) error
}

// UserHandler manages identity endpoints.
type UserHandler struct {
	users userService
}

// NewUserHandler constructs the handler.
func NewUserHandler(users userService) *UserHandler {
	return &UserHandler{users: users}
}

// List godoc
// @Summary List users
// @Tags Users
// @Produce json
// @Param role query string false "siswa, guru, admin or all"
// @Param search query string false "Name, username or class"
// @Success 200 {object} response.Envelope
// @Router /users [get]
func (h *UserHandler) List(c *gin.Context) {
	filter := models.UserFilter{Search: c.Query("search")}
	if role := strings.TrimSpace(c.Query("role")); role != "" && role != "all" {
		r := models.UserRole(role)
		if !r.Valid() {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "Peran tidak valid"))
			return
		}
		filter.Role = &r
	}
	users := h.users.List(c.Request.Context(), filter)
	response.JSON(c, http.StatusOK, users, map[string]interface{}{"total": len(users)})
}

// Get godoc
// @Summary Get user
// @Tags Users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /users/{id} [get]
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.users.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, user)
}

// Create godoc
// @Summary Create user
// @Tags Users
// @Accept json
// @Produce json
// @Param payload body dto.CreateUserRequest true "User"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /users [post]
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, h.users.RejectPayload(c.Request.Context(), err), notificationMeta(c))
		return
	}
	user, err := h.users.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err, notificationMeta(c))
		return
	}
	response.Created(c, user, notificationMeta(c))
}

// Update godoc
// @Summary Update user
// @Description The role cannot change. An empty password keeps the current one.
// @Tags Users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param payload body dto.UpdateUserRequest true "User"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /users/{id} [put]
func (h *UserHandler) Update(c *gin.Context) {
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, h.users.RejectPayload(c.Request.Context(), err), notificationMeta(c))
		return
	}
	user, err := h.users.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err, notificationMeta(c))
		return
	}
	response.JSON(c, http.StatusOK, user, notificationMeta(c))
}

// Delete godoc
// @Summary Delete user
// @Description The last admin cannot be deleted.
// @Tags Users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /users/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.users.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err, notificationMeta(c))
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"id": id}, notificationMeta(c))
}
