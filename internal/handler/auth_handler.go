package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/uks-api/internal/access"
	"github.com/noah-isme/uks-api/internal/dto"
	"github.com/noah-isme/uks-api/internal/models"
	"github.com/noah-isme/uks-api/pkg/response"
)

type sessionService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*models.LoginResult, error)
	Logout(ctx context.Context) error
	RejectPayload(ctx context.Context, err error) error
}

// AuthHandler wires HTTP endpoints to the session store.
type AuthHandler struct {
	sessions     sessionService
	cookieName   string
	secureCookie bool
}

// NewAuthHandler creates a new handler. A blank cookieName disables the session cookie.
func NewAuthHandler(sessions sessionService, cookieName string, secureCookie bool) *AuthHandler {
	return &AuthHandler{sessions: sessions, cookieName: cookieName, secureCookie: secureCookie}
}

func (h *AuthHandler) setCookie(c *gin.Context, value string, maxAge int) {
	if h.cookieName == "" {
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, value, maxAge, "/", "", h.secureCookie, true)
}

// Login godoc
// @Summary Log in
// @Description Authenticate with username and password. Replaces the current session.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body dto.LoginRequest true "Credentials"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, h.sessions.RejectPayload(c.Request.Context(), err), notificationMeta(c))
		return
	}

	res, err := h.sessions.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err, notificationMeta(c))
		return
	}

	h.setCookie(c, res.Token, 0)
	response.JSON(c, http.StatusOK, res, notificationMeta(c))
}

// Logout godoc
// @Summary Log out
// @Description Ends the current session. Every page re-gates immediately.
// @Tags Authentication
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.sessions.Logout(c.Request.Context()); err != nil {
		response.Error(c, err, notificationMeta(c))
		return
	}

	h.setCookie(c, "", -1)
	response.JSON(c, http.StatusOK, gin.H{"redirect": access.LoginPath}, notificationMeta(c))
}

// Me godoc
// @Summary Current identity
// @Tags Authentication
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	response.JSON(c, http.StatusOK, actor, map[string]interface{}{"home": access.HomeFor(actor.Role)})
}
