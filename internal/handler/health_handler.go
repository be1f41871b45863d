package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/uks-api/internal/dto"
	"github.com/noah-isme/uks-api/internal/models"
	"github.com/noah-isme/uks-api/pkg/response"
)

type healthService interface {
	AddHealthRecord(ctx context.Context, actor models.UserInfo, req dto.CreateHealthRecordRequest) (*models.HealthRecord, error)
	AddComplaint(ctx context.Context, actor models.UserInfo, req dto.CreateComplaintRequest) (*models.Complaint, error)
	RespondToComplaint(ctx context.Context, actor models.UserInfo, complaintID string, req dto.RespondComplaintRequest) (*models.Complaint, error)
	HealthRecordsFor(ctx context.Context, actor models.UserInfo) []models.HealthRecord
	ComplaintsFor(ctx context.Context, actor models.UserInfo) []models.Complaint
	RejectPayload(ctx context.Context, err error) error
}

// HealthHandler exposes health record and complaint endpoints.
type HealthHandler struct {
	health healthService
}

// NewHealthHandler constructs the handler.
func NewHealthHandler(health healthService) *HealthHandler {
	return &HealthHandler{health: health}
}

// CreateRecord godoc
// @Summary Submit health data
// @Tags Health
// @Accept json
// @Produce json
// @Param payload body dto.CreateHealthRecordRequest true "Measurements"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /health-records [post]
func (h *HealthHandler) CreateRecord(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	var req dto.CreateHealthRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, h.health.RejectPayload(c.Request.Context(), err), notificationMeta(c))
		return
	}

	record, err := h.health.AddHealthRecord(c.Request.Context(), actor, req)
	if err != nil {
		response.Error(c, err, notificationMeta(c))
		return
	}
	response.Created(c, record, notificationMeta(c))
}

// ListRecords godoc
// @Summary List health records visible to the caller
// @Description Students see their own, teachers their class, admins everything.
// @Tags Health
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /health-records [get]
func (h *HealthHandler) ListRecords(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	records := h.health.HealthRecordsFor(c.Request.Context(), actor)
	response.JSON(c, http.StatusOK, records, map[string]interface{}{"total": len(records)})
}

// CreateComplaint godoc
// @Summary File a complaint
// @Tags Complaints
// @Accept json
// @Produce json
// @Param payload body dto.CreateComplaintRequest true "Complaint"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /complaints [post]
func (h *HealthHandler) CreateComplaint(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	var req dto.CreateComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, h.health.RejectPayload(c.Request.Context(), err), notificationMeta(c))
		return
	}

	complaint, err := h.health.AddComplaint(c.Request.Context(), actor, req)
	if err != nil {
		response.Error(c, err, notificationMeta(c))
		return
	}
	response.Created(c, complaint, notificationMeta(c))
}

// ListComplaints godoc
// @Summary List complaints visible to the caller
// @Tags Complaints
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /complaints [get]
func (h *HealthHandler) ListComplaints(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	complaints := h.health.ComplaintsFor(c.Request.Context(), actor)
	response.JSON(c, http.StatusOK, complaints, map[string]interface{}{"total": len(complaints)})
}

// Respond godoc
// @Summary Respond to a complaint
// @Description Overwrites any earlier response. The complaint must belong to the teacher's class.
// @Tags Complaints
// @Accept json
// @Produce json
// @Param id path string true "Complaint ID"
// @Param payload body dto.RespondComplaintRequest true "Response"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /complaints/{id}/response [post]
func (h *HealthHandler) Respond(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	var req dto.RespondComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, h.health.RejectPayload(c.Request.Context(), err), notificationMeta(c))
		return
	}

	complaint, err := h.health.RespondToComplaint(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		response.Error(c, err, notificationMeta(c))
		return
	}
	response.JSON(c, http.StatusOK, complaint, notificationMeta(c))
}
