package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/uks-api/internal/dto"
	"github.com/noah-isme/uks-api/internal/models"
	"github.com/noah-isme/uks-api/internal/repository"
	appErrors "github.com/noah-isme/uks-api/pkg/errors"
)

type healthReader interface {
	FindComplaint(ctx context.Context, id string) (*models.Complaint, error)
	HealthByStudent(ctx context.Context, studentID string) []models.HealthRecord
	HealthByClass(ctx context.Context, class string) []models.HealthRecord
	AllHealth(ctx context.Context) []models.HealthRecord
	ComplaintsByStudent(ctx context.Context, studentID string) []models.Complaint
	ComplaintsByClass(ctx context.Context, class string) []models.Complaint
	AllComplaints(ctx context.Context) []models.Complaint
}

type healthRepository interface {
	healthReader
	AddHealthRecord(ctx context.Context, input models.HealthRecordInput) (*models.HealthRecord, error)
	AddComplaint(ctx context.Context, input models.ComplaintInput) (*models.Complaint, error)
	RespondToComplaint(ctx context.Context, input models.ResponseInput) (*models.Complaint, error)
}

// HealthService exposes the health record and complaint commands.
type HealthService struct {
	repo      healthRepository
	validator *validator.Validate
	logger    *zap.Logger
	notifier  notifier
}

// NewHealthService constructs a HealthService instance.
func NewHealthService(repo healthRepository, validate *validator.Validate, logger *zap.Logger, notify notifier) *HealthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &HealthService{repo: repo, validator: validate, logger: logger, notifier: notifierOrNop(notify)}
}

func (s *HealthService) fail(ctx context.Context, err *appErrors.Error) error {
	s.notifier.Failure(ctx, titleError, err.Message)
	return err
}

func (s *HealthService) persistFailed(ctx context.Context, err error, op string) error {
	s.logger.Error("persist failed", zap.String("op", op), zap.Error(err))
	return s.fail(ctx, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, msgSaveFailed))
}

// RejectPayload reports a request body that could not be decoded.
func (s *HealthService) RejectPayload(ctx context.Context, err error) error {
	return s.fail(ctx, payloadError(err))
}

// AddHealthRecord stores a submission for the acting student.
func (s *HealthService) AddHealthRecord(ctx context.Context, actor models.UserInfo, req dto.CreateHealthRecordRequest) (*models.HealthRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, s.fail(ctx, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, msgRequiredFields))
	}

	record, err := s.repo.AddHealthRecord(ctx, models.HealthRecordInput{
		StudentID:   actor.ID,
		StudentName: actor.Name,
		Class:       actor.ClassName(),
		Temperature: *req.Temperature,
		Weight:      *req.Weight,
		Height:      *req.Height,
		Notes:       req.Notes,
	})
	if err != nil {
		return nil, s.persistFailed(ctx, err, "add_health_record")
	}

	s.notifier.Success(ctx, titleHealthSaved, descHealthSaved)
	return record, nil
}

// AddComplaint files a pending complaint for the acting student.
func (s *HealthService) AddComplaint(ctx context.Context, actor models.UserInfo, req dto.CreateComplaintRequest) (*models.Complaint, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	if err := s.validator.Struct(req); err != nil {
		return nil, s.fail(ctx, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, msgRequiredFields))
	}

	complaint, err := s.repo.AddComplaint(ctx, models.ComplaintInput{
		StudentID:   actor.ID,
		StudentName: actor.Name,
		Class:       actor.ClassName(),
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		return nil, s.persistFailed(ctx, err, "add_complaint")
	}

	s.notifier.Success(ctx, titleComplaintSent, descComplaintSent)
	return complaint, nil
}

// RespondToComplaint answers a complaint from the teacher's own class, overwriting any earlier answer.
func (s *HealthService) RespondToComplaint(ctx context.Context, actor models.UserInfo, complaintID string, req dto.RespondComplaintRequest) (*models.Complaint, error) {
	req.Message = strings.TrimSpace(req.Message)
	if err := s.validator.Struct(req); err != nil {
		return nil, s.fail(ctx, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, msgRequiredFields))
	}

	complaint, err := s.repo.FindComplaint(ctx, complaintID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, s.fail(ctx, appErrors.Clone(appErrors.ErrNotFound, msgComplaintMissing))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load complaint")
	}
	if complaint.Class != actor.ClassName() {
		return nil, s.fail(ctx, appErrors.Clone(appErrors.ErrForbidden, msgOtherClass))
	}

	updated, err := s.repo.RespondToComplaint(ctx, models.ResponseInput{
		ComplaintID: complaintID,
		TeacherID:   actor.ID,
		TeacherName: actor.Name,
		Message:     req.Message,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, s.fail(ctx, appErrors.Clone(appErrors.ErrNotFound, msgComplaintMissing))
		}
		return nil, s.persistFailed(ctx, err, "respond_complaint")
	}

	s.notifier.Success(ctx, titleResponseSent, descResponseSent)
	return updated, nil
}

// HealthRecordsFor returns the records visible to the actor: own, class or all.
func (s *HealthService) HealthRecordsFor(ctx context.Context, actor models.UserInfo) []models.HealthRecord {
	switch actor.Role {
	case models.RoleStudent:
		return s.repo.HealthByStudent(ctx, actor.ID)
	case models.RoleTeacher:
		return s.repo.HealthByClass(ctx, actor.ClassName())
	case models.RoleAdmin:
		return s.repo.AllHealth(ctx)
	default:
		return []models.HealthRecord{}
	}
}

// ComplaintsFor returns the complaints visible to the actor: own, class or all.
func (s *HealthService) ComplaintsFor(ctx context.Context, actor models.UserInfo) []models.Complaint {
	switch actor.Role {
	case models.RoleStudent:
		return s.repo.ComplaintsByStudent(ctx, actor.ID)
	case models.RoleTeacher:
		return s.repo.ComplaintsByClass(ctx, actor.ClassName())
	case models.RoleAdmin:
		return s.repo.AllComplaints(ctx)
	default:
		return []models.Complaint{}
	}
}
