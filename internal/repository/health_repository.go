package repository

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/noah-isme/uks-api/internal/models"
)

// HealthRepository holds health records and complaints in memory and persists
// the whole collection after every mutation.
type HealthRepository struct {
	mu         sync.RWMutex
	records    []models.HealthRecord
	complaints []models.Complaint

	recordStore    *Collection[models.HealthRecord]
	complaintStore *Collection[models.Complaint]

	now   func() time.Time
	newID func() string
}

// NewHealthRepository creates a repository over the healthData and complaints blobs.
func NewHealthRepository(store BlobStore, observer PersistObserver) *HealthRepository {
	return &HealthRepository{
		recordStore:    NewCollection[models.HealthRecord](store, KeyHealthData, observer),
		complaintStore: NewCollection[models.Complaint](store, KeyComplaints, observer),
		now:            time.Now,
		newID:          uuid.NewString,
	}
}

// Load reads both collections once, installing and persisting the seed data for any that is absent.
func (r *HealthRepository) Load(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, found, err := r.recordStore.Load(ctx)
	if err != nil {
		return err
	}
	if !found {
		records = SeedHealthRecords()
		if err := r.recordStore.Save(ctx, records); err != nil {
			return err
		}
	}

	complaints, found, err := r.complaintStore.Load(ctx)
	if err != nil {
		return err
	}
	if !found {
		complaints = SeedComplaints()
		if err := r.complaintStore.Save(ctx, complaints); err != nil {
			return err
		}
	}

	r.records = records
	r.complaints = complaints
	return nil
}

// today is the UTC calendar day, so every client sees the same date for a submission.
func (r *HealthRepository) today() string {
	return r.now().UTC().Format(models.DateLayout)
}

// AddHealthRecord assigns an id and today's date, appends and persists.
func (r *HealthRepository) AddHealthRecord(ctx context.Context, input models.HealthRecordInput) (*models.HealthRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	record := models.HealthRecord{
		ID:          r.newID(),
		StudentID:   input.StudentID,
		StudentName: input.StudentName,
		Class:       input.Class,
		Date:        r.today(),
		Temperature: input.Temperature,
		Weight:      input.Weight,
		Height:      input.Height,
		Notes:       strings.TrimSpace(input.Notes),
	}

	next := append(cloneRecords(r.records), record)
	if err := r.recordStore.Save(ctx, next); err != nil {
		return nil, err
	}
	r.records = next
	return &record, nil
}

// AddComplaint assigns an id and today's date in pending state, appends and persists.
func (r *HealthRepository) AddComplaint(ctx context.Context, input models.ComplaintInput) (*models.Complaint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	complaint := models.Complaint{
		ID:          r.newID(),
		StudentID:   input.StudentID,
		StudentName: input.StudentName,
		Class:       input.Class,
		Date:        r.today(),
		Title:       input.Title,
		Description: input.Description,
		Status:      models.ComplaintPending,
	}

	next := append(cloneComplaints(r.complaints), complaint)
	if err := r.complaintStore.Save(ctx, next); err != nil {
		return nil, err
	}
	r.complaints = next
	return &complaint, nil
}

// RespondToComplaint marks the complaint responded and overwrites its response.
// An unknown id returns ErrNotFound and persists nothing.
func (r *HealthRepository) RespondToComplaint(ctx context.Context, input models.ResponseInput) (*models.Complaint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.complaintIndex(input.ComplaintID)
	if idx < 0 {
		return nil, ErrNotFound
	}

	next := cloneComplaints(r.complaints)
	next[idx].Status = models.ComplaintResponded
	next[idx].Response = &models.ComplaintResponse{
		TeacherID:   input.TeacherID,
		TeacherName: input.TeacherName,
		Date:        r.today(),
		Message:     input.Message,
	}
	if err := r.complaintStore.Save(ctx, next); err != nil {
		return nil, err
	}
	r.complaints = next
	updated := cloneComplaint(next[idx])
	return &updated, nil
}

func (r *HealthRepository) complaintIndex(id string) int {
	for i := range r.complaints {
		if r.complaints[i].ID == id {
			return i
		}
	}
	return -1
}

// FindComplaint returns a complaint by id.
func (r *HealthRepository) FindComplaint(_ context.Context, id string) (*models.Complaint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	idx := r.complaintIndex(id)
	if idx < 0 {
		return nil, ErrNotFound
	}
	complaint := cloneComplaint(r.complaints[idx])
	return &complaint, nil
}

// HealthByStudent returns a student's records in insertion order.
func (r *HealthRepository) HealthByStudent(_ context.Context, studentID string) []models.HealthRecord {
	return r.filterRecords(func(h models.HealthRecord) bool { return h.StudentID == studentID })
}

// HealthByClass returns a class's records in insertion order.
func (r *HealthRepository) HealthByClass(_ context.Context, class string) []models.HealthRecord {
	return r.filterRecords(func(h models.HealthRecord) bool { return h.Class == class })
}

// AllHealth returns every record in insertion order.
func (r *HealthRepository) AllHealth(_ context.Context) []models.HealthRecord {
	return r.filterRecords(nil)
}

// ComplaintsByStudent returns a student's complaints in insertion order.
func (r *HealthRepository) ComplaintsByStudent(_ context.Context, studentID string) []models.Complaint {
	return r.filterComplaints(func(c models.Complaint) bool { return c.StudentID == studentID })
}

// ComplaintsByClass returns a class's complaints in insertion order.
func (r *HealthRepository) ComplaintsByClass(_ context.Context, class string) []models.Complaint {
	return r.filterComplaints(func(c models.Complaint) bool { return c.Class == class })
}

// AllComplaints returns every complaint in insertion order.
func (r *HealthRepository) AllComplaints(_ context.Context) []models.Complaint {
	return r.filterComplaints(nil)
}

func (r *HealthRepository) filterRecords(keep func(models.HealthRecord) bool) []models.HealthRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]models.HealthRecord, 0, len(r.records))
	for _, record := range r.records {
		if keep == nil || keep(record) {
			result = append(result, record)
		}
	}
	return result
}

func (r *HealthRepository) filterComplaints(keep func(models.Complaint) bool) []models.Complaint {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]models.Complaint, 0, len(r.complaints))
	for _, complaint := range r.complaints {
		if keep == nil || keep(complaint) {
			result = append(result, cloneComplaint(complaint))
		}
	}
	return result
}

func cloneRecords(records []models.HealthRecord) []models.HealthRecord {
	return append(make([]models.HealthRecord, 0, len(records)+1), records...)
}

func cloneComplaints(complaints []models.Complaint) []models.Complaint {
	result := make([]models.Complaint, 0, len(complaints)+1)
	for _, complaint := range complaints {
		result = append(result, cloneComplaint(complaint))
	}
	return result
}

func cloneComplaint(c models.Complaint) models.Complaint {
	if c.Response != nil {
		response := *c.Response
		c.Response = &response
	}
	return c
}
