package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/uks-api/internal/dto"
	"github.com/noah-isme/uks-api/internal/models"
	"github.com/noah-isme/uks-api/internal/repository"
	appErrors "github.com/noah-isme/uks-api/pkg/errors"
)

func floatPtr(v float64) *float64 {
	return &v
}

func newHealthService(t *testing.T, store repository.BlobStore) (*HealthService, *fakeNotifier) {
	t.Helper()
	notify := &fakeNotifier{}
	return NewHealthService(loadedHealth(t, store), nil, nil, notify), notify
}

func TestAddHealthRecordVisibleToStudent(t *testing.T) {
	svc, notify := newHealthService(t, repository.NewMemoryBlobStore())
	ctx := context.Background()

	record, err := svc.AddHealthRecord(ctx, budi, dto.CreateHealthRecordRequest{
		Temperature: floatPtr(37.0), Weight: floatPtr(35), Height: floatPtr(145), Notes: " pusing ",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, record.ID)
	assert.NotEmpty(t, record.Date)
	assert.Equal(t, "6A", record.Class)
	assert.Equal(t, "pusing", record.Notes)
	assert.Equal(t, notice{title: "Data Kesehatan Tersimpan", desc: "Data kesehatan Anda telah berhasil disimpan", success: true}, notify.last())

	own := svc.HealthRecordsFor(ctx, budi)
	assert.Contains(t, own, *record)
	assert.NotContains(t, svc.HealthRecordsFor(ctx, dedi), *record)
	assert.Contains(t, svc.HealthRecordsFor(ctx, wati), *record)
	assert.Len(t, svc.HealthRecordsFor(ctx, admin), 3)
}

func TestAddHealthRecordRequiresMeasurements(t *testing.T) {
	svc, notify := newHealthService(t, repository.NewMemoryBlobStore())

	_, err := svc.AddHealthRecord(context.Background(), budi, dto.CreateHealthRecordRequest{Temperature: floatPtr(36.5)})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
	assert.Equal(t, notice{title: "Error", desc: "Semua kolom wajib diisi"}, notify.last())
	assert.Len(t, svc.HealthRecordsFor(context.Background(), admin), 2)
}

func TestAddHealthRecordAcceptsOutOfRangeValues(t *testing.T) {
	svc, _ := newHealthService(t, repository.NewMemoryBlobStore())

	record, err := svc.AddHealthRecord(context.Background(), budi, dto.CreateHealthRecordRequest{
		Temperature: floatPtr(45.2), Weight: floatPtr(0), Height: floatPtr(-1),
	})
	require.NoError(t, err)
	assert.Equal(t, 45.2, record.Temperature)
}

func TestAddHealthRecordPersistFailure(t *testing.T) {
	store := newFlakyStore()
	svc, notify := newHealthService(t, store)
	store.fail = true

	_, err := svc.AddHealthRecord(context.Background(), budi, dto.CreateHealthRecordRequest{
		Temperature: floatPtr(36.5), Weight: floatPtr(30), Height: floatPtr(130),
	})
	assert.ErrorIs(t, err, appErrors.ErrInternal)
	assert.ErrorIs(t, err, errDiskFull)
	assert.False(t, notify.last().success)
	assert.Len(t, svc.HealthRecordsFor(context.Background(), budi), 1)
}

func TestAddComplaint(t *testing.T) {
	svc, notify := newHealthService(t, repository.NewMemoryBlobStore())

	complaint, err := svc.AddComplaint(context.Background(), siti, dto.CreateComplaintRequest{Title: "Demam", Description: "Badan panas"})
	require.NoError(t, err)
	assert.Equal(t, models.ComplaintPending, complaint.Status)
	assert.Equal(t, "Keluhan Terkirim", notify.last().title)
	assert.Len(t, svc.ComplaintsFor(context.Background(), siti), 2)

	_, err = svc.AddComplaint(context.Background(), siti, dto.CreateComplaintRequest{Title: "  ", Description: "x"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestRespondToComplaintTwiceKeepsSecond(t *testing.T) {
	svc, notify := newHealthService(t, repository.NewMemoryBlobStore())
	ctx := context.Background()

	_, err := svc.RespondToComplaint(ctx, wati, "2", dto.RespondComplaintRequest{Message: "Minum obat"})
	require.NoError(t, err)
	updated, err := svc.RespondToComplaint(ctx, wati, "2", dto.RespondComplaintRequest{Message: "Istirahat di rumah"})
	require.NoError(t, err)

	assert.Equal(t, models.ComplaintResponded, updated.Status)
	require.NotNil(t, updated.Response)
	assert.Equal(t, "Istirahat di rumah", updated.Response.Message)
	assert.Equal(t, "4", updated.Response.TeacherID)
	assert.Equal(t, notice{title: "Tanggapan Terkirim", desc: "Tanggapan Anda telah berhasil dikirim ke siswa", success: true}, notify.last())
}

func TestRespondToComplaintErrors(t *testing.T) {
	svc, notify := newHealthService(t, repository.NewMemoryBlobStore())
	ctx := context.Background()

	_, err := svc.RespondToComplaint(ctx, wati, "missing", dto.RespondComplaintRequest{Message: "x"})
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
	assert.Equal(t, notice{title: "Error", desc: "Keluhan tidak ditemukan"}, notify.last())

	_, err = svc.RespondToComplaint(ctx, dedi, "2", dto.RespondComplaintRequest{Message: "x"})
	assert.ErrorIs(t, err, appErrors.ErrForbidden)

	_, err = svc.RespondToComplaint(ctx, wati, "2", dto.RespondComplaintRequest{Message: " "})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	pending := svc.ComplaintsFor(ctx, siti)
	require.Len(t, pending, 1)
	assert.Equal(t, models.ComplaintPending, pending[0].Status)
}

func TestComplaintsScopedByRole(t *testing.T) {
	svc, _ := newHealthService(t, repository.NewMemoryBlobStore())
	ctx := context.Background()

	assert.Len(t, svc.ComplaintsFor(ctx, budi), 1)
	assert.Len(t, svc.ComplaintsFor(ctx, wati), 2)
	assert.Empty(t, svc.ComplaintsFor(ctx, dedi))
	assert.Len(t, svc.ComplaintsFor(ctx, admin), 2)
	assert.Empty(t, svc.ComplaintsFor(ctx, models.UserInfo{Role: "guest"}))
}

func TestHealthRejectPayloadNotifies(t *testing.T) {
	svc, notify := newHealthService(t, repository.NewMemoryBlobStore())

	err := svc.RejectPayload(context.Background(), errDiskFull)
	assert.ErrorIs(t, err, appErrors.ErrValidation)
	assert.Equal(t, notice{title: "Error", desc: "Format data tidak valid"}, notify.last())
	assert.Len(t, svc.HealthRecordsFor(context.Background(), admin), 2)
}
