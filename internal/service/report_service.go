package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/uks-api/internal/analytics"
	"github.com/noah-isme/uks-api/internal/models"
	appErrors "github.com/noah-isme/uks-api/pkg/errors"
	"github.com/noah-isme/uks-api/pkg/export"
)

// Export formats.
const (
	FormatCSV = "csv"
	FormatPDF = "pdf"
)

var (
	healthHeaders    = []string{"Nama Siswa", "Kelas", "Tanggal", "Suhu (°C)", "Berat (kg)", "Tinggi (cm)", "Catatan"}
	complaintHeaders = []string{"Nama Siswa", "Kelas", "Tanggal", "Judul", "Deskripsi", "Status", "Tanggapan", "Tanggal Tanggapan"}
)

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportFile is a rendered report ready for download.
type ExportFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// ReportService renders the filtered admin report view as CSV or PDF.
type ReportService struct {
	health healthReader
	csv    csvRenderer
	pdf    pdfRenderer
	logger *zap.Logger
	now    func() time.Time
}

// NewReportService constructs a ReportService.
func NewReportService(health healthReader, csv csvRenderer, pdf pdfRenderer, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ReportService{health: health, csv: csv, pdf: pdf, logger: logger, now: time.Now}
}

// Export renders the filtered dataset. An empty view is rejected.
func (s *ReportService) Export(ctx context.Context, filter models.ReportFilter, format string) (*ExportFile, error) {
	filter, err := normalizeReportFilter(filter)
	if err != nil {
		return nil, err
	}
	if format == "" {
		format = FormatCSV
	}
	if format != FormatCSV && format != FormatPDF {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Format ekspor tidak valid")
	}

	dataset, title := s.dataset(ctx, filter)
	if len(dataset.Rows) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Tidak ada data untuk diekspor")
	}

	name := fmt.Sprintf("laporan_%s_%s.%s", filter.Type, s.now().UTC().Format(models.DateLayout), format)
	var file *ExportFile
	switch format {
	case FormatPDF:
		payload, err := s.pdf.Render(dataset, title)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		file = &ExportFile{Name: name, ContentType: "application/pdf", Data: payload}
	default:
		payload, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		file = &ExportFile{Name: name, ContentType: "text/csv; charset=utf-8", Data: payload}
	}

	s.logger.Info("report exported", zap.String("type", string(filter.Type)), zap.String("format", format), zap.Int("rows", len(dataset.Rows)))
	return file, nil
}

func (s *ReportService) dataset(ctx context.Context, filter models.ReportFilter) (export.Dataset, string) {
	if filter.Type == models.ReportComplaints {
		complaints := analytics.FilterComplaintReport(s.health.AllComplaints(ctx), filter)
		return complaintDataset(complaints), "Laporan Keluhan Siswa"
	}
	records := analytics.FilterHealthReport(s.health.AllHealth(ctx), filter)
	return healthDataset(records), "Laporan Data Kesehatan"
}

func formatNumber(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func healthDataset(records []models.HealthRecord) export.Dataset {
	rows := make([]map[string]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, map[string]string{
			"Nama Siswa":  record.StudentName,
			"Kelas":       record.Class,
			"Tanggal":     record.Date,
			"Suhu (°C)":   formatNumber(record.Temperature),
			"Berat (kg)":  formatNumber(record.Weight),
			"Tinggi (cm)": formatNumber(record.Height),
			"Catatan":     record.Notes,
		})
	}
	return export.Dataset{Headers: healthHeaders, Rows: rows}
}

func complaintDataset(complaints []models.Complaint) export.Dataset {
	rows := make([]map[string]string, 0, len(complaints))
	for _, complaint := range complaints {
		status := "Belum Ditanggapi"
		var responseText, responseDate string
		if complaint.Status == models.ComplaintResponded {
			status = "Sudah Ditanggapi"
		}
		if complaint.Response != nil {
			responseText = complaint.Response.Message
			responseDate = complaint.Response.Date
		}
		rows = append(rows, map[string]string{
			"Nama Siswa":        complaint.StudentName,
			"Kelas":             complaint.Class,
			"Tanggal":           complaint.Date,
			"Judul":             complaint.Title,
			"Deskripsi":         complaint.Description,
			"Status":            status,
			"Tanggapan":         responseText,
			"Tanggal Tanggapan": responseDate,
		})
	}
	return export.Dataset{Headers: complaintHeaders, Rows: rows}
}
