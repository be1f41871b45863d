package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/uks-api/internal/models"
	"github.com/noah-isme/uks-api/internal/service"
	"github.com/noah-isme/uks-api/pkg/response"
)

type reportExporter interface {
	Export(ctx context.Context, filter models.ReportFilter, format string) (*service.ExportFile, error)
}

// ReportHandler exposes the report download.
type ReportHandler struct {
	reports reportExporter
}

// NewReportHandler constructs handler.
func NewReportHandler(reports reportExporter) *ReportHandler {
	return &ReportHandler{reports: reports}
}

func reportFilterFromQuery(c *gin.Context) models.ReportFilter {
	return models.ReportFilter{
		Type:   models.ReportType(c.Query("type")),
		Class:  c.Query("kelas"),
		Date:   c.Query("date"),
		Search: c.Query("search"),
	}
}

// Export godoc
// @Summary Export the filtered report
// @Tags Reports
// @Produce text/csv
// @Produce application/pdf
// @Param type query string false "health or complaints"
// @Param format query string false "csv or pdf"
// @Param kelas query string false "Class or all"
// @Param date query string false "YYYY-MM-DD"
// @Param search query string false "Free text"
// @Success 200 {file} binary
// @Failure 400 {object} response.Envelope
// @Router /reports/export [get]
func (h *ReportHandler) Export(c *gin.Context) {
	file, err := h.reports.Export(c.Request.Context(), reportFilterFromQuery(c), c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Name, file.ContentType, file.Data)
}
