package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	reportapp "github.com/moldshop/erp/internal/application/report"
)

// Export response headers
const (
	ArchiveKeyHeader = "X-Archive-Key"
	ArchiveURLHeader = "X-Archive-URL"
	ArchiveURLExpiry = "X-Archive-URL-Expires"
)

// ReportHandler serves the dashboard, the summary report and its export
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Dashboard handles GET /reports/dashboard
func (h *ReportHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.reportService.Dashboard(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dashboard)
}

// Summary handles GET /reports/summary
func (h *ReportHandler) Summary(c *gin.Context) {
	summary, err := h.reportService.Summary(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}

// Export handles GET /reports/export and downloads the summary workbook.
// When a copy was archived its key and a signed URL are sent as headers.
func (h *ReportHandler) Export(c *gin.Context) {
	result, err := h.reportService.Export(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if result.ArchiveKey != "" {
		c.Header(ArchiveKeyHeader, result.ArchiveKey)
	}
	if result.DownloadURL != "" {
		c.Header(ArchiveURLHeader, result.DownloadURL)
		c.Header(ArchiveURLExpiry, result.URLExpires.UTC().Format(time.RFC3339))
	}
	c.Header("Content-Disposition", `attachment; filename="`+result.FileName+`"`)
	c.Data(http.StatusOK, result.ContentType, result.Data)
}
