package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	reportapp "github.com/pantry/backend/internal/application/report"
)

// ReportHandler handles reconciliation report endpoints
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// RegisterRoutes implements router.RouteRegistrar
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	reports.GET("/reconciliation", h.Get)
	reports.GET("/reconciliation/export", h.Export)
	reports.GET("/overview", h.Overview)
}

// Get handles GET /api/v1/reports/reconciliation.
// Query params: month (YYYY-MM, defaults to the current period),
// page, page_size.
func (h *ReportHandler) Get(c *gin.Context) {
	q, ok := h.bindQuery(c)
	if !ok {
		return
	}

	resp, err := h.reportService.Get(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Export handles GET /api/v1/reports/reconciliation/export, returning
// the full report for the period as an XLSX attachment
func (h *ReportHandler) Export(c *gin.Context) {
	q, ok := h.bindQuery(c)
	if !ok {
		return
	}

	data, filename, err := h.reportService.ExportXLSX(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// Overview handles GET /api/v1/reports/overview, the dashboard ranking
// of purchases within the queried period.
// Query params: month (YYYY-MM, defaults to the current period).
func (h *ReportHandler) Overview(c *gin.Context) {
	resp, err := h.reportService.Overview(c.Request.Context(),
		reportapp.Query{Month: c.Query("month")})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// bindQuery parses report query parameters
func (h *ReportHandler) bindQuery(c *gin.Context) (reportapp.Query, bool) {
	q := reportapp.Query{
		Month: c.Query("month"),
	}

	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			h.BadRequest(c, "page must be a positive integer")
			return q, false
		}
		q.Page = page
	}

	if raw := c.Query("page_size"); raw != "" {
		pageSize, err := strconv.Atoi(raw)
		if err != nil || pageSize < 1 || pageSize > 500 {
			h.BadRequest(c, "page_size must be between 1 and 500")
			return q, false
		}
		q.PageSize = pageSize
	}

	return q, true
}
