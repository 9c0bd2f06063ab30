package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/conceptlens/conceptlens-backend/internal/model"
	"github.com/conceptlens/conceptlens-backend/internal/response"
	"github.com/conceptlens/conceptlens-backend/internal/service"
)

// AnalyticsHandler serves the professor-facing analytics read models.
type AnalyticsHandler struct {
	reportService *service.ReportService
}

func NewAnalyticsHandler(reportService *service.ReportService) *AnalyticsHandler {
	return &AnalyticsHandler{reportService: reportService}
}

// statusQuery reads the optional ?status= filter. An absent param falls back
// to the endpoint's default review state; "all" disables the filter entirely.
// Returns false after writing a 400 when the value is not a known review state.
func statusQuery(c *gin.Context, fallback model.MisconceptionStatus) (model.MisconceptionStatus, bool) {
	raw := c.Query("status")
	if raw == "" {
		return fallback, true
	}
	if raw == "all" {
		return "", true
	}
	status := model.MisconceptionStatus(raw)
	if !model.IsValidStatus(status) {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidStatus)
		return "", false
	}
	return status, true
}

// GroupedMisconceptions godoc
// GET /api/v1/analytics/misconceptions/grouped?status=
func (h *AnalyticsHandler) GroupedMisconceptions(c *gin.Context) {
	professorID, ok := callerID(c)
	if !ok {
		return
	}
	// Grouped reports are professor-facing output: only reviewed clusters by
	// default.
	status, ok := statusQuery(c, model.MisconceptionValid)
	if !ok {
		return
	}

	reports, err := h.reportService.GroupedMisconceptions(c.Request.Context(), professorID, status)
	if err != nil {
		failFromService(c, err)
		return
	}
	if reports == nil {
		reports = []model.ExamMisconceptionReport{}
	}
	response.Success(c, http.StatusOK, gin.H{"reports": reports})
}

// DashboardStats godoc
// GET /api/v1/analytics/dashboard/stats
func (h *AnalyticsHandler) DashboardStats(c *gin.Context) {
	stats, err := h.reportService.DashboardStats(c.Request.Context())
	if err != nil {
		failFromService(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats)
}

// Trends godoc
// GET /api/v1/analytics/reports/trends
func (h *AnalyticsHandler) Trends(c *gin.Context) {
	professorID, ok := callerID(c)
	if !ok {
		return
	}

	report, err := h.reportService.Trends(c.Request.Context(), professorID)
	if err != nil {
		failFromService(c, err)
		return
	}
	response.Success(c, http.StatusOK, report)
}

// Assessments godoc
// GET /api/v1/analytics/assessments
func (h *AnalyticsHandler) Assessments(c *gin.Context) {
	professorID, ok := callerID(c)
	if !ok {
		return
	}

	summaries, err := h.reportService.AssessmentSummaries(c.Request.Context(), professorID)
	if err != nil {
		failFromService(c, err)
		return
	}
	if summaries == nil {
		summaries = []model.ExamSummary{}
	}
	response.Success(c, http.StatusOK, gin.H{"assessments": summaries})
}
