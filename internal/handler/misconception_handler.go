package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/conceptlens/conceptlens-backend/internal/model"
	"github.com/conceptlens/conceptlens-backend/internal/response"
	"github.com/conceptlens/conceptlens-backend/internal/service"
	"github.com/conceptlens/conceptlens-backend/internal/validator"
)

// MisconceptionHandler serves the misconception review surface.
type MisconceptionHandler struct {
	misService *service.MisconceptionService
}

func NewMisconceptionHandler(misService *service.MisconceptionService) *MisconceptionHandler {
	return &MisconceptionHandler{misService: misService}
}

// List godoc
// GET /api/v1/analytics/misconceptions?status=
func (h *MisconceptionHandler) List(c *gin.Context) {
	professorID, ok := callerID(c)
	if !ok {
		return
	}
	// The list is the review queue: pending clusters by default.
	status, ok := statusQuery(c, model.MisconceptionPending)
	if !ok {
		return
	}

	misconceptions, err := h.misService.List(c.Request.Context(), professorID, status)
	if err != nil {
		failFromService(c, err)
		return
	}
	if misconceptions == nil {
		misconceptions = []model.EnrichedMisconception{}
	}
	response.Success(c, http.StatusOK, gin.H{"misconceptions": misconceptions})
}

// Get godoc
// GET /api/v1/analytics/misconceptions/:id
func (h *MisconceptionHandler) Get(c *gin.Context) {
	professorID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	enriched, err := h.misService.GetEnriched(c.Request.Context(), id, professorID)
	if err != nil {
		failFromService(c, err)
		return
	}
	response.Success(c, http.StatusOK, enriched)
}

// UpdateStatus godoc
// PUT /api/v1/analytics/misconceptions/:id/status
func (h *MisconceptionHandler) UpdateStatus(c *gin.Context) {
	professorID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req model.UpdateStatusRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.misService.UpdateStatus(c.Request.Context(), id, professorID, req.Status); err != nil {
		failFromService(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id.String(), "status": req.Status})
}

// Validate godoc
// POST /api/v1/teacher/misconceptions/:id/validate
func (h *MisconceptionHandler) Validate(c *gin.Context) {
	professorID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req model.ValidateRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	status, err := h.misService.Validate(c.Request.Context(), id, professorID, req)
	if err != nil {
		failFromService(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"message": "misconception reviewed",
		"status":  status,
	})
}
