package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/conceptlens/conceptlens-backend/internal/model"
	"github.com/conceptlens/conceptlens-backend/internal/response"
	"github.com/conceptlens/conceptlens-backend/internal/service"
	"github.com/conceptlens/conceptlens-backend/internal/validator"
)

// ExamHandler serves professor exam management.
type ExamHandler struct {
	examService *service.ExamService
}

func NewExamHandler(examService *service.ExamService) *ExamHandler {
	return &ExamHandler{examService: examService}
}

// Create godoc
// POST /api/v1/exams
func (h *ExamHandler) Create(c *gin.Context) {
	professorID, ok := callerID(c)
	if !ok {
		return
	}

	var req model.CreateExamRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	exam, err := h.examService.Create(c.Request.Context(), professorID, req)
	if err != nil {
		failFromService(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"exam": exam})
}

// List godoc
// GET /api/v1/exams
func (h *ExamHandler) List(c *gin.Context) {
	professorID, ok := callerID(c)
	if !ok {
		return
	}

	exams, err := h.examService.ListForProfessor(c.Request.Context(), professorID)
	if err != nil {
		failFromService(c, err)
		return
	}
	if exams == nil {
		exams = []model.Exam{}
	}
	response.Success(c, http.StatusOK, gin.H{"exams": exams})
}

// Get godoc
// GET /api/v1/exams/:id
func (h *ExamHandler) Get(c *gin.Context) {
	professorID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	exam, err := h.examService.GetOwned(c.Request.Context(), id, professorID)
	if err != nil {
		failFromService(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"exam": exam})
}

// Update godoc
// PUT /api/v1/exams/:id
func (h *ExamHandler) Update(c *gin.Context) {
	professorID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req model.CreateExamRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	exam, err := h.examService.Update(c.Request.Context(), id, professorID, req)
	if err != nil {
		failFromService(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"exam": exam})
}

// Delete godoc
// DELETE /api/v1/exams/:id
func (h *ExamHandler) Delete(c *gin.Context) {
	professorID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.examService.Delete(c.Request.Context(), id, professorID); err != nil {
		failFromService(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "exam deleted successfully"})
}

// SetValidated godoc
// PUT /api/v1/exams/:id/validate
func (h *ExamHandler) SetValidated(c *gin.Context) {
	professorID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req model.ValidateExamRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.examService.SetValidated(c.Request.Context(), id, professorID, *req.IsValidated); err != nil {
		failFromService(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id.String(), "is_validated": *req.IsValidated})
}

// AttemptedStudents godoc
// GET /api/v1/exams/:id/students
func (h *ExamHandler) AttemptedStudents(c *gin.Context) {
	professorID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	students, err := h.examService.AttemptedStudents(c.Request.Context(), id, professorID)
	if err != nil {
		failFromService(c, err)
		return
	}
	if students == nil {
		students = []model.AttemptedStudent{}
	}
	response.Success(c, http.StatusOK, gin.H{"students": students})
}
