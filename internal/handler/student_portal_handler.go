package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/conceptlens/conceptlens-backend/internal/model"
	"github.com/conceptlens/conceptlens-backend/internal/response"
	"github.com/conceptlens/conceptlens-backend/internal/service"
	"github.com/conceptlens/conceptlens-backend/internal/validator"
)

// StudentPortalHandler serves the student-facing exam surface.
type StudentPortalHandler struct {
	examService *service.ExamService
}

func NewStudentPortalHandler(examService *service.ExamService) *StudentPortalHandler {
	return &StudentPortalHandler{examService: examService}
}

// ListExams godoc
// GET /api/v1/student/exams
func (h *StudentPortalHandler) ListExams(c *gin.Context) {
	studentID, ok := callerID(c)
	if !ok {
		return
	}

	exams, err := h.examService.ListForStudent(c.Request.Context(), studentID)
	if err != nil {
		failFromService(c, err)
		return
	}
	if exams == nil {
		exams = []model.Exam{}
	}
	response.Success(c, http.StatusOK, gin.H{"exams": exams})
}

// SubmitResponses godoc
// POST /api/v1/student/exams/:id/responses
func (h *StudentPortalHandler) SubmitResponses(c *gin.Context) {
	studentID, ok := callerID(c)
	if !ok {
		return
	}
	examID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req model.SubmitResponsesRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	result, err := h.examService.SubmitResponses(c.Request.Context(), examID, studentID, req)
	if err != nil {
		failFromService(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"result": result})
}
