package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/conceptlens/conceptlens-backend/internal/middleware"
	"github.com/conceptlens/conceptlens-backend/internal/model"
	"github.com/conceptlens/conceptlens-backend/internal/response"
	"github.com/conceptlens/conceptlens-backend/internal/service"
	"github.com/conceptlens/conceptlens-backend/internal/validator"
)

// ClassHandler serves class management and the student join workflow.
type ClassHandler struct {
	classService *service.ClassService
	authService  *service.AuthService
}

func NewClassHandler(classService *service.ClassService, authService *service.AuthService) *ClassHandler {
	return &ClassHandler{classService: classService, authService: authService}
}

// Create godoc
// POST /api/v1/classes
func (h *ClassHandler) Create(c *gin.Context) {
	professorID, ok := callerID(c)
	if !ok {
		return
	}

	var req model.CreateClassRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	institutionID := ""
	if profile, err := h.authService.GetProfile(c.Request.Context(), professorID); err == nil {
		institutionID = profile.InstitutionID
	}

	class, err := h.classService.Create(c.Request.Context(), professorID, institutionID, req)
	if err != nil {
		failFromService(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"class": class})
}

// List godoc
// GET /api/v1/classes
func (h *ClassHandler) List(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var classes []model.Class
	var err error
	if claims := middleware.GetClaims(c); claims != nil && claims.Role == model.RoleStudent {
		classes, err = h.classService.ListForStudent(c.Request.Context(), userID)
	} else {
		classes, err = h.classService.ListForProfessor(c.Request.Context(), userID)
	}
	if err != nil {
		failFromService(c, err)
		return
	}
	if classes == nil {
		classes = []model.Class{}
	}
	response.Success(c, http.StatusOK, gin.H{"classes": classes})
}

// Get godoc
// GET /api/v1/classes/:id
func (h *ClassHandler) Get(c *gin.Context) {
	professorID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	class, err := h.classService.GetOwned(c.Request.Context(), id, professorID)
	if err != nil {
		failFromService(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"class": class})
}

// Delete godoc
// DELETE /api/v1/classes/:id
func (h *ClassHandler) Delete(c *gin.Context) {
	professorID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.classService.Delete(c.Request.Context(), id, professorID); err != nil {
		failFromService(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "class deleted successfully"})
}

// Roster godoc
// GET /api/v1/classes/:id/students
func (h *ClassHandler) Roster(c *gin.Context) {
	professorID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	students, err := h.classService.Roster(c.Request.Context(), id, professorID)
	if err != nil {
		failFromService(c, err)
		return
	}
	if students == nil {
		students = []model.ClassStudent{}
	}
	response.Success(c, http.StatusOK, gin.H{"students": students})
}

// PendingRequests godoc
// GET /api/v1/classes/:id/requests
func (h *ClassHandler) PendingRequests(c *gin.Context) {
	professorID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	requests, err := h.classService.PendingRequests(c.Request.Context(), id, professorID)
	if err != nil {
		failFromService(c, err)
		return
	}
	if requests == nil {
		requests = []model.ClassJoinRequest{}
	}
	response.Success(c, http.StatusOK, gin.H{"requests": requests})
}

// Approve godoc
// POST /api/v1/classes/requests/:request_id/approve
func (h *ClassHandler) Approve(c *gin.Context) {
	h.review(c, true)
}

// Reject godoc
// POST /api/v1/classes/requests/:request_id/reject
func (h *ClassHandler) Reject(c *gin.Context) {
	h.review(c, false)
}

func (h *ClassHandler) review(c *gin.Context, approve bool) {
	professorID, ok := callerID(c)
	if !ok {
		return
	}
	requestID, ok := uuidParam(c, "request_id")
	if !ok {
		return
	}

	if err := h.classService.Review(c.Request.Context(), requestID, professorID, approve); err != nil {
		failFromService(c, err)
		return
	}
	outcome := "rejected"
	if approve {
		outcome = "approved"
	}
	response.Success(c, http.StatusOK, gin.H{"message": "join request " + outcome})
}

// Join godoc
// POST /api/v1/student/classes/join
func (h *ClassHandler) Join(c *gin.Context) {
	studentID, ok := callerID(c)
	if !ok {
		return
	}

	var req model.JoinClassRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	joinReq, err := h.classService.Join(c.Request.Context(), studentID, req.ClassCode)
	if err != nil {
		failFromService(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"request": joinReq})
}
