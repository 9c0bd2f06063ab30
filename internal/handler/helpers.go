package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/conceptlens/conceptlens-backend/internal/middleware"
	"github.com/conceptlens/conceptlens-backend/internal/response"
	"github.com/conceptlens/conceptlens-backend/internal/service"
)

// callerID extracts the authenticated user's id from the request claims.
// Returns uuid.Nil and writes a 401 when the claims are missing or damaged.
func callerID(c *gin.Context) (uuid.UUID, bool) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return uuid.Nil, false
	}
	id, err := claims.UUID()
	if err != nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
		return uuid.Nil, false
	}
	return id, true
}

// uuidParam parses a path parameter as a UUID, writing a 400 on failure.
func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return uuid.Nil, false
	}
	return id, true
}

// failFromService maps well-known service errors to their HTTP responses.
// Anything unrecognized becomes a 500.
func failFromService(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, service.ErrAccessDenied):
		response.Fail(c, http.StatusForbidden, response.ErrForbidden)
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
	case errors.Is(err, service.ErrEmailTaken):
		response.Fail(c, http.StatusConflict, response.ErrEmailTaken)
	case errors.Is(err, service.ErrAlreadyEnrolled):
		response.Fail(c, http.StatusConflict, response.ErrAlreadyEnrolled)
	case errors.Is(err, service.ErrRequestPending):
		response.Fail(c, http.StatusConflict, response.ErrRequestPending)
	case errors.Is(err, service.ErrInvalidAction):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidAction)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
