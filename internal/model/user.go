package model

import (
	"time"

	"github.com/google/uuid"
)

// Role distinguishes professor and student accounts.
type Role string

const (
	RoleProfessor Role = "professor"
	RoleStudent   Role = "student"
)

// User represents a platform account (professor or student).
type User struct {
	ID            uuid.UUID `json:"id"`
	FullName      string    `json:"full_name"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	Role          Role      `json:"role"`
	InstitutionID string    `json:"institution_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// RegisterRequest is the payload for account signup.
type RegisterRequest struct {
	FullName      string `json:"full_name" binding:"required,min=2,max=100"`
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required,min=6,max=128"`
	Role          Role   `json:"role" binding:"required,oneof=professor student"`
	InstitutionID string `json:"institution_id" binding:"omitempty,max=100"`
}

// LoginRequest is the payload for authentication.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=128"`
}

// LoginResponse is returned after successful login.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
