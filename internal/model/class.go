package model

import (
	"time"

	"github.com/google/uuid"
)

// Class is a professor-owned group of students.
type Class struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	SubjectID     string    `json:"subject_id"`
	InstitutionID string    `json:"institution_id,omitempty"`
	ProfessorID   uuid.UUID `json:"professor_id"`
	ClassCode     string    `json:"class_code"`
	CreatedAt     time.Time `json:"created_at"`
}

// CreateClassRequest is the payload for creating a class.
type CreateClassRequest struct {
	Name      string `json:"name" binding:"required,min=2,max=200"`
	SubjectID string `json:"subject_id" binding:"required,min=1,max=100"`
}

// JoinClassRequest is the payload for a student join-by-code request.
type JoinClassRequest struct {
	ClassCode string `json:"class_code" binding:"required,len=6"`
}

// JoinRequestStatus is the workflow state of a join request.
type JoinRequestStatus string

const (
	JoinRequestPending  JoinRequestStatus = "PENDING"
	JoinRequestApproved JoinRequestStatus = "APPROVED"
	JoinRequestRejected JoinRequestStatus = "REJECTED"
)

// ClassJoinRequest is a student's pending request to join a class.
type ClassJoinRequest struct {
	ID          uuid.UUID         `json:"id"`
	ClassID     uuid.UUID         `json:"class_id"`
	StudentID   uuid.UUID         `json:"student_id"`
	StudentName string            `json:"student_name"`
	Status      JoinRequestStatus `json:"status"`
	RequestedAt time.Time         `json:"requested_at"`
}

// ClassStudent is one enrolled student of a class roster.
type ClassStudent struct {
	ID       uuid.UUID `json:"id"`
	FullName string    `json:"full_name"`
	Email    string    `json:"email"`
	JoinedAt time.Time `json:"joined_at"`
}
