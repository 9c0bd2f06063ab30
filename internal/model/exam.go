package model

import (
	"time"

	"github.com/google/uuid"
)

// Exam represents an assessment authored by a professor. Questions are
// loaded alongside the exam wherever enrichment or classification needs them.
type Exam struct {
	ID          uuid.UUID   `json:"id"`
	ProfessorID uuid.UUID   `json:"professor_id"`
	SubjectID   string      `json:"subject_id"`
	Title       string      `json:"title"`
	IsValidated bool        `json:"is_validated"`
	ClassIDs    []uuid.UUID `json:"class_ids"`
	Questions   []Question  `json:"questions"`
	CreatedAt   time.Time   `json:"created_at"`

	// Attempted is only populated for student-facing listings.
	Attempted bool `json:"attempted,omitempty"`
}

// QuestionByID returns the embedded question whose id matches the given
// string, or nil. Matching is by canonical string form since misconception
// records carry question ids as opaque strings.
func (e *Exam) QuestionByID(id string) *Question {
	for i := range e.Questions {
		if e.Questions[i].ID.String() == id {
			return &e.Questions[i]
		}
	}
	return nil
}

// CreateExamRequest is the payload for creating or replacing an exam.
type CreateExamRequest struct {
	Title     string                  `json:"title" binding:"required,min=3,max=255"`
	SubjectID string                  `json:"subject_id" binding:"required,min=1,max=100"`
	ClassIDs  []uuid.UUID             `json:"class_ids" binding:"omitempty"`
	Questions []CreateQuestionRequest `json:"questions" binding:"required,min=1,dive"`
}

// ValidateExamRequest toggles the is_validated flag.
type ValidateExamRequest struct {
	IsValidated *bool `json:"is_validated" binding:"required"`
}

// ExamRef is a minimal exam reference used in trend reports.
type ExamRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// AttemptedStudent is one row of an exam's participation roster.
type AttemptedStudent struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Status string `json:"status"`
}
