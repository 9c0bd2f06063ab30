package model

import (
	"time"

	"github.com/google/uuid"
)

// StudentResponse is one student's answer to one question. Append-only.
type StudentResponse struct {
	ID           uuid.UUID `json:"id"`
	AssessmentID uuid.UUID `json:"assessment_id"`
	StudentID    uuid.UUID `json:"student_id"`
	QuestionID   uuid.UUID `json:"question_id"`
	ResponseText string    `json:"response_text"`
	IsCorrect    bool      `json:"is_correct"`
	SubmittedAt  time.Time `json:"submitted_at"`
}

// SubmitAnswer is a single answer inside a submission payload.
type SubmitAnswer struct {
	QuestionID   uuid.UUID `json:"question_id" binding:"required"`
	ResponseText string    `json:"response_text" binding:"required,max=2000"`
}

// SubmitResponsesRequest is the payload for a student exam submission.
type SubmitResponsesRequest struct {
	Answers []SubmitAnswer `json:"answers" binding:"required,min=1,dive"`
}
