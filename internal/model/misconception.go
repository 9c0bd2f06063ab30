package model

import (
	"time"

	"github.com/google/uuid"
)

// MisconceptionStatus is the professor-review state of a detected cluster.
type MisconceptionStatus string

const (
	MisconceptionPending  MisconceptionStatus = "pending"
	MisconceptionValid    MisconceptionStatus = "valid"
	MisconceptionRejected MisconceptionStatus = "rejected"
)

// IsValidStatus reports whether s is one of the known review states.
func IsValidStatus(s MisconceptionStatus) bool {
	switch s {
	case MisconceptionPending, MisconceptionValid, MisconceptionRejected:
		return true
	}
	return false
}

// Misconception is a flagged cluster of semantically similar incorrect
// answers to one question. Clusters are produced by an external detection
// process; this service only consumes, enriches, and reviews them.
type Misconception struct {
	ID              uuid.UUID           `json:"id"`
	AssessmentID    uuid.UUID           `json:"assessment_id"`
	QuestionID      string              `json:"question_id"`
	ClusterLabel    string              `json:"cluster_label"`
	StudentCount    int                 `json:"student_count"`
	ConfidenceScore float64             `json:"confidence_score"`
	Status          MisconceptionStatus `json:"status"`
	ExampleIDs      []uuid.UUID         `json:"example_ids"`
	LastUpdated     *time.Time          `json:"last_updated,omitempty"`
}

// EnrichedMisconception is a misconception joined with its exam context,
// synthesized reasoning, and evidence snippets. All id fields are canonical
// strings for cross-boundary serialization safety.
type EnrichedMisconception struct {
	ID              string   `json:"id"`
	AssessmentID    string   `json:"assessment_id"`
	QuestionID      string   `json:"question_id"`
	QuestionText    string   `json:"question_text"`
	Options         []string `json:"options,omitempty"`
	ClusterLabel    string   `json:"cluster_label"`
	StudentCount    int      `json:"student_count"`
	ConfidenceScore float64  `json:"confidence_score"`
	Status          string   `json:"status"`
	Reasoning       string   `json:"reasoning"`
	ConceptChain    []string `json:"concept_chain"`
	Evidence        []string `json:"evidence"`
	ExampleIDs      []string `json:"example_ids"`
}

// UpdateStatusRequest is the payload for a direct status transition.
type UpdateStatusRequest struct {
	Status MisconceptionStatus `json:"status" binding:"required,oneof=pending valid rejected"`
}

// ValidateRequest is the payload for the review workflow. Rename implies
// approval.
type ValidateRequest struct {
	Action   string `json:"action" binding:"required,oneof=approve reject rename"`
	NewLabel string `json:"new_label" binding:"omitempty,min=1,max=500"`
}

// ValidationLog is the audit record of a professor review action.
type ValidationLog struct {
	ID              uuid.UUID `json:"id"`
	MisconceptionID uuid.UUID `json:"misconception_id"`
	TeacherID       uuid.UUID `json:"teacher_id"`
	Action          string    `json:"action"`
	CreatedAt       time.Time `json:"created_at"`
}
