package model

import "github.com/google/uuid"

// DefaultTopicID is assigned to questions created without an explicit topic.
const DefaultTopicID = "general"

// Question is a single exam question. Questions live inside their exam and
// are not independently addressable.
type Question struct {
	ID            uuid.UUID `json:"id"`
	ExamID        uuid.UUID `json:"-"`
	Text          string    `json:"text"`
	Options       []string  `json:"options"`
	CorrectOption string    `json:"-"`
	TopicID       string    `json:"topic_id"`
	OrderNum      int       `json:"order_num"`
}

// CreateQuestionRequest is the payload for a question inside exam creation.
type CreateQuestionRequest struct {
	Text          string   `json:"text" binding:"required,min=1,max=2000"`
	Options       []string `json:"options" binding:"required,min=2"`
	CorrectOption string   `json:"correct_option" binding:"required"`
	TopicID       string   `json:"topic_id" binding:"omitempty,max=100"`
	OrderNum      int      `json:"order_num" binding:"min=0"`
}
