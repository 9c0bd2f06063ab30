package model

import "time"

// ExamMisconceptionReport is one exam group in the grouped-misconceptions
// report.
type ExamMisconceptionReport struct {
	ExamID             string                  `json:"exam_id"`
	ExamTitle          string                  `json:"exam_title"`
	SubjectID          string                  `json:"subject_id"`
	CreatedAt          time.Time               `json:"created_at"`
	MisconceptionCount int                     `json:"misconception_count"`
	StudentCount       int                     `json:"student_count"`
	ImpactSummary      string                  `json:"impact_summary"`
	Misconceptions     []EnrichedMisconception `json:"misconceptions"`
}

// DashboardStats are the headline review-queue numbers.
type DashboardStats struct {
	PendingMisconceptions int `json:"pending_misconceptions"`
	ValidMisconceptions   int `json:"valid_misconceptions"`
	ProcessedResponses    int `json:"processed_responses"`
}

// CellStatus marks the severity of one trend-matrix cell.
type CellStatus string

const (
	CellClean    CellStatus = "clean"
	CellIssue    CellStatus = "issue"
	CellCritical CellStatus = "critical"
)

// Trend is the directional classification of a topic's issue history.
type Trend string

const (
	TrendStable    Trend = "stable"
	TrendImproving Trend = "improving"
	TrendWorsening Trend = "worsening"
)

// TrendCell is one (topic, exam) cell of the trend matrix.
type TrendCell struct {
	ExamID    string     `json:"exam_id"`
	ExamTitle string     `json:"exam_title"`
	Count     int        `json:"count"`
	Status    CellStatus `json:"status"`
}

// TopicTrend is one row of the trend matrix: a topic's chronological issue
// history plus its overall trend classification.
type TopicTrend struct {
	Topic   string      `json:"topic"`
	Trend   Trend       `json:"trend"`
	History []TrendCell `json:"history"`
}

// TrendReport is the full trend-matrix response.
type TrendReport struct {
	Summary string       `json:"summary"`
	Exams   []ExamRef    `json:"exams"`
	Matrix  []TopicTrend `json:"matrix"`
}

// ExamSummary is one exam's participation/score statistics.
type ExamSummary struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	SubjectID     string    `json:"subject_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	TotalStudents int       `json:"total_students"`
	AvgScore      float64   `json:"avg_score"`
	Status        string    `json:"status"`
}
