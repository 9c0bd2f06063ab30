package insight

import (
	"math"

	"github.com/google/uuid"

	"github.com/conceptlens/conceptlens-backend/internal/model"
)

// Exam participation states surfaced in the assessment summary list.
const (
	SummaryStatusActive        = "Active"
	SummaryStatusNoSubmissions = "No submissions"
)

// BuildExamSummary computes one exam's participation/score statistics from
// its response records.
func BuildExamSummary(exam model.Exam, responses []model.StudentResponse) model.ExamSummary {
	summary := model.ExamSummary{
		ID:        exam.ID.String(),
		Title:     exam.Title,
		SubjectID: exam.SubjectID,
		CreatedAt: exam.CreatedAt,
	}

	if len(responses) == 0 {
		summary.Status = SummaryStatusNoSubmissions
		return summary
	}

	students := make(map[uuid.UUID]struct{}, len(responses))
	correct := 0
	for _, r := range responses {
		students[r.StudentID] = struct{}{}
		if r.IsCorrect {
			correct++
		}
	}

	avg := float64(correct) / float64(len(responses)) * 100
	summary.TotalStudents = len(students)
	summary.AvgScore = math.Round(avg*10) / 10
	summary.Status = SummaryStatusActive
	return summary
}
