package insight

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/conceptlens/conceptlens-backend/internal/model"
)

func TestBuildExamSummaryAverageScore(t *testing.T) {
	exam := model.Exam{ID: uuid.New(), Title: "Quiz", SubjectID: "DB101", CreatedAt: time.Now()}
	s1, s2 := uuid.New(), uuid.New()

	responses := []model.StudentResponse{
		{StudentID: s1, IsCorrect: true},
		{StudentID: s1, IsCorrect: true},
		{StudentID: s2, IsCorrect: false},
		{StudentID: s2, IsCorrect: false},
	}

	summary := BuildExamSummary(exam, responses)

	if summary.AvgScore != 50.0 {
		t.Errorf("AvgScore = %v, want 50.0", summary.AvgScore)
	}
	if summary.TotalStudents != 2 {
		t.Errorf("TotalStudents = %d, want 2", summary.TotalStudents)
	}
	if summary.Status != SummaryStatusActive {
		t.Errorf("Status = %q", summary.Status)
	}
}

func TestBuildExamSummaryRoundsOneDecimal(t *testing.T) {
	exam := model.Exam{ID: uuid.New(), Title: "Quiz"}
	responses := []model.StudentResponse{
		{StudentID: uuid.New(), IsCorrect: true},
		{StudentID: uuid.New(), IsCorrect: false},
		{StudentID: uuid.New(), IsCorrect: false},
	}

	// 1/3 → 33.333... → 33.3
	if got := BuildExamSummary(exam, responses).AvgScore; got != 33.3 {
		t.Errorf("AvgScore = %v, want 33.3", got)
	}
}

func TestBuildExamSummaryNoSubmissions(t *testing.T) {
	exam := model.Exam{ID: uuid.New(), Title: "Quiz"}

	summary := BuildExamSummary(exam, nil)

	if summary.Status != SummaryStatusNoSubmissions {
		t.Errorf("Status = %q", summary.Status)
	}
	if summary.TotalStudents != 0 || summary.AvgScore != 0 {
		t.Errorf("want zero-valued summary, got %+v", summary)
	}
}
