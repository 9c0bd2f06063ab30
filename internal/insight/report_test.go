package insight

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/conceptlens/conceptlens-backend/internal/model"
)

// TestBuildExamReportsScenario follows a full professor flow: one exam, one
// question, two valid misconception clusters on it.
func TestBuildExamReportsScenario(t *testing.T) {
	q := model.Question{
		ID:      uuid.New(),
		Text:    "What is a foreign key constraint?",
		Options: []string{"A", "B", "C", "D"},
	}
	exam := model.Exam{
		ID:        uuid.New(),
		SubjectID: "DB101",
		Title:     "Quiz 1",
		Questions: []model.Question{q},
		CreatedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}

	misconceptions := []model.Misconception{
		{
			ID:           uuid.New(),
			AssessmentID: exam.ID,
			QuestionID:   q.ID.String(),
			ClusterLabel: "Many selected 'NULL reference'",
			StudentCount: 4,
			Status:       model.MisconceptionValid,
		},
		{
			ID:           uuid.New(),
			AssessmentID: exam.ID,
			QuestionID:   q.ID.String(),
			ClusterLabel: "Confused with 'primary key'",
			StudentCount: 2,
			Status:       model.MisconceptionValid,
		},
	}

	attempted := map[uuid.UUID]int{exam.ID: 12}

	reports := BuildExamReports([]model.Exam{exam}, misconceptions, attempted, nil)

	if len(reports) != 1 {
		t.Fatalf("len(reports) = %d, want 1", len(reports))
	}
	r := reports[0]
	if r.MisconceptionCount != 2 {
		t.Errorf("MisconceptionCount = %d, want 2", r.MisconceptionCount)
	}
	if r.StudentCount != 12 {
		t.Errorf("StudentCount = %d, want 12", r.StudentCount)
	}
	// The question text matches no concept rule, so the impact summary names
	// the default topic with the accumulated 4+2 student responses.
	if !strings.Contains(r.ImpactSummary, "'"+DefaultTopic+"'") {
		t.Errorf("ImpactSummary = %q, want topic %q", r.ImpactSummary, DefaultTopic)
	}
	if !strings.Contains(r.ImpactSummary, "affecting 6 student responses") {
		t.Errorf("ImpactSummary = %q", r.ImpactSummary)
	}

	tokens := []string{"NULL reference", "primary key"}
	for i, e := range r.Misconceptions {
		if !strings.Contains(e.Reasoning, "'"+tokens[i]+"'") {
			t.Errorf("misconception %d reasoning = %q, want token %q", i, e.Reasoning, tokens[i])
		}
	}
}

func TestBuildExamReportsSkipsExamsWithoutMisconceptions(t *testing.T) {
	withClusters := model.Exam{ID: uuid.New(), Title: "A", CreatedAt: time.Now()}
	without := model.Exam{ID: uuid.New(), Title: "B", CreatedAt: time.Now()}

	misconceptions := []model.Misconception{
		{ID: uuid.New(), AssessmentID: withClusters.ID, ClusterLabel: "x 'y'", StudentCount: 1},
	}

	reports := BuildExamReports([]model.Exam{withClusters, without}, misconceptions, nil, nil)

	if len(reports) != 1 {
		t.Fatalf("len(reports) = %d, want 1", len(reports))
	}
	if reports[0].ExamID != withClusters.ID.String() {
		t.Errorf("ExamID = %q", reports[0].ExamID)
	}
}

func TestBuildExamReportsDropsForeignMisconceptions(t *testing.T) {
	exam := model.Exam{ID: uuid.New(), Title: "Mine", CreatedAt: time.Now()}

	misconceptions := []model.Misconception{
		// Belongs to an exam not in the owned set.
		{ID: uuid.New(), AssessmentID: uuid.New(), ClusterLabel: "x", StudentCount: 3},
	}

	if reports := BuildExamReports([]model.Exam{exam}, misconceptions, nil, nil); len(reports) != 0 {
		t.Fatalf("len(reports) = %d, want 0", len(reports))
	}
}

func TestBuildExamReportsTopicTieBreaksFirstSeen(t *testing.T) {
	q1 := model.Question{ID: uuid.New(), Text: "write a sql statement"}
	q2 := model.Question{ID: uuid.New(), Text: "pick the right index"}
	exam := model.Exam{
		ID:        uuid.New(),
		Title:     "Quiz",
		Questions: []model.Question{q1, q2},
		CreatedAt: time.Now(),
	}

	misconceptions := []model.Misconception{
		{ID: uuid.New(), AssessmentID: exam.ID, QuestionID: q1.ID.String(), ClusterLabel: "'a'", StudentCount: 3},
		{ID: uuid.New(), AssessmentID: exam.ID, QuestionID: q2.ID.String(), ClusterLabel: "'b'", StudentCount: 3},
	}

	reports := BuildExamReports([]model.Exam{exam}, misconceptions, nil, nil)
	if len(reports) != 1 {
		t.Fatalf("len(reports) = %d, want 1", len(reports))
	}
	if !strings.Contains(reports[0].ImpactSummary, "'SQL Query Structure'") {
		t.Errorf("ImpactSummary = %q, want first-seen topic to win the tie", reports[0].ImpactSummary)
	}
}

func TestBuildExamReportsNewestFirst(t *testing.T) {
	older := model.Exam{ID: uuid.New(), Title: "Old", CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	newer := model.Exam{ID: uuid.New(), Title: "New", CreatedAt: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)}

	misconceptions := []model.Misconception{
		{ID: uuid.New(), AssessmentID: older.ID, ClusterLabel: "'a'", StudentCount: 1},
		{ID: uuid.New(), AssessmentID: newer.ID, ClusterLabel: "'b'", StudentCount: 1},
	}

	reports := BuildExamReports([]model.Exam{older, newer}, misconceptions, nil, nil)
	if len(reports) != 2 {
		t.Fatalf("len(reports) = %d, want 2", len(reports))
	}
	if reports[0].ExamTitle != "New" {
		t.Errorf("reports[0] = %q, want newest exam first", reports[0].ExamTitle)
	}
}
