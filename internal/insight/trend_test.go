package insight

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/conceptlens/conceptlens-backend/internal/model"
)

func TestCellStatusFor(t *testing.T) {
	tests := []struct {
		count int
		want  model.CellStatus
	}{
		{0, model.CellClean},
		{1, model.CellIssue},
		{3, model.CellIssue},
		{4, model.CellCritical},
		{10, model.CellCritical},
	}
	for _, tt := range tests {
		if got := CellStatusFor(tt.count); got != tt.want {
			t.Errorf("CellStatusFor(%d) = %q, want %q", tt.count, got, tt.want)
		}
	}
}

// trendFixture builds n chronological exams sharing one sql-topic question
// each, plus misconceptions producing the given per-exam counts.
func trendFixture(t *testing.T, counts []int) ([]model.Exam, []model.Misconception) {
	t.Helper()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	exams := make([]model.Exam, 0, len(counts))
	var misconceptions []model.Misconception
	for i, n := range counts {
		q := model.Question{ID: uuid.New(), Text: "a sql question"}
		e := model.Exam{
			ID:        uuid.New(),
			Title:     "Exam " + string(rune('A'+i)),
			Questions: []model.Question{q},
			CreatedAt: base.AddDate(0, i, 0),
		}
		exams = append(exams, e)
		for j := 0; j < n; j++ {
			misconceptions = append(misconceptions, model.Misconception{
				ID:           uuid.New(),
				AssessmentID: e.ID,
				QuestionID:   q.ID.String(),
				ClusterLabel: "'x'",
				StudentCount: 1,
				Status:       model.MisconceptionValid,
			})
		}
	}
	return exams, misconceptions
}

func TestBuildTrendReportCellStatuses(t *testing.T) {
	exams, misconceptions := trendFixture(t, []int{0, 2, 5})

	report := BuildTrendReport(exams, misconceptions)

	if len(report.Matrix) != 1 {
		t.Fatalf("len(Matrix) = %d, want 1", len(report.Matrix))
	}
	row := report.Matrix[0]
	if row.Topic != "SQL Structure" {
		t.Errorf("Topic = %q", row.Topic)
	}
	wantStatuses := []model.CellStatus{model.CellClean, model.CellIssue, model.CellCritical}
	for i, cell := range row.History {
		if cell.Status != wantStatuses[i] {
			t.Errorf("History[%d].Status = %q, want %q", i, cell.Status, wantStatuses[i])
		}
	}
}

// The directional walk overwrites the trend on every qualifying transition,
// so only the final transition determines the reported value.
func TestBuildTrendReportLastTransitionWins(t *testing.T) {
	tests := []struct {
		counts []int
		want   model.Trend
	}{
		{[]int{0, 2, 5}, model.TrendWorsening},
		{[]int{2, 1}, model.TrendImproving},
		{[]int{1, 3, 2, 4}, model.TrendWorsening},
		{[]int{3, 3, 3}, model.TrendStable},
		{[]int{0, 2}, model.TrendStable}, // rise from zero does not qualify
		{[]int{2, 1, 0}, model.TrendImproving},
	}
	for _, tt := range tests {
		exams, misconceptions := trendFixture(t, tt.counts)
		report := BuildTrendReport(exams, misconceptions)
		if len(report.Matrix) != 1 {
			t.Fatalf("counts %v: len(Matrix) = %d", tt.counts, len(report.Matrix))
		}
		if got := report.Matrix[0].Trend; got != tt.want {
			t.Errorf("counts %v: Trend = %q, want %q", tt.counts, got, tt.want)
		}
	}
}

func TestBuildTrendReportNoExams(t *testing.T) {
	report := BuildTrendReport(nil, nil)
	if report.Summary != NoExamsSummary {
		t.Errorf("Summary = %q", report.Summary)
	}
	if len(report.Matrix) != 0 || len(report.Exams) != 0 {
		t.Errorf("expected empty matrix and exams")
	}
}

func TestBuildTrendReportNoIssues(t *testing.T) {
	exams, _ := trendFixture(t, []int{0, 0})

	report := BuildTrendReport(exams, nil)

	if report.Summary != NoTrendsSummary {
		t.Errorf("Summary = %q, want no-trends message", report.Summary)
	}
	if len(report.Matrix) != 0 {
		t.Errorf("len(Matrix) = %d, want 0", len(report.Matrix))
	}
	if len(report.Exams) != 2 {
		t.Errorf("len(Exams) = %d, want 2", len(report.Exams))
	}
}

func TestBuildTrendReportSummaryNamesWorstTopic(t *testing.T) {
	qSQL := model.Question{ID: uuid.New(), Text: "a sql question"}
	qIdx := model.Question{ID: uuid.New(), Text: "an index question"}
	exam := model.Exam{
		ID:        uuid.New(),
		Title:     "Exam A",
		Questions: []model.Question{qSQL, qIdx},
		CreatedAt: time.Now(),
	}

	var misconceptions []model.Misconception
	for i := 0; i < 2; i++ {
		misconceptions = append(misconceptions, model.Misconception{
			ID: uuid.New(), AssessmentID: exam.ID, QuestionID: qSQL.ID.String(),
		})
	}
	for i := 0; i < 5; i++ {
		misconceptions = append(misconceptions, model.Misconception{
			ID: uuid.New(), AssessmentID: exam.ID, QuestionID: qIdx.ID.String(),
		})
	}

	report := BuildTrendReport([]model.Exam{exam}, misconceptions)

	if !strings.Contains(report.Summary, "'Indexing'") {
		t.Errorf("Summary = %q, want worst topic Indexing", report.Summary)
	}
}

func TestBuildTrendReportUnresolvableQuestionFallsBack(t *testing.T) {
	exam := model.Exam{ID: uuid.New(), Title: "Exam A", CreatedAt: time.Now()}
	misconceptions := []model.Misconception{
		{ID: uuid.New(), AssessmentID: exam.ID, QuestionID: "gone"},
	}

	report := BuildTrendReport([]model.Exam{exam}, misconceptions)

	if len(report.Matrix) != 1 || report.Matrix[0].Topic != DefaultTopic {
		t.Fatalf("Matrix = %+v, want single %q row", report.Matrix, DefaultTopic)
	}
}
