package insight

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/conceptlens/conceptlens-backend/internal/model"
)

func testExam(t *testing.T, subject, questionText string) (*model.Exam, model.Question) {
	t.Helper()
	q := model.Question{
		ID:      uuid.New(),
		Text:    questionText,
		Options: []string{"A", "B", "C", "D"},
		TopicID: model.DefaultTopicID,
	}
	return &model.Exam{
		ID:        uuid.New(),
		SubjectID: subject,
		Title:     "Midterm 1",
		Questions: []model.Question{q},
		CreatedAt: time.Now(),
	}, q
}

func TestEnrichResolvesQuestionAndTopic(t *testing.T) {
	exam, q := testExam(t, "DB101", "Explain transaction rollback")
	m := model.Misconception{
		ID:           uuid.New(),
		AssessmentID: exam.ID,
		QuestionID:   q.ID.String(),
		ClusterLabel: "Cluster around 'dirty read'",
		StudentCount: 5,
		Status:       model.MisconceptionValid,
	}

	e := Enrich(m, exam, nil)

	if e.QuestionText != "Explain transaction rollback" {
		t.Errorf("QuestionText = %q", e.QuestionText)
	}
	if !reflect.DeepEqual(e.Options, q.Options) {
		t.Errorf("Options = %v", e.Options)
	}
	want := []string{"DB101", "Unit 1", "Transaction Management"}
	if !reflect.DeepEqual(e.ConceptChain, want) {
		t.Errorf("ConceptChain = %v, want %v", e.ConceptChain, want)
	}
	if e.ClusterLabel != "Observed Incorrect Pattern: dirty read" {
		t.Errorf("ClusterLabel = %q", e.ClusterLabel)
	}
}

func TestEnrichIsTotalWithNilExam(t *testing.T) {
	m := model.Misconception{
		ID:           uuid.New(),
		AssessmentID: uuid.New(),
		QuestionID:   "not-a-real-question",
		ClusterLabel: "no quotes here",
		StudentCount: 2,
		Status:       model.MisconceptionPending,
	}

	e := Enrich(m, nil, nil)

	if e.QuestionText != UnknownQuestionText {
		t.Errorf("QuestionText = %q, want %q", e.QuestionText, UnknownQuestionText)
	}
	want := []string{"General", "Unit 1", DefaultTopic}
	if !reflect.DeepEqual(e.ConceptChain, want) {
		t.Errorf("ConceptChain = %v, want %v", e.ConceptChain, want)
	}
	if !strings.Contains(e.Reasoning, DefaultIncorrectAnswer) {
		t.Errorf("Reasoning = %q", e.Reasoning)
	}
	if e.AssessmentID != m.AssessmentID.String() {
		t.Errorf("AssessmentID = %q", e.AssessmentID)
	}
}

func TestEnrichUnresolvedQuestionKeepsExamSubject(t *testing.T) {
	exam, _ := testExam(t, "DB101", "Explain indexes")
	m := model.Misconception{
		ID:           uuid.New(),
		AssessmentID: exam.ID,
		QuestionID:   "missing-id",
		ClusterLabel: "picked 'B'",
		StudentCount: 1,
	}

	e := Enrich(m, exam, nil)

	if e.QuestionText != UnknownQuestionText {
		t.Errorf("QuestionText = %q", e.QuestionText)
	}
	if e.ConceptChain[0] != "DB101" || e.ConceptChain[2] != DefaultTopic {
		t.Errorf("ConceptChain = %v", e.ConceptChain)
	}
}

func TestEnrichEvidenceCappedAtThree(t *testing.T) {
	exam, q := testExam(t, "DB101", "sql basics")
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New(), uuid.New(), uuid.New()}
	evidence := make(map[string]string, len(ids))
	for i, id := range ids {
		evidence[id.String()] = "answer " + string(rune('a'+i))
	}

	m := model.Misconception{
		ID:           uuid.New(),
		AssessmentID: exam.ID,
		QuestionID:   q.ID.String(),
		ClusterLabel: "chose 'SELECT *'",
		StudentCount: 9,
		ExampleIDs:   ids,
	}

	e := Enrich(m, exam, evidence)

	if len(e.Evidence) != MaxEvidence {
		t.Fatalf("len(Evidence) = %d, want %d", len(e.Evidence), MaxEvidence)
	}
	if len(e.ExampleIDs) != len(ids) {
		t.Errorf("len(ExampleIDs) = %d, want %d", len(e.ExampleIDs), len(ids))
	}
}

func TestEnrichSynthesizesEvidenceWhenNoneResolve(t *testing.T) {
	m := model.Misconception{
		ID:           uuid.New(),
		AssessmentID: uuid.New(),
		ClusterLabel: "chose 'NULL'",
		StudentCount: 2,
		ExampleIDs:   []uuid.UUID{uuid.New()},
	}

	e := Enrich(m, nil, nil)

	// min(3, student_count) repetitions of the extracted token.
	want := []string{"NULL", "NULL"}
	if !reflect.DeepEqual(e.Evidence, want) {
		t.Errorf("Evidence = %v, want %v", e.Evidence, want)
	}
}

func TestEnrichSyntheticEvidenceCapped(t *testing.T) {
	m := model.Misconception{
		ID:           uuid.New(),
		AssessmentID: uuid.New(),
		ClusterLabel: "chose 'NULL'",
		StudentCount: 10,
	}

	if e := Enrich(m, nil, nil); len(e.Evidence) != MaxEvidence {
		t.Errorf("len(Evidence) = %d, want %d", len(e.Evidence), MaxEvidence)
	}
}
