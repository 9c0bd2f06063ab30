package insight

import (
	"github.com/conceptlens/conceptlens-backend/internal/model"
)

// MaxEvidence caps the evidence snippets attached to one misconception.
const MaxEvidence = 3

// UnknownQuestionText is substituted when the source question cannot be
// resolved.
const UnknownQuestionText = "Unknown Question"

// fallbackSubject is used when the owning exam is unresolvable or carries no
// subject.
const fallbackSubject = "General"

// unitPlaceholder is the static middle element of the concept chain. No real
// unit hierarchy exists yet.
const unitPlaceholder = "Unit 1"

// Enrich joins one misconception with its exam context and synthesizes the
// display fields. It is total: exam may be nil and evidence entries may be
// missing — every unresolved field degrades to a default and the record is
// still returned.
//
// evidence maps response id (canonical string) to response text.
func Enrich(m model.Misconception, exam *model.Exam, evidence map[string]string) model.EnrichedMisconception {
	incorrect := ExtractIncorrectAnswer(m.ClusterLabel)

	questionText := UnknownQuestionText
	var options []string
	subject := fallbackSubject
	topic := DefaultTopic

	if exam != nil {
		if exam.SubjectID != "" {
			subject = exam.SubjectID
		}
		if q := exam.QuestionByID(m.QuestionID); q != nil {
			questionText = q.Text
			options = q.Options
			topic = ConceptClassifier.Classify(q.Text)
		}
	}

	exampleIDs := make([]string, 0, len(m.ExampleIDs))
	quotes := make([]string, 0, MaxEvidence)
	for _, eid := range m.ExampleIDs {
		id := eid.String()
		exampleIDs = append(exampleIDs, id)
		if text, ok := evidence[id]; ok && len(quotes) < MaxEvidence {
			quotes = append(quotes, text)
		}
	}
	if len(quotes) == 0 {
		// No resolvable examples: synthesize evidence from the extracted
		// token so the review UI is never empty.
		n := m.StudentCount
		if n > MaxEvidence {
			n = MaxEvidence
		}
		for i := 0; i < n; i++ {
			quotes = append(quotes, incorrect)
		}
	}

	return model.EnrichedMisconception{
		ID:              m.ID.String(),
		AssessmentID:    m.AssessmentID.String(),
		QuestionID:      m.QuestionID,
		QuestionText:    questionText,
		Options:         options,
		ClusterLabel:    RewriteClusterLabel(incorrect),
		StudentCount:    m.StudentCount,
		ConfidenceScore: m.ConfidenceScore,
		Status:          string(m.Status),
		Reasoning:       Reasoning(m.StudentCount, incorrect),
		ConceptChain:    []string{subject, unitPlaceholder, topic},
		Evidence:        quotes,
		ExampleIDs:      exampleIDs,
	}
}
