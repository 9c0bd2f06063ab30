package insight

import (
	"sort"

	"github.com/google/uuid"

	"github.com/conceptlens/conceptlens-backend/internal/model"
)

// BuildExamReports groups misconceptions by exam and produces one report per
// exam that has at least one misconception in the input set.
//
//   - exams must already be restricted to the requesting professor and carry
//     their questions; misconceptions referencing other exams are dropped.
//   - attempted maps exam id to its distinct submitting-student count.
//   - evidence maps response id (canonical string) to response text.
//
// Reports are ordered by exam creation time descending (newest first).
func BuildExamReports(
	exams []model.Exam,
	misconceptions []model.Misconception,
	attempted map[uuid.UUID]int,
	evidence map[string]string,
) []model.ExamMisconceptionReport {
	examByID := make(map[uuid.UUID]*model.Exam, len(exams))
	for i := range exams {
		examByID[exams[i].ID] = &exams[i]
	}

	groups := make(map[uuid.UUID][]model.Misconception)
	for _, m := range misconceptions {
		if _, ok := examByID[m.AssessmentID]; !ok {
			// Orphaned or foreign cluster — skip.
			continue
		}
		groups[m.AssessmentID] = append(groups[m.AssessmentID], m)
	}

	reports := make([]model.ExamMisconceptionReport, 0, len(groups))
	for examID, group := range groups {
		exam := examByID[examID]

		enriched := make([]model.EnrichedMisconception, 0, len(group))
		topicOrder := make([]string, 0, len(group))
		topicCounts := make(map[string]int, len(group))

		for _, m := range group {
			e := Enrich(m, exam, evidence)
			enriched = append(enriched, e)

			topic := e.ConceptChain[len(e.ConceptChain)-1]
			if _, seen := topicCounts[topic]; !seen {
				topicOrder = append(topicOrder, topic)
			}
			topicCounts[topic] += m.StudentCount
		}

		// First topic reaching the max wins ties (first-seen order).
		topTopic := topicOrder[0]
		for _, t := range topicOrder[1:] {
			if topicCounts[t] > topicCounts[topTopic] {
				topTopic = t
			}
		}

		reports = append(reports, model.ExamMisconceptionReport{
			ExamID:             examID.String(),
			ExamTitle:          exam.Title,
			SubjectID:          exam.SubjectID,
			CreatedAt:          exam.CreatedAt,
			MisconceptionCount: len(enriched),
			StudentCount:       attempted[examID],
			ImpactSummary:      ImpactSummary(len(enriched), topTopic, topicCounts[topTopic]),
			Misconceptions:     enriched,
		})
	}

	sort.Slice(reports, func(i, j int) bool {
		return reports[i].CreatedAt.After(reports[j].CreatedAt)
	})
	return reports
}
