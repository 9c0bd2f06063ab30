package insight

import (
	"github.com/conceptlens/conceptlens-backend/internal/model"
)

// criticalThreshold is the per-cell count above which a topic's issues on one
// exam are flagged critical.
const criticalThreshold = 3

// CellStatusFor classifies a single trend-matrix cell by its issue count.
func CellStatusFor(count int) model.CellStatus {
	switch {
	case count > criticalThreshold:
		return model.CellCritical
	case count > 0:
		return model.CellIssue
	default:
		return model.CellClean
	}
}

// BuildTrendReport builds the topic × exam-history matrix for a professor.
//
// exams must be ordered by creation time ascending — that ordering is the
// x-axis of the matrix — and carry their questions. misconceptions should be
// the professor's valid clusters; entries whose question cannot be resolved
// fall into the default topic row.
func BuildTrendReport(exams []model.Exam, misconceptions []model.Misconception) model.TrendReport {
	if len(exams) == 0 {
		return model.TrendReport{
			Summary: NoExamsSummary,
			Exams:   []model.ExamRef{},
			Matrix:  []model.TopicTrend{},
		}
	}

	questionText := make(map[string]string)
	for _, e := range exams {
		for _, q := range e.Questions {
			questionText[q.ID.String()] = q.Text
		}
	}

	// topic → exam id (string) → issue count, with topics kept in
	// first-seen order so output is deterministic.
	topicOrder := make([]string, 0)
	counts := make(map[string]map[string]int)
	for _, m := range misconceptions {
		topic := DefaultTopic
		if text, ok := questionText[m.QuestionID]; ok {
			topic = TrendClassifier.Classify(text)
		}
		if _, seen := counts[topic]; !seen {
			topicOrder = append(topicOrder, topic)
			counts[topic] = make(map[string]int)
		}
		counts[topic][m.AssessmentID.String()]++
	}

	examRefs := make([]model.ExamRef, 0, len(exams))
	for _, e := range exams {
		examRefs = append(examRefs, model.ExamRef{ID: e.ID.String(), Title: e.Title})
	}

	matrix := make([]model.TopicTrend, 0, len(topicOrder))
	for _, topic := range topicOrder {
		history := make([]model.TrendCell, 0, len(exams))
		trend := model.TrendStable

		// Single-pass directional walk. The trend value is overwritten on
		// every qualifying transition, so the last one observed wins.
		lastCount := 0
		for _, e := range exams {
			count := counts[topic][e.ID.String()]
			history = append(history, model.TrendCell{
				ExamID:    e.ID.String(),
				ExamTitle: e.Title,
				Count:     count,
				Status:    CellStatusFor(count),
			})

			if count > lastCount && lastCount > 0 {
				trend = model.TrendWorsening
			} else if count < lastCount && count > 0 {
				trend = model.TrendImproving
			}
			lastCount = count
		}

		matrix = append(matrix, model.TopicTrend{
			Topic:   topic,
			Trend:   trend,
			History: history,
		})
	}

	summary := NoTrendsSummary
	if len(topicOrder) > 0 {
		worst := topicOrder[0]
		worstTotal := topicTotal(counts[worst])
		for _, t := range topicOrder[1:] {
			if total := topicTotal(counts[t]); total > worstTotal {
				worst, worstTotal = t, total
			}
		}
		summary = TrendSummary(worst)
	}

	return model.TrendReport{
		Summary: summary,
		Exams:   examRefs,
		Matrix:  matrix,
	}
}

func topicTotal(byExam map[string]int) int {
	total := 0
	for _, n := range byExam {
		total += n
	}
	return total
}
