package insight

import (
	"fmt"
	"strings"
)

// DefaultIncorrectAnswer is the token used when a cluster label carries no
// quoted answer.
const DefaultIncorrectAnswer = "an incorrect option"

// NoTrendsSummary is returned when no topic shows any recurring issue.
const NoTrendsSummary = "No significant misconception trends detected yet. Students differ in errors across exams."

// NoExamsSummary is returned when the professor has no exams to analyze.
const NoExamsSummary = "No exams found to analyze trends."

// ExtractIncorrectAnswer pulls the representative wrong answer out of a
// free-text cluster label. The token is bounded by the first and second
// single-quote characters; labels without a complete quoted span fail open
// to DefaultIncorrectAnswer.
func ExtractIncorrectAnswer(label string) string {
	start := strings.IndexByte(label, '\'')
	if start < 0 {
		return DefaultIncorrectAnswer
	}
	rest := label[start+1:]
	end := strings.IndexByte(rest, '\'')
	if end < 0 {
		return DefaultIncorrectAnswer
	}
	return rest[:end]
}

// Reasoning synthesizes the per-misconception explanation sentence.
func Reasoning(studentCount int, incorrectAnswer string) string {
	return fmt.Sprintf(
		"The AI detected that %d students selected '%s'. "+
			"This systematic pattern suggests a confusion between the correct concept and '%s', "+
			"likely due to misinterpreting the question context.",
		studentCount, incorrectAnswer, incorrectAnswer,
	)
}

// RewriteClusterLabel normalizes a raw cluster label for display.
func RewriteClusterLabel(incorrectAnswer string) string {
	return "Observed Incorrect Pattern: " + incorrectAnswer
}

// ImpactSummary names the dominant struggle area of one exam group.
func ImpactSummary(patternCount int, topTopic string, affected int) string {
	return fmt.Sprintf(
		"AI Insight: %d distinct misconception patterns detected. "+
			"The primary struggle area appears to be '%s', affecting %d student responses.",
		patternCount, topTopic, affected,
	)
}

// TrendSummary names the topic with persistent cross-exam struggles.
func TrendSummary(worstTopic string) string {
	return fmt.Sprintf(
		"AI Trend Analysis: Persistent struggles observed in '%s' across multiple assessments. "+
			"Recommend targeted revision on this topic before the next module.",
		worstTopic,
	)
}
