package insight

import "strings"

// DefaultTopic is returned when no keyword rule matches the question text.
// It is the single canonical fallback for both the enrichment and the
// trend-matrix classifiers.
const DefaultTopic = "Core Concepts"

// Rule maps a keyword substring to a topic label.
type Rule struct {
	Keyword string
	Topic   string
}

// Classifier assigns exactly one topic label to question text by testing an
// ordered rule list. First match wins, not best match. Pure, no failure modes.
type Classifier struct {
	rules    []Rule
	fallback string
}

// NewClassifier builds a classifier over an ordered rule list.
func NewClassifier(rules []Rule, fallback string) *Classifier {
	return &Classifier{rules: rules, fallback: fallback}
}

// Classify returns the topic of the first rule whose keyword occurs in the
// text, or the fallback label.
func (c *Classifier) Classify(text string) string {
	lowered := strings.ToLower(text)
	for _, r := range c.rules {
		if strings.Contains(lowered, r.Keyword) {
			return r.Topic
		}
	}
	return c.fallback
}

// ConceptClassifier tags individual misconceptions with display-grade topic
// labels for the concept chain and impact summaries.
var ConceptClassifier = NewClassifier([]Rule{
	{Keyword: "normalization", Topic: "Normalization (3NF/BCNF)"},
	{Keyword: "sql", Topic: "SQL Query Structure"},
	{Keyword: "index", Topic: "Indexing Strategies"},
	{Keyword: "transaction", Topic: "Transaction Management"},
	{Keyword: "integrity", Topic: "Data Integrity"},
}, DefaultTopic)

// TrendClassifier tags questions with short topic labels for the trend
// matrix rows.
var TrendClassifier = NewClassifier([]Rule{
	{Keyword: "normalization", Topic: "Normalization"},
	{Keyword: "sql", Topic: "SQL Structure"},
	{Keyword: "index", Topic: "Indexing"},
	{Keyword: "transaction", Topic: "Transactions"},
	{Keyword: "key", Topic: "Keys & Constraints"},
}, DefaultTopic)
