package interview

import "math"

const (
	GradedByHeuristic = "heuristic"
	GradedByAI        = "ai"
)

// Sentiment captures how the answer comes across.
type Sentiment struct {
	Overall    string `json:"overall"`
	Confidence int    `json:"confidence"`
	Tone       string `json:"tone"`
}

// TechnicalAccuracy captures keyword-level correctness.
type TechnicalAccuracy struct {
	Score           int      `json:"score"`
	Correct         bool     `json:"correct"`
	KeywordsFound   []string `json:"keywords_found"`
	KeywordsMissing []string `json:"keywords_missing"`
	Feedback        string   `json:"feedback"`
}

// Communication captures clarity and structure.
type Communication struct {
	ClarityScore   int `json:"clarity_score"`
	StructureScore int `json:"structure_score"`
}

// AnswerEvaluation is the structured grade of one answer.
type AnswerEvaluation struct {
	OverallScore      int               `json:"overall_score"`
	QuestionAddressed bool              `json:"question_addressed"`
	KeywordCoverage   float64           `json:"keyword_coverage"`
	WordCount         int               `json:"word_count"`
	Sentiment         Sentiment         `json:"sentiment"`
	TechnicalAccuracy TechnicalAccuracy `json:"technical_accuracy"`
	Communication     Communication     `json:"communication"`
	Strengths         []string          `json:"strengths"`
	Improvements      []string          `json:"improvements"`
	GradedBy          string            `json:"graded_by"`
}

// SessionScore is the rounded mean of the overall scores; 0 for no answers.
func SessionScore(evals []*AnswerEvaluation) int {
	total, n := 0, 0
	for _, e := range evals {
		if e == nil {
			continue
		}
		total += e.OverallScore
		n++
	}
	if n == 0 {
		return 0
	}
	return int(math.Round(float64(total) / float64(n)))
}

// ClampScore bounds a score to 0..100.
func ClampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
