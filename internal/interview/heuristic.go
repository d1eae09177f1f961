package interview

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	minAnswerChars   = 10
	shortAnswerWords = 15
	lengthPenalty    = 20
)

var blankImprovements = []string{
	"Provide a complete answer to the question",
	"Explain the key concepts the question is about",
	"Support your answer with a concrete example",
}

// Score grades an answer by keyword coverage and length. It is the fallback
// used whenever no AI grader is available and must accept any input.
func Score(answer string, keywords []string) *AnswerEvaluation {
	answer = strings.TrimSpace(answer)
	words := WordCount(answer)

	if words == 0 || utf8.RuneCountInString(answer) < minAnswerChars {
		return blankEvaluation(keywords, words)
	}

	found, missing, coverage := MatchKeywords(answer, keywords)

	base, correct := coverageTier(coverage, words)
	if words < shortAnswerWords {
		base -= lengthPenalty
	}
	score := ClampScore(base)

	eval := &AnswerEvaluation{
		OverallScore:      score,
		QuestionAddressed: coverage > 0.3,
		KeywordCoverage:   coverage,
		WordCount:         words,
		Sentiment: Sentiment{
			Overall:    "uncertain",
			Confidence: 40,
			Tone:       "professional",
		},
		TechnicalAccuracy: TechnicalAccuracy{
			Score:           score,
			Correct:         correct,
			KeywordsFound:   found,
			KeywordsMissing: missing,
		},
		Communication: Communication{ClarityScore: 50, StructureScore: 45},
		Strengths:     []string{},
		Improvements:  []string{},
		GradedBy:      GradedByHeuristic,
	}

	if score > 50 {
		eval.Sentiment.Overall = "confident"
		eval.Sentiment.Confidence = 70
	}
	if words < 20 {
		eval.Sentiment.Tone = "unprepared"
	}
	if words > 30 {
		eval.Communication = Communication{ClarityScore: 70, StructureScore: 65}
	}

	switch {
	case correct:
		eval.TechnicalAccuracy.Feedback = "Answer covers the expected concepts"
	case len(keywords) == 0:
		eval.TechnicalAccuracy.Feedback = "No expected concepts to compare the answer against"
	default:
		eval.TechnicalAccuracy.Feedback = fmt.Sprintf("Answer is missing key concepts: %s", strings.Join(missing, ", "))
	}

	if len(found) > 0 {
		eval.Strengths = append(eval.Strengths, fmt.Sprintf("Mentions %s", strings.Join(found, ", ")))
	}
	if words > 30 {
		eval.Strengths = append(eval.Strengths, "Gives a detailed explanation")
	}

	if len(missing) > 0 {
		eval.Improvements = append(eval.Improvements, fmt.Sprintf("Cover %s", strings.Join(missing, ", ")))
	}
	if words < shortAnswerWords {
		eval.Improvements = append(eval.Improvements, "Elaborate with more detail")
	}
	if words <= 30 {
		eval.Improvements = append(eval.Improvements, "Structure the answer with an example")
	}

	return eval
}

// MatchKeywords splits keywords into those present in the answer and those
// absent, matching case-insensitively by substring. Coverage is 0 when there are
// no keywords.
func MatchKeywords(answer string, keywords []string) (found, missing []string, coverage float64) {
	lower := strings.ToLower(answer)
	found = make([]string, 0, len(keywords))
	missing = make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			found = append(found, kw)
		} else {
			missing = append(missing, kw)
		}
	}

	if len(keywords) > 0 {
		coverage = float64(len(found)) / float64(len(keywords))
	}
	return found, missing, coverage
}

// WordCount counts whitespace separated words.
func WordCount(answer string) int {
	return len(strings.Fields(answer))
}

// coverageTier maps keyword coverage to the base score before the length
// penalty.
func coverageTier(coverage float64, words int) (int, bool) {
	switch {
	case coverage >= 0.8:
		return 75 + min(20, words/20), true
	case coverage >= 0.6:
		return 60, false
	case coverage >= 0.3:
		return 40, false
	default:
		return 15, false
	}
}

func blankEvaluation(keywords []string, words int) *AnswerEvaluation {
	missing := make([]string, len(keywords))
	copy(missing, keywords)

	improvements := make([]string, len(blankImprovements))
	copy(improvements, blankImprovements)

	return &AnswerEvaluation{
		OverallScore:      0,
		QuestionAddressed: false,
		KeywordCoverage:   0,
		WordCount:         words,
		Sentiment: Sentiment{
			Overall:    "blank",
			Confidence: 0,
			Tone:       "unprepared",
		},
		TechnicalAccuracy: TechnicalAccuracy{
			Score:           0,
			Correct:         false,
			KeywordsFound:   []string{},
			KeywordsMissing: missing,
			Feedback:        "No answer was provided",
		},
		Communication: Communication{ClarityScore: 0, StructureScore: 0},
		Strengths:     []string{},
		Improvements:  improvements,
		GradedBy:      GradedByHeuristic,
	}
}
