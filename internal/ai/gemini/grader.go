package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	_ "embed"

	"github.com/spigell/placement-insights/internal/interview"
	"github.com/spigell/placement-insights/internal/utils"
	"go.uber.org/zap"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, system, message string) (string, error)
	Model() string
}

// Grader grades interview answers with Gemini.
type Grader struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

//go:embed prompt.md
var promptTemplate string

const (
	defaultMaxLogLength = 200

	systemInstruction = "You are a strict technical interviewer. Respond with JSON only."
)

func NewGrader(generator contentGenerator, logger *zap.Logger, maxLogLength int) *Grader {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Grader{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

func (g *Grader) Grade(ctx context.Context, question *interview.Question, answer string) (*interview.AnswerEvaluation, error) {
	if question == nil {
		return nil, errors.New("question is required")
	}
	if g.generator == nil {
		return nil, errors.New("gemini generator is not configured")
	}

	prompt := buildPrompt(question, answer)

	g.logger.Debug("gemini grade request",
		zap.String("question_id", question.ID),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, g.maxLogLen)),
	)

	raw, err := g.generator.GenerateContent(ctx, systemInstruction, prompt)
	if err != nil {
		return nil, err
	}

	g.logger.Debug("gemini grade response",
		zap.String("question_id", question.ID),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, g.maxLogLen)),
	)

	eval, err := parseResponse(raw)
	if err != nil {
		return nil, err
	}

	found, missing, coverage := interview.MatchKeywords(answer, question.Keywords)
	eval.KeywordCoverage = coverage
	eval.WordCount = interview.WordCount(answer)
	eval.TechnicalAccuracy.KeywordsFound = found
	eval.TechnicalAccuracy.KeywordsMissing = missing

	return eval, nil
}

func buildPrompt(q *interview.Question, answer string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Question:\n{{QUESTION}}\n\nAnswer:\n{{ANSWER}}\n\nJSON Response:"
	}

	replacer := strings.NewReplacer(
		"{{QUESTION}}", strings.TrimSpace(q.Text),
		"{{CATEGORY}}", orNone(q.Category),
		"{{DIFFICULTY}}", orNone(q.Difficulty),
		"{{KEYWORDS}}", bulletList(q.Keywords),
		"{{IDEAL_POINTS}}", bulletList(q.IdealAnswerPoints),
		"{{ANSWER}}", strings.TrimSpace(answer),
	)
	return replacer.Replace(template)
}

func bulletList(items []string) string {
	var b strings.Builder
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString("- ")
		b.WriteString(item)
	}
	if b.Len() == 0 {
		return "- none"
	}
	return b.String()
}

func orNone(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return "none"
	}
	return s
}

func parseResponse(raw string) (*interview.AnswerEvaluation, error) {
	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	overall := coerceFloat(data["overall_score"])
	if math.IsNaN(overall) {
		return nil, errors.New("gemini response has no overall_score")
	}

	sentiment := coerceMap(data["sentiment"])
	technical := coerceMap(data["technical_accuracy"])
	communication := coerceMap(data["communication"])

	score := coerceScore(overall)

	eval := &interview.AnswerEvaluation{
		OverallScore:      score,
		QuestionAddressed: coerceBool(data["question_addressed"]),
		Sentiment: interview.Sentiment{
			Overall:    coerceString(sentiment["overall"]),
			Confidence: coerceScore(coerceFloat(sentiment["confidence"])),
			Tone:       coerceString(sentiment["tone"]),
		},
		TechnicalAccuracy: interview.TechnicalAccuracy{
			Score:    score,
			Correct:  coerceBool(technical["correct"]),
			Feedback: coerceString(technical["feedback"]),
		},
		Communication: interview.Communication{
			ClarityScore:   coerceScore(coerceFloat(communication["clarity_score"])),
			StructureScore: coerceScore(coerceFloat(communication["structure_score"])),
		},
		Strengths:    coerceStrings(data["strengths"]),
		Improvements: coerceStrings(data["improvements"]),
		GradedBy:     interview.GradedByAI,
	}

	if ts := coerceFloat(technical["score"]); !math.IsNaN(ts) {
		eval.TechnicalAccuracy.Score = coerceScore(ts)
	}

	return eval, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func coerceMap(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

func coerceBool(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		lower := strings.ToLower(strings.TrimSpace(val))
		return lower == "true" || lower == "yes"
	case float64:
		return val != 0
	default:
		return false
	}
}

func coerceFloat(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case int:
		return float64(val)
	case string:
		trimmed := strings.TrimSpace(val)
		if trimmed == "" {
			return math.NaN()
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

// coerceScore rounds to an integer in 0..100; NaN becomes 0.
func coerceScore(f float64) int {
	if math.IsNaN(f) {
		return 0
	}
	return interview.ClampScore(int(math.Round(math.Max(-1, math.Min(101, f)))))
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case fmt.Stringer:
		return strings.TrimSpace(val.String())
	default:
		if v == nil {
			return ""
		}
		bytes, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(bytes)
	}
}

func coerceStrings(v any) []string {
	result := []string{}
	switch val := v.(type) {
	case []any:
		for _, item := range val {
			if s := coerceString(item); s != "" {
				result = append(result, s)
			}
		}
	case string:
		if s := strings.TrimSpace(val); s != "" {
			result = append(result, s)
		}
	}
	return result
}
