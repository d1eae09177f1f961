package ai

import (
	"context"

	"github.com/spigell/placement-insights/internal/interview"
)

// Grader grades a single interview answer with a language model.
type Grader interface {
	Grade(ctx context.Context, question *interview.Question, answer string) (*interview.AnswerEvaluation, error)
}

// Provider names accepted in configuration.
const (
	ProviderGemini = "gemini"
)
