// Package grading runs a mock interview session through the AI grader with a
// heuristic fallback.
package grading

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/spigell/placement-insights/internal/ai"
	"github.com/spigell/placement-insights/internal/interview"
	"github.com/spigell/placement-insights/internal/metrics"
)

// Item is one answered question of a session.
type Item struct {
	Question *interview.Question
	Answer   string
}

// Deps are the collaborators of a session run. Every field is optional.
type Deps struct {
	Grader  ai.Grader
	Logger  *zap.Logger
	Metrics *metrics.Metrics
}

// Step tallies how answers were graded.
type Step struct {
	Total    int `json:"total"`
	AIGraded int `json:"ai_graded"`
	Fallback int `json:"fallback"`
}

// Graded is the evaluation of one item.
type Graded struct {
	QuestionID     string                      `json:"question_id"`
	Answer         string                      `json:"answer"`
	Evaluation     *interview.AnswerEvaluation `json:"evaluation"`
	FallbackReason string                      `json:"fallback_reason,omitempty"`
}

// Session is the result of grading all items.
type Session struct {
	Items        []*Graded `json:"items"`
	OverallScore int       `json:"overall_score"`
	Step         Step      `json:"step"`
}

// Status describes which grader a run will use.
type Status struct {
	Name    string
	Enabled bool
	Details string
}

// Describe reports whether AI grading is active for deps.
func Describe(deps Deps) Status {
	if deps.Grader == nil {
		return Status{Name: "ai_grading", Enabled: false, Details: "heuristic scoring only"}
	}
	return Status{Name: "ai_grading", Enabled: true, Details: "heuristic fallback on failure"}
}

var errNoQuestion = errors.New("question is missing")

// Run grades every item in order. A grader failure falls back to the heuristic
// scorer for that item only; Run itself never fails.
func Run(ctx context.Context, deps Deps, items []Item) *Session {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	session := &Session{Items: make([]*Graded, 0, len(items))}
	evals := make([]*interview.AnswerEvaluation, 0, len(items))

	for _, item := range items {
		graded := gradeOne(ctx, deps.Grader, logger, item)
		session.Items = append(session.Items, graded)
		evals = append(evals, graded.Evaluation)

		session.Step.Total++
		if graded.Evaluation.GradedBy == interview.GradedByAI {
			session.Step.AIGraded++
		} else if deps.Grader != nil {
			session.Step.Fallback++
		}
		deps.Metrics.IncGraded(graded.Evaluation.GradedBy)
	}

	session.OverallScore = interview.SessionScore(evals)

	logger.Info("grading completed",
		zap.Int("answers", session.Step.Total),
		zap.Int("ai_graded", session.Step.AIGraded),
		zap.Int("fallback", session.Step.Fallback),
		zap.Int("overall_score", session.OverallScore),
	)

	return session
}

func gradeOne(ctx context.Context, grader ai.Grader, logger *zap.Logger, item Item) *Graded {
	var keywords []string
	graded := &Graded{Answer: item.Answer}
	if item.Question != nil {
		graded.QuestionID = item.Question.ID
		keywords = item.Question.Keywords
	}

	if grader == nil {
		graded.Evaluation = interview.Score(item.Answer, keywords)
		return graded
	}

	err := ctx.Err()
	if err == nil && item.Question == nil {
		err = errNoQuestion
	}

	var eval *interview.AnswerEvaluation
	if err == nil {
		eval, err = grader.Grade(ctx, item.Question, item.Answer)
		if err == nil && eval == nil {
			err = errors.New("grader returned no evaluation")
		}
	}

	if err != nil {
		logger.Warn("AI grading failed; using heuristic score",
			zap.String("question_id", graded.QuestionID),
			zap.Error(err),
		)
		graded.FallbackReason = err.Error()
		graded.Evaluation = interview.Score(item.Answer, keywords)
		return graded
	}

	eval.GradedBy = interview.GradedByAI
	graded.Evaluation = eval
	return graded
}
