package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/placement-insights/internal/ai"
	"github.com/spigell/placement-insights/internal/ai/gemini"
	"github.com/spigell/placement-insights/internal/grading"
	"github.com/spigell/placement-insights/internal/interview"
	"github.com/spigell/placement-insights/internal/logger"
	"github.com/spigell/placement-insights/internal/secrets"
)

const (
	PromptFinish = "Finish and grade"
)

var gradeCmd = &cobra.Command{
	Use:   "grade",
	Short: "Grade mock interview answers",
	Long: `Grade scores answers against the question bank. Answers are read from
--answers (a JSON list of {"question_id", "answer"} objects); without it the
questions are offered interactively.`,
	Run: func(cmd *cobra.Command, _ []string) {
		runGrade(cmd)
	},
}

func init() {
	rootCmd.AddCommand(gradeCmd)

	gradeCmd.Flags().String("answers", "", "JSON file with answers to grade")
	gradeCmd.Flags().String("questions", "", "question bank file (overrides questions-file)")
	gradeCmd.Flags().StringP("output", "o", "", "write the graded session to a file instead of stdout")
}

type answerEntry struct {
	QuestionID string `json:"question_id"`
	Answer     string `json:"answer"`
}

func runGrade(cmd *cobra.Command) {
	env := setup(cmd)
	defer env.flushMetrics()

	questionsFile := env.config.QuestionsFile
	if flag, _ := cmd.Flags().GetString("questions"); strings.TrimSpace(flag) != "" {
		questionsFile = flag
	}

	bank, err := interview.LoadQuestions(questionsFile)
	if err != nil {
		env.logger.Fatal("loading questions", zap.Error(err))
	}
	env.logger.Info("question bank loaded", zap.Int("questions", bank.Len()))

	var items []grading.Item
	if answersFile, _ := cmd.Flags().GetString("answers"); strings.TrimSpace(answersFile) != "" {
		items, err = readAnswers(answersFile, bank)
	} else {
		items, err = promptAnswers(bank)
	}
	if err != nil {
		env.logger.Fatal("collecting answers", zap.Error(err))
	}

	grader, err := newAIGrader(env.ctx, env.config.AI, env.logger)
	if err != nil {
		env.logger.Warn("skipping AI grading", zap.Error(err))
	}

	deps := grading.Deps{Grader: grader, Logger: env.logger, Metrics: env.metrics}
	status := grading.Describe(deps)
	env.logger.Info("grading answers",
		zap.Int("answers", len(items)),
		zap.Bool(status.Name, status.Enabled),
		zap.String("details", status.Details),
	)

	session := grading.Run(env.ctx, deps, items)

	output, _ := cmd.Flags().GetString("output")
	if err := writeOutput(cmd, output, session); err != nil {
		env.logger.Fatal("writing graded session", zap.Error(err))
	}
}

// readAnswers loads answers from path. Both a bare array and an {"items": [...]}
// document are accepted.
func readAnswers(path string, bank *interview.Questions) ([]grading.Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read answers file: %w", err)
	}

	var entries []answerEntry
	trimmed := bytes.TrimSpace(data)
	if bytes.HasPrefix(trimmed, []byte("[")) {
		err = json.Unmarshal(trimmed, &entries)
	} else {
		var doc struct {
			Items []answerEntry `json:"items"`
		}
		err = json.Unmarshal(trimmed, &doc)
		entries = doc.Items
	}
	if err != nil {
		return nil, fmt.Errorf("decode answers file: %w", err)
	}

	items := make([]grading.Item, 0, len(entries))
	for _, entry := range entries {
		question := bank.FindByID(strings.TrimSpace(entry.QuestionID))
		if question == nil {
			return nil, fmt.Errorf("answer refers to unknown question %q", entry.QuestionID)
		}
		items = append(items, grading.Item{Question: question, Answer: entry.Answer})
	}

	return items, nil
}

func promptAnswers(bank *interview.Questions) ([]grading.Item, error) {
	items := make([]grading.Item, 0)
	labels := bank.Labels()

	for {
		questionPrompt := promptui.Select{
			Label: "Choose a question and press ENTER",
			Items: append(labels, PromptFinish),
			Size:  10,
		}

		idx, _, err := questionPrompt.Run()
		if err != nil {
			return nil, err
		}

		question := pickedQuestion(bank, idx)
		if question == nil {
			return items, nil
		}

		answerPrompt := promptui.Prompt{
			Label: question.Text,
		}

		answer, err := answerPrompt.Run()
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) {
				return items, nil
			}
			return nil, err
		}

		items = append(items, grading.Item{Question: question, Answer: answer})
	}
}

// pickedQuestion maps a picker index to its question; any index past the bank
// is the trailing finish entry.
func pickedQuestion(bank *interview.Questions, idx int) *interview.Question {
	if idx < 0 || idx >= len(bank.Items) {
		return nil
	}
	return bank.Items[idx]
}

func newAIGrader(ctx context.Context, cfg *AIConfig, log *zap.Logger) (ai.Grader, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, nil
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != ai.ProviderGemini {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	if cfg.Gemini == nil {
		return nil, errors.New("gemini configuration is required when ai grading is enabled")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: cfg.Gemini.APIKeyFile,
		Env:  "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries, log)
	if err != nil {
		return nil, err
	}

	graderLogger := logger.WithCommonFields(log, ai.ProviderGemini, generator.Model())

	return gemini.NewGrader(generator, graderLogger, cfg.Gemini.MaxLogLength), nil
}
