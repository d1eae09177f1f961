// Package interview grades free-text mock interview answers.
package interview

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Question is a single mock interview prompt.
type Question struct {
	ID                string   `json:"id"`
	Text              string   `json:"text"`
	Category          string   `json:"category"`
	Difficulty        string   `json:"difficulty"`
	Keywords          []string `json:"keywords"`
	IdealAnswerPoints []string `json:"ideal_answer_points,omitempty"`
}

// Questions is an ordered question bank.
type Questions struct {
	Items []*Question `json:"items"`
}

// LoadQuestions reads a question bank from a JSON file. Both a bare array
// and {"items": [...]} are accepted.
func LoadQuestions(path string) (*Questions, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("questions file is not configured")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading questions file %q: %w", path, err)
	}

	var bank Questions
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		err = json.Unmarshal([]byte(trimmed), &bank.Items)
	} else {
		err = json.Unmarshal([]byte(trimmed), &bank)
	}
	if err != nil {
		return nil, fmt.Errorf("decode questions file %q: %w", path, err)
	}

	for idx, q := range bank.Items {
		if q == nil || strings.TrimSpace(q.ID) == "" {
			return nil, fmt.Errorf("question #%d has no id", idx+1)
		}
	}

	return &bank, nil
}

func (q *Questions) Len() int {
	return len(q.Items)
}

// FindByID returns the question with the given id or nil.
func (q *Questions) FindByID(id string) *Question {
	for _, question := range q.Items {
		if question.ID == id {
			return question
		}
	}
	return nil
}

// Labels returns a one-line label per question for pickers.
func (q *Questions) Labels() []string {
	labels := make([]string, 0, len(q.Items))
	for _, question := range q.Items {
		labels = append(labels, fmt.Sprintf("%s [%s/%s] %s", question.ID, question.Category, question.Difficulty, question.Text))
	}
	return labels
}
