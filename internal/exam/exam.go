// Package exam generates multiple-choice comprehension questions for an
// article the user has just read.
package exam

import (
	"fmt"
	"strings"
)

// OptionCount is the number of answer options every question carries.
const OptionCount = 4

type Question struct {
	Prompt      string   `json:"prompt"`
	Options     []string `json:"options"`
	AnswerIndex int      `json:"answer_index"`
}

type Exam struct {
	Questions []Question `json:"questions"`
}

// ValidationError reports a malformed exam returned by the model. The
// generator treats these as retryable up to its attempt limit.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid exam: %s: %s", e.Field, e.Reason)
}

// Validate checks that the exam has exactly wantQuestions well-formed
// questions. It fails closed: any structural defect rejects the whole exam.
func Validate(ex Exam, wantQuestions int) error {
	if len(ex.Questions) != wantQuestions {
		return &ValidationError{
			Field:  "questions",
			Reason: fmt.Sprintf("got %d, want %d", len(ex.Questions), wantQuestions),
		}
	}
	for i, q := range ex.Questions {
		field := fmt.Sprintf("questions[%d]", i)
		if strings.TrimSpace(q.Prompt) == "" {
			return &ValidationError{Field: field + ".prompt", Reason: "empty"}
		}
		if len(q.Options) != OptionCount {
			return &ValidationError{
				Field:  field + ".options",
				Reason: fmt.Sprintf("got %d options, want %d", len(q.Options), OptionCount),
			}
		}
		for j, opt := range q.Options {
			if strings.TrimSpace(opt) == "" {
				return &ValidationError{
					Field:  fmt.Sprintf("%s.options[%d]", field, j),
					Reason: "empty",
				}
			}
		}
		if q.AnswerIndex < 0 || q.AnswerIndex >= OptionCount {
			return &ValidationError{
				Field:  field + ".answer_index",
				Reason: fmt.Sprintf("%d out of range [0,%d)", q.AnswerIndex, OptionCount),
			}
		}
	}
	return nil
}

// Score returns the number of correct answers. Answers shorter than the
// question list count missing entries as wrong.
func Score(ex Exam, answers []int) int {
	correct := 0
	for i, q := range ex.Questions {
		if i < len(answers) && answers[i] == q.AnswerIndex {
			correct++
		}
	}
	return correct
}
