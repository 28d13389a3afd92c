package exam

import (
	"errors"
	"testing"
)

func goodQuestion() Question {
	return Question{
		Prompt:      "What color was the sky?",
		Options:     []string{"Blue", "Red", "Green", "Yellow"},
		AnswerIndex: 0,
	}
}

func TestValidateAccepts(t *testing.T) {
	ex := Exam{Questions: []Question{goodQuestion(), goodQuestion(), goodQuestion()}}
	if err := Validate(ex, 3); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Exam)
		want   int
	}{
		{"too few questions", func(ex *Exam) { ex.Questions = ex.Questions[:1] }, 2},
		{"too many questions", func(ex *Exam) { ex.Questions = append(ex.Questions, goodQuestion()) }, 2},
		{"empty prompt", func(ex *Exam) { ex.Questions[1].Prompt = "  " }, 2},
		{"three options", func(ex *Exam) { ex.Questions[0].Options = ex.Questions[0].Options[:3] }, 2},
		{"five options", func(ex *Exam) {
			ex.Questions[0].Options = append(ex.Questions[0].Options, "Purple")
		}, 2},
		{"blank option", func(ex *Exam) { ex.Questions[1].Options[2] = "" }, 2},
		{"answer index negative", func(ex *Exam) { ex.Questions[0].AnswerIndex = -1 }, 2},
		{"answer index too large", func(ex *Exam) { ex.Questions[0].AnswerIndex = 4 }, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ex := Exam{Questions: []Question{goodQuestion(), goodQuestion()}}
			tt.mutate(&ex)
			err := Validate(ex, tt.want)
			if err == nil {
				t.Fatalf("Validate() = nil, want error")
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("Validate() = %v, want *ValidationError", err)
			}
		})
	}
}

func TestScore(t *testing.T) {
	ex := Exam{Questions: []Question{
		{Prompt: "q1", Options: []string{"a", "b", "c", "d"}, AnswerIndex: 0},
		{Prompt: "q2", Options: []string{"a", "b", "c", "d"}, AnswerIndex: 2},
		{Prompt: "q3", Options: []string{"a", "b", "c", "d"}, AnswerIndex: 3},
	}}
	if got := Score(ex, []int{0, 2, 3}); got != 3 {
		t.Errorf("Score(all correct) = %d, want 3", got)
	}
	if got := Score(ex, []int{0, 1, 1}); got != 1 {
		t.Errorf("Score(one correct) = %d, want 1", got)
	}
	if got := Score(ex, []int{0}); got != 1 {
		t.Errorf("Score(partial answers) = %d, want 1", got)
	}
	if got := Score(ex, nil); got != 0 {
		t.Errorf("Score(no answers) = %d, want 0", got)
	}
}

func TestDecodeModelJSON(t *testing.T) {
	var ex Exam
	raw := `{"questions":[{"prompt":"p","options":["a","b","c","d"],"answer_index":1}]}`
	if err := decodeModelJSON(raw, &ex); err != nil {
		t.Fatalf("decodeModelJSON(plain) = %v", err)
	}
	if len(ex.Questions) != 1 || ex.Questions[0].AnswerIndex != 1 {
		t.Errorf("decoded %+v, want one question with answer 1", ex)
	}

	ex = Exam{}
	wrapped := "Here is the exam:\n" + raw + "\nEnjoy."
	if err := decodeModelJSON(wrapped, &ex); err != nil {
		t.Fatalf("decodeModelJSON(wrapped) = %v", err)
	}
	if len(ex.Questions) != 1 {
		t.Errorf("decoded %d questions from wrapped output, want 1", len(ex.Questions))
	}

	if err := decodeModelJSON("", &ex); err == nil {
		t.Error("decodeModelJSON(empty) = nil, want error")
	}
	if err := decodeModelJSON("no json here", &ex); err == nil {
		t.Error("decodeModelJSON(prose) = nil, want error")
	}
}
