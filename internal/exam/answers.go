package exam

import (
	"errors"
	"fmt"
)

// Unanswered is the sentinel stored for a question the student has not
// answered. The sheet is complete from construction: every question
// index has an entry at all times.
const Unanswered = -1

// AnswerSheet is the per-question selected-option record for one
// attempt. Entries are position-indexed against the session's question
// order and are only ever overwritten, never removed.
type AnswerSheet struct {
	answers []int
}

// NewAnswerSheet builds a sheet with one Unanswered entry per question.
func NewAnswerSheet(questionCount int) (*AnswerSheet, error) {
	if questionCount <= 0 {
		return nil, errors.New("answer sheet needs at least one question")
	}
	answers := make([]int, questionCount)
	for i := range answers {
		answers[i] = Unanswered
	}
	return &AnswerSheet{answers: answers}, nil
}

// Select stores optionIndex for the given question, overwriting any
// previous selection. Re-selecting the same option is a no-op.
func (s *AnswerSheet) Select(questionIndex, optionIndex int) error {
	if questionIndex < 0 || questionIndex >= len(s.answers) {
		return fmt.Errorf("question index %d out of range [0,%d)", questionIndex, len(s.answers))
	}
	if optionIndex < 0 {
		return fmt.Errorf("option index %d is negative", optionIndex)
	}
	s.answers[questionIndex] = optionIndex
	return nil
}

// Answer returns the stored selection for a question, Unanswered if none.
func (s *AnswerSheet) Answer(questionIndex int) int {
	if questionIndex < 0 || questionIndex >= len(s.answers) {
		return Unanswered
	}
	return s.answers[questionIndex]
}

// Len returns the number of entries, always equal to the question count.
func (s *AnswerSheet) Len() int {
	return len(s.answers)
}

// AttemptedCount returns how many questions have a stored selection.
func (s *AnswerSheet) AttemptedCount() int {
	n := 0
	for _, a := range s.answers {
		if a != Unanswered {
			n++
		}
	}
	return n
}

// UnansweredCount returns how many questions are still unanswered.
func (s *AnswerSheet) UnansweredCount() int {
	return len(s.answers) - s.AttemptedCount()
}

// Selections returns the sheet in wire form: a pointer per question,
// nil for unanswered.
func (s *AnswerSheet) Selections() []*int {
	out := make([]*int, len(s.answers))
	for i, a := range s.answers {
		if a == Unanswered {
			continue
		}
		v := a
		out[i] = &v
	}
	return out
}
