package exam

import "testing"

func sheetWith(t *testing.T, n int, selections map[int]int) *AnswerSheet {
	t.Helper()
	sheet, err := NewAnswerSheet(n)
	if err != nil {
		t.Fatal(err)
	}
	for q, opt := range selections {
		if err := sheet.Select(q, opt); err != nil {
			t.Fatal(err)
		}
	}
	return sheet
}

func TestScoreBreakdown(t *testing.T) {
	questions := threeQuestions() // correct indices 1, 2, 0
	sheet := sheetWith(t, 3, map[int]int{0: 1, 2: 0})

	s := Score(questions, sheet)

	if s.TotalQuestions != 3 || s.Attempted != 2 || s.Unanswered != 1 {
		t.Errorf("counts = total %d attempted %d unanswered %d, want 3/2/1",
			s.TotalQuestions, s.Attempted, s.Unanswered)
	}
	if s.Correct != 2 || s.Wrong != 0 {
		t.Errorf("correct %d wrong %d, want 2/0", s.Correct, s.Wrong)
	}
	if s.ScorePercent != 66.67 {
		t.Errorf("ScorePercent = %v, want 66.67", s.ScorePercent)
	}
	if s.Attempted != s.Correct+s.Wrong {
		t.Errorf("attempted %d != correct %d + wrong %d", s.Attempted, s.Correct, s.Wrong)
	}
}

func TestScoreDetails(t *testing.T) {
	questions := threeQuestions()
	sheet := sheetWith(t, 3, map[int]int{0: 3})

	s := Score(questions, sheet)

	if len(s.Details) != 3 {
		t.Fatalf("Details length = %d, want 3", len(s.Details))
	}
	if s.Details[0].UserAnswer != "d" || s.Details[0].IsCorrect {
		t.Errorf("Details[0] = %+v, want user answer d, incorrect", s.Details[0])
	}
	if s.Details[0].CorrectAnswer != "b" {
		t.Errorf("Details[0].CorrectAnswer = %s, want b", s.Details[0].CorrectAnswer)
	}
	if s.Details[1].UserAnswer != NotAnswered {
		t.Errorf("Details[1].UserAnswer = %q, want %q", s.Details[1].UserAnswer, NotAnswered)
	}
	// An unanswered question is never marked correct.
	if s.Details[1].IsCorrect {
		t.Error("unanswered question scored as correct")
	}
}

func TestScoreFeedbackTiers(t *testing.T) {
	tests := []struct {
		name     string
		answered int
		want     string
	}{
		{"all correct", 5, "Excellent performance!"},
		{"four of five", 4, "Excellent performance!"},
		{"three of five", 3, "Good job! Try again for perfection."},
		{"two of five", 2, "Needs improvement. Keep practicing!"},
		{"none", 0, "Needs improvement. Keep practicing!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			questions := fiveQuestions() // correct index 0 for all
			selections := make(map[int]int)
			for i := 0; i < tt.answered; i++ {
				selections[i] = 0
			}
			s := Score(questions, sheetWith(t, 5, selections))
			if s.Feedback != tt.want {
				t.Errorf("Feedback = %q, want %q", s.Feedback, tt.want)
			}
		})
	}
}

func TestScorePercentRounding(t *testing.T) {
	// 1 of 3 correct: 33.333...% rounds to 33.33.
	questions := threeQuestions()
	s := Score(questions, sheetWith(t, 3, map[int]int{0: 1}))
	if s.ScorePercent != 33.33 {
		t.Errorf("ScorePercent = %v, want 33.33", s.ScorePercent)
	}
}
