package exam

import (
	"math"

	"github.com/careerit/examterm/internal/model"
)

// NotAnswered is the display value used for unanswered questions in
// detailed results.
const NotAnswered = "Not answered"

// QuestionResult is the per-question breakdown of a scored attempt.
type QuestionResult struct {
	Question      string
	UserAnswer    string
	CorrectAnswer string
	IsCorrect     bool
}

// Summary is the locally computed score of one attempt. It is shown to
// the student immediately; the portal recomputes the score of record
// from the raw selections.
type Summary struct {
	TotalQuestions int
	Attempted      int
	Unanswered     int
	Correct        int
	Wrong          int
	ScorePercent   float64
	Feedback       string
	Details        []QuestionResult
}

// Score computes the summary for an attempt. Pure function of the
// question set and the answer sheet at the moment of submission; the
// caller guarantees a non-empty question set.
func Score(questions []model.Question, sheet *AnswerSheet) *Summary {
	total := len(questions)
	correct := 0
	details := make([]QuestionResult, 0, total)

	for i, q := range questions {
		selected := sheet.Answer(i)
		isCorrect := selected == q.CorrectAnswerIndex

		userAnswer := NotAnswered
		if selected != Unanswered && selected < len(q.Options) {
			userAnswer = q.Options[selected]
		}
		correctAnswer := ""
		if q.CorrectAnswerIndex >= 0 && q.CorrectAnswerIndex < len(q.Options) {
			correctAnswer = q.Options[q.CorrectAnswerIndex]
		}

		if isCorrect {
			correct++
		}
		details = append(details, QuestionResult{
			Question:      q.Question,
			UserAnswer:    userAnswer,
			CorrectAnswer: correctAnswer,
			IsCorrect:     isCorrect,
		})
	}

	attempted := sheet.AttemptedCount()
	percent := math.Round(float64(correct)/float64(total)*100*100) / 100

	return &Summary{
		TotalQuestions: total,
		Attempted:      attempted,
		Unanswered:     total - attempted,
		Correct:        correct,
		Wrong:          attempted - correct,
		ScorePercent:   percent,
		Feedback:       feedback(percent),
		Details:        details,
	}
}

func feedback(percent float64) string {
	switch {
	case percent >= 80:
		return "Excellent performance!"
	case percent >= 50:
		return "Good job! Try again for perfection."
	default:
		return "Needs improvement. Keep practicing!"
	}
}
