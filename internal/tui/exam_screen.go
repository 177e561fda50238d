package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/careerit/examterm/internal/api"
	"github.com/careerit/examterm/internal/exam"
)

// ExamScreen runs one MCQ attempt: navigation, answer capture,
// live countdown and submission, all over a single exam.Session.
type ExamScreen struct {
	session *exam.Session
	p       *Prompter
	log     zerolog.Logger
}

// NewExamScreen wraps a started session.
func NewExamScreen(session *exam.Session, p *Prompter, log zerolog.Logger) *ExamScreen {
	return &ExamScreen{session: session, p: p, log: log}
}

// Run drives the screen until submission or abandonment. The countdown
// goroutine lives exactly as long as this call: the deferred cancel is
// the teardown that stops a late tick from touching a dead screen.
func (s *ExamScreen) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go s.session.RunCountdown(ctx)

	s.p.Say("")
	s.p.Say("=== MCQ Exam ===")
	s.p.Say("Commands: a-d answer | n next | p prev | g <num> jump | l overview | s submit | q quit")

	for !s.session.Submitted() {
		s.renderQuestion()

		cmd, err := s.p.Line("exam")
		if err != nil {
			return err
		}
		// The countdown may have finalized the session while we were
		// blocked on input; don't act on a stale command.
		if s.session.Submitted() {
			break
		}

		switch {
		case cmd == "n":
			s.session.Next()
		case cmd == "p":
			s.session.Prev()
		case strings.HasPrefix(cmd, "g "):
			s.jump(strings.TrimSpace(strings.TrimPrefix(cmd, "g ")))
		case cmd == "l":
			s.renderOverview()
		case cmd == "s":
			s.submit(ctx)
		case cmd == "q":
			if s.p.Confirm("Abandon the exam? Your answers will be lost") {
				return nil
			}
		case cmd == "":
			// Redraw to refresh the timer.
		default:
			s.selectByLetter(cmd)
		}
	}

	if summary := s.session.Summary(); summary != nil {
		s.renderSummary(summary)
	}
	return nil
}

func (s *ExamScreen) renderQuestion() {
	q := s.session.Current()
	idx := s.session.CurrentIndex()
	total := len(s.session.Questions())

	s.p.Say("")
	s.p.Say("Time remaining: %s", formatClock(s.session.Remaining()))
	s.p.Say("Question %d of %d", idx+1, total)
	s.p.Say("%s", q.Question)
	for i, opt := range q.Options {
		marker := " "
		if s.session.Answer(idx) == i {
			marker = "*"
		}
		s.p.Say(" %s %c) %s", marker, 'A'+i, opt)
	}
}

func (s *ExamScreen) renderOverview() {
	total := len(s.session.Questions())
	var answered, open []string
	for i := 0; i < total; i++ {
		n := strconv.Itoa(i + 1)
		if s.session.Answer(i) == exam.Unanswered {
			open = append(open, n)
		} else {
			answered = append(answered, n)
		}
	}
	s.p.Say("Answered:   %s", strings.Join(answered, " "))
	s.p.Say("Unanswered: %s", strings.Join(open, " "))
}

func (s *ExamScreen) selectByLetter(cmd string) {
	if len(cmd) != 1 || cmd[0] < 'a' || cmd[0] > 'z' {
		s.p.Say("Unknown command %q", cmd)
		return
	}
	opt := int(cmd[0] - 'a')
	if err := s.session.SelectOption(s.session.CurrentIndex(), opt); err != nil {
		s.p.Say("Cannot select: %v", err)
	}
}

func (s *ExamScreen) jump(arg string) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		s.p.Say("Jump needs a question number")
		return
	}
	if err := s.session.JumpTo(n - 1); err != nil {
		s.p.Say("Cannot jump: %v", err)
	}
}

// submit runs the manual finalize path. Returns true when the session
// ended up submitted.
func (s *ExamScreen) submit(ctx context.Context) bool {
	_, err := s.session.Submit(ctx)

	var windowErr *exam.OutsideWindowError
	switch {
	case err == nil:
		return true
	case errors.As(err, &windowErr):
		s.p.Say("%v.", windowErr)
		if windowErr.Locked {
			s.p.Say("Your answers are frozen until the window opens.")
		} else {
			s.p.Say("Your answers are kept; submit again inside the window.")
		}
		return false
	case errors.Is(err, exam.ErrSubmitDeclined):
		return false
	case errors.Is(err, api.ErrAlreadySubmitted):
		// Local summary stands; the portal just refused a duplicate.
		s.p.Say("Test already submitted for today.")
		return true
	default:
		s.p.Say("Submission failed: your result may not have been recorded. Please contact your administrator.")
		s.log.Error().Err(err).Msg("submit failed")
		return true
	}
}

func (s *ExamScreen) renderSummary(sum *exam.Summary) {
	s.p.Say("")
	s.p.Say("=== Exam Summary ===")
	s.p.Say("Total Questions: %d", sum.TotalQuestions)
	s.p.Say("Attempted:       %d", sum.Attempted)
	s.p.Say("Correct:         %d", sum.Correct)
	s.p.Say("Wrong:           %d", sum.Wrong)
	s.p.Say("Unanswered:      %d", sum.Unanswered)
	s.p.Say("Score:           %.2f%%", sum.ScorePercent)
	s.p.Say("Feedback:        %s", sum.Feedback)

	s.p.Say("")
	s.p.Say("--- Detailed Answers ---")
	for i, d := range sum.Details {
		verdict := "correct"
		if !d.IsCorrect {
			verdict = "wrong"
			if d.UserAnswer == exam.NotAnswered {
				verdict = "unanswered"
			}
		}
		s.p.Say("Q%d (%s): %s", i+1, verdict, d.Question)
		s.p.Say("  Your answer:    %s", d.UserAnswer)
		s.p.Say("  Correct answer: %s", d.CorrectAnswer)
	}
}

// formatClock renders seconds as m:ss, matching the portal timer.
func formatClock(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
