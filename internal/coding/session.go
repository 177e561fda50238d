// Package coding implements the timed coding-exercise flow: one
// question set for the day, a per-language code buffer, repeatable runs
// against the remote judge, and a one-way final submission.
package coding

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/careerit/examterm/internal/exam"
	"github.com/careerit/examterm/internal/model"
)

// Languages the judge accepts, in display order.
var Languages = []string{"cpp", "java", "python"}

var (
	// ErrNoQuestions means no coding exercise is published for today.
	ErrNoQuestions = errors.New("no coding questions available today")

	// ErrFinalized rejects edits and runs after the final submission.
	ErrFinalized = errors.New("final submission already made")

	// ErrTimeUp rejects edits and runs after the countdown expired.
	ErrTimeUp = errors.New("time is up")

	// ErrBadLanguage rejects a language the judge does not know.
	ErrBadLanguage = errors.New("unsupported language")
)

// Gateway is the judge surface a coding session needs. *api.Client
// satisfies it.
type Gateway interface {
	FetchCodingQuestions(ctx context.Context) ([]model.CodingQuestion, error)
	Compile(ctx context.Context, req model.CompileRequest) (*model.CompileResponse, error)
}

// Session is one timed coding attempt. After SubmitFinal succeeds or
// the countdown expires the code buffer is read-only; runs before that
// are free and repeatable.
type Session struct {
	mu        sync.Mutex
	gateway   Gateway
	studentID string
	log       zerolog.Logger

	questions  []model.CodingQuestion
	selected   int
	language   string
	code       string
	countdown  *exam.Countdown
	finalized  bool
	lastResult *model.CompileResponse
}

// NewSession creates an idle coding session for a student.
func NewSession(gateway Gateway, studentID string, log zerolog.Logger) *Session {
	return &Session{
		gateway:   gateway,
		studentID: studentID,
		language:  "cpp",
		log:       log.With().Str("component", "coding_session").Logger(),
	}
}

// Start loads today's questions, selects the first, seeds the code
// buffer with its starter code and starts the countdown.
func (s *Session) Start(ctx context.Context, durationSeconds int) error {
	questions, err := s.gateway.FetchCodingQuestions(ctx)
	if err != nil {
		return fmt.Errorf("load coding questions: %w", err)
	}
	if len(questions) == 0 {
		return ErrNoQuestions
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.questions = questions
	s.selected = 0
	s.code = starterFor(questions[0], s.language)
	s.countdown = exam.NewCountdown(durationSeconds, nil)
	s.countdown.Start()

	s.log.Info().Int("questions", len(questions)).Int("duration_s", durationSeconds).Msg("coding session started")
	return nil
}

// RunCountdown drives the timer; cancel ctx on screen teardown.
func (s *Session) RunCountdown(ctx context.Context) {
	s.mu.Lock()
	cd := s.countdown
	s.mu.Unlock()
	if cd == nil {
		return
	}
	cd.Run(ctx)
}

// Question returns the selected coding question.
func (s *Session) Question() model.CodingQuestion {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.questions[s.selected]
}

// Language returns the active judge language.
func (s *Session) Language() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.language
}

// Code returns the current buffer contents.
func (s *Session) Code() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.code
}

// Remaining returns the countdown's remaining seconds.
func (s *Session) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.countdown == nil {
		return 0
	}
	return s.countdown.Remaining()
}

// Finalized reports whether the final submission was made.
func (s *Session) Finalized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finalized
}

// LastResult returns the most recent judge verdict, nil before any run.
func (s *Session) LastResult() *model.CompileResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastResult
}

// SetLanguage switches the judge language and reseeds the buffer with
// that language's starter code, discarding edits (portal behavior).
func (s *Session) SetLanguage(lang string) error {
	valid := false
	for _, l := range Languages {
		if l == lang {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("%w: %q", ErrBadLanguage, lang)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editableLocked(); err != nil {
		return err
	}
	s.language = lang
	s.code = starterFor(s.questions[s.selected], lang)
	return nil
}

// SetCode replaces the buffer contents.
func (s *Session) SetCode(code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editableLocked(); err != nil {
		return err
	}
	s.code = code
	return nil
}

// Run sends the buffer to the judge and records the verdict. Repeatable
// until finalization or expiry.
func (s *Session) Run(ctx context.Context) (*model.CompileResponse, error) {
	s.mu.Lock()
	if err := s.editableLocked(); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	req := s.compileRequestLocked()
	s.mu.Unlock()

	resp, err := s.gateway.Compile(ctx, req)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.lastResult = resp
	s.mu.Unlock()
	return resp, nil
}

// SubmitFinal sends the buffer as the final submission. One-way: on
// success the session becomes read-only. The judge records the
// submission keyed on studentId.
func (s *Session) SubmitFinal(ctx context.Context) (*model.CompileResponse, error) {
	s.mu.Lock()
	if err := s.editableLocked(); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	req := s.compileRequestLocked()
	s.mu.Unlock()

	resp, err := s.gateway.Compile(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("final submission: %w", err)
	}

	s.mu.Lock()
	s.lastResult = resp
	s.finalized = true
	s.countdown.Halt()
	s.mu.Unlock()

	s.log.Info().Int("passed", resp.PassedCount).Int("total", resp.Total).Msg("final coding submission saved")
	return resp, nil
}

func (s *Session) editableLocked() error {
	if len(s.questions) == 0 {
		return exam.ErrNotStarted
	}
	if s.finalized {
		return ErrFinalized
	}
	if s.countdown != nil && s.countdown.State() == exam.CountdownExpired {
		return ErrTimeUp
	}
	return nil
}

func (s *Session) compileRequestLocked() model.CompileRequest {
	return model.CompileRequest{
		Code:       s.code,
		Language:   s.language,
		QuestionID: s.questions[s.selected].ID,
		StudentID:  s.studentID,
	}
}

func starterFor(q model.CodingQuestion, lang string) string {
	switch lang {
	case "java":
		return q.StarterCode.Java
	case "python":
		return q.StarterCode.Python
	default:
		return q.StarterCode.CPP
	}
}
