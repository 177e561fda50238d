package exam

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/careerit/examterm/internal/model"
)

// SessionStatus enumerates the lifecycle of one timed attempt.
type SessionStatus string

const (
	SessionStatusIdle       SessionStatus = "IDLE"
	SessionStatusInProgress SessionStatus = "IN_PROGRESS"
	SessionStatusSubmitted  SessionStatus = "SUBMITTED"
)

var (
	// ErrNoQuestions means the portal returned an empty question set;
	// the exam cannot start.
	ErrNoQuestions = errors.New("no questions available")

	// ErrSessionClosed rejects mutation of a submitted session.
	ErrSessionClosed = errors.New("session already submitted")

	// ErrSessionLocked rejects answer changes after a window rejection
	// froze the session (LockWhenWindowClosed policy).
	ErrSessionLocked = errors.New("session locked until the submission window opens")

	// ErrNotStarted rejects operations before a successful load.
	ErrNotStarted = errors.New("session not started")

	// ErrSubmitDeclined means the student declined the unanswered-
	// questions confirmation; nothing was submitted.
	ErrSubmitDeclined = errors.New("submission declined")
)

// Gateway is the remote collaborator a session needs: question retrieval
// and result recording. *api.Client satisfies it.
type Gateway interface {
	FetchTest(ctx context.Context) ([]model.Question, error)
	SubmitTest(ctx context.Context, req model.SubmitTestRequest) error
}

// SessionConfig carries the tunables for one attempt.
type SessionConfig struct {
	// DurationSeconds seeds the countdown (portal default 3600 for MCQ).
	DurationSeconds int

	// Window is the submission time-window policy.
	Window Window

	// LockWhenWindowClosed freezes answers after a window rejection
	// instead of leaving the session open for a later retry.
	LockWhenWindowClosed bool

	// Now supplies wall-clock time for the window check. Defaults to
	// time.Now.
	Now func() time.Time

	// Confirm is asked before a manual submit with unanswered questions,
	// receiving the unanswered count. A nil Confirm proceeds without
	// asking. Auto-submission on expiry never consults it.
	Confirm func(unanswered int) bool
}

// Session is the working state of one timed MCQ attempt: an ordered,
// immutable question set, a complete answer sheet, a cursor, and a
// countdown. All mutation funnels through methods that hold the session
// lock, and the one-way submitted transition is the single guard that
// makes the race between countdown expiry and a manual submit resolve
// to exactly one remote record call.
type Session struct {
	mu      sync.Mutex
	gateway Gateway
	cfg     SessionConfig
	log     zerolog.Logger

	attemptID uuid.UUID
	questions []model.Question
	sheet     *AnswerSheet
	current   int
	countdown *Countdown
	status    SessionStatus
	locked    bool
	summary   *Summary
}

// NewSession creates an idle session; call Start to load questions.
func NewSession(gateway Gateway, cfg SessionConfig, log zerolog.Logger) *Session {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	id := uuid.New()
	return &Session{
		gateway:   gateway,
		cfg:       cfg,
		log:       log.With().Str("component", "exam_session").Str("attempt_id", id.String()).Logger(),
		attemptID: id,
		status:    SessionStatusIdle,
	}
}

// Start loads the question set and initializes answer and timer state.
// A load failure is terminal for the session: the caller renders the
// error and does not retry. An empty question set blocks exam start.
func (s *Session) Start(ctx context.Context) error {
	questions, err := s.gateway.FetchTest(ctx)
	if err != nil {
		return fmt.Errorf("load exam questions: %w", err)
	}
	if len(questions) == 0 {
		return ErrNoQuestions
	}

	sheet, err := NewAnswerSheet(len(questions))
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.questions = questions
	s.sheet = sheet
	s.current = 0
	s.countdown = NewCountdown(s.cfg.DurationSeconds, func() {
		// Countdown expiry finalizes without confirmation. The screen's
		// context may already be tearing down, so the remote call runs
		// on its own context; the HTTP client timeout bounds it.
		if _, err := s.finalize(context.Background(), true); err != nil {
			s.log.Warn().Err(err).Msg("auto-submit on expiry failed")
		}
	})
	s.countdown.Start()
	s.status = SessionStatusInProgress

	s.log.Info().Int("questions", len(questions)).Int("duration_s", s.cfg.DurationSeconds).Msg("session started")
	return nil
}

// RunCountdown drives the timer until expiry, submission, or ctx
// cancellation. Run it in its own goroutine for the life of the exam
// screen and cancel ctx on teardown.
func (s *Session) RunCountdown(ctx context.Context) {
	s.mu.Lock()
	cd := s.countdown
	s.mu.Unlock()
	if cd == nil {
		return
	}
	cd.Run(ctx)
}

// Questions returns the loaded question set. The slice is shared and
// must not be mutated.
func (s *Session) Questions() []model.Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.questions
}

// CurrentIndex returns the cursor position.
func (s *Session) CurrentIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Current returns the question under the cursor.
func (s *Session) Current() model.Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.questions[s.current]
}

// Answer returns the stored selection for a question index.
func (s *Session) Answer(questionIndex int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sheet == nil {
		return Unanswered
	}
	return s.sheet.Answer(questionIndex)
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

// Status returns the session lifecycle state.
func (s *Session) Status() SessionStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Submitted reports whether the session was finalized.
func (s *Session) Submitted() bool {
	return s.Status() == SessionStatusSubmitted
}

// Summary returns the scored summary, nil until finalized.
func (s *Session) Summary() *Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.summary
}

// UnansweredCount returns how many questions have no selection yet.
func (s *Session) UnansweredCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sheet == nil {
		return 0
	}
	return s.sheet.UnansweredCount()
}

// SelectOption stores a selection, overwriting any previous one.
// Rejected once the session is submitted or window-locked; navigation
// state is untouched and no network call is made.
func (s *Session) SelectOption(questionIndex, optionIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.status == SessionStatusIdle:
		return ErrNotStarted
	case s.status == SessionStatusSubmitted:
		return ErrSessionClosed
	case s.locked:
		return ErrSessionLocked
	}
	if questionIndex < 0 || questionIndex >= len(s.questions) {
		return fmt.Errorf("question index %d out of range [0,%d)", questionIndex, len(s.questions))
	}
	if optionIndex < 0 || optionIndex >= len(s.questions[questionIndex].Options) {
		return fmt.Errorf("option index %d out of range [0,%d)", optionIndex, len(s.questions[questionIndex].Options))
	}
	return s.sheet.Select(questionIndex, optionIndex)
}

// Next moves the cursor forward one question, clamped at the last.
func (s *Session) Next() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != SessionStatusInProgress {
		return
	}
	if s.current < len(s.questions)-1 {
		s.current++
	}
}

// Prev moves the cursor back one question, clamped at the first.
func (s *Session) Prev() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != SessionStatusInProgress {
		return
	}
	if s.current > 0 {
		s.current--
	}
}

// JumpTo moves the cursor directly to any valid index, answered or not.
func (s *Session) JumpTo(questionIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status == SessionStatusSubmitted {
		return ErrSessionClosed
	}
	if s.status == SessionStatusIdle {
		return ErrNotStarted
	}
	if questionIndex < 0 || questionIndex >= len(s.questions) {
		return fmt.Errorf("question index %d out of range [0,%d)", questionIndex, len(s.questions))
	}
	s.current = questionIndex
	return nil
}

// Submit is the manual finalize path. With unanswered questions it
// consults the Confirm callback first; declining returns
// ErrSubmitDeclined and leaves the session open.
func (s *Session) Submit(ctx context.Context) (*Summary, error) {
	s.mu.Lock()
	if s.status == SessionStatusIdle {
		s.mu.Unlock()
		return nil, ErrNotStarted
	}
	unanswered := 0
	if s.status == SessionStatusInProgress && s.sheet != nil {
		unanswered = s.sheet.UnansweredCount()
	}
	confirm := s.cfg.Confirm
	status := s.status
	s.mu.Unlock()

	if status == SessionStatusInProgress && unanswered > 0 && confirm != nil {
		if !confirm(unanswered) {
			return nil, ErrSubmitDeclined
		}
	}

	return s.finalize(ctx, false)
}

// finalize is the single convergence point for manual and auto
// submission. The submitted flag is checked and set under the session
// lock, so the remote record call executes at most once per session no
// matter how expiry and user input interleave.
func (s *Session) finalize(ctx context.Context, auto bool) (*Summary, error) {
	s.mu.Lock()

	if s.status == SessionStatusSubmitted {
		summary := s.summary
		s.mu.Unlock()
		return summary, nil
	}

	// Submission window policy: outside the window the submission is
	// rejected locally, no remote call is made, and the session stays
	// open (or freezes, per policy) for a retry in the next window.
	now := s.cfg.Now()
	if !s.cfg.Window.Allows(now) {
		if s.cfg.LockWhenWindowClosed && !s.locked {
			s.locked = true
			s.countdown.Halt()
		}
		locked := s.locked
		s.mu.Unlock()
		s.log.Info().Bool("auto", auto).Time("at", now).Msg("submission rejected by window policy")
		return nil, &OutsideWindowError{Window: s.cfg.Window, Locked: locked}
	}

	// Optimistic local finalize: score, flip the one-way flag, freeze
	// the timer, then report. The summary stands regardless of what the
	// remote call returns.
	summary := Score(s.questions, s.sheet)
	s.status = SessionStatusSubmitted
	s.summary = summary
	s.countdown.Halt()

	req := model.SubmitTestRequest{
		Answers:     s.sheet.Selections(),
		QuestionIDs: make([]string, len(s.questions)),
	}
	for i, q := range s.questions {
		req.QuestionIDs[i] = q.ID
	}
	s.mu.Unlock()

	s.log.Info().
		Bool("auto", auto).
		Int("correct", summary.Correct).
		Float64("score", summary.ScorePercent).
		Msg("session finalized")

	if err := s.gateway.SubmitTest(ctx, req); err != nil {
		// No rollback: the local summary already treats the session as
		// submitted. The caller distinguishes the duplicate-submission
		// conflict from other failures via errors.Is.
		s.log.Error().Err(err).Msg("remote result recording failed")
		return summary, err
	}
	return summary, nil
}
