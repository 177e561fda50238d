package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/careerit/examterm/internal/coding"
	"github.com/careerit/examterm/internal/model"
)

// CodingScreen runs one timed coding attempt against the remote judge.
type CodingScreen struct {
	session *coding.Session
	p       *Prompter
	log     zerolog.Logger
}

// NewCodingScreen wraps a started coding session.
func NewCodingScreen(session *coding.Session, p *Prompter, log zerolog.Logger) *CodingScreen {
	return &CodingScreen{session: session, p: p, log: log}
}

// Run drives the screen until final submission, expiry, or quit.
func (s *CodingScreen) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go s.session.RunCountdown(ctx)

	q := s.session.Question()
	s.p.Say("")
	s.p.Say("=== Coding Exam ===")
	s.p.Say("%s", q.Title)
	s.p.Say("%s", q.Description)
	s.p.Say("Commands: lang <cpp|java|python> | edit | show | run | submit | time | q quit")

	for {
		cmd, err := s.p.Line("code")
		if err != nil {
			return err
		}

		switch {
		case strings.HasPrefix(cmd, "lang "):
			lang := strings.TrimSpace(strings.TrimPrefix(cmd, "lang "))
			if err := s.session.SetLanguage(lang); err != nil {
				s.p.Say("Cannot switch language: %v", err)
			} else {
				s.p.Say("Language set to %s; editor reset to its starter code.", lang)
			}
		case cmd == "edit":
			code, err := s.p.MultiLine("Enter your solution")
			if err != nil {
				return err
			}
			if err := s.session.SetCode(code); err != nil {
				s.p.Say("Cannot edit: %v", err)
			}
		case cmd == "show":
			s.p.Say("--- %s ---", s.session.Language())
			s.p.Say("%s", s.session.Code())
		case cmd == "run":
			s.runOnce(ctx, false)
		case cmd == "submit":
			if !s.p.Confirm("Make your final submission? You cannot edit afterwards") {
				continue
			}
			if s.runOnce(ctx, true) {
				s.p.Say("Final submission saved.")
				return nil
			}
		case cmd == "time":
			s.p.Say("Time left: %s", formatClock(s.session.Remaining()))
		case cmd == "q":
			if s.p.Confirm("Leave the coding exam?") {
				return nil
			}
		case cmd == "":
		default:
			s.p.Say("Unknown command %q", cmd)
		}
	}
}

func (s *CodingScreen) runOnce(ctx context.Context, final bool) bool {
	var (
		resp *model.CompileResponse
		err  error
	)
	if final {
		resp, err = s.session.SubmitFinal(ctx)
	} else {
		resp, err = s.session.Run(ctx)
	}

	switch {
	case errors.Is(err, coding.ErrTimeUp):
		s.p.Say("Time is up; the editor is locked.")
		return false
	case errors.Is(err, coding.ErrFinalized):
		s.p.Say("Final submission already made.")
		return false
	case err != nil:
		s.p.Say("Run failed: %v", err)
		s.log.Error().Err(err).Bool("final", final).Msg("judge call failed")
		return false
	}

	s.renderResults(resp)
	return true
}

func (s *CodingScreen) renderResults(resp *model.CompileResponse) {
	s.p.Say("--- Results ---")
	for i, r := range resp.Results {
		verdict := "FAIL"
		if r.Pass {
			verdict = "PASS"
		}
		s.p.Say("Test %d: %s", i+1, verdict)
		if !r.Pass {
			s.p.Say("  Input:    %s", r.Input)
			s.p.Say("  Expected: %s", r.Expected)
			s.p.Say("  Actual:   %s", r.Actual)
		}
	}
	s.p.Say("Total passed: %d / %d", resp.PassedCount, resp.Total)
}
