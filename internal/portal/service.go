// Package portal implements the student dashboard logic: profile,
// score history, and the one-attempt-per-day gates for both test types.
package portal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/careerit/examterm/internal/model"
)

// Gateway is the portal surface the dashboard needs. *api.Client
// satisfies it.
type Gateway interface {
	Profile(ctx context.Context) (*model.Profile, error)
	Results(ctx context.Context) ([]model.ResultEntry, error)
	ResultSummary(ctx context.Context) ([]model.ResultEntry, error)
	CheckCodeSubmission(ctx context.Context, studentID string) (bool, error)
}

// Service aggregates the dashboard's remote reads.
type Service struct {
	gateway Gateway
	log     zerolog.Logger
}

// NewService creates a dashboard service.
func NewService(gateway Gateway, log zerolog.Logger) *Service {
	return &Service{
		gateway: gateway,
		log:     log.With().Str("component", "portal").Logger(),
	}
}

// Overview is everything one dashboard render needs.
type Overview struct {
	Profile       *model.Profile
	History       []model.ResultEntry
	AverageScore  float64
	TestsTaken    int
	MCQSubmitted  bool
	CodeSubmitted bool
}

// Load fetches profile, score history and today's submission gates.
// The gates fail open: if a gate check errors the portal enforces the
// one-attempt rule server-side anyway, so the student is let through
// and the submit call resolves it.
func (s *Service) Load(ctx context.Context, studentID string) (*Overview, error) {
	profile, err := s.gateway.Profile(ctx)
	if err != nil {
		return nil, fmt.Errorf("load dashboard: %w", err)
	}

	overview := &Overview{Profile: profile}

	if history, err := s.gateway.ResultSummary(ctx); err == nil {
		overview.History = history
		overview.AverageScore = AverageScore(history)
		overview.TestsTaken = len(history)
	} else {
		s.log.Warn().Err(err).Msg("result summary unavailable")
	}

	if results, err := s.gateway.Results(ctx); err == nil {
		overview.MCQSubmitted = SubmittedToday(results, time.Now())
	} else {
		s.log.Warn().Err(err).Msg("submission gate check failed")
	}

	if submitted, err := s.gateway.CheckCodeSubmission(ctx, studentID); err == nil {
		overview.CodeSubmitted = submitted
	} else {
		s.log.Warn().Err(err).Msg("coding gate check failed")
	}

	return overview, nil
}

// SubmittedToday reports whether any history entry falls on now's date.
// Entry dates are ISO strings; the date is their yyyy-mm-dd prefix.
func SubmittedToday(entries []model.ResultEntry, now time.Time) bool {
	today := now.Format("2006-01-02")
	for _, e := range entries {
		if strings.HasPrefix(e.Date, today) {
			return true
		}
	}
	return false
}

// AverageScore returns the mean score over the history, 0 for none.
func AverageScore(entries []model.ResultEntry) float64 {
	if len(entries) == 0 {
		return 0
	}
	sum := 0.0
	for _, e := range entries {
		sum += e.Score
	}
	return sum / float64(len(entries))
}

// Instructions is the pre-test briefing shown before an MCQ attempt.
func Instructions() []string {
	return []string{
		"Total Questions: 25",
		"Duration: 60 minutes",
		"Each correct answer = +1 mark",
		"No negative marking",
		"One attempt per day allowed",
	}
}
