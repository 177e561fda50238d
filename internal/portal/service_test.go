package portal

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/careerit/examterm/internal/model"
)

type fakePortal struct {
	profile    *model.Profile
	profileErr error
	summary    []model.ResultEntry
	summaryErr error
	results    []model.ResultEntry
	resultsErr error
	codeDone   bool
	codeErr    error
}

func (p *fakePortal) Profile(ctx context.Context) (*model.Profile, error) {
	return p.profile, p.profileErr
}

func (p *fakePortal) Results(ctx context.Context) ([]model.ResultEntry, error) {
	return p.results, p.resultsErr
}

func (p *fakePortal) ResultSummary(ctx context.Context) ([]model.ResultEntry, error) {
	return p.summary, p.summaryErr
}

func (p *fakePortal) CheckCodeSubmission(ctx context.Context, studentID string) (bool, error) {
	return p.codeDone, p.codeErr
}

func TestLoadAggregatesOverview(t *testing.T) {
	today := time.Now().Format("2006-01-02")
	fp := &fakePortal{
		profile: &model.Profile{Name: "Asha", RollNumber: "21CS001"},
		summary: []model.ResultEntry{
			{Date: "2025-05-01T10:12:00Z", Score: 80},
			{Date: today + "T11:00:00Z", Score: 60},
		},
		results: []model.ResultEntry{
			{Date: today + "T11:00:00Z", Score: 60},
		},
		codeDone: true,
	}

	ov, err := NewService(fp, zerolog.Nop()).Load(context.Background(), "stu-1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ov.Profile.Name != "Asha" {
		t.Errorf("Profile.Name = %s", ov.Profile.Name)
	}
	if ov.TestsTaken != 2 {
		t.Errorf("TestsTaken = %d, want 2", ov.TestsTaken)
	}
	if ov.AverageScore != 70 {
		t.Errorf("AverageScore = %v, want 70", ov.AverageScore)
	}
	if !ov.MCQSubmitted {
		t.Error("MCQSubmitted = false, want true")
	}
	if !ov.CodeSubmitted {
		t.Error("CodeSubmitted = false, want true")
	}
}

func TestLoadProfileFailureIsTerminal(t *testing.T) {
	fp := &fakePortal{profileErr: errors.New("unauthorized")}
	if _, err := NewService(fp, zerolog.Nop()).Load(context.Background(), "stu-1"); err == nil {
		t.Fatal("Load should fail when the profile fetch fails")
	}
}

func TestLoadGatesFailOpen(t *testing.T) {
	fp := &fakePortal{
		profile:    &model.Profile{Name: "Asha"},
		summaryErr: errors.New("timeout"),
		resultsErr: errors.New("timeout"),
		codeErr:    errors.New("timeout"),
	}

	ov, err := NewService(fp, zerolog.Nop()).Load(context.Background(), "stu-1")
	if err != nil {
		t.Fatalf("gate failures must not fail the load: %v", err)
	}
	if ov.MCQSubmitted || ov.CodeSubmitted {
		t.Error("failed gate checks must leave the gates open")
	}
	if ov.TestsTaken != 0 {
		t.Errorf("TestsTaken = %d, want 0", ov.TestsTaken)
	}
}

func TestSubmittedToday(t *testing.T) {
	now := time.Date(2025, 6, 2, 15, 0, 0, 0, time.UTC)
	tests := []struct {
		name    string
		entries []model.ResultEntry
		want    bool
	}{
		{"no history", nil, false},
		{"only older entries", []model.ResultEntry{{Date: "2025-06-01T09:00:00Z"}}, false},
		{"entry today", []model.ResultEntry{{Date: "2025-06-02T09:00:00Z"}}, true},
		{"bare date string", []model.ResultEntry{{Date: "2025-06-02"}}, true},
		{"mixed", []model.ResultEntry{{Date: "2025-05-30T10:00:00Z"}, {Date: "2025-06-02T08:30:00Z"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SubmittedToday(tt.entries, now); got != tt.want {
				t.Errorf("SubmittedToday = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAverageScore(t *testing.T) {
	if got := AverageScore(nil); got != 0 {
		t.Errorf("AverageScore(nil) = %v, want 0", got)
	}
	entries := []model.ResultEntry{{Score: 50}, {Score: 75}, {Score: 100}}
	if got := AverageScore(entries); got != 75 {
		t.Errorf("AverageScore = %v, want 75", got)
	}
}
