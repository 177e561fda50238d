package tui

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/careerit/examterm/internal/api"
	"github.com/careerit/examterm/internal/coding"
	"github.com/careerit/examterm/internal/config"
	"github.com/careerit/examterm/internal/exam"
	"github.com/careerit/examterm/internal/portal"
)

// Dashboard is the student home screen: profile, score history and the
// entry points into both exam flows.
type Dashboard struct {
	client *api.Client
	svc    *portal.Service
	cfg    *config.Config
	p      *Prompter
	log    zerolog.Logger
}

// NewDashboard creates the student dashboard screen.
func NewDashboard(client *api.Client, svc *portal.Service, cfg *config.Config, p *Prompter, log zerolog.Logger) *Dashboard {
	return &Dashboard{client: client, svc: svc, cfg: cfg, p: p, log: log}
}

// Run shows the dashboard until logout.
func (d *Dashboard) Run(ctx context.Context) error {
	overview, err := d.svc.Load(ctx, d.client.Credential().StudentID)
	if err != nil {
		return fmt.Errorf("load dashboard: %w", err)
	}
	d.render(overview)

	for {
		cmd, err := d.p.Line("dashboard [t=MCQ test, c=coding test, r=refresh, q=logout]")
		if err != nil {
			return err
		}

		switch cmd {
		case "t":
			if overview.MCQSubmitted {
				d.p.Say("You have already submitted the test for today. Please come back tomorrow.")
				continue
			}
			if err := d.startMCQ(ctx); err != nil {
				d.p.Say("%v", err)
			}
		case "c":
			if overview.CodeSubmitted {
				d.p.Say("You have already submitted your coding test today.")
				continue
			}
			if err := d.startCoding(ctx); err != nil {
				d.p.Say("%v", err)
			}
		case "r":
			if refreshed, err := d.svc.Load(ctx, d.client.Credential().StudentID); err == nil {
				overview = refreshed
				d.render(overview)
			} else {
				d.p.Say("Refresh failed: %v", err)
			}
		case "q":
			return nil
		case "":
		default:
			d.p.Say("Unknown command %q", cmd)
		}
	}
}

func (d *Dashboard) render(o *portal.Overview) {
	d.p.Say("")
	d.p.Say("Welcome, %s", o.Profile.Name)
	d.p.Say("Roll Number:   %s", o.Profile.RollNumber)
	d.p.Say("Email:         %s", o.Profile.Email)
	if sec := o.Profile.SectionID; sec != nil {
		if sec.YearID != nil && sec.YearID.DepartmentID != nil {
			d.p.Say("Branch:        %s", sec.YearID.DepartmentID.Name)
		}
		if sec.YearID != nil {
			d.p.Say("Academic Year: %s", sec.YearID.YearLabel)
		}
		d.p.Say("Section:       %s", sec.SectionLabel)
	}
	d.p.Say("Average Score: %.2f%%", o.AverageScore)
	d.p.Say("Tests Taken:   %d", o.TestsTaken)

	if len(o.History) > 0 {
		d.p.Say("")
		d.p.Say("Score trend:")
		for _, e := range o.History {
			d.p.Say("  %s  %6.2f%%", e.Date, e.Score)
		}
	}
}

// startMCQ shows the instructions gate, then loads and runs a session.
func (d *Dashboard) startMCQ(ctx context.Context) error {
	d.p.Say("")
	d.p.Say("Test Instructions:")
	for _, line := range portal.Instructions() {
		d.p.Say("  - %s", line)
	}
	if !d.p.Confirm("Start the test now?") {
		return nil
	}

	session := exam.NewSession(d.client, exam.SessionConfig{
		DurationSeconds:      d.cfg.MCQDurationSeconds,
		Window:               exam.Window{StartHour: d.cfg.WindowStartHour, EndHour: d.cfg.WindowEndHour},
		LockWhenWindowClosed: d.cfg.LockWhenWindowClosed,
		Confirm: func(unanswered int) bool {
			return d.p.Confirm(fmt.Sprintf("You have %d unanswered questions. Are you sure you want to submit?", unanswered))
		},
	}, d.log)

	if err := session.Start(ctx); err != nil {
		return fmt.Errorf("failed to load exam questions: %w", err)
	}
	return NewExamScreen(session, d.p, d.log).Run(ctx)
}

func (d *Dashboard) startCoding(ctx context.Context) error {
	session := coding.NewSession(d.client, d.client.Credential().StudentID, d.log)
	if err := session.Start(ctx, d.cfg.CodingDurationSeconds); err != nil {
		return fmt.Errorf("failed to load coding exam: %w", err)
	}
	return NewCodingScreen(session, d.p, d.log).Run(ctx)
}
