package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/careerit/examterm/internal/admin"
	"github.com/careerit/examterm/internal/api"
	"github.com/careerit/examterm/internal/config"
	"github.com/careerit/examterm/internal/logger"
	"github.com/careerit/examterm/internal/model"
	"github.com/careerit/examterm/internal/tui"
	"github.com/careerit/examterm/internal/validator"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	client := api.NewClient(cfg, nil, log)
	p := tui.Stdio()

	p.Say("Exam Portal Administration")

	cred, err := tui.Login(ctx, client, p, log)
	if err != nil {
		p.Say("%v", err)
		os.Exit(1)
	}
	if !cred.IsAdmin() {
		p.Say("Access denied. You are not an admin.")
		os.Exit(1)
	}

	svc := admin.NewService(client, log)

	if err := menu(ctx, svc, p); err != nil {
		log.Error().Err(err).Msg("admin session exited with error")
		p.Say("%v", err)
		cred.Clear()
		os.Exit(1)
	}
	cred.Clear()
	p.Say("Logged out.")
}

func menu(ctx context.Context, svc *admin.Service, p *tui.Prompter) error {
	for {
		cmd, err := p.Line("admin [q=questions, c=coding question, s=students, r=reports, x=exit]")
		if err != nil {
			return err
		}

		switch cmd {
		case "q":
			if err := questionMenu(ctx, svc, p); err != nil {
				return err
			}
		case "c":
			if err := addCodingQuestion(ctx, svc, p); err != nil {
				return err
			}
		case "s":
			if err := studentMenu(ctx, svc, p); err != nil {
				return err
			}
		case "r":
			if err := reportsMenu(ctx, svc, p); err != nil {
				return err
			}
		case "x":
			return nil
		case "":
		default:
			p.Say("Unknown command %q", cmd)
		}
	}
}

func questionMenu(ctx context.Context, svc *admin.Service, p *tui.Prompter) error {
	for {
		cmd, err := p.Line("questions [l=list, a=add, d=delete, u=upload workbook, b=back]")
		if err != nil {
			return err
		}

		switch cmd {
		case "l":
			questions, err := svc.ListQuestions(ctx)
			if err != nil {
				p.Say("Failed to fetch questions: %v", err)
				continue
			}
			for i, q := range questions {
				p.Say("%3d. [%s] %s", i+1, q.ID, q.Question)
			}
			p.Say("%d question(s) in the bank.", len(questions))
		case "a":
			if err := addQuestion(ctx, svc, p); err != nil {
				return err
			}
		case "d":
			id, err := p.Line("Question ID to delete")
			if err != nil {
				return err
			}
			if !p.Confirm("Delete question " + id + "?") {
				continue
			}
			if err := svc.DeleteQuestion(ctx, id); err != nil {
				p.Say("Delete failed: %v", err)
			} else {
				p.Say("Question deleted.")
			}
		case "u":
			path, err := p.Line("Path to .xlsx workbook")
			if err != nil {
				return err
			}
			n, err := svc.ImportQuestionWorkbook(ctx, path)
			if err != nil {
				p.Say("Upload failed: %v", err)
			} else {
				p.Say("Uploaded %d question(s).", n)
			}
		case "b":
			return nil
		case "":
		default:
			p.Say("Unknown command %q", cmd)
		}
	}
}

func addQuestion(ctx context.Context, svc *admin.Service, p *tui.Prompter) error {
	var req model.AddQuestionRequest

	if companies, err := svc.ListCompanies(ctx); err == nil && len(companies) > 0 {
		for i, c := range companies {
			p.Say("%d. %s (%s)", i+1, c.Name, c.ID)
		}
		pick, err := p.Line("Company number (empty for none)")
		if err != nil {
			return err
		}
		if n, convErr := strconv.Atoi(pick); convErr == nil && n >= 1 && n <= len(companies) {
			req.CompanyID = companies[n-1].ID
		}
	}

	var err error
	if req.Subject, err = p.Line("Subject"); err != nil {
		return err
	}
	if req.Question, err = p.Line("Question"); err != nil {
		return err
	}
	req.Options = make([]string, 4)
	for i := range req.Options {
		if req.Options[i], err = p.Line(fmt.Sprintf("Option %c", 'A'+i)); err != nil {
			return err
		}
	}
	correct, err := p.Line("Correct option (A-D)")
	if err != nil {
		return err
	}
	correct = strings.ToUpper(strings.TrimSpace(correct))
	if len(correct) != 1 || correct[0] < 'A' || correct[0] > 'D' {
		p.Say("Correct option must be A-D.")
		return nil
	}
	req.CorrectAnswerIndex = int(correct[0] - 'A')

	if err := svc.AddQuestion(ctx, req); err != nil {
		p.Say("Add failed: %v", err)
		return nil
	}
	p.Say("Question added.")
	return nil
}

func addCodingQuestion(ctx context.Context, svc *admin.Service, p *tui.Prompter) error {
	var req model.AddCodingQuestionRequest
	var err error

	if req.Title, err = p.Line("Title"); err != nil {
		return err
	}
	if req.Description, err = p.MultiLine("Description"); err != nil {
		return err
	}
	if req.StarterCode.CPP, err = p.MultiLine("C++ starter code"); err != nil {
		return err
	}
	if req.StarterCode.Java, err = p.MultiLine("Java starter code"); err != nil {
		return err
	}
	if req.StarterCode.Python, err = p.MultiLine("Python starter code"); err != nil {
		return err
	}

	for {
		var tc model.TestCase
		if tc.Input, err = p.Line("Test case input (empty to finish)"); err != nil {
			return err
		}
		if tc.Input == "" && len(req.TestCases) > 0 {
			break
		}
		if tc.Expected, err = p.Line("Expected output"); err != nil {
			return err
		}
		req.TestCases = append(req.TestCases, tc)
	}

	durationStr, err := p.Line("Duration seconds (default 900)")
	if err != nil {
		return err
	}
	req.Duration = 900
	if durationStr != "" {
		if n, convErr := strconv.Atoi(durationStr); convErr == nil {
			req.Duration = n
		}
	}
	if req.Date, err = p.Line("Date (YYYY-MM-DD)"); err != nil {
		return err
	}

	if err := svc.AddCodingQuestion(ctx, req); err != nil {
		p.Say("Add failed: %v", err)
		return nil
	}
	p.Say("Coding question added.")
	return nil
}

func studentMenu(ctx context.Context, svc *admin.Service, p *tui.Prompter) error {
	students, err := svc.ListStudents(ctx)
	if err != nil {
		p.Say("Failed to fetch students: %v", err)
		return nil
	}

	for {
		cmd, err := p.Line("students [f=find, t=reset today's test, b=back]")
		if err != nil {
			return err
		}

		switch cmd {
		case "f":
			term, err := p.Line("Name or roll number")
			if err != nil {
				return err
			}
			matches := admin.FilterStudents(students, term)
			for _, st := range matches {
				p.Say("%s  %s  %s", st.RollNumber, st.Name, st.ID)
			}
			p.Say("%d match(es).", len(matches))
		case "t":
			id, err := p.Line("Student ID")
			if err != nil {
				return err
			}
			if !p.Confirm("Are you sure you want to reset today's test for this student?") {
				continue
			}
			if err := svc.ResetTest(ctx, id); err != nil {
				p.Say("Reset failed: %v", err)
			} else {
				p.Say("Test reset successfully.")
			}
		case "b":
			return nil
		case "":
		default:
			p.Say("Unknown command %q", cmd)
		}
	}
}

func reportsMenu(ctx context.Context, svc *admin.Service, p *tui.Prompter) error {
	var filters model.ReportFilters
	var err error

	if filters.Department, err = p.Line("Department (empty for all)"); err != nil {
		return err
	}
	if filters.Year, err = p.Line("Year (empty for all)"); err != nil {
		return err
	}
	if filters.Section, err = p.Line("Section (empty for all)"); err != nil {
		return err
	}
	if filters.Date, err = p.Line("Date YYYY-MM-DD (empty for all)"); err != nil {
		return err
	}

	records, err := svc.Reports(ctx, filters)
	if err != nil {
		p.Say("Failed to fetch reports: %v", err)
		return nil
	}

	p.Say("%-24s %-12s %-12s %s", "Name", "Roll No", "Date", "Score (%)")
	for _, r := range records {
		p.Say("%-24s %-12s %-12s %.2f", r.Name, r.RollNo, r.Date, r.Score)
	}
	p.Say("%d record(s) found.", len(records))

	if len(records) == 0 || !p.Confirm("Export to Excel?") {
		return nil
	}
	path, err := p.Line("Output file (default StudentTestReports.xlsx)")
	if err != nil {
		return err
	}
	if path == "" {
		path = "StudentTestReports.xlsx"
	}
	if err := admin.ExportReports(records, path); err != nil {
		p.Say("Export failed: %v", err)
		return nil
	}
	p.Say("Saved %s.", path)
	return nil
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
