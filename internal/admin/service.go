// Package admin implements the administrator tooling: question bank
// management, student attempt resets, and filtered report pulls.
package admin

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/careerit/examterm/internal/model"
	"github.com/careerit/examterm/internal/validator"
)

// Gateway is the portal surface the admin tools need. *api.Client
// satisfies it.
type Gateway interface {
	ListQuestions(ctx context.Context) ([]model.Question, error)
	AddQuestion(ctx context.Context, req model.AddQuestionRequest) error
	DeleteQuestion(ctx context.Context, id string) error
	UploadQuestionWorkbook(ctx context.Context, path string) error
	ListCompanies(ctx context.Context) ([]model.Company, error)
	AddCodingQuestion(ctx context.Context, req model.AddCodingQuestionRequest) error
	ListStudents(ctx context.Context) ([]model.Student, error)
	ResetTest(ctx context.Context, studentID string) error
	ViewReports(ctx context.Context, filters model.ReportFilters) ([]model.ReportRecord, error)
}

// ValidationError carries field-level messages for a rejected payload.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

// Service wraps the portal's admin endpoints with local validation.
type Service struct {
	gateway Gateway
	log     zerolog.Logger
}

// NewService creates an admin service.
func NewService(gateway Gateway, log zerolog.Logger) *Service {
	return &Service{
		gateway: gateway,
		log:     log.With().Str("component", "admin").Logger(),
	}
}

// ListQuestions fetches the MCQ bank.
func (s *Service) ListQuestions(ctx context.Context) ([]model.Question, error) {
	return s.gateway.ListQuestions(ctx)
}

// AddQuestion validates and uploads one MCQ. The option list is checked
// as a unit: exactly four non-empty options with the correct index in
// range, so a malformed bank entry never reaches the portal.
func (s *Service) AddQuestion(ctx context.Context, req model.AddQuestionRequest) error {
	if fields := validator.Check(req); fields != nil {
		return &ValidationError{Fields: fields}
	}
	if req.CorrectAnswerIndex >= len(req.Options) {
		return &ValidationError{Fields: map[string]string{
			"correctAnswerIndex": fmt.Sprintf("must be below %d", len(req.Options)),
		}}
	}
	if err := s.gateway.AddQuestion(ctx, req); err != nil {
		return err
	}
	s.log.Info().Str("subject", req.Subject).Msg("question added")
	return nil
}

// DeleteQuestion removes one MCQ from the bank.
func (s *Service) DeleteQuestion(ctx context.Context, id string) error {
	if id == "" {
		return &ValidationError{Fields: map[string]string{"_id": "is required"}}
	}
	return s.gateway.DeleteQuestion(ctx, id)
}

// ListCompanies fetches the organizations question banks belong to.
func (s *Service) ListCompanies(ctx context.Context) ([]model.Company, error) {
	return s.gateway.ListCompanies(ctx)
}

// AddCodingQuestion validates and publishes a coding exercise.
func (s *Service) AddCodingQuestion(ctx context.Context, req model.AddCodingQuestionRequest) error {
	if fields := validator.Check(req); fields != nil {
		return &ValidationError{Fields: fields}
	}
	for i, tc := range req.TestCases {
		if strings.TrimSpace(tc.Expected) == "" {
			return &ValidationError{Fields: map[string]string{
				fmt.Sprintf("testCases[%d].expected", i): "is required",
			}}
		}
	}
	if err := s.gateway.AddCodingQuestion(ctx, req); err != nil {
		return err
	}
	s.log.Info().Str("title", req.Title).Int("test_cases", len(req.TestCases)).Msg("coding question added")
	return nil
}

// ListStudents fetches all student accounts.
func (s *Service) ListStudents(ctx context.Context) ([]model.Student, error) {
	return s.gateway.ListStudents(ctx)
}

// FilterStudents narrows a student list by a case-insensitive match on
// name or roll number.
func FilterStudents(students []model.Student, term string) []model.Student {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return students
	}
	var out []model.Student
	for _, st := range students {
		if strings.Contains(strings.ToLower(st.Name), term) ||
			strings.Contains(strings.ToLower(st.RollNumber), term) {
			out = append(out, st)
		}
	}
	return out
}

// ResetTest clears a student's attempt for today so they can retake it.
func (s *Service) ResetTest(ctx context.Context, studentID string) error {
	req := model.ResetTestRequest{StudentID: studentID}
	if fields := validator.Check(req); fields != nil {
		return &ValidationError{Fields: fields}
	}
	if err := s.gateway.ResetTest(ctx, studentID); err != nil {
		return err
	}
	s.log.Info().Str("student_id", studentID).Msg("test attempt reset")
	return nil
}

// Reports fetches test records matching the filters.
func (s *Service) Reports(ctx context.Context, filters model.ReportFilters) ([]model.ReportRecord, error) {
	if fields := validator.Check(filters); fields != nil {
		return nil, &ValidationError{Fields: fields}
	}
	return s.gateway.ViewReports(ctx, filters)
}

// ImportQuestionWorkbook validates a local .xlsx of MCQs and bulk-
// uploads it. Validation happens before any bytes leave the machine so
// a bad row is reported with its row number instead of a portal error.
func (s *Service) ImportQuestionWorkbook(ctx context.Context, path string) (int, error) {
	rows, err := ReadQuestionWorkbook(path)
	if err != nil {
		return 0, err
	}
	if err := s.gateway.UploadQuestionWorkbook(ctx, path); err != nil {
		return 0, err
	}
	s.log.Info().Int("questions", len(rows)).Str("file", path).Msg("question workbook uploaded")
	return len(rows), nil
}
