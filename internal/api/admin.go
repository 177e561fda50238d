package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/careerit/examterm/internal/model"
)

// ListQuestions fetches the full MCQ bank.
func (c *Client) ListQuestions(ctx context.Context) ([]model.Question, error) {
	var questions []model.Question
	if err := c.doJSON(ctx, http.MethodGet, c.portalBase+"/api/mcqs", nil, &questions, true); err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	return questions, nil
}

// AddQuestion adds one MCQ to the bank.
func (c *Client) AddQuestion(ctx context.Context, req model.AddQuestionRequest) error {
	if err := c.doJSON(ctx, http.MethodPost, c.portalBase+"/api/mcqs", req, nil, true); err != nil {
		return fmt.Errorf("add question: %w", err)
	}
	return nil
}

// DeleteQuestion removes one MCQ from the bank.
func (c *Client) DeleteQuestion(ctx context.Context, id string) error {
	if err := c.doJSON(ctx, http.MethodDelete, c.portalBase+"/api/mcqs/"+id, nil, nil, true); err != nil {
		return fmt.Errorf("delete question: %w", err)
	}
	return nil
}

// UploadQuestionWorkbook bulk-imports MCQs from a local .xlsx file.
func (c *Client) UploadQuestionWorkbook(ctx context.Context, path string) error {
	if err := c.doMultipartFile(ctx, c.portalBase+"/api/mcqs/upload-excel", "file", path, nil); err != nil {
		return fmt.Errorf("upload question workbook: %w", err)
	}
	return nil
}

// ListCompanies fetches the organizations question banks belong to.
func (c *Client) ListCompanies(ctx context.Context) ([]model.Company, error) {
	var companies []model.Company
	if err := c.doJSON(ctx, http.MethodGet, c.portalBase+"/api/companies", nil, &companies, true); err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	return companies, nil
}

// ListStudents fetches all student accounts.
func (c *Client) ListStudents(ctx context.Context) ([]model.Student, error) {
	var students []model.Student
	if err := c.doJSON(ctx, http.MethodGet, c.portalBase+"/api/admin/all-students", nil, &students, true); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// ResetTest clears a student's recorded attempt for today so they can
// retake the test.
func (c *Client) ResetTest(ctx context.Context, studentID string) error {
	req := model.ResetTestRequest{StudentID: studentID}
	if err := c.doJSON(ctx, http.MethodPost, c.portalBase+"/api/admin/reset-test", req, nil, true); err != nil {
		return fmt.Errorf("reset test: %w", err)
	}
	return nil
}

// ViewReports fetches test records matching the given filters.
func (c *Client) ViewReports(ctx context.Context, filters model.ReportFilters) ([]model.ReportRecord, error) {
	var records []model.ReportRecord
	if err := c.doJSON(ctx, http.MethodPost, c.portalBase+"/api/admin/view-reports", filters, &records, true); err != nil {
		return nil, fmt.Errorf("view reports: %w", err)
	}
	return records, nil
}
