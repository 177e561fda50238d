package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/careerit/examterm/internal/model"
)

// The coding endpoints live on a separate judge host; they are
// unauthenticated on the wire and gated by studentId server-side.

// FetchCodingQuestions retrieves today's coding exercises.
func (c *Client) FetchCodingQuestions(ctx context.Context) ([]model.CodingQuestion, error) {
	var questions []model.CodingQuestion
	if err := c.doJSON(ctx, http.MethodGet, c.codeBase+"/api/code/questions/today", nil, &questions, false); err != nil {
		return nil, fmt.Errorf("fetch coding questions: %w", err)
	}
	return questions, nil
}

// Compile runs code against a question's test cases and returns the
// judge's verdict. The same call records the final submission when the
// student confirms; the judge distinguishes by studentId.
func (c *Client) Compile(ctx context.Context, req model.CompileRequest) (*model.CompileResponse, error) {
	var resp model.CompileResponse
	if err := c.doJSON(ctx, http.MethodPost, c.codeBase+"/api/code/compile", req, &resp, false); err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	return &resp, nil
}

// CheckCodeSubmission reports whether the student already finalized a
// coding submission today.
func (c *Client) CheckCodeSubmission(ctx context.Context, studentID string) (bool, error) {
	var check model.CodeSubmissionCheck
	url := c.codeBase + "/api/code/submissions/check/" + studentID
	if err := c.doJSON(ctx, http.MethodGet, url, nil, &check, false); err != nil {
		return false, fmt.Errorf("check code submission: %w", err)
	}
	return check.Submitted, nil
}

// AddCodingQuestion publishes a new coding exercise.
func (c *Client) AddCodingQuestion(ctx context.Context, req model.AddCodingQuestionRequest) error {
	if err := c.doJSON(ctx, http.MethodPost, c.codeBase+"/api/code/questions", req, nil, false); err != nil {
		return fmt.Errorf("add coding question: %w", err)
	}
	return nil
}
