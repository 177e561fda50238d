package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/careerit/examterm/internal/auth"
	"github.com/careerit/examterm/internal/model"
)

// Login exchanges credentials for a bearer token and installs the
// resulting credential on the client.
func (c *Client) Login(ctx context.Context, email, password string) (*auth.Credential, error) {
	var resp model.LoginResponse
	req := model.LoginRequest{Email: email, Password: password}
	if err := c.doJSON(ctx, http.MethodPost, c.portalBase+"/api/login", req, &resp, false); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	cred := auth.NewCredential(resp.Token, resp.Student.ID, resp.Student.Name, resp.Student.Role)
	c.cred = cred
	return cred, nil
}

// Profile fetches the dashboard payload for the logged-in account.
func (c *Client) Profile(ctx context.Context) (*model.Profile, error) {
	var p model.Profile
	if err := c.doJSON(ctx, http.MethodGet, c.portalBase+"/api/student-dashboard", nil, &p, true); err != nil {
		return nil, fmt.Errorf("fetch profile: %w", err)
	}
	return &p, nil
}

// FetchTest retrieves the ordered question set for today's MCQ test.
func (c *Client) FetchTest(ctx context.Context) ([]model.Question, error) {
	var questions []model.Question
	if err := c.doJSON(ctx, http.MethodGet, c.portalBase+"/api/student/test", nil, &questions, true); err != nil {
		return nil, fmt.Errorf("fetch test: %w", err)
	}
	return questions, nil
}

// SubmitTest records a finished attempt with the portal. The raw
// selections are sent, not a locally computed score: the portal is the
// authority of record. A 403 means an attempt was already recorded
// today and is surfaced as ErrAlreadySubmitted.
func (c *Client) SubmitTest(ctx context.Context, req model.SubmitTestRequest) error {
	err := c.doJSON(ctx, http.MethodPost, c.portalBase+"/api/student/submit-test", req, nil, true)
	if err == nil {
		return nil
	}
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusForbidden {
		return fmt.Errorf("submit test: %w", ErrAlreadySubmitted)
	}
	return fmt.Errorf("submit test: %w", err)
}

// Results lists the student's recorded attempts, newest first.
func (c *Client) Results(ctx context.Context) ([]model.ResultEntry, error) {
	var entries []model.ResultEntry
	if err := c.doJSON(ctx, http.MethodGet, c.portalBase+"/api/student/results", nil, &entries, true); err != nil {
		return nil, fmt.Errorf("fetch results: %w", err)
	}
	return entries, nil
}

// ResultSummary lists score history rows for the dashboard trend.
func (c *Client) ResultSummary(ctx context.Context) ([]model.ResultEntry, error) {
	var entries []model.ResultEntry
	if err := c.doJSON(ctx, http.MethodGet, c.portalBase+"/api/student/result-summary", nil, &entries, true); err != nil {
		return nil, fmt.Errorf("fetch result summary: %w", err)
	}
	return entries, nil
}
