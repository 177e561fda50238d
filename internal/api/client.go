package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/careerit/examterm/internal/auth"
	"github.com/careerit/examterm/internal/config"
)

// Client talks to the remote exam portal. All durable state (questions,
// submissions, scores, roles) lives behind it; the client performs
// one-shot requests with no automatic retries. Callers pass a context
// tied to their screen's lifetime so a late response for a torn-down
// screen is simply abandoned.
type Client struct {
	portalBase string
	codeBase   string
	httpClient *http.Client
	cred       *auth.Credential
	log        zerolog.Logger
}

// NewClient creates a portal client. cred may be nil until login; Login
// installs the credential it obtains.
func NewClient(cfg *config.Config, cred *auth.Credential, log zerolog.Logger) *Client {
	return &Client{
		portalBase: cfg.PortalBaseURL,
		codeBase:   cfg.CodeBaseURL,
		httpClient: &http.Client{Timeout: cfg.HTTPTimeout},
		cred:       cred,
		log:        log.With().Str("component", "api_client").Logger(),
	}
}

// Credential returns the currently installed credential, nil before login.
func (c *Client) Credential() *auth.Credential {
	return c.cred
}

// SetCredential installs the credential used for bearer auth.
func (c *Client) SetCredential(cred *auth.Credential) {
	c.cred = cred
}

// doJSON performs one JSON request. When authed is true the installed
// credential is required and sent as a bearer header. out may be nil for
// fire-and-forget endpoints.
func (c *Client) doJSON(ctx context.Context, method, url string, body, out interface{}, authed bool) error {
	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if err := c.prepare(req, authed); err != nil {
		return err
	}

	return c.send(req, out)
}

// doMultipartFile uploads a single local file as multipart/form-data
// under the given field name.
func (c *Client) doMultipartFile(ctx context.Context, url, field, path string, out interface{}) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open upload file: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, filepath.Base(path))
	if err != nil {
		return fmt.Errorf("build multipart: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("read upload file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("finish multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if err := c.prepare(req, true); err != nil {
		return err
	}

	return c.send(req, out)
}

// prepare stamps tracing and auth headers on an outgoing request.
func (c *Client) prepare(req *http.Request, authed bool) error {
	req.Header.Set("X-Request-ID", uuid.New().String())
	if !authed {
		return nil
	}
	if !c.cred.Valid(time.Now()) {
		return auth.ErrNotLoggedIn
	}
	req.Header.Set("Authorization", "Bearer "+c.cred.Token)
	return nil
}

func (c *Client) send(req *http.Request, out interface{}) error {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Str("method", req.Method).Str("url", req.URL.String()).Msg("request failed")
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("request done")

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newError(resp.StatusCode, raw)
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
