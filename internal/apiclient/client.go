// Package apiclient provides the HTTP client for the CVFiller API: resume
// upload and parsing, advisory analysis, authentication and remote resume
// persistence. It owns the error taxonomy callers branch on: a well-formed
// error response from the service surfaces as *RemoteError with the
// server-supplied detail; anything else (network unreachable, non-JSON
// body) is a wrapped transport error.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/cvfiller/internal/resume"
	"github.com/jonathan/cvfiller/internal/types"
)

// DefaultTimeout bounds a single API call. Parsing goes through the
// extraction model, so it is deliberately generous.
const DefaultTimeout = 90 * time.Second

// RemoteError is a well-formed rejection from the service. State-wise it
// is indistinguishable from a transport failure (nothing was mutated), but
// it carries a message the user should see verbatim. Status is the HTTP
// status of the rejection, or zero when the failure was reported inside a
// 2xx body.
type RemoteError struct {
	Status int
	Detail string
}

func (e *RemoteError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	if e.Status == 0 {
		return "request rejected by server"
	}
	return fmt.Sprintf("request rejected with status %d", e.Status)
}

// Client talks to one CVFiller API server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the given base URL, e.g. "http://localhost:8000".
func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
}

// NewWithHTTPClient creates a client with a caller-supplied http.Client,
// used by tests and by callers that need custom transports.
func NewWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{baseURL: baseURL, httpClient: httpClient}
}

// Login authenticates with email and password.
func (c *Client) Login(ctx context.Context, email, password string) (*types.LoginResponse, error) {
	var resp types.LoginResponse
	err := c.postJSON(ctx, "/api/auth/login", "", types.LoginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates a new account and returns the same envelope as Login.
func (c *Client) Register(ctx context.Context, req types.RegisterRequest) (*types.LoginResponse, error) {
	var resp types.LoginResponse
	if err := c.postJSON(ctx, "/api/auth/register", "", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Me validates a token against the remote identity check.
func (c *Client) Me(ctx context.Context, token string) (*types.User, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/auth/me", token, nil)
	if err != nil {
		return nil, err
	}

	var resp types.MeResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	if resp.User == nil {
		return nil, &RemoteError{Status: http.StatusUnauthorized, Detail: "session is no longer valid"}
	}
	return resp.User, nil
}

// ParseResume uploads a resume file and returns the raw extraction
// payload. The token is attached when non-empty.
func (c *Client) ParseResume(ctx context.Context, filename string, file io.Reader, token string) (*types.ParseResponse, error) {
	req, err := c.newUploadRequest(ctx, "/api/parse-resume", filename, file, token)
	if err != nil {
		return nil, err
	}

	var resp types.ParseResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	if resp.Status != types.StatusSuccess {
		return nil, &RemoteError{Detail: nonEmpty(resp.Detail, "resume parsing failed")}
	}
	return &resp, nil
}

// ResumeAdvice uploads a resume file and returns the advisory analysis.
func (c *Client) ResumeAdvice(ctx context.Context, filename string, file io.Reader, token string) (*types.Advice, error) {
	req, err := c.newUploadRequest(ctx, "/api/resume-advice", filename, file, token)
	if err != nil {
		return nil, err
	}

	var resp types.AdviceResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	if resp.Status != types.StatusSuccess || resp.Advice == nil {
		return nil, &RemoteError{Detail: nonEmpty(resp.Detail, "advice generation failed")}
	}
	resp.Advice.Clamp()
	return resp.Advice, nil
}

// CreateResume persists a record for the first time and returns the
// assigned identifier.
func (c *Client) CreateResume(ctx context.Context, token string, rec resume.Record, sourceFilename string) (uuid.UUID, error) {
	body := types.SaveResumeRequest{Record: rec, SourceFilename: sourceFilename}
	var resp types.SaveResumeResponse
	if err := c.postJSON(ctx, "/api/resumes", token, body, &resp); err != nil {
		return uuid.Nil, err
	}
	return resp.ID, nil
}

// UpdateResume updates a previously created record in place.
func (c *Client) UpdateResume(ctx context.Context, token string, id uuid.UUID, rec resume.Record) error {
	payload, err := json.Marshal(types.SaveResumeRequest{Record: rec})
	if err != nil {
		return fmt.Errorf("failed to encode resume: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPut, "/api/resumes/"+id.String(), token, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	var resp types.SaveResumeResponse
	return c.do(req, &resp)
}

// GetResume fetches one stored resume.
func (c *Client) GetResume(ctx context.Context, token string, id uuid.UUID) (*types.StoredResume, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/resumes/"+id.String(), token, nil)
	if err != nil {
		return nil, err
	}

	var resp types.ResumeResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	if resp.Resume == nil {
		return nil, &RemoteError{Detail: "resume missing from response"}
	}
	return resp.Resume, nil
}

// ListResumes fetches the caller's stored resumes.
func (c *Client) ListResumes(ctx context.Context, token string) ([]types.StoredResume, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/resumes", token, nil)
	if err != nil {
		return nil, err
	}

	var resp types.ResumeListResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	return resp.Resumes, nil
}

// DeleteResume removes one stored resume.
func (c *Client) DeleteResume(ctx context.Context, token string, id uuid.UUID) error {
	req, err := c.newRequest(ctx, http.MethodDelete, "/api/resumes/"+id.String(), token, nil)
	if err != nil {
		return err
	}
	var resp map[string]any
	return c.do(req, &resp)
}

// postJSON sends a JSON body and decodes the JSON response.
func (c *Client) postJSON(ctx context.Context, path, token string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, token, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

// newUploadRequest builds a multipart upload with a single "file" part.
func (c *Client) newUploadRequest(ctx context.Context, path, filename string, file io.Reader, token string) (*http.Request, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create multipart body: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("failed to read upload file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, token, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req, nil
}

func (c *Client) newRequest(ctx context.Context, method, path, token string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// do executes the request and decodes a successful JSON response into out.
// Non-2xx responses with a decodable JSON error body become *RemoteError;
// everything else is a transport error.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return remoteErrorFromBody(resp.StatusCode, data)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// remoteErrorFromBody extracts the server-supplied message from an error
// body. The service reports either {"detail": ...} or {"error": ...}.
func remoteErrorFromBody(status int, body []byte) error {
	var envelope struct {
		Detail string `json:"detail"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		if detail := nonEmpty(envelope.Detail, envelope.Error); detail != "" {
			return &RemoteError{Status: status, Detail: detail}
		}
	}
	return fmt.Errorf("unexpected response status %d", status)
}

func nonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
