package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/avelarde/attendctl-go/internal/core/domain"
	"github.com/avelarde/attendctl-go/internal/telemetry/logger"
)

// Backend paths the console depends on.
const (
	pathLogin           = "/login"
	pathAttendance      = "/api/attendance"
	pathAttendanceStats = "/api/attendance/stats"
	pathMetrics         = "/metrics"
)

// TokenFunc supplies the current bearer token, or "" when no session
// is active.
type TokenFunc func() string

// Client talks to the attendance backend.
type Client struct {
	mu      sync.RWMutex
	baseURL string
	http    *http.Client
	token   TokenFunc
	logger  logger.Logger
}

// New creates a backend client. token may be nil for a client that
// only ever logs in.
func New(baseURL string, timeout time.Duration, token TokenFunc, log logger.Logger) *Client {
	if token == nil {
		token = func() string { return "" }
	}
	if log == nil {
		log = logger.Default()
	}
	return &Client{
		baseURL: normalizeBaseURL(baseURL),
		token:   token,
		logger:  log,
		http:    &http.Client{Timeout: timeout},
	}
}

// normalizeBaseURL defaults the scheme to http and strips a trailing
// slash so path concatenation never doubles one.
func normalizeBaseURL(baseURL string) string {
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "http://" + baseURL
	}
	return strings.TrimSuffix(baseURL, "/")
}

// BaseURL returns the normalized backend base URL.
func (c *Client) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL
}

// SetBaseURL repoints the client at a different backend. Requests
// already in flight finish against the old address.
func (c *Client) SetBaseURL(baseURL string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.baseURL = normalizeBaseURL(baseURL)
}

// Login exchanges credentials for a token. A backend rejection yields
// domain.ErrAuthFailed carrying the backend's own error message.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	body, err := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return "", fmt.Errorf("marshal login body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL()+pathLogin, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.stampRequest(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", domain.ErrNetwork.WithCause(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", domain.ErrAuthFailed.WithDetails(errorMessage(resp))
	}

	var out struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", domain.ErrAuthFailed.WithDetails("backend returned an unreadable login response").WithCause(err)
	}
	if out.Token == "" {
		return "", domain.ErrAuthFailed.WithDetails("backend returned no token")
	}
	return out.Token, nil
}

// Attendance fetches the stored attendance records.
func (c *Client) Attendance(ctx context.Context) ([]AttendanceRecord, error) {
	var records []AttendanceRecord
	if err := c.getJSON(ctx, pathAttendance, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// AttendanceStats fetches the backend's aggregate counts.
func (c *Client) AttendanceStats(ctx context.Context) (*AttendanceStats, error) {
	var stats AttendanceStats
	if err := c.getJSON(ctx, pathAttendanceStats, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Metrics fetches the raw Prometheus text-exposition payload.
func (c *Client) Metrics(ctx context.Context) ([]byte, error) {
	resp, err := c.get(ctx, pathMetrics)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.ErrNetwork.WithCause(err)
	}
	return payload, nil
}

func (c *Client) get(ctx context.Context, path string) (*http.Response, error) {
	token := c.token()
	if token == "" {
		return nil, domain.ErrNotAuthenticated
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL()+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	c.stampRequest(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, domain.ErrNetwork.WithCause(err)
	}
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		resp.Body.Close()
		return nil, domain.ErrNotAuthenticated.WithDetails(fmt.Sprintf("backend returned status %d", resp.StatusCode))
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := errorMessage(resp)
		resp.Body.Close()
		return nil, domain.ErrNetwork.WithDetails(msg)
	}
	return resp, nil
}

func (c *Client) getJSON(ctx context.Context, path string, target any) error {
	resp, err := c.get(ctx, path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return domain.ErrNetwork.WithDetails("unreadable response body").WithCause(err)
	}
	return nil
}

// stampRequest adds the request ID and user agent.
func (c *Client) stampRequest(req *http.Request) {
	id := "req-" + strings.ToLower(ulid.Make().String())
	req.Header.Set("X-Request-ID", id)
	req.Header.Set("User-Agent", "attendctl/1.0")
	c.logger.Debug("backend request", "method", req.Method, "path", req.URL.Path, "request_id", id)
}

// errorMessage extracts the backend's human-readable error field, or
// falls back to the HTTP status.
func errorMessage(resp *http.Response) string {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
		return body.Error
	}
	return fmt.Sprintf("request failed with status %d", resp.StatusCode)
}
