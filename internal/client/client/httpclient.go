package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/VinkoRobi2/CameYa-sub001/internal/logging"
)

const (
	RequestIDHeader = "X-Request-ID"

	// maxBody caps how much of a response is read.
	maxBody = 4 << 20
)

type HTTPClient struct {
	baseURL *url.URL
	http    *http.Client
	tokens  TokenSource
	log     logging.Logger
}

type Option func(*HTTPClient)

func WithHTTPClient(h *http.Client) Option {
	return func(c *HTTPClient) { c.http = h }
}

func WithTokenSource(ts TokenSource) Option {
	return func(c *HTTPClient) { c.tokens = ts }
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

func NewHTTPClient(baseURL string, timeout time.Duration, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse api url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("api url %q: scheme must be http or https", baseURL)
	}

	c := &HTTPClient{
		baseURL: u,
		http:    &http.Client{Timeout: timeout},
		tokens:  TokenFunc(func() string { return "" }),
		log:     logging.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	c.log = c.log.With("component", "api")
	return c, nil
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (LoginResult, error) {
	body := map[string]string{"email": email, "password": password}

	var raw map[string]any
	if err := c.do(ctx, http.MethodPost, "/login", nil, body, false, &raw); err != nil {
		return LoginResult{}, err
	}

	token := firstString(raw, "token", "access_token")
	if token == "" {
		return LoginResult{}, fmt.Errorf("%w: login response has no token", ErrBadResponse)
	}
	return LoginResult{Token: token, Raw: raw}, nil
}

func (c *HTTPClient) Register(ctx context.Context, req RegisterRequest) (string, error) {
	return c.message(ctx, http.MethodPost, "/register", nil, req)
}

// VerifyEmail confirms the address behind a verification token.
func (c *HTTPClient) VerifyEmail(ctx context.Context, token string) (string, error) {
	return c.message(ctx, http.MethodPost, "/verify", url.Values{"token": {token}}, nil)
}

func (c *HTTPClient) ResendVerification(ctx context.Context, email string) (string, error) {
	return c.message(ctx, http.MethodPost, "/auth/resend-verification", nil, map[string]string{"email": email})
}

func (c *HTTPClient) CompleteStudentProfile(ctx context.Context, p StudentProfile) (map[string]any, error) {
	body := struct {
		StudentProfile
		ProfileComplete bool `json:"perfil_completo"`
	}{p, p.Complete()}

	var out map[string]any
	if err := c.do(ctx, http.MethodPatch, "/protected/completar-perfil", nil, body, true, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) CompleteEmployerProfile(ctx context.Context, p EmployerProfile) (map[string]any, error) {
	body := struct {
		EmployerProfile
		AccountType         string `json:"tipo_cuenta"`
		CompletedOnboarding bool   `json:"completed_onboarding"`
	}{p, AccountEmployer, true}

	var out map[string]any
	if err := c.do(ctx, http.MethodPatch, "/protected/completar-perfil-empleador", nil, body, true, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) Jobs(ctx context.Context, page, limit int) (JobsPage, error) {
	q := url.Values{
		"page":  {strconv.Itoa(page)},
		"limit": {strconv.Itoa(limit)},
	}
	var out JobsPage
	if err := c.do(ctx, http.MethodGet, "/protected/todos_trabajos", q, nil, true, &out); err != nil {
		return JobsPage{}, err
	}
	if out.TotalPages < 1 {
		out.TotalPages = 1
	}
	return out, nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	var out struct {
		Status string `json:"status"`
	}
	if err := c.do(ctx, http.MethodGet, "/health", nil, nil, false, &out); err != nil {
		return err
	}
	if !strings.EqualFold(out.Status, "ok") {
		return ErrUnavailable
	}
	return nil
}

func (c *HTTPClient) message(ctx context.Context, method, path string, q url.Values, body any) (string, error) {
	var out map[string]any
	if err := c.do(ctx, method, path, q, body, false, &out); err != nil {
		return "", err
	}
	return firstString(out, "message"), nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, q url.Values, body any, auth bool, out any) error {
	u := c.baseURL.JoinPath(path)
	if len(q) > 0 {
		u.RawQuery = q.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s body: %w", path, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("build %s request: %w", path, err)
	}
	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth {
		token := c.tokens.Token()
		if token == "" {
			return ErrUnauthorized
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(ctxErr, context.DeadlineExceeded) {
			return ctxErr
		}
		c.log.Warn(ctx, "request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return fmt.Errorf("%w: read response: %v", ErrUnavailable, err)
	}
	c.log.Debug(ctx, "request done",
		"method", method, "path", path, "status", resp.StatusCode,
		"request_id", requestID, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{
			Status:    resp.StatusCode,
			Message:   errorMessage(data),
			RequestID: requestID,
		}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrBadResponse, path, err)
	}
	return nil
}

// errorMessage pulls the human-readable reason out of an error body. The
// backend uses "message"; some handlers answer with "error".
func errorMessage(data []byte) string {
	var m map[string]any
	if json.Unmarshal(data, &m) != nil {
		return ""
	}
	return firstString(m, "message", "error")
}

func firstString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := m[k].(string); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}
