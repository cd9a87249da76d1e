package petapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/five82/petdesk/internal/pets"
)

// Gateway defines the backend operations the collection depends on.
// This interface is implemented by *Client and can be faked in tests.
type Gateway interface {
	List(ctx context.Context) ([]pets.Pet, error)
	Create(ctx context.Context, in pets.Input) (pets.Pet, error)
	Remove(ctx context.Context, id int64) error
}

// Ensure Client implements Gateway at compile time.
var _ Gateway = (*Client)(nil)

// Log is the subset of the application logger the client writes to.
type Log interface {
	Debug(msg string, fields ...zap.Field)
}

// Client talks to the pet store REST backend.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	timeout   time.Duration
	userAgent string
	log       Log
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithTimeout bounds every backend call. Expiry is reported as ErrUnavailable.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if strings.TrimSpace(ua) != "" {
			c.userAgent = ua
		}
	}
}

// WithLogger attaches a logger for request tracing.
func WithLogger(l Log) Option {
	return func(c *Client) {
		c.log = l
	}
}

const (
	defaultBackendURL = "http://localhost:8000"
	defaultUserAgent  = "petdesk/0.1"
	requestTimeout    = 5 * time.Second
	maxErrorBody      = 64 << 10
	maxResponseBody   = 8 << 20
)

// NewClient builds a Client for the backend at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:   base,
		http:      &http.Client{},
		timeout:   requestTimeout,
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Origin returns the backend URL that absolute image paths resolve against.
func (c *Client) Origin() string {
	if c == nil || c.baseURL == nil {
		return defaultBackendURL
	}
	return c.baseURL.String()
}

// List retrieves every pet from GET /pets.
func (c *Client) List(ctx context.Context) ([]pets.Pet, error) {
	if c == nil {
		return nil, &UnavailableError{Op: OpList, Err: fmt.Errorf("client is nil")}
	}
	var payload []pets.Pet
	if err := c.do(ctx, OpList, http.MethodGet, "pets", nil, "", &payload); err != nil {
		return nil, err
	}
	seen := make(map[int64]struct{}, len(payload))
	for i, p := range payload {
		if p.ID <= 0 {
			return nil, &UnavailableError{Op: OpList, StatusCode: http.StatusOK, Err: fmt.Errorf("decode response: pet at index %d has no id", i)}
		}
		if _, dup := seen[p.ID]; dup {
			return nil, &UnavailableError{Op: OpList, StatusCode: http.StatusOK, Err: fmt.Errorf("decode response: duplicate pet id %d", p.ID)}
		}
		seen[p.ID] = struct{}{}
	}
	return pets.NormalizeAll(payload), nil
}

// Create submits a multipart form to POST /pets and returns the stored pet.
func (c *Client) Create(ctx context.Context, in pets.Input) (pets.Pet, error) {
	if c == nil {
		return pets.Pet{}, &UnavailableError{Op: OpCreate, Err: fmt.Errorf("client is nil")}
	}
	body, contentType, err := encodeForm(in)
	if err != nil {
		return pets.Pet{}, &UnavailableError{Op: OpCreate, Err: fmt.Errorf("encode form: %w", err)}
	}
	var created pets.Pet
	if err := c.do(ctx, OpCreate, http.MethodPost, "pets", body, contentType, &created); err != nil {
		return pets.Pet{}, err
	}
	if created.ID <= 0 {
		return pets.Pet{}, &UnavailableError{Op: OpCreate, StatusCode: http.StatusOK, Err: fmt.Errorf("decode response: created pet has no id")}
	}
	return created, nil
}

// Remove deletes a pet via DELETE /pets/{id}. Success is signalled by status alone.
func (c *Client) Remove(ctx context.Context, id int64) error {
	if c == nil {
		return &UnavailableError{Op: OpRemove, Err: fmt.Errorf("client is nil")}
	}
	return c.do(ctx, OpRemove, http.MethodDelete, "pets/"+strconv.FormatInt(id, 10), nil, "", nil)
}

func (c *Client) do(ctx context.Context, op, method, path string, body io.Reader, contentType string, dest any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	rel := &url.URL{Path: c.baseURL.Path + "/" + path}
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), body)
	if err != nil {
		return &UnavailableError{Op: op, Err: fmt.Errorf("create request: %w", err)}
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.trace(op, method, reqURL, requestID, 0, started)
		return &UnavailableError{Op: op, Err: fmt.Errorf("execute request: %w", err)}
	}
	defer func() { _ = resp.Body.Close() }()
	c.trace(op, method, reqURL, requestID, resp.StatusCode, started)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &UnavailableError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Message:    readErrorText(resp.Body),
			Err:        fmt.Errorf("api %s returned status %d", reqURL.Path, resp.StatusCode),
		}
	}
	if dest == nil {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
		return nil
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody+1))
	if err != nil {
		return &UnavailableError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}
	if len(raw) > maxResponseBody {
		return &UnavailableError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("read response: body exceeds %d bytes", maxResponseBody)}
	}
	// Unmarshal rejects trailing data after the first value.
	if err := json.Unmarshal(raw, dest); err != nil {
		return &UnavailableError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func (c *Client) trace(op, method string, u *url.URL, requestID string, status int, started time.Time) {
	if c.log == nil {
		return
	}
	c.log.Debug("backend call",
		zap.String("op", op),
		zap.String("method", method),
		zap.String("url", u.String()),
		zap.String("request_id", requestID),
		zap.Int("status", status),
		zap.Duration("elapsed", time.Since(started)),
	)
}

func encodeForm(in pets.Input) (io.Reader, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	fields := []struct{ name, value string }{
		{"name", strings.TrimSpace(in.Name)},
		{"type", strings.ToLower(strings.TrimSpace(in.Type))},
		{"price", strings.TrimSpace(in.Price)},
		{"description", strings.TrimSpace(in.Description)},
	}
	for _, f := range fields {
		if err := w.WriteField(f.name, f.value); err != nil {
			return nil, "", err
		}
	}
	if in.Image != nil && len(in.Image.Content) > 0 {
		filename := filepath.Base(strings.TrimSpace(in.Image.Filename))
		if filename == "." || filename == string(filepath.Separator) {
			filename = "image"
		}
		part, err := w.CreateFormFile("image", filename)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(in.Image.Content); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}

// readErrorText extracts the server's error text, unwrapping {"error": "..."} bodies.
func readErrorText(r io.Reader) string {
	raw, _ := io.ReadAll(io.LimitReader(r, maxErrorBody))
	text := strings.TrimSpace(string(raw))
	if text == "" {
		return ""
	}
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && strings.TrimSpace(payload.Error) != "" {
		return strings.TrimSpace(payload.Error)
	}
	return text
}

func parseBaseURL(baseURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		trimmed = defaultBackendURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse backend url %q: %w", baseURL, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse backend url %q: missing host", baseURL)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
