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
	"strings"
	"time"

	"github.com/dmitrijs2005/booky/internal/common"
	"github.com/dmitrijs2005/booky/internal/logging"
	"github.com/google/uuid"
)

// maxErrorBody bounds how much of an error response is read for a message.
const maxErrorBody = 64 << 10

// TokenSource yields the raw credential to attach, or "" for none.
type TokenSource interface {
	Token() string
}

// Gateway dispatches every outbound API call. It attaches the bearer
// credential when one is present, unwraps JSON payloads and turns failures
// into *APIError or *NetworkError. It never retries.
type Gateway struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
	timeout    time.Duration
	log        logging.Logger
}

type GatewayOption func(*Gateway)

func WithHTTPClient(c *http.Client) GatewayOption {
	return func(g *Gateway) { g.httpClient = c }
}

// WithTimeout bounds each call; zero disables the per-call deadline.
func WithTimeout(d time.Duration) GatewayOption {
	return func(g *Gateway) { g.timeout = d }
}

func WithLogger(l logging.Logger) GatewayOption {
	return func(g *Gateway) { g.log = l }
}

// NewGateway builds a gateway for the API rooted at baseURL
// (e.g. "http://localhost:8080/api"). tokens may be nil.
func NewGateway(baseURL string, tokens TokenSource, opts ...GatewayOption) *Gateway {
	g := &Gateway{
		baseURL:    strings.TrimRight(baseURL, "/"),
		tokens:     tokens,
		httpClient: http.DefaultClient,
		log:        logging.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Gateway) Get(ctx context.Context, path string, query url.Values, out any) error {
	return g.Do(ctx, http.MethodGet, path, query, nil, out)
}

func (g *Gateway) Post(ctx context.Context, path string, body, out any) error {
	return g.Do(ctx, http.MethodPost, path, nil, body, out)
}

func (g *Gateway) Put(ctx context.Context, path string, body, out any) error {
	return g.Do(ctx, http.MethodPut, path, nil, body, out)
}

func (g *Gateway) Delete(ctx context.Context, path string) error {
	return g.Do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// Do performs one request. body, when non-nil, is sent as JSON; out, when
// non-nil, receives the decoded JSON payload. An empty success body leaves
// out untouched.
func (g *Gateway) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	req, err := g.newRequest(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	requestID := req.Header.Get(common.RequestIDHeaderName)

	started := time.Now()
	resp, err := g.httpClient.Do(req)
	if err != nil {
		g.log.Warn(ctx, "request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return &NetworkError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	g.log.Debug(ctx, "request finished",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(started),
		"request_id", requestID,
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{
			Method:   method,
			Path:     path,
			Status:   resp.StatusCode,
			Category: categorize(resp.StatusCode),
			Message:  extractMessage(resp.Header.Get("Content-Type"), raw),
		}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

func (g *Gateway) newRequest(ctx context.Context, method, path string, query url.Values, body any) (*http.Request, error) {
	target := g.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("build %s %s request: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(common.RequestIDHeaderName, uuid.NewString())

	if g.tokens != nil {
		if token := g.tokens.Token(); token != "" {
			req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
		}
	}
	return req, nil
}

// extractMessage returns the "message" string of a JSON body, or a short
// plain-text body. Generic status text is not a message.
func extractMessage(contentType string, raw []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil {
		return strings.TrimSpace(payload.Message)
	}

	if strings.HasPrefix(contentType, "text/plain") {
		if s := strings.TrimSpace(string(raw)); s != "" && len(s) <= 200 {
			return s
		}
	}
	return ""
}
