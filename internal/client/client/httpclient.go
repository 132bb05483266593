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
	"sync"
	"time"

	"github.com/dmitrijs2005/posclient/internal/client/metrics"
	"github.com/dmitrijs2005/posclient/internal/client/notify"
	"github.com/dmitrijs2005/posclient/internal/logging"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const (
	defaultTimeout  = 30 * time.Second
	requestIDHeader = "X-Request-ID"
)

// TokenSource supplies the persisted token. It returns an error when there is
// none.
type TokenSource interface {
	GetToken(ctx context.Context) (string, error)
}

type HTTPClient struct {
	baseURL  *url.URL
	http     *http.Client
	logger   logging.Logger
	debug    bool
	timeout  time.Duration
	tokens   TokenSource
	limiter  *rate.Limiter
	metrics  metrics.Recorder
	notifier notify.Notifier

	mu             sync.RWMutex
	header         http.Header
	onUnauthorized func(ctx context.Context)
}

// NewHTTPClient binds a client to baseURL, which must be an absolute http or
// https URL. Resources passed to the verb helpers are resolved against it.
func NewHTTPClient(baseURL string, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, baseURL)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}

	c := &HTTPClient{
		baseURL:  u,
		http:     &http.Client{Timeout: defaultTimeout},
		logger:   logging.Discard(),
		metrics:  metrics.Nop{},
		notifier: notify.Nop{},
		header:   http.Header{},
	}
	c.header.Set("Accept", "application/json")

	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalized base URL.
func (c *HTTPClient) BaseURL() string {
	return c.baseURL.String()
}

// SetAuthHeader sets "Authorization: Bearer <token>" for all later requests.
// An empty token falls back to the token source; if that has nothing either,
// the Authorization header is removed. Accept is always application/json.
func (c *HTTPClient) SetAuthHeader(ctx context.Context, token string) {
	if token == "" && c.tokens != nil {
		t, err := c.tokens.GetToken(ctx)
		if err != nil {
			c.logger.Debug(ctx, "no stored token for auth header", "error", err)
		}
		token = t
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.header.Set("Accept", "application/json")
	if token == "" {
		c.header.Del("Authorization")
		return
	}
	c.header.Set("Authorization", "Bearer "+token)
}

// ClearAuthHeader removes the Authorization header.
func (c *HTTPClient) ClearAuthHeader() {
	c.mu.Lock()
	c.header.Del("Authorization")
	c.mu.Unlock()
}

// AuthHeader returns the current Authorization header value.
func (c *HTTPClient) AuthHeader() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.header.Get("Authorization")
}

// OnUnauthorized registers the hook run after any 401 response.
func (c *HTTPClient) OnUnauthorized(fn func(ctx context.Context)) {
	c.mu.Lock()
	c.onUnauthorized = fn
	c.mu.Unlock()
}

func (c *HTTPClient) Get(ctx context.Context, resource string) (*Response, error) {
	return c.do(ctx, "GET", http.MethodGet, resource, nil)
}

func (c *HTTPClient) Post(ctx context.Context, resource string, body any) (*Response, error) {
	return c.do(ctx, "POST", http.MethodPost, resource, body)
}

func (c *HTTPClient) Put(ctx context.Context, resource string, body any) (*Response, error) {
	return c.do(ctx, "PUT", http.MethodPut, resource, body)
}

// Update sends PUT resource/slug. The slug is joined as is, so "7/lines"
// addresses a nested path.
func (c *HTTPClient) Update(ctx context.Context, resource, slug string, body any) (*Response, error) {
	return c.do(ctx, "UPDATE", http.MethodPut, strings.TrimRight(resource, "/")+"/"+strings.TrimLeft(slug, "/"), body)
}

func (c *HTTPClient) Delete(ctx context.Context, resource string) (*Response, error) {
	return c.do(ctx, "DELETE", http.MethodDelete, resource, nil)
}

func (c *HTTPClient) resolve(resource string) (*url.URL, error) {
	u, err := c.baseURL.Parse(strings.TrimLeft(resource, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid resource %q: %w", resource, err)
	}
	return u, nil
}

func encodeBody(body any) (io.Reader, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case string:
		return strings.NewReader(b), nil
	case []byte:
		return bytes.NewReader(b), nil
	case json.RawMessage:
		return bytes.NewReader(b), nil
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, fmt.Errorf("encode body: %w", err)
		}
		return bytes.NewReader(data), nil
	}
}

// do sends one request. verb names the call in the debug trace; method is the
// HTTP method on the wire.
func (c *HTTPClient) do(ctx context.Context, verb, method, resource string, body any) (*Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	u, err := c.resolve(resource)
	if err != nil {
		return nil, err
	}
	payload, err := encodeBody(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), payload)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	c.mu.RLock()
	for k, v := range c.header {
		req.Header[k] = append([]string(nil), v...)
	}
	c.mu.RUnlock()

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := uuid.NewString()
	req.Header.Set(requestIDHeader, requestID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.RecordRequest(method, 0, time.Since(start))
		rerr := &ResponseError{Method: method, Resource: resource, Kind: ErrUnavailable, Err: err}
		c.trace(ctx, verb, "FAIL", resource, requestID, 0, err.Error())
		c.handleFailure(ctx, rerr)
		return nil, rerr
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	c.metrics.RecordRequest(method, resp.StatusCode, time.Since(start))
	if err != nil {
		rerr := &ResponseError{Method: method, Resource: resource, Kind: ErrUnavailable, Err: fmt.Errorf("read body: %w", err)}
		c.trace(ctx, verb, "FAIL", resource, requestID, resp.StatusCode, err.Error())
		c.handleFailure(ctx, rerr)
		return nil, rerr
	}

	response := &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: data}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		c.trace(ctx, verb, "SUCCESS", resource, requestID, resp.StatusCode, string(data))
		return response, nil
	}

	c.trace(ctx, verb, "FAIL", resource, requestID, resp.StatusCode, string(data))
	rerr := &ResponseError{Method: method, Resource: resource, Response: response, Kind: kindForStatus(resp.StatusCode)}
	c.handleFailure(ctx, rerr)
	return nil, rerr
}

func (c *HTTPClient) trace(ctx context.Context, verb, outcome, resource, requestID string, status int, payload string) {
	if !c.debug {
		return
	}
	c.logger.Debug(ctx, fmt.Sprintf("%s %s - %s", verb, outcome, resource),
		"request_id", requestID,
		"status", status,
		"payload", payload,
	)
}

// handleFailure applies the failure policy: a 401 goes to the unauthorized
// hook, anything else except caller cancellation becomes an error notice.
func (c *HTTPClient) handleFailure(ctx context.Context, rerr *ResponseError) {
	if errors.Is(rerr, ErrUnauthorized) {
		c.mu.RLock()
		hook := c.onUnauthorized
		c.mu.RUnlock()
		if hook != nil {
			hook(ctx)
		}
		return
	}

	if errors.Is(rerr, context.Canceled) {
		return
	}

	text := rerr.Message()
	switch {
	case text != "":
	case rerr.Response != nil:
		text = http.StatusText(rerr.Response.StatusCode)
	default:
		text = rerr.Kind.Error()
	}
	c.notifier.Notify(ctx, notify.Notice{Level: notify.LevelError, Key: notify.KeyRequestFailed, Args: []any{text}})
}
