package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/crmkeeper/internal/client/models"
	"github.com/dmitrijs2005/crmkeeper/internal/common"
	"github.com/dmitrijs2005/crmkeeper/internal/logging"
	"github.com/google/uuid"
)

// maxBodySize caps how much of a reply is read.
const maxBodySize = 8 << 20

type HTTPClient struct {
	baseURL *url.URL
	http    *http.Client
	tokens  TokenSource
	timeout time.Duration
	log     logging.Logger
}

type Option func(*HTTPClient)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

func WithTokenSource(ts TokenSource) Option {
	return func(c *HTTPClient) { c.tokens = ts }
}

// WithTimeout bounds each request; zero leaves the transport default.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.timeout = d }
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

func NewHTTPClient(baseURL string, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse backend url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("backend url %q must be absolute", baseURL)
	}

	if u.Path == "" {
		u.Path = "/"
	}

	c := &HTTPClient{baseURL: u, http: http.DefaultClient}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = logging.Nop()
	}
	return c, nil
}

type request struct {
	method   string
	path     []string
	query    url.Values
	body     any
	auth     bool
	fallback string
}

// meta is the part of the envelope every reply shares.
type meta struct {
	Success *bool  `json:"success"`
	Message string `json:"message"`
}

// send performs r and returns the raw reply body of a successful call. The
// body is nil when the server sent none.
func (c *HTTPClient) send(ctx context.Context, r request) ([]byte, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	u := c.baseURL.JoinPath(r.path...)
	if len(r.query) > 0 {
		u.RawQuery = r.query.Encode()
	}

	var body io.Reader
	if r.body != nil {
		b, err := json.Marshal(r.body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	requestID := uuid.NewString()
	req.Header.Set(common.RequestIDHeaderName, requestID)

	if r.auth && c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return nil, fmt.Errorf("read token: %w", err)
		}
		if token != "" {
			req.Header.Set(common.AuthorizationHeaderName, "Bearer "+token)
		}
	}

	log := c.log.With("request_id", requestID, "method", r.method, "path", u.Path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			log.Debug(ctx, "request aborted", "err", ctxErr)
			return nil, fmt.Errorf("%s %s: %w", r.method, u.Path, ctxErr)
		}
		log.Warn(ctx, "request failed", "err", err)
		return nil, &APIError{Message: transportMessage(err), kind: common.ErrUnavailable}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		log.Warn(ctx, "reading reply failed", "err", err)
		return nil, &APIError{StatusCode: resp.StatusCode, Message: transportMessage(err), kind: common.ErrUnavailable}
	}

	log.Debug(ctx, "request done", "status", resp.StatusCode, "elapsed", time.Since(start))

	// Bodies that are valid JSON but not an object (bare lists) carry no meta.
	var m meta
	valid := json.Valid(raw)
	if valid {
		_ = json.Unmarshal(raw, &m)
	}
	ok := resp.StatusCode >= 200 && resp.StatusCode < 300

	// An empty success body (204 on delete) carries no data.
	if ok && len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}

	switch {
	case !ok:
		msg := r.fallback
		if m.Message != "" {
			msg = m.Message
		}
		log.Info(ctx, "request rejected", "status", resp.StatusCode, "message", msg)
		return nil, &APIError{StatusCode: resp.StatusCode, Message: msg, kind: kindForStatus(resp.StatusCode)}
	case !valid:
		log.Warn(ctx, "malformed reply", "bytes", len(raw))
		return nil, &APIError{StatusCode: resp.StatusCode, Message: r.fallback, kind: common.ErrMalformedResponse}
	case m.Success != nil && !*m.Success:
		msg := m.Message
		if msg == "" {
			msg = r.fallback
		}
		log.Info(ctx, "request unsuccessful", "status", resp.StatusCode, "message", msg)
		return nil, &APIError{StatusCode: resp.StatusCode, Message: msg, kind: common.ErrRejected}
	}

	return raw, nil
}

// transportMessage strips the url.Error prefix, leaving the cause.
func transportMessage(err error) string {
	if ue, ok := err.(*url.Error); ok && ue.Err != nil {
		return ue.Err.Error()
	}
	return err.Error()
}

func call[T any](ctx context.Context, c *HTTPClient, r request) (models.Result[T], error) {
	var zero models.Result[T]

	raw, err := c.send(ctx, r)
	if err != nil {
		return zero, err
	}

	if len(raw) == 0 {
		return zero, nil
	}

	var env models.Envelope[T]
	if err := json.Unmarshal(raw, &env); err != nil {
		return zero, &APIError{StatusCode: http.StatusOK, Message: r.fallback, kind: common.ErrMalformedResponse}
	}
	return models.Result[T]{Message: env.Message, Data: env.Data, Count: env.Count}, nil
}
