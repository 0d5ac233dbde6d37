package rws

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/clinkit/rwsgo/rws"

// Response is the raw result of an RWS request. RWS speaks ODM text,
// so the body is returned undecoded for the caller.
type Response struct {
	StatusCode int
	Body       string
	Header     http.Header
}

// Connection is an authenticated connection to a Rave Web Services
// endpoint. A Connection is safe to reuse across requests; it holds no
// per-request state.
type Connection struct {
	baseURL  string
	username string
	password string

	httpClient   *http.Client
	logger       zerolog.Logger
	tracer       trace.Tracer
	maxTries     uint
	gzipRequests bool
}

// Option configures a Connection.
type Option func(*Connection)

// WithHTTPClient swaps the transport, e.g. for a caching client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Connection) {
		c.httpClient = client
	}
}

// WithLogger attaches a logger for request-level events.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Connection) {
		c.logger = logger
	}
}

// WithMaxTries retries transient failures up to n attempts in total.
func WithMaxTries(n uint) Option {
	return func(c *Connection) {
		c.maxTries = n
	}
}

// WithTimeout sets the per-request timeout on the default client.
func WithTimeout(d time.Duration) Option {
	return func(c *Connection) {
		c.httpClient.Timeout = d
	}
}

// WithGzipRequests compresses posted document bodies.
func WithGzipRequests() Option {
	return func(c *Connection) {
		c.gzipRequests = true
	}
}

// NewConnection creates a connection to the RWS endpoint at domain,
// e.g. "https://innovate.mdsol.com".
func NewConnection(domain, username, password string, opts ...Option) *Connection {
	c := &Connection{
		baseURL:    strings.TrimRight(domain, "/") + "/RaveWebServices",
		username:   username,
		password:   password,
		httpClient: &http.Client{Timeout: 2 * time.Minute},
		logger:     zerolog.Nop(),
		tracer:     otel.Tracer(tracerName),
		maxTries:   1,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SendRequest executes req against the connection. Network errors and
// 5xx responses are retried with exponential backoff up to the
// configured tries; 4xx RWS responses are permanent and returned as a
// *ResponseError.
func (c *Connection) SendRequest(ctx context.Context, req Request) (*Response, error) {
	ctx, span := c.tracer.Start(ctx, "rws.SendRequest", trace.WithAttributes(
		attribute.String("rws.method", req.Method()),
		attribute.String("rws.path", req.URLPath()),
	))
	defer span.End()

	operation := func() (*Response, error) {
		resp, err := c.do(ctx, req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			return nil, c.asError(resp)
		}
		if resp.StatusCode >= http.StatusBadRequest {
			return nil, backoff.Permanent(c.asError(resp))
		}
		if resp.Body == "Authorization Header not provided" {
			return nil, backoff.Permanent(fmt.Errorf("rws rejected the request: %s", resp.Body))
		}
		return resp, nil
	}

	resp, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(c.maxTries),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "rws request failed")
		return nil, err
	}
	span.SetAttributes(attribute.Int("rws.status", resp.StatusCode))
	return resp, nil
}

func (c *Connection) do(ctx context.Context, req Request) (*Response, error) {
	u := c.baseURL + "/" + req.URLPath()

	var body io.Reader
	contentType := ""
	compressed := false
	if bp, ok := req.(BodyProvider); ok {
		ct, data := bp.Body()
		contentType = ct
		if c.gzipRequests {
			gz, err := compressBody(data)
			if err != nil {
				return nil, fmt.Errorf("failed to compress request body: %w", err)
			}
			data = gz
			compressed = true
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method(), u, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	if compressed {
		httpReq.Header.Set("Content-Encoding", "gzip")
	}
	if req.RequiresAuth() {
		httpReq.SetBasicAuth(c.username, c.password)
	}

	started := time.Now()
	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Error().Err(err).
			Str("method", req.Method()).
			Str("url", u).
			Dur("duration", time.Since(started)).
			Msg("rws call")
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	c.logger.Debug().
		Str("method", req.Method()).
		Str("url", u).
		Int("status", httpResp.StatusCode).
		Dur("duration", time.Since(started)).
		Msg("rws call")

	return &Response{
		StatusCode: httpResp.StatusCode,
		Body:       string(data),
		Header:     httpResp.Header,
	}, nil
}
