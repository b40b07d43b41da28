package portal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/viant/signoff/metrics"
	"github.com/viant/signoff/model"
	"github.com/viant/signoff/tracing"
)

const maxResponseSize = 32 << 20

// Request describes a single portal call.
type Request struct {
	Method string
	// Route is the path template used for tracing and metrics labels.
	Route string
	Path  string
	// Session is nil for the unauthenticated bootstrap call.
	Session *model.Session
	// Body is JSON encoded when not nil.
	Body interface{}
}

// Response is a fully read portal response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Option customises the client.
type Option func(c *Client)

// WithHTTPClient overrides the HTTP client (the configured timeout is not applied to it).
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

// WithRecorder records request latency.
func WithRecorder(recorder *metrics.Recorder) Option {
	return func(c *Client) { c.recorder = recorder }
}

// WithLogger sets the logger used for request level debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// Client issues portal requests.  It is safe for concurrent use.
type Client struct {
	config     Config
	identity   *Identity
	httpClient *http.Client
	recorder   *metrics.Recorder
	logger     *slog.Logger
}

// New creates a portal client.
func New(config Config, options ...Option) *Client {
	ret := &Client{config: config, identity: NewIdentity(&config)}
	for _, option := range options {
		option(ret)
	}
	if ret.httpClient == nil {
		ret.httpClient = &http.Client{Timeout: config.Timeout}
	}
	if ret.logger == nil {
		ret.logger = slog.Default()
	}
	return ret
}

// Do sends the request.  A non-2xx response yields both the response and an *APIError.
func (c *Client) Do(ctx context.Context, request *Request) (*Response, error) {
	ctx, span := tracing.StartSpan(ctx, request.Method+" "+request.Route, tracing.KindClient)
	span.WithAttributes(map[string]string{"http.method": request.Method, "portal.route": request.Route})
	response, err := c.do(ctx, request)
	if response != nil {
		span.SetStatusFromHTTPCode(response.StatusCode)
	}
	tracing.EndSpan(span, err)
	return response, err
}

func (c *Client) do(ctx context.Context, request *Request) (*Response, error) {
	URL := c.config.baseURL() + request.Path
	var body io.Reader
	var payload []byte
	if request.Body != nil {
		var err error
		if payload, err = json.Marshal(request.Body); err != nil {
			return nil, fmt.Errorf("failed to encode %s %s body: %w", request.Method, request.Route, err)
		}
		body = bytes.NewReader(payload)
	}
	httpRequest, err := http.NewRequestWithContext(ctx, request.Method, URL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request %s %s: %w", request.Method, URL, err)
	}
	httpRequest.Header = c.identity.Header(request.Session)
	if payload != nil {
		httpRequest.Header.Set("Content-Type", "application/json")
	}

	started := time.Now()
	httpResponse, err := c.httpClient.Do(httpRequest)
	if err != nil {
		c.recorder.Request(request.Method, request.Route, 0, time.Since(started))
		return nil, fmt.Errorf("request %s %s failed: %w", request.Method, URL, err)
	}
	defer httpResponse.Body.Close()
	data, err := io.ReadAll(io.LimitReader(httpResponse.Body, maxResponseSize))
	c.recorder.Request(request.Method, request.Route, httpResponse.StatusCode, time.Since(started))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s %s response: %w", request.Method, URL, err)
	}
	c.logger.Debug("portal.request", "method", request.Method, "route", request.Route, "status", httpResponse.StatusCode, "elapsed", time.Since(started))

	response := &Response{StatusCode: httpResponse.StatusCode, Header: httpResponse.Header, Body: data}
	if httpResponse.StatusCode < 200 || httpResponse.StatusCode > 299 {
		return response, &APIError{
			Method:     request.Method,
			URL:        URL,
			Route:      request.Route,
			StatusCode: httpResponse.StatusCode,
			Status:     httpResponse.Status,
			Body:       data,
			Header:     httpResponse.Header,
		}
	}
	return response, nil
}

// call sends the request and decodes a JSON response into out when out is not nil.
func (c *Client) call(ctx context.Context, request *Request, out interface{}) error {
	response, err := c.Do(ctx, request)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err = json.Unmarshal(response.Body, out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", request.Method, request.Route, err)
	}
	return nil
}
