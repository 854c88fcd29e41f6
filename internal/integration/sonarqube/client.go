// Package sonarqube is a minimal client for the SonarQube Web API endpoints consumed by scribe.
package sonarqube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/farcloser/primordium/fault"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/farcloser/scribe/internal/integration/sonarqube"

// Client issues authenticated GET requests against a SonarQube server.
type Client struct {
	baseURL    *url.URL
	token      string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithToken authenticates requests with a user token.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// New returns a client for the server at serverURL (for example http://localhost:9000).
func New(serverURL string, opts ...Option) (*Client, error) {
	parsed, err := url.Parse(strings.TrimSpace(serverURL))
	if err != nil {
		return nil, fmt.Errorf("%q: %w: %w", serverURL, errInvalidServerURL, err)
	}

	if (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return nil, fmt.Errorf("%q: %w: expected http(s)://host[:port]", serverURL, errInvalidServerURL)
	}

	// Keep any context path (e.g. https://host/sonar) and resolve endpoints below it.
	if !strings.HasSuffix(parsed.Path, "/") {
		parsed.Path += "/"
	}

	client := &Client{
		baseURL:    parsed,
		httpClient: &http.Client{},
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// get performs a GET on path, maps failures onto the package sentinels and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	slog.Debug("sonarqube.get", "path", path, "query", query.Encode())

	ctx, span := otel.Tracer(tracerName).Start(ctx, name+" GET /"+path,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("http.route", "/"+path)),
	)
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	endpoint := c.baseURL.JoinPath(path)
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return c.fail(span, fmt.Errorf("%w: %w", ErrRequestRejected, err))
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	if c.token != "" {
		// SonarQube user tokens travel as the basic auth login with an empty password.
		req.SetBasicAuth(c.token, "")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return c.fail(span, fmt.Errorf("%w: %w: after %v", ErrServiceUnavailable, fault.ErrTimeout, timeout))
		}

		return c.fail(span, fmt.Errorf("%w: %w", ErrServiceUnavailable, err))
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return c.fail(span, fmt.Errorf("%w: %w: %w", ErrServiceUnavailable, fault.ErrReadFailure, err))
	}

	switch {
	case resp.StatusCode >= http.StatusInternalServerError:
		return c.fail(span, fmt.Errorf("%w: /%s: HTTP %d%s",
			ErrServiceUnavailable, path, resp.StatusCode, serverMessage(body)))
	case resp.StatusCode >= http.StatusBadRequest:
		return c.fail(span, fmt.Errorf("%w: /%s: HTTP %d%s",
			ErrRequestRejected, path, resp.StatusCode, serverMessage(body)))
	case resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices:
		return c.fail(span, fmt.Errorf("%w: /%s: unexpected HTTP %d", ErrServiceUnavailable, path, resp.StatusCode))
	}

	if err = json.Unmarshal(body, out); err != nil {
		return c.fail(span, fmt.Errorf("%w: /%s: %w: %w", ErrMalformedResponse, path, fault.ErrInvalidJSON, err))
	}

	slog.Debug("sonarqube.get", "path", path, "status", resp.StatusCode, "bytes", len(body))

	return nil
}

func (*Client) fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	return err
}

// serverMessage extracts the messages of a SonarQube error payload ({"errors":[{"msg":"..."}]}).
func serverMessage(body []byte) string {
	var payload struct {
		Errors []struct {
			Msg string `json:"msg"`
		} `json:"errors"`
	}

	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Errors) == 0 {
		return ""
	}

	msgs := make([]string, 0, len(payload.Errors))
	for _, e := range payload.Errors {
		msgs = append(msgs, e.Msg)
	}

	return ": " + strings.Join(msgs, "; ")
}

func missing(path, field string) error {
	return fmt.Errorf("%w: /%s: missing %q", ErrMalformedResponse, path, field)
}
