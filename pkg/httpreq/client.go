package httpreq

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"retail-admin-web/pkg/log"
	"retail-admin-web/pkg/metrics"
)

// Credentials supplies the bearer token for authenticated calls and forgets it
// when the backend rejects it.
type Credentials interface {
	oauth2.TokenSource
	ClearToken(ctx context.Context) error
}

// Request describes one backend call.
type Request struct {
	URL     string
	Method  string
	Header  http.Header
	Body    any
	Query   url.Values
	// Credentials, when set, attaches "Authorization: Bearer <token>" if a token is available.
	Credentials Credentials
}

// Response is a successful backend response.
type Response struct {
	Status      int
	ContentType string
	Body        []byte
}

// Structured reports whether the response declared a JSON content type.
func (r *Response) Structured() bool {
	mt, _, err := mime.ParseMediaType(r.ContentType)
	if err != nil {
		return false
	}
	return mt == "application/json" || strings.HasSuffix(mt, "+json")
}

// Decode unmarshals a structured body into v.
func (r *Response) Decode(v any) error {
	if len(bytes.TrimSpace(r.Body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("httpreq.Decode: %w", err)
	}
	return nil
}

// Client issues requests against the configured backend base URL.
type Client struct {
	baseURL string
	http    *http.Client
	l       log.Logger
	metrics *metrics.Collector
}

// Config is the dependency bag passed to NewClient.
type Config struct {
	BaseURL string
	// Timeout of zero leaves the transport defaults in place.
	Timeout time.Duration
	// Transport overrides http.DefaultTransport, mostly for tests.
	Transport http.RoundTripper
	Metrics   *metrics.Collector
}

// NewClient creates a backend client.
func NewClient(l log.Logger, cfg Config) *Client {
	transport := cfg.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Transport: transport, Timeout: cfg.Timeout},
		l:       l,
		metrics: cfg.Metrics,
	}
}

// Resolve returns target unchanged when absolute, otherwise joined to the base URL.
func (c *Client) Resolve(target string) string {
	if u, err := url.Parse(target); err == nil && u.IsAbs() {
		return target
	}
	if target != "" && !strings.HasPrefix(target, "/") {
		target = "/" + target
	}
	return c.baseURL + target
}

// Do issues req and returns the response, or a *StatusError / *TransportError.
// A 401 on a call carrying Credentials clears the stored token.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	target := c.Resolve(req.URL)
	if len(req.Query) > 0 {
		sep := "?"
		if strings.Contains(target, "?") {
			sep = "&"
		}
		target += sep + req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		raw, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("httpreq.Do marshal: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("httpreq.Do build: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	for k, vs := range req.Header {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}

	start := time.Now()
	resp, err := c.clientFor(req.Credentials).Do(httpReq)
	if err != nil {
		c.metrics.ObserveBackendCall(method, string(CategoryTransport), time.Since(start))
		c.l.Warnf(ctx, "httpreq.Do %s %s: %v", method, target, err)
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.ObserveBackendCall(method, string(CategoryTransport), time.Since(start))
		return nil, &TransportError{Err: err}
	}

	category := Categorize(resp.StatusCode)
	c.metrics.ObserveBackendCall(method, string(category), time.Since(start))

	if category != CategorySuccess {
		c.l.Warnf(ctx, "httpreq.Do %s %s: status %d", method, target, resp.StatusCode)
		if category == CategoryUnauthorized && req.Credentials != nil {
			if clearErr := req.Credentials.ClearToken(ctx); clearErr != nil {
				c.l.Errorf(ctx, "httpreq.Do ClearToken: %v", clearErr)
			}
		}
		return nil, &StatusError{Code: resp.StatusCode, Category: category, Body: string(raw)}
	}

	return &Response{
		Status:      resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        raw,
	}, nil
}

// clientFor wraps the base transport with an oauth2.Transport when a token is available.
func (c *Client) clientFor(creds Credentials) *http.Client {
	if creds == nil {
		return c.http
	}
	tok, err := creds.Token()
	if err != nil || tok == nil || tok.AccessToken == "" {
		return c.http
	}
	return &http.Client{
		Transport: &oauth2.Transport{
			Source: oauth2.StaticTokenSource(tok),
			Base:   c.http.Transport,
		},
		Timeout: c.http.Timeout,
	}
}

// IsUnauthorized reports whether err is the unauthorized category.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}
