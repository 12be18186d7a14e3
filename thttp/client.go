package thttp

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/ridge/basics/tlog"
	"go.uber.org/zap"
)

const maxRedirects = 10

// LoggingTransport is an http.RoundTripper that logs outgoing requests and
// their responses at Debug level using the logger from the request context.
// Bodies are logged once fully read or closed.
type LoggingTransport struct {
	Transport http.RoundTripper
}

// WithRequestsLogging returns a copy of the client that logs its requests
func WithRequestsLogging(client *http.Client) *http.Client {
	transport := client.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	return &http.Client{
		Transport:     &LoggingTransport{Transport: transport},
		CheckRedirect: checkRedirect,
		Jar:           client.Jar,
		Timeout:       client.Timeout,
	}
}

// checkRedirect carries over headers that net/http drops on redirect, such
// as the first and second headers of the header demo
func checkRedirect(req *http.Request, via []*http.Request) error {
	if len(via) > maxRedirects {
		return fmt.Errorf("stopped after %d redirects", maxRedirects)
	}
	for k, v := range via[0].Header {
		if _, exists := req.Header[k]; !exists {
			req.Header[k] = v
		}
	}
	return nil
}

// RoundTrip implements http.RoundTripper
func (t *LoggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	logger := tlog.Get(req.Context())
	if !logger.Core().Enabled(zap.DebugLevel) {
		return t.Transport.RoundTrip(req)
	}
	logger = logger.With(zap.String("method", req.Method), zap.Stringer("url", req.URL))

	if req.Body != nil && loggable(req.Header) {
		req.Body = newBodyReader(req.Body, func(body *excerpt, _ bool) {
			logger.Debug("HTTP request body sent", zap.String("contentType", contentType(req.Header)), body.field("body"))
		})
	}

	started := time.Now()
	resp, err := t.Transport.RoundTrip(req)
	if err != nil {
		logger.Debug("HTTP request failed", zap.Error(err), zap.Duration("elapsed", time.Since(started)))
		return nil, err
	}
	logger.Debug("HTTP response received", zap.Int("statusCode", resp.StatusCode), zap.Duration("elapsed", time.Since(started)))

	if loggable(resp.Header) {
		resp.Body = newBodyReader(resp.Body, func(body *excerpt, eof bool) {
			logger.Debug("HTTP response body received",
				zap.String("contentType", contentType(resp.Header)),
				zap.Bool("complete", eof),
				body.field("body"))
		})
	}
	return resp, nil
}

// Test runs the request (usually from httptest.NewRequest) through the handler
// without a network and returns the recorded response
func Test(handler http.Handler, r *http.Request) *http.Response {
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	return w.Result()
}

// TestCtx is Test with ctx injected into the request
func TestCtx(ctx context.Context, handler http.Handler, r *http.Request) *http.Response {
	return Test(handler, r.WithContext(ctx))
}
