// Package fetch is the client side of the server-to-server demo: it calls the
// sum service once and prints the JSON it answers with
package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/ridge/basics/retry"
	"github.com/ridge/basics/run"
	"github.com/ridge/basics/thttp"
	"github.com/ridge/basics/tlog"
	"github.com/ridge/basics/tnet"
	"github.com/ridge/must/v2"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// Config describes the call
type Config struct {
	URL     string
	First   string
	Second  string
	Timeout time.Duration // covers all attempts
}

// DefaultConfig is the call made without flags
var DefaultConfig = Config{
	URL:     "http://localhost:3000",
	First:   "1",
	Second:  "2",
	Timeout: 10 * time.Second,
}

// the sum service may still be starting
var backoffConfig = retry.ExpConfig{
	Min:   50 * time.Millisecond,
	Max:   2 * time.Second,
	Scale: 2,
}

// ErrStatus is returned for a non-2xx response
type ErrStatus struct {
	Status string
	Code   int
}

func (e ErrStatus) Error() string {
	return fmt.Sprintf("unexpected response status %s", e.Status)
}

// Main handles the command line and makes the call
func Main(args []string) {
	run.Tool(func(ctx context.Context) error {
		config := DefaultConfig
		pflag.StringVar(&config.URL, "url", config.URL, "URL of the sum service")
		pflag.StringVar(&config.First, "first", config.First, "first operand")
		pflag.StringVar(&config.Second, "second", config.Second, "second operand")
		pflag.DurationVar(&config.Timeout, "timeout", config.Timeout, "give up after this long, retries included")
		_ = pflag.CommandLine.Parse(args[1:])

		return Run(ctx, thttp.WithRequestsLogging(thttp.RetryingDNSClient), config, os.Stdout)
	})
}

// Run makes the call and writes the response body to out as one line of JSON
func Run(ctx context.Context, client *http.Client, config Config, out io.Writer) error {
	body, err := Fetch(ctx, client, config)
	if err != nil {
		return err
	}
	tlog.Get(ctx).Info("Response body", zap.Any("body", body))
	_, err = fmt.Fprintf(out, "%s\n", must.OK1(json.Marshal(body)))
	return err
}

// Fetch sends GET <URL>?first=<First>&second=<Second> and returns the decoded
// JSON response body.
//
// Network errors that may go away (connection refused while the service
// starts, resets, timeouts) and 502, 503 and 504 responses are retried with
// exponential backoff until config.Timeout expires.
func Fetch(ctx context.Context, client *http.Client, config Config) (any, error) {
	target, err := requestURL(config)
	if err != nil {
		return nil, run.ErrUsage{Err: err}
	}
	ctx = tlog.With(ctx, zap.String("target", target))

	return retry.Do1WithTimeout(ctx, backoffConfig, config.Timeout, func(ctx context.Context) (any, error) {
		return get(ctx, client, target)
	})
}

func requestURL(config Config) (string, error) {
	u, err := url.Parse(config.URL)
	if err != nil {
		return "", fmt.Errorf("invalid --url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("invalid --url %q: scheme must be http or https", config.URL)
	}
	if u.Host == "" {
		return "", fmt.Errorf("invalid --url %q: missing host", config.URL)
	}
	q := u.Query()
	q.Set("first", config.First)
	q.Set("second", config.Second)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func get(ctx context.Context, client *http.Client, target string) (any, error) {
	req := must.OK1(http.NewRequestWithContext(ctx, http.MethodGet, target, nil))
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, tnet.MaybeRetriableError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		err := ErrStatus{Status: resp.Status, Code: resp.StatusCode}
		switch resp.StatusCode {
		case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return nil, retry.Retriable(err)
		}
		return nil, err
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	var body any
	if err := dec.Decode(&body); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, tnet.MaybeRetriableError(err)
		}
		return nil, fmt.Errorf("failed to decode response body: %w", err)
	}
	if err := dec.Decode(new(any)); !errors.Is(err, io.EOF) {
		return nil, errors.New("failed to decode response body: unexpected data after the JSON value")
	}
	return body, nil
}
