package thttp

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/ridge/basics/retry"
)

var (
	defaultDialer               = net.Dialer{}
	retryingDialerBackoffConfig = retry.ExpConfig{
		Min:   10 * time.Millisecond,
		Max:   5 * time.Second,
		Scale: 1.5,
	}
)

// retryingDialer redials while DNS says the host does not exist, which happens
// while a freshly started peer is being registered
func retryingDialer(ctx context.Context, network, address string) (net.Conn, error) {
	backoff := retry.NewExpBackoff(retryingDialerBackoffConfig)

	for {
		conn, err := defaultDialer.DialContext(ctx, network, address)
		var dnsErr *net.DNSError
		if !errors.As(err, &dnsErr) || !dnsErr.IsNotFound {
			return conn, err
		}
		if err := retry.Sleep(ctx, backoff.Backoff()); err != nil {
			return nil, err
		}
	}
}

// RetryingDNSClient is an http.Client that redials on DNS "not found" errors
// until the request context is closed
var RetryingDNSClient = &http.Client{
	Transport: &http.Transport{
		Proxy:       http.ProxyFromEnvironment,
		DialContext: retryingDialer,
	},
}
