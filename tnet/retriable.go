package tnet

import (
	"errors"
	"io"
	"net"
	"net/url"
	"strings"
	"syscall"

	"github.com/ridge/basics/retry"
)

// MaybeRetriableError wraps err with retry.Retriable when it is a network
// error worth another attempt: refused or reset connections, timeouts,
// temporary DNS failures, connections closed mid-response
func MaybeRetriableError(err error) error {
	if err == nil {
		return nil
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && errors.Is(urlErr, io.EOF) {
		return retry.Retriable(err)
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) && dnsErr.IsTemporary {
		return retry.Retriable(err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return retry.Retriable(err)
	}
	for _, errno := range []syscall.Errno{syscall.ECONNREFUSED, syscall.ECONNRESET, syscall.EHOSTUNREACH, syscall.EPIPE} {
		if errors.Is(err, errno) {
			return retry.Retriable(err)
		}
	}
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return retry.Retriable(err)
	}
	// unexported error from the resolver
	if strings.Contains(err.Error(), "server misbehaving") {
		return retry.Retriable(err)
	}
	// https://github.com/golang/go/issues/31259: produced by fmt.Errorf deep
	// in net/http when the server answers before the request is fully sent
	if strings.Contains(err.Error(), "readLoopPeekFailLocked: ") {
		return retry.Retriable(err)
	}
	return err
}
