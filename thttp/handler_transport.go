package thttp

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
)

// HandlerTransport is an http.RoundTripper that serves requests with a local
// http.Handler instead of going to the network.
//
// Context replaces the request context, so the handler sees the values (the
// logger, in particular) it would see when running under Server.
type HandlerTransport struct {
	Context context.Context //nolint:containedctx // net/http round trippers predate contexts
	Handler http.Handler
}

// RoundTrip implements http.RoundTripper
func (ht HandlerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.WithContext(ht.Context)

	w := &bufferResponseWriter{
		buffer: bytes.NewBuffer(nil),
		header: http.Header{},
	}

	ht.Handler.ServeHTTP(w, req)

	if w.sentHeader == nil {
		w.WriteHeader(http.StatusOK)
	}

	return &http.Response{
		Request:       req,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		StatusCode:    w.status,
		Status:        fmt.Sprintf("%d %s", w.status, http.StatusText(w.status)),
		Header:        w.sentHeader,
		Body:          io.NopCloser(w.buffer),
		ContentLength: int64(w.buffer.Len()),
	}, nil
}

type bufferResponseWriter struct {
	header http.Header
	buffer *bytes.Buffer
	status int
	// snapshot of header at WriteHeader time; later changes are ignored
	sentHeader http.Header
}

func (w *bufferResponseWriter) Header() http.Header {
	return w.header
}

func (w *bufferResponseWriter) Write(p []byte) (int, error) {
	if w.sentHeader == nil {
		w.WriteHeader(http.StatusOK)
	}
	return w.buffer.Write(p)
}

func (w *bufferResponseWriter) WriteHeader(status int) {
	if w.sentHeader != nil {
		return
	}
	w.status = status
	w.sentHeader = w.header.Clone()
}
