package thttp

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/felixge/httpsnoop"
	"github.com/ridge/basics/tlog"
	"github.com/ridge/must/v2"
	"go.uber.org/zap"
)

const maxLogBodyLen = 1024

// LogBodies is a middleware that logs request and response bodies at Debug
// level, cut to maxLogBodyLen bytes. It does nothing when Debug is disabled.
func LogBodies(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		logger := tlog.Get(req.Context())
		if !logger.Core().Enabled(zap.DebugLevel) {
			next.ServeHTTP(w, req)
			return
		}

		if loggable(req.Header) {
			req.Body = newBodyReader(req.Body, func(body *excerpt, _ bool) {
				logger.Debug("HTTP request body", zap.String("contentType", contentType(req.Header)), body.field("body"))
			})
		}

		var sent excerpt
		next.ServeHTTP(httpsnoop.Wrap(w, httpsnoop.Hooks{
			Write: func(write httpsnoop.WriteFunc) httpsnoop.WriteFunc {
				return func(p []byte) (int, error) {
					n, err := write(p)
					sent.add(p[:n])
					return n, err
				}
			},
		}), req)

		if loggable(w.Header()) {
			logger.Debug("HTTP response body", zap.String("contentType", contentType(w.Header())), sent.field("body"))
		}
	})
}

func contentType(header http.Header) string {
	return strings.TrimSpace(strings.ToLower(header.Get("Content-Type")))
}

// binary bodies are not logged
func loggable(header http.Header) bool {
	return contentType(header) != "application/octet-stream"
}

// excerpt keeps the beginning of a body for logging
type excerpt struct {
	buf bytes.Buffer
	cut bool
}

func (e *excerpt) add(p []byte) {
	if room := maxLogBodyLen - e.buf.Len(); len(p) > room {
		p = p[:room]
		e.cut = true
	}
	must.OK1(e.buf.Write(p))
}

func (e *excerpt) field(key string) zap.Field {
	if e.cut {
		return zap.String(key, e.buf.String()+"...")
	}
	return zap.ByteString(key, e.buf.Bytes())
}

// bodyReader calls done once, on EOF or on Close, whichever comes first, with
// what was read so far
type bodyReader struct {
	rc   io.ReadCloser
	read excerpt
	once sync.Once
	done func(body *excerpt, eof bool)
}

func newBodyReader(rc io.ReadCloser, done func(body *excerpt, eof bool)) *bodyReader {
	if rc == nil {
		rc = http.NoBody
	}
	return &bodyReader{rc: rc, done: done}
}

func (br *bodyReader) finish(eof bool) {
	br.once.Do(func() {
		br.done(&br.read, eof)
	})
}

func (br *bodyReader) Read(p []byte) (int, error) {
	n, err := br.rc.Read(p)
	br.read.add(p[:n])
	if errors.Is(err, io.EOF) {
		br.finish(true)
	}
	return n, err
}

func (br *bodyReader) Close() error {
	br.finish(false)
	return br.rc.Close()
}

// JSONResult writes the status code and res encoded as JSON
func JSONResult(logger *zap.Logger, w http.ResponseWriter, res any, code int) {
	body := must.OK1(json.Marshal(res))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(body); err != nil {
		logger.Debug("Failed to write response to client", zap.Error(err))
	}
}

// TextResult writes the status code and text as a text/html body
func TextResult(logger *zap.Logger, w http.ResponseWriter, text string, code int) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	if _, err := io.WriteString(w, text); err != nil {
		logger.Debug("Failed to write response to client", zap.Error(err))
	}
}
