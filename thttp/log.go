package thttp

import (
	"net/http"

	"github.com/felixge/httpsnoop"
	"github.com/ridge/basics/tlog"
	"go.uber.org/zap"
)

// Log is a middleware that logs every request with its outcome: status code,
// response size and handling time. Bodies are logged separately by LogBodies.
//
// The request logger carries method, host and url, so that everything logged
// while handling a request can be traced back to it.
func Log(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := tlog.With(r.Context(),
			zap.String("method", r.Method),
			zap.String("host", r.Host),
			zap.String("url", r.URL.String()),
		)
		logger := tlog.Get(ctx)
		logger.Debug("HTTP request handling started")

		m := httpsnoop.CaptureMetricsFn(w, func(w http.ResponseWriter) {
			next.ServeHTTP(w, r.WithContext(ctx))
		})

		logger.Info("HTTP request handled",
			zap.Int("statusCode", m.Code),
			zap.Int64("size", m.Written),
			zap.Duration("elapsed", m.Duration))
	})
}
