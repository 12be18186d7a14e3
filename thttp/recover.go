package thttp

import (
	"net/http"
	"runtime/debug"

	"github.com/ridge/parallel"
)

// serveRecovering runs the handler in the current goroutine and returns a
// panic, if any, as parallel.ErrPanic
func serveRecovering(next http.Handler, w http.ResponseWriter, r *http.Request) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = parallel.ErrPanic{Value: p, Stack: debug.Stack()}
		}
	}()
	next.ServeHTTP(w, r)
	return nil
}

// Recover is a middleware that turns a handler panic into a 500 response and
// hands the panic to the Server, which then shuts down and returns it from Run
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := serveRecovering(next, w, r); err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			panicChan, ok := r.Context().Value(panicKey).(chan error)
			if !ok {
				// not running under Server, e.g. thttp.Test
				return
			}
			select {
			case panicChan <- err:
			default:
			}
		}
	})
}
