// Package thttp contains HTTP server and client utilities shared by the demo
// services.
//
// # HTTP Server
//
// thttp.Server is controlled by the context passed to its Run method instead
// of separate start and stop calls. Every incoming request gets a context
// inherited from that context, so handlers always find a logger there, and
// the graceful shutdown sequence is handled by Run.
//
// NewServer takes a single handler. The services route with
// github.com/gorilla/mux:
//
//	func Run(ctx context.Context, config Config) error {
//	    router := mux.NewRouter()
//	    router.HandleFunc("/", hello).Methods(http.MethodGet)
//	    router.HandleFunc("/checkpost", checkPost).Methods(http.MethodPost)
//
//	    server := thttp.NewServer(config.Listener,
//	        thttp.Wrap(router, thttp.StandardMiddleware, thttp.LogBodies))
//	    return server.Run(ctx)
//	}
//
// # Middleware
//
// A middleware takes an http.Handler and returns an http.Handler. Wrap applies
// several of them so that the first one listed is the first to see the
// request. StandardMiddleware is Log, Recover and CORS in this order. LogBodies
// is separate because request and response bodies are only interesting in
// verbose mode.
//
// # Logging
//
// Inside a handler, log with the logger from the request context:
//
//	logger := tlog.Get(r.Context())
//
// It already carries httpServer and remoteAddr, and, under Log, method, host
// and url. Don't repeat these fields, and don't log the start and the end of a
// request: Log does it.
//
// On an internal error, panic. Recover answers 500 and Run returns the panic
// after shutting the server down.
//
// # Client
//
// WithRequestsLogging wraps a client so that its requests are logged at Debug
// level. HandlerTransport sends requests to a local handler, which lets a
// client be tested against a service router without a listener.
package thttp
