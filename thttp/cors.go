package thttp

import (
	"net/http"

	"github.com/gorilla/handlers"
)

// corsMaxAge is how long browsers may cache a preflight answer, in seconds
const corsMaxAge = 600

// exposedHeaders are readable by cross-origin scripts
var exposedHeaders = []string{"Content-Length"}

// CORS is a middleware that allows cross-origin requests from any origin.
//
// Preflight requests are answered with 204 without reaching the handler. The
// first and second headers read by the header demo are allowed.
var CORS = handlers.CORS(
	handlers.AllowedOrigins([]string{"*"}),
	handlers.AllowedMethods([]string{http.MethodGet, http.MethodHead, http.MethodPost}),
	handlers.AllowedHeaders([]string{"Content-Type", "First", "Second", "X-Requested-With"}),
	handlers.ExposedHeaders(exposedHeaders),
	handlers.OptionStatusCode(http.StatusNoContent),
	handlers.MaxAge(corsMaxAge),
)
