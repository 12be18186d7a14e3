// Package sum is the server side of the server-to-server demo: GET / answers
// {"sum": first + second}, where + joins the two query parameters as text, so
// first=1&second=2 gives "12"
package sum

import (
	"context"
	"net"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/ridge/basics/param"
	"github.com/ridge/basics/service"
	"github.com/ridge/basics/thttp"
	"github.com/ridge/basics/tlog"
	"github.com/ridge/tj"
)

const name = "sum"

// Main handles the command line and runs the service
func Main(args []string) {
	service.Main(args, name, Router())
}

// Run serves the demo on the listener until ctx is closed
func Run(ctx context.Context, listener net.Listener) error {
	return service.Run(ctx, service.Config{Name: name, Listener: listener, Handler: Router()})
}

// Router returns the demo routes
func Router() *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/", handleSum).Methods(http.MethodGet, http.MethodHead)
	return router
}

func handleSum(w http.ResponseWriter, r *http.Request) {
	// both absent: there is nothing to join and the sum is null
	sum := param.Concat(param.Query(r, "first"), param.Query(r, "second"))
	thttp.JSONResult(tlog.Get(r.Context()), w, tj.O{"sum": sum}, http.StatusOK)
}
