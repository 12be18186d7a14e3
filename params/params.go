// Package params is the request parameters demo: it echoes the first and
// second parameters read from the query string (/qry), the headers (/hdr) or a
// JSON body (/bdy)
package params

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/ridge/basics/param"
	"github.com/ridge/basics/service"
	"github.com/ridge/basics/thttp"
	"github.com/ridge/basics/tlog"
	"go.uber.org/zap"
)

const name = "params"

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
	router.HandleFunc("/qry", query).Methods(http.MethodGet, http.MethodHead)
	router.HandleFunc("/hdr", header).Methods(http.MethodGet, http.MethodHead)
	router.HandleFunc("/bdy", body).Methods(http.MethodGet, http.MethodHead)
	return router
}

func echo(w http.ResponseWriter, r *http.Request, source string, first, second param.Value) {
	thttp.TextResult(tlog.Get(r.Context()), w,
		fmt.Sprintf("The %s parameters entered by you are: %s and %s", source, first, second),
		http.StatusOK)
}

func query(w http.ResponseWriter, r *http.Request) {
	echo(w, r, "query", param.Query(r, "first"), param.Query(r, "second"))
}

func header(w http.ResponseWriter, r *http.Request) {
	tlog.Get(r.Context()).Info("Request headers", zap.Any("headers", param.Headers(r)))
	echo(w, r, "header", param.Header(r, "first"), param.Header(r, "second"))
}

func body(w http.ResponseWriter, r *http.Request) {
	logger := tlog.Get(r.Context())

	b, err := param.ReadBody(w, r)
	var errBody param.ErrBody
	if errors.As(err, &errBody) {
		logger.Info("Rejected request body", zap.Error(err))
		http.Error(w, errBody.Error(), errBody.Status)
		return
	}
	if err != nil {
		panic(err)
	}

	logger.Info("Request body", zap.Any("body", b.Raw()))
	echo(w, r, "body", b.Get("first"), b.Get("second"))
}
