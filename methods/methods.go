// Package methods is the request methods demo: a greeting on GET / and a list
// of Linux distributions on POST /checkpost
package methods

import (
	"context"
	"net"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/ridge/basics/service"
	"github.com/ridge/basics/thttp"
	"github.com/ridge/basics/tlog"
)

const name = "methods"

// Distro is an entry of the /checkpost list
type Distro struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

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
	router.HandleFunc("/", hello).Methods(http.MethodGet, http.MethodHead)
	router.HandleFunc("/checkpost", checkPost).Methods(http.MethodPost)
	return router
}

func hello(w http.ResponseWriter, r *http.Request) {
	thttp.TextResult(tlog.Get(r.Context()), w, "Hello World!", http.StatusOK)
}

func checkPost(w http.ResponseWriter, r *http.Request) {
	linux := []Distro{
		{ID: 1, Title: "Arch"},
		{ID: 2, Title: "Xubuntu"},
		{ID: 3, Title: "Fedora"},
	}
	thttp.JSONResult(tlog.Get(r.Context()), w, linux, http.StatusOK)
}
