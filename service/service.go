// Package service runs a demo HTTP service: one router behind the standard
// middleware, listening on --addr until interrupted
package service

import (
	"context"
	"net"
	"net/http"

	"github.com/ridge/basics/run"
	"github.com/ridge/basics/thttp"
	"github.com/ridge/basics/tlog"
	"github.com/ridge/basics/tnet"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// DefaultAddr is the address the services listen on unless --addr is given
const DefaultAddr = ":3000"

// Config describes a service
type Config struct {
	Name     string // logger name
	Listener net.Listener
	Handler  http.Handler // usually a *mux.Router
}

// Main handles the command line and runs the service until a signal arrives
func Main(args []string, name string, handler http.Handler) {
	run.Server(func(ctx context.Context) error {
		var addr string
		pflag.StringVar(&addr, "addr", DefaultAddr, "address to listen on (tcp:[host]:port or unix:path)")
		_ = pflag.CommandLine.Parse(args[1:])

		listener, err := tnet.Listen(addr)
		if err != nil {
			return err
		}

		return Run(ctx, Config{
			Name:     name,
			Listener: listener,
			Handler:  handler,
		})
	})
}

// Run serves the handler until ctx is closed
func Run(ctx context.Context, config Config) error {
	if config.Name != "" {
		ctx = tlog.WithLogger(ctx, tlog.Get(ctx).Named(config.Name))
	}
	server := thttp.NewServer(config.Listener,
		thttp.Wrap(config.Handler, thttp.StandardMiddleware, thttp.LogBodies))

	tlog.Get(ctx).Info("Example app listening", zap.Stringer("addr", server.ListenAddr()))
	return server.Run(ctx)
}
