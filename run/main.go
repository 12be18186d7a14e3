// Package run contains the entry point helpers shared by the binaries
package run

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/ridge/basics/tlog"
	"github.com/ridge/parallel"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// Logging flags are parsed by a separate flag set before the program's own
// flags, because the logger must exist before the program starts.
var fs = pflag.NewFlagSet(os.Args[0], pflag.ContinueOnError)

var (
	logFormat = fs.String("log-format", "text", "Log format (json|text)")
	logColor  = fs.String("log-color", "auto", "Colored logs (yes|no|auto)")
	verbose   = fs.BoolP("verbose", "v", false, "Enable verbose (debug level) messages")
)

func init() {
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.Usage = func() {}

	// so that --help of the program lists them too
	pflag.CommandLine.AddFlagSet(fs)
}

// Tool runs the top-level task of the program and exits.
//
// The context passed to the task carries a logger configured from the
// --log-format, --log-color and --verbose flags. It is closed when SIGINT,
// SIGTERM or SIGHUP arrives.
//
// The exit code is 0 if the task returns nil, the code of a WithExitCode error,
// or 1 for any other error. Defers installed before calling Tool do not run,
// so keep the main code inside the task:
//
//	func main() {
//	    run.Tool(func(ctx context.Context) error {
//	        return fetch.Run(ctx, config)
//	    })
//	}
func Tool(task func(ctx context.Context) error) {
	var err error
	// os.Exit skips deferred calls, so exit from the outermost defer
	defer func() {
		var wec WithExitCode
		if errors.As(err, &wec) {
			os.Exit(wec.ExitCode())
		}
		if err != nil {
			os.Exit(1)
		}
	}()

	ctx := rootContext()

	err = parallel.Run(ctx, func(ctx context.Context, spawn parallel.SpawnFn) error {
		spawn("main", parallel.Exit, task)
		spawn("signals", parallel.Exit, handleSignals)
		return nil
	})
	if err != nil {
		tlog.Get(ctx).Error("Error", zap.Error(err))
	}
}

// Server is Tool for programs that run until interrupted: a task that returns
// the context error after a signal counts as a success.
func Server(task func(ctx context.Context) error) {
	Tool(func(ctx context.Context) error {
		err := task(ctx)
		if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
			return nil
		}
		return err
	})
}

// WithExitCode is implemented by errors that choose the process exit code
type WithExitCode interface {
	ExitCode() int
}

// ErrUsage is returned for invalid command lines; it exits with code 2
type ErrUsage struct {
	Err error
}

func (e ErrUsage) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error
func (e ErrUsage) Unwrap() error {
	return e.Err
}

// ExitCode implements WithExitCode
func (ErrUsage) ExitCode() int {
	return 2
}

func loggerConfig(args []string) (tlog.Config, error) {
	if err := fs.Parse(args); err != nil && !errors.Is(err, pflag.ErrHelp) {
		return tlog.Config{}, err
	}
	format, err := tlog.ParseFormat(*logFormat)
	if err != nil {
		return tlog.Config{}, err
	}
	color, err := tlog.ParseColor(*logColor)
	if err != nil {
		return tlog.Config{}, err
	}
	return tlog.Config{
		Format:  format,
		Color:   color,
		Verbose: *verbose,
	}, nil
}

func rootContext() context.Context {
	config, err := loggerConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	return tlog.WithLogger(context.Background(), tlog.New(config))
}
