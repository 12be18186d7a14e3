package service

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/gorilla/mux"
	"github.com/ridge/basics/test"
	"github.com/ridge/basics/tlog"
	"github.com/ridge/basics/tnet"
	"github.com/ridge/must/v2"
	"github.com/ridge/parallel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRun(t *testing.T) {
	group := test.Group(t)

	router := mux.NewRouter()
	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("Hello World!"))
	}).Methods(http.MethodGet)

	listener := tnet.ListenOnRandomPort()
	group.Spawn("service", parallel.Fail, func(ctx context.Context) error {
		return Run(ctx, Config{Name: "hello", Listener: listener, Handler: router})
	})

	url := "http://" + listener.Addr().String()

	res, err := http.DefaultClient.Do(must.OK1(http.NewRequestWithContext(group.Context(), http.MethodGet, url, nil)))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Equal(t, "Hello World!", string(must.OK1(io.ReadAll(res.Body))))
	res.Body.Close()

	res, err = http.DefaultClient.Do(must.OK1(http.NewRequestWithContext(group.Context(), http.MethodPost, url, nil)))
	require.NoError(t, err)
	require.Equal(t, http.StatusMethodNotAllowed, res.StatusCode)
	res.Body.Close()

	res, err = http.DefaultClient.Do(must.OK1(http.NewRequestWithContext(group.Context(), http.MethodGet, url+"/missing", nil)))
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, res.StatusCode)
	res.Body.Close()
}

func TestRunLogsListening(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	ctx, cancel := context.WithCancel(tlog.WithLogger(context.Background(), zap.New(core)))
	defer cancel()

	listener := tnet.ListenOnRandomPort()
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, Config{Name: "sum", Listener: listener, Handler: mux.NewRouter()})
	}()

	res, err := http.DefaultClient.Do(must.OK1(http.NewRequestWithContext(ctx, http.MethodGet, "http://"+listener.Addr().String()+"/", nil)))
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, res.StatusCode)
	res.Body.Close()

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)

	entries := logs.FilterMessage("Example app listening").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zap.InfoLevel, entries[0].Level)
	assert.Equal(t, "sum", entries[0].LoggerName)
	assert.Equal(t, listener.Addr().String(), entries[0].ContextMap()["addr"])
}
