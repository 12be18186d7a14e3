package thttp

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/ridge/basics/test"
	"github.com/ridge/basics/tnet"
	"github.com/ridge/must/v2"
	"github.com/ridge/parallel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServer(t *testing.T) {
	group := test.Group(t)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, err := w.Write([]byte("Hello World!"))
		assert.NoError(t, err)
	})

	s := NewServer(tnet.ListenOnRandomPort(), StandardMiddleware(handler))
	group.Spawn("server", parallel.Fail, s.Run)

	res, err := http.DefaultClient.Do(must.OK1(http.NewRequestWithContext(group.Context(), http.MethodGet, "http://"+s.ListenAddr().String(), nil)))
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	body, err := io.ReadAll(res.Body)
	assert.NoError(t, err)
	assert.Equal(t, []byte("Hello World!"), body)
}

func TestServerShutdownWaitsForRequest(t *testing.T) {
	ctx, cancel := context.WithCancel(test.Context(t))
	defer cancel()

	started := make(chan struct{})
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		time.Sleep(100 * time.Millisecond)
		_, _ = w.Write([]byte("done"))
	})

	s := NewServer(tnet.ListenOnRandomPort(), handler)
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- s.Run(ctx)
	}()

	type result struct {
		body string
		err  error
	}
	resCh := make(chan result, 1)
	go func() {
		res, err := http.Get("http://" + s.ListenAddr().String())
		if err != nil {
			resCh <- result{err: err}
			return
		}
		defer res.Body.Close()
		body, err := io.ReadAll(res.Body)
		resCh <- result{body: string(body), err: err}
	}()

	<-started
	cancel()

	r := <-resCh
	require.NoError(t, r.err)
	require.Equal(t, "done", r.body)
	require.ErrorIs(t, <-serverErr, context.Canceled)
}
