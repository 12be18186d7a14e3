package thttp

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ridge/basics/test"
	"github.com/ridge/basics/tnet"
	"github.com/ridge/must/v2"
	"github.com/ridge/parallel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBrokenSum = errors.New("broken sum")

func brokenSumHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("first") == "" {
		_, _ = w.Write([]byte(`{"sum":null}`))
		return
	}
	panic(errBrokenSum)
}

func TestRecoverStopsServer(t *testing.T) {
	group := test.Group(t)

	server := NewServer(tnet.ListenOnRandomPort(), Recover(http.HandlerFunc(brokenSumHandler)))
	runErr := make(chan error, 1)
	group.Spawn("server", parallel.Continue, func(ctx context.Context) error {
		runErr <- server.Run(ctx)
		return nil
	})

	base := "http://" + server.ListenAddr().String()

	res, err := http.DefaultClient.Do(must.OK1(http.NewRequestWithContext(group.Context(), http.MethodGet, base+"/", nil)))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	res.Body.Close()

	res, err = http.DefaultClient.Do(must.OK1(http.NewRequestWithContext(group.Context(), http.MethodGet, base+"/?first=1", nil)))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
	assert.Empty(t, must.OK1(io.ReadAll(res.Body)))
	res.Body.Close()

	err = <-runErr
	var errPanic parallel.ErrPanic
	require.ErrorAs(t, err, &errPanic)
	assert.Equal(t, errBrokenSum, errPanic.Value)
	assert.Contains(t, string(errPanic.Stack), "brokenSumHandler")
}

func TestRecoverUnderTest(t *testing.T) {
	handler := Recover(http.HandlerFunc(brokenSumHandler))

	res := TestCtx(test.Context(t), handler, httptest.NewRequest(http.MethodGet, "/?first=1", nil))
	defer res.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)

	res = TestCtx(test.Context(t), handler, httptest.NewRequest(http.MethodGet, "/", nil))
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
}
