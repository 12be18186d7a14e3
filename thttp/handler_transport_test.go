package thttp

import (
	"io"
	"net/http"
	"testing"

	"github.com/ridge/basics/test"
	"github.com/ridge/must/v2"
	"github.com/stretchr/testify/require"
)

func TestHandlerTransport(t *testing.T) {
	ctx := test.Context(t)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Header().Set("X-Late", "ignored")
		_, _ = w.Write([]byte(`{"sum":"12"}`))
	})
	client := &http.Client{Transport: HandlerTransport{Context: ctx, Handler: handler}}

	res, err := client.Do(must.OK1(http.NewRequest(http.MethodGet, "http://localhost/?first=1&second=2", nil)))
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusCreated, res.StatusCode)
	require.Equal(t, "201 Created", res.Status)
	require.Equal(t, "application/json", res.Header.Get("Content-Type"))
	require.Empty(t, res.Header.Get("X-Late"))
	require.Equal(t, `{"sum":"12"}`, string(must.OK1(io.ReadAll(res.Body))))
}
