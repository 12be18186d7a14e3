package thttp

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ridge/basics/tlog"
	"github.com/ridge/tj"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

var testBytes = []byte(`{"first":"A","second":"B"}`)

func newTestReadCloser() io.ReadCloser {
	return io.NopCloser(bytes.NewReader(testBytes))
}

func TestBodyReaderReadAll(t *testing.T) {
	calls := 0
	br := newBodyReader(newTestReadCloser(), func(body *excerpt, eof bool) {
		calls++
		require.True(t, eof)
		require.Equal(t, testBytes, body.buf.Bytes())
	})

	data, err := io.ReadAll(br)
	require.NoError(t, err)
	require.Equal(t, testBytes, data)
	require.NoError(t, br.Close())
	require.Equal(t, 1, calls)
}

func TestBodyReaderReadPart(t *testing.T) {
	calls := 0
	br := newBodyReader(newTestReadCloser(), func(body *excerpt, eof bool) {
		calls++
		require.False(t, eof)
		require.Equal(t, testBytes[:4], body.buf.Bytes())
	})

	buf := make([]byte, 4)
	n, err := br.Read(buf)
	require.NoError(t, err)
	require.Equal(t, 4, n)
	require.Zero(t, calls)

	require.NoError(t, br.Close())
	require.Equal(t, 1, calls)
}

func TestBodyReaderNilBody(t *testing.T) {
	calls := 0
	br := newBodyReader(nil, func(body *excerpt, eof bool) {
		calls++
		require.Zero(t, body.buf.Len())
	})
	require.NoError(t, br.Close())
	require.Equal(t, 1, calls)
}

func TestExcerptCut(t *testing.T) {
	var e excerpt
	e.add([]byte(`{"first":`))
	require.Equal(t, zap.ByteString("body", []byte(`{"first":`)), e.field("body"))

	long := []byte(strings.Repeat("x", 2*maxLogBodyLen))
	e.add(long)
	e.add(long)
	require.Equal(t, maxLogBodyLen, e.buf.Len())
	require.True(t, e.cut)

	f := e.field("body")
	require.Equal(t, maxLogBodyLen+3, len(f.String))
	require.True(t, strings.HasSuffix(f.String, "..."))
}

func TestLogBodies(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	ctx := tlog.WithLogger(context.Background(), zap.New(core))

	handler := LogBodies(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.JSONEq(t, `{"first":"A","second":"B"}`, string(data))
		TextResult(zap.NewNop(), w, "The body parameters entered by you are: A and B", http.StatusOK)
	}))
	req := httptest.NewRequest(http.MethodGet, "/bdy", bytes.NewReader(testBytes))
	req.Header.Set("Content-Type", "application/json")
	res := TestCtx(ctx, handler, req)
	res.Body.Close()

	reqLogs := logs.FilterMessage("HTTP request body").All()
	require.Len(t, reqLogs, 1)
	require.Equal(t, string(testBytes), reqLogs[0].ContextMap()["body"])
	require.Equal(t, "application/json", reqLogs[0].ContextMap()["contentType"])

	resLogs := logs.FilterMessage("HTTP response body").All()
	require.Len(t, resLogs, 1)
	require.Equal(t, "The body parameters entered by you are: A and B", resLogs[0].ContextMap()["body"])
}

func TestLogBodiesSkipsBinary(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	ctx := tlog.WithLogger(context.Background(), zap.New(core))

	handler := LogBodies(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = w.Write([]byte{0, 1, 2})
	}))
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte{3, 4}))
	req.Header.Set("Content-Type", "application/octet-stream")
	res := TestCtx(ctx, handler, req)
	res.Body.Close()

	require.Zero(t, logs.Len())
}

func TestJSONResult(t *testing.T) {
	w := httptest.NewRecorder()
	JSONResult(zap.NewNop(), w, tj.O{"sum": "12"}, http.StatusOK)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "application/json", w.Header().Get("Content-Type"))
	require.JSONEq(t, `{"sum":"12"}`, w.Body.String())
}

func TestTextResult(t *testing.T) {
	w := httptest.NewRecorder()
	TextResult(zap.NewNop(), w, "Hello World!", http.StatusOK)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	require.Equal(t, "Hello World!", w.Body.String())
}
