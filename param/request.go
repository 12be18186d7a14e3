package param

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
)

// MaxBodySize is the largest JSON body ReadBody accepts
const MaxBodySize = 100 << 10

// Query returns a query string parameter. Repeated keys give a list.
//
// Pairs that url.ParseQuery rejects are kept: a ";" is part of the value, and
// a key or value with a bad escape such as "100%" is taken verbatim.
func Query(r *http.Request, key string) Value {
	return Strings(parseQuery(r.URL.RawQuery)[key])
}

func parseQuery(raw string) map[string][]string {
	values := map[string][]string{}
	for _, pair := range strings.Split(raw, "&") {
		if pair == "" {
			continue
		}
		k, v, _ := strings.Cut(pair, "=")
		k = unescape(k)
		values[k] = append(values[k], unescape(v))
	}
	return values
}

func unescape(s string) string {
	if u, err := url.QueryUnescape(s); err == nil {
		return u
	}
	return s
}

// Header returns a request header, case-insensitively. Repeated headers are
// folded into one value separated by ", ".
func Header(r *http.Request, key string) Value {
	values := r.Header.Values(key)
	if len(values) == 0 {
		return Absent()
	}
	return String(strings.Join(values, ", "))
}

// Headers returns all request headers with lower-case names and repeated
// headers folded, for logging
func Headers(r *http.Request) map[string]string {
	headers := make(map[string]string, len(r.Header)+1)
	for name, values := range r.Header {
		headers[strings.ToLower(name)] = strings.Join(values, ", ")
	}
	// net/http moves Host out of the header map
	if r.Host != "" {
		headers["host"] = r.Host
	}
	return headers
}

// Body is a parsed JSON request body
type Body struct {
	v any
}

// Get returns a field of the body. Fields of a body that is not a JSON object
// are absent.
func (b Body) Get(key string) Value {
	obj, ok := b.v.(map[string]any)
	if !ok {
		return Absent()
	}
	v, ok := obj[key]
	if !ok {
		return Absent()
	}
	return JSON(v)
}

// Raw returns the decoded body: map[string]any or []any
func (b Body) Raw() any {
	if b.v == nil {
		return map[string]any{}
	}
	return b.v
}

// ErrBody is returned by ReadBody for a body that cannot be accepted. Status
// is the HTTP status to answer with.
type ErrBody struct {
	Status int
	Err    error
}

func (e ErrBody) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error
func (e ErrBody) Unwrap() error {
	return e.Err
}

// ReadBody parses the request body as JSON.
//
// The body is only parsed when Content-Type is application/json; otherwise,
// and for an empty body, the result is an empty Body. Only an object or an
// array is accepted at the top level. A malformed body is ErrBody with status
// 400, a body over MaxBodySize is ErrBody with status 413.
func ReadBody(w http.ResponseWriter, r *http.Request) (Body, error) {
	if r.Body == nil || !isJSON(r.Header.Get("Content-Type")) {
		return Body{}, nil
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodySize))
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return Body{}, ErrBody{Status: http.StatusRequestEntityTooLarge, Err: fmt.Errorf("request entity too large: limit is %d bytes", maxErr.Limit)}
	}
	if err != nil {
		return Body{}, ErrBody{Status: http.StatusBadRequest, Err: fmt.Errorf("failed to read request body: %w", err)}
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return Body{}, nil
	}
	if data[0] != '{' && data[0] != '[' {
		return Body{}, ErrBody{Status: http.StatusBadRequest, Err: fmt.Errorf("unexpected token %q in JSON body, expected an object or an array", data[0])}
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return Body{}, ErrBody{Status: http.StatusBadRequest, Err: fmt.Errorf("malformed JSON body: %w", err)}
	}
	if dec.More() {
		return Body{}, ErrBody{Status: http.StatusBadRequest, Err: errors.New("malformed JSON body: unexpected data after the top-level value")}
	}
	return Body{v: v}, nil
}

func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	return err == nil && mediaType == "application/json"
}
