// Package param extracts request parameters from the query string, the
// headers and a JSON body, and renders them as text.
//
// A parameter is a Value: either absent or present with a string or a decoded
// JSON value. Rendering follows template-string conventions, because the demo
// responses echo parameters inside sentences:
//
//	absent             undefined
//	"A"                A
//	5, 1.5, 1e21       5, 1.5, 1e+21
//	true, null         true, null
//	["a", null, 1]     a,,1
//	{"x": 1}           [object Object]
//
// Nothing is validated. A missing parameter is not an error; it renders as
// the word undefined.
package param
