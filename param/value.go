package param

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

const (
	undefinedText = "undefined"
	objectText    = "[object Object]"
)

// Value is a request parameter
type Value struct {
	v       any
	present bool
}

// Absent returns the Value of a parameter that is not in the request
func Absent() Value {
	return Value{}
}

// String returns a present string Value
func String(s string) Value {
	return Value{v: s, present: true}
}

// Strings returns the Value of a repeated parameter: absent for none, a string
// for one, a list otherwise
func Strings(ss []string) Value {
	switch len(ss) {
	case 0:
		return Absent()
	case 1:
		return String(ss[0])
	}
	list := make([]any, 0, len(ss))
	for _, s := range ss {
		list = append(list, s)
	}
	return Value{v: list, present: true}
}

// JSON returns a present Value holding a decoded JSON value: string,
// json.Number, float64, bool, nil, []any or map[string]any
func JSON(v any) Value {
	return Value{v: v, present: true}
}

// Present reports whether the parameter was in the request
func (v Value) Present() bool {
	return v.present
}

// Raw returns the underlying value, nil when absent
func (v Value) Raw() any {
	return v.v
}

// String renders the value for interpolation into text
func (v Value) String() string {
	if !v.present {
		return undefinedText
	}
	return render(v.v)
}

func render(v any) string {
	switch v := v.(type) {
	case nil:
		return "null"
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case json.Number:
		// out of range numbers parse as ±Inf with an error
		f, err := v.Float64()
		if err != nil && !math.IsInf(f, 0) {
			return v.String()
		}
		return formatNumber(f)
	case float64:
		return formatNumber(v)
	case int:
		return strconv.Itoa(v)
	case []any:
		return renderList(v)
	case map[string]any:
		return objectText
	default:
		return objectText
	}
}

// renderList joins elements with ",", rendering null elements as empty
func renderList(list []any) string {
	parts := make([]string, len(list))
	for i, el := range list {
		if el != nil {
			parts[i] = render(el)
		}
	}
	return strings.Join(parts, ",")
}

// formatNumber uses the shortest representation that round-trips, in fixed
// notation for magnitudes in [1e-6, 1e21) and in exponent notation otherwise.
// Infinities are "Infinity" and "-Infinity".
func formatNumber(f float64) string {
	switch {
	case f == 0:
		return "0" // negative zero too
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	abs := math.Abs(f)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	s := strconv.FormatFloat(f, 'e', -1, 64)
	// Go pads the exponent to two digits: 1e-07
	mantissa, exp, _ := strings.Cut(s, "e")
	sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
	return mantissa + "e" + sign + digits
}

// Concat joins two values as text, the way the sum demo adds its operands.
// When both are absent there is no text to join and the result is nil.
func Concat(a, b Value) any {
	if !a.present && !b.present {
		return nil
	}
	return a.String() + b.String()
}
