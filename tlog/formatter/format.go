package formatter

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap/buffer"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

var bufferPool = buffer.NewPool()

var errNotOurs = errors.New("JSON log message in a foreign format")

// entry is one decoded log line. Special keys are taken out of fields.
type entry struct {
	ts, level, caller, msg, logger string

	// request line of thttp.Log messages, both empty if absent
	method, url string

	err       string
	haveError bool

	fields map[string]any
}

// Malformed special keys are rendered with a marker instead of failing the
// whole line: the formatter never drops data.
func (e *entry) take(key string) (string, bool) {
	val, ok := e.fields[key]
	if !ok {
		return "", false
	}
	delete(e.fields, key)
	if s, ok := val.(string); ok {
		return s, true
	}
	return fmt.Sprintf("<MALFORMED %v OF TYPE %T>", val, val), true
}

func (e *entry) mustTake(key string) string {
	if val, ok := e.take(key); ok {
		return val
	}
	return "<MISSING " + key + ">"
}

// takeRequestLine extracts method and url only when both are strings
func (e *entry) takeRequestLine() {
	method, ok1 := e.fields["method"].(string)
	url, ok2 := e.fields["url"].(string)
	if !ok1 || !ok2 {
		return
	}
	delete(e.fields, "method")
	delete(e.fields, "url")
	e.method, e.url = method, url
}

func parseEntry(logMessage []byte) (*entry, error) {
	e := &entry{}
	if err := json.Unmarshal(logMessage, &e.fields); err != nil {
		return nil, err
	}
	// JSON without a zap timestamp did not come from our encoder
	if _, ok := e.fields["ts"]; !ok {
		return nil, errNotOurs
	}

	e.level = e.mustTake("level")
	e.ts = e.mustTake("ts")
	e.caller = e.mustTake("caller")
	e.msg = e.mustTake("msg")
	e.logger, _ = e.take("logger")
	e.err, e.haveError = e.take("error")
	e.takeRequestLine()
	return e, nil
}

// JSONLogMessage renders one zap JSON log line in console format:
//
//	<ts> <LVL> <msg> [<METHOD> <url>] <key>=<value>... [error=<error>] [<logger>] (<caller>)
//
// Multiline strings, error included, follow the line in separate blocks.
//
// The parts of the timestamp shared with prevTimestamp are deemphasized when
// color is on. The returned timestamp is meant to be passed as prevTimestamp
// for the next line.
func JSONLogMessage(logMessage []byte, prevTimestamp string, color bool) (*buffer.Buffer, string, error) {
	e, err := parseEntry(logMessage)
	if err != nil {
		return nil, "", err
	}
	buf := bufferPool.Get()
	e.render(buf, styler{color: color}, prevTimestamp)
	return buf, e.ts, nil
}

func (e *entry) render(buf *buffer.Buffer, s styler, prevTimestamp string) {
	multilineError := e.haveError && strings.Contains(e.err, "\n")

	if dateTimeRx.MatchString(e.ts) {
		formatTimestamp(buf, e.ts, s, prevTimestamp)
	} else {
		formatString(buf, e.ts)
	}
	buf.AppendByte(' ')
	formatLevel(buf, e.level, s)
	buf.AppendByte(' ')
	s.paint(buf, messageColor, e.msg)

	if e.method != "" || e.url != "" {
		buf.AppendByte(' ')
		s.paint(buf, requestColor, e.method+" "+e.url)
	}

	var multiline []string
	keys := maps.Keys(e.fields)
	slices.Sort(keys)
	for _, key := range keys {
		value := e.fields[key]
		if v, ok := value.(string); ok && strings.Contains(v, "\n") {
			multiline = append(multiline, key)
			continue
		}
		buf.AppendByte(' ')
		s.paint(buf, fieldColor, key+"=")
		if code, ok := value.(float64); ok && key == "statusCode" {
			s.paint(buf, statusColor(code), strconv.FormatFloat(code, 'f', -1, 64))
			continue
		}
		formatValue(buf, value, s)
	}

	if e.haveError && !multilineError {
		buf.AppendByte(' ')
		s.paint(buf, errorColor, "error=")
		formatString(buf, e.err)
	}

	buf.AppendString(" [")
	buf.AppendString(e.logger)
	buf.AppendString("] (")
	s.paint(buf, callerColor, e.caller)
	buf.AppendString(")\n")

	if multilineError {
		formatMultilineString(buf, "error", e.err, s, errorColor)
	}
	for _, key := range multiline {
		formatMultilineString(buf, key, e.fields[key].(string), s, fieldColor)
	}
	if multilineError || len(multiline) > 0 {
		s.paint(buf, fieldColor, "----------")
		buf.AppendByte('\n')
	}
}

func formatLevel(buf *buffer.Buffer, level string, s styler) {
	switch level {
	case "debug":
		s.paint(buf, debugColor, "DBG")
	case "info":
		s.paint(buf, infoColor, "INF")
	case "warn":
		s.paint(buf, warnColor, "WRN")
	default:
		abbr := strings.ToUpper(level)
		if len(abbr) > 3 {
			abbr = abbr[:3]
		}
		s.paint(buf, errorColor, abbr)
	}
}

func formatValue(buf *buffer.Buffer, value any, s styler) {
	switch v := value.(type) {
	case float64:
		buf.AppendString(strconv.FormatFloat(v, 'f', -1, 64))
	case bool:
		buf.AppendBool(v)
	case nil:
		buf.AppendString("null")
	case string:
		if dateTimeRx.MatchString(v) {
			formatTimestamp(buf, v, s, "")
		} else {
			formatString(buf, v)
		}
	case map[string]any:
		keys := maps.Keys(v)
		slices.Sort(keys)
		s.paint(buf, objectPunctColor, "{")
		for i, key := range keys {
			if i > 0 {
				s.paint(buf, objectPunctColor, ", ")
			}
			s.paint(buf, subFieldColor, key)
			s.paint(buf, objectPunctColor, ":")
			buf.AppendByte(' ')
			formatValue(buf, v[key], s)
		}
		s.paint(buf, objectPunctColor, "}")
	case []any:
		s.paint(buf, arrayPunctColor, "[")
		for i, elem := range v {
			if i > 0 {
				s.paint(buf, arrayPunctColor, ", ")
			}
			formatValue(buf, elem, s)
		}
		s.paint(buf, arrayPunctColor, "]")
	default:
		panic(fmt.Sprintf("unexpected JSON value of type %T", value))
	}
}

var dateTimeRx = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})T(\d{2}:\d{2}:\d{2}(?:.\d+)?)(Z|[+-]\d{2}:\d{2})$`)

// formatTimestamp paints the date and time prefix shared with prev in
// sameDatePart color, so that a burst of lines shows only what changed
func formatTimestamp(buf *buffer.Buffer, ts string, s styler, prev string) {
	m := dateTimeRx.FindStringSubmatch(ts)
	shared := 0
	for shared < len(ts) && shared < len(prev) && ts[shared] == prev[shared] {
		shared++
	}

	date, tod, zone := m[1], m[2], m[3]

	common, rest := splitAt(date, shared)
	s.paint(buf, sameDatePart, common)
	buf.AppendString(rest)

	s.paint(buf, datePunctuation, "T")

	common, rest = splitAt(tod, shared-len(date)-1)
	s.paint(buf, sameDatePart, common)
	buf.AppendString(rest)

	if zone == "Z" {
		s.paint(buf, datePunctuation, "Z")
	} else {
		// non-UTC offsets are unusual enough to stay emphasized
		buf.AppendString(zone)
	}
}

func splitAt(s string, pos int) (string, string) {
	switch {
	case pos <= 0:
		return "", s
	case pos >= len(s):
		return s, ""
	}
	return s[:pos], s[pos:]
}

func formatString(buf *buffer.Buffer, s string) {
	if strings.ContainsAny(s, "\"\\") {
		fmt.Fprintf(buf, "%#q", s)
		return
	}
	buf.AppendString(strconv.Quote(s))
}

func formatMultilineString(buf *buffer.Buffer, key string, value string, s styler, c color) {
	s.paint(buf, c, "----- "+key+" -----")
	buf.AppendByte('\n')
	buf.AppendString(value)
	if !strings.HasSuffix(value, "\n") {
		buf.AppendByte('\n')
	}
}
