package formatter

import "go.uber.org/zap/buffer"

// SGR escape sequences, see
// https://en.wikipedia.org/wiki/ANSI_escape_code#SGR_(Select_Graphic_Rendition)_parameters
type color string

const (
	reset     color = "\x1b[0m"
	bold      color = "\x1b[1m"
	italic    color = "\x1b[3m"
	red       color = "\x1b[31m"
	green     color = "\x1b[32m"
	yellow    color = "\x1b[33m"
	blue      color = "\x1b[34m"
	magenta   color = "\x1b[35m"
	cyan      color = "\x1b[36m"
	gray      color = "\x1b[90m"
	brightYel color = "\x1b[93m"
)

// palette
const (
	debugColor       = magenta
	infoColor        = blue
	warnColor        = yellow
	errorColor       = red
	fieldColor       = green
	subFieldColor    = blue
	messageColor     = bold
	requestColor     = cyan
	callerColor      = italic
	sameDatePart     = blue
	datePunctuation  = gray
	objectPunctColor = yellow
	arrayPunctColor  = brightYel
)

// statusColor picks the color of an HTTP status code by its class
func statusColor(code float64) color {
	switch {
	case code >= 500:
		return errorColor
	case code >= 400:
		return warnColor
	case code >= 300:
		return cyan
	case code >= 200:
		return green
	}
	return reset
}

// styler writes text into the buffer, wrapped in escape sequences when color
// is on
type styler struct {
	color bool
}

func (s styler) paint(buf *buffer.Buffer, c color, text string) {
	if !s.color || text == "" {
		buf.AppendString(text)
		return
	}
	buf.AppendString(string(c))
	buf.AppendString(text)
	buf.AppendString(string(reset))
}
