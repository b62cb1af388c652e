package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/mattn/go-isatty"
)

// style is an ANSI escape sequence.
type style string

const (
	styleBold  style = "\033[1m"
	styleRed   style = "\033[31m"
	styleBlue  style = "\033[34m"
	styleCyan  style = "\033[36m"
	styleGray  style = "\033[90m"
	styleReset       = "\033[0m"
)

var colorsOff atomic.Bool

// DisableColors turns off ANSI styling in Format and FprintError.
func DisableColors() { colorsOff.Store(true) }

// EnableColors turns ANSI styling back on.
func EnableColors() { colorsOff.Store(false) }

func paint(text string, styles ...style) string {
	if colorsOff.Load() || len(styles) == 0 {
		return text
	}
	var b strings.Builder
	for _, s := range styles {
		b.WriteString(string(s))
	}
	b.WriteString(text)
	b.WriteString(styleReset)
	return b.String()
}

// detailWidth is the column at which Detail text is wrapped.
const detailWidth = 72

// Format renders the error for a terminal:
//
//	ERROR E110: Duplicate route pattern
//
//	  app/routes/colors.go
//
//	  Two route files derive the same URL pattern...
//
//	  Hint: Remove colors.go or colors/index.go
//	  Learn more: https://autoroute.dev/docs/errors/E110
func (e *Error) Format() string {
	var b strings.Builder

	b.WriteString("\n")
	if e.Code != "" {
		b.WriteString(paint("ERROR ", styleRed, styleBold))
		b.WriteString(paint(e.Code+": "+e.Message, styleBold))
	} else {
		b.WriteString(paint("ERROR: ", styleRed, styleBold))
		b.WriteString(paint(e.Message, styleBold))
	}
	b.WriteString("\n\n")

	if e.Location != nil {
		fmt.Fprintf(&b, "  %s\n\n", paint(e.Location.String(), styleCyan))
		if len(e.Context) > 0 {
			e.writeExcerpt(&b)
			b.WriteString("\n")
		}
	}

	if lines := wrapText(e.Detail, detailWidth); len(lines) > 0 {
		for _, line := range lines {
			fmt.Fprintf(&b, "  %s\n", line)
		}
		b.WriteString("\n")
	}

	if e.Suggestion != "" {
		fmt.Fprintf(&b, "  %s%s\n", paint("Hint: ", styleCyan), e.Suggestion)
	}
	if e.Example != "" {
		fmt.Fprintf(&b, "  %s\n", paint("Example:", styleCyan))
		for _, line := range strings.Split(e.Example, "\n") {
			fmt.Fprintf(&b, "    %s\n", line)
		}
	}
	if e.DocURL != "" {
		fmt.Fprintf(&b, "  %s%s\n", paint("Learn more: ", styleGray), paint(e.DocURL, styleBlue))
	}

	return b.String()
}

// writeExcerpt prints the context lines with a gutter, marking the error
// line and, when known, the column.
func (e *Error) writeExcerpt(b *strings.Builder) {
	first := e.Location.Line - len(e.Context)/2
	for i, line := range e.Context {
		n := first + i
		marker := "  "
		if n == e.Location.Line {
			marker = paint("→ ", styleRed)
		}
		fmt.Fprintf(b, "  %s%4d%s%s\n", marker, n, paint(" │ ", styleGray), line)

		if n == e.Location.Line && e.Location.Column > 0 {
			fmt.Fprintf(b, "        %s%s%s\n", paint("│ ", styleGray), strings.Repeat(" ", e.Location.Column-1), paint("^", styleRed))
		}
	}
}

// FormatCompact renders the error on one line: "file:line: CODE: message".
func (e *Error) FormatCompact() string {
	var parts []string
	if e.Location != nil {
		parts = append(parts, e.Location.String())
	}
	if e.Code != "" {
		parts = append(parts, e.Code)
	}
	return strings.Join(append(parts, e.Message), ": ")
}

type jsonLocation struct {
	File   string `json:"file"`
	Line   int    `json:"line,omitempty"`
	Column int    `json:"column,omitempty"`
}

type jsonError struct {
	Code       string        `json:"code,omitempty"`
	Category   Category      `json:"category"`
	Message    string        `json:"message"`
	Detail     string        `json:"detail,omitempty"`
	Location   *jsonLocation `json:"location,omitempty"`
	Suggestion string        `json:"suggestion,omitempty"`
	DocURL     string        `json:"docUrl,omitempty"`
}

// MarshalJSON encodes the error for machine-readable output.
func (e *Error) MarshalJSON() ([]byte, error) {
	out := jsonError{
		Code:       e.Code,
		Category:   e.Category,
		Message:    e.Message,
		Detail:     e.Detail,
		Suggestion: e.Suggestion,
		DocURL:     e.DocURL,
	}
	if e.Location != nil {
		out.Location = &jsonLocation{File: e.Location.File, Line: e.Location.Line, Column: e.Location.Column}
	}
	return json.Marshal(out)
}

// FormatJSON returns the error as a single-line JSON object.
func (e *Error) FormatJSON() string {
	data, err := e.MarshalJSON()
	if err != nil {
		return fmt.Sprintf(`{"message":%q}`, e.Error())
	}
	return string(data)
}

// wrapText splits text into lines no longer than width, breaking between
// words. A single word longer than width gets a line of its own.
func wrapText(text string, width int) []string {
	var lines []string
	var line string
	for _, word := range strings.Fields(text) {
		switch {
		case line == "":
			line = word
		case len(line)+1+len(word) > width:
			lines = append(lines, line)
			line = word
		default:
			line += " " + word
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}

// PrintError writes err to stderr, without colors unless stderr is a
// terminal.
func PrintError(err error) {
	fd := os.Stderr.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		DisableColors()
	}
	FprintError(os.Stderr, err)
}

// FprintError writes err to w, using Format for coded errors.
func FprintError(w io.Writer, err error) {
	var e *Error
	if stderrors.As(err, &e) {
		fmt.Fprint(w, e.Format())
		return
	}
	fmt.Fprintf(w, "\n%s %s\n\n", paint("ERROR:", styleRed, styleBold), err.Error())
}
