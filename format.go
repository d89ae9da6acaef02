package plog

/*
Formatters turn payloads and context into display strings. All of them are
plain function types so a Config can swap any single one. None of them may
fail: on bad input they fall back to something printable.
*/

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

type (
	JSONFormatter       func(s string) string
	XMLFormatter        func(s string) string
	ErrorFormatter      func(err error) string
	ThreadFormatter     func(goroutineID int64) string
	StackTraceFormatter func(frames []string) string
	BorderFormatter     func(segments []string) string
)

const (
	DEFAULT_INDENT       = 4
	DEFAULT_BORDER_WIDTH = 100
)

var jsonPretty = jsoniter.Config{
	IndentionStep:          DEFAULT_INDENT,
	SortMapKeys:            true,
	UseNumber:              true,
	EscapeHTML:             false,
	ValidateJsonRawMessage: true,
}.Froze()

// DefaultJSONFormatter re-indents a JSON object or array. Anything that does
// not parse is returned as is.
func DefaultJSONFormatter(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "{") && !strings.HasPrefix(trimmed, "[") {
		return s
	}
	var v any
	if err := jsonPretty.UnmarshalFromString(trimmed, &v); err != nil {
		return s
	}
	out, err := jsonPretty.MarshalToString(v)
	if err != nil {
		return s
	}
	return out
}

// DefaultXMLFormatter re-indents an XML document. Anything that does not
// parse is returned as is.
func DefaultXMLFormatter(s string) string {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(s); err != nil || doc.Root() == nil {
		return s
	}
	doc.Indent(DEFAULT_INDENT)
	out, err := doc.WriteToString()
	if err != nil {
		return s
	}
	return strings.TrimRight(out, "\n")
}

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// DefaultErrorFormatter renders the whole causal chain of err: the outer
// message first, then "Caused by: ..." for every deeper distinct message,
// each followed by the frames of the first pkg/errors stack found at that
// depth.
func DefaultErrorFormatter(err error) string {
	if err == nil {
		return "null"
	}
	var sb strings.Builder
	last := ""
	traced := false
	for e := err; e != nil; e = errors.Unwrap(e) {
		if msg := e.Error(); msg != last || sb.Len() == 0 {
			if sb.Len() > 0 {
				sb.WriteString("\nCaused by: ")
			}
			sb.WriteString(msg)
			last, traced = msg, false
		}
		if st, ok := e.(stackTracer); ok && !traced {
			for _, f := range st.StackTrace() {
				fmt.Fprintf(&sb, "\n\tat %n(%s:%d)", f, f, f)
			}
			traced = true
		}
	}
	return sb.String()
}

func DefaultThreadFormatter(goroutineID int64) string {
	return fmt.Sprintf("Goroutine: %d", goroutineID)
}

func DefaultStackTraceFormatter(frames []string) string {
	switch len(frames) {
	case 0:
		return ""
	case 1:
		return "\t─ " + frames[0]
	}
	var sb strings.Builder
	for i, f := range frames {
		if i < len(frames)-1 {
			sb.WriteString("\t├ " + f + "\n")
		} else {
			sb.WriteString("\t└ " + f)
		}
	}
	return sb.String()
}

var (
	borderTop     = "╔" + strings.Repeat("═", DEFAULT_BORDER_WIDTH)
	borderDivider = "╟" + strings.Repeat("─", DEFAULT_BORDER_WIDTH)
	borderBottom  = "╚" + strings.Repeat("═", DEFAULT_BORDER_WIDTH)
)

// DefaultBorderFormatter draws a box around the non-empty segments, one
// divider between each two of them.
func DefaultBorderFormatter(segments []string) string {
	var sb strings.Builder
	sb.WriteString(borderTop)
	first := true
	for _, seg := range segments {
		if seg == "" {
			continue
		}
		if !first {
			sb.WriteString("\n" + borderDivider)
		}
		first = false
		for _, line := range strings.Split(seg, "\n") {
			sb.WriteString("\n║ " + line)
		}
	}
	sb.WriteString("\n" + borderBottom)
	return sb.String()
}

// joinSegments is the border-less layout: non-empty parts, one per line.
func joinSegments(segments []string) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n")
}

// formatArgs substitutes args into format; an empty format joins the args
// with ", " instead.
func formatArgs(format string, args []any) string {
	if format != "" {
		return fmt.Sprintf(format, args...)
	}
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = fmt.Sprint(a)
	}
	return strings.Join(parts, ", ")
}
