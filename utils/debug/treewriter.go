// Package debug has helpers producing human readable dumps for debug reports.
package debug

import (
	"fmt"
	"strconv"
	"strings"
)

const defaultIndent = "  "

// TreeWriter accumulates an indented, line oriented tree dump.
type TreeWriter struct {
	w      *strings.Builder
	indent string
	limit  int
}

// Option modifies TreeWriter behavior.
type Option func(*TreeWriter)

// WithIndent sets string used for a single level of indentation.
func WithIndent(indent string) Option {
	return func(tw *TreeWriter) {
		tw.indent = indent
	}
}

// WithTextLimit truncates text blocks longer than n runes, 0 means no limit.
func WithTextLimit(n int) Option {
	return func(tw *TreeWriter) {
		tw.limit = max(n, 0)
	}
}

func NewTreeWriter(opts ...Option) *TreeWriter {
	tw := &TreeWriter{
		w:      &strings.Builder{},
		indent: defaultIndent,
	}
	for _, opt := range opts {
		opt(tw)
	}
	return tw
}

func (tw *TreeWriter) String() string {
	return tw.w.String()
}

// Line writes formatted line at requested depth.
func (tw *TreeWriter) Line(depth int, format string, args ...any) {
	tw.pad(depth)
	fmt.Fprintf(tw.w, format, args...)
	tw.w.WriteByte('\n')
}

// TextBlock writes labeled character data, quoted so whitespace is visible.
func (tw *TreeWriter) TextBlock(depth int, label, value string) {
	tw.pad(depth)
	tw.w.WriteString(label)
	tw.w.WriteString(": ")
	tw.w.WriteString(encodeText(truncate(value, tw.limit)))
	tw.w.WriteByte('\n')
}

func (tw *TreeWriter) pad(depth int) {
	for range depth {
		tw.w.WriteString(tw.indent)
	}
}

func truncate(s string, limit int) string {
	if limit == 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}

func encodeText(raw string) string {
	if raw == "" {
		return raw
	}
	return strconv.Quote(raw)
}
