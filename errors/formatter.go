// Package errors renders balance diagnostics for different consumers.
// The scanner reports problems as plain values; this package owns their
// presentation so the CLI, the REPL, and machine consumers can share
// one wording.
//
// Two implementations are provided:
//   - TextFormatter: command-line output with source context and a caret
//   - JSONFormatter: structured JSON for tooling
package errors

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/ddmm-lang/ddmm/scanner"
)

// Formatter renders diagnostics for output.
type Formatter interface {
	// Format renders a single diagnostic.
	Format(d scanner.Diagnostic) string

	// FormatAll renders multiple diagnostics.
	FormatAll(diags []scanner.Diagnostic) string
}

// TextFormatter renders diagnostics for command-line output.
type TextFormatter struct {
	filename      string
	sourceContent []byte
}

// TextFormatterOption configures a TextFormatter.
type TextFormatterOption func(*TextFormatter)

// WithSource sets the source content used to show context lines around
// each diagnostic.
func WithSource(source []byte) TextFormatterOption {
	return func(tf *TextFormatter) {
		tf.sourceContent = source
	}
}

// WithFilename prefixes each diagnostic with a filename:line:column
// location.
func WithFilename(name string) TextFormatterOption {
	return func(tf *TextFormatter) {
		tf.filename = name
	}
}

// NewTextFormatter creates a new text formatter.
func NewTextFormatter(opts ...TextFormatterOption) *TextFormatter {
	tf := &TextFormatter{}
	for _, opt := range opts {
		opt(tf)
	}
	return tf
}

// Format renders a single diagnostic, with source context when the
// formatter carries the source.
func (tf *TextFormatter) Format(d scanner.Diagnostic) string {
	msg := d.Message()
	if tf.filename != "" {
		msg = fmt.Sprintf("%s:%d:%d: %s", tf.filename, d.Pos.Line, d.Pos.Column, msg)
	}

	if tf.sourceContent == nil {
		return msg
	}
	return tf.formatWithSourceContext(d.Pos, msg)
}

// FormatAll renders multiple diagnostics, separated by blank lines.
func (tf *TextFormatter) FormatAll(diags []scanner.Diagnostic) string {
	if len(diags) == 0 {
		return ""
	}

	var buf bytes.Buffer
	for i, d := range diags {
		buf.WriteString(tf.Format(d))
		if i < len(diags)-1 {
			buf.WriteString("\n\n")
		}
	}

	return buf.String()
}

// formatWithSourceContext shows the message followed by the source
// lines around the position, with a caret under the offending column.
func (tf *TextFormatter) formatWithSourceContext(pos scanner.Position, message string) string {
	var buf bytes.Buffer

	buf.WriteString(message)
	buf.WriteString("\n\n")

	sourceLines := strings.Split(string(tf.sourceContent), "\n")

	startLine := pos.Line - 3
	endLine := pos.Line + 1
	if startLine < 0 {
		startLine = 0
	}
	if endLine >= len(sourceLines) {
		endLine = len(sourceLines) - 1
	}

	for i := startLine; i <= endLine; i++ {
		if i >= len(sourceLines) {
			break
		}
		buf.WriteString("   ")
		buf.WriteString(sourceLines[i])
		buf.WriteByte('\n')

		if i == pos.Line-1 && pos.Column > 0 {
			buf.WriteString("   ")
			// The column is a byte offset; measure the display width
			// of everything before it so the caret lines up even when
			// the line holds wide or multi-byte characters.
			line := sourceLines[i]
			prefix := line
			if pos.Column-1 < len(line) {
				prefix = line[:pos.Column-1]
			}
			buf.WriteString(strings.Repeat(" ", runewidth.StringWidth(prefix)))
			buf.WriteString("^\n")
		}
	}

	return buf.String()
}

// JSONFormatter renders diagnostics as JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// DiagnosticJSON is the wire shape of a single diagnostic.
type DiagnosticJSON struct {
	Kind     string        `json:"kind"`
	Message  string        `json:"message"`
	Position PositionJSON  `json:"position"`
	Opener   string        `json:"opener,omitempty"`
	Closer   string        `json:"closer,omitempty"`
	OpenedAt *PositionJSON `json:"opened_at,omitempty"`
}

// PositionJSON is a source position in JSON form.
type PositionJSON struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Format renders a single diagnostic as JSON.
func (jf *JSONFormatter) Format(d scanner.Diagnostic) string {
	data, _ := json.Marshal(jf.toJSON(d))
	return string(data)
}

// FormatAll renders multiple diagnostics as an indented JSON array.
func (jf *JSONFormatter) FormatAll(diags []scanner.Diagnostic) string {
	data, _ := json.MarshalIndent(jf.FormatAllToSlice(diags), "", "  ")
	return string(data)
}

// FormatAllToSlice returns diagnostics as a slice of DiagnosticJSON.
func (jf *JSONFormatter) FormatAllToSlice(diags []scanner.Diagnostic) []DiagnosticJSON {
	result := make([]DiagnosticJSON, 0, len(diags))
	for _, d := range diags {
		result = append(result, jf.toJSON(d))
	}
	return result
}

func (jf *JSONFormatter) toJSON(d scanner.Diagnostic) DiagnosticJSON {
	out := DiagnosticJSON{
		Kind:     d.Kind.String(),
		Message:  d.Message(),
		Position: PositionJSON{Line: d.Pos.Line, Column: d.Pos.Column},
		Opener:   d.Opener,
		Closer:   d.Closer,
	}
	if d.Kind == scanner.Mismatch {
		out.OpenedAt = &PositionJSON{Line: d.OpenPos.Line, Column: d.OpenPos.Column}
	}
	return out
}
