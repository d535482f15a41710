package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/ddmm-lang/ddmm/scanner"
)

var (
	errCaretStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#FF5F87", Dark: "#FF5F87"})
	errContextStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#808080", Dark: "#808080"})
)

// DiagnosticRenderer renders balance diagnostics with terminal styling
// and source context.
type DiagnosticRenderer struct {
	source []byte
}

// NewDiagnosticRenderer creates a renderer with source content for context.
func NewDiagnosticRenderer(source []byte) *DiagnosticRenderer {
	return &DiagnosticRenderer{source: source}
}

// Render formats a single diagnostic with styling and context.
func (r *DiagnosticRenderer) Render(d scanner.Diagnostic) string {
	if r.source == nil {
		return errorStyle.Render(d.Message())
	}
	return r.renderWithSourceContext(d.Pos, d.Message())
}

// RenderAll formats multiple diagnostics, separating them with blank lines.
func (r *DiagnosticRenderer) RenderAll(diags []scanner.Diagnostic) string {
	if len(diags) == 0 {
		return ""
	}

	var buf strings.Builder
	for i, d := range diags {
		buf.WriteString(r.Render(d))

		if i < len(diags)-1 {
			buf.WriteString("\n\n")
		}
	}

	return buf.String()
}

func (r *DiagnosticRenderer) renderWithSourceContext(pos scanner.Position, message string) string {
	var buf strings.Builder

	buf.WriteString(errorStyle.Render(message))
	buf.WriteString("\n\n")

	sourceLines := strings.Split(string(r.source), "\n")

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
		buf.WriteString(errContextStyle.Render(sourceLines[i]))
		buf.WriteByte('\n')

		if i == pos.Line-1 && pos.Column > 0 {
			buf.WriteString("   ")
			// Byte column; measure display width of the prefix so the
			// caret stays aligned past multi-byte characters.
			line := sourceLines[i]
			prefix := line
			if pos.Column-1 < len(line) {
				prefix = line[:pos.Column-1]
			}
			buf.WriteString(strings.Repeat(" ", runewidth.StringWidth(prefix)))
			buf.WriteString(errCaretStyle.Render("^"))
			buf.WriteByte('\n')
		}
	}

	return buf.String()
}
