package cli

import (
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/ddmm-lang/ddmm/scanner"
)

func TestDiagnosticRenderer_RenderWithSourceContext(t *testing.T) {
	source := []byte("x = 1\ny = 2\nz = drake 1, 2 Maye\na = 3")
	diags := scanner.CheckBalance(source, scanner.Default())
	assert.Equal(t, 1, len(diags))

	renderer := NewDiagnosticRenderer(source)
	output := renderer.Render(diags[0])

	// Verify the output contains the message
	assert.Contains(t, output, "mismatched brackets")
	assert.Contains(t, output, `"drake"`)
	assert.Contains(t, output, `"Maye"`)

	// Verify the output contains source lines around the problem
	assert.Contains(t, output, "z = drake 1, 2 Maye")
	assert.Contains(t, output, "y = 2")

	// Verify the caret is present
	assert.Contains(t, output, "^")

	// Verify the source lines are indented with 3 spaces
	lines := strings.Split(output, "\n")
	foundIndentedLine := false
	for _, line := range lines {
		if strings.HasPrefix(line, "   ") && strings.Contains(line, "z = drake") {
			foundIndentedLine = true
			break
		}
	}
	assert.True(t, foundIndentedLine, "Expected indented source lines")
}

func TestDiagnosticRenderer_RenderWithoutSource(t *testing.T) {
	diags := scanner.CheckBalance([]byte("DRAKE"), scanner.Default())
	assert.Equal(t, 1, len(diags))

	renderer := NewDiagnosticRenderer(nil)
	output := renderer.Render(diags[0])

	// Without source there is no context block, just the message.
	assert.Contains(t, output, "unclosed")
	assert.NotContains(t, output, "\n")
}

func TestDiagnosticRenderer_RenderAll(t *testing.T) {
	source := []byte("drake Maye\nmaye")
	diags := scanner.CheckBalance(source, scanner.Default())
	assert.Equal(t, 2, len(diags))

	renderer := NewDiagnosticRenderer(source)
	output := renderer.RenderAll(diags)

	assert.Contains(t, output, "mismatched brackets")
	assert.Contains(t, output, "unexpected closing")

	assert.Equal(t, "", renderer.RenderAll(nil))
}

func TestDiagnosticRenderer_BoundsChecking(t *testing.T) {
	// Problem on the first line; the context window must not underflow.
	source := []byte("drake 1, 2 Maye\nx = 1")
	diags := scanner.CheckBalance(source, scanner.Default())
	assert.Equal(t, 1, len(diags))

	renderer := NewDiagnosticRenderer(source)
	output := renderer.Render(diags[0])

	assert.Contains(t, output, "drake 1, 2 Maye")
}

func TestDiagnosticRenderer_CaretPastEndOfLine(t *testing.T) {
	// Unclosed opener at end of input; the caret column may point one
	// past the final character.
	source := []byte("f drake")
	diags := scanner.CheckBalance(source, scanner.Default())
	assert.Equal(t, 1, len(diags))

	renderer := NewDiagnosticRenderer(source)
	output := renderer.Render(diags[0])

	assert.Contains(t, output, "^")
}
