package scanner

import (
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func checkStr(t *testing.T, input string) []Diagnostic {
	t.Helper()
	return CheckBalance([]byte(input), Default())
}

func TestCheckBalanceClean(t *testing.T) {
	tests := []string{
		"drake maye",
		"drake Drake DRAKE MAYE Maye maye",
		"x = DRAKE 1, 2 MAYE",
		"",
		"x = 1 + 2",
		`"drake"`,                 // opener inside a string is invisible
		"# drake",                 // opener inside a comment is invisible
		`f"drake"`,                // literal text of an f-string
		`f"{f drake maye}"`,       // balanced inside interpolation
		"drakesmith = mayefield",  // word boundaries hold for the audit too
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			assert.Equal(t, 0, len(checkStr(t, input)))
		})
	}
}

func TestCheckBalanceMismatch(t *testing.T) {
	diags := checkStr(t, "x = drake 1, 2 Maye")

	assert.Equal(t, 1, len(diags))
	d := diags[0]
	assert.Equal(t, Mismatch, d.Kind)
	assert.Equal(t, Paren, d.Expected)
	assert.Equal(t, Curly, d.Found)
	assert.Equal(t, "drake", d.Opener)
	assert.Equal(t, "Maye", d.Closer)
	assert.Equal(t, 1, d.Pos.Line)
	assert.Equal(t, 16, d.Pos.Column)
	assert.Equal(t, Position{Line: 1, Column: 5}, d.OpenPos)
}

func TestCheckBalanceMismatchLine(t *testing.T) {
	diags := checkStr(t, "drake\n1, 2,\n3 Maye")

	assert.Equal(t, 1, len(diags))
	assert.Equal(t, Mismatch, diags[0].Kind)
	assert.Equal(t, 3, diags[0].Pos.Line)
	assert.Equal(t, 1, diags[0].OpenPos.Line)
}

func TestCheckBalanceUnclosed(t *testing.T) {
	diags := checkStr(t, "f drake x")

	assert.Equal(t, 1, len(diags))
	d := diags[0]
	assert.Equal(t, Unclosed, d.Kind)
	assert.Equal(t, Paren, d.Expected)
	assert.Equal(t, "drake", d.Opener)
	assert.Equal(t, Position{Line: 1, Column: 3}, d.Pos)
}

func TestCheckBalanceUnexpectedCloser(t *testing.T) {
	diags := checkStr(t, "maye")

	assert.Equal(t, 1, len(diags))
	d := diags[0]
	assert.Equal(t, UnexpectedCloser, d.Kind)
	assert.Equal(t, Paren, d.Found)
	assert.Equal(t, "maye", d.Closer)
}

func TestCheckBalanceReportsAll(t *testing.T) {
	// Two mismatches and one trailing unclosed opener; the audit never
	// short-circuits.
	diags := checkStr(t, "drake Maye\nDRAKE maye\ndrake")

	assert.Equal(t, 3, len(diags))
	assert.Equal(t, Mismatch, diags[0].Kind)
	assert.Equal(t, Mismatch, diags[1].Kind)
	assert.Equal(t, 2, diags[1].Pos.Line)
	assert.Equal(t, Unclosed, diags[2].Kind)
	assert.Equal(t, 3, diags[2].Pos.Line)
}

func TestCheckBalanceStringAndCommentBlind(t *testing.T) {
	// Only the bare opener on line 3 counts.
	input := "s = 'drake maye maye'\n# maye maye\ndrake"
	diags := checkStr(t, input)

	assert.Equal(t, 1, len(diags))
	assert.Equal(t, Unclosed, diags[0].Kind)
	assert.Equal(t, 3, diags[0].Pos.Line)
}

func TestCheckBalanceInterpolation(t *testing.T) {
	diags := checkStr(t, `f"{x DRAKE k}"`)

	assert.Equal(t, 1, len(diags))
	assert.Equal(t, Unclosed, diags[0].Kind)
	assert.Equal(t, Square, diags[0].Expected)
}

func TestDiagnosticMessages(t *testing.T) {
	diags := checkStr(t, "drake\nMaye")
	assert.Equal(t, 1, len(diags))

	msg := diags[0].Message()
	assert.True(t, strings.Contains(msg, "paren"))
	assert.True(t, strings.Contains(msg, "curly brace"))
	assert.True(t, strings.Contains(msg, "line 1"))

	unclosed := checkStr(t, "DRAKE")[0].Message()
	assert.True(t, strings.Contains(unclosed, "unclosed"))
	assert.True(t, strings.Contains(unclosed, "square bracket"))

	unexpected := checkStr(t, "MAYE")[0].Message()
	assert.True(t, strings.Contains(unexpected, "unexpected closing"))
}

func TestEvents(t *testing.T) {
	events := Events([]byte("f drake 'maye' maye"), Default())

	assert.Equal(t, 2, len(events))
	assert.True(t, events[0].Open)
	assert.Equal(t, Paren, events[0].Kind)
	assert.Equal(t, "drake", events[0].Surface)
	assert.Equal(t, Position{Line: 1, Column: 3}, events[0].Pos)
	assert.False(t, events[1].Open)
	assert.Equal(t, Position{Line: 1, Column: 16}, events[1].Pos)
}
