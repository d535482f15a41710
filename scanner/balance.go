package scanner

import "fmt"

// Event is one bracket obligation observed by the audit walk: a surface
// open or close token in substitution-enabled context.
type Event struct {
	Open    bool
	Kind    BracketKind
	Surface string
	Pos     Position
}

// Events walks the source with the full string/comment/interpolation
// classifier and returns every bracket token it sees, in order. Tokens
// inside string literals and comments are never reported.
func Events(source []byte, table *Table) []Event {
	s := newScanner(source, table, modeAudit)
	s.run()
	return s.events
}

// DiagnosticKind classifies a balance inconsistency.
type DiagnosticKind uint8

const (
	// Mismatch: a closer of the wrong kind for the innermost opener.
	Mismatch DiagnosticKind = iota
	// Unclosed: an opener with no closer by end of input.
	Unclosed
	// UnexpectedCloser: a closer with no opener on the stack.
	UnexpectedCloser
)

func (k DiagnosticKind) String() string {
	switch k {
	case Mismatch:
		return "mismatch"
	case Unclosed:
		return "unclosed"
	case UnexpectedCloser:
		return "unexpected-closer"
	}
	return "UNKNOWN"
}

// Diagnostic is a structured report of one bracket-nesting
// inconsistency. Mismatch and UnexpectedCloser report at the closer's
// position, Unclosed at the opener's. Diagnostics are values, never
// control-flow errors; the caller decides whether they are fatal.
type Diagnostic struct {
	Kind DiagnosticKind
	Pos  Position

	Expected BracketKind // Mismatch, Unclosed: the opened kind
	Found    BracketKind // Mismatch, UnexpectedCloser: the closer's kind

	Opener  string   // surface spelling of the opener, if any
	Closer  string   // surface spelling of the closer, if any
	OpenPos Position // where the opener was seen (Mismatch, Unclosed)
}

// Message renders the diagnostic in the dialect's error wording.
func (d Diagnostic) Message() string {
	switch d.Kind {
	case Mismatch:
		return fmt.Sprintf("mismatched brackets: opened with %q (%s) on line %d but closed with %q (%s)",
			d.Opener, d.Expected, d.OpenPos.Line, d.Closer, d.Found)
	case Unclosed:
		return fmt.Sprintf("unclosed %q (%s)", d.Opener, d.Expected)
	case UnexpectedCloser:
		return fmt.Sprintf("unexpected closing %q (%s) with no matching opener", d.Closer, d.Found)
	}
	return "unknown balance diagnostic"
}

// CheckBalance audits bracket nesting without rendering any output. It
// does not short-circuit: every inconsistency in the input is reported
// in the order found, followed by one Unclosed diagnostic per opener
// still outstanding at end of input.
func CheckBalance(source []byte, table *Table) []Diagnostic {
	type open struct {
		kind    BracketKind
		surface string
		pos     Position
	}

	var diags []Diagnostic
	var stack []open

	for _, ev := range Events(source, table) {
		if ev.Open {
			stack = append(stack, open{kind: ev.Kind, surface: ev.Surface, pos: ev.Pos})
			continue
		}

		if len(stack) == 0 {
			diags = append(diags, Diagnostic{
				Kind:   UnexpectedCloser,
				Pos:    ev.Pos,
				Found:  ev.Kind,
				Closer: ev.Surface,
			})
			continue
		}

		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top.kind != ev.Kind {
			diags = append(diags, Diagnostic{
				Kind:     Mismatch,
				Pos:      ev.Pos,
				Expected: top.kind,
				Found:    ev.Kind,
				Opener:   top.surface,
				Closer:   ev.Surface,
				OpenPos:  top.pos,
			})
		}
	}

	for _, o := range stack {
		diags = append(diags, Diagnostic{
			Kind:     Unclosed,
			Pos:      o.pos,
			Expected: o.kind,
			Opener:   o.surface,
		})
	}

	return diags
}
