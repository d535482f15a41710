package scanner

// The scanner is a single-pass, single-threaded character walker. It
// assigns every input position to exactly one lexical context (code,
// line comment, string literal, interpolation expression) and performs
// keyword substitution only where substitution is legal. Contexts form
// a stack, not a flat enum: an interpolated literal's expression region
// may contain nested literals, which may contain further interpolation,
// with strictly last-in-first-out ownership.
//
// The same walk drives three modes:
//   - forward: surface tokens -> bracket punctuation / reserved words
//   - reverse: bracket punctuation / reserved words -> surface tokens
//   - audit: no output, bracket obligations recorded as events
//
// The scanner never fails: malformed quoting and unterminated literals
// are copied through verbatim and left for the downstream compiler.
// Output always has the same line count as the input.

import (
	"bytes"
)

type frameKind uint8

const (
	frameCode frameKind = iota
	frameComment
	frameString
	frameExpr
)

// frame is one lexical context on the scan stack.
type frame struct {
	kind frameKind

	// string literal frames
	quote   byte
	triple  bool
	raw     bool
	byteLit bool
	interp  bool
	escape  bool // escapePending: next character is copied verbatim

	// interpolation expression frames
	depth int // curly depth; the expression ends when it reaches zero
}

type mode uint8

const (
	modeForward mode = iota
	modeReverse
	modeAudit
)

// Position is a 1-indexed line/column location in the source.
type Position struct {
	Line   int
	Column int
}

type scanner struct {
	source []byte
	table  *Table
	mode   mode

	pos    int
	line   int
	column int

	stack  []frame
	out    bytes.Buffer
	last   byte // last byte written, for spacing decisions
	events []Event
}

func newScanner(source []byte, table *Table, m mode) *scanner {
	s := &scanner{
		source: source,
		table:  table,
		mode:   m,
		line:   1,
		column: 1,
	}
	if m != modeAudit {
		// Substitution can only grow the output by separator spaces.
		s.out.Grow(len(source) + len(source)/16)
	}
	s.stack = append(s.stack, frame{kind: frameCode})
	return s
}

// run drives the walk to end of input. Unterminated frames left on the
// stack at that point are simply abandoned; everything they covered has
// already been copied through.
func (s *scanner) run() {
	for s.pos < len(s.source) {
		switch s.top().kind {
		case frameComment:
			s.scanComment()
		case frameString:
			s.scanString()
		default:
			s.scanCode()
		}
	}
}

func (s *scanner) top() *frame {
	return &s.stack[len(s.stack)-1]
}

func (s *scanner) push(f frame) {
	s.stack = append(s.stack, f)
}

func (s *scanner) pop() {
	s.stack = s.stack[:len(s.stack)-1]
}

// advance consumes one byte, keeping line/column bookkeeping exact.
func (s *scanner) advance() byte {
	ch := s.source[s.pos]
	s.pos++
	if ch == '\n' {
		s.line++
		s.column = 1
	} else {
		s.column++
	}
	return ch
}

func (s *scanner) peek() byte {
	if s.pos >= len(s.source) {
		return 0
	}
	return s.source[s.pos]
}

func (s *scanner) peekAt(offset int) byte {
	if s.pos+offset >= len(s.source) {
		return 0
	}
	return s.source[s.pos+offset]
}

func (s *scanner) write(b []byte) {
	if s.mode == modeAudit || len(b) == 0 {
		return
	}
	s.out.Write(b)
	s.last = b[len(b)-1]
}

func (s *scanner) writeByte(b byte) {
	if s.mode == modeAudit {
		return
	}
	s.out.WriteByte(b)
	s.last = b
}

func (s *scanner) writeString(str string) {
	if s.mode == modeAudit || str == "" {
		return
	}
	s.out.WriteString(str)
	s.last = str[len(str)-1]
}

// copyByte consumes the current byte and copies it through verbatim.
func (s *scanner) copyByte() byte {
	ch := s.advance()
	s.writeByte(ch)
	return ch
}

// scanComment copies a line comment through to (and including) the
// newline that ends it.
func (s *scanner) scanComment() {
	if s.copyByte() == '\n' {
		s.pop()
	}
}

// scanString handles one character of a string literal frame.
func (s *scanner) scanString() {
	f := s.top()

	// Escape immunity: the escaped character is copied no matter what.
	if f.escape {
		f.escape = false
		s.copyByte()
		return
	}

	ch := s.peek()

	// Closing quote run, same char and same repeat count.
	if ch == f.quote {
		if !f.triple {
			s.copyByte()
			s.pop()
			return
		}
		if s.peekAt(1) == f.quote && s.peekAt(2) == f.quote {
			s.copyByte()
			s.copyByte()
			s.copyByte()
			s.pop()
			return
		}
	}

	if !f.raw && ch == '\\' {
		f.escape = true
		s.copyByte()
		return
	}

	if f.interp && ch == '{' {
		if s.peekAt(1) == '{' {
			// Doubled brace is a literal brace.
			s.copyByte()
			s.copyByte()
			return
		}
		s.copyByte()
		s.push(frame{kind: frameExpr, depth: 1})
		return
	}

	if f.interp && ch == '}' && s.peekAt(1) == '}' {
		s.copyByte()
		s.copyByte()
		return
	}

	// Everything else, embedded newlines included, copies verbatim.
	s.copyByte()
}

// scanCode handles one step of code or interpolation-expression
// context. This is the only place substitution happens.
func (s *scanner) scanCode() {
	f := s.top()
	ch := s.peek()

	// Line comments open in code context only, never inside an
	// interpolation expression.
	if f.kind == frameCode && ch == '#' {
		s.copyByte()
		s.push(frame{kind: frameComment})
		return
	}

	if ch == '"' || ch == '\'' || isPrefixChar(ch) {
		if sf, n, ok := s.detectString(); ok {
			for i := 0; i < n; i++ {
				s.copyByte()
			}
			s.push(sf)
			return
		}
	}

	if f.kind == frameExpr {
		if s.scanExprBrace(f, ch) {
			return
		}
	}

	if s.mode == modeReverse {
		s.scanReverseCode(ch)
		return
	}
	s.scanForwardCode(ch)
}

// scanExprBrace does curly-depth bookkeeping inside an interpolation
// expression. Only curly braces count; other punctuation never ends the
// expression. Returns true if the character was fully handled.
func (s *scanner) scanExprBrace(f *frame, ch byte) bool {
	switch ch {
	case '{':
		f.depth++
		if s.mode == modeReverse {
			// Depth recorded; the brace itself still substitutes.
			return false
		}
		s.copyByte()
		return true
	case '}':
		f.depth--
		if f.depth == 0 {
			// End of the expression; back to the literal.
			s.copyByte()
			s.pop()
			return true
		}
		if s.mode == modeReverse {
			return false
		}
		s.copyByte()
		return true
	}
	return false
}

// scanForwardCode matches a maximal identifier run against the surface
// side of the table. This is the only substitution point; no substring
// or regex replacement ever occurs.
func (s *scanner) scanForwardCode(ch byte) {
	if !isIdentChar(ch) {
		s.copyByte()
		return
	}

	startPos := Position{Line: s.line, Column: s.column}
	run := s.consumeIdentRun()

	entry, ok := s.table.lookupSurface(run)
	if !ok {
		s.write(run)
		return
	}

	if s.mode == modeAudit {
		switch entry.Kind {
		case OpenBracket:
			s.events = append(s.events, Event{Open: true, Kind: entry.Bracket, Surface: entry.Surface, Pos: startPos})
		case CloseBracket:
			s.events = append(s.events, Event{Open: false, Kind: entry.Bracket, Surface: entry.Surface, Pos: startPos})
		}
		return
	}

	s.writeSpaced(entry.Text, isIdentChar(s.last), s.nextNeedsSpaceForward())
}

// scanReverseCode recognizes replacement punctuation and replacement
// reserved words, substituting the surface spelling back. Word-boundary
// rules apply to reserved words only; bracket punctuation is a single
// non-identifier character with no adjacency ambiguity.
func (s *scanner) scanReverseCode(ch byte) {
	if entry, ok := s.table.lookupBracketChar(ch); ok {
		s.advance()
		before := isIdentChar(s.last) || s.last == '"' || s.last == '\''
		s.writeSpaced(entry.Surface, before, s.nextNeedsSpaceReverse())
		return
	}

	if !isIdentChar(ch) {
		s.copyByte()
		return
	}

	run := s.consumeIdentRun()
	entry, ok := s.table.lookupKeywordText(run)
	if !ok {
		s.write(run)
		return
	}
	before := isIdentChar(s.last) || s.last == '"' || s.last == '\''
	s.writeSpaced(entry.Surface, before, s.nextNeedsSpaceReverse())
}

// consumeIdentRun consumes the maximal identifier run at the current
// position and returns it. Runs never contain newlines, so line
// bookkeeping is unaffected.
func (s *scanner) consumeIdentRun() []byte {
	start := s.pos
	for s.pos < len(s.source) && isIdentChar(s.source[s.pos]) {
		s.advance()
	}
	return s.source[start:s.pos]
}

// writeSpaced emits a replacement with a separating space on either
// side where the original had adjoining code, so the substitution never
// re-glues to a neighboring token.
func (s *scanner) writeSpaced(text string, before, after bool) {
	if before {
		s.writeByte(' ')
	}
	s.writeString(text)
	if after {
		s.writeByte(' ')
	}
}

func (s *scanner) nextNeedsSpaceForward() bool {
	ch := s.peek()
	return isIdentChar(ch) || ch == '"' || ch == '\''
}

func (s *scanner) nextNeedsSpaceReverse() bool {
	switch ch := s.peek(); {
	case isIdentChar(ch):
		return true
	case ch == '"' || ch == '\'':
		return true
	case ch == '(' || ch == ')' || ch == '{' || ch == '}' || ch == '[' || ch == ']':
		return true
	}
	return false
}

// detectString decides whether the current position opens a string
// literal: an optional case-insensitive prefix (f, r, b, u, or the
// two-letter combinations rb, br, fr, rf) followed by a quote character
// repeated once or three times. It returns the string frame and the
// opener length in bytes without consuming anything.
func (s *scanner) detectString() (frame, int, bool) {
	pl := 0
	for pl < 3 && isPrefixChar(s.peekAt(pl)) {
		pl++
	}

	var raw, byteLit, interp bool
	switch pl {
	case 0:
		// Bare quote.
	case 1:
		c := lower(s.peekAt(0))
		raw, byteLit, interp = c == 'r', c == 'b', c == 'f'
	case 2:
		a, b := lower(s.peekAt(0)), lower(s.peekAt(1))
		pair := string([]byte{a, b})
		switch pair {
		case "rb", "br", "fr", "rf":
			raw = true
			byteLit = a == 'b' || b == 'b'
			interp = a == 'f' || b == 'f'
		default:
			return frame{}, 0, false
		}
	default:
		return frame{}, 0, false
	}

	quote := s.peekAt(pl)
	if quote != '"' && quote != '\'' {
		return frame{}, 0, false
	}

	f := frame{
		kind:    frameString,
		quote:   quote,
		raw:     raw,
		byteLit: byteLit,
		interp:  interp,
	}
	if s.peekAt(pl+1) == quote && s.peekAt(pl+2) == quote {
		f.triple = true
		return f, pl + 3, true
	}
	return f, pl + 1, true
}

func isPrefixChar(ch byte) bool {
	switch lower(ch) {
	case 'f', 'r', 'b', 'u':
		return true
	}
	return false
}

func lower(ch byte) byte {
	if ch >= 'A' && ch <= 'Z' {
		return ch + ('a' - 'A')
	}
	return ch
}
