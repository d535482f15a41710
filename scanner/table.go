package scanner

import "fmt"

// BracketKind identifies one of the three bracket families a surface
// token can map to.
type BracketKind uint8

const (
	Paren BracketKind = iota
	Curly
	Square
)

var bracketNames = map[BracketKind]string{
	Paren:  "paren",
	Curly:  "curly brace",
	Square: "square bracket",
}

func (k BracketKind) String() string {
	if name, ok := bracketNames[k]; ok {
		return name
	}
	return "UNKNOWN"
}

// openChars and closeChars map a bracket kind to its punctuation.
var (
	openChars  = [...]byte{Paren: '(', Curly: '{', Square: '['}
	closeChars = [...]byte{Paren: ')', Curly: '}', Square: ']'}
)

// ReplacementKind tags what a surface token substitutes to.
type ReplacementKind uint8

const (
	// OpenBracket replaces the token with opening punctuation.
	OpenBracket ReplacementKind = iota
	// CloseBracket replaces the token with closing punctuation.
	CloseBracket
	// KeywordText replaces the token with a reserved word.
	KeywordText
)

// Entry is a single mapping in a keyword table. Surface is the spelling
// used in the source dialect; Text is the canonical replacement. Lookups
// are exact and case-sensitive: distinct-case spellings of the same word
// are distinct entries.
type Entry struct {
	Surface string
	Kind    ReplacementKind
	Bracket BracketKind // bracket entries only
	Text    string      // filled by NewTable for bracket entries
}

// Table is an immutable, ordered keyword table. It is built once and
// safe for concurrent reads; scans never mutate it.
type Table struct {
	entries   []Entry
	bySurface map[string]int
	byText    map[string]int
	openers   map[BracketKind]string // surface spelling per opener kind
	closers   map[BracketKind]string
}

// NewTable builds a keyword table from entries and validates its
// invariants: unique identifier-shaped surfaces, unique replacement
// texts, and exactly one opener and one closer per bracket kind used.
func NewTable(entries []Entry) (*Table, error) {
	t := &Table{
		entries:   make([]Entry, 0, len(entries)),
		bySurface: make(map[string]int, len(entries)),
		byText:    make(map[string]int, len(entries)),
		openers:   make(map[BracketKind]string),
		closers:   make(map[BracketKind]string),
	}

	for _, e := range entries {
		if !isIdentWord(e.Surface) {
			return nil, fmt.Errorf("surface token %q is not an identifier", e.Surface)
		}
		if _, dup := t.bySurface[e.Surface]; dup {
			return nil, fmt.Errorf("duplicate surface token %q", e.Surface)
		}

		switch e.Kind {
		case OpenBracket:
			if _, dup := t.openers[e.Bracket]; dup {
				return nil, fmt.Errorf("duplicate opener for %s", e.Bracket)
			}
			e.Text = string(openChars[e.Bracket])
			t.openers[e.Bracket] = e.Surface
		case CloseBracket:
			if _, dup := t.closers[e.Bracket]; dup {
				return nil, fmt.Errorf("duplicate closer for %s", e.Bracket)
			}
			e.Text = string(closeChars[e.Bracket])
			t.closers[e.Bracket] = e.Surface
		case KeywordText:
			if !isIdentWord(e.Text) {
				return nil, fmt.Errorf("replacement %q for %q is not an identifier", e.Text, e.Surface)
			}
		default:
			return nil, fmt.Errorf("entry %q has unknown replacement kind", e.Surface)
		}

		if _, dup := t.byText[e.Text]; dup {
			return nil, fmt.Errorf("duplicate replacement %q", e.Text)
		}

		idx := len(t.entries)
		t.entries = append(t.entries, e)
		t.bySurface[e.Surface] = idx
		t.byText[e.Text] = idx
	}

	// Every opener needs its closer and vice versa.
	for kind, surface := range t.openers {
		if _, ok := t.closers[kind]; !ok {
			return nil, fmt.Errorf("opener %q (%s) has no closer", surface, kind)
		}
	}
	for kind, surface := range t.closers {
		if _, ok := t.openers[kind]; !ok {
			return nil, fmt.Errorf("closer %q (%s) has no opener", surface, kind)
		}
	}

	return t, nil
}

// Default returns the Drake Maye table: three case-distinguished bracket
// pairs plus the reserved-word aliases from the language reference.
func Default() *Table {
	t, err := NewTable([]Entry{
		{Surface: "drake", Kind: OpenBracket, Bracket: Paren},
		{Surface: "maye", Kind: CloseBracket, Bracket: Paren},
		{Surface: "Drake", Kind: OpenBracket, Bracket: Curly},
		{Surface: "Maye", Kind: CloseBracket, Bracket: Curly},
		{Surface: "DRAKE", Kind: OpenBracket, Bracket: Square},
		{Surface: "MAYE", Kind: CloseBracket, Bracket: Square},
		{Surface: "Recipe", Kind: KeywordText, Text: "import"},
		{Surface: "Bake", Kind: KeywordText, Text: "from"},
		{Surface: "throw", Kind: KeywordText, Text: "def"},
		{Surface: "touchdown", Kind: KeywordText, Text: "return"},
		{Surface: "ann", Kind: KeywordText, Text: "and"},
	})
	if err != nil {
		panic(err) // the built-in table is statically valid
	}
	return t
}

// Entries returns the table entries in declaration order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// lookupSurface resolves an identifier run against the surface side.
func (t *Table) lookupSurface(word []byte) (Entry, bool) {
	if idx, ok := t.bySurface[string(word)]; ok {
		return t.entries[idx], true
	}
	return Entry{}, false
}

// lookupKeywordText resolves an identifier run against the replacement
// side. Only KeywordText entries match; bracket punctuation is resolved
// by lookupBracketChar.
func (t *Table) lookupKeywordText(word []byte) (Entry, bool) {
	if idx, ok := t.byText[string(word)]; ok {
		e := t.entries[idx]
		if e.Kind == KeywordText {
			return e, true
		}
	}
	return Entry{}, false
}

// lookupBracketChar resolves a single punctuation character against the
// replacement side.
func (t *Table) lookupBracketChar(ch byte) (Entry, bool) {
	if idx, ok := t.byText[string([]byte{ch})]; ok {
		e := t.entries[idx]
		if e.Kind != KeywordText {
			return e, true
		}
	}
	return Entry{}, false
}

func isIdentChar(ch byte) bool {
	return ch == '_' ||
		(ch >= 'a' && ch <= 'z') ||
		(ch >= 'A' && ch <= 'Z') ||
		(ch >= '0' && ch <= '9') ||
		ch >= 0x80 // UTF-8 multi-byte character
}

func isIdentWord(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isIdentChar(s[i]) {
			return false
		}
	}
	return s[0] < '0' || s[0] > '9'
}
