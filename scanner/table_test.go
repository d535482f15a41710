package scanner

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestDefaultTable(t *testing.T) {
	table := Default()
	entries := table.Entries()

	assert.Equal(t, 11, len(entries))

	// Case sensitivity is a first-class property of each entry.
	open, ok := table.lookupSurface([]byte("drake"))
	assert.True(t, ok)
	assert.Equal(t, Paren, open.Bracket)
	assert.Equal(t, "(", open.Text)

	curly, ok := table.lookupSurface([]byte("Drake"))
	assert.True(t, ok)
	assert.Equal(t, Curly, curly.Bracket)

	square, ok := table.lookupSurface([]byte("DRAKE"))
	assert.True(t, ok)
	assert.Equal(t, Square, square.Bracket)

	_, ok = table.lookupSurface([]byte("dRaKe"))
	assert.False(t, ok)

	kw, ok := table.lookupSurface([]byte("Recipe"))
	assert.True(t, ok)
	assert.Equal(t, KeywordText, kw.Kind)
	assert.Equal(t, "import", kw.Text)
}

func TestTableReplacementLookups(t *testing.T) {
	table := Default()

	e, ok := table.lookupBracketChar('[')
	assert.True(t, ok)
	assert.Equal(t, "DRAKE", e.Surface)

	_, ok = table.lookupBracketChar('<')
	assert.False(t, ok)

	e, ok = table.lookupKeywordText([]byte("return"))
	assert.True(t, ok)
	assert.Equal(t, "touchdown", e.Surface)

	// Bracket punctuation never resolves through the keyword side.
	_, ok = table.lookupKeywordText([]byte("("))
	assert.False(t, ok)
}

func TestNewTableInvariants(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
	}{
		{
			name: "duplicate surface",
			entries: []Entry{
				{Surface: "op", Kind: OpenBracket, Bracket: Paren},
				{Surface: "op", Kind: CloseBracket, Bracket: Paren},
			},
		},
		{
			name: "opener without closer",
			entries: []Entry{
				{Surface: "op", Kind: OpenBracket, Bracket: Paren},
			},
		},
		{
			name: "closer without opener",
			entries: []Entry{
				{Surface: "cl", Kind: CloseBracket, Bracket: Curly},
			},
		},
		{
			name: "two openers for one kind",
			entries: []Entry{
				{Surface: "op", Kind: OpenBracket, Bracket: Paren},
				{Surface: "op2", Kind: OpenBracket, Bracket: Paren},
				{Surface: "cl", Kind: CloseBracket, Bracket: Paren},
			},
		},
		{
			name: "non-identifier surface",
			entries: []Entry{
				{Surface: "not a word", Kind: KeywordText, Text: "import"},
			},
		},
		{
			name: "non-identifier replacement text",
			entries: []Entry{
				{Surface: "word", Kind: KeywordText, Text: "two words"},
			},
		},
		{
			name: "duplicate replacement text",
			entries: []Entry{
				{Surface: "a", Kind: KeywordText, Text: "import"},
				{Surface: "b", Kind: KeywordText, Text: "import"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTable(tt.entries)
			assert.Error(t, err)
		})
	}
}

func TestNewTableValid(t *testing.T) {
	table, err := NewTable([]Entry{
		{Surface: "open", Kind: OpenBracket, Bracket: Square},
		{Surface: "shut", Kind: CloseBracket, Bracket: Square},
		{Surface: "giveback", Kind: KeywordText, Text: "return"},
	})
	assert.NoError(t, err)

	e, ok := table.lookupSurface([]byte("open"))
	assert.True(t, ok)
	assert.Equal(t, "[", e.Text)
}

func TestBracketKindString(t *testing.T) {
	assert.Equal(t, "paren", Paren.String())
	assert.Equal(t, "curly brace", Curly.String())
	assert.Equal(t, "square bracket", Square.String())
}
