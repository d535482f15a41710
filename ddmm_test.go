package ddmm

import (
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/ddmm-lang/ddmm/scanner"
)

func TestTransform(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "function call",
			input: "print drake 'hello' maye",
			want:  "print ( 'hello' )",
		},
		{
			name:  "list of dicts",
			input: "x = DRAKE Drake 'a': 1 Maye, Drake 'b': 2 Maye MAYE",
			want:  "x = [ { 'a': 1 }, { 'b': 2 } ]",
		},
		{
			name:  "definition",
			input: "throw add drake a, b maye:\n    touchdown a + b",
			want:  "def add ( a, b ):\n    return a + b",
		},
		{
			name:  "strings are opaque",
			input: `s = "drake maye"`,
			want:  `s = "drake maye"`,
		},
		{
			name:  "interpolation",
			input: `f"{x.upper drake maye}"`,
			want:  `f"{x.upper ( )}"`,
		},
		{
			name:  "word boundaries",
			input: "drakesmith = 1",
			want:  "drakesmith = 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, string(Transform([]byte(tt.input))))
		})
	}
}

func TestReverse(t *testing.T) {
	got := string(Reverse([]byte("def f(x):\n    return [x]")))
	assert.Equal(t, "throw f drake x maye:\n    touchdown DRAKE x MAYE", got)
}

func TestCheckBalance(t *testing.T) {
	assert.Equal(t, 0, len(CheckBalance([]byte("f drake x maye"))))

	diags := CheckBalance([]byte("f drake x Maye"))
	assert.Equal(t, 1, len(diags))
	assert.Equal(t, scanner.Mismatch, diags[0].Kind)
}
