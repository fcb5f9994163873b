package argv

import (
	"strconv"
	"testing"
)

type splitCase struct {
	Name string
	In   string
	Mode Mode
	Want []string
}

var splitCases = []splitCase{
	{Name: "empty input", In: "", Want: []string{}},
	{Name: "only whitespace", In: " \t\n ", Want: []string{}},
	{Name: "simple words", In: "a b c", Want: []string{"a", "b", "c"}},
	{Name: "leading and multiple whitespace", In: "  a   b\tc\n", Want: []string{"a", "b", "c"}},
	{Name: "single quotes preserve spaces", In: "'a b' c", Want: []string{"a b", "c"}},
	{Name: "double quotes preserve spaces", In: `"a b" c`, Want: []string{"a b", "c"}},
	{Name: "empty quotes are an argument", In: `a "" b`, Want: []string{"a", "", "b"}},
	{Name: "adjacent quoted and bare", In: `pre"mid dle"post`, Want: []string{"premid dlepost"}},
	{Name: "escaped space", In: `a\ b`, Want: []string{"a b"}},
	{Name: "line continuation", In: "a\\\nb", Want: []string{"ab"}},
	{Name: "backslash literal in single", In: `'a\b'`, Want: []string{`a\b`}},
	{Name: "double quote escapes", In: `"q\"x\$y\z"`, Want: []string{`q"x$y\z`}},
	{Name: "trailing backslash", In: `a\`, Want: []string{`a\`}},
	{Name: "single inside double", In: `"it's"`, Want: []string{"it's"}},
	{Name: "unterminated quote", In: `"a b`, Want: []string{"a b"}},
	{Name: "unicode", In: "π '漢字' \"🐱\"", Want: []string{"π", "漢字", "🐱"}},

	{Name: "windows path", In: `C:\Tools\sign.exe /a C:\out`, Mode: Windows, Want: []string{`C:\Tools\sign.exe`, "/a", `C:\out`}},
	{Name: "windows quoted path", In: `"C:\Program Files\x.exe" -q`, Mode: Windows, Want: []string{`C:\Program Files\x.exe`, "-q"}},
	{Name: "windows escaped quote", In: `say \"hi\"`, Mode: Windows, Want: []string{"say", `"hi"`}},
	{Name: "windows single quotes literal", In: `it's ok`, Mode: Windows, Want: []string{"it's", "ok"}},
	{Name: "windows trailing backslash", In: `dir\ x`, Mode: Windows, Want: []string{`dir\`, "x"}},
}

func TestSplit(t *testing.T) {
	for _, tc := range splitCases {
		t.Run(tc.Name, func(t *testing.T) {
			got := Split(tc.In, tc.Mode)
			if len(got) != len(tc.Want) {
				t.Fatalf("Split(%s) = %q, want %q", strconv.Quote(tc.In), got, tc.Want)
			}
			for i := range got {
				if got[i] != tc.Want[i] {
					t.Fatalf("Split(%s)[%d] = %q, want %q", strconv.Quote(tc.In), i, got[i], tc.Want[i])
				}
			}
		})
	}
}

func TestParseSliceIsShell(t *testing.T) {
	got := ParseSlice(`a\ b`)
	if len(got) != 1 || got[0] != "a b" {
		t.Fatalf("ParseSlice() = %q", got)
	}
}

func TestArgsSeqStopsEarly(t *testing.T) {
	var got []string
	for a := range ArgsSeq("a b c d", Shell) {
		got = append(got, a)
		if len(got) == 2 {
			break
		}
	}
	if len(got) != 2 || got[1] != "b" {
		t.Fatalf("got %q", got)
	}
}

func FuzzSplit(f *testing.F) {
	for _, tc := range splitCases {
		f.Add(tc.In, int(tc.Mode))
	}
	f.Fuzz(func(t *testing.T, s string, mode int) {
		m := Mode(mode & 1)
		first := Split(s, m)
		var n int
		for range ArgsSeq(s, m) {
			n++
		}
		if n != len(first) {
			t.Fatalf("ArgsSeq yielded %d args, Split %d", n, len(first))
		}
	})
}
