package count

import "testing"

func TestChars(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"empty", "", 0},
		{"ascii", "hello", 5},
		{"newline counted", "ab\ncd", 5},
		{"multibyte", "héllo wörld", 11},
		{"emoji", "😀😀", 2},
		{"crlf", "a\r\n", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Chars(tt.content); got != tt.want {
				t.Errorf("Chars(%q) = %d, want %d", tt.content, got, tt.want)
			}
		})
	}
}

func TestWords(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"empty", "", 0},
		{"only whitespace", " \t\n\r\n  ", 0},
		{"single", "word", 1},
		{"leading and trailing spaces", "  two words  ", 2},
		{"mixed separators", "a\tb\nc  d\r\ne", 5},
		{"unicode space", "a\u2003b", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Words(tt.content); got != tt.want {
				t.Errorf("Words(%q) = %d, want %d", tt.content, got, tt.want)
			}
		})
	}
}

func TestLines(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"empty", "", 0},
		{"no terminator", "one", 1},
		{"terminated", "one\n", 1},
		{"unterminated last line", "ab\ncd", 2},
		{"terminated last line", "ab\ncd\n", 2},
		{"blank lines", "\n\n\n", 3},
		{"crlf", "a\r\nb\r\n", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Lines(tt.content); got != tt.want {
				t.Errorf("Lines(%q) = %d, want %d", tt.content, got, tt.want)
			}
		})
	}
}

func TestSelectionIsNone(t *testing.T) {
	if !(Selection{}).IsNone() {
		t.Error("zero Selection should be none")
	}
	for _, sel := range []Selection{{Chars: true}, {Words: true}, {Lines: true}} {
		if sel.IsNone() {
			t.Errorf("%+v should not be none", sel)
		}
	}
}

func TestSelectionLabels(t *testing.T) {
	got := Selection{Lines: true, Chars: true}.Labels()
	want := []string{CharLabel, LineLabel}
	if len(got) != len(want) {
		t.Fatalf("labels length mismatch: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("label %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCompute(t *testing.T) {
	c := Compute("ab\ncd", Selection{Chars: true, Lines: true})

	if c.Chars == nil || *c.Chars != 5 {
		t.Errorf("chars: got %v, want 5", c.Chars)
	}
	if c.Words != nil {
		t.Errorf("words should be absent, got %d", *c.Words)
	}
	if c.Lines == nil || *c.Lines != 2 {
		t.Errorf("lines: got %v, want 2", c.Lines)
	}
}

func TestComputeNoneSelected(t *testing.T) {
	c := Compute("some text", Selection{})
	if c.Chars != nil || c.Words != nil || c.Lines != nil {
		t.Errorf("expected all counts absent, got %+v", c)
	}
}
