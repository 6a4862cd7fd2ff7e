package pipeline

import (
	"strings"
	"testing"
)

func TestExtractLiterals_NoBlocks(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"plain text",
		"<pre>",
		"<pre></pre>",
		"h1. Foo\n\n* a\n* b",
		" 0 ",
	}

	for _, in := range inputs {
		got, table := extractLiterals(in)
		if got != in {
			t.Errorf("extractLiterals(%q) changed text to %q", in, got)
		}
		if table.len() != 0 {
			t.Errorf("extractLiterals(%q) captured %d blocks", in, table.len())
		}
		if restored := table.restore(got); restored != in {
			t.Errorf("restore() = %q, want %q", restored, in)
		}
	}
}

func TestExtractLiterals_RoundTrip(t *testing.T) {
	t.Parallel()

	in := "a\n<pre class=\"x\">one\ntwo</pre>\nb <pre>three</pre> c"
	got, table := extractLiterals(in)

	if table.len() != 2 {
		t.Fatalf("captured %d blocks, want 2", table.len())
	}
	if strings.Contains(got, "<pre") {
		t.Errorf("pre block left in text: %q", got)
	}
	if table.blocks[0] != "<pre class=\"x\">one\ntwo</pre>" || table.blocks[1] != "<pre>three</pre>" {
		t.Errorf("blocks = %q", table.blocks)
	}
	if restored := table.restore(got); restored != in {
		t.Errorf("restore() = %q, want %q", restored, in)
	}
}

func TestExtractLiterals_AvoidsSentinelInInput(t *testing.T) {
	t.Parallel()

	// The first two candidates already occur in the input.
	in := "\uE000\uE001 <pre>x</pre>"
	got, table := extractLiterals(in)

	if table.sentinel == '\uE000' || table.sentinel == '\uE001' {
		t.Fatalf("sentinel %U collides with input", table.sentinel)
	}
	if !strings.HasPrefix(got, "\uE000\uE001 ") {
		t.Errorf("user text altered: %q", got)
	}
	if restored := table.restore(got); restored != in {
		t.Errorf("restore() = %q, want %q", restored, in)
	}
}

func TestLiteralTable_Tokens(t *testing.T) {
	t.Parallel()

	_, table := extractLiterals("<pre>a</pre><pre>b</pre>")
	tok0, tok1 := table.token(0), table.token(1)

	tests := []struct {
		name string
		in   string
		want int
	}{
		{"first token", tok0, 0},
		{"second token", tok1, 1},
		{"out of range", table.token(7), -1},
		{"surrounded by text", "x" + tok0, -1},
		{"plain text", "text", -1},
		{"empty", "", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := table.tokenIndex(tt.in); got != tt.want {
				t.Errorf("tokenIndex(%q) = %d, want %d", tt.in, got, tt.want)
			}
			if got := table.isToken(tt.in); got != (tt.want >= 0) {
				t.Errorf("isToken(%q) = %v", tt.in, got)
			}
		})
	}
}

func TestFreeSentinel(t *testing.T) {
	t.Parallel()

	r, ok := freeSentinel("abc")
	if !ok || r != 0xE000 {
		t.Errorf("freeSentinel() = %U, %v; want U+E000, true", r, ok)
	}

	r, ok = freeSentinel("\uE000")
	if !ok || r != 0xE001 {
		t.Errorf("freeSentinel() = %U, %v; want U+E001, true", r, ok)
	}
}
