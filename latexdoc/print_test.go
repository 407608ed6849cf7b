package latexdoc

import (
	"errors"
	"strings"
	"testing"
)

func TestCollapseNL(t *testing.T) {
	cases := []struct {
		name      string
		toks      []Token
		wantN     int
		wantExact bool
	}{
		{
			name:  "at-least directives take the max",
			toks:  []Token{NL(1), NL(3), NL(2)},
			wantN: 3,
		},
		{
			name:      "exactly pins the run",
			toks:      []Token{NL(1), NLExact(2), NL(1)},
			wantN:     2,
			wantExact: true,
		},
		{
			name:      "exactly and at-least interleaved",
			toks:      []Token{NL(1), NLExact(2), NL(3), NLExact(1), NL(2)},
			wantN:     3,
			wantExact: true,
		},
		{
			name:  "single directive unchanged",
			toks:  []Token{NL(2)},
			wantN: 2,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			out := CollapseNL(c.toks)
			if len(out) != 1 {
				t.Fatalf("collapsed to %d tokens", len(out))
			}
			got := out[0]
			if got.Kind != KindNL || got.N != c.wantN || got.Exact != c.wantExact {
				t.Errorf("got N=%d exact=%v, want N=%d exact=%v",
					got.N, got.Exact, c.wantN, c.wantExact)
			}
		})
	}
}

// The collapse law over arbitrary interleavings: the result is the max of
// all values, and "exactly" wins the kind whenever one appears.
func TestCollapseNLLaw(t *testing.T) {
	atLeast := []int{1, 4, 2}
	exact := []int{2, 3}

	var run []Token
	for i := 0; i < len(atLeast) || i < len(exact); i++ {
		if i < len(atLeast) {
			run = append(run, NL(atLeast[i]))
		}
		if i < len(exact) {
			run = append(run, NLExact(exact[i]))
		}
	}

	out := CollapseNL(run)
	if len(out) != 1 {
		t.Fatalf("collapsed to %d tokens", len(out))
	}
	if out[0].N != 4 || !out[0].Exact {
		t.Errorf("got N=%d exact=%v, want N=4 exact=true", out[0].N, out[0].Exact)
	}
}

func TestCollapseNLLeavesOtherTokens(t *testing.T) {
	toks := []Token{Cmd("item"), NL(1), NL(2), Raw("x"), NL(1)}
	out := CollapseNL(toks)
	if len(out) != 4 {
		t.Fatalf("got %d tokens, want 4: %v", len(out), out)
	}
	if out[1].N != 2 {
		t.Errorf("merged N = %d, want 2", out[1].N)
	}
}

func TestVerbatimDelimiterSelection(t *testing.T) {
	// All candidates but '!' occur in the text; '!' must be chosen.
	var b strings.Builder
	err := Print(&b, []Token{Verb(`$|@="^`)})
	if err != nil {
		t.Fatal(err)
	}
	if got := b.String(); got != `\verb!$|@="^!` {
		t.Errorf("GOT:%s", got)
	}
}

func TestVerbatimDelimiterExhaustion(t *testing.T) {
	var b strings.Builder
	err := Print(&b, []Token{Verb(`$|@="^!`)})
	if !errors.Is(err, ErrNoDelimiter) {
		t.Fatalf("err = %v, want ErrNoDelimiter", err)
	}
}

func TestEscape(t *testing.T) {
	cases := []struct{ in, want string }{
		{"a < b", `a $<$ b`},
		{"50%", `50\%`},
		{"x{y}z", `x\{y\}z`},
		{`C:\tmp`, `C:\bsl{}tmp`},
		{"$5 #tag a_b", `\$5 \#tag a\_b`},
		{"plain text", "plain text"},
	}
	for _, c := range cases {
		if got := Escape(c.in); got != c.want {
			t.Errorf("Escape(%q):\nGOT:%s\nEXPECTED:%s", c.in, got, c.want)
		}
	}
}

func TestPrintStream(t *testing.T) {
	toks := []Token{
		Cmd("section"), Open(), Raw("All about <x>"), Close(),
		NL(2), NL(1),
		Raw("see "), Cmd("predref"), Open(), Raw("foo"), Close(), Open(), Raw("2"), Close(),
	}
	var b strings.Builder
	if err := Print(&b, toks); err != nil {
		t.Fatal(err)
	}
	want := "\\section{All about $<$x$>$}\n\n" +
		"see \\predref{foo}{2}"
	if b.String() != want {
		t.Errorf("GOT:\n%s\nEXPECTED:\n%s", b.String(), want)
	}
}
