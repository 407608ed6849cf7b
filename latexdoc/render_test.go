package latexdoc

import (
	"strings"
	"testing"

	"github.com/ldoc-dev/ldoc/markup"
	"github.com/ldoc-dev/ldoc/modes"
	"github.com/ldoc-dev/ldoc/render"
)

func fragmentOpts() render.Options {
	opts := render.DefaultOptions()
	opts.StandAlone = false
	return opts
}

func sig(name string, arity int) *markup.SignatureTerm {
	s := &modes.Signature{Name: name, Det: modes.Det, Public: true}
	for i := 0; i < arity; i++ {
		s.Args = append(s.Args, modes.Arg{Mode: '+', Name: string(rune('A' + i))})
	}
	return &markup.SignatureTerm{Sig: s}
}

func renderToString(t *testing.T, nodes []markup.Node, opts render.Options) string {
	t.Helper()
	r := New(opts)
	if err := r.Render(&markup.Doc{Nodes: nodes}); err != nil {
		t.Fatal(err)
	}
	toks, err := r.Tokens()
	if err != nil {
		t.Fatal(err)
	}
	var b strings.Builder
	if err := Print(&b, toks); err != nil {
		t.Fatal(err)
	}
	return b.String()
}

func TestDescriptionEnvironmentOncePerRun(t *testing.T) {
	nodes := []markup.Node{
		markup.DescriptionList{Items: []markup.DescItem{
			{Term: *sig("foo", 2), Body: []markup.Node{
				markup.Paragraph{Content: []markup.Node{markup.Text("First.")}},
			}},
			{Term: *sig("bar", 1), Body: []markup.Node{
				markup.Paragraph{Content: []markup.Node{markup.Text("Second.")}},
			}},
		}},
	}

	out := renderToString(t, nodes, fragmentOpts())
	if got := strings.Count(out, `\begin{description}`); got != 1 {
		t.Errorf("%d description environments opened, want 1\n%s", got, out)
	}
	if got := strings.Count(out, `\end{description}`); got != 1 {
		t.Errorf("%d description environments closed, want 1\n%s", got, out)
	}
}

func TestHeadingClosesDescriptionEnvironment(t *testing.T) {
	nodes := []markup.Node{
		markup.DescriptionList{Items: []markup.DescItem{
			{Term: *sig("foo", 1), Body: nil},
		}},
		markup.Heading{Level: 1, Content: []markup.Node{markup.Text("Next section")}},
		markup.DescriptionList{Items: []markup.DescItem{
			{Term: *sig("bar", 1), Body: nil},
		}},
	}

	out := renderToString(t, nodes, fragmentOpts())
	end := strings.Index(out, `\end{description}`)
	section := strings.Index(out, `\section{Next section}`)
	if end < 0 || section < 0 || end > section {
		t.Errorf("environment not closed before heading:\n%s", out)
	}
	if got := strings.Count(out, `\begin{description}`); got != 2 {
		t.Errorf("%d description environments, want 2", got)
	}
}

func TestSectionLadderOverflow(t *testing.T) {
	opts := fragmentOpts()
	opts.SectionLevel = render.ParagraphLevel

	r := New(opts)
	err := r.Render(&markup.Doc{Nodes: []markup.Node{
		markup.Heading{Level: 2, Content: []markup.Node{markup.Text("Too deep")}},
	}})
	if err == nil {
		t.Fatal("no error for heading beyond the ladder")
	}
}

func TestOperatorLayout(t *testing.T) {
	s := &modes.Signature{
		Name:   "=",
		Args:   []modes.Arg{{Mode: '+', Name: "A"}, {Mode: '+', Name: "B"}},
		Fixity: modes.Infix,
		Det:    modes.Semidet,
		Public: true,
	}
	out := renderToString(t, []markup.Node{
		markup.SignatureTerm{Sig: s},
	}, fragmentOpts())

	if !strings.Contains(out, `\infixop[semidet]{=}{+A}{+B}`) {
		t.Errorf("infix layout missing:\n%s", out)
	}
}

func TestOperatorArityMismatchFallsBack(t *testing.T) {
	s := &modes.Signature{
		Name:   "=",
		Args:   []modes.Arg{{Mode: '+', Name: "A"}},
		Fixity: modes.Infix,
		Det:    modes.Det,
		Public: true,
	}
	out := renderToString(t, []markup.Node{
		markup.SignatureTerm{Sig: s},
	}, fragmentOpts())

	if !strings.Contains(out, `\predicate[det]{=}{1}{+A}`) {
		t.Errorf("plain layout missing:\n%s", out)
	}
}

func TestPublicOnlySuppressesPrivate(t *testing.T) {
	private := sig("secret", 1)
	private.Sig.Public = false

	out := renderToString(t, []markup.Node{
		markup.DescriptionList{Items: []markup.DescItem{{Term: *private}}},
	}, fragmentOpts())
	if strings.Contains(out, "secret") {
		t.Errorf("private signature rendered:\n%s", out)
	}
}

func TestFragileInlineCode(t *testing.T) {
	nodes := []markup.Node{
		markup.Heading{Level: 1, Content: []markup.Node{
			markup.InlineCode{Text: "a|b"},
		}},
		markup.Paragraph{Content: []markup.Node{
			markup.InlineCode{Text: "a|b"},
		}},
	}
	out := renderToString(t, nodes, fragmentOpts())

	// Inside the heading's brace argument \verb is unusable; outside it
	// is preferred.
	if !strings.Contains(out, `\section{\texttt{a|b}}`) {
		t.Errorf("fragile inline code not re-escaped:\n%s", out)
	}
	if !strings.Contains(out, `\verb$a|b$`) {
		t.Errorf("non-fragile inline code not verbatim:\n%s", out)
	}
}

func TestStandaloneDocument(t *testing.T) {
	opts := render.DefaultOptions()
	doc := &markup.Doc{Nodes: []markup.Node{
		markup.Paragraph{Content: []markup.Node{markup.Text("Hello.")}},
	}}

	toks, err := Document([]*markup.Doc{doc}, opts)
	if err != nil {
		t.Fatal(err)
	}
	var b strings.Builder
	if err := Print(&b, toks); err != nil {
		t.Fatal(err)
	}
	out := b.String()

	for _, want := range []string{
		`\documentclass[11pt]{article}`,
		`\begin{document}`,
		"Hello.",
		`\end{document}`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

// Every node variant renders without error and produces output.
func TestAllNodeKinds(t *testing.T) {
	all := []markup.Node{
		markup.Heading{Level: 1, Content: []markup.Node{markup.Text("H")}},
		markup.Paragraph{Content: []markup.Node{markup.Text("P")}},
		markup.List{Ordered: true, Items: [][]markup.Node{{markup.Text("li")}}},
		markup.DescriptionList{Items: []markup.DescItem{
			{Term: markup.Paragraph{Content: []markup.Node{markup.Text("term")}},
				Body: []markup.Node{markup.Paragraph{Content: []markup.Node{markup.Text("def")}}}},
			{Term: *sig("foo", 1)},
		}},
		markup.CodeBlock{Text: "code()"},
		markup.Paragraph{Content: []markup.Node{
			markup.InlineCode{Text: "ic"},
			markup.Emphasis{Kind: markup.Bold, Content: []markup.Node{markup.Text("b")}},
			markup.Emphasis{Kind: markup.Italic, Content: []markup.Node{markup.Text("i")}},
			markup.Link{Target: "http://example.org", Content: []markup.Node{markup.Text("link")}},
			markup.PredRef{Name: "foo", Arity: 1},
			markup.PredRef{Name: "gram", Arity: 2, DCG: true},
		}},
		markup.Tag{Keyword: "author", Value: []markup.Node{markup.Text("Jan")}},
		markup.ParamList{Entries: []markup.Param{
			{Name: "X", Description: []markup.Node{markup.Text("input")}},
		}},
	}

	out := renderToString(t, all, fragmentOpts())
	if out == "" {
		t.Fatal("empty output")
	}
	for _, want := range []string{"H", "li", `\predicate`, `\predref{foo}{1}`, `\dcgref{gram}{2}`, `\arg{X}`} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q", want)
		}
	}
}
