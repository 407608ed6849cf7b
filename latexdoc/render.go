package latexdoc

import (
	"fmt"
	"strconv"

	"github.com/ldoc-dev/ldoc/markup"
	"github.com/ldoc-dev/ldoc/modes"
	"github.com/ldoc-dev/ldoc/render"
)

// ladder is the fixed section ladder. A heading whose depth walks off its
// end is a configuration error, not a markup error.
var ladder = []string{"chapter", "section", "subsection", "subsubsection", "paragraph"}

// Renderer walks document trees into a token stream. One renderer serves
// one output document; it owns the environment mode stack.
type Renderer struct {
	Opts render.Options

	toks    []Token
	stack   *render.ModeStack
	fragile int
	err     error
}

func New(opts render.Options) *Renderer {
	r := &Renderer{Opts: opts}
	r.stack = render.NewModeStack(
		func(mode string) {
			r.emit(NL(1), Cmd("begin"), Open(), Raw(mode), Close(), NL(1))
		},
		func(mode string) {
			r.emit(NL(1), Cmd("end"), Open(), Raw(mode), Close(), NL(1))
		},
	)
	return r
}

// Render appends one parsed comment to the token stream.
func (r *Renderer) Render(doc *markup.Doc) error {
	r.nodes(doc.Nodes)
	return r.err
}

// Tokens closes any open environments and returns the finished stream.
func (r *Renderer) Tokens() ([]Token, error) {
	r.stack.Unwind()
	if r.err != nil {
		return nil, r.err
	}
	return r.toks, nil
}

// Document renders a complete document: the standalone preamble when
// configured, every comment, and the closing matter.
func Document(docs []*markup.Doc, opts render.Options) ([]Token, error) {
	r := New(opts)
	if opts.StandAlone {
		r.emit(
			Cmd("documentclass"), Raw("[11pt]"), Open(), Raw("article"), Close(), NLExact(1),
			Cmd("usepackage"), Open(), Raw("hyperref"), Close(), NLExact(1),
			Cmd("begin"), Open(), Raw("document"), Close(), NL(2),
		)
	}
	for _, d := range docs {
		if err := r.Render(d); err != nil {
			return nil, err
		}
	}
	toks, err := r.Tokens()
	if err != nil {
		return nil, err
	}
	if opts.StandAlone {
		r.toks = append(toks, NL(2), Cmd("end"), Open(), Raw("document"), Close(), NLExact(1))
		toks = r.toks
	}
	return toks, nil
}

func (r *Renderer) emit(toks ...Token) {
	r.toks = append(r.toks, toks...)
}

func (r *Renderer) nodes(nodes []markup.Node) {
	for _, n := range nodes {
		if r.err != nil {
			return
		}
		r.node(n)
	}
}

func (r *Renderer) node(n markup.Node) {
	switch n := n.(type) {
	case markup.Heading:
		// A heading between predicate groups closes their environment
		// before the section command goes out.
		r.stack.Unwind()
		name, err := r.sectionName(n.Level)
		if err != nil {
			r.err = err
			return
		}
		r.emit(NL(2), Cmd(name), Open())
		r.group(n.Content)
		r.emit(Close(), NL(2))

	case markup.Paragraph:
		r.emit(NL(2))
		r.nodes(n.Content)
		r.emit(NL(2))

	case markup.List:
		env := "itemize"
		if n.Ordered {
			env = "enumerate"
		}
		r.emit(NL(1), Cmd("begin"), Open(), Raw(env), Close(), NL(1))
		for _, item := range n.Items {
			r.emit(Cmd("item"), Raw(" "))
			r.nodes(item)
			r.emit(NL(1))
		}
		r.emit(Cmd("end"), Open(), Raw(env), Close(), NL(1))

	case markup.DescriptionList:
		for _, item := range n.Items {
			if sig, ok := item.Term.(markup.SignatureTerm); ok {
				if r.Opts.PublicOnly && !sig.Sig.Public {
					continue
				}
				r.stack.Need("description")
				r.signature(sig.Sig)
			} else {
				r.stack.Need("description")
				r.emit(NL(1), Cmd("item"), Raw("["))
				r.group(termContent(item.Term))
				r.emit(Raw("]"), NL(1))
			}
			r.nodes(item.Body)
		}

	case markup.CodeBlock:
		r.emit(NL(2), VerbBlock(n.Text), NL(2))

	case markup.InlineCode:
		if r.fragile > 0 {
			// Inside a brace argument \verb cannot appear; re-escape
			// the text instead.
			r.emit(Cmd("texttt"), Open(), Raw(n.Text), Close())
			return
		}
		r.emit(Verb(n.Text))

	case markup.Emphasis:
		cmd := "textbf"
		if n.Kind == markup.Italic {
			cmd = "textit"
		}
		r.emit(Cmd(cmd), Open())
		r.group(n.Content)
		r.emit(Close())

	case markup.Link:
		r.emit(Cmd("href"), Open(), Raw(n.Target), Close(), Open())
		r.group(n.Content)
		r.emit(Close())

	case markup.Text:
		r.emit(Raw(string(n)))

	case markup.PredRef:
		cmd := "predref"
		if n.DCG {
			cmd = "dcgref"
		}
		r.emit(Cmd(cmd),
			Open(), Raw(n.Name), Close(),
			Open(), Raw(strconv.Itoa(n.Arity)), Close())

	case markup.Tag:
		r.stack.Need("description")
		r.emit(NL(1), Cmd("item"), Raw("["))
		r.emit(Cmd("textbf"), Open(), Raw(titleCase(n.Keyword)), Close())
		r.emit(Raw("]"), NL(1))
		r.nodes(n.Value)

	case markup.ParamList:
		r.emit(NL(1), Cmd("begin"), Open(), Raw("arguments"), Close(), NL(1))
		for _, e := range n.Entries {
			r.emit(Cmd("arg"), Open(), Raw(e.Name), Close(), Open())
			r.group(e.Description)
			r.emit(Close(), NL(1))
		}
		r.emit(Cmd("end"), Open(), Raw("arguments"), Close(), NL(1))

	case markup.SignatureTerm:
		r.stack.Need("description")
		if !r.Opts.PublicOnly || n.Sig.Public {
			r.signature(n.Sig)
		}

	default:
		// Unknown node kind: degrade to a visible placeholder and move
		// on to the next sibling.
		r.emit(Cmd("textbf"), Open(), Raw(fmt.Sprintf("[unhandled node %T]", n)), Close())
	}
}

// group renders content destined for a brace-delimited argument, where
// fragile material must be re-escaped.
func (r *Renderer) group(nodes []markup.Node) {
	r.fragile++
	r.nodes(nodes)
	r.fragile--
}

func (r *Renderer) sectionName(level int) (string, error) {
	idx := int(r.Opts.SectionLevel) + level - 1
	if idx < 0 || idx >= len(ladder) {
		return "", fmt.Errorf("heading level %d exceeds the section ladder (base %s)",
			level, r.Opts.SectionLevel)
	}
	return ladder[idx], nil
}

// signature emits one mode declaration item, with the layout the head's
// fixity decided at parse time.
func (r *Renderer) signature(sig *modes.Signature) {
	det := ""
	if sig.Det != modes.Unknown {
		det = sig.Det.String()
	}

	fixity := sig.OperatorLayout()
	var cmd string
	switch fixity {
	case modes.Infix:
		cmd = "infixop"
	case modes.Prefix:
		cmd = "prefixop"
	case modes.Postfix:
		cmd = "postfixop"
	default:
		cmd = "predicate"
		if sig.DCG {
			cmd = "dcg"
		}
	}

	r.emit(NL(1), Cmd(cmd))
	if det != "" {
		r.emit(Raw("[" + det + "]"))
	}

	switch fixity {
	case modes.Infix:
		r.braced(sig.Name)
		r.braced(sig.Args[0].String())
		r.braced(sig.Args[1].String())
	case modes.Prefix, modes.Postfix:
		r.braced(sig.Name)
		r.braced(sig.Args[0].String())
	default:
		r.braced(sig.Name)
		r.braced(strconv.Itoa(sig.Arity()))
		args := ""
		for i, a := range sig.Args {
			if i > 0 {
				args += ", "
			}
			args += a.String()
		}
		r.braced(args)
	}
	r.emit(NL(1))
}

func (r *Renderer) braced(text string) {
	r.emit(Open(), Raw(text), Close())
}

func termContent(n markup.Node) []markup.Node {
	if p, ok := n.(markup.Paragraph); ok {
		return p.Content
	}
	return []markup.Node{n}
}

func titleCase(s string) string {
	if s != "" && s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-'a'+'A') + s[1:]
	}
	return s
}
