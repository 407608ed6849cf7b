// Package htmldoc renders a document tree as hypertext markup with
// navigation chrome and cross-reference links.
package htmldoc

import (
	"fmt"
	"html"
	"strings"

	"github.com/ldoc-dev/ldoc/docindex"
	"github.com/ldoc-dev/ldoc/markup"
	"github.com/ldoc-dev/ldoc/modes"
	"github.com/ldoc-dev/ldoc/render"
)

// Renderer walks document trees into hypertext. One renderer serves one
// page: it remembers which anchors it emitted so a signature gets exactly
// one navigation target per page.
type Renderer struct {
	Reg  *docindex.Registry
	Opts render.Options

	anchored map[string]bool
}

func New(reg *docindex.Registry, opts render.Options) *Renderer {
	return &Renderer{Reg: reg, Opts: opts, anchored: map[string]bool{}}
}

// Render emits the markup for one parsed comment. The tree is never
// mutated; rendering the same tree twice produces the same output except
// for anchor suppression on repeats.
func (r *Renderer) Render(doc *markup.Doc) string {
	var b strings.Builder
	r.nodes(&b, doc.Nodes)
	return b.String()
}

func (r *Renderer) nodes(b *strings.Builder, nodes []markup.Node) {
	for _, n := range nodes {
		r.node(b, n)
	}
}

func (r *Renderer) node(b *strings.Builder, n markup.Node) {
	switch n := n.(type) {
	case markup.Heading:
		tag := fmt.Sprintf("h%d", n.Level+1)
		b.WriteString("<" + tag + ">")
		r.nodes(b, n.Content)
		b.WriteString("</" + tag + ">\n")

	case markup.Paragraph:
		b.WriteString("<p>")
		r.nodes(b, n.Content)
		b.WriteString("</p>\n")

	case markup.List:
		tag := "ul"
		if n.Ordered {
			tag = "ol"
		}
		b.WriteString("<" + tag + ">\n")
		for _, item := range n.Items {
			b.WriteString("<li>")
			r.nodes(b, item)
			b.WriteString("</li>\n")
		}
		b.WriteString("</" + tag + ">\n")

	case markup.DescriptionList:
		b.WriteString("<dl>\n")
		for _, item := range n.Items {
			if sig, ok := item.Term.(markup.SignatureTerm); ok {
				if r.Opts.PublicOnly && !sig.Sig.Public {
					continue
				}
				r.signature(b, sig)
			} else {
				b.WriteString("<dt>")
				r.node(b, item.Term)
				b.WriteString("</dt>\n")
			}
			if item.Body != nil {
				b.WriteString("<dd>\n")
				r.nodes(b, item.Body)
				b.WriteString("</dd>\n")
			}
		}
		b.WriteString("</dl>\n")

	case markup.CodeBlock:
		b.WriteString("<pre class=\"code\">")
		b.WriteString(html.EscapeString(n.Text))
		b.WriteString("</pre>\n")

	case markup.InlineCode:
		b.WriteString("<code>")
		b.WriteString(html.EscapeString(n.Text))
		b.WriteString("</code>")

	case markup.Emphasis:
		tag := "b"
		if n.Kind == markup.Italic {
			tag = "i"
		}
		b.WriteString("<" + tag + ">")
		r.nodes(b, n.Content)
		b.WriteString("</" + tag + ">")

	case markup.Link:
		fmt.Fprintf(b, "<a href=%q>", n.Target)
		r.nodes(b, n.Content)
		b.WriteString("</a>")

	case markup.Text:
		b.WriteString(html.EscapeString(string(n)))

	case markup.PredRef:
		r.predRef(b, n)

	case markup.Tag:
		b.WriteString("<dl class=\"tags\"><dt class=\"keyword\">")
		b.WriteString(html.EscapeString(titleCase(n.Keyword)))
		b.WriteString("</dt><dd>")
		r.nodes(b, n.Value)
		b.WriteString("</dd></dl>\n")

	case markup.ParamList:
		b.WriteString("<table class=\"arglist\">\n")
		for _, e := range n.Entries {
			b.WriteString("<tr><td><var>")
			b.WriteString(html.EscapeString(e.Name))
			b.WriteString("</var></td><td>")
			r.nodes(b, e.Description)
			b.WriteString("</td></tr>\n")
		}
		b.WriteString("</table>\n")

	case markup.SignatureTerm:
		// Signatures normally arrive inside a description list; a bare
		// one still renders, without a body.
		b.WriteString("<dl>\n")
		r.signature(b, n)
		b.WriteString("</dl>\n")

	default:
		// A node kind this backend does not know. Degrade visibly and
		// keep going with the next sibling.
		fmt.Fprintf(b, "<span class=\"ldoc-error\">[unhandled node %T]</span>", n)
	}
}

// signature renders one mode declaration as a styled definition header.
// The anchor is emitted only the first time the signature appears on the
// page, and only when it is the registry's anchor owner.
func (r *Renderer) signature(b *strings.Builder, term markup.SignatureTerm) {
	sig := term.Sig
	b.WriteString("<dt class=\"pubdef\">")

	anchor := term.Anchor && !r.anchored[sig.Key()]
	if anchor {
		r.anchored[sig.Key()] = true
		fmt.Fprintf(b, "<a id=%q>", sig.Key())
	}

	switch sig.OperatorLayout() {
	case modes.Infix:
		r.arg(b, sig.Args[0])
		b.WriteString(" <b class=\"pred\">" + html.EscapeString(sig.Name) + "</b> ")
		r.arg(b, sig.Args[1])
	case modes.Prefix:
		b.WriteString("<b class=\"pred\">" + html.EscapeString(sig.Name) + "</b> ")
		r.arg(b, sig.Args[0])
	case modes.Postfix:
		r.arg(b, sig.Args[0])
		b.WriteString(" <b class=\"pred\">" + html.EscapeString(sig.Name) + "</b>")
	default:
		b.WriteString("<b class=\"pred\">" + html.EscapeString(sig.Name) + "</b>")
		if len(sig.Args) > 0 {
			b.WriteString("(")
			for i, a := range sig.Args {
				if i > 0 {
					b.WriteString(", ")
				}
				r.arg(b, a)
			}
			b.WriteString(")")
		}
	}
	if sig.DCG {
		b.WriteString("<b class=\"pred\">//</b>")
	}

	if anchor {
		b.WriteString("</a>")
	}
	if sig.Det != modes.Unknown {
		b.WriteString(" <span class=\"det\">is " + sig.Det.String() + "</span>")
	}
	b.WriteString("</dt>\n")
}

func (r *Renderer) arg(b *strings.Builder, a modes.Arg) {
	b.WriteString("<var class=\"arg\">")
	b.WriteString(html.EscapeString(a.String()))
	b.WriteString("</var>")
}

// predRef resolves a reference against the registry. Resolved references
// link to their anchor; unresolved ones degrade to emphasized text.
func (r *Renderer) predRef(b *strings.Builder, ref markup.PredRef) {
	ind := indicator(ref)
	if r.Reg != nil {
		if e, ok := r.Reg.Lookup("", ref.Name, ref.Arity); ok {
			target := "#" + e.Anchor
			if e.File != "" {
				target = e.File + target
			}
			fmt.Fprintf(b, "<a class=\"pred\" href=%q><code>%s</code></a>",
				target, html.EscapeString(ind))
			return
		}
	}
	b.WriteString("<b class=\"pred-unresolved\">" + html.EscapeString(ind) + "</b>")
}

func indicator(ref markup.PredRef) string {
	sep := "/"
	if ref.DCG {
		sep = "//"
	}
	return fmt.Sprintf("%s%s%d", ref.Name, sep, ref.Arity)
}
