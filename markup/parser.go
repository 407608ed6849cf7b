// Package markup turns the text of one structured comment into a generic
// document tree that the hypertext and typeset backends both understand.
package markup

import (
	"strings"

	"github.com/ldoc-dev/ldoc/modes"
)

// Config carries the context a parse needs. The zero value works: no known
// signatures, default operator table.
type Config struct {
	// Known reports whether name/arity is a declared signature, so bare
	// foo/2 tokens in running text become references. Nil means only
	// explicit [[...]] references resolve.
	Known func(name string, arity int, dcg bool) bool

	// Ops is the operator table used for mode-line fixity. Nil means
	// modes.DefaultOps().
	Ops modes.OpTable
}

func (c Config) ops() modes.OpTable {
	if c.Ops == nil {
		return modes.DefaultOps()
	}
	return c.Ops
}

// Parse converts prefix-stripped comment lines into a document tree. It is
// total: malformed markup degrades to plain text, and an empty comment
// yields an empty tree.
func Parse(lines []string, cfg Config) *Doc {
	p := &parser{lines: lines, cfg: cfg}
	return p.run()
}

type parser struct {
	lines []string
	pos   int
	cfg   Config

	doc  *Doc
	seen map[string]bool // signature keys that already own an anchor
}

func (p *parser) run() *Doc {
	p.doc = &Doc{}
	p.seen = map[string]bool{}

	p.modeHeader()
	body, tags := p.blocks()

	if sigs := p.doc.Signatures; len(sigs) > 0 {
		// The whole comment documents the declared signatures: one
		// description item per mode line, body attached to the last.
		dl := DescriptionList{}
		for i, sig := range sigs {
			item := DescItem{Term: SignatureTerm{Sig: sig, Anchor: !p.seen[sig.Key()]}}
			p.seen[sig.Key()] = true
			if i == len(sigs)-1 {
				item.Body = append(body, tags...)
			}
			dl.Items = append(dl.Items, item)
		}
		p.doc.Nodes = []Node{dl}
		return p.doc
	}

	p.doc.Nodes = append(body, tags...)
	return p.doc
}

// modeHeader consumes the leading run of mode-declaration lines.
func (p *parser) modeHeader() {
	for p.pos < len(p.lines) {
		line := p.lines[p.pos]
		if strings.TrimSpace(line) == "" {
			if len(p.doc.Signatures) == 0 {
				p.pos++
				continue
			}
			return
		}
		sig, ok := modes.ParseModeLine(line, p.cfg.ops())
		if !ok {
			return
		}
		p.doc.Signatures = append(p.doc.Signatures, sig)
		p.pos++
	}
}

// blocks scans the body line by line. Classifiers run top to bottom and the
// first match wins.
func (p *parser) blocks() (body, tags []Node) {
	var paras []string
	flush := func() {
		if len(paras) == 0 {
			return
		}
		text := strings.Join(paras, " ")
		paras = nil
		if p.doc.Summary == "" {
			p.doc.Summary = Summary(text)
		}
		body = append(body, Paragraph{Content: p.inline(text)})
	}

	for p.pos < len(p.lines) {
		line := p.lines[p.pos]
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "":
			flush()
			p.pos++

		case isTagLine(trimmed):
			flush()
			return body, p.tagSection()

		case headingLevel(trimmed) > 0:
			flush()
			level, text := splitHeading(trimmed)
			body = append(body, Heading{Level: level, Content: p.inline(text)})
			p.pos++

		case listMarker(trimmed) != "":
			flush()
			body = append(body, p.list())

		case descMarker(trimmed):
			flush()
			body = append(body, p.descriptions())

		case indentOf(line) >= 4:
			flush()
			body = append(body, p.code())

		default:
			paras = append(paras, trimmed)
			p.pos++
		}
	}
	flush()
	return body, nil
}

// list consumes a run of list items of the same ordering. An ordered item
// inside an unordered run (or vice versa) starts a new list.
func (p *parser) list() Node {
	first := listMarker(strings.TrimSpace(p.lines[p.pos]))
	ordered := first == "1."
	l := List{Ordered: ordered}

	for p.pos < len(p.lines) {
		trimmed := strings.TrimSpace(p.lines[p.pos])
		m := listMarker(trimmed)
		if m == "" || (m == "1.") != ordered {
			break
		}
		item := strings.TrimSpace(trimmed[markerLen(trimmed):])
		p.pos++
		// Continuation lines are folded into the item until a blank
		// line or the next marker.
		for p.pos < len(p.lines) {
			next := strings.TrimSpace(p.lines[p.pos])
			if next == "" || listMarker(next) != "" || descMarker(next) || isTagLine(next) {
				break
			}
			item += " " + next
			p.pos++
		}
		l.Items = append(l.Items, p.inline(item))
	}
	return l
}

func (p *parser) descriptions() Node {
	dl := DescriptionList{}
	for p.pos < len(p.lines) {
		trimmed := strings.TrimSpace(p.lines[p.pos])
		if !descMarker(trimmed) {
			break
		}
		rest := strings.TrimSpace(trimmed[1:])
		term, def, _ := strings.Cut(rest, ":")
		p.pos++
		def = strings.TrimSpace(def)
		for p.pos < len(p.lines) {
			next := strings.TrimSpace(p.lines[p.pos])
			if next == "" || descMarker(next) || listMarker(next) != "" || isTagLine(next) {
				break
			}
			def += " " + next
			p.pos++
		}
		dl.Items = append(dl.Items, DescItem{
			Term: Paragraph{Content: p.inline(strings.TrimSpace(term))},
			Body: []Node{Paragraph{Content: p.inline(def)}},
		})
	}
	return dl
}

// code consumes an indented verbatim block. The block closes on the first
// non-blank line indented less than four columns, or at end of text.
func (p *parser) code() Node {
	var raw []string
	var pending int // blank lines inside the block
	for p.pos < len(p.lines) {
		line := p.lines[p.pos]
		if strings.TrimSpace(line) == "" {
			pending++
			p.pos++
			continue
		}
		if indentOf(line) < 4 {
			break
		}
		for ; pending > 0; pending-- {
			raw = append(raw, "")
		}
		raw = append(raw, dedent(line, 4))
		p.pos++
	}
	return CodeBlock{Text: strings.Join(raw, "\n")}
}

// tagSection consumes the trailing @tag lines. @param entries collapse into
// one ParamList; everything else stays a Tag node in source order.
func (p *parser) tagSection() []Node {
	var out []Node
	params := ParamList{}

	for p.pos < len(p.lines) {
		trimmed := strings.TrimSpace(p.lines[p.pos])
		if trimmed == "" {
			p.pos++
			continue
		}
		if !isTagLine(trimmed) {
			// Stray non-tag text inside the tag section continues the
			// previous tag; with no previous tag it degrades to text.
			p.pos++
			if n := len(out); n > 0 {
				if t, ok := out[n-1].(Tag); ok {
					t.Value = append(t.Value, Text(" "+trimmed))
					out[n-1] = t
					continue
				}
			}
			if n := len(params.Entries); n > 0 {
				e := &params.Entries[n-1]
				e.Description = append(e.Description, Text(" "+trimmed))
				continue
			}
			out = append(out, Paragraph{Content: p.inline(trimmed)})
			continue
		}

		keyword, rest, _ := strings.Cut(trimmed[1:], " ")
		rest = strings.TrimSpace(rest)
		p.pos++

		if keyword == "param" {
			name, desc, _ := strings.Cut(rest, " ")
			params.Entries = append(params.Entries, Param{
				Name:        name,
				Description: p.inline(strings.TrimSpace(desc)),
			})
			continue
		}
		out = append(out, Tag{Keyword: keyword, Value: p.inline(rest)})
	}

	if len(params.Entries) > 0 {
		out = append([]Node{params}, out...)
	}
	return out
}

func isTagLine(s string) bool {
	if len(s) < 2 || s[0] != '@' {
		return false
	}
	c := s[1]
	return c >= 'a' && c <= 'z'
}

// listMarker reports the marker of a list-item line: "*", "-" or "1.".
// A marker must be followed by whitespace to count; "-foo" is text.
func listMarker(s string) string {
	if len(s) >= 2 && (s[0] == '*' || s[0] == '-') && s[1] == ' ' {
		return s[:1]
	}
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i > 0 && i+1 < len(s) && s[i] == '.' && s[i+1] == ' ' {
		return "1."
	}
	return ""
}

func markerLen(s string) int {
	if m := listMarker(s); m == "1." {
		return strings.IndexByte(s, '.') + 1
	}
	return 1
}

// descMarker recognizes "$ term: body" description entries.
func descMarker(s string) bool {
	return len(s) >= 2 && s[0] == '$' && s[1] == ' ' && strings.Contains(s, ":")
}

// headingLevel recognizes "# text" style headings up to four levels deep.
func headingLevel(s string) int {
	n := 0
	for n < len(s) && s[n] == '#' {
		n++
	}
	if n == 0 || n > 4 || n >= len(s) || s[n] != ' ' {
		return 0
	}
	return n
}

func splitHeading(s string) (int, string) {
	n := headingLevel(s)
	return n, strings.TrimSpace(s[n:])
}

func indentOf(s string) int {
	n := 0
	for _, r := range s {
		switch r {
		case ' ':
			n++
		case '\t':
			n += 8
		default:
			return n
		}
	}
	return n
}

func dedent(s string, cols int) string {
	n := 0
	for i, r := range s {
		if n >= cols {
			return s[i:]
		}
		switch r {
		case ' ':
			n++
		case '\t':
			n += 8
		default:
			return s[i:]
		}
	}
	return ""
}
