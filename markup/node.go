package markup

import "github.com/ldoc-dev/ldoc/modes"

// Node is the closed vocabulary of document-tree nodes. Every variant the
// parser can produce is listed here; backends switch exhaustively over it.
type Node interface {
	node()
}

type Heading struct {
	Level   int // 1..4
	Content []Node
}

type Paragraph struct {
	Content []Node
}

type List struct {
	Ordered bool
	Items   [][]Node
}

// DescItem pairs a term with its definition body. The term is either inline
// content (a "$ term: body" entry) or a SignatureTerm.
type DescItem struct {
	Term Node
	Body []Node
}

type DescriptionList struct {
	Items []DescItem
}

// CodeBlock holds verbatim text. No sub-parsing happens inside it.
type CodeBlock struct {
	Text string
}

type InlineCode struct {
	Text string
}

type EmphKind int

const (
	Bold EmphKind = iota
	Italic
)

type Emphasis struct {
	Kind    EmphKind
	Content []Node
}

type Link struct {
	Target  string
	Content []Node
}

type Text string

// PredRef is a reference to a documented predicate, either written
// explicitly ([[foo/2]]) or recognized as a bare foo/2 token.
type PredRef struct {
	Name  string
	Arity int
	DCG   bool
}

// Tag is a trailing @keyword line, e.g. @author or @see. @param lines are
// gathered into a ParamList instead.
type Tag struct {
	Keyword string
	Value   []Node
}

type Param struct {
	Name        string
	Description []Node
}

type ParamList struct {
	Entries []Param
}

// SignatureTerm is the typed node a mode-declaration line becomes. Anchor
// is set on the first occurrence of a (functor, arity) pair so backends
// emit one navigation target per signature.
type SignatureTerm struct {
	Sig    *modes.Signature
	Anchor bool
}

func (Heading) node()         {}
func (Paragraph) node()       {}
func (List) node()            {}
func (DescriptionList) node() {}
func (CodeBlock) node()       {}
func (InlineCode) node()      {}
func (Emphasis) node()        {}
func (Link) node()            {}
func (Text) node()            {}
func (PredRef) node()         {}
func (Tag) node()             {}
func (ParamList) node()       {}
func (SignatureTerm) node()   {}

// Doc is the parsed form of one structured comment.
type Doc struct {
	Nodes   []Node
	Summary string

	// Signatures lists the mode declarations found at the head of the
	// comment, in source order.
	Signatures []*modes.Signature

	File   string
	Offset int
}
