// Package latexdoc renders a document tree into a typesetting command
// token stream, printed by a separate pass that owns all spacing and
// escaping rules.
package latexdoc

// Kind discriminates output tokens.
type Kind int

const (
	// KindCmd is a backslash command, e.g. \section.
	KindCmd Kind = iota
	// KindOpen and KindClose delimit a brace argument.
	KindOpen
	KindClose
	// KindVerbatim is literal text set verbatim: inline with a chosen
	// delimiter, or as a code environment when Block is set.
	KindVerbatim
	// KindNL is a blank-line directive: at least N blank lines, or
	// exactly N when Exact is set. Runs of directives collapse in the
	// print pass.
	KindNL
	// KindRaw is ordinary text, escaped by the print pass.
	KindRaw
)

type Token struct {
	Kind  Kind
	Name  string // KindCmd
	Text  string // KindVerbatim, KindRaw
	N     int    // KindNL
	Exact bool   // KindNL
	Block bool   // KindVerbatim
}

func Cmd(name string) Token    { return Token{Kind: KindCmd, Name: name} }
func Open() Token              { return Token{Kind: KindOpen} }
func Close() Token             { return Token{Kind: KindClose} }
func Raw(text string) Token    { return Token{Kind: KindRaw, Text: text} }
func Verb(text string) Token   { return Token{Kind: KindVerbatim, Text: text} }
func VerbBlock(t string) Token { return Token{Kind: KindVerbatim, Text: t, Block: true} }

// NL asks for at least n blank lines at this point in the stream.
func NL(n int) Token { return Token{Kind: KindNL, N: n} }

// NLExact pins the blank-line count at exactly n.
func NLExact(n int) Token { return Token{Kind: KindNL, N: n, Exact: true} }
