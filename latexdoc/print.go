package latexdoc

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// delimCandidates are the characters tried, in order, when choosing an
// inline verbatim delimiter.
const delimCandidates = "$|@=\"^!"

// ErrNoDelimiter reports verbatim text that contains every candidate
// delimiter. There is no way to set such text inline; the caller gets a
// hard failure rather than corrupt output.
var ErrNoDelimiter = errors.New("verbatim text exhausts all delimiter candidates")

// Print writes a token stream as typesetting source. It collapses
// blank-line directives, escapes reserved characters in raw text, and
// chooses delimiters for inline verbatim spans.
func Print(w io.Writer, toks []Token) error {
	for _, t := range CollapseNL(toks) {
		var err error
		switch t.Kind {
		case KindCmd:
			_, err = io.WriteString(w, "\\"+t.Name)
		case KindOpen:
			_, err = io.WriteString(w, "{")
		case KindClose:
			_, err = io.WriteString(w, "}")
		case KindRaw:
			_, err = io.WriteString(w, Escape(t.Text))
		case KindNL:
			_, err = io.WriteString(w, strings.Repeat("\n", t.N))
		case KindVerbatim:
			if t.Block {
				_, err = fmt.Fprintf(w, "\\begin{code}\n%s\n\\end{code}", t.Text)
				break
			}
			var d byte
			d, err = verbDelim(t.Text)
			if err == nil {
				_, err = fmt.Fprintf(w, "\\verb%c%s%c", d, t.Text, d)
			}
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// CollapseNL merges every run of adjacent blank-line directives into one.
// The merged count is the maximum over the run; the presence of any
// "exactly" directive pins the run's final count rather than only bounding
// it from below.
func CollapseNL(toks []Token) []Token {
	out := make([]Token, 0, len(toks))
	for i := 0; i < len(toks); {
		if toks[i].Kind != KindNL {
			out = append(out, toks[i])
			i++
			continue
		}
		merged := toks[i]
		for i++; i < len(toks) && toks[i].Kind == KindNL; i++ {
			if toks[i].N > merged.N {
				merged.N = toks[i].N
			}
			merged.Exact = merged.Exact || toks[i].Exact
		}
		out = append(out, merged)
	}
	return out
}

// verbDelim picks a delimiter character not occurring in the text.
func verbDelim(text string) (byte, error) {
	for i := 0; i < len(delimCandidates); i++ {
		if !strings.ContainsRune(text, rune(delimCandidates[i])) {
			return delimCandidates[i], nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrNoDelimiter, text)
}

// Escape rewrites the characters the typesetting language reserves.
func Escape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			b.WriteString(`\bsl{}`)
		case '{':
			b.WriteString(`\{`)
		case '}':
			b.WriteString(`\}`)
		case '$':
			b.WriteString(`\$`)
		case '#':
			b.WriteString(`\#`)
		case '&':
			b.WriteString(`\&`)
		case '%':
			b.WriteString(`\%`)
		case '_':
			b.WriteString(`\_`)
		case '<':
			b.WriteString(`$<$`)
		case '>':
			b.WriteString(`$>$`)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
