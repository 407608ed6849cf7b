package markup

import (
	"strconv"
	"strings"
)

// inline scans paragraph-level text for spans: `code`, *bold*, _italic_,
// [[...]] references and bare name/arity tokens. Unmatched markers stay
// literal text.
func (p *parser) inline(text string) []Node {
	var nodes []Node
	var plain strings.Builder

	flush := func() {
		if plain.Len() == 0 {
			return
		}
		nodes = append(nodes, p.predRefs(plain.String())...)
		plain.Reset()
	}

	for i := 0; i < len(text); {
		c := text[i]
		switch {
		case c == '`':
			end := strings.IndexByte(text[i+1:], '`')
			if end < 0 {
				plain.WriteByte(c)
				i++
				continue
			}
			flush()
			nodes = append(nodes, InlineCode{Text: text[i+1 : i+1+end]})
			i += end + 2

		case c == '*' || c == '_':
			span, ok := emphSpan(text, i)
			if !ok {
				plain.WriteByte(c)
				i++
				continue
			}
			flush()
			kind := Bold
			if c == '_' {
				kind = Italic
			}
			nodes = append(nodes, Emphasis{Kind: kind, Content: p.predRefs(span)})
			i += len(span) + 2

		case c == '[' && strings.HasPrefix(text[i:], "[["):
			end := strings.Index(text[i+2:], "]]")
			if end < 0 {
				plain.WriteByte(c)
				i++
				continue
			}
			flush()
			nodes = append(nodes, p.bracketRef(text[i+2:i+2+end]))
			i += end + 4

		default:
			plain.WriteByte(c)
			i++
		}
	}
	flush()
	return nodes
}

// emphSpan matches a *bold* or _italic_ span starting at i. The span must
// open and close tightly: no space after the opener or before the closer,
// and it must not be the middle of a word (snake_case survives).
func emphSpan(text string, i int) (string, bool) {
	marker := text[i]
	if i > 0 && isWordByte(text[i-1]) {
		return "", false
	}
	end := strings.IndexByte(text[i+1:], marker)
	if end <= 0 {
		return "", false
	}
	span := text[i+1 : i+1+end]
	if span[0] == ' ' || span[len(span)-1] == ' ' {
		return "", false
	}
	return span, true
}

// bracketRef interprets the inside of a [[...]] bracket: either a
// predicate indicator or a file/section target.
func (p *parser) bracketRef(target string) Node {
	target = strings.TrimSpace(target)
	if name, arity, dcg, ok := SplitIndicator(target); ok {
		return PredRef{Name: name, Arity: arity, DCG: dcg}
	}
	return Link{Target: target, Content: []Node{Text(target)}}
}

// predRefs finds bare name/arity tokens in plain text, keeping them only
// when they match a known-declared signature.
func (p *parser) predRefs(text string) []Node {
	if p.cfg.Known == nil {
		return []Node{Text(text)}
	}

	var nodes []Node
	rest := text
	for {
		start, end := indicatorToken(rest)
		if start < 0 {
			break
		}
		name, arity, dcg, ok := SplitIndicator(rest[start:end])
		if !ok || !p.cfg.Known(name, arity, dcg) {
			if len(nodes) == 0 && end == len(rest) {
				break
			}
			nodes = append(nodes, Text(rest[:end]))
			rest = rest[end:]
			continue
		}
		if start > 0 {
			nodes = append(nodes, Text(rest[:start]))
		}
		nodes = append(nodes, PredRef{Name: name, Arity: arity, DCG: dcg})
		rest = rest[end:]
	}
	if rest != "" || len(nodes) == 0 {
		nodes = append(nodes, Text(rest))
	}
	return nodes
}

// indicatorToken returns the bounds of the next candidate name/arity token,
// or start < 0 when none remains.
func indicatorToken(s string) (int, int) {
	for i := 0; i < len(s); i++ {
		if s[i] != '/' {
			continue
		}
		start := i
		for start > 0 && isWordByte(s[start-1]) {
			start--
		}
		if start == i {
			continue
		}
		end := i + 1
		if end < len(s) && s[end] == '/' {
			end++
		}
		digits := end
		for end < len(s) && s[end] >= '0' && s[end] <= '9' {
			end++
		}
		if end == digits {
			continue
		}
		if end < len(s) && isWordByte(s[end]) {
			i = end
			continue
		}
		return start, end
	}
	return -1, -1
}

// SplitIndicator splits a predicate indicator of the form name/arity or
// name//arity.
func SplitIndicator(s string) (name string, arity int, dcg bool, ok bool) {
	name, num, found := strings.Cut(s, "//")
	if found {
		dcg = true
	} else {
		name, num, found = strings.Cut(s, "/")
		if !found {
			return "", 0, false, false
		}
	}
	if name == "" {
		return "", 0, false, false
	}
	for i := 0; i < len(name); i++ {
		if !isWordByte(name[i]) {
			return "", 0, false, false
		}
	}
	arity, err := strconv.Atoi(num)
	if err != nil || arity < 0 {
		return "", 0, false, false
	}
	return name, arity, dcg, true
}

func isWordByte(c byte) bool {
	return c == '_' || alnumByte(c)
}

func alnumByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}
