package modes

import "strings"

// OpTable maps operator functors to their fixity, keyed by name and arity.
// The zero value is unusable; use DefaultOps or extend a copy of it.
type OpTable map[opKey]Fixity

type opKey struct {
	name  string
	arity int
}

// DefaultOps covers the operators a logic-language reader expects to see
// rendered with operator layout.
func DefaultOps() OpTable {
	t := OpTable{}
	infix := []string{
		"=", "\\=", "==", "\\==", "=..", "is", "<", ">", "=<", ">=",
		"=:=", "=\\=", "+", "-", "*", "/", "//", "mod", "rem", "^",
		":-", "-->", "->", ";", ",", "@<", "@>", "@=<", "@>=",
	}
	for _, op := range infix {
		t[opKey{op, 2}] = Infix
	}
	for _, op := range []string{"-", "+", "\\+", "?-", ":-"} {
		t[opKey{op, 1}] = Prefix
	}
	return t
}

// Register adds or overrides an operator, as loaded from configuration.
func (t OpTable) Register(name string, arity int, f Fixity) {
	t[opKey{name, arity}] = f
}

func (t OpTable) lookup(name string, arity int) Fixity {
	if t == nil {
		return NoFixity
	}
	return t[opKey{name, arity}]
}

// ParseModeLine parses one comment line as a mode declaration. It reports
// false when the line does not have the shape of one; it never fails on
// malformed input beyond that.
//
// Recognized shapes:
//
//	name
//	name(+Arg:type, -Out) is det
//	name(+Codes)// is semidet
//	module:name(...)
func ParseModeLine(text string, ops OpTable) (*Signature, bool) {
	s := strings.TrimSpace(text)
	if s == "" {
		return nil, false
	}

	sig := &Signature{Public: true}

	// "is Det" suffix first; it is the easiest to misread as part of an
	// argument otherwise.
	if i := strings.LastIndex(s, " is "); i >= 0 {
		det, ok := detNames[strings.TrimSpace(s[i+4:])]
		if !ok {
			return nil, false
		}
		sig.Det = det
		s = strings.TrimSpace(s[:i])
	}

	if strings.HasSuffix(s, "//") {
		sig.DCG = true
		s = strings.TrimSpace(strings.TrimSuffix(s, "//"))
	}

	// mode(Head, [Names...]) wraps a head whose anonymous argument slots
	// take their names from the binding list.
	if inner, found := strings.CutPrefix(s, "mode("); found && strings.HasSuffix(inner, ")") {
		if head, names, ok := splitBinding(inner[:len(inner)-1]); ok {
			bound, ok := ParseModeLine(head, ops)
			if !ok {
				return nil, false
			}
			if sig.Det != Unknown {
				bound.Det = sig.Det
			}
			bound.DCG = bound.DCG || sig.DCG
			bound.Bind(names)
			return bound, true
		}
	}

	name := s
	var args string
	if i := strings.IndexByte(s, '('); i >= 0 {
		if !strings.HasSuffix(s, ")") {
			return nil, false
		}
		name, args = s[:i], s[i+1:len(s)-1]
	}

	if i := strings.IndexByte(name, ':'); i > 0 && isAtom(name[:i]) {
		sig.Module, name = name[:i], name[i+1:]
	}
	if !isFunctor(name) {
		return nil, false
	}
	sig.Name = name

	if args != "" {
		for _, raw := range splitArgs(args) {
			arg, ok := parseArg(raw)
			if !ok {
				return nil, false
			}
			sig.Args = append(sig.Args, arg)
		}
	}

	sig.Fixity = ops.lookup(sig.Name, len(sig.Args))
	return sig, true
}

// splitBinding splits the body of a mode/2 term into the head and the
// variable names of its binding list. Anything not shaped "Head, [A, B]"
// reports false, leaving the line to the plain-head classifiers.
func splitBinding(s string) (string, []string, bool) {
	parts := splitArgs(s)
	if len(parts) != 2 {
		return "", nil, false
	}
	list := strings.TrimSpace(parts[1])
	if len(list) < 2 || list[0] != '[' || list[len(list)-1] != ']' {
		return "", nil, false
	}

	var names []string
	if body := strings.TrimSpace(list[1 : len(list)-1]); body != "" {
		for _, raw := range splitArgs(body) {
			name := strings.TrimSpace(raw)
			if !isVarName(name) {
				return "", nil, false
			}
			names = append(names, name)
		}
	}
	return strings.TrimSpace(parts[0]), names, true
}

func parseArg(raw string) (Arg, bool) {
	var a Arg
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return a, false
	}
	switch raw[0] {
	case '+', '-', '?', '@', ':':
		a.Mode = raw[0]
		raw = raw[1:]
	}
	if strings.HasSuffix(raw, "...") {
		a.Ellipsis = true
		raw = strings.TrimSuffix(raw, "...")
	}
	if i := strings.IndexByte(raw, ':'); i >= 0 {
		a.Name, a.Type = raw[:i], raw[i+1:]
		if a.Type == "" || strings.ContainsAny(a.Type, " \t") {
			return a, false
		}
	} else {
		a.Name = raw
	}
	if a.Name != "" && !isVarName(a.Name) {
		return a, false
	}
	if a.Mode == 0 && a.Name == "" {
		return a, false
	}
	return a, true
}

// splitArgs splits on top-level commas, respecting nested parentheses and
// brackets so types like list(pair(K,V)) survive.
func splitArgs(s string) []string {
	var parts []string
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}

func isAtom(s string) bool {
	if s == "" {
		return false
	}
	if s[0] < 'a' || s[0] > 'z' {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		if c != '_' && !alnum(c) {
			return false
		}
	}
	return true
}

// isFunctor accepts plain atoms and symbolic operator names.
func isFunctor(s string) bool {
	if isAtom(s) {
		return true
	}
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !strings.ContainsRune(`+-*/\^<>=~:.?@#&;,!`, rune(s[i])) {
			return false
		}
	}
	return true
}

func isVarName(s string) bool {
	if s == "" {
		return false
	}
	if s[0] != '_' && (s[0] < 'A' || s[0] > 'Z') {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		if c != '_' && !alnum(c) {
			return false
		}
	}
	return true
}

func alnum(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}
