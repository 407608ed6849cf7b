// Package modes parses predicate mode declarations such as
// "name(+Arg:type, -Out) is det" into a normalized signature model.
package modes

import (
	"fmt"
	"strings"
)

// Determinism is the declared solution-count class of a predicate.
type Determinism int

const (
	Unknown Determinism = iota
	Det
	Semidet
	Nondet
	Multi
	Failure
)

var detNames = map[string]Determinism{
	"det":     Det,
	"semidet": Semidet,
	"nondet":  Nondet,
	"multi":   Multi,
	"failure": Failure,
}

func (d Determinism) String() string {
	for name, v := range detNames {
		if v == d {
			return name
		}
	}
	return "unknown"
}

// Fixity is how an operator head is laid out. It is decided once at parse
// time from the operator table and carried on the signature; backends never
// re-derive it.
type Fixity int

const (
	NoFixity Fixity = iota
	Infix
	Prefix
	Postfix
)

// Arg is one argument slot of a mode declaration.
type Arg struct {
	Mode     byte // one of + - ? @ : or 0 when absent
	Name     string
	Type     string
	Ellipsis bool
}

func (a Arg) String() string {
	var b strings.Builder
	if a.Mode != 0 {
		b.WriteByte(a.Mode)
	}
	b.WriteString(a.Name)
	if a.Type != "" {
		b.WriteByte(':')
		b.WriteString(a.Type)
	}
	if a.Ellipsis {
		b.WriteString("...")
	}
	return b.String()
}

// Signature is one parsed mode declaration. Identity for deduplication is
// (Name, Arity, DCG); see Key.
type Signature struct {
	Module string
	Name   string
	Args   []Arg
	DCG    bool
	Det    Determinism
	Fixity Fixity
	Public bool
}

func (s *Signature) Arity() int { return len(s.Args) }

// Key is the identity under which overloaded mode declarations are
// deduplicated, e.g. "foo/2" or "phrase//1".
func (s *Signature) Key() string {
	sep := "/"
	if s.DCG {
		sep = "//"
	}
	return fmt.Sprintf("%s%s%d", s.Name, sep, len(s.Args))
}

func (s *Signature) String() string {
	var b strings.Builder
	if s.Module != "" {
		b.WriteString(s.Module)
		b.WriteByte(':')
	}
	b.WriteString(s.Name)
	if len(s.Args) > 0 {
		b.WriteByte('(')
		for i, a := range s.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(a.String())
		}
		b.WriteByte(')')
	}
	if s.DCG {
		b.WriteString("//")
	}
	if s.Det != Unknown {
		b.WriteString(" is ")
		b.WriteString(s.Det.String())
	}
	return b.String()
}

// OperatorLayout is the fixity backends lay the head out with. A fixity
// whose argument count cannot support it degrades to NoFixity, so a
// misdeclared operator renders in plain functor notation instead of
// indexing past its arguments.
func (s *Signature) OperatorLayout() Fixity {
	switch s.Fixity {
	case Infix:
		if len(s.Args) == 2 {
			return Infix
		}
	case Prefix, Postfix:
		if len(s.Args) == 1 {
			return s.Fixity
		}
	}
	return NoFixity
}

// Bind substitutes names for anonymous argument slots, so arguments written
// as bare mode indicators can still be rendered with a name. Slots that
// already have a name keep it.
func (s *Signature) Bind(names []string) {
	for i := range s.Args {
		if i >= len(names) {
			return
		}
		if s.Args[i].Name == "" {
			s.Args[i].Name = names[i]
		}
	}
}
