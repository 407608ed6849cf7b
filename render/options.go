// Package render holds the contract shared by the hypertext and typeset
// backends: rendering options and the environment mode stack.
package render

import "fmt"

// Level is a rung of the fixed section ladder. Heading depth in output is
// the configured base level plus the heading's own level.
type Level int

const (
	Chapter Level = iota
	Section
	Subsection
	Subsubsection
	ParagraphLevel
)

var levelNames = []string{"chapter", "section", "subsection", "subsubsection", "paragraph"}

func (l Level) String() string {
	if l < 0 || int(l) >= len(levelNames) {
		return fmt.Sprintf("level(%d)", int(l))
	}
	return levelNames[l]
}

// ParseLevel resolves a configuration string to a ladder rung.
func ParseLevel(s string) (Level, error) {
	for i, name := range levelNames {
		if name == s {
			return Level(i), nil
		}
	}
	return 0, fmt.Errorf("unknown section level %q", s)
}

// Options is the full configuration a backend consumes. It is threaded
// explicitly; there is no ambient option state.
type Options struct {
	// PublicOnly suppresses signatures not marked public.
	PublicOnly bool

	// SectionLevel is the base rung headings are measured from.
	SectionLevel Level

	// StandAlone wraps output in a complete document rather than an
	// embeddable fragment. Typeset backend only.
	StandAlone bool
}

func DefaultOptions() Options {
	return Options{
		PublicOnly:   true,
		SectionLevel: Section,
		StandAlone:   true,
	}
}
