// Package docindex maintains the cross-reference registry that resolves
// predicate indicators to navigable locations. It is populated once, by an
// indexing pass over documentation sources, and is read-only while pages
// render; callers serialize indexing before rendering.
package docindex

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/ldoc-dev/ldoc/modes"
)

// Entry is one registered signature and its navigation target.
type Entry struct {
	Sig    *modes.Signature `json:"signature,omitempty"`
	Name   string           `json:"name"`
	Arity  int              `json:"arity"`
	DCG    bool             `json:"dcg,omitempty"`
	Module string           `json:"module,omitempty"`
	Anchor string           `json:"anchor"`
	File   string           `json:"file,omitempty"`
	Offset int              `json:"offset,omitempty"`
	Public bool             `json:"public"`
}

type Registry struct {
	entries map[string]*Entry
	order   []string
}

func NewRegistry() *Registry {
	return &Registry{entries: map[string]*Entry{}}
}

func key(name string, arity int, dcg bool) string {
	sep := "/"
	if dcg {
		sep = "//"
	}
	return fmt.Sprintf("%s%s%d", name, sep, arity)
}

// Register records a signature. The first registration of a (functor,
// arity) pair owns the anchor; later ones return the existing entry with
// ok=false and do not re-register.
func (r *Registry) Register(sig *modes.Signature, file string, offset int) (*Entry, bool) {
	k := sig.Key()
	if e, dup := r.entries[k]; dup {
		return e, false
	}
	e := &Entry{
		Sig:    sig,
		Name:   sig.Name,
		Arity:  sig.Arity(),
		DCG:    sig.DCG,
		Module: sig.Module,
		Anchor: k,
		File:   file,
		Offset: offset,
		Public: sig.Public,
	}
	r.entries[k] = e
	r.order = append(r.order, k)
	return e, true
}

// Lookup resolves an indicator. A miss is a normal result, never a failure.
func (r *Registry) Lookup(module, name string, arity int) (*Entry, bool) {
	e, ok := r.entries[key(name, arity, false)]
	if !ok {
		e, ok = r.entries[key(name, arity, true)]
	}
	if !ok || (module != "" && e.Module != "" && e.Module != module) {
		return nil, false
	}
	return e, true
}

// Known feeds the markup parser's bare-indicator recognition.
func (r *Registry) Known(name string, arity int, dcg bool) bool {
	_, ok := r.entries[key(name, arity, dcg)]
	return ok
}

func (r *Registry) Len() int { return len(r.entries) }

// Entries returns all entries in registration order.
func (r *Registry) Entries() []*Entry {
	out := make([]*Entry, 0, len(r.order))
	for _, k := range r.order {
		out = append(out, r.entries[k])
	}
	return out
}

// Save writes the registry as JSON, sorted by anchor for stable output.
func (r *Registry) Save(path string) error {
	entries := r.Entries()
	sort.Slice(entries, func(i, j int) bool { return entries[i].Anchor < entries[j].Anchor })

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// Load reads a registry previously written by Save.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var entries []*Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("could not parse registry: %w", err)
	}

	r := NewRegistry()
	for _, e := range entries {
		k := key(e.Name, e.Arity, e.DCG)
		if _, dup := r.entries[k]; dup {
			continue
		}
		r.entries[k] = e
		r.order = append(r.order, k)
	}
	return r, nil
}
