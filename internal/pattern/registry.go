package pattern

import (
	"fmt"

	"github.com/treepat/treepat/internal/tree"
)

// Match is the outcome of one successful (template, candidate) attempt:
// the matched candidate root plus the three finished capture mappings.
// The root is a shared reference into the candidate tree; ownership stays
// with the tree. Consumers must treat the mappings as read-only.
type Match struct {
	Template      string
	Root          *tree.Node
	Params        map[string]*tree.Node
	Substitutions map[string]*tree.Node
	TypeVars      map[string]string
}

// Registry holds the immutable template catalogue and the declared
// substitution-call set. It carries no per-attempt state, so one Registry
// may serve any number of concurrent FindMatches calls.
type Registry struct {
	templates []*Template
	subs      SubstituteSet
}

// NewRegistry builds a registry from a catalogue. Template names must be
// unique and every template needs a root.
func NewRegistry(templates []*Template, subs []Substitute) (*Registry, error) {
	set, err := NewSubstituteSet(subs)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(templates))
	for _, t := range templates {
		if t.Root == nil {
			return nil, fmt.Errorf("template %q has no pattern tree", t.Name)
		}
		if seen[t.Name] {
			return nil, fmt.Errorf("duplicate template name %q", t.Name)
		}
		seen[t.Name] = true
	}
	return &Registry{templates: templates, subs: set}, nil
}

// Len returns the number of templates in the catalogue.
func (r *Registry) Len() int { return len(r.templates) }

// FindMatches tries every template against the candidate, each with a
// fresh Matcher, and returns the successful ones in catalogue order.
// Templates are independent: there is no early exit, and no state is
// shared between attempts.
func (r *Registry) FindMatches(candidate *tree.Node) []Match {
	var out []Match
	for _, tpl := range r.templates {
		m := NewMatcher(tpl, r.subs)
		if m.Match(tpl.Root, candidate) {
			out = append(out, m.Result())
		}
	}
	return out
}
