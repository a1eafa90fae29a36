package pattern

import (
	"fmt"

	"github.com/treepat/treepat/internal/tree"
)

// Template is one entry of the catalogue: an example tree fragment whose
// declared parameters act as typed wildcards.
type Template struct {
	// Name identifies the template in results and logs.
	Name string

	// Root is the template tree to match candidates against.
	Root *tree.Node

	// Params maps each declared pattern-parameter name to its declared
	// type. An identifier in Root whose text is a key here is a wildcard;
	// every other identifier matches any candidate identifier.
	Params map[string]*tree.TypeInfo
}

// Substitute declares one substitution-call method: a call site in a
// template that marks a rewrite point instead of literal code. Calls are
// recognized by resolved-symbol identity, never by text, so overloaded or
// shadowed members are told apart.
type Substitute struct {
	// Name is the method's simple name, the key captures are stored under.
	Name string

	// Sym is the stable resolved-symbol key of the method declaration.
	Sym string
}

// SubstituteSet indexes substitution-call declarations by symbol key.
type SubstituteSet map[string]Substitute

// NewSubstituteSet builds the index, rejecting declarations without a
// symbol key since those could never be recognized.
func NewSubstituteSet(subs []Substitute) (SubstituteSet, error) {
	set := make(SubstituteSet, len(subs))
	for _, s := range subs {
		if s.Sym == "" {
			return nil, fmt.Errorf("substitute %q has no resolved symbol", s.Name)
		}
		set[s.Sym] = s
	}
	return set, nil
}

// Contains reports whether sym identifies a declared substitution-call.
// The empty key is never a member: an unresolved template call falls back
// to structural matching.
func (s SubstituteSet) Contains(sym string) bool {
	if sym == "" {
		return false
	}
	_, ok := s[sym]
	return ok
}
