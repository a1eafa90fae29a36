package tree

import "strings"

// TypeInfo is the resolved-type descriptor attached to nodes by the
// external resolver. Read-only to the engine.
type TypeInfo struct {
	// Qualified is the full source-level name, including type arguments,
	// e.g. "java.util.List<java.lang.String>". For a type variable it is
	// the variable's name, e.g. "T".
	Qualified string

	// Binary is the erased name, e.g. "java.util.List". May be empty for
	// type variables; Declaration falls back to the erasure of Qualified.
	Binary string

	// Args are the generic type arguments, in order. Empty for raw and
	// non-generic types.
	Args []*TypeInfo

	// Superclass is the declared supertype, nil for roots.
	Superclass *TypeInfo

	// Interfaces are the directly declared interfaces.
	Interfaces []*TypeInfo

	// TypeVariable marks a generic-parameter-like type, unifiable against
	// a concrete type name during matching.
	TypeVariable bool
}

// Parameterized reports whether the type carries generic type arguments.
func (t *TypeInfo) Parameterized() bool {
	return t != nil && len(t.Args) > 0
}

// Name returns the simple name: the last dot-separated segment of the
// qualified name with any type-argument suffix stripped. Type-variable
// names come back unchanged.
func (t *TypeInfo) Name() string {
	if t == nil {
		return ""
	}
	q := t.Qualified
	if i := strings.IndexByte(q, '<'); i >= 0 {
		q = q[:i]
	}
	if i := strings.LastIndexByte(q, '.'); i >= 0 {
		q = q[i+1:]
	}
	return q
}

// erased returns the name used for declaration-form comparison.
func (t *TypeInfo) erased() string {
	if t == nil {
		return ""
	}
	if t.Binary != "" {
		return t.Binary
	}
	q := t.Qualified
	if i := strings.IndexByte(q, '<'); i >= 0 {
		q = q[:i]
	}
	return q
}

// Declaration returns the generic declaration form of the type: for a
// parameterized type, its unparameterized generic shape; identity
// otherwise. Comparing declarations lets Map<String,Integer> and a generic
// or raw Map stand for the same declared type.
func (t *TypeInfo) Declaration() *TypeInfo {
	if t == nil || !t.Parameterized() {
		return t
	}
	decl := *t
	decl.Args = nil
	decl.Qualified = t.erased()
	return &decl
}

// Equal reports exact type equality: erased names, type-variable flags,
// and type arguments pairwise.
func (t *TypeInfo) Equal(other *TypeInfo) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.TypeVariable != other.TypeVariable || t.erased() != other.erased() {
		return false
	}
	if len(t.Args) != len(other.Args) {
		return false
	}
	for i := range t.Args {
		if !t.Args[i].Equal(other.Args[i]) {
			return false
		}
	}
	return true
}

// SubTypeCompatible reports whether this type's declaration form is
// assignable to other's declaration form: either the same declared type,
// or other appears in this type's superclass chain or transitive
// interface set. The walk is visited-guarded so malformed hierarchies
// from partially-resolved input cannot loop.
func (t *TypeInfo) SubTypeCompatible(other *TypeInfo) bool {
	if t == nil || other == nil {
		return false
	}
	want := other.erased()
	if want == "" {
		return false
	}
	visited := make(map[string]bool)
	return t.reaches(want, visited)
}

func (t *TypeInfo) reaches(want string, visited map[string]bool) bool {
	if t == nil {
		return false
	}
	name := t.erased()
	if visited[name] {
		return false
	}
	visited[name] = true
	if name == want {
		return true
	}
	for _, iface := range t.Interfaces {
		if iface.reaches(want, visited) {
			return true
		}
	}
	return t.Superclass.reaches(want, visited)
}
