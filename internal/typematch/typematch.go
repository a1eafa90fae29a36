// Package typematch matches single type-declaration nodes by their
// declared attributes: class/interface kind, name, modifiers, visibility,
// supertype, implemented interfaces, and annotations. Criteria are
// combined with AND semantics; anything left unset is vacuously true.
package typematch

import (
	"regexp"
	"strings"

	"github.com/treepat/treepat/internal/tree"
)

// Matcher is a boolean predicate over a single node.
type Matcher interface {
	Matches(n *tree.Node) bool
}

type visibility int

const (
	visAny visibility = iota
	visPublic
	visPackage
	visPrivate
)

// Builder accumulates criteria for a type matcher. Build the predicate
// with Build once the criteria are complete.
type Builder struct {
	isInterface *bool
	isClass     *bool

	name          string
	nameRegex     *regexp.Regexp
	invalidRegex  bool
	namePredicate func(string) bool

	superclass string
	interfaces []string

	annotations []Matcher

	vis        visibility
	isStatic   bool
	isAbstract bool
	isFinal    bool
}

// Type starts a new type-declaration query.
func Type() *Builder { return &Builder{} }

// AsInterface requires the type to be an interface.
func (b *Builder) AsInterface() *Builder {
	t := true
	b.isInterface = &t
	return b
}

// AsClass requires the type to be a class.
func (b *Builder) AsClass() *Builder {
	t := true
	b.isClass = &t
	return b
}

// WithName requires the exact fully qualified name.
func (b *Builder) WithName(name string) *Builder {
	b.name = name
	return b
}

// WithNameLike requires the fully qualified name to match the regular
// expression. An invalid expression never matches anything.
func (b *Builder) WithNameLike(expr string) *Builder {
	re, err := regexp.Compile(expr)
	if err != nil {
		b.invalidRegex = true
		return b
	}
	b.nameRegex = re
	return b
}

// WithNamePredicate requires the fully qualified name to satisfy pred.
func (b *Builder) WithNamePredicate(pred func(string) bool) *Builder {
	b.namePredicate = pred
	return b
}

// Extending requires the named type somewhere in the superclass chain.
// A parameterized argument (one containing type arguments) is compared
// against qualified names; otherwise the comparison is on binary names.
func (b *Builder) Extending(superclass string) *Builder {
	b.superclass = superclass
	return b
}

// Implementing requires every named interface to be implemented, directly
// or transitively. Names are fully qualified.
func (b *Builder) Implementing(interfaceNames ...string) *Builder {
	b.interfaces = append(b.interfaces, interfaceNames...)
	return b
}

// WithAnnotation requires an annotation on the declaration satisfying the
// given matcher. Repeat for multiple required annotations.
func (b *Builder) WithAnnotation(m Matcher) *Builder {
	b.annotations = append(b.annotations, m)
	return b
}

// WithPublicVisibility requires the public modifier.
func (b *Builder) WithPublicVisibility() *Builder {
	b.vis = visPublic
	return b
}

// WithPackageVisibility requires neither the public nor the private
// modifier to be present.
func (b *Builder) WithPackageVisibility() *Builder {
	b.vis = visPackage
	return b
}

// WithPrivateVisibility requires the private modifier.
func (b *Builder) WithPrivateVisibility() *Builder {
	b.vis = visPrivate
	return b
}

// Static requires the static modifier.
func (b *Builder) Static() *Builder {
	b.isStatic = true
	return b
}

// Abstract requires the abstract modifier.
func (b *Builder) Abstract() *Builder {
	b.isAbstract = true
	return b
}

// Final requires the final modifier.
func (b *Builder) Final() *Builder {
	b.isFinal = true
	return b
}

// Build creates the matcher from the current builder state.
func (b *Builder) Build() Matcher {
	copied := *b
	return &typeMatcher{b: &copied}
}

type typeMatcher struct {
	b *Builder
}

// Matches checks the node against every configured criterion, failing on
// the first one unsatisfied. Non-type-declaration nodes never match.
func (m *typeMatcher) Matches(n *tree.Node) bool {
	if n == nil || n.Kind != tree.TypeDecl {
		return false
	}
	b := m.b
	if b.invalidRegex {
		return false
	}
	if b.isInterface != nil && *b.isInterface != n.Mods.Has(tree.ModInterface) {
		return false
	}
	if b.isClass != nil && *b.isClass == n.Mods.Has(tree.ModInterface) {
		return false
	}
	name := qualifiedName(n)
	if b.name != "" && b.name != name {
		return false
	}
	if b.nameRegex != nil && !b.nameRegex.MatchString(name) {
		return false
	}
	if b.namePredicate != nil && !b.namePredicate(name) {
		return false
	}
	if !m.checkInterfaces(n) {
		return false
	}
	if !m.checkAnnotations(n) {
		return false
	}
	if !m.checkVisibility(n) {
		return false
	}
	if b.isStatic && !n.Mods.Has(tree.ModStatic) {
		return false
	}
	if b.isAbstract && !n.Mods.Has(tree.ModAbstract) {
		return false
	}
	if b.isFinal && !n.Mods.Has(tree.ModFinal) {
		return false
	}
	return m.checkSuperclass(n)
}

// qualifiedName prefers the resolved qualified name; an unresolved
// declaration falls back to its source text.
func qualifiedName(n *tree.Node) string {
	if n.Type != nil && n.Type.Qualified != "" {
		return n.Type.Qualified
	}
	return n.Text
}

func (m *typeMatcher) checkVisibility(n *tree.Node) bool {
	switch m.b.vis {
	case visPublic:
		return n.Mods.Has(tree.ModPublic)
	case visPrivate:
		return n.Mods.Has(tree.ModPrivate)
	case visPackage:
		return !n.Mods.Has(tree.ModPublic) && !n.Mods.Has(tree.ModPrivate)
	default:
		return true
	}
}

// checkSuperclass walks the declared superclass chain looking for the
// required supertype. A parameterized requirement matches qualified
// names; a plain one matches binary names, so the raw and generic forms
// of the same class both satisfy it.
func (m *typeMatcher) checkSuperclass(n *tree.Node) bool {
	want := m.b.superclass
	if want == "" {
		return true
	}
	if n.Type == nil || n.Type.Superclass == nil {
		return false
	}
	parameterized := strings.ContainsRune(want, '<')
	visited := make(map[string]bool)
	for sc := n.Type.Superclass; sc != nil; sc = sc.Superclass {
		key := sc.Qualified
		if visited[key] {
			break
		}
		visited[key] = true
		if parameterized {
			if sc.Qualified == want {
				return true
			}
		} else if sc.Binary == want {
			return true
		}
	}
	return false
}

// checkInterfaces requires every configured interface name to be in the
// transitive closure of interfaces the declaration implements.
func (m *typeMatcher) checkInterfaces(n *tree.Node) bool {
	if len(m.b.interfaces) == 0 {
		return true
	}
	if n.Type == nil {
		return false
	}
	all := allInterfaces(n.Type)
	for _, want := range m.b.interfaces {
		if !all[want] {
			return false
		}
	}
	return true
}

// allInterfaces computes the set of qualified interface names a type
// implements: its declared interfaces, their superinterfaces, and the
// interfaces declared anywhere up the superclass chain. The class graph
// is acyclic by construction, but the walk keeps a visited set anyway so
// malformed or partially-resolved hierarchies cannot loop it.
func allInterfaces(t *tree.TypeInfo) map[string]bool {
	names := make(map[string]bool)
	visited := make(map[string]bool)
	for _, iface := range t.Interfaces {
		collectInterfaces(iface, names, visited)
	}
	for sc := t.Superclass; sc != nil; sc = sc.Superclass {
		if visited["class:"+sc.Qualified] {
			break
		}
		visited["class:"+sc.Qualified] = true
		for _, iface := range sc.Interfaces {
			collectInterfaces(iface, names, visited)
		}
	}
	return names
}

func collectInterfaces(t *tree.TypeInfo, names, visited map[string]bool) {
	if t == nil || visited[t.Qualified] {
		return
	}
	visited[t.Qualified] = true
	names[t.Qualified] = true
	for _, iface := range t.Interfaces {
		collectInterfaces(iface, names, visited)
	}
}

func (m *typeMatcher) checkAnnotations(n *tree.Node) bool {
	for _, required := range m.b.annotations {
		found := false
		for _, child := range n.Children {
			if child.Kind == tree.Annotation && required.Matches(child) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
