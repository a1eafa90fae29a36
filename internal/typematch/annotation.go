package typematch

import (
	"regexp"

	"github.com/treepat/treepat/internal/tree"
)

// AnnotationBuilder accumulates criteria for matching a single annotation
// node by name.
type AnnotationBuilder struct {
	name          string
	nameRegex     *regexp.Regexp
	invalidRegex  bool
	namePredicate func(string) bool
}

// Annotation starts a new annotation query.
func Annotation() *AnnotationBuilder { return &AnnotationBuilder{} }

// WithName requires the exact annotation name. Either the simple or the
// fully qualified form matches, so "Deprecated" finds "java.lang.Deprecated".
func (b *AnnotationBuilder) WithName(name string) *AnnotationBuilder {
	b.name = name
	return b
}

// WithNameLike requires the annotation name to match the regular
// expression. An invalid expression never matches anything.
func (b *AnnotationBuilder) WithNameLike(expr string) *AnnotationBuilder {
	re, err := regexp.Compile(expr)
	if err != nil {
		b.invalidRegex = true
		return b
	}
	b.nameRegex = re
	return b
}

// WithNamePredicate requires the annotation name to satisfy pred.
func (b *AnnotationBuilder) WithNamePredicate(pred func(string) bool) *AnnotationBuilder {
	b.namePredicate = pred
	return b
}

// Build creates the matcher from the current builder state.
func (b *AnnotationBuilder) Build() Matcher {
	copied := *b
	return &annotationMatcher{b: &copied}
}

type annotationMatcher struct {
	b *AnnotationBuilder
}

func (m *annotationMatcher) Matches(n *tree.Node) bool {
	if n == nil || n.Kind != tree.Annotation {
		return false
	}
	if m.b.invalidRegex {
		return false
	}
	qualified := n.Text
	if n.Type != nil && n.Type.Qualified != "" {
		qualified = n.Type.Qualified
	}
	if m.b.name != "" && m.b.name != n.Text && m.b.name != qualified {
		return false
	}
	if m.b.nameRegex != nil && !m.b.nameRegex.MatchString(qualified) {
		return false
	}
	if m.b.namePredicate != nil && !m.b.namePredicate(qualified) {
		return false
	}
	return true
}
