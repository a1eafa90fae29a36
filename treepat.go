// Package treepat decides whether candidate source-tree fragments are
// instances of declared pattern templates, and extracts the bindings of
// each template wildcard and substitution call-site on success.
//
// The engine consumes trees that an external parser/resolver has already
// produced and annotated with resolved types and symbols; it never parses
// source text itself. See internal/pattern for the unification matcher and
// internal/typematch for attribute queries over single declarations.
package treepat

import (
	"github.com/treepat/treepat/internal/pattern"
	"github.com/treepat/treepat/internal/tree"
	"github.com/treepat/treepat/internal/treeio"
	"github.com/treepat/treepat/internal/typematch"
)

// Re-exported core types. The internal packages hold the implementation;
// external callers work through these names.
type (
	Node       = tree.Node
	TypeInfo   = tree.TypeInfo
	Kind       = tree.Kind
	Template   = pattern.Template
	Substitute = pattern.Substitute
	Match      = pattern.Match
	Registry   = pattern.Registry
)

// NewRegistry builds a registry from templates and substitution-call
// declarations assembled in code.
func NewRegistry(templates []*Template, subs []Substitute) (*Registry, error) {
	return pattern.NewRegistry(templates, subs)
}

// LoadRegistry builds a registry from a YAML catalogue file.
func LoadRegistry(catalogPath string) (*Registry, error) {
	cat, err := treeio.LoadCatalog(catalogPath)
	if err != nil {
		return nil, err
	}
	return pattern.NewRegistry(cat.Templates, cat.Substitutes)
}

// LoadTree reads one candidate tree from a YAML file.
func LoadTree(path string) (*Node, error) {
	return treeio.LoadTree(path)
}

// TypeQuery starts an attribute-matcher query over type declarations.
func TypeQuery() *typematch.Builder {
	return typematch.Type()
}

// AnnotationQuery starts an annotation matcher for nesting inside a type
// query.
func AnnotationQuery() *typematch.AnnotationBuilder {
	return typematch.Annotation()
}
