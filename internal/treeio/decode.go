// Package treeio decodes resolved source trees and template catalogues
// from their YAML interchange form. The engine itself never parses source
// text; an external parser/resolver emits these documents.
package treeio

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/treepat/treepat/internal/pattern"
	"github.com/treepat/treepat/internal/tree"
)

// Catalog is a decoded template catalogue: the templates plus the
// declared substitution-call methods they may reference.
type Catalog struct {
	Templates   []*pattern.Template
	Substitutes []pattern.Substitute
}

type nodeSpec struct {
	Kind      string      `yaml:"kind"`
	Text      string      `yaml:"text,omitempty"`
	Symbol    string      `yaml:"symbol,omitempty"`
	Type      *typeSpec   `yaml:"type,omitempty"`
	Modifiers []string    `yaml:"modifiers,omitempty"`
	Children  []*nodeSpec `yaml:"children,omitempty"`
}

type typeSpec struct {
	Name       string      `yaml:"name"`
	Binary     string      `yaml:"binary,omitempty"`
	Args       []*typeSpec `yaml:"args,omitempty"`
	Extends    *typeSpec   `yaml:"extends,omitempty"`
	Implements []*typeSpec `yaml:"implements,omitempty"`
	TypeVar    bool        `yaml:"typevar,omitempty"`
}

type catalogSpec struct {
	Templates   []templateSpec   `yaml:"templates"`
	Substitutes []substituteSpec `yaml:"substitutes,omitempty"`
}

type templateSpec struct {
	Name    string               `yaml:"name"`
	Params  map[string]*typeSpec `yaml:"params,omitempty"`
	Pattern *nodeSpec            `yaml:"pattern"`
}

type substituteSpec struct {
	Name   string `yaml:"name"`
	Symbol string `yaml:"symbol"`
}

// DecodeTree reads one candidate tree document.
func DecodeTree(r io.Reader) (*tree.Node, error) {
	var spec nodeSpec
	if err := yaml.NewDecoder(r).Decode(&spec); err != nil {
		return nil, fmt.Errorf("decoding tree: %w", err)
	}
	return spec.toNode()
}

// LoadTree reads one candidate tree document from a file.
func LoadTree(path string) (*tree.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	node, err := DecodeTree(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return node, nil
}

// DecodeCatalog reads a template catalogue document.
func DecodeCatalog(r io.Reader) (*Catalog, error) {
	var spec catalogSpec
	if err := yaml.NewDecoder(r).Decode(&spec); err != nil {
		return nil, fmt.Errorf("decoding catalogue: %w", err)
	}

	cat := &Catalog{}
	for _, ts := range spec.Templates {
		if ts.Name == "" {
			return nil, fmt.Errorf("template without a name")
		}
		if ts.Pattern == nil {
			return nil, fmt.Errorf("template %q has no pattern", ts.Name)
		}
		root, err := ts.Pattern.toNode()
		if err != nil {
			return nil, fmt.Errorf("template %q: %w", ts.Name, err)
		}
		var params map[string]*tree.TypeInfo
		if len(ts.Params) > 0 {
			params = make(map[string]*tree.TypeInfo, len(ts.Params))
			for name, t := range ts.Params {
				if t == nil {
					return nil, fmt.Errorf("template %q: parameter %q has no type", ts.Name, name)
				}
				params[name] = t.toTypeInfo()
			}
		}
		cat.Templates = append(cat.Templates, &pattern.Template{
			Name:   ts.Name,
			Root:   root,
			Params: params,
		})
	}
	for _, ss := range spec.Substitutes {
		cat.Substitutes = append(cat.Substitutes, pattern.Substitute{
			Name: ss.Name,
			Sym:  ss.Symbol,
		})
	}
	return cat, nil
}

// LoadCatalog reads a template catalogue from a file.
func LoadCatalog(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	cat, err := DecodeCatalog(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cat, nil
}

func (s *nodeSpec) toNode() (*tree.Node, error) {
	kind := tree.KindFromName(s.Kind)
	if kind == tree.Invalid {
		return nil, fmt.Errorf("unknown node kind %q", s.Kind)
	}
	n := &tree.Node{
		Kind: kind,
		Text: s.Text,
		Sym:  s.Symbol,
	}
	if s.Type != nil {
		n.Type = s.Type.toTypeInfo()
	}
	for _, mod := range s.Modifiers {
		bit := tree.ModifierFromName(mod)
		if bit == 0 {
			return nil, fmt.Errorf("unknown modifier %q", mod)
		}
		n.Mods |= bit
	}
	for _, cs := range s.Children {
		child, err := cs.toNode()
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, child)
	}
	return n, nil
}

func (s *typeSpec) toTypeInfo() *tree.TypeInfo {
	if s == nil {
		return nil
	}
	t := &tree.TypeInfo{
		Qualified:    s.Name,
		Binary:       s.Binary,
		TypeVariable: s.TypeVar,
		Superclass:   s.Extends.toTypeInfo(),
	}
	for _, a := range s.Args {
		t.Args = append(t.Args, a.toTypeInfo())
	}
	for _, i := range s.Implements {
		t.Interfaces = append(t.Interfaces, i.toTypeInfo())
	}
	return t
}
