package treeio

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/treepat/treepat/internal/typematch"
)

type querySpec struct {
	Kind        string           `yaml:"kind,omitempty"` // "interface" or "class"
	Name        string           `yaml:"name,omitempty"`
	NameLike    string           `yaml:"nameLike,omitempty"`
	Extends     string           `yaml:"extends,omitempty"`
	Implements  []string         `yaml:"implements,omitempty"`
	Annotations []annotationSpec `yaml:"annotations,omitempty"`
	Visibility  string           `yaml:"visibility,omitempty"` // "public", "package" or "private"
	Static      bool             `yaml:"static,omitempty"`
	Abstract    bool             `yaml:"abstract,omitempty"`
	Final       bool             `yaml:"final,omitempty"`
}

type annotationSpec struct {
	Name     string `yaml:"name,omitempty"`
	NameLike string `yaml:"nameLike,omitempty"`
}

// DecodeQuery reads a declarative attribute-matcher specification and
// builds the predicate. Name predicates are code, not data, so they are
// only available through the typematch builder API directly.
func DecodeQuery(r io.Reader) (typematch.Matcher, error) {
	var spec querySpec
	if err := yaml.NewDecoder(r).Decode(&spec); err != nil {
		return nil, fmt.Errorf("decoding query: %w", err)
	}

	b := typematch.Type()
	switch spec.Kind {
	case "interface":
		b = b.AsInterface()
	case "class":
		b = b.AsClass()
	case "":
	default:
		return nil, fmt.Errorf("unknown query kind %q", spec.Kind)
	}
	if spec.Name != "" {
		b = b.WithName(spec.Name)
	}
	if spec.NameLike != "" {
		b = b.WithNameLike(spec.NameLike)
	}
	if spec.Extends != "" {
		b = b.Extending(spec.Extends)
	}
	if len(spec.Implements) > 0 {
		b = b.Implementing(spec.Implements...)
	}
	for _, a := range spec.Annotations {
		ab := typematch.Annotation()
		if a.Name != "" {
			ab = ab.WithName(a.Name)
		}
		if a.NameLike != "" {
			ab = ab.WithNameLike(a.NameLike)
		}
		b = b.WithAnnotation(ab.Build())
	}
	switch spec.Visibility {
	case "public":
		b = b.WithPublicVisibility()
	case "package":
		b = b.WithPackageVisibility()
	case "private":
		b = b.WithPrivateVisibility()
	case "":
	default:
		return nil, fmt.Errorf("unknown visibility %q", spec.Visibility)
	}
	if spec.Static {
		b = b.Static()
	}
	if spec.Abstract {
		b = b.Abstract()
	}
	if spec.Final {
		b = b.Final()
	}
	return b.Build(), nil
}

// LoadQuery reads an attribute-matcher specification from a file.
func LoadQuery(path string) (typematch.Matcher, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	m, err := DecodeQuery(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}
