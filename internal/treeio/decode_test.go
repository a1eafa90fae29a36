package treeio

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/treepat/treepat/internal/pattern"
	"github.com/treepat/treepat/internal/tree"
)

const catalogDoc = `
templates:
  - name: wrap-value
    params:
      x:
        name: java.util.List<T>
        binary: java.util.List
        args:
          - name: T
            typevar: true
    pattern:
      kind: call
      text: wrap
      children:
        - kind: identifier
          text: wrap
        - kind: identifier
          text: x
        - kind: call
          text: value
          symbol: "com.x.Templates#value()"
          type:
            name: T
            typevar: true
          children:
            - kind: identifier
              text: value
substitutes:
  - name: value
    symbol: "com.x.Templates#value()"
`

const candidateDoc = `
kind: call
text: wrap
children:
  - kind: identifier
    text: wrap
  - kind: identifier
    text: names
    type:
      name: java.util.List<java.lang.String>
      binary: java.util.List
      args:
        - name: java.lang.String
  - kind: call
    text: supply
    symbol: "com.y.Factory#supply()"
    type:
      name: java.lang.String
    children:
      - kind: identifier
        text: supply
`

func TestDecodeCatalog(t *testing.T) {
	t.Parallel()
	cat, err := DecodeCatalog(strings.NewReader(catalogDoc))
	require.NoError(t, err)

	require.Len(t, cat.Templates, 1)
	tpl := cat.Templates[0]
	assert.Equal(t, "wrap-value", tpl.Name)
	assert.Equal(t, tree.Call, tpl.Root.Kind)
	require.Contains(t, tpl.Params, "x")
	assert.Equal(t, "java.util.List", tpl.Params["x"].Binary)
	require.Len(t, tpl.Params["x"].Args, 1)
	assert.True(t, tpl.Params["x"].Args[0].TypeVariable)

	require.Len(t, cat.Substitutes, 1)
	assert.Equal(t, "value", cat.Substitutes[0].Name)
	assert.Equal(t, "com.x.Templates#value()", cat.Substitutes[0].Sym)
}

func TestDecodeTree(t *testing.T) {
	t.Parallel()
	node, err := DecodeTree(strings.NewReader(candidateDoc))
	require.NoError(t, err)

	assert.Equal(t, tree.Call, node.Kind)
	require.Len(t, node.Children, 3)
	assert.Equal(t, "com.y.Factory#supply()", node.Children[2].Sym)
	require.NotNil(t, node.Children[1].Type)
	assert.Equal(t, "java.util.List", node.Children[1].Type.Binary)
}

func TestDecodedCatalogMatchesDecodedTree(t *testing.T) {
	t.Parallel()
	cat, err := DecodeCatalog(strings.NewReader(catalogDoc))
	require.NoError(t, err)
	reg, err := pattern.NewRegistry(cat.Templates, cat.Substitutes)
	require.NoError(t, err)

	candidate, err := DecodeTree(strings.NewReader(candidateDoc))
	require.NoError(t, err)

	matches := reg.FindMatches(candidate)
	require.Len(t, matches, 1)
	m := matches[0]
	assert.Equal(t, "wrap-value", m.Template)
	assert.Equal(t, "names", m.Params["x"].Text)
	assert.Equal(t, "supply", m.Substitutions["value"].Text)
	assert.Equal(t, "String", m.TypeVars["T"])
}

func TestDecodeTreeErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{"unknown kind", "kind: no-such-kind", "unknown node kind"},
		{"unknown modifier", "kind: type-decl\nmodifiers: [protected]", "unknown modifier"},
		{"malformed document", "kind: [a", "decoding tree"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := DecodeTree(strings.NewReader(tt.doc))
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestDecodeCatalogErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{"missing name", "templates:\n  - pattern: {kind: block}", "template without a name"},
		{"missing pattern", "templates:\n  - name: t", "has no pattern"},
		{"untyped parameter", "templates:\n  - name: t\n    params: {x: null}\n    pattern: {kind: block}", "has no type"},
		{"bad pattern kind", "templates:\n  - name: t\n    pattern: {kind: bogus}", "unknown node kind"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := DecodeCatalog(strings.NewReader(tt.doc))
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestLoadTreeMissingFile(t *testing.T) {
	t.Parallel()
	_, err := LoadTree("does/not/exist.yaml")
	assert.Error(t, err)
}
