package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generic(binary string, args ...*TypeInfo) *TypeInfo {
	q := binary
	if len(args) > 0 {
		q += "<"
		for i, a := range args {
			if i > 0 {
				q += ","
			}
			q += a.Qualified
		}
		q += ">"
	}
	return &TypeInfo{Qualified: q, Binary: binary, Args: args}
}

func TestTypeInfoName(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		typ  *TypeInfo
		want string
	}{
		{"plain", &TypeInfo{Qualified: "java.lang.String"}, "String"},
		{"unqualified", &TypeInfo{Qualified: "String"}, "String"},
		{"parameterized", generic("java.util.List", &TypeInfo{Qualified: "java.lang.String"}), "List"},
		{"type variable", &TypeInfo{Qualified: "T", TypeVariable: true}, "T"},
		{"nil", nil, ""},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.typ.Name())
		})
	}
}

func TestDeclaration(t *testing.T) {
	t.Parallel()
	str := &TypeInfo{Qualified: "java.lang.String", Binary: "java.lang.String"}
	list := generic("java.util.List", str)

	decl := list.Declaration()
	require.NotNil(t, decl)
	assert.Empty(t, decl.Args)
	assert.Equal(t, "java.util.List", decl.Qualified)
	// the original is untouched
	assert.Len(t, list.Args, 1)

	// identity for non-parameterized types
	assert.Same(t, str, str.Declaration())
}

func TestTypeInfoEqual(t *testing.T) {
	t.Parallel()
	str := &TypeInfo{Qualified: "java.lang.String", Binary: "java.lang.String"}
	integer := &TypeInfo{Qualified: "java.lang.Integer", Binary: "java.lang.Integer"}

	tests := []struct {
		name string
		a, b *TypeInfo
		want bool
	}{
		{"same plain type", str, &TypeInfo{Qualified: "java.lang.String", Binary: "java.lang.String"}, true},
		{"different types", str, integer, false},
		{"same parameterized", generic("java.util.List", str), generic("java.util.List", str), true},
		{"different arguments", generic("java.util.List", str), generic("java.util.List", integer), false},
		{"raw vs parameterized", generic("java.util.List"), generic("java.util.List", str), false},
		{"type variable flag", &TypeInfo{Qualified: "T", TypeVariable: true}, &TypeInfo{Qualified: "T"}, false},
		{"nil other", str, nil, false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.a.Equal(tt.b))
		})
	}
}

func TestSubTypeCompatible(t *testing.T) {
	t.Parallel()
	str := &TypeInfo{Qualified: "java.lang.String", Binary: "java.lang.String"}

	collection := generic("java.util.Collection", str)
	list := generic("java.util.List", str)
	list.Interfaces = []*TypeInfo{collection}
	abstractList := generic("java.util.AbstractList", str)
	abstractList.Interfaces = []*TypeInfo{list}
	arrayList := generic("java.util.ArrayList", str)
	arrayList.Superclass = abstractList
	arrayList.Interfaces = []*TypeInfo{list}

	assert.True(t, arrayList.SubTypeCompatible(list), "direct interface")
	assert.True(t, arrayList.SubTypeCompatible(collection), "interface of interface")
	assert.True(t, abstractList.SubTypeCompatible(collection), "via declared interface chain")
	assert.True(t, list.SubTypeCompatible(list), "type is compatible with itself")
	assert.False(t, list.SubTypeCompatible(arrayList), "not the other way around")
	assert.False(t, str.SubTypeCompatible(list))
	assert.False(t, list.SubTypeCompatible(nil))
	assert.False(t, (*TypeInfo)(nil).SubTypeCompatible(list))
}

func TestSubTypeCompatibleCyclicHierarchy(t *testing.T) {
	t.Parallel()
	// malformed input from a partially-resolved tree: a cycles to itself
	a := &TypeInfo{Qualified: "com.x.A", Binary: "com.x.A"}
	b := &TypeInfo{Qualified: "com.x.B", Binary: "com.x.B"}
	a.Superclass = b
	b.Superclass = a

	assert.False(t, a.SubTypeCompatible(&TypeInfo{Qualified: "com.x.C", Binary: "com.x.C"}))
	assert.True(t, a.SubTypeCompatible(b))
}
