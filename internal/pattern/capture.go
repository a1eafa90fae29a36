package pattern

import "github.com/treepat/treepat/internal/tree"

// captures is the per-attempt capture store: three independent mappings
// accumulated while one template is unified against one candidate. A store
// is created fresh for every attempt and never escapes it; on success its
// finished maps are handed to the Match result.
type captures struct {
	params        map[string]*tree.Node
	substitutions map[string]*tree.Node
	typeVars      map[string]string
}

func newCaptures() *captures {
	return &captures{
		params:        make(map[string]*tree.Node),
		substitutions: make(map[string]*tree.Node),
		typeVars:      make(map[string]string),
	}
}

// bindParam records a pattern-parameter capture. A repeated capture of the
// same name must be identical to the first under plain tree equality, or
// the whole attempt fails.
func (c *captures) bindParam(name string, node *tree.Node) bool {
	if prev, ok := c.params[name]; ok && !tree.Equal(prev, node) {
		return false
	}
	c.params[name] = node
	return true
}

// bindSubstitution records a substitution-call capture under the called
// method's simple name, with the same identical-subtree invariant.
func (c *captures) bindSubstitution(name string, node *tree.Node) bool {
	if prev, ok := c.substitutions[name]; ok && !tree.Equal(prev, node) {
		return false
	}
	c.substitutions[name] = node
	return true
}

// bindTypeVar unifies a type variable with a concrete type name: binds on
// first sight, requires agreement thereafter.
func (c *captures) bindTypeVar(name, typeName string) bool {
	if prev, ok := c.typeVars[name]; ok {
		return prev == typeName
	}
	c.typeVars[name] = typeName
	return true
}
