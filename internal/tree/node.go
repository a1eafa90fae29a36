package tree

import "strings"

// Kind identifies the syntactic category of a Node.
//
// The set is closed: the matcher dispatches on it exhaustively, and every
// kind it has no special rule for falls through to the default structural
// comparison.
type Kind int

const (
	Invalid Kind = iota
	Identifier
	QualifiedIdentifier
	Call
	TypeRef
	Param
	TypeDecl
	Annotation
	Literal
	Binary
	Assign
	Return
	Block
	FieldAccess
	ExprStmt
)

var kindNames = map[Kind]string{
	Identifier:          "identifier",
	QualifiedIdentifier: "qualified-identifier",
	Call:                "call",
	TypeRef:             "type-ref",
	Param:               "param",
	TypeDecl:            "type-decl",
	Annotation:          "annotation",
	Literal:             "literal",
	Binary:              "binary",
	Assign:              "assign",
	Return:              "return",
	Block:               "block",
	FieldAccess:         "field-access",
	ExprStmt:            "expr-stmt",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "invalid"
}

// KindFromName maps a serialized kind name back to its Kind.
// Returns Invalid for unknown names.
func KindFromName(name string) Kind {
	for k, n := range kindNames {
		if n == name {
			return k
		}
	}
	return Invalid
}

// Modifiers is the modifier bitmask carried by declaration nodes.
type Modifiers uint16

const (
	ModPublic Modifiers = 1 << iota
	ModPrivate
	ModStatic
	ModAbstract
	ModFinal
	ModInterface
)

var modifierNames = map[string]Modifiers{
	"public":    ModPublic,
	"private":   ModPrivate,
	"static":    ModStatic,
	"abstract":  ModAbstract,
	"final":     ModFinal,
	"interface": ModInterface,
}

// ModifierFromName maps a serialized modifier name to its bit.
// Returns 0 for unknown names.
func ModifierFromName(name string) Modifiers {
	return modifierNames[name]
}

func (m Modifiers) Has(bit Modifiers) bool { return m&bit != 0 }

// Node is one element of a resolved source tree. Nodes are produced by an
// external parser/resolver and are never mutated by this engine; a node
// belongs to exactly one tree.
//
// Layout conventions the matcher relies on:
//   - Call: Text is the called method's simple name, Children[0] is the
//     callee expression, Children[1:] are the arguments.
//   - QualifiedIdentifier: Children are [qualifier, name].
//   - TypeRef: Children are [name node], Type is the resolved type.
//   - Param: Text is the formal name, Type is the declared type.
type Node struct {
	Kind     Kind
	Text     string
	Children []*Node

	// Type is the resolved type of the node where one applies (expression
	// result type, call return type, declared type). Nil when the resolver
	// could not produce one; the matcher treats that as a local non-match
	// wherever a rule needs it.
	Type *TypeInfo

	// Sym is the stable resolved-symbol key supplied by the resolver.
	// Empty means unresolved. Symbol identity is compared by string
	// equality, never by display text.
	Sym string

	// Mods carries declaration modifiers; zero elsewhere.
	Mods Modifiers
}

// New builds a node. Resolution fields are set directly on the result.
func New(kind Kind, text string, children ...*Node) *Node {
	return &Node{Kind: kind, Text: text, Children: children}
}

// CalleeAndArgs splits a Call node into its callee and argument list.
// The argument slice may be empty; a malformed call with no children
// yields a nil callee.
func (n *Node) CalleeAndArgs() (*Node, []*Node) {
	if len(n.Children) == 0 {
		return nil, nil
	}
	return n.Children[0], n.Children[1:]
}

// Equal reports plain structural tree equality: kind, text, and children
// pairwise, with none of the matcher's relaxations. This is the
// identical-subtree relation used by the capture consistency checks.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind || a.Text != b.Text || len(a.Children) != len(b.Children) {
		return false
	}
	for i := range a.Children {
		if !Equal(a.Children[i], b.Children[i]) {
			return false
		}
	}
	return true
}

// String renders the subtree as a compact s-expression, for logs and
// match-result output.
func (n *Node) String() string {
	var b strings.Builder
	n.write(&b)
	return b.String()
}

func (n *Node) write(b *strings.Builder) {
	if n == nil {
		b.WriteString("nil")
		return
	}
	if len(n.Children) == 0 {
		if n.Text != "" {
			b.WriteString(n.Text)
			return
		}
		b.WriteString("(" + n.Kind.String() + ")")
		return
	}
	b.WriteString("(")
	b.WriteString(n.Kind.String())
	if n.Text != "" {
		b.WriteString(" " + n.Text)
	}
	for _, c := range n.Children {
		b.WriteString(" ")
		c.write(b)
	}
	b.WriteString(")")
}
