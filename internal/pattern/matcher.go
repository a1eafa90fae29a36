package pattern

import "github.com/treepat/treepat/internal/tree"

// maxMatchDepth bounds the recursion of one match attempt. Matching is a
// tree walk bounded by the candidate's depth, so this only triggers on
// pathological input; exceeding it is reported as a plain non-match.
const maxMatchDepth = 10000

// Matcher unifies one template against one candidate node. It owns a
// private capture store, so an instance is used for exactly one attempt
// and never reused: a second attempt needs a fresh Matcher so captures
// cannot leak between attempts.
//
// All failure modes inside an attempt surface as a false return, including
// candidate nodes missing a resolved type or symbol where a relaxation
// needs one. Partially-resolved candidate trees are expected input.
type Matcher struct {
	tpl   *Template
	subs  SubstituteSet
	caps  *captures
	root  *tree.Node
	depth int
}

// NewMatcher creates a matcher for one (template, candidate) attempt.
func NewMatcher(tpl *Template, subs SubstituteSet) *Matcher {
	return &Matcher{tpl: tpl, subs: subs, caps: newCaptures()}
}

// Match reports whether the template tree rooted at pattern matches
// candidate, populating the capture store along the way. A mismatch
// abandons the attempt; captures already written by earlier siblings are
// retained in the store but the caller discards the whole matcher.
func (m *Matcher) Match(pattern, candidate *tree.Node) bool {
	m.root = candidate
	return m.match(pattern, candidate)
}

// Result assembles the finished capture mappings into a Match. Only
// meaningful after Match returned true.
func (m *Matcher) Result() Match {
	return Match{
		Template:      m.tpl.Name,
		Root:          m.root,
		Params:        m.caps.params,
		Substitutions: m.caps.substitutions,
		TypeVars:      m.caps.typeVars,
	}
}

func (m *Matcher) match(p, c *tree.Node) bool {
	if p == nil || c == nil {
		return p == nil && c == nil
	}
	if m.depth >= maxMatchDepth {
		return false
	}
	m.depth++
	ok := m.dispatch(p, c)
	m.depth--
	return ok
}

// dispatch applies the kind-specific relaxation for the template node's
// kind, falling through to the default structural rule for every kind
// without one.
func (m *Matcher) dispatch(p, c *tree.Node) bool {
	switch p.Kind {
	case tree.Identifier:
		return m.matchIdentifier(p, c)
	case tree.Call:
		return m.matchCall(p, c)
	case tree.QualifiedIdentifier:
		return m.matchQualified(p, c)
	case tree.TypeRef:
		return m.matchTypeRef(p, c)
	default:
		return m.matchDefault(p, c)
	}
}

// matchIdentifier handles a template identifier.
//
// If its text names a declared pattern parameter, the candidate is accepted
// when its resolved type is sub-type-compatible with the declared type,
// exactly equal to it (both compared via generic declaration forms), or the
// declared type is itself a type variable. A parameterized declared type
// additionally unifies each type argument against the candidate's,
// position by position. On acceptance the candidate subtree is captured
// under the parameter name, subject to the identical-subtree invariant.
//
// A template identifier that is not a parameter matches any candidate:
// the names given to variables in a template don't matter.
func (m *Matcher) matchIdentifier(p, c *tree.Node) bool {
	declared, isParam := m.tpl.Params[p.Text]
	if !isParam {
		return true
	}
	if declared == nil || c.Type == nil {
		// Not an expression the resolver could type.
		return false
	}
	if !c.Type.SubTypeCompatible(declared) &&
		!declared.Declaration().Equal(c.Type.Declaration()) &&
		!declared.TypeVariable {
		return false
	}
	if declared.Parameterized() {
		for i, arg := range declared.Args {
			if i >= len(c.Type.Args) {
				return false
			}
			if !m.caps.bindTypeVar(arg.Name(), c.Type.Args[i].Name()) {
				return false
			}
		}
	}
	return m.caps.bindParam(p.Text, c)
}

// matchCall handles a template call.
//
// A call whose resolved symbol is a declared substitution-call accepts any
// candidate call whose return type is compatible and whose arguments match
// pairwise under this same comparator; the full candidate call is captured
// under the method's simple name. Any other template call is ordinary code
// and takes the default structural rule, so parameters and substitution
// calls nested inside it are still honored.
func (m *Matcher) matchCall(p, c *tree.Node) bool {
	if !m.subs.Contains(p.Sym) {
		return m.matchDefault(p, c)
	}
	if c.Kind != tree.Call {
		return false
	}
	if !m.returnTypeMatches(p, c) {
		return false
	}
	_, pArgs := p.CalleeAndArgs()
	_, cArgs := c.CalleeAndArgs()
	if !m.matchList(pArgs, cArgs) {
		return false
	}
	return m.caps.bindSubstitution(p.Text, c)
}

// returnTypeMatches compares a substitution call's return type with the
// candidate call's. A type-variable return type unifies through the
// capture store: it must agree with an existing binding, or binds on first
// sight. A concrete return type requires exact type equality.
func (m *Matcher) returnTypeMatches(p, c *tree.Node) bool {
	if p.Type == nil || c.Type == nil {
		return false
	}
	if p.Type.TypeVariable {
		return m.caps.bindTypeVar(p.Type.Name(), c.Type.Name())
	}
	return p.Type.Equal(c.Type)
}

// matchQualified handles a template qualified identifier. A plain
// candidate identifier is accepted when both resolve to the same symbol,
// which tolerates the static-import-style simplification of a fully
// qualified reference. Otherwise the candidate must itself be qualified
// and both parts must match recursively.
func (m *Matcher) matchQualified(p, c *tree.Node) bool {
	if c.Kind == tree.Identifier {
		return p.Sym != "" && c.Sym != "" && p.Sym == c.Sym
	}
	if c.Kind != tree.QualifiedIdentifier {
		return false
	}
	return m.matchList(p.Children, c.Children)
}

// matchTypeRef handles a template type reference. One denoting a type
// variable unifies against the candidate's resolved type name through the
// capture store; anything else is compared structurally.
func (m *Matcher) matchTypeRef(p, c *tree.Node) bool {
	if p.Type != nil && p.Type.TypeVariable {
		if c.Kind != tree.TypeRef || c.Type == nil {
			return false
		}
		return m.caps.bindTypeVar(p.Type.Name(), c.Type.Name())
	}
	return m.matchDefault(p, c)
}

// matchDefault is the structural rule: kinds equal, children match
// pairwise in order, same arity. Text is compared too, except on calls:
// a call's Text is its method simple name, and whether two calls invoke
// the same thing is decided by the callee child, which the identifier
// rules deliberately leave relaxed.
func (m *Matcher) matchDefault(p, c *tree.Node) bool {
	if p.Kind != c.Kind || len(p.Children) != len(c.Children) {
		return false
	}
	if p.Kind != tree.Call && p.Text != c.Text {
		return false
	}
	return m.matchList(p.Children, c.Children)
}

func (m *Matcher) matchList(ps, cs []*tree.Node) bool {
	if len(ps) != len(cs) {
		return false
	}
	for i := range ps {
		if !m.match(ps[i], cs[i]) {
			return false
		}
	}
	return true
}
