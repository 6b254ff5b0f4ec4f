package template

import (
	"github.com/oxhq/glsltransform/ast"
	"github.com/oxhq/glsltransform/parser"
)

// Match is the capture set produced by a successful Matcher.Match: a node
// captured at a class/ancestor wildcard position, or a string captured at
// an identifier wildcard position (spec.md §4.D).
type Match struct {
	nodes   map[string]ast.Node
	strings map[string]string
}

func newMatch() *Match {
	return &Match{nodes: make(map[string]ast.Node), strings: make(map[string]string)}
}

// GetNodeMatch returns the node captured under name, requiring it be of
// expectedKind if expectedKind is non-empty.
func (m *Match) GetNodeMatch(name string, expectedKind ast.Kind) (ast.Node, bool) {
	n, ok := m.nodes[name]
	if !ok {
		return nil, false
	}
	if expectedKind != "" && n.Kind() != expectedKind {
		return nil, false
	}
	return n, true
}

// GetStringDataMatch returns the identifier text captured under name.
func (m *Match) GetStringDataMatch(name string) (string, bool) {
	s, ok := m.strings[name]
	return s, ok
}

// Matcher tests whether a candidate subtree has the same shape as a
// placeholder-bearing pattern fragment, per spec.md §4.D matching rules
// 1-5. Construct with NewMatcher, register any class wildcards with
// MarkClassWildcard, then call Match per candidate.
type Matcher struct {
	pattern           ast.Node
	shape             ParseShape
	placeholderPrefix string
	wildcards         map[ast.Node]string
	matchesExtract    func(*Match) bool
}

// NewMatcher parses src as the given shape and returns a Matcher over it.
// An empty placeholderPrefix defaults to "__".
func NewMatcher(p *parser.Parser, root *ast.Root, src string, shape ParseShape, placeholderPrefix string) (*Matcher, error) {
	if placeholderPrefix == "" {
		placeholderPrefix = "__"
	}
	pattern, err := parseFragment(p, root, src, shape)
	if err != nil {
		return nil, err
	}
	return &Matcher{
		pattern:           pattern,
		shape:             shape,
		placeholderPrefix: placeholderPrefix,
		wildcards:         make(map[ast.Node]string),
	}, nil
}

// Pattern returns the parsed pattern root, for callers that need to locate
// a specific node to pass to MarkClassWildcard directly.
func (m *Matcher) Pattern() ast.Node { return m.pattern }

// FindPlaceholder locates the pattern node spelled with the given
// placeholder name (stripped of prefix and trailing "*"), or nil.
func (m *Matcher) FindPlaceholder(name string) ast.Node {
	return findPlaceholderNode(m.pattern, m.placeholderPrefix, name)
}

// MarkClassWildcard registers exemplar's position in the pattern as a
// kind-wildcard: during matching, any candidate node at that structural
// position is accepted regardless of internal contents and captured under
// name, as long as its Kind() equals exemplar's (spec.md §4.D rule 3).
func (m *Matcher) MarkClassWildcard(name string, exemplar ast.Node) {
	m.wildcards[exemplar] = name
}

// SetMatchesExtract installs a post-condition hook run after a successful
// shape match (e.g. "must carry an out qualifier and no layout
// qualifier"), per spec.md §4.D.
func (m *Matcher) SetMatchesExtract(fn func(*Match) bool) {
	m.matchesExtract = fn
}

// Match reports whether candidate has the same shape as the pattern,
// returning the capture set on success.
func (m *Matcher) Match(candidate ast.Node) (*Match, bool) {
	if !shapeAccepts(m.shape, candidate) {
		return nil, false
	}
	result := newMatch()
	if !m.matchNode(m.pattern, candidate, result) {
		return nil, false
	}
	if m.matchesExtract != nil && !m.matchesExtract(result) {
		return nil, false
	}
	return result, true
}

func (m *Matcher) matchNode(pattern, candidate ast.Node, result *Match) bool {
	if isNilNode(pattern) || isNilNode(candidate) {
		return isNilNode(pattern) && isNilNode(candidate)
	}

	if name, ok := m.wildcards[pattern]; ok {
		if pattern.Kind() != candidate.Kind() {
			return false
		}
		return captureNode(result, name, candidate)
	}

	// A bare identifier used in expression position always parses as a
	// ReferenceExpression wrapping it (parser.primary), so a placeholder
	// spelled there has its Ident one level below the pattern node actually
	// occupying that structural slot. Rule 2's "node in the candidate that
	// sits at the equivalent structural position" is the reference itself,
	// not its inner identifier field, so this is handled before the
	// ReferenceExpression case in matchFields ever recurses into Ident.
	if ref, ok := pattern.(*ast.ReferenceExpression); ok {
		if pn, isPlaceholder := placeholderName(ref.Ident, m.placeholderPrefix); isPlaceholder {
			if ancestor, key := isAncestorWildcard(pn); ancestor {
				return captureNode(result, key, candidate)
			}
			cref, ok := candidate.(*ast.ReferenceExpression)
			if !ok {
				return false
			}
			return captureString(result, pn, cref.Ident.Name())
		}
	}

	if pn, ok := placeholderName(pattern, m.placeholderPrefix); ok {
		if ancestor, key := isAncestorWildcard(pn); ancestor {
			return captureNode(result, key, candidate)
		}
		// An identifier placeholder captures the referenced name as text
		// (rule 4); a type-position placeholder (BuiltinTypeSpecifier) has
		// no meaningful "text" of its own, so it captures the whole
		// candidate node instead, accepting any type at that position.
		if _, isIdentPlaceholder := pattern.(*ast.Identifier); isIdentPlaceholder {
			id, ok := candidate.(*ast.Identifier)
			if !ok {
				return false
			}
			return captureString(result, pn, id.Name())
		}
		return captureNode(result, pn, candidate)
	}

	if pattern.Kind() != candidate.Kind() {
		return false
	}
	return m.matchFields(pattern, candidate, result)
}

// isAncestorWildcard reports whether a stripped placeholder name ends in
// "*" (spec.md §4.D rule 2, the "N*" ancestor-style wildcard that records
// whatever node sits at the equivalent position, regardless of kind),
// returning the name with that suffix removed too.
func isAncestorWildcard(name string) (bool, string) {
	if len(name) > 0 && name[len(name)-1] == '*' {
		return true, name[:len(name)-1]
	}
	return false, name
}

func captureNode(result *Match, name string, n ast.Node) bool {
	if existing, ok := result.nodes[name]; ok {
		return structuralEqual(existing, n)
	}
	result.nodes[name] = n
	return true
}

func captureString(result *Match, name, s string) bool {
	if existing, ok := result.strings[name]; ok {
		return existing == s
	}
	result.strings[name] = s
	return true
}

// structuralEqual reports whether two plain (placeholder-free) nodes are
// structurally identical, used to enforce spec.md §4.D rule 5: repeated
// occurrences of the same placeholder must capture equal values.
func structuralEqual(a, b ast.Node) bool {
	plain := &Matcher{placeholderPrefix: "\x00", wildcards: map[ast.Node]string{}}
	return plain.matchNode(a, b, newMatch())
}

// matchFields compares pattern and candidate's own data and recurses into
// their children via matchNode, mirroring each node's CloneInto shape
// one-for-one so nested placeholders at any depth are still captured.
func (m *Matcher) matchFields(pattern, candidate ast.Node, result *Match) bool {
	switch p := pattern.(type) {
	case *ast.Identifier:
		c := candidate.(*ast.Identifier)
		return p.Name() == c.Name()
	case *ast.LiteralExpression:
		c := candidate.(*ast.LiteralExpression)
		return p.LitKind == c.LitKind && p.Raw == c.Raw
	case *ast.BuiltinTypeSpecifier:
		c := candidate.(*ast.BuiltinTypeSpecifier)
		return p.Name == c.Name
	case *ast.ExtensionStatement:
		c := candidate.(*ast.ExtensionStatement)
		return p.Name == c.Name && p.Behavior == c.Behavior
	case *ast.Pragma:
		c := candidate.(*ast.Pragma)
		return p.Text == c.Text
	case *ast.VersionStatement:
		c := candidate.(*ast.VersionStatement)
		return p.Number == c.Number && p.Profile == c.Profile
	case *ast.EmptyDeclaration:
		_, ok := candidate.(*ast.EmptyDeclaration)
		return ok
	case *ast.EmptyDeclarationStmt:
		_, ok := candidate.(*ast.EmptyDeclarationStmt)
		return ok
	case *ast.EmptyStatement:
		_, ok := candidate.(*ast.EmptyStatement)
		return ok

	case *ast.LayoutQualifierPart:
		c := candidate.(*ast.LayoutQualifierPart)
		return p.ID == c.ID && m.matchNode(p.Value, c.Value, result)
	case *ast.LayoutQualifier:
		c := candidate.(*ast.LayoutQualifier)
		if len(p.Parts) != len(c.Parts) {
			return false
		}
		for i := range p.Parts {
			if !m.matchNode(p.Parts[i], c.Parts[i], result) {
				return false
			}
		}
		return true
	case *ast.TypeQualifier:
		c := candidate.(*ast.TypeQualifier)
		if len(p.Kinds) != len(c.Kinds) {
			return false
		}
		for i := range p.Kinds {
			if p.Kinds[i] != c.Kinds[i] {
				return false
			}
		}
		return m.matchNode(p.Layout, c.Layout, result)
	case *ast.FullySpecifiedType:
		c := candidate.(*ast.FullySpecifiedType)
		return m.matchNode(p.Qualifier, c.Qualifier, result) &&
			m.matchNode(p.Spec, c.Spec, result) &&
			m.matchNode(p.Array, c.Array, result)
	case *ast.ArraySpecifier:
		c := candidate.(*ast.ArraySpecifier)
		if len(p.Sizes) != len(c.Sizes) {
			return false
		}
		for i := range p.Sizes {
			if !m.matchNode(p.Sizes[i], c.Sizes[i], result) {
				return false
			}
		}
		return true
	case *ast.StructSpecifier:
		c := candidate.(*ast.StructSpecifier)
		if !m.matchNode(p.Name, c.Name, result) {
			return false
		}
		if len(p.Members) != len(c.Members) {
			return false
		}
		for i := range p.Members {
			if !m.matchNode(p.Members[i], c.Members[i], result) {
				return false
			}
		}
		return true

	case *ast.DeclarationMember:
		c := candidate.(*ast.DeclarationMember)
		return m.matchNode(p.Name, c.Name, result) &&
			m.matchNode(p.Array, c.Array, result) &&
			m.matchNode(p.Init, c.Init, result)
	case *ast.TypeAndInitDeclaration:
		c := candidate.(*ast.TypeAndInitDeclaration)
		if !m.matchNode(p.Type, c.Type, result) {
			return false
		}
		if len(p.Members) != len(c.Members) {
			return false
		}
		for i := range p.Members {
			if !m.matchNode(p.Members[i], c.Members[i], result) {
				return false
			}
		}
		return true
	case *ast.InterfaceBlock:
		c := candidate.(*ast.InterfaceBlock)
		if !m.matchNode(p.Layout, c.Layout, result) ||
			!m.matchNode(p.Qualifier, c.Qualifier, result) ||
			!m.matchNode(p.BlockName, c.BlockName, result) {
			return false
		}
		if len(p.Members) != len(c.Members) {
			return false
		}
		for i := range p.Members {
			if !m.matchNode(p.Members[i], c.Members[i], result) {
				return false
			}
		}
		return m.matchNode(p.InstanceName, c.InstanceName, result) &&
			m.matchNode(p.InstanceArray, c.InstanceArray, result)
	case *ast.FunctionDeclaration:
		c := candidate.(*ast.FunctionDeclaration)
		if !m.matchNode(p.ReturnType, c.ReturnType, result) || !m.matchNode(p.Name, c.Name, result) {
			return false
		}
		if len(p.Params) != len(c.Params) {
			return false
		}
		for i := range p.Params {
			if !m.matchNode(p.Params[i], c.Params[i], result) {
				return false
			}
		}
		return true
	case *ast.PrecisionDeclaration:
		c := candidate.(*ast.PrecisionDeclaration)
		return p.Precision == c.Precision && m.matchNode(p.Type, c.Type, result)

	case *ast.ExternalDeclaration:
		c := candidate.(*ast.ExternalDeclaration)
		return m.matchNode(p.Decl, c.Decl, result)
	case *ast.FunctionDefinition:
		c := candidate.(*ast.FunctionDefinition)
		return m.matchNode(p.Proto, c.Proto, result) && m.matchNode(p.Body, c.Body, result)
	case *ast.LayoutDefaults:
		c := candidate.(*ast.LayoutDefaults)
		return m.matchNode(p.Qualifier, c.Qualifier, result)

	case *ast.CompoundStatement:
		c := candidate.(*ast.CompoundStatement)
		if len(p.Statements) != len(c.Statements) {
			return false
		}
		for i := range p.Statements {
			if !m.matchNode(p.Statements[i], c.Statements[i], result) {
				return false
			}
		}
		return true
	case *ast.ExpressionStatement:
		c := candidate.(*ast.ExpressionStatement)
		return m.matchNode(p.Expr, c.Expr, result)
	case *ast.DeclarationStatement:
		c := candidate.(*ast.DeclarationStatement)
		return m.matchNode(p.Decl, c.Decl, result)
	case *ast.SelectionStatement:
		c := candidate.(*ast.SelectionStatement)
		return m.matchNode(p.Cond, c.Cond, result) &&
			m.matchNode(p.Then, c.Then, result) &&
			m.matchNode(p.Otherwise, c.Otherwise, result)
	case *ast.SwitchStatement:
		c := candidate.(*ast.SwitchStatement)
		return m.matchNode(p.Cond, c.Cond, result) && m.matchNode(p.Body, c.Body, result)
	case *ast.ForStatement:
		c := candidate.(*ast.ForStatement)
		return m.matchNode(p.Init, c.Init, result) &&
			m.matchNode(p.Cond, c.Cond, result) &&
			m.matchNode(p.Step, c.Step, result) &&
			m.matchNode(p.Body, c.Body, result)
	case *ast.WhileStatement:
		c := candidate.(*ast.WhileStatement)
		return m.matchNode(p.Cond, c.Cond, result) && m.matchNode(p.Body, c.Body, result)
	case *ast.DoWhileStatement:
		c := candidate.(*ast.DoWhileStatement)
		return m.matchNode(p.Body, c.Body, result) && m.matchNode(p.Cond, c.Cond, result)
	case *ast.JumpStatement:
		c := candidate.(*ast.JumpStatement)
		return p.Which == c.Which && m.matchNode(p.Value, c.Value, result)
	case *ast.CaseLabel:
		c := candidate.(*ast.CaseLabel)
		return m.matchNode(p.Expr, c.Expr, result)

	case *ast.ReferenceExpression:
		c := candidate.(*ast.ReferenceExpression)
		return m.matchNode(p.Ident, c.Ident, result)
	case *ast.GroupingExpression:
		c := candidate.(*ast.GroupingExpression)
		return m.matchNode(p.Inner, c.Inner, result)
	case *ast.MemberAccessExpression:
		c := candidate.(*ast.MemberAccessExpression)
		return m.matchNode(p.Operand, c.Operand, result) && m.matchNode(p.Member, c.Member, result)
	case *ast.ArrayAccessExpression:
		c := candidate.(*ast.ArrayAccessExpression)
		return m.matchNode(p.Operand, c.Operand, result) && m.matchNode(p.Index, c.Index, result)
	case *ast.FunctionCallExpression:
		c := candidate.(*ast.FunctionCallExpression)
		if !m.matchNode(p.Name, c.Name, result) {
			return false
		}
		if len(p.Args) != len(c.Args) {
			return false
		}
		for i := range p.Args {
			if !m.matchNode(p.Args[i], c.Args[i], result) {
				return false
			}
		}
		return true
	case *ast.MethodCallExpression:
		c := candidate.(*ast.MethodCallExpression)
		if !m.matchNode(p.Operand, c.Operand, result) || !m.matchNode(p.Method, c.Method, result) {
			return false
		}
		if len(p.Args) != len(c.Args) {
			return false
		}
		for i := range p.Args {
			if !m.matchNode(p.Args[i], c.Args[i], result) {
				return false
			}
		}
		return true
	case *ast.PostfixExpression:
		c := candidate.(*ast.PostfixExpression)
		return p.Op == c.Op && m.matchNode(p.Operand, c.Operand, result)
	case *ast.PrefixExpression:
		c := candidate.(*ast.PrefixExpression)
		return p.Op == c.Op && m.matchNode(p.Operand, c.Operand, result)
	case *ast.UnaryExpression:
		c := candidate.(*ast.UnaryExpression)
		return p.Op == c.Op && m.matchNode(p.Operand, c.Operand, result)
	case *ast.BinaryExpression:
		c := candidate.(*ast.BinaryExpression)
		return p.Op == c.Op && m.matchNode(p.Left, c.Left, result) && m.matchNode(p.Right, c.Right, result)
	case *ast.ConditionalExpression:
		c := candidate.(*ast.ConditionalExpression)
		return m.matchNode(p.Cond, c.Cond, result) &&
			m.matchNode(p.Then, c.Then, result) &&
			m.matchNode(p.Otherwise, c.Otherwise, result)
	case *ast.SequenceExpression:
		c := candidate.(*ast.SequenceExpression)
		if len(p.Items) != len(c.Items) {
			return false
		}
		for i := range p.Items {
			if !m.matchNode(p.Items[i], c.Items[i], result) {
				return false
			}
		}
		return true

	default:
		return false
	}
}
