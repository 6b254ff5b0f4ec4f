package transform

import (
	"strings"

	"github.com/oxhq/glsltransform/ast"
)

// segKind distinguishes a direct-child step from a "//"-style
// any-depth-descendant step in a compiled Path.
type segKind int

const (
	segChild segKind = iota
	segDescendant
)

type pathSegment struct {
	kind segKind
	node ast.Kind
}

// Path is a compiled xpath-like query over Children(), built by
// CompilePath. "A/B" selects B nodes that are direct children of an A
// node reachable from the query root; "A//B" selects B nodes anywhere
// below an A node. A leading "//" segment starts from any node of that
// kind found anywhere under the query root.
type Path struct {
	segments []pathSegment
}

// CompilePath parses a "/"-and-"//"-separated sequence of Kind names into
// a Path. Empty segments (from "//") widen the following step into a
// descendant search instead of a child search.
func CompilePath(expr string) *Path {
	parts := strings.Split(expr, "/")
	p := &Path{}
	pendingDescendant := false
	for _, part := range parts {
		if part == "" {
			pendingDescendant = true
			continue
		}
		kind := segChild
		if pendingDescendant {
			kind = segDescendant
		}
		p.segments = append(p.segments, pathSegment{kind: kind, node: ast.Kind(part)})
		pendingDescendant = false
	}
	return p
}

// Eval runs the compiled path starting from start, returning every node
// it selects in tree order.
func (p *Path) Eval(start ast.Node) []ast.Node {
	current := []ast.Node{start}
	for _, seg := range p.segments {
		var next []ast.Node
		for _, n := range current {
			switch seg.kind {
			case segChild:
				for _, c := range n.Children() {
					if c != nil && c.Kind() == seg.node {
						next = append(next, c)
					}
				}
			case segDescendant:
				walkDescendants(n, func(c ast.Node) {
					if c.Kind() == seg.node {
						next = append(next, c)
					}
				})
			}
		}
		current = next
	}
	return current
}

func walkDescendants(n ast.Node, visit func(ast.Node)) {
	for _, c := range n.Children() {
		if c == nil {
			continue
		}
		visit(c)
		walkDescendants(c, visit)
	}
}
