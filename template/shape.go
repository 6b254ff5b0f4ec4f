// Package template implements Matcher and Template (spec.md §4.D): GLSL
// fragments parsed with placeholders, used to test whether a candidate
// subtree has the same shape as a pattern and to clone a replacement tree
// with its holes filled in. Grounded on termfx-morfx's internal/matcher
// package for the Result/Matcher split, generalized here from a byte-span
// finder to a typed AST structural matcher since this engine's "candidate"
// is always an already-parsed node, never raw source.
package template

import (
	"fmt"

	"github.com/oxhq/glsltransform/ast"
	"github.com/oxhq/glsltransform/parser"
)

// ParseShape selects which grammar entrypoint a Matcher/Template pattern is
// parsed with, per spec.md §6.3's parseNodeSeparate(rootSupplier,
// parseShape, src).
type ParseShape int

const (
	ShapeExternalDeclaration ParseShape = iota
	ShapeStatement
	ShapeExpression
)

func (s ParseShape) String() string {
	switch s {
	case ShapeExternalDeclaration:
		return "externalDeclaration"
	case ShapeStatement:
		return "statement"
	case ShapeExpression:
		return "expression"
	default:
		return "unknown"
	}
}

func parseFragment(p *parser.Parser, root *ast.Root, src string, shape ParseShape) (ast.Node, error) {
	switch shape {
	case ShapeExternalDeclaration:
		return p.ParseExternalDeclaration(root, src)
	case ShapeStatement:
		return p.ParseStatement(root, src)
	case ShapeExpression:
		return p.ParseExpression(root, src)
	default:
		return nil, fmt.Errorf("template: unknown parse shape %d", shape)
	}
}

// shapeAccepts reports whether candidate belongs to the node family a
// pattern of the given shape is allowed to be tested against
// (ShapeMismatch, spec.md §7).
func shapeAccepts(shape ParseShape, candidate ast.Node) bool {
	switch shape {
	case ShapeExternalDeclaration:
		_, ok := candidate.(ast.ExternalDecl)
		return ok
	case ShapeStatement:
		_, ok := candidate.(ast.Statement)
		return ok
	case ShapeExpression:
		_, ok := candidate.(ast.Expression)
		return ok
	default:
		return false
	}
}
