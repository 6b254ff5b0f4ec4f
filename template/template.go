package template

import (
	"fmt"

	"github.com/oxhq/glsltransform/ast"
	"github.com/oxhq/glsltransform/parser"
)

// holeKind distinguishes the two ways Template.Instantiate fills a hole:
// splicing in a whole node, or renaming an identifier's text in place.
type holeKind int

const (
	holeNode holeKind = iota
	holeIdentifier
)

type holeSpec struct {
	kind holeKind
	node ast.Node // the placeholder node within the template's own pattern
}

// Template holds a parsed, placeholder-bearing fragment and a set of holes
// registered against it. Instantiate clones the fragment with every
// registered hole filled in, atomically: either every hole resolves and a
// complete, already-wired tree is returned, or nothing is returned and the
// template's own pattern is left untouched (spec.md §4.D, §7).
type Template struct {
	pattern           ast.Node
	shape             ParseShape
	placeholderPrefix string
	holes             map[string]*holeSpec
}

// NewTemplate parses src as the given shape and returns a Template over it.
// An empty placeholderPrefix defaults to "__".
func NewTemplate(p *parser.Parser, root *ast.Root, src string, shape ParseShape, placeholderPrefix string) (*Template, error) {
	if placeholderPrefix == "" {
		placeholderPrefix = "__"
	}
	pattern, err := parseFragment(p, root, src, shape)
	if err != nil {
		return nil, err
	}
	return &Template{
		pattern:           pattern,
		shape:             shape,
		placeholderPrefix: placeholderPrefix,
		holes:             make(map[string]*holeSpec),
	}, nil
}

// NewExternalDeclarationTemplate, NewStatementTemplate and
// NewExpressionTemplate are the spec.md §6.3 factory wrappers that pin the
// parse shape instead of requiring the caller to pass one.
func NewExternalDeclarationTemplate(p *parser.Parser, root *ast.Root, src, placeholderPrefix string) (*Template, error) {
	return NewTemplate(p, root, src, ShapeExternalDeclaration, placeholderPrefix)
}

func NewStatementTemplate(p *parser.Parser, root *ast.Root, src, placeholderPrefix string) (*Template, error) {
	return NewTemplate(p, root, src, ShapeStatement, placeholderPrefix)
}

func NewExpressionTemplate(p *parser.Parser, root *ast.Root, src, placeholderPrefix string) (*Template, error) {
	return NewTemplate(p, root, src, ShapeExpression, placeholderPrefix)
}

// MarkLocalReplacement registers target, a node appearing somewhere in t's
// own pattern, as a hole to be replaced wholesale by the node bound to name
// at Instantiate time.
func (t *Template) MarkLocalReplacement(name string, target ast.Node) {
	t.holes[name] = &holeSpec{kind: holeNode, node: target}
}

// MarkLocalReplacementByName locates the placeholder spelled name within
// t's pattern and registers it the same way as MarkLocalReplacement.
func (t *Template) MarkLocalReplacementByName(name string) error {
	n := findPlaceholderNode(t.pattern, t.placeholderPrefix, name)
	if n == nil {
		return newHoleMissingErr(fmt.Sprintf("template: no placeholder named %q", name))
	}
	t.holes[name] = &holeSpec{kind: holeNode, node: n}
	return nil
}

// MarkIdentifierReplacement registers the identifier placeholder spelled
// name within t's pattern as a hole whose text gets renamed at
// Instantiate time, rather than replaced by a whole node.
func (t *Template) MarkIdentifierReplacement(name string) error {
	n := findPlaceholderNode(t.pattern, t.placeholderPrefix, name)
	if n == nil {
		return newHoleMissingErr(fmt.Sprintf("template: no placeholder named %q", name))
	}
	if _, ok := n.(*ast.Identifier); !ok {
		return newHoleMissingErr(fmt.Sprintf("template: placeholder %q is not an identifier", name))
	}
	t.holes[name] = &holeSpec{kind: holeIdentifier, node: n}
	return nil
}

// Bindings maps a registered hole name to the value filling it: an
// ast.Node for a MarkLocalReplacement(ByName) hole, a string for a
// MarkIdentifierReplacement hole.
type Bindings map[string]any

// Instantiate clones t's pattern into target, substituting every
// registered hole with its bound value from bindings. Every registered
// hole must have a binding, and every binding must match its hole's kind,
// or Instantiate returns an error without mutating target or t's own
// pattern (spec.md §7 TemplateHoleMissing).
func (t *Template) Instantiate(target *ast.Root, bindings Bindings) (ast.Node, error) {
	for name := range t.holes {
		if _, ok := bindings[name]; !ok {
			return nil, newHoleMissingErr(fmt.Sprintf("template: no binding supplied for hole %q", name))
		}
	}

	clone := t.pattern.CloneInto(nil)
	ast.WireTree(clone)

	for name := range t.holes {
		if findPlaceholderNode(clone, t.placeholderPrefix, name) == nil {
			return nil, newHoleMissingErr(fmt.Sprintf("template: hole %q vanished during clone", name))
		}
	}

	for name, h := range t.holes {
		bound := bindings[name]
		cloneNode := findPlaceholderNode(clone, t.placeholderPrefix, name)
		switch h.kind {
		case holeIdentifier:
			s, ok := bound.(string)
			if !ok {
				return nil, newHoleMissingErr(fmt.Sprintf("template: hole %q expects a string binding", name))
			}
			id, ok := cloneNode.(*ast.Identifier)
			if !ok {
				return nil, newHoleMissingErr(fmt.Sprintf("template: hole %q is not an identifier in the clone", name))
			}
			id.SetName(s)
		case holeNode:
			n, ok := bound.(ast.Node)
			if !ok {
				return nil, newHoleMissingErr(fmt.Sprintf("template: hole %q expects a node binding", name))
			}
			replacement := n.CloneInto(nil)
			ast.WireTree(replacement)
			if cloneNode == clone {
				clone = replacement
				continue
			}
			if err := ast.ReplaceByAndDelete(cloneNode, replacement); err != nil {
				return nil, err
			}
		}
	}

	ast.WireTree(clone)
	target.AttachFragment(clone)
	return clone, nil
}
