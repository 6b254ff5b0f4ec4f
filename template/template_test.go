package template

import (
	"testing"

	"github.com/oxhq/glsltransform/ast"
	"github.com/oxhq/glsltransform/parser"
)

func TestTemplateInstantiateIdentifierHole(t *testing.T) {
	p := parser.NewParser()
	tplRoot := ast.NewRoot(ast.PolicyUnordered)
	tpl, err := NewExpressionTemplate(p, tplRoot, "__name + 1", "")
	if err != nil {
		t.Fatalf("NewExpressionTemplate: %v", err)
	}
	if err := tpl.MarkIdentifierReplacement("name"); err != nil {
		t.Fatalf("MarkIdentifierReplacement: %v", err)
	}

	target := ast.NewRoot(ast.PolicyUnordered)
	out, err := tpl.Instantiate(target, Bindings{"name": "frameCount"})
	if err != nil {
		t.Fatalf("Instantiate: %v", err)
	}
	bin, ok := out.(*ast.BinaryExpression)
	if !ok {
		t.Fatalf("expected *ast.BinaryExpression, got %T", out)
	}
	ref, ok := bin.Left.(*ast.ReferenceExpression)
	if !ok || ref.Ident.Name() != "frameCount" {
		t.Fatalf("expected left operand frameCount, got %#v", bin.Left)
	}
	if len(target.GetIdentifiers("frameCount")) != 1 {
		t.Error("expected instantiated identifier to be indexed in the target root")
	}
}

func TestTemplateInstantiateNodeHole(t *testing.T) {
	p := parser.NewParser()
	tplRoot := ast.NewRoot(ast.PolicyUnordered)
	tpl, err := NewExpressionTemplate(p, tplRoot, "vec4(__rgb, 1.0)", "")
	if err != nil {
		t.Fatalf("NewExpressionTemplate: %v", err)
	}
	if err := tpl.MarkLocalReplacementByName("rgb"); err != nil {
		t.Fatalf("MarkLocalReplacementByName: %v", err)
	}

	replacementRoot := ast.NewRoot(ast.PolicyUnordered)
	replacement, err := parseFragment(p, replacementRoot, "texture(uSampler, vUv).rgb", ShapeExpression)
	if err != nil {
		t.Fatalf("parse replacement: %v", err)
	}

	target := ast.NewRoot(ast.PolicyUnordered)
	out, err := tpl.Instantiate(target, Bindings{"rgb": replacement})
	if err != nil {
		t.Fatalf("Instantiate: %v", err)
	}
	call, ok := out.(*ast.FunctionCallExpression)
	if !ok {
		t.Fatalf("expected *ast.FunctionCallExpression, got %T", out)
	}
	if call.Args[0].Parent() != call {
		t.Error("expected spliced replacement's parent to be the surrounding call")
	}
	if _, ok := call.Args[0].(*ast.MemberAccessExpression); !ok {
		t.Fatalf("expected spliced replacement to be a member access, got %T", call.Args[0])
	}
}

func TestTemplateInstantiateMissingBinding(t *testing.T) {
	p := parser.NewParser()
	tplRoot := ast.NewRoot(ast.PolicyUnordered)
	tpl, err := NewExpressionTemplate(p, tplRoot, "__name + 1", "")
	if err != nil {
		t.Fatalf("NewExpressionTemplate: %v", err)
	}
	if err := tpl.MarkIdentifierReplacement("name"); err != nil {
		t.Fatalf("MarkIdentifierReplacement: %v", err)
	}

	target := ast.NewRoot(ast.PolicyUnordered)
	if _, err := tpl.Instantiate(target, Bindings{}); err == nil {
		t.Fatal("expected TemplateHoleMissing error for an unbound hole")
	}
	// the template's own pattern must survive an aborted instantiation untouched
	ref := findPlaceholderNode(tpl.pattern, tpl.placeholderPrefix, "name")
	if ref == nil {
		t.Fatal("expected the template's own placeholder to still be present after a failed instantiate")
	}
}

func TestTemplateInstantiateWholeRootHole(t *testing.T) {
	p := parser.NewParser()
	tplRoot := ast.NewRoot(ast.PolicyUnordered)
	tpl, err := NewExpressionTemplate(p, tplRoot, "__whole*", "")
	if err != nil {
		t.Fatalf("NewExpressionTemplate: %v", err)
	}
	if err := tpl.MarkLocalReplacementByName("whole"); err != nil {
		t.Fatalf("MarkLocalReplacementByName: %v", err)
	}

	replacementRoot := ast.NewRoot(ast.PolicyUnordered)
	replacement, err := parseFragment(p, replacementRoot, "a * b", ShapeExpression)
	if err != nil {
		t.Fatalf("parse replacement: %v", err)
	}

	target := ast.NewRoot(ast.PolicyUnordered)
	out, err := tpl.Instantiate(target, Bindings{"whole": replacement})
	if err != nil {
		t.Fatalf("Instantiate: %v", err)
	}
	if _, ok := out.(*ast.BinaryExpression); !ok {
		t.Fatalf("expected *ast.BinaryExpression replacing the whole pattern, got %T", out)
	}
	if out.Parent() != nil {
		t.Error("expected a fragment-root result to have no parent")
	}
}
