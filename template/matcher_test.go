package template

import (
	"testing"

	"github.com/oxhq/glsltransform/ast"
	"github.com/oxhq/glsltransform/parser"
)

func mustMatcher(t *testing.T, shape ParseShape, src string) *Matcher {
	t.Helper()
	p := parser.NewParser()
	root := ast.NewRoot(ast.PolicyUnordered)
	m, err := NewMatcher(p, root, src, shape, "")
	if err != nil {
		t.Fatalf("NewMatcher(%q): %v", src, err)
	}
	return m
}

func mustCandidate(t *testing.T, shape ParseShape, src string) ast.Node {
	t.Helper()
	p := parser.NewParser()
	root := ast.NewRoot(ast.PolicyUnordered)
	n, err := parseFragment(p, root, src, shape)
	if err != nil {
		t.Fatalf("parse candidate %q: %v", src, err)
	}
	return n
}

func TestMatcherShapeEquality(t *testing.T) {
	m := mustMatcher(t, ShapeExpression, "a + b")
	cand := mustCandidate(t, ShapeExpression, "a + b")
	if _, ok := m.Match(cand); !ok {
		t.Fatal("expected identical expressions to match")
	}

	other := mustCandidate(t, ShapeExpression, "a - b")
	if _, ok := m.Match(other); ok {
		t.Fatal("expected different operators not to match")
	}
}

func TestMatcherShapeMismatchKind(t *testing.T) {
	m := mustMatcher(t, ShapeExpression, "a + b")
	stmt := mustCandidate(t, ShapeStatement, "x;")
	if _, ok := m.Match(stmt); ok {
		t.Fatal("expected a statement candidate to be rejected by an expression matcher")
	}
}

func TestMatcherIdentifierWildcard(t *testing.T) {
	m := mustMatcher(t, ShapeExpression, "__x + 1")
	cand := mustCandidate(t, ShapeExpression, "count + 1")
	match, ok := m.Match(cand)
	if !ok {
		t.Fatal("expected match")
	}
	s, ok := match.GetStringDataMatch("x")
	if !ok || s != "count" {
		t.Fatalf("expected captured identifier text %q, got %q (ok=%v)", "count", s, ok)
	}
}

func TestMatcherClassWildcard(t *testing.T) {
	m := mustMatcher(t, ShapeExpression, "texture(__sampler, __coord)")
	call := m.Pattern().(*ast.FunctionCallExpression)
	m.MarkClassWildcard("sampler", call.Args[0])
	m.MarkClassWildcard("coord", call.Args[1])

	cand := mustCandidate(t, ShapeExpression, "texture(uSampler2D, vUv)")
	match, ok := m.Match(cand)
	if !ok {
		t.Fatal("expected class-wildcard match")
	}
	if n, ok := match.GetNodeMatch("sampler", ast.KindReferenceExpression); !ok || n.(*ast.ReferenceExpression).Ident.Name() != "uSampler2D" {
		t.Fatalf("unexpected sampler capture: %#v ok=%v", n, ok)
	}
	if n, ok := match.GetNodeMatch("coord", ast.KindReferenceExpression); !ok || n.(*ast.ReferenceExpression).Ident.Name() != "vUv" {
		t.Fatalf("unexpected coord capture: %#v ok=%v", n, ok)
	}
}

func TestMatcherAncestorWildcard(t *testing.T) {
	m := mustMatcher(t, ShapeExpression, "__inner*")
	cand := mustCandidate(t, ShapeExpression, "a + b * c")
	match, ok := m.Match(cand)
	if !ok {
		t.Fatal("expected ancestor wildcard to accept any expression")
	}
	n, ok := match.GetNodeMatch("inner", "")
	if !ok || n != cand {
		t.Fatalf("expected whole candidate captured, got %#v ok=%v", n, ok)
	}
}

func TestMatcherRepeatedPlaceholderEquality(t *testing.T) {
	m := mustMatcher(t, ShapeExpression, "__x + __x")
	same := mustCandidate(t, ShapeExpression, "foo + foo")
	if _, ok := m.Match(same); !ok {
		t.Fatal("expected repeated identifier placeholder to accept equal names")
	}

	different := mustCandidate(t, ShapeExpression, "foo + bar")
	if _, ok := m.Match(different); ok {
		t.Fatal("expected repeated identifier placeholder to reject unequal names")
	}
}

func TestMatcherRepeatedNodeWildcardEquality(t *testing.T) {
	m := mustMatcher(t, ShapeExpression, "__n* + __n*")
	call := m.Pattern().(*ast.BinaryExpression)
	_ = call

	same := mustCandidate(t, ShapeExpression, "(a * b) + (a * b)")
	if _, ok := m.Match(same); !ok {
		t.Fatal("expected identical repeated subtrees to match")
	}

	different := mustCandidate(t, ShapeExpression, "(a * b) + (a * c)")
	if _, ok := m.Match(different); ok {
		t.Fatal("expected differing repeated subtrees to be rejected")
	}
}

func TestMatcherMatchesExtractHook(t *testing.T) {
	m := mustMatcher(t, ShapeExpression, "__x + 1")
	m.SetMatchesExtract(func(match *Match) bool {
		s, _ := match.GetStringDataMatch("x")
		return s == "allowed"
	})

	ok1 := mustCandidate(t, ShapeExpression, "allowed + 1")
	if _, ok := m.Match(ok1); !ok {
		t.Fatal("expected matchesExtract to accept the allowed name")
	}

	rejected := mustCandidate(t, ShapeExpression, "other + 1")
	if _, ok := m.Match(rejected); ok {
		t.Fatal("expected matchesExtract to reject a different captured name")
	}
}

func TestMatcherExternalDeclarationShape(t *testing.T) {
	m := mustMatcher(t, ShapeExternalDeclaration, "uniform __T __name;")
	cand := mustCandidate(t, ShapeExternalDeclaration, "uniform vec4 uColor;")
	match, ok := m.Match(cand)
	if !ok {
		t.Fatal("expected uniform declaration to match")
	}
	if s, ok := match.GetStringDataMatch("name"); !ok || s != "uColor" {
		t.Fatalf("expected captured name uColor, got %q ok=%v", s, ok)
	}
}
