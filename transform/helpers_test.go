package transform

import (
	"testing"

	"github.com/oxhq/glsltransform/ast"
	"github.com/oxhq/glsltransform/parser"
)

func parseForTransformTest(t *testing.T, src string) (*ast.Root, *ast.TranslationUnit) {
	t.Helper()
	p := parser.NewParser()
	root, unit, err := p.ParseTranslationUnit(src, parser.RootSupplierDefault)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return root, unit
}
