package phases

import (
	"strings"
	"testing"

	"github.com/oxhq/glsltransform/transform"
)

func TestAddDeclarationsIfNotExists(t *testing.T) {
	mgr := transform.NewTransformationManager()
	tr := transform.NewTransformation()
	tr.AddPhase(AddDeclarationsIfNotExists("in vec2 foo;", "in vec2 bar;", "uniform mat2 zub;"))
	mgr.RegisterTransformation(tr)

	out, err := mgr.Transform("in vec2 bar;")
	if err != nil {
		t.Fatalf("transform: %v", err)
	}
	if strings.Count(out, "bar;") != 1 {
		t.Errorf("expected exactly one bar declaration, got:\n%s", out)
	}
	if !strings.Contains(out, "in vec2 foo;") {
		t.Errorf("expected foo injected, got:\n%s", out)
	}
	if !strings.Contains(out, "uniform mat2 zub;") {
		t.Errorf("expected zub injected, got:\n%s", out)
	}
}

func TestAddDeclarationsIfNotExistsDedupesWithinRequest(t *testing.T) {
	mgr := transform.NewTransformationManager()
	tr := transform.NewTransformation()
	tr.AddPhase(AddDeclarationsIfNotExists("in vec2 foo;", "in vec2 foo;"))
	mgr.RegisterTransformation(tr)

	out, err := mgr.Transform("void main() {}\n")
	if err != nil {
		t.Fatalf("transform: %v", err)
	}
	if strings.Count(out, "foo;") != 1 {
		t.Errorf("expected foo injected exactly once, got:\n%s", out)
	}
}
