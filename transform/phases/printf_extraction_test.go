package phases

import (
	"reflect"
	"strings"
	"testing"

	"github.com/oxhq/glsltransform/transform"
)

func TestPrintfExtraction(t *testing.T) {
	mgr := transform.NewTransformationManager()
	tr := transform.NewTransformation()
	phase, extractor := PrintfExtraction()
	tr.AddPhase(phase)
	mgr.RegisterTransformation(tr)

	out, err := mgr.Transform(`void main(){ printf("Hello",5,foo,bar+gob); }`)
	if err != nil {
		t.Fatalf("transform: %v", err)
	}
	if strings.Contains(out, "printf(") {
		t.Errorf("expected printf call rewritten, got:\n%s", out)
	}
	if !strings.Contains(out, "restrict buffer PrintfOutputStream {") {
		t.Errorf("expected output struct injected, got:\n%s", out)
	}
	if !strings.Contains(out, "atomicAdd(printfOutputStruct.index, uint(4))") {
		t.Errorf("expected atomic reservation of 4 slots, got:\n%s", out)
	}
	if !strings.Contains(out, "printfOutputStruct.stream[__printfBase0 + 0u] = uint(0);") {
		t.Errorf("expected job-id slot write, got:\n%s", out)
	}
	if !strings.Contains(out, "floatBitsToUint(float(5))") ||
		!strings.Contains(out, "floatBitsToUint(float(foo))") ||
		!strings.Contains(out, "floatBitsToUint(float(bar + gob))") {
		t.Errorf("expected one encoded write per argument, got:\n%s", out)
	}

	want := []PrintfJob{{Format: "Hello", Args: []string{"5", "foo", "bar + gob"}}}
	if !reflect.DeepEqual(extractor.Jobs, want) {
		t.Errorf("jobs = %+v, want %+v", extractor.Jobs, want)
	}
}

func TestPrintfExtractionInjectsStructOnce(t *testing.T) {
	mgr := transform.NewTransformationManager()
	tr := transform.NewTransformation()
	phase, extractor := PrintfExtraction()
	tr.AddPhase(phase)
	mgr.RegisterTransformation(tr)

	out, err := mgr.Transform(`void main(){ printf("a",1); printf("b",2); }`)
	if err != nil {
		t.Fatalf("transform: %v", err)
	}
	if strings.Count(out, "PrintfOutputStream {") != 1 {
		t.Errorf("expected struct injected exactly once, got:\n%s", out)
	}
	if len(extractor.Jobs) != 2 {
		t.Errorf("expected 2 jobs recorded, got %d: %+v", len(extractor.Jobs), extractor.Jobs)
	}
}

func TestPrintfExtractionNoCallsIsNoop(t *testing.T) {
	mgr := transform.NewTransformationManager()
	tr := transform.NewTransformation()
	phase, extractor := PrintfExtraction()
	tr.AddPhase(phase)
	mgr.RegisterTransformation(tr)

	out, err := mgr.Transform("void main(){ foo(); }")
	if err != nil {
		t.Fatalf("transform: %v", err)
	}
	if strings.Contains(out, "PrintfOutputStream") {
		t.Errorf("expected no struct injected without a printf call, got:\n%s", out)
	}
	if len(extractor.Jobs) != 0 {
		t.Errorf("expected no jobs recorded, got %+v", extractor.Jobs)
	}
}
