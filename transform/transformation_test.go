package transform

import (
	"testing"

	"github.com/oxhq/glsltransform/parser"
)

func namedPhase(name string) *Phase {
	return NewRunPhase(name, func(env *Env) error { return nil })
}

func entryNames(entries []PhaseEntry) []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Phase.Name
	}
	return names
}

func TestTransformationAddPhaseMonotonicIndex(t *testing.T) {
	tr := NewTransformation()
	a := tr.AddPhase(namedPhase("a"))
	b := tr.AddPhase(namedPhase("b"))
	if a.Index != 1 || b.Index != 2 {
		t.Fatalf("expected indices 1,2, got %d,%d", a.Index, b.Index)
	}
}

func TestTransformationAddConcurrentPhaseFusesWithPrevious(t *testing.T) {
	tr := NewTransformation()
	a := tr.AddPhase(namedPhase("a"))
	conc := tr.AddConcurrentPhase(namedPhase("a-concurrent"))
	if conc.Index != a.Index {
		t.Fatalf("expected concurrent phase to share index %d, got %d", a.Index, conc.Index)
	}
	next := tr.AddPhase(namedPhase("c"))
	if next.Index != a.Index+1 {
		t.Fatalf("expected next phase index %d, got %d", a.Index+1, next.Index)
	}
}

func TestTransformationAddConcurrentPhaseBeforeAnyPhaseClampsToOne(t *testing.T) {
	tr := NewTransformation()
	p := tr.AddConcurrentPhase(namedPhase("first"))
	if p.Index != 1 {
		t.Fatalf("expected clamped index 1, got %d", p.Index)
	}
}

func TestTransformationAddPhaseAtGroup(t *testing.T) {
	tr := NewTransformation()
	e := tr.AddPhaseAtGroup(5, 2, namedPhase("g"))
	if e.Index != 5 || e.Group != 2 {
		t.Fatalf("expected index=5 group=2, got index=%d group=%d", e.Index, e.Group)
	}
}

// TestTransformationMergeStableSort validates P5: merge(t1, t2) produces a
// phase order equal to the stable merge of t1's and t2's entries sorted by
// (index, group).
func TestTransformationMergeStableSort(t *testing.T) {
	t1 := NewTransformation()
	t1.AddPhase(namedPhase("t1-1"))
	t1.AddPhaseAt(3, namedPhase("t1-3"))

	t2 := NewTransformation()
	t2.AddPhaseAt(1, namedPhase("t2-1"))
	t2.AddPhaseAt(2, namedPhase("t2-2"))

	t1.Merge(t2)

	collector := NewPhaseCollector()
	collector.RegisterTransformation(t1)
	sorted := collector.collectEntries()

	got := entryNames(sorted)
	want := []string{"t1-1", "t2-1", "t2-2", "t1-3"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

// TestTransformationMergeTiesBreakByInsertionOrder validates the stable
// part of P5: two entries landing on the same (index, group) key preserve
// their relative merge-insertion order.
func TestTransformationMergeTiesBreakByInsertionOrder(t *testing.T) {
	t1 := NewTransformation()
	t1.AddPhaseAt(1, namedPhase("t1-a"))

	t2 := NewTransformation()
	t2.AddPhaseAt(1, namedPhase("t2-a"))

	t1.Merge(t2)

	collector := NewPhaseCollector()
	collector.RegisterTransformation(t1)
	sorted := collector.collectEntries()

	got := entryNames(sorted)
	want := []string{"t1-a", "t2-a"}
	if got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("expected stable order %v, got %v", want, got)
	}
}

// TestTransformationAppendShiftsIndices validates P5's append half:
// append(t1, t2) produces t1's entries followed by t2's entries with t2's
// indices shifted past t1's next index.
func TestTransformationAppendShiftsIndices(t *testing.T) {
	t1 := NewTransformation()
	t1.AddPhase(namedPhase("t1-1")) // index 1
	t1.AddPhase(namedPhase("t1-2")) // index 2

	t2 := NewTransformation()
	t2.AddPhase(namedPhase("t2-1")) // index 1 in t2
	t2.AddPhase(namedPhase("t2-2")) // index 2 in t2

	t1.Append(t2)

	entries := t1.Entries()
	if len(entries) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(entries))
	}
	// t1's own entries keep their original indices.
	if entries[0].Index != 1 || entries[1].Index != 2 {
		t.Fatalf("expected t1 entries at 1,2; got %d,%d", entries[0].Index, entries[1].Index)
	}
	// t2's entries are shifted past t1's own highest index (offset = 2).
	if entries[2].Index != 3 || entries[3].Index != 4 {
		t.Fatalf("expected shifted t2 entries at 3,4; got %d,%d", entries[2].Index, entries[3].Index)
	}

	// A subsequent AddPhase on t1 continues past the appended tail.
	next := t1.AddPhase(namedPhase("t1-next"))
	if next.Index != 5 {
		t.Fatalf("expected next phase index 5 after append, got %d", next.Index)
	}
}

func TestTransformationAppendOntoEmpty(t *testing.T) {
	t1 := NewTransformation()
	t2 := NewTransformation()
	t2.AddPhase(namedPhase("t2-1"))

	t1.Append(t2)
	entries := t1.Entries()
	if len(entries) != 1 || entries[0].Index != 1 {
		t.Fatalf("expected single entry at index 1, got %+v", entries)
	}
}

func TestTransformationResetFuncCalledOnRun(t *testing.T) {
	tr := NewTransformation()
	called := false
	tr.SetResetFunc(func() { called = true })
	tr.AddPhase(NewRunPhase("noop", func(env *Env) error { return nil }))

	collector := NewPhaseCollector()
	collector.RegisterTransformation(tr)

	root, unit := parseForTransformTest(t, "void main() {}\n")
	env := newEnv(root, unit, parser.NewParser())
	if err := collector.Run(env); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !called {
		t.Fatal("expected ResetFunc to be called during Run")
	}
}
