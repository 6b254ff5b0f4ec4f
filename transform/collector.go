package transform

import (
	"sort"

	"github.com/oxhq/glsltransform/ast"
)

// PhaseCollector owns a set of registered Transformations and drives one
// run across all of them: init every phase once, reset per-run state,
// then execute phases in (index, group, stable-insertion-order), fusing
// consecutive same-(index,group) Walk phases into a single traversal
// (spec.md §4.E-F).
type PhaseCollector struct {
	transformations []*Transformation
}

func NewPhaseCollector() *PhaseCollector {
	return &PhaseCollector{}
}

func (c *PhaseCollector) RegisterTransformation(t *Transformation) {
	c.transformations = append(c.transformations, t)
}

func (c *PhaseCollector) collectEntries() []PhaseEntry {
	var all []PhaseEntry
	for _, t := range c.transformations {
		all = append(all, t.Entries()...)
	}
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Index != all[j].Index {
			return all[i].Index < all[j].Index
		}
		if all[i].Group != all[j].Group {
			return all[i].Group < all[j].Group
		}
		return all[i].seq < all[j].seq
	})
	return all
}

// Run executes one full pass: reset, init, scheduled phases in order.
func (c *PhaseCollector) Run(env *Env) error {
	for _, t := range c.transformations {
		t.resetStateInternal()
	}

	entries := c.collectEntries()

	for _, e := range entries {
		if err := e.Phase.init(env); err != nil {
			return err
		}
	}

	activeEntries := make([]PhaseEntry, 0, len(entries))
	for _, e := range entries {
		if e.Phase.beginRun(env) {
			activeEntries = append(activeEntries, e)
		}
	}

	i := 0
	for i < len(activeEntries) {
		j := i
		if activeEntries[i].Phase.isWalk() {
			for j < len(activeEntries) &&
				activeEntries[j].Index == activeEntries[i].Index &&
				activeEntries[j].Group == activeEntries[i].Group &&
				activeEntries[j].Phase.isWalk() {
				j++
			}
		}
		if j > i && activeEntries[i].Phase.isWalk() {
			if err := runFusedWalk(env, activeEntries[i:j]); err != nil {
				return err
			}
			i = j
			continue
		}
		e := activeEntries[i]
		var err error
		switch {
		case e.Phase.isMatch():
			err = e.Phase.runMatchPhase(env)
		case e.Phase.Run != nil:
			err = e.Phase.runPlainPhase(env)
		}
		if err != nil {
			return err
		}
		i++
	}

	for _, e := range entries {
		e.Phase.endRun()
	}
	return nil
}

// runFusedWalk performs a single depth-first traversal of the whole tree,
// invoking every phase's Enter callback on entry to a node and every
// phase's Exit callback on leaving it, in entry order, so phases fused at
// the same (index, group) observe each node together.
func runFusedWalk(env *Env, entries []PhaseEntry) error {
	var walk func(n ast.Node) error
	walk = func(n ast.Node) error {
		for _, e := range entries {
			if fn, ok := e.Phase.Enter[n.Kind()]; ok {
				if err := fn(env, n); err != nil {
					return err
				}
			}
		}
		for _, c := range n.Children() {
			if c == nil {
				continue
			}
			if err := walk(c); err != nil {
				return err
			}
		}
		for _, e := range entries {
			if fn, ok := e.Phase.Exit[n.Kind()]; ok {
				if err := fn(env, n); err != nil {
					return err
				}
			}
		}
		return nil
	}
	return walk(ast.Node(env.Unit))
}
