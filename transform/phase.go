package transform

import (
	"github.com/oxhq/glsltransform/ast"
	"github.com/oxhq/glsltransform/template"
)

// PhaseState is the lifecycle a Phase moves through across the
// PhaseCollector it is bound to (spec.md §4.E): CREATED until the first
// init, then INITIALIZED, then ACTIVE or SKIPPED for the duration of a
// run depending on IsActive, then back to INITIALIZED once the run ends.
type PhaseState int

const (
	PhaseCreated PhaseState = iota
	PhaseInitialized
	PhaseActive
	PhaseSkipped
)

// EnterFunc/ExitFunc are the per-kind callbacks a Walk phase registers;
// RunFunc is the once-per-tree callback a Run phase registers.
type EnterFunc func(env *Env, n ast.Node) error
type ExitFunc func(env *Env, n ast.Node) error
type RunFunc func(env *Env) error

// MatchFunc is invoked for every candidate a Match phase's matcher
// accepts, with the capture set from that match.
type MatchFunc func(env *Env, candidate ast.Node, m *template.Match) error

// Phase is a unit of traversal/rewrite. Exactly one of the Walk (Enter /
// Exit), Run, or Match fields should be populated; NewWalkPhase,
// NewRunPhase and NewMatchPhase build a Phase in each shape (spec.md
// §4.E). Fusion of same-(index,group) walk phases is handled by the
// PhaseCollector's traversal driver, not by Phase itself.
type Phase struct {
	Name string

	Enter map[ast.Kind]EnterFunc
	Exit  map[ast.Kind]ExitFunc

	Run RunFunc

	MatchKind ast.Kind
	Matcher   *template.Matcher
	OnMatch   MatchFunc

	// InitFunc runs once per Phase, the first time the phase participates
	// in a run; later runs, in the same or another PhaseCollector, do not
	// run it again. IsActiveFunc is consulted at the start
	// of every run; a nil IsActiveFunc means always active.
	InitFunc     func(env *Env) error
	IsActiveFunc func(env *Env) bool

	state PhaseState
}

func NewWalkPhase(name string) *Phase {
	return &Phase{Name: name, Enter: make(map[ast.Kind]EnterFunc), Exit: make(map[ast.Kind]ExitFunc)}
}

func NewRunPhase(name string, run RunFunc) *Phase {
	return &Phase{Name: name, Run: run}
}

func NewMatchPhase(name string, matchKind ast.Kind, matcher *template.Matcher, onMatch MatchFunc) *Phase {
	return &Phase{Name: name, MatchKind: matchKind, Matcher: matcher, OnMatch: onMatch}
}

func (p *Phase) isWalk() bool  { return p.Enter != nil || p.Exit != nil }
func (p *Phase) isMatch() bool { return p.Matcher != nil }

// State returns the phase's current lifecycle state.
func (p *Phase) State() PhaseState { return p.state }

// init runs InitFunc the first time it is called on p and does nothing
// on later calls.
func (p *Phase) init(env *Env) error {
	if p.state != PhaseCreated {
		return nil
	}
	if p.InitFunc != nil {
		if err := p.InitFunc(env); err != nil {
			return err
		}
	}
	p.state = PhaseInitialized
	return nil
}

// beginRun resolves IsActive for the current run, transitioning to
// ACTIVE or SKIPPED.
func (p *Phase) beginRun(env *Env) bool {
	active := p.IsActiveFunc == nil || p.IsActiveFunc(env)
	if active {
		p.state = PhaseActive
	} else {
		p.state = PhaseSkipped
	}
	return active
}

// endRun returns the phase to INITIALIZED once a run completes,
// regardless of whether it was active or skipped.
func (p *Phase) endRun() {
	p.state = PhaseInitialized
}

// runMatchPhase drives a Match phase: it iterates every node of
// MatchKind currently indexed on env.Root, applies Matcher, and invokes
// OnMatch for each accepted candidate. A Match phase is built on Run
// (spec.md §4.E) purely in the sense that it runs once per tree rather
// than being folded into a fused traversal; it still needs its own
// driver because it iterates the index instead of walking Children().
func (p *Phase) runMatchPhase(env *Env) error {
	candidates := env.Root.GetNodes(p.MatchKind)
	for _, c := range candidates {
		m, ok := p.Matcher.Match(c)
		if !ok {
			continue
		}
		if err := p.OnMatch(env, c, m); err != nil {
			return err
		}
	}
	return nil
}

// runPlainPhase drives a Run phase: a single call with the tree root.
func (p *Phase) runPlainPhase(env *Env) error {
	return p.Run(env)
}
