package ast

import "github.com/timandy/routine"

// pendingOp is a queued index mutation captured during a build session.
type pendingOp struct {
	insert bool
	node   Node
}

// buildSession batches register/unregister calls for one Root while a
// IndexBuildSession scope is open, per spec.md §3.2 policy 3 and §9's
// "index build session... scoped acquisition... guaranteed flush on scope
// exit, including the error path".
type buildSession struct {
	root    *Root
	pending []pendingOp
}

// activeSession is goroutine-local: a Root is owned exclusively by the
// thread driving its transformation (spec.md §5), so "is this goroutine
// currently inside a build session for this root" is naturally
// goroutine-local state rather than a parameter threaded through every
// register/unregister call.
var activeSession = routine.NewThreadLocal[*buildSession]()

// IndexBuildSession batches index mutations performed by body: calls to
// register/unregister routed through this Root while body runs are queued
// instead of applied immediately, then flushed as one batch when body
// returns (including when body panics, so the error path still commits a
// consistent net of insertions minus removals, satisfying P6).
func (r *Root) IndexBuildSession(body func()) {
	prev := activeSession.Get()
	sess := &buildSession{root: r}
	activeSession.Set(sess)
	defer func() {
		activeSession.Set(prev)
		r.flushSession(sess)
	}()
	body()
}

func (r *Root) currentSession() *buildSession {
	sess := activeSession.Get()
	if sess == nil || sess.root != r {
		return nil
	}
	return sess
}

func (r *Root) flushSession(sess *buildSession) {
	for _, op := range sess.pending {
		if op.insert {
			r.applyRegister(op.node)
		} else {
			r.applyUnregister(op.node)
		}
	}
}
