package ast

import "fmt"

// Node is the capability set every AST node variant implements: its kind,
// its ordered children, cloning into a (possibly different) Root, and the
// parent / root back-pointers required by invariants I1-I2 in spec.md §3.2.
type Node interface {
	Kind() Kind
	Parent() Node
	Root() *Root

	// Children returns this node's direct children in declaration order.
	// Inner nodes return their fixed typed slots; list nodes return their
	// ordered sequence. Nil slots are omitted.
	Children() []Node

	// CloneInto deep-copies this subtree. The copy is unattached (no
	// parent); Identifier and index-able nodes in the copy are later
	// registered with target by the caller once the clone is attached.
	CloneInto(target *Root) Node

	setParent(Node)
	setRoot(*Root)
}

// base is embedded by every concrete node and implements the Node plumbing
// common to all variants. Concrete types still implement Kind, Children and
// CloneInto themselves.
type base struct {
	parent Node
	root   *Root
	self   Node // back-pointer so base methods can participate in Node dispatch
}

func (b *base) Parent() Node    { return b.parent }
func (b *base) Root() *Root     { return b.root }
func (b *base) setParent(p Node) { b.parent = p }
func (b *base) setRoot(r *Root)   { b.root = r }

// DetachParent clears the parent link without touching indices. Per
// spec.md §4.A this updates no indices itself; callers that want index
// consistency should use DetachAndDelete or ReplaceBy.
func DetachParent(n Node) {
	n.setParent(nil)
}

// Setup installs child as a direct child of parent: it sets child.parent,
// registers child's subtree under parent.Root()'s indices (if attached),
// and returns child so constructors can chain
// (`n.Field = Setup(n, newExpr(...))`).
func Setup[T Node](parent Node, child T) T {
	any(child).(Node).setParent(parent)
	root := parent.Root()
	propagateRoot(any(child).(Node), root)
	if root != nil {
		root.register(any(child).(Node))
	}
	return child
}

// propagateRoot sets root on n and its whole subtree. Used when attaching a
// previously-detached (and therefore root-less) subtree.
func propagateRoot(n Node, root *Root) {
	n.setRoot(root)
	for _, c := range n.Children() {
		if c != nil {
			propagateRoot(c, root)
		}
	}
}

// UpdateParents atomically replaces a single child slot: it unregisters
// oldChild's subtree, links newChild into parent, and registers newChild's
// subtree. The caller is responsible for actually storing newChild in
// parent's typed field or list slot; UpdateParents only manages indices and
// back-pointers.
func UpdateParents(parent Node, oldChild, newChild Node) {
	root := parent.Root()
	if oldChild != nil && root != nil {
		root.unregister(oldChild)
	}
	if newChild != nil {
		newChild.setParent(parent)
		propagateRoot(newChild, root)
		if root != nil {
			root.register(newChild)
		}
	}
}

// Replacer is implemented by nodes that know how to find themselves in
// their parent's child slot and overwrite it. Concrete node types generate
// this by a type switch on Parent().Kind() and the node's own identity;
// list-node parents additionally need the index within the list.
type Replacer interface {
	// replaceSelfIn asks parent to overwrite the slot currently holding
	// self with replacement, returning an error if self could not be
	// located (DetachmentViolation).
	replaceSelfIn(parent Node, self, replacement Node) error
}

// ReplaceBy replaces n within its parent's slot with other. Detaching n
// from the tree first (if other is nil) is not supported; use
// DetachAndDelete for that.
func ReplaceBy(n, other Node) error {
	parent := n.Parent()
	if parent == nil {
		return newDetachmentErr("replaceBy: node has no parent")
	}
	rep, ok := parent.(Replacer)
	if !ok {
		return newDetachmentErr(fmt.Sprintf("replaceBy: parent kind %s cannot host a replacement", parent.Kind()))
	}
	if err := rep.replaceSelfIn(parent, n, other); err != nil {
		return err
	}
	UpdateParents(parent, n, other)
	return nil
}

// ReplaceByAndDelete is ReplaceBy followed by detaching n's own back
// pointers so accidental reuse of the stale node is easy to catch.
func ReplaceByAndDelete(n, other Node) error {
	if err := ReplaceBy(n, other); err != nil {
		return err
	}
	detachAndZero(n)
	return nil
}

// DetachAndDelete removes n from its parent, deregisters its subtree from
// its Root, and zeroes n's parent/root so later use is detectable.
func DetachAndDelete(n Node) error {
	parent := n.Parent()
	if parent == nil {
		return newDetachmentErr("detachAndDelete: node has no parent")
	}
	rep, ok := parent.(Replacer)
	if !ok {
		return newDetachmentErr(fmt.Sprintf("detachAndDelete: parent kind %s cannot remove a child", parent.Kind()))
	}
	if err := rep.replaceSelfIn(parent, n, nil); err != nil {
		return err
	}
	root := parent.Root()
	if root != nil {
		root.unregister(n)
	}
	detachAndZero(n)
	return nil
}

func detachAndZero(n Node) {
	n.setParent(nil)
	n.setRoot(nil)
}

// WireTree sets parent back-pointers throughout n's subtree from its
// structural shape (Children()). Constructors across this package build a
// node's own fields but, like CloneInto, leave a passed-in child's parent
// link for the caller to fix up; WireTree does that for a whole freshly
// assembled fragment in one recursive pass, which is what the parser
// package needs since it has no access to the unexported setParent method
// itself. Safe to call on a fragment that is already partially wired.
func WireTree(n Node) {
	if n == nil {
		return
	}
	for _, c := range n.Children() {
		if c == nil {
			continue
		}
		c.setParent(n)
		WireTree(c)
	}
}

// GetAncestor walks parent links upward and returns the first strict
// ancestor of the given kind, or nil.
func GetAncestor(n Node, kind Kind) Node {
	for p := n.Parent(); p != nil; p = p.Parent() {
		if p.Kind() == kind {
			return p
		}
	}
	return nil
}

// HasAncestor reports whether n has a strict ancestor of the given kind.
func HasAncestor(n Node, kind Kind) bool {
	return GetAncestor(n, kind) != nil
}

// GetAncestorAt is the three-argument bounded form used by matchers to
// locate a contextually-identified structural parent: it walks up exactly
// levelsUp parent links, then from that ancestor walks down offset child
// positions (via Children()) before testing predicate. It returns nil if
// the walk runs off either end or predicate rejects the candidate.
func GetAncestorAt(n Node, levelsUp, offset int, predicate func(Node) bool) Node {
	cur := n
	for range levelsUp {
		if cur.Parent() == nil {
			return nil
		}
		cur = cur.Parent()
	}
	if offset != 0 {
		children := cur.Children()
		idx := offset
		if idx < 0 {
			idx += len(children)
		}
		if idx < 0 || idx >= len(children) {
			return nil
		}
		cur = children[idx]
	}
	if predicate != nil && !predicate(cur) {
		return nil
	}
	return cur
}
