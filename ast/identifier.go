package ast

// Identifier is a mutable name string, indexed by its current spelling
// (spec.md §3.1). Renaming goes through SetName so the Root's identifier
// index stays consistent with invariant I3.
type Identifier struct {
	base
	name string
}

// NewIdentifier creates a detached Identifier. Attach it with Setup to
// register it with a Root.
func NewIdentifier(name string) *Identifier {
	id := &Identifier{name: name}
	id.self = id
	return id
}

func (i *Identifier) Kind() Kind        { return KindIdentifier }
func (i *Identifier) Children() []Node  { return nil }
func (i *Identifier) Name() string      { return i.name }

// SetName changes the identifier's spelling, deregistering it under the
// old name and registering it under the new one if attached to a Root.
func (i *Identifier) SetName(name string) {
	if name == i.name {
		return
	}
	old := i.name
	i.name = name
	if i.root != nil {
		i.root.renameIdentifier(i, old, name)
	}
}

func (i *Identifier) CloneInto(target *Root) Node {
	return NewIdentifier(i.name)
}

func (i *Identifier) replaceSelfIn(parent Node, self, replacement Node) error {
	// Identifier is always a leaf inside a fixed slot; it never hosts a
	// child replacement itself.
	return newDetachmentErr("identifier cannot host a child replacement")
}
