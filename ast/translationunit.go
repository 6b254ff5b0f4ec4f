package ast

// TranslationUnit is the tree root payload: an optional #version statement
// plus the ordered sequence of external declarations (spec.md §3.1).
type TranslationUnit struct {
	base
	Version   *VersionStatement // optional
	Externals []ExternalDecl
}

// NewTranslationUnit creates a detached TranslationUnit. Callers normally
// obtain one already attached to a Root via the AST builder (parser
// package); this constructor exists for tests and template instantiation.
func NewTranslationUnit() *TranslationUnit {
	tu := &TranslationUnit{}
	tu.self = tu
	return tu
}

func (t *TranslationUnit) Kind() Kind { return KindTranslationUnit }

func (t *TranslationUnit) Children() []Node {
	var out []Node
	if t.Version != nil {
		out = append(out, t.Version)
	}
	for _, e := range t.Externals {
		out = append(out, e)
	}
	return out
}

// InsertExternal inserts decl at position idx in the external declaration
// sequence (clamped to [0, len]), registering it with this Root.
func (t *TranslationUnit) InsertExternal(idx int, decl ExternalDecl) {
	if idx < 0 {
		idx = 0
	}
	if idx > len(t.Externals) {
		idx = len(t.Externals)
	}
	t.Externals = append(t.Externals, nil)
	copy(t.Externals[idx+1:], t.Externals[idx:])
	t.Externals[idx] = decl
	decl.setParent(t)
	propagateRoot(decl, t.root)
	if t.root != nil {
		t.root.register(decl)
	}
}

// SetVersion installs (or replaces) the optional version statement.
func (t *TranslationUnit) SetVersion(v *VersionStatement) {
	old := Node(nil)
	if t.Version != nil {
		old = t.Version
	}
	t.Version = v
	if v != nil {
		UpdateParents(t, old, v)
	} else if old != nil {
		UpdateParents(t, old, nil)
	}
}

func (t *TranslationUnit) CloneInto(target *Root) Node {
	clone := NewTranslationUnit()
	if t.Version != nil {
		clone.Version = t.Version.CloneInto(target).(*VersionStatement)
		clone.Version.setParent(clone)
	}
	for _, e := range t.Externals {
		c := e.CloneInto(target).(ExternalDecl)
		c.setParent(clone)
		clone.Externals = append(clone.Externals, c)
	}
	return clone
}

func (t *TranslationUnit) replaceSelfIn(parent Node, self, replacement Node) error {
	if self == Node(t.Version) {
		if replacement == nil {
			t.Version = nil
		} else {
			t.Version = replacement.(*VersionStatement)
		}
		return nil
	}
	slots := make([]Node, len(t.Externals))
	for i, e := range t.Externals {
		slots[i] = e
	}
	if err := replaceInSlots(&slots, self, replacement); err != nil {
		return err
	}
	t.Externals = t.Externals[:0]
	for _, s := range slots {
		t.Externals = append(t.Externals, s.(ExternalDecl))
	}
	return nil
}
