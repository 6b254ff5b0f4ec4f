package ast

// FullySpecifiedType pairs an optional qualifier (const/in/out/uniform/...)
// with a type specifier, e.g. `const highp vec3`. Array, when present, is
// a dimension written directly after the specifier rather than after a
// declarator (`int[] foo, bar;`), the type-position half of spec.md §8
// scenario 5's array-specifier move.
type FullySpecifiedType struct {
	base
	Qualifier *TypeQualifier // optional
	Spec      TypeSpecifier
	Array     *ArraySpecifier // optional
}

func NewFullySpecifiedType(qualifier *TypeQualifier, spec TypeSpecifier) *FullySpecifiedType {
	f := &FullySpecifiedType{Qualifier: qualifier, Spec: spec}
	f.self = f
	return f
}

func (f *FullySpecifiedType) Kind() Kind       { return KindFullySpecifiedType }
func (f *FullySpecifiedType) Children() []Node { return nodesOf[Node](f.Qualifier, f.Spec, f.Array) }
func (f *FullySpecifiedType) CloneInto(target *Root) Node {
	clone := &FullySpecifiedType{}
	clone.self = clone
	if f.Qualifier != nil {
		clone.Qualifier = f.Qualifier.CloneInto(target).(*TypeQualifier)
		clone.Qualifier.setParent(clone)
	}
	clone.Spec = f.Spec.CloneInto(target).(TypeSpecifier)
	clone.Spec.setParent(clone)
	if f.Array != nil {
		clone.Array = f.Array.CloneInto(target).(*ArraySpecifier)
		clone.Array.setParent(clone)
	}
	return clone
}
func (f *FullySpecifiedType) replaceSelfIn(parent, self, replacement Node) error {
	switch self {
	case Node(f.Qualifier):
		if replacement == nil {
			f.Qualifier = nil
		} else {
			f.Qualifier = replacement.(*TypeQualifier)
		}
	case Node(f.Spec):
		if replacement == nil {
			return newDetachmentErr("fullySpecifiedType: specifier slot is required")
		}
		f.Spec = replacement.(TypeSpecifier)
	case Node(f.Array):
		if replacement == nil {
			f.Array = nil
		} else {
			f.Array = replacement.(*ArraySpecifier)
		}
	default:
		return newDetachmentErr("fullySpecifiedType: child not found")
	}
	return nil
}

// QualifierKind is a storage/precision/interpolation/invariant keyword
// attached to a declaration (`const`, `in`, `out`, `uniform`, `buffer`,
// `shared`, `flat`, `smooth`, `noperspective`, `centroid`, `sample`,
// `invariant`, `precise`, `highp`/`mediump`/`lowp`), plus `layout(...)`.
type QualifierKind string

const (
	QualConst         QualifierKind = "const"
	QualIn            QualifierKind = "in"
	QualOut           QualifierKind = "out"
	QualInOut         QualifierKind = "inout"
	QualUniform       QualifierKind = "uniform"
	QualBuffer        QualifierKind = "buffer"
	QualRestrict      QualifierKind = "restrict"
	QualShared        QualifierKind = "shared"
	QualFlat          QualifierKind = "flat"
	QualSmooth        QualifierKind = "smooth"
	QualNoperspective QualifierKind = "noperspective"
	QualCentroid      QualifierKind = "centroid"
	QualSample        QualifierKind = "sample"
	QualInvariant     QualifierKind = "invariant"
	QualPrecise       QualifierKind = "precise"
	QualHighp         QualifierKind = "highp"
	QualMediump       QualifierKind = "mediump"
	QualLowp          QualifierKind = "lowp"
)

// TypeQualifier is an ordered set of qualifier keywords plus an optional
// leading layout qualifier, e.g. `layout(location = 0) flat in`.
type TypeQualifier struct {
	base
	Layout *LayoutQualifier // optional
	Kinds  []QualifierKind
}

func NewTypeQualifier(layout *LayoutQualifier, kinds ...QualifierKind) *TypeQualifier {
	q := &TypeQualifier{Layout: layout, Kinds: kinds}
	q.self = q
	return q
}

func (q *TypeQualifier) Kind() Kind       { return KindTypeQualifier }
func (q *TypeQualifier) Children() []Node { return nodesOf[Node](q.Layout) }

// Has reports whether the qualifier includes kind, e.g. distinguishing an
// `in`-qualified member from an `out`-qualified one during a rewrite.
func (q *TypeQualifier) Has(kind QualifierKind) bool {
	for _, k := range q.Kinds {
		if k == kind {
			return true
		}
	}
	return false
}

func (q *TypeQualifier) CloneInto(target *Root) Node {
	clone := &TypeQualifier{Kinds: append([]QualifierKind(nil), q.Kinds...)}
	clone.self = clone
	if q.Layout != nil {
		clone.Layout = q.Layout.CloneInto(target).(*LayoutQualifier)
		clone.Layout.setParent(clone)
	}
	return clone
}
func (q *TypeQualifier) replaceSelfIn(parent, self, replacement Node) error {
	if self != Node(q.Layout) {
		return newDetachmentErr("typeQualifier: child not found")
	}
	if replacement == nil {
		q.Layout = nil
	} else {
		q.Layout = replacement.(*LayoutQualifier)
	}
	return nil
}

// LayoutQualifierPart is one `id` or `id = value` entry inside
// `layout(...)`, e.g. `location = 0` or `std140`.
type LayoutQualifierPart struct {
	base
	ID    string
	Value Expression // optional; nil for bare identifiers like `std140`
}

func NewLayoutQualifierPart(id string, value Expression) *LayoutQualifierPart {
	p := &LayoutQualifierPart{ID: id, Value: value}
	p.self = p
	return p
}

func (p *LayoutQualifierPart) Kind() Kind       { return KindLayoutQualifierPart }
func (p *LayoutQualifierPart) Children() []Node { return nodesOf[Node](p.Value) }
func (p *LayoutQualifierPart) CloneInto(target *Root) Node {
	clone := &LayoutQualifierPart{ID: p.ID}
	clone.self = clone
	if p.Value != nil {
		clone.Value = p.Value.CloneInto(target).(Expression)
		clone.Value.setParent(clone)
	}
	return clone
}
func (p *LayoutQualifierPart) replaceSelfIn(parent, self, replacement Node) error {
	if self != Node(p.Value) {
		return newDetachmentErr("layoutQualifierPart: child not found")
	}
	if replacement == nil {
		p.Value = nil
	} else {
		p.Value = replacement.(Expression)
	}
	return nil
}

// LayoutQualifier is `layout(part, part, ...)`, the mechanism behind
// spec.md §8 scenario 3 (adding `layout(location = N)` to an out
// declaration).
type LayoutQualifier struct {
	base
	Parts []*LayoutQualifierPart
}

func NewLayoutQualifier(parts ...*LayoutQualifierPart) *LayoutQualifier {
	l := &LayoutQualifier{Parts: parts}
	l.self = l
	return l
}

func (l *LayoutQualifier) Kind() Kind { return KindLayoutQualifier }
func (l *LayoutQualifier) Children() []Node {
	out := make([]Node, len(l.Parts))
	for i, p := range l.Parts {
		out[i] = p
	}
	return out
}

// Get returns the part with the given ID, or nil.
func (l *LayoutQualifier) Get(id string) *LayoutQualifierPart {
	for _, p := range l.Parts {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Set installs or replaces the part with the given ID.
func (l *LayoutQualifier) Set(id string, value Expression) {
	if existing := l.Get(id); existing != nil {
		old := Node(nil)
		if existing.Value != nil {
			old = existing.Value
		}
		existing.Value = value
		if value != nil {
			UpdateParents(existing, old, value)
		}
		return
	}
	part := NewLayoutQualifierPart(id, value)
	l.Parts = append(l.Parts, part)
	part.setParent(l)
	propagateRoot(part, l.root)
	if l.root != nil {
		l.root.register(part)
	}
}

func (l *LayoutQualifier) CloneInto(target *Root) Node {
	clone := &LayoutQualifier{}
	clone.self = clone
	for _, p := range l.Parts {
		c := p.CloneInto(target).(*LayoutQualifierPart)
		c.setParent(clone)
		clone.Parts = append(clone.Parts, c)
	}
	return clone
}
func (l *LayoutQualifier) replaceSelfIn(parent, self, replacement Node) error {
	slots := make([]Node, len(l.Parts))
	for i, p := range l.Parts {
		slots[i] = p
	}
	if err := replaceInSlots(&slots, self, replacement); err != nil {
		return err
	}
	l.Parts = l.Parts[:0]
	for _, s := range slots {
		l.Parts = append(l.Parts, s.(*LayoutQualifierPart))
	}
	return nil
}

// BuiltinType names one of GLSL's predeclared scalar/vector/matrix/
// sampler/image types (`float`, `vec4`, `mat3`, `sampler2D`, `void`, ...).
// BuiltinTypeSpecifier.Name holds this name raw rather than an
// exhaustive enum, since the builtin type set is large, fixed by the
// language version, and never itself rewritten.
type BuiltinTypeSpecifier struct {
	base
	Name string
}

func NewBuiltinTypeSpecifier(name string) *BuiltinTypeSpecifier {
	b := &BuiltinTypeSpecifier{Name: name}
	b.self = b
	return b
}

func (b *BuiltinTypeSpecifier) Kind() Kind          { return KindTypeSpecifier }
func (b *BuiltinTypeSpecifier) isTypeSpecifier()    {}
func (b *BuiltinTypeSpecifier) Children() []Node    { return nil }
func (b *BuiltinTypeSpecifier) CloneInto(target *Root) Node {
	return NewBuiltinTypeSpecifier(b.Name)
}
func (b *BuiltinTypeSpecifier) replaceSelfIn(parent, self, replacement Node) error {
	return newDetachmentErr("builtinTypeSpecifier has no children")
}

// StructSpecifier is a struct type definition, optionally named (an
// anonymous struct is legal only inline in a declaration).
type StructSpecifier struct {
	base
	Name    *Identifier // optional
	Members []*TypeAndInitDeclaration
}

func NewStructSpecifier(name *Identifier, members ...*TypeAndInitDeclaration) *StructSpecifier {
	s := &StructSpecifier{Name: name, Members: members}
	s.self = s
	return s
}

func (s *StructSpecifier) Kind() Kind       { return KindStructSpecifier }
func (s *StructSpecifier) isTypeSpecifier() {}
func (s *StructSpecifier) Children() []Node {
	out := nodesOf[Node](s.Name)
	for _, m := range s.Members {
		out = append(out, m)
	}
	return out
}
func (s *StructSpecifier) DeclaredNames() []string {
	if s.Name == nil {
		return nil
	}
	return []string{s.Name.Name()}
}
func (s *StructSpecifier) CloneInto(target *Root) Node {
	clone := &StructSpecifier{}
	clone.self = clone
	if s.Name != nil {
		clone.Name = s.Name.CloneInto(target).(*Identifier)
		clone.Name.setParent(clone)
	}
	for _, m := range s.Members {
		c := m.CloneInto(target).(*TypeAndInitDeclaration)
		c.setParent(clone)
		clone.Members = append(clone.Members, c)
	}
	return clone
}
func (s *StructSpecifier) replaceSelfIn(parent, self, replacement Node) error {
	if self == Node(s.Name) {
		if replacement == nil {
			s.Name = nil
		} else {
			s.Name = replacement.(*Identifier)
		}
		return nil
	}
	slots := make([]Node, len(s.Members))
	for i, m := range s.Members {
		slots[i] = m
	}
	if err := replaceInSlots(&slots, self, replacement); err != nil {
		return err
	}
	s.Members = s.Members[:0]
	for _, sl := range slots {
		s.Members = append(s.Members, sl.(*TypeAndInitDeclaration))
	}
	return nil
}

// ArraySpecifier is one or more `[size]`/`[]` dimensions trailing a
// declarator. An unsized dimension (Size nil) models GLSL's implicitly-
// sized arrays; moving one between declarator positions is spec.md §8
// scenario 5.
type ArraySpecifier struct {
	base
	Sizes []Expression // nil entries mean an unsized `[]` dimension
}

func NewArraySpecifier(sizes ...Expression) *ArraySpecifier {
	a := &ArraySpecifier{Sizes: sizes}
	a.self = a
	for _, s := range sizes {
		if s != nil {
			s.setParent(a)
		}
	}
	return a
}

func (a *ArraySpecifier) Kind() Kind { return KindArraySpecifier }
func (a *ArraySpecifier) Children() []Node {
	var out []Node
	for _, s := range a.Sizes {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

// Unsized reports whether any dimension of this specifier lacks an
// explicit size (the `float items[];` shape).
func (a *ArraySpecifier) Unsized() bool {
	for _, s := range a.Sizes {
		if s == nil {
			return true
		}
	}
	return false
}

func (a *ArraySpecifier) CloneInto(target *Root) Node {
	clone := &ArraySpecifier{Sizes: make([]Expression, len(a.Sizes))}
	clone.self = clone
	for i, s := range a.Sizes {
		if s == nil {
			continue
		}
		cs := s.CloneInto(target).(Expression)
		cs.setParent(clone)
		clone.Sizes[i] = cs
	}
	return clone
}
func (a *ArraySpecifier) replaceSelfIn(parent, self, replacement Node) error {
	for i, s := range a.Sizes {
		if Node(s) == self {
			if replacement == nil {
				a.Sizes[i] = nil
			} else {
				a.Sizes[i] = replacement.(Expression)
			}
			return nil
		}
	}
	return newDetachmentErr("arraySpecifier: child not found")
}
