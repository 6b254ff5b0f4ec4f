package ast

// DeclarationMember is one comma-separated member of a type-and-init
// declaration (or interface-block body, or function parameter list): a
// name, an optional array specifier, and an optional initializer.
type DeclarationMember struct {
	base
	Name  *Identifier
	Array *ArraySpecifier // optional
	Init  Expression      // optional
}

func NewDeclarationMember(name *Identifier) *DeclarationMember {
	m := &DeclarationMember{Name: name}
	m.self = m
	return m
}

func (m *DeclarationMember) Kind() Kind { return KindDeclarationMember }
func (m *DeclarationMember) Children() []Node {
	return nodesOf[Node](m.Name, m.Array, m.Init)
}

func (m *DeclarationMember) CloneInto(target *Root) Node {
	clone := &DeclarationMember{}
	clone.self = clone
	clone.Name = m.Name.CloneInto(target).(*Identifier)
	clone.Name.setParent(clone)
	if m.Array != nil {
		clone.Array = m.Array.CloneInto(target).(*ArraySpecifier)
		clone.Array.setParent(clone)
	}
	if m.Init != nil {
		clone.Init = m.Init.CloneInto(target).(Expression)
		clone.Init.setParent(clone)
	}
	return clone
}

func (m *DeclarationMember) replaceSelfIn(parent, self, replacement Node) error {
	switch self {
	case Node(m.Name):
		if replacement == nil {
			return newDetachmentErr("declarationMember: name slot is required")
		}
		m.Name = replacement.(*Identifier)
	case Node(m.Array):
		if replacement == nil {
			m.Array = nil
		} else {
			m.Array = replacement.(*ArraySpecifier)
		}
	case Node(m.Init):
		if replacement == nil {
			m.Init = nil
		} else {
			m.Init = replacement.(Expression)
		}
	default:
		return newDetachmentErr("declarationMember: child not found")
	}
	return nil
}

// TypeAndInitDeclaration is `type member, member = init, ...;` (spec.md
// §3.1): a shared type plus an ordered list of members.
type TypeAndInitDeclaration struct {
	base
	Type    *FullySpecifiedType
	Members []*DeclarationMember
}

func NewTypeAndInitDeclaration(t *FullySpecifiedType, members ...*DeclarationMember) *TypeAndInitDeclaration {
	d := &TypeAndInitDeclaration{Type: t, Members: members}
	d.self = d
	return d
}

func (d *TypeAndInitDeclaration) Kind() Kind { return KindTypeAndInitDeclaration }
func (d *TypeAndInitDeclaration) isDeclaration() {}
func (d *TypeAndInitDeclaration) Children() []Node {
	out := nodesOf[Node](d.Type)
	for _, m := range d.Members {
		out = append(out, m)
	}
	return out
}

// DeclaredNames returns every member name, so e.g. `uniform float a, b;`
// indexes both `a` and `b` in the external-declaration index.
func (d *TypeAndInitDeclaration) DeclaredNames() []string {
	names := make([]string, 0, len(d.Members))
	for _, m := range d.Members {
		if m.Name != nil {
			names = append(names, m.Name.Name())
		}
	}
	return names
}

func (d *TypeAndInitDeclaration) CloneInto(target *Root) Node {
	clone := &TypeAndInitDeclaration{}
	clone.self = clone
	clone.Type = d.Type.CloneInto(target).(*FullySpecifiedType)
	clone.Type.setParent(clone)
	for _, m := range d.Members {
		c := m.CloneInto(target).(*DeclarationMember)
		c.setParent(clone)
		clone.Members = append(clone.Members, c)
	}
	return clone
}

func (d *TypeAndInitDeclaration) replaceSelfIn(parent, self, replacement Node) error {
	if self == Node(d.Type) {
		if replacement == nil {
			return newDetachmentErr("typeAndInitDeclaration: type slot is required")
		}
		d.Type = replacement.(*FullySpecifiedType)
		return nil
	}
	slots := make([]Node, len(d.Members))
	for i, m := range d.Members {
		slots[i] = m
	}
	if err := replaceInSlots(&slots, self, replacement); err != nil {
		return err
	}
	d.Members = d.Members[:0]
	for _, s := range slots {
		d.Members = append(d.Members, s.(*DeclarationMember))
	}
	return nil
}

// InterfaceBlock is a named block of members qualified as
// uniform/in/out/buffer, optionally with an instance name and array
// (spec.md §3.1, GLOSSARY "Interface block declaration").
type InterfaceBlock struct {
	base
	Layout        *LayoutQualifier // optional
	Qualifier     *TypeQualifier
	BlockName     *Identifier
	Members       []*TypeAndInitDeclaration
	InstanceName  *Identifier     // optional
	InstanceArray *ArraySpecifier // optional
}

func NewInterfaceBlock(qualifier *TypeQualifier, blockName *Identifier, members ...*TypeAndInitDeclaration) *InterfaceBlock {
	ib := &InterfaceBlock{Qualifier: qualifier, BlockName: blockName, Members: members}
	ib.self = ib
	return ib
}

func (ib *InterfaceBlock) Kind() Kind         { return KindInterfaceBlock }
func (ib *InterfaceBlock) isDeclaration()     {}
func (ib *InterfaceBlock) Children() []Node {
	out := nodesOf[Node](ib.Layout, ib.Qualifier, ib.BlockName)
	for _, m := range ib.Members {
		out = append(out, m)
	}
	out = append(out, nodesOf[Node](ib.InstanceName, ib.InstanceArray)...)
	return out
}

// DeclaredNames returns the instance name if present, else the block name:
// that is the name other code refers to this block by.
func (ib *InterfaceBlock) DeclaredNames() []string {
	if ib.InstanceName != nil {
		return []string{ib.InstanceName.Name()}
	}
	if ib.BlockName != nil {
		return []string{ib.BlockName.Name()}
	}
	return nil
}

// MemberNames returns the block body's field names, used by phases that
// need to reconcile block members against separate top-level declarations
// (spec.md §8 scenario 1).
func (ib *InterfaceBlock) MemberNames() []string {
	var names []string
	for _, m := range ib.Members {
		names = append(names, m.DeclaredNames()...)
	}
	return names
}

func (ib *InterfaceBlock) CloneInto(target *Root) Node {
	clone := &InterfaceBlock{}
	clone.self = clone
	if ib.Layout != nil {
		clone.Layout = ib.Layout.CloneInto(target).(*LayoutQualifier)
		clone.Layout.setParent(clone)
	}
	clone.Qualifier = ib.Qualifier.CloneInto(target).(*TypeQualifier)
	clone.Qualifier.setParent(clone)
	clone.BlockName = ib.BlockName.CloneInto(target).(*Identifier)
	clone.BlockName.setParent(clone)
	for _, m := range ib.Members {
		c := m.CloneInto(target).(*TypeAndInitDeclaration)
		c.setParent(clone)
		clone.Members = append(clone.Members, c)
	}
	if ib.InstanceName != nil {
		clone.InstanceName = ib.InstanceName.CloneInto(target).(*Identifier)
		clone.InstanceName.setParent(clone)
	}
	if ib.InstanceArray != nil {
		clone.InstanceArray = ib.InstanceArray.CloneInto(target).(*ArraySpecifier)
		clone.InstanceArray.setParent(clone)
	}
	return clone
}

func (ib *InterfaceBlock) replaceSelfIn(parent, self, replacement Node) error {
	switch {
	case self == Node(ib.Layout):
		if replacement == nil {
			ib.Layout = nil
		} else {
			ib.Layout = replacement.(*LayoutQualifier)
		}
		return nil
	case self == Node(ib.Qualifier):
		if replacement == nil {
			return newDetachmentErr("interfaceBlock: qualifier slot is required")
		}
		ib.Qualifier = replacement.(*TypeQualifier)
		return nil
	case self == Node(ib.BlockName):
		if replacement == nil {
			return newDetachmentErr("interfaceBlock: block name slot is required")
		}
		ib.BlockName = replacement.(*Identifier)
		return nil
	case self == Node(ib.InstanceName):
		if replacement == nil {
			ib.InstanceName = nil
		} else {
			ib.InstanceName = replacement.(*Identifier)
		}
		return nil
	case self == Node(ib.InstanceArray):
		if replacement == nil {
			ib.InstanceArray = nil
		} else {
			ib.InstanceArray = replacement.(*ArraySpecifier)
		}
		return nil
	}
	slots := make([]Node, len(ib.Members))
	for i, m := range ib.Members {
		slots[i] = m
	}
	if err := replaceInSlots(&slots, self, replacement); err != nil {
		return err
	}
	ib.Members = ib.Members[:0]
	for _, s := range slots {
		ib.Members = append(ib.Members, s.(*TypeAndInitDeclaration))
	}
	return nil
}

// FunctionDeclaration is a function prototype: return type, name, and
// parameter list. Used both standalone (a forward declaration) and as the
// Proto half of a FunctionDefinition.
type FunctionDeclaration struct {
	base
	ReturnType *FullySpecifiedType
	Name       *Identifier
	Params     []*DeclarationMember
}

func NewFunctionDeclaration(ret *FullySpecifiedType, name *Identifier, params ...*DeclarationMember) *FunctionDeclaration {
	f := &FunctionDeclaration{ReturnType: ret, Name: name, Params: params}
	f.self = f
	return f
}

func (f *FunctionDeclaration) Kind() Kind     { return KindFunctionDeclaration }
func (f *FunctionDeclaration) isDeclaration() {}
func (f *FunctionDeclaration) Children() []Node {
	out := nodesOf[Node](f.ReturnType, f.Name)
	for _, p := range f.Params {
		out = append(out, p)
	}
	return out
}
func (f *FunctionDeclaration) DeclaredNames() []string {
	if f.Name == nil {
		return nil
	}
	return []string{f.Name.Name()}
}

func (f *FunctionDeclaration) CloneInto(target *Root) Node {
	clone := &FunctionDeclaration{}
	clone.self = clone
	clone.ReturnType = f.ReturnType.CloneInto(target).(*FullySpecifiedType)
	clone.ReturnType.setParent(clone)
	clone.Name = f.Name.CloneInto(target).(*Identifier)
	clone.Name.setParent(clone)
	for _, p := range f.Params {
		c := p.CloneInto(target).(*DeclarationMember)
		c.setParent(clone)
		clone.Params = append(clone.Params, c)
	}
	return clone
}

func (f *FunctionDeclaration) replaceSelfIn(parent, self, replacement Node) error {
	switch self {
	case Node(f.ReturnType):
		if replacement == nil {
			return newDetachmentErr("functionDeclaration: return type slot is required")
		}
		f.ReturnType = replacement.(*FullySpecifiedType)
		return nil
	case Node(f.Name):
		if replacement == nil {
			return newDetachmentErr("functionDeclaration: name slot is required")
		}
		f.Name = replacement.(*Identifier)
		return nil
	}
	slots := make([]Node, len(f.Params))
	for i, p := range f.Params {
		slots[i] = p
	}
	if err := replaceInSlots(&slots, self, replacement); err != nil {
		return err
	}
	f.Params = f.Params[:0]
	for _, s := range slots {
		f.Params = append(f.Params, s.(*DeclarationMember))
	}
	return nil
}

// PrecisionDeclaration is `precision highp float;`.
type PrecisionDeclaration struct {
	base
	Precision string
	Type      TypeSpecifier
}

func NewPrecisionDeclaration(precision string, t TypeSpecifier) *PrecisionDeclaration {
	p := &PrecisionDeclaration{Precision: precision, Type: t}
	p.self = p
	return p
}

func (p *PrecisionDeclaration) Kind() Kind         { return KindPrecisionDeclaration }
func (p *PrecisionDeclaration) isDeclaration()     {}
func (p *PrecisionDeclaration) Children() []Node   { return nodesOf[Node](p.Type) }
func (p *PrecisionDeclaration) CloneInto(target *Root) Node {
	clone := NewPrecisionDeclaration(p.Precision, p.Type.CloneInto(target).(TypeSpecifier))
	clone.Type.setParent(clone)
	return clone
}
func (p *PrecisionDeclaration) replaceSelfIn(parent, self, replacement Node) error {
	if self != Node(p.Type) || replacement == nil {
		return newDetachmentErr("precisionDeclaration: child not found")
	}
	p.Type = replacement.(TypeSpecifier)
	return nil
}

// EmptyDeclarationStmt is a bare `;` used as a Declaration.
type EmptyDeclarationStmt struct{ base }

func NewEmptyDeclarationStmt() *EmptyDeclarationStmt {
	e := &EmptyDeclarationStmt{}
	e.self = e
	return e
}

func (e *EmptyDeclarationStmt) Kind() Kind       { return KindEmptyDeclarationStmt }
func (e *EmptyDeclarationStmt) isDeclaration()   {}
func (e *EmptyDeclarationStmt) Children() []Node { return nil }
func (e *EmptyDeclarationStmt) CloneInto(target *Root) Node {
	return NewEmptyDeclarationStmt()
}
func (e *EmptyDeclarationStmt) replaceSelfIn(parent, self, replacement Node) error {
	return newDetachmentErr("emptyDeclarationStmt has no children")
}
