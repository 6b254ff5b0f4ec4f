package ast

// ExternalDeclaration wraps a Declaration at the top level of a
// TranslationUnit (the "declaration-wrapping" variant of spec.md §3.1).
type ExternalDeclaration struct {
	base
	Decl Declaration
}

func NewExternalDeclaration(decl Declaration) *ExternalDeclaration {
	e := &ExternalDeclaration{Decl: decl}
	e.self = e
	return e
}

func (e *ExternalDeclaration) Kind() Kind       { return KindExternalDeclaration }
func (e *ExternalDeclaration) Children() []Node { return nodesOf[Node](e.Decl) }
func (e *ExternalDeclaration) isExternalDecl()  {}

// DeclaredNames delegates to the wrapped Declaration so the Root's
// external-declaration index can associate top-level names (a uniform, an
// interface block's instance or block name) with this wrapping node.
func (e *ExternalDeclaration) DeclaredNames() []string {
	if dn, ok := e.Decl.(declaredNamer); ok {
		return dn.DeclaredNames()
	}
	return nil
}

func (e *ExternalDeclaration) CloneInto(target *Root) Node {
	clone := NewExternalDeclaration(e.Decl.CloneInto(target).(Declaration))
	clone.Decl.setParent(clone)
	return clone
}

func (e *ExternalDeclaration) replaceSelfIn(parent Node, self, replacement Node) error {
	if self != Node(e.Decl) {
		return newDetachmentErr("externalDeclaration: child not found")
	}
	if replacement == nil {
		return newDetachmentErr("externalDeclaration: declaration slot is required")
	}
	e.Decl = replacement.(Declaration)
	return nil
}

// FunctionDefinition pairs a function prototype (itself a
// FunctionDeclaration) with its compound-statement body.
type FunctionDefinition struct {
	base
	Proto *FunctionDeclaration
	Body  *CompoundStatement
}

func NewFunctionDefinition(proto *FunctionDeclaration, body *CompoundStatement) *FunctionDefinition {
	f := &FunctionDefinition{Proto: proto, Body: body}
	f.self = f
	return f
}

func (f *FunctionDefinition) Kind() Kind       { return KindFunctionDefinition }
func (f *FunctionDefinition) Children() []Node { return nodesOf[Node](f.Proto, f.Body) }
func (f *FunctionDefinition) isExternalDecl()  {}

func (f *FunctionDefinition) DeclaredNames() []string {
	if f.Proto == nil || f.Proto.Name == nil {
		return nil
	}
	return []string{f.Proto.Name.Name()}
}

func (f *FunctionDefinition) CloneInto(target *Root) Node {
	clone := NewFunctionDefinition(
		f.Proto.CloneInto(target).(*FunctionDeclaration),
		f.Body.CloneInto(target).(*CompoundStatement),
	)
	clone.Proto.setParent(clone)
	clone.Body.setParent(clone)
	return clone
}

func (f *FunctionDefinition) replaceSelfIn(parent Node, self, replacement Node) error {
	switch self {
	case Node(f.Proto):
		if replacement == nil {
			return newDetachmentErr("functionDefinition: prototype slot is required")
		}
		f.Proto = replacement.(*FunctionDeclaration)
	case Node(f.Body):
		if replacement == nil {
			return newDetachmentErr("functionDefinition: body slot is required")
		}
		f.Body = replacement.(*CompoundStatement)
	default:
		return newDetachmentErr("functionDefinition: child not found")
	}
	return nil
}

// LayoutDefaults sets defaults for a storage qualifier, e.g.
// `layout(std140) uniform;`.
type LayoutDefaults struct {
	base
	Qualifier *TypeQualifier
}

func NewLayoutDefaults(q *TypeQualifier) *LayoutDefaults {
	l := &LayoutDefaults{Qualifier: q}
	l.self = l
	return l
}

func (l *LayoutDefaults) Kind() Kind       { return KindLayoutDefaults }
func (l *LayoutDefaults) Children() []Node { return nodesOf[Node](l.Qualifier) }
func (l *LayoutDefaults) isExternalDecl()  {}
func (l *LayoutDefaults) CloneInto(target *Root) Node {
	clone := NewLayoutDefaults(l.Qualifier.CloneInto(target).(*TypeQualifier))
	clone.Qualifier.setParent(clone)
	return clone
}
func (l *LayoutDefaults) replaceSelfIn(parent Node, self, replacement Node) error {
	if self != Node(l.Qualifier) || replacement == nil {
		return newDetachmentErr("layoutDefaults: child not found")
	}
	l.Qualifier = replacement.(*TypeQualifier)
	return nil
}

// Pragma is a `#pragma ...` directive, stored as raw text since its
// contents are not part of the grammar proper.
type Pragma struct {
	base
	Text string
}

func NewPragma(text string) *Pragma {
	p := &Pragma{Text: text}
	p.self = p
	return p
}

func (p *Pragma) Kind() Kind               { return KindPragma }
func (p *Pragma) Children() []Node         { return nil }
func (p *Pragma) isExternalDecl()          {}
func (p *Pragma) CloneInto(target *Root) Node { return NewPragma(p.Text) }
func (p *Pragma) replaceSelfIn(parent, self, replacement Node) error {
	return newDetachmentErr("pragma has no children")
}

// ExtensionStatement is `#extension name : behavior;`.
type ExtensionStatement struct {
	base
	Name     string
	Behavior string
}

func NewExtensionStatement(name, behavior string) *ExtensionStatement {
	e := &ExtensionStatement{Name: name, Behavior: behavior}
	e.self = e
	return e
}

func (e *ExtensionStatement) Kind() Kind       { return KindExtensionStatement }
func (e *ExtensionStatement) Children() []Node { return nil }
func (e *ExtensionStatement) isExternalDecl()  {}
func (e *ExtensionStatement) CloneInto(target *Root) Node {
	return NewExtensionStatement(e.Name, e.Behavior)
}
func (e *ExtensionStatement) replaceSelfIn(parent, self, replacement Node) error {
	return newDetachmentErr("extensionStatement has no children")
}

// EmptyDeclaration is a bare `;` at the top level.
type EmptyDeclaration struct{ base }

func NewEmptyDeclaration() *EmptyDeclaration {
	e := &EmptyDeclaration{}
	e.self = e
	return e
}

func (e *EmptyDeclaration) Kind() Kind               { return KindEmptyDeclaration }
func (e *EmptyDeclaration) Children() []Node         { return nil }
func (e *EmptyDeclaration) isExternalDecl()          {}
func (e *EmptyDeclaration) CloneInto(target *Root) Node { return NewEmptyDeclaration() }
func (e *EmptyDeclaration) replaceSelfIn(parent, self, replacement Node) error {
	return newDetachmentErr("emptyDeclaration has no children")
}

// VersionStatement is the optional `#version N profile` line.
type VersionStatement struct {
	base
	Number  int
	Profile string // "", "core", "compatibility", "es"
}

func NewVersionStatement(number int, profile string) *VersionStatement {
	v := &VersionStatement{Number: number, Profile: profile}
	v.self = v
	return v
}

func (v *VersionStatement) Kind() Kind       { return KindVersionStatement }
func (v *VersionStatement) Children() []Node { return nil }
func (v *VersionStatement) isExternalDecl()  {}
func (v *VersionStatement) CloneInto(target *Root) Node {
	return NewVersionStatement(v.Number, v.Profile)
}
func (v *VersionStatement) replaceSelfIn(parent, self, replacement Node) error {
	return newDetachmentErr("versionStatement has no children")
}
