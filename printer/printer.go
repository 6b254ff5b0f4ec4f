// Package printer serializes a GLSL AST back to source text. It is a
// canonicalizing pretty-printer rather than a lossless unparser: the AST
// built by the parser package does not retain original whitespace or
// comment trivia, so re-printing always produces the same normalized
// layout regardless of how the source was originally formatted. This is
// what makes printing idempotent across a parse round-trip (spec.md §4.G,
// §8 P4): two passes of parse-then-print always agree, because both
// start from the same canonical form.
package printer

import (
	"strconv"
	"strings"

	"github.com/oxhq/glsltransform/ast"
)

const indentUnit = "    "

// Print renders unit as GLSL source.
func Print(unit *ast.TranslationUnit) string {
	p := &printer{}
	p.translationUnit(unit)
	return p.buf.String()
}

// PrintExpression renders a single expression the same way Print renders
// one inline, e.g. for recording a call argument's source text outside of
// a full translation unit (spec.md §8 scenario 6's job-parameters
// accumulator).
func PrintExpression(e ast.Expression) string {
	p := &printer{}
	return p.expression(e)
}

type printer struct {
	buf    strings.Builder
	indent int
}

func (p *printer) writeLine(s string) {
	p.buf.WriteString(strings.Repeat(indentUnit, p.indent))
	p.buf.WriteString(s)
	p.buf.WriteByte('\n')
}

func (p *printer) translationUnit(unit *ast.TranslationUnit) {
	if unit.Version != nil {
		p.writeLine(versionText(unit.Version))
		p.buf.WriteByte('\n')
	}
	lastWasDirective := false
	for _, ext := range unit.Externals {
		isDirective := isDirectiveExternal(ext)
		if !isDirective && lastWasDirective {
			p.buf.WriteByte('\n')
		}
		p.external(ext)
		lastWasDirective = isDirective
	}
}

func isDirectiveExternal(n ast.ExternalDecl) bool {
	switch n.(type) {
	case *ast.Pragma, *ast.ExtensionStatement, *ast.LayoutDefaults:
		return true
	default:
		return false
	}
}

func versionText(v *ast.VersionStatement) string {
	if v.Profile == "" {
		return "#version " + strconv.Itoa(v.Number)
	}
	return "#version " + strconv.Itoa(v.Number) + " " + v.Profile
}

func (p *printer) external(n ast.ExternalDecl) {
	switch e := n.(type) {
	case *ast.ExternalDeclaration:
		p.writeLine(p.declaration(e.Decl) + ";")
	case *ast.FunctionDefinition:
		p.functionDefinition(e)
	case *ast.LayoutDefaults:
		p.writeLine(p.typeQualifier(e.Qualifier) + ";")
	case *ast.Pragma:
		p.writeLine("#pragma " + e.Text)
	case *ast.ExtensionStatement:
		p.writeLine("#extension " + e.Name + " : " + e.Behavior)
	case *ast.EmptyDeclaration:
		p.writeLine(";")
	}
}

func (p *printer) functionDefinition(f *ast.FunctionDefinition) {
	p.writeLine(p.functionDeclaration(f.Proto) + " {")
	p.indent++
	for _, s := range f.Body.Statements {
		p.statement(s)
	}
	p.indent--
	p.writeLine("}")
}

func (p *printer) functionDeclaration(f *ast.FunctionDeclaration) string {
	var b strings.Builder
	b.WriteString(p.fullySpecifiedType(f.ReturnType))
	b.WriteByte(' ')
	b.WriteString(f.Name.Name())
	b.WriteByte('(')
	for i, param := range f.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.declarationMemberAsParam(param))
	}
	b.WriteByte(')')
	return b.String()
}

func (p *printer) declarationMemberAsParam(m *ast.DeclarationMember) string {
	var b strings.Builder
	b.WriteString(m.Name.Name())
	if m.Array != nil {
		b.WriteString(p.arraySpecifier(m.Array))
	}
	return b.String()
}

func (p *printer) declaration(d ast.Declaration) string {
	switch decl := d.(type) {
	case *ast.TypeAndInitDeclaration:
		return p.typeAndInitDeclaration(decl)
	case *ast.InterfaceBlock:
		return p.interfaceBlock(decl)
	case *ast.FunctionDeclaration:
		return p.functionDeclaration(decl)
	case *ast.PrecisionDeclaration:
		return "precision " + decl.Precision + " " + p.typeSpecifier(decl.Type)
	case *ast.EmptyDeclarationStmt:
		return ""
	default:
		return ""
	}
}

func (p *printer) typeAndInitDeclaration(d *ast.TypeAndInitDeclaration) string {
	var b strings.Builder
	b.WriteString(p.fullySpecifiedType(d.Type))
	for i, m := range d.Members {
		if i == 0 {
			b.WriteByte(' ')
		} else {
			b.WriteString(", ")
		}
		b.WriteString(p.declarationMember(m))
	}
	return b.String()
}

func (p *printer) declarationMember(m *ast.DeclarationMember) string {
	var b strings.Builder
	b.WriteString(m.Name.Name())
	if m.Array != nil {
		b.WriteString(p.arraySpecifier(m.Array))
	}
	if m.Init != nil {
		b.WriteString(" = ")
		b.WriteString(p.expression(m.Init))
	}
	return b.String()
}

func (p *printer) interfaceBlock(ib *ast.InterfaceBlock) string {
	var b strings.Builder
	if ib.Layout != nil {
		b.WriteString(p.layoutQualifier(ib.Layout))
		b.WriteByte(' ')
	}
	b.WriteString(p.typeQualifier(ib.Qualifier))
	b.WriteByte(' ')
	b.WriteString(ib.BlockName.Name())
	b.WriteString(" {\n")
	p.indent++
	for _, m := range ib.Members {
		b.WriteString(strings.Repeat(indentUnit, p.indent))
		b.WriteString(p.typeAndInitDeclaration(m) + ";\n")
	}
	p.indent--
	b.WriteString(strings.Repeat(indentUnit, p.indent))
	b.WriteByte('}')
	if ib.InstanceName != nil {
		b.WriteByte(' ')
		b.WriteString(ib.InstanceName.Name())
		if ib.InstanceArray != nil {
			b.WriteString(p.arraySpecifier(ib.InstanceArray))
		}
	}
	return b.String()
}

func (p *printer) fullySpecifiedType(t *ast.FullySpecifiedType) string {
	var b strings.Builder
	if t.Qualifier != nil {
		b.WriteString(p.typeQualifier(t.Qualifier))
		b.WriteByte(' ')
	}
	b.WriteString(p.typeSpecifier(t.Spec))
	if t.Array != nil {
		b.WriteString(p.arraySpecifier(t.Array))
	}
	return b.String()
}

func (p *printer) typeQualifier(q *ast.TypeQualifier) string {
	var parts []string
	if q.Layout != nil {
		parts = append(parts, p.layoutQualifier(q.Layout))
	}
	for _, k := range q.Kinds {
		parts = append(parts, string(k))
	}
	return strings.Join(parts, " ")
}

func (p *printer) layoutQualifier(l *ast.LayoutQualifier) string {
	parts := make([]string, len(l.Parts))
	for i, part := range l.Parts {
		if part.Value != nil {
			parts[i] = part.ID + " = " + p.expression(part.Value)
		} else {
			parts[i] = part.ID
		}
	}
	return "layout(" + strings.Join(parts, ", ") + ")"
}

func (p *printer) typeSpecifier(t ast.TypeSpecifier) string {
	switch ts := t.(type) {
	case *ast.BuiltinTypeSpecifier:
		return ts.Name
	case *ast.StructSpecifier:
		return p.structSpecifier(ts)
	default:
		return ""
	}
}

func (p *printer) structSpecifier(s *ast.StructSpecifier) string {
	var b strings.Builder
	b.WriteString("struct")
	if s.Name != nil {
		b.WriteByte(' ')
		b.WriteString(s.Name.Name())
	}
	b.WriteString(" {\n")
	p.indent++
	for _, m := range s.Members {
		b.WriteString(strings.Repeat(indentUnit, p.indent))
		b.WriteString(p.typeAndInitDeclaration(m) + ";\n")
	}
	p.indent--
	b.WriteString(strings.Repeat(indentUnit, p.indent))
	b.WriteByte('}')
	return b.String()
}

func (p *printer) arraySpecifier(a *ast.ArraySpecifier) string {
	var b strings.Builder
	for _, size := range a.Sizes {
		b.WriteByte('[')
		if size != nil {
			b.WriteString(p.expression(size))
		}
		b.WriteByte(']')
	}
	return b.String()
}
