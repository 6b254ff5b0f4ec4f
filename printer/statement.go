package printer

import (
	"strings"

	"github.com/oxhq/glsltransform/ast"
)

func (p *printer) statement(s ast.Statement) {
	switch st := s.(type) {
	case *ast.CompoundStatement:
		p.writeLine("{")
		p.indent++
		for _, inner := range st.Statements {
			p.statement(inner)
		}
		p.indent--
		p.writeLine("}")
	case *ast.ExpressionStatement:
		p.writeLine(p.expression(st.Expr) + ";")
	case *ast.DeclarationStatement:
		p.writeLine(p.declaration(st.Decl) + ";")
	case *ast.SelectionStatement:
		p.selectionStatement(st)
	case *ast.SwitchStatement:
		p.switchStatement(st)
	case *ast.ForStatement:
		p.forStatement(st)
	case *ast.WhileStatement:
		p.writeLine("while (" + p.expression(st.Cond) + ")")
		p.statementAsBlockBody(st.Body)
	case *ast.DoWhileStatement:
		p.writeLine("do")
		p.statementAsBlockBody(st.Body)
		p.writeLine("while (" + p.expression(st.Cond) + ");")
	case *ast.JumpStatement:
		p.writeLine(p.jumpText(st))
	case *ast.CaseLabel:
		if st.Expr != nil {
			p.writeLine("case " + p.expression(st.Expr) + ":")
		} else {
			p.writeLine("default:")
		}
	case *ast.EmptyStatement:
		p.writeLine(";")
	}
}

// statementAsBlockBody prints a loop/conditional body without an extra
// indent bump when the body is already a brace block, matching how a
// CompoundStatement prints its own braces.
func (p *printer) statementAsBlockBody(s ast.Statement) {
	if _, ok := s.(*ast.CompoundStatement); ok {
		p.statement(s)
		return
	}
	p.indent++
	p.statement(s)
	p.indent--
}

func (p *printer) selectionStatement(s *ast.SelectionStatement) {
	p.writeLine("if (" + p.expression(s.Cond) + ")")
	p.statementAsBlockBody(s.Then)
	if s.Otherwise != nil {
		p.writeLine("else")
		p.statementAsBlockBody(s.Otherwise)
	}
}

func (p *printer) switchStatement(s *ast.SwitchStatement) {
	p.writeLine("switch (" + p.expression(s.Cond) + ") {")
	p.indent++
	for _, inner := range s.Body.Statements {
		p.statement(inner)
	}
	p.indent--
	p.writeLine("}")
}

func (p *printer) forStatement(s *ast.ForStatement) {
	var b strings.Builder
	b.WriteString("for (")
	if s.Init != nil {
		b.WriteString(strings.TrimSuffix(p.inlineStatement(s.Init), ";"))
	}
	b.WriteString("; ")
	if s.Cond != nil {
		b.WriteString(p.expression(s.Cond))
	}
	b.WriteString("; ")
	if s.Step != nil {
		b.WriteString(p.expression(s.Step))
	}
	b.WriteString(")")
	p.writeLine(b.String())
	p.statementAsBlockBody(s.Body)
}

// inlineStatement renders a Statement as a single fragment (no trailing
// newline, no indent), for embedding inside a for-loop's own header line.
func (p *printer) inlineStatement(s ast.Statement) string {
	switch st := s.(type) {
	case *ast.ExpressionStatement:
		return p.expression(st.Expr) + ";"
	case *ast.DeclarationStatement:
		return p.declaration(st.Decl) + ";"
	case *ast.EmptyStatement:
		return ";"
	default:
		return ";"
	}
}

func (p *printer) jumpText(s *ast.JumpStatement) string {
	switch s.Which {
	case ast.JumpBreak:
		return "break;"
	case ast.JumpContinue:
		return "continue;"
	case ast.JumpDiscard:
		return "discard;"
	case ast.JumpReturn:
		if s.Value != nil {
			return "return " + p.expression(s.Value) + ";"
		}
		return "return;"
	default:
		return ";"
	}
}
