package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/oxhq/glsltransform/ast"
)

// grammar is one recursive-descent parse attempt over a cursor. It
// collects the first error and aborts the current production rather
// than attempting error recovery, matching the "errors... thrown as a
// parse-cancellation error" half of spec.md §6.1. fail records that error
// whatever errorListener.throwOnError says, so a syntax error always ends
// the attempt and is returned; errors are never swallowed.
type grammar struct {
	c                 *cursor
	lst               *errorListener
	placeholderPrefix string
	err               error
}

func (g *grammar) fail(format string, args ...any) {
	if g.err != nil {
		return
	}
	tok := g.c.LA(1)
	msg := fmt.Sprintf(format, args...)
	g.err = g.lst.report(tok.Line, tok.Column, msg)
	if g.err == nil {
		g.err = &ParseError{Line: tok.Line, Column: tok.Column, Msg: msg}
	}
}

func (g *grammar) ok() bool { return g.err == nil }

func (g *grammar) at(text string) bool {
	// Reserved words lex as TokIdentifier just like ordinary names (the
	// lexer does not special-case keywords); spelling alone is enough to
	// disambiguate since GLSL reserves these words outright.
	return g.c.LA(1).Text == text
}

func (g *grammar) atKind(k TokenKind) bool { return g.c.LA(1).Kind == k }

// expect consumes and returns the next token if it matches text, else
// records an error.
func (g *grammar) expect(text string) *Token {
	if !g.ok() {
		return nil
	}
	if !g.at(text) {
		g.fail("expected %q, got %q", text, g.c.LA(1).Text)
		return nil
	}
	return g.c.Consume()
}

func (g *grammar) expectIdentifier() *Token {
	if !g.ok() {
		return nil
	}
	t := g.c.LA(1)
	if t.Kind != TokIdentifier || keywords[t.Text] {
		g.fail("expected identifier, got %q", t.Text)
		return nil
	}
	return g.c.Consume()
}

// isPlaceholder reports whether name is spelled with this grammar's
// placeholder prefix (default `__`), the marker for Matcher/Template
// holes (spec.md §4.D).
func (g *grammar) isPlaceholder(name string) bool {
	return strings.HasPrefix(name, g.placeholderPrefix)
}

// ===== Top level =====

func (g *grammar) translationUnit() *ast.TranslationUnit {
	tu := ast.NewTranslationUnit()
	for g.ok() && !g.atKind(TokEOF) {
		ed := g.externalDeclaration()
		if !g.ok() {
			break
		}
		if v, ok := ed.(*ast.VersionStatement); ok {
			tu.SetVersion(v)
			continue
		}
		tu.InsertExternal(len(tu.Externals), ed)
	}
	return tu
}

func (g *grammar) externalDeclaration() ast.ExternalDecl {
	if !g.ok() {
		return nil
	}
	t := g.c.LA(1)
	switch t.Kind {
	case TokVersionDirective:
		return g.versionStatement()
	case TokExtensionDirective:
		return g.extensionStatement()
	case TokPragmaDirective:
		g.c.Consume()
		return ast.NewPragma(strings.TrimSpace(strings.TrimPrefix(t.Text, "#pragma")))
	}
	if g.at(";") {
		g.c.Consume()
		return ast.NewEmptyDeclaration()
	}
	if g.at("layout") && g.isLayoutDefaults() {
		return g.layoutDefaults()
	}
	decl, fn := g.declaration()
	if !g.ok() {
		return nil
	}
	if fn != nil {
		return fn
	}
	return ast.NewExternalDeclaration(decl)
}

func (g *grammar) versionStatement() *ast.VersionStatement {
	t := g.c.Consume()
	body := strings.TrimSpace(strings.TrimPrefix(t.Text, "#version"))
	fields := strings.Fields(body)
	number := 0
	profile := ""
	if len(fields) > 0 {
		number, _ = strconv.Atoi(fields[0])
	}
	if len(fields) > 1 {
		profile = fields[1]
	}
	return ast.NewVersionStatement(number, profile)
}

func (g *grammar) extensionStatement() *ast.ExtensionStatement {
	t := g.c.Consume()
	body := strings.TrimSpace(strings.TrimPrefix(t.Text, "#extension"))
	parts := strings.SplitN(body, ":", 2)
	name := strings.TrimSpace(parts[0])
	behavior := ""
	if len(parts) > 1 {
		behavior = strings.TrimSpace(parts[1])
	}
	return ast.NewExtensionStatement(name, behavior)
}

// isLayoutDefaults distinguishes `layout(...) uniform;` (no declarator,
// a LayoutDefaults) from `layout(...) uniform Foo { ... };` /
// `layout(...) uniform float x;` (a qualified declaration) by looking
// ahead past the closing paren for a bare qualifier followed by `;`.
func (g *grammar) isLayoutDefaults() bool {
	mark := g.c.Mark()
	defer g.c.Seek(mark)
	g.c.Consume() // layout
	if g.c.LA(1).Text != "(" {
		return false
	}
	depth := 0
	for {
		t := g.c.LA(1)
		if t.Kind == TokEOF {
			return false
		}
		if t.Text == "(" {
			depth++
		} else if t.Text == ")" {
			depth--
			g.c.Consume()
			if depth == 0 {
				break
			}
			continue
		}
		g.c.Consume()
	}
	// skip one qualifier keyword
	if g.c.LA(1).Kind != TokIdentifier {
		return false
	}
	g.c.Consume()
	return g.c.LA(1).Text == ";"
}

func (g *grammar) layoutDefaults() *ast.LayoutDefaults {
	layout := g.layoutQualifier()
	var kindTok *Token
	if g.ok() && g.atKind(TokIdentifier) {
		kindTok = g.c.Consume()
	} else {
		g.fail("expected qualifier, got %q", g.c.LA(1).Text)
	}
	kind := g.qualifierKind(kindTok)
	q := ast.NewTypeQualifier(layout, kind)
	g.expect(";")
	return ast.NewLayoutDefaults(q)
}

func (g *grammar) layoutQualifier() *ast.LayoutQualifier {
	g.expect("layout")
	g.expect("(")
	var parts []*ast.LayoutQualifierPart
	for g.ok() && !g.at(")") {
		id := g.expectIdentifier()
		if !g.ok() {
			break
		}
		var value ast.Expression
		if g.at("=") {
			g.c.Consume()
			value = g.conditional()
		}
		parts = append(parts, ast.NewLayoutQualifierPart(id.Text, value))
		if g.at(",") {
			g.c.Consume()
			continue
		}
		break
	}
	g.expect(")")
	return ast.NewLayoutQualifier(parts...)
}

var qualifierKeywords = map[string]ast.QualifierKind{
	"const": ast.QualConst, "in": ast.QualIn, "out": ast.QualOut, "inout": ast.QualInOut,
	"uniform": ast.QualUniform, "buffer": ast.QualBuffer, "restrict": ast.QualRestrict, "shared": ast.QualShared,
	"flat": ast.QualFlat, "smooth": ast.QualSmooth, "noperspective": ast.QualNoperspective,
	"centroid": ast.QualCentroid, "sample": ast.QualSample, "invariant": ast.QualInvariant,
	"precise": ast.QualPrecise, "highp": ast.QualHighp, "mediump": ast.QualMediump, "lowp": ast.QualLowp,
}

func (g *grammar) qualifierKind(tok *Token) ast.QualifierKind {
	if tok == nil {
		return ""
	}
	if k, ok := qualifierKeywords[tok.Text]; ok {
		return k
	}
	g.fail("unknown qualifier %q", tok.Text)
	return ""
}

// ===== Declarations =====

// declaration parses a declaration. Because a function definition (a
// prototype plus a `{ ... }` body) is an ExternalDecl rather than a
// Declaration in its own right (spec.md §3.1), declaration reports one
// back through the second return value instead of forcing a type
// assertion trick on its caller.
func (g *grammar) declaration() (ast.Declaration, *ast.FunctionDefinition) {
	if g.at("precision") {
		return g.precisionDeclaration(), nil
	}
	if !g.ok() {
		return nil, nil
	}
	if isInterfaceBlockStart(g) {
		return g.interfaceBlock(), nil
	}

	qualifier := g.optionalTypeQualifier()
	spec := g.typeSpecifier()
	if !g.ok() {
		return nil, nil
	}
	fst := ast.NewFullySpecifiedType(qualifier, spec)
	if g.at("[") {
		fst.Array = g.arraySpecifier()
	}

	if g.atKind(TokIdentifier) {
		mark := g.c.Mark()
		name := g.c.Consume()
		if g.at("(") {
			// function declaration or definition
			proto := g.functionDeclarationTail(fst, name)
			if g.at("{") {
				body := g.compoundStatement()
				return nil, ast.NewFunctionDefinition(proto, body)
			}
			g.expect(";")
			return proto, nil
		}
		g.c.Seek(mark)
	}

	members := g.declarationMemberList()
	if _, isStruct := spec.(*ast.StructSpecifier); len(members) == 0 && !isStruct {
		g.fail("expected declarator name, got %q", g.c.LA(1).Text)
	}
	g.expect(";")
	return ast.NewTypeAndInitDeclaration(fst, members...), nil
}

func (g *grammar) precisionDeclaration() *ast.PrecisionDeclaration {
	g.expect("precision")
	precision := ""
	if g.ok() && g.atKind(TokIdentifier) {
		precision = g.c.Consume().Text
	} else {
		g.fail("expected precision qualifier, got %q", g.c.LA(1).Text)
	}
	spec := g.typeSpecifier()
	g.expect(";")
	return ast.NewPrecisionDeclaration(precision, spec)
}

func isInterfaceBlockStart(g *grammar) bool {
	mark := g.c.Mark()
	defer g.c.Seek(mark)
	if g.at("layout") {
		g.c.Consume()
		depth := 0
		for {
			t := g.c.LA(1)
			if t.Kind == TokEOF {
				return false
			}
			g.c.Consume()
			if t.Text == "(" {
				depth++
			} else if t.Text == ")" {
				if depth--; depth <= 0 {
					break
				}
			}
		}
	}
	for {
		t := g.c.LA(1)
		if t.Kind != TokIdentifier {
			return false
		}
		if _, isQual := qualifierKeywords[t.Text]; !isQual {
			break
		}
		g.c.Consume()
	}
	if g.c.LA(1).Kind != TokIdentifier {
		return false
	}
	g.c.Consume()
	return g.c.LA(1).Text == "{"
}

func (g *grammar) interfaceBlock() *ast.InterfaceBlock {
	var layout *ast.LayoutQualifier
	if g.at("layout") {
		layout = g.layoutQualifier()
	}
	var kinds []ast.QualifierKind
	for g.atKind(TokIdentifier) {
		if _, isQual := qualifierKeywords[g.c.LA(1).Text]; !isQual {
			break
		}
		kinds = append(kinds, g.qualifierKind(g.c.Consume()))
	}
	qualifier := ast.NewTypeQualifier(nil, kinds...)
	blockName := g.identifier()
	g.expect("{")
	var members []*ast.TypeAndInitDeclaration
	for g.ok() && !g.at("}") {
		memberType := g.fullySpecifiedType()
		memberMembers := g.declarationMemberList()
		g.expect(";")
		members = append(members, ast.NewTypeAndInitDeclaration(memberType, memberMembers...))
	}
	g.expect("}")
	ib := ast.NewInterfaceBlock(qualifier, blockName, members...)
	ib.Layout = layout
	if g.atKind(TokIdentifier) {
		ib.InstanceName = g.identifier()
		if g.at("[") {
			ib.InstanceArray = g.arraySpecifier()
		}
	}
	g.expect(";")
	return ib
}

func (g *grammar) fullySpecifiedType() *ast.FullySpecifiedType {
	q := g.optionalTypeQualifier()
	spec := g.typeSpecifier()
	fst := ast.NewFullySpecifiedType(q, spec)
	if g.at("[") {
		fst.Array = g.arraySpecifier()
	}
	return fst
}

func (g *grammar) optionalTypeQualifier() *ast.TypeQualifier {
	var layout *ast.LayoutQualifier
	if g.at("layout") {
		layout = g.layoutQualifier()
	}
	var kinds []ast.QualifierKind
	for g.atKind(TokIdentifier) {
		if _, isQual := qualifierKeywords[g.c.LA(1).Text]; !isQual {
			break
		}
		kinds = append(kinds, g.qualifierKind(g.c.Consume()))
	}
	if layout == nil && len(kinds) == 0 {
		return nil
	}
	return ast.NewTypeQualifier(layout, kinds...)
}

var builtinTypeNames = map[string]bool{
	"void": true, "bool": true, "int": true, "uint": true, "float": true, "double": true,
	"vec2": true, "vec3": true, "vec4": true, "ivec2": true, "ivec3": true, "ivec4": true,
	"uvec2": true, "uvec3": true, "uvec4": true, "bvec2": true, "bvec3": true, "bvec4": true,
	"mat2": true, "mat3": true, "mat4": true, "mat2x2": true, "mat2x3": true, "mat2x4": true,
	"mat3x2": true, "mat3x3": true, "mat3x4": true, "mat4x2": true, "mat4x3": true, "mat4x4": true,
	"sampler1D": true, "sampler2D": true, "sampler3D": true, "samplerCube": true,
	"sampler2DArray": true, "sampler2DShadow": true, "samplerCubeShadow": true,
	"image2D": true, "image3D": true, "imageCube": true,
}

func (g *grammar) typeSpecifier() ast.TypeSpecifier {
	if g.at("struct") {
		return g.structSpecifier()
	}
	if t := g.c.LA(1); g.ok() && t.Kind == TokIdentifier && builtinTypeNames[t.Text] {
		return ast.NewBuiltinTypeSpecifier(g.c.Consume().Text)
	}
	tok := g.expectIdentifier()
	if tok == nil {
		return nil
	}
	return ast.NewBuiltinTypeSpecifier(tok.Text)
}

func (g *grammar) structSpecifier() *ast.StructSpecifier {
	g.expect("struct")
	var name *ast.Identifier
	if g.atKind(TokIdentifier) {
		name = g.identifier()
	}
	g.expect("{")
	var members []*ast.TypeAndInitDeclaration
	for g.ok() && !g.at("}") {
		fst := g.fullySpecifiedType()
		ml := g.declarationMemberList()
		g.expect(";")
		members = append(members, ast.NewTypeAndInitDeclaration(fst, ml...))
	}
	g.expect("}")
	return ast.NewStructSpecifier(name, members...)
}

func (g *grammar) declarationMemberList() []*ast.DeclarationMember {
	var members []*ast.DeclarationMember
	for {
		if !g.atKind(TokIdentifier) {
			break
		}
		name := g.identifier()
		member := ast.NewDeclarationMember(name)
		if g.at("[") {
			member.Array = g.arraySpecifier()
		}
		if g.at("=") {
			g.c.Consume()
			member.Init = g.conditional()
		}
		members = append(members, member)
		if g.at(",") {
			g.c.Consume()
			continue
		}
		break
	}
	return members
}

func (g *grammar) arraySpecifier() *ast.ArraySpecifier {
	var sizes []ast.Expression
	for g.at("[") {
		g.c.Consume()
		if g.at("]") {
			sizes = append(sizes, nil)
		} else {
			sizes = append(sizes, g.conditional())
		}
		g.expect("]")
	}
	return ast.NewArraySpecifier(sizes...)
}

func (g *grammar) functionDeclarationTail(ret *ast.FullySpecifiedType, name *Token) *ast.FunctionDeclaration {
	g.expect("(")
	var params []*ast.DeclarationMember
	if !g.at(")") && !g.at("void") {
		for {
			_ = g.optionalTypeQualifier()
			_ = g.typeSpecifier()
			var pname *ast.Identifier
			if g.atKind(TokIdentifier) {
				pname = g.identifier()
			} else {
				pname = ast.NewIdentifier("")
			}
			member := ast.NewDeclarationMember(pname)
			if g.at("[") {
				member.Array = g.arraySpecifier()
			}
			params = append(params, member)
			if g.at(",") {
				g.c.Consume()
				continue
			}
			break
		}
	} else if g.at("void") {
		g.c.Consume()
	}
	g.expect(")")
	return ast.NewFunctionDeclaration(ret, ast.NewIdentifier(name.Text), params...)
}

func (g *grammar) identifier() *ast.Identifier {
	tok := g.expectIdentifier()
	if tok == nil {
		return ast.NewIdentifier("")
	}
	return ast.NewIdentifier(tok.Text)
}

// ===== Statements =====

func (g *grammar) statement() ast.Statement {
	if !g.ok() {
		return nil
	}
	switch {
	case g.at("{"):
		return g.compoundStatement()
	case g.at(";"):
		g.c.Consume()
		return ast.NewEmptyStatement()
	case g.at("if"):
		return g.selectionStatement()
	case g.at("switch"):
		return g.switchStatement()
	case g.at("for"):
		return g.forStatement()
	case g.at("while"):
		return g.whileStatement()
	case g.at("do"):
		return g.doWhileStatement()
	case g.at("break"):
		g.c.Consume()
		g.expect(";")
		return ast.NewJumpStatement(ast.JumpBreak, nil)
	case g.at("continue"):
		g.c.Consume()
		g.expect(";")
		return ast.NewJumpStatement(ast.JumpContinue, nil)
	case g.at("discard"):
		g.c.Consume()
		g.expect(";")
		return ast.NewJumpStatement(ast.JumpDiscard, nil)
	case g.at("return"):
		g.c.Consume()
		var val ast.Expression
		if !g.at(";") {
			val = g.expressionList()
		}
		g.expect(";")
		return ast.NewJumpStatement(ast.JumpReturn, val)
	case g.at("case"):
		g.c.Consume()
		e := g.expression()
		g.expect(":")
		return ast.NewCaseLabel(e)
	case g.at("default"):
		g.c.Consume()
		g.expect(":")
		return ast.NewCaseLabel(nil)
	}
	if looksLikeDeclaration(g) {
		decl, _ := g.declaration()
		if !g.ok() {
			return nil
		}
		return ast.NewDeclarationStatement(decl)
	}
	e := g.expressionList()
	g.expect(";")
	return ast.NewExpressionStatement(e)
}

func looksLikeDeclaration(g *grammar) bool {
	mark := g.c.Mark()
	defer g.c.Seek(mark)
	if g.at("layout") {
		return true
	}
	if _, isQual := qualifierKeywords[g.c.LA(1).Text]; isQual {
		return true
	}
	if g.c.LA(1).Text == "struct" {
		return true
	}
	if g.c.LA(1).Kind != TokIdentifier {
		return false
	}
	typeName := g.c.LA(1).Text
	if !builtinTypeNames[typeName] {
		// Could be a type reference (struct use) or a plain
		// identifier-led expression statement; require a second
		// identifier right after to disambiguate `Foo bar;` from
		// `foo = bar;` / `foo(bar);`.
		g.c.Consume()
		return g.c.LA(1).Kind == TokIdentifier
	}
	return true
}

func (g *grammar) compoundStatement() *ast.CompoundStatement {
	g.expect("{")
	var stmts []ast.Statement
	for g.ok() && !g.at("}") && !g.atKind(TokEOF) {
		s := g.statement()
		if !g.ok() {
			break
		}
		stmts = append(stmts, s)
	}
	g.expect("}")
	return ast.NewCompoundStatement(stmts...)
}

func (g *grammar) selectionStatement() *ast.SelectionStatement {
	g.expect("if")
	g.expect("(")
	cond := g.expression()
	g.expect(")")
	then := g.statement()
	var otherwise ast.Statement
	if g.at("else") {
		g.c.Consume()
		otherwise = g.statement()
	}
	return ast.NewSelectionStatement(cond, then, otherwise)
}

func (g *grammar) switchStatement() *ast.SwitchStatement {
	g.expect("switch")
	g.expect("(")
	cond := g.expression()
	g.expect(")")
	body := g.compoundStatement()
	return ast.NewSwitchStatement(cond, body)
}

func (g *grammar) forStatement() *ast.ForStatement {
	g.expect("for")
	g.expect("(")
	var init ast.Statement
	if g.at(";") {
		g.c.Consume()
		init = ast.NewEmptyStatement()
	} else if looksLikeDeclaration(g) {
		decl, _ := g.declaration()
		init = ast.NewDeclarationStatement(decl)
	} else {
		e := g.expressionList()
		g.expect(";")
		init = ast.NewExpressionStatement(e)
	}
	var cond ast.Expression
	if !g.at(";") {
		cond = g.expression()
	}
	g.expect(";")
	var step ast.Expression
	if !g.at(")") {
		step = g.expressionList()
	}
	g.expect(")")
	body := g.statement()
	return ast.NewForStatement(init, cond, step, body)
}

func (g *grammar) whileStatement() *ast.WhileStatement {
	g.expect("while")
	g.expect("(")
	cond := g.expression()
	g.expect(")")
	body := g.statement()
	return ast.NewWhileStatement(cond, body)
}

func (g *grammar) doWhileStatement() *ast.DoWhileStatement {
	g.expect("do")
	body := g.statement()
	g.expect("while")
	g.expect("(")
	cond := g.expression()
	g.expect(")")
	g.expect(";")
	return ast.NewDoWhileStatement(body, cond)
}

// ===== Expressions =====
// Precedence lowest-to-highest: sequence, assignment, conditional,
// logicalOr, logicalXor, logicalAnd, bitOr, bitXor, bitAnd, equality,
// relational, shift, additive, multiplicative, unary, postfix, primary.

func (g *grammar) expressionList() ast.Expression {
	first := g.expression()
	if !g.at(",") {
		return first
	}
	items := []ast.Expression{first}
	for g.at(",") {
		g.c.Consume()
		items = append(items, g.expression())
	}
	return ast.NewSequenceExpression(items...)
}

func (g *grammar) expression() ast.Expression { return g.assignment() }

var assignOps = map[string]ast.BinaryOp{
	"=": ast.BinAssign, "+=": ast.BinAddAssign, "-=": ast.BinSubAssign,
	"*=": ast.BinMulAssign, "/=": ast.BinDivAssign, "%=": ast.BinModAssign,
	"<<=": ast.BinLShiftAssign, ">>=": ast.BinRShiftAssign,
	"&=": ast.BinAndAssign, "^=": ast.BinXorAssign, "|=": ast.BinOrAssign,
}

func (g *grammar) assignment() ast.Expression {
	left := g.conditional()
	if op, ok := assignOps[g.c.LA(1).Text]; ok && g.c.LA(1).Kind == TokPunct {
		g.c.Consume()
		right := g.assignment()
		return ast.NewBinaryExpression(op, left, right)
	}
	return left
}

func (g *grammar) conditional() ast.Expression {
	cond := g.logicalOr()
	if g.at("?") {
		g.c.Consume()
		then := g.expression()
		g.expect(":")
		otherwise := g.assignment()
		return ast.NewConditionalExpression(cond, then, otherwise)
	}
	return cond
}

func (g *grammar) binaryLevel(next func() ast.Expression, ops map[string]ast.BinaryOp) ast.Expression {
	left := next()
	for {
		op, ok := ops[g.c.LA(1).Text]
		if !ok || g.c.LA(1).Kind != TokPunct {
			return left
		}
		g.c.Consume()
		right := next()
		left = ast.NewBinaryExpression(op, left, right)
	}
}

func (g *grammar) logicalOr() ast.Expression {
	return g.binaryLevel(g.logicalXor, map[string]ast.BinaryOp{"||": ast.BinLogOr})
}
func (g *grammar) logicalXor() ast.Expression {
	return g.binaryLevel(g.logicalAnd, map[string]ast.BinaryOp{"^^": ast.BinLogXor})
}
func (g *grammar) logicalAnd() ast.Expression {
	return g.binaryLevel(g.bitOr, map[string]ast.BinaryOp{"&&": ast.BinLogAnd})
}
func (g *grammar) bitOr() ast.Expression {
	return g.binaryLevel(g.bitXor, map[string]ast.BinaryOp{"|": ast.BinBitOr})
}
func (g *grammar) bitXor() ast.Expression {
	return g.binaryLevel(g.bitAnd, map[string]ast.BinaryOp{"^": ast.BinBitXor})
}
func (g *grammar) bitAnd() ast.Expression {
	return g.binaryLevel(g.equality, map[string]ast.BinaryOp{"&": ast.BinBitAnd})
}
func (g *grammar) equality() ast.Expression {
	return g.binaryLevel(g.relational, map[string]ast.BinaryOp{"==": ast.BinEq, "!=": ast.BinNe})
}
func (g *grammar) relational() ast.Expression {
	return g.binaryLevel(g.shift, map[string]ast.BinaryOp{
		"<": ast.BinLt, ">": ast.BinGt, "<=": ast.BinLe, ">=": ast.BinGe,
	})
}
func (g *grammar) shift() ast.Expression {
	return g.binaryLevel(g.additive, map[string]ast.BinaryOp{"<<": ast.BinLShift, ">>": ast.BinRShift})
}
func (g *grammar) additive() ast.Expression {
	return g.binaryLevel(g.multiplicative, map[string]ast.BinaryOp{"+": ast.BinAdd, "-": ast.BinSub})
}
func (g *grammar) multiplicative() ast.Expression {
	return g.binaryLevel(g.unary, map[string]ast.BinaryOp{"*": ast.BinMul, "/": ast.BinDiv, "%": ast.BinMod})
}

func (g *grammar) unary() ast.Expression {
	switch g.c.LA(1).Text {
	case "+":
		g.c.Consume()
		return ast.NewUnaryExpression(ast.UnaryPlus, g.unary())
	case "-":
		g.c.Consume()
		return ast.NewUnaryExpression(ast.UnaryMinus, g.unary())
	case "!":
		g.c.Consume()
		return ast.NewUnaryExpression(ast.UnaryNot, g.unary())
	case "~":
		g.c.Consume()
		return ast.NewUnaryExpression(ast.UnaryBitNot, g.unary())
	case "++":
		g.c.Consume()
		return ast.NewPrefixExpression(ast.PrefixIncrement, g.unary())
	case "--":
		g.c.Consume()
		return ast.NewPrefixExpression(ast.PrefixDecrement, g.unary())
	}
	return g.postfix()
}

func (g *grammar) postfix() ast.Expression {
	expr := g.primary()
	for {
		switch {
		case g.at("."):
			g.c.Consume()
			member := g.expectIdentifier()
			if member == nil {
				return expr
			}
			if g.at("(") {
				args := g.argumentList()
				expr = ast.NewMethodCallExpression(expr, member.Text, args...)
			} else {
				expr = ast.NewMemberAccessExpression(expr, member.Text)
			}
		case g.at("["):
			g.c.Consume()
			idx := g.expression()
			g.expect("]")
			expr = ast.NewArrayAccessExpression(expr, idx)
		case g.at("++"):
			g.c.Consume()
			expr = ast.NewPostfixExpression(ast.PostfixIncrement, expr)
		case g.at("--"):
			g.c.Consume()
			expr = ast.NewPostfixExpression(ast.PostfixDecrement, expr)
		default:
			return expr
		}
	}
}

func (g *grammar) argumentList() []ast.Expression {
	g.expect("(")
	var args []ast.Expression
	if !g.at(")") {
		if g.at("void") {
			g.c.Consume()
		} else {
			for {
				args = append(args, g.assignment())
				if g.at(",") {
					g.c.Consume()
					continue
				}
				break
			}
		}
	}
	g.expect(")")
	return args
}

func (g *grammar) primary() ast.Expression {
	t := g.c.LA(1)
	switch {
	case t.Text == "(":
		g.c.Consume()
		inner := g.expression()
		g.expect(")")
		return ast.NewGroupingExpression(inner)
	case t.Text == "true":
		g.c.Consume()
		return ast.NewLiteralExpression(ast.LiteralBool, "true")
	case t.Text == "false":
		g.c.Consume()
		return ast.NewLiteralExpression(ast.LiteralBool, "false")
	case t.Kind == TokIntLiteral:
		g.c.Consume()
		return ast.NewLiteralExpression(ast.LiteralInt, t.Text)
	case t.Kind == TokUintLiteral:
		g.c.Consume()
		return ast.NewLiteralExpression(ast.LiteralUint, t.Text)
	case t.Kind == TokFloatLiteral:
		g.c.Consume()
		return ast.NewLiteralExpression(ast.LiteralFloat, t.Text)
	case t.Kind == TokStringLiteral:
		g.c.Consume()
		return ast.NewLiteralExpression(ast.LiteralString, t.Text)
	case t.Kind == TokIdentifier:
		g.c.Consume()
		if g.at("(") {
			args := g.argumentList()
			return ast.NewFunctionCallExpression(t.Text, args...)
		}
		return ast.NewReferenceExpression(t.Text)
	}
	g.fail("unexpected token %q", t.Text)
	return ast.NewLiteralExpression(ast.LiteralInt, "0")
}
