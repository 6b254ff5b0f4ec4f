package parser

import (
	"testing"

	"github.com/oxhq/glsltransform/ast"
)

func mustParse(t *testing.T, src string) (*ast.Root, *ast.TranslationUnit) {
	t.Helper()
	p := NewParser()
	root, tu, err := p.ParseTranslationUnit(src, RootSupplierDefault)
	if err != nil {
		t.Fatalf("parse error for %q: %v", src, err)
	}
	return root, tu
}

func TestParseVersionStatement(t *testing.T) {
	_, tu := mustParse(t, "#version 300 es\n")
	if tu.Version == nil {
		t.Fatal("expected Version to be set")
	}
	if tu.Version.Number != 300 || tu.Version.Profile != "es" {
		t.Errorf("expected 300/es, got %d/%q", tu.Version.Number, tu.Version.Profile)
	}
	if len(tu.Externals) != 0 {
		t.Errorf("version statement must not also land in Externals, got %d entries", len(tu.Externals))
	}
}

func TestParseUniformDeclaration(t *testing.T) {
	root, tu := mustParse(t, "uniform vec4 uColor;")
	if len(tu.Externals) != 1 {
		t.Fatalf("expected 1 external decl, got %d", len(tu.Externals))
	}
	ed, ok := tu.Externals[0].(*ast.ExternalDeclaration)
	if !ok {
		t.Fatalf("expected *ast.ExternalDeclaration, got %T", tu.Externals[0])
	}
	decl, ok := ed.Decl.(*ast.TypeAndInitDeclaration)
	if !ok {
		t.Fatalf("expected *ast.TypeAndInitDeclaration, got %T", ed.Decl)
	}
	if !decl.Type.Qualifier.Has(ast.QualUniform) {
		t.Error("expected uniform qualifier")
	}
	spec, ok := decl.Type.Spec.(*ast.BuiltinTypeSpecifier)
	if !ok || spec.Name != "vec4" {
		t.Errorf("expected builtin vec4, got %#v", decl.Type.Spec)
	}
	if len(decl.Members) != 1 || decl.Members[0].Name.Name() != "uColor" {
		t.Fatalf("expected single member uColor, got %#v", decl.Members)
	}

	ids := root.GetIdentifiers("uColor")
	if len(ids) != 1 {
		t.Errorf("expected uColor indexed once, got %d", len(ids))
	}
	if decl.Members[0].Name.Parent() == nil {
		t.Error("member identifier parent not wired")
	}
}

func TestParseMultiMemberDeclarationWithArray(t *testing.T) {
	_, tu := mustParse(t, "out vec3 vNormal, vTangent[3];")
	ed := tu.Externals[0].(*ast.ExternalDeclaration)
	decl := ed.Decl.(*ast.TypeAndInitDeclaration)
	if len(decl.Members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(decl.Members))
	}
	if decl.Members[0].Array != nil {
		t.Error("vNormal should have no array specifier")
	}
	arr := decl.Members[1].Array
	if arr == nil || len(arr.Sizes) != 1 {
		t.Fatalf("expected vTangent to carry one array dimension, got %#v", arr)
	}
	lit, ok := arr.Sizes[0].(*ast.LiteralExpression)
	if !ok || lit.Raw != "3" {
		t.Errorf("expected literal size 3, got %#v", arr.Sizes[0])
	}
	if arr.Sizes[0].Parent() != arr {
		t.Error("array size expression parent not wired to its ArraySpecifier")
	}
}

func TestParseUnsizedArray(t *testing.T) {
	_, tu := mustParse(t, "buffer Particles { float data[]; };")
	ed := tu.Externals[0].(*ast.ExternalDeclaration)
	ib := ed.Decl.(*ast.InterfaceBlock)
	if !ib.Qualifier.Has(ast.QualBuffer) {
		t.Error("expected buffer qualifier")
	}
	if ib.BlockName.Name() != "Particles" {
		t.Errorf("expected block name Particles, got %q", ib.BlockName.Name())
	}
	if len(ib.Members) != 1 {
		t.Fatalf("expected 1 member line, got %d", len(ib.Members))
	}
	member := ib.Members[0]
	if spec, ok := member.Type.Spec.(*ast.BuiltinTypeSpecifier); !ok || spec.Name != "float" {
		t.Errorf("expected float member type, got %#v", member.Type.Spec)
	}
	arr := member.Members[0].Array
	if arr == nil || !arr.Unsized() {
		t.Fatalf("expected data[] to be unsized, got %#v", arr)
	}
}

func TestParseInterfaceBlockWithInstanceNameAndArray(t *testing.T) {
	_, tu := mustParse(t, "uniform Light { vec3 pos; float intensity; } lights[4];")
	ed := tu.Externals[0].(*ast.ExternalDeclaration)
	ib := ed.Decl.(*ast.InterfaceBlock)
	if len(ib.Members) != 2 {
		t.Fatalf("expected 2 member lines, got %d", len(ib.Members))
	}
	if ib.InstanceName == nil || ib.InstanceName.Name() != "lights" {
		t.Fatalf("expected instance name lights, got %#v", ib.InstanceName)
	}
	if ib.InstanceArray == nil || len(ib.InstanceArray.Sizes) != 1 {
		t.Fatalf("expected instance array of 1 dimension, got %#v", ib.InstanceArray)
	}
	if got := ib.MemberNames(); len(got) != 2 || got[0] != "pos" || got[1] != "intensity" {
		t.Errorf("expected [pos intensity], got %v", got)
	}
}

func TestParseLayoutQualifiedDeclaration(t *testing.T) {
	_, tu := mustParse(t, "layout(location = 0) out vec4 fragColor;")
	ed := tu.Externals[0].(*ast.ExternalDeclaration)
	decl := ed.Decl.(*ast.TypeAndInitDeclaration)
	q := decl.Type.Qualifier
	if q.Layout == nil {
		t.Fatal("expected layout qualifier")
	}
	part := q.Layout.Get("location")
	if part == nil {
		t.Fatal("expected location part")
	}
	lit, ok := part.Value.(*ast.LiteralExpression)
	if !ok || lit.Raw != "0" {
		t.Errorf("expected location = 0, got %#v", part.Value)
	}
	if !q.Has(ast.QualOut) {
		t.Error("expected out qualifier alongside layout")
	}
}

func TestParseLayoutDefaults(t *testing.T) {
	_, tu := mustParse(t, "layout(std140) uniform;")
	ld, ok := tu.Externals[0].(*ast.LayoutDefaults)
	if !ok {
		t.Fatalf("expected *ast.LayoutDefaults, got %T", tu.Externals[0])
	}
	if !ld.Qualifier.Has(ast.QualUniform) {
		t.Error("expected uniform qualifier kind on layout defaults")
	}
	if ld.Qualifier.Layout.Get("std140") == nil {
		t.Error("expected std140 part")
	}
}

func TestParseStructDeclaration(t *testing.T) {
	_, tu := mustParse(t, "struct Light { vec3 position; float intensity; };")
	ed := tu.Externals[0].(*ast.ExternalDeclaration)
	decl := ed.Decl.(*ast.TypeAndInitDeclaration)
	st, ok := decl.Type.Spec.(*ast.StructSpecifier)
	if !ok {
		t.Fatalf("expected struct specifier, got %#v", decl.Type.Spec)
	}
	if st.Name == nil || st.Name.Name() != "Light" {
		t.Fatalf("expected struct name Light, got %#v", st.Name)
	}
	if len(st.Members) != 2 {
		t.Fatalf("expected 2 struct members, got %d", len(st.Members))
	}
}

func TestParsePrecisionDeclaration(t *testing.T) {
	_, tu := mustParse(t, "precision highp float;")
	pd, ok := tu.Externals[0].(*ast.ExternalDeclaration)
	if !ok {
		t.Fatalf("expected *ast.ExternalDeclaration wrapping precision, got %T", tu.Externals[0])
	}
	prec, ok := pd.Decl.(*ast.PrecisionDeclaration)
	if !ok {
		t.Fatalf("expected *ast.PrecisionDeclaration, got %T", pd.Decl)
	}
	if prec.Precision != "highp" {
		t.Errorf("expected highp, got %q", prec.Precision)
	}
}

func TestParseFunctionDefinitionVsPrototype(t *testing.T) {
	_, tu := mustParse(t, "float square(float x);\nfloat square(float x) { return x * x; }\n")
	if len(tu.Externals) != 2 {
		t.Fatalf("expected 2 externals, got %d", len(tu.Externals))
	}
	proto, ok := tu.Externals[0].(*ast.ExternalDeclaration)
	if !ok {
		t.Fatalf("expected prototype wrapped in ExternalDeclaration, got %T", tu.Externals[0])
	}
	if _, ok := proto.Decl.(*ast.FunctionDeclaration); !ok {
		t.Errorf("expected *ast.FunctionDeclaration, got %T", proto.Decl)
	}
	def, ok := tu.Externals[1].(*ast.FunctionDefinition)
	if !ok {
		t.Fatalf("expected *ast.FunctionDefinition, got %T", tu.Externals[1])
	}
	if def.Proto.Name.Name() != "square" {
		t.Errorf("expected function name square, got %q", def.Proto.Name.Name())
	}
	if len(def.Proto.Params) != 1 {
		t.Fatalf("expected 1 param, got %d", len(def.Proto.Params))
	}
	if len(def.Body.Statements) != 1 {
		t.Fatalf("expected 1 statement in body, got %d", len(def.Body.Statements))
	}
	ret, ok := def.Body.Statements[0].(*ast.JumpStatement)
	if !ok || ret.Which != ast.JumpReturn {
		t.Fatalf("expected return statement, got %#v", def.Body.Statements[0])
	}
	bin, ok := ret.Value.(*ast.BinaryExpression)
	if !ok || bin.Op != ast.BinMul {
		t.Fatalf("expected x * x, got %#v", ret.Value)
	}
}

func TestParseFunctionWithVoidParamList(t *testing.T) {
	_, tu := mustParse(t, "void main(void) { discard; }")
	def := tu.Externals[0].(*ast.FunctionDefinition)
	if len(def.Proto.Params) != 0 {
		t.Errorf("expected 0 params for (void), got %d", len(def.Proto.Params))
	}
	if len(def.Body.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(def.Body.Statements))
	}
	js, ok := def.Body.Statements[0].(*ast.JumpStatement)
	if !ok || js.Which != ast.JumpDiscard {
		t.Fatalf("expected discard, got %#v", def.Body.Statements[0])
	}
}

func TestParseControlFlowStatements(t *testing.T) {
	src := `void main() {
		int i = 0;
		if (i > 0) { i = 1; } else { i = 2; }
		for (int j = 0; j < 10; j++) { i += j; }
		while (i < 100) { i++; }
		do { i--; } while (i > 0);
		switch (i) {
			case 0:
				break;
			default:
				continue;
		}
	}`
	_, tu := mustParse(t, src)
	def := tu.Externals[0].(*ast.FunctionDefinition)
	stmts := def.Body.Statements
	if len(stmts) != 6 {
		t.Fatalf("expected 6 top-level statements, got %d", len(stmts))
	}
	if _, ok := stmts[0].(*ast.DeclarationStatement); !ok {
		t.Errorf("stmt 0: expected DeclarationStatement, got %T", stmts[0])
	}
	if _, ok := stmts[1].(*ast.SelectionStatement); !ok {
		t.Errorf("stmt 1: expected SelectionStatement, got %T", stmts[1])
	}
	if _, ok := stmts[2].(*ast.ForStatement); !ok {
		t.Errorf("stmt 2: expected ForStatement, got %T", stmts[2])
	}
	if _, ok := stmts[3].(*ast.WhileStatement); !ok {
		t.Errorf("stmt 3: expected WhileStatement, got %T", stmts[3])
	}
	if _, ok := stmts[4].(*ast.DoWhileStatement); !ok {
		t.Errorf("stmt 4: expected DoWhileStatement, got %T", stmts[4])
	}
	sw, ok := stmts[5].(*ast.SwitchStatement)
	if !ok {
		t.Fatalf("stmt 5: expected SwitchStatement, got %T", stmts[5])
	}
	if len(sw.Body.Statements) != 4 {
		t.Fatalf("expected 4 statements in switch body (2 cases + 2 jumps), got %d", len(sw.Body.Statements))
	}
	if _, ok := sw.Body.Statements[0].(*ast.CaseLabel); !ok {
		t.Errorf("expected CaseLabel, got %T", sw.Body.Statements[0])
	}
}

func TestParseExpressionPrecedence(t *testing.T) {
	p := NewParser()
	root := ast.NewRoot(ast.PolicyExact)
	expr, err := p.ParseExpression(root, "a + b * c")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	top, ok := expr.(*ast.BinaryExpression)
	if !ok || top.Op != ast.BinAdd {
		t.Fatalf("expected top-level +, got %#v", expr)
	}
	if _, ok := top.Left.(*ast.ReferenceExpression); !ok {
		t.Errorf("expected left operand to be reference a, got %#v", top.Left)
	}
	rhs, ok := top.Right.(*ast.BinaryExpression)
	if !ok || rhs.Op != ast.BinMul {
		t.Fatalf("expected right operand b * c, got %#v", top.Right)
	}
}

func TestParseExpressionAssignmentRightAssociative(t *testing.T) {
	p := NewParser()
	root := ast.NewRoot(ast.PolicyExact)
	expr, err := p.ParseExpression(root, "a = b = c")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	top, ok := expr.(*ast.BinaryExpression)
	if !ok || top.Op != ast.BinAssign {
		t.Fatalf("expected top-level =, got %#v", expr)
	}
	if _, ok := top.Right.(*ast.BinaryExpression); !ok {
		t.Errorf("expected right-associative nesting, got %#v", top.Right)
	}
}

func TestParseExpressionTernaryAndLogical(t *testing.T) {
	p := NewParser()
	root := ast.NewRoot(ast.PolicyExact)
	expr, err := p.ParseExpression(root, "a && b || c ? d : e")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cond, ok := expr.(*ast.ConditionalExpression)
	if !ok {
		t.Fatalf("expected conditional expression, got %#v", expr)
	}
	orExpr, ok := cond.Cond.(*ast.BinaryExpression)
	if !ok || orExpr.Op != ast.BinLogOr {
		t.Fatalf("expected || at top of condition, got %#v", cond.Cond)
	}
}

func TestParsePostfixChain(t *testing.T) {
	p := NewParser()
	root := ast.NewRoot(ast.PolicyExact)
	expr, err := p.ParseExpression(root, "obj.data[0].length()")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	call, ok := expr.(*ast.MethodCallExpression)
	if !ok || call.Method.Name() != "length" {
		t.Fatalf("expected trailing .length() method call, got %#v", expr)
	}
	access, ok := call.Operand.(*ast.ArrayAccessExpression)
	if !ok {
		t.Fatalf("expected array access before method call, got %#v", call.Operand)
	}
	member, ok := access.Operand.(*ast.MemberAccessExpression)
	if !ok || member.Member.Name() != "data" {
		t.Fatalf("expected obj.data, got %#v", access.Operand)
	}
}

func TestParseFunctionCallWithArguments(t *testing.T) {
	p := NewParser()
	root := ast.NewRoot(ast.PolicyExact)
	expr, err := p.ParseExpression(root, "texture(uSampler, vUv)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	call, ok := expr.(*ast.FunctionCallExpression)
	if !ok || call.Name.Name() != "texture" {
		t.Fatalf("expected texture(...) call, got %#v", expr)
	}
	if len(call.Args) != 2 {
		t.Fatalf("expected 2 args, got %d", len(call.Args))
	}
}

func TestParseSyntaxErrorIsReported(t *testing.T) {
	p := NewParser()
	_, _, err := p.ParseTranslationUnit("uniform vec4;", RootSupplierDefault)
	if err == nil {
		t.Fatal("expected a parse error for a declaration missing its member name")
	}
}

func TestWireTreeWiresParentsThroughoutFragment(t *testing.T) {
	root, tu := mustParse(t, "uniform vec4 uColor;\nvoid main() { uColor.x = 1.0; }")
	def := tu.Externals[1].(*ast.FunctionDefinition)
	stmt := def.Body.Statements[0].(*ast.ExpressionStatement)
	assign := stmt.Expr.(*ast.BinaryExpression)
	member := assign.Left.(*ast.MemberAccessExpression)

	if member.Parent() != ast.Node(assign) {
		t.Error("member access expression parent not wired to its assignment")
	}
	if assign.Root() != root {
		t.Error("nested expression not reachable to the same Root via Root()")
	}

	anc := ast.GetAncestor(member, ast.KindFunctionDefinition)
	if anc != ast.Node(def) {
		t.Error("expected GetAncestor to reach the enclosing FunctionDefinition")
	}
}
