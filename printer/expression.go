package printer

import "github.com/oxhq/glsltransform/ast"

func (p *printer) expression(e ast.Expression) string {
	switch ex := e.(type) {
	case *ast.ReferenceExpression:
		return ex.Ident.Name()
	case *ast.LiteralExpression:
		return ex.Raw
	case *ast.GroupingExpression:
		return "(" + p.expression(ex.Inner) + ")"
	case *ast.MemberAccessExpression:
		return p.expression(ex.Operand) + "." + ex.Member.Name()
	case *ast.ArrayAccessExpression:
		return p.expression(ex.Operand) + "[" + p.expression(ex.Index) + "]"
	case *ast.FunctionCallExpression:
		return ex.Name.Name() + "(" + p.expressionList(ex.Args) + ")"
	case *ast.MethodCallExpression:
		return p.expression(ex.Operand) + "." + ex.Method.Name() + "(" + p.expressionList(ex.Args) + ")"
	case *ast.PostfixExpression:
		return p.expression(ex.Operand) + string(ex.Op)
	case *ast.PrefixExpression:
		return string(ex.Op) + p.expression(ex.Operand)
	case *ast.UnaryExpression:
		return string(ex.Op) + p.expression(ex.Operand)
	case *ast.BinaryExpression:
		return p.expression(ex.Left) + " " + string(ex.Op) + " " + p.expression(ex.Right)
	case *ast.ConditionalExpression:
		return p.expression(ex.Cond) + " ? " + p.expression(ex.Then) + " : " + p.expression(ex.Otherwise)
	case *ast.SequenceExpression:
		return p.expressionList(ex.Items)
	default:
		return ""
	}
}

func (p *printer) expressionList(items []ast.Expression) string {
	out := ""
	for i, item := range items {
		if i > 0 {
			out += ", "
		}
		out += p.expression(item)
	}
	return out
}
