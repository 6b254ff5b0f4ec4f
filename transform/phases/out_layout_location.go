package phases

import (
	"strconv"

	"github.com/oxhq/glsltransform/ast"
	"github.com/oxhq/glsltransform/transform"
)

// OutDeclarationLayoutLocation gives a single-member `out T name;`
// declaration an explicit `layout(location = N)` when name ends in a
// digit run, taking N from those digits: fragment shader outputs whose
// naming convention already encodes their slot (outColor0, outColor4,
// ...) are made explicit so the binding survives reordering or a
// separately compiled shader stage disagreeing on inferred locations.
// A declaration with more than one member, an existing layout, or no
// trailing digits is left alone.
func OutDeclarationLayoutLocation() *transform.Phase {
	return transform.NewRunPhase("out-declaration-layout-location", func(env *transform.Env) error {
		for _, ext := range env.Unit.Externals {
			ed, ok := ext.(*ast.ExternalDeclaration)
			if !ok {
				continue
			}
			tid, ok := ed.Decl.(*ast.TypeAndInitDeclaration)
			if !ok || len(tid.Members) != 1 {
				continue
			}
			q := tid.Type.Qualifier
			if q == nil || !q.Has(ast.QualOut) || q.Layout != nil {
				continue
			}
			name := tid.Members[0].Name
			if name == nil {
				continue
			}
			loc, ok := trailingDigits(name.Name())
			if !ok {
				continue
			}
			part := ast.NewLayoutQualifierPart("location", ast.NewLiteralExpression(ast.LiteralInt, strconv.Itoa(loc)))
			q.Layout = ast.Setup(q, ast.NewLayoutQualifier(part))
		}
		return nil
	})
}

// trailingDigits returns the integer formed by name's maximal trailing
// run of ASCII digits, or ok=false if name has no trailing digit.
func trailingDigits(name string) (int, bool) {
	i := len(name)
	for i > 0 && name[i-1] >= '0' && name[i-1] <= '9' {
		i--
	}
	if i == len(name) {
		return 0, false
	}
	n, err := strconv.Atoi(name[i:])
	if err != nil {
		return 0, false
	}
	return n, true
}
