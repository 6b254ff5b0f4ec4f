package phases

import (
	"github.com/oxhq/glsltransform/ast"
	"github.com/oxhq/glsltransform/transform"
)

// MoveUnsizedArraySpecifierToType rewrites `T name[], other[];` into
// `T[] name, other;`: when every declarator in a declaration carries the
// identical single-dimension unsized array shape, that shape describes
// the type being declared rather than any one declarator, and belongs
// on the type instead of repeated per-member. A declaration whose type
// already carries its own array dimension, or whose members disagree on
// shape (sized, multi-dimension, or missing on some member), is left as
// written.
func MoveUnsizedArraySpecifierToType() *transform.Phase {
	return transform.NewRunPhase("move-unsized-array-specifier-to-type", func(env *transform.Env) error {
		for _, ext := range env.Unit.Externals {
			ed, ok := ext.(*ast.ExternalDeclaration)
			if !ok {
				continue
			}
			tid, ok := ed.Decl.(*ast.TypeAndInitDeclaration)
			if !ok || tid.Type.Array != nil || len(tid.Members) == 0 {
				continue
			}
			if !allMembersShareBareUnsizedArray(tid.Members) {
				continue
			}
			tid.Type.Array = ast.Setup(tid.Type, ast.NewArraySpecifier(nil))
			for _, m := range tid.Members {
				if err := ast.DetachAndDelete(m.Array); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func allMembersShareBareUnsizedArray(members []*ast.DeclarationMember) bool {
	for _, m := range members {
		if m.Array == nil || len(m.Array.Sizes) != 1 || m.Array.Sizes[0] != nil {
			return false
		}
	}
	return true
}
