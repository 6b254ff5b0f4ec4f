package phases

import (
	"github.com/oxhq/glsltransform/ast"
	"github.com/oxhq/glsltransform/transform"
)

// RemoveUniformsDuplicatedInBlock removes a loose top-level
// `uniform T name;` declaration whenever name already appears as a
// member of some uniform interface block elsewhere in the unit: once a
// block exposes a uniform, a separate declaration of the same name is a
// leftover from the block's introduction. A declaration whose members
// only partially overlap the block loses just the overlapping members;
// one that overlaps entirely is removed outright.
func RemoveUniformsDuplicatedInBlock() *transform.Phase {
	return transform.NewRunPhase("remove-uniforms-duplicated-in-block", func(env *transform.Env) error {
		blockNames := collectUniformBlockMemberNames(env.Unit)
		if len(blockNames) == 0 {
			return nil
		}

		var wholeRemovals []ast.Node
		for _, ext := range env.Unit.Externals {
			ed, ok := ext.(*ast.ExternalDeclaration)
			if !ok {
				continue
			}
			tid, ok := ed.Decl.(*ast.TypeAndInitDeclaration)
			if !ok || tid.Type.Qualifier == nil || !tid.Type.Qualifier.Has(ast.QualUniform) {
				continue
			}

			var staleMembers []ast.Node
			keep := 0
			for _, m := range tid.Members {
				if m.Name != nil && blockNames[m.Name.Name()] {
					staleMembers = append(staleMembers, m)
				} else {
					keep++
				}
			}
			if len(staleMembers) == 0 {
				continue
			}
			if keep == 0 {
				wholeRemovals = append(wholeRemovals, ed)
				continue
			}
			for _, m := range staleMembers {
				if err := ast.DetachAndDelete(m); err != nil {
					return err
				}
			}
		}
		for _, n := range wholeRemovals {
			if err := ast.DetachAndDelete(n); err != nil {
				return err
			}
		}
		return nil
	})
}

func collectUniformBlockMemberNames(unit *ast.TranslationUnit) map[string]bool {
	names := make(map[string]bool)
	for _, ext := range unit.Externals {
		ed, ok := ext.(*ast.ExternalDeclaration)
		if !ok {
			continue
		}
		ib, ok := ed.Decl.(*ast.InterfaceBlock)
		if !ok || ib.Qualifier == nil || !ib.Qualifier.Has(ast.QualUniform) {
			continue
		}
		for _, name := range ib.MemberNames() {
			names[name] = true
		}
	}
	return names
}
