package phases

import (
	"github.com/oxhq/glsltransform/ast"
	"github.com/oxhq/glsltransform/transform"
)

// declaredNames reports the external declaration's declared names: the
// subset of ast.ExternalDecl implementations that a caller outside the
// ast package can ask about without reaching for its unexported
// declaredNamer interface.
type declaredNames interface {
	DeclaredNames() []string
}

// AddDeclarationsIfNotExists injects each of sources, in order, before
// the first real top-level declaration, skipping any source whose
// declared name(s) already appear anywhere in the unit (including a
// name freshly accepted earlier in the same call) so re-requesting an
// already-declared global is a no-op rather than a duplicate
// declaration.
func AddDeclarationsIfNotExists(sources ...string) *transform.Phase {
	return transform.NewRunPhase("add-declarations-if-not-exists", func(env *transform.Env) error {
		seen := make(map[string]bool)
		var toInject []ast.Node

		for _, src := range sources {
			decl, err := env.Parser.ParseExternalDeclaration(nil, src)
			if err != nil {
				return err
			}
			dn, ok := decl.(declaredNames)
			if !ok {
				toInject = append(toInject, decl)
				continue
			}

			exists := false
			for _, name := range dn.DeclaredNames() {
				if seen[name] || len(env.Root.GetExternalDeclarations(name)) > 0 {
					exists = true
					break
				}
			}
			if exists {
				continue
			}
			for _, name := range dn.DeclaredNames() {
				seen[name] = true
			}
			toInject = append(toInject, decl)
		}

		return env.InjectNodes(transform.AtBeforeDeclarations, toInject)
	})
}
