package phases

import (
	"fmt"
	"sort"

	"github.com/oxhq/glsltransform/transform"
)

// Builtin names a phase constructor by the name its *transform.Phase
// reports, for resolving --phases flags without a switch statement at
// every call site. AddDeclarationsIfNotExists and PrintfExtraction are
// not listed here: both take call-specific arguments (the declarations
// to request, an output accumulator) rather than building a phase on
// their own.
var Builtin = map[string]func() *transform.Phase{
	"remove-uniforms-duplicated-in-block":  RemoveUniformsDuplicatedInBlock,
	"shadow2d-to-texture":                  Shadow2DToTexture,
	"out-declaration-layout-location":      OutDeclarationLayoutLocation,
	"move-unsized-array-specifier-to-type": MoveUnsizedArraySpecifierToType,
}

// Names lists every registered builtin phase name in sorted order,
// as printed by the `glslx list-phases` subcommand.
func Names() []string {
	names := make([]string, 0, len(Builtin))
	for name := range Builtin {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve builds a Transformation running each named builtin phase, in
// the order given, returning transform.ErrUnknownPhase wrapped with the
// offending name on the first name not found in Builtin.
func Resolve(names []string) (*transform.Transformation, error) {
	tr := transform.NewTransformation()
	for _, name := range names {
		ctor, ok := Builtin[name]
		if !ok {
			return nil, fmt.Errorf("resolving phase bundle: %w", transform.NewUnknownPhaseError(name))
		}
		tr.AddPhase(ctor())
	}
	return tr, nil
}
