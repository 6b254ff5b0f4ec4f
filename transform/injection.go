package transform

// InjectionKind names a slot in the translation unit's top-level child
// sequence, or inside a named function's body, that a phase may insert
// new nodes into (spec.md §6.4).
type InjectionKind int

const (
	BeforeVersion InjectionKind = iota
	BeforeExtensions
	BeforeDirectives
	BeforeDeclarations
	BeforeEOF
	EndOfFunctionBody
	BeforeFunctionBody
)

// InjectionPoint pairs an InjectionKind with the function name that
// EndOfFunctionBody/BeforeFunctionBody apply to; FunctionName is ignored
// for the other four kinds.
type InjectionPoint struct {
	Kind         InjectionKind
	FunctionName string
}

func AtEndOfFunctionBody(name string) InjectionPoint {
	return InjectionPoint{Kind: EndOfFunctionBody, FunctionName: name}
}

func AtBeforeFunctionBody(name string) InjectionPoint {
	return InjectionPoint{Kind: BeforeFunctionBody, FunctionName: name}
}

var (
	AtBeforeVersion      = InjectionPoint{Kind: BeforeVersion}
	AtBeforeExtensions   = InjectionPoint{Kind: BeforeExtensions}
	AtBeforeDirectives   = InjectionPoint{Kind: BeforeDirectives}
	AtBeforeDeclarations = InjectionPoint{Kind: BeforeDeclarations}
	AtBeforeEOF          = InjectionPoint{Kind: BeforeEOF}
)
