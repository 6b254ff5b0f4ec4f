package transform

import (
	"github.com/oxhq/glsltransform/parser"
	"github.com/oxhq/glsltransform/printer"
	"github.com/oxhq/glsltransform/store"
)

// TransformationManager is the public facade over a parser and a set of
// registered Transformations: Transform parses source, builds the AST,
// drives every registered transformation's scheduled phases through a
// shared PhaseCollector, then prints the result (spec.md §4.F, §6.3).
type TransformationManager struct {
	parser          *parser.Parser
	rootSupplier    parser.RootSupplier
	transformations []*Transformation
	cache           *store.Cache
}

func NewTransformationManager() *TransformationManager {
	return &TransformationManager{
		parser:       parser.NewParser(),
		rootSupplier: parser.RootSupplierDefault,
	}
}

func (m *TransformationManager) RegisterTransformation(t *Transformation) {
	m.transformations = append(m.transformations, t)
}

func (m *TransformationManager) SetParseTokenFilter(f parser.TokenFilter) {
	m.parser.SetParseTokenFilter(f)
}

func (m *TransformationManager) SetParsingStrategy(s parser.ParsingStrategy) {
	m.parser.SetParsingStrategy(s)
}

func (m *TransformationManager) SetRootSupplier(rs parser.RootSupplier) {
	m.rootSupplier = rs
}

// SetCache installs the cross-process pattern cache. A nil cache (the
// default) means CompilePattern records nothing; patterns are compiled
// in-process either way.
func (m *TransformationManager) SetCache(c *store.Cache) {
	m.cache = c
}

// Transform parses src, applies every registered transformation's
// scheduled phases, and prints the resulting tree.
func (m *TransformationManager) Transform(src string) (string, error) {
	root, unit, err := m.parser.ParseTranslationUnit(src, m.rootSupplier)
	if err != nil {
		return "", err
	}

	env := newEnv(root, unit, m.parser)
	env.Cache = m.cache
	collector := NewPhaseCollector()
	for _, t := range m.transformations {
		collector.RegisterTransformation(t)
	}

	if err := collector.Run(env); err != nil {
		return "", err
	}

	return printer.Print(unit), nil
}
