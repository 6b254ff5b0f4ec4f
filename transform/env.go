package transform

import (
	"fmt"

	"gorm.io/datatypes"

	"github.com/oxhq/glsltransform/ast"
	"github.com/oxhq/glsltransform/parser"
	"github.com/oxhq/glsltransform/store"
	"github.com/oxhq/glsltransform/template"
)

// Env is the environment a running phase sees: the tree it operates on,
// the parser used to build fragments for injection, and the per-run
// pattern/path caches that compilePath/compilePattern populate lazily
// during a phase's init (spec.md §4.E).
type Env struct {
	Root   *ast.Root
	Unit   *ast.TranslationUnit
	Parser *parser.Parser

	// Cache is the optional cross-process pattern cache (SPEC_FULL.md
	// §4.H). A nil Cache means CompilePattern records nothing, which is
	// what most unit tests do; the Matcher is compiled in-process either way.
	Cache *store.Cache

	patterns map[string]*template.Matcher
	paths    map[string]*Path
}

func newEnv(root *ast.Root, unit *ast.TranslationUnit, p *parser.Parser) *Env {
	return &Env{
		Root:     root,
		Unit:     unit,
		Parser:   p,
		patterns: make(map[string]*template.Matcher),
		paths:    make(map[string]*Path),
	}
}

// CompilePath compiles (once per ruleID) and caches an xpath-like query,
// per spec.md §4.E compilePath.
func (e *Env) CompilePath(ruleID, expr string) *Path {
	if cached, ok := e.paths[ruleID]; ok {
		return cached
	}
	p := CompilePath(expr)
	e.paths[ruleID] = p
	return p
}

// CompilePattern compiles (once per ruleID) and caches a Matcher over a
// parsed fragment, per spec.md §4.E compilePattern. When Env.Cache is set,
// a Matcher compiled here also records its shape/prefix metadata in the
// cross-process pattern cache (SPEC_FULL.md §4.H): a hit there is a
// record that this exact fragment compiled cleanly before, but the
// Matcher itself is always rebuilt from the fragment in-process, and
// nothing in this module reads the recorded rows back (an ast.Node tree is not something
// a cache row can hold, short of re-parsing, which defeats the point).
func (e *Env) CompilePattern(ruleID, fragment string, shape template.ParseShape, placeholderPrefix string) (*template.Matcher, error) {
	if cached, ok := e.patterns[ruleID]; ok {
		return cached, nil
	}
	m, err := template.NewMatcher(e.Parser, e.Root, fragment, shape, placeholderPrefix)
	if err != nil {
		return nil, err
	}
	e.patterns[ruleID] = m
	if e.Cache != nil {
		e.recordCacheEntry(fragment, shape, placeholderPrefix)
	}
	return m, nil
}

func (e *Env) recordCacheEntry(fragment string, shape template.ParseShape, placeholderPrefix string) {
	hash := store.FragmentHash(fragment, placeholderPrefix)
	if _, ok, err := e.Cache.Get(hash); err == nil && ok {
		return
	}
	_ = e.Cache.Put(&store.CachedPattern{
		FragmentHash:      hash,
		PlaceholderPrefix: placeholderPrefix,
		ParseShape:        int(shape),
		ReplacementKinds:  datatypes.JSONMap{},
		Digest:            fragment,
	})
}

// externalBoundaries classifies the translation unit's leading top-level
// sequence under the conventional GLSL layout #version, #extension...,
// #pragma..., then declarations: afterExtensions is the index right past
// the leading run of ExtensionStatement entries, afterDirectives is the
// index right past that run extended through any following Pragma
// entries. A file that interleaves pragmas and declarations freely still
// accepts an injection at either boundary, just not necessarily where a
// human reading the file would expect it.
func externalBoundaries(unit *ast.TranslationUnit) (afterExtensions, afterDirectives int) {
	i := 0
	for i < len(unit.Externals) {
		if _, ok := unit.Externals[i].(*ast.ExtensionStatement); !ok {
			break
		}
		i++
	}
	afterExtensions = i
	for i < len(unit.Externals) {
		if _, ok := unit.Externals[i].(*ast.Pragma); !ok {
			break
		}
		i++
	}
	afterDirectives = i
	return afterExtensions, afterDirectives
}

func (e *Env) topLevelIndex(kind InjectionKind) (int, error) {
	afterExt, afterDir := externalBoundaries(e.Unit)
	switch kind {
	case BeforeVersion:
		return 0, nil
	case BeforeExtensions:
		return 0, nil
	case BeforeDirectives:
		return afterExt, nil
	case BeforeDeclarations:
		return afterDir, nil
	case BeforeEOF:
		return len(e.Unit.Externals), nil
	default:
		return 0, fmt.Errorf("transform: %v is not a top-level injection point", kind)
	}
}

func (e *Env) functionBody(name string) (*ast.CompoundStatement, error) {
	for _, ext := range e.Unit.Externals {
		fd, ok := ext.(*ast.FunctionDefinition)
		if !ok || fd.Proto.Name.Name() != name {
			continue
		}
		return fd.Body, nil
	}
	return nil, fmt.Errorf("transform: no function definition named %q", name)
}

// InjectExternalDeclaration parses source as a single external
// declaration and inserts it at point.
func (e *Env) InjectExternalDeclaration(source string, point InjectionPoint) (ast.ExternalDecl, error) {
	decl, err := e.Parser.ParseExternalDeclaration(e.Root, source)
	if err != nil {
		return nil, err
	}
	if err := e.InjectNode(point, decl); err != nil {
		return nil, err
	}
	return decl, nil
}

// InjectNode inserts a single already-built node at point: an
// ast.ExternalDecl for a top-level point, an ast.Statement for a
// function-body point.
func (e *Env) InjectNode(point InjectionPoint, node ast.Node) error {
	return e.InjectNodes(point, []ast.Node{node})
}

// InjectNodes inserts nodes, in order, at point.
func (e *Env) InjectNodes(point InjectionPoint, nodes []ast.Node) error {
	switch point.Kind {
	case EndOfFunctionBody, BeforeFunctionBody:
		body, err := e.functionBody(point.FunctionName)
		if err != nil {
			return err
		}
		for i, n := range nodes {
			stmt, ok := n.(ast.Statement)
			if !ok {
				return fmt.Errorf("transform: node %d for %v is not a Statement", i, point)
			}
			if point.Kind == BeforeFunctionBody {
				body.InsertAt(i, stmt)
			} else {
				body.Append(stmt)
			}
		}
		return nil
	default:
		idx, err := e.topLevelIndex(point.Kind)
		if err != nil {
			return err
		}
		for i, n := range nodes {
			decl, ok := n.(ast.ExternalDecl)
			if !ok {
				return fmt.Errorf("transform: node %d for %v is not an ExternalDecl", i, point)
			}
			e.Unit.InsertExternal(idx+i, decl)
		}
		return nil
	}
}

// GetSiblings returns n's siblings: its parent's other direct children,
// in order, excluding n itself.
func (e *Env) GetSiblings(n ast.Node) []ast.Node {
	parent := n.Parent()
	if parent == nil {
		return nil
	}
	var out []ast.Node
	for _, c := range parent.Children() {
		if c != n {
			out = append(out, c)
		}
	}
	return out
}

// PrependMainFunctionBody inserts stmt as the first statement of main().
func (e *Env) PrependMainFunctionBody(stmt ast.Statement) error {
	return e.InjectNode(AtBeforeFunctionBody("main"), stmt)
}

// AppendMainFunctionBody inserts stmt as the last statement of main().
func (e *Env) AppendMainFunctionBody(stmt ast.Statement) error {
	return e.InjectNode(AtEndOfFunctionBody("main"), stmt)
}
