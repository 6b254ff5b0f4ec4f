package parser

import (
	"fmt"

	"github.com/oxhq/glsltransform/ast"
)

// Parser drives the recursive-descent grammar over a TokenStream's
// default-channel view and builds typed AST nodes directly — combining
// the "AST builder adapter" role (spec.md §4.C) with parsing itself,
// since this package has no separate ANTLR parse-tree stage to adapt
// from.
type Parser struct {
	strategy     ParsingStrategy
	tokenFilter  TokenFilter
	throwErrors  bool
	debug        debugHook
	placeholderPrefix string
}

func NewParser() *Parser {
	return &Parser{strategy: SLLAndLLOnError, placeholderPrefix: "__"}
}

func (p *Parser) SetParsingStrategy(s ParsingStrategy) { p.strategy = s }
func (p *Parser) SetParseTokenFilter(f TokenFilter)    { p.tokenFilter = f }
func (p *Parser) SetThrowParseErrors(v bool)           { p.throwErrors = v }
func (p *Parser) SetDebugHook(h debugHook)             { p.debug = h }
func (p *Parser) SetPlaceholderPrefix(prefix string)   { p.placeholderPrefix = prefix }

func policiesFor(rs RootSupplier) (identifier, node, externalDecl ast.IndexPolicy) {
	switch rs {
	case RootSupplierExactUnorderedEDExact:
		return ast.PolicyExact, ast.PolicyUnordered, ast.PolicyExact
	case RootSupplierUnordered:
		return ast.PolicyUnordered, ast.PolicyUnordered, ast.PolicyUnordered
	default:
		return ast.PolicyExact, ast.PolicyExact, ast.PolicyExact
	}
}

// attempt runs fn once, with the token stream reset beforehand; it is
// the unit SLLAndLLOnError retries under the second, fully-diagnosed
// pass.
func (p *Parser) attempt(ts *TokenStream, throwErrors bool, fn func(*cursor, *errorListener) (ast.Node, error)) (ast.Node, error) {
	ts.SetTokenFilter(p.tokenFilter)
	ts.Fill()
	cur := newCursor(ts.Default())
	lst := newErrorListener(throwErrors)
	return fn(cur, lst)
}

// parseWithStrategy runs fn under the configured ParsingStrategy,
// retrying with full diagnostics on failure when SLLAndLLOnError is
// active, and invoking the debug hook with the (sllErr, llErr) pair
// spec.md §6.1 describes.
func (p *Parser) parseWithStrategy(ts *TokenStream, fn func(*cursor, *errorListener) (ast.Node, error)) (ast.Node, error) {
	switch p.strategy {
	case SLLOnly:
		return p.attempt(ts, p.throwErrors, fn)
	case LLOnly:
		return p.attempt(ts, true, fn)
	default: // SLLAndLLOnError
		node, sllErr := p.attempt(ts, false, fn)
		if sllErr == nil {
			return node, nil
		}
		node, llErr := p.attempt(ts, p.throwErrors, fn)
		if p.debug != nil {
			p.debug(sllErr, llErr)
		}
		return node, llErr
	}
}

// ParseTranslationUnit parses a complete GLSL source string and attaches
// the result to a freshly created Root under rootSupplier's policies.
func (p *Parser) ParseTranslationUnit(src string, rootSupplier RootSupplier) (*ast.Root, *ast.TranslationUnit, error) {
	idPol, nodePol, edPol := policiesFor(rootSupplier)
	root := ast.NewRootWithPolicies(idPol, nodePol, edPol)
	lexer := NewLexer(src)
	lexer.SetPlaceholderPrefix(p.placeholderPrefix)
	ts := NewTokenStream(lexer)

	node, err := p.parseWithStrategy(ts, func(c *cursor, lst *errorListener) (ast.Node, error) {
		g := &grammar{c: c, lst: lst, placeholderPrefix: p.placeholderPrefix}
		tu := g.translationUnit()
		if g.err != nil {
			return tu, g.err
		}
		return tu, nil
	})
	if err != nil && node == nil {
		return root, nil, err
	}
	tu, _ := node.(*ast.TranslationUnit)
	if tu == nil {
		tu = ast.NewTranslationUnit()
	}
	ast.WireTree(tu)
	root.Attach(tu)
	return root, tu, err
}

// ParseExternalDeclaration parses a single external declaration fragment
// (used by Matcher/Template construction, spec.md §6.3) and attaches it
// under the given Root.
func (p *Parser) ParseExternalDeclaration(root *ast.Root, src string) (ast.ExternalDecl, error) {
	lexer := NewLexer(src)
	lexer.SetPlaceholderPrefix(p.placeholderPrefix)
	ts := NewTokenStream(lexer)
	node, err := p.parseWithStrategy(ts, func(c *cursor, lst *errorListener) (ast.Node, error) {
		g := &grammar{c: c, lst: lst, placeholderPrefix: p.placeholderPrefix}
		decl := g.externalDeclaration()
		return decl, g.err
	})
	if err != nil {
		return nil, err
	}
	ed := node.(ast.ExternalDecl)
	ast.WireTree(ed)
	if root != nil {
		root.AttachFragment(ed)
	}
	return ed, nil
}

// ParseStatement parses a single statement fragment.
func (p *Parser) ParseStatement(root *ast.Root, src string) (ast.Statement, error) {
	lexer := NewLexer(src)
	lexer.SetPlaceholderPrefix(p.placeholderPrefix)
	ts := NewTokenStream(lexer)
	node, err := p.parseWithStrategy(ts, func(c *cursor, lst *errorListener) (ast.Node, error) {
		g := &grammar{c: c, lst: lst, placeholderPrefix: p.placeholderPrefix}
		stmt := g.statement()
		return stmt, g.err
	})
	if err != nil {
		return nil, err
	}
	stmt := node.(ast.Statement)
	ast.WireTree(stmt)
	if root != nil {
		root.AttachFragment(stmt)
	}
	return stmt, nil
}

// ParseExpression parses a single expression fragment.
func (p *Parser) ParseExpression(root *ast.Root, src string) (ast.Expression, error) {
	lexer := NewLexer(src)
	lexer.SetPlaceholderPrefix(p.placeholderPrefix)
	ts := NewTokenStream(lexer)
	node, err := p.parseWithStrategy(ts, func(c *cursor, lst *errorListener) (ast.Node, error) {
		g := &grammar{c: c, lst: lst, placeholderPrefix: p.placeholderPrefix}
		expr := g.expression()
		return expr, g.err
	})
	if err != nil {
		return nil, err
	}
	expr := node.(ast.Expression)
	ast.WireTree(expr)
	if root != nil {
		root.AttachFragment(expr)
	}
	return expr, nil
}

// ParseCompoundStatement parses a `{ ... }` block on its own, e.g. for
// the replacement block printf extraction builds from generated source.
func (p *Parser) ParseCompoundStatement(root *ast.Root, src string) (*ast.CompoundStatement, error) {
	stmt, err := p.ParseStatement(root, src)
	if err != nil {
		return nil, err
	}
	cs, ok := stmt.(*ast.CompoundStatement)
	if !ok {
		return nil, fmt.Errorf("parseCompoundStatement: fragment is not a compound statement")
	}
	return cs, nil
}

