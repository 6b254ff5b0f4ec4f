// Package parser implements the GLSL lexer, hand-written recursive-descent
// parser, and AST-builder adapter described by spec.md §4.C and §6.1-6.2.
// The concrete grammar is out of scope for the distilled specification; no
// generated grammar backs this package, but the collaboration it
// implements is grounded on go-tree-sitter's parse contract: a mutable
// input stream, a token stream feeding the parser, hidden/extra nodes
// (comments, whitespace) filtered out of the productive tree but still
// addressable, and a pluggable error listener for partial/error-recovery
// parses. See DESIGN.md's "Dropped teacher dependencies" for why
// go-tree-sitter itself isn't imported directly.
package parser

// TokenKind tags every lexical token GLSL source can contain.
type TokenKind int

const (
	TokEOF TokenKind = iota
	TokIdentifier
	TokIntLiteral
	TokUintLiteral
	TokFloatLiteral
	TokBoolLiteral
	TokStringLiteral // double-quoted text, used only by printf-style extraction calls
	TokPunct         // operators and separators; Text carries the spelling
	TokVersionDirective
	TokExtensionDirective
	TokPragmaDirective
	TokLineDirective
	TokDefineDirective
	TokUndefDirective
	TokIfDirective
	TokIfdefDirective
	TokIfndefDirective
	TokElseDirective
	TokElifDirective
	TokEndifDirective
	TokErrorDirective
	TokWhitespace // hidden channel
	TokComment    // hidden channel
	TokNewline    // hidden channel
)

// Channel mirrors go-tree-sitter's named-vs-extra node split referenced by
// spec.md §4.G: real tokens ride DEFAULT, trivia rides HIDDEN so the
// printer can still reproduce it.
type Channel int

const (
	ChannelDefault Channel = 0
	ChannelHidden  Channel = 1
)

// keywords is the fixed set of GLSL reserved words. The lexer does not
// special-case them: a keyword scans as an ordinary TokIdentifier, same
// as any other name. The recursive-descent grammar dispatches on Text
// for the small keyword surface this subset exercises (see grammar.go's
// at/expectIdentifier), rather than assigning each its own token kind
// the way a generated ANTLR lexer would.
var keywords = map[string]bool{
	"const": true, "uniform": true, "buffer": true, "restrict": true, "shared": true,
	"attribute": true, "varying": true, "in": true, "out": true, "inout": true,
	"centroid": true, "flat": true, "smooth": true, "noperspective": true,
	"patch": true, "sample": true, "invariant": true, "precise": true,
	"highp": true, "mediump": true, "lowp": true, "precision": true,
	"struct": true, "void": true, "while": true, "break": true,
	"continue": true, "do": true, "else": true, "for": true, "if": true,
	"discard": true, "return": true, "switch": true, "case": true,
	"default": true, "layout": true, "true": true, "false": true,
}

// Token is one lexical token: its kind, raw text, source position, and
// channel (spec.md §4.G DEFAULT/HIDDEN split).
type Token struct {
	Kind    TokenKind
	Text    string
	Line    int
	Column  int
	Channel Channel
	Start   int
	Stop    int
	Index   int
}
