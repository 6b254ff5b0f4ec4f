package parser

// TokenFilter lets a caller rewrite or drop tokens before they reach the
// parser, e.g. to splice in macro-expanded text (spec.md §6.1's
// "settable TokenFilter placed on the lexer's token source"). Returning
// ok=false drops the token entirely.
type TokenFilter interface {
	Filter(tok *Token) (out *Token, ok bool)
}

// TokenFilterFunc adapts a plain function to TokenFilter.
type TokenFilterFunc func(tok *Token) (*Token, bool)

func (f TokenFilterFunc) Filter(tok *Token) (*Token, bool) { return f(tok) }

// TokenStream buffers every token the Lexer produces, interposed between
// lexer and parser per spec.md §6.1 ("a BufferedTokenStream interposed
// between them"). Buffering the whole token list rather than pulling
// lazily is what lets the parser backtrack (Mark/Seek) within an attempt;
// each attempt calls Fill, which lexes the input again.
type TokenStream struct {
	lexer    *Lexer
	filter   TokenFilter
	tokens   []*Token
	pos      int
}

func NewTokenStream(lexer *Lexer) *TokenStream {
	return &TokenStream{lexer: lexer}
}

// SetTokenFilter installs (or clears, with nil) a TokenFilter. Per
// spec.md §5 "Parse scope: token filter state is reset before each
// parse", callers call Fill again after changing the filter.
func (s *TokenStream) SetTokenFilter(f TokenFilter) { s.filter = f }

// Fill lexes the entire input into s.tokens, applying the installed
// filter and dropping hidden-channel trivia from the default view while
// keeping it in the full list returned by All.
func (s *TokenStream) Fill() {
	s.lexer.Reset()
	s.tokens = s.tokens[:0]
	s.pos = 0
	idx := 0
	for {
		tok := s.lexer.Next()
		if s.filter != nil {
			filtered, ok := s.filter.Filter(tok)
			if !ok {
				if tok.Kind == TokEOF {
					break
				}
				continue
			}
			tok = filtered
		}
		tok.Index = idx
		idx++
		s.tokens = append(s.tokens, tok)
		if tok.Kind == TokEOF {
			break
		}
	}
}

// Default returns only the default-channel tokens (real grammar
// tokens), the view the parser consumes.
func (s *TokenStream) Default() []*Token {
	out := make([]*Token, 0, len(s.tokens))
	for _, t := range s.tokens {
		if t.Channel == ChannelDefault {
			out = append(out, t)
		}
	}
	return out
}

// All returns every token including hidden-channel trivia, in source
// order, for the printer (spec.md §4.G).
func (s *TokenStream) All() []*Token { return s.tokens }

// cursor walks the default-channel view with Mark/Seek backtracking, the
// buffered-position shape a generated parser's token stream provides, so
// the hand-written recursive-descent parser here can retry a production
// without reimplementing its own ad hoc position stack.
type cursor struct {
	toks []*Token
	pos  int
}

func newCursor(toks []*Token) *cursor { return &cursor{toks: toks} }

func (c *cursor) LA(offset int) *Token {
	i := c.pos + offset - 1
	if i < 0 || i >= len(c.toks) {
		return &Token{Kind: TokEOF, Text: ""}
	}
	return c.toks[i]
}

func (c *cursor) Consume() *Token {
	t := c.LA(1)
	if t.Kind != TokEOF {
		c.pos++
	}
	return t
}

// Mark/Seek back a single-attempt retry: the parser marks its position
// before trying a production greedily, and seeks back to retry a
// different alternative, the same Mark()/Seek() pairing ANTLR-family
// runtimes use for SLL-then-LL retries (spec.md §6.1).
func (c *cursor) Mark() int      { return c.pos }
func (c *cursor) Seek(mark int)  { c.pos = mark }
