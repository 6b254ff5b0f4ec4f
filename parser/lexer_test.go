package parser

import "testing"

func TestLexerKeywordsLexAsIdentifier(t *testing.T) {
	l := NewLexer("if uniform myVar")
	var got []TokenKind
	for {
		tok := l.Next()
		if tok.Kind == TokEOF {
			break
		}
		if tok.Channel != ChannelDefault {
			continue
		}
		got = append(got, tok.Kind)
	}
	want := []TokenKind{TokIdentifier, TokIdentifier, TokIdentifier}
	if len(got) != len(want) {
		t.Fatalf("expected %d default-channel tokens, got %d", len(want), len(got))
	}
	for i, k := range want {
		if got[i] != k {
			t.Errorf("token %d: expected %v, got %v", i, k, got[i])
		}
	}
}

func TestLexerNumberSuffixes(t *testing.T) {
	tests := []struct {
		src  string
		kind TokenKind
	}{
		{"1", TokIntLiteral},
		{"1u", TokUintLiteral},
		{"1U", TokUintLiteral},
		{"1.0", TokFloatLiteral},
		{"1.0f", TokFloatLiteral},
		{".5", TokFloatLiteral},
		{"1e3", TokFloatLiteral},
		{"1e-3f", TokFloatLiteral},
	}
	for _, tt := range tests {
		l := NewLexer(tt.src)
		tok := l.Next()
		if tok.Kind != tt.kind {
			t.Errorf("%q: expected %v, got %v", tt.src, tt.kind, tok.Kind)
		}
		if tok.Text != tt.src {
			t.Errorf("%q: expected text %q, got %q", tt.src, tt.src, tok.Text)
		}
	}
}

func TestLexerMultiCharOpsLongestMatch(t *testing.T) {
	l := NewLexer("<<= << <=")
	want := []string{"<<=", "<<", "<="}
	for _, w := range want {
		var tok *Token
		for {
			tok = l.Next()
			if tok.Channel == ChannelDefault {
				break
			}
		}
		if tok.Text != w {
			t.Errorf("expected %q, got %q", w, tok.Text)
		}
	}
}

func TestLexerDirectivesClassified(t *testing.T) {
	tests := []struct {
		src  string
		kind TokenKind
	}{
		{"#version 300 es", TokVersionDirective},
		{"#extension GL_OES_standard_derivatives : enable", TokExtensionDirective},
		{"#pragma optimize(on)", TokPragmaDirective},
		{"#define FOO 1", TokDefineDirective},
	}
	for _, tt := range tests {
		l := NewLexer(tt.src)
		tok := l.Next()
		if tok.Kind != tt.kind {
			t.Errorf("%q: expected %v, got %v", tt.src, tt.kind, tok.Kind)
		}
	}
}

func TestLexerHiddenChannelPreservesTrivia(t *testing.T) {
	l := NewLexer("a /* c */ b // line\nc")
	ts := NewTokenStream(l)
	ts.Fill()

	var hiddenKinds []TokenKind
	for _, tok := range ts.All() {
		if tok.Channel == ChannelHidden {
			hiddenKinds = append(hiddenKinds, tok.Kind)
		}
	}
	foundComment, foundWhitespace, foundNewline := false, false, false
	for _, k := range hiddenKinds {
		switch k {
		case TokComment:
			foundComment = true
		case TokWhitespace:
			foundWhitespace = true
		case TokNewline:
			foundNewline = true
		}
	}
	if !foundComment || !foundWhitespace || !foundNewline {
		t.Errorf("expected comment, whitespace and newline on hidden channel, got kinds %v", hiddenKinds)
	}

	def := ts.Default()
	if len(def) != 4 { // a, b, c, EOF
		t.Fatalf("expected 4 default-channel tokens (a b c EOF), got %d", len(def))
	}
}
