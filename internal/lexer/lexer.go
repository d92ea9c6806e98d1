// Package lexer implements the tokenizer for newtype source text.
package lexer

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/newtype-lang/newtype/internal/position"
)

// TokenType identifies the kind of a token.
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenError

	TokenIdent
	TokenNumber
	TokenString
	TokenTemplateString

	// Keywords
	TokenIf
	TokenThen
	TokenElse
	TokenMatch
	TokenCond
	TokenDo
	TokenEnd
	TokenLet
	TokenIn
	TokenTypeKeyword
	TokenExport
	TokenAnd
	TokenOr
	TokenNot
	TokenAs
	TokenReadonly

	// Operators and punctuation
	TokenExtends          // <:
	TokenNotExtends       // !<:
	TokenEquals           // ==
	TokenNotEquals        // !=
	TokenStrictEquals     // ===
	TokenStrictNotEquals  // !==
	TokenFatArrow         // =>
	TokenAssign           // =
	TokenLParen           // (
	TokenRParen           // )
	TokenLBracket         // [
	TokenRBracket         // ]
	TokenLBrace           // {
	TokenRBrace           // }
	TokenComma            // ,
	TokenColon            // :
	TokenDoubleColon      // ::
	TokenDot              // .
	TokenEllipsis         // ...
	TokenPipe             // |
	TokenAmpersand        // &
	TokenQuestion         // ?
	TokenPlus             // +
	TokenMinus            // -
	TokenStar             // *
	TokenSlash            // /
)

var keywords = map[string]TokenType{
	"if":       TokenIf,
	"then":     TokenThen,
	"else":     TokenElse,
	"match":    TokenMatch,
	"cond":     TokenCond,
	"do":       TokenDo,
	"end":      TokenEnd,
	"let":      TokenLet,
	"in":       TokenIn,
	"type":     TokenTypeKeyword,
	"export":   TokenExport,
	"and":      TokenAnd,
	"or":       TokenOr,
	"not":      TokenNot,
	"as":       TokenAs,
	"readonly": TokenReadonly,
}

// Token is a single lexical token with its source span.
type Token struct {
	Type   TokenType
	Lexeme string
	Span   position.Span
}

func (t Token) String() string {
	return fmt.Sprintf("%q@%s", t.Lexeme, t.Span.String())
}

// Lexer tokenizes a single source file.
type Lexer struct {
	file   *position.SourceFile
	offset int
	line   int
	column int
}

// New creates a lexer over the given source file.
func New(file *position.SourceFile) *Lexer {
	return &Lexer{file: file, line: 1, column: 1}
}

// Tokenize consumes the whole input and returns all tokens including the
// trailing EOF token.
func (l *Lexer) Tokenize() []Token {
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF || tok.Type == TokenError {
			return tokens
		}
	}
}

// NextToken scans and returns the next token.
func (l *Lexer) NextToken() Token {
	l.skipSpaceAndComments()

	start := l.position()
	if l.offset >= len(l.file.Content) {
		return Token{Type: TokenEOF, Span: position.Span{Start: start, End: start}}
	}

	r, size := l.peekRune()
	switch {
	case isIdentStart(r):
		return l.scanIdent(start)
	case unicode.IsDigit(r):
		return l.scanNumber(start)
	case r == '\'' || r == '"':
		return l.scanString(start, r)
	case r == '`':
		return l.scanTemplateString(start)
	}

	// Multi-rune operators first, longest match wins.
	rest := l.file.Content[l.offset:]
	for _, op := range operatorTable {
		if strings.HasPrefix(rest, op.text) {
			l.advanceBy(len(op.text))
			return l.token(op.typ, start)
		}
	}

	l.advanceBy(size)
	return Token{
		Type:   TokenError,
		Lexeme: string(r),
		Span:   position.Span{Start: start, End: l.position()},
	}
}

// operatorTable is ordered so longer operators match before their
// prefixes.
var operatorTable = []struct {
	text string
	typ  TokenType
}{
	{"!<:", TokenNotExtends},
	{"<:", TokenExtends},
	{"===", TokenStrictEquals},
	{"!==", TokenStrictNotEquals},
	{"==", TokenEquals},
	{"!=", TokenNotEquals},
	{"=>", TokenFatArrow},
	{"=", TokenAssign},
	{"...", TokenEllipsis},
	{"::", TokenDoubleColon},
	{":", TokenColon},
	{".", TokenDot},
	{"(", TokenLParen},
	{")", TokenRParen},
	{"[", TokenLBracket},
	{"]", TokenRBracket},
	{"{", TokenLBrace},
	{"}", TokenRBrace},
	{",", TokenComma},
	{"|", TokenPipe},
	{"&", TokenAmpersand},
	{"?", TokenQuestion},
	{"+", TokenPlus},
	{"-", TokenMinus},
	{"*", TokenStar},
	{"/", TokenSlash},
}

func (l *Lexer) scanIdent(start position.Position) Token {
	for l.offset < len(l.file.Content) {
		r, size := l.peekRune()
		if !isIdentPart(r) {
			break
		}
		l.advanceBy(size)
	}

	lexeme := l.file.Content[start.Offset:l.offset]
	typ := TokenIdent
	if kw, ok := keywords[lexeme]; ok {
		typ = kw
	}
	return Token{Type: typ, Lexeme: lexeme, Span: position.Span{Start: start, End: l.position()}}
}

func (l *Lexer) scanNumber(start position.Position) Token {
	sawDot := false
	for l.offset < len(l.file.Content) {
		r, size := l.peekRune()
		if r == '.' && !sawDot {
			// A trailing "..." belongs to a rest parameter, not the number.
			if strings.HasPrefix(l.file.Content[l.offset:], "...") {
				break
			}
			sawDot = true
			l.advanceBy(size)
			continue
		}
		if !unicode.IsDigit(r) && r != '_' {
			break
		}
		l.advanceBy(size)
	}
	return l.token(TokenNumber, start)
}

func (l *Lexer) scanString(start position.Position, quote rune) Token {
	l.advanceBy(1) // opening quote
	for l.offset < len(l.file.Content) {
		r, size := l.peekRune()
		if r == '\\' {
			l.advanceBy(size)
			if l.offset < len(l.file.Content) {
				_, esc := l.peekRune()
				l.advanceBy(esc)
			}
			continue
		}
		if r == quote {
			l.advanceBy(size)
			return l.token(TokenString, start)
		}
		if r == '\n' {
			break
		}
		l.advanceBy(size)
	}
	return Token{
		Type:   TokenError,
		Lexeme: "unterminated string",
		Span:   position.Span{Start: start, End: l.position()},
	}
}

func (l *Lexer) scanTemplateString(start position.Position) Token {
	l.advanceBy(1) // opening backtick
	for l.offset < len(l.file.Content) {
		r, size := l.peekRune()
		l.advanceBy(size)
		if r == '`' {
			return l.token(TokenTemplateString, start)
		}
	}
	return Token{
		Type:   TokenError,
		Lexeme: "unterminated template string",
		Span:   position.Span{Start: start, End: l.position()},
	}
}

func (l *Lexer) skipSpaceAndComments() {
	for l.offset < len(l.file.Content) {
		r, size := l.peekRune()
		switch {
		case unicode.IsSpace(r):
			l.advanceBy(size)
		case strings.HasPrefix(l.file.Content[l.offset:], "//"):
			for l.offset < len(l.file.Content) {
				r, size := l.peekRune()
				if r == '\n' {
					break
				}
				l.advanceBy(size)
			}
		default:
			return
		}
	}
}

func (l *Lexer) token(typ TokenType, start position.Position) Token {
	return Token{
		Type:   typ,
		Lexeme: l.file.Content[start.Offset:l.offset],
		Span:   position.Span{Start: start, End: l.position()},
	}
}

func (l *Lexer) position() position.Position {
	return position.Position{
		Filename: l.file.Filename,
		Line:     l.line,
		Column:   l.column,
		Offset:   l.offset,
	}
}

func (l *Lexer) peekRune() (rune, int) {
	return utf8.DecodeRuneInString(l.file.Content[l.offset:])
}

func (l *Lexer) advanceBy(bytes int) {
	for i := 0; i < bytes; i++ {
		if l.file.Content[l.offset] == '\n' {
			l.line++
			l.column = 1
		} else {
			l.column++
		}
		l.offset++
	}
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
