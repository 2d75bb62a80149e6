package oops

import (
	"strconv"
	"unicode"
)

// Lex turns source text into its token sequence. Whitespace and // comments
// are discarded; the first byte that starts no token aborts with a LexError
// carrying that byte's offset.
func Lex(source string) ([]Token, error) {
	l := &lexer{input: source}
	var tokens []Token
	for {
		l.skipWhitespaceAndComments()
		if l.atEnd() {
			return tokens, nil
		}
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}
}

type lexer struct {
	input  string
	offset int
}

func (l *lexer) atEnd() bool {
	return l.offset >= len(l.input)
}

func (l *lexer) skipWhitespaceAndComments() {
	for !l.atEnd() {
		switch {
		case isSpace(l.input[l.offset]):
			l.offset++
		case l.input[l.offset] == '/' && l.offset+1 < len(l.input) && l.input[l.offset+1] == '/':
			for !l.atEnd() && l.input[l.offset] != '\n' {
				l.offset++
			}
		default:
			return
		}
	}
}

func (l *lexer) next() (Token, error) {
	ch := l.input[l.offset]

	switch ch {
	case '=':
		return l.punct(tokenAssign), nil
	case ';':
		return l.punct(tokenSemicolon), nil
	case '[':
		return l.punct(tokenLBracket), nil
	case ']':
		return l.punct(tokenRBracket), nil
	case '{':
		return l.punct(tokenLBrace), nil
	case '}':
		return l.punct(tokenRBrace), nil
	case '(':
		return l.punct(tokenLParen), nil
	case ')':
		return l.punct(tokenRParen), nil
	case ':':
		return l.punct(tokenColon), nil
	case '@':
		return l.punct(tokenAt), nil
	case '#':
		return l.punct(tokenHash), nil
	case ',':
		return l.punct(tokenComma), nil
	case '|':
		return l.punct(tokenPipe), nil
	}

	switch {
	case isNameByte(ch):
		return l.readName(), nil
	case isDigit(ch):
		return l.readNumber()
	default:
		return Token{}, &LexError{At: l.offset}
	}
}

func (l *lexer) punct(tt TokenType) Token {
	tok := Token{
		Type:    tt,
		Literal: string(tt),
		Span:    Span{From: l.offset, To: l.offset + 1},
	}
	l.offset++
	return tok
}

func (l *lexer) readName() Token {
	start := l.offset
	for !l.atEnd() && isNameByte(l.input[l.offset]) {
		l.offset++
	}
	literal := l.input[start:l.offset]
	span := Span{From: start, To: l.offset}

	if tt, ok := keywordTypes[literal]; ok {
		return Token{Type: tt, Literal: literal, Span: span}
	}
	if unicode.IsUpper(rune(literal[0])) {
		return Token{Type: tokenClassName, Literal: literal, Span: span}
	}
	return Token{Type: tokenName, Literal: literal, Span: span}
}

func (l *lexer) readNumber() (Token, error) {
	start := l.offset
	for !l.atEnd() && isDigit(l.input[l.offset]) {
		l.offset++
	}
	literal := l.input[start:l.offset]
	n, err := strconv.ParseInt(literal, 10, 32)
	if err != nil {
		// i32 overflow; the digits themselves already scanned
		return Token{}, &LexError{At: start}
	}
	return Token{
		Type:    tokenNumber,
		Literal: literal,
		Number:  int32(n),
		Span:    Span{From: start, To: l.offset},
	}, nil
}

var keywordTypes = map[string]TokenType{
	"let":    tokenLet,
	"self":   tokenSelf,
	"return": tokenReturn,
	"true":   tokenTrue,
	"false":  tokenFalse,
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

func isNameByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
