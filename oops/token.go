package oops

import "fmt"

// Span is a half-open byte range into the source text. Every token and AST
// node carries one; spans feed diagnostics only, never semantics.
type Span struct {
	From int
	To   int
}

func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.From, s.To)
}

type TokenType string

const (
	tokenName      TokenType = "NAME"
	tokenClassName TokenType = "CLASS_NAME"
	tokenNumber    TokenType = "NUMBER"

	tokenLet    TokenType = "LET"
	tokenSelf   TokenType = "SELF"
	tokenReturn TokenType = "RETURN"
	tokenTrue   TokenType = "TRUE"
	tokenFalse  TokenType = "FALSE"

	tokenAssign    TokenType = "="
	tokenSemicolon TokenType = ";"
	tokenLBracket  TokenType = "["
	tokenRBracket  TokenType = "]"
	tokenLBrace    TokenType = "{"
	tokenRBrace    TokenType = "}"
	tokenLParen    TokenType = "("
	tokenRParen    TokenType = ")"
	tokenColon     TokenType = ":"
	tokenAt        TokenType = "@"
	tokenHash      TokenType = "#"
	tokenComma     TokenType = ","
	tokenPipe      TokenType = "|"
)

type Token struct {
	Type    TokenType
	Literal string
	Number  int32 // set only for tokenNumber
	Span    Span
}

// String is the token's display form as it appears in diagnostics.
func (t Token) String() string {
	return t.Literal
}

// tokenLabel names a token type the way expectation messages spell it.
func tokenLabel(tt TokenType) string {
	switch tt {
	case tokenName:
		return "name"
	case tokenClassName:
		return "class name"
	case tokenNumber:
		return "number"
	case tokenLet:
		return "let"
	case tokenSelf:
		return "self"
	case tokenReturn:
		return "return"
	case tokenTrue:
		return "true"
	case tokenFalse:
		return "false"
	default:
		return string(tt)
	}
}
