package oops

import "fmt"

// Parse consumes the whole token sequence and produces the program's
// statements, or a ParseError describing the first unparsable input. The
// grammar is resolved by naive ordered alternation: each alternative is
// attempted in a fixed order with full backtrack on failure, and the first
// one that parses completely wins. No partial AST survives a failure.
func Parse(tokens []Token) ([]Stmt, error) {
	p := &parser{tokens: tokens, failPos: -1}

	program := many(p, p.parseStmt)
	if !p.atEnd() {
		// When every branch died at end of input inside an unclosed
		// bracket, the missing ']' is the better report than whichever
		// inner expectation happened to record last.
		if p.failPos >= len(p.tokens) && unclosedBracket(p.tokens) {
			return nil, p.failAt(len(p.tokens), fmt.Sprintf("Expected '%s' but got end of input", tokenRBracket))
		}
		return nil, p.giveUp("expected end of input")
	}
	return program, nil
}

func unclosedBracket(tokens []Token) bool {
	depth := 0
	for _, tok := range tokens {
		switch tok.Type {
		case tokenLBracket:
			depth++
		case tokenRBracket:
			if depth > 0 {
				depth--
			}
		}
	}
	return depth > 0
}

type parser struct {
	tokens []Token
	pos    int

	// The expectation that failed furthest into the stream, across every
	// backtracked branch. Reported when the parse as a whole gives up.
	failPos int
	failMsg string
}

func (p *parser) atEnd() bool {
	return p.pos >= len(p.tokens)
}

// expect consumes the next token and fails unless it has the wanted type.
// The cursor has already moved past the mismatch; recovery is the caller's
// problem, via backtracking.
func (p *parser) expect(tt TokenType) (Token, error) {
	if p.atEnd() {
		return Token{}, p.failAt(len(p.tokens), fmt.Sprintf("Expected '%s' but got end of input", tokenLabel(tt)))
	}
	tok := p.tokens[p.pos]
	p.pos++
	if tok.Type != tt {
		return Token{}, p.failAt(p.pos-1, fmt.Sprintf("Expected '%s' but got '%s'", tokenLabel(tt), tok))
	}
	return tok, nil
}

// expectWord consumes a name token and requires its exact text; the
// keyword-ish identifiers (def, do, name, super, fields, new, subclass) are
// ordinary names in the token stream.
func (p *parser) expectWord(word string) (Token, error) {
	tok, err := p.expect(tokenName)
	if err != nil {
		return Token{}, err
	}
	if tok.Literal != word {
		return Token{}, p.failAt(p.pos-1, fmt.Sprintf("Expected '%s' but got '%s'", word, tok))
	}
	return tok, nil
}

// expectClassWord is expectWord for a class-name token (only "Class").
func (p *parser) expectClassWord(word string) (Token, error) {
	tok, err := p.expect(tokenClassName)
	if err != nil {
		return Token{}, err
	}
	if tok.Literal != word {
		return Token{}, p.failAt(p.pos-1, fmt.Sprintf("Expected '%s' but got '%s'", word, tok))
	}
	return tok, nil
}

func (p *parser) tryToken(tt TokenType) (Token, bool) {
	start := p.pos
	tok, err := p.expect(tt)
	if err != nil {
		p.pos = start
		return Token{}, false
	}
	return tok, true
}

func (p *parser) failAt(idx int, msg string) error {
	if idx >= p.failPos {
		p.failPos = idx
		p.failMsg = msg
	}
	return &ParseError{Message: msg}
}

// giveUp builds the error for an exhausted alternation: the furthest
// recorded expectation if there is one, else the fallback message.
func (p *parser) giveUp(fallback string) error {
	if p.failMsg != "" {
		return &ParseError{Message: p.failMsg}
	}
	return &ParseError{Message: fallback}
}

// tryParse attempts one parse function; on failure the cursor snaps back to
// where it was and the branch reports no match. This is the parser's sole
// backtracking mechanism.
func tryParse[T any](p *parser, parse func() (T, error)) (T, bool) {
	start := p.pos
	node, err := parse()
	if err != nil {
		p.pos = start
		var zero T
		return zero, false
	}
	return node, true
}

// many applies parse until it stops matching or the stream ends. It never
// itself fails; zero matches yields an empty sequence.
func many[T any](p *parser, parse func() (T, error)) []T {
	var acc []T
	for !p.atEnd() {
		node, ok := tryParse(p, parse)
		if !ok {
			break
		}
		acc = append(acc, node)
	}
	return acc
}

// manyDelimited is many with a required separator token between items; it
// stops without error when either the item or the separator fails.
func manyDelimited[T any](p *parser, parse func() (T, error), sep TokenType) []T {
	var acc []T
	for !p.atEnd() {
		node, ok := tryParse(p, parse)
		if !ok {
			break
		}
		acc = append(acc, node)
		if _, ok := p.tryToken(sep); !ok {
			break
		}
	}
	return acc
}

//
// Statements
//

func (p *parser) parseStmt() (Stmt, error) {
	if node, ok := tryParse(p, p.parseDefineClass); ok {
		return node, nil
	}
	if node, ok := tryParse(p, p.parseDefineMethod); ok {
		return node, nil
	}
	if node, ok := tryParse(p, p.parseLetLocal); ok {
		return node, nil
	}
	if node, ok := tryParse(p, p.parseLetIVar); ok {
		return node, nil
	}
	if node, ok := tryParse(p, p.parseMessageSendStmt); ok {
		return node, nil
	}
	if node, ok := tryParse(p, p.parseReturn); ok {
		return node, nil
	}
	return nil, p.giveUp("statement expected")
}

func (p *parser) parseLetLocal() (*LetLocalStmt, error) {
	start, err := p.expect(tokenLet)
	if err != nil {
		return nil, err
	}
	ident, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokenAssign); err != nil {
		return nil, err
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	end, err := p.expect(tokenSemicolon)
	if err != nil {
		return nil, err
	}
	return &LetLocalStmt{
		Ident: ident,
		Value: value,
		span:  Span{From: start.Span.From, To: end.Span.To},
	}, nil
}

func (p *parser) parseLetIVar() (*LetIVarStmt, error) {
	start, err := p.expect(tokenLet)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokenAt); err != nil {
		return nil, err
	}
	ident, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokenAssign); err != nil {
		return nil, err
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	end, err := p.expect(tokenSemicolon)
	if err != nil {
		return nil, err
	}
	return &LetIVarStmt{
		Ident: ident,
		Value: value,
		span:  Span{From: start.Span.From, To: end.Span.To},
	}, nil
}

func (p *parser) parseMessageSendStmt() (*MessageSendStmt, error) {
	send, err := p.parseMessageSend()
	if err != nil {
		return nil, err
	}
	end, err := p.expect(tokenSemicolon)
	if err != nil {
		return nil, err
	}
	return &MessageSendStmt{
		Send: send,
		span: Span{From: send.Span().From, To: end.Span.To},
	}, nil
}

func (p *parser) parseReturn() (*ReturnStmt, error) {
	start, err := p.expect(tokenReturn)
	if err != nil {
		return nil, err
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	end, err := p.expect(tokenSemicolon)
	if err != nil {
		return nil, err
	}
	return &ReturnStmt{
		Value: value,
		span:  Span{From: start.Span.From, To: end.Span.To},
	}, nil
}

// parseDefineMethod matches [ClassName def: #selector do: |params| { body }];
func (p *parser) parseDefineMethod() (*DefineMethodStmt, error) {
	start, err := p.expect(tokenLBracket)
	if err != nil {
		return nil, err
	}
	className, err := p.parseClassIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectWord("def"); err != nil {
		return nil, err
	}
	if _, err := p.expect(tokenColon); err != nil {
		return nil, err
	}
	methodName, err := p.parseSelectorIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectWord("do"); err != nil {
		return nil, err
	}
	if _, err := p.expect(tokenColon); err != nil {
		return nil, err
	}
	block, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokenRBracket); err != nil {
		return nil, err
	}
	end, err := p.expect(tokenSemicolon)
	if err != nil {
		return nil, err
	}
	return &DefineMethodStmt{
		ClassName:  className,
		MethodName: methodName,
		Block:      block,
		span:       Span{From: start.Span.From, To: end.Span.To},
	}, nil
}

// parseDefineClass matches
// [Class subclass name: #Name super: #Super fields: [#a #b]];
func (p *parser) parseDefineClass() (*DefineClassStmt, error) {
	start, err := p.expect(tokenLBracket)
	if err != nil {
		return nil, err
	}
	if _, err := p.expectClassWord("Class"); err != nil {
		return nil, err
	}
	if _, err := p.expectWord("subclass"); err != nil {
		return nil, err
	}
	if _, err := p.expectWord("name"); err != nil {
		return nil, err
	}
	if _, err := p.expect(tokenColon); err != nil {
		return nil, err
	}
	name, err := p.parseClassSelectorIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectWord("super"); err != nil {
		return nil, err
	}
	if _, err := p.expect(tokenColon); err != nil {
		return nil, err
	}
	superName, err := p.parseClassSelectorIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectWord("fields"); err != nil {
		return nil, err
	}
	if _, err := p.expect(tokenColon); err != nil {
		return nil, err
	}
	if _, err := p.expect(tokenLBracket); err != nil {
		return nil, err
	}
	fields := many(p, p.parseSelectorIdent)
	if _, err := p.expect(tokenRBracket); err != nil {
		return nil, err
	}
	if _, err := p.expect(tokenRBracket); err != nil {
		return nil, err
	}
	end, err := p.expect(tokenSemicolon)
	if err != nil {
		return nil, err
	}
	return &DefineClassStmt{
		Name:      name,
		SuperName: superName,
		Fields:    fields,
		span:      Span{From: start.Span.From, To: end.Span.To},
	}, nil
}

//
// Expressions
//

func (p *parser) parseExpr() (Expr, error) {
	if node, ok := tryParse(p, p.parseClassSelector); ok {
		return node, nil
	}
	if node, ok := tryParse(p, p.parseNew); ok {
		return node, nil
	}
	if node, ok := tryParse(p, p.parseLocal); ok {
		return node, nil
	}
	if node, ok := tryParse(p, p.parseIVar); ok {
		return node, nil
	}
	if node, ok := tryParse(p, p.parseSelector); ok {
		return node, nil
	}
	if node, ok := tryParse(p, p.parseBlock); ok {
		return node, nil
	}
	if node, ok := tryParse(p, p.parseNumber); ok {
		return node, nil
	}
	if node, ok := tryParse(p, p.parseList); ok {
		return node, nil
	}
	if node, ok := tryParse(p, p.parseBool); ok {
		return node, nil
	}
	if node, ok := tryParse(p, p.parseSelf); ok {
		return node, nil
	}
	if node, ok := tryParse(p, p.parseMessageSend); ok {
		return node, nil
	}
	return nil, p.giveUp("expression expected")
}

func (p *parser) parseIdent() (Ident, error) {
	tok, err := p.expect(tokenName)
	if err != nil {
		return Ident{}, err
	}
	return Ident{Name: tok.Literal, span: tok.Span}, nil
}

func (p *parser) parseClassIdent() (Ident, error) {
	tok, err := p.expect(tokenClassName)
	if err != nil {
		return Ident{}, err
	}
	return Ident{Name: tok.Literal, span: tok.Span}, nil
}

// parseSelectorIdent matches #name; the span covers the hash.
func (p *parser) parseSelectorIdent() (Ident, error) {
	start, err := p.expect(tokenHash)
	if err != nil {
		return Ident{}, err
	}
	tok, err := p.expect(tokenName)
	if err != nil {
		return Ident{}, err
	}
	return Ident{Name: tok.Literal, span: Span{From: start.Span.From, To: tok.Span.To}}, nil
}

// parseClassSelectorIdent matches #ClassName; the span covers the hash.
func (p *parser) parseClassSelectorIdent() (Ident, error) {
	start, err := p.expect(tokenHash)
	if err != nil {
		return Ident{}, err
	}
	tok, err := p.expect(tokenClassName)
	if err != nil {
		return Ident{}, err
	}
	return Ident{Name: tok.Literal, span: Span{From: start.Span.From, To: tok.Span.To}}, nil
}

func (p *parser) parseLocal() (*LocalExpr, error) {
	tok, err := p.expect(tokenName)
	if err != nil {
		return nil, err
	}
	return &LocalExpr{Name: tok.Literal, span: tok.Span}, nil
}

func (p *parser) parseIVar() (*IVarExpr, error) {
	start, err := p.expect(tokenAt)
	if err != nil {
		return nil, err
	}
	tok, err := p.expect(tokenName)
	if err != nil {
		return nil, err
	}
	return &IVarExpr{Name: tok.Literal, span: Span{From: start.Span.From, To: tok.Span.To}}, nil
}

func (p *parser) parseSelector() (*SelectorExpr, error) {
	ident, err := p.parseSelectorIdent()
	if err != nil {
		return nil, err
	}
	return &SelectorExpr{Name: ident.Name, span: ident.Span()}, nil
}

func (p *parser) parseClassSelector() (*ClassSelectorExpr, error) {
	ident, err := p.parseClassSelectorIdent()
	if err != nil {
		return nil, err
	}
	return &ClassSelectorExpr{Name: ident.Name, span: ident.Span()}, nil
}

func (p *parser) parseBlock() (*BlockLiteral, error) {
	start, err := p.expect(tokenPipe)
	if err != nil {
		return nil, err
	}
	params := many(p, p.parseParam)
	if _, err := p.expect(tokenPipe); err != nil {
		return nil, err
	}
	if _, err := p.expect(tokenLBrace); err != nil {
		return nil, err
	}
	body := many(p, p.parseStmt)
	end, err := p.expect(tokenRBrace)
	if err != nil {
		return nil, err
	}
	return &BlockLiteral{
		Params: params,
		Body:   body,
		span:   Span{From: start.Span.From, To: end.Span.To},
	}, nil
}

func (p *parser) parseParam() (Param, error) {
	ident, err := p.parseIdent()
	if err != nil {
		return Param{}, err
	}
	end, err := p.expect(tokenColon)
	if err != nil {
		return Param{}, err
	}
	return Param{Ident: ident, span: Span{From: ident.Span().From, To: end.Span.To}}, nil
}

func (p *parser) parseNumber() (*NumberLiteral, error) {
	tok, err := p.expect(tokenNumber)
	if err != nil {
		return nil, err
	}
	return &NumberLiteral{Value: tok.Number, span: tok.Span}, nil
}

func (p *parser) parseList() (*ListLiteral, error) {
	start, err := p.expect(tokenLBracket)
	if err != nil {
		return nil, err
	}
	items := manyDelimited(p, p.parseExpr, tokenComma)
	end, err := p.expect(tokenRBracket)
	if err != nil {
		return nil, err
	}
	return &ListLiteral{
		Items: items,
		span:  Span{From: start.Span.From, To: end.Span.To},
	}, nil
}

func (p *parser) parseBool() (*BoolLiteral, error) {
	if tok, ok := p.tryToken(tokenTrue); ok {
		return &BoolLiteral{Value: true, span: tok.Span}, nil
	}
	tok, err := p.expect(tokenFalse)
	if err != nil {
		return nil, err
	}
	return &BoolLiteral{Value: false, span: tok.Span}, nil
}

func (p *parser) parseSelf() (*SelfExpr, error) {
	tok, err := p.expect(tokenSelf)
	if err != nil {
		return nil, err
	}
	return &SelfExpr{span: tok.Span}, nil
}

// parseNew matches [ClassName new label: expr ...].
func (p *parser) parseNew() (*NewExpr, error) {
	start, err := p.expect(tokenLBracket)
	if err != nil {
		return nil, err
	}
	className, err := p.parseClassIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectWord("new"); err != nil {
		return nil, err
	}
	args := many(p, p.parseArgument)
	end, err := p.expect(tokenRBracket)
	if err != nil {
		return nil, err
	}
	return &NewExpr{
		ClassName: className,
		Args:      args,
		span:      Span{From: start.Span.From, To: end.Span.To},
	}, nil
}

// parseMessageSend matches [receiver selector label: expr ...].
func (p *parser) parseMessageSend() (*MessageSendExpr, error) {
	start, err := p.expect(tokenLBracket)
	if err != nil {
		return nil, err
	}
	receiver, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	selector, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	args := many(p, p.parseArgument)
	end, err := p.expect(tokenRBracket)
	if err != nil {
		return nil, err
	}
	return &MessageSendExpr{
		Receiver: receiver,
		Selector: selector,
		Args:     args,
		span:     Span{From: start.Span.From, To: end.Span.To},
	}, nil
}

func (p *parser) parseArgument() (Argument, error) {
	label, err := p.parseIdent()
	if err != nil {
		return Argument{}, err
	}
	if _, err := p.expect(tokenColon); err != nil {
		return Argument{}, err
	}
	value, err := p.parseExpr()
	if err != nil {
		return Argument{}, err
	}
	return Argument{
		Label: label,
		Value: value,
		span:  Span{From: label.Span().From, To: value.Span().To},
	}, nil
}
