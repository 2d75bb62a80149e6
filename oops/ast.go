package oops

type Node interface {
	Span() Span
}

type Stmt interface {
	Node
	stmtNode()
}

type Expr interface {
	Node
	exprNode()
}

// Ident is a name together with where it was written.
type Ident struct {
	Name string
	span Span
}

func (i Ident) Span() Span { return i.span }

//
// Statements
//

type LetLocalStmt struct {
	Ident Ident
	Value Expr
	span  Span
}

func (s *LetLocalStmt) stmtNode()  {}
func (s *LetLocalStmt) Span() Span { return s.span }

type LetIVarStmt struct {
	Ident Ident
	Value Expr
	span  Span
}

func (s *LetIVarStmt) stmtNode()  {}
func (s *LetIVarStmt) Span() Span { return s.span }

type MessageSendStmt struct {
	Send *MessageSendExpr
	span Span
}

func (s *MessageSendStmt) stmtNode()  {}
func (s *MessageSendStmt) Span() Span { return s.span }

type ReturnStmt struct {
	Value Expr
	span  Span
}

func (s *ReturnStmt) stmtNode()  {}
func (s *ReturnStmt) Span() Span { return s.span }

type DefineMethodStmt struct {
	ClassName  Ident
	MethodName Ident
	Block      *BlockLiteral
	span       Span
}

func (s *DefineMethodStmt) stmtNode()  {}
func (s *DefineMethodStmt) Span() Span { return s.span }

type DefineClassStmt struct {
	Name      Ident
	SuperName Ident
	Fields    []Ident
	span      Span
}

func (s *DefineClassStmt) stmtNode()  {}
func (s *DefineClassStmt) Span() Span { return s.span }

//
// Expressions
//

type LocalExpr struct {
	Name string
	span Span
}

func (e *LocalExpr) exprNode()  {}
func (e *LocalExpr) Span() Span { return e.span }

type IVarExpr struct {
	Name string
	span Span
}

func (e *IVarExpr) exprNode()  {}
func (e *IVarExpr) Span() Span { return e.span }

// MessageSendExpr is [receiver selector arg...].
type MessageSendExpr struct {
	Receiver Expr
	Selector Ident
	Args     []Argument
	span     Span
}

func (e *MessageSendExpr) exprNode()  {}
func (e *MessageSendExpr) Span() Span { return e.span }

// NewExpr is [ClassName new arg...].
type NewExpr struct {
	ClassName Ident
	Args      []Argument
	span      Span
}

func (e *NewExpr) exprNode()  {}
func (e *NewExpr) Span() Span { return e.span }

// Argument is one label: value pair in a message send or new call.
type Argument struct {
	Label Ident
	Value Expr
	span  Span
}

func (a Argument) Span() Span { return a.span }

// SelectorExpr is a #name literal.
type SelectorExpr struct {
	Name string
	span Span
}

func (e *SelectorExpr) exprNode()  {}
func (e *SelectorExpr) Span() Span { return e.span }

// ClassSelectorExpr is a #ClassName literal.
type ClassSelectorExpr struct {
	Name string
	span Span
}

func (e *ClassSelectorExpr) exprNode()  {}
func (e *ClassSelectorExpr) Span() Span { return e.span }

type BlockLiteral struct {
	Params []Param
	Body   []Stmt
	span   Span
}

func (e *BlockLiteral) exprNode()  {}
func (e *BlockLiteral) Span() Span { return e.span }

// Param is one name: entry between the pipes of a block.
type Param struct {
	Ident Ident
	span  Span
}

func (p Param) Span() Span { return p.span }

type NumberLiteral struct {
	Value int32
	span  Span
}

func (e *NumberLiteral) exprNode()  {}
func (e *NumberLiteral) Span() Span { return e.span }

type ListLiteral struct {
	Items []Expr
	span  Span
}

func (e *ListLiteral) exprNode()  {}
func (e *ListLiteral) Span() Span { return e.span }

type BoolLiteral struct {
	Value bool
	span  Span
}

func (e *BoolLiteral) exprNode()  {}
func (e *BoolLiteral) Span() Span { return e.span }

type SelfExpr struct {
	span Span
}

func (e *SelfExpr) exprNode()  {}
func (e *SelfExpr) Span() Span { return e.span }
