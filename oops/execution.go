package oops

import "fmt"

// Execution evaluates statements against a fully built class table. The
// table is never written to during evaluation; class and method definitions
// encountered in a statement sequence are no-ops here, having already been
// consumed by the table builder.
type Execution struct {
	classes *ClassTable
}

// NewExecution wraps a class table for evaluation.
func NewExecution(classes *ClassTable) *Execution {
	return &Execution{classes: classes}
}

// frame is one activation: a flat local mapping and an optional self. Block
// bodies do not open nested scopes; a method body shares a single frame.
type frame struct {
	locals map[string]Value
	self   *Value
}

func newFrame() *frame {
	return &frame{locals: map[string]Value{}}
}

// runStatements executes a statement sequence under the return rule: once a
// statement produces a return value, every following statement in the same
// sequence is skipped. The bool reports whether a return fired.
func (e *Execution) runStatements(stmts []Stmt, fr *frame) (Value, bool, error) {
	for _, stmt := range stmts {
		value, returned, err := e.runStatement(stmt, fr)
		if err != nil {
			return NewNil(), false, err
		}
		if returned {
			return value, true, nil
		}
	}
	return NewNil(), false, nil
}

func (e *Execution) runStatement(stmt Stmt, fr *frame) (Value, bool, error) {
	switch s := stmt.(type) {
	case *LetLocalStmt:
		value, err := e.evalExpr(s.Value, fr)
		if err != nil {
			return NewNil(), false, err
		}
		fr.locals[s.Ident.Name] = value
		return NewNil(), false, nil

	case *LetIVarStmt:
		inst, err := e.instanceSelf(fr, s.Span())
		if err != nil {
			return NewNil(), false, err
		}
		value, err := e.evalExpr(s.Value, fr)
		if err != nil {
			return NewNil(), false, err
		}
		inst.IVars[s.Ident.Name] = value
		return NewNil(), false, nil

	case *MessageSendStmt:
		if _, err := e.evalExpr(s.Send, fr); err != nil {
			return NewNil(), false, err
		}
		return NewNil(), false, nil

	case *ReturnStmt:
		value, err := e.evalExpr(s.Value, fr)
		if err != nil {
			return NewNil(), false, err
		}
		return value, true, nil

	case *DefineClassStmt, *DefineMethodStmt:
		return NewNil(), false, nil

	default:
		return NewNil(), false, fmt.Errorf("unhandled statement %T", stmt)
	}
}

func (e *Execution) evalExpr(expr Expr, fr *frame) (Value, error) {
	switch x := expr.(type) {
	case *NumberLiteral:
		return NewNumber(x.Value), nil

	case *BoolLiteral:
		return NewBool(x.Value), nil

	case *ListLiteral:
		items := make([]Value, 0, len(x.Items))
		for _, item := range x.Items {
			value, err := e.evalExpr(item, fr)
			if err != nil {
				return NewNil(), err
			}
			items = append(items, value)
		}
		return NewList(items), nil

	case *LocalExpr:
		value, ok := fr.locals[x.Name]
		if !ok {
			return NewNil(), &UndefinedLocalError{Name: x.Name, Span: x.Span()}
		}
		return value, nil

	case *IVarExpr:
		if fr.self == nil {
			return NewNil(), &IVarAccessedOutsideMethodError{Name: x.Name, Span: x.Span()}
		}
		if fr.self.Kind() != KindInstance {
			return NewNil(), &IVarAccessedOnNonInstanceError{Span: x.Span()}
		}
		value, ok := fr.self.Instance().IVars[x.Name]
		if !ok {
			return NewNil(), &UndefinedIVarError{Name: x.Name, Span: x.Span()}
		}
		return value, nil

	case *SelfExpr:
		if fr.self == nil {
			return NewNil(), &NoSelfError{Span: x.Span()}
		}
		return *fr.self, nil

	case *SelectorExpr, *ClassSelectorExpr:
		// Selectors only occur as syntax inside definitions; as values
		// they evaluate to nothing.
		return NewNil(), nil

	case *BlockLiteral:
		return NewNil(), &BlockValueError{Span: x.Span()}

	case *NewExpr:
		return e.evalNew(x, fr)

	case *MessageSendExpr:
		return e.evalMessageSend(x, fr)

	default:
		return NewNil(), fmt.Errorf("unhandled expression %T", expr)
	}
}

func (e *Execution) evalNew(x *NewExpr, fr *frame) (Value, error) {
	class := e.classes.Lookup(x.ClassName.Name)
	if class == nil {
		return NewNil(), &ClassNotDefinedError{Class: x.ClassName.Name, Span: x.Span()}
	}
	names := make([]string, len(class.Fields))
	for i, field := range class.Fields {
		names[i] = field.Name
	}
	ivars, err := e.bindArguments(names, x.Args, fr, x.Span())
	if err != nil {
		return NewNil(), err
	}
	return NewInstance(&Instance{Class: class, IVars: ivars}), nil
}

func (e *Execution) evalMessageSend(x *MessageSendExpr, fr *frame) (Value, error) {
	receiver, err := e.evalExpr(x.Receiver, fr)
	if err != nil {
		return NewNil(), err
	}
	if receiver.Kind() != KindInstance {
		return NewNil(), &MessageSentToNonInstanceError{Span: x.Span()}
	}
	inst := receiver.Instance()
	method := inst.Class.lookupMethod(x.Selector.Name)
	if method == nil {
		return NewNil(), &UndefinedMethodError{
			Class:  inst.Class.Name,
			Method: x.Selector.Name,
			Span:   x.Span(),
		}
	}
	names := make([]string, len(method.Params))
	for i, param := range method.Params {
		names[i] = param.Ident.Name
	}
	// Arguments are bound in the caller's frame; the callee starts with
	// only its parameters and the receiver as self.
	locals, err := e.bindArguments(names, x.Args, fr, x.Span())
	if err != nil {
		return NewNil(), err
	}
	callee := &frame{locals: locals, self: &receiver}
	value, returned, err := e.runStatements(method.Body, callee)
	if err != nil {
		return NewNil(), err
	}
	if !returned {
		return NewNil(), nil
	}
	return value, nil
}

// instanceSelf fetches the current self as an instance for writing an
// instance variable, distinguishing a missing self from a non-instance one.
func (e *Execution) instanceSelf(fr *frame, at Span) (*Instance, error) {
	if fr.self == nil {
		return nil, &IVarAccessedWithoutSelfError{Span: at}
	}
	if fr.self.Kind() != KindInstance {
		return nil, &IVarAccessedOnNonInstanceError{Span: at}
	}
	return fr.self.Instance(), nil
}

// bindArguments matches provided keyword arguments against the required
// names, in declaration order. Argument expressions are evaluated first,
// left to right, in the caller's frame. The first required name with no
// matching label fails at the call-site span; once all required names are
// satisfied, the first leftover argument fails at its own span.
func (e *Execution) bindArguments(names []string, args []Argument, fr *frame, callSpan Span) (map[string]Value, error) {
	values := make([]Value, len(args))
	for i, arg := range args {
		value, err := e.evalExpr(arg.Value, fr)
		if err != nil {
			return nil, err
		}
		values[i] = value
	}

	consumed := make([]bool, len(args))
	bound := make(map[string]Value, len(names))
	for _, name := range names {
		found := false
		for i, arg := range args {
			if !consumed[i] && arg.Label.Name == name {
				consumed[i] = true
				bound[name] = values[i]
				found = true
				break
			}
		}
		if !found {
			return nil, &MissingArgumentError{Name: name, Span: callSpan}
		}
	}
	for i, arg := range args {
		if !consumed[i] {
			return nil, &UnexpectedArgumentError{Name: arg.Label.Name, Span: arg.Span()}
		}
	}
	return bound, nil
}
