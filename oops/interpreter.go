package oops

// Compile runs the front half of the pipeline: lex, parse, and build the
// class table. The returned Script is ready to run. The first failure from
// any stage aborts compilation.
func Compile(source string) (*Script, error) {
	tokens, err := Lex(source)
	if err != nil {
		return nil, err
	}
	program, err := Parse(tokens)
	if err != nil {
		return nil, err
	}
	classes := NewClassTable()
	if err := classes.AddProgram(program); err != nil {
		return nil, err
	}
	return &Script{program: program, classes: classes}, nil
}

// Script is a compiled program: its statements plus the validated class
// table built from them.
type Script struct {
	program []Stmt
	classes *ClassTable
}

// Classes exposes the script's class table.
func (s *Script) Classes() *ClassTable {
	return s.classes
}

// Run executes the program's top-level statements in a fresh frame with no
// self. A top-level return stops the program and becomes Run's result;
// otherwise the result is Nil.
func (s *Script) Run() (Value, error) {
	exec := NewExecution(s.classes)
	value, _, err := exec.runStatements(s.program, newFrame())
	if err != nil {
		return NewNil(), err
	}
	return value, nil
}

// Run compiles and executes source in one step.
func Run(source string) (Value, error) {
	script, err := Compile(source)
	if err != nil {
		return NewNil(), err
	}
	return script.Run()
}

// Session keeps a class table and top-level locals alive across multiple
// inputs, so definitions and bindings from one Eval are visible to the
// next. Intended for interactive use.
type Session struct {
	classes *ClassTable
	top     *frame
}

// NewSession builds an empty session holding only the built-in Object
// class.
func NewSession() *Session {
	return &Session{classes: NewClassTable(), top: newFrame()}
}

// Eval lexes, parses, registers definitions from, and executes one unit of
// source against the session state. Class and method definitions are folded
// into the session's table before any statement runs. A failed Eval leaves
// previously established locals untouched, though definitions registered
// before the failure remain.
func (s *Session) Eval(source string) (Value, error) {
	tokens, err := Lex(source)
	if err != nil {
		return NewNil(), err
	}
	program, err := Parse(tokens)
	if err != nil {
		return NewNil(), err
	}
	if err := s.classes.AddProgram(program); err != nil {
		return NewNil(), err
	}
	exec := NewExecution(s.classes)
	value, _, err := exec.runStatements(program, s.top)
	if err != nil {
		return NewNil(), err
	}
	return value, nil
}

// Locals returns the names bound at the session's top level, in no
// particular order.
func (s *Session) Locals() []string {
	names := make([]string, 0, len(s.top.locals))
	for name := range s.top.locals {
		names = append(names, name)
	}
	return names
}

// ClassNames returns the names of every class the session knows about.
func (s *Session) ClassNames() []string {
	return s.classes.Names()
}
