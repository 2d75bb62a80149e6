package oops

import "fmt"

// The pipeline surfaces exactly one of these per run: the first failure from
// lexing, parsing, class-table building, or evaluation aborts everything.
// Error payloads own their strings; nothing borrows from tokens or the AST.

// LexError reports the byte offset of the first unrecognized input.
type LexError struct {
	At int
}

func (e *LexError) Error() string {
	return fmt.Sprintf("Unexpected token at %d", e.At)
}

// ParseError carries the human-readable reason the parse gave up.
type ParseError struct {
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("Parse error: %s", e.Message)
}

type ClassNotDefinedError struct {
	Class string
	Span  Span
}

func (e *ClassNotDefinedError) Error() string {
	return fmt.Sprintf("The class `%s` is not defined", e.Class)
}

type ClassAlreadyDefinedError struct {
	Class      string
	FirstSpan  Span
	SecondSpan Span
}

func (e *ClassAlreadyDefinedError) Error() string {
	return fmt.Sprintf(
		"The class `%s` was defined more than once. First time at %s, second time at %s",
		e.Class, e.FirstSpan, e.SecondSpan,
	)
}

type MethodAlreadyDefinedError struct {
	Class      string
	Method     string
	FirstSpan  Span
	SecondSpan Span
}

func (e *MethodAlreadyDefinedError) Error() string {
	return fmt.Sprintf(
		"The method `%s#%s` was defined more than once. First time at %s, second time at %s",
		e.Class, e.Method, e.FirstSpan, e.SecondSpan,
	)
}

type SuperclassCycleError struct {
	Class string
	Span  Span
}

func (e *SuperclassCycleError) Error() string {
	return fmt.Sprintf("The class `%s` has a cyclic superclass chain", e.Class)
}

type UndefinedLocalError struct {
	Name string
	Span Span
}

func (e *UndefinedLocalError) Error() string {
	return fmt.Sprintf("Undefined local variable `%s` at %s", e.Name, e.Span)
}

type MissingArgumentError struct {
	Name string
	Span Span
}

func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("Missing argument `%s:` at %s", e.Name, e.Span)
}

type UnexpectedArgumentError struct {
	Name string
	Span Span
}

func (e *UnexpectedArgumentError) Error() string {
	return fmt.Sprintf("Unexpected argument `%s:` at %s", e.Name, e.Span)
}

type NoSelfError struct {
	Span Span
}

func (e *NoSelfError) Error() string {
	return fmt.Sprintf("`self` called outside method at %s", e.Span)
}

type MessageSentToNonInstanceError struct {
	Span Span
}

func (e *MessageSentToNonInstanceError) Error() string {
	return fmt.Sprintf("Message sent to non instance value at %s", e.Span)
}

type UndefinedMethodError struct {
	Class  string
	Method string
	Span   Span
}

func (e *UndefinedMethodError) Error() string {
	return fmt.Sprintf("Undefined method `%s#%s` at %s", e.Class, e.Method, e.Span)
}

type IVarAccessedOutsideMethodError struct {
	Name string
	Span Span
}

func (e *IVarAccessedOutsideMethodError) Error() string {
	return fmt.Sprintf("Instance variable `%s` accessed outside method at %s", e.Name, e.Span)
}

type IVarAccessedWithoutSelfError struct {
	Span Span
}

func (e *IVarAccessedWithoutSelfError) Error() string {
	return fmt.Sprintf("Instance variable access without a `self` at %s", e.Span)
}

type IVarAccessedOnNonInstanceError struct {
	Span Span
}

func (e *IVarAccessedOnNonInstanceError) Error() string {
	return fmt.Sprintf("Instance variable access on `self` that isn't an instance at %s", e.Span)
}

type UndefinedIVarError struct {
	Name string
	Span Span
}

func (e *UndefinedIVarError) Error() string {
	return fmt.Sprintf("Instance variable `%s` is not defined. Accessed at %s", e.Name, e.Span)
}

// BlockValueError marks the deliberately unfinished corner of the language:
// blocks parse as method bodies but are not first-class values.
type BlockValueError struct {
	Span Span
}

func (e *BlockValueError) Error() string {
	return fmt.Sprintf("Block values are not implemented, block at %s", e.Span)
}
