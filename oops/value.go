package oops

import (
	"fmt"
	"strings"
)

// ValueKind discriminates the runtime value representations.
type ValueKind int

const (
	KindNil ValueKind = iota
	KindBool
	KindNumber
	KindList
	KindInstance
)

func (k ValueKind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindList:
		return "list"
	case KindInstance:
		return "instance"
	default:
		return "unknown"
	}
}

// Value is a tagged runtime value. Lists and instances are held by
// reference, so copies of a Value alias the same underlying data.
type Value struct {
	kind ValueKind
	data any
}

// Instance is a heap object: its class plus one slot per declared field.
type Instance struct {
	Class *ClassDef
	IVars map[string]Value
}

func NewNil() Value {
	return Value{kind: KindNil}
}

func NewBool(b bool) Value {
	return Value{kind: KindBool, data: b}
}

func NewNumber(n int32) Value {
	return Value{kind: KindNumber, data: n}
}

func NewList(items []Value) Value {
	return Value{kind: KindList, data: items}
}

func NewInstance(inst *Instance) Value {
	return Value{kind: KindInstance, data: inst}
}

func (v Value) Kind() ValueKind {
	return v.kind
}

func (v Value) IsNil() bool {
	return v.kind == KindNil
}

func (v Value) Bool() bool {
	return v.data.(bool)
}

func (v Value) Number() int32 {
	return v.data.(int32)
}

func (v Value) List() []Value {
	return v.data.([]Value)
}

func (v Value) Instance() *Instance {
	return v.data.(*Instance)
}

// Equal reports structural equality for nil, bool, number and list values;
// instances compare by identity.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNil:
		return true
	case KindBool:
		return v.Bool() == other.Bool()
	case KindNumber:
		return v.Number() == other.Number()
	case KindList:
		a, b := v.List(), other.List()
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if !a[i].Equal(b[i]) {
				return false
			}
		}
		return true
	case KindInstance:
		return v.Instance() == other.Instance()
	default:
		return false
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindNil:
		return "nil"
	case KindBool:
		return fmt.Sprintf("%t", v.Bool())
	case KindNumber:
		return fmt.Sprintf("%d", v.Number())
	case KindList:
		var sb strings.Builder
		sb.WriteByte('[')
		for i, item := range v.List() {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(item.String())
		}
		sb.WriteByte(']')
		return sb.String()
	case KindInstance:
		inst := v.Instance()
		var sb strings.Builder
		sb.WriteString("#<")
		sb.WriteString(inst.Class.Name)
		for _, field := range inst.Class.Fields {
			sb.WriteByte(' ')
			sb.WriteString(field.Name)
			sb.WriteString(": ")
			sb.WriteString(inst.IVars[field.Name].String())
		}
		sb.WriteByte('>')
		return sb.String()
	default:
		return "unknown"
	}
}
