// Package eval walks expression ASTs against a variable environment and the
// builtin catalog, producing dynamically-typed runtime values.
package eval

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Value represents any runtime value in the expression system.
type Value interface {
	Type() ValueType
	GoValue() interface{}
	String() string
	Equals(Value) bool
}

// ValueType represents the type of a value.
type ValueType string

const (
	TypeNumber ValueType = "number"
	TypeBool   ValueType = "bool"
	TypeString ValueType = "string"
	TypeDate   ValueType = "date"
	TypeList   ValueType = "list"
	TypeFunc   ValueType = "function"
)

// Callable is the signature of every builtin and caller-supplied function.
// Arguments arrive fully evaluated, in call order.
type Callable func(args []Value) (Value, error)

type NumberValue struct {
	Val float64
}

func (v NumberValue) Type() ValueType      { return TypeNumber }
func (v NumberValue) GoValue() interface{} { return v.Val }
func (v NumberValue) String() string       { return strconv.FormatFloat(v.Val, 'g', -1, 64) }
func (v NumberValue) Equals(other Value) bool {
	switch o := other.(type) {
	case NumberValue:
		return v.Val == o.Val
	case BoolValue:
		// Booleans compare as 1/0 in numeric contexts.
		return v.Val == o.numeric()
	default:
		return false
	}
}

type BoolValue struct {
	Val bool
}

func (v BoolValue) Type() ValueType      { return TypeBool }
func (v BoolValue) GoValue() interface{} { return v.Val }
func (v BoolValue) String() string {
	if v.Val {
		return "true"
	}
	return "false"
}
func (v BoolValue) numeric() float64 {
	if v.Val {
		return 1
	}
	return 0
}
func (v BoolValue) Equals(other Value) bool {
	switch o := other.(type) {
	case BoolValue:
		return v.Val == o.Val
	case NumberValue:
		return v.numeric() == o.Val
	default:
		return false
	}
}

type StringValue struct {
	Val string
}

func (v StringValue) Type() ValueType      { return TypeString }
func (v StringValue) GoValue() interface{} { return v.Val }
func (v StringValue) String() string       { return v.Val }
func (v StringValue) Equals(other Value) bool {
	o, ok := other.(StringValue)
	return ok && v.Val == o.Val
}

// DateValue is a calendar date/time instant.
type DateValue struct {
	Val time.Time
}

func (v DateValue) Type() ValueType      { return TypeDate }
func (v DateValue) GoValue() interface{} { return v.Val }
func (v DateValue) String() string {
	h, m, s := v.Val.Clock()
	if h == 0 && m == 0 && s == 0 && v.Val.Nanosecond() == 0 {
		return v.Val.Format("2006-01-02")
	}
	return v.Val.Format(time.RFC3339)
}
func (v DateValue) Equals(other Value) bool {
	o, ok := other.(DateValue)
	return ok && v.Val.Equal(o.Val)
}

type ListValue struct {
	Vals []Value
}

func (v ListValue) Type() ValueType { return TypeList }
func (v ListValue) GoValue() interface{} {
	result := make([]interface{}, len(v.Vals))
	for i, val := range v.Vals {
		result[i] = val.GoValue()
	}
	return result
}
func (v ListValue) String() string {
	parts := make([]string, len(v.Vals))
	for i, val := range v.Vals {
		parts[i] = val.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
func (v ListValue) Equals(other Value) bool {
	o, ok := other.(ListValue)
	if !ok || len(v.Vals) != len(o.Vals) {
		return false
	}
	for i, val := range v.Vals {
		if !val.Equals(o.Vals[i]) {
			return false
		}
	}
	return true
}

// FuncValue is a callable reference. It is only reachable through the
// environment, never through a literal.
type FuncValue struct {
	Name string
	Fn   Callable
}

func (v FuncValue) Type() ValueType      { return TypeFunc }
func (v FuncValue) GoValue() interface{} { return v.Fn }
func (v FuncValue) String() string       { return fmt.Sprintf("<function %s>", v.Name) }
func (v FuncValue) Equals(other Value) bool {
	o, ok := other.(FuncValue)
	return ok && v.Name == o.Name
}

// Truthy reports host truthiness: non-zero numbers, true booleans, non-empty
// strings and non-empty lists are truthy.
func Truthy(v Value) bool {
	switch val := v.(type) {
	case BoolValue:
		return val.Val
	case NumberValue:
		return val.Val != 0
	case StringValue:
		return val.Val != ""
	case ListValue:
		return len(val.Vals) > 0
	case DateValue:
		return true
	default:
		return true
	}
}

// FromGo converts a caller-supplied Go value to an expression Value.
func FromGo(v interface{}) Value {
	switch val := v.(type) {
	case Value:
		return val
	case bool:
		return BoolValue{Val: val}
	case int:
		return NumberValue{Val: float64(val)}
	case int32:
		return NumberValue{Val: float64(val)}
	case int64:
		return NumberValue{Val: float64(val)}
	case float32:
		return NumberValue{Val: float64(val)}
	case float64:
		return NumberValue{Val: val}
	case string:
		return StringValue{Val: val}
	case time.Time:
		return DateValue{Val: val}
	case Callable:
		return FuncValue{Name: "anonymous", Fn: val}
	case func(args []Value) (Value, error):
		return FuncValue{Name: "anonymous", Fn: val}
	case []interface{}:
		result := make([]Value, len(val))
		for i, item := range val {
			result[i] = FromGo(item)
		}
		return ListValue{Vals: result}
	case []string:
		result := make([]Value, len(val))
		for i, item := range val {
			result[i] = StringValue{Val: item}
		}
		return ListValue{Vals: result}
	case []float64:
		result := make([]Value, len(val))
		for i, item := range val {
			result[i] = NumberValue{Val: item}
		}
		return ListValue{Vals: result}
	case nil:
		return StringValue{Val: ""}
	default:
		// Unknown types degrade to their string form.
		return StringValue{Val: fmt.Sprintf("%v", v)}
	}
}
