package eval

import "fmt"

// NameError reports an identifier or called name absent from the merged
// environment.
type NameError struct {
	Name string
}

func (e *NameError) Error() string {
	return fmt.Sprintf("undefined identifier: %s", e.Name)
}

// TypeError reports an operator or builtin applied to operand types it
// cannot combine.
type TypeError struct {
	Msg string
}

func (e *TypeError) Error() string {
	return "type error: " + e.Msg
}

func typeErrorf(format string, args ...interface{}) error {
	return &TypeError{Msg: fmt.Sprintf(format, args...)}
}

// ArithmeticError reports division or modulo by zero, or another
// domain-invalid numeric operation.
type ArithmeticError struct {
	Msg string
}

func (e *ArithmeticError) Error() string {
	return e.Msg
}

func arithmeticErrorf(format string, args ...interface{}) error {
	return &ArithmeticError{Msg: fmt.Sprintf(format, args...)}
}
