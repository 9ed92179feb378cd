// Package parser turns rule expression text into an abstract syntax tree.
//
// Parsing runs in three stages: the token scanner (internal/token), a
// shunting-yard conversion to postfix order, and a stack-based tree builder.
// The AST it produces is a strict tree; nodes are never mutated after
// construction and the evaluator may walk them concurrently.
package parser

import (
	"encoding/json"
	"time"
)

// Node is a single AST node. The concrete types below form a closed set.
type Node interface {
	node()
}

// Lit is a numeric literal. Value is normally a float64 resolved at parse
// time; when an AST is assembled by hand or decoded from the wire it may be
// the raw literal text, which the evaluator resolves lazily.
type Lit struct {
	Value interface{}
}

// StrLit is a string literal with quotes stripped and escapes resolved.
type StrLit struct {
	Value string
}

// DateLit is an ISO-8601 date or date-time literal.
type DateLit struct {
	Value time.Time
}

// Ident is a dotted name resolved against the environment at evaluation time.
type Ident struct {
	Name string
}

// Unary is a prefix operator application.
type Unary struct {
	Name    string
	Operand Node
}

// Binary is an infix operator application.
type Binary struct {
	Name  string
	Left  Node
	Right Node
}

// Call applies a builtin or environment-bound callable to its arguments.
// Dollar-prefixed call sites keep the "$" in Name.
type Call struct {
	Name string
	Args []Node
}

// List is an ordered list literal.
type List struct {
	Elems []Node
}

func (*Lit) node()     {}
func (*StrLit) node()  {}
func (*DateLit) node() {}
func (*Ident) node()   {}
func (*Unary) node()   {}
func (*Binary) node()  {}
func (*Call) node()    {}
func (*List) node()    {}

// JSON encoding mirrors the wire shape consumed by the parse surfaces:
// {"type": "bin_op", "name": "+", "args": [...]} and friends.

func (n *Lit) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{"type": "lit", "value": n.Value})
}

func (n *StrLit) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{"type": "lit_str", "value": n.Value})
}

func (n *DateLit) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{"type": "lit_date", "value": n.Value.Format(time.RFC3339)})
}

func (n *Ident) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{"type": "id", "value": n.Name})
}

func (n *Unary) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{"type": "unary_op", "name": n.Name, "args": []Node{n.Operand}})
}

func (n *Binary) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{"type": "bin_op", "name": n.Name, "args": []Node{n.Left, n.Right}})
}

func (n *Call) MarshalJSON() ([]byte, error) {
	args := n.Args
	if args == nil {
		args = []Node{}
	}
	return json.Marshal(map[string]interface{}{"type": "fun", "name": n.Name, "args": args})
}

func (n *List) MarshalJSON() ([]byte, error) {
	elems := n.Elems
	if elems == nil {
		elems = []Node{}
	}
	return json.Marshal(map[string]interface{}{"type": "list", "elements": elems})
}
