package eval

import (
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/termynus/termynus/internal/parser"
)

// Evaluate walks an AST against the environment and returns its value.
// Operands are always evaluated left to right, and both operands of "and"
// and "or" are evaluated before the operator applies: there is no
// short-circuiting.
func Evaluate(node parser.Node, env *Env) (Value, error) {
	switch n := node.(type) {
	case *parser.Lit:
		return resolveLit(n.Value)

	case *parser.StrLit:
		return StringValue{Val: n.Value}, nil

	case *parser.DateLit:
		return DateValue{Val: n.Value}, nil

	case *parser.Ident:
		v, ok := env.Lookup(n.Name)
		if !ok {
			return nil, &NameError{Name: n.Name}
		}
		return v, nil

	case *parser.Unary:
		operand, err := Evaluate(n.Operand, env)
		if err != nil {
			return nil, err
		}
		return applyUnary(n.Name, operand)

	case *parser.Binary:
		left, err := Evaluate(n.Left, env)
		if err != nil {
			return nil, err
		}
		right, err := Evaluate(n.Right, env)
		if err != nil {
			return nil, err
		}
		return applyBinary(n.Name, left, right)

	case *parser.Call:
		args := make([]Value, len(n.Args))
		for i, arg := range n.Args {
			v, err := Evaluate(arg, env)
			if err != nil {
				return nil, err
			}
			args[i] = v
		}
		// Call sites keep their "$" prefix in the AST; the environment and
		// catalog bind plain names.
		name := strings.TrimPrefix(n.Name, "$")
		target, ok := env.Lookup(name)
		if !ok {
			log.Debug().Str("name", name).Msg("call target not bound")
			return nil, &NameError{Name: name}
		}
		fn, ok := target.(FuncValue)
		if !ok {
			return nil, typeErrorf("%s is not callable", name)
		}
		return fn.Fn(args)

	case *parser.List:
		elems := make([]Value, len(n.Elems))
		for i, elem := range n.Elems {
			v, err := Evaluate(elem, env)
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		return ListValue{Vals: elems}, nil

	default:
		return nil, typeErrorf("unknown AST node %T", node)
	}
}

// resolveLit resolves a numeric literal. Parser-produced literals carry a
// float64; hand-assembled or wire-decoded ones may carry raw text, which is
// coerced here: "true"/"false" become 1/0, quote-bounded text loses its
// quotes and stays a string, and anything else must parse as a number.
func resolveLit(raw interface{}) (Value, error) {
	switch v := raw.(type) {
	case float64:
		return NumberValue{Val: v}, nil
	case int:
		return NumberValue{Val: float64(v)}, nil
	case string:
		switch strings.ToLower(v) {
		case "true":
			return NumberValue{Val: 1}, nil
		case "false":
			return NumberValue{Val: 0}, nil
		}
		if len(v) >= 2 && isQuote(v[0]) && isQuote(v[len(v)-1]) {
			return StringValue{Val: v[1 : len(v)-1]}, nil
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, typeErrorf("invalid literal %q", v)
		}
		return NumberValue{Val: f}, nil
	default:
		return nil, typeErrorf("invalid literal value %v", raw)
	}
}

func isQuote(c byte) bool {
	return c == '\'' || c == '"'
}

// evaluateSource parses and evaluates expression text against env.
func evaluateSource(text string, env *Env) (Value, error) {
	node, err := parser.Parse(text)
	if err != nil {
		return nil, err
	}
	return Evaluate(node, env)
}

// EvaluateString parses and evaluates expression text in one step, returning
// the result as a plain Go value.
func EvaluateString(text string, vars map[string]interface{}) (interface{}, error) {
	v, err := evaluateSource(text, NewEnv(vars))
	if err != nil {
		return nil, err
	}
	return v.GoValue(), nil
}
