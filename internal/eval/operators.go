package eval

import (
	"math"
	"strconv"
	"strings"
)

// Operators are dispatched through a closed enumeration. The name strings on
// AST nodes are resolved to a kind once per application; unknown names are
// impossible for parser-produced trees but still fail cleanly for
// hand-assembled ones.

type binOp int

const (
	opAdd binOp = iota
	opSub
	opMul
	opDiv
	opFloorDiv
	opPow
	opMod
	opLt
	opLe
	opGt
	opGe
	opEq
	opNe
	opAnd
	opOr
	opBitOr
	opBitAnd
	opBitXor
	opShiftL
	opShiftR
)

var binOps = map[string]binOp{
	"+": opAdd, "-": opSub, "*": opMul, "/": opDiv, "//": opFloorDiv,
	"**": opPow, "pow": opPow, "mod": opMod, "%": opMod,
	"<": opLt, "<=": opLe, ">": opGt, ">=": opGe, "==": opEq, "!=": opNe,
	"and": opAnd, "or": opOr,
	"|": opBitOr, "&": opBitAnd, "xor": opBitXor, "<<": opShiftL, ">>": opShiftR,
}

type unaryOp int

const (
	opNot unaryOp = iota
	opNeg
	opInv
	opFloor
	opTrunc
	opCeil
	opAbs
	opInt
	opFloat
	opBool
	opStr
	opIsInf
	opIsNaN
	opIsFinite
)

var unaryOps = map[string]unaryOp{
	"not": opNot, "neg": opNeg, "inv": opInv, "~": opInv,
	"floor": opFloor, "trunc": opTrunc, "ceil": opCeil, "abs": opAbs,
	"int": opInt, "float": opFloat, "bool": opBool, "str": opStr,
	"isinf": opIsInf, "isnan": opIsNaN, "isfinite": opIsFinite,
}

// asNumber extracts a numeric operand; booleans count as 1/0.
func asNumber(v Value) (float64, bool) {
	switch val := v.(type) {
	case NumberValue:
		return val.Val, true
	case BoolValue:
		return val.numeric(), true
	default:
		return 0, false
	}
}

// asInt extracts an integral operand for bitwise and shift operators.
func asInt(v Value) (int64, error) {
	n, ok := asNumber(v)
	if !ok {
		return 0, typeErrorf("expected an integer, got %s", v.Type())
	}
	if math.IsInf(n, 0) || math.IsNaN(n) || math.Trunc(n) != n {
		return 0, typeErrorf("expected an integer, got %s", v.String())
	}
	return int64(n), nil
}

func applyBinary(name string, left, right Value) (Value, error) {
	op, ok := binOps[name]
	if !ok {
		return nil, typeErrorf("unknown operator: %s", name)
	}

	switch op {
	case opEq:
		return BoolValue{Val: left.Equals(right)}, nil
	case opNe:
		return BoolValue{Val: !left.Equals(right)}, nil

	case opLt, opLe, opGt, opGe:
		cmp, err := compare(name, left, right)
		if err != nil {
			return nil, err
		}
		switch op {
		case opLt:
			return BoolValue{Val: cmp < 0}, nil
		case opLe:
			return BoolValue{Val: cmp <= 0}, nil
		case opGt:
			return BoolValue{Val: cmp > 0}, nil
		default:
			return BoolValue{Val: cmp >= 0}, nil
		}

	case opAnd:
		// Both operands are already evaluated; the result is the operand
		// itself, not a normalized boolean.
		if !Truthy(left) {
			return left, nil
		}
		return right, nil
	case opOr:
		if Truthy(left) {
			return left, nil
		}
		return right, nil

	case opAdd:
		if ls, ok := left.(StringValue); ok {
			rs, ok := right.(StringValue)
			if !ok {
				return nil, typeErrorf("cannot concatenate %s and %s", left.Type(), right.Type())
			}
			return StringValue{Val: ls.Val + rs.Val}, nil
		}
		if ll, ok := left.(ListValue); ok {
			rl, ok := right.(ListValue)
			if !ok {
				return nil, typeErrorf("cannot concatenate %s and %s", left.Type(), right.Type())
			}
			vals := make([]Value, 0, len(ll.Vals)+len(rl.Vals))
			vals = append(vals, ll.Vals...)
			vals = append(vals, rl.Vals...)
			return ListValue{Vals: vals}, nil
		}
		l, r, err := numericOperands(name, left, right)
		if err != nil {
			return nil, err
		}
		return NumberValue{Val: l + r}, nil

	case opSub, opMul, opPow:
		l, r, err := numericOperands(name, left, right)
		if err != nil {
			return nil, err
		}
		switch op {
		case opSub:
			return NumberValue{Val: l - r}, nil
		case opMul:
			return NumberValue{Val: l * r}, nil
		default:
			return NumberValue{Val: math.Pow(l, r)}, nil
		}

	case opDiv, opFloorDiv, opMod:
		l, r, err := numericOperands(name, left, right)
		if err != nil {
			return nil, err
		}
		if r == 0 {
			return nil, arithmeticErrorf("division by zero")
		}
		switch op {
		case opDiv:
			return NumberValue{Val: l / r}, nil
		case opFloorDiv:
			return NumberValue{Val: math.Floor(l / r)}, nil
		default:
			// Modulo sign follows the divisor.
			m := math.Mod(l, r)
			if m != 0 && (m < 0) != (r < 0) {
				m += r
			}
			return NumberValue{Val: m}, nil
		}

	default: // bitwise and shifts
		l, err := asInt(left)
		if err != nil {
			return nil, err
		}
		r, err := asInt(right)
		if err != nil {
			return nil, err
		}
		switch op {
		case opBitOr:
			return NumberValue{Val: float64(l | r)}, nil
		case opBitAnd:
			return NumberValue{Val: float64(l & r)}, nil
		case opBitXor:
			return NumberValue{Val: float64(l ^ r)}, nil
		case opShiftL:
			if r < 0 {
				return nil, arithmeticErrorf("negative shift count")
			}
			return NumberValue{Val: float64(l << uint(r))}, nil
		default:
			if r < 0 {
				return nil, arithmeticErrorf("negative shift count")
			}
			return NumberValue{Val: float64(l >> uint(r))}, nil
		}
	}
}

func numericOperands(name string, left, right Value) (float64, float64, error) {
	l, ok := asNumber(left)
	if !ok {
		return 0, 0, typeErrorf("unsupported operand type for %s: %s", name, left.Type())
	}
	r, ok := asNumber(right)
	if !ok {
		return 0, 0, typeErrorf("unsupported operand type for %s: %s", name, right.Type())
	}
	return l, r, nil
}

// compare orders two values of the same family: numbers (booleans counting
// as 1/0), strings lexicographically, or dates chronologically.
func compare(name string, left, right Value) (int, error) {
	if l, ok := asNumber(left); ok {
		if r, ok := asNumber(right); ok {
			switch {
			case l < r:
				return -1, nil
			case l > r:
				return 1, nil
			default:
				return 0, nil
			}
		}
	}
	if l, ok := left.(StringValue); ok {
		if r, ok := right.(StringValue); ok {
			switch {
			case l.Val < r.Val:
				return -1, nil
			case l.Val > r.Val:
				return 1, nil
			default:
				return 0, nil
			}
		}
	}
	if l, ok := left.(DateValue); ok {
		if r, ok := right.(DateValue); ok {
			switch {
			case l.Val.Before(r.Val):
				return -1, nil
			case l.Val.After(r.Val):
				return 1, nil
			default:
				return 0, nil
			}
		}
	}
	return 0, typeErrorf("cannot compare %s and %s with %s", left.Type(), right.Type(), name)
}

func applyUnary(name string, operand Value) (Value, error) {
	op, ok := unaryOps[name]
	if !ok {
		return nil, typeErrorf("unknown unary operator: %s", name)
	}

	switch op {
	case opNot:
		return BoolValue{Val: !Truthy(operand)}, nil
	case opBool:
		return BoolValue{Val: Truthy(operand)}, nil
	case opStr:
		return StringValue{Val: operand.String()}, nil
	case opFloat:
		switch v := operand.(type) {
		case NumberValue:
			return v, nil
		case BoolValue:
			return NumberValue{Val: v.numeric()}, nil
		case StringValue:
			f, err := strconv.ParseFloat(v.Val, 64)
			if err != nil {
				return nil, typeErrorf("cannot convert %q to float", v.Val)
			}
			return NumberValue{Val: f}, nil
		default:
			return nil, typeErrorf("cannot convert %s to float", operand.Type())
		}
	case opInv:
		n, err := asInt(operand)
		if err != nil {
			return nil, err
		}
		return NumberValue{Val: float64(^n)}, nil
	case opInt:
		switch v := operand.(type) {
		case NumberValue:
			return NumberValue{Val: math.Trunc(v.Val)}, nil
		case BoolValue:
			return NumberValue{Val: v.numeric()}, nil
		case StringValue:
			// Integer-form strings only; "2.9" is not an int.
			n, err := strconv.ParseInt(strings.TrimSpace(v.Val), 10, 64)
			if err != nil {
				return nil, typeErrorf("cannot convert %q to int", v.Val)
			}
			return NumberValue{Val: float64(n)}, nil
		default:
			return nil, typeErrorf("cannot convert %s to int", operand.Type())
		}
	}

	n, ok := asNumber(operand)
	if !ok {
		return nil, typeErrorf("unsupported operand type for %s: %s", name, operand.Type())
	}

	switch op {
	case opNeg:
		return NumberValue{Val: -n}, nil
	case opFloor:
		return NumberValue{Val: math.Floor(n)}, nil
	case opTrunc:
		return NumberValue{Val: math.Trunc(n)}, nil
	case opCeil:
		return NumberValue{Val: math.Ceil(n)}, nil
	case opAbs:
		return NumberValue{Val: math.Abs(n)}, nil
	case opIsInf:
		return BoolValue{Val: math.IsInf(n, 0)}, nil
	case opIsNaN:
		return BoolValue{Val: math.IsNaN(n)}, nil
	case opIsFinite:
		return BoolValue{Val: !math.IsInf(n, 0) && !math.IsNaN(n)}, nil
	default:
		return nil, typeErrorf("unknown unary operator: %s", name)
	}
}
