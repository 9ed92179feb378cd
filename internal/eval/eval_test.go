package eval

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/termynus/termynus/internal/parser"
)

func evaluate(t *testing.T, text string, vars map[string]interface{}) interface{} {
	t.Helper()
	result, err := EvaluateString(text, vars)
	require.NoError(t, err, "evaluating %q", text)
	return result
}

func TestEvaluate_Arithmetic(t *testing.T) {
	tests := []struct {
		expr string
		want interface{}
	}{
		{"1 + 2", float64(3)},
		{"10 - 4", float64(6)},
		{"3 * 4", float64(12)},
		{"10 / 4", 2.5},
		{"10 // 4", float64(2)},
		{"-10 // 4", float64(-3)},
		{"2 ** 10", float64(1024)},
		{"2 pow 10", float64(1024)},
		{"10 mod 3", float64(1)},
		{"10 % 3", float64(1)},
		{"1 + 2 * 3", float64(7)},
		{"(1 + 2) * 3", float64(9)},
		{"2 ** 3 ** 2", float64(512)},
		{"10 - 4 - 3", float64(3)},
		{"0.1 + 0.2", 0.1 + 0.2},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			assert.Equal(t, tt.want, evaluate(t, tt.expr, nil))
		})
	}
}

func TestEvaluate_ModuloSign(t *testing.T) {
	// The remainder follows the divisor's sign.
	tests := []struct {
		expr string
		want float64
	}{
		{"7 mod 3", 1},
		{"-7 mod 3", 2},
		{"7 mod -3", -2},
		{"-7 mod -3", -1},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			assert.Equal(t, tt.want, evaluate(t, tt.expr, nil))
		})
	}
}

func TestEvaluate_BitwiseAndShifts(t *testing.T) {
	tests := []struct {
		expr string
		want float64
	}{
		{"1 << 4", 16},
		{"32 >> 2", 8},
		{"12 | 5", 13},
		{"12 & 5", 4},
		{"12 xor 5", 9},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			assert.Equal(t, tt.want, evaluate(t, tt.expr, nil))
		})
	}

	t.Run("fractional operand rejected", func(t *testing.T) {
		_, err := EvaluateString("1.5 | 2", nil)
		var typeErr *TypeError
		require.ErrorAs(t, err, &typeErr)
	})

	t.Run("negative shift count", func(t *testing.T) {
		_, err := EvaluateString("1 << -2", nil)
		var mathErr *ArithmeticError
		require.ErrorAs(t, err, &mathErr)
	})
}

func TestEvaluate_Comparisons(t *testing.T) {
	tests := []struct {
		expr string
		want bool
	}{
		{"1 < 2", true},
		{"2 <= 2", true},
		{"3 > 4", false},
		{"4 >= 4", true},
		{"1 == 1", true},
		{"1 != 1", false},
		{"'abc' < 'abd'", true},
		{"'abc' == 'abc'", true},
		{`d"2024-01-15" > d"2024-01-01"`, true},
		{`d"2024-01-15" == d"2024-01-15"`, true},
		{"1 == 'one'", false},
		{"'1' == 1", false},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			assert.Equal(t, tt.want, evaluate(t, tt.expr, nil))
		})
	}

	t.Run("mixed ordering is a type error", func(t *testing.T) {
		_, err := EvaluateString("'abc' < 1", nil)
		var typeErr *TypeError
		require.ErrorAs(t, err, &typeErr)
	})
}

func TestEvaluate_BooleanOperators(t *testing.T) {
	// and/or return one of their operands by truthiness rather than a
	// normalized boolean, and both sides always evaluate.
	t.Run("and returns second operand when first truthy", func(t *testing.T) {
		assert.Equal(t, float64(2), evaluate(t, "1 and 2", nil))
	})

	t.Run("and returns first operand when falsy", func(t *testing.T) {
		assert.Equal(t, float64(0), evaluate(t, "0 and 2", nil))
	})

	t.Run("or returns first truthy operand", func(t *testing.T) {
		assert.Equal(t, float64(1), evaluate(t, "1 or 2", nil))
	})

	t.Run("or falls through to second operand", func(t *testing.T) {
		assert.Equal(t, "fallback", evaluate(t, "0 or 'fallback'", nil))
	})

	t.Run("no short circuit", func(t *testing.T) {
		// The right side evaluates even when the left side decides.
		_, err := EvaluateString("0 and missing", nil)
		var nameErr *NameError
		require.ErrorAs(t, err, &nameErr)
	})

	t.Run("not normalizes to bool", func(t *testing.T) {
		assert.Equal(t, false, evaluate(t, "not 1", nil))
		assert.Equal(t, true, evaluate(t, "not 0", nil))
		assert.Equal(t, true, evaluate(t, "not ''", nil))
	})

	t.Run("bools in arithmetic", func(t *testing.T) {
		assert.Equal(t, float64(2), evaluate(t, "(1 == 1) + (2 == 2)", nil))
		assert.Equal(t, true, evaluate(t, "(1 == 1) == 1", nil))
	})
}

func TestEvaluate_UnaryOperators(t *testing.T) {
	tests := []struct {
		expr string
		want interface{}
	}{
		{"neg 5", float64(-5)},
		{"abs -7", float64(7)},
		{"floor 2.7", float64(2)},
		{"ceil 2.1", float64(3)},
		{"trunc -2.7", float64(-2)},
		{"floor -2.7", float64(-3)},
		{"int 2.9", float64(2)},
		{"int -2.9", float64(-2)},
		{"int '5'", float64(5)},
		{"int ' 42 '", float64(42)},
		{"float '2.5'", 2.5},
		{"bool 3", true},
		{"bool 0", false},
		{"str 42", "42"},
		{"inv 5", float64(-6)},
		{"~ 5", float64(-6)},
		{"isinf 1", false},
		{"isnan 1", false},
		{"isfinite 1", true},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			assert.Equal(t, tt.want, evaluate(t, tt.expr, nil))
		})
	}

	t.Run("isinf on inf", func(t *testing.T) {
		assert.Equal(t, true, evaluate(t, "isinf inf", nil))
		assert.Equal(t, false, evaluate(t, "isfinite inf", nil))
	})

	t.Run("isnan on nan", func(t *testing.T) {
		assert.Equal(t, true, evaluate(t, "isnan nan", nil))
	})

	t.Run("float of garbage", func(t *testing.T) {
		_, err := EvaluateString("float 'not a number'", nil)
		var typeErr *TypeError
		require.ErrorAs(t, err, &typeErr)
	})

	t.Run("int rejects fractional strings", func(t *testing.T) {
		// float coerces "2.9" but int takes integer-form strings only.
		for _, expr := range []string{"int '2.9'", "int 'five'", "int [1]"} {
			_, err := EvaluateString(expr, nil)
			var typeErr *TypeError
			require.ErrorAs(t, err, &typeErr, expr)
		}
	})
}

func TestEvaluate_Strings(t *testing.T) {
	assert.Equal(t, "ab", evaluate(t, "'a' + 'b'", nil))

	t.Run("string plus number is a type error", func(t *testing.T) {
		_, err := EvaluateString("'a' + 1", nil)
		var typeErr *TypeError
		require.ErrorAs(t, err, &typeErr)
	})
}

func TestEvaluate_Lists(t *testing.T) {
	t.Run("literal", func(t *testing.T) {
		assert.Equal(t, []interface{}{float64(1), float64(2), float64(3)}, evaluate(t, "[1, 2, 3]", nil))
	})

	t.Run("concatenation with plus", func(t *testing.T) {
		assert.Equal(t, []interface{}{float64(1), float64(2)}, evaluate(t, "[1] + [2]", nil))
	})

	t.Run("nested", func(t *testing.T) {
		assert.Equal(t, []interface{}{float64(1), []interface{}{float64(2)}}, evaluate(t, "[1, [2]]", nil))
	})

	t.Run("equality", func(t *testing.T) {
		assert.Equal(t, true, evaluate(t, "[1, 2] == [1, 2]", nil))
		assert.Equal(t, false, evaluate(t, "[1, 2] == [2, 1]", nil))
	})
}

func TestEvaluate_Variables(t *testing.T) {
	vars := map[string]interface{}{
		"price":    2.5,
		"quantity": 4,
		"name":     "widget",
		"active":   true,
		"tags":     []string{"a", "b"},
		"when":     time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
	}

	assert.Equal(t, float64(10), evaluate(t, "price * quantity", vars))
	assert.Equal(t, "widget!", evaluate(t, "name + '!'", vars))
	assert.Equal(t, true, evaluate(t, "active and quantity > 3", vars))
	assert.Equal(t, []interface{}{"a", "b"}, evaluate(t, "tags", vars))
	assert.Equal(t, true, evaluate(t, `when == d"2024-01-15"`, vars))

	t.Run("caller bindings shadow builtins", func(t *testing.T) {
		assert.Equal(t, float64(99), evaluate(t, "pi", map[string]interface{}{"pi": 99}))
	})

	t.Run("undefined identifier", func(t *testing.T) {
		_, err := EvaluateString("missing", nil)
		var nameErr *NameError
		require.ErrorAs(t, err, &nameErr)
		assert.Equal(t, "missing", nameErr.Name)
	})
}

func TestEvaluate_Calls(t *testing.T) {
	t.Run("catalog function", func(t *testing.T) {
		assert.Equal(t, float64(3), evaluate(t, "$max(1, 2, 3)", nil))
	})

	t.Run("caller supplied callable", func(t *testing.T) {
		vars := map[string]interface{}{
			"double": func(args []Value) (Value, error) {
				n, err := numberArg("double", args, 0)
				if err != nil {
					return nil, err
				}
				return NumberValue{Val: n * 2}, nil
			},
		}
		assert.Equal(t, float64(10), evaluate(t, "$double(5)", vars))
	})

	t.Run("unknown function", func(t *testing.T) {
		_, err := EvaluateString("$nosuch(1)", nil)
		var nameErr *NameError
		require.ErrorAs(t, err, &nameErr)
		assert.Equal(t, "nosuch", nameErr.Name)
	})

	t.Run("calling a non-callable", func(t *testing.T) {
		_, err := EvaluateString("$pi(1)", nil)
		var typeErr *TypeError
		require.ErrorAs(t, err, &typeErr)
	})

	t.Run("argument error propagates", func(t *testing.T) {
		_, err := EvaluateString("$sqrt(missing)", nil)
		var nameErr *NameError
		require.ErrorAs(t, err, &nameErr)
	})
}

func TestEvaluate_DivisionByZero(t *testing.T) {
	for _, expr := range []string{"1 / 0", "1 // 0", "1 mod 0"} {
		t.Run(expr, func(t *testing.T) {
			_, err := EvaluateString(expr, nil)
			var mathErr *ArithmeticError
			require.ErrorAs(t, err, &mathErr)
			assert.Contains(t, mathErr.Error(), "division by zero")
		})
	}
}

func TestEvaluate_TreeReuse(t *testing.T) {
	// A parsed tree is never mutated, so it can evaluate repeatedly and
	// concurrently against different environments.
	node, err := parser.Parse("price * 2")
	require.NoError(t, err)

	for i, want := range []float64{2, 4, 6} {
		v, err := Evaluate(node, NewEnv(map[string]interface{}{"price": i + 1}))
		require.NoError(t, err)
		assert.Equal(t, want, v.GoValue())
	}
}

func TestResolveLit(t *testing.T) {
	// Hand-assembled or wire-decoded trees carry raw literal text that
	// resolves on first evaluation.
	tests := []struct {
		name string
		raw  interface{}
		want Value
	}{
		{"float64 passthrough", float64(4), NumberValue{Val: 4}},
		{"int", 7, NumberValue{Val: 7}},
		{"numeric string", "3.5", NumberValue{Val: 3.5}},
		{"true becomes one", "true", NumberValue{Val: 1}},
		{"false becomes zero", "False", NumberValue{Val: 0}},
		{"quoted text stays a string", `"hello"`, StringValue{Val: "hello"}},
		{"single quoted", "'hi'", StringValue{Val: "hi"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Evaluate(&parser.Lit{Value: tt.raw}, NewEnv(nil))
			require.NoError(t, err)
			assert.Equal(t, tt.want, v)
		})
	}

	t.Run("garbage literal", func(t *testing.T) {
		_, err := Evaluate(&parser.Lit{Value: "zzz"}, NewEnv(nil))
		var typeErr *TypeError
		require.ErrorAs(t, err, &typeErr)
	})
}

func TestEvaluate_Constants(t *testing.T) {
	assert.InDelta(t, 3.14159265, evaluate(t, "pi", nil).(float64), 1e-8)
	assert.InDelta(t, 2.71828182, evaluate(t, "e", nil).(float64), 1e-8)
	assert.InDelta(t, 6.28318530, evaluate(t, "tau", nil).(float64), 1e-8)
	assert.Equal(t, true, evaluate(t, "isinf inf", nil))
}
