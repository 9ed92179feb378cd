package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScan(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "simple arithmetic",
			text: "1 + 2 * 3",
			want: []string{"1", "+", "2", "*", "3"},
		},
		{
			name: "parenthesized",
			text: "(1 + 2) * 3",
			want: []string{"(", "1", "+", "2", ")", "*", "3"},
		},
		{
			name: "two character operators",
			text: "2 ** 3 // 4 <= 5 >= 6 == 7 != 8",
			want: []string{"2", "**", "3", "//", "4", "<=", "5", ">=", "6", "==", "7", "!=", "8"},
		},
		{
			name: "shifts and bitwise",
			text: "1 << 2 >> 3 | 4 & 5",
			want: []string{"1", "<<", "2", ">>", "3", "|", "4", "&", "5"},
		},
		{
			name: "function call",
			text: "$max(1, 2, 3)",
			want: []string{"$max", "(", "1", ",", "2", ",", "3", ")"},
		},
		{
			name: "namespaced function",
			text: "$str.concat('a', 'b')",
			want: []string{"$str.concat", "(", "'a'", ",", "'b'", ")"},
		},
		{
			name: "string literal with spaces",
			text: `"hello world" + 'and more'`,
			want: []string{`"hello world"`, "+", "'and more'"},
		},
		{
			name: "string literal with escaped quote",
			text: `"it\"s"`,
			want: []string{`"it\"s"`},
		},
		{
			name: "date literal",
			text: `d"2024-01-15" > d'2023-12-31'`,
			want: []string{`d"2024-01-15"`, ">", `d'2023-12-31'`},
		},
		{
			name: "decimals",
			text: "3.14 + 0.5",
			want: []string{"3.14", "+", "0.5"},
		},
		{
			name: "negative number",
			text: "-5 + 3",
			want: []string{"-5", "+", "3"},
		},
		{
			name: "identifiers",
			text: "price * order.quantity",
			want: []string{"price", "*", "order.quantity"},
		},
		{
			name: "word operators",
			text: "a and b or not c",
			want: []string{"a", "and", "b", "or", "not", "c"},
		},
		{
			name: "list brackets survive as gaps",
			text: "[1, 2]",
			want: []string{"[", "1", ",", "2", "]"},
		},
		{
			name: "unknown characters preserved",
			text: "1 ; 2",
			want: []string{"1", ";", "2"},
		},
		{
			name: "empty input",
			text: "",
			want: nil,
		},
		{
			name: "whitespace only",
			text: "   ",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Scan(tt.text))
		})
	}
}

func TestPredicates(t *testing.T) {
	t.Run("numbers", func(t *testing.T) {
		assert.True(t, IsNumber("42"))
		assert.True(t, IsNumber("3.14"))
		assert.True(t, IsNumber("-5"))
		assert.True(t, IsNumber("-0.5"))
		assert.False(t, IsNumber("abc"))
		assert.False(t, IsNumber("1.2.3"))
		assert.False(t, IsNumber(""))
	})

	t.Run("identifiers", func(t *testing.T) {
		assert.True(t, IsIdentifier("price"))
		assert.True(t, IsIdentifier("order.quantity"))
		assert.True(t, IsIdentifier("_hidden"))
		assert.False(t, IsIdentifier("$max"))
		assert.False(t, IsIdentifier("42"))
		assert.False(t, IsIdentifier("+"))
	})

	t.Run("functions", func(t *testing.T) {
		assert.True(t, IsFunction("$max"))
		assert.True(t, IsFunction("$str.concat"))
		assert.False(t, IsFunction("max"))
		assert.False(t, IsFunction("$"))
		assert.False(t, IsFunction("$1bad"))
	})

	t.Run("operators", func(t *testing.T) {
		for _, op := range []string{"+", "-", "*", "/", "//", "**", "pow", "mod", "%", "<", "<=", ">", ">=", "==", "!=", "and", "or", "|", "&", "xor", "<<", ">>"} {
			assert.True(t, IsBinaryOperator(op), "expected binary operator %q", op)
		}
		for _, op := range []string{"not", "neg", "floor", "trunc", "ceil", "abs", "int", "float", "bool", "str", "isinf", "isnan", "isfinite", "inv", "~"} {
			assert.True(t, IsUnaryOperator(op), "expected unary operator %q", op)
		}
		assert.False(t, IsBinaryOperator("not"))
		assert.False(t, IsUnaryOperator("+"))
		assert.True(t, IsOperator("and"))
		assert.True(t, IsOperator("not"))
		assert.False(t, IsOperator("price"))
	})

	t.Run("string literals", func(t *testing.T) {
		assert.True(t, IsStringLiteral(`"hello"`))
		assert.True(t, IsStringLiteral("'hello'"))
		assert.True(t, IsStringLiteral(`""`))
		assert.False(t, IsStringLiteral("hello"))
		assert.False(t, IsStringLiteral(`"`))
	})

	t.Run("date literals", func(t *testing.T) {
		assert.True(t, IsDateLiteral(`d"2024-01-15"`))
		assert.True(t, IsDateLiteral("d'2024-01-15'"))
		assert.False(t, IsDateLiteral(`"2024-01-15"`))
		assert.False(t, IsDateLiteral("d"))
	})
}

func TestUnescape(t *testing.T) {
	assert.Equal(t, "plain", Unescape("plain"))
	assert.Equal(t, "line\nbreak", Unescape(`line\nbreak`))
	assert.Equal(t, "tab\there", Unescape(`tab\there`))
	assert.Equal(t, "cr\rhere", Unescape(`cr\rhere`))
	assert.Equal(t, `it"s`, Unescape(`it\"s`))
	assert.Equal(t, "it's", Unescape(`it\'s`))
}

func TestIsISODate(t *testing.T) {
	assert.True(t, IsISODate("2024-01-15"))
	assert.True(t, IsISODate("2024-01-15T10:30:00"))
	assert.True(t, IsISODate("2024-01-15T10:30:00Z"))
	assert.True(t, IsISODate("2024-01-15T10:30:00+02:00"))
	assert.True(t, IsISODate("2024-01-15T10:30:00.123Z"))
	assert.False(t, IsISODate("15/01/2024"))
	assert.False(t, IsISODate("2024-1-5"))
	assert.False(t, IsISODate("not a date"))
}

func TestParseISODate(t *testing.T) {
	t.Run("date only", func(t *testing.T) {
		got, err := ParseISODate("2024-01-15")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("date time", func(t *testing.T) {
		got, err := ParseISODate("2024-01-15T10:30:45")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 1, 15, 10, 30, 45, 0, time.UTC), got)
	})

	t.Run("with zone offset", func(t *testing.T) {
		got, err := ParseISODate("2024-01-15T10:30:45+02:00")
		require.NoError(t, err)
		_, offset := got.Zone()
		assert.Equal(t, 2*3600, offset)
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := ParseISODate("2024-13-40")
		assert.Error(t, err)
	})
}
