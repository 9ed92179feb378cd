package eval

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, template string, vars map[string]interface{}) interface{} {
	t.Helper()
	result, err := RenderTemplate(template, NewEnv(vars))
	require.NoError(t, err, "rendering %q", template)
	return result
}

func TestRenderTemplate(t *testing.T) {
	vars := map[string]interface{}{
		"name":  "widget",
		"price": 2.5,
		"count": 4,
	}

	t.Run("empty template", func(t *testing.T) {
		assert.Equal(t, "", render(t, "", nil))
	})

	t.Run("no placeholders", func(t *testing.T) {
		assert.Equal(t, "plain text", render(t, "plain text", nil))
	})

	t.Run("interpolation into text", func(t *testing.T) {
		assert.Equal(t, "total: 10", render(t, "total: ${{ price * count }}", vars))
	})

	t.Run("multiple placeholders", func(t *testing.T) {
		assert.Equal(t, "4 x widget @ 2.5",
			render(t, "${{ count }} x ${{ name }} @ ${{ price }}", vars))
	})

	t.Run("single placeholder keeps the type", func(t *testing.T) {
		assert.Equal(t, float64(10), render(t, "${{ price * count }}", vars))
		assert.Equal(t, true, render(t, "${{ count > 3 }}", vars))
		assert.Equal(t, []interface{}{float64(1), float64(2)}, render(t, "${{ [1, 2] }}", nil))
	})

	t.Run("single placeholder with surrounding text flattens", func(t *testing.T) {
		assert.Equal(t, "=10", render(t, "=${{ price * count }}", vars))
	})

	t.Run("whitespace inside braces", func(t *testing.T) {
		assert.Equal(t, float64(3), render(t, "${{1 + 2}}", nil))
		assert.Equal(t, float64(3), render(t, "${{   1 + 2   }}", nil))
	})

	t.Run("escaped placeholder", func(t *testing.T) {
		assert.Equal(t, "literal ${{ name }}", render(t, "literal $${{ name }}", vars))
	})

	t.Run("escaped placeholders never evaluate", func(t *testing.T) {
		// "nope" is undefined but the escape keeps it out of the evaluator.
		assert.Equal(t, "${{ nope }} is widget", render(t, "$${{ nope }} is ${{ name }}", vars))
	})

	t.Run("escaped copy of a live expression stays literal", func(t *testing.T) {
		assert.Equal(t, "${{ name }} widget", render(t, "$${{ name }} ${{ name }}", vars))
		assert.Equal(t, "widget ${{ name }}", render(t, "${{ name }} $${{ name }}", vars))
		assert.Equal(t, "${{ count }}=4=${{ count }}",
			render(t, "$${{ count }}=${{ count }}=$${{ count }}", vars))
	})

	t.Run("builtin calls", func(t *testing.T) {
		assert.Equal(t, "WIDGET", render(t, "${{ $str.toUpper(name) }}", vars))
	})

	t.Run("date values", func(t *testing.T) {
		when := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
		got := render(t, "${{ when }}", map[string]interface{}{"when": when})
		assert.Equal(t, when, got)

		assert.Equal(t, "due 2024-01-15",
			render(t, "due ${{ when }}", map[string]interface{}{"when": when}))
	})
}

func TestRenderTemplate_Errors(t *testing.T) {
	t.Run("evaluation error", func(t *testing.T) {
		_, err := RenderTemplate("${{ missing }}", NewEnv(nil))
		require.Error(t, err)
		var nameErr *NameError
		require.ErrorAs(t, err, &nameErr)
		assert.Contains(t, err.Error(), "evaluating ${{ missing }}")
	})

	t.Run("parse error", func(t *testing.T) {
		_, err := RenderTemplate("${{ 1 + }}", NewEnv(nil))
		require.Error(t, err)
	})

	t.Run("arithmetic error", func(t *testing.T) {
		_, err := RenderTemplate("x=${{ 1 / 0 }}", NewEnv(nil))
		var mathErr *ArithmeticError
		require.ErrorAs(t, err, &mathErr)
	})
}
