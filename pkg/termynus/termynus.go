// Package termynus provides a public API for evaluating termynus expressions
// programmatically. This package allows third-party applications to embed
// expression evaluation directly into their codebase without reaching into
// the internal packages.
//
// The main functionality includes:
//   - Evaluating expressions against caller-supplied variables
//   - Rendering ${{ ... }} templates
//   - Registering custom functions through functional options
//   - Inspecting the builtin function catalog
//
// Example usage:
//
//	vars := map[string]interface{}{
//		"price":    12.5,
//		"quantity": 4,
//	}
//
//	result, err := termynus.Evaluate("price * quantity > 40", vars)
//	if err != nil {
//		log.Fatal(err)
//	}
package termynus

import (
	"encoding/json"

	"github.com/termynus/termynus/internal/eval"
	"github.com/termynus/termynus/internal/parser"
)

// Option represents a functional option for configuring an evaluation.
type Option func(map[string]interface{})

// Function is the signature of a caller-registered function. Arguments
// arrive fully evaluated as plain Go values (float64, bool, string,
// time.Time, []interface{}); the returned value is converted back the same
// way.
type Function func(args []interface{}) (interface{}, error)

// WithFunction creates an Option that binds a custom function under the
// given name. The function becomes callable as $name(...) and shadows any
// builtin with the same name.
//
// Example:
//
//	opt := termynus.WithFunction("discount", func(args []interface{}) (interface{}, error) {
//		total := args[0].(float64)
//		return total * 0.9, nil
//	})
//
//	result, err := termynus.Evaluate("$discount(subtotal)", vars, opt)
func WithFunction(name string, fn Function) Option {
	return func(vars map[string]interface{}) {
		vars[name] = eval.Callable(func(args []eval.Value) (eval.Value, error) {
			plain := make([]interface{}, len(args))
			for i, arg := range args {
				plain[i] = arg.GoValue()
			}
			result, err := fn(plain)
			if err != nil {
				return nil, err
			}
			return eval.FromGo(result), nil
		})
	}
}

// Evaluate parses and evaluates a single expression against the provided
// variables.
//
// The result is a plain Go value: float64 for numbers, bool for booleans,
// string for strings, time.Time for dates and []interface{} for lists.
// A nil variables map is valid and evaluates against the builtin catalog
// alone.
//
// Errors distinguish parse failures (parser.LexError, parser.SyntaxError,
// parser.DateFormatError) from evaluation failures (eval.NameError,
// eval.TypeError, eval.ArithmeticError); match them with errors.As.
func Evaluate(expression string, variables map[string]interface{}, options ...Option) (interface{}, error) {
	return eval.EvaluateString(expression, applyOptions(variables, options))
}

// Render interpolates every ${{ expression }} placeholder in template
// against the provided variables. A template that is exactly one
// placeholder returns the expression's typed value; anything else renders
// to a string. $${{ ... }} emits the placeholder literally.
func Render(template string, variables map[string]interface{}, options ...Option) (interface{}, error) {
	env := eval.NewEnv(applyOptions(variables, options))
	return eval.RenderTemplate(template, env)
}

// Parse parses an expression and returns its AST as JSON. The shape matches
// what POST /api/v1/parse returns, so a tree parsed offline can be compared
// against the service's output.
func Parse(expression string) (json.RawMessage, error) {
	node, err := parser.Parse(expression)
	if err != nil {
		return nil, err
	}
	return json.Marshal(node)
}

// Functions returns the names of every builtin in the catalog, sorted.
func Functions() []string {
	return eval.BuiltinNames()
}

func applyOptions(variables map[string]interface{}, options []Option) map[string]interface{} {
	if len(options) == 0 {
		return variables
	}
	merged := make(map[string]interface{}, len(variables)+len(options))
	for k, v := range variables {
		merged[k] = v
	}
	for _, option := range options {
		option(merged)
	}
	return merged
}
