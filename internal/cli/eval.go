package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/termynus/termynus/internal/eval"
	"github.com/termynus/termynus/internal/parser"
)

var (
	// Eval command flags
	evalVars     []string
	evalVarsFile string
)

// evalCmd represents the eval command
var evalCmd = &cobra.Command{
	Use:   "eval <expression>",
	Short: "Evaluate an expression",
	Long: `Parse and evaluate a single expression against a set of variables.

Variables come from --var flags and from a YAML variables file; --var
values are parsed as YAML scalars, so numbers and booleans keep their type.

Examples:
  tmy eval '1 + 2 * 3'
  tmy eval 'price * quantity' --var price=2.5 --var quantity=4
  tmy eval '$str.toUpper(name)' --vars-file vars.yaml
  tmy eval --output json 'd"2024-01-15" > d"2024-01-01"'`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		evaluateExpression(args[0])
	},
}

func init() {
	rootCmd.AddCommand(evalCmd)

	evalCmd.Flags().StringArrayVar(&evalVars, "var", []string{}, "variable binding in key=value form (repeatable)")
	evalCmd.Flags().StringVarP(&evalVarsFile, "vars-file", "f", "", "YAML file with variable bindings")
}

func evaluateExpression(expression string) {
	vars, err := collectVariables(evalVarsFile, evalVars)
	if err != nil {
		Error(err.Error())
		os.Exit(1)
	}

	node, err := parser.Parse(expression)
	if err != nil {
		printParseError(expression, err)
		os.Exit(1)
	}

	value, err := eval.Evaluate(node, eval.NewEnv(vars))
	if err != nil {
		Error(fmt.Sprintf("Evaluation error: %v", err))
		os.Exit(1)
	}

	switch viper.GetString("output") {
	case "json":
		printJSON(map[string]interface{}{
			"result": value.GoValue(),
			"type":   value.Type(),
		})
	case "yaml":
		printYAML(map[string]interface{}{
			"result": value.GoValue(),
			"type":   value.Type(),
		})
	default:
		fmt.Println(value.String())
	}
}

// collectVariables merges bindings from a YAML file with --var overrides.
func collectVariables(file string, pairs []string) (map[string]interface{}, error) {
	vars := make(map[string]interface{})

	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("reading variables file: %w", err)
		}
		if err := yaml.Unmarshal(data, &vars); err != nil {
			return nil, fmt.Errorf("parsing variables file %s: %w", file, err)
		}
	}

	for _, pair := range pairs {
		key, raw, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid --var %q, expected key=value", pair)
		}

		// YAML scalar parsing keeps numbers and booleans typed.
		var value interface{}
		if err := yaml.Unmarshal([]byte(raw), &value); err != nil {
			value = raw
		}
		vars[key] = value
	}

	return vars, nil
}
