package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/termynus/termynus/internal/parser"
)

// parseCmd represents the parse command
var parseCmd = &cobra.Command{
	Use:   "parse <expression>",
	Short: "Parse an expression and print its AST",
	Long: `Parse an expression without evaluating it and print the resulting
syntax tree. Useful for debugging operator precedence and call shapes.

Examples:
  tmy parse '1 + 2 * 3'
  tmy parse --output yaml '$max(1, 2, 3)'`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		parseExpression(args[0])
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func parseExpression(expression string) {
	node, err := parser.Parse(expression)
	if err != nil {
		printParseError(expression, err)
		os.Exit(1)
	}

	switch viper.GetString("output") {
	case "yaml":
		// Round-trip through JSON so YAML output carries the same node
		// shape as the JSON encoding.
		data, err := json.Marshal(node)
		if err != nil {
			Error(fmt.Sprintf("Encoding error: %v", err))
			os.Exit(1)
		}
		var doc interface{}
		if err := json.Unmarshal(data, &doc); err != nil {
			Error(fmt.Sprintf("Encoding error: %v", err))
			os.Exit(1)
		}
		printYAML(doc)
	default:
		printJSON(node)
	}
}
