package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/termynus/termynus/internal/eval"
)

var (
	// Render command flags
	renderVars     []string
	renderVarsFile string
)

// renderCmd represents the render command
var renderCmd = &cobra.Command{
	Use:   "render <template>",
	Short: "Render a template with embedded expressions",
	Long: `Render a template string, replacing each ${{ expression }} placeholder
with its evaluated value. A template that is exactly one placeholder
keeps the expression's type instead of flattening to a string.

Examples:
  tmy render 'total: ${{ price * quantity }}' --var price=3 --var quantity=2
  tmy render '${{ $str.toUpper(name) }}' --vars-file vars.yaml`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		renderTemplate(args[0])
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringArrayVar(&renderVars, "var", []string{}, "variable binding in key=value form (repeatable)")
	renderCmd.Flags().StringVarP(&renderVarsFile, "vars-file", "f", "", "YAML file with variable bindings")
}

func renderTemplate(template string) {
	vars, err := collectVariables(renderVarsFile, renderVars)
	if err != nil {
		Error(err.Error())
		os.Exit(1)
	}

	result, err := eval.RenderTemplate(template, eval.NewEnv(vars))
	if err != nil {
		Error(fmt.Sprintf("Render error: %v", err))
		os.Exit(1)
	}

	switch viper.GetString("output") {
	case "json":
		printJSON(map[string]interface{}{"result": result})
	case "yaml":
		printYAML(map[string]interface{}{"result": result})
	default:
		fmt.Println(result)
	}
}
