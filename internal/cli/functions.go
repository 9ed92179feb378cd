package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/termynus/termynus/internal/eval"
	"github.com/termynus/termynus/internal/style"
)

// functionsCmd represents the functions command
var functionsCmd = &cobra.Command{
	Use:   "functions",
	Short: "List builtin functions and constants",
	Long: `List every function and constant in the builtin catalog, grouped by
namespace. Call builtins with a $ prefix, e.g. $str.concat(a, b).`,
	Run: func(cmd *cobra.Command, args []string) {
		listFunctions()
	},
}

func init() {
	rootCmd.AddCommand(functionsCmd)
}

func listFunctions() {
	names := eval.BuiltinNames()

	switch viper.GetString("output") {
	case "json":
		printJSON(map[string]interface{}{"functions": names, "count": len(names)})
	case "yaml":
		printYAML(map[string]interface{}{"functions": names, "count": len(names)})
	default:
		rows := make([][]string, 0, len(names))
		for _, name := range names {
			namespace := "core"
			if prefix, _, found := strings.Cut(name, "."); found {
				namespace = prefix
			}
			rows = append(rows, []string{style.FunctionNameStyle.Render(name), namespace})
		}
		printTable([]string{"NAME", "NAMESPACE"}, rows)
	}
}
