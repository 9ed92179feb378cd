package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"gopkg.in/yaml.v3"

	"github.com/termynus/termynus/internal/parser"
	"github.com/termynus/termynus/internal/style"
)

// printJSON outputs data as formatted JSON
func printJSON(data interface{}) {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		os.Exit(1)
	}
}

// printYAML outputs data as YAML
func printYAML(data interface{}) {
	encoder := yaml.NewEncoder(os.Stdout)
	encoder.SetIndent(2)
	if err := encoder.Encode(data); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding YAML: %v\n", err)
		os.Exit(1)
	}
	encoder.Close()
}

// printTable outputs data in a human-readable table format
func printTable(headers []string, rows [][]string) {
	if len(rows) == 0 {
		return
	}

	// Calculate column widths; lipgloss.Width ignores styling sequences.
	widths := make([]int, len(headers))
	for i, header := range headers {
		widths[i] = len(header)
	}

	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	// Print header
	for i, header := range headers {
		fmt.Printf("%-*s  ", widths[i], header)
	}
	fmt.Println()

	// Print separator
	for i := range headers {
		for j := 0; j < widths[i]; j++ {
			fmt.Print("-")
		}
		fmt.Print("  ")
	}
	fmt.Println()

	// Print rows
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) {
				pad := widths[i] - lipgloss.Width(cell)
				fmt.Print(cell + strings.Repeat(" ", pad) + "  ")
			}
		}
		fmt.Println()
	}
}

// Error prints an error message
func Error(message string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", style.ErrorIcon(), message)
}

// Warning prints a warning message
func Warning(message string) {
	style.Warning(os.Stderr, message)
}

// printParseError shows the failing expression before the error itself,
// with carets under the offending token when the scanner identified one.
func printParseError(expression string, err error) {
	var lexErr *parser.LexError
	if errors.As(err, &lexErr) {
		fmt.Fprintln(os.Stderr, style.RenderTokenHighlight(expression, lexErr.Token))
	} else {
		fmt.Fprintln(os.Stderr, style.RenderExpression(expression))
	}
	Error(fmt.Sprintf("Parse error: %v", err))
}
