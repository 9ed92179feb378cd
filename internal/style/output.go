package style

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"gopkg.in/yaml.v3"
)

var (
	// Color palette
	PrimaryTextColor = lipgloss.Color("#E4E4E7")
	ErrorBgColor     = lipgloss.Color("#3D2020")

	ErrorColor   = lipgloss.Color("#FF6B6B")
	WarningColor = lipgloss.Color("#FFA726")
	SuccessColor = lipgloss.Color("#66BB6A")
	InfoColor    = lipgloss.Color("#42A5F5")
	MutedColor   = lipgloss.Color("#6C757D")
	AccentColor  = lipgloss.Color("#7C3AED")
	CodeColor    = lipgloss.Color("#D4D4D4")

	// Base styles
	ErrorStyle   = lipgloss.NewStyle().Foreground(ErrorColor).Bold(true)
	WarningStyle = lipgloss.NewStyle().Foreground(WarningColor).Bold(true)
	SuccessStyle = lipgloss.NewStyle().Foreground(SuccessColor).Bold(true)
	InfoStyle    = lipgloss.NewStyle().Foreground(InfoColor).Bold(true)
	MutedStyle   = lipgloss.NewStyle().Foreground(MutedColor)
	AccentStyle  = lipgloss.NewStyle().Foreground(AccentColor)

	TitleStyle = lipgloss.NewStyle().
			Bold(true)

	CodeStyle = lipgloss.NewStyle().
			Foreground(CodeColor).
			Background(lipgloss.Color("#1A1B26")).
			Padding(0, 1)

	HighlightStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	// FunctionNameStyle renders builtin names in catalog listings.
	FunctionNameStyle = lipgloss.NewStyle().
				Foreground(AccentColor).
				Bold(true)
)

// RenderExpression renders expression source as an inline code block.
func RenderExpression(expr string) string {
	return CodeStyle.Render(expr)
}

// RenderTokenHighlight renders an expression with carets underneath the
// first occurrence of the offending token.
func RenderTokenHighlight(expr, token string) string {
	idx := strings.Index(expr, token)
	if token == "" || idx < 0 {
		return RenderExpression(expr)
	}
	carets := strings.Repeat(" ", idx+1) + strings.Repeat("^", len(token))
	return RenderExpression(expr) + "\n" + HighlightStyle.Render(carets)
}

// printJSON outputs data as formatted JSON
func PrintJSON(w io.Writer, data interface{}) {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		fmt.Fprintf(w, "Error encoding JSON: %v\n", err)
	}
}

// printYAML outputs data as YAML
func PrintYAML(w io.Writer, data interface{}) {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(data); err != nil {
		fmt.Fprintf(w, "Error encoding YAML: %v\n", err)
	}
	encoder.Close()
}

// Success prints a success message with styling
func Success(w io.Writer, message string) {
	icon := lipgloss.NewStyle().Foreground(SuccessColor).Bold(true).Render("✓")
	msg := lipgloss.NewStyle().Foreground(SuccessColor).Render(message)
	fmt.Fprintf(w, "%s %s\n", icon, msg)
}

func ErrorIcon() string {
	return lipgloss.NewStyle().Foreground(ErrorColor).Bold(true).Render("✗")
}

// Error prints an error message with styling
func Error(w io.Writer, message string) {
	icon := lipgloss.NewStyle().Foreground(ErrorColor).Bold(true).Render("✗")
	msg := lipgloss.NewStyle().Foreground(ErrorColor).Render(message)
	fmt.Fprintf(w, "%s %s\n", icon, msg)
}

// Warning prints a warning message with styling
func Warning(w io.Writer, message string) {
	icon := lipgloss.NewStyle().Foreground(WarningColor).Bold(true).Render("⚠")
	msg := lipgloss.NewStyle().Foreground(WarningColor).Render(message)
	fmt.Fprintf(w, "%s %s\n", icon, msg)
}

// Info prints an info message with styling
func Info(w io.Writer, message string) {
	icon := lipgloss.NewStyle().Foreground(InfoColor).Bold(true).Render("ℹ")
	msg := lipgloss.NewStyle().Foreground(InfoColor).Render(message)
	fmt.Fprintf(w, "%s %s\n", icon, msg)
}
