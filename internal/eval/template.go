package eval

import (
	"fmt"
	"regexp"
	"strings"
)

var templatePattern = regexp.MustCompile(`(\$)?\$\{\{\s*(.*?)\s*\}\}`)

// RenderTemplate interpolates ${{ expr }} placeholders in template against
// env. A template that consists of exactly one placeholder returns the
// expression's typed value; anything else renders to a string. A placeholder
// prefixed with an extra $ is emitted literally with the escape stripped.
func RenderTemplate(template string, env *Env) (interface{}, error) {
	if template == "" {
		return "", nil
	}

	matches := templatePattern.FindAllStringSubmatchIndex(template, -1)
	if len(matches) == 0 {
		return template, nil
	}

	// A lone unescaped placeholder spanning the whole template keeps the
	// expression's type.
	if m := matches[0]; len(matches) == 1 && m[2] < 0 && m[0] == 0 && m[1] == len(template) {
		value, err := evaluateSource(template[m[4]:m[5]], env)
		if err != nil {
			return "", fmt.Errorf("evaluating %s: %w", template, err)
		}
		return value.GoValue(), nil
	}

	// Rebuild by position so an escaped placeholder can never be rewritten
	// again by a later substitution of the same expression text.
	var b strings.Builder
	last := 0
	for _, m := range matches {
		b.WriteString(template[last:m[0]])
		if m[2] >= 0 {
			// Escaped: emit the placeholder minus its leading $.
			b.WriteString(template[m[3]:m[1]])
		} else {
			value, err := evaluateSource(template[m[4]:m[5]], env)
			if err != nil {
				return "", fmt.Errorf("evaluating %s: %w", template[m[0]:m[1]], err)
			}
			b.WriteString(value.String())
		}
		last = m[1]
	}
	b.WriteString(template[last:])
	return b.String(), nil
}
