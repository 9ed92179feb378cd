// Package token splits rule expressions into lexical tokens and classifies them.
//
// Scanning and classification are deliberately separate: Scan only slices the
// source into substrings, and the parser decides what each substring means by
// calling the predicates below. A substring no predicate accepts surfaces as an
// unknown-token error during parsing rather than being dropped here.
package token

import (
	"regexp"
	"strings"
	"time"
)

// tokenPattern matches every token shape in one pass, longest match first:
// two-character operators, single/double pipe, quoted date and string literals
// with escaped quotes, signed numbers, $-prefixed function names, dotted
// identifiers, plain numbers and single-character punctuation.
var tokenPattern = regexp.MustCompile(
	`=>|//|\*\*|==|!=|<=|>=|<<|>>|\|{1,2}|&|\^` +
		`|d"(?:\\.|[^"\\])*"|d'(?:\\.|[^'\\])*'` +
		`|"(?:\\.|[^"\\])*"|'(?:\\.|[^'\\])*'` +
		`|-\d*\.\d+|-\.\d+|-\d+\b` +
		`|\$[\w.]+|\b[\w.]+\b` +
		`|\d+\.\d+|\.\d+|\d+\b` +
		`|[+\-*/%(),<>!=]`)

var (
	numberPattern     = regexp.MustCompile(`^-?\d+(\.\d+)?$`)
	identifierPattern = regexp.MustCompile(`^[a-zA-Z_][\w.]*$`)
	functionPattern   = regexp.MustCompile(`^\$[a-zA-Z_][\w.]*$`)
	isoDatePattern    = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}(T\d{2}:\d{2}:\d{2}(\.\d+)?(Z|[+-]\d{2}:\d{2})?)?$`)
)

// binaryOperators and unaryOperators are disjoint by name. A handful of names
// only ever appear in prefix position; "~" is an alias for "inv".
var binaryOperators = map[string]struct{}{
	"+": {}, "-": {}, "*": {}, "/": {}, "//": {}, "**": {}, "pow": {},
	"mod": {}, "%": {},
	"<": {}, "<=": {}, ">": {}, ">=": {}, "==": {}, "!=": {},
	"and": {}, "or": {},
	"|": {}, "&": {}, "xor": {}, "<<": {}, ">>": {},
}

var unaryOperators = map[string]struct{}{
	"not": {}, "neg": {},
	"floor": {}, "trunc": {}, "ceil": {}, "abs": {},
	"int": {}, "float": {}, "bool": {}, "str": {},
	"isinf": {}, "isnan": {}, "isfinite": {},
	"inv": {}, "~": {},
}

// Scan splits text into an ordered sequence of token substrings. Whitespace is
// stripped and empty tokens are dropped. Any stretch of input the token
// pattern cannot match is kept as its own token so the parser can report it.
func Scan(text string) []string {
	var tokens []string
	last := 0
	for _, loc := range tokenPattern.FindAllStringIndex(text, -1) {
		if gap := strings.TrimSpace(text[last:loc[0]]); gap != "" {
			tokens = append(tokens, gap)
		}
		tokens = append(tokens, text[loc[0]:loc[1]])
		last = loc[1]
	}
	if gap := strings.TrimSpace(text[last:]); gap != "" {
		tokens = append(tokens, gap)
	}
	return tokens
}

// IsNumber reports whether tok is a decimal literal, optionally signed.
func IsNumber(tok string) bool {
	return numberPattern.MatchString(tok)
}

// IsIdentifier reports whether tok is a dotted word identifier. Identifiers
// may contain dots but never start with a dollar sign.
func IsIdentifier(tok string) bool {
	return identifierPattern.MatchString(tok) && !strings.HasPrefix(tok, "$")
}

// IsFunction reports whether tok is a dollar-prefixed function name.
func IsFunction(tok string) bool {
	return functionPattern.MatchString(tok)
}

// IsBinaryOperator reports whether tok names a binary operator.
func IsBinaryOperator(tok string) bool {
	_, ok := binaryOperators[tok]
	return ok
}

// IsUnaryOperator reports whether tok names a unary (prefix) operator.
func IsUnaryOperator(tok string) bool {
	_, ok := unaryOperators[tok]
	return ok
}

// IsOperator reports whether tok names any operator.
func IsOperator(tok string) bool {
	return IsBinaryOperator(tok) || IsUnaryOperator(tok)
}

// IsStringLiteral reports whether tok is bounded by matching quote characters.
func IsStringLiteral(tok string) bool {
	if len(tok) < 2 {
		return false
	}
	return (tok[0] == '"' && tok[len(tok)-1] == '"') ||
		(tok[0] == '\'' && tok[len(tok)-1] == '\'')
}

// IsDateLiteral reports whether tok is a d-prefixed quoted literal.
func IsDateLiteral(tok string) bool {
	return len(tok) > 2 && tok[0] == 'd' && IsStringLiteral(tok[1:])
}

// Unescape converts backslash escape sequences in a quoted literal's content
// to their literal characters.
func Unescape(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 == len(s) {
			b.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// IsISODate reports whether value matches the ISO-8601 date or date-time
// shape YYYY-MM-DD[THH:MM:SS[.fff][Z|±HH:MM]].
func IsISODate(value string) bool {
	return isoDatePattern.MatchString(value)
}

var isoDateLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseISODate parses an ISO-8601 date or date-time string.
func ParseISODate(value string) (time.Time, error) {
	var firstErr error
	for _, layout := range isoDateLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}
