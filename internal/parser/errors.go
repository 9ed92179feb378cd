package parser

import "fmt"

// LexError reports a stretch of input that matches no token shape.
type LexError struct {
	Token string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("unknown token %q", e.Token)
}

// SyntaxError reports unbalanced parentheses or brackets, a misplaced
// argument separator, insufficient operands or a malformed expression.
type SyntaxError struct {
	Msg string
}

func (e *SyntaxError) Error() string {
	return "syntax error: " + e.Msg
}

func syntaxErrorf(format string, args ...interface{}) error {
	return &SyntaxError{Msg: fmt.Sprintf(format, args...)}
}

// DateFormatError reports a date literal whose content is not a valid
// ISO-8601 date or date-time.
type DateFormatError struct {
	Literal string
	Err     error
}

func (e *DateFormatError) Error() string {
	return fmt.Sprintf("invalid date literal %q", e.Literal)
}

func (e *DateFormatError) Unwrap() error { return e.Err }
