package eval

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

func registerStringBuiltins(m map[string]Value) {
	m["str.concat"] = builtin("str.concat", func(args []Value) (Value, error) {
		var b strings.Builder
		for _, arg := range args {
			b.WriteString(arg.String())
		}
		return StringValue{Val: b.String()}, nil
	})

	m["str.length"] = builtin("str.length", func(args []Value) (Value, error) {
		if err := wantArgs("str.length", args, 1); err != nil {
			return nil, err
		}
		s, err := stringArg("str.length", args, 0)
		if err != nil {
			return nil, err
		}
		return NumberValue{Val: float64(utf8.RuneCountInString(s))}, nil
	})

	m["str.substring"] = builtin("str.substring", func(args []Value) (Value, error) {
		if err := wantArgRange("str.substring", args, 2, 3); err != nil {
			return nil, err
		}
		s, err := stringArg("str.substring", args, 0)
		if err != nil {
			return nil, err
		}
		start, err := intArg("str.substring", args, 1)
		if err != nil {
			return nil, err
		}
		runes := []rune(s)
		end := len(runes)
		if len(args) == 3 {
			length, err := intArg("str.substring", args, 2)
			if err != nil {
				return nil, err
			}
			end = start + length
		}
		lo, hi := sliceBounds(len(runes), start, end)
		return StringValue{Val: string(runes[lo:hi])}, nil
	})

	m["str.replace"] = builtin("str.replace", func(args []Value) (Value, error) {
		if err := wantArgs("str.replace", args, 3); err != nil {
			return nil, err
		}
		s, err := stringArg("str.replace", args, 0)
		if err != nil {
			return nil, err
		}
		old, err := stringArg("str.replace", args, 1)
		if err != nil {
			return nil, err
		}
		new, err := stringArg("str.replace", args, 2)
		if err != nil {
			return nil, err
		}
		return StringValue{Val: strings.ReplaceAll(s, old, new)}, nil
	})

	m["str.toUpper"] = stringUnary("str.toUpper", strings.ToUpper)
	m["str.toLower"] = stringUnary("str.toLower", strings.ToLower)
	m["str.trim"] = stringUnary("str.trim", strings.TrimSpace)

	m["str.split"] = builtin("str.split", func(args []Value) (Value, error) {
		if err := wantArgs("str.split", args, 2); err != nil {
			return nil, err
		}
		s, err := stringArg("str.split", args, 0)
		if err != nil {
			return nil, err
		}
		sep, err := stringArg("str.split", args, 1)
		if err != nil {
			return nil, err
		}
		parts := strings.Split(s, sep)
		vals := make([]Value, len(parts))
		for i, part := range parts {
			vals[i] = StringValue{Val: part}
		}
		return ListValue{Vals: vals}, nil
	})

	m["str.indexOf"] = builtin("str.indexOf", func(args []Value) (Value, error) {
		if err := wantArgs("str.indexOf", args, 2); err != nil {
			return nil, err
		}
		s, err := stringArg("str.indexOf", args, 0)
		if err != nil {
			return nil, err
		}
		sub, err := stringArg("str.indexOf", args, 1)
		if err != nil {
			return nil, err
		}
		idx := strings.Index(s, sub)
		if idx < 0 {
			return NumberValue{Val: -1}, nil
		}
		// Character position, not byte offset.
		return NumberValue{Val: float64(utf8.RuneCountInString(s[:idx]))}, nil
	})

	m["str.contains"] = stringPredicate("str.contains", strings.Contains)
	m["str.startsWith"] = stringPredicate("str.startsWith", strings.HasPrefix)
	m["str.endsWith"] = stringPredicate("str.endsWith", strings.HasSuffix)

	m["str.regexMatch"] = builtin("str.regexMatch", func(args []Value) (Value, error) {
		if err := wantArgs("str.regexMatch", args, 2); err != nil {
			return nil, err
		}
		s, err := stringArg("str.regexMatch", args, 0)
		if err != nil {
			return nil, err
		}
		pattern, err := stringArg("str.regexMatch", args, 1)
		if err != nil {
			return nil, err
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, typeErrorf("str.regexMatch: invalid pattern %q: %v", pattern, err)
		}
		return BoolValue{Val: re.MatchString(s)}, nil
	})

	m["str.format"] = builtin("str.format", func(args []Value) (Value, error) {
		if err := wantAtLeast("str.format", args, 1); err != nil {
			return nil, err
		}
		template, err := stringArg("str.format", args, 0)
		if err != nil {
			return nil, err
		}
		return formatString(template, args[1:])
	})
}

func stringUnary(name string, fn func(string) string) Value {
	return builtin(name, func(args []Value) (Value, error) {
		if err := wantArgs(name, args, 1); err != nil {
			return nil, err
		}
		s, err := stringArg(name, args, 0)
		if err != nil {
			return nil, err
		}
		return StringValue{Val: fn(s)}, nil
	})
}

func stringPredicate(name string, fn func(string, string) bool) Value {
	return builtin(name, func(args []Value) (Value, error) {
		if err := wantArgs(name, args, 2); err != nil {
			return nil, err
		}
		s, err := stringArg(name, args, 0)
		if err != nil {
			return nil, err
		}
		sub, err := stringArg(name, args, 1)
		if err != nil {
			return nil, err
		}
		return BoolValue{Val: fn(s, sub)}, nil
	})
}

// formatString substitutes {} and {n} placeholders with the remaining
// arguments; {{ and }} escape literal braces.
func formatString(template string, args []Value) (Value, error) {
	var b strings.Builder
	next := 0
	for i := 0; i < len(template); i++ {
		c := template[i]
		switch {
		case c == '{' && i+1 < len(template) && template[i+1] == '{':
			b.WriteByte('{')
			i++
		case c == '}' && i+1 < len(template) && template[i+1] == '}':
			b.WriteByte('}')
			i++
		case c == '{':
			end := strings.IndexByte(template[i:], '}')
			if end < 0 {
				return nil, typeErrorf("str.format: unclosed placeholder in %q", template)
			}
			field := template[i+1 : i+end]
			idx := next
			if field != "" {
				n, err := strconv.Atoi(field)
				if err != nil {
					return nil, typeErrorf("str.format: bad placeholder {%s}", field)
				}
				idx = n
			} else {
				next++
			}
			if idx < 0 || idx >= len(args) {
				return nil, typeErrorf("str.format: placeholder index %d out of range", idx)
			}
			b.WriteString(args[idx].String())
			i += end
		default:
			b.WriteByte(c)
		}
	}
	return StringValue{Val: b.String()}, nil
}

// sliceBounds clamps start/end to valid slice positions, counting negative
// indexes from the end.
func sliceBounds(n, start, end int) (int, int) {
	if start < 0 {
		start += n
	}
	if end < 0 {
		end += n
	}
	if start < 0 {
		start = 0
	}
	if start > n {
		start = n
	}
	if end < 0 {
		end = 0
	}
	if end > n {
		end = n
	}
	if end < start {
		end = start
	}
	return start, end
}
