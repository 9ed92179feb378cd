package eval

import (
	"fmt"
	"strings"
	"time"

	"github.com/termynus/termynus/internal/parser"
	"github.com/termynus/termynus/internal/token"
)

func registerDateBuiltins(m map[string]Value) {
	m["date.parse"] = builtin("date.parse", func(args []Value) (Value, error) {
		if err := wantArgs("date.parse", args, 1); err != nil {
			return nil, err
		}
		s, err := stringArg("date.parse", args, 0)
		if err != nil {
			return nil, err
		}
		if !token.IsISODate(s) {
			return nil, &parser.DateFormatError{Literal: s}
		}
		t, err := token.ParseISODate(s)
		if err != nil {
			return nil, &parser.DateFormatError{Literal: s, Err: err}
		}
		return DateValue{Val: t}, nil
	})

	m["date.format"] = builtin("date.format", func(args []Value) (Value, error) {
		if err := wantArgRange("date.format", args, 1, 2); err != nil {
			return nil, err
		}
		d, err := dateArg("date.format", args, 0)
		if err != nil {
			return nil, err
		}
		format := "%Y-%m-%d"
		if len(args) == 2 {
			format, err = stringArg("date.format", args, 1)
			if err != nil {
				return nil, err
			}
		}
		return StringValue{Val: strftime(d.Val, format)}, nil
	})

	m["date.addDays"] = dateShift("date.addDays", 24*time.Hour)
	m["date.addHours"] = dateShift("date.addHours", time.Hour)
	m["date.addMinutes"] = dateShift("date.addMinutes", time.Minute)
	m["date.addSeconds"] = dateShift("date.addSeconds", time.Second)

	m["date.dayOfWeek"] = dateField("date.dayOfWeek", func(t time.Time) Value {
		return StringValue{Val: t.Weekday().String()}
	})
	m["date.dayOfMonth"] = dateField("date.dayOfMonth", func(t time.Time) Value {
		return NumberValue{Val: float64(t.Day())}
	})
	m["date.dayOfYear"] = dateField("date.dayOfYear", func(t time.Time) Value {
		return NumberValue{Val: float64(t.YearDay())}
	})
	m["date.month"] = dateField("date.month", func(t time.Time) Value {
		return NumberValue{Val: float64(t.Month())}
	})
	m["date.year"] = dateField("date.year", func(t time.Time) Value {
		return NumberValue{Val: float64(t.Year())}
	})
	m["date.week"] = dateField("date.week", func(t time.Time) Value {
		_, week := t.ISOWeek()
		return NumberValue{Val: float64(week)}
	})
}

// dateShift builds an add* builtin; fractional amounts are honored.
func dateShift(name string, unit time.Duration) Value {
	return builtin(name, func(args []Value) (Value, error) {
		if err := wantArgs(name, args, 2); err != nil {
			return nil, err
		}
		d, err := dateArg(name, args, 0)
		if err != nil {
			return nil, err
		}
		amount, err := numberArg(name, args, 1)
		if err != nil {
			return nil, err
		}
		return DateValue{Val: d.Val.Add(time.Duration(amount * float64(unit)))}, nil
	})
}

func dateField(name string, fn func(time.Time) Value) Value {
	return builtin(name, func(args []Value) (Value, error) {
		if err := wantArgs(name, args, 1); err != nil {
			return nil, err
		}
		d, err := dateArg(name, args, 0)
		if err != nil {
			return nil, err
		}
		return fn(d.Val), nil
	})
}

// strftime renders the strftime directives the catalog documents; unknown
// directives pass through verbatim.
func strftime(t time.Time, format string) string {
	var b strings.Builder
	for i := 0; i < len(format); i++ {
		if format[i] != '%' || i+1 == len(format) {
			b.WriteByte(format[i])
			continue
		}
		i++
		switch format[i] {
		case 'Y':
			fmt.Fprintf(&b, "%04d", t.Year())
		case 'y':
			fmt.Fprintf(&b, "%02d", t.Year()%100)
		case 'm':
			fmt.Fprintf(&b, "%02d", int(t.Month()))
		case 'd':
			fmt.Fprintf(&b, "%02d", t.Day())
		case 'H':
			fmt.Fprintf(&b, "%02d", t.Hour())
		case 'M':
			fmt.Fprintf(&b, "%02d", t.Minute())
		case 'S':
			fmt.Fprintf(&b, "%02d", t.Second())
		case 'f':
			fmt.Fprintf(&b, "%06d", t.Nanosecond()/1000)
		case 'A':
			b.WriteString(t.Weekday().String())
		case 'a':
			b.WriteString(t.Weekday().String()[:3])
		case 'B':
			b.WriteString(t.Month().String())
		case 'b':
			b.WriteString(t.Month().String()[:3])
		case 'j':
			fmt.Fprintf(&b, "%03d", t.YearDay())
		case 'z':
			b.WriteString(t.Format("-0700"))
		case 'Z':
			b.WriteString(t.Format("MST"))
		case '%':
			b.WriteByte('%')
		default:
			b.WriteByte('%')
			b.WriteByte(format[i])
		}
	}
	return b.String()
}
