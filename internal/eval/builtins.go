package eval

// catalog is the process-wide builtin environment. It is populated once at
// init and never mutated afterwards; caller bindings shadow it by name.
var catalog = make(map[string]Value)

func init() {
	registerMathBuiltins(catalog)
	registerStringBuiltins(catalog)
	registerDateBuiltins(catalog)
	registerListBuiltins(catalog)

	catalog["apply"] = builtin("apply", func(args []Value) (Value, error) {
		if err := wantArgs("apply", args, 2); err != nil {
			return nil, err
		}
		fn, err := funcArg("apply", args, 0)
		if err != nil {
			return nil, err
		}
		callArgs, err := listArg("apply", args, 1)
		if err != nil {
			return nil, err
		}
		return fn.Fn(callArgs.Vals)
	})
}

func builtin(name string, fn Callable) Value {
	return FuncValue{Name: name, Fn: fn}
}

func wantArgs(name string, args []Value, n int) error {
	if len(args) != n {
		return typeErrorf("%s expects %d arguments, got %d", name, n, len(args))
	}
	return nil
}

func wantArgRange(name string, args []Value, min, max int) error {
	if len(args) < min || len(args) > max {
		return typeErrorf("%s expects %d to %d arguments, got %d", name, min, max, len(args))
	}
	return nil
}

func wantAtLeast(name string, args []Value, min int) error {
	if len(args) < min {
		return typeErrorf("%s expects at least %d arguments, got %d", name, min, len(args))
	}
	return nil
}

func numberArg(name string, args []Value, i int) (float64, error) {
	n, ok := asNumber(args[i])
	if !ok {
		return 0, typeErrorf("%s: argument %d must be a number, got %s", name, i+1, args[i].Type())
	}
	return n, nil
}

func intArg(name string, args []Value, i int) (int, error) {
	n, err := asInt(args[i])
	if err != nil {
		return 0, typeErrorf("%s: argument %d must be an integer, got %s", name, i+1, args[i].String())
	}
	return int(n), nil
}

func stringArg(name string, args []Value, i int) (string, error) {
	s, ok := args[i].(StringValue)
	if !ok {
		return "", typeErrorf("%s: argument %d must be a string, got %s", name, i+1, args[i].Type())
	}
	return s.Val, nil
}

func dateArg(name string, args []Value, i int) (DateValue, error) {
	d, ok := args[i].(DateValue)
	if !ok {
		return DateValue{}, typeErrorf("%s: argument %d must be a date, got %s", name, i+1, args[i].Type())
	}
	return d, nil
}

func listArg(name string, args []Value, i int) (ListValue, error) {
	l, ok := args[i].(ListValue)
	if !ok {
		return ListValue{}, typeErrorf("%s: argument %d must be a list, got %s", name, i+1, args[i].Type())
	}
	return l, nil
}

func funcArg(name string, args []Value, i int) (FuncValue, error) {
	f, ok := args[i].(FuncValue)
	if !ok {
		return FuncValue{}, typeErrorf("%s: argument %d must be callable, got %s", name, i+1, args[i].Type())
	}
	return f, nil
}

func numberArgs(name string, args []Value) ([]float64, error) {
	out := make([]float64, len(args))
	for i := range args {
		n, err := numberArg(name, args, i)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}
