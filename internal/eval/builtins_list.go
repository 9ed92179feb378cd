package eval

import "unicode/utf8"

// List builtins use value semantics throughout: list.append and list.put
// return a fresh list and never mutate their argument.
func registerListBuiltins(m map[string]Value) {
	m["list.length"] = builtin("list.length", func(args []Value) (Value, error) {
		if err := wantArgs("list.length", args, 1); err != nil {
			return nil, err
		}
		switch v := args[0].(type) {
		case ListValue:
			return NumberValue{Val: float64(len(v.Vals))}, nil
		case StringValue:
			return NumberValue{Val: float64(utf8.RuneCountInString(v.Val))}, nil
		default:
			return nil, typeErrorf("list.length: argument must be a list or string, got %s", args[0].Type())
		}
	})

	m["list.append"] = builtin("list.append", func(args []Value) (Value, error) {
		if err := wantArgs("list.append", args, 2); err != nil {
			return nil, err
		}
		l, err := listArg("list.append", args, 0)
		if err != nil {
			return nil, err
		}
		vals := make([]Value, 0, len(l.Vals)+1)
		vals = append(vals, l.Vals...)
		vals = append(vals, args[1])
		return ListValue{Vals: vals}, nil
	})

	m["list.concat"] = builtin("list.concat", func(args []Value) (Value, error) {
		if err := wantArgs("list.concat", args, 2); err != nil {
			return nil, err
		}
		l1, err := listArg("list.concat", args, 0)
		if err != nil {
			return nil, err
		}
		l2, err := listArg("list.concat", args, 1)
		if err != nil {
			return nil, err
		}
		vals := make([]Value, 0, len(l1.Vals)+len(l2.Vals))
		vals = append(vals, l1.Vals...)
		vals = append(vals, l2.Vals...)
		return ListValue{Vals: vals}, nil
	})

	m["list.get"] = builtin("list.get", func(args []Value) (Value, error) {
		if err := wantArgs("list.get", args, 2); err != nil {
			return nil, err
		}
		l, err := listArg("list.get", args, 0)
		if err != nil {
			return nil, err
		}
		i, err := intArg("list.get", args, 1)
		if err != nil {
			return nil, err
		}
		idx, ok := listIndex(len(l.Vals), i)
		if !ok {
			return nil, arithmeticErrorf("list index %d out of range", i)
		}
		return l.Vals[idx], nil
	})

	m["list.put"] = builtin("list.put", func(args []Value) (Value, error) {
		if err := wantArgs("list.put", args, 3); err != nil {
			return nil, err
		}
		l, err := listArg("list.put", args, 0)
		if err != nil {
			return nil, err
		}
		i, err := intArg("list.put", args, 1)
		if err != nil {
			return nil, err
		}
		idx, ok := listIndex(len(l.Vals), i)
		if !ok {
			return nil, arithmeticErrorf("list index %d out of range", i)
		}
		vals := append([]Value(nil), l.Vals...)
		vals[idx] = args[2]
		return ListValue{Vals: vals}, nil
	})

	m["list.slice"] = builtin("list.slice", func(args []Value) (Value, error) {
		if err := wantArgRange("list.slice", args, 2, 3); err != nil {
			return nil, err
		}
		l, err := listArg("list.slice", args, 0)
		if err != nil {
			return nil, err
		}
		start, err := intArg("list.slice", args, 1)
		if err != nil {
			return nil, err
		}
		end := len(l.Vals)
		if len(args) == 3 {
			end, err = intArg("list.slice", args, 2)
			if err != nil {
				return nil, err
			}
		}
		lo, hi := sliceBounds(len(l.Vals), start, end)
		return ListValue{Vals: append([]Value(nil), l.Vals[lo:hi]...)}, nil
	})

	m["list.map"] = builtin("list.map", func(args []Value) (Value, error) {
		if err := wantArgs("list.map", args, 2); err != nil {
			return nil, err
		}
		fn, err := funcArg("list.map", args, 0)
		if err != nil {
			return nil, err
		}
		l, err := listArg("list.map", args, 1)
		if err != nil {
			return nil, err
		}
		vals := make([]Value, len(l.Vals))
		for i, v := range l.Vals {
			r, err := fn.Fn([]Value{v})
			if err != nil {
				return nil, err
			}
			vals[i] = r
		}
		return ListValue{Vals: vals}, nil
	})

	m["list.filter"] = builtin("list.filter", func(args []Value) (Value, error) {
		if err := wantArgs("list.filter", args, 2); err != nil {
			return nil, err
		}
		fn, err := funcArg("list.filter", args, 0)
		if err != nil {
			return nil, err
		}
		l, err := listArg("list.filter", args, 1)
		if err != nil {
			return nil, err
		}
		var vals []Value
		for _, v := range l.Vals {
			r, err := fn.Fn([]Value{v})
			if err != nil {
				return nil, err
			}
			if Truthy(r) {
				vals = append(vals, v)
			}
		}
		return ListValue{Vals: vals}, nil
	})
}

// listIndex resolves a possibly-negative index against a list of length n.
func listIndex(n, i int) (int, bool) {
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return 0, false
	}
	return i, true
}
