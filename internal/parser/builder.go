package parser

// buildTree reduces a postfix entry sequence to a single-rooted AST using a
// value stack. Anything other than exactly one residual node means the
// expression was malformed.
func buildTree(rpn []rpnEntry) (Node, error) {
	var stack []Node

	pop := func() Node {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return n
	}

	for _, e := range rpn {
		switch e.kind {
		case entryNum:
			stack = append(stack, &Lit{Value: e.num})
		case entryStr:
			stack = append(stack, &StrLit{Value: e.str})
		case entryDate:
			stack = append(stack, &DateLit{Value: e.date})
		case entryIdent:
			stack = append(stack, &Ident{Name: e.str})
		case entryUnaryOp:
			if len(stack) < 1 {
				return nil, syntaxErrorf("insufficient operands for %q", e.name)
			}
			stack = append(stack, &Unary{Name: e.name, Operand: pop()})
		case entryBinOp:
			if len(stack) < 2 {
				return nil, syntaxErrorf("insufficient operands for %q", e.name)
			}
			right := pop()
			left := pop()
			stack = append(stack, &Binary{Name: e.name, Left: left, Right: right})
		case entryCall:
			if len(stack) < e.count {
				return nil, syntaxErrorf("insufficient arguments for call to %s", e.name)
			}
			args := make([]Node, e.count)
			for i := e.count - 1; i >= 0; i-- {
				args[i] = pop()
			}
			stack = append(stack, &Call{Name: e.name, Args: args})
		case entryList:
			if len(stack) < e.count {
				return nil, syntaxErrorf("insufficient elements for list literal")
			}
			elems := make([]Node, e.count)
			for i := e.count - 1; i >= 0; i-- {
				elems[i] = pop()
			}
			stack = append(stack, &List{Elems: elems})
		}
	}

	if len(stack) != 1 {
		return nil, syntaxErrorf("malformed expression: unclosed parenthesis or missing operand")
	}
	return stack[0], nil
}
