package parser

import (
	"strconv"
	"time"

	"github.com/termynus/termynus/internal/token"
)

type entryKind int

const (
	entryNum entryKind = iota
	entryStr
	entryDate
	entryIdent
	entryBinOp
	entryUnaryOp
	entryCall
	entryList
	entryOpenParen
	entryOpenBracket
)

// rpnEntry is a typed postfix entry. The same representation doubles as an
// operator-stack entry during conversion; only operators, pending call
// markers and the raw open brackets ever live on that stack.
type rpnEntry struct {
	kind  entryKind
	name  string // operator or call name
	num   float64
	str   string // string literal content or identifier name
	date  time.Time
	count int // call argument or list element count
}

// countFrame tracks how many separators were seen inside an open call or
// list, plus the output length when the frame opened so a single unseparated
// argument can be told apart from an empty one.
type countFrame struct {
	n    int
	mark int
}

func stackPrecedence(e rpnEntry) int {
	if e.kind == entryCall {
		return functionPrecedence
	}
	return precedence[e.name]
}

// shuntingYard converts the token stream to postfix order, resolving
// identifier-vs-call and unary-vs-binary ambiguity along the way.
func shuntingYard(tokens []string) ([]rpnEntry, error) {
	var (
		output     []rpnEntry
		stack      []rpnEntry
		argFrames  []countFrame
		elemFrames []countFrame
	)

	for _, tok := range tokens {
		switch {
		case token.IsNumber(tok):
			v, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return nil, syntaxErrorf("invalid number %q", tok)
			}
			output = append(output, rpnEntry{kind: entryNum, num: v})

		case token.IsDateLiteral(tok):
			content := token.Unescape(tok[2 : len(tok)-1])
			if !token.IsISODate(content) {
				return nil, &DateFormatError{Literal: content}
			}
			t, err := token.ParseISODate(content)
			if err != nil {
				return nil, &DateFormatError{Literal: content, Err: err}
			}
			output = append(output, rpnEntry{kind: entryDate, date: t})

		case token.IsStringLiteral(tok):
			output = append(output, rpnEntry{kind: entryStr, str: token.Unescape(tok[1 : len(tok)-1])})

		case token.IsIdentifier(tok) && !token.IsOperator(tok) && !token.IsFunction(tok):
			output = append(output, rpnEntry{kind: entryIdent, str: tok})

		case token.IsFunction(tok):
			stack = append(stack, rpnEntry{kind: entryCall, name: tok})

		case tok == ",":
			for len(stack) > 0 && stack[len(stack)-1].kind != entryOpenParen && stack[len(stack)-1].kind != entryOpenBracket {
				output = append(output, stack[len(stack)-1])
				stack = stack[:len(stack)-1]
			}
			if len(stack) == 0 {
				return nil, syntaxErrorf("misplaced argument separator or mismatched parentheses")
			}
			if stack[len(stack)-1].kind == entryOpenParen {
				frame := &argFrames[len(argFrames)-1]
				if frame.n == 0 {
					frame.n++ // the first, as-yet-uncounted argument
				}
				frame.n++
			} else {
				frame := &elemFrames[len(elemFrames)-1]
				if frame.n == 0 {
					frame.n++
				}
				frame.n++
			}

		case tok == "(":
			// An identifier directly before "(" is a call, not a
			// parenthesized name.
			pendingCall := len(stack) > 0 && stack[len(stack)-1].kind == entryCall
			if !pendingCall && len(output) > 0 && output[len(output)-1].kind == entryIdent {
				ident := output[len(output)-1]
				output = output[:len(output)-1]
				stack = append(stack, rpnEntry{kind: entryCall, name: ident.str})
			}
			argFrames = append(argFrames, countFrame{mark: len(output)})
			stack = append(stack, rpnEntry{kind: entryOpenParen})

		case tok == "[":
			stack = append(stack, rpnEntry{kind: entryOpenBracket})
			elemFrames = append(elemFrames, countFrame{mark: len(output)})

		case tok == ")":
			for len(stack) > 0 && stack[len(stack)-1].kind != entryOpenParen {
				output = append(output, stack[len(stack)-1])
				stack = stack[:len(stack)-1]
			}
			if len(stack) == 0 {
				return nil, syntaxErrorf("mismatched parentheses")
			}
			stack = stack[:len(stack)-1]
			if len(stack) > 0 && stack[len(stack)-1].kind == entryCall {
				call := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				frame := argFrames[len(argFrames)-1]
				argFrames = argFrames[:len(argFrames)-1]
				call.count = frame.n
				if call.count == 0 && len(output) > frame.mark {
					call.count = 1
				}
				output = append(output, call)
			}

		case tok == "]":
			for len(stack) > 0 && stack[len(stack)-1].kind != entryOpenBracket {
				output = append(output, stack[len(stack)-1])
				stack = stack[:len(stack)-1]
			}
			if len(stack) == 0 {
				return nil, syntaxErrorf("mismatched brackets")
			}
			stack = stack[:len(stack)-1]
			frame := elemFrames[len(elemFrames)-1]
			elemFrames = elemFrames[:len(elemFrames)-1]
			count := frame.n
			if count == 0 && len(output) > frame.mark {
				count = 1
			}
			output = append(output, rpnEntry{kind: entryList, count: count})

		case token.IsOperator(tok):
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				if top.kind != entryBinOp && top.kind != entryUnaryOp {
					break
				}
				p, tp := precedence[tok], stackPrecedence(top)
				if (!rightAssociative[tok] && p <= tp) || (rightAssociative[tok] && p < tp) {
					output = append(output, top)
					stack = stack[:len(stack)-1]
					continue
				}
				break
			}
			if token.IsBinaryOperator(tok) {
				stack = append(stack, rpnEntry{kind: entryBinOp, name: tok})
			} else {
				stack = append(stack, rpnEntry{kind: entryUnaryOp, name: tok})
			}

		default:
			return nil, &LexError{Token: tok}
		}
	}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		switch top.kind {
		case entryOpenParen:
			return nil, syntaxErrorf("mismatched parentheses")
		case entryOpenBracket:
			return nil, syntaxErrorf("mismatched brackets")
		}
		output = append(output, top)
	}

	return output, nil
}
