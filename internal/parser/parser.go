package parser

import "github.com/termynus/termynus/internal/token"

// Parse scans, converts and builds expression text into a single AST root.
// Malformed input fails with a LexError, SyntaxError or DateFormatError;
// no partial AST is ever returned.
func Parse(text string) (Node, error) {
	tokens := token.Scan(text)
	if err := checkParenBalance(tokens); err != nil {
		return nil, err
	}
	rpn, err := shuntingYard(tokens)
	if err != nil {
		return nil, err
	}
	return buildTree(rpn)
}

// checkParenBalance pre-checks parenthesis pairing so unbalanced input fails
// with a pointed message before conversion starts. Brackets are left to the
// converter, which reports them when it unwinds its stack.
func checkParenBalance(tokens []string) error {
	balance := 0
	for _, tok := range tokens {
		switch tok {
		case "(":
			balance++
		case ")":
			balance--
		}
		if balance < 0 {
			return syntaxErrorf("unbalanced parentheses: too many closing parentheses")
		}
	}
	if balance > 0 {
		return syntaxErrorf("unbalanced parentheses: %d missing closing parenthesis", balance)
	}
	return nil
}
