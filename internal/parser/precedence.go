package parser

// Binding power per operator name. Function call markers sit above every
// operator so a pending call never gets popped by precedence comparison.
const functionPrecedence = 20

var precedence = map[string]int{
	"or":  1,
	"and": 2,

	"|":   3,
	"xor": 3,
	"&":   3,

	"==": 4,
	"!=": 4,

	"<":  5,
	">":  5,
	"<=": 5,
	">=": 5,

	"+":   6,
	"-":   6,
	"neg": 6,

	"*":   7,
	"/":   7,
	"//":  7,
	"mod": 7,
	"%":   7,

	"<<": 8,
	">>": 8,

	"**":  9,
	"pow": 9,

	"not":      10,
	"floor":    10,
	"trunc":    10,
	"ceil":     10,
	"abs":      10,
	"int":      10,
	"float":    10,
	"bool":     10,
	"str":      10,
	"isinf":    10,
	"isnan":    10,
	"isfinite": 10,
	"inv":      10,
	"~":        10,
}

// rightAssociative holds the operators that do not pop the stack on equal
// precedence: exponentiation and every unary prefix form. All other
// operators are left-associative.
var rightAssociative = map[string]bool{
	"**":       true,
	"pow":      true,
	"not":      true,
	"neg":      true,
	"floor":    true,
	"trunc":    true,
	"ceil":     true,
	"abs":      true,
	"int":      true,
	"float":    true,
	"bool":     true,
	"str":      true,
	"isinf":    true,
	"isnan":    true,
	"isfinite": true,
	"inv":      true,
	"~":        true,
}
