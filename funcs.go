package verge

import (
	"strconv"
	"strings"
)

// funcKind identifies a reserved function name in a call expression. Several
// surface spellings share a kind: ln and log_e are the natural logarithm,
// exp and e^ are the exponential, sqrt and sqrt2 are the square root.
type funcKind int8

const (
	funcNone funcKind = iota
	funcSin
	funcCos
	funcTan
	funcLog10 // log and log10
	funcLog2
	funcLn
	funcSqrt
	funcExp
	funcAbs
)

func (k funcKind) String() string {
	switch k {
	case funcNone:
		return "None"
	case funcSin:
		return "sin"
	case funcCos:
		return "cos"
	case funcTan:
		return "tan"
	case funcLog10:
		return "log"
	case funcLog2:
		return "log2"
	case funcLn:
		return "ln"
	case funcSqrt:
		return "sqrt"
	case funcExp:
		return "exp"
	case funcAbs:
		return "abs"
	default:
		return "funcKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// funcNames maps the reserved function names, lowercased, to their kinds.
// Only these names may appear in the call form name(arg); any other name
// there is an UnknownFunctionError.
var funcNames = map[string]funcKind{
	"sin":   funcSin,
	"cos":   funcCos,
	"tan":   funcTan,
	"log":   funcLog10,
	"log10": funcLog10,
	"log2":  funcLog2,
	"ln":    funcLn,
	"log_e": funcLn,
	"sqrt":  funcSqrt,
	"sqrt2": funcSqrt,
	"exp":   funcExp,
	"e^":    funcExp,
	"abs":   funcAbs,
}

// lookupFunc matches a name against the reserved function set,
// case-insensitively. The result is funcNone if the name is not reserved.
func lookupFunc(name string) funcKind {
	return funcNames[strings.ToLower(name)]
}

// UnknownFunctionError indicates a call form name(arg) whose name is not a
// reserved function. It implements InputError.
type UnknownFunctionError struct {
	// Col is the position of the name.
	Col int
	// Name is the name that was called.
	Name string
}

func (err *UnknownFunctionError) Error() string {
	return errpos(err.Col, "unknown function "+strconv.Quote(err.Name))
}

func (err *UnknownFunctionError) Pos() int {
	return err.Col
}
