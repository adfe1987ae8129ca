package verge

import "strconv"

// UnexpectedTokenError is an error indicating a token that cannot continue
// the expression at the position it appears, e.g. a binary operator with no
// left operand or a number directly following another number. It implements
// InputError.
type UnexpectedTokenError struct {
	// Col is the position of the token.
	Col int
	// Token is the token text.
	Token string
}

func (err *UnexpectedTokenError) Error() string {
	return errpos(err.Col, "unexpected token "+strconv.Quote(err.Token))
}

func (err *UnexpectedTokenError) Pos() int {
	return err.Col
}

// BracketError is an error indicating an unmatched parenthesis in the input.
// It implements InputError.
type BracketError struct {
	// Col is the position at which the mismatch was discovered.
	Col int
	// Left is "(" when an open parenthesis was never closed, and the empty
	// string when a close parenthesis had no opening match.
	Left string
	// Right is the token found where a close parenthesis was required, or
	// the empty string at end of input.
	Right string
}

func (err *BracketError) Error() string {
	if err.Left == "" {
		return errpos(err.Col, "close parenthesis with no open parenthesis")
	}
	return errpos(err.Col, "open parenthesis with no close parenthesis")
}

func (err *BracketError) Pos() int {
	return err.Col
}

// EmptyExpressionError is an error indicating an empty subexpression.
type EmptyExpressionError struct {
	// Col is the position of the token that ended the subexpression.
	Col int
	// End is the token that ended the subexpression.
	End string
}

func (err *EmptyExpressionError) Error() string {
	if err.End == "" {
		if err.Col <= 1 {
			return errpos(err.Col, "no expression")
		}
		return errpos(err.Col, "no expression at end")
	}
	return errpos(err.Col, "no expression up to "+strconv.Quote(err.End))
}

func (err *EmptyExpressionError) Pos() int {
	return err.Col
}

// NumberRangeError is an error indicating a well-formed numeric literal whose
// value does not fit in a float64, in either direction. It implements
// InputError.
type NumberRangeError struct {
	// Col is the position of the literal.
	Col int
	// Text is the literal as written.
	Text string
}

func (err *NumberRangeError) Error() string {
	return errpos(err.Col, "number "+strconv.Quote(err.Text)+" out of range")
}

func (err *NumberRangeError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*UnexpectedTokenError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
	_ InputError = (*NumberRangeError)(nil)
	_ InputError = (*UnknownFunctionError)(nil)
	_ InputError = (*LexError)(nil)
)
