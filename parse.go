package verge

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Expr = num | name | Call | Neg | Plus | Add | Sub | Mul | Div | Pow | '(' Expr ')'
// Call = funcname '(' Expr ')' | 'e' '^' Expr
// Neg = '-' Expr
// Plus = '+' Expr
// Add = Expr '+' Expr
// Sub = Expr '-' Expr
// Mul = Expr '*' Expr
// Div = Expr '/' Expr
// Pow = Expr '^' Expr
//
// Binding tightest first: primary, unary sign, power (right-associative),
// implicit multiplication, * and /, + and -. Implicit multiplication happens
// at the junctions {num, name, ')'} {name, '('} and ')' {num, name, '('}; a
// number directly following a number or a name is malformed.

// Expr is a parsed expression that can be translated into an asymptotic
// function with Translate.
type Expr struct {
	// n is the root node of the expression.
	n *node
	// names is the list of variable names used in the expression. They all
	// denote the same sequence variable.
	names []string
}

// parsectx holds general data for parsing.
type parsectx struct {
	// names is the set of variable names that have been seen this parse.
	names map[string]bool
	// wseof is a string containing the whitespace characters that trigger an
	// EOF token from the lexer.
	wseof string
}

// Parse parses an expression so it can be translated and classified. The
// given options are applied in order.
func Parse(src io.RuneScanner, opts ...ParseOption) (*Expr, error) {
	scan := lex(src)
	p := parsectx{
		names: make(map[string]bool),
	}
	for _, opt := range opts {
		p = opt.parseOption(p)
	}
	n, _, err := parseterm(scan, &p, exprprec)
	if err != nil {
		return nil, err
	}
	tok := scan.must()
	if n == nil {
		// parseterm yields no node only for a close parenthesis with nothing
		// before it.
		return nil, &BracketError{Col: tok.pos, Right: tok.text}
	}
	switch tok.kind {
	case tokenEOF:
	case tokenClose:
		return nil, &BracketError{Col: tok.pos, Right: tok.text}
	default:
		panic("verge: parse ended on " + tok.String())
	}
	ex := Expr{
		n:     n,
		names: make([]string, 0, len(p.names)),
	}
	for k := range p.names {
		ex.names = append(ex.names, k)
	}
	sortstrs(ex.names)
	return &ex, nil
}

// ParseString is a shortcut to parse an expression from a string.
func ParseString(src string, opts ...ParseOption) (*Expr, error) {
	return Parse(strings.NewReader(src), opts...)
}

// sortstrs sorts a string slice without using package sort because that has
// reflection and allocation problems.
func sortstrs(names []string) {
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j] < names[j-1]; j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
}

// parseterm parses a single term. If there is no error, then parseterm pushes
// the last token it scans, including EOF. If the input is an empty
// subexpression, the result is nil with no error; callers must create an
// error in contexts where empty subexpressions are illegal. The second result
// reports whether the parsed text ended with a close parenthesis, which is
// what decides whether a following number is an implicit multiplication.
func parseterm(scan *lexer, p *parsectx, until operator) (*node, bool, error) {
	n, paren, err := parselhs(scan, p, until)
	if err != nil {
		return nil, false, err
	}
	if n == nil {
		return nil, false, nil
	}
	for {
		tok, err := scan.next(p.wseof)
		if err != nil {
			return nil, false, err
		}
		switch tok.kind {
		case tokenNum:
			// (x)2 -> (x) * (2), but a number directly following a number or
			// an identifier is malformed: there is no junction "2 3".
			if !paren {
				return nil, false, &UnexpectedTokenError{Col: tok.pos, Token: tok.text}
			}
			scan.push(tok)
			prec := termprec
			if !prec.moreBinding(until) {
				return n, paren, nil
			}
			rhs, rp, err := parseterm(scan, p, prec)
			if err != nil {
				return nil, false, err
			}
			n = &node{kind: nodeMul, left: n, right: rhs}
			paren = rp
		case tokenIdent:
			// (parsed) x -> (parsed) * (x)
			scan.push(tok)
			prec := termprec
			if !prec.moreBinding(until) {
				return n, paren, nil
			}
			rhs, rp, err := parseterm(scan, p, prec)
			if err != nil {
				return nil, false, err
			}
			n = &node{kind: nodeMul, left: n, right: rhs}
			paren = rp
		case tokenOp:
			// Binary operator.
			prec := binop(tok.text)
			if !prec.moreBinding(until) {
				scan.push(tok)
				return n, paren, nil
			}
			rhs, rp, err := parseterm(scan, p, prec)
			if err != nil {
				return nil, false, err
			}
			if rhs == nil {
				end := scan.must()
				scan.push(end)
				return nil, false, &EmptyExpressionError{Col: end.pos, End: end.text}
			}
			n = &node{kind: prec.op, left: n, right: rhs}
			paren = rp
		case tokenOpen:
			// 2 (expr) -> (2) * (expr).
			prec := termprec
			if !prec.moreBinding(until) {
				scan.push(tok)
				return n, paren, nil
			}
			rhs, _, err := parseterm(scan, p, exprprec)
			if err != nil {
				return nil, false, err
			}
			end := scan.must()
			if end.kind != tokenClose {
				return nil, false, &BracketError{Col: end.pos, Left: tok.text}
			}
			if rhs == nil {
				return nil, false, &EmptyExpressionError{Col: end.pos, End: end.text}
			}
			n = &node{kind: nodeMul, left: n, right: rhs}
			paren = true
		case tokenClose, tokenEOF:
			// End of expression.
			scan.push(tok)
			return n, paren, nil
		default:
			panic("verge: unknown token: " + tok.String())
		}
	}
}

// parselhs parses the first component of a term. I.e., operators are unary,
// any encountered token must be valid as the start of a subexpression, and
// whitespace normally lexed as EOF is ignored.
func parselhs(scan *lexer, p *parsectx, until operator) (*node, bool, error) {
	// Don't use EOF whitespace for LHS.
	tok, err := scan.next("")
	if err != nil {
		return nil, false, err
	}
	switch tok.kind {
	case tokenNum:
		v, err := strconv.ParseFloat(tok.text, 64)
		if err != nil {
			if errors.Is(err, strconv.ErrRange) {
				// A well-formed literal too large or too small for float64.
				return nil, false, &NumberRangeError{Col: tok.pos, Text: tok.text}
			}
			// The lexer only emits digit runs with at most one decimal
			// point, all of which ParseFloat accepts up to range.
			panic("verge: invalid number " + strconv.Quote(tok.text) + ": " + err.Error())
		}
		return &node{kind: nodeNum, num: v}, false, nil
	case tokenIdent:
		return parsename(scan, p, tok)
	case tokenOp:
		// Unary sign.
		if tok.text != "+" && tok.text != "-" {
			return nil, false, &UnexpectedTokenError{Col: tok.pos, Token: tok.text}
		}
		rhs, rp, err := parseterm(scan, p, signprec)
		if err != nil {
			return nil, false, err
		}
		if rhs == nil {
			end := scan.must()
			scan.push(end)
			return nil, false, &EmptyExpressionError{Col: end.pos, End: end.text}
		}
		if tok.text == "+" {
			return rhs, rp, nil
		}
		if rhs.kind == nodeNum {
			// A sign on an immediate literal folds into a signed literal.
			return &node{kind: nodeNum, num: -rhs.num}, rp, nil
		}
		return &node{kind: nodeNeg, left: rhs}, rp, nil
	case tokenOpen:
		rhs, _, err := parseterm(scan, p, exprprec)
		if err != nil {
			return nil, false, err
		}
		end := scan.must()
		if end.kind != tokenClose {
			return nil, false, &BracketError{Col: end.pos, Left: tok.text}
		}
		if rhs == nil {
			return nil, false, &EmptyExpressionError{Col: end.pos, End: end.text}
		}
		return rhs, true, nil
	case tokenClose:
		// This may be the end of an enclosing subexpression; let the caller
		// decide what to do.
		scan.push(tok)
		return nil, false, nil
	case tokenEOF:
		return nil, false, &EmptyExpressionError{Col: tok.pos, End: ""}
	default:
		panic("verge: unknown token: " + tok.String())
	}
}

// parsename parses a term beginning with an identifier: a reserved function
// call name(arg), the e^ exponential form, or the sequence variable.
func parsename(scan *lexer, p *parsectx, tok lexToken) (*node, bool, error) {
	nxt, err := scan.next("")
	if err != nil {
		return nil, false, err
	}
	adjacent := nxt.pos == tok.pos+utf8.RuneCountInString(tok.text)
	switch {
	case nxt.kind == tokenOpen && adjacent:
		// The call form name(arg). Never an implicit multiplication: an
		// unreserved name here is an error rather than a product.
		fn := lookupFunc(tok.text)
		if fn == funcNone {
			return nil, false, &UnknownFunctionError{Col: tok.pos, Name: tok.text}
		}
		arg, _, err := parseterm(scan, p, exprprec)
		if err != nil {
			return nil, false, err
		}
		end := scan.must()
		if end.kind != tokenClose {
			return nil, false, &BracketError{Col: end.pos, Left: nxt.text}
		}
		if arg == nil {
			return nil, false, &EmptyExpressionError{Col: end.pos, End: end.text}
		}
		return &node{kind: nodeCall, name: tok.text, fn: fn, left: arg}, true, nil
	case nxt.kind == tokenOp && nxt.text == "^" && adjacent && strings.EqualFold(tok.text, "e"):
		// e^x is the reserved exponential form, equivalent to exp(x).
		arg, rp, err := parseterm(scan, p, powprec)
		if err != nil {
			return nil, false, err
		}
		if arg == nil {
			end := scan.must()
			scan.push(end)
			return nil, false, &EmptyExpressionError{Col: end.pos, End: end.text}
		}
		return &node{kind: nodeCall, name: "e^", fn: funcExp, left: arg}, rp, nil
	default:
		scan.push(nxt)
		p.names[tok.text] = true
		return &node{kind: nodeName, name: tok.text}, false, nil
	}
}

// Vars returns the variable names used in the expression.
func (e *Expr) Vars() []string {
	return append(([]string)(nil), e.names...)
}

// String creates a fully parenthesized string representation of the parsed
// expression. The representation parses to an equal expression.
func (e *Expr) String() string {
	var b strings.Builder
	e.n.fmt(&b)
	return b.String()
}

type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
	// op is the node kind to use when this operator is selected.
	op nodeKind
}

func (p operator) moreBinding(than operator) bool {
	if p.prec != than.prec {
		return p.prec > than.prec
	}
	return p.right
}

// binop gets a binary operator for a token string. The lexer only emits the
// five operator runes, all of which are binary.
func binop(text string) operator {
	switch text {
	case "+":
		return operator{1, false, nodeAdd}
	case "-":
		return operator{1, false, nodeSub}
	case "*":
		return operator{5, false, nodeMul}
	case "/":
		return operator{5, false, nodeDiv}
	case "^":
		return operator{15, true, nodePow}
	default:
		panic("verge: no binary operator " + strconv.Quote(text))
	}
}

var (
	// termprec is the precedence of implicit multiplication. It binds more
	// tightly than * and / and less tightly than exponentiation, so "1/2n"
	// is 1/(2n) and "2n^3" is 2(n^3).
	termprec = operator{7, true, nodeMul}
	// powprec is the precedence of exponentiation.
	powprec = operator{15, true, nodePow}
	// signprec is the precedence of a unary sign, binding more tightly than
	// exponentiation: -n^2 is (-n)^2.
	signprec = operator{20, true, nodeNeg}
	// exprprec is the precedence required to parse an entire subexpression.
	exprprec = operator{-128, true, nodeNone}
)
