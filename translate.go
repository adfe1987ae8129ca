package verge

import "math"

// Translate rewrites a parsed expression tree into its asymptotic function
// form, folding subtrees into the most specific variant the algebra allows:
// two polynomials multiplied under a tree node become one polynomial, not a
// generic composite.
func Translate(e *Expr) (*Function, error) {
	return translate(simplify(e.n))
}

func translate(n *node) (*Function, error) {
	switch n.kind {
	case nodeNum:
		return poly(n.num), nil
	case nodeName:
		return poly(0, 1), nil
	case nodeNeg:
		f, err := translate(n.left)
		if err != nil {
			return nil, err
		}
		return f.mul(poly(-1)), nil
	case nodeAdd:
		l, r, err := translate2(n)
		if err != nil {
			return nil, err
		}
		return l.add(r), nil
	case nodeSub:
		if equalTrees(n.left, n.right) {
			// E - E vanishes regardless of E's own behavior.
			return poly(0), nil
		}
		l, r, err := translate2(n)
		if err != nil {
			return nil, err
		}
		return l.add(r.mul(poly(-1))), nil
	case nodeMul:
		l, r, err := translate2(n)
		if err != nil {
			return nil, err
		}
		return l.mul(r), nil
	case nodeDiv:
		l, r, err := translate2(n)
		if err != nil {
			return nil, err
		}
		return l.div(r), nil
	case nodePow:
		return translatePow(n)
	case nodeCall:
		arg, err := translate(n.left)
		if err != nil {
			return nil, err
		}
		switch n.fn {
		case funcSin:
			return wrap(varSin, arg), nil
		case funcCos:
			return wrap(varCos, arg), nil
		case funcTan:
			return wrap(varTan, arg), nil
		case funcLog10:
			return logOf(10, arg), nil
		case funcLog2:
			return logOf(2, arg), nil
		case funcLn:
			return wrap(varLn, arg), nil
		case funcSqrt:
			return wrap(varSqrt, arg), nil
		case funcExp:
			return wrap(varExp, arg), nil
		case funcAbs:
			// abs passes its argument through unchanged. Wrong for sequences
			// trending negative; tracking sign through the algebra would fix
			// it.
			return arg, nil
		default:
			panic("verge: invalid function kind " + n.fn.String())
		}
	default:
		panic("verge: invalid node kind " + n.kind.String())
	}
}

// translate2 translates both children of a binary node.
func translate2(n *node) (l, r *Function, err error) {
	l, err = translate(n.left)
	if err != nil {
		return nil, nil, err
	}
	r, err = translate(n.right)
	if err != nil {
		return nil, nil, err
	}
	return l, r, nil
}

// maxLiteralExponent bounds the literal integer exponents that expand to
// repeated products. Beyond it the expansion is unusably large, and past
// 2^53 the float64 literal cannot even hold the exact integer, so the
// conversion to int would be garbage.
const maxLiteralExponent = 1 << 16

// translatePow translates base^exponent. A constant base yields a
// ConstantBaseExp; a literal integer exponent over a varying base expands to
// a repeated product; anything else is out of the algebra's reach.
func translatePow(n *node) (*Function, error) {
	base, err := translate(n.left)
	if err != nil {
		return nil, err
	}
	if b, ok := base.constant(); ok {
		exp, err := translate(n.right)
		if err != nil {
			return nil, err
		}
		return constExp(b, exp), nil
	}
	if n.right.kind == nodeNum && n.right.num == math.Trunc(n.right.num) {
		if math.Abs(n.right.num) > maxLiteralExponent {
			return nil, &UnsupportedExpressionError{Expr: n.String()}
		}
		k := int(n.right.num)
		neg := k < 0
		if neg {
			k = -k
		}
		pow := poly(1)
		for i := 0; i < k; i++ {
			pow = pow.mul(base)
		}
		if neg {
			return poly(1).div(pow), nil
		}
		return pow, nil
	}
	return nil, &UnsupportedExpressionError{Expr: n.String()}
}

// UnsupportedExpressionError indicates a power expression with a non-literal
// exponent over a non-constant base, which the asymptotic algebra cannot
// represent.
type UnsupportedExpressionError struct {
	// Expr is a rendering of the offending subexpression.
	Expr string
}

func (err *UnsupportedExpressionError) Error() string {
	return "unsupported expression: non-literal exponent over non-constant base in " + err.Expr
}
