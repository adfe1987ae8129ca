package verge

import "strconv"

// Function is an asymptotic function of the sequence variable, the canonical
// intermediate form limits are computed on. The algebra over Functions is
// closed: add, mul, and div on any two instances always yield a valid
// Function, folding into a more specific variant whenever the operands allow
// it and falling back to a generic composite otherwise. Degenerate
// denominators are not detected here; the limit evaluator classifies them.
type Function struct {
	kind   variant
	coeffs []float64 // varPoly: coefficients by ascending power of n
	base   float64   // varConstExp and varLog
	left   *Function // numerator, lhs operand, or wrapped argument
	right  *Function // denominator or rhs operand
}

type variant int8

const (
	varNone variant = iota

	varPoly     // coeffs
	varRational // left / right; either side may itself be any Function

	varAdd // left + right
	varMul // left * right
	varDiv // left / right

	varConstExp // base raised to left

	varSin  // sin(left)
	varCos  // cos(left)
	varTan  // tan(left)
	varLog  // logarithm of left in base `base`
	varLn   // natural logarithm of left
	varSqrt // square root of left
	varExp  // e raised to left
)

func (v variant) String() string {
	switch v {
	case varNone:
		return "None"
	case varPoly:
		return "Poly"
	case varRational:
		return "Rational"
	case varAdd:
		return "Add"
	case varMul:
		return "Mul"
	case varDiv:
		return "Div"
	case varConstExp:
		return "ConstExp"
	case varSin:
		return "Sin"
	case varCos:
		return "Cos"
	case varTan:
		return "Tan"
	case varLog:
		return "Log"
	case varLn:
		return "Ln"
	case varSqrt:
		return "Sqrt"
	case varExp:
		return "Exp"
	default:
		return "variant(" + strconv.Itoa(int(v)) + ")"
	}
}

// poly creates a polynomial from coefficients in ascending power order.
// Trailing zero coefficients are trimmed so that the constant zero polynomial
// is uniquely the one-element sequence [0].
func poly(coeffs ...float64) *Function {
	i := len(coeffs)
	for i > 1 && coeffs[i-1] == 0 {
		i--
	}
	return &Function{kind: varPoly, coeffs: coeffs[:i]}
}

// rational creates a numerator/denominator pair. Either side may be any
// Function, including another rational pending further combination.
func rational(num, den *Function) *Function {
	return &Function{kind: varRational, left: num, right: den}
}

// constExp creates base raised to a varying exponent.
func constExp(base float64, exp *Function) *Function {
	return &Function{kind: varConstExp, base: base, left: exp}
}

// wrap applies a transcendental variant to an argument.
func wrap(kind variant, arg *Function) *Function {
	return &Function{kind: kind, left: arg}
}

// logOf creates the logarithm of arg in the given base.
func logOf(base float64, arg *Function) *Function {
	return &Function{kind: varLog, base: base, left: arg}
}

// degree returns the degree of a polynomial. The zero polynomial has degree
// zero like any other constant.
func (f *Function) degree() int {
	return len(f.coeffs) - 1
}

// leading returns the highest-order coefficient of a polynomial.
func (f *Function) leading() float64 {
	return f.coeffs[len(f.coeffs)-1]
}

// isZero reports whether f is the constant zero polynomial.
func (f *Function) isZero() bool {
	return f.kind == varPoly && len(f.coeffs) == 1 && f.coeffs[0] == 0
}

// fraction views f as a numerator/denominator pair.
func (f *Function) fraction() (num, den *Function) {
	if f.kind == varRational {
		return f.left, f.right
	}
	return f, poly(1)
}

// constant reports the fixed real value f denotes for every n, if any: a
// degree zero polynomial, or a rational function whose limit is a finite
// constant. A rational whose limit cannot be classified, including one whose
// limit errors (a tan inside the base of a power), is simply not constant;
// the caller's own failure mode applies to the enclosing expression.
func (f *Function) constant() (float64, bool) {
	switch f.kind {
	case varPoly:
		if f.degree() == 0 {
			return f.coeffs[0], true
		}
	case varRational:
		r, err := f.Limit()
		if err == nil && r.Outcome == OutcomeConverges {
			return r.Limit, true
		}
	}
	return 0, false
}

// add returns f + g.
func (f *Function) add(g *Function) *Function {
	switch {
	case f.kind == varPoly && g.kind == varPoly:
		a, b := f.coeffs, g.coeffs
		if len(a) < len(b) {
			a, b = b, a
		}
		sum := make([]float64, len(a))
		copy(sum, a)
		for i, c := range b {
			sum[i] += c
		}
		return poly(sum...)
	case f.kind == varRational || g.kind == varRational:
		// Common-denominator addition.
		fn, fd := f.fraction()
		gn, gd := g.fraction()
		return rational(fn.mul(gd).add(gn.mul(fd)), fd.mul(gd))
	default:
		return &Function{kind: varAdd, left: f, right: g}
	}
}

// mul returns f * g.
func (f *Function) mul(g *Function) *Function {
	switch {
	case f.kind == varPoly && g.kind == varPoly:
		// Coefficient convolution.
		prod := make([]float64, len(f.coeffs)+len(g.coeffs)-1)
		for i, a := range f.coeffs {
			for j, b := range g.coeffs {
				prod[i+j] += a * b
			}
		}
		return poly(prod...)
	case f.kind == varConstExp && g.kind == varConstExp && f.base == g.base:
		// b^x * b^y = b^(x+y).
		return constExp(f.base, f.left.add(g.left))
	case f.kind == varRational || g.kind == varRational:
		fn, fd := f.fraction()
		gn, gd := g.fraction()
		return rational(fn.mul(gn), fd.mul(gd))
	default:
		return &Function{kind: varMul, left: f, right: g}
	}
}

// div returns f / g. Division is total: a degenerate denominator still yields
// a Function, and the limit evaluator classifies it.
func (f *Function) div(g *Function) *Function {
	switch {
	case f.kind == varConstExp && g.kind == varConstExp:
		if f.base == g.base {
			// b^x / b^y = b^(x-y).
			return constExp(f.base, f.left.add(g.left.mul(poly(-1))))
		}
		if g.base != 0 && sameExponentLimit(f.left, g.left) {
			// The exponents share the same limit behavior, so the ratio is
			// (b1/b2) raised to that common exponent.
			return constExp(f.base/g.base, f.left)
		}
		return &Function{kind: varDiv, left: f, right: g}
	case f.kind == varPoly && g.kind == varPoly:
		return rational(f, g)
	case f.kind == varRational || g.kind == varRational:
		// Invert and multiply.
		fn, fd := f.fraction()
		gn, gd := g.fraction()
		return rational(fn.mul(gd), fd.mul(gn))
	default:
		return &Function{kind: varDiv, left: f, right: g}
	}
}

// sameExponentLimit reports whether two exponents provably approach the same
// limit: both converge to the same finite value, or both diverge to the same
// signed infinity. Exponents whose limit cannot be classified never compare
// equal.
func sameExponentLimit(a, b *Function) bool {
	ra, err := a.Limit()
	if err != nil {
		return false
	}
	rb, err := b.Limit()
	if err != nil {
		return false
	}
	switch {
	case ra.Outcome == OutcomeConverges && rb.Outcome == OutcomeConverges:
		return ra.Limit == rb.Limit
	case ra.Outcome == OutcomeDiverges && rb.Outcome == OutcomeDiverges:
		return ra.To == rb.To
	default:
		return false
	}
}
