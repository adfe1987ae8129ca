package verge

import (
	"io"
	"math"
	"strconv"
	"strings"
)

// Outcome is the three-state classification of a sequence's limit behavior.
// Bounded oscillation and genuinely unresolved cases share the indeterminate
// state: there is no limit and no determinate signed trend.
type Outcome int8

const (
	// OutcomeIndeterminate means the sequence has no limit and no
	// determinate signed trend.
	OutcomeIndeterminate Outcome = iota
	// OutcomeConverges means the sequence has a finite limit.
	OutcomeConverges
	// OutcomeDiverges means the sequence approaches a signed infinity.
	OutcomeDiverges
)

func (o Outcome) String() string {
	switch o {
	case OutcomeIndeterminate:
		return "Indeterminate"
	case OutcomeConverges:
		return "Converges"
	case OutcomeDiverges:
		return "Diverges"
	default:
		return "Outcome(" + strconv.Itoa(int(o)) + ")"
	}
}

// Growth classifies the rate of a branch for comparing divergent operands.
// Higher values dominate lower ones: exponential beats polynomial beats
// logarithmic. On a convergent result it records the rate class the value
// settled at, which is how an exponentially vanishing factor can still win
// against polynomial growth.
type Growth int8

const (
	// GrowthNone is the growth of an indeterminate result.
	GrowthNone Growth = iota
	GrowthLogarithmic
	GrowthPolynomial
	GrowthExponential
)

func (g Growth) String() string {
	switch g {
	case GrowthNone:
		return "none"
	case GrowthLogarithmic:
		return "logarithmic"
	case GrowthPolynomial:
		return "polynomial"
	case GrowthExponential:
		return "exponential"
	default:
		return "Growth(" + strconv.Itoa(int(g)) + ")"
	}
}

func maxGrowth(a, b Growth) Growth {
	if a > b {
		return a
	}
	return b
}

// Result is the outcome of classifying a sequence's limit.
type Result struct {
	// Outcome is the three-state classification.
	Outcome Outcome
	// Limit is the finite limit when Outcome is OutcomeConverges.
	Limit float64
	// To is the signed infinity approached when Outcome is OutcomeDiverges.
	To float64
	// Growth is the rate class of the branch, or GrowthNone when the result
	// is indeterminate.
	Growth Growth
}

// Converges reports whether the sequence has a finite limit.
func (r Result) Converges() bool {
	return r.Outcome == OutcomeConverges
}

func (r Result) String() string {
	switch r.Outcome {
	case OutcomeConverges:
		return "converges to " + strconv.FormatFloat(r.Limit, 'g', -1, 64)
	case OutcomeDiverges:
		if r.To > 0 {
			return "diverges to +inf (" + r.Growth.String() + ")"
		}
		return "diverges to -inf (" + r.Growth.String() + ")"
	default:
		return "indeterminate"
	}
}

func convergesTo(l float64, g Growth) Result {
	return Result{Outcome: OutcomeConverges, Limit: l, Growth: g}
}

func divergesTo(to float64, g Growth) Result {
	return Result{Outcome: OutcomeDiverges, To: to, Growth: g}
}

func indeterminate() Result {
	return Result{}
}

// Limit classifies the behavior of f as the sequence variable grows without
// bound. The only error it can produce is UnsupportedOperationError, for
// functions whose limit the asymptotic model leaves undefined.
func (f *Function) Limit() (Result, error) {
	return converge(f)
}

// Limit is a shortcut to parse an expression, translate it, and classify its
// limit.
func Limit(src io.RuneScanner, opts ...ParseOption) (Result, error) {
	a, err := Parse(src, opts...)
	if err != nil {
		return Result{}, err
	}
	f, err := Translate(a)
	if err != nil {
		return Result{}, err
	}
	return f.Limit()
}

// LimitString is a shortcut to parse and classify a string expression.
func LimitString(src string, opts ...ParseOption) (Result, error) {
	return Limit(strings.NewReader(src), opts...)
}

// converge is a structural recursion over the Function variants. Each
// composite combines the classifications of its operands by an explicit case
// table; there is no iteration, so the recursion depth is bounded by the
// depth of the input expression.
func converge(f *Function) (Result, error) {
	switch f.kind {
	case varPoly:
		return convergePoly(f), nil
	case varRational:
		return convergeRational(f)
	case varConstExp:
		e, err := converge(f.left)
		if err != nil {
			return Result{}, err
		}
		return convergeConstExp(f.base, e), nil
	case varSin, varCos, varTan, varLog, varLn, varSqrt, varExp:
		return convergeWrapper(f)
	case varAdd:
		l, r, err := converge2(f)
		if err != nil {
			return Result{}, err
		}
		return combineAdd(l, r), nil
	case varMul:
		l, r, err := converge2(f)
		if err != nil {
			return Result{}, err
		}
		return combineMul(l, r), nil
	case varDiv:
		if r, ok := logRatio(f.left, f.right); ok {
			return r, nil
		}
		l, r, err := converge2(f)
		if err != nil {
			return Result{}, err
		}
		return combineDiv(l, r), nil
	default:
		panic("verge: invalid function variant " + f.kind.String())
	}
}

// converge2 classifies both operands of a composite.
func converge2(f *Function) (l, r Result, err error) {
	l, err = converge(f.left)
	if err != nil {
		return Result{}, Result{}, err
	}
	r, err = converge(f.right)
	if err != nil {
		return Result{}, Result{}, err
	}
	return l, r, nil
}

func convergePoly(f *Function) Result {
	if f.degree() == 0 {
		return convergesTo(f.coeffs[0], GrowthPolynomial)
	}
	if f.leading() < 0 {
		return divergesTo(math.Inf(-1), GrowthPolynomial)
	}
	return divergesTo(math.Inf(1), GrowthPolynomial)
}

func convergeRational(f *Function) (Result, error) {
	num, den := f.left, f.right
	if num.kind == varPoly && den.kind == varPoly {
		if den.isZero() {
			// The denominator is identically zero. Classify rather than
			// letting the raw division produce an infinity or NaN.
			return indeterminate(), nil
		}
		switch {
		case num.degree() < den.degree():
			return convergesTo(0, GrowthPolynomial), nil
		case num.degree() == den.degree():
			return convergesTo(num.leading()/den.leading(), GrowthPolynomial), nil
		default:
			q := num.leading() / den.leading()
			if q < 0 {
				return divergesTo(math.Inf(-1), GrowthPolynomial), nil
			}
			return divergesTo(math.Inf(1), GrowthPolynomial), nil
		}
	}
	// A nested rational numerator or denominator: classify each side on its
	// own, then combine like any other quotient.
	if r, ok := logRatio(num, den); ok {
		return r, nil
	}
	l, r, err := converge2(f)
	if err != nil {
		return Result{}, err
	}
	return combineDiv(l, r), nil
}

// convergeConstExp classifies base^exponent given the exponent's
// classification.
func convergeConstExp(b float64, e Result) Result {
	switch e.Outcome {
	case OutcomeConverges:
		v := math.Pow(b, e.Limit)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			// A negative base under a fractional constant exponent, or a
			// zero base under a negative one.
			return indeterminate()
		}
		return convergesTo(v, GrowthExponential)
	case OutcomeDiverges:
		if e.To > 0 {
			switch {
			case b == 1:
				return convergesTo(1, GrowthExponential)
			case b == -1:
				// Bounded oscillation between -1 and 1.
				return indeterminate()
			case b > 1:
				return divergesTo(math.Inf(1), GrowthExponential)
			case b < -1:
				// Unbounded oscillation.
				return indeterminate()
			default: // |b| < 1
				return convergesTo(0, GrowthExponential)
			}
		}
		// The exponent falls to -inf, so b^x = 1/b^|x|.
		switch {
		case b == 1:
			return convergesTo(1, GrowthExponential)
		case b == -1:
			return indeterminate()
		case b > 1 || b < -1:
			return convergesTo(0, GrowthExponential)
		case b >= 0: // 0 <= b < 1
			return divergesTo(math.Inf(1), GrowthExponential)
		default: // -1 < b < 0: alternating with unbounded magnitude
			return indeterminate()
		}
	default:
		return indeterminate()
	}
}

// convergeWrapper classifies a transcendental function of a varying argument
// by composition: classify the argument, then apply the known limit of the
// wrapper at that argument behavior.
func convergeWrapper(f *Function) (Result, error) {
	if f.kind == varTan {
		// tan has singularities in every period, so no limit along the
		// integers is defined in this model. A hard failure, not a silent
		// indeterminate.
		return Result{}, &UnsupportedOperationError{Op: "tan"}
	}
	a, err := converge(f.left)
	if err != nil {
		return Result{}, err
	}
	switch a.Outcome {
	case OutcomeIndeterminate:
		return indeterminate(), nil
	case OutcomeConverges:
		return wrapperAt(f, a.Limit), nil
	}
	up := a.To > 0
	switch f.kind {
	case varExp:
		if up {
			return divergesTo(math.Inf(1), GrowthExponential), nil
		}
		return convergesTo(0, GrowthExponential), nil
	case varLn, varLog:
		if up {
			return divergesTo(math.Inf(1), GrowthLogarithmic), nil
		}
		return indeterminate(), nil
	case varSqrt:
		if up {
			return divergesTo(math.Inf(1), GrowthPolynomial), nil
		}
		return indeterminate(), nil
	default:
		// sin and cos oscillate forever at any infinity.
		return indeterminate(), nil
	}
}

// wrapperAt applies the wrapped real function to a finite argument limit.
func wrapperAt(f *Function, x float64) Result {
	var v float64
	var g Growth
	switch f.kind {
	case varExp:
		v, g = math.Exp(x), GrowthExponential
	case varLn:
		v, g = math.Log(x), GrowthLogarithmic
	case varLog:
		v, g = math.Log(x)/math.Log(f.base), GrowthLogarithmic
	case varSin:
		v, g = math.Sin(x), GrowthPolynomial
	case varCos:
		v, g = math.Cos(x), GrowthPolynomial
	case varSqrt:
		if x < 0 {
			return indeterminate()
		}
		v, g = math.Sqrt(x), GrowthPolynomial
	default:
		panic("verge: invalid wrapper variant " + f.kind.String())
	}
	if math.IsNaN(v) {
		// Logarithm of a negative limit.
		return indeterminate()
	}
	if math.IsInf(v, 0) {
		// Logarithm of zero.
		return divergesTo(v, g)
	}
	return convergesTo(v, g)
}

// logRatio resolves a quotient of two logarithms of polynomially growing
// arguments, which the generic growth comparison alone cannot:
// ln(p(n))/ln(q(n)) tends to deg p/deg q, scaled by the bases. Without this
// rule, ln(n+1)/ln(n) would be an equal-growth indeterminate.
func logRatio(f, g *Function) (Result, bool) {
	fb, ok := logBase(f)
	if !ok {
		return Result{}, false
	}
	gb, ok := logBase(g)
	if !ok {
		return Result{}, false
	}
	fp, gp := f.left, g.left
	if fp.kind != varPoly || gp.kind != varPoly {
		return Result{}, false
	}
	if fp.degree() == 0 || gp.degree() == 0 || fp.leading() <= 0 || gp.leading() <= 0 {
		return Result{}, false
	}
	v := float64(fp.degree()) * math.Log(gb) / (float64(gp.degree()) * math.Log(fb))
	return convergesTo(v, GrowthLogarithmic), true
}

// logBase returns the logarithm base of a Ln or Log variant.
func logBase(f *Function) (float64, bool) {
	switch f.kind {
	case varLn:
		return math.E, true
	case varLog:
		return f.base, true
	default:
		return 0, false
	}
}

// combineAdd is the case table for a sum of two classified operands.
func combineAdd(l, r Result) Result {
	switch {
	case l.Converges() && r.Converges():
		return convergesTo(l.Limit+r.Limit, maxGrowth(l.Growth, r.Growth))
	case l.Converges():
		// A finite summand never changes divergence or indeterminacy.
		return r
	case r.Converges():
		return l
	case l.Outcome == OutcomeDiverges && r.Outcome == OutcomeDiverges:
		if l.Growth != r.Growth {
			if l.Growth > r.Growth {
				return l
			}
			return r
		}
		if (l.To > 0) == (r.To > 0) {
			return l
		}
		// Equal growth with opposite signs cancels beyond this model's
		// resolution.
		return indeterminate()
	default:
		return indeterminate()
	}
}

// combineMul is the case table for a product of two classified operands.
func combineMul(l, r Result) Result {
	switch {
	case l.Converges() && r.Converges():
		return convergesTo(l.Limit*r.Limit, maxGrowth(l.Growth, r.Growth))
	case l.Converges():
		return mulConvergent(l, r)
	case r.Converges():
		return mulConvergent(r, l)
	case l.Outcome == OutcomeDiverges && r.Outcome == OutcomeDiverges:
		to := math.Inf(1)
		if (l.To > 0) != (r.To > 0) {
			to = math.Inf(-1)
		}
		return divergesTo(to, maxGrowth(l.Growth, r.Growth))
	default:
		return indeterminate()
	}
}

// mulConvergent combines a convergent factor with a non-convergent one.
func mulConvergent(c, other Result) Result {
	if other.Outcome == OutcomeIndeterminate {
		if c.Limit == 0 {
			// A vanishing factor against bounded oscillation.
			return convergesTo(0, c.Growth)
		}
		return indeterminate()
	}
	// other diverges to a signed infinity.
	if c.Limit == 0 {
		if c.Growth > other.Growth {
			// The factor vanishes faster than the other grows, e.g. a
			// polynomial against a geometric decay.
			return convergesTo(0, c.Growth)
		}
		// 0 times infinity at comparable rates is unresolved here.
		return indeterminate()
	}
	to := other.To
	if c.Limit < 0 {
		to = -to
	}
	return divergesTo(to, other.Growth)
}

// combineDiv is the case table for a quotient of two classified operands.
func combineDiv(l, r Result) Result {
	switch {
	case l.Converges() && r.Converges():
		if r.Limit == 0 {
			// A vanishing denominator is classified, never raised.
			return indeterminate()
		}
		return convergesTo(l.Limit/r.Limit, maxGrowth(l.Growth, r.Growth))
	case l.Converges():
		if r.Outcome == OutcomeDiverges {
			return convergesTo(0, GrowthPolynomial)
		}
		return indeterminate()
	case r.Converges():
		if l.Outcome == OutcomeIndeterminate || r.Limit == 0 {
			return indeterminate()
		}
		to := l.To
		if r.Limit < 0 {
			to = -to
		}
		return divergesTo(to, l.Growth)
	case l.Outcome == OutcomeDiverges && r.Outcome == OutcomeDiverges:
		switch {
		case l.Growth > r.Growth:
			to := math.Inf(1)
			if (l.To > 0) != (r.To > 0) {
				to = math.Inf(-1)
			}
			return divergesTo(to, l.Growth)
		case l.Growth < r.Growth:
			return convergesTo(0, GrowthPolynomial)
		default:
			// Equal growth: coefficient-level comparison is out of scope.
			return indeterminate()
		}
	case l.Outcome == OutcomeIndeterminate && r.Outcome == OutcomeDiverges:
		// Bounded oscillation over an unbounded denominator.
		return convergesTo(0, GrowthPolynomial)
	default:
		return indeterminate()
	}
}

// UnsupportedOperationError indicates a limit request for an operation the
// asymptotic model leaves undefined, such as tan.
type UnsupportedOperationError struct {
	// Op is the name of the operation.
	Op string
}

func (err *UnsupportedOperationError) Error() string {
	return "unsupported operation: limit of " + err.Op
}
