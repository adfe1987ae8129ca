package verge

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
)

// diff finds the first in-order node of n that differs from m, or nil, nil if
// the two trees are equal. Call nodes compare by function kind, so the e^
// form and exp compare equal.
func (n *node) diff(m *node) (*node, *node) {
	if n == nil || m == nil {
		if n != m {
			return n, m
		}
		return nil, nil
	}
	if n.kind == nodeNone || m.kind == nodeNone {
		return n, m
	}
	if n.kind != m.kind {
		return n, m
	}
	switch n.kind {
	case nodeNum:
		if n.num != m.num {
			return n, m
		}
	case nodeName:
		if n.name != m.name {
			return n, m
		}
	case nodeCall:
		if n.fn != m.fn {
			return n, m
		}
		if d, e := n.left.diff(m.left); d != nil || e != nil {
			return d, e
		}
	case nodeNeg, nodeAdd, nodeSub, nodeMul, nodeDiv, nodePow:
		if d, e := n.left.diff(m.left); d != nil || e != nil {
			return d, e
		}
		if d, e := n.right.diff(m.right); d != nil || e != nil {
			return d, e
		}
	default:
		panic(fmt.Errorf("invalid node kind: n=%+v m=%+v", n, m))
	}
	return nil, nil
}

// haskind checks whether a parse tree contains a node of the given type.
func (n *node) haskind(k nodeKind) bool {
	if n == nil {
		return false
	}
	if n.kind == k {
		return true
	}
	if n.left.haskind(k) {
		return true
	}
	return n.right.haskind(k)
}

func TestOpPrecsExist(t *testing.T) {
	for _, r := range Operators {
		b := binop(string(r))
		if b.op == nodeNone {
			t.Errorf("no operator for %c", r)
		}
	}
}

func TestTermPrecBetweenMulAndPow(t *testing.T) {
	if p := binop("*").prec; termprec.prec <= p {
		t.Errorf("terms have prec %d but * has prec %d", termprec.prec, p)
	}
	if p := binop("^").prec; termprec.prec >= p {
		t.Errorf("terms have prec %d but ^ has prec %d", termprec.prec, p)
	}
}

func TestParseTrees(t *testing.T) {
	cases := []struct {
		name string
		a, b string
	}{
		{"paren", "(n)", "n"},
		{"multi", "(((n)))", "n"},

		{"plus", "+n", "n"},
		{"neg", "-n", "-(n)"},
		{"add", "n+1", "(n)+(1)"},
		{"sub", "n-1", "(n)-(1)"},
		{"mul", "2*n", "(2)*(n)"},
		{"div", "n/2", "(n)/(2)"},
		{"pow", "n^2", "(n)^(2)"},
		{"terms", "2n", "2*n"},
		{"parenterms", "(n)2", "n*2"},
		{"spaceterms", "n (n)", "n*n"},

		{"add4", "w+x+y+z", "((w+x)+y)+z"},
		{"div4", "w/x/y/z", "((w/x)/y)/z"},
		{"pow4", "2^2^2^n", "2^(2^(2^n))"},

		{"terms-div", "1/2n", "1/(2*n)"},
		{"terms-div-paren", "1/2(n+1)", "1/(2*(n+1))"},
		{"terms-pow", "2n^3", "2*(n^3)"},
		{"signpow", "-n^2", "(-n)^2"},
		{"signlit-pow", "-2^n", "(-2)^n"},
		{"negneg", "--n", "-(-n)"},
		{"negsub", "-n-n", "(-n)-n"},
		{"powneg", "n^-2", "n^(-2)"},
		{"desc", "2^n*n+1", "((2^n)*n)+1"},
		{"asc", "1+n*2^n", "1+(n*(2^n))"},

		{"exponential", "e^n", "exp(n)"},
		{"exponential-pow", "e^2^n", "exp(2^n)"},
		{"exponential-terms", "e^2n", "exp(2)n"},
		{"lnalias", "ln(n)", "log_e(n)"},
		{"sqrtalias", "sqrt(n)", "sqrt2(n)"},
		{"logalias", "log(n)", "log10(n)"},
		{"callcase", "SIN(n)", "sin(n)"},
		{"callterms", "2sin(n)", "2*sin(n)"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := ParseString(c.a)
			if err != nil {
				t.Fatalf("failed to parse %q: %v", c.a, err)
			}
			b, err := ParseString(c.b)
			if err != nil {
				t.Fatalf("failed to parse %q: %v", c.b, err)
			}
			d, e := a.n.diff(b.n)
			if d != nil || e != nil {
				t.Errorf("mismatched AST:\n\t%q parses %v has %v\n\t%q parses %v has %v", c.a, a.n, d, c.b, b.n, e)
			}
		})
	}
}

func TestParseExact(t *testing.T) {
	cases := []struct {
		name string
		src  string
		n    *node
	}{
		{
			name: "num",
			src:  "3.5",
			n:    &node{kind: nodeNum, num: 3.5},
		},
		{
			name: "signednum",
			src:  "-2",
			n:    &node{kind: nodeNum, num: -2},
		},
		{
			name: "name",
			src:  "n",
			n:    &node{kind: nodeName, name: "n"},
		},
		{
			name: "call",
			src:  "sin(n)",
			n: &node{
				kind: nodeCall,
				name: "sin",
				fn:   funcSin,
				left: &node{kind: nodeName, name: "n"},
			},
		},
		{
			name: "exponential",
			src:  "e^n",
			n: &node{
				kind: nodeCall,
				name: "e^",
				fn:   funcExp,
				left: &node{kind: nodeName, name: "n"},
			},
		},
		{
			name: "ratio",
			src:  "(2n+1)/(3n+2)",
			n: &node{
				kind: nodeDiv,
				left: &node{
					kind:  nodeAdd,
					left:  &node{kind: nodeMul, left: &node{kind: nodeNum, num: 2}, right: &node{kind: nodeName, name: "n"}},
					right: &node{kind: nodeNum, num: 1},
				},
				right: &node{
					kind:  nodeAdd,
					left:  &node{kind: nodeMul, left: &node{kind: nodeNum, num: 3}, right: &node{kind: nodeName, name: "n"}},
					right: &node{kind: nodeNum, num: 2},
				},
			},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := ParseString(c.src)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			d, e := a.n.diff(c.n)
			if d != nil || e != nil {
				t.Errorf("mismatched AST:\n\twant %v which has %v\n\tgot  %v which has %v from %q", c.n, e, a.n, d, c.src)
			}
		})
	}
}

func TestExprString(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"paren", "(n)"},
		{"neg", "-n"},
		{"negneg", "--n"},
		{"add", "n+1"},
		{"terms", "2n^3"},
		{"terms-div", "1/2n"},
		{"spaceterms", "n (n)"},
		{"signlit-pow", "-2^n"},
		{"call", "sin(n)/n"},
		{"exponential", "e^n"},
		{"lnratio", "ln(n+1)/ln(n)"},
		{"mixed", "n^2*0.5^n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := ParseString(c.src)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			s := a.String()
			b, err := ParseString(s)
			if err != nil {
				t.Fatalf("%q -> %q failed to parse: %v", c.src, s, err)
			}
			d, e := a.n.diff(b.n)
			if d != nil || e != nil {
				t.Errorf("mismatched AST:\n\t%q parses %v has %v\n\t%q parses %v has %v", c.src, a.n, d, s, b.n, e)
			}
		})
	}
}

func TestVars(t *testing.T) {
	a, err := ParseString("n + m*n")
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}
	want := []string{"m", "n"}
	if got := a.Vars(); !reflect.DeepEqual(got, want) {
		t.Errorf("want vars %v, got %v", want, got)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		err  InputError
		pos  int
	}{
		{"empty", "", new(EmptyExpressionError), 1},
		{"emptyparen", "()", new(EmptyExpressionError), 2},
		{"emptyoperand", "n*", new(EmptyExpressionError), 3},
		{"emptyunary", "n*-", new(EmptyExpressionError), 4},
		{"left", "(n", new(BracketError), 3},
		{"right", "n)", new(BracketError), 2},
		{"numnum", "2 3", new(UnexpectedTokenError), 3},
		{"identnum", "n 2", new(UnexpectedTokenError), 3},
		{"pownum", "n^2 3", new(UnexpectedTokenError), 5},
		{"nonunary", "*n", new(UnexpectedTokenError), 1},
		{"varcall", "n(n)", new(UnknownFunctionError), 1},
		{"unknowncall", "foo(n)", new(UnknownFunctionError), 1},
		{"lexer", "n + $", new(LexError), 5},
		{"dot", ".", new(LexError), 1},
		{"overflow", "1" + strings.Repeat("0", 400), new(NumberRangeError), 1},
		{"underflow", "0." + strings.Repeat("0", 400) + "1", new(NumberRangeError), 1},
		{"overflow-operand", "n + 1" + strings.Repeat("0", 400), new(NumberRangeError), 5},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := ParseString(c.src)
			if a != nil {
				t.Errorf("%q parsed non-nil to %v", c.src, a.n)
			}
			if reflect.TypeOf(err) != reflect.TypeOf(c.err) {
				t.Fatalf("wrong error type from %q: want %T, got %T", c.src, c.err, err)
			}
			if err == nil {
				return
			}
			in, ok := err.(InputError)
			if !ok {
				t.Fatalf("error %#v from %q is not an InputError", err, c.src)
			}
			if in.Pos() != c.pos {
				t.Errorf("wrong position from %q: want %d, got %d: %v", c.src, c.pos, in.Pos(), err)
			}
		})
	}
}

func TestStopOn(t *testing.T) {
	src := strings.NewReader("n+1\n2^n")
	a, err := Parse(src, StopOn('\n'))
	if err != nil {
		t.Fatalf("first expression failed to parse: %v", err)
	}
	if !a.n.haskind(nodeAdd) {
		t.Errorf("first expression %v has no addition", a.n)
	}
	b, err := Parse(src, StopOn('\n'))
	if err != nil {
		t.Fatalf("second expression failed to parse: %v", err)
	}
	if !b.n.haskind(nodePow) {
		t.Errorf("second expression %v has no power", b.n)
	}
}

func BenchmarkParse(b *testing.B) {
	cases := []struct {
		name string
		src  string
	}{
		{"ratio", "(2n+1)/(3n+2)"},
		{"mixed", "n^2*0.5^n"},
		{"lnratio", "ln(n+1)/ln(n)"},
		{"terms", "1/2n"},
	}
	for _, c := range cases {
		b.Run(c.name, func(b *testing.B) {
			b.ReportAllocs()
			var src strings.Reader
			for i := 0; i < b.N; i++ {
				src.Reset(c.src)
				Parse(&src)
			}
		})
	}
}
