package verge

// equalTrees reports whether two expression trees are structurally equal.
// Identifiers compare equal regardless of name, since every identifier
// denotes the same sequence variable; literals compare by numeric value;
// calls compare by function kind, so ln(n) and log_e(n) are equal.
func equalTrees(a, b *node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case nodeNum:
		return a.num == b.num
	case nodeName:
		return true
	case nodeCall:
		return a.fn == b.fn && equalTrees(a.left, b.left)
	default:
		return equalTrees(a.left, b.left) && equalTrees(a.right, b.right)
	}
}

// simplify rewrites a tree bottom-up, folding arithmetic on literal operands
// so that constant subexpressions like 1/2 reach the translator as the single
// literal they denote. The input tree is never modified.
func simplify(n *node) *node {
	switch n.kind {
	case nodeNum, nodeName:
		return n
	case nodeCall:
		return &node{kind: nodeCall, name: n.name, fn: n.fn, left: simplify(n.left)}
	case nodeNeg:
		l := simplify(n.left)
		switch l.kind {
		case nodeNum:
			return &node{kind: nodeNum, num: -l.num}
		case nodeNeg:
			return l.left
		}
		return &node{kind: nodeNeg, left: l}
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodePow:
		l, r := simplify(n.left), simplify(n.right)
		if l.kind == nodeNum && r.kind == nodeNum {
			if v, ok := fold(n.kind, l.num, r.num); ok {
				return &node{kind: nodeNum, num: v}
			}
		}
		return &node{kind: n.kind, left: l, right: r}
	default:
		panic("verge: invalid node kind " + n.kind.String())
	}
}

// fold computes a binary operation on two literals. Division by zero and
// exponentiation are left unfolded; the asymptotic algebra classifies both
// itself.
func fold(kind nodeKind, a, b float64) (float64, bool) {
	switch kind {
	case nodeAdd:
		return a + b, true
	case nodeSub:
		return a - b, true
	case nodeMul:
		return a * b, true
	case nodeDiv:
		if b == 0 {
			return 0, false
		}
		return a / b, true
	default:
		return 0, false
	}
}
