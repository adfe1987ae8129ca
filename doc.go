// Package verge classifies the limit behavior of real sequences written in
// free-form math notation in the variable n.
//
// An input like "(n^2+2n)/(3n^2+1)" is lexed and parsed into an expression
// tree, translated into a closed algebra of asymptotic functions, and then
// classified: the sequence converges to a finite limit, diverges to a signed
// infinity, or has no determinate trend at all. Implicit multiplication is
// accepted the way you'd write it in your notes: "2n" and "(n+1)(n+2)" are
// both products.
//
// The name of the variable is irrelevant; every identifier denotes the same
// sequence index tending to infinity.
package verge
