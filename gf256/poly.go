package gf256

import "errors"

// ErrDuplicatePoint is returned by InterpolateAtZero when two sample
// points share an x-coordinate.
var ErrDuplicatePoint = errors.New("gf256: duplicate x-coordinate")

// Eval computes c0 + c1*x + ... + c_{k-1}*x^{k-1} over GF(2^8) by
// Horner's method.
func Eval(coeffs []byte, x byte) byte {
	var acc byte
	for i := len(coeffs) - 1; i >= 0; i-- {
		acc = Add(Mul(acc, x), coeffs[i])
	}
	return acc
}

// InterpolateAtZero evaluates at x=0 the unique polynomial of degree
// len(xs)-1 passing through the points (xs[j], ys[j]):
//
//	f(0) = Σ ys[j] · Π_{m≠j} xs[m] / (xs[m] ⊕ xs[j])
//
// Points are traversed in input order; the field operations commute, so
// the result does not depend on that order. A repeated x-coordinate makes
// a basis denominator zero and yields ErrDuplicatePoint.
func InterpolateAtZero(xs, ys []byte) (byte, error) {
	var result byte
	for j := range xs {
		basis := byte(1)
		for m := range xs {
			if m == j {
				continue
			}
			denom := Add(xs[m], xs[j])
			if denom == 0 {
				return 0, ErrDuplicatePoint
			}
			basis = Mul(basis, Div(xs[m], denom))
		}
		result = Add(result, Mul(ys[j], basis))
	}
	return result, nil
}
