// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

package field

import "math/rand"

// ExtSize is the number of base elements making up one extension element.
const ExtSize = 4

// nonResidue is a fixed quadratic/quartic non-residue used to build the
// degree-4 extension F_p[X]/(X^4 - nonResidue). 11 is the smallest value
// for which neither X^4-11 nor its factors split over BabyBear, matching
// the irreducibility requirement the extension relies on.
const nonResidue = Elem(11)

// ExtElem is an element of F_p^4, stored as 4 contiguous base elements,
// little-index-first: a value v = C0[0] + C0[1]*X + C0[2]*X^2 + C0[3]*X^3.
type ExtElem struct {
	C0 [ExtSize]Elem
}

// ExtZero is the additive identity.
func ExtZero() ExtElem { return ExtElem{} }

// ExtOne is the multiplicative identity.
func ExtOne() ExtElem { return ExtElem{C0: [ExtSize]Elem{One(), 0, 0, 0}} }

// ExtFromBase lifts a base element into the extension.
func ExtFromBase(a Elem) ExtElem { return ExtElem{C0: [ExtSize]Elem{a, 0, 0, 0}} }

// ExtFromTuple constructs an extension element from its 4 coordinates.
func ExtFromTuple(a, b, c, d Elem) ExtElem { return ExtElem{C0: [ExtSize]Elem{a, b, c, d}} }

// Add returns a+b.
func (a ExtElem) Add(b ExtElem) ExtElem {
	var r ExtElem
	for i := range r.C0 {
		r.C0[i] = a.C0[i].Add(b.C0[i])
	}
	return r
}

// Sub returns a-b.
func (a ExtElem) Sub(b ExtElem) ExtElem {
	var r ExtElem
	for i := range r.C0 {
		r.C0[i] = a.C0[i].Sub(b.C0[i])
	}
	return r
}

// Mul returns a*b in F_p[X]/(X^4 - nonResidue).
func (a ExtElem) Mul(b ExtElem) ExtElem {
	var prod [2*ExtSize - 1]Elem
	for i := 0; i < ExtSize; i++ {
		for j := 0; j < ExtSize; j++ {
			prod[i+j] = prod[i+j].Add(a.C0[i].Mul(b.C0[j]))
		}
	}
	var r ExtElem
	for i := 0; i < ExtSize; i++ {
		r.C0[i] = prod[i]
	}
	for i := ExtSize; i < len(prod); i++ {
		r.C0[i-ExtSize] = r.C0[i-ExtSize].Add(prod[i].Mul(nonResidue))
	}
	return r
}

// MulElem returns a*b where b is a base-field scalar.
func (a ExtElem) MulElem(b Elem) ExtElem {
	var r ExtElem
	for i := range r.C0 {
		r.C0[i] = a.C0[i].Mul(b)
	}
	return r
}

// Neg returns -a.
func (a ExtElem) Neg() ExtElem {
	var r ExtElem
	for i := range r.C0 {
		r.C0[i] = a.C0[i].Neg()
	}
	return r
}

// Pow returns a^k via square-and-multiply.
func (a ExtElem) Pow(k uint64) ExtElem {
	result := ExtOne()
	base := a
	for k > 0 {
		if k&1 == 1 {
			result = result.Mul(base)
		}
		base = base.Mul(base)
		k >>= 1
	}
	return result
}

// Inv returns the multiplicative inverse of a. Multiplication by a is an
// F_p-linear map on F_p^4; Inv builds its 4x4 matrix and solves
// (mul-by-a) * x = 1 via Gaussian elimination over F_p, which avoids
// needing an explicit Frobenius/conjugate construction for this extension.
// Inverting zero is numeric undefined.
func (a ExtElem) Inv() (ExtElem, error) {
	if a == ExtZero() {
		_, err := Zero().Inv()
		return ExtElem{}, err
	}

	var basis [ExtSize]ExtElem
	for j := 0; j < ExtSize; j++ {
		var e ExtElem
		e.C0[j] = One()
		basis[j] = e
	}

	// mat[row][col] holds the coefficient of basis[row] in a*basis[col],
	// augmented with the target vector (e0, the coordinates of One()) in
	// column ExtSize.
	var mat [ExtSize][ExtSize + 1]Elem
	target := ExtOne()
	for col := 0; col < ExtSize; col++ {
		prod := a.Mul(basis[col])
		for row := 0; row < ExtSize; row++ {
			mat[row][col] = prod.C0[row]
		}
	}
	for row := 0; row < ExtSize; row++ {
		mat[row][ExtSize] = target.C0[row]
	}

	for pivot := 0; pivot < ExtSize; pivot++ {
		if mat[pivot][pivot] == 0 {
			swapped := false
			for r := pivot + 1; r < ExtSize; r++ {
				if mat[r][pivot] != 0 {
					mat[pivot], mat[r] = mat[r], mat[pivot]
					swapped = true
					break
				}
			}
			if !swapped {
				panic("field: singular multiplication matrix for nonzero extension element")
			}
		}
		inv, err := mat[pivot][pivot].Inv()
		if err != nil {
			panic("field: unexpected non-invertible pivot")
		}
		for c := 0; c <= ExtSize; c++ {
			mat[pivot][c] = mat[pivot][c].Mul(inv)
		}
		for r := 0; r < ExtSize; r++ {
			if r == pivot || mat[r][pivot] == 0 {
				continue
			}
			factor := mat[r][pivot]
			for c := 0; c <= ExtSize; c++ {
				mat[r][c] = mat[r][c].Sub(factor.Mul(mat[pivot][c]))
			}
		}
	}

	var result ExtElem
	for row := 0; row < ExtSize; row++ {
		result.C0[row] = mat[row][ExtSize]
	}
	return result, nil
}

// ExtRandom samples a uniformly distributed extension element.
func ExtRandom(rng *rand.Rand) ExtElem {
	var r ExtElem
	for i := range r.C0 {
		r.C0[i] = Random(rng)
	}
	return r
}

// Equal reports whether a and b are the same extension element.
func (a ExtElem) Equal(b ExtElem) bool { return a.C0 == b.C0 }
