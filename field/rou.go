// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

package field

// Root-of-unity table construction follows the same shape as the teacher's
// findPrimitiveRoot/powMod/modInverse helpers (gpu/ntt.go), generalized from
// the TFHE ring modulus to the fixed BabyBear prime: factor P-1, find a
// generator of the full multiplicative group, then raise it to the
// (P-1)/2^MaxRouPo2-th power to get a root of order exactly 2^MaxRouPo2, and
// derive every smaller power-of-two root by repeated squaring.

// primeFactorsOfOrder lists the distinct prime factors of P-1 = 2^27 * 3 * 5.
var primeFactorsOfOrder = []uint64{2, 3, 5}

// RouFwd[k] is a primitive 2^k-th root of unity, 0 <= k <= MaxRouPo2.
var RouFwd [MaxRouPo2 + 1]Elem

// RouRev[k] is the inverse of RouFwd[k].
var RouRev [MaxRouPo2 + 1]Elem

func init() {
	g := findGenerator()
	order := uint64(P - 1)
	exp := order >> MaxRouPo2
	top := g.Pow(exp) // order exactly 2^MaxRouPo2

	RouFwd[MaxRouPo2] = top
	for k := MaxRouPo2 - 1; k >= 0; k-- {
		RouFwd[k] = RouFwd[k+1].Mul(RouFwd[k+1])
	}
	for k := 0; k <= MaxRouPo2; k++ {
		inv, err := RouFwd[k].Inv()
		if err != nil {
			// RouFwd[0] == 1, whose inverse is always defined; a failure
			// here means the generator search above is broken.
			panic("field: root-of-unity table has a non-invertible entry")
		}
		RouRev[k] = inv
	}
}

// findGenerator returns a generator of the full multiplicative group of P.
func findGenerator() Elem {
	order := uint64(P - 1)
	for cand := uint32(2); cand < P; cand++ {
		g := Elem(cand)
		isGenerator := true
		for _, q := range primeFactorsOfOrder {
			if g.Pow(order/q) == One() {
				isGenerator = false
				break
			}
		}
		if isGenerator {
			return g
		}
	}
	panic("field: no generator found for P-1")
}
