// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

// Package field implements the BabyBear prime field and its degree-4
// extension used throughout the hardware abstraction layer.
package field

import (
	"fmt"
	"math/rand"
)

// P is the BabyBear prime: 15*2^27+1.
const P uint32 = 15*(1<<27) + 1

// MaxRouPo2 bounds every NTT size the field's root-of-unity tables support.
const MaxRouPo2 = 27

// Elem is a residue modulo P, stored in canonical (non-Montgomery) form.
// All arithmetic reduces eagerly so every Elem in circulation is already
// in [0, P).
type Elem uint32

// Zero is the additive identity.
func Zero() Elem { return Elem(0) }

// One is the multiplicative identity.
func One() Elem { return Elem(1) }

// FromU32 reduces x modulo P.
func FromU32(x uint32) Elem { return Elem(uint64(x) % uint64(P)) }

// Add returns a+b mod P.
func (a Elem) Add(b Elem) Elem {
	s := uint64(a) + uint64(b)
	if s >= uint64(P) {
		s -= uint64(P)
	}
	return Elem(s)
}

// Sub returns a-b mod P.
func (a Elem) Sub(b Elem) Elem {
	if a >= b {
		return a - b
	}
	return Elem(uint64(a) + uint64(P) - uint64(b))
}

// Mul returns a*b mod P.
func (a Elem) Mul(b Elem) Elem {
	return Elem((uint64(a) * uint64(b)) % uint64(P))
}

// Neg returns -a mod P.
func (a Elem) Neg() Elem {
	if a == 0 {
		return 0
	}
	return Elem(P) - a
}

// Pow returns a^k mod P via square-and-multiply.
func (a Elem) Pow(k uint64) Elem {
	result := One()
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

// Inv returns the multiplicative inverse of a. Inverting zero is a numeric
// undefined condition (spec.md §7) and returns a non-nil error.
func (a Elem) Inv() (Elem, error) {
	if a == 0 {
		return 0, fmt.Errorf("%w: inverse of zero", ErrNumericUndefined)
	}
	return a.Pow(uint64(P - 2)), nil
}

// Random samples a uniformly distributed field element. Draws at or above
// 2*P are rejected so that every residue has the same number of preimages.
func Random(rng *rand.Rand) Elem {
	for {
		v := rng.Uint32()
		if v < 2*P {
			return Elem(v % P)
		}
	}
}

// Equal reports whether a and b are the same residue.
func (a Elem) Equal(b Elem) bool { return a == b }

func (a Elem) String() string { return fmt.Sprintf("%d", uint32(a)) }
