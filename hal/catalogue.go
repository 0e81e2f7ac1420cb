// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

package hal

import "github.com/starkoracles/risc0/field"

// Hal is the closed kernel catalogue of spec.md §4.3, plus the buffer
// allocation surface of §4.2. The prover is generic over this interface
// (spec.md §9, "Polymorphism over backends"); cpu, cuda and metal each
// provide one implementation and must produce bit-identical results for
// identical inputs (spec.md §8).
type Hal interface {
	// Buffer allocation (spec.md §4.2).
	AllocElem(name string, size int) Buffer[field.Elem]
	CopyFromElem(name string, data []field.Elem) Buffer[field.Elem]
	AllocExtElem(name string, size int) Buffer[field.ExtElem]
	CopyFromExtElem(name string, data []field.ExtElem) Buffer[field.ExtElem]
	AllocU32(name string, size int) Buffer[uint32]
	CopyFromU32(name string, data []uint32) Buffer[uint32]
	AllocDigest(name string, size int) Buffer[Digest]
	CopyFromDigest(name string, data []Digest) Buffer[Digest]

	// EltwiseAddElem: out[i] = a[i] + b[i].
	EltwiseAddElem(out, a, b Buffer[field.Elem])

	// EltwiseCopyElem: out[i] = a[i].
	EltwiseCopyElem(out, a Buffer[field.Elem])

	// EltwiseSumExtElem groups input into |out|/EXT_SIZE rows and writes
	// each row's sum; input is stored as base elements in the E4 layout.
	EltwiseSumExtElem(out Buffer[field.Elem], in Buffer[field.Elem])

	// BatchBitReverse permutes each of count rows of io by bit-reversal on
	// its (power-of-two) index.
	BatchBitReverse(io Buffer[field.Elem], count int)

	// BatchExpand copies each of poly_count input rows into the head of
	// its (larger) output row, zero-filling the remainder.
	BatchExpand(out, in Buffer[field.Elem], polyCount int)

	// BatchEvaluateNTT runs an in-place forward NTT on each of count rows.
	// expandBits must not exceed the row's n_bits; no butterfly stage is
	// skipped for it.
	BatchEvaluateNTT(io Buffer[field.Elem], count, expandBits int)

	// BatchInterpolateNTT runs an in-place inverse NTT on each of count
	// rows, followed by the 1/row_size normalization.
	BatchInterpolateNTT(io Buffer[field.Elem], count int)

	// BatchEvaluateAny evaluates polynomials at arbitrary extension-field
	// points via Horner's method.
	BatchEvaluateAny(coeffs Buffer[field.Elem], polyCount int, which Buffer[uint32], xs Buffer[field.ExtElem], out Buffer[field.ExtElem])

	// ZkShift multiplies coefficient j of each of poly_count rows by
	// SHIFT^j, moving evaluations off the NTT subgroup.
	ZkShift(io Buffer[field.Elem], polyCount int)

	// MixPolyCoeffs folds multi-polynomial evaluations under a single
	// randomness into out, interpreted as E4.
	MixPolyCoeffs(out Buffer[field.ExtElem], mixStart, mix field.ExtElem, input Buffer[field.Elem], combos Buffer[uint32], inputSize, count int)

	// FriFold reduces FRI_FOLD adjacent E4 evaluations (stored as base
	// elements in E4 layout) into one via a random linear combination.
	FriFold(out, in Buffer[field.Elem], mix field.ExtElem)

	// ShaRows hashes each column of matrix (serialized little-endian) into
	// one SHA-256 digest per row.
	ShaRows(out Buffer[Digest], matrix Buffer[field.Elem])

	// ShaFold folds a window of 2*output_size digests into output_size
	// digests, each the hash of a pair.
	ShaFold(io Buffer[Digest], inputSize, outputSize int)
}

// EvalCheck is the circuit eval-check composition kernel of spec.md §4.5,
// parameterized separately from Hal because it is circuit-specific (the
// catalogue of spec.md §4.3 is circuit-agnostic).
type EvalCheck interface {
	EvalCheck(
		check, code, data, accum, mix, out Buffer[field.Elem],
		polyMix field.ExtElem,
		po2, steps int,
	)
}
