// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

// Package kernels implements the backend-independent numeric truth of the
// closed kernel catalogue (spec.md §4.3). Every backend (cpu, cuda, metal)
// copies its operands to a host-visible slice and calls into this package,
// which is what makes cross-backend bit-identical results (spec.md §8)
// hold by construction rather than by coincidence of three independent
// re-implementations.
package kernels

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/starkoracles/risc0/field"
	"github.com/starkoracles/risc0/hal"
)

// ShiftGenerator is the coset generator ZkShift multiplies coefficients by.
// It lies outside the NTT subgroup spanned by field.RouFwd (3^(2^27) != 1
// mod P), so the shifted evaluation domain is disjoint from the subgroup.
var ShiftGenerator = field.FromU32(3)

// EltwiseAddElem computes out[i] = a[i] + b[i].
func EltwiseAddElem(out, a, b []field.Elem) {
	hal.Assert(len(out) == len(a) && len(out) == len(b), "eltwise_add_elem: size mismatch out=%d a=%d b=%d", len(out), len(a), len(b))
	for i := range out {
		out[i] = a[i].Add(b[i])
	}
}

// EltwiseCopyElem computes out[i] = a[i].
func EltwiseCopyElem(out, a []field.Elem) {
	hal.Assert(len(out) == len(a), "eltwise_copy_elem: size mismatch out=%d a=%d", len(out), len(a))
	copy(out, a)
}

// EltwiseSumExtElem groups the base-element-encoded E4 input into
// len(out)/EXT_SIZE rows and writes each row's E4 sum into out.
func EltwiseSumExtElem(out, in []field.Elem) {
	hal.Assert(len(out)%field.ExtSize == 0, "eltwise_sum_extelem: out size %d not a multiple of EXT_SIZE", len(out))
	count := len(out) / field.ExtSize
	hal.Assert(count > 0 && len(in)%count == 0, "eltwise_sum_extelem: in size %d not a multiple of count %d", len(in), count)
	rowElems := len(in) / count
	hal.Assert(rowElems%field.ExtSize == 0, "eltwise_sum_extelem: row %d not a multiple of EXT_SIZE", rowElems)
	toAdd := rowElems / field.ExtSize

	for r := 0; r < count; r++ {
		var sum field.ExtElem
		for k := 0; k < toAdd; k++ {
			base := r*rowElems + k*field.ExtSize
			sum = sum.Add(extAt(in, base))
		}
		putExt(out, r*field.ExtSize, sum)
	}
}

// BatchBitReverse permutes each of count rows of io by bit-reversal on its
// (power-of-two) index.
func BatchBitReverse[T any](io []T, count int) {
	hal.Assert(count > 0 && len(io)%count == 0, "batch_bit_reverse: size %d not a multiple of count %d", len(io), count)
	rowSize := len(io) / count
	bits := field.BitLen(rowSize)
	hal.Assert(rowSize == 1<<uint(bits), "batch_bit_reverse: row size %d is not a power of two", rowSize)

	for r := 0; r < count; r++ {
		row := io[r*rowSize : (r+1)*rowSize]
		for i := 0; i < rowSize; i++ {
			j := bitReverse(i, bits)
			if j > i {
				row[i], row[j] = row[j], row[i]
			}
		}
	}
}

func bitReverse(i, bits int) int {
	r := 0
	for b := 0; b < bits; b++ {
		r = (r << 1) | (i & 1)
		i >>= 1
	}
	return r
}

// BatchExpand copies each of polyCount input rows into the head of a
// larger, zero-filled output row.
func BatchExpand(out, in []field.Elem, polyCount int) {
	hal.Assert(polyCount > 0 && len(out)%polyCount == 0 && len(in)%polyCount == 0,
		"batch_expand: out=%d in=%d not divisible by poly_count=%d", len(out), len(in), polyCount)
	outSize := len(out) / polyCount
	inSize := len(in) / polyCount
	hal.Assert(outSize >= inSize && outSize%inSize == 0, "batch_expand: out row %d is not a multiple of in row %d", outSize, inSize)

	for p := 0; p < polyCount; p++ {
		dst := out[p*outSize : (p+1)*outSize]
		src := in[p*inSize : (p+1)*inSize]
		copy(dst[:inSize], src)
		for i := inSize; i < outSize; i++ {
			dst[i] = field.Zero()
		}
	}
}

// BatchEvaluateNTT runs an in-place forward NTT on each of count rows.
// expandBits is only validated (it must not exceed the row's n_bits); every
// butterfly stage runs and none is skipped, so each row becomes the
// evaluation of its polynomial whether or not it is zero-stuffed.
func BatchEvaluateNTT(io []field.Elem, count, expandBits int) {
	hal.Assert(count > 0 && len(io)%count == 0, "batch_evaluate_ntt: size %d not a multiple of count %d", len(io), count)
	rowSize := len(io) / count
	nBits := field.BitLen(rowSize)
	hal.Assert(rowSize == 1<<uint(nBits), "batch_evaluate_ntt: row size %d is not a power of two", rowSize)
	hal.Assert(nBits >= expandBits, "batch_evaluate_ntt: expand_bits %d exceeds n_bits %d", expandBits, nBits)
	hal.Assert(nBits <= field.MaxRouPo2, "batch_evaluate_ntt: n_bits %d exceeds MaxRouPo2", nBits)

	for r := 0; r < count; r++ {
		ntt(io[r*rowSize:(r+1)*rowSize], nBits, field.RouFwd[:])
	}
}

// BatchInterpolateNTT runs an in-place inverse NTT on each of count rows,
// followed by the 1/row_size normalization.
func BatchInterpolateNTT(io []field.Elem, count int) {
	hal.Assert(count > 0 && len(io)%count == 0, "batch_interpolate_ntt: size %d not a multiple of count %d", len(io), count)
	rowSize := len(io) / count
	nBits := field.BitLen(rowSize)
	hal.Assert(rowSize == 1<<uint(nBits), "batch_interpolate_ntt: row size %d is not a power of two", rowSize)
	hal.Assert(nBits <= field.MaxRouPo2, "batch_interpolate_ntt: n_bits %d exceeds MaxRouPo2", nBits)

	norm, err := field.FromU32(uint32(rowSize)).Inv()
	hal.Assert(err == nil, "batch_interpolate_ntt: row size %d has no inverse", rowSize)

	for r := 0; r < count; r++ {
		row := io[r*rowSize : (r+1)*rowSize]
		ntt(row, nBits, field.RouRev[:])
		for i := range row {
			row[i] = row[i].Mul(norm)
		}
	}
}

// ntt runs the standard iterative radix-2 Cooley-Tukey transform of a
// bit-reversal-permuted row, using rou[s] as the primitive 2^s-th root at
// stage s. Calling it with field.RouFwd then field.RouRev (scaled by
// 1/n) are exact inverses of one another.
func ntt(row []field.Elem, nBits int, rou []field.Elem) {
	n := len(row)
	for i := 0; i < n; i++ {
		j := bitReverse(i, nBits)
		if j > i {
			row[i], row[j] = row[j], row[i]
		}
	}
	for s := 1; s <= nBits; s++ {
		m := 1 << uint(s)
		half := m / 2
		wm := rou[s]
		for start := 0; start < n; start += m {
			w := field.One()
			for j := 0; j < half; j++ {
				u := row[start+j]
				v := row[start+half+j].Mul(w)
				row[start+j] = u.Add(v)
				row[start+half+j] = u.Sub(v)
				w = w.Mul(wm)
			}
		}
	}
}

// BatchEvaluateAny evaluates, for each i in 0..len(which), the poly_count
// polynomial which[i] (of count = len(coeffs)/polyCount coefficients) at
// xs[i] via Horner's method, in the extension field.
func BatchEvaluateAny(coeffs []field.Elem, polyCount int, which []uint32, xs, out []field.ExtElem) {
	hal.Assert(polyCount > 0 && len(coeffs)%polyCount == 0, "batch_evaluate_any: coeffs %d not divisible by poly_count %d", len(coeffs), polyCount)
	count := len(coeffs) / polyCount
	bits := field.BitLen(count)
	hal.Assert(count == 1<<uint(bits), "batch_evaluate_any: count %d is not a power of two", count)
	hal.Assert(len(which) == len(xs) && len(which) == len(out), "batch_evaluate_any: which=%d xs=%d out=%d must match", len(which), len(xs), len(out))

	for i := range which {
		poly := coeffs[int(which[i])*count : (int(which[i])+1)*count]
		acc := field.ExtZero()
		for j := count - 1; j >= 0; j-- {
			acc = acc.Mul(xs[i]).Add(field.ExtFromBase(poly[j]))
		}
		out[i] = acc
	}
}

// ZkShift multiplies coefficient j of each of polyCount rows by
// ShiftGenerator^j, moving evaluations off the NTT subgroup.
func ZkShift(io []field.Elem, polyCount int) {
	hal.Assert(polyCount > 0 && len(io)%polyCount == 0, "zk_shift: size %d not divisible by poly_count %d", len(io), polyCount)
	count := len(io) / polyCount
	for p := 0; p < polyCount; p++ {
		row := io[p*count : (p+1)*count]
		shift := field.One()
		for j := range row {
			row[j] = row[j].Mul(shift)
			shift = shift.Mul(ShiftGenerator)
		}
	}
}

// MixPolyCoeffs folds multi-polynomial evaluations under a single
// randomness: for each column c and row i, accumulates
// input[c+i*count] * (mixStart * mix^combos[i]) into out[combos[i]*count+c].
func MixPolyCoeffs(out []field.ExtElem, mixStart, mix field.ExtElem, input []field.Elem, combos []uint32, inputSize, count int) {
	hal.Assert(count > 0 && len(input) == inputSize*count, "mix_poly_coeffs: input size %d != input_size %d * count %d", len(input), inputSize, count)
	hal.Assert(len(combos) == inputSize, "mix_poly_coeffs: combos size %d != input_size %d", len(combos), inputSize)

	weights := make([]field.ExtElem, inputSize)
	for i := 0; i < inputSize; i++ {
		weights[i] = mixStart.Mul(mix.Pow(uint64(combos[i])))
	}

	for c := 0; c < count; c++ {
		for i := 0; i < inputSize; i++ {
			term := field.ExtFromBase(input[c+i*count]).Mul(weights[i])
			dst := int(combos[i])*count + c
			hal.Assert(dst < len(out), "mix_poly_coeffs: combo %d out of range for out size %d", combos[i], len(out))
			out[dst] = out[dst].Add(term)
		}
	}
}

// FriFold reduces FRI_FOLD adjacent E4 evaluations (base-element-encoded)
// into one via a random linear combination: out[i] = sum_k in[i*16+k]*mix^k.
func FriFold(out, in []field.Elem, mix field.ExtElem) {
	hal.Assert(len(out)%field.ExtSize == 0, "fri_fold: out size %d not a multiple of EXT_SIZE", len(out))
	count := len(out) / field.ExtSize
	hal.Assert(len(in) == count*hal.FriFold*field.ExtSize, "fri_fold: in size %d != out-derived count %d * FRI_FOLD * EXT_SIZE", len(in), count)

	for i := 0; i < count; i++ {
		acc := field.ExtZero()
		power := field.ExtOne()
		for k := 0; k < hal.FriFold; k++ {
			base := (i*hal.FriFold + k) * field.ExtSize
			acc = acc.Add(extAt(in, base).Mul(power))
			power = power.Mul(mix)
		}
		putExt(out, i*field.ExtSize, acc)
	}
}

// ShaRows hashes each column of matrix (row_size = len(out) rows,
// col_size = len(matrix)/len(out) columns stored row-major by column)
// into one SHA-256 digest per output row.
func ShaRows(out []hal.Digest, matrix []field.Elem) {
	rowSize := len(out)
	hal.Assert(rowSize > 0 && len(matrix)%rowSize == 0, "sha_rows: matrix size %d not a multiple of row size %d", len(matrix), rowSize)
	colSize := len(matrix) / rowSize

	buf := make([]byte, colSize*4)
	for r := 0; r < rowSize; r++ {
		for c := 0; c < colSize; c++ {
			binary.LittleEndian.PutUint32(buf[c*4:c*4+4], uint32(matrix[r+c*rowSize]))
		}
		out[r] = digestFromBytes(sha256.Sum256(buf))
	}
}

// ShaFold folds a window of 2*outputSize digests into outputSize digests,
// each the hash of a pair: io[i] = SHA256(io[outputSize+2i] || io[outputSize+2i+1]).
func ShaFold(io []hal.Digest, inputSize, outputSize int) {
	hal.Assert(inputSize == 2*outputSize, "sha_fold: input_size %d != 2*output_size %d", inputSize, outputSize)

	buf := make([]byte, 64)
	for i := 0; i < outputSize; i++ {
		left := io[outputSize+2*i]
		right := io[outputSize+2*i+1]
		digestToBytes(left, buf[:32])
		digestToBytes(right, buf[32:])
		io[i] = digestFromBytes(sha256.Sum256(buf))
	}
}

func extAt(data []field.Elem, base int) field.ExtElem {
	var e field.ExtElem
	copy(e.C0[:], data[base:base+field.ExtSize])
	return e
}

func putExt(data []field.Elem, base int, e field.ExtElem) {
	copy(data[base:base+field.ExtSize], e.C0[:])
}

func digestFromBytes(b [32]byte) hal.Digest {
	var d hal.Digest
	for i := range d {
		d[i] = binary.LittleEndian.Uint32(b[i*4 : i*4+4])
	}
	return d
}

func digestToBytes(d hal.Digest, out []byte) {
	for i, w := range d {
		binary.LittleEndian.PutUint32(out[i*4:i*4+4], w)
	}
}
