// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

package kernels

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/starkoracles/risc0/field"
	"github.com/starkoracles/risc0/hal"
)

func elems(vals ...uint32) []field.Elem {
	out := make([]field.Elem, len(vals))
	for i, v := range vals {
		out[i] = field.FromU32(v)
	}
	return out
}

func TestEltwiseAddElemConcreteExample(t *testing.T) {
	a := elems(1, 2, 3, 4)
	b := elems(5, 6, 7, 8)
	out := make([]field.Elem, 4)
	EltwiseAddElem(out, a, b)
	require.Equal(t, elems(6, 8, 10, 12), out)
}

func TestEltwiseAddElemCommutative(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	a := make([]field.Elem, 16)
	b := make([]field.Elem, 16)
	for i := range a {
		a[i] = field.Random(rng)
		b[i] = field.Random(rng)
	}
	ab := make([]field.Elem, 16)
	ba := make([]field.Elem, 16)
	EltwiseAddElem(ab, a, b)
	EltwiseAddElem(ba, b, a)
	require.Equal(t, ab, ba)
}

func TestEltwiseCopyElem(t *testing.T) {
	a := elems(9, 8, 7)
	out := make([]field.Elem, 3)
	EltwiseCopyElem(out, a)
	require.Equal(t, a, out)
}

func TestEltwiseSumExtElem(t *testing.T) {
	in := elems(1, 0, 0, 0, 2, 0, 0, 0, 3, 0, 0, 0)
	out := make([]field.Elem, field.ExtSize)
	EltwiseSumExtElem(out, in)
	require.Equal(t, elems(6, 0, 0, 0), out)
}

func TestBatchBitReverseConcreteExample(t *testing.T) {
	io := elems(0, 1, 2, 3, 4, 5, 6, 7)
	BatchBitReverse(io, 1)
	require.Equal(t, elems(0, 4, 2, 6, 1, 5, 3, 7), io)
}

func TestBatchBitReverseInvolution(t *testing.T) {
	io := elems(0, 1, 2, 3, 4, 5, 6, 7)
	orig := append([]field.Elem(nil), io...)
	BatchBitReverse(io, 1)
	BatchBitReverse(io, 1)
	require.Equal(t, orig, io)
}

func TestBatchExpand(t *testing.T) {
	in := elems(1, 2, 3, 4)
	out := make([]field.Elem, 8)
	BatchExpand(out, in, 1)
	require.Equal(t, elems(1, 2, 3, 4, 0, 0, 0, 0), out)
}

func TestNTTRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	n := 64
	coeffs := make([]field.Elem, n)
	for i := range coeffs {
		coeffs[i] = field.Random(rng)
	}
	work := append([]field.Elem(nil), coeffs...)
	BatchEvaluateNTT(work, 1, 0)
	BatchInterpolateNTT(work, 1)
	require.Equal(t, coeffs, work)
}

func TestBatchEvaluateAnyMatchesHorner(t *testing.T) {
	coeffs := elems(1, 2, 3, 4)
	which := []uint32{0}
	x := field.ExtFromBase(field.FromU32(5))
	xs := []field.ExtElem{x}
	out := make([]field.ExtElem, 1)
	BatchEvaluateAny(coeffs, 1, which, xs, out)

	// Horner by hand: ((4*5+3)*5+2)*5+1 = 1 + 2*5 + 3*25 + 4*125 = 586
	want := field.ExtFromBase(field.FromU32(586))
	require.Equal(t, want, out[0])
}

func TestZkShift(t *testing.T) {
	io := elems(1, 1, 1, 1)
	ZkShift(io, 1)
	shift := field.One()
	for i := range io {
		require.Equal(t, shift, io[i])
		shift = shift.Mul(ShiftGenerator)
	}
}

func TestMixPolyCoeffs(t *testing.T) {
	// input_size=2 polys, count=1 column each, both routed to combo 0.
	input := elems(3, 4) // poly0[0]=3, poly1[0]=4
	combos := []uint32{0, 0}
	mixStart := field.ExtFromBase(field.FromU32(1))
	mix := field.ExtFromBase(field.FromU32(2))
	out := make([]field.ExtElem, 1)
	MixPolyCoeffs(out, mixStart, mix, input, combos, 2, 1)
	// both rows use combo 0, so each weight is mixStart*mix^0 = 1: 3*1 + 4*1 = 7
	require.Equal(t, field.ExtFromBase(field.FromU32(7)), out[0])
}

func TestFriFoldAllOnesMixTwo(t *testing.T) {
	in := make([]field.Elem, hal.FriFold*field.ExtSize)
	for i := 0; i < hal.FriFold; i++ {
		copy(in[i*field.ExtSize:], field.ExtFromBase(field.FromU32(1)).C0[:])
	}
	mix := field.ExtFromBase(field.FromU32(2))
	out := make([]field.Elem, field.ExtSize)
	FriFold(out, in, mix)

	// sum_{k=0}^{15} 2^k = 2^16 - 1 = 65535
	want := field.ExtFromBase(field.FromU32(65535))
	require.Equal(t, want, extAt(out, 0))
}

func TestShaRowsAndFold(t *testing.T) {
	// 2 rows, 2 columns: matrix is column-major by row index per sha_rows'
	// contract (matrix[r+c*rowSize]).
	matrix := elems(10, 20, 30, 40) // col0=[10,20] col1=[30,40]
	digests := make([]hal.Digest, 2)
	ShaRows(digests, matrix)
	require.NotEqual(t, digests[0], digests[1])

	io := make([]hal.Digest, 6)
	copy(io[2:], digests)
	copy(io[4:], digests)
	ShaFold(io, 4, 2)
	require.Equal(t, io[0], io[1])
}
