// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

package cpu

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/starkoracles/risc0/circuit"
	"github.com/starkoracles/risc0/field"
)

func TestBackendEltwiseAddElem(t *testing.T) {
	b := New()
	a := b.CopyFromElem("a", []field.Elem{field.FromU32(1), field.FromU32(2)})
	bb := b.CopyFromElem("b", []field.Elem{field.FromU32(3), field.FromU32(4)})
	out := b.AllocElem("out", 2)
	b.EltwiseAddElem(out, a, bb)
	out.View(func(data []field.Elem) {
		require.Equal(t, []field.Elem{field.FromU32(4), field.FromU32(6)}, data)
	})
}

func TestBackendSliceSharesStorage(t *testing.T) {
	b := New()
	buf := b.CopyFromElem("buf", []field.Elem{field.FromU32(1), field.FromU32(2), field.FromU32(3)})
	head := buf.Slice(0, 2)
	head.ViewMut(func(data []field.Elem) {
		data[0] = field.FromU32(99)
	})
	buf.View(func(data []field.Elem) {
		require.Equal(t, field.FromU32(99), data[0])
	})
}

func TestBackendNTTRoundTrip(t *testing.T) {
	b := New()
	rng := rand.New(rand.NewSource(3))
	coeffs := make([]field.Elem, 32)
	for i := range coeffs {
		coeffs[i] = field.Random(rng)
	}
	io := b.CopyFromElem("io", coeffs)
	b.BatchEvaluateNTT(io, 1, 0)
	b.BatchInterpolateNTT(io, 1)
	io.View(func(data []field.Elem) {
		require.Equal(t, coeffs, data)
	})
}

func TestBackendEvalCheckRuns(t *testing.T) {
	b := New()
	ec := NewEvalCheck()
	po2 := 4
	steps := 1 << uint(po2)
	domain := steps * 4 // InvRate

	rng := rand.New(rand.NewSource(4))
	code := randBuf(b, "code", domain*circuit.CodeWidth, rng)
	data := randBuf(b, "data", domain*circuit.DataWidth, rng)
	accum := randBuf(b, "accum", domain*circuit.AccumWidth, rng)
	mix := randBuf(b, "mix", circuit.MixSize, rng)
	out := randBuf(b, "out", circuit.OutputSize, rng)
	check := b.AllocElem("check", domain*field.ExtSize)

	polyMix := field.ExtRandom(rng)
	ec.EvalCheck(check, code, data, accum, mix, out, polyMix, po2, steps)

	check.View(func(cv []field.Elem) {
		var allZero = true
		for _, e := range cv {
			if e != field.Zero() {
				allZero = false
				break
			}
		}
		require.False(t, allZero, "eval_check should not be trivially zero for random input")
	})
}

func randBuf(b *Backend, name string, n int, rng *rand.Rand) *buffer[field.Elem] {
	vals := make([]field.Elem, n)
	for i := range vals {
		vals[i] = field.Random(rng)
	}
	return copyBuffer(name, vals)
}
