// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

// Package conformance is a cross-backend equivalence harness: it drives
// every catalogue kernel plus eval_check through a fixed deterministic
// scenario on a hal.Hal + hal.EvalCheck pair and returns a canonical byte
// snapshot of the results. Two backends are conformant exactly when their
// snapshots for the same scenario are byte-identical (spec.md §8, "Primary
// testable property: backend equivalence").
package conformance

import (
	"encoding/binary"
	"math/rand"

	"github.com/starkoracles/risc0/circuit"
	"github.com/starkoracles/risc0/field"
	"github.com/starkoracles/risc0/hal"
)

// Scenario is a fixed set of deterministically-generated inputs sized by
// Po2 (steps = 2^Po2) and drawn from Seed. Default uses po2=4, the scale
// spec.md §8 uses for its worked examples.
type Scenario struct {
	Po2  int
	Seed int64
}

// Default is the scenario conformance tests run by default.
var Default = Scenario{Po2: 4, Seed: 42}

// Snapshot runs the full kernel catalogue plus eval_check on backend/check
// and returns a deterministic byte encoding of every intermediate and
// final buffer. Byte-for-byte equality of two backends' snapshots for the
// same Scenario is the cross-backend conformance check.
func Snapshot(backend hal.Hal, check hal.EvalCheck, s Scenario) []byte {
	rng := rand.New(rand.NewSource(s.Seed))
	var out []byte

	steps := 1 << uint(s.Po2)
	domain := steps * hal.InvRate

	appendElems := func(b hal.Buffer[field.Elem]) {
		b.View(func(data []field.Elem) {
			for _, e := range data {
				out = appendU32(out, uint32(e))
			}
		})
	}
	appendExtElems := func(b hal.Buffer[field.ExtElem]) {
		b.View(func(data []field.ExtElem) {
			for _, e := range data {
				for _, c := range e.C0 {
					out = appendU32(out, uint32(c))
				}
			}
		})
	}
	appendDigests := func(b hal.Buffer[hal.Digest]) {
		b.View(func(data []hal.Digest) {
			for _, d := range data {
				for _, w := range d {
					out = appendU32(out, w)
				}
			}
		})
	}

	// eltwise_add_elem / eltwise_copy_elem / eltwise_sum_extelem
	a := backend.CopyFromElem("a", randElems(rng, 32))
	b := backend.CopyFromElem("b", randElems(rng, 32))
	sum := backend.AllocElem("sum", 32)
	backend.EltwiseAddElem(sum, a, b)
	appendElems(sum)

	cp := backend.AllocElem("cp", 32)
	backend.EltwiseCopyElem(cp, a)
	appendElems(cp)

	extIn := backend.CopyFromElem("extIn", randElems(rng, 32*field.ExtSize))
	extSum := backend.AllocElem("extSum", field.ExtSize)
	backend.EltwiseSumExtElem(extSum, extIn)
	appendElems(extSum)

	// batch_bit_reverse
	br := backend.CopyFromElem("br", randElems(rng, steps))
	backend.BatchBitReverse(br, 1)
	appendElems(br)

	// batch_expand
	expIn := backend.CopyFromElem("expIn", randElems(rng, steps))
	expOut := backend.AllocElem("expOut", domain)
	backend.BatchExpand(expOut, expIn, 1)
	appendElems(expOut)

	// batch_evaluate_ntt / batch_interpolate_ntt round trip
	ntt := backend.CopyFromElem("ntt", randElems(rng, domain))
	backend.BatchEvaluateNTT(ntt, 1, 0)
	appendElems(ntt)
	backend.BatchInterpolateNTT(ntt, 1)
	appendElems(ntt)

	// batch_evaluate_any
	polyCoeffs := backend.CopyFromElem("polyCoeffs", randElems(rng, steps))
	which := backend.CopyFromU32("which", []uint32{0})
	xs := backend.CopyFromExtElem("xs", []field.ExtElem{field.ExtRandom(rng)})
	anyOut := backend.AllocExtElem("anyOut", 1)
	backend.BatchEvaluateAny(polyCoeffs, 1, which, xs, anyOut)
	appendExtElems(anyOut)

	// zk_shift
	shiftIo := backend.CopyFromElem("shiftIo", randElems(rng, steps))
	backend.ZkShift(shiftIo, 1)
	appendElems(shiftIo)

	// mix_poly_coeffs
	mixInput := backend.CopyFromElem("mixInput", randElems(rng, 2))
	combos := backend.CopyFromU32("combos", []uint32{0, 0})
	mixOut := backend.AllocExtElem("mixOut", 1)
	mixStart := field.ExtRandom(rng)
	mix := field.ExtRandom(rng)
	backend.MixPolyCoeffs(mixOut, mixStart, mix, mixInput, combos, 2, 1)
	appendExtElems(mixOut)

	// fri_fold
	friIn := backend.CopyFromElem("friIn", randElems(rng, hal.FriFold*field.ExtSize))
	friOut := backend.AllocElem("friOut", field.ExtSize)
	friMix := field.ExtRandom(rng)
	backend.FriFold(friOut, friIn, friMix)
	appendElems(friOut)

	// sha_rows / sha_fold
	shaMatrix := backend.CopyFromElem("shaMatrix", randElems(rng, 8))
	shaDigests := backend.AllocDigest("shaDigests", 4)
	backend.ShaRows(shaDigests, shaMatrix)
	appendDigests(shaDigests)

	foldIo := backend.AllocDigest("foldIo", 6)
	foldIo.ViewMut(func(data []hal.Digest) {
		shaDigests.View(func(src []hal.Digest) {
			copy(data[2:4], src)
			copy(data[4:6], src)
		})
	})
	backend.ShaFold(foldIo, 4, 2)
	appendDigests(foldIo)

	// eval_check
	codeBuf := backend.CopyFromElem("code", randElems(rng, domain*circuit.CodeWidth))
	dataBuf := backend.CopyFromElem("data", randElems(rng, domain*circuit.DataWidth))
	accumBuf := backend.CopyFromElem("accum", randElems(rng, domain*circuit.AccumWidth))
	mixBuf := backend.CopyFromElem("mix", randElems(rng, circuit.MixSize))
	outBuf := backend.CopyFromElem("out", randElems(rng, circuit.OutputSize))
	checkBuf := backend.AllocElem("check", domain*field.ExtSize)
	polyMix := field.ExtRandom(rng)
	check.EvalCheck(checkBuf, codeBuf, dataBuf, accumBuf, mixBuf, outBuf, polyMix, s.Po2, steps)
	appendElems(checkBuf)

	return out
}

func randElems(rng *rand.Rand, n int) []field.Elem {
	out := make([]field.Elem, n)
	for i := range out {
		out[i] = field.Random(rng)
	}
	return out
}

func appendU32(b []byte, v uint32) []byte {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	return append(b, buf[:]...)
}
