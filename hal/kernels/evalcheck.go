// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

package kernels

import (
	"github.com/starkoracles/risc0/circuit"
	"github.com/starkoracles/risc0/field"
	"github.com/starkoracles/risc0/hal"
)

// EvalCheck evaluates the circuit's constraint polynomial at every domain
// index and writes the combined E4 result into check (spec.md §4.5). All
// three backends share this implementation, which is what makes
// eval_check's cross-backend equivalence (spec.md §8) hold by
// construction instead of by three independent re-derivations of the same
// arithmetic.
func EvalCheck(check, code, data, accum, mix, out []field.Elem, polyMix field.ExtElem, rou field.Elem, po2, steps int) {
	hal.Assert(steps == 1<<uint(po2), "eval_check: steps %d != 2^po2 (po2=%d)", steps, po2)
	domain := steps * hal.InvRate

	hal.Assert(len(check) == domain*field.ExtSize, "eval_check: check size %d != domain %d * EXT_SIZE", len(check), domain)
	hal.Assert(len(code) == domain*circuit.CodeWidth, "eval_check: code size %d != domain %d * CodeWidth", len(code), domain)
	hal.Assert(len(data) == domain*circuit.DataWidth, "eval_check: data size %d != domain %d * DataWidth", len(data), domain)
	hal.Assert(len(accum) == domain*circuit.AccumWidth, "eval_check: accum size %d != domain %d * AccumWidth", len(accum), domain)
	hal.Assert(len(mix) == circuit.MixSize, "eval_check: mix size %d != MixSize %d", len(mix), circuit.MixSize)
	hal.Assert(len(out) == circuit.OutputSize, "eval_check: out size %d != OutputSize %d", len(out), circuit.OutputSize)

	position := field.One()
	for i := 0; i < domain; i++ {
		codeRow := code[i*circuit.CodeWidth : (i+1)*circuit.CodeWidth]
		dataRow := data[i*circuit.DataWidth : (i+1)*circuit.DataWidth]
		accumRow := accum[i*circuit.AccumWidth : (i+1)*circuit.AccumWidth]

		terms := circuit.ConstraintTerms(circuit.Default, codeRow, dataRow, accumRow, mix, out)
		terms[0] = terms[0].Mul(position)

		acc := field.ExtZero()
		for k := len(terms) - 1; k >= 0; k-- {
			acc = acc.Mul(polyMix).Add(field.ExtFromBase(terms[k]))
		}
		putExt(check, i*field.ExtSize, acc)

		position = position.Mul(rou)
	}
}
