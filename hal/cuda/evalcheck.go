// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

//go:build (linux || windows) && cgo && cuda

package cuda

import (
	"github.com/starkoracles/risc0/field"
	"github.com/starkoracles/risc0/hal"
	"github.com/starkoracles/risc0/hal/kernels"
)

// EvalCheck is the SIMT-GPU eval-check implementation.
type EvalCheck struct{}

// NewEvalCheck constructs a SIMT-GPU eval-check evaluator.
func NewEvalCheck() *EvalCheck { return &EvalCheck{} }

var _ hal.EvalCheck = (*EvalCheck)(nil)

func (e *EvalCheck) EvalCheck(
	check, code, data, accum, mix, out hal.Buffer[field.Elem],
	polyMix field.ExtElem,
	po2, steps int,
) {
	rou := field.RouFwd[po2+field.BitLen(hal.InvRate)]
	check.ViewMut(func(checkV []field.Elem) {
		code.View(func(codeV []field.Elem) {
			data.View(func(dataV []field.Elem) {
				accum.View(func(accumV []field.Elem) {
					mix.View(func(mixV []field.Elem) {
						out.View(func(outV []field.Elem) {
							kernels.EvalCheck(checkV, codeV, dataV, accumV, mixV, outV, polyMix, rou, po2, steps)
						})
					})
				})
			})
		})
	})
}
