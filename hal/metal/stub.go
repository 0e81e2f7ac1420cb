// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

//go:build !(darwin && cgo)

// Package metal stubs out the Apple-GPU backend on platforms without
// Metal/cgo, so the module still builds everywhere (mirrors the
// gpu/memory_stub.go split pattern: one build tag owns the real
// implementation, its complement owns the stub).
package metal

import (
	"errors"

	"github.com/starkoracles/risc0/field"
	"github.com/starkoracles/risc0/hal"
)

// ErrUnsupported is returned by New on any platform without Metal/cgo.
var ErrUnsupported = errors.New("metal: backend not available on this platform")

// Backend is an unusable stand-in; New always fails before any method
// here would be invoked.
type Backend struct{}

// New always fails off-Darwin or without cgo.
func New() (*Backend, error) {
	return nil, errors.Join(hal.ErrInit, ErrUnsupported)
}

var _ hal.Hal = (*Backend)(nil)

func (b *Backend) AllocElem(name string, size int) hal.Buffer[field.Elem]             { return nil }
func (b *Backend) CopyFromElem(name string, data []field.Elem) hal.Buffer[field.Elem]  { return nil }
func (b *Backend) AllocExtElem(name string, size int) hal.Buffer[field.ExtElem]        { return nil }
func (b *Backend) CopyFromExtElem(name string, data []field.ExtElem) hal.Buffer[field.ExtElem] {
	return nil
}
func (b *Backend) AllocU32(name string, size int) hal.Buffer[uint32]            { return nil }
func (b *Backend) CopyFromU32(name string, data []uint32) hal.Buffer[uint32]    { return nil }
func (b *Backend) AllocDigest(name string, size int) hal.Buffer[hal.Digest]     { return nil }
func (b *Backend) CopyFromDigest(name string, data []hal.Digest) hal.Buffer[hal.Digest] {
	return nil
}

func (b *Backend) EltwiseAddElem(out, a, bb hal.Buffer[field.Elem])    {}
func (b *Backend) EltwiseCopyElem(out, a hal.Buffer[field.Elem])       {}
func (b *Backend) EltwiseSumExtElem(out, in hal.Buffer[field.Elem])    {}
func (b *Backend) BatchBitReverse(io hal.Buffer[field.Elem], count int) {}
func (b *Backend) BatchExpand(out, in hal.Buffer[field.Elem], polyCount int) {}
func (b *Backend) BatchEvaluateNTT(io hal.Buffer[field.Elem], count, expandBits int) {}
func (b *Backend) BatchInterpolateNTT(io hal.Buffer[field.Elem], count int)          {}
func (b *Backend) BatchEvaluateAny(coeffs hal.Buffer[field.Elem], polyCount int, which hal.Buffer[uint32], xs, out hal.Buffer[field.ExtElem]) {
}
func (b *Backend) ZkShift(io hal.Buffer[field.Elem], polyCount int) {}
func (b *Backend) MixPolyCoeffs(out hal.Buffer[field.ExtElem], mixStart, mix field.ExtElem, input hal.Buffer[field.Elem], combos hal.Buffer[uint32], inputSize, count int) {
}
func (b *Backend) FriFold(out, in hal.Buffer[field.Elem], mix field.ExtElem)    {}
func (b *Backend) ShaRows(out hal.Buffer[hal.Digest], matrix hal.Buffer[field.Elem]) {}
func (b *Backend) ShaFold(io hal.Buffer[hal.Digest], inputSize, outputSize int)      {}

// EvalCheck is an unusable stand-in matching the real backend's type.
type EvalCheck struct{}

// NewEvalCheck returns the stand-in; unlike New it does not fail, and its
// EvalCheck leaves every buffer untouched.
func NewEvalCheck() *EvalCheck { return &EvalCheck{} }

var _ hal.EvalCheck = (*EvalCheck)(nil)

func (e *EvalCheck) EvalCheck(check, code, data, accum, mix, out hal.Buffer[field.Elem], polyMix field.ExtElem, po2, steps int) {
}
