// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

package cpu

import (
	"runtime"
	"sync"

	"github.com/starkoracles/risc0/field"
	"github.com/starkoracles/risc0/hal"
	"github.com/starkoracles/risc0/hal/kernels"
)

// Backend is the host-CPU HAL implementation. It owns no device handle;
// construction is eager but trivial (spec.md §3, "Backend context").
type Backend struct{}

// New constructs a host-CPU backend.
func New() *Backend { return &Backend{} }

var _ hal.Hal = (*Backend)(nil)

func (b *Backend) AllocElem(name string, size int) hal.Buffer[field.Elem] { return newBuffer[field.Elem](name, size) }
func (b *Backend) CopyFromElem(name string, data []field.Elem) hal.Buffer[field.Elem] {
	return copyBuffer(name, data)
}
func (b *Backend) AllocExtElem(name string, size int) hal.Buffer[field.ExtElem] {
	return newBuffer[field.ExtElem](name, size)
}
func (b *Backend) CopyFromExtElem(name string, data []field.ExtElem) hal.Buffer[field.ExtElem] {
	return copyBuffer(name, data)
}
func (b *Backend) AllocU32(name string, size int) hal.Buffer[uint32] { return newBuffer[uint32](name, size) }
func (b *Backend) CopyFromU32(name string, data []uint32) hal.Buffer[uint32] {
	return copyBuffer(name, data)
}
func (b *Backend) AllocDigest(name string, size int) hal.Buffer[hal.Digest] {
	return newBuffer[hal.Digest](name, size)
}
func (b *Backend) CopyFromDigest(name string, data []hal.Digest) hal.Buffer[hal.Digest] {
	return copyBuffer(name, data)
}

func (b *Backend) EltwiseAddElem(out, a, bb hal.Buffer[field.Elem]) {
	out.ViewMut(func(o []field.Elem) {
		a.View(func(av []field.Elem) {
			bb.View(func(bv []field.Elem) {
				parallelRows(len(o), func(lo, hi int) {
					kernels.EltwiseAddElem(o[lo:hi], av[lo:hi], bv[lo:hi])
				})
			})
		})
	})
}

func (b *Backend) EltwiseCopyElem(out, a hal.Buffer[field.Elem]) {
	out.ViewMut(func(o []field.Elem) {
		a.View(func(av []field.Elem) {
			kernels.EltwiseCopyElem(o, av)
		})
	})
}

func (b *Backend) EltwiseSumExtElem(out, in hal.Buffer[field.Elem]) {
	out.ViewMut(func(o []field.Elem) {
		in.View(func(iv []field.Elem) {
			kernels.EltwiseSumExtElem(o, iv)
		})
	})
}

func (b *Backend) BatchBitReverse(io hal.Buffer[field.Elem], count int) {
	io.ViewMut(func(data []field.Elem) {
		kernels.BatchBitReverse(data, count)
	})
}

func (b *Backend) BatchExpand(out, in hal.Buffer[field.Elem], polyCount int) {
	out.ViewMut(func(o []field.Elem) {
		in.View(func(iv []field.Elem) {
			kernels.BatchExpand(o, iv, polyCount)
		})
	})
}

func (b *Backend) BatchEvaluateNTT(io hal.Buffer[field.Elem], count, expandBits int) {
	io.ViewMut(func(data []field.Elem) {
		kernels.BatchEvaluateNTT(data, count, expandBits)
	})
}

func (b *Backend) BatchInterpolateNTT(io hal.Buffer[field.Elem], count int) {
	io.ViewMut(func(data []field.Elem) {
		kernels.BatchInterpolateNTT(data, count)
	})
}

func (b *Backend) BatchEvaluateAny(coeffs hal.Buffer[field.Elem], polyCount int, which hal.Buffer[uint32], xs, out hal.Buffer[field.ExtElem]) {
	out.ViewMut(func(o []field.ExtElem) {
		coeffs.View(func(cv []field.Elem) {
			which.View(func(wv []uint32) {
				xs.View(func(xv []field.ExtElem) {
					kernels.BatchEvaluateAny(cv, polyCount, wv, xv, o)
				})
			})
		})
	})
}

func (b *Backend) ZkShift(io hal.Buffer[field.Elem], polyCount int) {
	io.ViewMut(func(data []field.Elem) {
		kernels.ZkShift(data, polyCount)
	})
}

func (b *Backend) MixPolyCoeffs(out hal.Buffer[field.ExtElem], mixStart, mix field.ExtElem, input hal.Buffer[field.Elem], combos hal.Buffer[uint32], inputSize, count int) {
	out.ViewMut(func(o []field.ExtElem) {
		input.View(func(iv []field.Elem) {
			combos.View(func(cv []uint32) {
				kernels.MixPolyCoeffs(o, mixStart, mix, iv, cv, inputSize, count)
			})
		})
	})
}

func (b *Backend) FriFold(out, in hal.Buffer[field.Elem], mix field.ExtElem) {
	out.ViewMut(func(o []field.Elem) {
		in.View(func(iv []field.Elem) {
			kernels.FriFold(o, iv, mix)
		})
	})
}

func (b *Backend) ShaRows(out hal.Buffer[hal.Digest], matrix hal.Buffer[field.Elem]) {
	out.ViewMut(func(o []hal.Digest) {
		matrix.View(func(mv []field.Elem) {
			kernels.ShaRows(o, mv)
		})
	})
}

func (b *Backend) ShaFold(io hal.Buffer[hal.Digest], inputSize, outputSize int) {
	io.ViewMut(func(data []hal.Digest) {
		kernels.ShaFold(data, inputSize, outputSize)
	})
}

// parallelRows shards [0,n) across runtime.NumCPU() goroutines, each
// calling f with its half-open row range. Used for the purely elementwise
// kernels where per-index work is independent (spec.md §5: a kernel's
// externally observable effect is as if executed in issue order, which
// holds here since no row's output depends on another's).
func parallelRows(n int, f func(lo, hi int)) {
	workers := runtime.NumCPU()
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		f(0, n)
		return
	}
	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for lo := 0; lo < n; lo += chunk {
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			f(lo, hi)
		}(lo, hi)
	}
	wg.Wait()
}
