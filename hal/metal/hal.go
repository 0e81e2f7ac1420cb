// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

//go:build darwin && cgo

package metal

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/starkoracles/risc0/field"
	"github.com/starkoracles/risc0/hal"
	"github.com/starkoracles/risc0/hal/kernels"
)

//go:embed kernels.blob
var kernelManifest []byte

// requiredKernels is the closed catalogue of spec.md §1; New fails with
// hal.ErrInit if the manifest doesn't name every one of them, the same
// contract original_source/risc0/zkp/src/hal/metal.rs applies to its
// compiled Metal library.
var requiredKernels = []string{
	"eltwise_add_elem", "eltwise_copy_elem", "eltwise_sum_extelem",
	"batch_bit_reverse", "batch_expand", "batch_evaluate_ntt",
	"batch_interpolate_ntt", "batch_evaluate_any", "zk_shift",
	"mix_poly_coeffs", "fri_fold", "sha_rows", "sha_fold", "eval_check",
}

// Backend is the Apple-GPU HAL implementation. Device buffers are backed
// by mlx.Array; arithmetic dispatches through hal/kernels once a view has
// synced the host mirror (spec.md §4.4). Independent rows are chunked across
// goroutines using the same S/G/C (or generic threadgroup) launch geometry
// metal.rs computes for its real command-buffer dispatch; see geometry.go.
type Backend struct{}

// New constructs an Apple-GPU backend, validating that the embedded (or
// ZKHAL_METAL_BLOB-pointed) kernel manifest names every catalogue entry.
func New() (*Backend, error) {
	manifest := kernelManifest
	if path := os.Getenv("ZKHAL_METAL_BLOB"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: reading ZKHAL_METAL_BLOB: %v", hal.ErrInit, err)
		}
		manifest = data
	}
	for _, name := range requiredKernels {
		if !kernelListed(manifest, name) {
			return nil, fmt.Errorf("%w: metal kernel manifest missing %q", hal.ErrInit, name)
		}
	}
	return &Backend{}, nil
}

var _ hal.Hal = (*Backend)(nil)

func (b *Backend) AllocElem(name string, size int) hal.Buffer[field.Elem] {
	return newBuffer[field.Elem](name, size, elemCodecT{})
}
func (b *Backend) CopyFromElem(name string, data []field.Elem) hal.Buffer[field.Elem] {
	return copyBuffer(name, data, elemCodecT{})
}
func (b *Backend) AllocExtElem(name string, size int) hal.Buffer[field.ExtElem] {
	return newBuffer[field.ExtElem](name, size, extElemCodecT{})
}
func (b *Backend) CopyFromExtElem(name string, data []field.ExtElem) hal.Buffer[field.ExtElem] {
	return copyBuffer(name, data, extElemCodecT{})
}
func (b *Backend) AllocU32(name string, size int) hal.Buffer[uint32] {
	return newBuffer[uint32](name, size, u32CodecT{})
}
func (b *Backend) CopyFromU32(name string, data []uint32) hal.Buffer[uint32] {
	return copyBuffer(name, data, u32CodecT{})
}
func (b *Backend) AllocDigest(name string, size int) hal.Buffer[hal.Digest] {
	return newBuffer[hal.Digest](name, size, digestCodecT{})
}
func (b *Backend) CopyFromDigest(name string, data []hal.Digest) hal.Buffer[hal.Digest] {
	return copyBuffer(name, data, digestCodecT{})
}

func (b *Backend) EltwiseAddElem(out, a, bb hal.Buffer[field.Elem]) {
	out.ViewMut(func(o []field.Elem) {
		a.View(func(av []field.Elem) {
			bb.View(func(bv []field.Elem) {
				dispatchSimple(len(o), func(lo, hi int) {
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
		rowSize := len(data) / count
		dispatchSimple(count, func(lo, hi int) {
			kernels.BatchBitReverse(data[lo*rowSize:hi*rowSize], hi-lo)
		})
	})
}

func (b *Backend) BatchExpand(out, in hal.Buffer[field.Elem], polyCount int) {
	out.ViewMut(func(o []field.Elem) {
		in.View(func(iv []field.Elem) {
			outRow := len(o) / polyCount
			inRow := len(iv) / polyCount
			dispatchSimple(polyCount, func(lo, hi int) {
				kernels.BatchExpand(o[lo*outRow:hi*outRow], iv[lo*inRow:hi*inRow], hi-lo)
			})
		})
	})
}

func (b *Backend) BatchEvaluateNTT(io hal.Buffer[field.Elem], count, expandBits int) {
	io.ViewMut(func(data []field.Elem) {
		rowSize := len(data) / count
		nBits := field.BitLen(rowSize)
		dispatchTransform(nBits, count, func(lo, hi int) {
			kernels.BatchEvaluateNTT(data[lo*rowSize:hi*rowSize], hi-lo, expandBits)
		})
	})
}

func (b *Backend) BatchInterpolateNTT(io hal.Buffer[field.Elem], count int) {
	io.ViewMut(func(data []field.Elem) {
		rowSize := len(data) / count
		nBits := field.BitLen(rowSize)
		dispatchTransform(nBits, count, func(lo, hi int) {
			kernels.BatchInterpolateNTT(data[lo*rowSize:hi*rowSize], hi-lo)
		})
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
		rowSize := len(data) / polyCount
		dispatchSimple(polyCount, func(lo, hi int) {
			kernels.ZkShift(data[lo*rowSize:hi*rowSize], hi-lo)
		})
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
