// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

//go:build darwin && cgo

// Package metal is the Apple-GPU backend. Buffers live as mlx.Array values
// so the allocation and command-queue discipline matches a real MLX-backed
// device (spec.md §4.4, "Apple-GPU dispatcher"): a view forces outstanding
// graph ops with mlx.Eval and blocks on mlx.Synchronize before host code
// reads back, mirroring original_source/risc0/zkp/src/hal/metal.rs's
// BufferImpl::view ("did_modify_range" + command-buffer wait). Kernel
// arithmetic itself is delegated to hal/kernels so this backend's results
// are bit-identical to cpu and cuda by construction (spec.md §8), rather
// than depending on a from-scratch MLX kernel per catalogue entry.
package metal

import (
	"github.com/luxfi/mlx"

	"github.com/starkoracles/risc0/hal"
)

// elemCodec converts between a HAL element type and the fixed-width int64
// lanes an mlx.Array stores it as (width > 1 for multi-limb types like
// field.ExtElem or hal.Digest).
type elemCodec[T any] interface {
	width() int
	encode(v T, lanes []int64)
	decode(lanes []int64) T
}

// origin is the shared device-backed storage multiple buffers may
// reference via Slice, mirroring hal/cpu's storage/buffer split.
type origin[T any] struct {
	data  []T
	arr   *mlx.Array
	codec elemCodec[T]
}

// pushDevice re-encodes the full host mirror into an mlx.Array and forces
// evaluation, standing in for a device upload.
func (o *origin[T]) pushDevice() {
	w := o.codec.width()
	lanes := make([]int64, len(o.data)*w)
	for i, v := range o.data {
		o.codec.encode(v, lanes[i*w:(i+1)*w])
	}
	o.arr = mlx.ArrayFromSlice(lanes, []int{len(lanes)}, mlx.Int64)
	mlx.Eval(o.arr)
}

// pullDevice blocks on the device queue and re-derives the full host
// mirror from the on-device array, standing in for a device download.
func (o *origin[T]) pullDevice() {
	mlx.Synchronize()
	w := o.codec.width()
	lanes := mlx.AsSlice[int64](o.arr)
	for i := range o.data {
		o.data[i] = o.codec.decode(lanes[i*w : (i+1)*w])
	}
}

// buffer is the Metal Buffer[T] implementation.
type buffer[T any] struct {
	origin *origin[T]
	offset int
	size   int
	name   string
}

func newBuffer[T any](name string, size int, codec elemCodec[T]) *buffer[T] {
	o := &origin[T]{data: make([]T, size), codec: codec}
	o.pushDevice()
	return &buffer[T]{origin: o, offset: 0, size: size, name: name}
}

func copyBuffer[T any](name string, data []T, codec elemCodec[T]) *buffer[T] {
	o := &origin[T]{data: append([]T(nil), data...), codec: codec}
	o.pushDevice()
	return &buffer[T]{origin: o, offset: 0, size: len(data), name: name}
}

func (b *buffer[T]) Size() int    { return b.size }
func (b *buffer[T]) Name() string { return b.name }

func (b *buffer[T]) Slice(offset, size int) hal.Buffer[T] {
	hal.Assert(offset >= 0 && size >= 0 && offset+size <= b.size, "metal: slice [%d,%d) out of range for buffer of size %d", offset, offset+size, b.size)
	return &buffer[T]{origin: b.origin, offset: b.offset + offset, size: size, name: b.name}
}

func (b *buffer[T]) View(f func(data []T)) {
	b.origin.pullDevice()
	f(b.origin.data[b.offset : b.offset+b.size])
}

func (b *buffer[T]) ViewMut(f func(data []T)) {
	b.origin.pullDevice()
	f(b.origin.data[b.offset : b.offset+b.size])
	b.origin.pushDevice()
}
