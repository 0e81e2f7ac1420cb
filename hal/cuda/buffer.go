// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

//go:build (linux || windows) && cgo && cuda

// Package cuda is the SIMT-GPU backend: device buffers live in CUDA global
// memory via the driver/runtime API (spec.md §4.4, "SIMT-GPU dispatcher"),
// modeled on the cudaMalloc/cudaMemcpy cgo shim of
// _examples' gpu/memory.go. As with metal, kernel arithmetic itself
// dispatches through hal/kernels on the host-visible mirror once a view has
// synced it, so results are bit-identical to cpu and metal by construction
// (spec.md §8) rather than depending on a from-scratch .cu kernel per
// catalogue entry.
package cuda

/*
#cgo LDFLAGS: -lcudart
#include <cuda_runtime.h>

static int zkhal_cuda_malloc(void** ptr, size_t size) {
	return cudaMalloc(ptr, size);
}

static int zkhal_cuda_free(void* ptr) {
	return cudaFree(ptr);
}

static int zkhal_cuda_memcpy_htod(void* dst, const void* src, size_t size) {
	return cudaMemcpy(dst, src, size, cudaMemcpyHostToDevice);
}

static int zkhal_cuda_memcpy_dtoh(void* dst, const void* src, size_t size) {
	return cudaMemcpy(dst, src, size, cudaMemcpyDeviceToHost);
}
*/
import "C"

import (
	"fmt"
	"runtime"
	"unsafe"

	"github.com/starkoracles/risc0/hal"
)

// byteCodec converts between a HAL element type and its fixed-width
// little-endian device representation.
type byteCodec[T any] interface {
	width() int
	encode(v T, b []byte)
	decode(b []byte) T
}

// origin is the shared device allocation multiple buffers may reference
// via Slice, mirroring hal/cpu's storage/buffer split.
type origin[T any] struct {
	data   []T
	devPtr unsafe.Pointer
	codec  byteCodec[T]
}

func newOrigin[T any](data []T, codec byteCodec[T]) *origin[T] {
	o := &origin[T]{data: data, codec: codec}
	size := len(data) * codec.width()
	if size > 0 {
		var ptr unsafe.Pointer
		if ret := C.zkhal_cuda_malloc(&ptr, C.size_t(size)); ret != 0 {
			panic(fmt.Errorf("%w: cudaMalloc failed with code %d", hal.ErrDevice, int(ret)))
		}
		o.devPtr = ptr
		runtime.SetFinalizer(o, func(o *origin[T]) {
			if o.devPtr != nil {
				C.zkhal_cuda_free(o.devPtr)
			}
		})
	}
	o.pushDevice()
	return o
}

func (o *origin[T]) bytes() []byte {
	w := o.codec.width()
	buf := make([]byte, len(o.data)*w)
	for i, v := range o.data {
		o.codec.encode(v, buf[i*w:(i+1)*w])
	}
	return buf
}

func (o *origin[T]) pushDevice() {
	if o.devPtr == nil {
		return
	}
	buf := o.bytes()
	if ret := C.zkhal_cuda_memcpy_htod(o.devPtr, unsafe.Pointer(&buf[0]), C.size_t(len(buf))); ret != 0 {
		panic(fmt.Errorf("%w: cudaMemcpy HtoD failed with code %d", hal.ErrDevice, int(ret)))
	}
}

func (o *origin[T]) pullDevice() {
	if o.devPtr == nil {
		return
	}
	w := o.codec.width()
	buf := make([]byte, len(o.data)*w)
	if len(buf) > 0 {
		if ret := C.zkhal_cuda_memcpy_dtoh(unsafe.Pointer(&buf[0]), o.devPtr, C.size_t(len(buf))); ret != 0 {
			panic(fmt.Errorf("%w: cudaMemcpy DtoH failed with code %d", hal.ErrDevice, int(ret)))
		}
	}
	for i := range o.data {
		o.data[i] = o.codec.decode(buf[i*w : (i+1)*w])
	}
}

// buffer is the CUDA Buffer[T] implementation.
type buffer[T any] struct {
	origin *origin[T]
	offset int
	size   int
	name   string
}

func newBuffer[T any](name string, size int, codec byteCodec[T]) *buffer[T] {
	return &buffer[T]{origin: newOrigin(make([]T, size), codec), offset: 0, size: size, name: name}
}

func copyBuffer[T any](name string, data []T, codec byteCodec[T]) *buffer[T] {
	d := append([]T(nil), data...)
	return &buffer[T]{origin: newOrigin(d, codec), offset: 0, size: len(d), name: name}
}

func (b *buffer[T]) Size() int    { return b.size }
func (b *buffer[T]) Name() string { return b.name }

func (b *buffer[T]) Slice(offset, size int) hal.Buffer[T] {
	hal.Assert(offset >= 0 && size >= 0 && offset+size <= b.size, "cuda: slice [%d,%d) out of range for buffer of size %d", offset, offset+size, b.size)
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
