// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

// Package cpu is the host-CPU backend: straight-line evaluation over plain
// heap allocations, with eltwise_add_elem sharded across goroutines and
// every other kernel run on the calling goroutine. Synchronization is a no-op (spec.md §4.4) since there is no
// device to flush.
package cpu

import (
	"github.com/starkoracles/risc0/hal"
)

// storage is the shared backing array multiple buffers may reference via
// Slice (spec.md §3, "slicing never extends beyond the parent").
type storage[T any] struct {
	data []T
}

// buffer is the host-CPU Buffer[T] implementation.
type buffer[T any] struct {
	origin *storage[T]
	offset int
	size   int
	name   string
}

func newBuffer[T any](name string, size int) *buffer[T] {
	return &buffer[T]{
		origin: &storage[T]{data: make([]T, size)},
		offset: 0,
		size:   size,
		name:   name,
	}
}

func copyBuffer[T any](name string, data []T) *buffer[T] {
	b := newBuffer[T](name, len(data))
	copy(b.origin.data, data)
	return b
}

func (b *buffer[T]) Size() int    { return b.size }
func (b *buffer[T]) Name() string { return b.name }

func (b *buffer[T]) Slice(offset, size int) hal.Buffer[T] {
	hal.Assert(offset >= 0 && size >= 0 && offset+size <= b.size, "cpu: slice [%d,%d) out of range for buffer of size %d", offset, offset+size, b.size)
	return &buffer[T]{
		origin: b.origin,
		offset: b.offset + offset,
		size:   size,
		name:   b.name,
	}
}

func (b *buffer[T]) View(f func(data []T)) {
	f(b.origin.data[b.offset : b.offset+b.size])
}

func (b *buffer[T]) ViewMut(f func(data []T)) {
	f(b.origin.data[b.offset : b.offset+b.size])
}
