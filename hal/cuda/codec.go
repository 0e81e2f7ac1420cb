// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

//go:build (linux || windows) && cgo && cuda

package cuda

import (
	"encoding/binary"

	"github.com/starkoracles/risc0/field"
	"github.com/starkoracles/risc0/hal"
)

type elemCodecT struct{}

func (elemCodecT) width() int { return 4 }
func (elemCodecT) encode(v field.Elem, b []byte) {
	binary.LittleEndian.PutUint32(b, uint32(v))
}
func (elemCodecT) decode(b []byte) field.Elem {
	return field.FromU32(binary.LittleEndian.Uint32(b))
}

type extElemCodecT struct{}

func (extElemCodecT) width() int { return 4 * field.ExtSize }
func (extElemCodecT) encode(v field.ExtElem, b []byte) {
	for i := 0; i < field.ExtSize; i++ {
		binary.LittleEndian.PutUint32(b[i*4:], uint32(v.C0[i]))
	}
}
func (extElemCodecT) decode(b []byte) field.ExtElem {
	var e field.ExtElem
	for i := 0; i < field.ExtSize; i++ {
		e.C0[i] = field.FromU32(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return e
}

type u32CodecT struct{}

func (u32CodecT) width() int                { return 4 }
func (u32CodecT) encode(v uint32, b []byte) { binary.LittleEndian.PutUint32(b, v) }
func (u32CodecT) decode(b []byte) uint32    { return binary.LittleEndian.Uint32(b) }

type digestCodecT struct{}

func (digestCodecT) width() int { return 4 * len(hal.Digest{}) }
func (digestCodecT) encode(v hal.Digest, b []byte) {
	for i := range v {
		binary.LittleEndian.PutUint32(b[i*4:], v[i])
	}
}
func (digestCodecT) decode(b []byte) hal.Digest {
	var d hal.Digest
	for i := range d {
		d[i] = binary.LittleEndian.Uint32(b[i*4:])
	}
	return d
}
