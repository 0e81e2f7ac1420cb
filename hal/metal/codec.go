// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

//go:build darwin && cgo

package metal

import (
	"github.com/starkoracles/risc0/field"
	"github.com/starkoracles/risc0/hal"
)

type elemCodecT struct{}

func (elemCodecT) width() int { return 1 }
func (elemCodecT) encode(v field.Elem, lanes []int64) {
	lanes[0] = int64(field.FromU32(uint32(v)))
}
func (elemCodecT) decode(lanes []int64) field.Elem { return field.FromU32(uint32(lanes[0])) }

type extElemCodecT struct{}

func (extElemCodecT) width() int { return field.ExtSize }
func (extElemCodecT) encode(v field.ExtElem, lanes []int64) {
	for i := 0; i < field.ExtSize; i++ {
		lanes[i] = int64(v.C0[i])
	}
}
func (extElemCodecT) decode(lanes []int64) field.ExtElem {
	var e field.ExtElem
	for i := 0; i < field.ExtSize; i++ {
		e.C0[i] = field.FromU32(uint32(lanes[i]))
	}
	return e
}

type u32CodecT struct{}

func (u32CodecT) width() int                    { return 1 }
func (u32CodecT) encode(v uint32, lanes []int64) { lanes[0] = int64(v) }
func (u32CodecT) decode(lanes []int64) uint32    { return uint32(lanes[0]) }

type digestCodecT struct{}

func (digestCodecT) width() int { return len(hal.Digest{}) }
func (digestCodecT) encode(v hal.Digest, lanes []int64) {
	for i := range v {
		lanes[i] = int64(v[i])
	}
}
func (digestCodecT) decode(lanes []int64) hal.Digest {
	var d hal.Digest
	for i := range d {
		d[i] = uint32(lanes[i])
	}
	return d
}
