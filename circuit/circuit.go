// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

// Package circuit provides a concrete, if simplified, circuit descriptor
// and constraint-polynomial evaluation for the eval-check composition
// kernel (spec.md §4.5). The HAL treats a circuit descriptor as an
// external collaborator; this package is the minimal one needed to
// exercise eval-check end to end, modeled on the tap-set/constants shape
// of original_source/risc0/circuit/rv32im/src/lib.rs.
package circuit

import "github.com/starkoracles/risc0/field"

// Register group widths, analogous to the original's Code/Data/Accum tap
// groupings (the instruction-decode, data-bus and accumulator register
// files of a RISC-V-style row).
const (
	CodeWidth  = 4
	DataWidth  = 8
	AccumWidth = 4
)

// MixSize and OutputSize are the circuit descriptor's fixed constants
// (spec.md §3, "Circuit descriptor").
const (
	MixSize    = 8
	OutputSize = 4
)

// NumConstraints is the number of independent constraint terms combined
// via poly_mix into the eval-check's single E4 result per domain index.
const NumConstraints = 8

// Taps groups the three register families together; a real circuit would
// also carry per-tap back-distances (how many cycles into the past a
// constraint reads), omitted here since this circuit only ever reads the
// current row.
type Taps struct {
	CodeWidth, DataWidth, AccumWidth int
}

// Default is the fixed tap set this circuit always uses — the catalogue
// of spec.md §1 is closed, and so is this circuit's shape.
var Default = Taps{CodeWidth: CodeWidth, DataWidth: DataWidth, AccumWidth: AccumWidth}

// ConstraintTerms evaluates NumConstraints independent arithmetic
// constraints over one row's tap values, folding in the protocol's mix
// and out constants. Each term is a base-field element; EvalCheck combines
// them into a single E4 value via Horner's method in poly_mix.
func ConstraintTerms(taps Taps, code, data, accum, mix, out []field.Elem) [NumConstraints]field.Elem {
	var terms [NumConstraints]field.Elem
	for k := 0; k < NumConstraints; k++ {
		c := code[k%taps.CodeWidth]
		d := data[k%taps.DataWidth]
		a := accum[k%taps.AccumWidth]
		m := mix[k%len(mix)]
		o := out[k%len(out)]

		// data - code^2 is a toy ALU-consistency check; + accum*mix folds
		// in the accumulator under the protocol's per-query randomness;
		// - out closes the loop against the claimed public output.
		term := d.Sub(c.Mul(c)).Add(a.Mul(m)).Sub(o)
		terms[k] = term
	}
	return terms
}
