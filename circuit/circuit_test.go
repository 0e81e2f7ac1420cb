// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

package circuit

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/starkoracles/risc0/field"
)

func row(n int, start uint32) []field.Elem {
	out := make([]field.Elem, n)
	for i := range out {
		out[i] = field.FromU32(start + uint32(i))
	}
	return out
}

func TestConstraintTermsDeterministic(t *testing.T) {
	code := row(CodeWidth, 1)
	data := row(DataWidth, 1)
	accum := row(AccumWidth, 1)
	mix := row(MixSize, 1)
	out := row(OutputSize, 1)

	a := ConstraintTerms(Default, code, data, accum, mix, out)
	b := ConstraintTerms(Default, code, data, accum, mix, out)
	require.Equal(t, a, b)
}

func TestConstraintTermsReactsToData(t *testing.T) {
	code := row(CodeWidth, 1)
	data := row(DataWidth, 1)
	accum := row(AccumWidth, 1)
	mix := row(MixSize, 1)
	out := row(OutputSize, 1)

	base := ConstraintTerms(Default, code, data, accum, mix, out)

	data2 := row(DataWidth, 1)
	data2[0] = data2[0].Add(field.One())
	changed := ConstraintTerms(Default, code, data2, accum, mix, out)

	require.NotEqual(t, base, changed)
}
