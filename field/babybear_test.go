// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

package field

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestElemAddSubInverse(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 64; i++ {
		a := Random(rng)
		b := Random(rng)
		require.Equal(t, a, a.Add(b).Sub(b), "add then sub round-trips")
	}
}

func TestElemMulInverse(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 64; i++ {
		a := Random(rng)
		if a == 0 {
			continue
		}
		inv, err := a.Inv()
		require.NoError(t, err)
		require.Equal(t, One(), a.Mul(inv))
	}
}

func TestElemInvZero(t *testing.T) {
	_, err := Zero().Inv()
	require.ErrorIs(t, err, ErrNumericUndefined)
}

func TestElemPow(t *testing.T) {
	a := FromU32(7)
	require.Equal(t, One(), a.Pow(0))
	require.Equal(t, a, a.Pow(1))
	require.Equal(t, a.Mul(a).Mul(a), a.Pow(3))
}

func TestRouTables(t *testing.T) {
	for k := 0; k <= MaxRouPo2; k++ {
		require.Equal(t, One(), RouFwd[k].Mul(RouRev[k]), "RouFwd[%d]*RouRev[%d]=1", k, k)
		require.Equal(t, One(), RouFwd[k].Pow(uint64(1)<<uint(k)), "RouFwd[%d]^(2^%d)=1", k, k)
	}
}

func TestExtAddSub(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 32; i++ {
		a := ExtRandom(rng)
		b := ExtRandom(rng)
		require.Equal(t, a, a.Add(b).Sub(b))
	}
}

func TestExtMulInverse(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	for i := 0; i < 32; i++ {
		a := ExtRandom(rng)
		if a == ExtZero() {
			continue
		}
		inv, err := a.Inv()
		require.NoError(t, err)
		require.Equal(t, ExtOne(), a.Mul(inv))
	}
}

func TestExtFromBaseIsEmbedding(t *testing.T) {
	a := FromU32(9)
	b := FromU32(13)
	require.Equal(t, ExtFromBase(a.Add(b)), ExtFromBase(a).Add(ExtFromBase(b)))
	require.Equal(t, ExtFromBase(a.Mul(b)), ExtFromBase(a).Mul(ExtFromBase(b)))
}
