// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

//go:build darwin && cgo

package metal

import "sync"

// simpleLaunchParams mirrors the generic dispatch fallback of
// original_source/risc0/zkp/src/hal/metal.rs's Kernel::dispatch (the
// opts==None branch): a threadgroup sized to the pipeline's thread
// execution width, with enough threadgroups to cover count threads. 32 is
// the execution width Metal compute pipelines report in practice.
func simpleLaunchParams(count int) (block, grid int) {
	const width = 32
	if count <= 0 {
		return 0, 0
	}
	block = width
	if block > count {
		block = count
	}
	grid = (count + width - 1) / width
	return block, grid
}

// computeLaunchParams mirrors metal.rs's compute_launch_params: for a
// transform over rows of 2^nBits elements, currently at a butterfly stage of
// width 2^sBits, it packs S (subgroup position), G (group-of-subgroups) and
// C (row count) onto a (grid, block) pair, threading S first, then G, and
// never threading C. This backend has no on-device queue, so it reuses the
// same S/G/C split to size how many goroutines share rowCount independent
// rows instead of how many hardware threadgroups share a butterfly stage.
func computeLaunchParams(nBits, sBits, rowCount int) (groups int) {
	sSize := 1 << uint(sBits-1)
	gSize := 1 << uint(nBits-sBits)

	threads := 128
	blockW := threads
	if blockW > sSize {
		blockW = sSize
	}
	threads /= blockW
	blockH := threads
	if blockH > gSize {
		blockH = gSize
	}

	grids := 32
	gridW := grids
	if gridW > sSize/blockW {
		gridW = sSize / blockW
	}
	grids /= gridW
	gridH := grids
	if gridH > gSize/blockH {
		gridH = gSize / blockH
	}
	grids /= gridH
	gridD := grids
	if gridD > rowCount {
		gridD = rowCount
	}

	groups = gridW * gridH * gridD
	if groups < 1 {
		groups = 1
	}
	return groups
}

// dispatchSimple shards [0,n) across the grid threadgroups
// simpleLaunchParams(n) would hand a generic elementwise kernel, one
// goroutine per threadgroup.
func dispatchSimple(n int, f func(lo, hi int)) {
	_, grid := simpleLaunchParams(n)
	if grid <= 1 {
		f(0, n)
		return
	}
	chunk := (n + grid - 1) / grid
	runChunks(n, chunk, f)
}

// dispatchTransform shards rowCount independent rows of an nBits-wide
// transform across the groups computeLaunchParams(nBits, nBits, rowCount)
// would pack onto the grid for a full (all-stage) pass.
func dispatchTransform(nBits, rowCount int, f func(loRow, hiRow int)) {
	if nBits < 1 {
		f(0, rowCount)
		return
	}
	groups := computeLaunchParams(nBits, nBits, rowCount)
	if groups <= 1 {
		f(0, rowCount)
		return
	}
	chunk := (rowCount + groups - 1) / groups
	runChunks(rowCount, chunk, f)
}

func runChunks(n, chunk int, f func(lo, hi int)) {
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
