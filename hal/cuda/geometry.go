// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

//go:build (linux || windows) && cgo && cuda

package cuda

import "sync"

// computeSimpleParams mirrors the SIMT-GPU launch geometry
// original_source/risc0/circuit/rv32im/src/cuda.rs drives its eval_check
// dispatch with (`self.hal.compute_simple_params(domain)`): a fixed
// 256-thread block and a grid sized to cover count total work items,
// ceil(count/256). This backend has no real device queue, so it borrows the
// same (block, grid) pair to decide how many goroutines share count
// independent units of work.
func computeSimpleParams(count int) (block, grid int) {
	const blockSize = 256
	if count <= 0 {
		return 0, 0
	}
	block = blockSize
	if block > count {
		block = count
	}
	grid = (count + blockSize - 1) / blockSize
	return block, grid
}

// dispatchSimple shards [0,n) into the grid-many chunks computeSimpleParams
// would hand to separate thread blocks, running each chunk on its own
// goroutine instead of a hardware block.
func dispatchSimple(n int, f func(lo, hi int)) {
	_, grid := computeSimpleParams(n)
	if grid <= 1 {
		f(0, n)
		return
	}
	chunk := (n + grid - 1) / grid
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

// dispatchRows is dispatchSimple specialized to count independent rows of a
// flat buffer rather than individual elements, for the row-oriented kernels
// (batch_bit_reverse, batch_expand, batch_evaluate_ntt,
// batch_interpolate_ntt, zk_shift) cuda.rs launches once per row-batch.
func dispatchRows(count int, f func(loRow, hiRow int)) {
	dispatchSimple(count, f)
}
