// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

//go:build (linux || windows) && cgo && cuda

package cuda

import "bytes"

// kernelListed reports whether name appears as its own newline-delimited
// entry in manifest. The embedded kernels.blob is a flat name list rather
// than a compiled .cubin, since no CUDA toolchain is available to produce
// one; New still enforces that every catalogue entry is present before the
// backend is usable (spec.md §7, ErrInit).
func kernelListed(manifest []byte, name string) bool {
	for _, line := range bytes.Split(manifest, []byte("\n")) {
		if string(bytes.TrimSpace(line)) == name {
			return true
		}
	}
	return false
}
