// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

// Command zkhal-bench drives one backend through an NTT round trip and the
// eval-check composition kernel at a chosen po2, reporting wall-clock time
// for each stage, modeled on the harness shape of
// original_source/risc0/zkvm/methods/src/bench.rs (spec/iteration count in,
// timing out) adapted to the HAL catalogue instead of a guest program.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/starkoracles/risc0/circuit"
	"github.com/starkoracles/risc0/field"
	"github.com/starkoracles/risc0/hal"
	"github.com/starkoracles/risc0/hal/conformance"
	"github.com/starkoracles/risc0/hal/cpu"
	"github.com/starkoracles/risc0/hal/cuda"
	"github.com/starkoracles/risc0/hal/metal"
)

func main() {
	backendName := flag.String("backend", "cpu", "backend to drive: cpu, cuda, or metal")
	backend2Name := flag.String("backend2", "", "second backend to diff against backend (cpu, cuda, or metal); empty skips the comparison")
	po2 := flag.Int("po2", 10, "log2 of the trace cycle count")
	flag.Parse()

	logger := log.New(os.Stdout, "", 0)

	backend, check, err := newBackend(*backendName)
	if err != nil {
		logger.Fatalf("zkhal-bench: %v", err)
	}

	if *backend2Name != "" {
		diffBackends(logger, *backendName, backend, check, *backend2Name, *po2)
	}

	steps := 1 << uint(*po2)
	domain := steps * hal.InvRate

	rng := rand.New(rand.NewSource(1))
	coeffs := make([]field.Elem, domain)
	for i := 0; i < steps; i++ {
		coeffs[i] = field.Random(rng)
	}

	t0 := time.Now()
	io := backend.CopyFromElem("coeffs", coeffs)
	backend.BatchEvaluateNTT(io, 1, 0)
	backend.BatchInterpolateNTT(io, 1)
	interpolateDur := time.Since(t0)

	var roundTripOK bool
	io.View(func(data []field.Elem) {
		roundTripOK = true
		for i := 0; i < steps; i++ {
			if data[i] != coeffs[i] {
				roundTripOK = false
				break
			}
		}
	})

	codeRow := randElems(rng, domain*circuit.CodeWidth)
	dataRow := randElems(rng, domain*circuit.DataWidth)
	accumRow := randElems(rng, domain*circuit.AccumWidth)
	mix := randElems(rng, circuit.MixSize)
	out := randElems(rng, circuit.OutputSize)

	checkBuf := backend.AllocElem("check", domain*field.ExtSize)
	codeBuf := backend.CopyFromElem("code", codeRow)
	dataBuf := backend.CopyFromElem("data", dataRow)
	accumBuf := backend.CopyFromElem("accum", accumRow)
	mixBuf := backend.CopyFromElem("mix", mix)
	outBuf := backend.CopyFromElem("out", out)
	polyMix := field.ExtRandom(rng)

	t1 := time.Now()
	check.EvalCheck(checkBuf, codeBuf, dataBuf, accumBuf, mixBuf, outBuf, polyMix, *po2, steps)
	evalCheckDur := time.Since(t1)

	logger.Printf("backend=%s po2=%d steps=%d domain=%d", *backendName, *po2, steps, domain)
	logger.Printf("ntt round-trip identity: %v (%s)", roundTripOK, interpolateDur)
	logger.Printf("eval_check: %s", evalCheckDur)
}

func randElems(rng *rand.Rand, n int) []field.Elem {
	out := make([]field.Elem, n)
	for i := range out {
		out[i] = field.Random(rng)
	}
	return out
}

// diffBackends runs hal/conformance's fixed scenario on both backends and
// reports how many bytes of their snapshots disagree, the operator-facing
// counterpart of hal/conformance's byte-for-byte test assertion (spec.md §8).
func diffBackends(logger *log.Logger, name1 string, backend1 hal.Hal, check1 hal.EvalCheck, name2 string, po2 int) {
	backend2, check2, err := newBackend(name2)
	if err != nil {
		logger.Fatalf("zkhal-bench: %v", err)
	}

	scenario := conformance.Scenario{Po2: po2, Seed: conformance.Default.Seed}
	snap1 := conformance.Snapshot(backend1, check1, scenario)
	snap2 := conformance.Snapshot(backend2, check2, scenario)

	diff := diffCount(snap1, snap2)
	logger.Printf("diff %s vs %s: %d/%d bytes differ", name1, name2, diff, len(snap1))
}

func diffCount(a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	count := len(a) - n + len(b) - n
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			count++
		}
	}
	return count
}

func newBackend(name string) (hal.Hal, hal.EvalCheck, error) {
	switch name {
	case "cpu":
		return cpu.New(), cpu.NewEvalCheck(), nil
	case "cuda":
		b, err := cuda.New()
		if err != nil {
			return nil, nil, err
		}
		return b, cuda.NewEvalCheck(), nil
	case "metal":
		b, err := metal.New()
		if err != nil {
			return nil, nil, err
		}
		return b, metal.NewEvalCheck(), nil
	default:
		return nil, nil, fmt.Errorf("%w: unknown backend %q", hal.ErrInit, name)
	}
}
