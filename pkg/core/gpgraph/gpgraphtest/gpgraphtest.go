// Copyright 2016-2026 The GPflow Authors. SPDX-License-Identifier: Apache-2.0

// Package gpgraphtest holds test utilities for packages that build GPflow graphs.
//
// Tests run on the pure Go backend by default, so they don't need any accelerator or
// plugin installed. It can be overwritten with the GOMLX_BACKEND environment variable.
package gpgraphtest

import (
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/gomlx/gomlx/backends"
	_ "github.com/gomlx/gomlx/backends/simplego"
	"github.com/gomlx/gomlx/pkg/core/graph"
	"github.com/gomlx/gomlx/pkg/core/shapes"
	"github.com/gomlx/gomlx/pkg/core/tensors"
	"github.com/gomlx/gpflow/pkg/core/gpgraph"
	"github.com/stretchr/testify/require"
	"k8s.io/klog/v2"
)

// TestGraphFn should build its own inputs, and return both inputs and outputs.
type TestGraphFn func(g *gpgraph.Graph) (inputs, outputs []*graph.Node)

var (
	backendOnce   sync.Once
	cachedBackend backends.Backend
)

// pureGoBackend is the configuration of the pure Go backend, used by default.
const pureGoBackend = "go"

// BuildTestBackend returns the backend shared by tests: the pure Go backend ("go"), unless
// GOMLX_BACKEND is set.
func BuildTestBackend() backends.Backend {
	backendOnce.Do(func() {
		config := pureGoBackend
		if selected := os.Getenv(backends.ConfigEnvVar); selected != "" {
			config = selected
		}
		var err error
		cachedBackend, err = backends.NewWithConfig(config)
		if err != nil {
			klog.Fatalf("Failed to create backend %q: %+v", config, err)
		}
	})
	return cachedBackend
}

// NewGraph creates an empty gpgraph.Graph on the test backend.
func NewGraph(name string) *gpgraph.Graph {
	return gpgraph.New(BuildTestBackend(), name)
}

// RunTestGraphFn tests a graph building function graphFn by executing it and comparing
// its output(s) to the values in want, reporting back any errors in t.
//
// delta is the margin of value on the difference of output and want values that are acceptable.
// Values of delta <= 0 means only exact equality is accepted.
func RunTestGraphFn(t *testing.T, testName string, graphFn TestGraphFn, want []any, delta float64) {
	backend := BuildTestBackend()
	t.Run(testName, func(t *testing.T) {
		wantTensors := make([]*tensors.Tensor, len(want))
		for ii, value := range want {
			if s, ok := value.(shapes.Shape); ok {
				wantTensors[ii] = tensors.FromShape(s)
			} else {
				wantTensors[ii] = tensors.FromAnyValue(value)
			}
		}

		var numInputs, numOutputs int
		wrapperFn := func(g *graph.Graph) []*graph.Node {
			i, o := graphFn(gpgraph.Wrap(g, nil))
			numInputs, numOutputs = len(i), len(o)
			return append(i, o...)
		}
		exec := graph.MustNewExec(backend, wrapperFn)
		defer exec.Finalize()
		inputsAndOutputs, err := exec.Exec()
		require.NoErrorf(t, err, "%s: failed to execute graph", testName)
		inputs := inputsAndOutputs[:numInputs]
		outputs := inputsAndOutputs[numInputs:]
		for ii, input := range inputs {
			fmt.Printf("\tInput %d: %s\n", ii, input.GoStr())
		}
		for ii, output := range outputs {
			require.NotNilf(t, output, "%s: outputs[%d] is nil", testName, ii)
			fmt.Printf("\tOutput %d: %s\n", ii, output.GoStr())
		}
		require.Equalf(t, len(want), numOutputs, "%s: number of wanted results different from number of outputs", testName)
		for ii, output := range outputs {
			require.Truef(t, wantTensors[ii].InDelta(output, delta), "%s: output #%d doesn't match wanted value %v",
				testName, ii, want[ii])
		}
	})
}
