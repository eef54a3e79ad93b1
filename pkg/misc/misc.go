// Copyright 2016-2026 The GPflow Authors. SPDX-License-Identifier: Apache-2.0

// Package misc holds GPflow's small helpers around the computation graph:
//
//   - Tensor naming and lookup by name: TensorName, Env.GetTensorByName.
//   - Classification of parameter values: IsNumber, IsNDArray, IsTensor, IsValidParamValue.
//   - Membership in the trainable variables collection: Env.AddToTrainables, Env.RemoveFromTrainables.
//   - DType normalization to the configured precision: Env.NormalizeDType.
//   - Packing of vectors into lower-triangular matrices: VecToTri.
//
// Functions that depend on the configured precision or on a "default graph" are methods of Env,
// which carries both explicitly. Everywhere a *gpgraph.Graph is accepted, nil selects the
// default graph of the Env.
package misc

import (
	"github.com/gomlx/gpflow/pkg/core/gpgraph"
	"github.com/gomlx/gpflow/pkg/settings"
	"github.com/pkg/errors"
)

// Env carries the settings and the default graph used by the helpers.
type Env struct {
	settings settings.Settings
	graphs   *gpgraph.Stack
}

// NewEnv creates an Env with the given settings and stack of graphs, whose top is the default graph.
//
// graphs may be nil, in which case every call must be given a graph explicitly.
func NewEnv(s settings.Settings, graphs *gpgraph.Stack) *Env {
	return &Env{settings: s, graphs: graphs}
}

// DefaultEnv creates an Env with the process-wide settings (see settings.Get).
func DefaultEnv(graphs *gpgraph.Stack) *Env {
	return NewEnv(settings.Get(), graphs)
}

// Settings used by the Env.
func (e *Env) Settings() settings.Settings {
	return e.settings
}

// Graphs returns the stack of graphs from which the default graph is taken. It may be nil.
func (e *Env) Graphs() *gpgraph.Stack {
	return e.graphs
}

// graph returns g, or the default graph if g is nil.
func (e *Env) graph(g *gpgraph.Graph) (*gpgraph.Graph, error) {
	g = e.graphs.Resolve(g)
	if g == nil {
		return nil, errors.WithStack(ErrNoGraph)
	}
	return g, nil
}
