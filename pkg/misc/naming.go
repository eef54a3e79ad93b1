// Copyright 2016-2026 The GPflow Authors. SPDX-License-Identifier: Apache-2.0

package misc

import (
	"strings"

	"github.com/gomlx/gomlx/pkg/core/graph"
	"github.com/gomlx/gpflow/pkg/core/gpgraph"
	"github.com/pkg/errors"
)

// NameSeparator joins the parts of a tensor name.
const NameSeparator = "/"

// TensorName joins the parts of a name with NameSeparator. It returns "" if no parts are given.
func TensorName(parts ...string) string {
	return strings.Join(parts, NameSeparator)
}

// GetTensorByName returns the tensor with the given name in g (or in the default graph if g is nil).
//
// It looks up "name:0". If it is not found, it returns (nil, nil). If "name:1" also exists the name
// is ambiguous and it returns an error wrapping ErrAmbiguousTensor.
func (e *Env) GetTensorByName(name string, g *gpgraph.Graph) (*graph.Node, error) {
	g, err := e.graph(g)
	if err != nil {
		return nil, err
	}
	tensor, err := lookupTensor(g, name, 0)
	if err != nil || tensor == nil {
		return nil, err
	}
	second, err := lookupTensor(g, name, 1)
	if err != nil {
		return nil, err
	}
	if second != nil {
		return nil, errors.Wrapf(ErrAmbiguousTensor, "tensor %q has multiple indices in %s", name, g)
	}
	return tensor, nil
}

// GetTensorByNameAndIndex returns the tensor at the exact address "name:index" in g (or in the
// default graph if g is nil), or (nil, nil) if there is none.
func (e *Env) GetTensorByNameAndIndex(name string, index int, g *gpgraph.Graph) (*graph.Node, error) {
	g, err := e.graph(g)
	if err != nil {
		return nil, err
	}
	return lookupTensor(g, name, index)
}

// lookupTensor converts the graph's "not found" error to a nil tensor.
func lookupTensor(g *gpgraph.Graph, name string, index int) (*graph.Node, error) {
	node, err := g.TensorByAddress(gpgraph.TensorAddress(name, index))
	if errors.Is(err, gpgraph.ErrTensorNotFound) {
		return nil, nil
	}
	return node, err
}
