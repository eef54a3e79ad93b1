// Copyright 2016-2026 The GPflow Authors. SPDX-License-Identifier: Apache-2.0

// Package gpgraph extends a GoMLX computation graph with what GPflow needs from it:
//
//   - Tensors addressable by "name:index", like the outputs of a named operation.
//   - Named collections of variables, in particular the TrainableVariables collection.
//   - A Stack of graphs, to select a "default graph" explicitly instead of through global state.
//
// A Graph owns a context.Context where its variables are created, and the collections refer to
// variables of that context.
package gpgraph

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gomlx/exceptions"
	"github.com/gomlx/gomlx/backends"
	"github.com/gomlx/gomlx/pkg/core/graph"
	"github.com/gomlx/gomlx/pkg/ml/context"
	"github.com/gomlx/gpflow/pkg/support/collections"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// IndexSeparator separates the tensor name from its output index in a tensor address.
const IndexSeparator = ":"

// ErrTensorNotFound is returned (wrapped) by Graph.TensorByAddress when no tensor has the address.
var ErrTensorNotFound = errors.New("tensor not found")

// Graph is a GoMLX graph.Graph with named outputs, a variables context and variable collections.
type Graph struct {
	*graph.Graph

	ctx         *context.Context
	collections map[CollectionKey]*collections.OrderedSet[*context.Variable]
}

// New creates a Graph for the given backend, with a fresh context.Context for its variables.
//
// If name is empty, GoMLX picks a unique one.
func New(backend backends.Backend, name string) *Graph {
	return Wrap(graph.NewGraph(backend, name), nil)
}

// Wrap an existing GoMLX graph. If ctx is nil, a new context.Context is created.
func Wrap(g *graph.Graph, ctx *context.Context) *Graph {
	if ctx == nil {
		ctx = context.New()
	}
	return &Graph{
		Graph:       g,
		ctx:         ctx,
		collections: make(map[CollectionKey]*collections.OrderedSet[*context.Variable]),
	}
}

// Context holding the variables of the graph.
func (g *Graph) Context() *context.Context {
	return g.ctx
}

// String implements fmt.Stringer, identifying the graph by its name and id.
func (g *Graph) String() string {
	if g == nil || g.Graph == nil {
		return "<nil graph>"
	}
	return fmt.Sprintf("Graph(%q, id=%d)", g.Name(), g.GraphId())
}

// TensorAddress returns the address "name:index" of the index-th output named name.
func TensorAddress(name string, index int) string {
	return name + IndexSeparator + strconv.Itoa(index)
}

// ParseTensorAddress splits an address "name:index" into its parts.
func ParseTensorAddress(address string) (name string, index int, err error) {
	sepIdx := strings.LastIndex(address, IndexSeparator)
	if sepIdx <= 0 {
		err = errors.Errorf("invalid tensor address %q: it must be formatted as \"<name>%s<index>\"",
			address, IndexSeparator)
		return
	}
	name = address[:sepIdx]
	index, err = strconv.Atoi(address[sepIdx+1:])
	if err != nil || index < 0 {
		err = errors.Errorf("invalid tensor address %q: index must be a non-negative integer", address)
		return
	}
	return
}

// SetOutputs registers nodes as the outputs of the named operation: nodes[i] becomes addressable
// as "name:i".
//
// Addresses are absolute: the graph's current alias scope (see graph.Graph.PushAliasScope) is
// not prepended to name.
//
// This is a graph building function: it panics if the graph is not being built or if any of the
// addresses is already taken.
func (g *Graph) SetOutputs(name string, nodes ...*graph.Node) {
	if name == "" {
		exceptions.Panicf("Graph.SetOutputs requires a non-empty name")
	}
	for ii, node := range nodes {
		if node.Graph() != g.Graph {
			exceptions.Panicf("Graph.SetOutputs(%q): output #%d belongs to a different graph", name, ii)
		}
		node.WithAlias(absoluteAlias(TensorAddress(name, ii)))
	}
}

// TensorByAddress returns the node registered under address ("name:index"), regardless of the
// current alias scope.
//
// If there is no such tensor it returns an error wrapping ErrTensorNotFound. Malformed addresses
// return a different error.
func (g *Graph) TensorByAddress(address string) (*graph.Node, error) {
	if _, _, err := ParseTensorAddress(address); err != nil {
		return nil, err
	}
	node := g.GetNodeByAlias(absoluteAlias(address))
	if node == nil {
		return nil, errors.Wrapf(ErrTensorNotFound, "no tensor %q in %s", address, g)
	}
	return node, nil
}

// absoluteAlias returns the GoMLX alias for a tensor address, rooted so it doesn't depend on
// the alias scope.
func absoluteAlias(address string) string {
	return graph.AliasScopeSeparator + strings.TrimPrefix(address, graph.AliasScopeSeparator)
}

// NewVariable creates a variable in the graph's context and registers it in the GlobalVariables
// collection, and also in TrainableVariables if trainable is true.
//
// The scopeAndName is split on context.ScopeSeparator: "kern/variance" creates the variable
// "variance" under scope "/kern". Like other variable creation in the context, it panics on error.
func (g *Graph) NewVariable(scopeAndName string, value any, trainable bool) *context.Variable {
	parts := strings.Split(strings.Trim(scopeAndName, context.ScopeSeparator), context.ScopeSeparator)
	ctx := g.ctx
	for _, scope := range parts[:len(parts)-1] {
		ctx = ctx.In(scope)
	}
	v := ctx.VariableWithValue(parts[len(parts)-1], value)
	v.Trainable = trainable
	g.AddToCollection(GlobalVariables, v)
	if trainable {
		g.AddToCollection(TrainableVariables, v)
	}
	klog.V(2).Infof("%s: created variable %s (trainable=%v)", g, v.ScopeAndName(), trainable)
	return v
}
