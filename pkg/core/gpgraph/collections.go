// Copyright 2016-2026 The GPflow Authors. SPDX-License-Identifier: Apache-2.0

package gpgraph

import (
	"github.com/gomlx/gomlx/pkg/ml/context"
	"github.com/gomlx/gpflow/pkg/support/collections"
	"k8s.io/klog/v2"
)

// CollectionKey names a collection of variables in a Graph.
type CollectionKey string

const (
	// GlobalVariables holds every variable created with Graph.NewVariable.
	GlobalVariables CollectionKey = "variables"

	// TrainableVariables holds the variables an optimizer is allowed to change.
	TrainableVariables CollectionKey = "trainable_variables"
)

// Collection returns a snapshot of the variables in the collection, in insertion order.
// It returns nil for a collection that was never used.
func (g *Graph) Collection(key CollectionKey) []*context.Variable {
	set, found := g.collections[key]
	if !found {
		return nil
	}
	return set.Slice()
}

// CollectionRef returns the live collection, creating an empty one if it doesn't exist yet.
// Changes to it are seen by all users of the graph.
func (g *Graph) CollectionRef(key CollectionKey) *collections.OrderedSet[*context.Variable] {
	set, found := g.collections[key]
	if !found {
		set = collections.Make[*context.Variable]()
		g.collections[key] = set
	}
	return set
}

// AddToCollection appends the variables not yet in the collection.
func (g *Graph) AddToCollection(key CollectionKey, variables ...*context.Variable) {
	count := g.CollectionRef(key).Insert(variables...)
	if count > 0 && klog.V(2).Enabled() {
		klog.Infof("%s: added %d variable(s) to collection %q", g, count, key)
	}
}

// CollectionKeys returns the keys of the collections in use.
func (g *Graph) CollectionKeys() []CollectionKey {
	keys := make([]CollectionKey, 0, len(g.collections))
	for key := range g.collections {
		keys = append(keys, key)
	}
	return keys
}
