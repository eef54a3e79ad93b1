// Copyright 2016-2026 The GPflow Authors. SPDX-License-Identifier: Apache-2.0

package misc

import (
	"github.com/gomlx/gomlx/pkg/ml/context"
	"github.com/gomlx/gpflow/pkg/core/gpgraph"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// AddToTrainables adds v to the trainable variables of g (or of the default graph if g is nil),
// if it is not there yet. It also marks v as trainable.
func (e *Env) AddToTrainables(v *context.Variable, g *gpgraph.Graph) error {
	if v == nil {
		return errors.Wrap(ErrNilVariable, "AddToTrainables")
	}
	g, err := e.graph(g)
	if err != nil {
		return err
	}
	g.AddToCollection(gpgraph.TrainableVariables, v)
	v.Trainable = true
	return nil
}

// RemoveFromTrainables removes v from the trainable variables of g (or of the default graph if g is nil).
//
// Unlike AddToTrainables, removing a variable that is not there is an error: an *Error whose cause is
// ErrNotTrainable.
//
// v is marked as not trainable only if no other graph of the Env (g and the graphs in Env.Graphs)
// still lists it as trainable. Graphs the Env doesn't know about are not consulted.
func (e *Env) RemoveFromTrainables(v *context.Variable, g *gpgraph.Graph) error {
	if v == nil {
		return errors.Wrap(ErrNilVariable, "RemoveFromTrainables")
	}
	g, err := e.graph(g)
	if err != nil {
		return err
	}
	trainables := g.CollectionRef(gpgraph.TrainableVariables)
	if !trainables.Has(v) {
		return newError(ErrNotTrainable, "variable %s not found in the trainables of %s", v, g)
	}
	trainables.Remove(v)
	v.Trainable = e.trainableElsewhere(v)
	klog.V(2).Infof("%s: variable %s removed from trainables (trainable=%v)", g, v.ScopeAndName(), v.Trainable)
	return nil
}

// trainableElsewhere returns whether v is in the trainables of any graph in the Env's stack.
func (e *Env) trainableElsewhere(v *context.Variable) bool {
	for other := range e.graphs.All() {
		if other.CollectionRef(gpgraph.TrainableVariables).Has(v) {
			return true
		}
	}
	return false
}
