// Copyright 2016-2026 The GPflow Authors. SPDX-License-Identifier: Apache-2.0

package gpgraph

import (
	"iter"

	"github.com/gomlx/exceptions"
)

// Stack of graphs, where the top is the "default graph" used when a function is not given one
// explicitly.
//
// It is owned by the caller and passed around explicitly. It is not safe for concurrent use.
type Stack struct {
	graphs []*Graph
}

// NewStack creates a Stack with the given graphs pushed in order, the last one being the default.
func NewStack(graphs ...*Graph) *Stack {
	s := &Stack{}
	for _, g := range graphs {
		s.Push(g)
	}
	return s
}

// Push makes g the default graph, until it is popped.
//
// Each call to Push should be matched by a call to Pop, usually using defer.
func (s *Stack) Push(g *Graph) {
	if g == nil {
		exceptions.Panicf("cannot push a nil graph to gpgraph.Stack")
	}
	s.graphs = append(s.graphs, g)
}

// Pop removes the current default graph and returns it.
//
// It panics if the stack is empty.
func (s *Stack) Pop() *Graph {
	if len(s.graphs) == 0 {
		exceptions.Panicf("no graphs pushed when calling gpgraph.Stack.Pop")
	}
	g := s.graphs[len(s.graphs)-1]
	s.graphs = s.graphs[:len(s.graphs)-1]
	return g
}

// Default returns the graph on the top of the stack, or nil if the stack is empty (or s is nil).
func (s *Stack) Default() *Graph {
	if s == nil || len(s.graphs) == 0 {
		return nil
	}
	return s.graphs[len(s.graphs)-1]
}

// Resolve returns g if it is not nil, otherwise the default graph.
func (s *Stack) Resolve(g *Graph) *Graph {
	if g != nil {
		return g
	}
	return s.Default()
}

// Len returns the number of graphs in the stack.
func (s *Stack) Len() int {
	if s == nil {
		return 0
	}
	return len(s.graphs)
}

// All iterates over the graphs in the stack, from the default (top) to the bottom.
func (s *Stack) All() iter.Seq[*Graph] {
	return func(yield func(*Graph) bool) {
		if s == nil {
			return
		}
		for ii := len(s.graphs) - 1; ii >= 0; ii-- {
			if !yield(s.graphs[ii]) {
				return
			}
		}
	}
}
