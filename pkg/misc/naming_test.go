// Copyright 2016-2026 The GPflow Authors. SPDX-License-Identifier: Apache-2.0

package misc

import (
	"testing"

	"github.com/gomlx/gomlx/pkg/core/graph"
	"github.com/gomlx/gpflow/pkg/core/gpgraph/gpgraphtest"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTensorName(t *testing.T) {
	assert.Equal(t, "a/b/c", TensorName("a", "b", "c"))
	assert.Equal(t, "a", TensorName("a"))
	assert.Equal(t, "", TensorName())
}

func TestGetTensorByName(t *testing.T) {
	env, g := newTestEnv(t)
	foo := graph.Const(g.Graph, float32(1))
	g.SetOutputs("foo", foo)

	// Default graph.
	node, err := env.GetTensorByName("foo", nil)
	require.NoError(t, err)
	assert.True(t, node == foo)

	node, err = env.GetTensorByName("bar", nil)
	require.NoError(t, err)
	assert.Nil(t, node)

	// Explicit index.
	node, err = env.GetTensorByNameAndIndex("foo", 0, nil)
	require.NoError(t, err)
	assert.True(t, node == foo)
	node, err = env.GetTensorByNameAndIndex("foo", 1, nil)
	require.NoError(t, err)
	assert.Nil(t, node)
}

func TestGetTensorByNameAmbiguous(t *testing.T) {
	env, g := newTestEnv(t)
	first := graph.Const(g.Graph, float32(1))
	second := graph.Const(g.Graph, float32(2))
	g.SetOutputs("foo", first, second)

	_, err := env.GetTensorByName("foo", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAmbiguousTensor))

	// Explicit indices disambiguate.
	node, err := env.GetTensorByNameAndIndex("foo", 1, nil)
	require.NoError(t, err)
	assert.True(t, node == second)
}

func TestGetTensorByNameScoped(t *testing.T) {
	env, _ := newTestEnv(t)
	other := gpgraphtest.NewGraph("other")
	variance := graph.Const(other.Graph, 2.0)
	other.SetOutputs(TensorName("model", "kern", "variance"), variance)

	// Not in the default graph.
	node, err := env.GetTensorByName("model/kern/variance", nil)
	require.NoError(t, err)
	assert.Nil(t, node)

	// Overriding the graph.
	node, err = env.GetTensorByName("model/kern/variance", other)
	require.NoError(t, err)
	assert.True(t, node == variance)

	// Pushing it as the default.
	env.Graphs().Push(other)
	defer env.Graphs().Pop()
	node, err = env.GetTensorByName("model/kern/variance", nil)
	require.NoError(t, err)
	assert.True(t, node == variance)
}

func TestGetTensorByNameWithinAliasScope(t *testing.T) {
	env, g := newTestEnv(t)
	foo := graph.Const(g.Graph, float32(1))
	g.SetOutputs("foo", foo)

	g.PushAliasScope("layer")
	defer g.PopAliasScope()
	node, err := env.GetTensorByName("foo", nil)
	require.NoError(t, err)
	assert.True(t, node == foo)
}
