// Copyright 2016-2026 The GPflow Authors. SPDX-License-Identifier: Apache-2.0

package misc

import (
	"testing"

	"github.com/gomlx/gomlx/pkg/core/dtypes"
	"github.com/gomlx/gomlx/pkg/core/graph"
	"github.com/gomlx/gomlx/pkg/core/shapes"
	"github.com/gomlx/gomlx/pkg/core/tensors"
	"github.com/gomlx/gpflow/pkg/core/gpgraph"
	"github.com/gomlx/gpflow/pkg/core/gpgraph/gpgraphtest"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLowerTriangularIndices(t *testing.T) {
	assert.Empty(t, LowerTriangularIndices(0))
	want := [][2]int{{0, 0}, {1, 0}, {1, 1}, {2, 0}, {2, 1}, {2, 2}}
	if diff := cmp.Diff(want, LowerTriangularIndices(3)); diff != "" {
		t.Errorf("LowerTriangularIndices(3) mismatch (-want +got):\n%s", diff)
	}
	for n := range 6 {
		assert.Len(t, LowerTriangularIndices(n), n*(n+1)/2)
	}
}

func TestTriangularSize(t *testing.T) {
	for n := range 20 {
		got, err := TriangularSize(n * (n + 1) / 2)
		require.NoError(t, err)
		assert.Equal(t, n, got)
	}
	for _, m := range []int{2, 4, 5, 7, 11, -1} {
		_, err := TriangularSize(m)
		assert.Errorf(t, err, "TriangularSize(%d) should fail", m)
	}
}

func TestVecToTri(t *testing.T) {
	gpgraphtest.RunTestGraphFn(t, "VecToTri(N=2)",
		func(g *gpgraph.Graph) (inputs, outputs []*graph.Node) {
			vectors := graph.Const(g.Graph, [][]float32{{1, 2, 3}})
			inputs = []*graph.Node{vectors}
			outputs = []*graph.Node{VecToTri(vectors, 2)}
			return
		}, []any{
			[][][]float32{{{1, 0}, {2, 3}}},
		}, -1)

	gpgraphtest.RunTestGraphFn(t, "VecToTri(N=3) batch of 2",
		func(g *gpgraph.Graph) (inputs, outputs []*graph.Node) {
			vectors := graph.Const(g.Graph, [][]float64{
				{1, 2, 3, 4, 5, 6},
				{-1, -2, -3, -4, -5, -6},
			})
			inputs = []*graph.Node{vectors}
			outputs = []*graph.Node{VecToTri(vectors, 3)}
			return
		}, []any{
			[][][]float64{
				{{1, 0, 0}, {2, 3, 0}, {4, 5, 6}},
				{{-1, 0, 0}, {-2, -3, 0}, {-4, -5, -6}},
			},
		}, -1)

	gpgraphtest.RunTestGraphFn(t, "VecToTri(N=1)",
		func(g *gpgraph.Graph) (inputs, outputs []*graph.Node) {
			vectors := graph.Const(g.Graph, [][]float64{{7}, {8}, {9}})
			inputs = []*graph.Node{vectors}
			outputs = []*graph.Node{VecToTri(vectors, 1)}
			return
		}, []any{
			[][][]float64{{{7}}, {{8}}, {{9}}},
		}, -1)

	gpgraphtest.RunTestGraphFn(t, "VecToTri(N=2) empty batch",
		func(g *gpgraph.Graph) (inputs, outputs []*graph.Node) {
			vectors := graph.ConstTensor(g.Graph, tensors.FromShape(shapes.Make(dtypes.Float32, 0, 3)))
			inputs = []*graph.Node{vectors}
			outputs = []*graph.Node{VecToTri(vectors, 2)}
			return
		}, []any{
			shapes.Make(dtypes.Float32, 0, 2, 2),
		}, -1)

	gpgraphtest.RunTestGraphFn(t, "VecToTri(N=0)",
		func(g *gpgraph.Graph) (inputs, outputs []*graph.Node) {
			vectors := graph.ConstTensor(g.Graph, tensors.FromShape(shapes.Make(dtypes.Float64, 2, 0)))
			inputs = []*graph.Node{vectors}
			outputs = []*graph.Node{VecToTri(vectors, 0)}
			return
		}, []any{
			shapes.Make(dtypes.Float64, 2, 0, 0),
		}, -1)
}

func TestVecToTriShapes(t *testing.T) {
	g := gpgraphtest.NewGraph(t.Name())
	vectors := graph.Const(g.Graph, [][]float32{{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, {1, 2, 3, 4, 5, 6, 7, 8, 9, 10}})
	tri := VecToTri(vectors, 4)
	assert.Equal(t, []int{2, 4, 4}, tri.Shape().Dimensions)
	assert.Equal(t, vectors.DType(), tri.DType())

	// Rank must be 2.
	assert.Panics(t, func() { VecToTri(graph.Const(g.Graph, []float32{1, 2, 3}), 2) })
	assert.Panics(t, func() { VecToTri(vectors, -1) })
}

func TestVecToTriTensor(t *testing.T) {
	env, _ := newTestEnv(t)
	backend := gpgraphtest.BuildTestBackend()

	result, err := env.VecToTriTensor(backend, [][]float64{{1, 2, 3}, {4, 5, 6}}, 2)
	require.NoError(t, err)
	// Converted to the float32 precision of the Env.
	assert.Equal(t, [][][]float32{{{1, 0}, {2, 3}}, {{4, 0}, {5, 6}}}, result.Value())

	result, err = env.VecToTriTensor(backend, tensors.FromValue([][]float32{{1}}), 1)
	require.NoError(t, err)
	assert.Equal(t, [][][]float32{{{1}}}, result.Value())

	// Empty inputs give empty outputs.
	result, err = env.VecToTriTensor(backend, tensors.FromShape(shapes.Make(dtypes.Float32, 0, 3)), 2)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2, 2}, result.Shape().Dimensions)
	result, err = env.VecToTriTensor(backend, tensors.FromShape(shapes.Make(dtypes.Float32, 2, 0)), 0)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 0, 0}, result.Shape().Dimensions)

	// Vectors of rank 1 are reported as an error.
	_, err = env.VecToTriTensor(backend, []float64{1, 2, 3}, 2)
	require.Error(t, err)
}
