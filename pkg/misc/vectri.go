// Copyright 2016-2026 The GPflow Authors. SPDX-License-Identifier: Apache-2.0

package misc

import (
	"math"

	"github.com/gomlx/exceptions"
	"github.com/gomlx/gomlx/backends"
	"github.com/gomlx/gomlx/pkg/core/dtypes"
	"github.com/gomlx/gomlx/pkg/core/graph"
	"github.com/gomlx/gomlx/pkg/core/shapes"
	"github.com/gomlx/gomlx/pkg/core/tensors"
	"github.com/pkg/errors"
)

// LowerTriangularIndices enumerates the (row, col) coordinates of the lower triangle (diagonal
// included) of an n x n matrix in row-major order: (0,0), (1,0), (1,1), (2,0), ...
//
// It returns n*(n+1)/2 coordinates.
func LowerTriangularIndices(n int) [][2]int {
	indices := make([][2]int, 0, n*(n+1)/2)
	for row := range n {
		for col := 0; col <= row; col++ {
			indices = append(indices, [2]int{row, col})
		}
	}
	return indices
}

// TriangularSize returns n such that m = n*(n+1)/2, the size of the matrix whose lower triangle
// holds m values. It returns an error if m is not a triangular number.
func TriangularSize(m int) (int, error) {
	if m < 0 {
		return 0, errors.Errorf("invalid negative number of elements %d", m)
	}
	n := int(math.Floor(0.5*math.Sqrt(float64(m)*8+1) - 0.5))
	if n*(n+1) != 2*m {
		return 0, errors.Errorf("%d is not a triangular number, it can't fill the lower triangle of a square matrix", m)
	}
	return n, nil
}

// VecToTri takes vectors shaped [D, M] and returns the [D, n, n] matrices whose lower triangles
// (diagonal included) are filled with each vector, in the order given by LowerTriangularIndices.
// The strictly upper triangle is zero.
//
// M must be n*(n+1)/2: this is not checked beyond what the scatter operation itself requires.
//
// This is a graph building function: it panics if vectors is not of rank 2.
func VecToTri(vectors *graph.Node, n int) *graph.Node {
	if vectors.Rank() != 2 {
		exceptions.Panicf("VecToTri requires vectors shaped [D, M], got shape %s", vectors.Shape())
	}
	if n < 0 {
		exceptions.Panicf("VecToTri requires a non-negative matrix size, got %d", n)
	}
	g := vectors.Graph()
	batchSize, m := vectors.Shape().Dimensions[0], vectors.Shape().Dimensions[1]

	outputShape := shapes.Make(vectors.DType(), batchSize, n, n)

	// The same (row, col) coordinates are used for every vector in the batch.
	coords := LowerTriangularIndices(n)
	if batchSize == 0 || len(coords) == 0 {
		// Nothing to scatter.
		return graph.ConstTensor(g, tensors.FromShape(outputShape))
	}
	flatCoords := make([]int32, 0, 2*len(coords))
	for _, rc := range coords {
		flatCoords = append(flatCoords, int32(rc[0]), int32(rc[1]))
	}
	triIndices := graph.ConstTensor(g, tensors.FromFlatDataAndDimensions(flatCoords, len(coords), 2))
	triIndices = graph.BroadcastToDims(graph.ExpandAxes(triIndices, 0), batchSize, len(coords), 2)

	// Prepend the batch index to the coordinates: indices are shaped [D, M, 3].
	batchIndices := graph.Iota(g, shapes.Make(dtypes.Int32, batchSize, m, 1), 0)
	indices := graph.Concatenate([]*graph.Node{batchIndices, triIndices}, -1)
	return graph.Scatter(indices, vectors, outputShape, true, true)
}

// VecToTriTensor runs VecToTri once on the given backend for the vectors (anything accepted
// by tensors.FromAnyValue, e.g. [][]float64) and returns the resulting [D, n, n] tensor.
//
// The vectors are converted to the configured float precision first.
func (e *Env) VecToTriTensor(backend backends.Backend, vectors any, n int) (result *tensors.Tensor, err error) {
	var execErr error
	err = exceptions.TryCatch[error](func() {
		vectorsT, ok := vectors.(*tensors.Tensor)
		if !ok {
			vectorsT = tensors.FromAnyValue(vectors)
		}
		result, execErr = graph.ExecOnce(backend, func(x *graph.Node) *graph.Node {
			return VecToTri(graph.ConvertDType(x, e.FloatDType()), n)
		}, vectorsT)
	})
	if err == nil {
		err = execErr
	}
	if err != nil {
		return nil, errors.WithMessagef(err, "VecToTriTensor(n=%d) failed", n)
	}
	return result, nil
}
