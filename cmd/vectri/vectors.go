// Copyright 2016-2026 The GPflow Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/gomlx/gomlx/pkg/core/tensors"
	"github.com/pkg/errors"
)

// parseVectors parses a JSON list of equal length vectors. A single flat vector
// is accepted as a batch of one.
func parseVectors(input string) ([][]float64, error) {
	input = strings.TrimSpace(input)
	var vectors [][]float64
	if err := json.Unmarshal([]byte(input), &vectors); err != nil {
		var single []float64
		if errSingle := json.Unmarshal([]byte(input), &single); errSingle != nil {
			return nil, errors.Wrapf(err, "failed to parse vectors from %q", input)
		}
		vectors = [][]float64{single}
	}
	if len(vectors) == 0 {
		return nil, errors.New("no vectors given")
	}
	m := len(vectors[0])
	for ii, v := range vectors {
		if len(v) != m {
			return nil, errors.Errorf("vector #%d has length %d, but vector #0 has length %d", ii, len(v), m)
		}
	}
	return vectors, nil
}

// matrixRows formats a [D, N, N] tensor as D matrices of N rows of strings.
func matrixRows(t *tensors.Tensor) [][][]string {
	dims := t.Shape().Dimensions
	if len(dims) != 3 {
		return nil
	}
	batch, n := dims[0], dims[1]
	matrices := make([][][]string, batch)
	t.MustConstFlatData(func(flat any) {
		values := reflect.ValueOf(flat)
		for b := range batch {
			matrices[b] = make([][]string, n)
			for row := range n {
				matrices[b][row] = make([]string, n)
				for col := range n {
					matrices[b][row][col] = fmt.Sprintf("%g", values.Index((b*n+row)*n+col).Interface())
				}
			}
		}
	})
	return matrices
}
