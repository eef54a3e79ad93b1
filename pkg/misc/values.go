// Copyright 2016-2026 The GPflow Authors. SPDX-License-Identifier: Apache-2.0

package misc

import (
	"reflect"

	"github.com/gomlx/gomlx/pkg/core/dtypes/bfloat16"
	"github.com/gomlx/gomlx/pkg/core/graph"
	"github.com/gomlx/gomlx/pkg/core/tensors"
	"github.com/gomlx/gomlx/pkg/ml/context"
	"github.com/x448/float16"
)

// IsNDArray returns whether value is a concrete n-dimensional array, a *tensors.Tensor.
func IsNDArray(value any) bool {
	_, ok := value.(*tensors.Tensor)
	return ok
}

// IsTensor returns whether value is a symbolic graph value: a *graph.Node or a *context.Variable.
func IsTensor(value any) bool {
	switch value.(type) {
	case *graph.Node, *context.Variable:
		return true
	}
	return false
}

// IsNumber returns whether value is a Go scalar number (booleans included). Named types whose
// underlying type is a number (e.g.: `type Jitter float64`) are numbers too.
//
// Strings are never numbers, and neither are slices or tensors, even with a single element.
func IsNumber(value any) bool {
	switch value.(type) {
	case string:
		return false
	case bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, uintptr,
		float32, float64, float16.Float16, bfloat16.BFloat16,
		complex64, complex128:
		return true
	}
	switch reflect.ValueOf(value).Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	}
	return false
}

// IsValidParamValue returns whether value can be used as the value of a parameter.
//
// Note the grouping: (value != nil && IsNumber(value)) || IsNDArray(value) || IsTensor(value).
// So a typed nil *tensors.Tensor or *graph.Node is accepted. Existing callers rely on it.
func IsValidParamValue(value any) bool {
	return (value != nil && IsNumber(value)) || IsNDArray(value) || IsTensor(value)
}
