// Copyright 2016-2026 The GPflow Authors. SPDX-License-Identifier: Apache-2.0

package misc

import (
	"reflect"
	"testing"

	"github.com/gomlx/gomlx/pkg/core/dtypes"
	"github.com/gomlx/gpflow/pkg/settings"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/x448/float16"
)

func TestNormalizeDType(t *testing.T) {
	env32, _ := newTestEnv(t)
	env64 := NewEnv(settings.Default(), nil)

	testCases := []struct {
		name      string
		env       *Env
		input     DTypeSpec
		want      DTypeSpec
		wantError bool
	}{
		{"float64 to float32 (raw)", env32, RawTypeFor[float64](), RawTypeFor[float32](), false},
		{"float32 to float32 (raw)", env32, RawTypeFor[float32](), RawTypeFor[float32](), false},
		{"float32 to float64 (raw)", env64, RawTypeFor[float32](), RawTypeFor[float64](), false},
		{"float64 to float32 (wrapped)", env32, WrappedDType(dtypes.Float64), WrappedDType(dtypes.Float32), false},
		{"float32 to float64 (wrapped)", env64, WrappedDType(dtypes.Float32), WrappedDType(dtypes.Float64), false},
		{"int16 to int32 (raw)", env32, RawTypeFor[int16](), RawTypeFor[int32](), false},
		{"int64 to int32 (raw)", env64, RawTypeFor[int64](), RawTypeFor[int32](), false},
		{"int to int32 (raw)", env64, RawTypeFor[int](), RawTypeFor[int32](), false},
		{"int16 to int32 (wrapped)", env32, WrappedDType(dtypes.Int16), WrappedDType(dtypes.Int32), false},
		{"int64 to int32 (wrapped)", env32, WrappedDType(dtypes.Int64), WrappedDType(dtypes.Int32), false},
		{"bool (raw)", env32, RawTypeFor[bool](), DTypeSpec{}, true},
		{"string (raw)", env32, RawTypeFor[string](), DTypeSpec{}, true},
		{"int8 (raw)", env32, RawTypeFor[int8](), DTypeSpec{}, true},
		{"uint32 (raw)", env32, RawTypeFor[uint32](), DTypeSpec{}, true},
		{"float16 (raw)", env32, RawTypeFor[float16.Float16](), DTypeSpec{}, true},
		{"bool (wrapped)", env32, WrappedDType(dtypes.Bool), DTypeSpec{}, true},
		{"float16 (wrapped)", env64, WrappedDType(dtypes.Float16), DTypeSpec{}, true},
		{"complex128 (wrapped)", env64, WrappedDType(dtypes.Complex128), DTypeSpec{}, true},
		{"invalid (wrapped)", env64, WrappedDType(dtypes.InvalidDType), DTypeSpec{}, true},
		{"nil (raw)", env64, RawType(nil), DTypeSpec{}, true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.env.NormalizeDType(tc.input)
			if tc.wantError {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrUnknownDType))
				assert.Contains(t, err.Error(), tc.input.String())
				assert.Equal(t, DTypeSpec{}, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.input.IsWrapped(), got.IsWrapped())
			assert.Equal(t, tc.want.DType(), got.DType())
			assert.Equal(t, tc.want.GoType(), got.GoType())
		})
	}
}

func TestNormalizeHelpers(t *testing.T) {
	env, _ := newTestEnv(t)
	goType, err := env.NormalizeGoType(reflect.TypeOf(1.0))
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeOf(float32(0)), goType)

	dtype, err := env.NormalizeDTypeEnum(dtypes.Int64)
	require.NoError(t, err)
	assert.Equal(t, dtypes.Int32, dtype)

	_, err = env.NormalizeDTypeEnum(dtypes.Uint8)
	require.Error(t, err)
	_, err = env.NormalizeGoType(reflect.TypeOf("x"))
	require.Error(t, err)
}

func TestDTypeSpec(t *testing.T) {
	raw := RawTypeFor[float64]()
	assert.False(t, raw.IsWrapped())
	assert.Equal(t, dtypes.Float64, raw.DType())
	assert.Equal(t, "float64", raw.String())

	wrapped := WrappedDType(dtypes.Float32)
	assert.True(t, wrapped.IsWrapped())
	assert.Equal(t, reflect.TypeOf(float32(0)), wrapped.GoType())
	assert.Equal(t, "dtypes.Float32", wrapped.String())

	assert.Equal(t, dtypes.InvalidDType, RawType(nil).DType())
	assert.Nil(t, WrappedDType(dtypes.InvalidDType).GoType())
}
