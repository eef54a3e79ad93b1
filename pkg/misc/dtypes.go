// Copyright 2016-2026 The GPflow Authors. SPDX-License-Identifier: Apache-2.0

package misc

import (
	"fmt"
	"reflect"

	"github.com/gomlx/gomlx/pkg/core/dtypes"
	"github.com/pkg/errors"
)

// DTypeSpec is either a raw Go element type (e.g. reflect.TypeFor[float64]()) or a wrapped
// dtypes.DType. NormalizeDType returns the same variant it is given.
type DTypeSpec struct {
	raw     reflect.Type
	dtype   dtypes.DType
	wrapped bool
}

// RawType creates a DTypeSpec from a Go element type.
func RawType(t reflect.Type) DTypeSpec {
	return DTypeSpec{raw: t}
}

// RawTypeFor creates a DTypeSpec for the Go type T.
func RawTypeFor[T any]() DTypeSpec {
	return RawType(reflect.TypeFor[T]())
}

// WrappedDType creates a DTypeSpec from a dtypes.DType.
func WrappedDType(dtype dtypes.DType) DTypeSpec {
	return DTypeSpec{dtype: dtype, wrapped: true}
}

// IsWrapped returns whether the spec holds a dtypes.DType, as opposed to a raw Go type.
func (s DTypeSpec) IsWrapped() bool {
	return s.wrapped
}

// DType returns the wrapped dtype, or the dtype corresponding to the raw Go type.
// It returns dtypes.InvalidDType for Go types without a dtype.
func (s DTypeSpec) DType() dtypes.DType {
	if s.wrapped {
		return s.dtype
	}
	if s.raw == nil {
		return dtypes.InvalidDType
	}
	return dtypes.FromGoType(s.raw)
}

// GoType returns the raw Go type, or the Go type of the wrapped dtype.
// It returns nil if there is no Go type for the wrapped dtype.
func (s DTypeSpec) GoType() reflect.Type {
	if !s.wrapped {
		return s.raw
	}
	if !s.dtype.IsSupported() {
		return nil
	}
	return s.dtype.GoType()
}

// String implements fmt.Stringer.
func (s DTypeSpec) String() string {
	if s.wrapped {
		return fmt.Sprintf("dtypes.%s", s.dtype)
	}
	if s.raw == nil {
		return "<nil type>"
	}
	return s.raw.String()
}

var (
	float32Type = reflect.TypeFor[float32]()
	float64Type = reflect.TypeFor[float64]()
	int32Type   = reflect.TypeFor[int32]()
)

// normalizedGoType maps the supported element types: floats to the configured precision and
// integers to int32.
func (e *Env) normalizedGoType(t reflect.Type) (reflect.Type, bool) {
	switch t {
	case float32Type, float64Type:
		return e.FloatDType().GoType(), true
	case reflect.TypeFor[int](), reflect.TypeFor[int16](), int32Type, reflect.TypeFor[int64]():
		return int32Type, true
	}
	return nil, false
}

// NormalizeDType converts float32 and float64 to the configured float precision, and int16, int32
// and int64 (and Go's int) to int32. The result has the same variant as spec: wrapped dtypes are
// returned wrapped, raw Go types are returned raw.
//
// Any other element type returns the zero DTypeSpec and an error wrapping ErrUnknownDType.
func (e *Env) NormalizeDType(spec DTypeSpec) (DTypeSpec, error) {
	var normalized reflect.Type
	goType := spec.GoType()
	if goType != nil {
		normalized, _ = e.normalizedGoType(goType)
	}
	if normalized == nil {
		return DTypeSpec{}, errors.Wrapf(ErrUnknownDType, "cannot normalize %s", spec)
	}
	if spec.IsWrapped() {
		return WrappedDType(dtypes.FromGoType(normalized)), nil
	}
	return RawType(normalized), nil
}

// NormalizeGoType is NormalizeDType for a raw Go type.
func (e *Env) NormalizeGoType(t reflect.Type) (reflect.Type, error) {
	spec, err := e.NormalizeDType(RawType(t))
	if err != nil {
		return nil, err
	}
	return spec.GoType(), nil
}

// NormalizeDTypeEnum is NormalizeDType for a wrapped dtypes.DType.
func (e *Env) NormalizeDTypeEnum(dtype dtypes.DType) (dtypes.DType, error) {
	spec, err := e.NormalizeDType(WrappedDType(dtype))
	if err != nil {
		return dtypes.InvalidDType, err
	}
	return spec.DType(), nil
}

// FloatDType is the configured float precision.
func (e *Env) FloatDType() dtypes.DType {
	return e.settings.DTypes.FloatType
}

// IntDType is the configured integer type.
func (e *Env) IntDType() dtypes.DType {
	return e.settings.DTypes.IntType
}
