// Copyright 2016-2026 The GPflow Authors. SPDX-License-Identifier: Apache-2.0

package misc

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrAmbiguousTensor is returned (wrapped) when a tensor name resolves to more than one output index.
	ErrAmbiguousTensor = errors.New("ambiguous tensor")

	// ErrNotTrainable is the cause of the Error returned when removing a variable that is not trainable.
	ErrNotTrainable = errors.New("variable not in trainables")

	// ErrUnknownDType is returned (wrapped) when normalizing a dtype that is neither a float nor an int.
	ErrUnknownDType = errors.New("unknown dtype")

	// ErrNilVariable is returned (wrapped) when a nil variable is given.
	ErrNilVariable = errors.New("nil variable")

	// ErrNoGraph is returned when no graph is given and the Env has no default graph.
	ErrNoGraph = errors.New("no graph given and no default graph set")
)

// Error reports a GPflow domain failure. Use errors.Is with its cause (e.g.: ErrNotTrainable)
// to find out what went wrong.
type Error struct {
	msg   string
	cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.msg
}

// Unwrap returns the sentinel cause of the error.
func (e *Error) Unwrap() error {
	return e.cause
}

func newError(cause error, format string, args ...any) *Error {
	return &Error{msg: fmt.Sprintf(format, args...), cause: cause}
}
