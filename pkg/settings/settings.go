// Copyright 2016-2026 The GPflow Authors. SPDX-License-Identifier: Apache-2.0

// Package settings holds the process-wide numeric configuration used by GPflow: the floating
// point precision and the integer type.
//
// The settings are read once per process by Get, from (in order of precedence, highest last):
//
//  1. Defaults: float_type=float64, int_type=int32.
//  2. A TOML file pointed to by the environment variable GPFLOW_CONFIG (see Load for the format).
//  3. A settings string in the environment variable GPFLOW_SETTINGS (see Settings.Parse).
//
// Code that doesn't want to depend on the process-wide values can build its own Settings
// with Default, Load or Settings.Parse and pass it explicitly.
package settings

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/gomlx/gomlx/pkg/core/dtypes"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

const (
	// ConfigEnvVar is the environment variable with the path to a TOML settings file.
	ConfigEnvVar = "GPFLOW_CONFIG"

	// SettingsEnvVar is the environment variable with a settings string, see Settings.Parse.
	SettingsEnvVar = "GPFLOW_SETTINGS"

	// FloatTypeKey and IntTypeKey are the names of the settings, both in TOML files and in settings strings.
	FloatTypeKey = "float_type"
	IntTypeKey   = "int_type"
)

// ErrUnknownSetting is returned (wrapped) when a settings string or file refers to an unknown key.
var ErrUnknownSetting = errors.New("unknown setting")

// DTypes is the pair of data types used by GPflow.
type DTypes struct {
	// IntType is used for integer values (indices, counts).
	IntType dtypes.DType

	// FloatType is the precision of all floating point computations: either dtypes.Float32 or dtypes.Float64.
	FloatType dtypes.DType
}

// Settings for GPflow.
type Settings struct {
	DTypes DTypes
}

// Default returns the default settings: Float64 precision and Int32 integers.
func Default() Settings {
	return Settings{
		DTypes: DTypes{
			IntType:   dtypes.Int32,
			FloatType: dtypes.Float64,
		},
	}
}

var (
	processOnce     sync.Once
	processSettings Settings
)

// Get returns the process-wide settings, loading them the first time it is called.
//
// It panics if the environment points to invalid settings: this is a configuration error that
// must be fixed before anything can run.
func Get() Settings {
	processOnce.Do(func() {
		s, err := FromEnv()
		if err != nil {
			panic(errors.WithMessagef(err, "failed to load GPflow settings from the environment (%s, %s)",
				ConfigEnvVar, SettingsEnvVar))
		}
		processSettings = s
		klog.V(1).Infof("GPflow settings: %s", s)
	})
	return processSettings
}

// FromEnv builds Settings from the defaults, overridden by the file in GPFLOW_CONFIG (if set)
// and then by the settings string in GPFLOW_SETTINGS (if set).
func FromEnv() (Settings, error) {
	s := Default()
	if configPath := os.Getenv(ConfigEnvVar); configPath != "" {
		var err error
		s, err = Load(configPath)
		if err != nil {
			return s, err
		}
	}
	if settingsStr := os.Getenv(SettingsEnvVar); settingsStr != "" {
		if _, err := s.Parse(settingsStr); err != nil {
			return s, errors.WithMessagef(err, "while parsing $%s", SettingsEnvVar)
		}
	}
	return s, nil
}

// Validate checks that the float type is a supported precision and the int type is an integer.
func (d DTypes) Validate() error {
	if d.FloatType != dtypes.Float32 && d.FloatType != dtypes.Float64 {
		return errors.Errorf("%s must be float32 or float64, got %s", FloatTypeKey, d.FloatType)
	}
	if !d.IntType.IsInt() {
		return errors.Errorf("%s must be an integer dtype, got %s", IntTypeKey, d.IntType)
	}
	return nil
}

// String implements fmt.Stringer.
func (s Settings) String() string {
	return fmt.Sprintf("%s=%s;%s=%s", FloatTypeKey, dtypeName(s.DTypes.FloatType),
		IntTypeKey, dtypeName(s.DTypes.IntType))
}

// ParseDType converts a dtype name (e.g.: "float32", "Float64", "int32") to a dtypes.DType.
func ParseDType(name string) (dtypes.DType, error) {
	name = strings.TrimSpace(name)
	if dtype, found := dtypes.MapOfNames[name]; found {
		return dtype, nil
	}
	if dtype, found := dtypes.MapOfNames[strings.ToLower(name)]; found {
		return dtype, nil
	}
	return dtypes.InvalidDType, errors.Errorf("unknown dtype name %q", name)
}

func dtypeName(dtype dtypes.DType) string {
	return strings.ToLower(dtype.String())
}
