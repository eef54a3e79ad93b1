// Copyright 2016-2026 The GPflow Authors. SPDX-License-Identifier: Apache-2.0

package settings

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/gomlx/gomlx/pkg/core/dtypes"
	"github.com/gomlx/gomlx/pkg/support/fsutil"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Parse settings given as a list separated by ";": e.g.: "float_type=float32;int_type=int32".
//
// It can also be given an entry like "file:gpflow_settings.txt", in which case the file will be read
// and its settings will be parsed, with new-lines working as ";" and lines starting with "#" ignored.
//
// It updates s accordingly and returns the keys set, or an error if a key is unknown or a
// value fails to parse. The resulting DTypes are validated.
func (s *Settings) Parse(settings string) (keysSet []string, err error) {
	for _, setting := range strings.Split(settings, ";") {
		keysSet, err = s.parseSetting(setting, keysSet)
		if err != nil {
			return
		}
	}
	err = s.DTypes.Validate()
	return
}

func (s *Settings) parseSetting(setting string, keysSet []string) (newKeysSet []string, err error) {
	newKeysSet = keysSet
	setting = strings.TrimSpace(setting)
	if setting == "" {
		return
	}
	if strings.HasPrefix(setting, "file:") {
		filePath := strings.TrimPrefix(setting, "file:")
		filePath, err = fsutil.ReplaceTildeInDir(filePath)
		if err != nil {
			return
		}
		var contents []byte
		contents, err = os.ReadFile(filePath)
		if err != nil {
			err = errors.Wrapf(err, "failed to read settings from file %q", filePath)
			return
		}
		for _, line := range strings.Split(string(contents), "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			for _, subSetting := range strings.Split(line, ";") {
				newKeysSet, err = s.parseSetting(subSetting, newKeysSet)
				if err != nil {
					return
				}
			}
		}
		return
	}

	key, valueStr, found := strings.Cut(setting, "=")
	if !found {
		err = errors.Errorf("can't parse setting %q: each setting requires the format \"<key>=<value>\"", setting)
		return
	}
	key = strings.TrimSpace(key)
	if err = s.set(key, valueStr); err != nil {
		return
	}
	newKeysSet = append(newKeysSet, key)
	return
}

// set one key to the dtype named by valueStr.
func (s *Settings) set(key, valueStr string) error {
	var target *dtypes.DType
	switch key {
	case FloatTypeKey:
		target = &s.DTypes.FloatType
	case IntTypeKey:
		target = &s.DTypes.IntType
	default:
		return errors.Wrapf(ErrUnknownSetting, "can't set %q (known settings are %q and %q)",
			key, FloatTypeKey, IntTypeKey)
	}
	dtype, err := ParseDType(valueStr)
	if err != nil {
		return errors.WithMessagef(err, "failed to parse value for setting %q", key)
	}
	*target = dtype
	return nil
}

// tomlFile is the layout of a GPflow TOML settings file.
type tomlFile struct {
	DTypes struct {
		FloatType string `toml:"float_type"`
		IntType   string `toml:"int_type"`
	} `toml:"dtypes"`
}

// Load reads settings from a TOML file, starting from the defaults. Example file:
//
//	[dtypes]
//	float_type = "float32"
//	int_type = "int32"
//
// Keys that are absent keep their default values. Unknown keys are an error.
func Load(filePath string) (Settings, error) {
	s := Default()
	filePath, err := fsutil.ReplaceTildeInDir(filePath)
	if err != nil {
		return s, err
	}
	var contents tomlFile
	meta, err := toml.DecodeFile(filePath, &contents)
	if err != nil {
		return s, errors.Wrapf(err, "failed to read GPflow settings file %q", filePath)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return s, errors.Wrapf(ErrUnknownSetting, "settings file %q has unknown keys %v", filePath, undecoded)
	}
	if contents.DTypes.FloatType != "" {
		if err = s.set(FloatTypeKey, contents.DTypes.FloatType); err != nil {
			return s, errors.WithMessagef(err, "in settings file %q", filePath)
		}
	}
	if contents.DTypes.IntType != "" {
		if err = s.set(IntTypeKey, contents.DTypes.IntType); err != nil {
			return s, errors.WithMessagef(err, "in settings file %q", filePath)
		}
	}
	if err = s.DTypes.Validate(); err != nil {
		return s, errors.WithMessagef(err, "in settings file %q", filePath)
	}
	klog.V(1).Infof("loaded GPflow settings from %q: %s", filePath, s)
	return s, nil
}
