// Copyright 2016-2026 The GPflow Authors. SPDX-License-Identifier: Apache-2.0

// vectri packs vectors into lower-triangular matrices and prints them.
//
// Each argument is a JSON list of vectors (or a single vector), e.g.:
//
//	vectri -n=2 '[[1,2,3],[4,5,6]]'
//
// If -n is not given it is inferred from the vectors length M = N*(N+1)/2.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/gomlx/gomlx/backends"
	_ "github.com/gomlx/gomlx/backends/simplego"
	"github.com/gomlx/gomlx/pkg/core/tensors"
	"github.com/gomlx/gpflow/pkg/misc"
	"github.com/gomlx/gpflow/pkg/settings"
	"github.com/janpfeifer/must"
	"github.com/muesli/termenv"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

var (
	flagN = flag.Int("n", -1, "Size N of the NxN output matrices. If negative, it is inferred from the vectors length.")

	flagSettings = flag.String("set", "", "Precision settings, e.g. \"float_type=float32;int_type=int32\". "+
		"Use \"file:<path>\" to read settings from a file. Applied after -config.")
	flagConfig = flag.String("config", "",
		fmt.Sprintf("Path to a TOML settings file. Defaults to $%s.", settings.ConfigEnvVar))
	flagBackend = flag.String("backend", "",
		fmt.Sprintf("GoMLX backend configuration. Defaults to $%s or the pure Go backend.", backends.ConfigEnvVar))

	flagFile    = flag.String("file", "", "Read vectors (JSON) from the given file, in addition to the arguments.")
	flagSummary = flag.Bool("summary", true, "Display a summary of the shapes and sizes.")
	flagColor   = flag.String("color", "auto", "Colored output: \"auto\", \"always\" or \"never\".")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	inputs := flag.Args()
	if *flagFile != "" {
		contents := must.M1(os.ReadFile(*flagFile))
		inputs = append(inputs, string(contents))
	}
	if len(inputs) == 0 {
		klog.Errorf("Missing vectors to pack. See 'vectri -help'")
		os.Exit(1)
	}

	must.M(setColorProfile(*flagColor))
	s := must.M1(loadSettings(*flagConfig, *flagSettings))
	env := misc.NewEnv(s, nil)
	backend := newBackend(*flagBackend)
	defer backend.Finalize()

	for ii, input := range inputs {
		vectors, err := parseVectors(input)
		if err != nil {
			klog.Errorf("Failed to parse input #%d: %+v", ii, err)
			os.Exit(1)
		}
		n := *flagN
		if n < 0 {
			n, err = misc.TriangularSize(len(vectors[0]))
			if err != nil {
				klog.Errorf("Cannot infer N for input #%d, please set -n: %v", ii, err)
				os.Exit(1)
			}
		}
		result, err := env.VecToTriTensor(backend, vectors, n)
		if err != nil {
			klog.Errorf("Failed to pack input #%d: %+v", ii, err)
			os.Exit(1)
		}
		report(ii, s, vectors, result)
	}
}

// pureGoBackend is the configuration of the pure Go backend, used by default.
const pureGoBackend = "go"

// newBackend creates the backend selected by config, or by $GOMLX_BACKEND,
// defaulting to the pure Go backend.
func newBackend(config string) backends.Backend {
	if config == "" {
		config = os.Getenv(backends.ConfigEnvVar)
	}
	if config == "" {
		config = pureGoBackend
	}
	klog.V(1).Infof("Using backend %q", config)
	return must.M1(backends.NewWithConfig(config))
}

// setColorProfile configures lipgloss for the "auto", "always" or "never" color modes.
func setColorProfile(mode string) error {
	switch mode {
	case "auto":
		lipgloss.SetColorProfile(termenv.NewOutput(os.Stdout).EnvColorProfile())
	case "always":
		lipgloss.SetColorProfile(termenv.ANSI256)
	case "never":
		lipgloss.SetColorProfile(termenv.Ascii)
	default:
		return errors.Errorf("invalid -color=%q, valid values are \"auto\", \"always\" or \"never\"", mode)
	}
	return nil
}

// loadSettings reads the TOML file at configPath, or the environment settings if
// configPath is empty, and then applies the settings string.
func loadSettings(configPath, settingsStr string) (s settings.Settings, err error) {
	if configPath != "" {
		s, err = settings.Load(configPath)
	} else {
		s, err = settings.FromEnv()
	}
	if err != nil {
		return
	}
	if settingsStr != "" {
		_, err = s.Parse(settingsStr)
	}
	return
}

func report(idx int, s settings.Settings, vectors [][]float64, result *tensors.Tensor) {
	if *flagSummary {
		fmt.Println(titleStyle.Render(fmt.Sprintf("Input #%d", idx)))
		table := newPlainTable(false, alignRight, alignLeft)
		table.Row("settings", s.String())
		table.Row("# vectors", humanize.Comma(int64(len(vectors))))
		table.Row("vector length", humanize.Comma(int64(len(vectors[0]))))
		table.Row("output shape", result.Shape().String())
		table.Row("# elements", humanize.Comma(int64(result.Size())))
		table.Row("# bytes", humanize.Bytes(uint64(result.Memory())))
		fmt.Println(table.Render())
	}
	for batchIdx, matrix := range matrixRows(result) {
		fmt.Println(titleStyle.Render(fmt.Sprintf("Matrix #%d", batchIdx)))
		table := newPlainTable(false, alignRight)
		for _, row := range matrix {
			table.Row(row...)
		}
		fmt.Println(table.Render())
	}
}
