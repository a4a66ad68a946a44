// Package config holds the options driving a gopherpla run.
//
// Options can be read from a YAML file; command-line flags then override the
// fields they set explicitly.
package config

import (
	"os"

	"github.com/goccy/go-yaml"
	"github.com/pkg/errors"

	"github.com/crillab/gopherpla/pla"
)

// Options describes how functions are read, minimized and written.
type Options struct {
	Out          string `yaml:"out"`         // Output type, e.g "fd" or "eqntott"
	ExactCover   bool   `yaml:"exact_cover"` // Solve the covering problem exactly
	Literals     bool   `yaml:"literals"`    // Minimize the number of literals rather than cubes
	Pos          bool   `yaml:"pos"`         // Minimize the complement of the function
	SkipSparse   bool   `yaml:"skip_sparse"` // Do not make the result sparse
	NoMinimize   bool   `yaml:"no_minimize"` // Only read and write the function
	Verify       bool   `yaml:"verify"`      // Check the result against the input
	Summary      bool   `yaml:"summary"`     // Print the size of the covers
	Debug        bool   `yaml:"debug"`       // Dump the primes and covering table
	Trace        bool   `yaml:"trace"`       // Log the cost of each step
	EchoComments bool   `yaml:"echo_comments"`
	EchoUnknown  bool   `yaml:"echo_unknown"`
	Verbose      bool   `yaml:"verbose"`
}

// Default returns the default options: exact minimization of the number of
// cubes, written as an F-type PLA.
func Default() *Options {
	return &Options{
		Out:          "f",
		ExactCover:   true,
		EchoComments: true,
		EchoUnknown:  true,
	}
}

// Load reads options from the YAML file at path. Fields absent from the file
// keep their default value.
func Load(path string) (*Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read config %q", path)
	}
	return Parse(data)
}

// Parse reads options from YAML data.
func Parse(data []byte) (*Options, error) {
	opts := Default()
	if err := yaml.Unmarshal(data, opts); err != nil {
		return nil, errors.Wrap(err, "could not parse config")
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

// Validate checks that options are consistent.
func (o *Options) Validate() error {
	if _, err := o.OutType(); err != nil {
		return err
	}
	if o.NoMinimize && o.Verify {
		return errors.New("cannot verify a function that is not minimized")
	}
	return nil
}

// OutType returns the output type named by o.Out.
func (o *Options) OutType() (pla.Type, error) {
	return pla.ParseType(o.Out)
}
