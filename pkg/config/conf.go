// Package config loads the analysis configuration file: the
// dimensions structure, the optional weighting specification, and the
// scoring threshold.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/EDKOMANU/mpictl/pkg/mpi"
)

// Analysis is the on-disk analysis configuration. Threshold and
// Validate are pointers so an omitted key can fall back to the
// defaults (1/3 and true).
type Analysis struct {
	Dimensions       mpi.Dimensions     `yaml:"dimensions"`
	DomainWeights    map[string]float64 `yaml:"domain_weights,omitempty"`
	IndicatorWeights map[string]float64 `yaml:"indicator_weights,omitempty"`
	Threshold        *float64           `yaml:"threshold,omitempty"`
	Validate         *bool              `yaml:"validate,omitempty"`
}

// Read loads and parses the analysis config from path.
func Read(path string) (*Analysis, error) {
	if path == "" {
		return nil, errors.New("config path required")
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "error reading config file: %s", path)
	}

	var a Analysis
	if err := yaml.Unmarshal(b, &a); err != nil {
		return nil, errors.Wrapf(err, "error unmarshalling config file: %s", path)
	}

	if len(a.Dimensions) == 0 {
		return nil, errors.Errorf("config file %s declares no dimensions", path)
	}
	return &a, nil
}

// Options converts the file content to engine options, applying
// defaults for omitted keys.
func (a *Analysis) Options() mpi.Options {
	opts := mpi.DefaultOptions()
	opts.DomainWeights = a.DomainWeights
	opts.IndicatorWeights = a.IndicatorWeights
	if a.Threshold != nil {
		opts.Threshold = *a.Threshold
	}
	if a.Validate != nil {
		opts.Validate = *a.Validate
	}
	return opts
}
