package collsim

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"

	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"
)

// SimParams struct describes the inputs of one simulation run.  It is
// validated before the engine simulates any tick.
type SimParams struct {
	// name of the experiment, carried into traces and reports
	ExpName string `json:"expname" yaml:"expname"`

	// number of endpoints sharing the medium
	NumEndpts int `json:"numendpts" yaml:"numendpts"`

	// number of whole-second ticks to simulate
	Duration int `json:"duration" yaml:"duration"`

	// packet size in bytes, used only for throughput
	PcktLen int `json:"pcktlen" yaml:"pcktlen"`

	// packets per second generated by each endpoint
	PcktRate float64 `json:"pcktrate" yaml:"pcktrate"`

	// an endpoint holding more than this many packets is in collision
	CollisionThreshold int `json:"collisionthreshold" yaml:"collisionthreshold"`

	// seed for the uniform delay sampler
	Seed uint64 `json:"seed" yaml:"seed"`

	// delay sampler, SamplerUniform or SamplerStream
	Sampler string `json:"sampler" yaml:"sampler"`

	// when true the driver paces the run to one tick per wall-clock second
	Pace bool `json:"pace" yaml:"pace"`
}

// DefaultSimParams is a constructor holding the values of the classic
// five-computer, one-hour experiment
func DefaultSimParams() *SimParams {
	return &SimParams{
		ExpName:            "collsim",
		NumEndpts:          5,
		Duration:           3600,
		PcktLen:            100,
		PcktRate:           5.0,
		CollisionThreshold: 2,
		Seed:               1,
		Sampler:            SamplerUniform,
		Pace:               false,
	}
}

// Validate checks every field and returns a single error describing all the
// violations found, wrapping ErrInvalidConfig, or nil
func (sp *SimParams) Validate() error {
	errs := []error{}
	if sp.NumEndpts <= 0 {
		errs = append(errs, fmt.Errorf("endpoint count %d must be positive", sp.NumEndpts))
	}
	if sp.Duration < 0 {
		errs = append(errs, fmt.Errorf("duration %d must not be negative", sp.Duration))
	}
	if sp.PcktLen <= 0 {
		errs = append(errs, fmt.Errorf("packet length %d must be positive", sp.PcktLen))
	}
	if !(sp.PcktRate > 0.0) || math.IsInf(sp.PcktRate, 1) {
		errs = append(errs, fmt.Errorf("packet rate %v must be positive and finite", sp.PcktRate))
	}
	if sp.CollisionThreshold <= 0 {
		errs = append(errs, fmt.Errorf("collision threshold %d must be positive", sp.CollisionThreshold))
	}
	if !slices.Contains(SamplerNames, sp.Sampler) {
		errs = append(errs, fmt.Errorf("sampler %q must be one of %v", sp.Sampler, SamplerNames))
	}

	if err := ReportErrs(errs); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// WriteToFile stores the SimParams struct to the file whose name is given.
// Serialization to json or to yaml is selected based on the extension of this name.
func (sp *SimParams) WriteToFile(filename string) error {
	return writeSerialized(filename, *sp)
}

// ReadSimParams deserializes a byte slice holding a representation of a SimParams struct.
// If the input argument of dict (those bytes) is empty, the file whose name is given is read
// to acquire them.  Fields the input leaves out keep their DefaultSimParams values.
// The result is not validated; the engine does that.
func ReadSimParams(filename string, useYAML bool, dict []byte) (*SimParams, error) {
	var err error

	// read from the file only if the byte slice is empty
	if len(dict) == 0 {
		fileInfo, serr := os.Stat(filename)
		if serr != nil || fileInfo.IsDir() {
			return nil, fmt.Errorf("simulation parameters %s does not exist or cannot be read", filename)
		}
		dict, err = os.ReadFile(filename)
		if err != nil {
			return nil, err
		}
	}

	example := DefaultSimParams()
	if useYAML {
		err = yaml.Unmarshal(dict, example)
	} else {
		err = json.Unmarshal(dict, example)
	}
	if err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}

	return example, nil
}

// LoadSimParams reads parameters from a file, choosing yaml or json by the
// extension of its name
func LoadSimParams(filename string) (*SimParams, error) {
	return ReadSimParams(filename, useYAMLExt(filename), []byte{})
}
