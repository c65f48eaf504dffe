package collsim

// errs.go holds the error values shared by the engine and the reporter,
// and the helpers that aggregate errors and serialize results to file

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every error that reports a [SimParams] value
// the engine cannot run with
var ErrInvalidConfig = errors.New("invalid simulation configuration")

// ErrUndefinedMetric is wrapped by metric computations whose denominator is zero
var ErrUndefinedMetric = errors.New("undefined metric")

// ReportErrs transforms a list of errors and transforms the non-nil ones into a single error
// with comma-separated report of all the constituent errors, and returns it.
func ReportErrs(errs []error) error {
	errMsg := make([]string, 0)
	for _, err := range errs {
		if err != nil {
			errMsg = append(errMsg, err.Error())
		}
	}
	if len(errMsg) == 0 {
		return nil
	}

	return errors.New(strings.Join(errMsg, ","))
}

// useYAMLExt reports whether the file name's extension selects yaml serialization
func useYAMLExt(filename string) bool {
	ext := path.Ext(filename)
	return ext == ".yaml" || ext == ".YAML" || ext == ".yml"
}

// writeSerialized stores obj in the file whose name is given.
// Serialization to json or to yaml is selected based on the extension of this name.
func writeSerialized(filename string, obj any) error {
	var bytes []byte
	var merr error

	pathExt := path.Ext(filename)
	switch {
	case useYAMLExt(filename):
		bytes, merr = yaml.Marshal(obj)
	case pathExt == ".json" || pathExt == ".JSON":
		bytes, merr = json.MarshalIndent(obj, "", "\t")
	default:
		return fmt.Errorf("file %s: extension must be .yaml, .yml or .json", filename)
	}
	if merr != nil {
		return merr
	}

	f, cerr := os.Create(filename)
	if cerr != nil {
		return cerr
	}
	_, werr := f.Write(bytes)
	if werr != nil {
		_ = f.Close()
		return werr
	}
	return f.Close()
}
