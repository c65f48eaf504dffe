package main

import (
	"bytes"
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iti/collsim"
)

func TestRunPrintsReport(t *testing.T) {
	dir := t.TempDir()
	traceFile := filepath.Join(dir, "trace.json")
	reportFile := filepath.Join(dir, "report.yaml")

	var out, logs bytes.Buffer
	args := []string{"-endpts", "3", "-duration", "6", "-rate", "1", "-threshold", "1",
		"-trace", traceFile, "-report", reportFile}
	if err := run(args, &out, log.New(&logs, "", 0)); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	for _, want := range []string{"endpt-0", "endpt-2", "network throughput", "collision events: 6",
		"collision domains: [[0 1 2]]"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output does not contain %q:\n%s", want, out.String())
		}
	}
	if !strings.Contains(logs.String(), "collision detected at endpoint 1") {
		t.Errorf("collisions were not logged:\n%s", logs.String())
	}
	for _, name := range []string{traceFile, reportFile} {
		if _, err := os.Stat(name); err != nil {
			t.Errorf("%s not written: %v", name, err)
		}
	}
}

func TestRunParamsFileWithOverride(t *testing.T) {
	paramsFile := filepath.Join(t.TempDir(), "params.yaml")
	sp := collsim.DefaultSimParams()
	sp.NumEndpts = 2
	sp.Duration = 4
	if err := sp.WriteToFile(paramsFile); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	args := []string{"-params", paramsFile, "-endpts", "4", "-quiet"}
	if err := run(args, &out, log.New(io.Discard, "", 0)); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if !strings.Contains(out.String(), "endpt-3") || strings.Contains(out.String(), "endpt-4") {
		t.Errorf("expected 4 endpoints in output:\n%s", out.String())
	}
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	var out bytes.Buffer
	err := run([]string{"-rate", "0"}, &out, log.New(io.Discard, "", 0))
	if !errors.Is(err, collsim.ErrInvalidConfig) {
		t.Errorf("run() error = %v, want ErrInvalidConfig", err)
	}
	if out.Len() != 0 {
		t.Errorf("output written for invalid config:\n%s", out.String())
	}
}

func TestRunZeroDurationPrintsTable(t *testing.T) {
	var out bytes.Buffer
	if err := run([]string{"-duration", "0", "-endpts", "2"}, &out, log.New(io.Discard, "", 0)); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	for _, want := range []string{"endpt-0", "endpt-1", "undefined", "network throughput (bytes/second): undefined"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output does not contain %q:\n%s", want, out.String())
		}
	}
	if strings.Contains(out.String(), "partial run") {
		t.Errorf("zero-duration run reported as partial:\n%s", out.String())
	}
}

func TestRunStreamSampler(t *testing.T) {
	var out, logs bytes.Buffer
	args := []string{"-sampler", "stream", "-endpts", "2", "-duration", "5", "-quiet"}
	if err := run(args, &out, log.New(&logs, "", 0)); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if !strings.Contains(logs.String(), "stream delays") {
		t.Errorf("stream sampler not selected:\n%s", logs.String())
	}

	err := run([]string{"-sampler", "gaussian"}, &out, log.New(io.Discard, "", 0))
	if !errors.Is(err, collsim.ErrInvalidConfig) {
		t.Errorf("run() error = %v, want ErrInvalidConfig", err)
	}
}
