// Copyright 2017 CoreOS, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config holds the YAML-decoded schema for a homework's
// grading configuration: the hw-level manifest and each test's
// individual config.yaml, following the denylist/manifest decode
// style of mantle/kola/harness.go (gopkg.in/yaml.v3, plain struct
// tags, no generated bindings).
package config

import (
	"fmt"

	"github.com/coreos/pkg/capnslog"
	"gopkg.in/yaml.v3"

	"github.com/coreos-grader/grader/points"
)

var plog = capnslog.NewPackageLogger("github.com/coreos-grader/grader", "config")

// Visibility is a test's disclosure policy to the submitting student.
type Visibility string

const (
	Hidden         Visibility = "hidden"
	Visible        Visibility = "visible"
	AfterDueDate   Visibility = "after_due_date"
	AfterPublished Visibility = "after_published"
)

// TestDescription is a test's display metadata, independent of the
// stages it runs.
type TestDescription struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	TestID      points.TestID `yaml:"test_id"`
	TotalPoints points.Points `yaml:"total_points"`
	Visibility  Visibility    `yaml:"visibility"`
	Tags        []string      `yaml:"tags,omitempty"`
}

// CompileConfig configures the compile stage.
type CompileConfig struct {
	MakeArgs []string `yaml:"make_args,omitempty"`
}

// ReturnCodeConfig configures the run stage's exit-code check.
type ReturnCodeConfig struct {
	Expected int32           `yaml:"expected"`
	Points   points.Quantity `yaml:"points"`
}

// RunConfig configures the run stage.
type RunConfig struct {
	Executable           string            `yaml:"executable"`
	Args                 []string          `yaml:"args,omitempty"`
	TimeoutSec           *int              `yaml:"timeout_sec,omitempty"`
	Stdout               string            `yaml:"stdout,omitempty"`
	Stderr               string            `yaml:"stderr,omitempty"`
	Stdin                string            `yaml:"stdin,omitempty"`
	ReturnCode           *ReturnCodeConfig `yaml:"return_code,omitempty"`
	DisableGarbageMemory bool              `yaml:"disable_garbage_memory,omitempty"`
}

// CompareType names a comparator the compare-files stage can run.
// Grep and ReverseGrep are declared to match the wire schema but have
// no implementation; constructing a comparison with either produces a
// SystemError instead of silently behaving like Diff.
type CompareType string

const (
	Diff        CompareType = "Diff"
	Grep        CompareType = "Grep"
	ReverseGrep CompareType = "ReverseGrep"
)

// Comparison is one entry of a ComparesConfig.
type Comparison struct {
	Expected    []string        `yaml:"expected"`
	StudentFile string          `yaml:"student_file"`
	CompareType CompareType     `yaml:"compare_type"`
	Points      points.Quantity `yaml:"points"`
	ShowOutput  bool            `yaml:"show_output"`
}

// ComparesConfig configures the compare-files stage.
type ComparesConfig struct {
	Compares []Comparison `yaml:"compares"`
}

// ImportConfig configures the import-files stage.
type ImportConfig struct {
	Files []string `yaml:"files"`
}

// ValgrindConfig configures the valgrind stage.
type ValgrindConfig struct {
	Points       points.Quantity `yaml:"points"`
	Suppressions []string        `yaml:"suppressions,omitempty"`
}

// TestGroup is a named subset of test ids within an HwConfig, used to
// scope a grading run to e.g. "public" or "hidden".
type TestGroup struct {
	Name  string          `yaml:"name"`
	Tests []points.TestID `yaml:"tests"`
}

// HwConfig is the top-level hw.yaml manifest.
type HwConfig struct {
	Class  string      `yaml:"class"`
	Name   string      `yaml:"name"`
	Groups []TestGroup `yaml:"groups"`
}

// ParseHwConfig decodes an hw.yaml document.
func ParseHwConfig(data []byte) (*HwConfig, error) {
	var hw HwConfig
	if err := yaml.Unmarshal(data, &hw); err != nil {
		return nil, fmt.Errorf("config: decoding hw config: %w", err)
	}
	return &hw, nil
}

// TestConfig is one test's config.yaml: its description plus whichever
// stage sections are present. A nil section means that stage is
// skipped for this test.
type TestConfig struct {
	Description TestDescription `yaml:",inline"`
	Compile     *CompileConfig  `yaml:"compile,omitempty"`
	Run         *RunConfig      `yaml:"run,omitempty"`
	Compares    *ComparesConfig `yaml:"compares,omitempty"`
	Import      *ImportConfig   `yaml:"import,omitempty"`
	Valgrind    *ValgrindConfig `yaml:"valgrind,omitempty"`
}

// ParseTestConfig decodes a test's config.yaml and validates the
// uniform-FullPoints-or-summed-Partial rule across every
// points-bearing sub-item.
func ParseTestConfig(data []byte) (*TestConfig, error) {
	var tc TestConfig
	if err := yaml.Unmarshal(data, &tc); err != nil {
		return nil, fmt.Errorf("config: decoding test config: %w", err)
	}
	if err := tc.Validate(); err != nil {
		return nil, err
	}
	return &tc, nil
}

// Validate checks the uniform-quantity-kind rule: for each
// points-bearing sub-item group (the run stage's return-code quantity
// alongside the compares/valgrind quantities), the set of configured
// PointQuantity values must be uniformly FullPoints or uniformly
// Partial; if Partial, they must sum to TotalPoints.
func (tc *TestConfig) Validate() error {
	var quantities []points.Quantity
	if tc.Run != nil && tc.Run.ReturnCode != nil {
		quantities = append(quantities, tc.Run.ReturnCode.Points)
	}
	if tc.Compares != nil {
		for _, c := range tc.Compares.Compares {
			quantities = append(quantities, c.Points)
		}
	}
	if tc.Valgrind != nil {
		quantities = append(quantities, tc.Valgrind.Points)
	}
	return validateQuantities(quantities, tc.Description.TotalPoints)
}

func validateQuantities(quantities []points.Quantity, total points.Points) error {
	if len(quantities) == 0 {
		return nil
	}
	allFull := true
	for _, q := range quantities {
		if !q.IsFull() {
			allFull = false
			break
		}
	}
	if allFull {
		return nil
	}
	for _, q := range quantities {
		if q.IsFull() {
			return fmt.Errorf("config: point quantities must be uniformly FullPoints or uniformly Partial")
		}
	}
	sum := points.Zero
	for _, q := range quantities {
		p, _ := q.Points()
		sum = sum.Add(p)
	}
	if sum.Cmp(total) != 0 {
		plog.Errorf("partial point quantities sum to %s, want %s", sum, total)
		return fmt.Errorf("config: partial point quantities sum to %s, want total_points %s", sum, total)
	}
	return nil
}
