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

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreos-grader/grader/config"
	"github.com/coreos-grader/grader/locator"
	"github.com/coreos-grader/grader/points"
)

func writeHwTree(t *testing.T, hwYAML string, tests map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hw.yaml"), []byte(hwYAML), 0o644))
	for name, cfgYAML := range tests {
		testDir := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(testDir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(testDir, "config.yaml"), []byte(cfgYAML), 0o644))
	}
	return dir
}

func basicTestConfig(id int) string {
	return fmt.Sprintf(`
name: compiles
description: checks that the submission builds
test_id: %d
total_points: 1
visibility: visible
`, id)
}

func TestDiscoverTestsSkipsUnparseableIDs(t *testing.T) {
	dir := writeHwTree(t, "class: cs101\nname: hw1\ngroups: []\n", map[string]string{
		"test_1":     basicTestConfig(1),
		"test_2":     basicTestConfig(2),
		"test_abc":   basicTestConfig(3),
		"not_a_test": basicTestConfig(4),
	})

	configs, dirs, err := discoverTests(dir)
	require.NoError(t, err)
	assert.Len(t, configs, 2)
	assert.Contains(t, configs, points.TestID(1))
	assert.Contains(t, configs, points.TestID(2))
	assert.Contains(t, dirs, points.TestID(1))
	assert.NotContains(t, configs, points.TestID(3))
}

func TestPartitionTestsSeparatesSetupGroup(t *testing.T) {
	configs := map[points.TestID]*config.TestConfig{
		1: {Description: config.TestDescription{TestID: 1}},
		2: {Description: config.TestDescription{TestID: 2}},
		3: {Description: config.TestDescription{TestID: 3}},
	}
	hw := &config.HwConfig{
		Groups: []config.TestGroup{
			{Name: "setup", Tests: []points.TestID{2, 1}},
		},
	}

	setup, regular := partitionTests(hw, configs, "")
	assert.Equal(t, []points.TestID{2, 1}, setup)
	assert.Equal(t, []points.TestID{3}, regular)
}

func TestPartitionTestsFiltersByNamedGroup(t *testing.T) {
	configs := map[points.TestID]*config.TestConfig{
		1: {Description: config.TestDescription{TestID: 1}},
		2: {Description: config.TestDescription{TestID: 2}},
		3: {Description: config.TestDescription{TestID: 3}},
	}
	hw := &config.HwConfig{
		Groups: []config.TestGroup{
			{Name: "setup", Tests: []points.TestID{1}},
			{Name: "public", Tests: []points.TestID{2}},
		},
	}

	setup, regular := partitionTests(hw, configs, "public")
	assert.Equal(t, []points.TestID{1}, setup)
	assert.Equal(t, []points.TestID{2}, regular)
}

func TestBuildTestSpecAssemblesConfiguredStages(t *testing.T) {
	dir := writeHwTree(t, "class: cs101\nname: hw1\ngroups: []\n", map[string]string{
		"test_1": `
name: runs
description: checks the program runs
test_id: 1
total_points: 2
visibility: visible
compile:
  make_args: ["all"]
run:
  executable: a.out
  args: []
`,
	})

	configs, dirs, err := discoverTests(dir)
	require.NoError(t, err)

	submission := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(submission, "main.c"), []byte("int main(){return 0;}"), 0o644))

	tree := locator.NewTree("", "", dirs)
	spec, err := buildTestSpec(1, configs[1], tree, submission)
	require.NoError(t, err)

	assert.Equal(t, "runs", spec.Description.Name)
	// copySubmission, compile, run
	assert.Len(t, spec.Stages, 3)
}
