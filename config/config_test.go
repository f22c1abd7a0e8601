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

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreos-grader/grader/points"
)

func TestParseTestConfigFullPointsThroughout(t *testing.T) {
	data := []byte(`
name: warmup
description: first test
test_id: 1
total_points: 4
visibility: visible
compares:
  compares:
    - expected: [a.out]
      student_file: a.out
      compare_type: Diff
      points: FullPoints
      show_output: true
`)
	tc, err := ParseTestConfig(data)
	require.NoError(t, err)
	assert.Equal(t, "warmup", tc.Description.Name)
	assert.True(t, tc.Compares.Compares[0].Points.IsFull())
}

func TestParseTestConfigPartialSumMatches(t *testing.T) {
	data := []byte(`
name: sums
description: partial sums
test_id: 2
total_points: 4
visibility: visible
compares:
  compares:
    - expected: [a.out]
      student_file: a.out
      compare_type: Diff
      points:
        Partial: 1
      show_output: false
    - expected: [b.out]
      student_file: b.out
      compare_type: Diff
      points:
        Partial: 3
      show_output: false
`)
	tc, err := ParseTestConfig(data)
	require.NoError(t, err)
	assert.Len(t, tc.Compares.Compares, 2)
}

func TestParseTestConfigPartialSumMismatchRejected(t *testing.T) {
	data := []byte(`
name: sums
description: partial sums
test_id: 2
total_points: 4
visibility: visible
compares:
  compares:
    - expected: [a.out]
      student_file: a.out
      compare_type: Diff
      points:
        Partial: 1
      show_output: false
`)
	_, err := ParseTestConfig(data)
	assert.Error(t, err)
}

func TestParseTestConfigMixedKindsRejected(t *testing.T) {
	data := []byte(`
name: mixed
description: mixed kinds
test_id: 2
total_points: 4
visibility: visible
compares:
  compares:
    - expected: [a.out]
      student_file: a.out
      compare_type: Diff
      points: FullPoints
      show_output: false
    - expected: [b.out]
      student_file: b.out
      compare_type: Diff
      points:
        Partial: 3
      show_output: false
`)
	_, err := ParseTestConfig(data)
	assert.Error(t, err)
}

func TestParseHwConfig(t *testing.T) {
	data := []byte(`
class: cs101
name: hw3
groups:
  - name: public
    tests: [1, 2, 3]
  - name: hidden
    tests: [4]
`)
	hw, err := ParseHwConfig(data)
	require.NoError(t, err)
	assert.Equal(t, "cs101", hw.Class)
	assert.Len(t, hw.Groups, 2)
	assert.Equal(t, points.TestID(4), hw.Groups[1].Tests[0])
}
