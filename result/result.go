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

// Package result holds the per-test outcome produced by the runner and
// consumed by writers, mirroring the separation between
// mantle/harness and mantle/harness/testresult in the teacher repo: the
// pipeline that produces a result lives apart from the small, stable
// type describing it.
package result

import (
	"github.com/coreos-grader/grader/config"
	"github.com/coreos-grader/grader/model"
	"github.com/coreos-grader/grader/points"
)

// TestStatus is Pass(score) or Fail(score); the two carry the same
// Score shape. Which bucket a result falls in is decided by whoever
// builds it (the runner fails a test once any stage deducted points
// or failed unrecoverably), not recomputed from score.Full().
type TestStatus struct {
	passed bool
	score  points.Score
}

// Pass builds a passing TestStatus.
func Pass(score points.Score) TestStatus {
	return TestStatus{passed: true, score: score}
}

// Fail builds a failing TestStatus.
func Fail(score points.Score) TestStatus {
	return TestStatus{passed: false, score: score}
}

// Passed reports whether this status is Pass.
func (s TestStatus) Passed() bool {
	return s.passed
}

// Score returns the (received, possible) pair backing this status.
func (s TestStatus) Score() points.Score {
	return s.score
}

// TestResult is a single test's final outcome: its description (for
// display), status (for scoring), and rendered-able feedback tree.
type TestResult struct {
	Description config.TestDescription
	Status      TestStatus
	Output      model.Output
}

// SystemError builds the zero-score TestResult a test becomes when a
// stage raises a system error mid-pipeline, per spec.md §4.1 bullet 2:
// the test is lost (zero score), the failure is surfaced in its
// output for writer consumption, and the original error is still
// returned separately by the orchestrator.
func SystemError(desc config.TestDescription, cause error) TestResult {
	section := model.NewSection("System Error Occurred", model.NewBlock(cause.Error()))
	return TestResult{
		Description: desc,
		Status:      Fail(points.ZeroPoints(desc.TotalPoints)),
		Output:      model.Output{section},
	}
}
