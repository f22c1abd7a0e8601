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

// Package runner executes a single test's stage pipeline: each
// configured stage runs in order against the test's workspace, its
// output is appended to the accumulating TestResult, and its
// StageStatus folds into the running score, following spec.md §4.2.
package runner

import (
	"context"

	"github.com/coreos/pkg/capnslog"

	"github.com/coreos-grader/grader/config"
	"github.com/coreos-grader/grader/points"
	"github.com/coreos-grader/grader/result"
	"github.com/coreos-grader/grader/stage"
)

var plog = capnslog.NewPackageLogger("github.com/coreos-grader/grader", "runner")

// Runner runs a fixed, ordered list of stages against one test's
// workspace.
type Runner struct {
	Description config.TestDescription
	Stages      []stage.Stage
}

// Run executes every stage in order, folding each StageResult into the
// returned TestResult. It returns a non-nil error only for a system
// error raised by a stage; in that case the returned TestResult is the
// zero value and must not be used (the caller should build a
// result.SystemError instead, per the orchestrator's contract).
func (r Runner) Run(ctx context.Context, workspace string) (result.TestResult, error) {
	score := points.FullPoints(r.Description.TotalPoints)

	var accumulated result.TestResult
	accumulated.Description = r.Description
	accumulated.Status = result.Pass(score)

	failed := false

	for _, s := range r.Stages {
		res, err := s.Run(ctx, workspace)
		if err != nil {
			plog.Errorf("test %s: stage error: %v", r.Description.TestID, err)
			return result.TestResult{}, err
		}

		accumulated.Output = accumulated.Output.Append(res.Output)

		if res.Status.IsUnrecoverable() {
			score = points.ZeroPoints(r.Description.TotalPoints)
			failed = true
			accumulated.Status = result.Fail(score)
			break
		}

		lost, _ := res.Status.PointsLost()
		if lost.IsFull() {
			score = points.ZeroPoints(r.Description.TotalPoints)
			failed = true
		} else if p, ok := lost.Points(); ok && !p.IsZero() {
			score = score.Remove(p)
			failed = true
		}
	}

	if failed {
		accumulated.Status = result.Fail(score)
	} else {
		accumulated.Status = result.Pass(score)
	}

	return accumulated, nil
}
