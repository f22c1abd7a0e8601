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

// Package stage implements the concrete pipeline steps a per-test
// runner executes in order: compile, run, compare-files, import-files,
// and valgrind. Each is a Stage; the runner holds them by interface and
// knows nothing about their concrete configuration.
package stage

import (
	"context"

	"github.com/coreos-grader/grader/model"
	"github.com/coreos-grader/grader/points"
)

// Stage is a single pipeline step. Run consults the workspace,
// possibly shells out via the process executor, and reports a
// StageResult — or a system error if the grader itself failed, never
// for a student's code misbehaving.
type Stage interface {
	Run(ctx context.Context, workspace string) (Result, error)
}

// statusKind distinguishes the two StageStatus variants.
type statusKind int

const (
	statusContinue statusKind = iota
	statusUnrecoverable
)

// Status is a closed sum type: Continue{PointsLost} or
// UnrecoverableFailure.
type Status struct {
	kind       statusKind
	pointsLost points.Quantity
}

// Continue builds a Continue status deducting lost (Partial(0) for no
// deduction).
func Continue(lost points.Quantity) Status {
	return Status{kind: statusContinue, pointsLost: lost}
}

// UnrecoverableFailure is the status meaning the student's code cannot
// proceed; the runner stops the pipeline after this stage.
func UnrecoverableFailure() Status {
	return Status{kind: statusUnrecoverable}
}

// IsUnrecoverable reports whether s is UnrecoverableFailure.
func (s Status) IsUnrecoverable() bool {
	return s.kind == statusUnrecoverable
}

// PointsLost returns the quantity to deduct and true, or the zero
// value and false if s is UnrecoverableFailure.
func (s Status) PointsLost() (points.Quantity, bool) {
	if s.kind == statusUnrecoverable {
		return points.Quantity{}, false
	}
	return s.pointsLost, true
}

// Result is a stage's outcome: its Status plus an optional Output
// fragment to append to the TestResult being built.
type Result struct {
	Status Status
	Output model.Output // nil if the stage produced no feedback
}

// ok is the convenience wrapper spec.md §4.3 describes: it elevates a
// "system stage" (one that can only succeed or system-error, such as
// import-files) into a Continue{Partial(0)} result with no feedback.
func ok() Result {
	return Result{Status: Continue(points.Partial(points.Zero))}
}
