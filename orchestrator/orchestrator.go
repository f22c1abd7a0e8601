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

// Package orchestrator schedules a homework's tests: setup tests run
// sequentially and can abort the whole run, regular tests run
// concurrently bounded by a worker group modeled on
// mantle/lang/worker.WorkerGroup, and the ordered, collated results
// are handed to one or more writers.
package orchestrator

import (
	"context"
	"os"
	"path/filepath"
	"runtime"

	"github.com/coreos/pkg/capnslog"

	"github.com/coreos-grader/grader/config"
	"github.com/coreos-grader/grader/internal/syserr"
	"github.com/coreos-grader/grader/result"
	"github.com/coreos-grader/grader/runner"
	"github.com/coreos-grader/grader/stage"
)

var plog = capnslog.NewPackageLogger("github.com/coreos-grader/grader", "orchestrator")

// Writer emits a collated, ordered set of TestResults. A writer's own
// failure is logged by the orchestrator, not propagated: one broken
// writer must not hide another's output or the run's own error.
type Writer interface {
	Write(results []result.TestResult) error
}

// TestSpec is one test's description plus its fully built stage
// pipeline, ready for the orchestrator to run against a fresh
// workspace.
type TestSpec struct {
	Description config.TestDescription
	Stages      []stage.Stage
}

// Orchestrator runs a configured set of setup and regular tests and
// fans the results out to its writers.
type Orchestrator struct {
	// WorkspaceRoot is the directory under which test_<id>
	// subdirectories are created. Empty means a fresh, not
	// auto-removed temp directory is used.
	WorkspaceRoot string
	Setup         []TestSpec
	Regular       []TestSpec
	Writers       []Writer
	// Parallel bounds concurrent regular tests. 0 means
	// runtime.GOMAXPROCS(0), matching mantle/harness.Options.init's
	// default for Parallel.
	Parallel int
}

// Run executes Setup sequentially, then Regular concurrently, and
// returns the ordered TestResults (setups first, then regulars in
// configured order). If any test raised a system error, the first one
// encountered (setups take priority; among regulars, first in
// configured order) is returned as err after writers have run.
func (o Orchestrator) Run(ctx context.Context) ([]result.TestResult, error) {
	root := o.WorkspaceRoot
	if root == "" {
		dir, err := os.MkdirTemp("", "grader-")
		if err != nil {
			return nil, syserr.New(err, "orchestrator: creating workspace root")
		}
		root = dir
	}

	var results []result.TestResult

	for _, spec := range o.Setup {
		res, err := o.runOne(ctx, root, spec)
		results = append(results, res)
		if err != nil {
			plog.Errorf("setup test %s: system error: %v", spec.Description.TestID, err)
			o.write(results)
			return results, err
		}
	}

	regularResults, regularErr := o.runRegular(ctx, root)
	results = append(results, regularResults...)

	o.write(results)
	return results, regularErr
}

func (o Orchestrator) runRegular(ctx context.Context, root string) ([]result.TestResult, error) {
	if len(o.Regular) == 0 {
		return nil, nil
	}

	limit := o.Parallel
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	results := make([]result.TestResult, len(o.Regular))
	errs := make([]error, len(o.Regular))
	sem := make(chan struct{}, limit)
	done := make(chan int, len(o.Regular))

	for i, spec := range o.Regular {
		i, spec := i, spec
		sem <- struct{}{}
		go func() {
			defer func() { <-sem; done <- i }()
			res, err := o.runOne(ctx, root, spec)
			results[i] = res
			errs[i] = err
		}()
	}
	for range o.Regular {
		<-done
	}

	for i, err := range errs {
		if err != nil {
			plog.Errorf("test %s: system error: %v", o.Regular[i].Description.TestID, err)
			return results, err
		}
	}
	return results, nil
}

// runOne creates the test's workspace and runs its stage pipeline. A
// system error is turned into a zero-score TestResult (for writer
// consumption) and also returned, per spec.md §4.1 bullet 2.
func (o Orchestrator) runOne(ctx context.Context, root string, spec TestSpec) (result.TestResult, error) {
	workspace := filepath.Join(root, "test_"+spec.Description.TestID.String())
	if err := os.MkdirAll(workspace, 0o755); err != nil {
		wrapped := syserr.Newf(err, "orchestrator: creating workspace for test %s", spec.Description.TestID)
		return result.SystemError(spec.Description, wrapped), wrapped
	}

	plog.Debugf("test %s: running in %s", spec.Description.TestID, workspace)
	r := runner.Runner{Description: spec.Description, Stages: spec.Stages}
	res, err := r.Run(ctx, workspace)
	if err != nil {
		return result.SystemError(spec.Description, err), err
	}
	return res, nil
}

func (o Orchestrator) write(results []result.TestResult) {
	for _, w := range o.Writers {
		if err := w.Write(results); err != nil {
			plog.Errorf("writer failed: %v", err)
		}
	}
}
