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

package orchestrator

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreos-grader/grader/config"
	"github.com/coreos-grader/grader/points"
	"github.com/coreos-grader/grader/result"
	"github.com/coreos-grader/grader/stage"
)

type scriptedStage struct {
	result stage.Result
	err    error
}

func (s scriptedStage) Run(ctx context.Context, workspace string) (stage.Result, error) {
	return s.result, s.err
}

func desc(id uint32, total float64) config.TestDescription {
	return config.TestDescription{Name: "t", TestID: points.TestID(id), TotalPoints: points.MustFromFloat(total)}
}

func passingSpec(id uint32) TestSpec {
	return TestSpec{
		Description: desc(id, 10),
		Stages:      []stage.Stage{scriptedStage{result: stage.Result{Status: stage.Continue(points.Partial(points.Zero))}}},
	}
}

func systemErrorSpec(id uint32) TestSpec {
	return TestSpec{
		Description: desc(id, 10),
		Stages:      []stage.Stage{scriptedStage{err: errors.New("boom")}},
	}
}

type collectingWriter struct {
	mu      sync.Mutex
	batches [][]result.TestResult
	err     error
}

func (w *collectingWriter) Write(results []result.TestResult) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.batches = append(w.batches, results)
	return w.err
}

func TestOrchestratorRunsSetupThenRegularInOrder(t *testing.T) {
	writer := &collectingWriter{}
	o := Orchestrator{
		WorkspaceRoot: t.TempDir(),
		Setup:         []TestSpec{passingSpec(1)},
		Regular:       []TestSpec{passingSpec(2), passingSpec(3)},
		Writers:       []Writer{writer},
	}

	results, err := o.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.EqualValues(t, 1, results[0].Description.TestID)
	assert.EqualValues(t, 2, results[1].Description.TestID)
	assert.EqualValues(t, 3, results[2].Description.TestID)

	require.Len(t, writer.batches, 1)
	assert.Len(t, writer.batches[0], 3)
}

func TestOrchestratorSetupSystemErrorAbortsRun(t *testing.T) {
	writer := &collectingWriter{}
	o := Orchestrator{
		WorkspaceRoot: t.TempDir(),
		Setup:         []TestSpec{systemErrorSpec(1), passingSpec(2)},
		Regular:       []TestSpec{passingSpec(3)},
		Writers:       []Writer{writer},
	}

	results, err := o.Run(context.Background())
	require.Error(t, err)
	require.Len(t, results, 1, "setup test 2 and all regulars must not run")
	assert.False(t, results[0].Status.Passed())

	require.Len(t, writer.batches, 1, "writers still run with partial results")
}

func TestOrchestratorRegularSystemErrorDoesNotAbortSiblings(t *testing.T) {
	o := Orchestrator{
		WorkspaceRoot: t.TempDir(),
		Regular:       []TestSpec{systemErrorSpec(1), passingSpec(2)},
	}

	results, err := o.Run(context.Background())
	require.Error(t, err)
	require.Len(t, results, 2, "sibling regular tests still run and appear in results")
	assert.False(t, results[0].Status.Passed())
	assert.True(t, results[1].Status.Passed())
}

func TestOrchestratorWriterFailureIsNotFatal(t *testing.T) {
	failing := &collectingWriter{err: errors.New("disk full")}
	succeeding := &collectingWriter{}
	o := Orchestrator{
		WorkspaceRoot: t.TempDir(),
		Regular:       []TestSpec{passingSpec(1)},
		Writers:       []Writer{failing, succeeding},
	}

	_, err := o.Run(context.Background())
	require.NoError(t, err)
	assert.Len(t, succeeding.batches, 1)
}

func TestOrchestratorCreatesPerTestWorkspace(t *testing.T) {
	root := t.TempDir()
	o := Orchestrator{
		WorkspaceRoot: root,
		Regular:       []TestSpec{passingSpec(42)},
	}

	_, err := o.Run(context.Background())
	require.NoError(t, err)

	info, statErr := os.Stat(root + "/test_42")
	require.NoError(t, statErr)
	assert.True(t, info.IsDir())
}
