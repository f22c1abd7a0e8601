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

package writer

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreos-grader/grader/config"
	"github.com/coreos-grader/grader/model"
	"github.com/coreos-grader/grader/points"
	"github.com/coreos-grader/grader/result"
)

func passingResult(id uint32, total float64) result.TestResult {
	desc := config.TestDescription{Name: "compiles", TestID: points.TestID(id), TotalPoints: points.MustFromFloat(total), Visibility: config.Visible}
	return result.TestResult{
		Description: desc,
		Status:      result.Pass(points.FullPoints(points.MustFromFloat(total))),
		Output:      model.Output{model.NewSection("Compile", model.NewStatusList(model.NewPass("build")))},
	}
}

func failingResult(id uint32, total, lost float64) result.TestResult {
	desc := config.TestDescription{Name: "runs", TestID: points.TestID(id), TotalPoints: points.MustFromFloat(total), Tags: []string{"core"}}
	max := points.MustFromFloat(total)
	score := points.FullPoints(max).Remove(points.MustFromFloat(lost))
	return result.TestResult{Description: desc, Status: result.Fail(score)}
}

func TestStdoutWriterReportsTotalsAndFailures(t *testing.T) {
	var buf bytes.Buffer
	w := Stdout{W: &buf, Format: MarkdownFormat}

	err := w.Write([]result.TestResult{passingResult(1, 10), failingResult(2, 10, 4)})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Test 1: compiles")
	assert.Contains(t, out, "status: passed")
	assert.Contains(t, out, "Test 2: runs")
	assert.Contains(t, out, "status: failed")
	assert.Contains(t, out, "Total: 16.00/20.00")
	assert.Contains(t, out, "Failed: 2")
}

func TestJSONWriterEncodesExpectedShape(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")
	w := JSON{Path: path, Format: MarkdownFormat}

	err := w.Write([]result.TestResult{passingResult(1, 10), failingResult(2, 10, 4)})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var report jsonReport
	require.NoError(t, json.Unmarshal(data, &report))
	assert.Equal(t, "Markdown", report.OutputFormat)
	require.Len(t, report.Tests, 2)
	assert.Equal(t, "passed", report.Tests[0].Status)
	assert.Equal(t, 10.0, report.Tests[0].MaxScore)
	assert.Equal(t, "failed", report.Tests[1].Status)
	assert.Equal(t, 6.0, report.Tests[1].Score)
	assert.Equal(t, []string{"core"}, report.Tests[1].Tags)
}

func TestTAPWriterEmitsPlanAndVerdicts(t *testing.T) {
	var buf bytes.Buffer
	w := TAP{W: &buf}

	err := w.Write([]result.TestResult{passingResult(1, 10), failingResult(2, 10, 4)})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "1..2\n")
	assert.Contains(t, out, "ok 1 - compiles\n")
	assert.Contains(t, out, "not ok 2 - runs\n")
}

type failingWriter struct{ err error }

func (f failingWriter) Write(results []result.TestResult) error { return f.err }

type recordingWriter struct{ called bool }

func (r *recordingWriter) Write(results []result.TestResult) error {
	r.called = true
	return nil
}

func TestWritersFanOutContinuesAfterFailure(t *testing.T) {
	recorder := &recordingWriter{}
	ws := Writers{failingWriter{err: errors.New("disk full")}, recorder}

	err := ws.Write([]result.TestResult{passingResult(1, 10)})
	require.NoError(t, err)
	assert.True(t, recorder.called)
}
