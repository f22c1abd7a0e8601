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

package stage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreos-grader/grader/locator"
	"github.com/coreos-grader/grader/points"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestNewCompareFilesRejectsUnimplementedType(t *testing.T) {
	_, err := NewCompareFiles(nil, []Comparison{{CompareType: Grep}})
	require.Error(t, err)
}

func TestCompareFilesMatch(t *testing.T) {
	workspace := t.TempDir()
	staticDir := t.TempDir()
	writeFile(t, workspace, "out.txt", "hello\n")
	writeFile(t, staticDir, "expected.txt", "hello\n")

	factory := func(ws string) locator.Locator { return locator.NewDirLocator(staticDir) }
	cf, err := NewCompareFiles(factory, []Comparison{{
		StudentFile: "out.txt",
		Expected:    []string{"expected.txt"},
		CompareType: Diff,
		Points:      points.Full(),
		ShowOutput:  true,
	}})
	require.NoError(t, err)

	result, err := cf.Run(context.Background(), workspace)
	require.NoError(t, err)

	lost, ok := result.Status.PointsLost()
	require.True(t, ok)
	p, _ := lost.Points()
	assert.True(t, p.IsZero())
}

func TestCompareFilesMismatchShowsBothFiles(t *testing.T) {
	workspace := t.TempDir()
	staticDir := t.TempDir()
	writeFile(t, workspace, "out.txt", "wrong\n")
	writeFile(t, staticDir, "expected.txt", "right\n")

	factory := func(ws string) locator.Locator { return locator.NewDirLocator(staticDir) }
	cf, err := NewCompareFiles(factory, []Comparison{{
		StudentFile: "out.txt",
		Expected:    []string{"expected.txt"},
		CompareType: Diff,
		Points:      points.Full(),
		ShowOutput:  true,
	}})
	require.NoError(t, err)

	result, err := cf.Run(context.Background(), workspace)
	require.NoError(t, err)

	lost, ok := result.Status.PointsLost()
	require.True(t, ok)
	assert.True(t, lost.IsFull())

	rendered := renderForTest(t, result)
	assert.Contains(t, rendered, "right")
	assert.Contains(t, rendered, "wrong")
}

func TestCompareFilesMissingStudentFile(t *testing.T) {
	workspace := t.TempDir()
	staticDir := t.TempDir()
	writeFile(t, staticDir, "expected.txt", "right\n")

	factory := func(ws string) locator.Locator { return locator.NewDirLocator(staticDir) }
	cf, err := NewCompareFiles(factory, []Comparison{{
		StudentFile: "missing.txt",
		Expected:    []string{"expected.txt"},
		CompareType: Diff,
		Points:      points.Full(),
	}})
	require.NoError(t, err)

	result, err := cf.Run(context.Background(), workspace)
	require.NoError(t, err)

	lost, ok := result.Status.PointsLost()
	require.True(t, ok)
	assert.True(t, lost.IsFull())
}

func TestCompareFilesHiddenOutputDoesNotLeakContent(t *testing.T) {
	workspace := t.TempDir()
	staticDir := t.TempDir()
	writeFile(t, workspace, "out.txt", "secretwrong\n")
	writeFile(t, staticDir, "expected.txt", "secretright\n")

	factory := func(ws string) locator.Locator { return locator.NewDirLocator(staticDir) }
	cf, err := NewCompareFiles(factory, []Comparison{{
		StudentFile: "out.txt",
		Expected:    []string{"expected.txt"},
		CompareType: Diff,
		Points:      points.Full(),
		ShowOutput:  false,
	}})
	require.NoError(t, err)

	result, err := cf.Run(context.Background(), workspace)
	require.NoError(t, err)

	rendered := renderForTest(t, result)
	assert.NotContains(t, rendered, "secretright")
	assert.NotContains(t, rendered, "secretwrong")
}
