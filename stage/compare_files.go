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
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/coreos-grader/grader/internal/syserr"
	"github.com/coreos-grader/grader/locator"
	"github.com/coreos-grader/grader/model"
	"github.com/coreos-grader/grader/points"
	"github.com/coreos-grader/grader/render"
)

// CompareType names a file-comparison algorithm. Only Diff is
// implemented; Grep and ReverseGrep are declared so configs can name
// them, but NewCompareFiles refuses to build a stage that would need
// them, per the source's "do not fabricate behavior" policy.
type CompareType string

const (
	Diff        CompareType = "Diff"
	Grep        CompareType = "Grep"
	ReverseGrep CompareType = "ReverseGrep"
)

// Comparison is one expected-vs-actual check the compare-files stage
// runs.
type Comparison struct {
	StudentFile string
	Expected    []string // candidates, tried in order
	CompareType CompareType
	Points      points.Quantity
	ShowOutput  bool
}

// CompareFiles runs each configured Comparison against the workspace
// and accumulates the points lost across all of them.
type CompareFiles struct {
	LocatorFor  locator.Factory
	Comparisons []Comparison
}

// NewCompareFiles validates that every comparison names an
// implemented CompareType before returning the stage; an
// unimplemented type is a SystemError raised here, not discovered
// mid-run.
func NewCompareFiles(factory locator.Factory, comparisons []Comparison) (CompareFiles, error) {
	for _, c := range comparisons {
		if c.CompareType != Diff {
			return CompareFiles{}, syserr.Newf(nil, "stage: compare-files: compare type %s is not implemented", c.CompareType)
		}
	}
	return CompareFiles{LocatorFor: factory, Comparisons: comparisons}, nil
}

func (cf CompareFiles) Run(ctx context.Context, workspace string) (Result, error) {
	find := cf.LocatorFor(workspace)

	var updates []model.Update
	lost := points.Partial(points.Zero)

	for _, c := range cf.Comparisons {
		update, deduction, err := runComparison(find, workspace, c)
		if err != nil {
			return Result{}, err
		}
		updates = append(updates, update)
		lost = lost.Add(deduction)
	}

	section := model.NewSection("Compare Output", model.NewStatusList(updates...))
	return Result{Status: Continue(lost), Output: model.Output{section}}, nil
}

func runComparison(find locator.Locator, workspace string, c Comparison) (model.Update, points.Quantity, error) {
	noDeduction := points.Partial(points.Zero)

	studentPath := filepath.Join(workspace, c.StudentFile)
	studentBytes, err := os.ReadFile(studentPath)
	if err != nil {
		notes := model.NewBlock(fmt.Sprintf("Could not find file %s in root of workspace", c.StudentFile))
		return model.NewFail(c.StudentFile, c.Points, notes), c.Points, nil
	}

	for _, candidate := range c.Expected {
		expectedPath, err := find.Find(candidate)
		if err != nil {
			continue
		}
		expectedBytes, err := os.ReadFile(expectedPath)
		if err != nil {
			return model.Update{}, noDeduction, syserr.Newf(err, "stage: compare-files: reading %s", expectedPath)
		}
		if bytes.Equal(studentBytes, expectedBytes) {
			return model.NewPass(c.StudentFile), noDeduction, nil
		}
	}

	notes, err := mismatchNotes(find, c, studentBytes)
	if err != nil {
		return model.Update{}, noDeduction, err
	}
	return model.NewFail(c.StudentFile, c.Points, notes), c.Points, nil
}

// mismatchNotes builds the feedback attached to a failing comparison:
// a short hidden-output notice, or (when show_output is set and the
// comparator is Diff) both files rendered through the byte transform.
func mismatchNotes(find locator.Locator, c Comparison, studentBytes []byte) (model.Content, error) {
	expectedName := ""
	if len(c.Expected) > 0 {
		expectedName = c.Expected[0]
	}

	if !c.ShowOutput {
		return model.NewBlock(fmt.Sprintf(
			"Actual %s did not match expected %s. The instructor has chosen to keep this output hidden.",
			c.StudentFile, expectedName)), nil
	}

	var expectedBytes []byte
	if expectedName != "" {
		if path, err := find.Find(expectedName); err == nil {
			if data, err := os.ReadFile(path); err == nil {
				expectedBytes = data
			}
		}
	}

	return model.NewMultiline(
		model.NewSubSection(fmt.Sprintf("Expected %s", expectedName), model.NewCodeBlock(render.ByteTransform(expectedBytes))),
		model.NewSubSection(fmt.Sprintf("Actual %s", c.StudentFile), model.NewCodeBlock(render.ByteTransform(studentBytes))),
	), nil
}
