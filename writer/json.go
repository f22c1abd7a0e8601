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
	"encoding/json"
	"os"

	"github.com/coreos-grader/grader/internal/syserr"
	"github.com/coreos-grader/grader/render"
	"github.com/coreos-grader/grader/result"
)

// jsonReport is the results JSON shape from spec.md §6, grounded on
// mantle/harness/reporters/json.go's jsonReporter/jsonTest pair.
type jsonReport struct {
	OutputFormat string     `json:"output_format"`
	Tests        []jsonTest `json:"tests"`
}

type jsonTest struct {
	Score      float64  `json:"score"`
	MaxScore   float64  `json:"max_score"`
	Status     string   `json:"status"`
	Name       string   `json:"name"`
	Output     string   `json:"output"`
	Tags       []string `json:"tags"`
	Visibility string   `json:"visibility"`
}

// JSON writes the collated result set to Path as a single JSON
// document. Unlike the teacher's jsonReporter, which accumulates one
// test at a time under a mutex as tests finish, Write here receives
// the whole batch at once from the orchestrator, so no concurrent
// append guard is needed.
type JSON struct {
	Path   string
	Format Format
}

func (j JSON) Write(results []result.TestResult) error {
	formatter := j.Format.Formatter()
	report := jsonReport{OutputFormat: string(j.Format)}

	for _, r := range results {
		score := r.Status.Score()
		status := "passed"
		if !r.Status.Passed() {
			status = "failed"
		}
		report.Tests = append(report.Tests, jsonTest{
			Score:      score.Received.Float64(),
			MaxScore:   score.Possible.Float64(),
			Status:     status,
			Name:       r.Description.Name,
			Output:     render.Render(r.Output, formatter),
			Tags:       r.Description.Tags,
			Visibility: string(r.Description.Visibility),
		})
	}

	f, err := os.Create(j.Path)
	if err != nil {
		return syserr.Newf(err, "writer: creating %s", j.Path)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(report); err != nil {
		return syserr.Newf(err, "writer: encoding results to %s", j.Path)
	}
	return nil
}
