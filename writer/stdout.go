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
	"fmt"
	"io"
	"strings"

	"github.com/coreos-grader/grader/points"
	"github.com/coreos-grader/grader/render"
	"github.com/coreos-grader/grader/result"
)

// Stdout prints a human-readable dump of every test's id, name,
// visibility, score, status, and rendered output, followed by a total
// score and the list of failed test ids, per spec.md §6.
type Stdout struct {
	W      io.Writer
	Format Format
}

func (s Stdout) Write(results []result.TestResult) error {
	formatter := s.Format.Formatter()
	total := points.Zero
	possible := points.Zero
	var failed []string

	for _, r := range results {
		score := r.Status.Score()
		total = total.Add(score.Received)
		possible = possible.Add(score.Possible)

		status := "passed"
		if !r.Status.Passed() {
			status = "failed"
			failed = append(failed, r.Description.TestID.String())
		}

		fmt.Fprintf(s.W, "Test %s: %s\n", r.Description.TestID, r.Description.Name)
		fmt.Fprintf(s.W, "  visibility: %s\n", r.Description.Visibility)
		fmt.Fprintf(s.W, "  score: %s/%s\n", score.Received, score.Possible)
		fmt.Fprintf(s.W, "  status: %s\n", status)
		if rendered := render.Render(r.Output, formatter); rendered != "" {
			fmt.Fprintln(s.W, rendered)
		}
		fmt.Fprintln(s.W)
	}

	fmt.Fprintf(s.W, "Total: %s/%s\n", total, possible)
	fmt.Fprintf(s.W, "Failed: %s\n", strings.Join(failed, ", "))
	return nil
}
