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

	"github.com/coreos-grader/grader/result"
)

// TAP emits an additive Test Anything Protocol stream: a "1..N" plan
// line followed by one "ok"/"not ok" line per test, in the order
// given. Grounded on mantle/harness/suite.go's test.tap plan line; not
// required by spec.md but a natural, cheap export given every
// TestResult already carries a pass/fail verdict.
type TAP struct {
	W io.Writer
}

func (t TAP) Write(results []result.TestResult) error {
	fmt.Fprintf(t.W, "1..%d\n", len(results))
	for i, r := range results {
		verdict := "ok"
		if !r.Status.Passed() {
			verdict = "not ok"
		}
		fmt.Fprintf(t.W, "%s %d - %s\n", verdict, i+1, r.Description.Name)
	}
	return nil
}
