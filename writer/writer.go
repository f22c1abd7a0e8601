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

// Package writer emits a collated, ordered set of TestResults: a
// human-readable stdout dump, a results JSON file, and an additive TAP
// stream, following the multiple-reporter shape of
// mantle/harness/reporters.
package writer

import (
	"github.com/coreos/pkg/capnslog"

	"github.com/coreos-grader/grader/render"
	"github.com/coreos-grader/grader/result"
)

var plog = capnslog.NewPackageLogger("github.com/coreos-grader/grader", "writer")

// Format selects the renderer used for a TestResult's Output.
type Format string

const (
	MarkdownFormat Format = "Markdown"
	TextFormat     Format = "Text"
)

// Formatter returns the render.Formatter for f, defaulting to Markdown
// for an unrecognized or empty value.
func (f Format) Formatter() render.Formatter {
	if f == TextFormat {
		return render.Text{}
	}
	return render.Markdown{}
}

// Writer emits a full, ordered result set once a run completes.
type Writer interface {
	Write(results []result.TestResult) error
}

// Writers fans a result set out to every member, following
// mantle/harness/reporters.Reporters: each writer's failure is logged
// and does not prevent the others from running, matching spec.md
// §4.1 bullet 4.
type Writers []Writer

func (ws Writers) Write(results []result.TestResult) error {
	for _, w := range ws {
		if err := w.Write(results); err != nil {
			plog.Errorf("writer failed: %v", err)
		}
	}
	return nil
}
