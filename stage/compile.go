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

	"github.com/coreos/pkg/capnslog"

	"github.com/coreos-grader/grader/internal/syserr"
	"github.com/coreos-grader/grader/model"
	"github.com/coreos-grader/grader/points"
	"github.com/coreos-grader/grader/process"
)

var plog = capnslog.NewPackageLogger("github.com/coreos-grader/grader", "stage")

// Compile runs `make <args>` in the workspace and requires a
// successful exit to let the test proceed.
type Compile struct {
	Executor process.Executor
	MakeArgs []string
}

func (c Compile) Run(ctx context.Context, workspace string) (Result, error) {
	cmd := process.NewCommand("make", c.MakeArgs...).WithCwd(workspace)
	out, err := c.Executor.Run(ctx, cmd)
	if err != nil {
		return Result{}, syserr.New(err, "stage: compile")
	}

	if code, ok := out.Status.ExitCode(); ok && code == 0 {
		update := model.NewPass("Compiling submission")
		section := model.NewSection("Compile", model.NewStatusList(update))
		return Result{Status: Continue(points.Partial(points.Zero)), Output: model.Output{section}}, nil
	}

	notes := model.NewMultiline(
		model.NewSubSection("Compile Stdout", model.NewCodeBlock(out.Stdout)),
		model.NewSubSection("Compile Stderr", model.NewCodeBlock(out.Stderr)),
	)
	update := model.NewFail("Compiling submission", points.Full(), notes)
	section := model.NewSection("Compile", model.NewStatusList(update))
	plog.Debugf("compile failed: %s", out.Status)
	return Result{Status: UnrecoverableFailure(), Output: model.Output{section}}, nil
}
