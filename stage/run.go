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
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/coreos-grader/grader/internal/syserr"
	"github.com/coreos-grader/grader/model"
	"github.com/coreos-grader/grader/points"
	"github.com/coreos-grader/grader/process"
)

// DefaultRunTimeout is used when a Run stage's config leaves Timeout
// unset, matching the original's "number chosen arbitrarily" one
// minute default.
const DefaultRunTimeout = 60 * time.Second

// ReturnCodeCheck configures the Run stage's exit-code comparison.
type ReturnCodeCheck struct {
	Expected int32
	Points   points.Quantity
}

// Run invokes the student's executable, wrapping it in valgrind's
// garbage-memory-filling mode unless disabled, and optionally checks
// its exit code.
type Run struct {
	Executor             process.Executor
	Executable           string
	Args                 []string
	Stdin                string // "" means no stdin pipe; else a path relative to the workspace
	StdoutCapture        string
	StderrCapture        string
	Timeout              time.Duration // 0 means DefaultRunTimeout
	ReturnCode           *ReturnCodeCheck
	DisableGarbageMemory bool
}

func (r Run) buildCommand(workspace string) *process.Command {
	var cmd *process.Command
	if !r.DisableGarbageMemory && process.IsProgramInPath("valgrind") {
		args := append([]string{"--log-file=valgrind.log", "--malloc-fill=0xFF", "--free-fill=0xAA", r.Executable}, r.Args...)
		cmd = process.NewCommand("valgrind", args...)
	} else {
		cmd = process.NewCommand(r.Executable, r.Args...)
	}

	if r.Stdin != "" {
		stdin := r.Stdin
		if !filepath.IsAbs(stdin) {
			stdin = filepath.Join(workspace, stdin)
		}
		cmd = cmd.WithStdin(process.StdinPath(stdin))
	}
	timeout := r.Timeout
	if timeout == 0 {
		timeout = DefaultRunTimeout
	}
	return cmd.WithCwd(workspace).WithCapture(r.StdoutCapture, r.StderrCapture).WithTimeout(timeout)
}

func (r Run) Run(ctx context.Context, workspace string) (Result, error) {
	section := model.NewSection("Run Program")

	executablePath := filepath.Join(workspace, r.Executable)
	if _, err := os.Stat(executablePath); err != nil {
		return Result{}, syserr.Newf(err, "stage: run: could not find student executable at %s", executablePath)
	}

	cmd := r.buildCommand(workspace)
	cmdSection := model.NewSection("run command", model.NewCodeBlock(cmd.CommandLine()))
	section.Content = append(section.Content, model.SubSection{Section: cmdSection})

	out, err := r.Executor.Run(ctx, cmd)
	if err != nil {
		return Result{}, syserr.New(err, "stage: run")
	}

	if !out.Status.Completed() {
		update := model.NewFail("Running program", points.Full(), runFailureNotes(out.Status))
		section.Content = append(section.Content, model.NewStatusList(update))
		plog.Debugf("run did not complete: %s", out.Status)
		return Result{Status: UnrecoverableFailure(), Output: model.Output{section}}, nil
	}

	updates := []model.Update{model.NewPass("Running program")}
	pointsLost := points.Partial(points.Zero)

	if r.ReturnCode != nil {
		actual, _ := out.Status.ExitCode()
		if actual != r.ReturnCode.Expected {
			notes := model.NewBlock(fmt.Sprintf("Expected %d, but found %d", r.ReturnCode.Expected, actual))
			updates = append(updates, model.NewFail("Checking return code", r.ReturnCode.Points, notes))
			pointsLost = pointsLost.Add(r.ReturnCode.Points)
		} else {
			updates = append(updates, model.NewPass("Checking return code"))
		}
	}

	section.Content = append(section.Content, model.NewStatusList(updates...))
	return Result{Status: Continue(pointsLost), Output: model.Output{section}}, nil
}

func runFailureNotes(status process.ExitStatus) model.Content {
	if d, ok := status.AsTimeout(); ok {
		return model.NewBlock(fmt.Sprintf("Runtime error: program timed out after %s", d))
	}
	sig, _ := status.AsSignal()
	return signalFeedback(sig)
}

func signalFeedback(sig process.SignalType) model.Content {
	switch sig {
	case process.Abort:
		return model.NewBlock("Runtime error: Your submission exited with error code 6 (abort signal)")
	case process.SegFault:
		lines := []string{
			"Runtime error: Your submission exited with error code 11 (segmentation fault)",
			"Double check you initialized all your variables before using them.",
			"Check your variables again.",
			"Check any array access points to make sure you are in bounds.",
			"Check pointer dereferences, you may be accidentally dereferencing a NULL pointer.",
		}
		return model.NewBlock(strings.Join(lines, "\n"))
	default:
		return model.NewBlock(fmt.Sprintf("Runtime error: your submission was killed by %s", sig))
	}
}
