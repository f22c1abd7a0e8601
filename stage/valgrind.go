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
	"regexp"
	"strings"
	"time"

	"github.com/coreos-grader/grader/internal/syserr"
	"github.com/coreos-grader/grader/locator"
	"github.com/coreos-grader/grader/model"
	"github.com/coreos-grader/grader/points"
	"github.com/coreos-grader/grader/process"
)

// absolutePath matches an absolute path occurrence so its leading
// directories can be stripped from valgrind's log and command-line
// output, preserving whatever non-word character precedes it (a
// quote, a paren, start-of-line).
var absolutePath = regexp.MustCompile(`(^|\W)((?:/[^/\s]+)+/)([^/\s]+)`)

func stripPaths(s string) string {
	return absolutePath.ReplaceAllString(s, "$1$3")
}

// Valgrind runs the student's executable under valgrind's leak
// checker, deducting configured points on detected leaks, a crash, or
// a timeout, and treating anything valgrind itself cannot make sense
// of (a missing log, an exit code below its reserved error range) as
// a system error.
type Valgrind struct {
	Executor     process.Executor
	Executable   string
	Args         []string
	Stdin        string
	Timeout      time.Duration // 0 means DefaultRunTimeout * 2
	Locator      locator.Locator
	Suppressions []string
	Points       points.Quantity
}

func (v Valgrind) Run(ctx context.Context, workspace string) (Result, error) {
	executablePath := filepath.Join(workspace, v.Executable)
	if _, err := os.Stat(executablePath); err != nil {
		return Result{}, syserr.Newf(err, "stage: valgrind: could not find student executable at %s", executablePath)
	}

	resolvedSuppressions := make([]string, 0, len(v.Suppressions))
	for _, name := range v.Suppressions {
		path, err := v.Locator.Find(name)
		if err != nil {
			return Result{}, syserr.Newf(err, "stage: valgrind: resolving suppression %s", name)
		}
		resolvedSuppressions = append(resolvedSuppressions, path)
	}

	args := []string{"--log-file=valgrind.log", "--leak-check=yes", "--error-exitcode=125", "--malloc-fill=0xF0", "--free-fill=0x0B"}
	for _, s := range resolvedSuppressions {
		args = append(args, "--suppressions="+s)
	}
	args = append(args, "--", v.Executable)
	args = append(args, v.Args...)

	cmd := process.NewCommand("valgrind", args...).WithCwd(workspace)
	if v.Stdin != "" {
		cmd = cmd.WithStdin(process.StdinPath(v.Stdin))
	}
	timeout := v.Timeout
	if timeout == 0 {
		timeout = DefaultRunTimeout * 2
	}
	cmd = cmd.WithTimeout(timeout)

	out, err := v.Executor.Run(ctx, cmd)
	if err != nil {
		return Result{}, syserr.New(err, "stage: valgrind")
	}

	commandLine := stripPaths(cmd.CommandLine())

	if d, isTimeout := out.Status.AsTimeout(); isTimeout {
		update := model.NewFail("Valgrind", v.Points, model.NewBlock(fmt.Sprintf("Your submission timed out after %d second(s)", int(d.Seconds()))))
		section := model.NewSection("Valgrind", model.NewStatusList(update))
		return Result{Status: Continue(v.Points), Output: model.Output{section}}, nil
	}

	logBytes, err := os.ReadFile(filepath.Join(workspace, "valgrind.log"))
	if err != nil || len(strings.TrimSpace(string(logBytes))) == 0 {
		return Result{}, syserr.Newf(err, "stage: valgrind: missing or empty valgrind.log")
	}
	log := stripPaths(string(logBytes))

	outputSection := model.NewSubSection("Output", model.NewCodeBlock(fmt.Sprintf("%s\n\n%s", commandLine, log)))

	if sig, isSignal := out.Status.AsSignal(); isSignal {
		var message string
		switch sig {
		case process.SegFault:
			message = "Your submission was killed by SIGSEGV!"
		case process.Abort:
			message = "Your submission was killed by SIGABRT!"
		default:
			return Result{}, syserr.Newf(nil, "stage: valgrind: unexpected signal %s", sig)
		}
		update := model.NewFail("Valgrind", v.Points, model.NewBlock(message))
		section := model.NewSection("Valgrind", outputSection, model.NewStatusList(update))
		return Result{Status: Continue(v.Points), Output: model.Output{section}}, nil
	}

	code, _ := out.Status.ExitCode()
	if code == 0 {
		update := model.NewPass("Valgrind")
		section := model.NewSection("Valgrind", outputSection, model.NewStatusList(update))
		return Result{Status: Continue(points.Partial(points.Zero)), Output: model.Output{section}}, nil
	}
	if code < 125 {
		return Result{}, syserr.Newf(nil, "stage: valgrind: exit code %d is below the reserved error-exitcode threshold", code)
	}

	update := model.NewFail("Valgrind Errors Detected", v.Points, nil)
	section := model.NewSection("Valgrind", outputSection, model.NewStatusList(update))
	return Result{Status: Continue(v.Points), Output: model.Output{section}}, nil
}
