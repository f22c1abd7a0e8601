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

package process

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"sync"
	"syscall"

	"github.com/coreos/pkg/capnslog"
	"github.com/coreos-grader/grader/internal/syserr"
)

var plog = capnslog.NewPackageLogger("github.com/coreos-grader/grader", "process")

// Executor runs Commands and reports their ExitStatus and captured
// output. It is stateless and safe to share across goroutines,
// mirroring spec.md §5's "the process executor is stateless and
// safely shareable."
type Executor interface {
	Run(ctx context.Context, cmd *Command) (Output, error)
}

// execExecutor is the concrete Executor, built on os/exec.
type execExecutor struct{}

// NewExecutor returns the standard os/exec-backed Executor.
func NewExecutor() Executor {
	return execExecutor{}
}

func (execExecutor) Run(ctx context.Context, cmd *Command) (Output, error) {
	runCtx := ctx
	var cancel context.CancelFunc
	if cmd.Timeout > 0 {
		runCtx, cancel = context.WithTimeout(ctx, cmd.Timeout)
		defer cancel()
	}

	// exec.CommandContext kills the child (SIGKILL, via the process's
	// Cancel hook) when runCtx is done, fulfilling "kill-on-drop": an
	// abandoned executor can never leave an orphaned child behind.
	ec := exec.CommandContext(runCtx, cmd.Program, cmd.Args...)
	ec.Dir = cmd.Cwd

	// The parent environment is never inherited; only entries the
	// Command explicitly set end up in the child's environment.
	env := make([]string, 0, len(cmd.Env))
	for k, v := range cmd.Env {
		env = append(env, k+"="+v)
	}
	ec.Env = env

	var stdoutBuf, stderrBuf bytes.Buffer
	ec.Stdout = &stdoutBuf
	ec.Stderr = &stderrBuf

	var stdinPipe io.WriteCloser
	var err error
	if cmd.Stdin != nil {
		stdinPipe, err = ec.StdinPipe()
		if err != nil {
			return Output{}, syserr.New(err, "process: creating stdin pipe")
		}
	}

	plog.Debugf("starting %s", cmd)
	if err := ec.Start(); err != nil {
		if err == exec.ErrNotFound {
			return Output{}, syserr.Newf(err, "process: %s not found", cmd.Program)
		}
		return Output{}, syserr.Newf(err, "process: starting %s", cmd)
	}

	var wg sync.WaitGroup
	if cmd.Stdin != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer stdinPipe.Close()
			if err := writeStdin(cmd.Stdin, stdinPipe); err != nil {
				plog.Debugf("stdin producer for %s: %v", cmd, err)
			}
		}()
	}

	// ec.Stdout/ec.Stderr being plain io.Writers means exec manages
	// their copying internally and Wait joins it; only the stdin
	// producer goroutine above needs an explicit join before Wait, so
	// it completes (and closes the pipe) no later than Wait expects.
	wg.Wait()
	waitErr := ec.Wait()

	var status ExitStatus
	if runCtx.Err() == context.DeadlineExceeded {
		status = Timeout(cmd.Timeout)
	} else if waitErr == nil {
		status = Ok()
	} else if exitErr, ok := waitErr.(*exec.ExitError); ok {
		status, err = mapExitError(exitErr)
		if err != nil {
			return Output{}, err
		}
	} else {
		return Output{}, syserr.Newf(waitErr, "process: running %s", cmd)
	}

	out := Output{Status: status, Stdout: stdoutBuf.String(), Stderr: stderrBuf.String()}

	if cmd.StdoutCapturePath != "" {
		if err := os.WriteFile(cmd.StdoutCapturePath, stdoutBuf.Bytes(), 0644); err != nil {
			return out, syserr.Newf(err, "process: writing stdout capture %s", cmd.StdoutCapturePath)
		}
	}
	if cmd.StderrCapturePath != "" {
		if err := os.WriteFile(cmd.StderrCapturePath, stderrBuf.Bytes(), 0644); err != nil {
			return out, syserr.Newf(err, "process: writing stderr capture %s", cmd.StderrCapturePath)
		}
	}

	return out, nil
}

// mapExitError turns an *exec.ExitError into an ExitStatus, following
// mantle/system/exec.ExecCmd.Signaled's use of
// ProcessState.Sys().(syscall.WaitStatus).
func mapExitError(exitErr *exec.ExitError) (ExitStatus, error) {
	status, ok := exitErr.Sys().(syscall.WaitStatus)
	if !ok {
		// Non-POSIX platform: fall back to the plain exit code.
		return Failure(normalizeExitCode(exitErr.ExitCode())), nil
	}
	if status.Signaled() {
		switch status.Signal() {
		case syscall.SIGSEGV:
			return Signal(SegFault), nil
		case syscall.SIGABRT:
			return Signal(Abort), nil
		default:
			return ExitStatus{}, syserr.Newf(exitErr, "process: unexpected terminating signal %v", status.Signal())
		}
	}
	return Failure(normalizeExitCode(status.ExitStatus())), nil
}

func writeStdin(src StdinSource, w io.Writer) error {
	switch s := src.(type) {
	case StdinString:
		_, err := io.WriteString(w, string(s))
		return err
	case StdinPath:
		f, err := os.Open(string(s))
		if err != nil {
			return err
		}
		defer f.Close()
		_, err = io.Copy(w, f)
		return err
	case StdinFile:
		if _, err := s.File.Seek(0, io.SeekStart); err != nil {
			return err
		}
		_, err := io.Copy(w, s.File)
		return err
	default:
		return nil
	}
}

// IsProgramInPath reports whether name resolves on PATH, used by the
// Run stage to decide whether it can wrap execution in valgrind.
func IsProgramInPath(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
