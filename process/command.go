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

// Package process supervises subprocess execution: composing an
// immutable Command descriptor, running it with piped I/O, a timeout,
// and signal-aware exit status mapping, following the style of
// mantle/system/exec's thin wrapper around os/exec.
package process

import (
	"fmt"
	"strings"
	"time"
)

// Command is a subprocess descriptor. Env always starts empty: the
// parent's environment is never inherited, only entries a caller adds
// explicitly end up in the child's environment. Fields may be set
// directly (they're just a plain struct) or via the fluent With*
// setters below, whichever reads better at the call site; the setters
// modify the Command in place and return it.
type Command struct {
	Program string
	Args    []string
	Env     map[string]string
	Cwd     string // "" means inherit the grader's own working directory

	Stdin             StdinSource // nil means no stdin pipe
	StdoutCapturePath string      // "" means don't also write stdout to a file
	StderrCapturePath string      // "" means don't also write stderr to a file

	Timeout time.Duration // 0 means unlimited
}

// NewCommand builds a Command with an empty Env, ready for With*
// setters.
func NewCommand(program string, args ...string) *Command {
	return &Command{
		Program: program,
		Args:    args,
		Env:     map[string]string{},
	}
}

// WithEnv sets a single environment variable, returning c for
// chaining.
func (c *Command) WithEnv(key, value string) *Command {
	c.Env[key] = value
	return c
}

// WithCwd sets the child's working directory.
func (c *Command) WithCwd(dir string) *Command {
	c.Cwd = dir
	return c
}

// WithStdin attaches a stdin source.
func (c *Command) WithStdin(src StdinSource) *Command {
	c.Stdin = src
	return c
}

// WithCapture configures files to additionally receive copies of
// stdout/stderr. Pass "" for either to leave it uncaptured.
func (c *Command) WithCapture(stdoutPath, stderrPath string) *Command {
	c.StdoutCapturePath = stdoutPath
	c.StderrCapturePath = stderrPath
	return c
}

// WithTimeout sets the subprocess timeout.
func (c *Command) WithTimeout(d time.Duration) *Command {
	c.Timeout = d
	return c
}

// CommandLine renders the program and its arguments as a single
// shell-like line, for display in rendered Output (e.g. the Run
// stage's "Run Program" section).
func (c *Command) CommandLine() string {
	parts := make([]string, 0, len(c.Args)+1)
	parts = append(parts, c.Program)
	parts = append(parts, c.Args...)
	return strings.Join(parts, " ")
}

func (c *Command) String() string {
	return fmt.Sprintf("Command(%s)", c.CommandLine())
}
