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

// Package syserr carries the grader's "unexpected" error taxonomy: a
// single opaque, chainable type for failures of the grader itself, as
// opposed to expected student-grading outcomes which flow through
// StageResult/TestResult instead.
package syserr

import "github.com/pkg/errors"

// SystemError wraps an infrastructure fault: a locator miss, an I/O
// error spawning or piping a subprocess, a contract violation. It is
// never used for a student's code failing to compile or run.
type SystemError struct {
	cause error
}

// New wraps cause as a SystemError, annotating it with msg. cause may
// be nil, for faults with no underlying error to chain (a contract
// violation detected by the grader itself).
func New(cause error, msg string) *SystemError {
	if cause == nil {
		return &SystemError{cause: errors.New(msg)}
	}
	return &SystemError{cause: errors.Wrap(cause, msg)}
}

// Newf is New with fmt.Sprintf-style formatting.
func Newf(cause error, format string, args ...interface{}) *SystemError {
	if cause == nil {
		return &SystemError{cause: errors.Errorf(format, args...)}
	}
	return &SystemError{cause: errors.Wrapf(cause, format, args...)}
}

func (e *SystemError) Error() string { return e.cause.Error() }

// Unwrap lets errors.Is/errors.As see through to the cause.
func (e *SystemError) Unwrap() error { return e.cause }

// ErrNotFound is returned by a Locator when a logical name resolves to
// no file anywhere in its search path.
var ErrNotFound = errors.New("resource not found")

// ErrUnknownTestID is returned by a Locator asked to resolve a name
// for a test id it has no directory for.
var ErrUnknownTestID = errors.New("unknown test id")
