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

// Package locator resolves logical input names (an expected-output
// file, a support header, a static fixture) to filesystem paths. All
// implementations are read-only and safe to share across concurrently
// running tests.
package locator

import (
	"os"
	"path/filepath"

	"github.com/coreos-grader/grader/internal/syserr"
	"github.com/coreos-grader/grader/points"
)

// Locator maps a logical name to an absolute path, or reports that the
// name could not be resolved.
type Locator interface {
	Find(name string) (string, error)
}

// Factory builds a Locator scoped to a workspace directory. Stages
// whose correct search path depends on the running test's own
// workspace (compare-files, per spec.md §4.6) take a Factory instead
// of a bare Locator.
type Factory func(workspacePath string) Locator

// dirLocator finds name by joining it onto a fixed directory. It
// rejects directories and missing files: only a plain, readable file
// satisfies Find.
type dirLocator struct {
	dir string
}

// NewDirLocator returns a Locator scoped to dir.
func NewDirLocator(dir string) Locator {
	return dirLocator{dir: dir}
}

func (l dirLocator) Find(name string) (string, error) {
	path := filepath.Join(l.dir, name)
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", syserr.ErrNotFound
		}
		return "", syserr.Newf(err, "locator: statting %s", path)
	}
	if info.IsDir() {
		return "", syserr.ErrNotFound
	}
	return path, nil
}

// testFileLocator searches a per-test directory first, then a shared
// static directory, and never the system directory directly (system
// resources are reached only through whatever the test dir or static
// dir symlink/copy in ahead of time, per spec.md §4.12's "never to
// system").
type testFileLocator struct {
	testDir   string
	staticDir string // "" if this class/hw has no static directory
}

// NewTestFileLocator builds the per-test locator described in
// spec.md §4.12: it searches testDir first, falling back to
// staticDir (if non-empty) when testDir doesn't have the name.
func NewTestFileLocator(testDir, staticDir string) Locator {
	return testFileLocator{testDir: testDir, staticDir: staticDir}
}

func (l testFileLocator) Find(name string) (string, error) {
	path, err := NewDirLocator(l.testDir).Find(name)
	if err == nil {
		return path, nil
	}
	if l.staticDir == "" {
		return "", err
	}
	return NewDirLocator(l.staticDir).Find(name)
}

// Tree holds the once-per-run locator built from an HwConfig-resolved
// root, per SPEC_FULL.md §4.12b. ForTest returns the Locator for a
// single TestId; WorkspaceFactory wraps that with an additional
// directory-scoped Locator rooted at a workspace, for stages (like
// compare-files) whose search must also reach workspace-local files.
type Tree struct {
	systemDir string
	staticDir string
	testDirs  map[points.TestID]string
}

// NewTree builds the locator tree once per run. testDirs maps each
// test id to its "test_<id>" directory under the class/hw root;
// staticDir and systemDir may be "" if the hw has none.
func NewTree(systemDir, staticDir string, testDirs map[points.TestID]string) *Tree {
	return &Tree{systemDir: systemDir, staticDir: staticDir, testDirs: testDirs}
}

// ForTest returns the Locator for the given test id: test dir first,
// falling back to the static dir, never the system dir.
func (t *Tree) ForTest(id points.TestID) (Locator, error) {
	dir, ok := t.testDirs[id]
	if !ok {
		return nil, syserr.ErrUnknownTestID
	}
	return NewTestFileLocator(dir, t.staticDir), nil
}

// WorkspaceFactory returns a Factory that layers a directory-scoped
// Locator rooted at the given test's workspace on top of the test's
// ordinary test-dir/static-dir search, for stages whose candidates may
// also live in files the test itself produced.
func (t *Tree) WorkspaceFactory(id points.TestID) (Factory, error) {
	base, err := t.ForTest(id)
	if err != nil {
		return nil, err
	}
	return func(workspacePath string) Locator {
		return multiLocator{locators: []Locator{
			NewDirLocator(workspacePath),
			base,
		}}
	}, nil
}

// multiLocator tries each locator in order, returning the first
// successful resolution.
type multiLocator struct {
	locators []Locator
}

func (m multiLocator) Find(name string) (string, error) {
	var lastErr error
	for _, l := range m.locators {
		path, err := l.Find(name)
		if err == nil {
			return path, nil
		}
		lastErr = err
	}
	return "", lastErr
}
