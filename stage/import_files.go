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
	"io"
	"os"
	"path/filepath"

	"github.com/coreos-grader/grader/internal/syserr"
	"github.com/coreos-grader/grader/locator"
)

// ImportFiles resolves a list of logical names via a Locator and
// copies each into the workspace root, preserving its basename. It is
// a "system stage": any failure is a system error, never a grading
// outcome, since a missing import source means the homework itself is
// misconfigured.
type ImportFiles struct {
	Locator locator.Locator
	Files   []string
}

func (i ImportFiles) Run(ctx context.Context, workspace string) (Result, error) {
	for _, name := range i.Files {
		src, err := i.Locator.Find(name)
		if err != nil {
			return Result{}, syserr.Newf(err, "stage: import-files: resolving %s", name)
		}
		dest := filepath.Join(workspace, filepath.Base(src))
		plog.Debugf("importing %s -> %s", src, dest)
		if err := copyFile(src, dest); err != nil {
			return Result{}, syserr.Newf(err, "stage: import-files: copying %s", name)
		}
	}
	return ok(), nil
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}
