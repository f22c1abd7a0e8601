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

import "os"

// StdinSource describes where a subprocess's stdin comes from. The
// zero value (nil StdinSource) means no stdin pipe is attached at all.
type StdinSource interface {
	isStdinSource()
}

// StdinString feeds a literal string to stdin.
type StdinString string

func (StdinString) isStdinSource() {}

// StdinPath opens and streams a file's contents to stdin.
type StdinPath string

func (StdinPath) isStdinSource() {}

// StdinFile streams an already-open file to stdin. The executor
// rewinds it to offset 0 before copying, since the caller may have
// left the cursor anywhere (e.g. just after writing it).
type StdinFile struct {
	File *os.File
}

func (StdinFile) isStdinSource() {}
