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

package points

import "strconv"

// TestID is a 32-bit non-negative test identifier. It names a test
// directory (test_<id>) on disk and a workspace (test_<id>) at run
// time, so it must round-trip cleanly through both a path component
// and JSON.
type TestID uint32

// String renders the bare decimal id, e.g. for use in "test_<id>".
func (id TestID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// Compare returns -1, 0, or 1 comparing id to o, for sorting.
func (id TestID) Compare(o TestID) int {
	switch {
	case id < o:
		return -1
	case id > o:
		return 1
	default:
		return 0
	}
}
