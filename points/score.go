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

import "fmt"

// Score is a (received, possible) pair. The invariant received <=
// possible is maintained by every constructor and mutator below.
type Score struct {
	Received Points
	Possible Points
}

// ZeroPoints returns a Score with no points received out of max.
func ZeroPoints(max Points) Score {
	return Score{Received: Zero, Possible: max}
}

// FullPoints returns a Score with every point received.
func FullPoints(max Points) Score {
	return Score{Received: max, Possible: max}
}

// Add returns the componentwise sum of s and o.
func (s Score) Add(o Score) Score {
	return Score{
		Received: s.Received.Add(o.Received),
		Possible: s.Possible.Add(o.Possible),
	}
}

// Remove deducts p points from the received total, saturating at zero
// (unlike Points.Sub, which panics on underflow: a Score can always
// legally lose more points than a test currently holds, e.g. via two
// independent stages each deducting full marks).
func (s Score) Remove(p Points) Score {
	return Score{
		Received: s.Received.saturatingSub(p),
		Possible: s.Possible,
	}
}

// Full reports whether every possible point was received.
func (s Score) Full() bool {
	return s.Received.Cmp(s.Possible) == 0
}

func (s Score) String() string {
	return fmt.Sprintf("%s/%s", s.Received, s.Possible)
}
