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

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Quantity is a tagged value: either FullPoints (absorbing; zeroes
// out whatever it's added to) or a concrete Partial deduction.
type Quantity struct {
	full    bool
	partial Points
}

// Full returns the FullPoints quantity.
func Full() Quantity {
	return Quantity{full: true}
}

// Partial returns a concrete partial-deduction quantity.
func Partial(p Points) Quantity {
	return Quantity{partial: p}
}

// IsFull reports whether q is the FullPoints quantity.
func (q Quantity) IsFull() bool {
	return q.full
}

// Points returns the underlying Points value and true if q is
// Partial, or the zero value and false if q is FullPoints.
func (q Quantity) Points() (Points, bool) {
	if q.full {
		return Zero, false
	}
	return q.partial, true
}

// Add sums two quantities. FullPoints absorbs: if either operand is
// FullPoints, so is the sum.
func (q Quantity) Add(o Quantity) Quantity {
	if q.full || o.full {
		return Full()
	}
	return Partial(q.partial.Add(o.partial))
}

func (q Quantity) String() string {
	if q.full {
		return "fullpoints"
	}
	return q.partial.String()
}

// UnmarshalYAML decodes the wire form of PointQuantity: either the bare
// string "FullPoints" or a mapping {Partial: <number>}.
func (q *Quantity) UnmarshalYAML(value *yaml.Node) error {
	var bare string
	if err := value.Decode(&bare); err == nil {
		if bare == "FullPoints" {
			*q = Full()
			return nil
		}
		return fmt.Errorf("points: unrecognized bare point quantity %q", bare)
	}

	var mapped struct {
		Partial Points `yaml:"Partial"`
	}
	if err := value.Decode(&mapped); err != nil {
		return fmt.Errorf("points: decoding point quantity: %w", err)
	}
	*q = Partial(mapped.Partial)
	return nil
}
