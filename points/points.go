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

// Package points implements the autograder's fixed-precision grading
// arithmetic: a non-negative scalar constrained to multiples of 0.25
// with at most two fractional digits.
package points

import (
	"fmt"

	"github.com/coreos/pkg/capnslog"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

var plog = capnslog.NewPackageLogger("github.com/coreos-grader/grader", "points")

// quarter is the smallest increment a Points value may differ by.
var quarter = decimal.New(25, -2)

// Points is a non-negative scalar, a multiple of 0.25, with at most
// two fractional digits. The zero value is zero points. Values built
// by FromFloat, FromString and the unmarshalers are held at a fixed
// exponent of -2 (hundredths); Add and Sub are exact decimal
// operations and never lose precision the way float addition can.
type Points struct {
	d decimal.Decimal
}

// Zero is the zero value of Points, spelled out for readability at
// call sites.
var Zero = Points{}

// FromFloat builds a Points from a float64, validating that it is
// non-negative, a multiple of 0.25, and expressible in two decimal
// digits.
func FromFloat(f float64) (Points, error) {
	return fromDecimal(decimal.NewFromFloat(f))
}

// MustFromFloat is FromFloat but panics on an invalid value. Intended
// for constructing well-known constants, not for validating external
// input.
func MustFromFloat(f float64) Points {
	p, err := FromFloat(f)
	if err != nil {
		panic(err)
	}
	return p
}

// FromString parses a decimal string ("1.25") into a Points.
func FromString(s string) (Points, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Points{}, fmt.Errorf("points: %q is not a decimal number: %w", s, err)
	}
	return fromDecimal(d)
}

func fromDecimal(d decimal.Decimal) (Points, error) {
	if d.IsNegative() {
		return Points{}, fmt.Errorf("points: %s is negative", d.String())
	}
	if !d.Round(2).Equal(d) {
		return Points{}, fmt.Errorf("points: %s has more than two decimal digits", d.String())
	}
	if !d.Mod(quarter).IsZero() {
		return Points{}, fmt.Errorf("points: %s is not a multiple of 0.25", d.String())
	}
	return Points{d: d.Rescale(-2)}, nil
}

// Add returns p+q exactly.
func (p Points) Add(q Points) Points {
	return Points{d: p.d.Add(q.d)}
}

// Sub returns p-q. The result must not be negative: a Points
// subtraction that would underflow is a programmer error (the caller
// should have checked with Cmp or used a saturating operation such as
// Score.Remove), so Sub panics rather than clamping.
func (p Points) Sub(q Points) Points {
	if p.d.LessThan(q.d) {
		plog.Errorf("points: rejecting underflowing subtraction %s - %s", p, q)
		panic(fmt.Sprintf("points: %s - %s underflows", p, q))
	}
	return Points{d: p.d.Sub(q.d)}
}

// saturatingSub returns max(p-q, 0) without panicking. Unexported:
// the only sanctioned caller is Score.Remove, per the invariant that
// Points.Sub itself never saturates.
func (p Points) saturatingSub(q Points) Points {
	if p.d.LessThan(q.d) {
		return Zero
	}
	return p.Sub(q)
}

// Cmp compares p to q: -1, 0, or 1.
func (p Points) Cmp(q Points) int {
	return p.d.Cmp(q.d)
}

// IsZero reports whether p is zero.
func (p Points) IsZero() bool {
	return p.d.IsZero()
}

// Float64 returns the nearest float64 to p. Intended for JSON
// serialization (spec.md's results JSON represents Points as floats),
// not for further arithmetic.
func (p Points) Float64() float64 {
	f, _ := p.d.Float64()
	return f
}

// String renders p with exactly two decimal places.
func (p Points) String() string {
	return p.d.StringFixed(2)
}

// MarshalJSON renders p as a JSON number with two decimal places.
func (p Points) MarshalJSON() ([]byte, error) {
	return []byte(p.d.StringFixed(2)), nil
}

// UnmarshalJSON parses a JSON number into a validated Points.
func (p *Points) UnmarshalJSON(b []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(b); err != nil {
		return err
	}
	got, err := fromDecimal(d)
	if err != nil {
		return err
	}
	*p = got
	return nil
}

// UnmarshalYAML parses a YAML scalar (number or decimal string) into a
// validated Points.
func (p *Points) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return fmt.Errorf("points: %w", err)
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return fmt.Errorf("points: %q is not a decimal number: %w", raw, err)
	}
	got, err := fromDecimal(d)
	if err != nil {
		return err
	}
	*p = got
	return nil
}
