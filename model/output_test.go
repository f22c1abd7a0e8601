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

package model

import (
	"testing"

	"github.com/coreos-grader/grader/points"
	"github.com/stretchr/testify/assert"
)

func TestNewStatusListRejectsEmpty(t *testing.T) {
	assert.Panics(t, func() { NewStatusList() })
}

func TestNewStatusListAcceptsOne(t *testing.T) {
	assert.NotPanics(t, func() { NewStatusList(NewPass("compiles")) })
}

func TestOutputAppendDoesNotMutate(t *testing.T) {
	a := Output{NewSection("A")}
	b := Output{NewSection("B")}
	combined := a.Append(b)
	assert.Len(t, a, 1)
	assert.Len(t, b, 1)
	assert.Len(t, combined, 2)
}

func TestFailStatusCarriesPointsLost(t *testing.T) {
	u := NewFail("compare output", points.Partial(points.MustFromFloat(1)), nil)
	f, ok := u.Status.(Fail)
	assert.True(t, ok)
	lost, partial := f.PointsLost.Points()
	assert.True(t, partial)
	assert.Equal(t, "1.00", lost.String())
}
