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
	"github.com/coreos-grader/grader/points"
)

// StatusList is a non-empty sequence of Updates, rendered as an
// aligned pass/fail table by package render.
type StatusList struct {
	Updates []Update
}

func (StatusList) isContent() {}

// NewStatusList builds a StatusList content item. It panics if given
// no updates: spec.md requires a StatusList always contain at least
// one Update, and a stage author forgetting to add one is a
// programmer error, not a runtime condition to recover from.
func NewStatusList(updates ...Update) Content {
	if len(updates) == 0 {
		panic("model: NewStatusList requires at least one Update")
	}
	return StatusList{Updates: updates}
}

// Update is one line of a StatusList: what was checked, whether it
// passed, and optional supporting Content shown as "feedback for
// <description>" whenever it is set, whatever the Update's status.
type Update struct {
	Description string
	Status      Status
	Notes       Content // nil if there is nothing more to show
}

// NewPass builds a passing Update.
func NewPass(description string) Update {
	return Update{Description: description, Status: Pass{}}
}

// NewFail builds a failing Update deducting lost, with optional notes
// (pass nil for none).
func NewFail(description string, lost points.Quantity, notes Content) Update {
	return Update{Description: description, Status: Fail{PointsLost: lost}, Notes: notes}
}

// Status is either Pass or Fail{PointsLost}. The set of
// implementations is closed to this package; package render type-
// switches on the concrete types to decide how to render each line.
type Status interface {
	isStatus()
}

// Pass is a passing status; no points were lost.
type Pass struct{}

func (Pass) isStatus() {}

// Fail is a failing status deducting PointsLost.
type Fail struct {
	PointsLost points.Quantity
}

func (Fail) isStatus() {}
