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

package render

import (
	"fmt"
	"strings"

	"github.com/coreos-grader/grader/model"
	"github.com/coreos-grader/grader/points"
)

// Render walks an Output tree into text using f. Rendering is pure:
// calling Render twice on the same tree with the same Formatter always
// produces identical output.
func Render(out model.Output, f Formatter) string {
	sections := make([]string, 0, len(out))
	for _, s := range out {
		sections = append(sections, renderSection(s, 1, f))
	}
	return strings.Join(sections, f.Paragraph())
}

func renderSection(s model.Section, depth int, f Formatter) string {
	parts := []string{f.Heading(depth, s.Header)}
	for _, c := range s.Content {
		parts = append(parts, renderContent(c, depth, f))
	}
	return strings.Join(parts, f.Newline())
}

func renderContent(c model.Content, depth int, f Formatter) string {
	switch v := c.(type) {
	case model.SubSection:
		return renderSection(v.Section, depth+1, f)
	case model.Block:
		if v.Text.Code {
			return f.CodeBlock(v.Text.Text)
		}
		return f.Plain(v.Text.Text)
	case model.Multiline:
		items := make([]string, 0, len(v.Items))
		for _, item := range v.Items {
			items = append(items, renderContent(item, depth, f))
		}
		return strings.Join(items, f.Newline())
	case model.StatusList:
		return renderStatusList(v, depth, f)
	default:
		panic(fmt.Sprintf("render: unknown content type %T", c))
	}
}

// renderStatusList implements spec.md §4.10's alignment rule: every
// status column begins at the same index, max_desc_len + 5, and
// every update with notes, passing or failing, gets a "feedback for
// <description>" subsection after a paragraph break.
func renderStatusList(list model.StatusList, depth int, f Formatter) string {
	maxDesc := 0
	for _, u := range list.Updates {
		if len(u.Description) > maxDesc {
			maxDesc = len(u.Description)
		}
	}

	lines := make([]string, 0, len(list.Updates))
	var withNotes []model.Update
	for _, u := range list.Updates {
		dots := 4 + maxDesc - len(u.Description)
		lines = append(lines, fmt.Sprintf("%s %s%s", u.Description, strings.Repeat(".", dots), statusText(u.Status)))
		if u.Notes != nil {
			withNotes = append(withNotes, u)
		}
	}

	out := f.Plain(strings.Join(lines, "\n"))
	if len(withNotes) == 0 {
		return out
	}

	feedback := make([]string, 0, len(withNotes))
	for _, u := range withNotes {
		header := fmt.Sprintf("feedback for %s", u.Description)
		feedback = append(feedback, renderSection(model.NewSection(header, u.Notes), depth+1, f))
	}
	return out + f.Paragraph() + strings.Join(feedback, f.Newline())
}

// statusText renders a Status as "pass" or "fail (-<quantity>)".
func statusText(s model.Status) string {
	switch v := s.(type) {
	case model.Pass:
		return "pass"
	case model.Fail:
		return fmt.Sprintf("fail (-%s)", quantityText(v.PointsLost))
	default:
		panic(fmt.Sprintf("render: unknown status type %T", s))
	}
}

func quantityText(q points.Quantity) string {
	if q.IsFull() {
		return "fullpoints"
	}
	p, _ := q.Points()
	return p.String()
}
