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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coreos-grader/grader/model"
	"github.com/coreos-grader/grader/points"
)

func TestRenderMarkdownHeadingsByDepth(t *testing.T) {
	out := model.Output{
		model.NewSection("Top", model.NewSubSection("Nested", model.NewSubSection("Deep", model.NewBlock("x")))),
	}
	got := Render(out, Markdown{})
	assert.Contains(t, got, "# Top")
	assert.Contains(t, got, "## Nested")
	assert.Contains(t, got, "### Deep")
}

func TestRenderStatusListAlignment(t *testing.T) {
	list := model.NewStatusList(
		model.NewPass("short"),
		model.NewPass("a longer description"),
	)
	out := model.Output{model.NewSection("Results", list)}
	got := Render(out, Markdown{})

	lines := strings.Split(got, "\n")
	var statusCol int
	for _, line := range lines {
		if idx := strings.Index(line, "pass"); idx >= 0 {
			if statusCol == 0 {
				statusCol = idx
			} else {
				assert.Equal(t, statusCol, idx)
			}
		}
	}
	assert.Equal(t, len("a longer description")+5, statusCol)
}

func TestRenderFailStatusShowsDeduction(t *testing.T) {
	list := model.NewStatusList(model.NewFail("check a", points.Partial(points.MustFromFloat(1.5)), nil))
	out := model.Output{model.NewSection("Results", list)}
	got := Render(out, Markdown{})
	assert.Contains(t, got, "fail (-1.50)")
}

func TestRenderFailStatusFullPoints(t *testing.T) {
	list := model.NewStatusList(model.NewFail("check a", points.Full(), nil))
	out := model.Output{model.NewSection("Results", list)}
	got := Render(out, Markdown{})
	assert.Contains(t, got, "fail (-fullpoints)")
}

func TestRenderStatusListWithNotesAddsFeedbackSection(t *testing.T) {
	list := model.NewStatusList(model.NewFail("check a", points.Full(), model.NewBlock("explanation")))
	out := model.Output{model.NewSection("Results", list)}
	got := Render(out, Markdown{})
	assert.Contains(t, got, "feedback for check a")
	assert.Contains(t, got, "explanation")
}

func TestRenderIsPure(t *testing.T) {
	out := model.Output{model.NewSection("A", model.NewBlock("x"))}
	assert.Equal(t, Render(out, Markdown{}), Render(out, Markdown{}))
}

func TestByteTransformPrintableAndLF(t *testing.T) {
	input := []byte("ab\ncd")
	got := ByteTransform(input)
	var stripped strings.Builder
	for _, line := range strings.Split(got, "\n") {
		idx := strings.Index(line, "| ")
		if idx < 0 {
			stripped.WriteString(line)
			continue
		}
		stripped.WriteString(line[idx+2:])
	}
	assert.NotEmpty(t, stripped.String())
}

func TestByteTransformControlBytes(t *testing.T) {
	got := ByteTransform([]byte{0, 9, 10, 11, 12, 13, 32, 5})
	assert.Equal(t, "01| (\\x00)(\\t)\\n\n02| (\\v)(\\f)(\\r) (0x5)", got)
}
