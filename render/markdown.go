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

import "fmt"

// Markdown is the Formatter spec.md names explicitly: h1/h2/h3 via
// "#"/"##"/"###", triple-backtick fenced code, blank-line-separated
// paragraphs.
type Markdown struct{}

func (Markdown) Heading(depth int, text string) string {
	switch {
	case depth <= 1:
		return "# " + text
	case depth == 2:
		return "## " + text
	default:
		return "### " + text
	}
}

func (Markdown) Plain(text string) string { return text }

func (Markdown) Bold(text string) string { return fmt.Sprintf("**%s**", text) }

func (Markdown) Italic(text string) string { return fmt.Sprintf("*%s*", text) }

func (Markdown) CodeBlock(text string) string {
	return "```\n" + text + "\n```"
}

func (Markdown) Newline() string { return "\n\n" }

func (Markdown) Paragraph() string { return "\n\n\n" }
