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

import "strings"

// Text is the plain-text Formatter named alongside Markdown in the
// results JSON's output_format field. Headings are rendered as the
// text underlined with "=" at the top level and with "-" when nested;
// there is no bold/italic markup, and a code block is delimited by a
// line of dashes.
type Text struct{}

func (Text) Heading(depth int, text string) string {
	underline := strings.Repeat("=", len(text))
	if depth > 1 {
		underline = strings.Repeat("-", len(text))
	}
	return text + "\n" + underline
}

func (Text) Plain(text string) string { return text }

func (Text) Bold(text string) string { return text }

func (Text) Italic(text string) string { return text }

func (Text) CodeBlock(text string) string {
	rule := "----------------"
	return rule + "\n" + text + "\n" + rule
}

func (Text) Newline() string { return "\n\n" }

func (Text) Paragraph() string { return "\n\n\n" }
