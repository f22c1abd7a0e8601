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

// Package render turns a model.Output tree into text, via a Formatter
// abstraction so the same tree walk serves multiple output formats.
package render

// Formatter is the minimal set of text operations a tree walk needs;
// a concrete Formatter (Markdown, plain text) decides how each maps to
// literal characters.
type Formatter interface {
	// Heading wraps text at the given nesting depth (1 = top level).
	Heading(depth int, text string) string
	Plain(text string) string
	Bold(text string) string
	Italic(text string) string
	CodeBlock(text string) string
	// Newline separates items within a section; Paragraph separates
	// top-level sections.
	Newline() string
	Paragraph() string
}
