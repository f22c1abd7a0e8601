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

// Package model defines the structured, nestable feedback document a
// stage produces and a TestResult accumulates. Output is a tree of
// Sections; rendering it into text is the job of package render.
//
// Values here are immutable once built: Section/Content/RichText are
// plain structs holding strings and slices, so a copy is a cheap
// value copy that shares the underlying string/array storage with
// the original, never a deep clone of large text bodies.
package model

// Output is an ordered sequence of top-level sections.
type Output []Section

// Append returns a new Output with extra's sections appended. It does
// not mutate o or extra.
func (o Output) Append(extra Output) Output {
	out := make(Output, 0, len(o)+len(extra))
	out = append(out, o...)
	out = append(out, extra...)
	return out
}

// Section is a titled group of content.
type Section struct {
	Header  string
	Content []Content
}

// NewSection builds a Section from a header and zero or more content
// items.
func NewSection(header string, content ...Content) Section {
	return Section{Header: header, Content: content}
}

// Content is one node inside a Section: a nested SubSection, a plain
// Block of rich text, a StatusList, or a Multiline grouping of other
// Content. It is a closed set; the only implementations are the ones
// in this package.
type Content interface {
	isContent()
}

// SubSection nests a full Section as a content item, one level
// deeper than its parent.
type SubSection struct {
	Section Section
}

func (SubSection) isContent() {}

// NewSubSection is a convenience wrapping NewSection in a Content.
func NewSubSection(header string, content ...Content) Content {
	return SubSection{Section: NewSection(header, content...)}
}

// Block is a single run of rich text.
type Block struct {
	Text RichText
}

func (Block) isContent() {}

// NewBlock wraps text as a plain (non-code) Block.
func NewBlock(text string) Content {
	return Block{Text: RichText{Text: text}}
}

// NewCodeBlock wraps text as a code Block.
func NewCodeBlock(text string) Content {
	return Block{Text: RichText{Text: text, Code: true}}
}

// RichText is a run of text, optionally flagged as code (rendered in
// a monospace/fenced style by a Formatter).
type RichText struct {
	Text string
	Code bool
}

// Multiline groups several Content items that should be rendered on
// successive lines rather than joined as prose.
type Multiline struct {
	Items []Content
}

func (Multiline) isContent() {}

// NewMultiline builds a Multiline from the given items.
func NewMultiline(items ...Content) Content {
	return Multiline{Items: items}
}
