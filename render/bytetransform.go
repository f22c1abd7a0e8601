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
)

// ByteTransform renders arbitrary file content for the "Expected"/
// "Actual" sections of a failed diff: every line gets a zero-padded
// "NN| " prefix starting at 01, control bytes are spelled out as
// parenthesized escapes, printable ASCII passes through verbatim, and
// anything else is rendered as a lowercase hex escape.
func ByteTransform(data []byte) string {
	var out strings.Builder
	line := 1
	writeLineNumber := func() {
		fmt.Fprintf(&out, "%02d| ", line)
		line++
	}
	writeLineNumber()
	for _, b := range data {
		switch b {
		case 0x00:
			out.WriteString(`(\x00)`)
		case 9:
			out.WriteString(`(\t)`)
		case 10:
			out.WriteString(`\n`)
			out.WriteByte('\n')
			writeLineNumber()
		case 11:
			out.WriteString(`(\v)`)
		case 12:
			out.WriteString(`(\f)`)
		case 13:
			out.WriteString(`(\r)`)
		default:
			if b >= 0x20 && b <= 0x7E {
				out.WriteByte(b)
			} else {
				fmt.Fprintf(&out, "(0x%x)", b)
			}
		}
	}
	return out.String()
}
