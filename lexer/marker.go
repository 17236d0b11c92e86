// Copyright 2024 Tomas Machalek <tomas.machalek@gmail.com>
// Copyright 2024 Charles University, Faculty of Arts,
//                Institute of the Czech National Corpus
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package lexer

import (
	"regexp"
	"strconv"

	"github.com/xiyihan0/momoscript/ast"
)

// selector permits the code-point ranges spec.md §4.1 names: ASCII
// word characters plus U+0080-U+FFFF (covers CJK and friends), and the
// '.', '(', ')' punctuation used by namespaced/skinned selectors.
var (
	reBackref  = regexp.MustCompile(`^_(\d*):(.*)$`)
	reIndex    = regexp.MustCompile(`^~(\d+):(.*)$`)
	reExplicit = regexp.MustCompile(`^([A-Za-z0-9_\x{0080}-\x{FFFF}][A-Za-z0-9_.()\x{0080}-\x{FFFF}]*):(.*)$`)
)

// splitMarker implements the "marker pre-parse" of spec.md §4.1: find
// the first unescaped ':' preceded by a permissible selector, and split
// the statement remainder into (marker, content). If no such colon
// exists the whole remainder is content and the marker is MarkerNone.
func splitMarker(remainder string) (ast.Marker, string) {
	if m := reBackref.FindStringSubmatch(remainder); m != nil {
		n := 1
		if m[1] != "" {
			if v, err := strconv.Atoi(m[1]); err == nil {
				n = v
			}
		}
		return ast.Marker{Kind: ast.MarkerBackref, N: n}, trimOneLeadingSpace(m[2])
	}
	if m := reIndex.FindStringSubmatch(remainder); m != nil {
		n, _ := strconv.Atoi(m[1])
		return ast.Marker{Kind: ast.MarkerIndex, N: n}, trimOneLeadingSpace(m[2])
	}
	if m := reExplicit.FindStringSubmatch(remainder); m != nil {
		return ast.Marker{Kind: ast.MarkerExplicit, Selector: m[1]}, trimOneLeadingSpace(m[2])
	}
	return ast.Marker{Kind: ast.MarkerNone}, remainder
}

func trimOneLeadingSpace(s string) string {
	if len(s) > 0 && s[0] == ' ' {
		return s[1:]
	}
	return s
}
