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

package compiler

import (
	"strings"

	"github.com/xiyihan0/momoscript/diag"
	"github.com/xiyihan0/momoscript/segment"
)

// buildContent folds a node's raw, lexer-joined Content into the final
// string the compiler emits (spec.md §4.1 "Blank lines", §6.1
// join_continuation_with). The lexer always joins continuation lines
// and blank-line separators alike with a literal "\n", since it has no
// mode flag to act on; splitting on "\n" and dropping the empty
// elements a blank line produces recovers exactly which newlines were
// blank-line artifacts, because a real continuation line's trimmed text
// is never empty (processContinuation never sees trimmed == "").
//
// In Typst mode each blank-line run is preserved verbatim as that many
// literal newlines ahead of the join separator; outside Typst mode it
// is dropped and only the configured join separator remains.
func (c *Compiler) buildContent(raw string) string {
	parts := strings.Split(raw, "\n")

	var segs []string
	var blanksBefore []int
	blanks := 0
	for _, p := range parts {
		if p == "" {
			blanks++
			continue
		}
		if len(segs) > 0 {
			blanksBefore = append(blanksBefore, blanks)
		}
		segs = append(segs, p)
		blanks = 0
	}
	if len(segs) == 0 {
		return ""
	}

	joinSep := "\n"
	if c.mode.JoinContinuationWith == JoinSpace {
		joinSep = " "
	}

	var b strings.Builder
	b.WriteString(segs[0])
	for i := 1; i < len(segs); i++ {
		if c.mode.TypstMode {
			b.WriteString(strings.Repeat("\n", blanksBefore[i-1]))
		}
		b.WriteString(joinSep)
		b.WriteString(segs[i])
	}
	return b.String()
}

// segMode reports which bracket grammar governs inline-segment parsing
// under the compiler's current mode flags.
func (c *Compiler) segMode() segment.Mode {
	if c.mode.TypstMode {
		return segment.Typst
	}
	return segment.Plain
}

// parseAndResolveSegments runs segment.Parse over content and resolves
// every expr segment's raw Target selector in place (spec.md §4.5's
// "TARGET follows §4.4 rules... stored as string" plus §3.6's
// target_char_id). An expr segment with no explicit target defaults to
// defaultTarget — the current line's speaker for a TEXT line, "" (no
// default) for NARRATION/REPLY/BOND.
func (c *Compiler) parseAndResolveSegments(content string, sp diag.Span, defaultTarget string) []segment.Segment {
	segs := segment.Parse(content, c.segMode())
	for i := range segs {
		if segs[i].Type != segment.Expr {
			continue
		}
		segs[i].LineNo = sp.StartLine
		if segs[i].Target == "" {
			segs[i].Target = defaultTarget
			continue
		}
		charID, ok := c.resolveSelector(segs[i].Target, sp)
		if !ok {
			continue
		}
		segs[i].Target = charID
	}
	return segs
}
