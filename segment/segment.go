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

// Package segment parses bubble/narration content strings into ordered
// text/image/expr segments (spec.md §4.5): walk the string left to
// right, peel off one recognized token at a time, and accumulate the
// rest as plain text.
package segment

import (
	"strings"
)

// Kind discriminates a Segment.
type Kind string

const (
	Text  Kind = "text"
	Image Kind = "image"
	Expr  Kind = "expr"
)

// Segment is one element of a parsed content string. Target holds the
// optional "(TARGET)[...]"/"[...](TARGET)" selector text verbatim as
// parsed here; the compiler resolves it to a canonical char_id (falling
// back to the current speaker when a TEXT line's expr segment carries
// no explicit target) and overwrites it in place before the segment is
// embedded in the IR, where it serializes as target_char_id. LineNo is
// filled in by the compiler for expr segments with the source line of
// the chat line they belong to; zero here.
type Segment struct {
	Type   Kind   `json:"type"`
	Text   string `json:"text,omitempty"`
	Query  string `json:"query,omitempty"`
	Target string `json:"target_char_id,omitempty"`
	Ref    string `json:"ref,omitempty"`
	LineNo int    `json:"line_no,omitempty"`
}

// Mode selects which bracket grammar governs a content string.
type Mode int

const (
	Plain Mode = iota
	Typst
)

// Parse scans content under the given mode and returns its ordered
// segment list. Escaped brackets ("\[", "\]") become literal '[' / ']'
// in the surrounding text segment.
func Parse(content string, mode Mode) []Segment {
	var segs []Segment
	var textBuf strings.Builder

	flushText := func() {
		if textBuf.Len() > 0 {
			segs = append(segs, Segment{Type: Text, Text: textBuf.String()})
			textBuf.Reset()
		}
	}

	runes := []rune(content)
	i := 0
	for i < len(runes) {
		c := runes[i]

		if c == '\\' && i+1 < len(runes) && (runes[i+1] == '[' || runes[i+1] == ']') {
			textBuf.WriteRune(runes[i+1])
			i += 2
			continue
		}

		// (TARGET)[QUERY] form
		if c == '(' {
			if target, query, consumed, ok := matchParenBracket(runes[i:], mode); ok {
				flushText()
				segs = append(segs, exprSegment(query, target, mode))
				i += consumed
				continue
			}
		}

		if c == '[' {
			if query, target, consumed, ok := matchBracket(runes[i:], mode); ok {
				flushText()
				segs = append(segs, exprSegment(query, target, mode))
				i += consumed
				continue
			}
		}

		textBuf.WriteRune(c)
		i++
	}
	flushText()
	return segs
}

// exprSegment builds the expr segment for a recognized bracket form.
// spec.md §4.5 enumerates the concrete query shapes ("asset:NAME",
// "#ALIAS.N", a bare URL, or a free-form query) but they all carry the
// same (query, target) pair — the resolver collaborator is what
// interprets the query string, not this parser.
func exprSegment(query, target string, mode Mode) Segment {
	return Segment{Type: Expr, Query: query, Target: target}
}

// matchBracket recognizes "[QUERY]" (and its Typst-gated "[:QUERY]"
// variant) plus the "[QUERY](TARGET)" trailing-target form, starting at
// runes[0] == '['. It returns the extracted query, an optional target,
// how many runes were consumed, and whether a bracket form matched at
// all (vs. falling through to literal text).
func matchBracket(runes []rune, mode Mode) (query, target string, consumed int, ok bool) {
	end := findMatchingBracket(runes, 0)
	if end < 0 {
		return "", "", 0, false
	}
	inner := string(runes[1:end])
	consumed = end + 1

	if mode == Typst {
		if !strings.HasPrefix(inner, ":") {
			return "", "", 0, false // bare [...] stays literal text in Typst mode
		}
		inner = strings.TrimPrefix(inner, ":")
	} else if inner == "" {
		return "", "", 0, false
	} else if strings.HasPrefix(inner, "://") {
		// "[://URL]" — the scheme-less marker is dropped, leaving the bare URL.
		inner = strings.TrimPrefix(inner, "://")
	}

	// trailing "(TARGET)" after the closing bracket
	if consumed < len(runes) && runes[consumed] == '(' {
		if t, tc, tok := matchParen(runes[consumed:]); tok {
			return inner, t, consumed + tc, true
		}
	}
	return inner, "", consumed, true
}

// matchParenBracket recognizes the leading "(TARGET)[QUERY]" form,
// starting at runes[0] == '('.
func matchParenBracket(runes []rune, mode Mode) (target, query string, consumed int, ok bool) {
	t, tc, tok := matchParen(runes)
	if !tok || tc >= len(runes) || runes[tc] != '[' {
		return "", "", 0, false
	}
	q, _, bc, bok := matchBracket(runes[tc:], mode)
	if !bok {
		return "", "", 0, false
	}
	return t, q, tc + bc, true
}

func matchParen(runes []rune) (target string, consumed int, ok bool) {
	if len(runes) == 0 || runes[0] != '(' {
		return "", 0, false
	}
	end := findMatching(runes, 0, '(', ')')
	if end < 0 {
		return "", 0, false
	}
	return string(runes[1:end]), end + 1, true
}

func findMatchingBracket(runes []rune, start int) int {
	return findMatching(runes, start, '[', ']')
}

// findMatching returns the index of the rune closing the open/close
// pair that begins at runes[start], or -1 if unbalanced/escaped before
// it closes. Content here is never expected to nest same-kind brackets
// (spec.md's grammar is flat), so the first matching close wins.
func findMatching(runes []rune, start int, open, close rune) int {
	if runes[start] != open {
		return -1
	}
	for i := start + 1; i < len(runes); i++ {
		if runes[i] == '\\' && i+1 < len(runes) {
			i++
			continue
		}
		if runes[i] == close {
			return i
		}
		if runes[i] == '\n' {
			return -1
		}
	}
	return -1
}

// ImageOnly reports whether segs represents a line whose rendering
// hint is "image only" (spec.md §4.5): exactly one image/expr segment
// and no non-whitespace text.
func ImageOnly(segs []Segment) bool {
	var mediaCount int
	for _, s := range segs {
		switch s.Type {
		case Image, Expr:
			mediaCount++
		case Text:
			if strings.TrimSpace(s.Text) != "" {
				return false
			}
		}
	}
	return mediaCount == 1
}
