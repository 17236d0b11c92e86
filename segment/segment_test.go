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

package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePlainTextOnly(t *testing.T) {
	segs := Parse("just some text", Plain)
	assert.Equal(t, []Segment{{Type: Text, Text: "just some text"}}, segs)
}

func TestParseBracketQueryOnly(t *testing.T) {
	segs := Parse("hello [smile] world", Plain)
	assert.Equal(t, []Segment{
		{Type: Text, Text: "hello "},
		{Type: Expr, Query: "smile"},
		{Type: Text, Text: " world"},
	}, segs)
}

func TestParseBracketWithTrailingTarget(t *testing.T) {
	segs := Parse("[smile](ba.星野)", Plain)
	assert.Equal(t, []Segment{
		{Type: Expr, Query: "smile", Target: "ba.星野"},
	}, segs)
}

func TestParseLeadingParenTarget(t *testing.T) {
	segs := Parse("(ba.星野)[smile]", Plain)
	assert.Equal(t, []Segment{
		{Type: Expr, Query: "smile", Target: "ba.星野"},
	}, segs)
}

func TestParseEscapedBrackets(t *testing.T) {
	segs := Parse(`\[literal\]`, Plain)
	assert.Equal(t, []Segment{{Type: Text, Text: "[literal]"}}, segs)
}

func TestParseEmptyBracketStaysLiteral(t *testing.T) {
	segs := Parse("[]", Plain)
	assert.Equal(t, []Segment{{Type: Text, Text: "[]"}}, segs)
}

func TestParseSchemelessURL(t *testing.T) {
	segs := Parse("[://example.com/a.png]", Plain)
	assert.Equal(t, []Segment{{Type: Expr, Query: "example.com/a.png"}}, segs)
}

func TestParseTypstModeBareBracketStaysLiteral(t *testing.T) {
	segs := Parse("[smile]", Typst)
	assert.Equal(t, []Segment{{Type: Text, Text: "[smile]"}}, segs)
}

func TestParseTypstModeColonBracket(t *testing.T) {
	segs := Parse("[:smile]", Typst)
	assert.Equal(t, []Segment{{Type: Expr, Query: "smile"}}, segs)
}

func TestParseUnbalancedBracketIsLiteral(t *testing.T) {
	segs := Parse("oops [unclosed", Plain)
	assert.Equal(t, []Segment{{Type: Text, Text: "oops [unclosed"}}, segs)
}

func TestImageOnlySingleExprNoText(t *testing.T) {
	assert.True(t, ImageOnly([]Segment{{Type: Expr, Query: "smile"}}))
}

func TestImageOnlyWithWhitespaceOnly(t *testing.T) {
	assert.True(t, ImageOnly([]Segment{
		{Type: Text, Text: "   "},
		{Type: Expr, Query: "smile"},
	}))
}

func TestImageOnlyFalseWithRealText(t *testing.T) {
	assert.False(t, ImageOnly([]Segment{
		{Type: Text, Text: "hi "},
		{Type: Expr, Query: "smile"},
	}))
}

func TestImageOnlyFalseWithTwoMedia(t *testing.T) {
	assert.False(t, ImageOnly([]Segment{
		{Type: Expr, Query: "smile"},
		{Type: Image, Ref: "x.png"},
	}))
}

func TestImageOnlyFalseWithNoMedia(t *testing.T) {
	assert.False(t, ImageOnly([]Segment{{Type: Text, Text: "hi"}}))
}
