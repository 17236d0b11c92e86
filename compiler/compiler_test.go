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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xiyihan0/momoscript/ir"
	"github.com/xiyihan0/momoscript/lexer"
)

func TestCompileFullScenario(t *testing.T) {
	reg := newFakeRegistry()
	reg.addPack("ba", map[string]string{"星野": "hoshino"})

	src := "@title Demo\n" +
		"@usepack ba as ba\n" +
		"- It was a quiet afternoon.\n" +
		"> 星野: Hello, sensei!\n" +
		"< Hi there.\n" +
		"@bond\n" +
		"@pagebreak\n" +
		"@reply: Yes|No\n"

	nodes, diags := lexer.Parse(src)
	assert.Empty(t, diags)

	doc, compileDiags, err := New(reg, ModeFlags{}).Compile(nodes)
	assert.NoError(t, err)
	assert.Empty(t, compileDiags)

	title, ok := doc.Meta.Get("title")
	assert.True(t, ok)
	assert.Equal(t, "Demo", title)

	if assert.Len(t, doc.Chat, 6) {
		narration, ok := doc.Chat[0].(ir.NarrationLine)
		assert.True(t, ok)
		assert.Equal(t, "It was a quiet afternoon.", narration.Content)

		left, ok := doc.Chat[1].(ir.TextLine)
		assert.True(t, ok)
		assert.Equal(t, "ba.hoshino", left.CharID)
		assert.Equal(t, "left", left.Side)
		assert.Equal(t, "Hello, sensei!", left.Content)

		right, ok := doc.Chat[2].(ir.TextLine)
		assert.True(t, ok)
		assert.Equal(t, SenseiCharID, right.CharID)
		assert.Equal(t, "right", right.Side)

		bond, ok := doc.Chat[3].(ir.BondLine)
		assert.True(t, ok)
		assert.Equal(t, "进入Sensei的羁绊剧情", bond.Content)

		_, ok = doc.Chat[4].(ir.PageBreakLine)
		assert.True(t, ok)

		reply, ok := doc.Chat[5].(ir.ReplyLine)
		assert.True(t, ok)
		if assert.Len(t, reply.Items, 2) {
			assert.Equal(t, "Yes", reply.Items[0].Text)
			assert.Equal(t, "No", reply.Items[1].Text)
		}
	}
}

func TestCompileCustomCharWithAvatarIsFlushedToCustomChars(t *testing.T) {
	reg := newFakeRegistry()

	src := "@asset.yz_ava assets/yz/avatar.png\n" +
		"@charid yz 柚子\n" +
		"@avatarid yz yz_ava\n" +
		"> yz: Hello!\n"

	nodes, diags := lexer.Parse(src)
	assert.Empty(t, diags)

	doc, compileDiags, err := New(reg, ModeFlags{}).Compile(nodes)
	assert.NoError(t, err)
	assert.Empty(t, compileDiags)

	if assert.Len(t, doc.CustomChars, 1) {
		cc := doc.CustomChars[0]
		assert.Equal(t, "yz", cc.CharID)
		assert.Equal(t, "柚子", cc.DisplayName)
		assert.Equal(t, "assets/yz/avatar.png", cc.AvatarRef)
	}
}

func TestCompileUnknownPackIsFatal(t *testing.T) {
	reg := newFakeRegistry()
	nodes, diags := lexer.Parse("@usepack missing as m\n")
	assert.Empty(t, diags)

	doc, compileDiags, err := New(reg, ModeFlags{}).Compile(nodes)
	assert.Nil(t, doc)
	assert.Error(t, err)
	if assert.NotEmpty(t, compileDiags) {
		assert.Equal(t, "UnknownPack", string(compileDiags[len(compileDiags)-1].Kind))
	}
}

func TestCompileNoCurrentSpeakerOnLeftIsFatal(t *testing.T) {
	reg := newFakeRegistry()
	nodes, diags := lexer.Parse("> Hello\n")
	assert.Empty(t, diags)

	doc, _, err := New(reg, ModeFlags{}).Compile(nodes)
	assert.Nil(t, doc)
	assert.Error(t, err)
}

func TestCompileRightDefaultsToSensei(t *testing.T) {
	reg := newFakeRegistry()
	nodes, diags := lexer.Parse("< Hello sensei\n")
	assert.Empty(t, diags)

	doc, _, err := New(reg, ModeFlags{}).Compile(nodes)
	assert.NoError(t, err)
	if assert.Len(t, doc.Chat, 1) {
		line := doc.Chat[0].(ir.TextLine)
		assert.Equal(t, SenseiCharID, line.CharID)
	}
}

func TestCompileBackrefResolvesMostRecentOnSide(t *testing.T) {
	reg := newFakeRegistry()
	reg.addPack("ba", map[string]string{"星野": "hoshino", "小鸟游星野": "sorasaki"})

	src := "> 星野: first\n" +
		"> 小鸟游星野: second\n" +
		"> _1: third\n"
	nodes, diags := lexer.Parse(src)
	assert.Empty(t, diags)

	doc, compileDiags, err := New(reg, ModeFlags{}).Compile(nodes)
	assert.NoError(t, err)
	assert.Empty(t, compileDiags)
	if assert.Len(t, doc.Chat, 3) {
		third := doc.Chat[2].(ir.TextLine)
		assert.Equal(t, "ba.sorasaki", third.CharID)
	}
}
