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
)

func TestResolveAssetRefMetaForm(t *testing.T) {
	reg := newFakeRegistry()
	c := New(reg, ModeFlags{})
	c.doc = ir.NewDocument()
	c.doc.Meta.Set("asset.myimg", "assets/myimg.png")

	path, ok := c.resolveAssetRef("@asset.myimg", noSpan)
	assert.True(t, ok)
	assert.Equal(t, "assets/myimg.png", path)
}

func TestResolveAssetRefMetaFormUnknown(t *testing.T) {
	reg := newFakeRegistry()
	c := New(reg, ModeFlags{})
	c.doc = ir.NewDocument()

	assert.Panics(t, func() {
		c.resolveAssetRef("@asset.missing", noSpan)
	})
}

func TestResolveAssetRefKivoForm(t *testing.T) {
	reg := newFakeRegistry()
	reg.addPack("ba", nil)
	reg.setAvatar("ba", "kivo-7", "ba/kivo-7/avatar.png")
	c := New(reg, ModeFlags{})
	c.doc = ir.NewDocument()

	path, ok := c.resolveAssetRef("kivo-7", noSpan)
	assert.True(t, ok)
	assert.Equal(t, "ba/kivo-7/avatar.png", path)
}

func TestResolveAssetRefURLPassthrough(t *testing.T) {
	reg := newFakeRegistry()
	c := New(reg, ModeFlags{})
	c.doc = ir.NewDocument()

	path, ok := c.resolveAssetRef("https://example.com/a.png", noSpan)
	assert.True(t, ok)
	assert.Equal(t, "https://example.com/a.png", path)
}

func TestResolveAssetRefDataURLPassthrough(t *testing.T) {
	reg := newFakeRegistry()
	c := New(reg, ModeFlags{})
	c.doc = ir.NewDocument()

	path, ok := c.resolveAssetRef("data:image/png;base64,abcd", noSpan)
	assert.True(t, ok)
	assert.Equal(t, "data:image/png;base64,abcd", path)
}

func TestResolveAssetRefBarePackCharacterName(t *testing.T) {
	reg := newFakeRegistry()
	reg.addPack("ba", map[string]string{"星野": "hoshino"})
	reg.setAvatar("ba", "hoshino", "ba/hoshino/avatar.png")
	c := New(reg, ModeFlags{})
	c.doc = ir.NewDocument()

	path, ok := c.resolveAssetRef("星野", noSpan)
	assert.True(t, ok)
	assert.Equal(t, "ba/hoshino/avatar.png", path)
}

func TestResolveAssetRefCustomCharacterBorrowsInlineAvatar(t *testing.T) {
	reg := newFakeRegistry()
	c := New(reg, ModeFlags{})
	c.doc = ir.NewDocument()
	c.state.setCustomChar("mycustom", "My Custom", "custom/avatar.png")

	path, ok := c.resolveAssetRef("custom.mycustom", noSpan)
	assert.True(t, ok)
	assert.Equal(t, "custom/avatar.png", path)
}

func TestResolveAssetRefCustomCharacterWithNoAvatarFails(t *testing.T) {
	reg := newFakeRegistry()
	c := New(reg, ModeFlags{})
	c.doc = ir.NewDocument()
	c.state.setCustomChar("mycustom", "My Custom", "")

	assert.Panics(t, func() {
		c.resolveAssetRef("custom.mycustom", noSpan)
	})
}
