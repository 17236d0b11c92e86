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

package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetaPreservesInsertionOrder(t *testing.T) {
	m := NewMeta()
	m.Set("title", "Demo")
	m.Set("author", "someone")
	m.Set("width", "800")

	assert.Equal(t, []string{"title", "author", "width"}, m.Keys())
}

func TestMetaLastWriteWinsKeepsFirstPosition(t *testing.T) {
	m := NewMeta()
	m.Set("title", "first")
	m.Set("author", "x")
	m.Set("title", "second")

	v, ok := m.Get("title")
	assert.True(t, ok)
	assert.Equal(t, "second", v)
	assert.Equal(t, []string{"title", "author"}, m.Keys())
}

func TestMetaMarshalJSONPreservesOrder(t *testing.T) {
	m := NewMeta()
	m.Set("z", "1")
	m.Set("a", "2")

	raw, err := m.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"z":"1","a":"2"}`, string(raw))
}

func TestCustomCharMarshalsAsPositionalArray(t *testing.T) {
	c := CustomChar{CharID: "custom-abc", AvatarRef: "assets/a.png", DisplayName: "Someone"}
	raw, err := c.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `["custom-abc","assets/a.png","Someone"]`, string(raw))
}

func TestNewDocumentStartsEmpty(t *testing.T) {
	doc := NewDocument()
	assert.NotNil(t, doc.Meta)
	assert.Empty(t, doc.CustomChars)
	assert.Empty(t, doc.Chat)
}

func TestEncodeRoundTripsDocumentShape(t *testing.T) {
	doc := NewDocument()
	doc.Meta.Set("title", "Demo")
	doc.Chat = append(doc.Chat, NarrationLine{Yuzutalk: Yuzutalk{Type: "NARRATION"}, Content: "hi", LineNo: 1})

	raw, err := Encode(doc)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"title":"Demo"`)
	assert.Contains(t, string(raw), `"type":"NARRATION"`)
}
