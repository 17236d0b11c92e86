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

// Package ir defines the JSON-shaped intermediate representation the
// semantic compiler emits (spec.md §3.6, §6.2) and encodes it with
// github.com/bytedance/sonic, a fast JSON codec well suited to this
// kind of high-volume structured-record output.
package ir

import (
	"github.com/xiyihan0/momoscript/segment"
)

// CustomChar is one entry of the top-level custom_chars array: a
// [char_id, avatar_ref, display_name] triple (spec.md §3.6).
type CustomChar struct {
	CharID      string
	AvatarRef   string
	DisplayName string
}

func (c CustomChar) MarshalJSON() ([]byte, error) {
	return marshalJSON([3]string{c.CharID, c.AvatarRef, c.DisplayName})
}

// Yuzutalk is the discriminator object every chat line carries.
type Yuzutalk struct {
	Type string `json:"type"`
}

// TextYuzutalk additionally carries the resolved display-name override
// for a TEXT line; unlike most optional IR fields this one is never
// omitted — spec.md's S2 scenario expects an explicit JSON null when
// there is no override.
type TextYuzutalk struct {
	Type         string  `json:"type"`
	NameOverride *string `json:"nameOverride"`
}

// ChatLine is the common interface satisfied by every concrete chat
// entry type; it exists purely so Document.Chat can hold a
// heterogeneous, ordered slice while each concrete type still controls
// its own field order and omission rules.
type ChatLine interface {
	isChatLine()
}

// TextLine is a left/right chat bubble.
type TextLine struct {
	Yuzutalk       TextYuzutalk       `json:"yuzutalk"`
	CharID         string             `json:"char_id"`
	Side           string             `json:"side"`
	Content        string             `json:"content"`
	Segments       []segment.Segment  `json:"segments,omitempty"`
	AvatarOverride string             `json:"avatar_override,omitempty"`
	LineNo         int                `json:"line_no"`
}

func (TextLine) isChatLine() {}

// NarrationLine is a plain narration row.
type NarrationLine struct {
	Yuzutalk Yuzutalk          `json:"yuzutalk"`
	Content  string            `json:"content"`
	Segments []segment.Segment `json:"segments,omitempty"`
	LineNo   int               `json:"line_no"`
}

func (NarrationLine) isChatLine() {}

// PageBreakLine marks a page boundary.
type PageBreakLine struct {
	Yuzutalk Yuzutalk `json:"yuzutalk"`
	LineNo   int      `json:"line_no"`
}

func (PageBreakLine) isChatLine() {}

// ReplyItemOut is one parsed option of a ReplyLine.
type ReplyItemOut struct {
	Text     string            `json:"text"`
	Segments []segment.Segment `json:"segments,omitempty"`
}

// ReplyLine is a reply menu.
type ReplyLine struct {
	Yuzutalk Yuzutalk       `json:"yuzutalk"`
	Items    []ReplyItemOut `json:"items"`
	Label    string         `json:"label"`
	LineNo   int            `json:"line_no"`
}

func (ReplyLine) isChatLine() {}

// BondLine is a bond-event trigger.
type BondLine struct {
	Yuzutalk Yuzutalk          `json:"yuzutalk"`
	Content  string            `json:"content"`
	Segments []segment.Segment `json:"segments,omitempty"`
	LineNo   int               `json:"line_no"`
}

func (BondLine) isChatLine() {}

// Document is the top-level IR object. Field order matches spec.md
// §6.2: meta, typst_global, typst_assets_global, custom_chars, chat.
type Document struct {
	Meta              *Meta        `json:"meta"`
	TypstGlobal       string       `json:"typst_global"`
	TypstAssetsGlobal string       `json:"typst_assets_global"`
	CustomChars       []CustomChar `json:"custom_chars"`
	Chat              []ChatLine   `json:"chat"`
}

// NewDocument returns an empty Document ready for the compiler to
// populate.
func NewDocument() *Document {
	return &Document{Meta: NewMeta(), CustomChars: []CustomChar{}, Chat: []ChatLine{}}
}
