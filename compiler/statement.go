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

	"github.com/xiyihan0/momoscript/ast"
	"github.com/xiyihan0/momoscript/diag"
	"github.com/xiyihan0/momoscript/ir"
)

// handleStatement dispatches a KindStatement node by its StmtKind
// (spec.md §4.2's Statement(NARRATION) / Statement(LEFT|RIGHT) cases).
func (c *Compiler) handleStatement(n *ast.Node, content string) {
	switch n.StmtKind {
	case ast.Narration:
		c.emitNarration(n, content)
	case ast.Left:
		c.emitTextLine(n, SideLeft, content)
	case ast.Right:
		c.emitTextLine(n, SideRight, content)
	}
}

func (c *Compiler) emitNarration(n *ast.Node, rawContent string) {
	content := c.buildContent(rawContent)
	segs := c.parseAndResolveSegments(content, n.Span, "")
	c.doc.Chat = append(c.doc.Chat, ir.NarrationLine{
		Yuzutalk: ir.Yuzutalk{Type: "NARRATION"},
		Content:  content,
		Segments: segs,
		LineNo:   n.Span.StartLine,
	})
}

// emitTextLine implements Statement(LEFT|RIGHT) in full: resolve the
// marker, apply/expire tmp-aliases before the side history is updated,
// record the speaker, then emit (spec.md §4.2).
func (c *Compiler) emitTextLine(n *ast.Node, side Side, rawContent string) {
	charID, ok := c.resolveMarkerCharID(n, side)
	if !ok {
		return
	}

	override := c.state.resolveNameOverride(side, charID)
	c.state.recordSpeaker(side, charID)
	c.state.lastSpeakerDisplay = c.displayNameFor(charID, override)

	content := c.buildContent(rawContent)
	segs := c.parseAndResolveSegments(content, n.Span, charID)

	c.doc.Chat = append(c.doc.Chat, ir.TextLine{
		Yuzutalk:       ir.TextYuzutalk{Type: "TEXT", NameOverride: override},
		CharID:         charID,
		Side:           string(side),
		Content:        content,
		Segments:       segs,
		AvatarOverride: c.state.avatarOverrides[charID],
		LineNo:         n.Span.StartLine,
	})
}

// resolveMarkerCharID implements the speaker-resolution half of
// Statement(LEFT|RIGHT) (spec.md §4.2's last two paragraphs): Marker
// dispatch, the RIGHT-side "__Sensei" default, and NoCurrentSpeaker.
func (c *Compiler) resolveMarkerCharID(n *ast.Node, side Side) (string, bool) {
	switch n.Marker.Kind {
	case ast.MarkerBackref:
		return c.resolveBackref(side, n.Marker.N, n.Span)
	case ast.MarkerIndex:
		return c.resolveIndex(n.Marker.N, n.Span)
	case ast.MarkerExplicit:
		return c.resolveSelector(n.Marker.Selector, n.Span)
	default: // MarkerNone
		if cur := c.state.currentSpeaker(side); cur != "" {
			return cur, true
		}
		if side == SideRight {
			return SenseiCharID, true
		}
		c.fail(diag.New(diag.NoCurrentSpeaker, n.Span, "no current speaker on the %s side", side))
		return "", false
	}
}

// displayNameFor picks the name bond-content synthesis and similar
// presentation concerns should show for charID: the active override if
// any, else a declared custom character's display name, else "Sensei"
// for SenseiCharID, else the bare name portion of the canonical char_id.
func (c *Compiler) displayNameFor(charID string, override *string) string {
	if override != nil {
		return *override
	}
	if entry, ok := c.state.customChars[charID]; ok {
		return entry.display
	}
	if charID == SenseiCharID {
		return "Sensei"
	}
	if idx := strings.LastIndexByte(charID, '.'); idx >= 0 {
		return charID[idx+1:]
	}
	return charID
}

// bondPlaceholder is used when a bare "@bond" is written before any
// speaker has appeared (spec.md §4.2: "If no such speaker exists, use a
// neutral placeholder" — left undecided by source; fixed here).
const bondPlaceholder = "羁绊剧情"

func (c *Compiler) emitBond(n *ast.Node) {
	content := c.buildContent(n.Content)
	if n.BondEmpty {
		if c.state.lastSpeakerDisplay != "" {
			content = "进入" + c.state.lastSpeakerDisplay + "的羁绊剧情"
		} else {
			content = "进入" + bondPlaceholder
		}
	}
	segs := c.parseAndResolveSegments(content, n.Span, "")
	c.doc.Chat = append(c.doc.Chat, ir.BondLine{
		Yuzutalk: ir.Yuzutalk{Type: "BOND"},
		Content:  content,
		Segments: segs,
		LineNo:   n.Span.StartLine,
	})
}

func (c *Compiler) emitPageBreak(n *ast.Node) {
	c.doc.Chat = append(c.doc.Chat, ir.PageBreakLine{
		Yuzutalk: ir.Yuzutalk{Type: "PAGEBREAK"},
		LineNo:   n.Span.StartLine,
	})
}

// emitReply implements the Reply handler (spec.md §4.2). The lexer
// itself never emits a KindReply node with zero items (both its inline
// and block forms raise EmptyReply and drop the node first), but the
// check is repeated here per the spec's explicit wording.
func (c *Compiler) emitReply(n *ast.Node) {
	if len(n.Items) == 0 {
		c.fail(diag.New(diag.EmptyReply, n.Span, "reply has no items"))
		return
	}
	items := make([]ir.ReplyItemOut, len(n.Items))
	for i, it := range n.Items {
		items[i] = ir.ReplyItemOut{
			Text:     it.Raw,
			Segments: c.parseAndResolveSegments(it.Raw, it.Span, ""),
		}
	}
	c.doc.Chat = append(c.doc.Chat, ir.ReplyLine{
		Yuzutalk: ir.Yuzutalk{Type: "REPLY"},
		Items:    items,
		Label:    "回复",
		LineNo:   n.Span.StartLine,
	})
}
