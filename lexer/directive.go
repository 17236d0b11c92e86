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
	"strings"

	"github.com/xiyihan0/momoscript/ast"
	"github.com/xiyihan0/momoscript/diag"
)

var reDirectiveHead = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_.]*)(:?)\s*(.*)$`)
var reUsePack = regexp.MustCompile(`^(\S+)\s+as\s+(\S+)$`)

func (p *parser) processDirective(ln int, sp diag.Span, trimmed string) {
	body := trimmed[1:]
	m := reDirectiveHead.FindStringSubmatch(body)
	if m == nil {
		p.addDiag(diag.New(diag.MalformedDirective, sp, "malformed directive %q", trimmed))
		return
	}
	word, hasColon, rest := m[1], m[2] == ":", m[3]

	if headerOnlyKeys[word] {
		if p.headerEnd {
			p.addDiag(diag.New(diag.HeaderKeyAfterBody, sp, "header-only directive @%s used in body", word))
			return
		}
		p.nodes = append(p.nodes, ast.Node{Kind: ast.KindMetaKV, Span: sp, Key: word, Value: rest})
		return
	}

	switch {
	case word == "typst_global":
		p.directiveTypstGlobal(sp, rest)
	case strings.HasPrefix(word, "asset."):
		if p.headerEnd {
			p.addDiag(diag.New(diag.HeaderKeyAfterBody, sp, "header-only directive @%s used in body", word))
			return
		}
		p.nodes = append(p.nodes, ast.Node{Kind: ast.KindMetaKV, Span: sp, Key: word, Value: rest})
	case word == "usepack":
		p.directiveUsePack(sp, rest)
	case word == "alias":
		p.directiveAliasLike(sp, rest, ast.KindAlias)
	case word == "tmpalias":
		p.directiveAliasLike(sp, rest, ast.KindTmpAlias)
	case word == "aliasid":
		p.directiveShortIdAndName(sp, rest, ast.KindAliasId)
	case word == "unaliasid":
		p.directiveShortIdOnly(sp, rest, ast.KindUnaliasId)
	case word == "charid":
		p.directiveShortIdAndName(sp, rest, ast.KindCharId)
	case word == "uncharid":
		p.directiveShortIdOnly(sp, rest, ast.KindUncharId)
	case word == "avatar":
		p.directiveAliasLike(sp, rest, ast.KindAvatarOverride)
	case word == "avatarid":
		p.directiveShortIdAndName(sp, rest, ast.KindAvatarId)
	case word == "unavatarid":
		p.directiveShortIdOnly(sp, rest, ast.KindUnavatarId)
	case word == "pagebreak":
		p.directivePageBreak(sp, rest)
	case word == "reply":
		p.directiveReply(ln, sp, rest, hasColon)
	case word == "end":
		p.addDiag(diag.New(diag.MalformedDirective, sp, "@end without an open @reply block"))
	case word == "bond":
		p.directiveBond(sp, rest, hasColon)
	default:
		p.addDiag(diag.New(diag.UnknownDirective, sp, "unknown directive @%s", word))
	}
}

func (p *parser) directiveTypstGlobal(sp diag.Span, rest string) {
	if m := reQuoteRun.FindStringSubmatch(rest); m != nil {
		p.openBlock(ast.KindTypstGlobal, ast.Narration, ast.Marker{}, sp, m[1], m[2])
		return
	}
	p.nodes = append(p.nodes, ast.Node{Kind: ast.KindTypstGlobal, Span: sp, Value: rest})
}

func (p *parser) directiveUsePack(sp diag.Span, rest string) {
	m := reUsePack.FindStringSubmatch(rest)
	if m == nil {
		p.addDiag(diag.New(diag.MalformedDirective, sp, "expected '@usepack <pack_id> as <alias>', got %q", rest))
		return
	}
	p.nodes = append(p.nodes, ast.Node{Kind: ast.KindUsePack, Span: sp, PackID: m[1], Alias: m[2]})
}

func (p *parser) directiveAliasLike(sp diag.Span, rest string, kind ast.Kind) {
	idx := strings.IndexByte(rest, '=')
	if idx < 0 {
		p.addDiag(diag.New(diag.MalformedDirective, sp, "expected 'NAME=VALUE', got %q", rest))
		return
	}
	name := strings.TrimSpace(rest[:idx])
	value := rest[idx+1:]
	if name == "" {
		p.addDiag(diag.New(diag.MalformedDirective, sp, "missing name in %q", rest))
		return
	}
	p.nodes = append(p.nodes, ast.Node{
		Kind: kind, Span: sp, Name: name, Value: value, AssetRef: value, Cleared: value == "",
	})
}

func (p *parser) directiveShortIdAndName(sp diag.Span, rest string, kind ast.Kind) {
	fields := strings.SplitN(strings.TrimSpace(rest), " ", 2)
	if len(fields) == 0 || fields[0] == "" {
		p.addDiag(diag.New(diag.MalformedDirective, sp, "expected 'SHORT_ID [VALUE]', got %q", rest))
		return
	}
	short := fields[0]
	var val string
	if len(fields) == 2 {
		val = strings.TrimSpace(fields[1])
	}
	p.nodes = append(p.nodes, ast.Node{
		Kind: kind, Span: sp, ShortID: short, Display: val, AssetRef: val, Name: val,
	})
}

func (p *parser) directiveShortIdOnly(sp diag.Span, rest string, kind ast.Kind) {
	short := strings.TrimSpace(rest)
	if short == "" {
		p.addDiag(diag.New(diag.MalformedDirective, sp, "expected a short id"))
		return
	}
	p.nodes = append(p.nodes, ast.Node{Kind: kind, Span: sp, ShortID: short})
}

func (p *parser) directivePageBreak(sp diag.Span, rest string) {
	if strings.TrimSpace(rest) != "" {
		p.addDiag(diag.New(diag.BadMarkerOnPagebreak, sp, "@pagebreak takes no arguments, got %q", rest))
		return
	}
	p.nodes = append(p.nodes, ast.Node{Kind: ast.KindPageBreak, Span: sp})
}

func (p *parser) directiveReply(ln int, sp diag.Span, rest string, hasColon bool) {
	if !hasColon {
		p.reply = &replyAccum{originSpan: sp}
		return
	}
	raw := strings.Split(rest, "|")
	if len(raw) == 0 || (len(raw) == 1 && strings.TrimSpace(raw[0]) == "") {
		p.addDiag(diag.New(diag.EmptyReply, sp, "inline @reply has no items"))
		return
	}
	items := make([]ast.ReplyItem, 0, len(raw))
	for _, it := range raw {
		items = append(items, ast.ReplyItem{Raw: strings.TrimSpace(it), Span: sp})
	}
	p.nodes = append(p.nodes, ast.Node{Kind: ast.KindReply, Span: sp, Items: items})
}

func (p *parser) directiveBond(sp diag.Span, rest string, hasColon bool) {
	content := ""
	if hasColon {
		content = rest
	}
	if m := reQuoteRun.FindStringSubmatch(content); m != nil {
		p.openBlock(ast.KindBond, ast.Narration, ast.Marker{}, sp, m[1], m[2])
		return
	}
	node := ast.Node{Kind: ast.KindBond, Span: sp, Content: content, BondEmpty: content == ""}
	p.nodes = append(p.nodes, node)
	p.absorbIdx = len(p.nodes) - 1
}
