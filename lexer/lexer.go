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

// Package lexer implements the MomoScript Line Classifier & AST Builder
// (spec.md §4.1): it turns raw source text into a flat list of
// span-annotated ast.Node values plus any diagnostics. It owns the
// lexical state needed for multi-line constructs (triple-quote blocks,
// reply menus, continuation-absorbing statements and bonds) but
// performs no semantic resolution — that is the compiler's job.
//
// Grounded on a line-oriented scanning style (one rune-aware record at
// a time) paired with a small, named state machine for nesting
// begin/end events; here the "stack" has depth one by construction
// (spec.md §5: "O(nesting_depth=1) bookkeeping").
package lexer

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/xiyihan0/momoscript/ast"
	"github.com/xiyihan0/momoscript/diag"
)

// headerOnlyKeys are MetaKV keys only legal before the first statement.
var headerOnlyKeys = map[string]bool{
	"title": true, "author": true, "created_at": true, "width": true,
	"bubble_inset": true, "typst": true,
}

// bodyDirectives are the directive keywords still legal once the
// document has left the header region.
var bodyDirectives = map[string]bool{
	"usepack": true, "alias": true, "tmpalias": true, "aliasid": true,
	"unaliasid": true, "charid": true, "uncharid": true, "avatar": true,
	"avatarid": true, "unavatarid": true, "pagebreak": true,
	"reply": true, "end": true, "bond": true,
}

var reQuoteRun = regexp.MustCompile(`^("{3,})(.*)$`)

type blockHost struct {
	kind       ast.Kind // KindStatement, KindBond or KindTypstGlobal
	stmtKind   ast.StmtKind
	marker     ast.Marker
	quoteLen   int
	originSpan diag.Span
	firstLine  string // trailing text on the opener line, if any
	hasFirst   bool
	lines      []string
}

type replyAccum struct {
	items      []ast.ReplyItem
	originSpan diag.Span
}

// parser holds the mutable scan state for a single Parse call. It is
// never reused across calls and never shared.
type parser struct {
	lines     []string
	nodes     []ast.Node
	diags     []diag.Diagnostic
	headerEnd bool
	block     *blockHost
	reply     *replyAccum
	absorbIdx int // index into nodes that may absorb continuation lines, -1 = none
}

// Parse tokenizes and builds the AST for a MomoScript source document.
// Line terminators are normalized to "\n" (both "\r\n" and a leading
// BOM are tolerated, per spec.md §6.1) before splitting into logical,
// 1-based lines.
func Parse(source string) ([]ast.Node, []diag.Diagnostic) {
	source = strings.TrimPrefix(source, "\xef\xbb\xbf")
	source = strings.ReplaceAll(source, "\r\n", "\n")
	source = strings.ReplaceAll(source, "\r", "\n")

	p := &parser{
		lines:     strings.Split(source, "\n"),
		absorbIdx: -1,
	}
	for i, raw := range p.lines {
		p.processLine(i+1, raw)
	}
	p.finish()
	return p.nodes, p.diags
}

func (p *parser) addDiag(d diag.Diagnostic) {
	p.diags = append(p.diags, d)
}

func (p *parser) lineSpan(ln int, startCol, endCol int) diag.Span {
	return diag.Span{StartLine: ln, StartCol: startCol, EndLine: ln, EndCol: endCol}
}

// leadingAndTrimmed returns the number of leading-whitespace code
// points and the trimmed remainder of a raw line.
func leadingAndTrimmed(raw string) (int, string) {
	trimmedLeft := strings.TrimLeft(raw, " \t")
	lead := utf8.RuneCountInString(raw) - utf8.RuneCountInString(trimmedLeft)
	return lead, strings.TrimRight(trimmedLeft, " \t")
}

func (p *parser) processLine(ln int, raw string) {
	if p.block != nil {
		p.processBlockLine(ln, raw)
		return
	}
	if p.reply != nil {
		p.processReplyLine(ln, raw)
		return
	}

	lead, trimmed := leadingAndTrimmed(raw)
	startCol := lead + 1
	endCol := startCol + utf8.RuneCountInString(trimmed)
	sp := p.lineSpan(ln, startCol, endCol)

	switch {
	case trimmed == "":
		p.appendBlank()
	case strings.HasPrefix(trimmed, "@"):
		p.headerEnd = p.headerEnd // directives never flip header state themselves
		p.processDirective(ln, sp, trimmed)
	case startsStatement(trimmed):
		p.headerEnd = true
		p.processStatement(ln, sp, trimmed)
	default:
		p.processContinuation(ln, sp, trimmed)
	}
}

// startsStatement reports whether trimmed begins with a statement
// marker character followed by at least one space.
func startsStatement(trimmed string) bool {
	if trimmed == "" {
		return false
	}
	c := trimmed[0]
	if c != '-' && c != '>' && c != '<' {
		return false
	}
	return len(trimmed) > 1 && trimmed[1] == ' '
}

func (p *parser) appendBlank() {
	if p.absorbIdx >= 0 {
		p.nodes[p.absorbIdx].Content += "\n"
	}
	// A blank line outside any absorbing context is simply a separator
	// and produces no node (spec.md §4.1 "Blank lines").
}

func (p *parser) processContinuation(ln int, sp diag.Span, trimmed string) {
	if !p.headerEnd || p.absorbIdx < 0 {
		p.addDiag(diag.New(diag.ContinuationBeforeStatement, sp,
			"continuation line has nothing to attach to: %q", trimmed))
		return
	}
	p.nodes[p.absorbIdx].Content += "\n" + trimmed
}

func (p *parser) processStatement(ln int, sp diag.Span, trimmed string) {
	var kind ast.StmtKind
	switch trimmed[0] {
	case '-':
		kind = ast.Narration
	case '>':
		kind = ast.Left
	case '<':
		kind = ast.Right
	}
	remainder := strings.TrimLeft(trimmed[1:], " ")

	var marker ast.Marker
	content := remainder
	if kind != ast.Narration {
		marker, content = splitMarker(remainder)
	}

	if m := reQuoteRun.FindStringSubmatch(content); m != nil {
		p.openBlock(ast.KindStatement, kind, marker, sp, m[1], m[2])
		return
	}

	node := ast.Node{Kind: ast.KindStatement, Span: sp, StmtKind: kind, Marker: marker, Content: content}
	p.nodes = append(p.nodes, node)
	p.absorbIdx = len(p.nodes) - 1
}

func (p *parser) openBlock(host ast.Kind, stmtKind ast.StmtKind, marker ast.Marker, originSpan diag.Span, quoteRun, trailing string) {
	trailing = strings.TrimSpace(trailing)
	bh := &blockHost{
		kind:       host,
		stmtKind:   stmtKind,
		marker:     marker,
		quoteLen:   len(quoteRun),
		originSpan: originSpan,
	}
	if trailing != "" {
		bh.firstLine = trailing
		bh.hasFirst = true
	}
	p.block = bh
	p.absorbIdx = -1
}

func (p *parser) processBlockLine(ln int, raw string) {
	trimmed := strings.TrimSpace(raw)
	closer := strings.Repeat(`"`, p.block.quoteLen)
	if trimmed == closer {
		p.closeBlock(ln)
		return
	}
	p.block.lines = append(p.block.lines, raw)
}

func (p *parser) closeBlock(closeLn int) {
	bh := p.block
	p.block = nil
	var contentLines []string
	if bh.hasFirst {
		contentLines = append(contentLines, bh.firstLine)
	}
	contentLines = append(contentLines, bh.lines...)
	content := strings.Join(contentLines, "\n")
	closeLead, _ := leadingAndTrimmed(p.lines[closeLn-1])
	sp := diag.Span{StartLine: bh.originSpan.StartLine, StartCol: bh.originSpan.StartCol, EndLine: closeLn, EndCol: closeLead + 1 + bh.quoteLen}

	switch bh.kind {
	case ast.KindStatement:
		node := ast.Node{Kind: ast.KindStatement, Span: sp, StmtKind: bh.stmtKind, Marker: bh.marker, Content: content, BlockQuote: bh.quoteLen}
		p.nodes = append(p.nodes, node)
	case ast.KindBond:
		node := ast.Node{Kind: ast.KindBond, Span: sp, Content: content, BondEmpty: content == "", BlockQuote: bh.quoteLen}
		p.nodes = append(p.nodes, node)
	case ast.KindTypstGlobal:
		node := ast.Node{Kind: ast.KindTypstGlobal, Span: sp, Value: content, BlockQuote: bh.quoteLen}
		p.nodes = append(p.nodes, node)
	}
	p.absorbIdx = -1
}

func (p *parser) processReplyLine(ln int, raw string) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "@end" {
		p.closeReply(ln)
		return
	}
	if trimmed == "" {
		return
	}
	if strings.HasPrefix(trimmed, "@reply") {
		lead, _ := leadingAndTrimmed(raw)
		sp := p.lineSpan(ln, lead+1, lead+1+utf8.RuneCountInString(trimmed))
		p.addDiag(diag.New(diag.NestedDirective, sp, "nested @reply inside an open @reply block"))
		return
	}
	lead, _ := leadingAndTrimmed(raw)
	sp := p.lineSpan(ln, lead+1, lead+1+utf8.RuneCountInString(trimmed))
	p.reply.items = append(p.reply.items, ast.ReplyItem{Raw: trimmed, Span: sp})
}

func (p *parser) closeReply(closeLn int) {
	ra := p.reply
	p.reply = nil
	closeLead, _ := leadingAndTrimmed(p.lines[closeLn-1])
	sp := diag.Span{StartLine: ra.originSpan.StartLine, StartCol: ra.originSpan.StartCol, EndLine: closeLn, EndCol: closeLead + 1 + len("@end")}
	if len(ra.items) == 0 {
		p.addDiag(diag.New(diag.EmptyReply, sp, "reply block has no items"))
		return
	}
	p.nodes = append(p.nodes, ast.Node{Kind: ast.KindReply, Span: sp, Items: ra.items})
}

func (p *parser) finish() {
	if p.block != nil {
		d := diag.New(diag.UnclosedBlock, p.block.originSpan, "unclosed block opened here").
			WithNote("reached end of file without a matching closer", diag.Span{
				StartLine: len(p.lines), StartCol: 1, EndLine: len(p.lines), EndCol: 1,
			})
		p.addDiag(d)
	}
	if p.reply != nil {
		d := diag.New(diag.UnclosedBlock, p.reply.originSpan, "unclosed @reply block (missing @end)").
			WithNote("reached end of file without @end", diag.Span{
				StartLine: len(p.lines), StartCol: 1, EndLine: len(p.lines), EndCol: 1,
			})
		p.addDiag(d)
	}
}
