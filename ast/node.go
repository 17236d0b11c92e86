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

// Package ast defines the flat, span-annotated node catalogue emitted by
// the lexer (see lexer.Parse). Nodes are a closed tagged union: Kind
// dispatch in the compiler is meant to be exhaustive, and adding a node
// kind here is expected to require updating every switch over Kind.
package ast

import "github.com/xiyihan0/momoscript/diag"

// Kind discriminates the Node union. It replaces the "variant" column
// of spec.md §3.2.
type Kind int

const (
	KindMetaKV Kind = iota
	KindTypstGlobal
	KindUsePack
	KindAlias
	KindTmpAlias
	KindAliasId
	KindUnaliasId
	KindCharId
	KindUncharId
	KindAvatarId
	KindUnavatarId
	KindAvatarOverride
	KindPageBreak
	KindReply
	KindBond
	KindStatement
)

func (k Kind) String() string {
	switch k {
	case KindMetaKV:
		return "MetaKV"
	case KindTypstGlobal:
		return "TypstGlobal"
	case KindUsePack:
		return "UsePack"
	case KindAlias:
		return "Alias"
	case KindTmpAlias:
		return "TmpAlias"
	case KindAliasId:
		return "AliasId"
	case KindUnaliasId:
		return "UnaliasId"
	case KindCharId:
		return "CharId"
	case KindUncharId:
		return "UncharId"
	case KindAvatarId:
		return "AvatarId"
	case KindUnavatarId:
		return "UnavatarId"
	case KindAvatarOverride:
		return "AvatarOverride"
	case KindPageBreak:
		return "PageBreak"
	case KindReply:
		return "Reply"
	case KindBond:
		return "Bond"
	case KindStatement:
		return "Statement"
	default:
		return "Unknown"
	}
}

// StmtKind distinguishes the three kinds of Statement content lines.
type StmtKind int

const (
	Narration StmtKind = iota
	Left
	Right
)

// MarkerKind discriminates the speaker-marker forms of spec.md §3.3.
type MarkerKind int

const (
	MarkerNone MarkerKind = iota
	MarkerExplicit
	MarkerBackref
	MarkerIndex
)

// Marker is the parsed prefix of a Left/Right statement line.
type Marker struct {
	Kind     MarkerKind
	Selector string // MarkerExplicit: the raw selector text (may contain "ns.name")
	N        int    // MarkerBackref: n in "_n"; MarkerIndex: n in "~n"
}

// ReplyItem is one "|"-separated entry of a @reply directive. Raw holds
// the untouched item text; segments are parsed later by the compiler
// (inline-segment parsing needs the Typst-mode flag, which the lexer
// does not carry).
type ReplyItem struct {
	Raw  string
	Span diag.Span
}

// Node is one member of the AST tagged union. Only the fields relevant
// to Kind are populated; see spec.md §3.2 for the essential-fields table.
type Node struct {
	Kind Kind
	Span diag.Span

	// MetaKV / UsePack / Alias / TmpAlias / AliasId / UnaliasId /
	// CharId / UncharId / AvatarId / UnavatarId / AvatarOverride
	Key     string // MetaKV
	Name    string // generic "selector"/"name" field (Alias, AliasId target, AvatarOverride name...)
	Value   string // MetaKV value, TypstGlobal value, Alias/TmpAlias display, AvatarOverride asset_ref
	PackID  string // UsePack
	Alias   string // UsePack alias
	ShortID string // AliasId/UnaliasId/CharId/UncharId/AvatarId/UnavatarId short_id
	Display string // CharId display; the lexer copies the same value into AssetRef and Name for every "SHORT_ID VALUE" directive
	AssetRef string // AvatarId/UnavatarId/AvatarOverride asset reference
	Cleared bool    // true when an (un-)directive clears rather than sets (empty RHS)

	// Reply
	Items []ReplyItem

	// Bond
	BondEmpty bool // true if author wrote a bare "@bond" with no content

	// Statement
	StmtKind StmtKind
	Marker   Marker
	Content  string

	// BlockQuote is the length of the opening quote run when this node's
	// content came from a block rather than a single line; 0 otherwise.
	BlockQuote int
}
