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

// Package diag defines the span and diagnostic vocabulary shared by the
// lexer and the semantic compiler. Diagnostics are data, never thrown
// control flow: a parse or compile that hits trouble returns a
// Diagnostic value instead of panicking or calling os.Exit.
package diag

import "fmt"

// Span locates a range of source text. Lines and columns are 1-based;
// columns count code points, not bytes. Start is inclusive, End is
// exclusive, matching the half-open convention used throughout the core.
type Span struct {
	StartLine int `json:"start_line"`
	StartCol  int `json:"start_col"`
	EndLine   int `json:"end_line"`
	EndCol    int `json:"end_col"`
}

// Join returns the smallest span covering both a and b.
func Join(a, b Span) Span {
	ans := a
	if b.StartLine < ans.StartLine || (b.StartLine == ans.StartLine && b.StartCol < ans.StartCol) {
		ans.StartLine, ans.StartCol = b.StartLine, b.StartCol
	}
	if b.EndLine > ans.EndLine || (b.EndLine == ans.EndLine && b.EndCol > ans.EndCol) {
		ans.EndLine, ans.EndCol = b.EndLine, b.EndCol
	}
	return ans
}

// Kind is a closed taxonomy of diagnostic codes. New members must be
// added to one of the four category blocks below; nothing outside this
// set may be constructed.
type Kind string

// SyntaxError family — raised by the line classifier / AST builder.
const (
	ContinuationBeforeStatement Kind = "ContinuationBeforeStatement"
	UnclosedBlock               Kind = "UnclosedBlock"
	MalformedDirective          Kind = "MalformedDirective"
	EmptyReply                  Kind = "EmptyReply"
	NestedDirective             Kind = "NestedDirective"
	BadMarkerOnPagebreak        Kind = "BadMarkerOnPagebreak"
	HeaderKeyAfterBody          Kind = "HeaderKeyAfterBody"
	UnknownDirective            Kind = "UnknownDirective"
)

// NameError family — raised by the semantic compiler.
const (
	UnknownPack       Kind = "UnknownPack"
	DuplicateAlias    Kind = "DuplicateAlias"
	UnknownCharacter  Kind = "UnknownCharacter"
	UnknownShortId    Kind = "UnknownShortId"
	BackrefOutOfRange Kind = "BackrefOutOfRange"
	IndexOutOfRange   Kind = "IndexOutOfRange"
	NoCurrentSpeaker  Kind = "NoCurrentSpeaker"
)

// AssetError family.
const (
	UnknownAsset     Kind = "UnknownAsset"
	InvalidAssetPath Kind = "InvalidAssetPath"
)

// InvariantError never fires on valid input; it exists so that an
// implementation bug surfaces as a diagnostic (with a span pointing at
// the offending node) rather than a panic reaching the caller.
const InvariantError Kind = "InvariantError"

// Note is a secondary span attached to a Diagnostic, e.g. the opener of
// an unclosed block referenced from the EOF diagnostic.
type Note struct {
	Message string `json:"message"`
	Span    Span   `json:"span"`
}

// Severity distinguishes a fatal diagnostic from a warning (spec.md §7:
// "Warnings (non-fatal) are limited to: dropped alias directives
// referencing unknown targets, and EULA/version notices passed through
// from the pack registry"). It is not part of the wire shape in §6.4 —
// callers outside the core only ever see kind/message/span/notes — so
// it is excluded from JSON.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

// Diagnostic is the (kind, message, span) triple required by spec.md
// §3.1, plus the optional secondary-span notes from §6.4.
type Diagnostic struct {
	Kind     Kind     `json:"kind"`
	Message  string   `json:"message"`
	Span     Span     `json:"span"`
	Notes    []Note   `json:"notes,omitempty"`
	Severity Severity `json:"-"`
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", d.Kind, d.Span.StartLine, d.Span.StartCol, d.Message)
}

// IsWarning reports whether d is non-fatal.
func (d Diagnostic) IsWarning() bool {
	return d.Severity == SeverityWarning
}

// New builds a fatal Diagnostic with no notes.
func New(kind Kind, sp Span, format string, args ...any) Diagnostic {
	return Diagnostic{Kind: kind, Message: fmt.Sprintf(format, args...), Span: sp}
}

// Warn builds a non-fatal Diagnostic with no notes.
func Warn(kind Kind, sp Span, format string, args ...any) Diagnostic {
	return Diagnostic{Kind: kind, Message: fmt.Sprintf(format, args...), Span: sp, Severity: SeverityWarning}
}

// WithNote appends a secondary span to a diagnostic, returning the
// updated value (Diagnostic is a small value type, copied by design —
// see DESIGN.md on why the core avoids shared-ownership graphs).
func (d Diagnostic) WithNote(message string, sp Span) Diagnostic {
	d.Notes = append(d.Notes, Note{Message: message, Span: sp})
	return d
}

// IsSyntax, IsName, IsAsset classify a diagnostic's kind into its family,
// mirroring the closed taxonomy of spec.md §4.6. They are conveniences
// for callers presenting errors; the core itself never branches on them.
func (k Kind) IsSyntax() bool {
	switch k {
	case ContinuationBeforeStatement, UnclosedBlock, MalformedDirective,
		EmptyReply, NestedDirective, BadMarkerOnPagebreak, HeaderKeyAfterBody,
		UnknownDirective:
		return true
	}
	return false
}

func (k Kind) IsName() bool {
	switch k {
	case UnknownPack, DuplicateAlias, UnknownCharacter, UnknownShortId,
		BackrefOutOfRange, IndexOutOfRange, NoCurrentSpeaker:
		return true
	}
	return false
}

func (k Kind) IsAsset() bool {
	switch k {
	case UnknownAsset, InvalidAssetPath:
		return true
	}
	return false
}
