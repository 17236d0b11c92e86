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

// Package momoscript is the top-level entry point gluing the line
// classifier/AST builder (lexer), the semantic compiler (compiler) and
// a pack registry adapter (pack) into a single Parse/Compile call, one
// orchestrating function wiring config, registry and core front end
// together.
package momoscript

import (
	"github.com/rs/zerolog"

	"github.com/xiyihan0/momoscript/ast"
	"github.com/xiyihan0/momoscript/compiler"
	"github.com/xiyihan0/momoscript/diag"
	"github.com/xiyihan0/momoscript/ir"
	"github.com/xiyihan0/momoscript/lexer"
	"github.com/xiyihan0/momoscript/pack"
)

// Parse runs the line classifier/AST builder in isolation (spec.md
// §4.1's parse(source) -> (nodes, diagnostics)).
func Parse(source string) ([]ast.Node, []diag.Diagnostic) {
	return lexer.Parse(source)
}

// Compile runs the full two-stage front end: parse, then (if parsing
// produced no diagnostics) semantic compilation against registry under
// mode. A syntax diagnostic from the parse stage is never papered over
// by attempting to compile the AST it came from — spec.md's per-node
// invariants assume a clean AST — so Compile returns the parse
// diagnostics immediately in that case, with the first one as err.
//
// logger is optional; pass zerolog.Nop() (or a zero zerolog.Logger) to
// silence compiler trace output entirely. It is never read from a
// package-level global.
func Compile(source string, registry pack.Registry, mode compiler.ModeFlags, logger zerolog.Logger) (*ir.Document, []diag.Diagnostic, error) {
	nodes, diags := lexer.Parse(source)
	if len(diags) > 0 {
		return nil, diags, diags[0]
	}
	doc, compileDiags, err := compiler.New(registry, mode).WithLogger(logger).Compile(nodes)
	return doc, compileDiags, err
}
