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

// Package compiler implements the Semantic Compiler of spec.md §4.2: it
// folds the lexer's flat ast.Node list into an ir.Document, threading a
// private state bundle (speaker histories, aliases, pack namespaces,
// custom characters) across one forward pass. The dispatch shape — a
// stateful struct with one handler method per node kind, fed by a
// single driving loop — follows proc.TTExtractor's ProcToken/ProcStruct
// pattern (proc/inserting.go), generalized from vertigo callback events
// to MomoScript's own closed node-kind union.
package compiler

import (
	"github.com/rs/zerolog"

	"github.com/xiyihan0/momoscript/ast"
	"github.com/xiyihan0/momoscript/diag"
	"github.com/xiyihan0/momoscript/idgen"
	"github.com/xiyihan0/momoscript/ir"
	"github.com/xiyihan0/momoscript/pack"
)

// reservedMetaKeys are written into ir.meta exactly as given (spec.md
// §4.2's MetaKV handler treats every key this way, reserved or not, so
// this set exists only for documentation/validation, not branching).
var reservedMetaKeys = map[string]bool{
	"title": true, "author": true, "width": true,
	"bubble_inset": true, "typst": true, "typst_global": true,
}

// fatalSignal unwinds the compile pass on the first SeverityError
// diagnostic (spec.md §7: "first error halts compilation; prior partial
// IR is discarded"). It never escapes this package: Compile recovers it
// and returns the diagnostic through its normal (doc, diags, err)
// signature, the same way the parser returns diagnostics as data rather
// than letting a panic reach the caller.
type fatalSignal struct {
	d diag.Diagnostic
}

// Compiler holds the configuration and private state of one Compile
// call. It is not safe to reuse across calls and not safe for
// concurrent use — spec.md §5 scopes state per invocation.
type Compiler struct {
	mode     ModeFlags
	registry pack.Registry
	state    *state
	diags    []diag.Diagnostic
	doc      *ir.Document
	logger   *zerolog.Logger
}

// New returns a Compiler ready to compile one AST against registry
// under mode. Trace logging is off until WithLogger is called — unlike
// the db/sqlite adapter's package-level log.Print calls, this package
// never reaches for a global logger.
func New(registry pack.Registry, mode ModeFlags) *Compiler {
	return &Compiler{mode: mode, registry: registry, state: newState()}
}

// WithLogger attaches l as the Compiler's trace logger and returns c
// for chaining. A Compiler that never calls WithLogger logs nothing.
func (c *Compiler) WithLogger(l zerolog.Logger) *Compiler {
	c.logger = &l
	return c
}

// Compile folds nodes into an ir.Document (spec.md §4.2's "compile"
// operation). It returns the diagnostics accumulated so far; err is
// non-nil exactly when a fatal diagnostic halted compilation, in which
// case doc is nil (spec.md §7: "prior partial IR is discarded").
func (c *Compiler) Compile(nodes []ast.Node) (doc *ir.Document, diags []diag.Diagnostic, err error) {
	c.doc = ir.NewDocument()
	defer func() {
		if r := recover(); r != nil {
			fs, ok := r.(fatalSignal)
			if !ok {
				panic(r)
			}
			doc, diags, err = nil, c.diags, fs.d
		}
	}()

	for i := range nodes {
		c.logNode(nodes[i].Kind, nodes[i].Span)
		c.dispatch(&nodes[i])
	}
	c.flushCustomChars()
	return c.doc, c.diags, nil
}

// flushCustomChars copies every declared custom character into
// doc.CustomChars, in declaration order, so each custom-* char_id used
// in chat has a matching triple (spec.md §3.6, §3.7.3).
func (c *Compiler) flushCustomChars() {
	for _, charID := range c.state.customOrder {
		entry := c.state.customChars[charID]
		c.doc.CustomChars = append(c.doc.CustomChars, ir.CustomChar{
			CharID:      charID,
			AvatarRef:   entry.avatarRef,
			DisplayName: entry.display,
		})
	}
}

// fail records a fatal diagnostic and immediately unwinds the pass.
func (c *Compiler) fail(d diag.Diagnostic) {
	c.diags = append(c.diags, d)
	panic(fatalSignal{d: d})
}

// warn records d as a non-fatal diagnostic and continues, regardless of
// the Severity it was built with (trySelector's shared diag.New path
// has no reason to know which of its two callers will use it as a
// warning).
func (c *Compiler) warn(d diag.Diagnostic) {
	d.Severity = diag.SeverityWarning
	c.diags = append(c.diags, d)
}

// dispatch is the exhaustive switch over ast.Kind spec.md §9 asks for:
// adding a node kind must require a new case here.
func (c *Compiler) dispatch(n *ast.Node) {
	switch n.Kind {
	case ast.KindMetaKV:
		c.doc.Meta.Set(n.Key, n.Value)
	case ast.KindTypstGlobal:
		c.appendTypstGlobal(n.Value)
	case ast.KindUsePack:
		c.handleUsePack(n)
	case ast.KindAlias:
		c.handleAlias(n, false)
	case ast.KindTmpAlias:
		c.handleAlias(n, true)
	case ast.KindAliasId:
		c.state.shortIDMap[n.ShortID] = n.Name
	case ast.KindUnaliasId:
		c.handleUnaliasID(n)
	case ast.KindCharId:
		c.handleCharID(n)
	case ast.KindUncharId:
		c.state.removeCustomChar(n.ShortID)
	case ast.KindAvatarId:
		c.handleAvatarTarget(n.ShortID, n.AssetRef, n.Span)
	case ast.KindUnavatarId:
		c.handleAvatarClearTarget(n.ShortID, n.Span)
	case ast.KindAvatarOverride:
		c.handleAvatarOverride(n)
	case ast.KindPageBreak:
		c.emitPageBreak(n)
	case ast.KindReply:
		c.emitReply(n)
	case ast.KindBond:
		c.emitBond(n)
	case ast.KindStatement:
		c.handleStatement(n, n.Content)
	default:
		c.fail(diag.New(diag.InvariantError, n.Span, "unhandled node kind %s", n.Kind))
	}
}

func (c *Compiler) appendTypstGlobal(value string) {
	if c.doc.TypstGlobal != "" {
		c.doc.TypstGlobal += "\n"
	}
	c.doc.TypstGlobal += value
}

func (c *Compiler) handleUsePack(n *ast.Node) {
	known := false
	for _, id := range c.registry.KnownPacks() {
		if id == n.PackID {
			known = true
			break
		}
	}
	if !known {
		c.fail(diag.New(diag.UnknownPack, n.Span, "unknown pack %q", n.PackID))
		return
	}
	if _, exists := c.state.packAliasToID[n.Alias]; exists {
		c.fail(diag.New(diag.DuplicateAlias, n.Span, "alias %q already registered", n.Alias))
		return
	}
	c.state.packAliasOrder = append(c.state.packAliasOrder, n.Alias)
	c.state.packAliasToID[n.Alias] = n.PackID
}

// handleAlias implements Alias/TmpAlias (spec.md §4.2). Resolution
// failure is a dropped-directive warning, not fatal (§7's one
// documented Open Question: "source appears to [warn]; specified as
// warning here").
func (c *Compiler) handleAlias(n *ast.Node, temp bool) {
	charID, ok := c.resolveSelectorSoft(n.Name, n.Span)
	if !ok {
		return
	}
	if temp {
		if n.Cleared {
			delete(c.state.tmpAliasPending, charID)
			return
		}
		c.state.tmpAliasPending[charID] = n.Value
		return
	}
	if n.Cleared {
		delete(c.state.aliases, charID)
		return
	}
	c.state.aliases[charID] = n.Value
}

func (c *Compiler) handleUnaliasID(n *ast.Node) {
	if _, ok := c.state.shortIDMap[n.ShortID]; !ok {
		c.fail(diag.New(diag.UnknownShortId, n.Span, "unknown short id %q", n.ShortID))
		return
	}
	// Safety check: refuse to remove a short id that now collides with
	// a name resolvable directly via pack lookup, mirroring §4.2's
	// "collides with a name already resolvable via pack lookup".
	for _, packID := range pack.DefaultNamespaceOrder {
		if _, ok := c.registry.LookupByName(packID, n.ShortID); ok {
			c.fail(diag.New(diag.UnknownShortId, n.Span,
				"short id %q collides with a resolvable pack character name", n.ShortID))
			return
		}
	}
	delete(c.state.shortIDMap, n.ShortID)
}

// handleCharID implements CharId (spec.md §4.2). As authored, "@charid
// SHORT_ID [DISPLAY]" always supplies at least one token; when only one
// is given, that sole token is the display name and the char_id is the
// deterministic hash (spec.md §6.3), not a literal short id — this
// reconciles the directive grammar (first token mandatory) with the
// handler semantics ("short_id verbatim if the user provided one, else
// a deterministic custom-<hash>").
func (c *Compiler) handleCharID(n *ast.Node) {
	var charID, display string
	if n.Display == "" {
		display = n.ShortID
		charID = idgen.CustomCharID(display)
	} else {
		charID = n.ShortID
		display = n.Display
	}
	c.state.setCustomChar(charID, display, "")
}

func (c *Compiler) handleAvatarTarget(selector, assetRef string, sp diag.Span) {
	charID, ok := c.resolveSelector(selector, sp)
	if !ok {
		return
	}
	ref, ok := c.resolveAssetRef(assetRef, sp)
	if !ok {
		return
	}
	c.applyAvatar(charID, ref)
}

func (c *Compiler) handleAvatarClearTarget(selector string, sp diag.Span) {
	charID, ok := c.resolveSelector(selector, sp)
	if !ok {
		return
	}
	delete(c.state.avatarOverrides, charID)
	if entry, exists := c.state.customChars[charID]; exists {
		entry.avatarRef = ""
		c.state.customChars[charID] = entry
	}
}

func (c *Compiler) handleAvatarOverride(n *ast.Node) {
	charID, ok := c.resolveSelector(n.Name, n.Span)
	if !ok {
		return
	}
	if n.Cleared {
		delete(c.state.avatarOverrides, charID)
		return
	}
	ref, ok := c.resolveAssetRef(n.Value, n.Span)
	if !ok {
		return
	}
	c.applyAvatar(charID, ref)
}

// applyAvatar records ref as charID's avatar. Custom characters carry
// their avatar_ref inline in custom_chars (spec.md §3.6); pack
// characters get a separate avatar_overrides entry.
func (c *Compiler) applyAvatar(charID, ref string) {
	if entry, exists := c.state.customChars[charID]; exists {
		entry.avatarRef = ref
		c.state.customChars[charID] = entry
		return
	}
	c.state.avatarOverrides[charID] = ref
}

// logNode emits a debug trace the way proc's extractor logs progress
// every N processed lines, scaled down to "one structural event" since
// a MomoScript source is orders of magnitude smaller than a vertical
// corpus file. A no-op when no logger was attached via WithLogger.
func (c *Compiler) logNode(kind ast.Kind, sp diag.Span) {
	if c.logger == nil {
		return
	}
	c.logger.Debug().
		Str("kind", kind.String()).
		Int("line", sp.StartLine).
		Msg("compiled node")
}
