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
	"fmt"
	"regexp"
	"strings"

	"github.com/xiyihan0/momoscript/diag"
	"github.com/xiyihan0/momoscript/pack"
)

var (
	reSelBackref = regexp.MustCompile(`^_(\d*)$`)
	reSelIndex   = regexp.MustCompile(`^~(\d+)$`)
	reKivoRef    = regexp.MustCompile(`^kivo-\d+$`)
)

// resolveBackref implements Marker Backref (spec.md §3.3, §4.4): n==1
// (the lexer's splitMarker already folds bare "_" to n=1) is the most
// recent distinct speaker on the same side, evaluated against history
// as it stood before this statement. Always fatal on failure — a
// backref is only ever written by the author of the statement it
// appears in, so there is no "drop and continue" reading.
func (c *Compiler) resolveBackref(side Side, n int, sp diag.Span) (string, bool) {
	if n == 0 {
		c.fail(diag.New(diag.BackrefOutOfRange, sp, "backref \"_0\" is invalid"))
		return "", false
	}
	hist := c.state.sideHistory[side]
	if n > len(hist) {
		c.fail(diag.New(diag.BackrefOutOfRange, sp,
			"backref \"_%d\" exceeds %s-side history of length %d", n, side, len(hist)))
		return "", false
	}
	return hist[n-1], true
}

// resolveIndex implements Marker Index (spec.md §3.3, §4.4): "~n" is the
// n-th distinct speaker to have appeared anywhere, evaluated against the
// prior state (before this statement's own speaker is recorded).
func (c *Compiler) resolveIndex(n int, sp diag.Span) (string, bool) {
	if n < 1 || n > len(c.state.globalOrder) {
		c.fail(diag.New(diag.IndexOutOfRange, sp,
			"global index \"~%d\" out of range (%d known speakers)", n, len(c.state.globalOrder)))
		return "", false
	}
	return c.state.globalOrder[n-1], true
}

// resolveSelector resolves an Explicit-form selector (spec.md §4.4),
// recording a fatal diagnostic and returning ok=false on failure.
func (c *Compiler) resolveSelector(sel string, sp diag.Span) (string, bool) {
	charID, d, ok := c.trySelector(sel, sp)
	if !ok {
		c.fail(d)
		return "", false
	}
	return charID, true
}

// resolveSelectorSoft resolves sel the same way but downgrades a
// failure to a warning (the directive using it is dropped, not fatal) —
// spec.md §4.2's Alias/TmpAlias handler and its §9 Open Question ("source
// appears to [warn]; specified as warning here").
func (c *Compiler) resolveSelectorSoft(sel string, sp diag.Span) (string, bool) {
	charID, d, ok := c.trySelector(sel, sp)
	if !ok {
		c.warn(d)
		return "", false
	}
	return charID, true
}

// trySelector is the side-effect-free core of spec.md §4.4: it never
// touches the diagnostics list, leaving that to its two callers above.
func (c *Compiler) trySelector(sel string, sp diag.Span) (string, diag.Diagnostic, bool) {
	if reSelBackref.MatchString(sel) || reSelIndex.MatchString(sel) {
		return "", diag.New(diag.UnknownCharacter, sp, "backref/index selector %q is not valid here", sel), false
	}
	// "kivo-<n>" is already a canonical char_id (spec.md §3.7 invariant 2
	// lists it alongside "__Sensei" as a form distinct from any
	// "<pack_alias>.<name>" pairing) — pass it through unresolved.
	if reKivoRef.MatchString(sel) {
		return sel, diag.Diagnostic{}, true
	}
	if idx := strings.IndexByte(sel, '.'); idx >= 0 {
		ns, rest := sel[:idx], sel[idx+1:]
		if packID, ok := c.resolveNamespace(ns); ok {
			if ns == "custom" {
				return c.lookupCustom(rest, sp)
			}
			return c.lookupInPack(ns, packID, rest, sp)
		}
		// ns not recognized: fall through, treat the whole string as
		// an unqualified selector (dots and all).
	}
	return c.resolveUnqualified(sel, sp)
}

// resolveNamespace reports whether ns names a usable namespace and, if
// so, the pack_id backing it ("" for "custom").
func (c *Compiler) resolveNamespace(ns string) (string, bool) {
	if ns == "custom" {
		return "", true
	}
	if packID, ok := c.state.packAliasToID[ns]; ok {
		return packID, true
	}
	for _, id := range c.registry.KnownPacks() {
		if id == ns {
			return id, true
		}
	}
	return "", false
}

func (c *Compiler) lookupCustom(name string, sp diag.Span) (string, diag.Diagnostic, bool) {
	if _, ok := c.state.customChars[name]; ok {
		return name, diag.Diagnostic{}, true
	}
	return "", diag.New(diag.UnknownCharacter, sp, "unknown custom character %q", name), false
}

func (c *Compiler) lookupInPack(alias, packID, name string, sp diag.Span) (string, diag.Diagnostic, bool) {
	charID, ok := c.registry.LookupByName(packID, name)
	if !ok {
		return "", diag.New(diag.UnknownCharacter, sp, "unknown character %q in pack %q", name, alias), false
	}
	return fmt.Sprintf("%s.%s", alias, charID), diag.Diagnostic{}, true
}

// resolveUnqualified implements §4.4 step 4: short-id substitution, then
// the fixed namespace order (default packs, then custom, then
// usepack-registered aliases in declaration order).
func (c *Compiler) resolveUnqualified(sel string, sp diag.Span) (string, diag.Diagnostic, bool) {
	effective := sel
	if target, ok := c.state.shortIDMap[sel]; ok {
		effective = target
	}

	for _, packID := range pack.DefaultNamespaceOrder {
		if charID, ok := c.registry.LookupByName(packID, effective); ok {
			return fmt.Sprintf("%s.%s", packID, charID), diag.Diagnostic{}, true
		}
	}
	if _, ok := c.state.customChars[effective]; ok {
		return effective, diag.Diagnostic{}, true
	}
	for _, alias := range c.state.packAliasOrder {
		packID := c.state.packAliasToID[alias]
		if charID, ok := c.registry.LookupByName(packID, effective); ok {
			return fmt.Sprintf("%s.%s", alias, charID), diag.Diagnostic{}, true
		}
	}
	return "", diag.New(diag.UnknownCharacter, sp, "unknown character %q", sel), false
}
