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

	"github.com/xiyihan0/momoscript/diag"
	"github.com/xiyihan0/momoscript/pack"
)

// resolveAssetRef implements the asset_ref forms of spec.md §4.2's
// AvatarId/AvatarOverride handler: an explicit @asset. reference, a
// bare name already declared via @asset.<name>, a kivo-<n> pack
// character, a URL/data URL passed through verbatim, and finally a
// character selector whose default avatar is borrowed.
func (c *Compiler) resolveAssetRef(ref string, sp diag.Span) (string, bool) {
	switch {
	case strings.HasPrefix(ref, "@asset."):
		name := strings.TrimPrefix(ref, "@asset.")
		v, ok := c.doc.Meta.Get("asset." + name)
		if !ok {
			c.fail(diag.New(diag.UnknownAsset, sp, "unresolved asset reference %q", ref))
			return "", false
		}
		return v, true

	case reKivoRef.MatchString(ref):
		for _, packID := range pack.DefaultNamespaceOrder {
			if path, ok := c.registry.DefaultAvatarPath(packID, ref); ok {
				return path, true
			}
		}
		c.fail(diag.New(diag.UnknownAsset, sp, "unknown pack character %q", ref))
		return "", false

	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"), strings.HasPrefix(ref, "data:image/"):
		return ref, true

	default:
		if v, ok := c.doc.Meta.Get("asset." + ref); ok {
			return v, true
		}
		charID, ok := c.resolveSelector(ref, sp)
		if !ok {
			return "", false
		}
		return c.avatarPathFor(charID, sp)
	}
}

// packIDFor maps a canonical prefix ("ns" in "ns.rest") back to the
// pack_id it names, whether ns is a usepack alias or a bare pack_id
// used directly (spec.md §4.4 step 3 permits either as a namespace).
func (c *Compiler) packIDFor(ns string) (string, bool) {
	if id, ok := c.state.packAliasToID[ns]; ok {
		return id, true
	}
	for _, id := range c.registry.KnownPacks() {
		if id == ns {
			return id, true
		}
	}
	return "", false
}

// avatarPathFor borrows a pack character's default avatar (the bare
// "pack character name" form of AvatarId's asset_ref) for a resolved
// charID. Custom characters carry their avatar inline and have no
// registry-backed default.
func (c *Compiler) avatarPathFor(charID string, sp diag.Span) (string, bool) {
	if entry, ok := c.state.customChars[charID]; ok {
		if entry.avatarRef != "" {
			return entry.avatarRef, true
		}
		c.fail(diag.New(diag.UnknownAsset, sp, "custom character %q has no avatar to borrow", charID))
		return "", false
	}

	idx := strings.IndexByte(charID, '.')
	if idx < 0 {
		c.fail(diag.New(diag.UnknownAsset, sp, "no default avatar available for %q", charID))
		return "", false
	}
	ns, name := charID[:idx], charID[idx+1:]
	packID, ok := c.packIDFor(ns)
	if !ok {
		c.fail(diag.New(diag.UnknownAsset, sp, "cannot resolve pack for %q", charID))
		return "", false
	}
	path, ok := c.registry.DefaultAvatarPath(packID, name)
	if !ok {
		c.fail(diag.New(diag.UnknownAsset, sp, "no default avatar for %q", charID))
		return "", false
	}
	return path, true
}
