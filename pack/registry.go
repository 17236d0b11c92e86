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

// Package pack implements the read-only Pack Registry collaborator of
// spec.md §4.3: name→canonical-id lookups plus per-character avatar and
// asset paths. The compiler only ever sees the Registry interface; it
// never loads manifest/char_id/asset_mapping files itself.
package pack

import (
	"strings"

	"github.com/czcorpus/cnc-gokit/collections"
)

// Manifest mirrors a pack's declarative manifest.json (spec.md §4.3):
// id, name, version, type, its requires[] and any EULA notice the
// registry should pass through (the core never enforces EULA
// acceptance — spec.md §7).
type Manifest struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Version  string   `json:"version"`
	Type     string   `json:"type"` // "base" or "extension"
	Requires []string `json:"requires"`
	EULA     string   `json:"eula,omitempty"`
}

// CharAssets is one pack character's entry in asset_mapping.json.
type CharAssets struct {
	AvatarPath      string `json:"avatarPath"`
	ExpressionsDir  string `json:"expressionsDir"`
	TagsFile        string `json:"tagsFile"`
}

// Registry is the read-only interface the compiler requires (spec.md
// §4.3). Implementations must be safe for concurrent reads (spec.md
// §5); the file-based, sqlite-cached and MySQL-backed adapters in this
// package all satisfy that by loading once into an immutable Snapshot.
type Registry interface {
	LookupByName(packID, name string) (charID string, ok bool)
	DefaultAvatarPath(packID, charID string) (path string, ok bool)
	ExpressionsDir(packID, charID string) (path string, ok bool)
	TagsFile(packID, charID string) (path string, ok bool)
	KnownPacks() []string
}

// DefaultNamespaceOrder is the fixed default-namespace resolution order
// spec.md §4.2 requires ("built-in pack(s) in declared default order").
// "ba" is the example built-in from spec.md §6.3; it carries no special
// status in the core beyond occupying the first slot here.
var DefaultNamespaceOrder = []string{"ba"}

// packIDKey is a tiny Comparable wrapper so KnownPacks can be
// deduplicated and ordered through collections.BinTree: wrap the raw
// value in a Comparable, add with UniqValues set, read back
// sorted+unique.
type packIDKey string

func (k packIDKey) Compare(other collections.Comparable) int {
	o, ok := other.(packIDKey)
	if !ok {
		return -1
	}
	return strings.Compare(string(k), string(o))
}

// dedupeSorted returns ids deduplicated and sorted via a BinTree with
// UniqValues set.
func dedupeSorted(ids []string) []string {
	tree := new(collections.BinTree[packIDKey])
	tree.UniqValues = true
	wrapped := make([]packIDKey, len(ids))
	for i, id := range ids {
		wrapped[i] = packIDKey(id)
	}
	tree.Add(wrapped...)
	out := tree.ToSlice()
	ans := make([]string, len(out))
	for i, v := range out {
		ans[i] = string(v)
	}
	return ans
}
