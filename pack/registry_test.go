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

package pack

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeSortedRemovesDuplicatesAndSorts(t *testing.T) {
	got := dedupeSorted([]string{"ba", "z-pack", "ba", "alpha"})
	assert.Equal(t, []string{"alpha", "ba", "z-pack"}, got)
}

func TestDedupeSortedEmpty(t *testing.T) {
	got := dedupeSorted(nil)
	assert.Empty(t, got)
}

func TestSnapshotKnownPacksDeduplicatedAndSorted(t *testing.T) {
	snap := NewSnapshot()
	snap.addPack(Manifest{ID: "zeta"}, nil, nil)
	snap.addPack(Manifest{ID: "alpha"}, nil, nil)
	snap.addPack(Manifest{ID: "zeta"}, nil, nil) // re-registering the same id is a no-op for ordering

	assert.Equal(t, []string{"alpha", "zeta"}, snap.KnownPacks())
}

func TestSnapshotManifestLookup(t *testing.T) {
	snap := NewSnapshot()
	snap.addPack(Manifest{ID: "ba", Name: "Blue Archive"}, nil, nil)

	m, ok := snap.Manifest("ba")
	assert.True(t, ok)
	assert.Equal(t, "Blue Archive", m.Name)

	_, ok = snap.Manifest("missing")
	assert.False(t, ok)
}
