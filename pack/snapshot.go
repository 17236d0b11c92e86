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

// Snapshot is an immutable, concurrency-safe point-in-time view of a
// pack registry (spec.md §5: "the simplest implementation is an
// immutable snapshot"). Every adapter in this package (file, sqlite,
// mysql) loads its backing data once into a Snapshot and then only ever
// reads it; mutation of pack data, if it ever happens, must be
// serialized externally against readers (spec.md §5), so Snapshot
// itself exposes no write path at all.
type Snapshot struct {
	manifests map[string]Manifest
	charIDs   map[string]map[string]string     // packID -> external name -> canonical char_id
	assets    map[string]map[string]CharAssets // packID -> char_id -> assets
	order     []string                         // pack ids in load order, for KnownPacks
}

// NewSnapshot returns an empty Snapshot; adapters fill it with
// already-decoded pack tables. It never touches the filesystem or a
// database itself — that is each adapter's job.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		manifests: make(map[string]Manifest),
		charIDs:   make(map[string]map[string]string),
		assets:    make(map[string]map[string]CharAssets),
	}
}

func (s *Snapshot) addPack(m Manifest, charID map[string]string, assets map[string]CharAssets) {
	if _, exists := s.manifests[m.ID]; !exists {
		s.order = append(s.order, m.ID)
	}
	s.manifests[m.ID] = m
	s.charIDs[m.ID] = charID
	s.assets[m.ID] = assets
}

func (s *Snapshot) LookupByName(packID, name string) (string, bool) {
	m, ok := s.charIDs[packID]
	if !ok {
		return "", false
	}
	id, ok := m[name]
	return id, ok
}

func (s *Snapshot) DefaultAvatarPath(packID, charID string) (string, bool) {
	a, ok := s.charAssets(packID, charID)
	if !ok || a.AvatarPath == "" {
		return "", false
	}
	return a.AvatarPath, true
}

func (s *Snapshot) ExpressionsDir(packID, charID string) (string, bool) {
	a, ok := s.charAssets(packID, charID)
	if !ok || a.ExpressionsDir == "" {
		return "", false
	}
	return a.ExpressionsDir, true
}

func (s *Snapshot) TagsFile(packID, charID string) (string, bool) {
	a, ok := s.charAssets(packID, charID)
	if !ok || a.TagsFile == "" {
		return "", false
	}
	return a.TagsFile, true
}

func (s *Snapshot) charAssets(packID, charID string) (CharAssets, bool) {
	m, ok := s.assets[packID]
	if !ok {
		return CharAssets{}, false
	}
	a, ok := m[charID]
	return a, ok
}

func (s *Snapshot) KnownPacks() []string {
	return dedupeSorted(s.order)
}

// Manifest returns the manifest of a known pack.
func (s *Snapshot) Manifest(packID string) (Manifest, bool) {
	m, ok := s.manifests[packID]
	return m, ok
}

// CharIDs returns packID's full external-name -> char_id table. Used by
// cmd/packgen to dump a file-loaded Snapshot into a SQL cache; the
// compiler itself only ever calls LookupByName.
func (s *Snapshot) CharIDs(packID string) map[string]string {
	return s.charIDs[packID]
}

// CharAssetsAll returns packID's full char_id -> CharAssets table, for
// the same cmd/packgen dumping purpose as CharIDs.
func (s *Snapshot) CharAssetsAll(packID string) map[string]CharAssets {
	return s.assets[packID]
}

var _ Registry = (*Snapshot)(nil)
