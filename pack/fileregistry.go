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
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/xiyihan0/momoscript/fs"
)

// LoadFileRegistry builds a Snapshot by reading each pack's three
// declarative tables (manifest.json, char_id.json, asset_mapping.json)
// from baseDir/<pack_id>/. Decoding uses sonic (see SPEC_FULL.md §5)
// instead of encoding/json. Path validation follows the fs.IsDir/
// fs.IsFile existence-check style (fs/utils.go), generalized
// here to also reject any path segment that would escape baseDir.
func LoadFileRegistry(baseDir string) (*Snapshot, error) {
	entries, err := os.ReadDir(baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list pack directory %s: %w", baseDir, err)
	}
	snap := NewSnapshot()
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		packID := e.Name()
		packDir, err := safeJoin(baseDir, packID)
		if err != nil {
			return nil, err
		}
		m, err := loadManifest(packDir)
		if err != nil {
			return nil, fmt.Errorf("pack %s: %w", packID, err)
		}
		charIDs, err := loadCharIDs(packDir)
		if err != nil {
			return nil, fmt.Errorf("pack %s: %w", packID, err)
		}
		assets, err := loadAssetMapping(packDir)
		if err != nil {
			return nil, fmt.Errorf("pack %s: %w", packID, err)
		}
		snap.addPack(m, charIDs, assets)
	}
	return snap, nil
}

// safeJoin joins base and name, rejecting any result that would escape
// base (no ".." traversal) — the path validation spec.md §4.3 assigns
// to the adapter, not the compiler.
func safeJoin(base, name string) (string, error) {
	joined := filepath.Join(base, name)
	cleanBase := filepath.Clean(base)
	if joined != cleanBase && !strings.HasPrefix(joined, cleanBase+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid asset path %q escapes base directory %q", name, base)
	}
	return joined, nil
}

func loadManifest(packDir string) (Manifest, error) {
	path, err := safeJoin(packDir, "manifest.json")
	if err != nil {
		return Manifest{}, err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("failed to read manifest: %w", err)
	}
	var m Manifest
	if err := sonic.Unmarshal(raw, &m); err != nil {
		return Manifest{}, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return m, nil
}

// loadCharIDs loads packDir's optional char_id.json, using fs.IsFile to
// test for its presence rather than branching on the read error the
// way loadManifest does for the mandatory manifest.json (char_id.json
// is optional per spec.md §4.3: a pack may rely entirely on default
// pack-character names with no id remapping).
func loadCharIDs(packDir string) (map[string]string, error) {
	path, err := safeJoin(packDir, "char_id.json")
	if err != nil {
		return nil, err
	}
	if !fs.IsFile(path) {
		return map[string]string{}, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read char_id.json: %w", err)
	}
	var m map[string]string
	if err := sonic.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("failed to parse char_id.json: %w", err)
	}
	return m, nil
}

func loadAssetMapping(packDir string) (map[string]CharAssets, error) {
	path, err := safeJoin(packDir, "asset_mapping.json")
	if err != nil {
		return nil, err
	}
	if !fs.IsFile(path) {
		return map[string]CharAssets{}, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read asset_mapping.json: %w", err)
	}
	var m map[string]CharAssets
	if err := sonic.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("failed to parse asset_mapping.json: %w", err)
	}
	return m, nil
}
