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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadFileRegistryFullPack(t *testing.T) {
	base := t.TempDir()
	packDir := filepath.Join(base, "ba")
	writeFile(t, filepath.Join(packDir, "manifest.json"), `{
		"id": "ba", "name": "Blue Archive", "version": "1.0", "type": "base", "requires": []
	}`)
	writeFile(t, filepath.Join(packDir, "char_id.json"), `{"星野": "hoshino"}`)
	writeFile(t, filepath.Join(packDir, "asset_mapping.json"), `{
		"hoshino": {"avatarPath": "ba/hoshino/avatar.png", "expressionsDir": "ba/hoshino/expr", "tagsFile": "ba/hoshino/tags.json"}
	}`)

	snap, err := LoadFileRegistry(base)
	require.NoError(t, err)

	assert.Equal(t, []string{"ba"}, snap.KnownPacks())

	charID, ok := snap.LookupByName("ba", "星野")
	assert.True(t, ok)
	assert.Equal(t, "hoshino", charID)

	avatar, ok := snap.DefaultAvatarPath("ba", "hoshino")
	assert.True(t, ok)
	assert.Equal(t, "ba/hoshino/avatar.png", avatar)
}

func TestLoadFileRegistryOptionalTablesMissing(t *testing.T) {
	base := t.TempDir()
	packDir := filepath.Join(base, "minimal")
	writeFile(t, filepath.Join(packDir, "manifest.json"), `{
		"id": "minimal", "name": "Minimal Pack", "version": "1.0", "type": "base", "requires": []
	}`)

	snap, err := LoadFileRegistry(base)
	require.NoError(t, err)

	_, ok := snap.LookupByName("minimal", "anyone")
	assert.False(t, ok)
}

func TestLoadFileRegistryMissingManifestErrors(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(base, "broken"), 0o755))

	_, err := LoadFileRegistry(base)
	assert.Error(t, err)
}
