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
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteRegistryWriteThenLoadRoundTrip(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "packs.sqlite3")

	snap := NewSnapshot()
	snap.addPack(
		Manifest{ID: "ba", Name: "Blue Archive", Version: "1.0", Type: "base", Requires: []string{"core"}},
		map[string]string{"星野": "hoshino"},
		map[string]CharAssets{"hoshino": {AvatarPath: "ba/hoshino/avatar.png", ExpressionsDir: "ba/hoshino/expr", TagsFile: "ba/hoshino/tags.json"}},
	)

	require.NoError(t, WriteSQLiteRegistry(dbPath, snap))

	loaded, err := LoadSQLiteRegistry(dbPath)
	require.NoError(t, err)

	assert.Equal(t, []string{"ba"}, loaded.KnownPacks())

	m, ok := loaded.Manifest("ba")
	require.True(t, ok)
	assert.Equal(t, "Blue Archive", m.Name)
	assert.Equal(t, []string{"core"}, m.Requires)

	charID, ok := loaded.LookupByName("ba", "星野")
	require.True(t, ok)
	assert.Equal(t, "hoshino", charID)

	avatar, ok := loaded.DefaultAvatarPath("ba", "hoshino")
	require.True(t, ok)
	assert.Equal(t, "ba/hoshino/avatar.png", avatar)
}

func TestWriteSQLiteRegistryOverwritesExistingRows(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "packs.sqlite3")

	first := NewSnapshot()
	first.addPack(Manifest{ID: "old"}, nil, nil)
	require.NoError(t, WriteSQLiteRegistry(dbPath, first))

	second := NewSnapshot()
	second.addPack(Manifest{ID: "new"}, nil, nil)
	require.NoError(t, WriteSQLiteRegistry(dbPath, second))

	loaded, err := LoadSQLiteRegistry(dbPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"new"}, loaded.KnownPacks())
}
