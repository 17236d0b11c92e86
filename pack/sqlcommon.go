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
	"database/sql"
	"fmt"
	"strings"
)

// The sqlite and mysql adapters share one schema and one loading
// routine (loadSnapshotFromSQL); only the driver name and DSN shape
// differ between them. The load queries take no parameters, and the
// INSERTs in persistSnapshotToSQL use "?" placeholders, which both
// drivers accept.
//
//	packs(id, name, version, type, requires, eula)
//	char_ids(pack_id, name, char_id)
//	char_assets(pack_id, char_id, avatar_path, expressions_dir, tags_file)

func loadSnapshotFromSQL(database *sql.DB) (*Snapshot, error) {
	snap := NewSnapshot()

	packRows, err := database.Query(`SELECT id, name, version, type, requires, eula FROM packs`)
	if err != nil {
		return nil, fmt.Errorf("failed to query packs: %w", err)
	}
	defer packRows.Close()

	manifests := make(map[string]Manifest)
	for packRows.Next() {
		var m Manifest
		var requires string
		if err := packRows.Scan(&m.ID, &m.Name, &m.Version, &m.Type, &requires, &m.EULA); err != nil {
			return nil, fmt.Errorf("failed to scan pack row: %w", err)
		}
		if requires != "" {
			m.Requires = strings.Split(requires, ",")
		}
		manifests[m.ID] = m
	}
	if err := packRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read packs: %w", err)
	}

	charIDs := make(map[string]map[string]string)
	idRows, err := database.Query(`SELECT pack_id, name, char_id FROM char_ids`)
	if err != nil {
		return nil, fmt.Errorf("failed to query char_ids: %w", err)
	}
	defer idRows.Close()
	for idRows.Next() {
		var packID, name, charID string
		if err := idRows.Scan(&packID, &name, &charID); err != nil {
			return nil, fmt.Errorf("failed to scan char_ids row: %w", err)
		}
		if _, ok := charIDs[packID]; !ok {
			charIDs[packID] = make(map[string]string)
		}
		charIDs[packID][name] = charID
	}
	if err := idRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read char_ids: %w", err)
	}

	assets := make(map[string]map[string]CharAssets)
	assetRows, err := database.Query(
		`SELECT pack_id, char_id, avatar_path, expressions_dir, tags_file FROM char_assets`)
	if err != nil {
		return nil, fmt.Errorf("failed to query char_assets: %w", err)
	}
	defer assetRows.Close()
	for assetRows.Next() {
		var packID, charID string
		var a CharAssets
		if err := assetRows.Scan(&packID, &charID, &a.AvatarPath, &a.ExpressionsDir, &a.TagsFile); err != nil {
			return nil, fmt.Errorf("failed to scan char_assets row: %w", err)
		}
		if _, ok := assets[packID]; !ok {
			assets[packID] = make(map[string]CharAssets)
		}
		assets[packID][charID] = a
	}
	if err := assetRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read char_assets: %w", err)
	}

	for packID, m := range manifests {
		snap.addPack(m, charIDs[packID], assets[packID])
	}
	return snap, nil
}

// createSchemaSQL is the shared DDL behind loadSnapshotFromSQL's
// comment-documented schema. Both drivers accept this verbatim —
// sqlite3 and MySQL agree closely enough on TEXT/INTEGER affinity that
// no per-driver variant is needed here.
const createSchemaSQL = `
CREATE TABLE IF NOT EXISTS packs (
	id VARCHAR(255) PRIMARY KEY, name TEXT, version TEXT, type TEXT, requires TEXT, eula TEXT
);
CREATE TABLE IF NOT EXISTS char_ids (
	pack_id TEXT, name TEXT, char_id TEXT
);
CREATE TABLE IF NOT EXISTS char_assets (
	pack_id TEXT, char_id TEXT, avatar_path TEXT, expressions_dir TEXT, tags_file TEXT
);
`

// persistSnapshotToSQL writes snap into database, replacing any
// existing rows. cmd/packgen is the only caller — the compiler-facing
// Registry interface is read-only by design (spec.md §4.3).
func persistSnapshotToSQL(database *sql.DB, snap *Snapshot) error {
	for _, stmt := range strings.Split(createSchemaSQL, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := database.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	for _, table := range []string{"packs", "char_ids", "char_assets"} {
		if _, err := database.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("failed to clear table %s: %w", table, err)
		}
	}

	for _, packID := range snap.KnownPacks() {
		m, _ := snap.Manifest(packID)
		if _, err := database.Exec(
			`INSERT INTO packs (id, name, version, type, requires, eula) VALUES (?, ?, ?, ?, ?, ?)`,
			m.ID, m.Name, m.Version, m.Type, strings.Join(m.Requires, ","), m.EULA); err != nil {
			return fmt.Errorf("failed to insert pack %s: %w", packID, err)
		}
		for name, charID := range snap.CharIDs(packID) {
			if _, err := database.Exec(
				`INSERT INTO char_ids (pack_id, name, char_id) VALUES (?, ?, ?)`,
				packID, name, charID); err != nil {
				return fmt.Errorf("failed to insert char_id %s/%s: %w", packID, name, err)
			}
		}
		for charID, a := range snap.CharAssetsAll(packID) {
			if _, err := database.Exec(
				`INSERT INTO char_assets (pack_id, char_id, avatar_path, expressions_dir, tags_file) VALUES (?, ?, ?, ?, ?)`,
				packID, charID, a.AvatarPath, a.ExpressionsDir, a.TagsFile); err != nil {
				return fmt.Errorf("failed to insert char_assets %s/%s: %w", packID, charID, err)
			}
		}
	}
	return nil
}
