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

	"github.com/rs/zerolog/log"

	_ "github.com/mattn/go-sqlite3" // load the driver
)

// LoadSQLiteRegistry opens a cached pack registry stored in a sqlite3
// database (built by cmd/packgen) and loads it fully into an immutable
// Snapshot, the same open-once/read-fully shape db/sqlite's Writer uses
// for its liveattrs store.
func LoadSQLiteRegistry(dbPath string) (*Snapshot, error) {
	database, err := openSqliteDatabase(dbPath)
	if err != nil {
		return nil, err
	}
	defer database.Close()
	return loadSnapshotFromSQL(database)
}

// WriteSQLiteRegistry persists snap into a sqlite3 database at dbPath,
// creating it if necessary. This is cmd/packgen's write path; the
// Registry interface itself never exposes one.
func WriteSQLiteRegistry(dbPath string, snap *Snapshot) error {
	database, err := openSqliteDatabase(dbPath)
	if err != nil {
		return err
	}
	defer database.Close()
	return persistSnapshotToSQL(database, snap)
}

func openSqliteDatabase(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open pack registry db: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to pack registry db %s: %w", dbPath, err)
	}
	log.Debug().Str("path", dbPath).Msg("opened pack registry database")
	return db, nil
}
