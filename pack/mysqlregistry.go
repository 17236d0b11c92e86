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

	_ "github.com/go-sql-driver/mysql" // load the driver
)

// MySQLConf holds the connection fields a read-only pack registry
// connection needs.
type MySQLConf struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

func (c MySQLConf) dsn() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true", c.User, c.Password, c.Host, c.Port, c.DBName)
}

// LoadMySQLRegistry opens a shared pack registry stored in a MySQL
// database (one packgen run can populate it for many compiler
// instances to read) and loads it fully into an immutable Snapshot.
func LoadMySQLRegistry(conf MySQLConf) (*Snapshot, error) {
	database, err := sql.Open("mysql", conf.dsn())
	if err != nil {
		return nil, fmt.Errorf("failed to open pack registry db: %w", err)
	}
	defer database.Close()
	if err := database.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to pack registry db %s:%d/%s: %w", conf.Host, conf.Port, conf.DBName, err)
	}
	log.Debug().Str("host", conf.Host).Str("db", conf.DBName).Msg("opened pack registry database")
	return loadSnapshotFromSQL(database)
}

// WriteMySQLRegistry persists snap into the MySQL database named by
// conf, the MySQL counterpart to WriteSQLiteRegistry.
func WriteMySQLRegistry(conf MySQLConf, snap *Snapshot) error {
	database, err := sql.Open("mysql", conf.dsn())
	if err != nil {
		return fmt.Errorf("failed to open pack registry db: %w", err)
	}
	defer database.Close()
	if err := database.Ping(); err != nil {
		return fmt.Errorf("failed to connect to pack registry db %s:%d/%s: %w", conf.Host, conf.Port, conf.DBName, err)
	}
	return persistSnapshotToSQL(database, snap)
}
