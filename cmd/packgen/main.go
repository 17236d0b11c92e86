// Copyright 2026 Tomas Machalek <tomas.machalek@gmail.com>
// Copyright 2026 Charles University, Faculty of Arts,
//                Department of Linguistics
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

// Command packgen reads a directory of JSON pack tables (spec.md §4.3:
// manifest.json, char_id.json, asset_mapping.json per pack) and writes
// a cached sqlite or MySQL snapshot a running compiler can load much
// faster than re-parsing JSON on every start.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/xiyihan0/momoscript/pack"
)

func runToSQLite(args []string) {
	cmd := flag.NewFlagSet("sqlite", flag.ExitOnError)
	cmd.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s sqlite <pack-dir> <db-path>\n", os.Args[0])
		cmd.PrintDefaults()
	}
	cmd.Parse(args)
	if cmd.NArg() < 2 {
		cmd.Usage()
		os.Exit(1)
	}
	snap, err := pack.LoadFileRegistry(cmd.Arg(0))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load pack directory")
	}
	if err := pack.WriteSQLiteRegistry(cmd.Arg(1), snap); err != nil {
		log.Fatal().Err(err).Msg("failed to write sqlite registry")
	}
	log.Info().Strs("packs", snap.KnownPacks()).Msg("wrote sqlite pack registry")
}

func runToMySQL(args []string) {
	cmd := flag.NewFlagSet("mysql", flag.ExitOnError)
	host := cmd.String("host", "127.0.0.1", "MySQL host")
	port := cmd.Int("port", 3306, "MySQL port")
	user := cmd.String("user", "", "MySQL user")
	password := cmd.String("password", "", "MySQL password")
	dbName := cmd.String("db", "", "MySQL database name")
	cmd.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s mysql [options] <pack-dir>\n", os.Args[0])
		cmd.PrintDefaults()
	}
	cmd.Parse(args)
	if cmd.NArg() < 1 {
		cmd.Usage()
		os.Exit(1)
	}
	snap, err := pack.LoadFileRegistry(cmd.Arg(0))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load pack directory")
	}
	conf := pack.MySQLConf{Host: *host, Port: *port, User: *user, Password: *password, DBName: *dbName}
	if err := pack.WriteMySQLRegistry(conf, snap); err != nil {
		log.Fatal().Err(err).Msg("failed to write MySQL registry")
	}
	log.Info().Strs("packs", snap.KnownPacks()).Msg("wrote MySQL pack registry")
}

func main() {
	flag.Usage = func() {
		fmt.Println("\npackgen - build a cached pack registry from JSON packs")
		fmt.Println("\nUsage:")
		fmt.Println("packgen sqlite <pack-dir> <db-path>")
		fmt.Println("packgen mysql [options] <pack-dir>")
		fmt.Println("\nOptions:")
		flag.PrintDefaults()
	}
	if len(os.Args) < 2 {
		flag.Usage()
		os.Exit(1)
	}
	switch os.Args[1] {
	case "sqlite":
		runToSQLite(os.Args[2:])
	case "mysql":
		runToMySQL(os.Args[2:])
	default:
		flag.Usage()
		os.Exit(1)
	}
}
