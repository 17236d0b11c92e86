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

package momoscript

import (
	"fmt"
	"os"

	"github.com/bytedance/sonic"

	"github.com/xiyihan0/momoscript/compiler"
	"github.com/xiyihan0/momoscript/pack"
)

// RegistryConf selects and configures one of the three pack.Registry
// adapters (spec.md §4.3): a directory of per-pack JSON tables, a
// sqlite-cached snapshot, or a MySQL-backed one.
type RegistryConf struct {
	Kind  string          `json:"kind"` // "file" | "sqlite" | "mysql"
	Path  string          `json:"path,omitempty"`
	MySQL *pack.MySQLConf `json:"mysql,omitempty"`
}

// Conf is the on-disk configuration shape for cmd/momoc: a flat JSON
// file decoded straight into a struct.
type Conf struct {
	TypstMode            bool         `json:"typstMode"`
	JoinContinuationWith string       `json:"joinContinuationWith"` // "newline" | "space"
	Registry             RegistryConf `json:"registry"`
	Verbosity            int          `json:"verbosity"`
}

// LoadConf reads and decodes a Conf from confPath.
func LoadConf(confPath string) (*Conf, error) {
	rawData, err := os.ReadFile(confPath)
	if err != nil {
		return nil, err
	}
	var conf Conf
	if err := sonic.Unmarshal(rawData, &conf); err != nil {
		return nil, err
	}
	return &conf, nil
}

// ModeFlags translates the JSON-facing Conf into the compiler's
// ModeFlags.
func (c *Conf) ModeFlags() compiler.ModeFlags {
	js := compiler.JoinNewline
	if c.JoinContinuationWith == "space" {
		js = compiler.JoinSpace
	}
	return compiler.ModeFlags{TypstMode: c.TypstMode, JoinContinuationWith: js}
}

// OpenRegistry constructs the pack.Registry named by c.Registry.Kind.
func OpenRegistry(c *Conf) (pack.Registry, error) {
	switch c.Registry.Kind {
	case "sqlite":
		return pack.LoadSQLiteRegistry(c.Registry.Path)
	case "mysql":
		if c.Registry.MySQL == nil {
			return nil, fmt.Errorf("registry kind \"mysql\" requires a \"mysql\" config block")
		}
		return pack.LoadMySQLRegistry(*c.Registry.MySQL)
	case "file", "":
		return pack.LoadFileRegistry(c.Registry.Path)
	default:
		return nil, fmt.Errorf("unknown registry kind %q", c.Registry.Kind)
	}
}
