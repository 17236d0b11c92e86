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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiyihan0/momoscript/compiler"
)

func TestLoadConfDecodesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"typstMode": true,
		"joinContinuationWith": "space",
		"registry": {"kind": "file", "path": "packs"},
		"verbosity": 2
	}`), 0o644))

	conf, err := LoadConf(path)
	require.NoError(t, err)
	assert.True(t, conf.TypstMode)
	assert.Equal(t, "space", conf.JoinContinuationWith)
	assert.Equal(t, "file", conf.Registry.Kind)
	assert.Equal(t, "packs", conf.Registry.Path)
	assert.Equal(t, 2, conf.Verbosity)
}

func TestLoadConfMissingFile(t *testing.T) {
	_, err := LoadConf(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestConfModeFlagsSpaceJoin(t *testing.T) {
	conf := &Conf{JoinContinuationWith: "space"}
	mf := conf.ModeFlags()
	assert.Equal(t, compiler.JoinSpace, mf.JoinContinuationWith)
}

func TestConfModeFlagsDefaultNewlineJoin(t *testing.T) {
	conf := &Conf{}
	mf := conf.ModeFlags()
	assert.Equal(t, compiler.JoinNewline, mf.JoinContinuationWith)
}

func TestOpenRegistryUnknownKind(t *testing.T) {
	conf := &Conf{Registry: RegistryConf{Kind: "nonsense"}}
	_, err := OpenRegistry(conf)
	assert.Error(t, err)
}

func TestOpenRegistryMySQLRequiresConfigBlock(t *testing.T) {
	conf := &Conf{Registry: RegistryConf{Kind: "mysql"}}
	_, err := OpenRegistry(conf)
	assert.Error(t, err)
}
