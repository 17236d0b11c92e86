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
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiyihan0/momoscript/compiler"
	"github.com/xiyihan0/momoscript/ir"
	"github.com/xiyihan0/momoscript/pack"
)

func TestCompileSimpleNarration(t *testing.T) {
	reg := pack.NewSnapshot()
	doc, diags, err := Compile("- hello world\n", reg, compiler.ModeFlags{}, zerolog.Nop())
	require.NoError(t, err)
	assert.Empty(t, diags)
	if assert.Len(t, doc.Chat, 1) {
		line, ok := doc.Chat[0].(ir.NarrationLine)
		assert.True(t, ok)
		assert.Equal(t, "hello world", line.Content)
	}
}

func TestCompileReturnsParseDiagnosticsWithoutCompiling(t *testing.T) {
	reg := pack.NewSnapshot()
	doc, diags, err := Compile("stray continuation\n", reg, compiler.ModeFlags{}, zerolog.Nop())
	assert.Nil(t, doc)
	assert.Error(t, err)
	assert.NotEmpty(t, diags)
}

func TestParseAlone(t *testing.T) {
	nodes, diags := Parse("- hi\n")
	assert.Empty(t, diags)
	assert.Len(t, nodes, 1)
}
