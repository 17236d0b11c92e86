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

package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindStringKnownValues(t *testing.T) {
	assert.Equal(t, "MetaKV", KindMetaKV.String())
	assert.Equal(t, "UsePack", KindUsePack.String())
	assert.Equal(t, "Bond", KindBond.String())
	assert.Equal(t, "Statement", KindStatement.String())
}

func TestKindStringUnknownValue(t *testing.T) {
	assert.Equal(t, "Unknown", Kind(9999).String())
}
