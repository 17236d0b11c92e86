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

package idgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCustomCharIDIsDeterministic(t *testing.T) {
	a := CustomCharID("星野")
	b := CustomCharID("星野")
	assert.Equal(t, a, b)
}

func TestCustomCharIDDiffersByName(t *testing.T) {
	assert.NotEqual(t, CustomCharID("星野"), CustomCharID("小鸟游星野"))
}

func TestCustomCharIDHasExpectedPrefixAndLength(t *testing.T) {
	id := CustomCharID("sensei")
	assert.True(t, len(id) == len("custom-")+16)
	assert.Equal(t, "custom-", id[:7])
}
