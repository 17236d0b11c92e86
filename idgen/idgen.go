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

// Package idgen generates the deterministic "custom-<hash>" character
// ids of spec.md §6.3: a fixed 64-bit non-cryptographic hash of the
// display name, hex-encoded.
package idgen

import (
	"fmt"
	"hash/fnv"
)

// CustomCharID returns the stable "custom-<hex>" id for a display name.
// The same display name always yields the same id (spec.md §6.3), which
// is why the algorithm is fixed (FNV-1a/64) rather than configurable.
func CustomCharID(displayName string) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(displayName))
	return fmt.Sprintf("custom-%016x", h.Sum64())
}
