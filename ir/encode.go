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

package ir

import (
	"github.com/bytedance/sonic"
)

// Encode serializes a Document to its canonical JSON form.
func Encode(doc *Document) ([]byte, error) {
	return sonic.Marshal(doc)
}

// EncodeIndent serializes a Document with indentation, for CLI/editor
// consumption.
func EncodeIndent(doc *Document, prefix, indent string) ([]byte, error) {
	return sonic.MarshalIndent(doc, prefix, indent)
}

// marshalJSON is the internal helper small value types (e.g. CustomChar)
// use to encode themselves positionally.
func marshalJSON(v any) ([]byte, error) {
	return sonic.Marshal(v)
}
