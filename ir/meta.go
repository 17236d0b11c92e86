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
	"bytes"
	"encoding/json"
)

// Meta is an insertion-order-preserving string map (spec.md §3.5:
// "mapping string→string, insertion-order preserved"). encoding/json
// (and sonic, which mirrors its Marshaler contract) sorts plain Go map
// keys alphabetically, which would violate that guarantee, so Meta
// keeps its own key order and marshals itself directly.
type Meta struct {
	order []string
	vals  map[string]string
}

// NewMeta returns an empty, ready-to-use Meta.
func NewMeta() *Meta {
	return &Meta{vals: make(map[string]string)}
}

// Set assigns key=value. Last-write-wins per spec.md §4.2 ("No
// collision semantics beyond last-write-wins"); the key's position in
// iteration order is its *first* assignment.
func (m *Meta) Set(key, value string) {
	if _, ok := m.vals[key]; !ok {
		m.order = append(m.order, key)
	}
	m.vals[key] = value
}

// Get returns the value for key and whether it was present.
func (m *Meta) Get(key string) (string, bool) {
	v, ok := m.vals[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (m *Meta) Keys() []string {
	return append([]string(nil), m.order...)
}

func (m *Meta) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(m.vals[k])
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
