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

package compiler

// Side is one of the two independent speaker-history partitions
// (spec.md §3.3/§3.5).
type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
)

// SenseiCharID is the sole hardcoded char_id (spec.md §6.3).
const SenseiCharID = "__Sensei"

// customCharEntry is one declared custom (non-pack) character.
type customCharEntry struct {
	display   string
	avatarRef string
}

// state is the compiler's private mutable bundle (spec.md §3.5). It is
// allocated fresh per Compile call and never shared: spec.md §5 rules
// out module-level singletons for exactly this reason. The field
// layout mirrors proc.TTExtractor's stateful-accumulator shape — a
// flat struct of counters and small lookup tables threaded through one
// forward pass — generalized from vertical-file extraction counters to
// MomoScript's speaker/alias/pack bookkeeping.
type state struct {
	sideHistory map[Side][]string // distinct char_ids, most-recent-first
	globalOrder []string          // distinct char_ids, first-appearance order

	aliases map[string]string // persistent: char_id -> display name

	tmpAliasPending map[string]string          // declared, not yet tied to a side: char_id -> display
	tmpAliasActive  map[Side]map[string]string // side -> char_id -> display, active until speaker changes

	shortIDMap map[string]string // short_id -> selector text (a name)

	packAliasOrder []string          // usepack aliases, declaration order
	packAliasToID  map[string]string // usepack alias -> pack_id

	customOrder []string                    // custom char_ids, declaration order
	customChars map[string]customCharEntry  // char_id -> entry

	avatarOverrides map[string]string // char_id -> asset_ref

	lastSpeakerDisplay string // most recently spoken display name, any side (for bond synthesis)
}

func newState() *state {
	return &state{
		sideHistory:     map[Side][]string{SideLeft: nil, SideRight: nil},
		aliases:         make(map[string]string),
		tmpAliasPending: make(map[string]string),
		tmpAliasActive:  map[Side]map[string]string{SideLeft: {}, SideRight: {}},
		shortIDMap:      make(map[string]string),
		packAliasToID:   make(map[string]string),
		customChars:     make(map[string]customCharEntry),
		avatarOverrides: make(map[string]string),
	}
}

// currentSpeaker returns the char_id at the front of side's history, or
// "" if that side hasn't spoken yet.
func (s *state) currentSpeaker(side Side) string {
	h := s.sideHistory[side]
	if len(h) == 0 {
		return ""
	}
	return h[0]
}

// recordSpeaker moves charID to the front of side's history (inserting
// it if new) and appends it to the global order on first appearance
// anywhere (spec.md §3.7 invariant 4: no duplicates, updated in-place).
func (s *state) recordSpeaker(side Side, charID string) {
	hist := s.sideHistory[side]
	out := make([]string, 0, len(hist)+1)
	out = append(out, charID)
	for _, c := range hist {
		if c != charID {
			out = append(out, c)
		}
	}
	s.sideHistory[side] = out

	for _, c := range s.globalOrder {
		if c == charID {
			return
		}
	}
	s.globalOrder = append(s.globalOrder, charID)
}

// resolveNameOverride implements the tmp-alias activation/expiry and
// persistent-alias fallback of spec.md §4.2's Statement(LEFT|RIGHT)
// handler and §3.7 invariant 5. Call this BEFORE recordSpeaker, since
// it needs the side's pre-statement front-of-history value.
func (s *state) resolveNameOverride(side Side, charID string) *string {
	prev := s.currentSpeaker(side)
	if prev != "" && prev != charID {
		delete(s.tmpAliasActive[side], prev)
	}
	if display, ok := s.tmpAliasPending[charID]; ok {
		s.tmpAliasActive[side][charID] = display
		delete(s.tmpAliasPending, charID)
	}
	if display, ok := s.tmpAliasActive[side][charID]; ok {
		return &display
	}
	if display, ok := s.aliases[charID]; ok {
		return &display
	}
	return nil
}

// setCustomChar declares or updates a custom character.
func (s *state) setCustomChar(charID, display, avatarRef string) {
	if _, exists := s.customChars[charID]; !exists {
		s.customOrder = append(s.customOrder, charID)
	}
	s.customChars[charID] = customCharEntry{display: display, avatarRef: avatarRef}
}

func (s *state) removeCustomChar(charID string) {
	if _, exists := s.customChars[charID]; !exists {
		return
	}
	delete(s.customChars, charID)
	for i, c := range s.customOrder {
		if c == charID {
			s.customOrder = append(s.customOrder[:i], s.customOrder[i+1:]...)
			break
		}
	}
}
