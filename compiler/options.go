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

// JoinStyle selects how absorbed continuation lines are glued back
// together inside a single logical statement (spec.md §6.1's
// join_continuation_with mode flag). The lexer always absorbs with
// "\n" (see lexer.Parse); "space" join is applied here as a
// post-process over already-joined content, which keeps the lexer
// itself free of a mode flag it otherwise has no use for.
type JoinStyle int

const (
	JoinNewline JoinStyle = iota
	JoinSpace
)

// ModeFlags mirrors spec.md §6.1's mode_flags input.
type ModeFlags struct {
	TypstMode            bool
	JoinContinuationWith JoinStyle
}
