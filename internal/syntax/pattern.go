// Copyright 2024 The syns Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package syntax

import "regexp"

// Pattern is the compiled query AST. It is a small closed set of tagged
// variants rather than a class hierarchy; the Matcher switches on the
// concrete type.
type Pattern interface {
	pattern()
}

// Any matches exactly one leaf or group, of any kind (query `\.`).
type Any struct{}

// Ident matches an Identifier leaf with exactly this text.
type Ident struct{ Name string }

// Punct matches a Punct leaf with exactly this character.
type Punct struct{ Ch byte }

// Lit matches any other single token exactly by kind and text --
// chiefly Number literals, which have no dedicated pattern type.
type Lit struct {
	Kind Kind
	Text string
}

// StringRegex matches a String leaf whose content fully matches Re
// (Re is always anchored, see anchored).
type StringRegex struct{ Re *regexp.Regexp }

// GroupPattern matches a Group child of the same PairIndex, whose
// children match Inner as a prefix (see Matcher for the exact
// semantics of group-inner matching).
type GroupPattern struct {
	PairIndex int
	Inner     Pattern
}

// Paren is a `\( ... \)` query grouping: pure precedence grouping, not
// a requirement that the matched tree contain an actual block. It
// matches however many siblings Inner consumes at the current cursor.
type Paren struct{ Inner Pattern }

// Seq is concatenation: each Item matches in order, with trivia
// (whitespace/comments) transparently skipped between them.
type Seq struct{ Items []Pattern }

// Repeat wraps the single atomic pattern immediately preceding it in a
// Seq (`\+` is {1,-1}, `\*` is {0,-1}, `\?` is {0,1}; Max == -1 means
// unbounded).
type Repeat struct {
	Inner   Pattern
	Min     int
	Max     int // -1 for unbounded
}

// Alt is alternation at Seq granularity (`\|`); the first branch whose
// full match (and whatever follows it) succeeds wins.
type Alt struct{ Branches []Seq }

// End succeeds only when the cursor is at the end of the enclosing
// sibling list (query `\$`).
type End struct{}

func (Any) pattern()          {}
func (Ident) pattern()        {}
func (Punct) pattern()        {}
func (Lit) pattern()          {}
func (StringRegex) pattern()  {}
func (GroupPattern) pattern() {}
func (Paren) pattern()        {}
func (Seq) pattern()          {}
func (Repeat) pattern()       {}
func (Alt) pattern()          {}
func (End) pattern()          {}
