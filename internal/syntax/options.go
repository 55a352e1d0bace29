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

import (
	"fmt"
	"regexp"
)

// Pair is a configured open/close delimiter, such as a block or a block
// comment marker.
type Pair struct {
	Open, Close string
}

// Options is the immutable configuration a Lexer runs under. The zero
// value is the "plain" preset: no strings, no comments, no blocks, and
// identifier regexes that never match (no input lexes as Identifier;
// digit runs still lex as Number and whitespace as Whitespace).
//
// Options is built once by merging a named preset with CLI overrides
// (see Preset and the With* methods below) and is never mutated again;
// every Lexer, TreeBuilder and QueryParser invocation for a given file
// shares one Options value.
type Options struct {
	IdentStart *regexp.Regexp
	IdentCont  *regexp.Regexp

	// Strings holds the set of characters that open (and, by the
	// matching rule, close) a string literal.
	Strings map[byte]bool

	// LineComments holds prefixes that start a to-end-of-line comment.
	// Longer prefixes win ties at a given position (see Lexer).
	LineComments []string

	// BlockComments and Blocks are matched delimiter pairs. Blocks form
	// the tree structure; BlockComments are lexed but never form a
	// Group.
	BlockComments []Pair
	Blocks        []Pair
}

// anchored compiles pattern as a regexp that must match an entire
// string (used to test single runes against ident_start/ident_cont, and
// full string contents against a StringRegex pattern).
func anchored(pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(`^(?:` + pattern + `)$`)
	if err != nil {
		return nil, fmt.Errorf("invalid regex %q: %w", pattern, err)
	}
	return re, nil
}

// mustAnchored is like anchored but panics on error; used for the
// built-in presets, whose patterns are known-good at compile time.
func mustAnchored(pattern string) *regexp.Regexp {
	re, err := anchored(pattern)
	if err != nil {
		panic(err)
	}
	return re
}

// Clone returns a deep-enough copy of o safe to mutate via the With*
// methods without aliasing the receiver's slices/maps.
func (o Options) Clone() Options {
	c := o
	c.Strings = make(map[byte]bool, len(o.Strings))
	for k, v := range o.Strings {
		c.Strings[k] = v
	}
	c.LineComments = append([]string(nil), o.LineComments...)
	c.BlockComments = append([]Pair(nil), o.BlockComments...)
	c.Blocks = append([]Pair(nil), o.Blocks...)
	return c
}

// WithIdent returns a copy of o with the identifier regexes replaced.
func (o Options) WithIdent(start, cont string) (Options, error) {
	s, err := anchored(start)
	if err != nil {
		return o, fmt.Errorf("ident start: %w", err)
	}
	c, err := anchored(cont)
	if err != nil {
		return o, fmt.Errorf("ident cont: %w", err)
	}
	n := o.Clone()
	n.IdentStart, n.IdentCont = s, c
	return n, nil
}

// WithAddedStrings returns a copy of o with the given characters added
// to the string-delimiter set.
func (o Options) WithAddedStrings(chars string) Options {
	n := o.Clone()
	for i := 0; i < len(chars); i++ {
		n.Strings[chars[i]] = true
	}
	return n
}

// WithRemovedStrings returns a copy of o with the given characters
// removed from the string-delimiter set.
func (o Options) WithRemovedStrings(chars string) Options {
	n := o.Clone()
	for i := 0; i < len(chars); i++ {
		delete(n.Strings, chars[i])
	}
	return n
}

// WithAddedLineComments returns a copy of o with prefixes appended to
// the line-comment set (duplicates are not re-added).
func (o Options) WithAddedLineComments(prefixes ...string) Options {
	n := o.Clone()
	for _, p := range prefixes {
		if !containsString(n.LineComments, p) {
			n.LineComments = append(n.LineComments, p)
		}
	}
	return n
}

// WithRemovedLineComments returns a copy of o with the given prefixes
// removed from the line-comment set.
func (o Options) WithRemovedLineComments(prefixes ...string) Options {
	n := o.Clone()
	n.LineComments = removeStrings(n.LineComments, prefixes)
	return n
}

// WithAddedBlockComment returns a copy of o with an (open, close) block
// comment pair appended.
func (o Options) WithAddedBlockComment(open, close string) Options {
	n := o.Clone()
	n.BlockComments = append(n.BlockComments, Pair{open, close})
	return n
}

// WithRemovedBlockComment returns a copy of o with any block-comment
// pair matching open and close removed.
func (o Options) WithRemovedBlockComment(open, close string) Options {
	n := o.Clone()
	n.BlockComments = removePair(n.BlockComments, open, close)
	return n
}

// WithAddedBlock returns a copy of o with an (open, close) block
// delimiter pair appended.
func (o Options) WithAddedBlock(open, close string) Options {
	n := o.Clone()
	n.Blocks = append(n.Blocks, Pair{open, close})
	return n
}

// WithRemovedBlockByOpen removes any block pair whose Open equals open.
func (o Options) WithRemovedBlockByOpen(open string) Options {
	n := o.Clone()
	var kept []Pair
	for _, p := range n.Blocks {
		if p.Open != open {
			kept = append(kept, p)
		}
	}
	n.Blocks = kept
	return n
}

// WithRemovedBlockByClose removes any block pair whose Close equals close.
func (o Options) WithRemovedBlockByClose(close string) Options {
	n := o.Clone()
	var kept []Pair
	for _, p := range n.Blocks {
		if p.Close != close {
			kept = append(kept, p)
		}
	}
	n.Blocks = kept
	return n
}

func containsString(ss []string, s string) bool {
	for _, x := range ss {
		if x == s {
			return true
		}
	}
	return false
}

func removeStrings(ss []string, remove []string) []string {
	var kept []string
	for _, x := range ss {
		if !containsString(remove, x) {
			kept = append(kept, x)
		}
	}
	return kept
}

func removePair(ps []Pair, open, close string) []Pair {
	var kept []Pair
	for _, p := range ps {
		if p.Open != open || p.Close != close {
			kept = append(kept, p)
		}
	}
	return kept
}
