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

import "testing"

func mustParse(t *testing.T, query string, opts Options) Pattern {
	t.Helper()
	pat, err := ParseQuery(query, opts)
	if err != nil {
		t.Fatalf("ParseQuery(%q) error: %v", query, err)
	}
	return pat
}

func matchedTexts(src string, matches []Match) []string {
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = src[m.Span.Start:m.Span.End]
	}
	return out
}

// TestScenarioPrefixCall covers `foo(a)` matching a call with MORE
// arguments than the pattern names -- a Group's children are matched
// as a prefix by default, not exactly.
func TestScenarioPrefixCall(t *testing.T) {
	opts := cfamilyPreset()
	src := "foo(a, b)"
	pat := mustParse(t, "foo(a)", opts)
	root := Build(Tokenize([]byte(src), opts), len(src))
	got := matchedTexts(src, FindAll(root, pat))
	if len(got) != 1 || got[0] != src {
		t.Fatalf("FindAll = %v, want one match spanning %q", got, src)
	}
}

// TestScenarioEndAnchorExact covers `foo(a\$)` requiring the call to
// have EXACTLY one argument.
func TestScenarioEndAnchorExact(t *testing.T) {
	opts := cfamilyPreset()
	pat := mustParse(t, `foo(a\$)`, opts)

	exact := "foo(a)"
	root := Build(Tokenize([]byte(exact), opts), len(exact))
	if got := matchedTexts(exact, FindAll(root, pat)); len(got) != 1 {
		t.Errorf("expected exact-arity call to match, got %v", got)
	}

	extra := "foo(a, b)"
	root = Build(Tokenize([]byte(extra), opts), len(extra))
	if got := matchedTexts(extra, FindAll(root, pat)); len(got) != 0 {
		t.Errorf("expected extra-argument call NOT to match \\$, got %v", got)
	}
}

// TestScenarioEmptyCallPrefix covers `foo()` matching any call to foo,
// including ones with arguments, since an empty pattern is a (trivial)
// prefix of any child list.
func TestScenarioEmptyCallPrefix(t *testing.T) {
	opts := cfamilyPreset()
	pat := mustParse(t, "foo()", opts)
	src := "foo(a)"
	root := Build(Tokenize([]byte(src), opts), len(src))
	got := matchedTexts(src, FindAll(root, pat))
	if len(got) != 1 || got[0] != src {
		t.Fatalf("FindAll = %v, want one match spanning %q", got, src)
	}
}

// TestAnyUniversal covers `\.` matching exactly once starting at every
// child of every group (FindAll walks nested groups too), trivia
// included: Any always succeeds by skipping ahead to the next real
// token, so a trivia start position reports the same span as the real
// position right after it. Deduplicating those is left to the caller
// (the printer, in the CLI), not the Matcher.
func TestAnyUniversal(t *testing.T) {
	opts := cfamilyPreset()
	pat := mustParse(t, `\.`, opts)
	src := "x (y) 1 \"s\""
	root := Build(Tokenize([]byte(src), opts), len(src))
	got := FindAll(root, pat)
	children := 0
	root.Walk(func(g *Group) { children += len(g.Children) })
	if len(got) != children {
		t.Fatalf("FindAll(\\.) = %d matches, want %d (one per child): %v", len(got), children, matchedTexts(src, got))
	}
	distinct := map[string]bool{}
	for _, txt := range matchedTexts(src, got) {
		distinct[txt] = true
	}
	want := map[string]bool{"x": true, "(y)": true, "y": true, "1": true, `"s"`: true}
	if len(distinct) != len(want) {
		t.Fatalf("distinct matched texts = %v, want %v", distinct, want)
	}
}

// TestTriviaTransparency covers whitespace/comments between query
// atoms being skipped by the matcher even though they are ordinary
// sibling leaves in the tree.
func TestTriviaTransparency(t *testing.T) {
	opts := cfamilyPreset()
	pat := mustParse(t, "foo bar", opts)
	src := "foo /* hi */ bar"
	root := Build(Tokenize([]byte(src), opts), len(src))
	got := matchedTexts(src, FindAll(root, pat))
	if len(got) != 1 {
		t.Fatalf("FindAll = %v, want a single match spanning the whole thing", got)
	}
}

// TestRepeatGreedyBacktrack covers `\.+ baz` backtracking off of a
// greedy `+` to let a following literal still match. Since matches at
// different start offsets can overlap, `\.+` also matches starting at
// "b" and at "c" (each followed by "baz"), not only at the leftmost
// "a": the greedy-backtrack behavior applies per start position, not
// once for the whole child list.
func TestRepeatGreedyBacktrack(t *testing.T) {
	opts := cfamilyPreset()
	pat := mustParse(t, `\.\+ baz`, opts)
	src := "a b c baz"
	root := Build(Tokenize([]byte(src), opts), len(src))
	got := matchedTexts(src, FindAll(root, pat))
	if len(got) == 0 || got[0] != src {
		t.Fatalf("FindAll = %v, want the first match to span the whole input %q", got, src)
	}
	for _, txt := range got {
		if txt != src && txt != "b c baz" && txt != "c baz" {
			t.Errorf("unexpected match %q", txt)
		}
	}
}

// TestAlternation covers `\|` picking whichever branch matches.
func TestAlternation(t *testing.T) {
	opts := cfamilyPreset()
	pat := mustParse(t, `foo\|bar`, opts)
	for _, src := range []string{"foo", "bar"} {
		root := Build(Tokenize([]byte(src), opts), len(src))
		got := matchedTexts(src, FindAll(root, pat))
		if len(got) != 1 || got[0] != src {
			t.Errorf("FindAll(%q) = %v, want a single match", src, got)
		}
	}
	src := "baz"
	root := Build(Tokenize([]byte(src), opts), len(src))
	if got := FindAll(root, pat); len(got) != 0 {
		t.Errorf("expected no match against %q, got %v", src, got)
	}
}

// TestGroupPatternPairIndex covers a GroupPattern only matching the
// block kind it names: parens never match brackets.
func TestGroupPatternPairIndex(t *testing.T) {
	opts := cfamilyPreset()
	pat := mustParse(t, "(x)", opts)
	src := "[x]"
	root := Build(Tokenize([]byte(src), opts), len(src))
	if got := FindAll(root, pat); len(got) != 0 {
		t.Errorf("expected (x) not to match [x], got %v", matchedTexts(src, got))
	}
}
