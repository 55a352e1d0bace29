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

func TestParseQueryShapes(t *testing.T) {
	opts := cfamilyPreset()
	for _, tt := range []struct {
		name  string
		query string
	}{
		{"identifier", "foo"},
		{"literal punct", `\,`},
		{"any", `\.`},
		{"end anchor", `foo\$`},
		{"plus repeat", `foo\+`},
		{"star repeat", `foo\*`},
		{"optional", `foo\?`},
		{"alternation", `foo\|bar`},
		{"paren group", `\(foo\)`},
		{"real group", "foo(bar)"},
		{"bare string literal", `"^foo$"`},
		{"escaped string regex", `\"^foo$"`},
	} {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseQuery(tt.query, opts); err != nil {
				t.Errorf("ParseQuery(%q) unexpected error: %v", tt.query, err)
			}
		})
	}
}

func TestParseQueryErrors(t *testing.T) {
	opts := cfamilyPreset()
	for _, tt := range []struct {
		name  string
		query string
	}{
		{"trailing backslash", `foo\`},
		{"repeat with no predecessor", `\+`},
		{"unmatched close paren", `foo\)`},
		{"unterminated paren group", `\(foo`},
	} {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseQuery(tt.query, opts)
			if err == nil {
				t.Fatalf("ParseQuery(%q) expected error, got nil", tt.query)
			}
			if _, ok := err.(*QueryParseError); !ok {
				t.Errorf("ParseQuery(%q) error type = %T, want *QueryParseError", tt.query, err)
			}
		})
	}
}

// TestParseQueryGroupPairIndex checks that a real group in the query
// carries the PairIndex of the block pair it was lexed under, so the
// Matcher can require the same kind of block in the target.
func TestParseQueryGroupPairIndex(t *testing.T) {
	opts := cfamilyPreset()
	pat, err := ParseQuery("foo(bar)", opts)
	if err != nil {
		t.Fatalf("ParseQuery error: %v", err)
	}
	seq, ok := pat.(Seq)
	if !ok || len(seq.Items) != 2 {
		t.Fatalf("pattern shape = %#v, want a two-item Seq", pat)
	}
	gp, ok := seq.Items[1].(GroupPattern)
	if !ok {
		t.Fatalf("second item = %#v, want GroupPattern", seq.Items[1])
	}
	if gp.PairIndex != 0 {
		t.Errorf("PairIndex = %d, want 0 (the first BlockPair, parens)", gp.PairIndex)
	}
}

// TestBareStringIsLiteralEscapedStringIsRegex covers the query table's
// distinction between a bare string token (an exact Literal match) and
// a backslash-escaped one (a StringRegex compiled from its content).
func TestBareStringIsLiteralEscapedStringIsRegex(t *testing.T) {
	opts := cfamilyPreset()

	bare, err := ParseQuery(`"SELECT.*"`, opts)
	if err != nil {
		t.Fatalf("ParseQuery bare string: %v", err)
	}
	bareSeq, ok := bare.(Seq)
	if !ok || len(bareSeq.Items) != 1 {
		t.Fatalf("bare string pattern = %#v, want a one-item Seq", bare)
	}
	lit, ok := bareSeq.Items[0].(Lit)
	if !ok || lit.Kind != KindString || lit.Text != "SELECT.*" {
		t.Fatalf("bare string pattern = %#v, want Lit{Kind: KindString, Text: %q}", bare, "SELECT.*")
	}

	escaped, err := ParseQuery(`\"SELECT.*"`, opts)
	if err != nil {
		t.Fatalf("ParseQuery escaped string: %v", err)
	}
	escapedSeq, ok := escaped.(Seq)
	if !ok || len(escapedSeq.Items) != 1 {
		t.Fatalf("escaped string pattern = %#v, want a one-item Seq", escaped)
	}
	re, ok := escapedSeq.Items[0].(StringRegex)
	if !ok {
		t.Fatalf("escaped string pattern = %#v, want StringRegex", escaped)
	}
	if !re.Re.MatchString("SELECT * FROM t") {
		t.Errorf("StringRegex %v does not match %q", re.Re, "SELECT * FROM t")
	}

	src := `"SELECT * FROM t" + x`
	root := Build(Tokenize([]byte(src), opts), len(src))

	if got := matchedTexts(src, FindAll(root, bare)); len(got) != 0 {
		t.Errorf("bare-string Lit matched %v against a different string content, want none", got)
	}
	seqPat := mustParse(t, `\"SELECT.*" +`, opts)
	got := matchedTexts(src, FindAll(root, seqPat))
	found := false
	for _, txt := range got {
		if txt == `"SELECT * FROM t" +` {
			found = true
		}
	}
	if !found {
		t.Errorf(`FindAll(\"SELECT.*" +) = %v, want a match spanning %q`, got, `"SELECT * FROM t" +`)
	}
}

// TestParseQueryIdempotent checks that compiling the same query twice
// under identical Options yields equivalent matching behavior -- the
// parser keeps no hidden state across calls.
func TestParseQueryIdempotent(t *testing.T) {
	opts := cfamilyPreset()
	src := "foo(a, b)"
	pat1 := mustParse(t, "foo(a)", opts)
	pat2 := mustParse(t, "foo(a)", opts)
	root := Build(Tokenize([]byte(src), opts), len(src))
	m1 := matchedTexts(src, FindAll(root, pat1))
	m2 := matchedTexts(src, FindAll(root, pat2))
	if len(m1) != len(m2) || (len(m1) > 0 && m1[0] != m2[0]) {
		t.Errorf("ParseQuery not idempotent: %v vs %v", m1, m2)
	}
}
