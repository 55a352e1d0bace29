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

import "fmt"

// QueryParseError reports a malformed query, with the byte offset into the
// query text (not the searched source) where the problem was found.
type QueryParseError struct {
	Offset int
	Msg    string
}

func (e *QueryParseError) Error() string {
	return fmt.Sprintf("query:%d: %s", e.Offset, e.Msg)
}

// ParseQuery compiles a query string into a Pattern. The query is
// itself lexed and tree-built under opts -- the same Options used
// against the file being searched -- so a literal block in the query
// (say, a parenthesized argument list in a C-family preset) denotes a
// GroupPattern, and backslash introduces the small set of structural
// escapes listed below. This lets a query share the target language's
// notion of identifier, string and block syntax without a second,
// separate query grammar.
//
// Escapes recognized after a backslash Punct token:
//
//	\.     Any (one leaf or group, of any kind)
//	\+     one-or-more repetition of the preceding atom
//	\*     zero-or-more repetition of the preceding atom
//	\?     zero-or-one repetition of the preceding atom
//	\|     alternation between the sequences to either side
//	\$     End: only at the end of the enclosing child list
//	\(     start a precedence-only group (no block required in the source)
//	\)     end a \( group
//	\"…"   StringRegex: the escaped string's content, compiled as an
//	       anchored regex, matched against the full content of a
//	       String leaf
//	\c     (any other character c) matches a literal Punct c
//
// A bare string literal in the query (e.g. "foo") compiles to a
// Literal: an exact match against a String leaf with identical
// content. Only the escaped form, \"foo.*", is a regex.
func ParseQuery(query string, opts Options) (Pattern, error) {
	toks := Tokenize([]byte(query), opts)
	root := Build(toks, len(query))
	p := &queryParser{src: query, toks: nonTrivia(root.Children)}
	pat, i, err := p.parseAlt(0, false)
	if err != nil {
		return nil, err
	}
	if i != len(p.toks) {
		return nil, &QueryParseError{Offset: p.offsetAt(i), Msg: "unexpected trailing input"}
	}
	return pat, nil
}

type queryParser struct {
	src  string
	toks []Node
}

func (p *queryParser) offsetAt(i int) int {
	if i >= len(p.toks) {
		return len(p.src)
	}
	return p.toks[i].FullSpan().Start
}

// isBackslash reports whether node i is a lone `\` Punct leaf.
func (p *queryParser) isBackslash(i int) bool {
	if i >= len(p.toks) {
		return false
	}
	l, ok := p.toks[i].(Leaf)
	return ok && l.Tok.Kind == KindPunct && l.Tok.Text == `\`
}

// escapeChar returns the character following a backslash at i, and the
// index just past the two-token escape.
func (p *queryParser) escapeChar(i int) (byte, int, error) {
	j := i + 1
	if j >= len(p.toks) {
		return 0, j, &QueryParseError{Offset: p.offsetAt(i), Msg: `trailing backslash with nothing to escape`}
	}
	l, ok := p.toks[j].(Leaf)
	if !ok || len(l.Tok.Text) == 0 {
		return 0, j, &QueryParseError{Offset: p.offsetAt(i), Msg: `backslash must escape a single character`}
	}
	return l.Tok.Text[0], j + 1, nil
}

// escapedString reports whether the token escaped at i (the token
// immediately after a backslash) is a String leaf, returning its
// content and the index past the two-token escape. This is the \"…"
// form, which compiles the escaped string's content as a regex; it is
// checked ahead of escapeChar, which only understands single-character
// escapes and would otherwise truncate the string to its first byte.
func (p *queryParser) escapedString(i int) (string, int, bool) {
	j := i + 1
	if j >= len(p.toks) {
		return "", j, false
	}
	l, ok := p.toks[j].(Leaf)
	if !ok || l.Tok.Kind != KindString {
		return "", j, false
	}
	return l.Tok.Text, j + 1, true
}

// parseAlt parses a `\|`-separated list of sequences, stopping at `\)`
// or end of input. inParen indicates we are inside a `\(` group,
// so an unescaped end of input without a matching `\)` is an error.
func (p *queryParser) parseAlt(i int, inParen bool) (Pattern, int, error) {
	var branches []Seq
	for {
		seq, next, err := p.parseSeq(i, inParen)
		if err != nil {
			return nil, next, err
		}
		branches = append(branches, seq)
		i = next
		if p.isBackslash(i) {
			if c, after, _ := p.peekEscape(i); c == '|' {
				i = after
				continue
			}
		}
		break
	}
	if inParen {
		if !p.isBackslash(i) {
			return nil, i, &QueryParseError{Offset: p.offsetAt(i), Msg: `unterminated \( group, expected \)`}
		}
		c, after, err := p.escapeChar(i)
		if err != nil {
			return nil, i, err
		}
		if c != ')' {
			return nil, i, &QueryParseError{Offset: p.offsetAt(i), Msg: `expected \) to close \(`}
		}
		i = after
	}
	if len(branches) == 1 {
		return branches[0], i, nil
	}
	return Alt{Branches: branches}, i, nil
}

// peekEscape looks at a backslash escape at i without committing to
// consuming it as a close/alt marker; used by parseAlt's lookahead.
func (p *queryParser) peekEscape(i int) (byte, int, error) {
	return p.escapeChar(i)
}

// parseSeq parses a flat concatenation of atoms (with postfix
// repetition folded in) up to the next `\|`, `\)`, or EOF. A `\$`
// becomes an End item and parsing continues past it.
func (p *queryParser) parseSeq(i int, inParen bool) (Seq, int, error) {
	var items []Pattern
	for i < len(p.toks) {
		if p.isBackslash(i) {
			// When "(" is a configured block, `\( … \)` lexes as a
			// backslash followed by a closed Group whose last child is
			// the backslash of `\)`.
			if i+1 < len(p.toks) {
				if g, ok := p.toks[i+1].(*Group); ok && g.Closed() && p.src[g.OpenSpan.Start:g.OpenSpan.End] == "(" {
					sub := &queryParser{src: p.src, toks: nonTrivia(g.Children)}
					if n := len(sub.toks); n > 0 && sub.isBackslash(n-1) {
						inner, _, err := (&queryParser{src: p.src, toks: sub.toks[:n-1]}).parseAlt(0, false)
						if err != nil {
							return Seq{}, i, err
						}
						items = append(items, Paren{Inner: inner})
						i += 2
						continue
					}
				}
			}
			if s, after, ok := p.escapedString(i); ok {
				re, err := anchored(s)
				if err != nil {
					return Seq{}, i, &QueryParseError{Offset: p.offsetAt(i), Msg: err.Error()}
				}
				items = append(items, StringRegex{Re: re})
				i = after
				continue
			}
			c, after, err := p.escapeChar(i)
			if err != nil {
				return Seq{}, i, err
			}
			switch c {
			case '|', ')':
				return Seq{Items: items}, i, nil
			case '$':
				items = append(items, End{})
				i = after
				continue
			case '.':
				items = append(items, Any{})
				i = after
				continue
			case '(':
				inner, next, err := p.parseAlt(after, true)
				if err != nil {
					return Seq{}, next, err
				}
				items = append(items, Paren{Inner: inner})
				i = next
				continue
			case '+', '*', '?':
				if len(items) == 0 {
					return Seq{}, i, &QueryParseError{Offset: p.offsetAt(i), Msg: fmt.Sprintf(`\%c with no preceding atom to repeat`, c)}
				}
				min, max := repeatBounds(c)
				items[len(items)-1] = Repeat{Inner: items[len(items)-1], Min: min, Max: max}
				i = after
				continue
			default:
				items = append(items, Punct{Ch: c})
				i = after
				continue
			}
		}

		atom, next, err := p.parseAtom(i)
		if err != nil {
			return Seq{}, next, err
		}
		items = append(items, atom)
		i = next
	}
	return Seq{Items: items}, i, nil
}

func repeatBounds(c byte) (min, max int) {
	switch c {
	case '+':
		return 1, -1
	case '*':
		return 0, -1
	case '?':
		return 0, 1
	}
	return 0, -1
}

// parseAtom converts a single non-escape query token into a Pattern:
// an Identifier, a literal (Number, String, or other), or a real Group
// (recursively converted to a GroupPattern). A bare String is always a
// Literal -- see the \"…" escape for the regex form.
func (p *queryParser) parseAtom(i int) (Pattern, int, error) {
	switch n := p.toks[i].(type) {
	case Leaf:
		t := n.Tok
		switch t.Kind {
		case KindIdentifier:
			return Ident{Name: t.Text}, i + 1, nil
		case KindString:
			// A bare string in a query is an exact-content match, not a
			// regex: only the \"…" escape compiles to StringRegex.
			return Lit{Kind: KindString, Text: t.Text}, i + 1, nil
		case KindPunct:
			if len(t.Text) == 0 {
				return nil, i, &QueryParseError{Offset: t.Span.Start, Msg: "empty punctuation token"}
			}
			return Punct{Ch: t.Text[0]}, i + 1, nil
		case KindWhitespace, KindLineComment, KindBlockComment:
			// Trivia never reaches here: Build only emits these as
			// direct children, and parseSeq/parseAtom only see child
			// lists already filtered by nonTrivia below.
			return nil, i, &QueryParseError{Offset: t.Span.Start, Msg: "internal: trivia reached parseAtom"}
		default:
			return Lit{Kind: t.Kind, Text: t.Text}, i + 1, nil
		}
	case *Group:
		inner, _, err := (&queryParser{src: p.src, toks: nonTrivia(n.Children)}).parseAlt(0, false)
		if err != nil {
			return nil, i, err
		}
		return GroupPattern{PairIndex: n.PairIndex, Inner: inner}, i + 1, nil
	default:
		return nil, i, &QueryParseError{Offset: 0, Msg: "internal: unknown node type"}
	}
}

// nonTrivia filters whitespace and comments out of a child list: the
// query grammar has no use for source trivia, unlike the Matcher,
// which must skip it dynamically against arbitrary target trees.
func nonTrivia(nodes []Node) []Node {
	var out []Node
	for _, n := range nodes {
		if l, ok := n.(Leaf); ok && l.Tok.IsTrivia() {
			continue
		}
		out = append(out, n)
	}
	return out
}
