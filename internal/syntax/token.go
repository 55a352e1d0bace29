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

// Kind identifies the lexical category of a Token.  Single-character
// punctuation is not broken out into individual codes (unlike a
// keyword-heavy language lexer); Punct carries the character itself.
type Kind int

const (
	// KindWhitespace marks a run of Unicode whitespace.  It is trivia:
	// present in the token stream for span accounting but skipped by the
	// matcher.
	KindWhitespace Kind = iota
	KindIdentifier
	KindNumber
	KindString
	KindLineComment
	KindBlockComment
	KindBlockOpen
	KindBlockClose
	KindPunct
)

func (k Kind) String() string {
	switch k {
	case KindWhitespace:
		return "Whitespace"
	case KindIdentifier:
		return "Identifier"
	case KindNumber:
		return "Number"
	case KindString:
		return "String"
	case KindLineComment:
		return "LineComment"
	case KindBlockComment:
		return "BlockComment"
	case KindBlockOpen:
		return "BlockOpen"
	case KindBlockClose:
		return "BlockClose"
	case KindPunct:
		return "Punct"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Span is a half-open byte range [Start, End) into a single source
// buffer.  Spans are never copies of the underlying bytes.
type Span struct {
	Start, End int
}

// Len returns the number of bytes the span covers.
func (s Span) Len() int { return s.End - s.Start }

// Union returns the smallest span enclosing both s and o.
func (s Span) Union(o Span) Span {
	u := s
	if o.Start < u.Start {
		u.Start = o.Start
	}
	if o.End > u.End {
		u.End = o.End
	}
	return u
}

// Slice returns the bytes s covers in src.
func (s Span) Slice(src []byte) []byte { return src[s.Start:s.End] }

// Token is a single lexical unit.  Most fields only apply to certain
// Kinds; see the comment on each field.
type Token struct {
	Kind Kind
	Span Span

	// Raw is the exact source text of the token, delimiters included.
	// Concatenating every token's Raw in order reproduces the source
	// byte-for-byte (the lexer totality invariant).
	Raw string

	// Text is the token's logical content: the identifier name, the
	// digits of a number, a string's content with its delimiters
	// stripped (backslash escapes are kept as written), a comment's
	// text without its markers. For
	// Punct it is the single-character string. For BlockOpen/BlockClose
	// it is the matched delimiter text.
	Text string

	// Quote is the opening/closing delimiter byte for KindString.
	Quote byte

	// PairIndex identifies which configured (open, close) pair produced
	// a KindBlockOpen, KindBlockClose, or KindBlockComment token --
	// its index into Options.Blocks or Options.BlockComments
	// respectively. Meaningless for other kinds.
	PairIndex int

	// Truncated is set when a string or block comment ran to EOF
	// without finding its closing delimiter. The token still spans to
	// end of input and is otherwise usable.
	Truncated bool
}

// IsTrivia reports whether t is whitespace or a comment: present in the
// token stream but transparent to the matcher.
func (t Token) IsTrivia() bool {
	switch t.Kind {
	case KindWhitespace, KindLineComment, KindBlockComment:
		return true
	default:
		return false
	}
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@[%d:%d)", t.Kind, t.Text, t.Span.Start, t.Span.End)
}
