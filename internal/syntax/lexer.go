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

import "unicode/utf8"

// Lexer tokenizes a byte slice under a fixed Options. It never fails:
// malformed input (an unterminated string or comment) yields a token
// that runs to EOF with Truncated set, never an error.
//
// A Lexer holds no lookback beyond the token it is currently building;
// NextToken is a pure function of the current position and Options.
type Lexer struct {
	src  []byte
	opts Options
	pos  int
}

// NewLexer returns a Lexer over src under opts. src is not copied; every
// Token's spans reference it directly.
func NewLexer(src []byte, opts Options) *Lexer {
	return &Lexer{src: src, opts: opts}
}

// Tokenize runs the Lexer to completion and returns every token,
// including trivia, in source order. Concatenating each token's Raw
// reproduces src exactly (the lexer totality invariant, see §8 of the
// design).
func Tokenize(src []byte, opts Options) []Token {
	lex := NewLexer(src, opts)
	var toks []Token
	for {
		t, ok := lex.NextToken()
		if !ok {
			return toks
		}
		toks = append(toks, t)
	}
}

// NextToken returns the next token, or ok=false at end of input.
func (l *Lexer) NextToken() (Token, bool) {
	if l.pos >= len(l.src) {
		return Token{}, false
	}
	start := l.pos

	// Priority order per the lexer contract: identifier, number, block
	// comment, line comment, string, block open/close, whitespace,
	// punct. Ident/number are checked first so a language whose
	// identifier class happens to include a comment/string character
	// (none of the built-in presets do) still wins deterministically.
	if r, _ := utf8.DecodeRune(l.src[start:]); l.matchesIdentStart(r) {
		return l.lexIdentifier()
	}

	c := l.src[start]
	if c >= '0' && c <= '9' {
		return l.lexNumber()
	}

	if pi, end, ok := l.matchBlockComment(start); ok {
		t := l.emit(KindBlockComment, start, end)
		t.PairIndex = pi
		p := l.opts.BlockComments[pi]
		textStart, textEnd := start+len(p.Open), end
		if hasSuffixAt(l.src, end, p.Close) && end-len(p.Close) >= textStart {
			textEnd = end - len(p.Close)
		} else {
			t.Truncated = true
		}
		t.Text = string(l.src[textStart:textEnd])
		l.pos = end
		return t, true
	}

	if end, ok := l.matchLineComment(start); ok {
		t := l.emit(KindLineComment, start, end)
		t.Text = string(l.src[start+lineCommentPrefixLen(l.opts, l.src, start):end])
		l.pos = end
		return t, true
	}

	if l.opts.Strings[c] {
		return l.lexString(c), true
	}

	if pi, open, ok := l.matchBlockDelim(start, true); ok {
		t := l.emit(KindBlockOpen, start, start+len(open))
		t.PairIndex = pi
		l.pos = start + len(open)
		return t, true
	}
	if pi, close, ok := l.matchBlockDelim(start, false); ok {
		t := l.emit(KindBlockClose, start, start+len(close))
		t.PairIndex = pi
		l.pos = start + len(close)
		return t, true
	}

	if ws := l.matchWhitespace(); ws > start {
		return l.emit(KindWhitespace, start, ws), true
	}

	// Single-character punctuation: the fallback of last resort. Decode
	// a full rune so multi-byte punctuation (e.g. Unicode operators)
	// still advances correctly and round-trips byte-for-byte.
	_, sz := utf8.DecodeRune(l.src[start:])
	if sz == 0 {
		sz = 1
	}
	return l.emit(KindPunct, start, start+sz), true
}

func (l *Lexer) emit(kind Kind, start, end int) Token {
	l.pos = end
	raw := string(l.src[start:end])
	return Token{
		Kind: kind,
		Span: Span{start, end},
		Raw:  raw,
		Text: raw,
	}
}

func (l *Lexer) matchWhitespace() int {
	i := l.pos
	for i < len(l.src) {
		r, sz := utf8.DecodeRune(l.src[i:])
		if !isUnicodeSpace(r) {
			break
		}
		i += sz
	}
	return i
}

func (l *Lexer) matchesIdentStart(r rune) bool {
	if l.opts.IdentStart == nil {
		return false
	}
	return l.opts.IdentStart.MatchString(string(r))
}

func (l *Lexer) matchesIdentCont(r rune) bool {
	if l.opts.IdentCont == nil {
		return false
	}
	return l.opts.IdentCont.MatchString(string(r))
}

func (l *Lexer) lexIdentifier() (Token, bool) {
	start := l.pos
	i := start
	for i < len(l.src) {
		r, sz := utf8.DecodeRune(l.src[i:])
		if i == start {
			i += sz
			continue
		}
		if !l.matchesIdentCont(r) {
			break
		}
		i += sz
	}
	t := l.emit(KindIdentifier, start, i)
	return t, true
}

func (l *Lexer) lexNumber() (Token, bool) {
	start := l.pos
	i := start
	for i < len(l.src) && l.src[i] >= '0' && l.src[i] <= '9' {
		i++
	}
	t := l.emit(KindNumber, start, i)
	return t, true
}

// lexString consumes a string literal opened by quote, honoring
// backslash escapes: `\x` always consumes the following byte verbatim,
// regardless of what x is.
func (l *Lexer) lexString(quote byte) Token {
	start := l.pos
	i := start + 1
	for i < len(l.src) {
		switch l.src[i] {
		case '\\':
			if i+1 < len(l.src) {
				i += 2
			} else {
				i++
			}
		case quote:
			i++
			t := l.emit(KindString, start, i)
			t.Quote = quote
			t.Text = string(l.src[start+1 : i-1])
			return t
		default:
			i++
		}
	}
	// Unterminated: runs to EOF.
	t := l.emit(KindString, start, i)
	t.Quote = quote
	t.Text = string(l.src[start+1 : i])
	t.Truncated = true
	return t
}

// matchBlockComment returns the index of the first configured
// block-comment pair whose Open prefixes src at pos, preferring the
// longest Open and breaking ties by configuration order, and the
// offset where the comment ends (after its Close, or EOF if
// unterminated).
func (l *Lexer) matchBlockComment(pos int) (pairIndex, end int, ok bool) {
	best := -1
	bestLen := -1
	for i, p := range l.opts.BlockComments {
		if hasPrefixAt(l.src, pos, p.Open) && len(p.Open) > bestLen {
			best = i
			bestLen = len(p.Open)
		}
	}
	if best < 0 {
		return 0, 0, false
	}
	p := l.opts.BlockComments[best]
	rest := l.src[pos+len(p.Open):]
	if idx := indexString(rest, p.Close); idx >= 0 {
		return best, pos + len(p.Open) + idx + len(p.Close), true
	}
	return best, len(l.src), true
}

func lineCommentPrefixLen(opts Options, src []byte, pos int) int {
	best := 0
	for _, p := range opts.LineComments {
		if hasPrefixAt(src, pos, p) && len(p) > best {
			best = len(p)
		}
	}
	return best
}

func (l *Lexer) matchLineComment(pos int) (end int, ok bool) {
	n := lineCommentPrefixLen(l.opts, l.src, pos)
	if n == 0 {
		return 0, false
	}
	i := pos + n
	for i < len(l.src) && l.src[i] != '\n' {
		i++
	}
	return i, true
}

// matchBlockDelim finds the longest configured block Open (if open) or
// Close (if !open) that matches src at pos, breaking ties by
// configuration order.
func (l *Lexer) matchBlockDelim(pos int, open bool) (pairIndex int, text string, ok bool) {
	best := -1
	var bestText string
	for i, p := range l.opts.Blocks {
		cand := p.Close
		if open {
			cand = p.Open
		}
		if cand == "" {
			continue
		}
		if hasPrefixAt(l.src, pos, cand) && len(cand) > len(bestText) {
			best = i
			bestText = cand
		}
	}
	if best < 0 {
		return 0, "", false
	}
	return best, bestText, true
}

func hasPrefixAt(src []byte, pos int, prefix string) bool {
	if prefix == "" {
		return false
	}
	end := pos + len(prefix)
	if end > len(src) {
		return false
	}
	return string(src[pos:end]) == prefix
}

func hasSuffixAt(src []byte, end int, suffix string) bool {
	if len(suffix) > end {
		return false
	}
	return string(src[end-len(suffix):end]) == suffix
}

func indexString(src []byte, sub string) int {
	if sub == "" {
		return -1
	}
	n := len(sub)
	for i := 0; i+n <= len(src); i++ {
		if string(src[i:i+n]) == sub {
			return i
		}
	}
	return -1
}

func isUnicodeSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return r == 0x85 || r == 0xA0
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
