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

// Package printer renders match spans to a terminal or pipe, with
// optional ANSI highlighting of the matched byte range.
package printer

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/kylelemons/godebug/pretty"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"github.com/dholm/syns/internal/driver"
	"github.com/dholm/syns/internal/syntax"
)

// SpanPrinter writes FileResults in the `[path:startLine-endLine]`
// format, one match per block, followed by the matched source lines.
type SpanPrinter struct {
	Out io.Writer

	// OnlyMatching restricts output to the exact matched byte range
	// rather than the full line range it falls within, and omits the
	// `[path:startLine-endLine]` header.
	OnlyMatching bool

	// Color forces (true), disables (false), or auto-detects (nil)
	// highlighting of the matched span within its printed lines.
	Color *bool

	matchCount int
	fileCount  int
	errCount   int
}

// NewAuto returns a SpanPrinter writing to os.Stdout, auto-detecting
// color support the way git and ripgrep do: only when stdout is a
// real terminal, wrapped through go-colorable so ANSI codes still
// render on legacy Windows consoles.
func NewAuto() *SpanPrinter {
	return &SpanPrinter{Out: colorable.NewColorable(os.Stdout)}
}

func (p *SpanPrinter) useColor() bool {
	if p.Color != nil {
		return *p.Color
	}
	f, ok := p.Out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Report implements driver.Reporter.
func (p *SpanPrinter) Report(res driver.FileResult) {
	if res.Err != nil {
		p.errCount++
		fmt.Fprintf(p.Out, "%s: %v\n", res.Path, res.Err)
		return
	}
	if len(res.Matches) == 0 {
		return
	}
	p.fileCount++
	hi := color.New(color.FgBlack, color.BgYellow)
	// hi is only used once useColor has decided; enabling it here keeps
	// fatih/color's own terminal detection from overriding a forced Color.
	hi.EnableColor()
	var prev *syntax.Span
	for _, m := range res.Matches {
		// The Matcher tries a match at every child position, including
		// trivia ones that merely skip ahead to the same real token --
		// collapsing a run of identical spans into one printed entry is
		// the deduplication the Matcher's contract leaves to us.
		if prev != nil && *prev == m.Span {
			continue
		}
		span := m.Span
		prev = &span
		p.matchCount++
		startLine, endLine := lineRange(res.Source, m.Span)
		if !p.OnlyMatching {
			fmt.Fprintf(p.Out, "[%s:%d-%d]\n", res.Path, startLine, endLine)
		}
		p.printSpan(res.Source, m.Span, startLine, endLine, hi)
	}
}

func (p *SpanPrinter) printSpan(src []byte, span syntax.Span, startLine, endLine int, hi *color.Color) {
	lineStart, lineEnd := lineByteRange(src, startLine, endLine)
	if p.OnlyMatching {
		lineStart, lineEnd = span.Start, span.End
	}
	if !p.useColor() {
		p.Out.Write(src[lineStart:lineEnd])
		if lineEnd == 0 || src[lineEnd-1] != '\n' {
			fmt.Fprintln(p.Out)
		}
		return
	}
	p.Out.Write(src[lineStart:span.Start])
	hi.Fprint(p.Out, string(src[span.Start:span.End]))
	p.Out.Write(src[span.End:lineEnd])
	if lineEnd == 0 || src[lineEnd-1] != '\n' {
		fmt.Fprintln(p.Out)
	}
}

// lineRange returns the 1-based [start, end] line numbers span falls
// across.
func lineRange(src []byte, span syntax.Span) (start, end int) {
	start = 1 + bytes.Count(src[:span.Start], []byte{'\n'})
	endOff := span.End
	if endOff > 0 && endOff <= len(src) && src[endOff-1] == '\n' {
		endOff--
	}
	end = 1 + bytes.Count(src[:endOff], []byte{'\n'})
	return start, end
}

func lineByteRange(src []byte, startLine, endLine int) (start, end int) {
	line := 1
	start = 0
	for i, b := range src {
		if line == startLine {
			start = i
			break
		}
		if b == '\n' {
			line++
		}
	}
	if startLine == 1 {
		start = 0
	}
	end = len(src)
	line = 1
	for i := start; i < len(src); i++ {
		if src[i] == '\n' {
			if line == endLine {
				end = i + 1
				break
			}
			line++
		}
	}
	return start, end
}

// Summary reports totals once Run has finished: how many matches were
// printed, across how many files, and how many files errored.
func (p *SpanPrinter) Summary() (matches, files, errs int) {
	return p.matchCount, p.fileCount, p.errCount
}

// DumpOptions pretty-prints a resolved Options value for --options,
// using the same godebug/pretty configuration the teacher's CLI uses
// for its own debug dumps: multi-line (Compact: false), diffable,
// human-readable Go values without a full %#v dump's noise.
func DumpOptions(opts syntax.Options) string {
	cfg := &pretty.Config{
		Compact:           false,
		IncludeUnexported: false,
	}
	return cfg.Sprint(opts)
}
