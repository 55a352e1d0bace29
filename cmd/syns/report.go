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

package main

import (
	"fmt"
	"os"
	"sync"

	"github.com/dholm/syns/internal/driver"
	"github.com/dholm/syns/internal/printer"
)

// reporter adapts driver.Reporter to the CLI's three output modes:
// full spans (the default), and the -l/-L filename-only lists. It
// keeps its own match/file/error counters independent of the
// SpanPrinter's, since -l/-L never invoke the printer at all. A mutex
// guards both, since driver.Run delivers results from multiple worker
// goroutines concurrently.
type reporter struct {
	mu sync.Mutex

	sp *printer.SpanPrinter

	listFiles       bool
	listNonMatching bool

	matches, files, errs int
}

// newReporter builds the SpanPrinter's color policy from --color/--no-color:
// colorSet reports whether the flag was given explicitly at all (by
// either spelling), in which case color forces on or off; otherwise
// SpanPrinter auto-detects from the output file descriptor.
func newReporter(listFiles, listNonMatching, onlyMatching, colorSet, color bool) *reporter {
	sp := printer.NewAuto()
	sp.OnlyMatching = onlyMatching
	if colorSet {
		c := color
		sp.Color = &c
	}
	return &reporter{sp: sp, listFiles: listFiles, listNonMatching: listNonMatching}
}

func (r *reporter) Report(res driver.FileResult) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if res.Err != nil {
		r.errs++
		fmt.Fprintf(os.Stderr, "%s: %v\n", res.Path, res.Err)
		return
	}

	switch {
	case r.listFiles:
		if len(res.Matches) > 0 {
			r.matches += len(res.Matches)
			r.files++
			fmt.Fprintln(os.Stdout, res.Path)
		}
	case r.listNonMatching:
		if len(res.Matches) == 0 {
			fmt.Fprintln(os.Stdout, res.Path)
		} else {
			r.matches += len(res.Matches)
			r.files++
		}
	default:
		r.sp.Report(res)
	}
}

// Summary returns totals across the whole run: matches and matching
// files, and how many files errored.
func (r *reporter) Summary() (matches, files, errs int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listFiles || r.listNonMatching {
		return r.matches, r.files, r.errs
	}
	// Report handles errored results itself and never passes them to
	// the printer, so the error count is always this reporter's own.
	m, f, _ := r.sp.Summary()
	return m, f, r.errs
}
