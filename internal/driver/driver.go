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

package driver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/dholm/syns/internal/syntax"
)

// FileResult is what a single file's search produces, handed to a
// Reporter as files finish (order across files is not guaranteed --
// only the matches within one file are in document order).
type FileResult struct {
	Path    string
	Source  []byte
	Matches []syntax.Match
	Err     error
}

// Reporter receives one FileResult per file Run processes. Printing,
// counting and exit-code bookkeeping all go through this interface so
// Run itself stays free of output concerns.
type Reporter interface {
	Report(FileResult)
}

// Config is everything Run needs beyond the list of files: the
// compiled query, the lexer configuration to apply (resolved per-file
// if PerFile is set, e.g. from extension), and how many files to
// lex/match concurrently.
type Config struct {
	Pattern syntax.Pattern

	// Options is used for every file unless PerFile resolves a
	// different one for that file's path.
	Options syntax.Options

	// PerFile, if non-nil, overrides Options on a per-file basis (used
	// when --lang is not given, mapping each file's extension to a preset).
	PerFile func(path string) syntax.Options

	// Workers bounds how many files are lexed and matched concurrently.
	// Zero means runtime.NumCPU().
	Workers int
}

// Run discovers nothing itself -- paths is the already-filtered file
// list from Discover -- and matches cfg.Pattern against each, fanning
// out across a bounded worker pool. It returns early, leaving any
// unstarted files unprocessed, if ctx is canceled (SIGINT from the
// caller's signal handling, see cmd/syns).
func Run(ctx context.Context, paths []string, cfg Config, rep Reporter) {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan string)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for p := range jobs {
				rep.Report(processFile(p, cfg))
			}
		}()
	}

loop:
	for _, p := range paths {
		select {
		case <-ctx.Done():
			break loop
		case jobs <- p:
		}
	}
	close(jobs)
	wg.Wait()
}

func processFile(path string, cfg Config) FileResult {
	src, err := os.ReadFile(path)
	if err != nil {
		return FileResult{Path: path, Err: &IOError{Path: path, Err: err}}
	}
	opts := cfg.Options
	if cfg.PerFile != nil {
		opts = cfg.PerFile(path)
	}
	toks := syntax.Tokenize(src, opts)
	root := syntax.Build(toks, len(src))
	matches := syntax.FindAll(root, cfg.Pattern)
	return FileResult{Path: path, Source: src, Matches: matches}
}

// ResolveOptions picks a preset for path: an explicit lang name if
// non-empty, otherwise the extension table, otherwise Plain.
func ResolveOptions(path, lang string) (syntax.Options, error) {
	if lang != "" {
		o, ok := syntax.Preset(lang)
		if !ok {
			return syntax.Options{}, fmt.Errorf("unknown language preset %q", lang)
		}
		return o, nil
	}
	if o, ok := syntax.ExtensionPreset(filepath.Ext(path)); ok {
		return o, nil
	}
	return syntax.Plain, nil
}
