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

// Program syns searches source files for syntactic patterns: queries
// are written against the target language's own token and block
// structure rather than as raw text or line-oriented regexes.
//
// Usage: syns [OPTIONS] PATTERN [FILE ...]
//
// If no FILE is given, standard input is searched as a single
// anonymous source.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"regexp"
	"sort"
	"strings"

	"github.com/pborman/getopt"

	"github.com/dholm/syns/internal/driver"
	"github.com/dholm/syns/internal/printer"
	"github.com/dholm/syns/internal/syntax"
)

const stdinPath = "<stdin>"

// readStdin reads all of standard input and matches pat against it as
// a single anonymous source, used when no FILE arguments are given.
func readStdin(pat syntax.Pattern, opts syntax.Options) driver.FileResult {
	src, err := io.ReadAll(os.Stdin)
	if err != nil {
		return driver.FileResult{Path: stdinPath, Err: &driver.IOError{Path: stdinPath, Err: err}}
	}
	toks := syntax.Tokenize(src, opts)
	root := syntax.Build(toks, len(src))
	return driver.FileResult{Path: stdinPath, Source: src, Matches: syntax.FindAll(root, pat)}
}

const version = "0.1.0"

var stop = os.Exit

func main() {
	var (
		lang                string
		identOverride       string
		addStrings          string
		removeStrings       string
		addLineComments     []string
		removeLineComments  []string
		addBlockComments    []string
		removeBlockComments []string
		addBlocks           []string
		noBlockBegin        []string
		noBlockEnd          []string
		onlyMatching        bool
		listFiles           bool
		listNonMatching     bool
		skipBinary          bool
		allFiles            bool
		onlyFilesMatching   []string
		ignoreFilesMatching []string
		noRecurse           bool
		color               bool
		dumpOptions         bool
		help                bool
		showVersion         bool
	)

	getopt.StringVarLong(&lang, "lang", 0, "language preset to use (see --help for the list)", "NAME")
	getopt.StringVarLong(&identOverride, "ident", 'i', "START,CONT regexes overriding ident_start/ident_cont", "START,CONT")
	getopt.StringVarLong(&addStrings, "add-strings", 's', "characters that additionally open/close string literals", "CHARS")
	getopt.StringVarLong(&removeStrings, "remove-strings", 'S', "characters that no longer open/close string literals", "CHARS")
	getopt.ListVarLong(&addLineComments, "add-comment", 'c', "line comment prefix to add", "PREFIX")
	getopt.ListVarLong(&removeLineComments, "remove-comment", 'C', "line comment prefix to remove", "PREFIX")
	getopt.ListVarLong(&addBlockComments, "add-multiline-comment", 'm', "BEGIN,END block comment pair to add", "BEGIN,END")
	getopt.ListVarLong(&removeBlockComments, "remove-multiline-comment", 'M', "BEGIN,END block comment pair to remove", "BEGIN,END")
	getopt.ListVarLong(&addBlocks, "add-block", 'b', "BEGIN,END block delimiter pair to add", "BEGIN,END")
	getopt.ListVarLong(&noBlockBegin, "no-block-begin", 0, "remove the block pair opened by BEGIN", "BEGIN")
	getopt.ListVarLong(&noBlockEnd, "no-block-end", 0, "remove the block pair closed by END", "END")
	getopt.BoolVarLong(&onlyMatching, "only-matching", 'o', "print only the matched bytes, not the surrounding span header")
	getopt.BoolVarLong(&listFiles, "files-with-matches", 'l', "list file names containing at least one match")
	getopt.BoolVarLong(&listNonMatching, "files-without-match", 'L', "list file names containing no match")
	skipBinary = true
	getopt.BoolVarLong(&skipBinary, "skip-binary", 'I', "skip files that look binary (default on)")
	getopt.BoolVarLong(&allFiles, "all-files", 'a', "treat every file as text, disabling the binary heuristic")
	getopt.ListVarLong(&onlyFilesMatching, "only-files-matching", 0, "only scan files whose path matches REGEX", "REGEX")
	getopt.ListVarLong(&ignoreFilesMatching, "ignore-files-matching", 0, "skip files whose path matches REGEX", "REGEX")
	getopt.BoolVarLong(&noRecurse, "no-recurse", 0, "do not descend into subdirectories")
	getopt.BoolVarLong(&color, "color", 0, "force color on (--no-color forces off); default is auto-detect")
	getopt.BoolVarLong(&dumpOptions, "options", 0, "dump the effective LexerOptions (after preset + flag merging) and exit")
	getopt.BoolVarLong(&help, "help", 'h', "display this help")
	getopt.BoolVarLong(&showVersion, "version", 0, "print version and license")
	getopt.SetParameters("PATTERN [FILE ...]")

	if err := getopt.Getopt(func(getopt.Option) bool { return true }); err != nil {
		fmt.Fprintln(os.Stderr, err)
		getopt.PrintUsage(os.Stderr)
		stop(2)
		return
	}

	if help {
		getopt.CommandLine.PrintUsage(os.Stderr)
		fmt.Fprintf(os.Stderr, "\nBuilt-in language presets: %s\n", strings.Join(sortedPresets(), ", "))
		stop(0)
		return
	}
	if showVersion {
		fmt.Fprintln(os.Stdout, "syns version "+version+" -- Apache-2.0")
		stop(0)
		return
	}

	opts, err := buildOptions(lang, identOverride, addStrings, removeStrings,
		addLineComments, removeLineComments, addBlockComments, removeBlockComments,
		addBlocks, noBlockBegin, noBlockEnd)
	if err != nil {
		fmt.Fprintln(os.Stderr, "syns:", &driver.ConfigError{Msg: "invalid configuration", Err: err})
		stop(2)
		return
	}

	if dumpOptions {
		fmt.Fprintln(os.Stdout, printer.DumpOptions(opts))
		stop(0)
		return
	}

	args := getopt.Args()
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "syns: missing PATTERN")
		getopt.PrintUsage(os.Stderr)
		stop(2)
		return
	}

	query := args[0]
	paths := args[1:]

	pattern, err := syntax.ParseQuery(query, opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, "syns:", err)
		stop(2)
		return
	}

	colorSet := getopt.CommandLine.Lookup("color").Seen()
	rep := newReporter(listFiles, listNonMatching, onlyMatching, colorSet, color)

	if len(paths) == 0 {
		// No FILE arguments: read stdin as a single anonymous source
		// rather than walking the current directory.
		rep.Report(readStdin(pattern, opts))
	} else {
		onlyRE, err := compileAll(onlyFilesMatching)
		if err != nil {
			fmt.Fprintln(os.Stderr, "syns:", &driver.ConfigError{Msg: "--only-files-matching", Err: err})
			stop(2)
			return
		}
		ignoreRE, err := compileAll(ignoreFilesMatching)
		if err != nil {
			fmt.Fprintln(os.Stderr, "syns:", &driver.ConfigError{Msg: "--ignore-files-matching", Err: err})
			stop(2)
			return
		}

		files, err := driver.Discover(paths, driver.DiscoverOptions{
			Recursive:      !noRecurse,
			OnlyMatching:   onlyRE,
			IgnoreMatching: ignoreRE,
			SkipBinary:     skipBinary && !allFiles,
		})
		if err != nil {
			fmt.Fprintln(os.Stderr, "syns:", err)
			stop(2)
			return
		}

		var perFile func(string) syntax.Options
		if lang == "" {
			perFile = func(p string) syntax.Options {
				o, err := driver.ResolveOptions(p, "")
				if err != nil {
					return opts
				}
				return applyOverrides(o, identOverride, addStrings, removeStrings,
					addLineComments, removeLineComments, addBlockComments, removeBlockComments,
					addBlocks, noBlockBegin, noBlockEnd)
			}
		}

		ctx, cancel := context.WithCancel(context.Background())
		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, os.Interrupt)
		go func() {
			<-sigc
			cancel()
		}()
		defer signal.Stop(sigc)

		driver.Run(ctx, files, driver.Config{Pattern: pattern, Options: opts, PerFile: perFile}, rep)
	}

	matches, _, errs := rep.Summary()
	switch {
	case errs > 0 && matches == 0:
		stop(1)
	default:
		stop(0)
	}
}

func sortedPresets() []string {
	names := syntax.PresetNames()
	sort.Strings(names)
	return names
}

func compileAll(patterns []string) ([]*regexp.Regexp, error) {
	if len(patterns) == 0 {
		return nil, nil
	}
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid regex %q: %w", p, err)
		}
		out = append(out, re)
	}
	return out, nil
}
