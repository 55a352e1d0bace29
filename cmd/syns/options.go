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
	"strings"

	"github.com/dholm/syns/internal/syntax"
)

// buildOptions resolves the base Options (an explicit --lang preset,
// or syntax.Plain when none was given) and layers every CLI
// configuration flag on top of it. When --lang is empty, the driver
// instead resolves a per-file preset from each file's extension and
// calls applyOverrides on that instead (see main.go's perFile
// closure); buildOptions here still runs once so --options and
// flag-validation errors surface before any file is touched.
func buildOptions(lang, identOverride, addStrings, removeStrings string,
	addComments, removeComments, addBlockComments, removeBlockComments,
	addBlocks, noBlockBegin, noBlockEnd []string) (syntax.Options, error) {

	base := syntax.Plain
	if lang != "" {
		o, ok := syntax.Preset(lang)
		if !ok {
			return syntax.Options{}, fmt.Errorf("unknown --lang %q (see --help for the list)", lang)
		}
		base = o
	}
	return applyOverridesErr(base, identOverride, addStrings, removeStrings,
		addComments, removeComments, addBlockComments, removeBlockComments,
		addBlocks, noBlockBegin, noBlockEnd)
}

// applyOverrides is the panic-free sibling of applyOverridesErr used
// where a per-file preset has already been validated once (malformed
// BEGIN,END pairs would have failed at startup in buildOptions).
func applyOverrides(o syntax.Options, identOverride, addStrings, removeStrings string,
	addComments, removeComments, addBlockComments, removeBlockComments,
	addBlocks, noBlockBegin, noBlockEnd []string) syntax.Options {
	out, _ := applyOverridesErr(o, identOverride, addStrings, removeStrings,
		addComments, removeComments, addBlockComments, removeBlockComments,
		addBlocks, noBlockBegin, noBlockEnd)
	return out
}

func applyOverridesErr(o syntax.Options, identOverride, addStrings, removeStrings string,
	addComments, removeComments, addBlockComments, removeBlockComments,
	addBlocks, noBlockBegin, noBlockEnd []string) (syntax.Options, error) {

	if identOverride != "" {
		start, cont, err := splitPair(identOverride)
		if err != nil {
			return o, err
		}
		n, err := o.WithIdent(start, cont)
		if err != nil {
			return o, err
		}
		o = n
	}
	if addStrings != "" {
		o = o.WithAddedStrings(addStrings)
	}
	if removeStrings != "" {
		o = o.WithRemovedStrings(removeStrings)
	}
	o = o.WithAddedLineComments(addComments...)
	o = o.WithRemovedLineComments(removeComments...)

	for _, spec := range addBlockComments {
		begin, end, err := splitPair(spec)
		if err != nil {
			return o, err
		}
		o = o.WithAddedBlockComment(begin, end)
	}
	for _, spec := range removeBlockComments {
		begin, end, err := splitPair(spec)
		if err != nil {
			return o, err
		}
		o = o.WithRemovedBlockComment(begin, end)
	}
	for _, spec := range addBlocks {
		begin, end, err := splitPair(spec)
		if err != nil {
			return o, err
		}
		o = o.WithAddedBlock(begin, end)
	}
	for _, begin := range noBlockBegin {
		o = o.WithRemovedBlockByOpen(begin)
	}
	for _, end := range noBlockEnd {
		o = o.WithRemovedBlockByClose(end)
	}

	return o, nil
}

func splitPair(spec string) (begin, end string, err error) {
	parts := strings.SplitN(spec, ",", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("expected BEGIN,END, got %q", spec)
	}
	return parts[0], parts[1], nil
}
