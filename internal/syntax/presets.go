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

import "strings"

// Plain is the zero-configuration preset: no strings, no comments, no
// blocks, and identifier regexes that never match anything, so no
// input lexes as Identifier: digit runs lex as Number, whitespace as
// Whitespace, and every other character as Punct. The other presets
// are built independently of it.
var Plain = Options{
	IdentStart: mustAnchored(`[^\x00-\x{10FFFF}]`),
	IdentCont:  mustAnchored(`[^\x00-\x{10FFFF}]`),
	Strings:    map[byte]bool{},
}

var presets = map[string]Options{
	"plain":       Plain,
	"cfamily":     cfamilyPreset(),
	"java":        javaPreset(),
	"javascript":  javascriptPreset(),
	"python":      pythonPreset(),
	"rust":        rustPreset(),
	"sql":         sqlPreset(),
	"haskell":     haskellPreset(),
	"elixir":      elixirPreset(),
	"clojure":     clojurePreset(),
	"php":         phpPreset(),
	"visualbasic": visualBasicPreset(),
}

// Preset looks up a built-in language configuration by name.
func Preset(name string) (Options, bool) {
	o, ok := presets[strings.ToLower(name)]
	return o, ok
}

// PresetNames returns every built-in preset name, for --help output.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for n := range presets {
		names = append(names, n)
	}
	return names
}

var extensionPresets = map[string]string{
	".c": "cfamily", ".h": "cfamily", ".cc": "cfamily", ".cpp": "cfamily",
	".cxx": "cfamily", ".hpp": "cfamily", ".hh": "cfamily",
	".m": "cfamily", ".mm": "cfamily", ".go": "cfamily", ".cs": "cfamily",
	".java":  "java",
	".js":    "javascript", ".jsx": "javascript", ".ts": "javascript", ".tsx": "javascript",
	".py":  "python", ".pyi": "python",
	".rs":  "rust",
	".sql": "sql",
	".hs":  "haskell", ".lhs": "haskell",
	".ex": "elixir", ".exs": "elixir",
	".clj": "clojure", ".cljs": "clojure", ".cljc": "clojure", ".edn": "clojure",
	".php": "php", ".phtml": "php",
	".vb": "visualbasic", ".bas": "visualbasic",
}

// ExtensionPreset maps a file extension (including the leading dot, as
// returned by filepath.Ext) to the Options of the built-in preset
// registered for it.
func ExtensionPreset(ext string) (Options, bool) {
	name, ok := extensionPresets[strings.ToLower(ext)]
	if !ok {
		return Options{}, false
	}
	return Preset(name)
}

func cfamilyPreset() Options {
	return Options{
		IdentStart:    mustAnchored(`[A-Za-z_]`),
		IdentCont:     mustAnchored(`[A-Za-z0-9_]`),
		Strings:       map[byte]bool{'"': true, '\'': true},
		LineComments:  []string{"//"},
		BlockComments: []Pair{{"/*", "*/"}},
		Blocks:        []Pair{{"(", ")"}, {"[", "]"}, {"{", "}"}},
	}
}

func javaPreset() Options {
	p := cfamilyPreset()
	return p
}

func javascriptPreset() Options {
	p := cfamilyPreset()
	p.Strings = map[byte]bool{'"': true, '\'': true, '`': true}
	return p
}

func pythonPreset() Options {
	return Options{
		IdentStart:    mustAnchored(`[A-Za-z_]`),
		IdentCont:     mustAnchored(`[A-Za-z0-9_]`),
		Strings:       map[byte]bool{'"': true, '\'': true},
		LineComments:  []string{"#"},
		BlockComments: nil,
		Blocks:        []Pair{{"(", ")"}, {"[", "]"}, {"{", "}"}},
	}
}

func rustPreset() Options {
	p := cfamilyPreset()
	p.LineComments = []string{"//"}
	p.BlockComments = []Pair{{"/*", "*/"}}
	return p
}

func sqlPreset() Options {
	return Options{
		IdentStart:    mustAnchored(`[A-Za-z_]`),
		IdentCont:     mustAnchored(`[A-Za-z0-9_$]`),
		Strings:       map[byte]bool{'\'': true, '"': true},
		LineComments:  []string{"--"},
		BlockComments: []Pair{{"/*", "*/"}},
		Blocks:        []Pair{{"(", ")"}},
	}
}

func haskellPreset() Options {
	return Options{
		IdentStart:    mustAnchored(`[A-Za-z_]`),
		IdentCont:     mustAnchored(`[A-Za-z0-9_']`),
		Strings:       map[byte]bool{'"': true},
		LineComments:  []string{"--"},
		BlockComments: []Pair{{"{-", "-}"}},
		Blocks:        []Pair{{"(", ")"}, {"[", "]"}, {"{", "}"}},
	}
}

func elixirPreset() Options {
	return Options{
		IdentStart:    mustAnchored(`[A-Za-z_]`),
		IdentCont:     mustAnchored(`[A-Za-z0-9_!?]`),
		Strings:       map[byte]bool{'"': true, '\'': true},
		LineComments:  []string{"#"},
		BlockComments: nil,
		// do/end is a keyword pair, not punctuation: identifier lexing
		// always wins over block-delimiter lexing (rule 1 before rule
		// 6), so it can never be configured as a Blocks pair here --
		// only the bracket-punctuation delimiters apply.
		Blocks: []Pair{{"(", ")"}, {"[", "]"}, {"{", "}"}},
	}
}

func clojurePreset() Options {
	return Options{
		IdentStart:    mustAnchored(`[^\s()\[\]{}"';,@~^` + "`" + `\\]`),
		IdentCont:     mustAnchored(`[^\s()\[\]{}"';,@~^` + "`" + `\\]`),
		Strings:       map[byte]bool{'"': true},
		LineComments:  []string{";"},
		BlockComments: nil,
		Blocks:        []Pair{{"(", ")"}, {"[", "]"}, {"{", "}"}},
	}
}

func phpPreset() Options {
	p := cfamilyPreset()
	p.LineComments = []string{"//", "#"}
	return p
}

func visualBasicPreset() Options {
	return Options{
		IdentStart:    mustAnchored(`[A-Za-z_]`),
		IdentCont:     mustAnchored(`[A-Za-z0-9_]`),
		Strings:       map[byte]bool{'"': true},
		LineComments:  []string{"'"},
		BlockComments: nil,
		Blocks:        []Pair{{"(", ")"}},
	}
}
