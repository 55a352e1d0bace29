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

// Package driver discovers the files a search should run against and
// orchestrates running the syntax package's lexer, tree builder and
// matcher across them.
package driver

import (
	"bufio"
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// skipDirs never gets walked into, regardless of --only/--ignore
// filters: they are never source code and are almost always huge.
var skipDirs = map[string]bool{
	".git":         true,
	".hg":          true,
	".svn":         true,
	"node_modules": true,
}

// DiscoverOptions controls which files Discover returns.
type DiscoverOptions struct {
	// Recursive walks subdirectories when a root is a directory. When
	// false, only the direct contents of a directory root are visited.
	Recursive bool

	// OnlyMatching, if non-empty, keeps only paths matching at least one
	// of these regular expressions (applied to the full path, as
	// walked -- i.e. relative to the root argument it came from).
	OnlyMatching []*regexp.Regexp

	// IgnoreMatching drops any path matching one of these regular
	// expressions, even if OnlyMatching also matched it.
	IgnoreMatching []*regexp.Regexp

	// SkipBinary drops files that look binary (a NUL byte in the first
	// 8KiB) rather than handing them to the lexer.
	SkipBinary bool
}

// Discover walks roots (files or directories) and returns every
// regular file that survives the include/exclude filters, in a
// deterministic (lexical, depth-first) order.
//
// Directories are also filtered by a lightweight gitignore-style glob
// list: each directory's own .gitignore (if any) is loaded as it is
// entered, layered on top of every ancestor's rules, so a rule in an
// inner directory always has the final say. The .gitignore files
// themselves are filter configuration and are never returned from a
// directory walk.
func Discover(roots []string, opts DiscoverOptions) ([]string, error) {
	var out []string
	ignores := map[string][]ignoreRule{}
	for _, root := range roots {
		info, err := os.Lstat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			if keep(root, opts) && !(opts.SkipBinary && looksBinary(root)) {
				out = append(out, root)
			}
			continue
		}
		err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				parent := filepath.Dir(p)
				ignores[p] = append(append([]ignoreRule{}, ignores[parent]...), loadGitignore(p)...)
				if p == root {
					return nil
				}
				if skipDirs[d.Name()] || ignored(p, ignores[parent], true) || !opts.Recursive {
					return filepath.SkipDir
				}
				return nil
			}
			if d.Type()&fs.ModeSymlink != 0 || d.Name() == ".gitignore" {
				return nil
			}
			if ignored(p, ignores[filepath.Dir(p)], false) {
				return nil
			}
			if !keep(p, opts) {
				return nil
			}
			if opts.SkipBinary && looksBinary(p) {
				return nil
			}
			out = append(out, p)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// ignoreRule is one line of a .gitignore file, anchored to the
// directory it was read from.
type ignoreRule struct {
	dir      string
	pattern  string
	negate   bool
	dirOnly  bool
	anchored bool
}

// loadGitignore parses dir/.gitignore if present. Patterns follow the
// common subset of gitignore syntax: blank lines and "#" comments are
// skipped, a leading "!" negates, a trailing "/" restricts the rule to
// directories, and a pattern containing "/" (other than a trailing
// one) is anchored to dir rather than matched against every basename.
// "**" globs are not supported -- no library in reach of this module
// implements gitignore semantics, so this stays intentionally small
// rather than growing a bespoke glob engine.
func loadGitignore(dir string) []ignoreRule {
	f, err := os.Open(filepath.Join(dir, ".gitignore"))
	if err != nil {
		return nil
	}
	defer f.Close()

	var rules []ignoreRule
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		r := ignoreRule{dir: dir}
		if strings.HasPrefix(line, "!") {
			r.negate = true
			line = line[1:]
		}
		if strings.HasSuffix(line, "/") {
			r.dirOnly = true
			line = strings.TrimSuffix(line, "/")
		}
		if strings.Contains(strings.TrimPrefix(line, "/"), "/") || strings.HasPrefix(line, "/") {
			r.anchored = true
			line = strings.TrimPrefix(line, "/")
		}
		r.pattern = line
		rules = append(rules, r)
	}
	return rules
}

// ignored reports whether p (a file or directory) is excluded by
// rules, the merged gitignore rule list in effect for its parent
// directory. The last matching rule wins, so a later "!pattern" can
// re-include something an earlier rule excluded.
func ignored(p string, rules []ignoreRule, isDir bool) bool {
	excluded := false
	base := filepath.Base(p)
	for _, r := range rules {
		if r.dirOnly && !isDir {
			continue
		}
		var candidate string
		if r.anchored {
			rel, err := filepath.Rel(r.dir, p)
			if err != nil {
				continue
			}
			candidate = rel
		} else {
			candidate = base
		}
		ok, err := filepath.Match(r.pattern, candidate)
		if err != nil || !ok {
			continue
		}
		excluded = !r.negate
	}
	return excluded
}

func keep(p string, opts DiscoverOptions) bool {
	if len(opts.OnlyMatching) > 0 {
		matched := false
		for _, re := range opts.OnlyMatching {
			if re.MatchString(p) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	for _, re := range opts.IgnoreMatching {
		if re.MatchString(p) {
			return false
		}
	}
	return true
}

// looksBinary applies the classic "NUL byte in a small prefix" binary
// heuristic used by most grep-likes (git among them).
func looksBinary(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()
	buf := make([]byte, 8192)
	n, _ := f.Read(buf)
	return bytes.IndexByte(buf[:n], 0) >= 0
}
