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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dholm/syns/internal/driver"
	"github.com/dholm/syns/internal/syntax"
)

func TestReporterListFilesOnlyCountsMatching(t *testing.T) {
	r := newReporter(true, false, false, true, false)
	r.Report(driver.FileResult{Path: "a.go", Matches: nil})
	r.Report(driver.FileResult{Path: "b.go", Matches: []syntax.Match{{}}})

	matches, files, errs := r.Summary()
	assert.Equal(t, 1, matches)
	assert.Equal(t, 1, files)
	assert.Equal(t, 0, errs)
}

func TestReporterListNonMatchingStillCountsMatches(t *testing.T) {
	r := newReporter(false, true, false, true, false)
	r.Report(driver.FileResult{Path: "a.go", Matches: nil})
	r.Report(driver.FileResult{Path: "b.go", Matches: []syntax.Match{{}}})

	matches, files, _ := r.Summary()
	assert.Equal(t, 1, matches)
	assert.Equal(t, 1, files)
}

func TestReporterCountsErrors(t *testing.T) {
	r := newReporter(true, false, false, true, false)
	r.Report(driver.FileResult{Path: "a.go", Err: &driver.IOError{Path: "a.go"}})
	_, _, errs := r.Summary()
	assert.Equal(t, 1, errs)
}
