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
	"github.com/stretchr/testify/require"
)

func TestBuildOptionsUnknownLang(t *testing.T) {
	_, err := buildOptions("not-a-lang", "", "", "", nil, nil, nil, nil, nil, nil, nil)
	assert.Error(t, err)
}

func TestBuildOptionsDefaultsToPlain(t *testing.T) {
	o, err := buildOptions("", "", "", "", nil, nil, nil, nil, nil, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, o.Blocks)
}

func TestBuildOptionsIdentOverride(t *testing.T) {
	o, err := buildOptions("cfamily", `[A-Z],[A-Za-z0-9]`, "", "", nil, nil, nil, nil, nil, nil, nil)
	require.NoError(t, err)
	if !o.IdentStart.MatchString("A") || o.IdentStart.MatchString("a") {
		t.Fatalf("ident override not applied: %v", o.IdentStart)
	}
}

func TestBuildOptionsIdentOverrideMalformed(t *testing.T) {
	_, err := buildOptions("cfamily", "no-comma-here", "", "", nil, nil, nil, nil, nil, nil, nil)
	assert.Error(t, err)
}

func TestBuildOptionsAddRemoveBlocks(t *testing.T) {
	o, err := buildOptions("cfamily", "", "", "", nil, nil, nil, nil, []string{"<,>"}, []string{"("}, nil)
	require.NoError(t, err)
	var sawAngle, sawParen bool
	for _, b := range o.Blocks {
		if b.Open == "<" && b.Close == ">" {
			sawAngle = true
		}
		if b.Open == "(" {
			sawParen = true
		}
	}
	assert.True(t, sawAngle, "expected < , > block to be added")
	assert.False(t, sawParen, "expected ( block to be removed by --no-block-begin")
}

func TestBuildOptionsMalformedBlockPair(t *testing.T) {
	_, err := buildOptions("cfamily", "", "", "", nil, nil, nil, nil, []string{"noComma"}, nil, nil)
	assert.Error(t, err)
}

func TestSplitPair(t *testing.T) {
	begin, end, err := splitPair("<,>")
	require.NoError(t, err)
	assert.Equal(t, "<", begin)
	assert.Equal(t, ">", end)

	_, _, err = splitPair("nocomma")
	assert.Error(t, err)

	_, _, err = splitPair(",missing-begin")
	assert.Error(t, err)
}
