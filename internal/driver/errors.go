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

import "fmt"

// ConfigError marks a problem with CLI flags or the resolved lexer
// configuration -- an unknown --lang, a malformed BEGIN,END pair, an
// invalid --only/--ignore-files-matching regex. These are always
// detected before any file is opened and abort the whole run.
type ConfigError struct {
	Msg string
	Err error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *ConfigError) Unwrap() error { return e.Err }

// IOError wraps a single file's read failure. Unlike ConfigError, an
// IOError never aborts the run: Run keeps going and the Driver's
// caller decides the exit code from how many files errored and whether
// anything matched, the
// same accumulate-then-report shape the teacher's parser uses for
// per-statement errors.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
