// Copyright 2025 Emiliano Spinella (eminwux)
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
//
// SPDX-License-Identifier: Apache-2.0

package config

import "github.com/spf13/viper"

type Var struct {
	Key        string // e.g. "WORDPASS_WORD_COUNT"
	ViperKey   string // optional, e.g. "wordpass.wordCount"
	Default    string // optional
	HasDefault bool
}

func DefineKV(envName, viperKey string, defaultVal ...string) Var {
	v := Var{Key: envName, ViperKey: viperKey}
	if len(defaultVal) > 0 {
		v.Default = defaultVal[0]
		v.HasDefault = true
	}
	return v
}

func (v *Var) EnvVar() string { return v.Key }

// BindEnv is safe if ViperKey is empty: does nothing.
func (v *Var) BindEnv() error {
	if v.ViperKey == "" {
		return nil
	}
	return viper.BindEnv(v.ViperKey, v.Key)
}

// ApplyDefault registers the declared default with viper, if there is one.
func (v *Var) ApplyDefault() {
	if v.ViperKey != "" && v.HasDefault {
		viper.SetDefault(v.ViperKey, v.Default)
	}
}

// ---- Declare statically ----.
var (
	//nolint:revive,gochecknoglobals,staticcheck // ignore linter warning about this variable
	WORDPASS_CONFIG_FILE = DefineKV("WORDPASS_CONFIG_FILE", "wordpass.configFile")
	//nolint:revive,gochecknoglobals,staticcheck // ignore linter warning about this variable
	WORDPASS_WORD_COUNT = DefineKV("WORDPASS_WORD_COUNT", "wordpass.wordCount", "5")
	//nolint:revive,gochecknoglobals,staticcheck // ignore linter warning about this variable
	WORDPASS_DELIMITER = DefineKV("WORDPASS_DELIMITER", "wordpass.delimiter", ".")
	//nolint:revive,gochecknoglobals,staticcheck // ignore linter warning about this variable
	WORDPASS_WORDLIST = DefineKV("WORDPASS_WORDLIST", "wordpass.wordlistPath", "/usr/share/dict/words")
	//nolint:revive,gochecknoglobals,staticcheck // ignore linter warning about this variable
	WORDPASS_UNIQUE = DefineKV("WORDPASS_UNIQUE", "wordpass.unique", "false")
	//nolint:revive,gochecknoglobals,staticcheck // ignore linter warning about this variable
	WORDPASS_QUIET = DefineKV("WORDPASS_QUIET", "wordpass.quiet", "false")
	//nolint:revive,gochecknoglobals,staticcheck // ignore linter warning about this variable
	WORDPASS_LOG_LEVEL = DefineKV("WORDPASS_LOG_LEVEL", "wordpass.logLevel", "info")
	//nolint:revive,gochecknoglobals,staticcheck // ignore linter warning about this variable
	WORDPASS_LOG_FILE = DefineKV("WORDPASS_LOG_FILE", "wordpass.logFile")
	//nolint:revive,gochecknoglobals,staticcheck // ignore linter warning about this variable
	WORDPASS_VERBOSE = DefineKV("WORDPASS_VERBOSE", "wordpass.verbose", "false")
	//nolint:revive,gochecknoglobals,staticcheck // ignore linter warning about this variable
	WORDPASS_WORDLIST_OUTPUT = DefineKV("WORDPASS_WORDLIST_OUTPUT", "wordpass.wordlist.output", "text")
)

// All lists every declared variable, in declaration order.
func All() []*Var {
	return []*Var{
		&WORDPASS_CONFIG_FILE,
		&WORDPASS_WORD_COUNT,
		&WORDPASS_DELIMITER,
		&WORDPASS_WORDLIST,
		&WORDPASS_UNIQUE,
		&WORDPASS_QUIET,
		&WORDPASS_LOG_LEVEL,
		&WORDPASS_LOG_FILE,
		&WORDPASS_VERBOSE,
		&WORDPASS_WORDLIST_OUTPUT,
	}
}
