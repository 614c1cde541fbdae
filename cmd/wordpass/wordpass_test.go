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

package wordpass

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/eminwux/wordpass/cmd/config"
	"github.com/eminwux/wordpass/internal/errdefs"
	"github.com/eminwux/wordpass/internal/logging"
	"github.com/eminwux/wordpass/pkg/sampler"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const fruit = "apple\nberry\ncherry\ndate\negg\n"

func writeWordlist(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "words")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write word list: %v", err)
	}
	return path
}

func withFixedSampler(t *testing.T, seq ...int) {
	t.Helper()
	orig := newSampler
	newSampler = func() sampler.Sampler { return sampler.NewFixed(seq...) }
	t.Cleanup(func() { newSampler = orig })
}

func newTestRootCmd(t *testing.T, args ...string) (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	t.Cleanup(func() {
		viper.Reset()
	})
	t.Setenv("HOME", t.TempDir())
	for _, v := range config.All() {
		t.Setenv(v.EnvVar(), "")
	}

	root, err := NewWordpassRootCmd()
	if err != nil {
		t.Fatalf("NewWordpassRootCmd() error = %v", err)
	}

	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	root.SetContext(context.WithValue(context.Background(), logging.CtxLogger, logging.NewNoopLogger()))
	return root, &stdout, &stderr
}

func Test_setupRootCmd_HappyPath(t *testing.T) {
	t.Cleanup(func() {
		viper.Reset()
	})

	rootCmd := &cobra.Command{Use: "wordpass"}
	if err := setupRootCmd(rootCmd); err != nil {
		t.Fatalf("setupRootCmd() error = %v", err)
	}

	flagCases := []struct {
		name     string
		flagName string
		value    string
		viperKey string
		isBool   bool
		local    bool
	}{
		{name: "config", flagName: "config", value: "/tmp/config.yaml", viperKey: config.WORDPASS_CONFIG_FILE.ViperKey},
		{name: "wordlist", flagName: "wordlist", value: "/tmp/words", viperKey: config.WORDPASS_WORDLIST.ViperKey},
		{name: "log-level", flagName: "log-level", value: "debug", viperKey: config.WORDPASS_LOG_LEVEL.ViperKey},
		{name: "log-file", flagName: "log-file", value: "/tmp/wp.log", viperKey: config.WORDPASS_LOG_FILE.ViperKey},
		{
			name: "verbose", flagName: "verbose", value: "true",
			viperKey: config.WORDPASS_VERBOSE.ViperKey, isBool: true,
		},
		{name: "words", flagName: "words", value: "7", viperKey: config.WORDPASS_WORD_COUNT.ViperKey, local: true},
		{name: "delimiter", flagName: "delimiter", value: "-", viperKey: config.WORDPASS_DELIMITER.ViperKey, local: true},
		{
			name: "unique", flagName: "unique", value: "true",
			viperKey: config.WORDPASS_UNIQUE.ViperKey, isBool: true, local: true,
		},
		{
			name: "quiet", flagName: "quiet", value: "true",
			viperKey: config.WORDPASS_QUIET.ViperKey, isBool: true, local: true,
		},
	}

	for _, tc := range flagCases {
		t.Run(tc.name, func(t *testing.T) {
			fs := rootCmd.PersistentFlags()
			if tc.local {
				fs = rootCmd.Flags()
			}
			if err := fs.Set(tc.flagName, tc.value); err != nil {
				t.Fatalf("failed to set flag %s: %v", tc.flagName, err)
			}
			if tc.isBool {
				if got := viper.GetBool(tc.viperKey); !got {
					t.Fatalf("viper key %s expected to be true", tc.viperKey)
				}
				return
			}
			if got := viper.GetString(tc.viperKey); got != tc.value {
				t.Fatalf("viper key %s expected %s, got %s", tc.viperKey, tc.value, got)
			}
		})
	}
}

func Test_LoadConfig_Defaults(t *testing.T) {
	t.Cleanup(func() {
		viper.Reset()
	})
	t.Setenv("HOME", t.TempDir())
	for _, v := range config.All() {
		t.Setenv(v.EnvVar(), "")
	}

	if err := LoadConfig(); err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if got := viper.GetInt(config.WORDPASS_WORD_COUNT.ViperKey); got != 5 {
		t.Fatalf("expected word count 5, got %d", got)
	}
	if got := viper.GetString(config.WORDPASS_DELIMITER.ViperKey); got != "." {
		t.Fatalf("expected delimiter '.', got %q", got)
	}
	if got := viper.GetString(config.WORDPASS_WORDLIST.ViperKey); got != "/usr/share/dict/words" {
		t.Fatalf("expected default word list, got %q", got)
	}
	if got := viper.GetString(config.WORDPASS_LOG_LEVEL.ViperKey); got != "info" {
		t.Fatalf("expected log level info, got %s", got)
	}
}

func Test_LoadConfig_InvalidFile(t *testing.T) {
	t.Cleanup(func() {
		viper.Reset()
	})
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := filepath.Join(home, ".wordpass")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("wordpass: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := LoadConfig(); err == nil {
		t.Fatal("expected error for malformed config file")
	}
}

func Test_Generate_FixedSequence(t *testing.T) {
	withFixedSampler(t, 0, 4, 2, 2, 1)
	path := writeWordlist(t, fruit)
	root, stdout, _ := newTestRootCmd(t, "--wordlist", path)

	if err := root.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	want := "We are working with 5 words!\n" +
		"Generating word number 1...\n" +
		"Generating word number 2...\n" +
		"Generating word number 3...\n" +
		"Generating word number 4...\n" +
		"Generating word number 5...\n" +
		"Your new password has been generated; if you don't like it, " +
		"you may change the order, but that will reduce the entropy slightly.\n" +
		"Your new password is: apple.egg.cherry.cherry.berry\n"
	if stdout.String() != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", stdout.String(), want)
	}
}

func Test_Generate_QuietCustomDelimiter(t *testing.T) {
	withFixedSampler(t, 3, 1, 0)
	path := writeWordlist(t, fruit)
	root, stdout, _ := newTestRootCmd(t, "-w", path, "-q", "-n", "3", "-d", "-")

	if err := root.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if got := stdout.String(); got != "date-berry-apple\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func Test_Generate_CryptoSampler(t *testing.T) {
	path := writeWordlist(t, "Apple\no'hare\nberry\ncherry\n")
	root, stdout, _ := newTestRootCmd(t, "--wordlist", path)

	if err := root.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	re := regexp.MustCompile(`(?m)^Your new password is: ((berry|cherry)\.){4}(berry|cherry)$`)
	if !re.MatchString(stdout.String()) {
		t.Fatalf("unexpected output %q", stdout.String())
	}
	if !strings.HasPrefix(stdout.String(), "We are working with 2 words!\n") {
		t.Fatalf("missing word count report in %q", stdout.String())
	}
}

func Test_Generate_Stdin(t *testing.T) {
	withFixedSampler(t, 1, 1)
	root, stdout, _ := newTestRootCmd(t, "--wordlist", "-", "-q", "-n", "2")
	root.SetIn(strings.NewReader("Zulu\nyankee\nxray\n"))

	if err := root.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if got := stdout.String(); got != "xray.xray\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func Test_Generate_Unique(t *testing.T) {
	withFixedSampler(t, 0, 0, 1)
	path := writeWordlist(t, "ant\nbee\n")
	root, stdout, _ := newTestRootCmd(t, "-w", path, "-q", "-n", "2", "--unique")

	if err := root.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if got := stdout.String(); got != "ant.bee\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func Test_Generate_ConfigFile(t *testing.T) {
	withFixedSampler(t, 4, 3, 2)
	path := writeWordlist(t, fruit)
	root, stdout, _ := newTestRootCmd(t)

	home := os.Getenv("HOME")
	dir := filepath.Join(home, ".wordpass")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		t.Fatal(err)
	}
	cfg := "wordpass:\n  wordCount: 3\n  delimiter: \"_\"\n  quiet: true\n  wordlistPath: " + path + "\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(cfg), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := root.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if got := stdout.String(); got != "egg_date_cherry\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func Test_Generate_Env(t *testing.T) {
	withFixedSampler(t, 0, 1)
	path := writeWordlist(t, fruit)
	root, stdout, _ := newTestRootCmd(t, "-w", path, "-q")
	t.Setenv(config.WORDPASS_WORD_COUNT.EnvVar(), "2")
	t.Setenv(config.WORDPASS_DELIMITER.EnvVar(), "+")

	if err := root.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if got := stdout.String(); got != "apple+berry\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func Test_Generate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		args    func(path string) []string
		wantErr error
	}{
		{
			name:    "missing word list",
			args:    func(_ string) []string { return []string{"--wordlist", "/nonexistent/path/words"} },
			wantErr: errdefs.ErrSourceUnavailable,
		},
		{
			name:    "nothing usable",
			content: "Apple\nit's\n\n",
			args:    func(p string) []string { return []string{"--wordlist", p} },
			wantErr: errdefs.ErrEmptyWordList,
		},
		{
			name:    "zero words",
			content: fruit,
			args:    func(p string) []string { return []string{"--wordlist", p, "-n", "0"} },
			wantErr: errdefs.ErrInvalidFlag,
		},
		{
			name:    "too many words",
			content: fruit,
			args:    func(p string) []string { return []string{"--wordlist", p, "-n", "2000000000"} },
			wantErr: errdefs.ErrInvalidFlag,
		},
		{
			name:    "newline delimiter",
			content: fruit,
			args:    func(p string) []string { return []string{"--wordlist", p, "-d", "\n"} },
			wantErr: errdefs.ErrInvalidFlag,
		},
		{
			name:    "more unique words than available",
			content: "ant\nbee\n",
			args:    func(p string) []string { return []string{"--wordlist", p, "--unique"} },
			wantErr: errdefs.ErrInvalidRange,
		},
		{
			name:    "missing explicit config",
			content: fruit,
			args: func(p string) []string {
				return []string{"--wordlist", p, "--config", "/nonexistent/path/config.yaml"}
			},
			wantErr: errdefs.ErrConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeWordlist(t, tt.content)
			root, stdout, stderr := newTestRootCmd(t, tt.args(path)...)

			err := root.Execute()
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected '%v'; got: '%v'", tt.wantErr, err)
			}
			if strings.Contains(stdout.String(), "Your new password is") {
				t.Fatalf("no password expected on failure, got %q", stdout.String())
			}
			if !strings.Contains(stderr.String(), "Error:") {
				t.Fatalf("expected error on stderr, got %q", stderr.String())
			}
		})
	}
}

func Test_Generate_Verbose(t *testing.T) {
	withFixedSampler(t, 0, 0, 0, 0, 0)
	path := writeWordlist(t, fruit)
	root, _, stderr := newTestRootCmd(t, "-w", path, "-q", "--verbose")

	if err := root.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(stderr.String(), `DEBUG "word list loaded"`) {
		t.Fatalf("expected debug logs on stderr, got %q", stderr.String())
	}
}

func Test_Generate_VerboseLogLevel(t *testing.T) {
	withFixedSampler(t, 0, 0, 0, 0, 0)
	path := writeWordlist(t, fruit)
	root, _, stderr := newTestRootCmd(t, "-w", path, "-q", "--verbose", "--log-level", "warn")

	if err := root.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if strings.Contains(stderr.String(), "DEBUG") {
		t.Fatalf("expected --log-level warn to silence debug logs, got %q", stderr.String())
	}
}

func Test_setupRootCmd_ConfigHelp(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	root, err := NewWordpassRootCmd()
	if err != nil {
		t.Fatalf("NewWordpassRootCmd() error = %v", err)
	}

	usage := root.PersistentFlags().Lookup("config").Usage
	if !strings.Contains(usage, config.DefaultConfigFile()) {
		t.Fatalf("--config usage %q does not mention %q", usage, config.DefaultConfigFile())
	}
}

func Test_Generate_LogFile(t *testing.T) {
	withFixedSampler(t, 0, 0, 0, 0, 0)
	path := writeWordlist(t, fruit)
	logfile := filepath.Join(t.TempDir(), "wordpass.log")
	root, _, _ := newTestRootCmd(t, "-w", path, "-q", "--log-file", logfile, "--log-level", "debug")

	if err := root.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	data, err := os.ReadFile(logfile)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), `"passphrase generated"`) {
		t.Fatalf("unexpected log file content %q", data)
	}
}
