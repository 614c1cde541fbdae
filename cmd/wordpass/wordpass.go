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
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/eminwux/wordpass/cmd/config"
	"github.com/eminwux/wordpass/cmd/wordpass/wordlist"
	"github.com/eminwux/wordpass/internal/errdefs"
	"github.com/eminwux/wordpass/internal/logging"
	"github.com/eminwux/wordpass/pkg/passphrase"
	"github.com/eminwux/wordpass/pkg/sampler"
	dict "github.com/eminwux/wordpass/pkg/wordlist"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// newSampler is swapped in tests for a deterministic sampler.
//
//nolint:gochecknoglobals // test seam
var newSampler = func() sampler.Sampler {
	return sampler.NewDefault()
}

func NewWordpassRootCmd() (*cobra.Command, error) {
	// rootCmd represents the base command when called without any subcommands.
	rootCmd := &cobra.Command{
		Use:   "wordpass",
		Short: "Generate a passphrase from random dictionary words",
		Long: `wordpass picks random words from a dictionary and joins them into
a passphrase that is easy to remember and hard to guess.

Words with apostrophes and capitalized words (proper names) are skipped.
Accept the words it picks: choosing your favorites makes them less random.

Examples:
  wordpass
  wordpass -n 6 -d -
  wordpass --wordlist ./eff_large_wordlist.txt
  wordpass wordlist -o yaml
`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := LoadConfig(); err != nil {
				return fmt.Errorf("%w: %w", errdefs.ErrConfig, err)
			}
			return setupLogger(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return logging.CloseLogger(cmd.Context())
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd)
		},
	}

	if err := setupRootCmd(rootCmd); err != nil {
		return nil, err
	}
	return rootCmd, nil
}

func setupRootCmd(rootCmd *cobra.Command) error {
	rootCmd.AddCommand(wordlist.NewWordlistCmd())

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default is "+config.DefaultConfigFile()+")")
	flags.StringP("wordlist", "w", dict.DefaultPath, "word list file, one word per line ('-' reads stdin)")
	flags.String("log-level", "", "Log level (debug, info, warn, error)")
	flags.String("log-file", "", "Write logs to this file")
	flags.BoolP("verbose", "v", false, "Write debug logs to stderr")

	rootCmd.Flags().IntP("words", "n", passphrase.DefaultWordCount, "number of words in the passphrase")
	rootCmd.Flags().StringP("delimiter", "d", passphrase.DefaultDelimiter, "string placed between words")
	rootCmd.Flags().Bool("unique", false, "never use the same word twice")
	rootCmd.Flags().BoolP("quiet", "q", false, "print only the passphrase")

	_ = rootCmd.RegisterFlagCompletionFunc("log-level", config.AutoCompleteLogLevels)

	bindings := []struct {
		key  string
		flag string
		root bool
	}{
		{config.WORDPASS_CONFIG_FILE.ViperKey, "config", true},
		{config.WORDPASS_WORDLIST.ViperKey, "wordlist", true},
		{config.WORDPASS_LOG_LEVEL.ViperKey, "log-level", true},
		{config.WORDPASS_LOG_FILE.ViperKey, "log-file", true},
		{config.WORDPASS_VERBOSE.ViperKey, "verbose", true},
		{config.WORDPASS_WORD_COUNT.ViperKey, "words", false},
		{config.WORDPASS_DELIMITER.ViperKey, "delimiter", false},
		{config.WORDPASS_UNIQUE.ViperKey, "unique", false},
		{config.WORDPASS_QUIET.ViperKey, "quiet", false},
	}
	for _, b := range bindings {
		var fs *pflag.FlagSet = rootCmd.Flags()
		if b.root {
			fs = rootCmd.PersistentFlags()
		}
		if err := viper.BindPFlag(b.key, fs.Lookup(b.flag)); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", b.flag, err)
		}
	}
	return nil
}

// LoadConfig binds environment variables and defaults, then reads the config
// file. A missing default config file is not an error.
func LoadConfig() error {
	for _, v := range config.All() {
		if err := v.BindEnv(); err != nil {
			return fmt.Errorf("failed to bind env %s: %w", v.EnvVar(), err)
		}
		v.ApplyDefault()
	}

	configFile := viper.GetString(config.WORDPASS_CONFIG_FILE.ViperKey)
	if configFile != "" {
		if _, err := os.Stat(configFile); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.DefaultConfigDir())
	}

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return err // Config file was found but another error was produced
		}
	}
	return nil
}

func setupLogger(cmd *cobra.Command) error {
	level := viper.GetString(config.WORDPASS_LOG_LEVEL.ViperKey)

	if logFile := viper.GetString(config.WORDPASS_LOG_FILE.ViperKey); logFile != "" {
		if level == "" {
			level = "info"
		}
		return logging.SetupFileLogger(cmd, logFile, level)
	}
	if viper.GetBool(config.WORDPASS_VERBOSE.ViperKey) {
		if err := logging.SetupWriterLogger(cmd, cmd.ErrOrStderr(), "debug"); err != nil {
			return err
		}
		// an explicit --log-level still wins over --verbose
		if cmd.Flags().Changed("log-level") {
			logging.SetLevel(cmd.Context(), level)
		}
		return nil
	}
	if _, err := logging.LoggerFromContext(cmd.Context()); err != nil {
		return logging.SetupWriterLogger(cmd, io.Discard, level)
	}
	return nil
}

func runGenerate(cmd *cobra.Command) error {
	logger, err := logging.LoggerFromContext(cmd.Context())
	if err != nil {
		return err
	}

	count := viper.GetInt(config.WORDPASS_WORD_COUNT.ViperKey)
	if count <= 0 || count > passphrase.MaxWordCount {
		return fmt.Errorf("%w: --words must be between 1 and %d, got %d",
			errdefs.ErrInvalidFlag, passphrase.MaxWordCount, count)
	}
	delimiter := viper.GetString(config.WORDPASS_DELIMITER.ViperKey)
	if strings.ContainsAny(delimiter, "\r\n") {
		return fmt.Errorf("%w: --delimiter must not contain newlines", errdefs.ErrInvalidFlag)
	}
	path := viper.GetString(config.WORDPASS_WORDLIST.ViperKey)
	quiet := viper.GetBool(config.WORDPASS_QUIET.ViperKey)

	logger.DebugContext(cmd.Context(), "parameters received in wordpass",
		"configFile", configFileUsed(),
		"wordlist", path,
		"wordCount", count,
		"delimiter", delimiter,
		"unique", viper.GetBool(config.WORDPASS_UNIQUE.ViperKey),
		"quiet", quiet,
	)

	out := cmd.OutOrStdout()
	var reporter passphrase.Reporter = passphrase.NewTextReporter(out)
	if quiet {
		reporter = passphrase.NopReporter{}
	}

	gen := &passphrase.Generator{
		Source:    dict.NewSource(path, cmd.InOrStdin()),
		Sampler:   newSampler(),
		Count:     count,
		Delimiter: delimiter,
		Unique:    viper.GetBool(config.WORDPASS_UNIQUE.ViperKey),
		Reporter:  reporter,
		Logger:    logger,
	}

	res, err := gen.Generate(cmd.Context())
	if err != nil {
		return err
	}

	if quiet {
		fmt.Fprintln(out, res.Passphrase)
		return nil
	}
	fmt.Fprintf(out, "Your new password is: %s\n", res.Passphrase)
	return nil
}

func configFileUsed() string {
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}
	if explicit := viper.GetString(config.WORDPASS_CONFIG_FILE.ViperKey); explicit != "" {
		return explicit
	}
	return config.DefaultConfigFile()
}
