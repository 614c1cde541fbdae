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

package wordlist

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/eminwux/wordpass/cmd/config"
	"github.com/eminwux/wordpass/internal/errdefs"
	"github.com/eminwux/wordpass/internal/logging"
	dict "github.com/eminwux/wordpass/pkg/wordlist"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Report is what `wordpass wordlist` prints.
type Report struct {
	Path  string     `json:"path"  yaml:"path"`
	Stats dict.Stats `json:"stats" yaml:"stats"`
}

func NewWordlistCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "wordlist",
		Aliases:      []string{"words", "wl"},
		Short:        "Show how many usable words the word list has",
		Long:         "Load and filter the configured word list and print what was kept and what was dropped.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         runWordlist,
	}

	setupWordlistCmd(cmd)
	return cmd
}

func setupWordlistCmd(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", "text", "Output format: text|json|yaml")
	_ = viper.BindPFlag(config.WORDPASS_WORDLIST_OUTPUT.ViperKey, cmd.Flags().Lookup("output"))
	_ = cmd.RegisterFlagCompletionFunc("output", config.AutoCompleteOutputFormats)
}

func runWordlist(cmd *cobra.Command, _ []string) error {
	logger, err := logging.LoggerFromContext(cmd.Context())
	if err != nil {
		return err
	}

	format := viper.GetString(config.WORDPASS_WORDLIST_OUTPUT.ViperKey)
	if format != "text" && format != "json" && format != "yaml" {
		return fmt.Errorf("%w: %q (want text, json or yaml)", errdefs.ErrInvalidOutput, format)
	}

	path := viper.GetString(config.WORDPASS_WORDLIST.ViperKey)
	logger.DebugContext(cmd.Context(), "wordlist command invoked", "path", path, "output", format)

	_, stats, err := dict.Load(dict.NewSource(path, cmd.InOrStdin()))
	if err != nil {
		logger.DebugContext(cmd.Context(), "error loading word list", "error", err)
		return err
	}

	return printReport(cmd.OutOrStdout(), format, Report{Path: path, Stats: stats})
}

func printReport(w io.Writer, format string, r Report) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	default:
		fmt.Fprintf(w, "Word list:  %s\n", r.Path)
		fmt.Fprintf(w, "Lines read: %d\n", r.Stats.Total)
		fmt.Fprintf(w, "Usable:     %d\n", r.Stats.Kept)
		fmt.Fprintf(w, "Dropped:    %d apostrophe, %d capitalized, %d blank, %d oversized\n",
			r.Stats.Apostrophe, r.Stats.Uppercase, r.Stats.Blank, r.Stats.Oversized)
		return nil
	}
}
