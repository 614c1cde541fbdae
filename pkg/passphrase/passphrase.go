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

// Package passphrase turns a word list into a delimited passphrase.
package passphrase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/eminwux/wordpass/internal/errdefs"
	"github.com/eminwux/wordpass/pkg/sampler"
	"github.com/eminwux/wordpass/pkg/wordlist"
)

const (
	DefaultWordCount = 5
	DefaultDelimiter = "."
	// MaxWordCount caps how many words a single passphrase may hold.
	MaxWordCount = 1024
)

// Result is one generated passphrase and the words it was built from.
type Result struct {
	Words        []string
	Passphrase   string
	WordListSize int
}

// Generator wires a word source and a sampler together.
type Generator struct {
	Source    wordlist.Source
	Sampler   sampler.Sampler
	Count     int
	Delimiter string
	// Unique forbids the same word from appearing twice.
	Unique   bool
	Reporter Reporter
	Logger   *slog.Logger
}

// Assemble joins words with delimiter.
func Assemble(words []string, delimiter string) string {
	return strings.Join(words, delimiter)
}

// Generate loads the word list, draws Count words and assembles them.
// It either returns a complete passphrase or an error, never a partial one.
func (g *Generator) Generate(ctx context.Context) (*Result, error) {
	if g.Source == nil {
		return nil, fmt.Errorf("%w: generator has no word source", errdefs.ErrConfig)
	}
	if g.Sampler == nil {
		return nil, fmt.Errorf("%w: generator has no sampler", errdefs.ErrConfig)
	}
	if g.Count <= 0 || g.Count > MaxWordCount {
		return nil, fmt.Errorf("%w: word count must be between 1 and %d, got %d",
			errdefs.ErrConfig, MaxWordCount, g.Count)
	}
	logger := g.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	reporter := g.Reporter
	if reporter == nil {
		reporter = NopReporter{}
	}

	words, stats, err := wordlist.Load(g.Source)
	if err != nil {
		logger.DebugContext(ctx, "failed to load word list", "error", err)
		return nil, err
	}
	logger.DebugContext(ctx, "word list loaded",
		"total", stats.Total,
		"kept", stats.Kept,
		"apostrophe", stats.Apostrophe,
		"uppercase", stats.Uppercase,
		"blank", stats.Blank,
		"oversized", stats.Oversized,
	)
	reporter.WordListLoaded(len(words))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var idx []int
	if g.Unique {
		idx, err = sampler.Unique(g.Sampler, len(words), g.Count)
	} else {
		idx, err = g.Sampler.Indices(len(words), g.Count)
	}
	if err != nil {
		logger.DebugContext(ctx, "failed to sample word indices", "error", err)
		return nil, err
	}
	if err := checkIndices(idx, g.Count, len(words)); err != nil {
		logger.DebugContext(ctx, "sampler returned unusable indices", "error", err)
		return nil, err
	}

	picked := make([]string, len(idx))
	for i, j := range idx {
		reporter.GeneratingWord(i + 1)
		picked[i] = words[j]
	}

	result := &Result{
		Words:        picked,
		Passphrase:   Assemble(picked, g.Delimiter),
		WordListSize: len(words),
	}
	logger.DebugContext(ctx, "passphrase generated", "words", len(picked), "unique", g.Unique)
	reporter.Generated()
	return result, nil
}

func checkIndices(idx []int, count, length int) error {
	if len(idx) != count {
		return fmt.Errorf("%w: sampler returned %d indices, want %d", errdefs.ErrInvalidRange, len(idx), count)
	}
	for _, j := range idx {
		if j < 0 || j >= length {
			return fmt.Errorf("%w: index %d outside [0,%d)", errdefs.ErrInvalidRange, j, length)
		}
	}
	return nil
}
