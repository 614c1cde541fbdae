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

// Package wordlist loads dictionary text and reduces it to the words that are
// usable in a passphrase.
package wordlist

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/eminwux/wordpass/internal/errdefs"
)

// DefaultPath is the system dictionary shipped by most unix-like systems.
const DefaultPath = "/usr/share/dict/words"

// StdinPath makes the loader read the list from standard input.
const StdinPath = "-"

// MaxWordLength is the longest line, in bytes, Filter keeps. Longer lines are
// truncated while reading and dropped by Filter.
const MaxWordLength = 256

// Source yields the raw lines of a word list, one word per line.
type Source interface {
	Lines() ([]string, error)
}

// FileSource reads lines from a file on disk.
type FileSource struct {
	Path string
}

func (s *FileSource) Lines() ([]string, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errdefs.ErrSourceUnavailable, err)
	}
	defer f.Close()

	lines, err := readLines(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", errdefs.ErrSourceUnavailable, s.Path, err)
	}
	return lines, nil
}

// ReaderSource reads lines from an arbitrary reader.
type ReaderSource struct {
	R io.Reader
}

func (s *ReaderSource) Lines() ([]string, error) {
	if s.R == nil {
		return nil, fmt.Errorf("%w: nil reader", errdefs.ErrSourceUnavailable)
	}
	lines, err := readLines(s.R)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errdefs.ErrSourceUnavailable, err)
	}
	return lines, nil
}

// SliceSource serves lines that are already in memory.
type SliceSource []string

func (s SliceSource) Lines() ([]string, error) {
	return []string(s), nil
}

// NewSource resolves path to a Source. StdinPath maps to stdin.
func NewSource(path string, stdin io.Reader) Source {
	if path == StdinPath {
		return &ReaderSource{R: stdin}
	}
	return &FileSource{Path: path}
}

func readLines(r io.Reader) ([]string, error) {
	var (
		lines []string
		buf   []byte
		open  bool
	)
	br := bufio.NewReader(r)
	for {
		chunk, isPrefix, err := br.ReadLine()
		if errors.Is(err, io.EOF) {
			if open {
				lines = append(lines, string(buf))
			}
			return lines, nil
		}
		if err != nil {
			return nil, err
		}
		open = true
		if room := MaxWordLength + 1 - len(buf); room > 0 {
			buf = append(buf, chunk[:min(len(chunk), room)]...)
		}
		if isPrefix {
			continue
		}
		lines = append(lines, string(buf))
		buf = buf[:0]
		open = false
	}
}

// Stats counts what Filter kept and why the rest was dropped.
type Stats struct {
	Total      int `json:"total"      yaml:"total"`
	Kept       int `json:"kept"       yaml:"kept"`
	Apostrophe int `json:"apostrophe" yaml:"apostrophe"`
	Uppercase  int `json:"uppercase"  yaml:"uppercase"`
	Blank      int `json:"blank"      yaml:"blank"`
	Oversized  int `json:"oversized"  yaml:"oversized"`
}

// Filter drops lines with an apostrophe, lines starting with an uppercase
// letter, lines longer than MaxWordLength and lines that are blank, and trims
// trailing whitespace from the rest.
func Filter(lines []string) ([]string, Stats) {
	stats := Stats{Total: len(lines)}
	words := make([]string, 0, len(lines))
	for _, line := range lines {
		switch {
		case hasApostrophe(line):
			stats.Apostrophe++
			continue
		case startsUpper(line):
			stats.Uppercase++
			continue
		case len(line) > MaxWordLength:
			stats.Oversized++
			continue
		}

		word := strings.TrimRightFunc(line, unicode.IsSpace)
		if word == "" {
			stats.Blank++
			continue
		}
		words = append(words, word)
	}
	stats.Kept = len(words)
	return words, stats
}

// Load reads src once and returns the filtered word list.
func Load(src Source) ([]string, Stats, error) {
	lines, err := src.Lines()
	if err != nil {
		return nil, Stats{}, err
	}

	words, stats := Filter(lines)
	if len(words) == 0 {
		return nil, stats, fmt.Errorf("%w: %d lines read, none usable", errdefs.ErrEmptyWordList, stats.Total)
	}
	return words, stats, nil
}

func hasApostrophe(s string) bool {
	// U+2019 shows up in some dictionaries instead of the ASCII quote.
	return strings.ContainsAny(s, "'’")
}

func startsUpper(s string) bool {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return false
	}
	return unicode.IsUpper(r)
}
