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

// Package sampler draws uniformly distributed indices from a random source.
package sampler

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/eminwux/wordpass/internal/errdefs"
)

// Sampler returns n indices, each in [0, length).
type Sampler interface {
	Indices(length, n int) ([]int, error)
}

// Crypto draws indices from a cryptographically secure byte stream using
// rejection sampling, so every index in range is equally likely.
type Crypto struct {
	Reader io.Reader
}

func New(r io.Reader) *Crypto {
	return &Crypto{Reader: r}
}

// NewDefault returns a sampler backed by crypto/rand.
func NewDefault() *Crypto {
	return New(rand.Reader)
}

func (c *Crypto) Indices(length, n int) ([]int, error) {
	if err := checkRange(length, n); err != nil {
		return nil, err
	}

	out := make([]int, n)
	for i := range out {
		idx, err := c.intn(uint64(length))
		if err != nil {
			return nil, err
		}
		out[i] = idx
	}
	return out, nil
}

// intn returns a value in [0, bound). Draws at or above the largest multiple
// of bound that fits in 64 bits are discarded.
func (c *Crypto) intn(bound uint64) (int, error) {
	limit := math.MaxUint64 - (math.MaxUint64%bound+1)%bound
	var buf [8]byte
	for {
		if _, err := io.ReadFull(c.Reader, buf[:]); err != nil {
			return 0, fmt.Errorf("%w: %w", errdefs.ErrRandomSource, err)
		}
		v := binary.LittleEndian.Uint64(buf[:])
		if v <= limit {
			return int(v % bound), nil
		}
	}
}

// Unique draws n distinct indices from s. It keeps asking s for single
// indices until n different ones have been seen.
func Unique(s Sampler, length, n int) ([]int, error) {
	if err := checkRange(length, n); err != nil {
		return nil, err
	}
	if n > length {
		return nil, fmt.Errorf("%w: cannot pick %d distinct indices from %d", errdefs.ErrInvalidRange, n, length)
	}

	seen := make(map[int]struct{}, n)
	out := make([]int, 0, n)
	for len(out) < n {
		next, err := s.Indices(length, 1)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[next[0]]; dup {
			continue
		}
		seen[next[0]] = struct{}{}
		out = append(out, next[0])
	}
	return out, nil
}

func checkRange(length, n int) error {
	if length <= 0 {
		return fmt.Errorf("%w: length must be positive, got %d", errdefs.ErrInvalidRange, length)
	}
	if n <= 0 {
		return fmt.Errorf("%w: count must be positive, got %d", errdefs.ErrInvalidRange, n)
	}
	return nil
}
