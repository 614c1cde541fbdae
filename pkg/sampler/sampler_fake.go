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

package sampler

import (
	"errors"
	"fmt"

	"github.com/eminwux/wordpass/internal/errdefs"
)

var ErrFixedExhausted = errors.New("fixed sequence exhausted")

// Fixed replays a predetermined index sequence. Successive calls continue
// where the previous one stopped.
type Fixed struct {
	Seq []int
	pos int
}

func NewFixed(seq ...int) *Fixed {
	return &Fixed{Seq: seq}
}

func (f *Fixed) Indices(length, n int) ([]int, error) {
	if err := checkRange(length, n); err != nil {
		return nil, err
	}
	if f.pos+n > len(f.Seq) {
		return nil, fmt.Errorf("%w: want %d more, have %d", ErrFixedExhausted, n, len(f.Seq)-f.pos)
	}

	out := make([]int, n)
	for i := range out {
		v := f.Seq[f.pos+i]
		if v < 0 || v >= length {
			return nil, fmt.Errorf("%w: index %d out of [0,%d)", errdefs.ErrInvalidRange, v, length)
		}
		out[i] = v
	}
	f.pos += n
	return out, nil
}
