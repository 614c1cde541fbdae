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

package errdefs

import "errors"

var (
	ErrSourceUnavailable = errors.New("word source unavailable")
	ErrEmptyWordList     = errors.New("word list is empty after filtering")
	ErrInvalidRange      = errors.New("invalid sampling range")
	ErrRandomSource      = errors.New("failed to read from random source")
	ErrConfig            = errors.New("config error")
	ErrInvalidFlag       = errors.New("invalid flag usage")
	ErrLoggerNotFound    = errors.New("logger not found in context")
	ErrInvalidOutput     = errors.New("invalid output format")
)
