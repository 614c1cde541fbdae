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

package passphrase

import (
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Reporter receives progress notifications while a passphrase is generated.
type Reporter interface {
	WordListLoaded(size int)
	GeneratingWord(n int)
	// Generated is called once the passphrase is complete.
	Generated()
}

type NopReporter struct{}

func (NopReporter) WordListLoaded(int) {}
func (NopReporter) GeneratingWord(int) {}
func (NopReporter) Generated()         {}

// TextReporter writes human-readable progress lines to W.
type TextReporter struct {
	W       io.Writer
	printer *message.Printer
}

func NewTextReporter(w io.Writer) *TextReporter {
	return &TextReporter{W: w, printer: message.NewPrinter(language.English)}
}

func (r *TextReporter) WordListLoaded(size int) {
	r.p().Fprintf(r.W, "We are working with %d words!\n", size)
}

func (r *TextReporter) GeneratingWord(n int) {
	r.p().Fprintf(r.W, "Generating word number %d...\n", n)
}

func (r *TextReporter) Generated() {
	r.p().Fprintf(r.W, "Your new password has been generated; if you don't like it, "+
		"you may change the order, but that will reduce the entropy slightly.\n")
}

func (r *TextReporter) p() *message.Printer {
	if r.printer == nil {
		r.printer = message.NewPrinter(language.English)
	}
	return r.printer
}
