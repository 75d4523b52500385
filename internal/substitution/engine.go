// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package substitution applies a replacement map to statement text.
// Keys are applied longest-first so a short value that is a substring of
// a longer one cannot corrupt the longer match, and the same map is used
// for the full text, every text block, and every table cell so all views
// of the statement stay consistent.
package substitution

import (
	"regexp"
	"sort"
	"strings"

	"stmt-obfuscator/internal/document"
	"stmt-obfuscator/internal/replacement"
)

// Punctuated tokens (phone numbers, formatted SSNs) already carry their
// own delimiters; word-boundary matching would fail or over-match on
// them, so they get exact substring replacement instead.
var punctuated = regexp.MustCompile(`[().-]`)

// Apply replaces every map key found in text with its replacement.
// Keys are processed in descending length order, ties broken lexically
// so the result is deterministic.
func Apply(text string, replacements replacement.Map) string {
	if len(replacements) == 0 || text == "" {
		return text
	}

	keys := make([]string, 0, len(replacements))
	for k := range replacements {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	for _, original := range keys {
		masked := replacements[original]
		if punctuated.MatchString(original) {
			text = strings.ReplaceAll(text, original, masked)
		} else {
			pattern := regexp.MustCompile(`\b` + regexp.QuoteMeta(original) + `\b`)
			text = pattern.ReplaceAllLiteralString(text, masked)
		}
	}

	return text
}

// ApplyToDocument runs Apply over the document's full text, every text
// block, and every table cell, in place. The caller passes the copy it
// owns; the same replacement map covers all three views.
func ApplyToDocument(doc *document.Document, replacements replacement.Map) {
	if doc == nil {
		return
	}

	doc.FullText = Apply(doc.FullText, replacements)

	for i := range doc.TextBlocks {
		doc.TextBlocks[i].Text = Apply(doc.TextBlocks[i].Text, replacements)
	}

	for i := range doc.Tables {
		for j := range doc.Tables[i].Rows {
			for k := range doc.Tables[i].Rows[j] {
				doc.Tables[i].Rows[j][k] = Apply(doc.Tables[i].Rows[j][k], replacements)
			}
		}
	}
}
