// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package normalizer canonicalizes entity text per type so that surface
// variants of the same real-world value ("(555) 123-4567" vs
// "555-123-4567", "Mr. John Doe" vs "John Doe") compare equal.
package normalizer

import (
	"regexp"
	"strings"

	"stmt-obfuscator/internal/document"
)

var (
	nonDigit    = regexp.MustCompile(`\D`)
	titlePrefix = regexp.MustCompile(`^(mr|mrs|ms|dr|prof)\.?\s+`)
	nameSuffix  = regexp.MustCompile(`\s+(jr|sr|phd|md|esq)\.?$`)
)

// Normalize returns the canonical form of text for the given entity
// type. It always lowercases and trims; numeric identifier types are
// reduced to their digits, person names lose honorifics and suffixes.
// Unknown types fall through to lowercase+trim. Never fails.
func Normalize(text string, entityType document.EntityType) string {
	normalized := strings.ToLower(strings.TrimSpace(text))

	switch entityType {
	case document.PhoneNumber, document.AccountNumber, document.CreditCardNumber:
		normalized = nonDigit.ReplaceAllString(normalized, "")
	case document.Email:
		// Lowercase is sufficient for emails.
	case document.PersonName:
		normalized = titlePrefix.ReplaceAllString(normalized, "")
		normalized = nameSuffix.ReplaceAllString(normalized, "")
	}

	return normalized
}
