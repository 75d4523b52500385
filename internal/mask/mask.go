// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package mask provides a single source of truth for format-preserving
// replacement generation. Each generator destroys the information
// content of a PII value while keeping its shape — separators, token
// lengths, and (where the type has a safe convention) the last four
// digits — so redacted statements stay legible and auditable.
package mask

import (
	"strings"

	"stmt-obfuscator/internal/document"
)

// Generator produces a replacement string for an entity's text. All
// generators are total: any input string, including the empty string,
// yields a replacement without error.
type Generator func(text string) string

// generators maps entity types to their handlers. Types not present
// fall through to the default generator in Generate, which keeps the
// handler set extensible without open-ended dispatch.
var generators = map[document.EntityType]Generator{
	document.PersonName:       PersonName,
	document.Address:          Address,
	document.AccountNumber:    AccountNumber,
	document.RoutingNumber:    RoutingNumber,
	document.PhoneNumber:      DigitsOnly,
	document.Email:            Email,
	document.OrganizationName: OrganizationName,
	document.CreditCardNumber: CreditCard,
	document.SSN:              SSN,
	document.DateOfBirth:      DigitsOnly,
	document.IPAddress:        DigitsOnly,
	document.URL:              URL,
}

// Generate returns the replacement for text of the given entity type,
// using the default generator for unrecognized types. It never fails.
func Generate(entityType document.EntityType, text string) string {
	if g, ok := generators[entityType]; ok {
		return g(text)
	}
	return Default(string(entityType), text)
}

// PersonName replaces each whitespace-separated token with X's of the
// same length, rejoined with single spaces.
func PersonName(text string) string {
	words := strings.Fields(text)
	masked := make([]string, len(words))
	for i, w := range words {
		masked[i] = strings.Repeat("X", len(w))
	}
	return strings.Join(masked, " ")
}

// Address replaces every alphanumeric character with X, preserving
// spaces, commas, and other punctuation verbatim.
func Address(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if isAlphanumeric(r) {
			b.WriteByte('X')
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// AccountNumber masks all digits except the last four, keeping
// non-digit separators in place. Values with fewer than four digits are
// fully digit-masked.
func AccountNumber(text string) string {
	return maskAllButLastFour(text)
}

// RoutingNumber masks every digit; routing numbers carry no safe
// last-four convention.
func RoutingNumber(text string) string {
	return DigitsOnly(text)
}

// DigitsOnly replaces every digit with X and preserves all other
// characters. Used for phone numbers, dates of birth, and IP addresses.
func DigitsOnly(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r >= '0' && r <= '9' {
			b.WriteByte('X')
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CreditCard emits the canonical XXXX-XXXX-XXXX-<last4> form when the
// value carries a full card number (16+ digits). Shorter values fall
// back to account-number masking, or a full digit mask below four
// digits.
func CreditCard(text string) string {
	digits := digitsOf(text)
	if len(digits) >= 16 {
		return "XXXX-XXXX-XXXX-" + digits[len(digits)-4:]
	}
	return maskAllButLastFour(text)
}

// SSN emits the canonical XXX-XX-<last4> form for exactly nine digits.
// Other digit counts get account-number masking, or a full digit mask
// below four digits.
func SSN(text string) string {
	digits := digitsOf(text)
	if len(digits) == 9 {
		return "XXX-XX-" + digits[len(digits)-4:]
	}
	return maskAllButLastFour(text)
}

// Email preserves the first character of the local part and the
// dot-separated domain shape, masking everything else. Strings without
// exactly one @ are masked wholesale to equal length.
func Email(text string) string {
	parts := strings.Split(text, "@")
	if len(parts) != 2 {
		return strings.Repeat("X", len(text))
	}

	local, domain := parts[0], parts[1]
	var maskedLocal string
	if len(local) > 1 {
		maskedLocal = local[:1] + strings.Repeat("X", len(local)-1)
	} else {
		maskedLocal = "X"
	}

	return maskedLocal + "@" + maskDomain(domain)
}

// OrganizationName keeps short connective tokens ("of", "in") verbatim
// and replaces longer tokens with X's of equal length.
func OrganizationName(text string) string {
	words := strings.Fields(text)
	masked := make([]string, len(words))
	for i, w := range words {
		if len(w) <= 2 {
			masked[i] = w
		} else {
			masked[i] = strings.Repeat("X", len(w))
		}
	}
	return strings.Join(masked, " ")
}

// URL masks the domain label-by-label and the path wholesale, keeping
// the protocol and the :// and / structure intact.
func URL(text string) string {
	protocol, rest := "", text
	if i := strings.Index(text, "://"); i >= 0 {
		protocol, rest = text[:i], text[i+3:]
	}

	prefix := ""
	if protocol != "" {
		prefix = protocol + "://"
	}

	if i := strings.Index(rest, "/"); i >= 0 {
		domain, path := rest[:i], rest[i+1:]
		return prefix + maskDomain(domain) + "/" + strings.Repeat("X", len(path))
	}
	return prefix + maskDomain(rest)
}

// Default handles unrecognized entity types with a deliberately
// distinguishable low-fidelity mask: a type prefix plus X's covering
// half the original length.
func Default(entityType, text string) string {
	prefix := entityType
	if len(entityType) >= 3 {
		prefix = entityType[:3]
	}
	return prefix + "_" + strings.Repeat("X", len(text)/2)
}

// maskAllButLastFour masks every digit except the last four, in place,
// preserving non-digit separators. Fewer than four digits means all
// digits are masked.
func maskAllButLastFour(text string) string {
	total := len(digitsOf(text))
	if total < 4 {
		return DigitsOnly(text)
	}

	seen := 0
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r >= '0' && r <= '9' {
			seen++
			if seen <= total-4 {
				b.WriteByte('X')
			} else {
				b.WriteRune(r)
			}
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// maskDomain replaces every non-empty dot-separated label with X's of
// equal length; empty labels from consecutive dots stay empty.
func maskDomain(domain string) string {
	parts := strings.Split(domain, ".")
	masked := make([]string, len(parts))
	for i, p := range parts {
		masked[i] = strings.Repeat("X", len(p))
	}
	return strings.Join(masked, ".")
}

func digitsOf(text string) string {
	var b strings.Builder
	for _, r := range text {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isAlphanumeric(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')
}
