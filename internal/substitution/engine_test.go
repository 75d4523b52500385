// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package substitution

import (
	"strings"
	"testing"

	"stmt-obfuscator/internal/document"
	"stmt-obfuscator/internal/replacement"
)

func TestApplyWordBoundary(t *testing.T) {
	m := replacement.Map{"John Doe": "XXXX XXX"}
	got := Apply("Hello John Doe, balance $100.00", m)
	want := "Hello XXXX XXX, balance $100.00"
	if got != want {
		t.Errorf("Apply() = %q, want %q", got, want)
	}
}

func TestApplyDoesNotCorruptContainingWords(t *testing.T) {
	m := replacement.Map{"Ann": "XXX"}
	got := Apply("Annual report for Ann", m)
	want := "Annual report for XXX"
	if got != want {
		t.Errorf("Apply() = %q, want %q", got, want)
	}
}

func TestApplyExactMatchForPunctuatedKeys(t *testing.T) {
	m := replacement.Map{"(555) 123-4567": "(XXX) XXX-XXXX"}
	got := Apply("Call (555) 123-4567 today", m)
	want := "Call (XXX) XXX-XXXX today"
	if got != want {
		t.Errorf("Apply() = %q, want %q", got, want)
	}
}

func TestApplyLongestMatchFirst(t *testing.T) {
	// The short fragment is a substring of the longer account number;
	// longest-first ordering must replace the full number intact.
	m := replacement.Map{
		"1234567890123456": "XXXXXXXXXXXX3456",
		"3456":             "XXXX",
	}
	got := Apply("Account 1234567890123456 end", m)
	if !strings.Contains(got, "XXXXXXXXXXXX3456") {
		t.Errorf("long key was corrupted by short key: %q", got)
	}
}

func TestApplyEmptyMap(t *testing.T) {
	if got := Apply("unchanged", replacement.Map{}); got != "unchanged" {
		t.Errorf("Apply with empty map = %q", got)
	}
}

func TestApplyDeterministic(t *testing.T) {
	m := replacement.Map{"abcd": "XXXX", "wxyz": "YYYY"}
	first := Apply("abcd wxyz abcd", m)
	for i := 0; i < 10; i++ {
		if got := Apply("abcd wxyz abcd", m); got != first {
			t.Fatalf("nondeterministic result: %q vs %q", got, first)
		}
	}
}

func TestApplyToDocumentAllViews(t *testing.T) {
	doc := &document.Document{
		FullText: "John Doe paid John Doe",
		Metadata: map[string]any{},
		TextBlocks: []document.TextBlock{
			{Text: "John Doe"},
			{Text: "no entities here"},
		},
		Tables: []document.Table{
			{
				Headers: []string{"Date", "Description", "Amount"},
				Rows: [][]string{
					{"01/02", "Payment from John Doe", "$50.00"},
				},
			},
		},
	}

	ApplyToDocument(doc, replacement.Map{"John Doe": "XXXX XXX"})

	if strings.Contains(doc.FullText, "John Doe") {
		t.Error("full text still contains original entity")
	}
	if doc.TextBlocks[0].Text != "XXXX XXX" {
		t.Errorf("text block not substituted: %q", doc.TextBlocks[0].Text)
	}
	if doc.TextBlocks[1].Text != "no entities here" {
		t.Errorf("unrelated block changed: %q", doc.TextBlocks[1].Text)
	}
	if doc.Tables[0].Rows[0][1] != "Payment from XXXX XXX" {
		t.Errorf("table cell not substituted: %q", doc.Tables[0].Rows[0][1])
	}
	if doc.Tables[0].Rows[0][2] != "$50.00" {
		t.Errorf("amount cell corrupted: %q", doc.Tables[0].Rows[0][2])
	}
}

func TestApplyToDocumentNil(t *testing.T) {
	// Must not panic.
	ApplyToDocument(nil, replacement.Map{"a": "b"})
}
