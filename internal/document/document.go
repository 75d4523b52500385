// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package document defines the in-memory document and entity model
// exchanged between the statement parser, the PII detector, and the
// obfuscation core. The core never mutates values it receives; callers
// get back independent copies.
package document

// EntityType identifies the kind of PII a detected entity carries.
// The set is open: detectors may emit types not listed here, which the
// masking layer handles with a default generator.
type EntityType string

const (
	PersonName       EntityType = "PERSON_NAME"
	Address          EntityType = "ADDRESS"
	AccountNumber    EntityType = "ACCOUNT_NUMBER"
	RoutingNumber    EntityType = "ROUTING_NUMBER"
	PhoneNumber      EntityType = "PHONE_NUMBER"
	Email            EntityType = "EMAIL"
	OrganizationName EntityType = "ORGANIZATION_NAME"
	CreditCardNumber EntityType = "CREDIT_CARD_NUMBER"
	SSN              EntityType = "SSN"
	DateOfBirth      EntityType = "DATE_OF_BIRTH"
	IPAddress        EntityType = "IP_ADDRESS"
	URL              EntityType = "URL"
	Unknown          EntityType = "UNKNOWN"
)

// PIIEntity is a detected span of personally identifiable text as
// supplied by the external detector. Start/End are byte offsets into the
// document's full text when the detector provides them; a missing
// confidence defaults to 1.0 at load time so the entity is always kept.
type PIIEntity struct {
	Type       EntityType `json:"type"`
	Text       string     `json:"text"`
	Start      int        `json:"start,omitempty"`
	End        int        `json:"end,omitempty"`
	Confidence float64    `json:"confidence"`
}

// TextBlock is a positioned run of text extracted from a statement page.
type TextBlock struct {
	Text string `json:"text"`
	Page int    `json:"page,omitempty"`
	Type string `json:"type,omitempty"`
}

// Table is a detected tabular region, typically the transaction table.
type Table struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// Document is the parsed bank statement the core operates on.
type Document struct {
	FullText   string         `json:"full_text"`
	Metadata   map[string]any `json:"metadata"`
	TextBlocks []TextBlock    `json:"text_blocks"`
	Tables     []Table        `json:"tables,omitempty"`
}

// Normalize fills missing fields with safe defaults so downstream stages
// never see nil maps or slices.
func (d *Document) Normalize() {
	if d.Metadata == nil {
		d.Metadata = make(map[string]any)
	}
	if d.TextBlocks == nil {
		d.TextBlocks = []TextBlock{}
	}
}

// Clone returns a deep, independent copy of the document. Metadata
// values are copied shallowly; the obfuscation core only ever adds
// top-level keys.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}

	out := &Document{
		FullText: d.FullText,
		Metadata: make(map[string]any, len(d.Metadata)),
	}
	for k, v := range d.Metadata {
		out.Metadata[k] = v
	}

	out.TextBlocks = make([]TextBlock, len(d.TextBlocks))
	copy(out.TextBlocks, d.TextBlocks)

	if d.Tables != nil {
		out.Tables = make([]Table, len(d.Tables))
		for i, table := range d.Tables {
			headers := make([]string, len(table.Headers))
			copy(headers, table.Headers)
			rows := make([][]string, len(table.Rows))
			for j, row := range table.Rows {
				rows[j] = make([]string, len(row))
				copy(rows[j], row)
			}
			out.Tables[i] = Table{Headers: headers, Rows: rows}
		}
	}

	return out
}
