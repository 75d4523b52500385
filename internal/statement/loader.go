// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package statement turns input files into the document model the
// obfuscation core consumes. Three input shapes are supported: PDF bank
// statements (text extracted page by page), JSON documents produced by
// an upstream parsing pipeline, and plain text.
package statement

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"stmt-obfuscator/internal/document"
)

// Load reads the file at path into a Document, dispatching on the file
// extension. The returned document always has metadata and text blocks
// populated.
func Load(path string, maxPages int) (*document.Document, error) {
	var (
		doc *document.Document
		err error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		doc, err = loadPDF(path, maxPages)
	case ".json":
		doc, err = loadJSON(path)
	default:
		doc, err = loadPlainText(path)
	}
	if err != nil {
		return nil, err
	}

	doc.Normalize()
	if _, ok := doc.Metadata["document_id"]; !ok {
		doc.Metadata["document_id"] = uuid.NewString()
	}
	doc.Metadata["source"] = filepath.Base(path)
	return doc, nil
}

// LoadEntities reads the external detector's JSON entity list. Entities
// without a confidence field default to 1.0 so they are always kept.
func LoadEntities(path string) ([]document.PIIEntity, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("error reading entities file: %w", err)
	}
	return ParseEntities(data)
}

// ParseEntities decodes a JSON entity list from raw bytes.
func ParseEntities(data []byte) ([]document.PIIEntity, error) {
	var raw []struct {
		Type       string   `json:"type"`
		Text       string   `json:"text"`
		Start      int      `json:"start"`
		End        int      `json:"end"`
		Confidence *float64 `json:"confidence"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("error parsing entities: %w", err)
	}

	entities := make([]document.PIIEntity, 0, len(raw))
	for _, r := range raw {
		confidence := 1.0
		if r.Confidence != nil {
			confidence = *r.Confidence
		}
		entities = append(entities, document.PIIEntity{
			Type:       document.EntityType(r.Type),
			Text:       r.Text,
			Start:      r.Start,
			End:        r.End,
			Confidence: confidence,
		})
	}
	return entities, nil
}

func loadJSON(path string) (*document.Document, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("error reading document: %w", err)
	}
	var doc document.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("error parsing document: %w", err)
	}
	return &doc, nil
}

func loadPlainText(path string) (*document.Document, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("error reading document: %w", err)
	}
	text := string(data)
	doc := &document.Document{
		FullText: text,
		Metadata: map[string]any{},
	}
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			doc.TextBlocks = append(doc.TextBlocks, document.TextBlock{Text: line})
		}
	}
	return doc, nil
}
