// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package statement

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stmt-obfuscator/internal/document"
)

func TestLoadJSONDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "statement.json")
	content := `{
		"full_text": "Beginning Balance: $100.00",
		"metadata": {"bank": "Example Bank"},
		"text_blocks": [{"text": "Beginning Balance: $100.00"}],
		"tables": [{"headers": ["Date", "Amount"], "rows": [["01/02", "$5.00"]]}]
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	doc, err := Load(path, 50)
	require.NoError(t, err)
	assert.Equal(t, "Beginning Balance: $100.00", doc.FullText)
	assert.Equal(t, "Example Bank", doc.Metadata["bank"])
	assert.Equal(t, "statement.json", doc.Metadata["source"])
	assert.NotEmpty(t, doc.Metadata["document_id"])
	require.Len(t, doc.Tables, 1)
	assert.Equal(t, "$5.00", doc.Tables[0].Rows[0][1])
}

func TestLoadPlainText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "statement.txt")
	content := "Line one\n\nLine two\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	doc, err := Load(path, 50)
	require.NoError(t, err)
	assert.Equal(t, content, doc.FullText)
	require.Len(t, doc.TextBlocks, 2)
	assert.Equal(t, "Line one", doc.TextBlocks[0].Text)
	assert.Equal(t, "Line two", doc.TextBlocks[1].Text)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/statement.txt", 50)
	assert.Error(t, err)
}

func TestParseEntitiesDefaultsConfidence(t *testing.T) {
	data := []byte(`[
		{"type": "PERSON_NAME", "text": "John Doe", "confidence": 0.95},
		{"type": "SSN", "text": "123-45-6789"}
	]`)

	entities, err := ParseEntities(data)
	require.NoError(t, err)
	require.Len(t, entities, 2)
	assert.Equal(t, document.PersonName, entities[0].Type)
	assert.Equal(t, 0.95, entities[0].Confidence)
	// Missing confidence defaults to 1.0 so the entity is always kept.
	assert.Equal(t, 1.0, entities[1].Confidence)
}

func TestParseEntitiesInvalidJSON(t *testing.T) {
	_, err := ParseEntities([]byte("{not a list}"))
	assert.Error(t, err)
}

func TestParseEntitiesEmptyList(t *testing.T) {
	entities, err := ParseEntities([]byte("[]"))
	require.NoError(t, err)
	assert.Empty(t, entities)
}
