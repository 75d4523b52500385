// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package replacement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stmt-obfuscator/internal/document"
)

func TestBuildFiltersByConfidence(t *testing.T) {
	b := NewBuilder(0.85, nil)
	replacements, _ := b.Build([]document.PIIEntity{
		{Type: document.PersonName, Text: "John Doe", Confidence: 0.95},
		{Type: document.PersonName, Text: "Jane Roe", Confidence: 0.5},
	})

	assert.Contains(t, replacements, "John Doe")
	assert.NotContains(t, replacements, "Jane Roe")
}

func TestBuildGroupVariantsShareReplacement(t *testing.T) {
	b := NewBuilder(0.85, nil)
	replacements, _ := b.Build([]document.PIIEntity{
		{Type: document.PersonName, Text: "John Doe", Confidence: 0.95},
		{Type: document.PersonName, Text: "john doe", Confidence: 0.90},
	})

	require.Contains(t, replacements, "John Doe")
	require.Contains(t, replacements, "john doe")
	// Both variants get the mask derived from the higher-confidence
	// representative "John Doe".
	assert.Equal(t, "XXXX XXX", replacements["John Doe"])
	assert.Equal(t, replacements["John Doe"], replacements["john doe"])
}

func TestBuildSkipsEmptyText(t *testing.T) {
	b := NewBuilder(0.0, nil)
	replacements, _ := b.Build([]document.PIIEntity{
		{Type: document.PersonName, Text: "", Confidence: 1.0},
		{Type: document.SSN, Text: "123-45-6789", Confidence: 1.0},
	})

	assert.Len(t, replacements, 1)
	assert.Equal(t, "XXX-XX-6789", replacements["123-45-6789"])
}

func TestBuildEmptyInput(t *testing.T) {
	b := NewBuilder(0.85, nil)
	replacements, consistency := b.Build(nil)
	assert.Empty(t, replacements)
	assert.Empty(t, consistency)
}

func TestConsistencyMapKeyedByNormalizedHash(t *testing.T) {
	b := NewBuilder(0.0, nil)
	_, consistency := b.Build([]document.PIIEntity{
		{Type: document.PhoneNumber, Text: "(555) 123-4567", Confidence: 0.9},
		{Type: document.PhoneNumber, Text: "555-123-4567", Confidence: 0.8},
	})

	// Variants normalize identically, so they collapse to one hash key.
	require.Len(t, consistency, 1)
	hash := EntityHash("(555) 123-4567", document.PhoneNumber)
	assert.Equal(t, hash, EntityHash("555-123-4567", document.PhoneNumber))
	assert.Contains(t, consistency, hash)
}

func TestBuildDeterministic(t *testing.T) {
	entities := []document.PIIEntity{
		{Type: document.PersonName, Text: "John Doe", Confidence: 0.95},
		{Type: document.Email, Text: "john@example.com", Confidence: 0.9},
		{Type: document.AccountNumber, Text: "1234567890123456", Confidence: 0.99},
	}

	b := NewBuilder(0.85, nil)
	first, _ := b.Build(entities)
	second, _ := b.Build(entities)
	assert.Equal(t, first, second)
}
