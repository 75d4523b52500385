// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package replacement builds the original→replacement mapping applied by
// the substitution engine. Entities are confidence-filtered, grouped
// into equivalence classes, and every member of a class receives the
// replacement generated from the class representative, so identical
// real-world values are masked identically across the whole statement.
package replacement

import (
	"crypto/sha256"
	"encoding/hex"

	"stmt-obfuscator/internal/document"
	"stmt-obfuscator/internal/grouping"
	"stmt-obfuscator/internal/mask"
	"stmt-obfuscator/internal/normalizer"
	"stmt-obfuscator/internal/observability"
)

// Map is the primary artifact consumed by the substitution engine:
// original entity text to its replacement.
type Map map[string]string

// ConsistencyMap keys replacements by a content hash of
// (type, normalized text). Within a single run it is write-only; it
// exists so repeated runs can mask the same value the same way.
type ConsistencyMap map[string]string

// Builder constructs replacement maps for a confidence threshold.
type Builder struct {
	threshold float64
	observer  *observability.StandardObserver
}

// NewBuilder creates a builder that drops entities below threshold.
func NewBuilder(threshold float64, observer *observability.StandardObserver) *Builder {
	if observer == nil {
		observer = observability.NewStandardObserver(observability.ObservabilityOff, nil)
	}
	return &Builder{threshold: threshold, observer: observer}
}

// Build produces the replacement and consistency maps for the given
// entities. Malformed entities (empty text) are skipped; the build never
// fails — the worst case is an empty map, which masks nothing rather
// than aborting the run.
func (b *Builder) Build(entities []document.PIIEntity) (Map, ConsistencyMap) {
	replacements := make(Map)
	consistency := make(ConsistencyMap)

	filtered := make([]document.PIIEntity, 0, len(entities))
	for _, e := range entities {
		if e.Confidence >= b.threshold {
			filtered = append(filtered, e)
		}
	}

	b.observer.LogOperation(observability.StandardObservabilityData{
		Component: "replacement_builder",
		Operation: "filter",
		Success:   true,
		Metadata: map[string]interface{}{
			"entities_in":   len(entities),
			"entities_kept": len(filtered),
			"threshold":     b.threshold,
		},
	})

	groups := grouping.Group(filtered)
	for _, key := range grouping.SortedKeys(groups) {
		group := groups[key]
		rep := grouping.Representative(group)
		generated := mask.Generate(rep.Type, rep.Text)

		for _, e := range group {
			if e.Text == "" {
				b.observer.LogOperation(observability.StandardObservabilityData{
					Component: "replacement_builder",
					Operation: "skip_entity",
					Success:   false,
					Error:     "entity missing text",
				})
				continue
			}
			replacements[e.Text] = generated
			consistency[EntityHash(e.Text, e.Type)] = generated
		}
	}

	return replacements, consistency
}

// EntityHash returns the hex SHA-256 of the entity's type and normalized
// text, the key used for cross-run consistency tracking.
func EntityHash(text string, entityType document.EntityType) string {
	normalized := normalizer.Normalize(text, entityType)
	sum := sha256.Sum256([]byte(string(entityType) + ":" + normalized))
	return hex.EncodeToString(sum[:])
}
