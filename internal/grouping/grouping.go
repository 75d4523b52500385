// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package grouping clusters detected entities into equivalence classes
// so that every surface variant of the same real-world value receives
// one replacement. Classes are keyed by entity type plus normalized
// text and live only for the duration of a single obfuscation call.
package grouping

import (
	"sort"

	"stmt-obfuscator/internal/document"
	"stmt-obfuscator/internal/normalizer"
)

// GroupKey returns the equivalence-class key for an entity.
func GroupKey(e document.PIIEntity) string {
	return string(e.Type) + "_" + normalizer.Normalize(e.Text, e.Type)
}

// Group clusters entities by GroupKey. Input order is preserved within
// each group; an empty input yields an empty map.
func Group(entities []document.PIIEntity) map[string][]document.PIIEntity {
	groups := make(map[string][]document.PIIEntity)
	for _, e := range entities {
		key := GroupKey(e)
		groups[key] = append(groups[key], e)
	}
	return groups
}

// SortedKeys returns the group keys in lexical order so callers iterate
// groups deterministically.
func SortedKeys(groups map[string][]document.PIIEntity) []string {
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Representative selects the member whose text seeds the mask generator:
// the highest-confidence entity, first seen winning ties. The group must
// be non-empty.
func Representative(group []document.PIIEntity) document.PIIEntity {
	best := group[0]
	for _, e := range group[1:] {
		if e.Confidence > best.Confidence {
			best = e
		}
	}
	return best
}
