// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package report renders the outcome of an obfuscation run for humans
// (colorized text) or machines (JSON).
package report

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"

	"stmt-obfuscator/internal/document"
	"stmt-obfuscator/internal/obfuscator"
)

// Options controls report rendering.
type Options struct {
	NoColor bool
	Verbose bool
}

// Formatter renders obfuscation results.
type Formatter struct {
	colors map[string]*color.Color
}

// NewFormatter creates a report formatter.
func NewFormatter() *Formatter {
	return &Formatter{
		colors: map[string]*color.Color{
			"green":  color.New(color.FgGreen),
			"yellow": color.New(color.FgYellow),
			"red":    color.New(color.FgRed),
			"cyan":   color.New(color.FgCyan),
			"white":  color.New(color.FgWhite, color.Bold),
		},
	}
}

// FormatText renders a human-readable run summary.
func (f *Formatter) FormatText(result *obfuscator.Result, entities []document.PIIEntity, options Options) string {
	if options.NoColor {
		color.NoColor = true
	}

	var b strings.Builder

	if result.Document.Metadata["obfuscated"] == false {
		b.WriteString(f.colors["red"].Sprint("Obfuscation failed"))
		if errMsg, ok := result.Document.Metadata["error"].(string); ok {
			b.WriteString(": " + errMsg)
		}
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(f.colors["white"].Sprint("Obfuscation summary"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  Entities detected:  %d\n", len(entities))
	fmt.Fprintf(&b, "  Values replaced:    %d\n", len(result.Replacements))

	if result.IntegrityChecked {
		if result.IntegrityOK {
			fmt.Fprintf(&b, "  Integrity:          %s\n", f.colors["green"].Sprint("balances unchanged"))
		} else {
			fmt.Fprintf(&b, "  Integrity:          %s\n", f.colors["red"].Sprint("BALANCE MISMATCH"))
		}
	} else {
		fmt.Fprintf(&b, "  Integrity:          %s\n", f.colors["yellow"].Sprint("no balances found"))
	}

	if options.Verbose {
		b.WriteString(f.colors["cyan"].Sprint("  By type:"))
		b.WriteString("\n")
		for _, line := range countByType(entities) {
			fmt.Fprintf(&b, "    %s\n", line)
		}
	}

	return b.String()
}

// FormatJSON renders the obfuscated document itself as indented JSON,
// the exchange format of the downstream rendering pipeline.
func (f *Formatter) FormatJSON(result *obfuscator.Result) (string, error) {
	data, err := json.MarshalIndent(result.Document, "", "  ")
	if err != nil {
		return "", fmt.Errorf("error encoding document: %w", err)
	}
	return string(data), nil
}

func countByType(entities []document.PIIEntity) []string {
	counts := make(map[string]int)
	for _, e := range entities {
		counts[string(e.Type)]++
	}
	types := make([]string, 0, len(counts))
	for t := range counts {
		types = append(types, t)
	}
	sort.Strings(types)

	lines := make([]string, 0, len(types))
	for _, t := range types {
		lines = append(lines, fmt.Sprintf("%-20s %d", t, counts[t]))
	}
	return lines
}
