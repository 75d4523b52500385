// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package statement

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"stmt-obfuscator/internal/document"
)

// loadPDF validates the file and extracts its text page by page. Each
// reconstructed row becomes one text block so downstream substitution
// sees the same granularity the detector saw.
func loadPDF(path string, maxPages int) (*document.Document, error) {
	// Validate before parsing; corrupt statements fail fast here.
	if err := api.ValidateFile(path, nil); err != nil {
		return nil, fmt.Errorf("invalid PDF: %w", err)
	}

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening PDF: %w", err)
	}
	defer f.Close()

	pageCount := r.NumPage()
	if maxPages > 0 && pageCount > maxPages {
		pageCount = maxPages
	}

	doc := &document.Document{
		Metadata: map[string]any{"page_count": pageCount},
	}

	var buf bytes.Buffer
	for pageNum := 1; pageNum <= pageCount; pageNum++ {
		p := r.Page(pageNum)
		if p.V.IsNull() {
			continue
		}

		rows, err := extractPageRows(p)
		if err != nil {
			continue
		}

		for _, row := range rows {
			if strings.TrimSpace(row) == "" {
				continue
			}
			doc.TextBlocks = append(doc.TextBlocks, document.TextBlock{
				Text: row,
				Page: pageNum,
			})
			buf.WriteString(row)
			buf.WriteString("\n")
		}
	}

	doc.FullText = cleanText(buf.String())
	return doc, nil
}

// extractPageRows returns the page's text rows in reading order,
// falling back to plain extraction split on newlines when row data is
// unavailable.
func extractPageRows(p pdf.Page) ([]string, error) {
	rows, err := p.GetTextByRow()
	if err != nil {
		text, err := p.GetPlainText(nil)
		if err != nil {
			return nil, err
		}
		return strings.Split(text, "\n"), nil
	}

	sorted := make([]*pdf.Row, 0, len(rows))
	for _, row := range rows {
		if row != nil && len(row.Content) > 0 {
			sorted = append(sorted, row)
		}
	}
	sort.Slice(sorted, func(i, j int) bool {
		return averageY(sorted[i].Content) < averageY(sorted[j].Content)
	})

	out := make([]string, 0, len(sorted))
	for _, row := range sorted {
		out = append(out, reconstructRow(row.Content))
	}
	return out, nil
}

func averageY(elements []pdf.Text) float64 {
	if len(elements) == 0 {
		return 0
	}
	var total float64
	for _, e := range elements {
		total += e.Y
	}
	return total / float64(len(elements))
}

// reconstructRow joins a row's text elements left to right, inserting a
// space when the horizontal gap between elements exceeds a fraction of
// the font size.
func reconstructRow(elements []pdf.Text) string {
	sorted := make([]pdf.Text, len(elements))
	copy(sorted, elements)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].X < sorted[j].X
	})

	var buf bytes.Buffer
	for i, e := range sorted {
		buf.WriteString(e.S)
		if i == len(sorted)-1 {
			break
		}

		next := sorted[i+1]
		gap := next.X - (e.X + e.W)
		fontSize := e.FontSize
		if fontSize <= 0 {
			fontSize = 12
		}
		if gap > fontSize*0.2 {
			buf.WriteString(" ")
		}
	}
	return buf.String()
}

// cleanText trims blank lines and collapses repeated spaces within
// lines while preserving line structure for downstream matching.
func cleanText(text string) string {
	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.ReplaceAll(line, "\t", " ")
		for strings.Contains(line, "  ") {
			line = strings.ReplaceAll(line, "  ", " ")
		}
		line = strings.TrimSpace(line)
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
