// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package integrity extracts the financial figures of a statement —
// beginning/ending balance and the transaction table — so the pipeline
// can verify that obfuscation did not disturb them. Balances and account
// numbers share numeric-looking text, so this is the safety net against
// substitution collateral damage. The check is advisory: a mismatch is
// reported, never used to block delivery of a redacted statement.
package integrity

import (
	"regexp"
	"strconv"
	"strings"

	"stmt-obfuscator/internal/document"
)

var (
	beginningBalanceRe = regexp.MustCompile(`(?i)beginning\s+balance:?\s*\$?([\d,]+\.\d{2})`)
	endingBalanceRe    = regexp.MustCompile(`(?i)ending\s+balance:?\s*\$?([\d,]+\.\d{2})`)
	amountChars        = regexp.MustCompile(`[^\d.-]`)
)

// transactionKeywords mark a table header as a transaction table.
var transactionKeywords = []string{"date", "description", "amount", "balance", "transaction"}

// Transaction is one row of the statement's transaction table.
type Transaction struct {
	Date        string  `json:"date,omitempty"`
	Description string  `json:"description,omitempty"`
	Amount      float64 `json:"amount"`
	Balance     float64 `json:"balance,omitempty"`
}

// Snapshot captures the financial figures of a document at one point in
// the pipeline. Pointer fields are nil when the figure was not found.
type Snapshot struct {
	BeginningBalance *float64      `json:"beginning_balance,omitempty"`
	EndingBalance    *float64      `json:"ending_balance,omitempty"`
	Transactions     []Transaction `json:"transactions,omitempty"`
	TransactionTotal *float64      `json:"transaction_total,omitempty"`
}

// ParseAmount converts a currency-formatted string to a float, tolerant
// of $ signs, thousands separators, and surrounding whitespace. Returns
// 0.0 when nothing parseable remains.
func ParseAmount(s string) float64 {
	cleaned := amountChars.ReplaceAllString(s, "")
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0.0
	}
	return v
}

// FormatAmount renders a float the way statements print amounts.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// Extract builds a snapshot of the document's financial figures. A nil
// or text-free document yields an empty snapshot rather than an error.
func Extract(doc *document.Document) Snapshot {
	var snap Snapshot
	if doc == nil {
		return snap
	}

	if m := beginningBalanceRe.FindStringSubmatch(doc.FullText); m != nil {
		v := ParseAmount(m[1])
		snap.BeginningBalance = &v
	}
	if m := endingBalanceRe.FindStringSubmatch(doc.FullText); m != nil {
		v := ParseAmount(m[1])
		snap.EndingBalance = &v
	}

	for _, table := range doc.Tables {
		if !isTransactionTable(table) {
			continue
		}
		snap.Transactions = extractTransactions(table)
		total := 0.0
		for _, tx := range snap.Transactions {
			total += tx.Amount
		}
		snap.TransactionTotal = &total
		break
	}

	return snap
}

// Verify re-extracts balances from the post-substitution document and
// compares them to the pre-substitution snapshot. Only keys present in
// both are compared; per-row transaction amounts are extracted but not
// asserted. Returns true when no compared figure changed.
func Verify(before Snapshot, doc *document.Document) bool {
	after := Extract(doc)

	if before.BeginningBalance != nil && after.BeginningBalance != nil &&
		*before.BeginningBalance != *after.BeginningBalance {
		return false
	}
	if before.EndingBalance != nil && after.EndingBalance != nil &&
		*before.EndingBalance != *after.EndingBalance {
		return false
	}
	return true
}

func isTransactionTable(table document.Table) bool {
	headerText := strings.ToLower(strings.Join(table.Headers, " "))
	for _, kw := range transactionKeywords {
		if strings.Contains(headerText, kw) {
			return true
		}
	}
	return false
}

func extractTransactions(table document.Table) []Transaction {
	dateCol, descCol, amountCol, balanceCol := -1, -1, -1, -1
	for i, h := range table.Headers {
		switch h := strings.ToLower(h); {
		case strings.Contains(h, "date") && dateCol < 0:
			dateCol = i
		case strings.Contains(h, "description") && descCol < 0:
			descCol = i
		case strings.Contains(h, "amount") && amountCol < 0:
			amountCol = i
		case strings.Contains(h, "balance") && balanceCol < 0:
			balanceCol = i
		}
	}

	var transactions []Transaction
	for _, row := range table.Rows {
		var tx Transaction
		if dateCol >= 0 && dateCol < len(row) {
			tx.Date = row[dateCol]
		}
		if descCol >= 0 && descCol < len(row) {
			tx.Description = row[descCol]
		}
		if amountCol >= 0 && amountCol < len(row) {
			tx.Amount = ParseAmount(row[amountCol])
		}
		if balanceCol >= 0 && balanceCol < len(row) {
			tx.Balance = ParseAmount(row[balanceCol])
		}
		transactions = append(transactions, tx)
	}
	return transactions
}
