package summary

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/expense-report/internal/ledger"
)

// BuildCollectionSummary groups in-period transactions by account and payee,
// accumulating receipts and payments separately. Groups are keyed on the
// placeholder values, so rows with an empty account fold into the Unspecified
// bucket. Every group with at least one transaction is kept, even when its
// totals are all zero.
//
// Rows are ordered case-insensitively by account then payee, with the raw
// strings breaking ties so the output is identical run to run.
func BuildCollectionSummary(inPeriod []ledger.Transaction) []CollectionRow {
	type key struct {
		account string
		payee   string
	}

	buckets := make(map[key]*CollectionRow)
	for _, tx := range inPeriod {
		k := key{
			account: orDefault(tx.Account, Unspecified),
			payee:   orDefault(tx.PayeePayer, Unspecified),
		}
		row, ok := buckets[k]
		if !ok {
			row = &CollectionRow{
				Account:  k.account,
				Payee:    k.payee,
				Receipts: decimal.Zero,
				Payments: decimal.Zero,
			}
			buckets[k] = row
		}
		if tx.IsReceipt() {
			row.Receipts = row.Receipts.Add(tx.Amount)
		} else {
			row.Payments = row.Payments.Add(tx.Amount.Abs())
		}
	}

	rows := make([]CollectionRow, 0, len(buckets))
	for _, row := range buckets {
		row.Net = row.Receipts.Sub(row.Payments)
		rows = append(rows, *row)
	}

	sort.Slice(rows, func(i, j int) bool {
		ai, aj := strings.ToLower(rows[i].Account), strings.ToLower(rows[j].Account)
		if ai != aj {
			return ai < aj
		}
		pi, pj := strings.ToLower(rows[i].Payee), strings.ToLower(rows[j].Payee)
		if pi != pj {
			return pi < pj
		}
		if rows[i].Account != rows[j].Account {
			return rows[i].Account < rows[j].Account
		}
		return rows[i].Payee < rows[j].Payee
	})

	return rows
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
