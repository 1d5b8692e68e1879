package ledger

import (
	"github.com/carson-networks/expense-report/internal/period"
)

// FilterByPeriod returns the transactions dated inside p, preserving input
// order. The result is a fresh slice; the input is never mutated or
// deduplicated, and no transactions in the period is simply an empty result.
func FilterByPeriod(txs []Transaction, p period.Period) []Transaction {
	inPeriod := make([]Transaction, 0)
	for _, tx := range txs {
		if p.Contains(tx.Date) {
			inPeriod = append(inPeriod, tx)
		}
	}

	return inPeriod
}
