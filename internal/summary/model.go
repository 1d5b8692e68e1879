package summary

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/expense-report/internal/period"
)

// Placeholder keys substituted for empty grouping values.
const (
	Unspecified   = "Unspecified"
	Uncategorised = "Uncategorised"
)

// CollectionRow aggregates one (account, payee) group over the reporting
// period. Net is always Receipts minus Payments.
type CollectionRow struct {
	Account  string
	Payee    string
	Receipts decimal.Decimal
	Payments decimal.Decimal
	Net      decimal.Decimal
}

// CategoryTotal holds one category's in-period activity.
type CategoryTotal struct {
	Category string
	Receipts decimal.Decimal
	Payments decimal.Decimal
	Net      decimal.Decimal
}

// ExpenseDetail is one payment line in the detailed expenses listing.
type ExpenseDetail struct {
	Date        time.Time
	Description string
	Payee       string
	Account     string
	Amount      decimal.Decimal
}

// AccountBalance tracks one account across the period boundary. Closing is
// always Opening plus Receipts minus Payments.
type AccountBalance struct {
	Account  string
	Opening  decimal.Decimal
	Receipts decimal.Decimal
	Payments decimal.Decimal
	Closing  decimal.Decimal
}

// Statement is the Statement of Accounts for one reporting period. Details
// maps each category to its payment lines in ledger order.
type Statement struct {
	Period          period.Period
	OpeningBalance  decimal.Decimal
	ClosingBalance  decimal.Decimal
	TotalReceipts   decimal.Decimal
	TotalPayments   decimal.Decimal
	Categories      []CategoryTotal
	Details         map[string][]ExpenseDetail
	AccountBalances []AccountBalance
}
