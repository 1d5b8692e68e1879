package summary

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/expense-report/internal/ledger"
	"github.com/carson-networks/expense-report/internal/period"
)

// BuildStatement computes the Statement of Accounts for p from the complete
// ledger. The opening balance is recomputed from scratch as the signed sum of
// everything dated before p.Start; the closing balance adds a single direct
// sum of the in-period amounts on top of it, so closing always equals opening
// plus the sum of the category nets with no rounding drift between the two
// paths.
//
// Categories are sorted lexicographically and only carry a row when the
// period contains at least one of their transactions. Account balances cover
// every account seen either before or during the period.
func BuildStatement(all []ledger.Transaction, p period.Period) Statement {
	opening := decimal.Zero
	accounts := make(map[string]*AccountBalance)
	for _, tx := range all {
		if !tx.Date.Before(p.Start) {
			continue
		}
		opening = opening.Add(tx.Amount)
		balance := accountFor(accounts, orDefault(tx.Account, Unspecified))
		balance.Opening = balance.Opening.Add(tx.Amount)
	}

	periodNet := decimal.Zero
	totalReceipts := decimal.Zero
	totalPayments := decimal.Zero
	categories := make(map[string]*CategoryTotal)
	details := make(map[string][]ExpenseDetail)

	for _, tx := range ledger.FilterByPeriod(all, p) {
		periodNet = periodNet.Add(tx.Amount)

		category := orDefault(tx.Category, Uncategorised)
		account := orDefault(tx.Account, Unspecified)
		total, ok := categories[category]
		if !ok {
			total = &CategoryTotal{
				Category: category,
				Receipts: decimal.Zero,
				Payments: decimal.Zero,
			}
			categories[category] = total
		}
		balance := accountFor(accounts, account)

		if tx.IsReceipt() {
			total.Receipts = total.Receipts.Add(tx.Amount)
			totalReceipts = totalReceipts.Add(tx.Amount)
			balance.Receipts = balance.Receipts.Add(tx.Amount)
		} else {
			amount := tx.Amount.Abs()
			total.Payments = total.Payments.Add(amount)
			totalPayments = totalPayments.Add(amount)
			balance.Payments = balance.Payments.Add(amount)
			payee := orDefault(tx.PayeePayer, Unspecified)
			details[category] = append(details[category], ExpenseDetail{
				Date:        tx.Date,
				Description: orDefault(tx.Description, payee),
				Payee:       payee,
				Account:     account,
				Amount:      amount,
			})
		}
	}

	categoryRows := make([]CategoryTotal, 0, len(categories))
	for _, total := range categories {
		total.Net = total.Receipts.Sub(total.Payments)
		categoryRows = append(categoryRows, *total)
	}
	sort.Slice(categoryRows, func(i, j int) bool {
		return categoryRows[i].Category < categoryRows[j].Category
	})

	balanceRows := make([]AccountBalance, 0, len(accounts))
	for _, balance := range accounts {
		balance.Closing = balance.Opening.Add(balance.Receipts).Sub(balance.Payments)
		balanceRows = append(balanceRows, *balance)
	}
	sort.Slice(balanceRows, func(i, j int) bool {
		return balanceRows[i].Account < balanceRows[j].Account
	})

	return Statement{
		Period:          p,
		OpeningBalance:  opening,
		ClosingBalance:  opening.Add(periodNet),
		TotalReceipts:   totalReceipts,
		TotalPayments:   totalPayments,
		Categories:      categoryRows,
		Details:         details,
		AccountBalances: balanceRows,
	}
}

func accountFor(accounts map[string]*AccountBalance, name string) *AccountBalance {
	balance, ok := accounts[name]
	if !ok {
		balance = &AccountBalance{
			Account:  name,
			Opening:  decimal.Zero,
			Receipts: decimal.Zero,
			Payments: decimal.Zero,
		}
		accounts[name] = balance
	}
	return balance
}
