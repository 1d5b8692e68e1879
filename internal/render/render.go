// Package render turns summary values into the plain-text report layout.
package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/carson-networks/expense-report/internal/period"
	"github.com/carson-networks/expense-report/internal/summary"
)

// CollectionSummary renders the account/payee roll-up as an aligned table.
func CollectionSummary(rows []summary.CollectionRow) string {
	headers := []string{"Account", "Payee/Payer", "Receipts", "Payments", "Net"}
	data := make([][]string, 0, len(rows))
	for _, row := range rows {
		data = append(data, []string{
			row.Account,
			row.Payee,
			Money(row.Receipts),
			Money(row.Payments),
			Money(row.Net),
		})
	}
	return renderTable(headers, data)
}

// StatementOfAccounts renders the balance header, the per-category table,
// and, when present, the detailed expense listing and per-account balances.
func StatementOfAccounts(statement summary.Statement) string {
	lines := []string{
		"Statement of Accounts",
		"Period: " + statement.Period.String(),
		"Opening Balance: " + Money(statement.OpeningBalance),
		"Closing Balance: " + Money(statement.ClosingBalance),
		"Total Receipts: " + Money(statement.TotalReceipts),
		"Total Payments: " + Money(statement.TotalPayments),
	}

	categoryRows := make([][]string, 0, len(statement.Categories))
	for _, category := range statement.Categories {
		categoryRows = append(categoryRows, []string{
			category.Category,
			Money(category.Receipts),
			Money(category.Payments),
			Money(category.Net),
		})
	}
	lines = append(lines, "", renderTable([]string{"Category", "Receipts", "Payments", "Net"}, categoryRows))

	if len(statement.Details) > 0 {
		lines = append(lines, "", "Detailed Expenses")
		categories := make([]string, 0, len(statement.Details))
		for category := range statement.Details {
			categories = append(categories, category)
		}
		sort.Strings(categories)
		for _, category := range categories {
			details := statement.Details[category]
			if len(details) == 0 {
				continue
			}
			lines = append(lines, category+":")
			for _, detail := range details {
				lines = append(lines, fmt.Sprintf("  - %s | %s | Account: %s | Amount: %s",
					detail.Date.Format(period.DateLayout),
					detail.Description,
					detail.Account,
					Money(detail.Amount)))
			}
		}
	}

	if len(statement.AccountBalances) > 0 {
		balanceRows := make([][]string, 0, len(statement.AccountBalances))
		for _, balance := range statement.AccountBalances {
			balanceRows = append(balanceRows, []string{
				balance.Account,
				Money(balance.Opening),
				Money(balance.Receipts),
				Money(balance.Payments),
				Money(balance.Closing),
			})
		}
		lines = append(lines, "", "Account Balances",
			renderTable([]string{"Account", "Opening", "Receipts", "Payments", "Closing"}, balanceRows))
	}

	return strings.Join(lines, "\n")
}

// Report assembles the full two-section report. The returned text always
// ends with exactly one trailing newline.
func Report(rows []summary.CollectionRow, statement summary.Statement) string {
	return "Collection Summary\n" + CollectionSummary(rows) + "\n\n" + StatementOfAccounts(statement) + "\n"
}
