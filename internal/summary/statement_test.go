package summary

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/expense-report/internal/ledger"
	"github.com/carson-networks/expense-report/internal/period"
)

func day(date string) time.Time {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return d
}

func window(start, end string) period.Period {
	return period.Period{Start: day(start), End: day(end)}
}

func catTx(date, amount, category, account, payee string) ledger.Transaction {
	return ledger.Transaction{
		Date:       day(date),
		Amount:     decimal.RequireFromString(amount),
		Category:   category,
		Account:    account,
		PayeePayer: payee,
	}
}

// -- BuildStatement tests --

func TestBuildStatement_ComputesBalancesAcrossThePeriod(t *testing.T) {
	all := []ledger.Transaction{
		catTx("2024-12-31", "200", "", "", ""),
		catTx("2025-01-10", "100", "Income", "", ""),
		catTx("2025-01-11", "-30", "Expense", "", ""),
	}

	statement := BuildStatement(all, period.PriorMonth(day("2025-02-05")))

	assert.True(t, statement.OpeningBalance.Equal(decimal.NewFromInt(200)))
	assert.True(t, statement.ClosingBalance.Equal(decimal.NewFromInt(270)))
	assert.True(t, statement.TotalReceipts.Equal(decimal.NewFromInt(100)))
	assert.True(t, statement.TotalPayments.Equal(decimal.NewFromInt(30)))

	require.Len(t, statement.Categories, 2)
	assert.Equal(t, "Expense", statement.Categories[0].Category)
	assert.True(t, statement.Categories[0].Payments.Equal(decimal.NewFromInt(30)))
	assert.True(t, statement.Categories[0].Net.Equal(decimal.NewFromInt(-30)))
	assert.Equal(t, "Income", statement.Categories[1].Category)
	assert.True(t, statement.Categories[1].Receipts.Equal(decimal.NewFromInt(100)))
	assert.True(t, statement.Categories[1].Net.Equal(decimal.NewFromInt(100)))

	require.Len(t, statement.Details, 1)
	require.Len(t, statement.Details["Expense"], 1)
	detail := statement.Details["Expense"][0]
	assert.Equal(t, Unspecified, detail.Payee)
	assert.Equal(t, Unspecified, detail.Account)
	assert.True(t, detail.Amount.Equal(decimal.NewFromInt(30)))

	require.Len(t, statement.AccountBalances, 1)
	balance := statement.AccountBalances[0]
	assert.Equal(t, Unspecified, balance.Account)
	assert.True(t, balance.Opening.Equal(decimal.NewFromInt(200)))
	assert.True(t, balance.Receipts.Equal(decimal.NewFromInt(100)))
	assert.True(t, balance.Payments.Equal(decimal.NewFromInt(30)))
	assert.True(t, balance.Closing.Equal(decimal.NewFromInt(270)))
}

func TestBuildStatement_ClosingEqualsOpeningPlusCategoryNets(t *testing.T) {
	all := []ledger.Transaction{
		catTx("2025-07-02", "500", "Income", "Checking", ""),
		catTx("2025-08-04", "80", "Income", "Checking", ""),
		catTx("2025-08-15", "-200", "Rent", "Checking", "Landlord"),
	}

	statement := BuildStatement(all, window("2025-08-01", "2025-09-01"))

	assert.True(t, statement.OpeningBalance.Equal(decimal.NewFromInt(500)))
	assert.True(t, statement.ClosingBalance.Equal(decimal.NewFromInt(380)))

	reconciled := statement.OpeningBalance
	for _, category := range statement.Categories {
		reconciled = reconciled.Add(category.Net)
	}
	assert.True(t, statement.ClosingBalance.Equal(reconciled))
}

func TestBuildStatement_SortsCategoriesBytewise(t *testing.T) {
	all := []ledger.Transaction{
		catTx("2025-08-01", "-5", "apple", "", ""),
		catTx("2025-08-02", "-5", "Banana", "", ""),
		catTx("2025-08-03", "-5", "Utilities", "", ""),
	}

	statement := BuildStatement(all, window("2025-08-01", "2025-09-01"))

	require.Len(t, statement.Categories, 3)
	assert.Equal(t, "Banana", statement.Categories[0].Category)
	assert.Equal(t, "Utilities", statement.Categories[1].Category)
	assert.Equal(t, "apple", statement.Categories[2].Category)
}

func TestBuildStatement_IgnoresCategoriesWithoutPeriodActivity(t *testing.T) {
	all := []ledger.Transaction{
		catTx("2025-07-20", "-60", "Groceries", "Checking", ""),
		catTx("2025-08-05", "-40", "Rent", "Checking", ""),
	}

	statement := BuildStatement(all, window("2025-08-01", "2025-09-01"))

	require.Len(t, statement.Categories, 1)
	assert.Equal(t, "Rent", statement.Categories[0].Category)
	assert.True(t, statement.OpeningBalance.Equal(decimal.NewFromInt(-60)))
}

func TestBuildStatement_BlankCategoryFallsBack(t *testing.T) {
	all := []ledger.Transaction{
		catTx("2025-08-05", "-15", "", "Checking", "Corner Shop"),
	}

	statement := BuildStatement(all, window("2025-08-01", "2025-09-01"))

	require.Len(t, statement.Categories, 1)
	assert.Equal(t, Uncategorised, statement.Categories[0].Category)
	require.Len(t, statement.Details[Uncategorised], 1)
	assert.Equal(t, "Corner Shop", statement.Details[Uncategorised][0].Payee)
}

func TestBuildStatement_KeepsAccountsWithOnlyHistory(t *testing.T) {
	all := []ledger.Transaction{
		catTx("2024-11-01", "150", "Income", "Old Savings", ""),
		catTx("2025-08-05", "-20", "Rent", "Checking", ""),
	}

	statement := BuildStatement(all, window("2025-08-01", "2025-09-01"))

	require.Len(t, statement.AccountBalances, 2)
	assert.Equal(t, "Checking", statement.AccountBalances[0].Account)
	assert.True(t, statement.AccountBalances[0].Opening.Equal(decimal.Zero))
	assert.True(t, statement.AccountBalances[0].Closing.Equal(decimal.NewFromInt(-20)))
	assert.Equal(t, "Old Savings", statement.AccountBalances[1].Account)
	assert.True(t, statement.AccountBalances[1].Opening.Equal(decimal.NewFromInt(150)))
	assert.True(t, statement.AccountBalances[1].Closing.Equal(decimal.NewFromInt(150)))
}

func TestBuildStatement_DetailRowsCoverPaymentsOnly(t *testing.T) {
	withDescription := catTx("2025-08-03", "-12.50", "Groceries", "Checking", "Acme")
	withDescription.Description = "Weekly shop"
	payeeOnly := catTx("2025-08-04", "-7", "Groceries", "Checking", "Acme")
	receipt := catTx("2025-08-05", "40", "Groceries", "Checking", "Acme")

	statement := BuildStatement(
		[]ledger.Transaction{withDescription, payeeOnly, receipt},
		window("2025-08-01", "2025-09-01"),
	)

	rows := statement.Details["Groceries"]
	require.Len(t, rows, 2)
	assert.Equal(t, "Weekly shop", rows[0].Description)
	assert.True(t, rows[0].Amount.Equal(decimal.RequireFromString("12.5")))
	assert.Equal(t, "Acme", rows[1].Description)
	assert.Equal(t, "Acme", rows[1].Payee)
}

func TestBuildStatement_EmptyPeriod(t *testing.T) {
	all := []ledger.Transaction{
		catTx("2025-06-10", "300", "Income", "Checking", ""),
	}

	statement := BuildStatement(all, window("2025-08-01", "2025-09-01"))

	assert.True(t, statement.OpeningBalance.Equal(decimal.NewFromInt(300)))
	assert.True(t, statement.ClosingBalance.Equal(decimal.NewFromInt(300)))
	assert.True(t, statement.TotalReceipts.Equal(decimal.Zero))
	assert.True(t, statement.TotalPayments.Equal(decimal.Zero))
	assert.Empty(t, statement.Categories)
	assert.Empty(t, statement.Details)

	require.Len(t, statement.AccountBalances, 1)
	assert.True(t, statement.AccountBalances[0].Opening.Equal(statement.AccountBalances[0].Closing))
}

func TestBuildStatement_EmptyLedger(t *testing.T) {
	statement := BuildStatement(nil, window("2025-08-01", "2025-09-01"))

	assert.True(t, statement.OpeningBalance.Equal(decimal.Zero))
	assert.True(t, statement.ClosingBalance.Equal(decimal.Zero))
	assert.Empty(t, statement.Categories)
	assert.Empty(t, statement.Details)
	assert.Empty(t, statement.AccountBalances)
}
