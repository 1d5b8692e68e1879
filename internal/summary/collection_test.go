package summary

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/expense-report/internal/ledger"
)

func tx(date string, amount string, account string, payee string) ledger.Transaction {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return ledger.Transaction{
		Date:       day,
		Amount:     decimal.RequireFromString(amount),
		Account:    account,
		PayeePayer: payee,
	}
}

// -- BuildCollectionSummary tests --

func TestBuildCollectionSummary_GroupsByAccountAndPayee(t *testing.T) {
	rows := BuildCollectionSummary([]ledger.Transaction{
		tx("2025-01-05", "100", "A", "John"),
		tx("2025-01-06", "-25", "A", "John"),
		tx("2025-01-07", "-40", "B", "Anna"),
	})

	require.Len(t, rows, 2)

	assert.Equal(t, "A", rows[0].Account)
	assert.Equal(t, "John", rows[0].Payee)
	assert.True(t, rows[0].Receipts.Equal(decimal.NewFromInt(100)))
	assert.True(t, rows[0].Payments.Equal(decimal.NewFromInt(25)))
	assert.True(t, rows[0].Net.Equal(decimal.NewFromInt(75)))

	assert.Equal(t, "B", rows[1].Account)
	assert.Equal(t, "Anna", rows[1].Payee)
	assert.True(t, rows[1].Receipts.Equal(decimal.Zero))
	assert.True(t, rows[1].Payments.Equal(decimal.NewFromInt(40)))
	assert.True(t, rows[1].Net.Equal(decimal.NewFromInt(-40)))
}

func TestBuildCollectionSummary_NetCombinesReceiptsAndPayments(t *testing.T) {
	rows := BuildCollectionSummary([]ledger.Transaction{
		tx("2025-08-03", "100", "Checking", "Acme"),
		tx("2025-08-09", "-40", "Checking", "Acme"),
	})

	require.Len(t, rows, 1)
	assert.True(t, rows[0].Receipts.Equal(decimal.NewFromInt(100)))
	assert.True(t, rows[0].Payments.Equal(decimal.NewFromInt(40)))
	assert.True(t, rows[0].Net.Equal(decimal.NewFromInt(60)))
}

func TestBuildCollectionSummary_ZeroAmountCountsAsReceipt(t *testing.T) {
	rows := BuildCollectionSummary([]ledger.Transaction{
		tx("2025-08-03", "0", "Checking", "Acme"),
	})

	require.Len(t, rows, 1)
	assert.True(t, rows[0].Receipts.Equal(decimal.Zero))
	assert.True(t, rows[0].Payments.Equal(decimal.Zero))
	assert.True(t, rows[0].Net.Equal(decimal.Zero))
}

func TestBuildCollectionSummary_BlankFieldsShareOneGroup(t *testing.T) {
	rows := BuildCollectionSummary([]ledger.Transaction{
		tx("2025-08-03", "10", "", ""),
		tx("2025-08-04", "-4", "", ""),
	})

	require.Len(t, rows, 1)
	assert.Equal(t, Unspecified, rows[0].Account)
	assert.Equal(t, Unspecified, rows[0].Payee)
	assert.True(t, rows[0].Net.Equal(decimal.NewFromInt(6)))
}

func TestBuildCollectionSummary_SortsCaseInsensitively(t *testing.T) {
	rows := BuildCollectionSummary([]ledger.Transaction{
		tx("2025-08-01", "1", "savings", "zed"),
		tx("2025-08-02", "1", "Checking", "alice"),
		tx("2025-08-03", "1", "checking", "Bob"),
		tx("2025-08-04", "1", "Savings", "Amy"),
	})

	require.Len(t, rows, 4)
	assert.Equal(t, "alice", rows[0].Payee)
	assert.Equal(t, "Bob", rows[1].Payee)
	assert.Equal(t, "Amy", rows[2].Payee)
	assert.Equal(t, "zed", rows[3].Payee)
}

func TestBuildCollectionSummary_KeepsZeroNetRows(t *testing.T) {
	rows := BuildCollectionSummary([]ledger.Transaction{
		tx("2025-08-03", "50", "Checking", "Acme"),
		tx("2025-08-09", "-50", "Checking", "Acme"),
	})

	require.Len(t, rows, 1)
	assert.True(t, rows[0].Net.Equal(decimal.Zero))
}

func TestBuildCollectionSummary_EmptyInput(t *testing.T) {
	rows := BuildCollectionSummary(nil)

	assert.Empty(t, rows)
}

func TestBuildCollectionSummary_Deterministic(t *testing.T) {
	txs := []ledger.Transaction{
		tx("2025-08-01", "12.34", "Checking", "Acme"),
		tx("2025-08-02", "-5.67", "Savings", "Globex"),
		tx("2025-08-03", "8.90", "Checking", "Initech"),
	}

	assert.Equal(t, BuildCollectionSummary(txs), BuildCollectionSummary(txs))
}
