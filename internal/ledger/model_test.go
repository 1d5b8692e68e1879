package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransaction_Direction(t *testing.T) {
	receipt := Transaction{Amount: decimal.RequireFromString("100")}
	payment := Transaction{Amount: decimal.RequireFromString("-40")}
	zero := Transaction{Amount: decimal.Zero}

	assert.True(t, receipt.IsReceipt())
	assert.False(t, receipt.IsPayment())

	assert.True(t, payment.IsPayment())
	assert.False(t, payment.IsReceipt())

	assert.True(t, zero.IsReceipt(), "zero amounts are receipts")
	assert.False(t, zero.IsPayment())
}
