package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one row of an ExpenseManager export, immutable once parsed.
// The sign of Amount carries the direction: zero and positive amounts are
// receipts, negative amounts are payments.
type Transaction struct {
	Date           time.Time
	Amount         decimal.Decimal
	Category       string
	Subcategory    string
	PaymentMethod  string
	Description    string
	RefCheckNo     string
	PayeePayer     string
	Status         string
	ReceiptPicture string
	Account        string
	Tag            string
	Tax            string
	Quantity       string
	SplitTotal     string
	RowID          *int64
	TypeID         string
}

// IsReceipt reports whether the transaction represents money received.
// Zero-amount rows count as receipts and contribute zero to every aggregate.
func (t Transaction) IsReceipt() bool {
	return !t.Amount.IsNegative()
}

// IsPayment reports whether the transaction represents money paid out.
func (t Transaction) IsPayment() bool {
	return t.Amount.IsNegative()
}
