package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one money movement. Amounts are always positive; Kind
// decides the direction.
type Transaction struct {
	id          int
	Kind        Kind
	Amount      decimal.Decimal
	Category    string
	Description string
	Date        time.Time
}

// NewTransaction builds a transaction with a known ID. Sessions allocate IDs
// through AddTransaction; this constructor is for decoders restoring stored
// records.
func NewTransaction(id int, kind Kind, amount decimal.Decimal, category, description string, date time.Time) *Transaction {
	return &Transaction{
		id:          id,
		Kind:        kind,
		Amount:      amount,
		Category:    category,
		Description: description,
		Date:        Day(date),
	}
}

func (t *Transaction) ID() int {
	return t.id
}

// Signed returns the amount with income positive and expenses negative.
func (t *Transaction) Signed() decimal.Decimal {
	if t.Kind == Expense {
		return t.Amount.Neg()
	}
	return t.Amount
}
