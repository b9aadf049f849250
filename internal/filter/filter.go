package filter

import (
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/GustavoCaso/financeledger/internal/ledger"
)

// TransactionFilter holds filter criteria for transaction listings.
// All fields are pointers to distinguish "not set" from zero values.
type TransactionFilter struct {
	Description *string          // Case-insensitive substring of the description
	AmountMin   *decimal.Decimal // Minimum amount (inclusive)
	AmountMax   *decimal.Decimal // Maximum amount (inclusive)
	DateFrom    *time.Time       // Start date (inclusive)
	DateTo      *time.Time       // End date (inclusive)
}

// IsEmpty reports whether no criteria are set.
func (f *TransactionFilter) IsEmpty() bool {
	return f.Description == nil && f.AmountMin == nil && f.AmountMax == nil && f.DateFrom == nil && f.DateTo == nil
}

func (f *TransactionFilter) matches(tx *ledger.Transaction) bool {
	if f.Description != nil && !strings.Contains(strings.ToLower(tx.Description), strings.ToLower(*f.Description)) {
		return false
	}
	if f.AmountMin != nil && tx.Amount.LessThan(*f.AmountMin) {
		return false
	}
	if f.AmountMax != nil && tx.Amount.GreaterThan(*f.AmountMax) {
		return false
	}
	if f.DateFrom != nil && tx.Date.Before(*f.DateFrom) {
		return false
	}
	if f.DateTo != nil && tx.Date.After(*f.DateTo) {
		return false
	}
	return true
}

// Apply returns the transactions matching every criterion, in input order.
func (f *TransactionFilter) Apply(txs []*ledger.Transaction) []*ledger.Transaction {
	matched := make([]*ledger.Transaction, 0, len(txs))
	for _, tx := range txs {
		if f.matches(tx) {
			matched = append(matched, tx)
		}
	}
	return matched
}

// SortField represents a field that can be sorted on.
type SortField string

const (
	SortByDate   SortField = "date"
	SortByAmount SortField = "amount"
)

// SortDirection represents sort order.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SortOptions holds sorting preferences.
type SortOptions struct {
	Field     SortField
	Direction SortDirection
}

// DefaultSortOptions returns the default sort (date descending, newest first).
func DefaultSortOptions() *SortOptions {
	return &SortOptions{
		Field:     SortByDate,
		Direction: SortDesc,
	}
}

// String returns the sort options as a string (e.g., "date:desc").
func (s *SortOptions) String() string {
	return string(s.Field) + ":" + string(s.Direction)
}

// Sort returns a sorted copy of txs. Equal keys keep their input order.
func (s *SortOptions) Sort(txs []*ledger.Transaction) []*ledger.Transaction {
	if s.Field == SortByDate && s.Direction == SortDesc {
		return ledger.SortByDateDesc(txs)
	}

	sorted := slices.Clone(txs)
	slices.SortStableFunc(sorted, func(a, b *ledger.Transaction) int {
		var cmp int
		switch s.Field {
		case SortByAmount:
			cmp = a.Amount.Cmp(b.Amount)
		default:
			cmp = a.Date.Compare(b.Date)
		}
		if s.Direction == SortDesc {
			return -cmp
		}
		return cmp
	})
	return sorted
}
