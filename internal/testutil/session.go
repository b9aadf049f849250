package testutil

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/GustavoCaso/financeledger/internal/clock"
	"github.com/GustavoCaso/financeledger/internal/ledger"
)

// Now is the fixed instant used by TestSession.
var Now = time.Date(2024, time.January, 15, 10, 0, 0, 0, time.UTC)

func TestSession(t *testing.T) (*ledger.Session, *clock.Mock) {
	t.Helper()

	c := &clock.Mock{FixedNow: Now}
	return ledger.NewSession(c), c
}

func Amount(t *testing.T, s string) decimal.Decimal {
	t.Helper()

	v, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("invalid amount %q: %v", s, err)
	}
	return v
}
