package ledger

import (
	"errors"
	"fmt"
	"strings"
)

type Kind int

const (
	Expense Kind = iota
	Income
)

var ErrUnknownKind = errors.New("unknown transaction kind")

func (k Kind) String() string {
	switch k {
	case Income:
		return "INCOME"
	case Expense:
		return "EXPENSE"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind accepts INCOME or EXPENSE in any letter case.
func ParseKind(s string) (Kind, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "INCOME":
		return Income, nil
	case "EXPENSE":
		return Expense, nil
	default:
		return Expense, fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}
