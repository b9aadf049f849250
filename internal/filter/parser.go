package filter

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/GustavoCaso/financeledger/internal/ledger"
)

// Params are the raw filter values as typed on the command line. Empty
// values are not set.
type Params struct {
	Description string
	AmountMin   string
	AmountMax   string
	DateFrom    string
	DateTo      string
	Sort        string
}

// parseAmount converts an amount string to a decimal.
// Examples: "10.50" -> 10.50, "5" -> 5
func parseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, fmt.Errorf("amount cannot be empty")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount format: %w", err)
	}

	return d, nil
}

// parseSort parses a sort string like "date:desc" into SortOptions.
func parseSort(s string) (*SortOptions, error) {
	if s == "" {
		return nil, fmt.Errorf("sort string cannot be empty")
	}

	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid sort format, expected field:direction")
	}

	field := SortField(parts[0])
	direction := SortDirection(parts[1])

	if field != SortByDate && field != SortByAmount {
		return nil, fmt.Errorf("invalid sort field: %s (must be date or amount)", field)
	}

	if direction != SortAsc && direction != SortDesc {
		return nil, fmt.Errorf("invalid sort direction: %s (must be asc or desc)", direction)
	}

	return &SortOptions{
		Field:     field,
		Direction: direction,
	}, nil
}

// ParseTransactionFilters turns params into filter and sort options.
func ParseTransactionFilters(params Params) (*TransactionFilter, *SortOptions, error) {
	filter := &TransactionFilter{}
	sort := DefaultSortOptions()

	if desc := strings.TrimSpace(params.Description); desc != "" {
		filter.Description = &desc
	}

	if params.AmountMin != "" {
		val, err := parseAmount(params.AmountMin)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid amount_min: %w", err)
		}
		filter.AmountMin = &val
	}

	if params.AmountMax != "" {
		val, err := parseAmount(params.AmountMax)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid amount_max: %w", err)
		}
		filter.AmountMax = &val
	}

	if filter.AmountMin != nil && filter.AmountMax != nil && filter.AmountMin.GreaterThan(*filter.AmountMax) {
		return nil, nil, fmt.Errorf("amount_min %s is greater than amount_max %s", filter.AmountMin, filter.AmountMax)
	}

	if params.DateFrom != "" {
		val, err := ledger.ParseDate(params.DateFrom)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid date_from: %w", err)
		}
		filter.DateFrom = &val
	}

	if params.DateTo != "" {
		val, err := ledger.ParseDate(params.DateTo)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid date_to: %w", err)
		}
		filter.DateTo = &val
	}

	if params.Sort != "" {
		parsed, err := parseSort(params.Sort)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid sort: %w", err)
		}
		sort = parsed
	}

	return filter, sort, nil
}
