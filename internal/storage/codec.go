package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/GustavoCaso/financeledger/internal/ledger"
)

// Format selects how free text fields are written.
type Format string

const (
	// FormatQuoted quotes fields the RFC 4180 way, so commas and quotes in
	// categories, names and descriptions survive a round trip.
	FormatQuoted Format = "quoted"
	// FormatLegacy joins fields with plain commas and swaps commas for
	// semicolons in goal descriptions. Files stay byte compatible with data
	// written by earlier versions; commas in free text are lost.
	FormatLegacy Format = "legacy"
)

func (f Format) Valid() bool {
	return f == FormatQuoted || f == FormatLegacy
}

const (
	TransactionsHeader = "ID,Type,Amount,Category,Description,Date"
	BudgetsHeader      = "Month,Category,Amount"
	GoalsHeader        = "ID,Name,TargetAmount,CurrentAmount,StartDate,TargetDate,Description"
	CategoriesHeader   = "Name"

	transactionFields = 6
	budgetFields      = 3
	goalFields        = 6
	amountPlaces      = 2
)

var ErrTooFewFields = errors.New("too few fields")

// BudgetEntry is one decoded line of the budgets file.
type BudgetEntry struct {
	Month    ledger.YearMonth
	Category string
	Amount   decimal.Decimal
}

func EncodeTransaction(tx *ledger.Transaction, format Format) string {
	return joinFields([]string{
		strconv.Itoa(tx.ID()),
		tx.Kind.String(),
		tx.Amount.StringFixed(amountPlaces),
		tx.Category,
		tx.Description,
		ledger.FormatDate(tx.Date),
	}, format)
}

func DecodeTransaction(line string, format Format) (*ledger.Transaction, error) {
	fields, err := splitFields(line, format, transactionFields)
	if err != nil {
		return nil, err
	}

	id, err := parseID(fields[0])
	if err != nil {
		return nil, err
	}

	kind, err := ledger.ParseKind(fields[1])
	if err != nil {
		return nil, err
	}

	amount, err := decimal.NewFromString(fields[2])
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", fields[2], err)
	}

	date, err := ledger.ParseDate(fields[5])
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", fields[5], err)
	}

	return ledger.NewTransaction(id, kind, amount, fields[3], fields[4], date), nil
}

// EncodeBudget returns one line per budgeted category, sorted by category.
func EncodeBudget(budget *ledger.Budget, format Format) []string {
	month := budget.Month().String()
	lines := make([]string, 0, budget.Len())
	for _, category := range budget.Categories() {
		lines = append(lines, joinFields([]string{
			month,
			category,
			budget.Limit(category).StringFixed(amountPlaces),
		}, format))
	}
	return lines
}

func DecodeBudgetEntry(line string, format Format) (BudgetEntry, error) {
	fields, err := splitFields(line, format, budgetFields)
	if err != nil {
		return BudgetEntry{}, err
	}

	month, err := ledger.ParseYearMonth(fields[0])
	if err != nil {
		return BudgetEntry{}, err
	}

	amount, err := decimal.NewFromString(fields[2])
	if err != nil {
		return BudgetEntry{}, fmt.Errorf("invalid amount %q: %w", fields[2], err)
	}

	return BudgetEntry{Month: month, Category: fields[1], Amount: amount}, nil
}

func EncodeGoal(goal *ledger.SavingsGoal, format Format) string {
	description := goal.Description
	if format == FormatLegacy {
		description = strings.ReplaceAll(description, ",", ";")
	}

	return joinFields([]string{
		strconv.Itoa(goal.ID()),
		goal.Name,
		goal.TargetAmount.StringFixed(amountPlaces),
		goal.CurrentAmount().StringFixed(amountPlaces),
		ledger.FormatDate(goal.StartDate),
		ledger.FormatDate(goal.TargetDate),
		description,
	}, format)
}

func DecodeGoal(line string, format Format) (*ledger.SavingsGoal, error) {
	fields, err := splitFields(line, format, goalFields)
	if err != nil {
		return nil, err
	}

	id, err := parseID(fields[0])
	if err != nil {
		return nil, err
	}

	target, err := decimal.NewFromString(fields[2])
	if err != nil {
		return nil, fmt.Errorf("invalid target amount %q: %w", fields[2], err)
	}

	current, err := decimal.NewFromString(fields[3])
	if err != nil {
		return nil, fmt.Errorf("invalid current amount %q: %w", fields[3], err)
	}

	startDate, err := ledger.ParseDate(fields[4])
	if err != nil {
		return nil, fmt.Errorf("invalid start date %q: %w", fields[4], err)
	}

	targetDate, err := ledger.ParseDate(fields[5])
	if err != nil {
		return nil, fmt.Errorf("invalid target date %q: %w", fields[5], err)
	}

	description := ""
	if len(fields) > goalFields {
		description = fields[goalFields]
		if format == FormatLegacy {
			description = strings.ReplaceAll(description, ";", ",")
		}
	}

	goal := ledger.NewSavingsGoal(id, fields[1], target, startDate, targetDate, description)
	goal.SetCurrentAmount(current)
	return goal, nil
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", s, err)
	}
	if id < 1 {
		return 0, fmt.Errorf("invalid id %d: must be positive", id)
	}
	return id, nil
}

// Records are line oriented, so line breaks inside free text become spaces.
var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

func joinFields(fields []string, format Format) string {
	for i, f := range fields {
		fields[i] = lineBreaks.Replace(f)
	}

	if format == FormatLegacy {
		return strings.Join(fields, ",")
	}

	var b strings.Builder
	w := csv.NewWriter(&b)
	// Writes to a strings.Builder never fail.
	_ = w.Write(fields)
	w.Flush()
	return strings.TrimSuffix(b.String(), "\n")
}

// EncodeCategory writes a custom category name as a single field line.
func EncodeCategory(name string, format Format) string {
	return joinFields([]string{name}, format)
}

// DecodeCategory reads a custom category line. Legacy lines are taken whole,
// so names containing commas survive.
func DecodeCategory(line string, format Format) (string, error) {
	name := line
	if format != FormatLegacy {
		fields, err := splitFields(line, format, 1)
		if err != nil {
			return "", err
		}
		name = fields[0]
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("empty category name")
	}
	return name, nil
}

func splitFields(line string, format Format, minFields int) ([]string, error) {
	var fields []string

	if format == FormatLegacy {
		fields = strings.Split(line, ",")
	} else {
		r := csv.NewReader(strings.NewReader(line))
		r.FieldsPerRecord = -1
		r.LazyQuotes = true
		record, err := r.Read()
		if err != nil {
			return nil, fmt.Errorf("malformed record: %w", err)
		}
		fields = record
	}

	if len(fields) < minFields {
		return nil, fmt.Errorf("%w: got %d, want at least %d", ErrTooFewFields, len(fields), minFields)
	}
	return fields, nil
}
