package importer

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/GustavoCaso/financeledger/internal/category"
	"github.com/GustavoCaso/financeledger/internal/ledger"
)

const (
	fallbackExpenseCategory = "Miscellaneous"
	fallbackIncomeCategory  = "Other Income"
)

// bankDateLayout is the day-first layout most bank exports use.
const bankDateLayout = "02/01/2006"

// ImportInfo summarises one import run.
type ImportInfo struct {
	TotalImports int
	// ImportWithoutCategory lists the descriptions that got a fallback category.
	ImportWithoutCategory []string
	// Error joins the errors of every skipped record.
	Error error
}

type record struct {
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
}

// Import reads bank statement records from reader and adds them to session as
// transactions. The file extension of filename selects the format:
//
//	.csv   date,description,amount[,category]
//	.json  [{"date": "...", "description": "...", "amount": ..., "category": "..."}]
//
// Dates are YYYY-MM-DD or DD/MM/YYYY. Negative amounts are expenses and
// positive amounts income. Without a category column the matcher is asked,
// and when nothing matches the transaction lands in Miscellaneous or Other
// Income. Invalid records are skipped and reported in ImportInfo.Error.
func Import(filename string, reader io.Reader, session *ledger.Session, matcher *category.Matcher) ImportInfo {
	var records []record
	var errs []error

	switch strings.ToLower(path.Ext(filename)) {
	case ".csv":
		records, errs = readCSV(reader)
	case ".json":
		if err := json.NewDecoder(reader).Decode(&records); err != nil {
			return ImportInfo{Error: fmt.Errorf("invalid JSON file: %w", err)}
		}
	default:
		return ImportInfo{Error: fmt.Errorf("unsupported file format: %s", path.Ext(filename))}
	}

	info := ImportInfo{}
	for i, r := range records {
		uncategorized, err := add(session, matcher, r)
		if err != nil {
			errs = append(errs, fmt.Errorf("record %d: %w", i+1, err))
			continue
		}
		info.TotalImports++
		if uncategorized {
			info.ImportWithoutCategory = append(info.ImportWithoutCategory, r.Description)
		}
	}

	info.Error = errors.Join(errs...)
	return info
}

func readCSV(reader io.Reader) ([]record, []error) {
	r := csv.NewReader(reader)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	records := []record{}
	errs := []error{}
	line := 0
	for {
		fields, err := r.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			errs = append(errs, err)
			break
		}

		if line == 1 && strings.EqualFold(strings.TrimSpace(fields[0]), "date") {
			continue
		}

		if len(fields) < 3 {
			errs = append(errs, fmt.Errorf("line %d: expected date,description,amount", line))
			continue
		}

		amount, err := decimal.NewFromString(strings.TrimSpace(fields[2]))
		if err != nil {
			errs = append(errs, fmt.Errorf("line %d: invalid amount %q", line, fields[2]))
			continue
		}

		rec := record{
			Date:        fields[0],
			Description: fields[1],
			Amount:      amount,
		}
		if len(fields) > 3 {
			rec.Category = fields[3]
		}
		records = append(records, rec)
	}

	return records, errs
}

func add(session *ledger.Session, matcher *category.Matcher, r record) (bool, error) {
	date, err := parseDate(r.Date)
	if err != nil {
		return false, err
	}

	if r.Amount.IsZero() {
		return false, errors.New("amount must not be zero")
	}

	kind := ledger.Income
	if r.Amount.IsNegative() {
		kind = ledger.Expense
	}

	description := strings.TrimSpace(r.Description)

	name := r.Category
	if strings.TrimSpace(name) == "" {
		name = matcher.Match(description)
	}

	categoryName, ok := lookupCategory(session, kind, name)
	if !ok && strings.TrimSpace(r.Category) != "" {
		return false, fmt.Errorf("unknown %s category %q", strings.ToLower(kind.String()), r.Category)
	}

	uncategorized := false
	if !ok {
		uncategorized = true
		categoryName = fallbackExpenseCategory
		if kind == ledger.Income {
			categoryName = fallbackIncomeCategory
		}
	}

	session.AddTransaction(kind, r.Amount.Abs(), categoryName, description, date)
	return uncategorized, nil
}

func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := ledger.ParseDate(value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(bankDateLayout, value); err == nil {
		return ledger.Day(t), nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q", value)
}

func lookupCategory(session *ledger.Session, kind ledger.Kind, name string) (string, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", false
	}
	for _, known := range session.CategoriesFor(kind) {
		if strings.EqualFold(known, name) {
			return known, true
		}
	}
	return "", false
}
