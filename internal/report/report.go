package report

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/GustavoCaso/financeledger/internal/ledger"
)

type BudgetStatus string

const (
	BudgetStatusUnder    BudgetStatus = "under"
	BudgetStatusNear     BudgetStatus = "near"
	BudgetStatusOver     BudgetStatus = "over"
	BudgetStatusNoBudget BudgetStatus = "no_budget"
)

// DefaultNearLimit is the share of a budget at which spending counts as near
// the limit.
const DefaultNearLimit = 0.8

const percentageOfTotal = 100

var hundred = decimal.NewFromInt(percentageOfTotal)

type BudgetInfo struct {
	Category       string
	Amount         decimal.Decimal // Budgeted amount (0 if no budget)
	Spent          decimal.Decimal
	Remaining      decimal.Decimal // Budgeted minus spent, can be negative
	PercentageUsed float64
	Status         BudgetStatus
}

type Category struct {
	Name              string
	Amount            decimal.Decimal
	PercentageOfTotal float64
}

type Summary struct {
	Income   decimal.Decimal
	Expenses decimal.Decimal
	Net      decimal.Decimal
}

func (s Summary) IsDeficit() bool {
	return s.Net.IsNegative()
}

type Monthly struct {
	Title      string
	Month      ledger.YearMonth
	Summary    Summary
	Categories []Category
	// Budget is only filled when the active budget belongs to Month.
	Budget    []BudgetInfo
	HasBudget bool
}

type Yearly struct {
	Title          string
	Year           int
	Summary        Summary
	SavingsRate    float64
	HasSavingsRate bool
	// Trends has one row per month with any activity, January first.
	Trends     []ledger.MonthTotal
	Categories []Category
}

type Quick struct {
	Month   ledger.YearMonth
	Summary Summary
}

type Statistics struct {
	Transactions     int
	Income           int
	Expenses         int
	Goals            int
	BudgetCategories int
	FirstDate        time.Time
	LastDate         time.Time
	HasDateRange     bool
}

func summarize(txs []*ledger.Transaction) Summary {
	return Summary{
		Income:   ledger.TotalIncome(txs),
		Expenses: ledger.TotalExpenses(txs),
		Net:      ledger.NetSavings(txs),
	}
}

func GenerateMonthly(session *ledger.Session, month ledger.YearMonth, nearLimit float64) Monthly {
	txs := ledger.FilterByMonth(session.Transactions, month)

	report := Monthly{
		Title:      fmt.Sprintf("%s %d", month.Month.String(), month.Year),
		Month:      month,
		Summary:    summarize(txs),
		Categories: Categories(txs),
	}

	budget := session.Budget
	if budget != nil && budget.Month() == month {
		report.HasBudget = true
		report.Budget = budgetVsActual(budget, txs, nearLimit)
	}

	return report
}

func GenerateYearly(session *ledger.Session, year int) Yearly {
	txs := ledger.FilterByYear(session.Transactions, year)

	report := Yearly{
		Title:      strconv.Itoa(year),
		Year:       year,
		Summary:    summarize(txs),
		Trends:     []ledger.MonthTotal{},
		Categories: Categories(txs),
	}

	if report.Summary.Income.IsPositive() {
		report.HasSavingsRate = true
		report.SavingsRate = report.Summary.Net.Div(report.Summary.Income).Mul(hundred).InexactFloat64()
	}

	for _, row := range ledger.MonthlyTotals(txs, year) {
		if !row.IsEmpty() {
			report.Trends = append(report.Trends, row)
		}
	}

	return report
}

func GenerateQuick(session *ledger.Session) Quick {
	month := session.CurrentMonth()

	return Quick{
		Month:   month,
		Summary: summarize(ledger.FilterByMonth(session.Transactions, month)),
	}
}

// Categories returns the expense breakdown ranked by amount, largest first.
func Categories(txs []*ledger.Transaction) []Category {
	ranked := ledger.RankByAmount(ledger.GroupExpensesByCategory(txs))

	total := decimal.Zero
	for _, c := range ranked {
		total = total.Add(c.Amount)
	}

	categories := make([]Category, 0, len(ranked))
	for _, c := range ranked {
		var percentage float64
		if total.IsPositive() {
			percentage = c.Amount.Div(total).Mul(hundred).InexactFloat64()
		}
		categories = append(categories, Category{
			Name:              c.Category,
			Amount:            c.Amount,
			PercentageOfTotal: percentage,
		})
	}

	return categories
}

func budgetVsActual(budget *ledger.Budget, txs []*ledger.Transaction, nearLimit float64) []BudgetInfo {
	actual := map[string]decimal.Decimal{}
	for _, c := range ledger.GroupExpensesByCategory(txs) {
		actual[c.Category] = c.Amount
	}

	infos := make([]BudgetInfo, 0, budget.Len())
	for _, category := range budget.Categories() {
		spent, ok := actual[category]
		if !ok {
			spent = decimal.Zero
		}
		infos = append(infos, calculateBudgetInfo(budget, category, spent, nearLimit))
	}

	return infos
}

// CheckBudget reports how the spending of one category in month compares
// with its limit.
func CheckBudget(session *ledger.Session, category string, month ledger.YearMonth, nearLimit float64) BudgetInfo {
	spent := ledger.SpentInCategory(session.Transactions, category, month)
	return calculateBudgetInfo(session.Budget, category, spent, nearLimit)
}

// BudgetOverview checks every budgeted category against the spending of month,
// whichever month the budget was set for.
func BudgetOverview(session *ledger.Session, month ledger.YearMonth, nearLimit float64) []BudgetInfo {
	categories := session.Budget.Categories()
	infos := make([]BudgetInfo, 0, len(categories))
	for _, category := range categories {
		infos = append(infos, CheckBudget(session, category, month, nearLimit))
	}
	return infos
}

func calculateBudgetInfo(budget *ledger.Budget, category string, spent decimal.Decimal, nearLimit float64) BudgetInfo {
	amount := budget.Limit(category)

	var percentageUsed float64
	if amount.IsPositive() {
		percentageUsed = spent.Div(amount).Mul(hundred).InexactFloat64()
	}

	var status BudgetStatus
	switch {
	case !budget.HasBudget(category):
		status = BudgetStatusNoBudget
	case budget.IsOverBudget(category, spent):
		status = BudgetStatusOver
	case budget.IsNearLimit(category, spent, nearLimit):
		status = BudgetStatusNear
	default:
		status = BudgetStatusUnder
	}

	return BudgetInfo{
		Category:       category,
		Amount:         amount,
		Spent:          spent,
		Remaining:      amount.Sub(spent),
		PercentageUsed: percentageUsed,
		Status:         status,
	}
}

func GenerateStatistics(session *ledger.Session) Statistics {
	stats := Statistics{
		Transactions:     len(session.Transactions),
		Income:           len(ledger.FilterByKind(session.Transactions, ledger.Income)),
		Expenses:         len(ledger.FilterByKind(session.Transactions, ledger.Expense)),
		Goals:            len(session.Goals),
		BudgetCategories: session.Budget.Len(),
	}

	stats.FirstDate, stats.LastDate, stats.HasDateRange = ledger.DateRange(session.Transactions)
	return stats
}
