package transaction

import (
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/GustavoCaso/financeledger/internal/cli"
	"github.com/GustavoCaso/financeledger/internal/filter"
	"github.com/GustavoCaso/financeledger/internal/ledger"
	"github.com/GustavoCaso/financeledger/internal/report"
	"github.com/GustavoCaso/financeledger/internal/util"
)

const descriptionWidth = 24

type transactionCommand struct {
	action      string
	kind        string
	amount      string
	category    string
	description string
	date        string
	filter      string
	month       string
	search      filter.Params
}

func NewCommand() cli.Command {
	return &transactionCommand{}
}

func (c *transactionCommand) Description() string {
	return "Adds and lists income and expense transactions"
}

func (c *transactionCommand) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.action, "a", "list", "What action to perform. Supported values are: add, list")
	fs.StringVar(&c.kind, "type", "expense", "Transaction type: income or expense")
	fs.StringVar(&c.amount, "amount", "", "Transaction amount, must be positive")
	fs.StringVar(&c.category, "category", "", "Category name or number. When adding without one it is guessed from the description")
	fs.StringVar(&c.description, "description", "", "Transaction description")
	fs.StringVar(&c.date, "date", "", "Transaction date (YYYY-MM-DD). Defaults to today")
	fs.StringVar(&c.filter, "filter", "all", "Transactions to list. Supported values are: all, month, income, expense, category")
	fs.StringVar(&c.month, "month", "", "Month for -filter month (YYYY-MM). Defaults to the current month")
	fs.StringVar(&c.search.Description, "search", "", "Only list transactions whose description contains this text")
	fs.StringVar(&c.search.AmountMin, "min", "", "Only list transactions of at least this amount")
	fs.StringVar(&c.search.AmountMax, "max", "", "Only list transactions of at most this amount")
	fs.StringVar(&c.search.DateFrom, "from", "", "Only list transactions on or after this date (YYYY-MM-DD)")
	fs.StringVar(&c.search.DateTo, "to", "", "Only list transactions on or before this date (YYYY-MM-DD)")
	fs.StringVar(&c.search.Sort, "sort", "date:desc", "Sort order as field:direction. Fields: date, amount. Directions: asc, desc")
}

func (c *transactionCommand) Run(env *cli.Env) error {
	switch c.action {
	case "add":
		return c.add(env)
	case "list":
		return c.list(env)
	default:
		return fmt.Errorf("unsupported action: %s", c.action)
	}
}

func (c *transactionCommand) add(env *cli.Env) error {
	kind, err := ledger.ParseKind(c.kind)
	if err != nil {
		return err
	}

	amount, err := cli.ParseAmount(c.amount)
	if err != nil {
		return err
	}

	description := strings.TrimSpace(c.description)

	categoryValue := c.category
	if strings.TrimSpace(categoryValue) == "" {
		categoryValue = env.Matcher.Match(description)
		if categoryValue != "" {
			env.Logger.Debug("Category suggested from description", "category", categoryValue)
		}
	}

	category, err := cli.ResolveCategory(env.Session, kind, categoryValue)
	if err != nil {
		return err
	}

	var date time.Time
	if c.date != "" {
		date, err = ledger.ParseDate(c.date)
		if err != nil {
			return fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", c.date, err)
		}
	}

	tx := env.Session.AddTransaction(kind, amount, category, description, date)
	env.MarkChanged()
	env.Logger.Info("Transaction added", "id", tx.ID(), "type", tx.Kind, "category", tx.Category)

	fmt.Fprintf(env.Out, "Transaction added successfully! (ID: %d)\n", tx.ID())
	fmt.Fprintln(env.Out, formatTransaction(tx))

	if tx.Kind == ledger.Expense && env.Session.Budget.HasBudget(tx.Category) {
		budgetAlert(env, tx)
	}

	return nil
}

func budgetAlert(env *cli.Env, tx *ledger.Transaction) {
	info := report.CheckBudget(env.Session, tx.Category, ledger.YearMonthOf(tx.Date), env.NearLimit)

	fmt.Fprintf(env.Out, "\n%s budget: %s remaining this month\n", tx.Category, cli.Money(info.Remaining))

	// An exceeded budget is past the near limit too, so both lines print.
	if info.Status == report.BudgetStatusNear || info.Status == report.BudgetStatusOver {
		msg := fmt.Sprintf("Warning: You've used %s of your budget for %s", util.FormatPercentage(info.PercentageUsed), tx.Category)
		fmt.Fprintln(env.Out, util.ColorOutput(msg, "yellow"))
	}

	if info.Status == report.BudgetStatusOver {
		msg := fmt.Sprintf("Alert: You've exceeded your budget for %s", tx.Category)
		fmt.Fprintln(env.Out, util.ColorOutput(msg, "red", "bold"))
	}
}

func (c *transactionCommand) list(env *cli.Env) error {
	if len(env.Session.Transactions) == 0 {
		fmt.Fprintln(env.Out, "No transactions found. Add some transactions first!")
		return nil
	}

	criteria, sort, err := filter.ParseTransactionFilters(c.search)
	if err != nil {
		return err
	}

	transactions, err := c.selectTransactions(env.Session)
	if err != nil {
		return err
	}

	transactions = criteria.Apply(transactions)
	if len(transactions) == 0 {
		fmt.Fprintln(env.Out, "No transactions found for your selection.")
		return nil
	}

	env.Logger.Debug("Listing transactions", "filter", c.filter, "sort", sort.String(), "count", len(transactions))
	printTable(env.Out, sort.Sort(transactions))
	return nil
}

func (c *transactionCommand) selectTransactions(session *ledger.Session) ([]*ledger.Transaction, error) {
	all := session.Transactions

	switch c.filter {
	case "all":
		return all, nil
	case "month":
		month := session.CurrentMonth()
		if c.month != "" {
			var err error
			month, err = ledger.ParseYearMonth(c.month)
			if err != nil {
				return nil, fmt.Errorf("invalid month %q, expected YYYY-MM: %w", c.month, err)
			}
		}
		return ledger.FilterByMonth(all, month), nil
	case "income":
		return ledger.FilterByKind(all, ledger.Income), nil
	case "expense":
		return ledger.FilterByKind(all, ledger.Expense), nil
	case "category":
		name := strings.TrimSpace(c.category)
		if name == "" {
			return nil, fmt.Errorf("-category is required with -filter category")
		}
		return ledger.FilterByCategory(all, name, true), nil
	default:
		return nil, fmt.Errorf("unsupported filter: %s", c.filter)
	}
}

func formatTransaction(tx *ledger.Transaction) string {
	return fmt.Sprintf("%-5d %-8s %-12s %-20s %-25s %s",
		tx.ID(),
		tx.Kind,
		cli.Money(tx.Amount),
		tx.Category,
		cli.Truncate(tx.Description, descriptionWidth),
		ledger.FormatDate(tx.Date),
	)
}

func printTable(out io.Writer, transactions []*ledger.Transaction) {
	separator := strings.Repeat("=", 90)

	fmt.Fprintln(out, separator)
	fmt.Fprintf(out, "%-5s %-8s %-12s %-20s %-25s %s\n", "ID", "TYPE", "AMOUNT", "CATEGORY", "DESCRIPTION", "DATE")
	fmt.Fprintln(out, separator)

	for _, tx := range transactions {
		fmt.Fprintln(out, formatTransaction(tx))
	}

	total := ledger.SignedTotal(transactions)
	fmt.Fprintln(out, separator)
	fmt.Fprintf(out, "Total: %s (%d transactions)\n", util.ColorOutput(cli.Money(total), util.SignColor(total)), len(transactions))
}
