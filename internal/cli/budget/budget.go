package budget

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/GustavoCaso/financeledger/internal/cli"
	"github.com/GustavoCaso/financeledger/internal/ledger"
	"github.com/GustavoCaso/financeledger/internal/report"
	"github.com/GustavoCaso/financeledger/internal/util"
)

type budgetCommand struct {
	action   string
	category string
	amount   string
	month    string
}

func NewCommand() cli.Command {
	return &budgetCommand{}
}

func (c *budgetCommand) Description() string {
	return "Sets monthly category budgets and shows spending against them"
}

func (c *budgetCommand) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.action, "a", "view", "What action to perform. Supported values are: set, view")
	fs.StringVar(&c.category, "category", "", "Expense category name or number")
	fs.StringVar(&c.amount, "amount", "", "Budget amount, zero or more")
	fs.StringVar(&c.month, "month", "", "Budget month (YYYY-MM). set moves the budget to it, view compares spending of it. Defaults to the current month for view")
}

func (c *budgetCommand) Run(env *cli.Env) error {
	switch c.action {
	case "set":
		return c.set(env)
	case "view":
		return c.view(env)
	default:
		return fmt.Errorf("unsupported action: %s", c.action)
	}
}

func (c *budgetCommand) parseMonth(fallback ledger.YearMonth) (ledger.YearMonth, error) {
	if c.month == "" {
		return fallback, nil
	}
	month, err := ledger.ParseYearMonth(c.month)
	if err != nil {
		return ledger.YearMonth{}, fmt.Errorf("invalid month %q, expected YYYY-MM: %w", c.month, err)
	}
	return month, nil
}

func (c *budgetCommand) set(env *cli.Env) error {
	budget := env.Session.Budget

	category, err := cli.ResolveCategory(env.Session, ledger.Expense, c.category)
	if err != nil {
		return err
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(c.amount))
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", c.amount, err)
	}

	month, err := c.parseMonth(budget.Month())
	if err != nil {
		return err
	}

	if !budget.SetLimit(category, amount) {
		return fmt.Errorf("budget amount cannot be negative")
	}
	budget.SetMonth(month)
	env.MarkChanged()
	env.Logger.Info("Budget set", "category", category, "month", month.String())

	spent := ledger.SpentInCategory(env.Session.Transactions, category, month)

	fmt.Fprintf(env.Out, "Budget set: %s = %s (%s)\n", category, cli.Money(amount), month)
	fmt.Fprintf(env.Out, "Current spending this month: %s\n", cli.Money(spent))
	fmt.Fprintf(env.Out, "Remaining budget: %s\n", cli.Money(amount.Sub(spent)))

	return nil
}

func (c *budgetCommand) view(env *cli.Env) error {
	budget := env.Session.Budget

	if budget.Len() == 0 {
		fmt.Fprintln(env.Out, "No budgets set. Set some budgets first!")
		return nil
	}

	month, err := c.parseMonth(env.Session.CurrentMonth())
	if err != nil {
		return err
	}

	fmt.Fprintf(env.Out, "=== BUDGET FOR %s ===\n", budget.Month())
	for _, category := range budget.Categories() {
		fmt.Fprintf(env.Out, "%-20s: %s\n", category, cli.Money(budget.Limit(category)))
	}
	fmt.Fprintf(env.Out, "%-20s: %s\n", "Total", cli.Money(budget.Total()))

	fmt.Fprintf(env.Out, "\n--- BUDGET STATUS %s ---\n", month)
	printStatus(env.Out, report.BudgetOverview(env.Session, month, env.NearLimit))

	return nil
}

func printStatus(out io.Writer, infos []report.BudgetInfo) {
	for _, info := range infos {
		fmt.Fprintf(out, "%s %-20s: %s / %s (%s)\n",
			cli.StatusLabel(info.Status),
			info.Category,
			cli.Money(info.Spent),
			cli.Money(info.Amount),
			util.FormatPercentage(info.PercentageUsed),
		)
	}
}
