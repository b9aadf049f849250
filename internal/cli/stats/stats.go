package stats

import (
	"flag"
	"fmt"

	"github.com/GustavoCaso/financeledger/internal/cli"
	"github.com/GustavoCaso/financeledger/internal/ledger"
	"github.com/GustavoCaso/financeledger/internal/report"
)

type statsCommand struct {
}

func NewCommand() cli.Command {
	return statsCommand{}
}

func (c statsCommand) Description() string {
	return "Shows counts and the date range of the stored data"
}

func (c statsCommand) SetFlags(_ *flag.FlagSet) {
}

func (c statsCommand) Run(env *cli.Env) error {
	stats := report.GenerateStatistics(env.Session)
	if stats.Transactions == 0 {
		fmt.Fprintln(env.Out, "No data available for statistics.")
		return nil
	}

	fmt.Fprintln(env.Out, "=== STATISTICS ===")
	fmt.Fprintf(env.Out, "Total Transactions: %d\n", stats.Transactions)
	fmt.Fprintf(env.Out, "Income Transactions: %d\n", stats.Income)
	fmt.Fprintf(env.Out, "Expense Transactions: %d\n", stats.Expenses)
	fmt.Fprintf(env.Out, "Savings Goals: %d\n", stats.Goals)
	fmt.Fprintf(env.Out, "Budget Categories: %d\n", stats.BudgetCategories)

	if stats.HasDateRange {
		fmt.Fprintf(env.Out, "Data Range: %s to %s\n", ledger.FormatDate(stats.FirstDate), ledger.FormatDate(stats.LastDate))
	}

	return nil
}
